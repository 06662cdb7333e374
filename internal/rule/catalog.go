package rule

// Identity is the stable identifier of a rule. Code is machine readable,
// Name is the dotted name used as configuration and template key.
type Identity struct {
	Code string
	Name string
}

// Rule identities. These never change across configuration reloads.
var (
	FileFormat = Identity{"JV_VR0001", "MetaInformation/FileFormat"}
	Version    = Identity{"JV_VR0012", "MetaInformation/Version"}

	HeaderLine       = Identity{"JV_VR0002", "Header/HeaderLine"}
	HeaderColumn     = Identity{"JV_VR0003", "Header/HeaderColumn"}
	DuplicatedHeader = Identity{"JV_VR0005", "Header/DuplicatedHeader"}

	DataBeforeHeader = Identity{"JV_VR0004", "Global/DataBeforeHeader"}
	BlankLine        = Identity{"JV_VR0006", "Global/BlankLine"}
	EmptyVCF         = Identity{"JV_VR0007", "Global/EmptyVCF"}

	PositionFormat           = Identity{"JV_VR0024", "Record/PositionFormat"}
	DiscontiguousChromosome  = Identity{"JV_VR0025", "Record/DiscontiguousChromosome"}
	UnsortedPosition         = Identity{"JV_VR0026", "Record/UnsortedPosition"}
	IdenticalBases           = Identity{"JV_VR0027", "Record/IdenticalBases"}
	AmbiguousReferenceBase   = Identity{"JV_VR0028", "Record/AmbiguousReferenceBase"}
	MissingReferenceBase     = Identity{"JV_VR0029", "Record/MissingReferenceBase"}
	AllowedReferenceBase     = Identity{"JV_VR0030", "Record/AllowedReferenceBase"}
	InsertionLength          = Identity{"JV_VR0031", "Record/InsertionLength"}
	MismatchReferenceBase    = Identity{"JV_VR0033", "Record/MismatchReferenceBase"}
	AmbiguousAlternateBase   = Identity{"JV_VR0034", "Record/AmbiguousAlternateBase"}
	MissingAlternateBase     = Identity{"JV_VR0035", "Record/MissingAlternateBase"}
	AllowedAlternateBase     = Identity{"JV_VR0036", "Record/AllowedAlternateBase"}
	DeletionLength           = Identity{"JV_VR0037", "Record/DeletionLength"}
	MultipleAlternateAlleles = Identity{"JV_VR0038", "Record/MultipleAlternateAlleles"}
)

// Catalogue lists every rule, grouped by category in evaluation order.
var Catalogue = []Identity{
	DataBeforeHeader,
	BlankLine,
	EmptyVCF,

	FileFormat,
	Version,

	DuplicatedHeader,
	HeaderColumn,
	HeaderLine,

	AllowedAlternateBase,
	AllowedReferenceBase,
	AmbiguousAlternateBase,
	AmbiguousReferenceBase,
	DeletionLength,
	DiscontiguousChromosome,
	IdenticalBases,
	InsertionLength,
	MismatchReferenceBase,
	MissingAlternateBase,
	MissingReferenceBase,
	MultipleAlternateAlleles,
	PositionFormat,
	UnsortedPosition,
}
