package vcf

import "strings"

// Category is the section of a VCF file a line belongs to.
type Category int

const (
	// Data is a tab-delimited variant record.
	Data Category = iota
	// MetaInformation is a "##" preamble line.
	MetaInformation
	// Header is the "#CHROM ..." column header line.
	Header
)

func (c Category) String() string {
	switch c {
	case MetaInformation:
		return "MetaInformation"
	case Header:
		return "Header"
	default:
		return "Data"
	}
}

// Classify returns the category of a line by prefix sniffing.
func Classify(text string) Category {
	switch {
	case strings.HasPrefix(text, "##"):
		return MetaInformation
	case strings.HasPrefix(text, "#"):
		return Header
	default:
		return Data
	}
}
