package vcf

import (
	"strconv"
	"strings"
)

// Field indexes of the fixed VCF columns.
const (
	ChromField = iota
	PosField
	IDField
	RefField
	AltField
	QualField
	FilterField
	InfoField
)

// Record is a data line split on tabs. No column count is assumed;
// accessors report whether the field is present.
type Record struct {
	Fields []string
}

// ParseRecord splits a data line into its fields.
func ParseRecord(text string) Record {
	return Record{Fields: strings.Split(text, "\t")}
}

// Field returns the i-th field and whether it exists.
func (r Record) Field(i int) (string, bool) {
	if i < 0 || i >= len(r.Fields) {
		return "", false
	}
	return r.Fields[i], true
}

// Chrom returns the chromosome name (e.g., "NC_000001.10", "chr12").
func (r Record) Chrom() (string, bool) { return r.Field(ChromField) }

// Ref returns the reference bases.
func (r Record) Ref() (string, bool) { return r.Field(RefField) }

// Alt returns the alternate bases, possibly comma-separated.
func (r Record) Alt() (string, bool) { return r.Field(AltField) }

// Pos returns the 1-based position and whether it parses as a
// non-negative integer.
func (r Record) Pos() (int64, bool) {
	s, ok := r.Field(PosField)
	if !ok {
		return 0, false
	}
	pos, err := strconv.ParseUint(s, 10, 63)
	if err != nil {
		return 0, false
	}
	return int64(pos), true
}

// AltAlleles splits the ALT field into its comma-separated alleles.
func (r Record) AltAlleles() []string {
	alt, ok := r.Alt()
	if !ok {
		return nil
	}
	return strings.Split(alt, ",")
}

// IsMultiAllelic returns true if ALT lists more than one allele.
func (r Record) IsMultiAllelic() bool {
	alt, _ := r.Alt()
	return strings.Contains(alt, ",")
}
