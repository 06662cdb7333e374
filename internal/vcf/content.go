// Package vcf provides line-oriented access to VCF files for validation.
package vcf

import "fmt"

// Content is a single physical line of a VCF file.
// Line is 1-based; Text has its line terminator stripped.
type Content struct {
	Line int
	Text string
}

// Less reports whether c precedes other in the file.
func (c Content) Less(other Content) bool {
	return c.Line < other.Line
}

// String renders the content as "L<line>: <text>".
func (c Content) String() string {
	return fmt.Sprintf("L%d: %s", c.Line, c.Text)
}
