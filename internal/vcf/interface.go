package vcf

// ContentSource is the interface for sources that yield lines of a VCF file.
type ContentSource interface {
	// Next reads the next line.
	// Returns nil, nil when there are no more lines.
	// An *EncodingError is recoverable: the following call continues
	// with the next line.
	Next() (*Content, error)

	// Close closes the source and releases resources.
	Close() error

	// LineNumber returns the number of physical lines read so far.
	LineNumber() int
}
