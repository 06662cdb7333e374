package validator

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/inodb/vibe-lint/internal/config"
	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/vcf"
)

// progressInterval is the number of lines between progress updates.
const progressInterval = 100

// Engine drives a single validation pass over a line source.
type Engine struct {
	cfg       *config.Config
	renderer  rule.Renderer
	reference SequenceFetcher
	logger    *zap.Logger
	progress  io.Writer
}

// NewEngine creates an engine for the given configuration and renderer.
func NewEngine(cfg *config.Config, renderer rule.Renderer) *Engine {
	return &Engine{
		cfg:      cfg,
		renderer: renderer,
		logger:   zap.NewNop(),
	}
}

// SetReference enables Record/MismatchReferenceBase against f.
func (e *Engine) SetReference(f SequenceFetcher) {
	e.reference = f
}

// SetLogger sets the logger for warning and info messages.
func (e *Engine) SetLogger(l *zap.Logger) {
	e.logger = l
}

// SetProgress enables "processed: N" updates on w.
func (e *Engine) SetProgress(w io.Writer) {
	e.progress = w
}

// Run validates every line of src and returns the report. Lines that are
// not valid text are recorded as stream errors and skipped. Any other read
// error or a message rendering failure aborts the run.
func (e *Engine) Run(src vcf.ContentSource) (*Report, error) {
	global := NewGlobalValidator(e.cfg, e.renderer)
	meta := NewMetaValidator(e.cfg, e.renderer)
	header := NewHeaderValidator(e.cfg, e.renderer)
	record := NewRecordValidator(e.cfg, e.renderer)
	if e.reference != nil {
		record.SetReference(e.reference)
	}

	var streamErrors []StreamError
	lines := 0

	for {
		c, err := src.Next()
		if err != nil {
			var encErr *vcf.EncodingError
			if !errors.As(err, &encErr) {
				return nil, fmt.Errorf("read vcf: %w", err)
			}
			e.logger.Warn("skipping unreadable line",
				zap.Int("line", encErr.Line),
				zap.Error(err))
			streamErrors = append(streamErrors, StreamError{Content: encErr.Content(), Message: err.Error()})
			lines++
			e.reportProgress(lines)
			continue
		}
		if c == nil {
			break
		}
		lines++

		if err := e.route(*c, global, meta, header, record); err != nil {
			return nil, err
		}
		e.reportProgress(lines)
	}

	if e.progress != nil {
		fmt.Fprintf(e.progress, "\rprocessed: %d\n", lines)
	}

	for _, finalize := range []func() error{global.Finalize, meta.Finalize, header.Finalize, record.Finalize} {
		if err := finalize(); err != nil {
			return nil, err
		}
	}

	report := NewReport(lines, streamErrors, global, meta, header, record)
	e.logger.Info("validation complete",
		zap.Int("lines", lines),
		zap.Int("warnings", report.Count(rule.Warning)),
		zap.Int("errors", report.Count(rule.Error)))

	return report, nil
}

// route pushes c to the global validator and to the validator of its
// category. Blank lines only concern the global validator.
func (e *Engine) route(c vcf.Content, global *GlobalValidator, meta *MetaValidator, header *HeaderValidator, record *RecordValidator) error {
	category := vcf.Classify(c.Text)
	if category == vcf.Header {
		global.ObserveHeader()
	}

	if err := global.Push(c); err != nil {
		return fmt.Errorf("line %d: %w", c.Line, err)
	}

	switch category {
	case vcf.MetaInformation:
		meta.Push(c)
	case vcf.Header:
		header.Push(c)
	default:
		if strings.TrimSpace(c.Text) == "" {
			return nil
		}
		if err := record.Push(c); err != nil {
			return fmt.Errorf("line %d: %w", c.Line, err)
		}
	}
	return nil
}

func (e *Engine) reportProgress(lines int) {
	if e.progress != nil && lines%progressInterval == 0 {
		fmt.Fprintf(e.progress, "\rprocessed: %d", lines)
	}
}
