package validator

import (
	"github.com/inodb/vibe-lint/internal/config"
	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/vcf"
)

// SequenceFetcher looks up reference bases. Start and end are zero-based
// and inclusive.
type SequenceFetcher interface {
	Fetch(chrom string, start, end int) ([]byte, error)
}

// RecordState is the working memory of the record validator. Only the
// current and previous records are kept.
type RecordState struct {
	Current  *vcf.Record
	Previous *vcf.Record
	// Chromosomes holds every CHROM seen before the current record.
	Chromosomes map[string]struct{}
	Reference   SequenceFetcher
}

func (s *RecordState) seen(chrom string) bool {
	_, ok := s.Chromosomes[chrom]
	return ok
}

// RecordValidator checks data lines one at a time.
type RecordValidator struct {
	state     RecordState
	rules     []rule.Rule[RecordState]
	renderer  rule.Renderer
	errors    Findings
	finalized bool
}

// NewRecordValidator builds the validator from the rule configuration.
func NewRecordValidator(cfg *config.Config, renderer rule.Renderer) *RecordValidator {
	return &RecordValidator{
		state: RecordState{Chromosomes: make(map[string]struct{})},
		rules: []rule.Rule[RecordState]{
			allowedBases{rule.AllowedAlternateBase, cfg.AllowedAlternateBase, vcf.AltField},
			allowedBases{rule.AllowedReferenceBase, cfg.AllowedReferenceBase, vcf.RefField},
			disallowedTokens{rule.AmbiguousAlternateBase, cfg.AmbiguousAlternateBase, vcf.AltField},
			disallowedTokens{rule.AmbiguousReferenceBase, cfg.AmbiguousReferenceBase, vcf.RefField},
			alleleLength{rule.DeletionLength, cfg.DeletionLength, true},
			discontiguousChromosome{cfg.DiscontiguousChromosome},
			identicalBases{cfg.IdenticalBases},
			alleleLength{rule.InsertionLength, cfg.InsertionLength, false},
			mismatchReferenceBase{cfg.MismatchReferenceBase},
			disallowedTokens{rule.MissingAlternateBase, cfg.MissingAlternateBase, vcf.AltField},
			disallowedTokens{rule.MissingReferenceBase, cfg.MissingReferenceBase, vcf.RefField},
			multipleAlternateAlleles{cfg.MultipleAlternateAlleles},
			positionFormat{cfg.PositionFormat},
			unsortedPosition{cfg.UnsortedPosition},
		},
		renderer: renderer,
	}
}

// SetReference enables reference base comparison against f.
func (v *RecordValidator) SetReference(f SequenceFetcher) {
	v.state.Reference = f
}

// Push evaluates every record rule against the data line c.
func (v *RecordValidator) Push(c vcf.Content) error {
	if v.finalized {
		return nil
	}

	record := vcf.ParseRecord(c.Text)
	v.state.Current = &record

	for _, r := range v.rules {
		e, err := rule.Evaluate(r, &v.state, v.renderer)
		if err != nil {
			return err
		}
		if e != nil {
			v.errors.Add(&c, *e)
		}
	}

	if chrom, ok := record.Chrom(); ok {
		v.state.Chromosomes[chrom] = struct{}{}
	}
	v.state.Previous = v.state.Current
	return nil
}

// Finalize marks the validator as complete. Every record rule is
// evaluated per line, so there is nothing left to check.
func (v *RecordValidator) Finalize() error {
	v.finalized = true
	return nil
}

// Errors returns the findings accumulated so far.
func (v *RecordValidator) Errors() Findings {
	return v.errors
}
