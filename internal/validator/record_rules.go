package validator

import (
	"regexp"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/inodb/vibe-lint/internal/config"
	"github.com/inodb/vibe-lint/internal/rule"
	"github.com/inodb/vibe-lint/internal/vcf"
)

// nucleotideRun matches the leading run of nucleotide and IUPAC
// ambiguity characters.
var nucleotideRun = regexp.MustCompile(`(?i)^[ACGTURYSWKMBDHVN]*`)

// FetchFailed is reported as the FASTA side of a mismatch when the
// reference could not be read.
const FetchFailed = "Failed to obtain sequence from FASTA"

// allowedBases requires every character of a field to be in the allowed
// set. ALT is checked allele by allele.
type allowedBases struct {
	id    rule.Identity
	cfg   config.AllowedValues
	field int
}

func (r allowedBases) Identity() rule.Identity { return r.id }
func (r allowedBases) Settings() rule.Settings { return r.cfg.Settings }

func (r allowedBases) Check(s *RecordState) (rule.Params, bool) {
	params := rule.Params{"allowed": strings.Join(r.cfg.Allowed, ", ")}

	value, ok := s.Current.Field(r.field)
	if !ok {
		return params, true
	}

	alleles := []string{value}
	if r.field == vcf.AltField {
		alleles = strings.Split(value, ",")
	}
	for _, allele := range alleles {
		for _, c := range allele {
			if !slices.Contains(r.cfg.Allowed, string(c)) {
				return params, true
			}
		}
	}
	return nil, false
}

// disallowedTokens rejects a field containing any of the configured tokens.
type disallowedTokens struct {
	id    rule.Identity
	cfg   config.DisallowedValues
	field int
}

func (r disallowedTokens) Identity() rule.Identity { return r.id }
func (r disallowedTokens) Settings() rule.Settings { return r.cfg.Settings }

func (r disallowedTokens) Check(s *RecordState) (rule.Params, bool) {
	params := rule.Params{"disallowed": strings.Join(r.cfg.Disallowed, ", ")}

	value, ok := s.Current.Field(r.field)
	if !ok {
		return params, true
	}
	for _, token := range r.cfg.Disallowed {
		if strings.Contains(value, token) {
			return params, true
		}
	}
	return nil, false
}

// alleleLength bounds the difference between the nucleotide runs of REF
// and ALT. Deletion measures ref minus alt, insertion alt minus ref.
type alleleLength struct {
	id       rule.Identity
	cfg      config.Length
	deletion bool
}

func (r alleleLength) Identity() rule.Identity { return r.id }
func (r alleleLength) Settings() rule.Settings { return r.cfg.Settings }

func (r alleleLength) Check(s *RecordState) (rule.Params, bool) {
	params := rule.Params{"max": r.cfg.Max}

	ref, refOK := s.Current.Ref()
	alt, altOK := s.Current.Alt()
	if !refOK || !altOK {
		return params, true
	}

	diff := runLength(alt) - runLength(ref)
	if r.deletion {
		diff = -diff
	}
	if diff >= r.cfg.Max {
		return params, true
	}
	return nil, false
}

func runLength(s string) int {
	return len(nucleotideRun.FindString(s))
}

// discontiguousChromosome requires all records of one CHROM to form a
// single block.
type discontiguousChromosome struct{ settings rule.Settings }

func (r discontiguousChromosome) Identity() rule.Identity { return rule.DiscontiguousChromosome }
func (r discontiguousChromosome) Settings() rule.Settings { return r.settings }

func (r discontiguousChromosome) Check(s *RecordState) (rule.Params, bool) {
	if s.Previous == nil {
		return nil, false
	}

	prev, _ := s.Previous.Chrom()
	curr, _ := s.Current.Chrom()
	if prev == curr {
		return nil, false
	}
	return nil, s.seen(curr)
}

// identicalBases fires when REF and ALT are both present and equal.
type identicalBases struct{ settings rule.Settings }

func (r identicalBases) Identity() rule.Identity { return rule.IdenticalBases }
func (r identicalBases) Settings() rule.Settings { return r.settings }

func (r identicalBases) Check(s *RecordState) (rule.Params, bool) {
	ref, refOK := s.Current.Ref()
	alt, altOK := s.Current.Alt()
	return nil, refOK && altOK && ref == alt
}

// mismatchReferenceBase compares REF against the reference sequence,
// ignoring case. It abstains without a reference or a usable locus.
type mismatchReferenceBase struct{ settings rule.Settings }

func (r mismatchReferenceBase) Identity() rule.Identity { return rule.MismatchReferenceBase }
func (r mismatchReferenceBase) Settings() rule.Settings { return r.settings }

func (r mismatchReferenceBase) Check(s *RecordState) (rule.Params, bool) {
	if s.Reference == nil {
		return nil, false
	}

	chrom, chromOK := s.Current.Chrom()
	pos, posOK := s.Current.Pos()
	ref, refOK := s.Current.Ref()
	if !chromOK || !posOK || pos < 1 || !refOK || ref == "" {
		return nil, false
	}

	start := int(pos - 1)
	end := start + len(ref) - 1

	fasta := FetchFailed
	if seq, err := s.Reference.Fetch(chrom, start, end); err == nil && utf8.Valid(seq) {
		fasta = string(seq)
	}

	if strings.EqualFold(ref, fasta) {
		return nil, false
	}
	return rule.Params{"vcf": ref, "fasta": fasta}, true
}

type multipleAlternateAlleles struct{ settings rule.Settings }

func (r multipleAlternateAlleles) Identity() rule.Identity { return rule.MultipleAlternateAlleles }
func (r multipleAlternateAlleles) Settings() rule.Settings { return r.settings }

func (r multipleAlternateAlleles) Check(s *RecordState) (rule.Params, bool) {
	if _, ok := s.Current.Alt(); !ok {
		return nil, true
	}
	return nil, s.Current.IsMultiAllelic()
}

type positionFormat struct{ settings rule.Settings }

func (r positionFormat) Identity() rule.Identity { return rule.PositionFormat }
func (r positionFormat) Settings() rule.Settings { return r.settings }

func (r positionFormat) Check(s *RecordState) (rule.Params, bool) {
	_, ok := s.Current.Pos()
	return nil, !ok
}

// unsortedPosition requires POS to be non-decreasing within a CHROM.
type unsortedPosition struct{ settings rule.Settings }

func (r unsortedPosition) Identity() rule.Identity { return rule.UnsortedPosition }
func (r unsortedPosition) Settings() rule.Settings { return r.settings }

func (r unsortedPosition) Check(s *RecordState) (rule.Params, bool) {
	if s.Previous == nil {
		return nil, false
	}

	prevChrom, _ := s.Previous.Chrom()
	currChrom, _ := s.Current.Chrom()
	if prevChrom != currChrom {
		return nil, false
	}

	prev, prevOK := s.Previous.Pos()
	curr, currOK := s.Current.Pos()
	if !prevOK || !currOK {
		return nil, false
	}
	return nil, prev > curr
}
