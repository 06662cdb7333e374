package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counterState struct {
	value int
}

// thresholdRule fires when the state's value exceeds max.
type thresholdRule struct {
	settings Settings
	max      int
	checked  *int
}

func (r thresholdRule) Identity() Identity { return Identity{"T_0001", "Test/Threshold"} }
func (r thresholdRule) Settings() Settings { return r.settings }

func (r thresholdRule) Check(s *counterState) (Params, bool) {
	if r.checked != nil {
		*r.checked++
	}
	return Params{"max": r.max}, s.value > r.max
}

func newRenderer(t *testing.T) *TemplateRenderer {
	t.Helper()
	r, err := NewTemplateRenderer(map[string]string{
		"Test/Threshold": "Value exceeds {{max}}.",
	})
	require.NoError(t, err)
	return r
}

func TestEvaluate(t *testing.T) {
	renderer := newRenderer(t)
	active := Settings{Enabled: true, Level: Warning, Message: "Value exceeds {{max}}."}

	tests := []struct {
		name        string
		settings    Settings
		value       int
		wantFinding bool
		wantChecked int
	}{
		{"violation", active, 10, true, 1},
		{"no violation", active, 3, false, 1},
		{"disabled short-circuits", Settings{Enabled: false, Level: Error}, 10, false, 0},
		{"level none short-circuits", Settings{Enabled: true, Level: None}, 10, false, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checked := 0
			r := thresholdRule{settings: tt.settings, max: 5, checked: &checked}

			got, err := Evaluate[counterState](r, &counterState{value: tt.value}, renderer)
			require.NoError(t, err)
			assert.Equal(t, tt.wantChecked, checked)

			if !tt.wantFinding {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, ValidationError{
				Code:    "T_0001",
				Name:    "Test/Threshold",
				Level:   Warning,
				Message: "Value exceeds 5.",
			}, *got)
		})
	}
}

func TestEvaluate_MissingTemplateIsFatal(t *testing.T) {
	renderer, err := NewTemplateRenderer(map[string]string{})
	require.NoError(t, err)

	r := thresholdRule{settings: Settings{Enabled: true, Level: Error}, max: 1}
	_, err = Evaluate[counterState](r, &counterState{value: 2}, renderer)
	assert.ErrorContains(t, err, "no message template for Test/Threshold")
}

func TestTemplateRenderer(t *testing.T) {
	r, err := NewTemplateRenderer(map[string]string{
		"A": "Allowed values are {{allowed}}.",
		"B": "Dotted {{ .columns }} form.",
		"C": "No parameters.",
	})
	require.NoError(t, err)

	got, err := r.Render("A", Params{"allowed": "VCFv4.2/VCFv4.3"})
	require.NoError(t, err)
	assert.Equal(t, "Allowed values are VCFv4.2/VCFv4.3.", got)

	got, err = r.Render("B", Params{"columns": "CHROM, POS"})
	require.NoError(t, err)
	assert.Equal(t, "Dotted CHROM, POS form.", got)

	got, err = r.Render("C", nil)
	require.NoError(t, err)
	assert.Equal(t, "No parameters.", got)

	_, err = r.Render("A", nil)
	assert.Error(t, err, "missing parameter must fail")
}

func TestNewTemplateRenderer_ParseError(t *testing.T) {
	_, err := NewTemplateRenderer(map[string]string{"Broken": "{{if}}"})
	assert.ErrorContains(t, err, "parse message template Broken")
}

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]Level{"none": None, "Warning": Warning, " ERROR ": Error} {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseLevel("fatal")
	assert.Error(t, err)
}

func TestLevel_AtLeast(t *testing.T) {
	assert.True(t, Error.AtLeast(Warning))
	assert.True(t, Warning.AtLeast(Warning))
	assert.False(t, Warning.AtLeast(Error))
	assert.True(t, Warning.AtLeast(None))
}

func TestCatalogue_UniqueIdentities(t *testing.T) {
	codes := map[string]bool{}
	names := map[string]bool{}
	for _, id := range Catalogue {
		assert.False(t, codes[id.Code], "duplicate code %s", id.Code)
		assert.False(t, names[id.Name], "duplicate name %s", id.Name)
		codes[id.Code] = true
		names[id.Name] = true
	}
	assert.Len(t, Catalogue, 22)
}
