package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/vibe-lint/internal/rule"
)

const cleanVCF = "##fileformat=VCFv4.3\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
	"chr1\t2\t.\tC\tG\t.\t.\t.\n"

// identicalVCF has one Record/IdenticalBases warning.
const identicalVCF = "##fileformat=VCFv4.3\n" +
	"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n" +
	"chr1\t2\t.\tC\tC\t.\t.\t.\n"

// runCLI runs the command line with a fresh viper state and an isolated
// home directory.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	viper.Reset()
	t.Setenv("HOME", t.TempDir())

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestVersion(t *testing.T) {
	code, stdout, _ := runCLI(t, "version")
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "vibe-lint version dev")
}

func TestUsageErrors(t *testing.T) {
	vcfPath := writeFile(t, "in.vcf", cleanVCF)

	tests := []struct {
		name string
		args []string
	}{
		{"unknown command", []string{"annotate"}},
		{"validate without file", []string{"validate"}},
		{"validate two files", []string{"validate", vcfPath, vcfPath}},
		{"unknown flag", []string{"validate", "--bogus", vcfPath}},
		{"bad fail-on", []string{"validate", "--fail-on", "fatal", vcfPath}},
		{"bad report type", []string{"validate", "-r", "xml", vcfPath}},
		{"unknown disabled rule", []string{"validate", "--disable", "Record/Nope", vcfPath}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, stderr := runCLI(t, tt.args...)
			assert.Equal(t, ExitUsage, code)
			assert.Contains(t, stderr, "Error:")
		})
	}
}

func TestValidate_Clean(t *testing.T) {
	path := writeFile(t, "clean.vcf", cleanVCF)

	code, stdout, _ := runCLI(t, "validate", "--fail-on", "warning", path)
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, "Category\tLine\tCode\tName\tLevel\tMessage\tContent\n", stdout)
}

func TestValidate_FailOn(t *testing.T) {
	path := writeFile(t, "identical.vcf", identicalVCF)

	tests := []struct {
		failOn string
		want   int
	}{
		{"none", ExitSuccess},
		{"warning", ExitError},
		{"error", ExitSuccess},
	}
	for _, tt := range tests {
		t.Run(tt.failOn, func(t *testing.T) {
			code, stdout, _ := runCLI(t, "validate", "--fail-on", tt.failOn, path)
			assert.Equal(t, tt.want, code)
			assert.Contains(t, stdout, rule.IdenticalBases.Name)
		})
	}
}

func TestValidate_Disable(t *testing.T) {
	path := writeFile(t, "identical.vcf", identicalVCF)

	code, stdout, _ := runCLI(t, "validate", "--fail-on", "warning",
		"--disable", rule.IdenticalBases.Code, path)
	assert.Equal(t, ExitSuccess, code)
	assert.NotContains(t, stdout, rule.IdenticalBases.Name)
}

func TestValidate_EnvFailOn(t *testing.T) {
	path := writeFile(t, "identical.vcf", identicalVCF)
	t.Setenv("VIBE_LINT_FAIL_ON", "warning")

	code, _, _ := runCLI(t, "validate", path)
	assert.Equal(t, ExitError, code)
}

func TestValidate_JSONOutputFile(t *testing.T) {
	path := writeFile(t, "identical.vcf", identicalVCF)
	out := filepath.Join(t.TempDir(), "report.json")

	code, stdout, _ := runCLI(t, "validate", "-r", "json", "-o", out, path)
	require.Equal(t, ExitSuccess, code)
	assert.Empty(t, stdout)

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var doc struct {
		RunID  string `json:"run_id"`
		Lines  int    `json:"lines"`
		Record []struct {
			Errors []rule.ValidationError `json:"errors"`
		} `json:"record"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.NotEmpty(t, doc.RunID)
	assert.Equal(t, 3, doc.Lines)
	require.Len(t, doc.Record, 1)
	require.Len(t, doc.Record[0].Errors, 1)
	assert.Equal(t, rule.IdenticalBases.Code, doc.Record[0].Errors[0].Code)
}

func TestValidate_Japanese(t *testing.T) {
	path := writeFile(t, "empty.vcf", "")

	code, stdout, _ := runCLI(t, "validate", "--lang", "ja", path)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, rule.EmptyVCF.Name)
	assert.NotContains(t, stdout, "No records found in VCF.")
}

func TestValidate_MissingFile(t *testing.T) {
	code, _, stderr := runCLI(t, "validate", filepath.Join(t.TempDir(), "missing.vcf"))
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "Hint: Check that the file path is correct")
}

func TestValidate_Reference(t *testing.T) {
	fasta := writeFile(t, "ref.fa", ">chr1\nACGTACGTAC\n")
	path := writeFile(t, "in.vcf", "##fileformat=VCFv4.3\n"+
		"#CHROM\tPOS\tID\tREF\tALT\tQUAL\tFILTER\tINFO\n"+
		"chr1\t2\t.\tC\tG\t.\t.\t.\n"+
		"chr1\t3\t.\tT\tA\t.\t.\t.\n")

	code, _, stderr := runCLI(t, "validate", "-f", fasta, path)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "--build-index")

	code, stdout, _ := runCLI(t, "validate", "-f", fasta, "--build-index", path)
	assert.Equal(t, ExitSuccess, code)
	assert.Equal(t, 1, strings.Count(stdout, rule.MismatchReferenceBase.Name))
	assert.Contains(t, stdout, "Record\t4\t"+rule.MismatchReferenceBase.Code)
}

func TestFaidx(t *testing.T) {
	fasta := writeFile(t, "ref.fa", ">chr1\nACGT\n")

	code, stdout, _ := runCLI(t, "faidx", fasta)
	assert.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, fasta+".fai")

	data, err := os.ReadFile(fasta + ".fai")
	require.NoError(t, err)
	assert.Equal(t, "chr1\t4\t6\t4\t5\n", string(data))
}

func TestFaidx_Failure(t *testing.T) {
	fasta := writeFile(t, "bad.fa", "ACGT\n")

	code, _, stderr := runCLI(t, "faidx", fasta)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "failed to build index")
}

func TestRules(t *testing.T) {
	code, stdout, _ := runCLI(t, "rules")
	require.Equal(t, ExitSuccess, code)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Len(t, lines, len(rule.Catalogue)+1)
	assert.Contains(t, lines[0], "CODE")
	for _, id := range rule.Catalogue {
		assert.Contains(t, stdout, id.Name)
	}
}

func TestRules_Dump(t *testing.T) {
	code, stdout, _ := runCLI(t, "rules", "--dump")
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, rule.InsertionLength.Name+":")
}

func TestHistory(t *testing.T) {
	db := filepath.Join(t.TempDir(), "runs.duckdb")
	path := writeFile(t, "identical.vcf", identicalVCF)

	code, _, _ := runCLI(t, "validate", "--db", db, path)
	require.Equal(t, ExitSuccess, code)

	code, stdout, _ := runCLI(t, "history", "--db", db)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, path)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 2)
	runID := strings.Fields(lines[1])[0]

	code, stdout, _ = runCLI(t, "history", "show", "--db", db, runID)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, rule.IdenticalBases.Name)

	code, stdout, _ = runCLI(t, "history", "rules", "--db", db)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, rule.IdenticalBases.Name+"  1")

	code, _, _ = runCLI(t, "history", "clear", "--db", db)
	require.Equal(t, ExitSuccess, code)

	code, stdout, _ = runCLI(t, "history", "--db", db)
	require.Equal(t, ExitSuccess, code)
	assert.Contains(t, stdout, "No runs recorded.")
}

func TestHistory_RequiresDB(t *testing.T) {
	code, _, _ := runCLI(t, "history")
	assert.Equal(t, ExitUsage, code)
}

func TestConfigSetGet(t *testing.T) {
	viper.Reset()
	home := t.TempDir()
	t.Setenv("HOME", home)

	var out bytes.Buffer
	require.Equal(t, ExitSuccess, run([]string{"config", "set", "fail-on", "warning"}, &out, &out))
	_, err := os.Stat(filepath.Join(home, ".vibe-lint.yaml"))
	require.NoError(t, err)

	viper.Reset()
	out.Reset()
	require.Equal(t, ExitSuccess, run([]string{"config", "get", "fail-on"}, &out, &out))
	assert.Equal(t, "warning\n", out.String())

	// The stored value becomes the validate default.
	path := writeFile(t, "identical.vcf", identicalVCF)
	viper.Reset()
	out.Reset()
	assert.Equal(t, ExitError, run([]string{"validate", path}, &out, &out))
}

func TestConfigHelp_ListsKeys(t *testing.T) {
	code, stdout, _ := runCLI(t, "config", "--help")
	require.Equal(t, ExitSuccess, code)
	for _, key := range configKeys() {
		assert.Contains(t, stdout, key)
	}
}

func TestConfigSet_UnknownKey(t *testing.T) {
	code, _, stderr := runCLI(t, "config", "set", "colour", "red")
	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, stderr, `unknown config key "colour"`)

	_, err := os.Stat(filepath.Join(os.Getenv("HOME"), ".vibe-lint.yaml"))
	assert.True(t, os.IsNotExist(err))
}

func TestConfigSet_ValidateDefaults(t *testing.T) {
	viper.Reset()
	t.Setenv("HOME", t.TempDir())
	path := writeFile(t, "identical.vcf", identicalVCF)

	var out bytes.Buffer
	require.Equal(t, ExitSuccess, run([]string{"config", "set", "report-type", "json"}, &out, &out))
	viper.Reset()
	require.Equal(t, ExitSuccess, run([]string{"config", "set", "disable", rule.IdenticalBases.Code}, &out, &out))

	viper.Reset()
	var stdout bytes.Buffer
	require.Equal(t, ExitSuccess, run([]string{"validate", "--fail-on", "warning", path}, &stdout, &out))

	var doc map[string]any
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &doc))
	assert.Empty(t, doc["record"])
}

type closeErrWriter struct {
	bytes.Buffer
	err error
}

func (w *closeErrWriter) Close() error { return w.err }

func TestWriteAndClose(t *testing.T) {
	closeErr := errors.New("disk full")

	t.Run("close error surfaces", func(t *testing.T) {
		w := &closeErrWriter{err: closeErr}
		err := writeAndClose(w, func(out io.Writer) error {
			_, err := io.WriteString(out, "report")
			return err
		})
		require.ErrorIs(t, err, closeErr)
		assert.Contains(t, err.Error(), "close output file")
		assert.Equal(t, "report", w.String())
	})

	t.Run("write error wins", func(t *testing.T) {
		writeErr := errors.New("encode failed")
		err := writeAndClose(&closeErrWriter{err: closeErr}, func(io.Writer) error { return writeErr })
		assert.ErrorIs(t, err, writeErr)
		assert.NotErrorIs(t, err, closeErr)
	})

	t.Run("clean close", func(t *testing.T) {
		err := writeAndClose(&closeErrWriter{}, func(io.Writer) error { return nil })
		assert.NoError(t, err)
	})
}

func TestValidate_OutputWriteError(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	path := writeFile(t, "identical.vcf", identicalVCF)

	code, _, stderr := runCLI(t, "validate", "-o", "/dev/full", path)
	assert.Equal(t, ExitError, code)
	assert.Contains(t, stderr, "Error:")
}
