package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLexPrintsTokens(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "main.ctr", "let x = 1;")
	stdout, _, err := execute(t, "lex", path)
	require.NoError(t, err)

	require.Equal(t, []string{
		"1:1 LET let",
		"1:5 IDENT x",
		"1:7 = =",
		"1:9 INT 1",
		"1:10 ; ;",
		"1:11 EOF",
	}, strings.Split(strings.TrimSpace(stdout), "\n"))
}

func TestLexReportsErrors(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "bad.ctr", "let @ = 1;")
	stdout, stderr, err := execute(t, "lex", path, "--color", "never")
	require.ErrorIs(t, err, ErrDiagnostics)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "error[LEXER_UNEXPECTED_CHARACTER]")
	require.Contains(t, stderr, "let @ = 1;")
}

func TestParsePrintsTree(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "main.ctr", "fn main() { let x = 1 + 2 * 3; }")
	stdout, _, err := execute(t, "parse", path)
	require.NoError(t, err)
	require.Equal(t, "(program (fn main (params) (block (let x = (Add 1 (Mul 2 3))))))\n", stdout)
}

func TestParseReportsAllErrors(t *testing.T) {
	t.Parallel()

	src := "fn a() { let = 1; }\nfn b() { break; }\n"
	path := writeFile(t, t.TempDir(), "bad.ctr", src)
	_, stderr, err := execute(t, "parse", path, "--color", "never")
	require.ErrorIs(t, err, ErrDiagnostics)
	require.Contains(t, stderr, "error[PARSE_EXPECTED_PATTERN]")
	require.Contains(t, stderr, "error[PARSE_BREAK_OUTSIDE_LOOP]")
	require.Contains(t, stderr, "= help: `break` can only be used inside `while` or `for` loops")
}

func TestCheckJSONReport(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	good := writeFile(t, dir, "good.ctr", "fn main() {}")
	bad := writeFile(t, dir, "bad.ctr", "fn main() { x = ; }")

	stdout, _, err := execute(t, "check", "--format", "json", "-j", "2", good, bad)
	require.ErrorIs(t, err, ErrDiagnostics)

	var report Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.NotEmpty(t, report.RunID)
	require.Len(t, report.Files, 2)

	require.Equal(t, good, report.Files[0].Path)
	require.True(t, report.Files[0].OK)
	require.Equal(t, 1, report.Files[0].Items)

	require.Equal(t, bad, report.Files[1].Path)
	require.False(t, report.Files[1].OK)
	require.Len(t, report.Files[1].Diagnostics, 1)
	require.Equal(t, "PARSE_EXPECTED_EXPRESSION", string(report.Files[1].Diagnostics[0].Code))
	require.Equal(t, 1, report.Failed())
}

func TestCheckYAMLReport(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "ok.ctr", "struct Point { x: i32, y: i32 }")
	stdout, _, err := execute(t, "check", "--format", "yaml", path)
	require.NoError(t, err)

	var report Report
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Files, 1)
	require.True(t, report.Files[0].OK)
}

func TestCheckTextSummary(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	a := writeFile(t, dir, "a.ctr", "fn a() {}")
	b := writeFile(t, dir, "b.ctr", "const N: i32 = 4;")

	stdout, stderr, err := execute(t, "check", a, b)
	require.NoError(t, err)
	require.Empty(t, stderr)
	require.Equal(t, "checked 2 file(s): ok\n", stdout)
}

func TestCheckMissingFile(t *testing.T) {
	t.Parallel()

	_, _, err := execute(t, "check", filepath.Join(t.TempDir(), "missing.ctr"))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrDiagnostics)
	require.Contains(t, err.Error(), "read source")
}

func TestConfigLimitsApply(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeFile(t, dir, "contractus.toml", "[limits]\nmax_array_repeat = 4\n")
	path := writeFile(t, dir, "main.ctr", "fn main() { let a = [0; 5]; }")

	_, stderr, err := execute(t, "parse", "--config", cfg, "--color", "never", path)
	require.ErrorIs(t, err, ErrDiagnostics)
	require.Contains(t, stderr, "array repetition count 5 exceeds limit 4")
}

func TestInvalidFlagValue(t *testing.T) {
	t.Parallel()

	path := writeFile(t, t.TempDir(), "main.ctr", "fn main() {}")
	_, _, err := execute(t, "parse", "--format", "xml", path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "output.format")
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)
	require.Contains(t, stdout, "contractus v"+Version)
}

func TestLSPServesStdio(t *testing.T) {
	t.Parallel()

	body := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`
	exit := `{"jsonrpc":"2.0","method":"exit"}`
	input := fmt.Sprintf("Content-Length: %d\r\n\r\n%sContent-Length: %d\r\n\r\n%s", len(body), body, len(exit), exit)

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetIn(strings.NewReader(input))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"lsp"})
	require.NoError(t, root.Execute())

	out := stdout.String()
	require.True(t, strings.HasPrefix(out, "Content-Length: "), out)
	require.Contains(t, out, `"name":"contractus-lsp"`)
	require.Contains(t, out, `"version":"`+Version+`"`)
}

func TestOversizedInputIsRejectedBeforeReading(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := writeFile(t, dir, "contractus.toml", "[limits]\nmax_source_bytes = 50\n")
	path := writeFile(t, dir, "big.ctr", "fn main() {}\n"+strings.Repeat("// padding\n", 8))

	stdout, stderr, err := execute(t, "parse", "--config", cfg, "--color", "never", path)
	require.ErrorIs(t, err, ErrDiagnostics)
	require.Empty(t, stdout)
	require.Contains(t, stderr, "error[INPUT_TOO_LARGE]")
	require.Contains(t, stderr, "source is 101 bytes, larger than the limit of 50 bytes")

	stdout, _, err = execute(t, "check", "--config", cfg, "--format", "json", path)
	require.ErrorIs(t, err, ErrDiagnostics)
	var report Report
	require.NoError(t, json.Unmarshal([]byte(stdout), &report))
	require.Len(t, report.Files, 1)
	require.False(t, report.Files[0].OK)
	require.Equal(t, "INPUT_TOO_LARGE", string(report.Files[0].Diagnostics[0].Code))
}

func TestOversizedStdinStopsAtLimit(t *testing.T) {
	t.Parallel()

	cfg := writeFile(t, t.TempDir(), "contractus.toml", "[limits]\nmax_source_bytes = 50\n")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetIn(strings.NewReader(strings.Repeat("x ", 100)))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"lex", "--config", cfg, "--color", "never", "-"})
	require.ErrorIs(t, root.Execute(), ErrDiagnostics)
	require.Empty(t, stdout.String())
	require.Contains(t, stderr.String(), "source is larger than the limit of 50 bytes")
}
