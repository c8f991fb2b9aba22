package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/haiman1024/Contractus/internal/config"
	"github.com/haiman1024/Contractus/internal/diag"
)

// Report is the machine-readable result of a command run.
type Report struct {
	RunID string       `json:"run_id" yaml:"run_id"`
	Files []FileReport `json:"files" yaml:"files"`
}

// FileReport describes the outcome for one input file.
type FileReport struct {
	Path        string            `json:"path" yaml:"path"`
	OK          bool              `json:"ok" yaml:"ok"`
	Items       int               `json:"items" yaml:"items"`
	Tokens      []TokenRecord     `json:"tokens,omitempty" yaml:"tokens,omitempty"`
	AST         string            `json:"ast,omitempty" yaml:"ast,omitempty"`
	Diagnostics []diag.Diagnostic `json:"diagnostics,omitempty" yaml:"diagnostics,omitempty"`
}

// TokenRecord is one token as printed by `contractus lex`.
type TokenRecord struct {
	Type   string `json:"type" yaml:"type"`
	Raw    string `json:"raw,omitempty" yaml:"raw,omitempty"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
}

// Failed counts the files that reported diagnostics.
func (r Report) Failed() int {
	n := 0
	for _, f := range r.Files {
		if !f.OK {
			n++
		}
	}
	return n
}

func encodeReport(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode json report: %w", err)
		}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("encode yaml report: %w", err)
		}
	default:
		return fmt.Errorf("unsupported report format %q", format)
	}
	return nil
}
