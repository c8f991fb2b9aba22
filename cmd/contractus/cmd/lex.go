package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/haiman1024/Contractus/internal/config"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/frontend"
	"github.com/haiman1024/Contractus/internal/lexer"
)

func newLexCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lex FILE",
		Short: "Print the token stream of a source file",
		Long: `Print one token per line as "line:col TYPE raw".
Use "-" as FILE to read standard input.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			name, src, diags, err := s.readSource(cmd, args[0])
			if err != nil {
				return err
			}

			var tokens []lexer.Token
			if diags == nil {
				start := time.Now()
				tokens, diags = frontend.Tokenize(src, s.frontendOptions(name)...)
				s.log.Debug("lexed file", "file", name, "tokens", len(tokens), "errors", len(diags), "elapsed", time.Since(start))
			}

			if s.cfg.Output.Format != config.FormatText {
				file := FileReport{Path: name, OK: !diag.HasErrors(diags), Tokens: tokenRecords(tokens), Diagnostics: diags}
				if err := encodeReport(s.stdout, s.cfg.Output.Format, Report{RunID: uuid.NewString(), Files: []FileReport{file}}); err != nil {
					return err
				}
				if diag.HasErrors(diags) {
					return ErrDiagnostics
				}
				return nil
			}

			if len(diags) > 0 {
				if err := s.printDiagnostics(map[string]string{name: src}, diags); err != nil {
					return err
				}
			}
			for _, tok := range tokens {
				if tok.Raw == "" {
					fmt.Fprintf(s.stdout, "%d:%d %s\n", tok.Span.Line, tok.Span.Column, tok.Type)
					continue
				}
				fmt.Fprintf(s.stdout, "%d:%d %s %s\n", tok.Span.Line, tok.Span.Column, tok.Type, tok.Raw)
			}
			return nil
		},
	}
}

func tokenRecords(tokens []lexer.Token) []TokenRecord {
	records := make([]TokenRecord, len(tokens))
	for i, tok := range tokens {
		records[i] = TokenRecord{
			Type:   string(tok.Type),
			Raw:    tok.Raw,
			Line:   tok.Span.Line,
			Column: tok.Span.Column,
		}
	}
	return records
}

// printDiagnostics renders diags as text on stderr. It returns ErrDiagnostics
// when any of them is an error.
func (s *session) printDiagnostics(sources map[string]string, diags []diag.Diagnostic) error {
	f := s.formatter(s.stderr)
	for name, src := range sources {
		f.AddSource(name, src)
	}
	f.FormatAll(diags)
	if diag.HasErrors(diags) {
		return ErrDiagnostics
	}
	return nil
}
