package cmd

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/config"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/frontend"
)

func newParseCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "parse FILE",
		Short: "Print the syntax tree of a source file",
		Long: `Parse FILE and print its syntax tree as an S-expression.
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

			var program *ast.Program
			if diags == nil {
				start := time.Now()
				program, diags = frontend.Parse(src, s.frontendOptions(name)...)
				s.log.Debug("parsed file", "file", name, "errors", len(diags), "elapsed", time.Since(start))
			}
			items := 0
			if program != nil {
				items = len(program.Items)
			}

			if s.cfg.Output.Format != config.FormatText {
				file := FileReport{Path: name, OK: !diag.HasErrors(diags), Items: items, Diagnostics: diags}
				if program != nil {
					file.AST = ast.Sprint(program)
				}
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
			if program != nil {
				fmt.Fprintln(s.stdout, ast.Sprint(program))
			}
			return nil
		},
	}
}
