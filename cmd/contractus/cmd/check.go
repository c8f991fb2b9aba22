package cmd

import (
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/haiman1024/Contractus/internal/ast"
	"github.com/haiman1024/Contractus/internal/config"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/frontend"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var jobs int

	checkCmd := &cobra.Command{
		Use:   "check FILE...",
		Short: "Lex and parse files concurrently and report every error",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}
			if jobs < 1 {
				jobs = runtime.GOMAXPROCS(0)
			}

			report := Report{RunID: uuid.NewString(), Files: make([]FileReport, len(args))}
			sources := make([]string, len(args))

			g, ctx := errgroup.WithContext(cmd.Context())
			g.SetLimit(jobs)
			for i, path := range args {
				g.Go(func() error {
					if err := ctx.Err(); err != nil {
						return err
					}
					name, src, diags, err := s.readSource(cmd, path)
					if err != nil {
						return err
					}

					start := time.Now()
					var program *ast.Program
					if diags == nil {
						program, diags = frontend.Parse(src, s.frontendOptions(name)...)
					}
					file := FileReport{Path: name, OK: !diag.HasErrors(diags), Diagnostics: diags}
					if program != nil {
						file.Items = len(program.Items)
					}
					s.log.Debug("checked file", "file", name, "items", file.Items, "errors", len(diags), "elapsed", time.Since(start))

					report.Files[i] = file
					sources[i] = src
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			s.log.Debug("check finished", "run", report.RunID, "files", len(args), "failed", report.Failed())

			if s.cfg.Output.Format != config.FormatText {
				if err := encodeReport(s.stdout, s.cfg.Output.Format, report); err != nil {
					return err
				}
			} else {
				printCheckText(s, report, sources)
			}

			if report.Failed() > 0 {
				return ErrDiagnostics
			}
			return nil
		},
	}

	checkCmd.Flags().IntVarP(&jobs, "jobs", "j", 0, "files checked in parallel (default: GOMAXPROCS)")
	return checkCmd
}

func printCheckText(s *session, report Report, sources []string) {
	f := s.formatter(s.stderr)
	var all []diag.Diagnostic
	for i, file := range report.Files {
		f.AddSource(file.Path, sources[i])
		all = append(all, file.Diagnostics...)
	}
	f.FormatAll(all)

	failed := report.Failed()
	if failed == 0 {
		fmt.Fprintf(s.stdout, "checked %d file(s): ok\n", len(report.Files))
		return
	}
	fmt.Fprintf(s.stdout, "checked %d file(s): %d with errors, %d diagnostic(s)\n", len(report.Files), failed, len(all))
}
