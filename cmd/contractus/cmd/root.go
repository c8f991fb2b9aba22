// Package cmd implements the contractus command line.
package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/haiman1024/Contractus/internal/config"
	"github.com/haiman1024/Contractus/internal/diag"
	"github.com/haiman1024/Contractus/internal/frontend"
)

// ErrDiagnostics is returned by a command that reported at least one
// diagnostic. The diagnostics themselves have already been printed.
var ErrDiagnostics = errors.New("diagnostics reported")

type rootOptions struct {
	cfgFile string
	verbose bool
	format  string
	color   string
}

// NewRootCmd builds the command tree. Every call returns independent state.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "contractus",
		Short: "Contractus language front end",
		Long: `contractus lexes and parses Contractus source files and reports
every lexical and syntax error it finds.

Commands:
  lex      - print the token stream of a file
  parse    - print the syntax tree of a file
  check    - check many files concurrently
  lsp      - run the language server on stdio
  version  - print build information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&opts.cfgFile, "config", "", "config file (default: contractus.toml, .yaml or .yml in the working directory)")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "verbose logging on stderr")
	flags.StringVar(&opts.format, "format", "", "output format: text, json or yaml")
	flags.StringVar(&opts.color, "color", "", "color mode: auto, always or never")

	rootCmd.AddCommand(
		newLexCmd(opts),
		newParseCmd(opts),
		newCheckCmd(opts),
		newLSPCmd(opts),
		newVersionCmd(),
	)
	return rootCmd
}

// Execute runs the command line against os.Args.
func Execute() error {
	err := NewRootCmd().Execute()
	if err != nil && !errors.Is(err, ErrDiagnostics) {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
	}
	return err
}

// session is the resolved configuration shared by one command invocation.
type session struct {
	cfg    *config.Config
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer
}

func (o *rootOptions) session(cmd *cobra.Command) (*session, error) {
	level := slog.LevelWarn
	if o.verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

	cfg, path, err := o.loadConfig()
	if err != nil {
		return nil, err
	}
	if path != "" {
		log.Debug("loaded config", "path", path)
	}

	if o.format != "" {
		cfg.Output.Format = o.format
	}
	if o.color != "" {
		cfg.Output.Color = o.color
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}

	return &session{
		cfg:    cfg,
		log:    log,
		stdout: cmd.OutOrStdout(),
		stderr: cmd.ErrOrStderr(),
	}, nil
}

func (o *rootOptions) loadConfig() (*config.Config, string, error) {
	if o.cfgFile != "" {
		cfg, err := config.Load(o.cfgFile)
		if err != nil {
			return nil, "", err
		}
		return cfg, o.cfgFile, nil
	}

	wd, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("get working directory: %w", err)
	}
	return config.Discover(wd)
}

func (s *session) frontendOptions(filename string) []frontend.Option {
	return []frontend.Option{
		frontend.WithFilename(filename),
		frontend.WithMaxSourceBytes(s.cfg.Limits.MaxSourceBytes),
		frontend.WithMaxArrayRepeat(s.cfg.Limits.MaxArrayRepeat),
	}
}

func (s *session) formatter(w io.Writer) *diag.Formatter {
	return diag.NewFormatter(w,
		diag.WithColor(diag.ColorMode(s.cfg.Output.Color)),
		diag.WithContextLines(s.cfg.Output.ContextLines),
	)
}

// readSource reads path, or standard input when path is "-". An input over
// the configured size limit is not loaded; it comes back as a diagnostic
// with empty text.
func (s *session) readSource(cmd *cobra.Command, path string) (string, string, []diag.Diagnostic, error) {
	limit := s.cfg.Limits.MaxSourceBytes

	name := path
	var r io.Reader
	if path == "-" {
		name = "<stdin>"
		r = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return "", "", nil, fmt.Errorf("read source: %w", err)
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			return "", "", nil, fmt.Errorf("read source: %w", err)
		}
		if limit > 0 && info.Mode().IsRegular() && info.Size() > int64(limit) {
			return name, "", []diag.Diagnostic{frontend.InputTooLarge(name, info.Size(), limit)}, nil
		}
		r = f
	}

	if limit > 0 {
		r = io.LimitReader(r, int64(limit)+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", "", nil, fmt.Errorf("read source %s: %w", name, err)
	}
	if limit > 0 && len(data) > limit {
		return name, "", []diag.Diagnostic{frontend.InputTooLarge(name, -1, limit)}, nil
	}
	return name, string(data), nil, nil
}
