package cmd

import (
	"github.com/spf13/cobra"

	"github.com/haiman1024/Contractus/internal/frontend"
	"github.com/haiman1024/Contractus/internal/lsp"
)

func newLSPCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "lsp",
		Short: "Run the language server over standard input and output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := opts.session(cmd)
			if err != nil {
				return err
			}

			server := lsp.NewServer(
				lsp.WithLogger(s.log),
				lsp.WithVersion(Version),
				lsp.WithFrontendOptions(
					frontend.WithMaxSourceBytes(s.cfg.Limits.MaxSourceBytes),
					frontend.WithMaxArrayRepeat(s.cfg.Limits.MaxArrayRepeat),
				),
			)
			s.log.Info("language server starting", "version", Version)
			return server.Run(cmd.Context(), cmd.InOrStdin(), s.stdout)
		},
	}
}
