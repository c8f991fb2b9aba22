package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/haiman1024/Contractus/internal/frontend"
	"github.com/haiman1024/Contractus/internal/parser"
)

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NoError(t, cfg.Validate())
	require.Equal(t, frontend.DefaultMaxSourceBytes, cfg.Limits.MaxSourceBytes)
	require.Equal(t, parser.DefaultMaxArrayRepeat, cfg.Limits.MaxArrayRepeat)
	require.Equal(t, FormatText, cfg.Output.Format)
	require.Equal(t, ColorAuto, cfg.Output.Color)
	require.Zero(t, cfg.Output.ContextLines)
}

func TestLoad(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		want    func(*Config)
	}{
		{
			name: "toml",
			file: "contractus.toml",
			content: `
[limits]
max_array_repeat = 16

[output]
format = "json"
context_lines = 2
`,
			want: func(c *Config) {
				c.Limits.MaxArrayRepeat = 16
				c.Output.Format = FormatJSON
				c.Output.ContextLines = 2
			},
		},
		{
			name: "yaml",
			file: "contractus.yaml",
			content: `
limits:
  max_source_bytes: 1024
output:
  color: never
`,
			want: func(c *Config) {
				c.Limits.MaxSourceBytes = 1024
				c.Output.Color = ColorNever
			},
		},
		{
			name:    "yml extension",
			file:    "contractus.yml",
			content: "output:\n  format: yaml\n",
			want: func(c *Config) {
				c.Output.Format = FormatYAML
			},
		},
		{
			name:    "empty yaml keeps defaults",
			file:    "empty.yaml",
			content: "",
			want:    func(*Config) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, t.TempDir(), tt.file, tt.content)
			cfg, err := Load(path)
			require.NoError(t, err)

			want := Default()
			tt.want(want)
			require.Equal(t, want, cfg)
		})
	}
}

func TestLoadErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		content string
		wantErr string
	}{
		{"unsupported extension", "contractus.json", "{}", "unsupported extension"},
		{"bad toml", "contractus.toml", "[limits\n", "parse config"},
		{"unknown yaml key", "contractus.yaml", "limits:\n  max_bytes: 3\n", "parse config"},
		{"unknown toml key", "contractus.toml", "[limits]\nmax_bytes = 3\n", "unknown key limits.max_bytes"},
		{"negative limit", "contractus.toml", "[limits]\nmax_source_bytes = -1\n", "limits.max_source_bytes"},
		{"zero repeat", "contractus.yaml", "limits:\n  max_array_repeat: 0\n", "limits.max_array_repeat"},
		{"bad format", "contractus.toml", "[output]\nformat = \"xml\"\n", "output.format"},
		{"bad color", "contractus.toml", "[output]\ncolor = \"sometimes\"\n", "output.color"},
		{"negative context", "contractus.yaml", "output:\n  context_lines: -1\n", "output.context_lines"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writeConfig(t, t.TempDir(), tt.file, tt.content)
			_, err := Load(path)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	t.Run("none", func(t *testing.T) {
		t.Parallel()

		cfg, path, err := Discover(t.TempDir())
		require.NoError(t, err)
		require.Empty(t, path)
		require.Equal(t, Default(), cfg)
	})

	t.Run("toml wins over yaml", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		want := writeConfig(t, dir, "contractus.toml", "[output]\nformat = \"json\"\n")
		writeConfig(t, dir, "contractus.yaml", "output:\n  format: yaml\n")

		cfg, path, err := Discover(dir)
		require.NoError(t, err)
		require.Equal(t, want, path)
		require.Equal(t, FormatJSON, cfg.Output.Format)
	})

	t.Run("invalid file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeConfig(t, dir, "contractus.yml", "output:\n  color: purple\n")

		_, path, err := Discover(dir)
		require.Error(t, err)
		require.Equal(t, filepath.Join(dir, "contractus.yml"), path)
	})
}
