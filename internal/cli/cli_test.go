package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"project.hcl"}, &out)

	require.NoError(t, err)
	assert.False(t, shouldExit)
	assert.Equal(t, "project.hcl", cfg.ProjectPath)
	assert.Equal(t, "json", cfg.Output)
	assert.False(t, cfg.Execute)
	assert.Equal(t, 4, cfg.Workers)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestParse_ProjectFlagVariants(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		args []string
	}{
		{name: "long flag", args: []string{"--project", "adaa.hcl"}},
		{name: "shorthand flag", args: []string{"-p", "adaa.hcl"}},
		{name: "positional argument", args: []string{"adaa.hcl"}},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			cfg, shouldExit, err := Parse(tc.args, &out)
			require.NoError(t, err)
			assert.False(t, shouldExit)
			assert.Equal(t, "adaa.hcl", cfg.ProjectPath)
		})
	}
}

func TestParse_ExecuteAndOutput(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, _, err := Parse([]string{"--execute", "--workers", "8", "--output", "yaml", "adaa.hcl"}, &out)

	require.NoError(t, err)
	assert.True(t, cfg.Execute)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestParse_NoPathPrintsUsage(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse(nil, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "Usage:")
}

func TestParse_InvalidValues(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		args    []string
		wantMsg string
	}{
		{
			name:    "bad output format",
			args:    []string{"--output", "toml", "adaa.hcl"},
			wantMsg: "invalid output",
		},
		{
			name:    "bad log format",
			args:    []string{"--log-format", "xml", "adaa.hcl"},
			wantMsg: "invalid log-format",
		},
		{
			name:    "bad log level",
			args:    []string{"--log-level", "verbose", "adaa.hcl"},
			wantMsg: "invalid log-level",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			_, _, err := Parse(tc.args, &out)
			require.Error(t, err)

			exitErr, ok := err.(*ExitError)
			require.True(t, ok, "error should be an *ExitError")
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tc.wantMsg)
		})
	}
}

func TestParse_HelpFlag(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	cfg, shouldExit, err := Parse([]string{"-h"}, &out)

	require.NoError(t, err)
	assert.True(t, shouldExit)
	assert.Nil(t, cfg)
	assert.Contains(t, out.String(), "PROJECT_PATH")
}
