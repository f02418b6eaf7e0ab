package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemo(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := newCommand(&stdout, &stderr)

	err := cmd.Run(context.Background(), []string{"bst", "--clean", "--log-level", "warn", "demo", "--workers", "2"})
	require.NoError(t, err)

	want := "Test 1 (integers): Passed\n" +
		"Test 2 (strings): Passed\n" +
		"Test 3 (clear): Passed\n" +
		"Test 4 (duplicates): Passed\n" +
		"Test 5 (empty): Passed\n" +
		"Test 6 (nil rejected): Passed\n"
	assert.Equal(t, want, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestLoadConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bst.toml")
	content := "[log]\nlevel = \"error\"\n\n[demo]\nworkers = 3\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	var stdout, stderr bytes.Buffer
	cmd := newCommand(&stdout, &stderr)
	err := cmd.Run(context.Background(), []string{"bst", "--config", path, "--log-level", "warn", "demo"})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "Test 1 (integers): Passed")
}

func TestLoadConfig_Invalid(t *testing.T) {
	tcs := []struct {
		name string
		args []string
	}{
		{name: "missing config file", args: []string{"bst", "--config", "nonexistent.toml", "demo"}},
		{name: "bad log level", args: []string{"bst", "--clean", "--log-level", "loud", "demo"}},
		{name: "zero workers", args: []string{"bst", "--clean", "demo", "--workers", "0"}},
		{name: "bad listen addr", args: []string{"bst", "--clean", "serve", "--listen-addr", "nowhere"}},
	}
	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			cmd := newCommand(&stdout, &stderr)
			err := cmd.Run(context.Background(), tc.args)
			assert.Error(t, err)
			assert.Empty(t, stdout.String())
		})
	}
}
