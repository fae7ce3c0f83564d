package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akeil/nebotool/pkg/ink"
)

func TestLoadSettingsMissing(t *testing.T) {
	s, err := loadSettings(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultSettings(), s)
}

func TestLoadSettings(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	data := "format: png\njobs: 2\nalpha: preserve\n"
	require.NoError(t, os.WriteFile(p, []byte(data), 0644))

	s, err := loadSettings(p)
	require.NoError(t, err)
	assert.Equal(t, "png", s.Format)
	assert.Equal(t, 2, s.Jobs)
	assert.Equal(t, ink.DefaultScale, s.Scale)

	opts, err := s.options()
	require.NoError(t, err)
	assert.Equal(t, ink.AlphaPreserve, opts.Alpha)

	s.override(settings{Format: "archive", Scale: 3})
	assert.Equal(t, "archive", s.Format)
	assert.Equal(t, 3.0, s.Scale)
	assert.Equal(t, 2, s.Jobs)
}

func TestLoadSettingsInvalid(t *testing.T) {
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("jobs: 0\n"), 0644))
	_, err := loadSettings(p)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(p, []byte("alpha: sometimes\n"), 0644))
	_, err = loadSettings(p)
	assert.Error(t, err)
}
