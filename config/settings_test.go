package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("encoding: Windows 1252\nproxy: bone\ndir: ./skl\n"), 0644))

	s, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "Windows 1252", s.Encoding)
	assert.Equal(t, "bone", s.Proxy)
	assert.Equal(t, "./skl", s.Dir)
	assert.Equal(t, DefaultOutputSuffix, s.OutputSuffix)
	assert.Equal(t, DefaultRootName, s.RootName)
	assert.Equal(t, DefaultListen, s.Listen)
}

func TestLoadSettingsErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSettings(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("encoding: [1, 2\n"), 0644))
	_, err = LoadSettings(bad)
	assert.Error(t, err)

	unknown := filepath.Join(dir, "unknown.yaml")
	require.NoError(t, os.WriteFile(unknown, []byte("encoding: KOI-9000\n"), 0644))
	_, err = LoadSettings(unknown)
	assert.Error(t, err)
}

func TestFindEncoding(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8"} {
		enc, err := FindEncoding(name)
		assert.NoError(t, err, name)
		assert.Nil(t, enc, name)
	}

	enc, err := FindEncoding("windows 1252")
	require.NoError(t, err)
	assert.NotNil(t, enc)

	_, err = FindEncoding("nope")
	assert.Error(t, err)

	assert.Contains(t, ListEncodings(), DefaultEncoding)
}
