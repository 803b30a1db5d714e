package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Config
		wantErr bool
	}{
		{
			name:  "empty file keeps defaults",
			input: "",
			want:  Default(),
		},
		{
			name:  "partial override",
			input: "cache_capacity: 64\nlocale: fr\n",
			want: func() Config {
				c := Default()
				c.CacheCapacity = 64
				c.Locale = "fr"
				return c
			}(),
		},
		{
			name:  "timeout as duration",
			input: "timeout: 30s\n",
			want: func() Config {
				c := Default()
				c.Timeout = 30 * time.Second
				return c
			}(),
		},
		{name: "unknown key", input: "colour: red\n", wantErr: true},
		{name: "negative capacity", input: "cache_capacity: -1\n", wantErr: true},
		{name: "invalid locale", input: "locale: \"not a locale!\"\n", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")

	want := Default()
	want.Locale = "fr-CA"
	want.HelpURL = "https://example.org/help"
	require.NoError(t, Write(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	lang, err := got.Language()
	require.NoError(t, err)
	assert.Equal(t, language.MustParse("fr-CA"), lang)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoad_DefaultPathIsOptional(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	got, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), got)
}
