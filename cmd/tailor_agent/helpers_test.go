package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/tailor-agent/internal/config"
)

func TestParseLanguages(t *testing.T) {
	tests := []struct {
		name    string
		flag    string
		cfg     config.Config
		want    []string
		wantErr string
	}{
		{name: "default both", want: []string{"en", "de"}},
		{name: "config german only", cfg: config.Config{GenerateGerman: true}, want: []string{"de"}},
		{name: "flag wins", flag: "de, EN", cfg: config.Config{GenerateGerman: true}, want: []string{"de", "en"}},
		{name: "duplicates dropped", flag: "en,en", want: []string{"en"}},
		{name: "unsupported", flag: "fr", wantErr: `unsupported language "fr"`},
		{name: "only separators", flag: " , ", wantErr: "at least one language"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseLanguages(tt.flag, tt.cfg)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

const envTaxonomy = `
categories:
  - name: languages
    keywords:
      - term: golang
        display: Go
organizations: [Acme]
`

func TestLoadTaxonomy(t *testing.T) {
	defer func() { taxonomyPath = "" }()
	t.Setenv(envTaxonomyPath, "")

	tax, err := loadTaxonomy(nil)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTaxonomy().Categories, tax.Categories)

	taxonomyPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = loadTaxonomy(nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load taxonomy")
}

func TestLoadTaxonomy_FromEnvironment(t *testing.T) {
	defer func() { taxonomyPath = "" }()
	path := filepath.Join(t.TempDir(), "taxonomy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(envTaxonomy), 0644))
	t.Setenv(envTaxonomyPath, path)

	tax, err := loadTaxonomy(nil)
	require.NoError(t, err)
	require.Len(t, tax.Categories, 1)
	assert.Equal(t, []string{"Acme"}, tax.Organizations)

	// the flag wins over the environment
	taxonomyPath = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = loadTaxonomy(nil)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Setenv(envConfigPath, "")
	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, &config.Config{}, cfg)

	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"applicant": {"full_name": "Jane Doe", "email": "not-an-email"}}`), 0644))
	_, err = loadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid applicant")
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"output_dir": "from-env", "applicant": {"full_name": "Jane Doe"}}`), 0644))
	t.Setenv(envConfigPath, path)

	cfg, err := loadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.OutputDir)
	assert.Equal(t, "Jane Doe", cfg.Applicant.FullName)

	t.Setenv(envConfigPath, filepath.Join(t.TempDir(), "missing.json"))
	_, err = loadConfig("")
	assert.Error(t, err)
}
