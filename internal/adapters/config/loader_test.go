package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/precache/internal/adapters/config"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()

	path := filepath.Join(dir, domain.ConfigFileName)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func newLoader(t *testing.T) *config.Loader {
	t.Helper()

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	return config.NewLoader(mockLogger)
}

func TestLoad_NoConfigUsesDefaults(t *testing.T) {
	tmpDir := t.TempDir()

	cfg, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, domain.DefaultConfig(tmpDir), cfg)
}

func TestLoad_FullConfig(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
version: "1"
devDir: src
distDir: build/public
helpersDir: sw
template: sw/worker.tmpl
output: sw.js
placeholder: "/* MANIFEST */"
limits:
  maxBytes: 2048
  maxFiles: 5
groups:
  js: "js/**/*.js"
  fonts: "fonts/*.woff2"
copyIgnore:
  - "*.map"
  - node_modules
`)

	cfg, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, tmpDir, cfg.Root)
	assert.Equal(t, filepath.Join(tmpDir, "src"), cfg.DevDir)
	assert.Equal(t, filepath.Join(tmpDir, "build", "public"), cfg.DistDir)
	assert.Equal(t, filepath.Join(tmpDir, "sw"), cfg.HelpersDir)
	assert.Equal(t, filepath.Join(tmpDir, "sw", "worker.tmpl"), cfg.Template)
	assert.Equal(t, filepath.Join(tmpDir, "build", "public", "sw.js"), cfg.OutputPath())
	assert.Equal(t, filepath.Join(tmpDir, "src", "sw"), cfg.HelpersTarget())
	assert.Equal(t, "/* MANIFEST */", cfg.Placeholder)
	assert.Equal(t, domain.Limits{MaxBytes: 2048, MaxFiles: 5}, cfg.Limits)
	assert.Equal(t, []domain.FileGroup{
		{Name: "fonts", Pattern: "fonts/*.woff2"},
		{Name: "js", Pattern: "js/**/*.js"},
	}, cfg.Groups)
	assert.Equal(t, domain.MirrorOptions{
		Ignore: []string{"*.map", "node_modules"},
		Keep:   []string{"sw.js"},
	}, cfg.MirrorOptions())
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
version: "1"
helpersDir: worker
limits:
  maxFiles: 10
`)

	cfg, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmpDir, "app"), cfg.DevDir)
	assert.Equal(t, filepath.Join(tmpDir, "worker", "service-worker.tmpl"), cfg.Template)
	assert.Equal(t, domain.Limits{MaxBytes: domain.DefaultMaxBytes, MaxFiles: 10}, cfg.Limits)
	assert.Equal(t, domain.DefaultGroups(), cfg.Groups)
	assert.Equal(t, domain.DefaultPlaceholder, cfg.Placeholder)
}

func TestLoad_EmptyGroupsMap(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
version: "1"
groups: {}
`)

	cfg, err := newLoader(t).Load(tmpDir)
	require.NoError(t, err)
	assert.Empty(t, cfg.Groups)
}

func TestLoad_Discovery(t *testing.T) {
	// root/
	//   precache.yaml
	//   app/
	//     css/ (cwd for test)
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `
version: "1"
distDir: out
`)
	deep := filepath.Join(tmpDir, "app", "css")
	require.NoError(t, os.MkdirAll(deep, 0o750))

	loader := newLoader(t)

	cfg, err := loader.Load(deep)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, cfg.Root)
	assert.Equal(t, filepath.Join(tmpDir, "out"), cfg.DistDir)

	root, err := loader.DiscoverRoot(deep)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, root)
}

func TestDiscoverRoot_NoConfig(t *testing.T) {
	tmpDir := t.TempDir()

	root, err := newLoader(t).DiscoverRoot(tmpDir)
	require.NoError(t, err)
	assert.Equal(t, tmpDir, root)
}

func TestLoadFile_ExplicitPath(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1\"\ndistDir: public\n"), 0o600))

	cfg, err := newLoader(t).LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(tmpDir, "public"), cfg.DistDir)
}

func TestLoad_UnsupportedVersionWarns(t *testing.T) {
	tmpDir := t.TempDir()
	writeConfig(t, tmpDir, `version: "2"`)

	ctrl := gomock.NewController(t)
	mockLogger := mocks.NewMockLogger(ctrl)
	mockLogger.EXPECT().Warn(gomock.Any()).Times(1)

	_, err := config.NewLoader(mockLogger).Load(tmpDir)
	require.NoError(t, err)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantErr    error
		validation bool
	}{
		{
			name:       "malformed yaml",
			content:    "groups: [unterminated",
			wantErr:    domain.ErrConfigParseFailed,
		},
		{
			name:       "duplicate group key",
			content:    "groups:\n  css: \"*.css\"\n  css: \"**/*.css\"\n",
			wantErr:    domain.ErrConfigParseFailed,
		},
		{
			name:       "negative max bytes",
			content:    "limits:\n  maxBytes: -1\n",
			wantErr:    domain.ErrInvalidLimits,
			validation: true,
		},
		{
			name:       "negative max files",
			content:    "limits:\n  maxFiles: -5\n",
			wantErr:    domain.ErrInvalidLimits,
			validation: true,
		},
		{
			name:       "invalid pattern",
			content:    "groups:\n  css: \"css/[\"\n",
			wantErr:    domain.ErrInvalidPattern,
			validation: true,
		},
		{
			name:       "empty pattern",
			content:    "groups:\n  css: \"\"\n",
			wantErr:    domain.ErrInvalidPattern,
			validation: true,
		},
		{
			name:       "invalid group name",
			content:    "groups:\n  \"css/extra\": \"*.css\"\n",
			wantErr:    domain.ErrInvalidGroupName,
			validation: true,
		},
		{
			name:       "output outside dist",
			content:    "output: ../escape.js\n",
			wantErr:    domain.ErrInvalidOutput,
			validation: true,
		},
		{
			name:       "copy ignore with a path",
			content:    "copyIgnore:\n  - \"js/*.map\"\n",
			wantErr:    domain.ErrInvalidPattern,
			validation: true,
		},
		{
			name:       "malformed copy ignore",
			content:    "copyIgnore:\n  - \"[\"\n",
			wantErr:    domain.ErrInvalidPattern,
			validation: true,
		},
		{
			name:       "absolute output",
			content:    "output: /tmp/sw.js\n",
			wantErr:    domain.ErrInvalidOutput,
			validation: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			path := writeConfig(t, tmpDir, tt.content)

			_, err := newLoader(t).Load(tmpDir)
			require.ErrorIs(t, err, tt.wantErr)

			if tt.validation {
				zErr, ok := err.(*zerr.Error)
				require.True(t, ok, "expected *zerr.Error, got %T", err)
				assert.Equal(t, path, zErr.Metadata()["config"])
			}
		})
	}
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := newLoader(t).LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.ErrorIs(t, err, domain.ErrConfigReadFailed)
}
