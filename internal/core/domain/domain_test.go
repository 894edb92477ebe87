package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/precache/internal/core/domain"
)

func TestLimits_Accept(t *testing.T) {
	limits := domain.DefaultLimits()

	tests := []struct {
		name  string
		bytes int64
		files int
		want  bool
	}{
		{name: "empty group", bytes: 0, files: 0, want: true},
		{name: "well under", bytes: 3000, files: 2, want: true},
		{name: "exactly at byte ceiling", bytes: 1024 * 1024, files: 1, want: true},
		{name: "one byte over", bytes: 1024*1024 + 1, files: 1, want: false},
		{name: "exactly at file ceiling", bytes: 10, files: 100, want: true},
		{name: "one file over", bytes: 10, files: 101, want: false},
		{name: "both over", bytes: 2 * 1024 * 1024, files: 500, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, limits.Accept(tt.bytes, tt.files))
		})
	}
}

func TestLimits_Accept_Custom(t *testing.T) {
	limits := domain.Limits{MaxBytes: 10, MaxFiles: 1}

	assert.True(t, limits.Accept(10, 1))
	assert.False(t, limits.Accept(11, 1))
	assert.False(t, limits.Accept(10, 2))
}

func TestDefaultConfig(t *testing.T) {
	root := t.TempDir()
	cfg := domain.DefaultConfig(root)

	assert.Equal(t, root, cfg.Root)
	assert.Equal(t, filepath.Join(root, "app"), cfg.DevDir)
	assert.Equal(t, filepath.Join(root, "dist"), cfg.DistDir)
	assert.Equal(t, filepath.Join(root, "service-worker-helpers"), cfg.HelpersDir)
	assert.Equal(t, filepath.Join(root, "service-worker-helpers", "service-worker.tmpl"), cfg.Template)
	assert.Equal(t, filepath.Join(root, "dist", "service-worker.js"), cfg.OutputPath())
	assert.Equal(t, filepath.Join(root, "app", "service-worker-helpers"), cfg.HelpersTarget())
	assert.Equal(t, "<%= cacheOptions %>", cfg.Placeholder)
	assert.Equal(t, domain.DefaultLimits(), cfg.Limits)

	require.Len(t, cfg.Groups, 4)
	assert.Equal(t, domain.FileGroup{Name: "css", Pattern: "css/**.css"}, cfg.Groups[0])
	assert.Equal(t, domain.FileGroup{Name: "images", Pattern: "images/**.*"}, cfg.Groups[2])
}

func TestConfig_SortedGroups(t *testing.T) {
	cfg := domain.Config{
		Groups: []domain.FileGroup{
			{Name: "js", Pattern: "js/*.js"},
			{Name: "css", Pattern: "css/*.css"},
			{Name: "fonts", Pattern: "fonts/*"},
		},
	}

	sorted := cfg.SortedGroups()

	require.Len(t, sorted, 3)
	assert.Equal(t, "css", sorted[0].Name)
	assert.Equal(t, "fonts", sorted[1].Name)
	assert.Equal(t, "js", sorted[2].Name)
	// The config itself is left untouched.
	assert.Equal(t, "js", cfg.Groups[0].Name)
}

func TestNewManifest(t *testing.T) {
	results := []domain.GroupResult{
		{
			Name:        "js",
			Fingerprint: "bbb",
			Files: []domain.ResolvedFile{
				{RelPath: "js/z.js"},
				{RelPath: "js/a.js"},
			},
			Accepted: true,
		},
		{
			Name:        "images",
			Fingerprint: "ccc",
			Files:       []domain.ResolvedFile{{RelPath: "images/big.png"}},
			Accepted:    false,
		},
		{
			Name:        "css",
			Fingerprint: "aaa",
			Files:       []domain.ResolvedFile{{RelPath: "css/site.css"}},
			Accepted:    true,
		},
	}

	m := domain.NewManifest(results)

	assert.Equal(t, []string{"css", "js"}, m.Names())

	js, ok := m.Entry("js")
	require.True(t, ok)
	assert.Equal(t, "bbb", js.Fingerprint)
	assert.Equal(t, []string{"js/a.js", "js/z.js"}, js.Paths)

	_, ok = m.Entry("images")
	assert.False(t, ok)
}

func TestNewManifest_EmptyGroupKeepsEmptyPaths(t *testing.T) {
	m := domain.NewManifest([]domain.GroupResult{
		{Name: "fonts", Fingerprint: "d41d8cd98f00b204e9800998ecf8427e", Accepted: true},
	})

	entry, ok := m.Entry("fonts")
	require.True(t, ok)
	assert.NotNil(t, entry.Paths)
	assert.Empty(t, entry.Paths)
}

func TestGroupResult_RelPaths(t *testing.T) {
	r := domain.GroupResult{
		Files: []domain.ResolvedFile{
			{RelPath: "b.html"},
			{RelPath: "a.html"},
		},
	}

	assert.Equal(t, 2, r.FileCount())
	assert.Equal(t, []string{"b.html", "a.html"}, r.RelPaths())
}
