package manifest_test

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/precache/internal/core/domain"
	"go.trai.ch/precache/internal/engine/manifest"
)

func TestSerialize(t *testing.T) {
	const empty = "d41d8cd98f00b204e9800998ecf8427e"

	tests := []struct {
		name       string
		manifest   domain.Manifest
		goldenName string
	}{
		{
			name:       "no entries",
			manifest:   domain.Manifest{},
			goldenName: "empty_manifest",
		},
		{
			name: "html characters are not escaped",
			manifest: domain.Manifest{Entries: []domain.ManifestEntry{
				{Name: "pages", Fingerprint: empty, Paths: []string{"a&b/<index>.html"}},
				{Name: "shell", Fingerprint: empty},
			}},
			goldenName: "unescaped_manifest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := manifest.Serialize(tt.manifest)
			require.NoError(t, err)

			g := goldie.New(t)
			g.Assert(t, tt.goldenName, data)
		})
	}
}

func TestSerialize_NoTrailingNewline(t *testing.T) {
	data, err := manifest.Serialize(domain.Manifest{Entries: []domain.ManifestEntry{
		{Name: "js", Fingerprint: "f", Paths: []string{"js/app.js"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, `[["js","f",["js/app.js"]]]`, string(data))
}
