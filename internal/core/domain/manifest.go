package domain

import (
	"slices"
	"strings"
)

// ManifestEntry describes one precached group.
type ManifestEntry struct {
	Name        string
	Fingerprint string
	Paths       []string
}

// Manifest is the ordered set of accepted groups embedded into the worker script.
type Manifest struct {
	Entries []ManifestEntry
}

// NewManifest assembles a manifest from evaluated groups.
// Rejected groups are dropped, entries are ordered by group name and each path list is sorted,
// so the result does not depend on the order of results or of files within them.
func NewManifest(results []GroupResult) Manifest {
	entries := make([]ManifestEntry, 0, len(results))
	for _, r := range results {
		if !r.Accepted {
			continue
		}
		paths := r.RelPaths()
		slices.Sort(paths)
		entries = append(entries, ManifestEntry{
			Name:        r.Name,
			Fingerprint: r.Fingerprint,
			Paths:       paths,
		})
	}

	slices.SortFunc(entries, func(a, b ManifestEntry) int {
		return strings.Compare(a.Name, b.Name)
	})

	return Manifest{Entries: entries}
}

// Names returns the group names in manifest order.
func (m Manifest) Names() []string {
	names := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		names[i] = e.Name
	}
	return names
}

// Entry returns the entry for the named group.
func (m Manifest) Entry(name string) (ManifestEntry, bool) {
	for _, e := range m.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return ManifestEntry{}, false
}
