// Package refdata loads the display names of books and chapters for a
// reading version.
package refdata

import (
	"context"
	"errors"
	"strings"

	"github.com/abhisek/bibletrack/internal/bible"
)

// ErrUnavailable is returned when a version's data cannot be loaded.
var ErrUnavailable = errors.New("reference data unavailable")

// VersionData holds the display names for one reading version.
type VersionData struct {
	BookNames     map[string]string
	ChapterTitles map[string]map[int]string
}

// Provider loads reference data for a version.
type Provider interface {
	Load(ctx context.Context, version string) (*VersionData, error)
}

// CanonProvider serves the canon's own English book names for any version.
// It has no chapter titles.
type CanonProvider struct {
	Canon *bible.Canon
}

func (p CanonProvider) Load(_ context.Context, version string) (*VersionData, error) {
	if strings.TrimSpace(version) == "" {
		return nil, ErrUnavailable
	}
	data := &VersionData{
		BookNames:     make(map[string]string),
		ChapterTitles: make(map[string]map[int]string),
	}
	for _, b := range p.Canon.Books() {
		data.BookNames[b.ID] = b.Name
		data.ChapterTitles[b.ID] = map[int]string{}
	}
	return data, nil
}

// StaticProvider serves fixed data keyed by version.
type StaticProvider map[string]*VersionData

func (p StaticProvider) Load(_ context.Context, version string) (*VersionData, error) {
	if d, ok := p[version]; ok {
		return d, nil
	}
	return nil, ErrUnavailable
}
