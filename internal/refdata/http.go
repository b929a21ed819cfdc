package refdata

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/hashicorp/go-hclog"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// CacheName is the fetch cache that holds version files.
const CacheName = "bible_versions"

// Fetcher is the cached fetch capability used to download version files.
type Fetcher interface {
	FetchAndCache(ctx context.Context, cacheName, path string) []byte
}

var versionPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,32}$`)

// versionSchema describes a version file.
const versionSchema = `{
	"type": "object",
	"required": ["book_names", "chapter_titles"],
	"properties": {
		"book_names": {
			"type": "object",
			"additionalProperties": {"type": "string"}
		},
		"chapter_titles": {
			"type": "object",
			"additionalProperties": {
				"type": "object",
				"propertyNames": {"pattern": "^[1-9][0-9]*$"},
				"additionalProperties": {"type": "string"}
			}
		}
	}
}`

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func versionFileSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		var def any
		if err := json.Unmarshal([]byte(versionSchema), &def); err != nil {
			compileErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		const url = "schema://version_file.json"
		if err := c.AddResource(url, def); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}
		compiled, compileErr = c.Compile(url)
	})
	return compiled, compileErr
}

// HTTPProvider downloads version files through a cached fetch.
type HTTPProvider struct {
	fetch Fetcher
	log   hclog.Logger
}

// NewHTTPProvider creates an HTTPProvider.
func NewHTTPProvider(fetch Fetcher, logger hclog.Logger) *HTTPProvider {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &HTTPProvider{fetch: fetch, log: logger}
}

// Path returns the asset path of a version file.
func Path(version string) string {
	return fmt.Sprintf("/_assets/optional/versions/%s.json", version)
}

func (p *HTTPProvider) Load(ctx context.Context, version string) (*VersionData, error) {
	if !versionPattern.MatchString(version) {
		return nil, ErrUnavailable
	}
	body := p.fetch.FetchAndCache(ctx, CacheName, Path(version))
	if body == nil {
		return nil, ErrUnavailable
	}
	data, err := parseVersionFile(body)
	if err != nil {
		p.log.Warn("invalid version file", "version", version, "error", err)
		return nil, ErrUnavailable
	}
	return data, nil
}

type versionFile struct {
	BookNames     map[string]string            `json:"book_names"`
	ChapterTitles map[string]map[string]string `json:"chapter_titles"`
}

func parseVersionFile(body []byte) (*VersionData, error) {
	var parsed any
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	schema, err := versionFileSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	if err := schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var vf versionFile
	if err := json.Unmarshal(body, &vf); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	data := &VersionData{
		BookNames:     vf.BookNames,
		ChapterTitles: make(map[string]map[int]string, len(vf.ChapterTitles)),
	}
	for book, titles := range vf.ChapterTitles {
		m := make(map[int]string, len(titles))
		for ch, title := range titles {
			n, err := strconv.Atoi(ch)
			if err != nil {
				return nil, fmt.Errorf("chapter %q of %s: %w", ch, book, err)
			}
			m[n] = title
		}
		data.ChapterTitles[book] = m
	}
	return data, nil
}
