package langcatalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Catalog sources.
const (
	SourceBundled  = "bundled"
	SourceLinguist = "linguist"
)

// Sentinel errors.
var (
	ErrUnknownSource  = errors.New("unknown catalog source")
	ErrInvalidDataset = errors.New("invalid language dataset")
)

//go:embed data/languages.json
var bundledDataset []byte

//go:embed data/schema.json
var datasetSchema []byte

// record is the on-disk shape of one language.
type record struct {
	Name       string   `json:"name"       yaml:"name"`
	Type       string   `json:"type"       yaml:"type"`
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// Load builds the catalog for source and, when overrideFile is set, loads the
// file's records on top so they win on shared extensions.
func Load(source, overrideFile string) (*Catalog, error) {
	var (
		entries []Entry
		err     error
	)

	switch source {
	case "", SourceBundled:
		entries, err = ParseJSON(bundledDataset)
		if err != nil {
			return nil, fmt.Errorf("bundled dataset: %w", err)
		}
	case SourceLinguist:
		entries = LinguistEntries()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSource, source)
	}

	if overrideFile != "" {
		extra, loadErr := LoadFile(overrideFile)
		if loadErr != nil {
			return nil, loadErr
		}

		entries = append(entries, extra...)
	}

	return New(entries...), nil
}

// LoadFile reads a dataset file; ".yaml" and ".yml" are decoded as YAML,
// anything else as JSON.
func LoadFile(path string) ([]Entry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		entries, parseErr := ParseYAML(data)
		if parseErr != nil {
			return nil, fmt.Errorf("%s: %w", path, parseErr)
		}

		return entries, nil
	default:
		entries, parseErr := ParseJSON(data)
		if parseErr != nil {
			return nil, fmt.Errorf("%s: %w", path, parseErr)
		}

		return entries, nil
	}
}

// ParseJSON validates a JSON dataset against the schema and decodes it.
func ParseJSON(data []byte) ([]Entry, error) {
	err := validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, err
	}

	var records []record

	err = json.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	return toEntries(records)
}

// ParseYAML validates a YAML dataset against the schema and decodes it.
func ParseYAML(data []byte) ([]Entry, error) {
	var doc any

	err := yaml.Unmarshal(data, &doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	err = validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, err
	}

	var records []record

	err = yaml.Unmarshal(data, &records)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	return toEntries(records)
}

func validate(doc gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(datasetSchema), doc)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidDataset, err)
	}

	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		msgs = append(msgs, re.String())
	}

	return fmt.Errorf("%w: %s", ErrInvalidDataset, strings.Join(msgs, "; "))
}

func toEntries(records []record) ([]Entry, error) {
	entries := make([]Entry, 0, len(records))

	for _, r := range records {
		kind, err := ParseKind(r.Type)
		if err != nil {
			return nil, fmt.Errorf("language %q: %w", r.Name, err)
		}

		entries = append(entries, Entry{Name: r.Name, Kind: kind, Extensions: r.Extensions})
	}

	return entries, nil
}
