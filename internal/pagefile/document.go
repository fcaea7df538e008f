// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagefile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/inkpager/pkg/types"
)

const documentSchemaURL = "document.schema.json"

// documentSchema describes the YAML and JSON exports written by Export.
const documentSchema = `{
  "type": "object",
  "required": ["source", "layout", "pages"],
  "properties": {
    "source": {"type": "string"},
    "layout": {
      "type": "object",
      "required": ["max_chars_per_line", "max_lines_per_page"],
      "properties": {
        "max_chars_per_line": {"type": "integer", "minimum": 1},
        "max_lines_per_page": {"type": "integer", "minimum": 2}
      }
    },
    "stats": {"type": "object"},
    "pages": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kind", "lines"],
        "properties": {
          "kind": {"enum": ["content", "chapter"]},
          "lines": {"type": "array", "items": {"type": "string"}}
        }
      }
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(documentSchemaURL, strings.NewReader(documentSchema)); err != nil {
			schemaErr = fmt.Errorf("loading document schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(documentSchemaURL)
	})
	return compiledSchema, schemaErr
}

// ValidateJSON checks an exported document in JSON form against the
// document schema.
func ValidateJSON(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding document: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("document does not match schema: %w", err)
	}
	return nil
}

// ReadDocument parses a YAML or JSON export. YAML is converted to JSON so
// both forms are validated against the same schema.
func ReadDocument(r io.Reader, format types.OutputFormat) (types.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return types.Document{}, fmt.Errorf("reading document: %w", err)
	}

	switch format {
	case types.OutputJSON:
	case types.OutputYAML:
		var v any
		if err := yaml.Unmarshal(data, &v); err != nil {
			return types.Document{}, fmt.Errorf("parsing YAML: %w", err)
		}
		if data, err = json.Marshal(v); err != nil {
			return types.Document{}, fmt.Errorf("converting YAML: %w", err)
		}
	default:
		return types.Document{}, fmt.Errorf("unsupported document format %q: use yaml or json", format)
	}

	if err := ValidateJSON(data); err != nil {
		return types.Document{}, err
	}

	var doc types.Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		return types.Document{}, fmt.Errorf("decoding document: %w", err)
	}
	return doc, nil
}

// LoadPages reads the pages of any output written by paginate: a .yaml/.yml
// or .json export, or a paged text file classified against layout.
func LoadPages(path string, layout types.Layout) ([]types.Page, error) {
	var format types.OutputFormat
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = types.OutputYAML
	case ".json":
		format = types.OutputJSON
	default:
		return ReadFile(path, layout)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	doc, err := ReadDocument(f, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc.Pages, nil
}
