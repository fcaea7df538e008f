// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pagefile

import (
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/inkpager/internal/paginate"
	"github.com/pdiddy/inkpager/pkg/types"
)

// NewDocument bundles pages with their source, layout and statistics.
func NewDocument(source string, layout types.Layout, pages []types.Page) types.Document {
	if pages == nil {
		pages = []types.Page{}
	}
	return types.Document{
		Source: source,
		Layout: layout,
		Stats:  paginate.Stats(pages, layout),
		Pages:  pages,
	}
}

// ExportYAML writes doc to w as YAML.
func ExportYAML(w io.Writer, doc types.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes doc to w as indented JSON.
func ExportJSON(w io.Writer, doc types.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// Export writes doc in format. OutputText writes the paged text form.
func Export(w io.Writer, doc types.Document, format types.OutputFormat) error {
	switch format {
	case types.OutputText, "":
		return Write(w, doc.Pages)
	case types.OutputYAML:
		return ExportYAML(w, doc)
	case types.OutputJSON:
		return ExportJSON(w, doc)
	default:
		return fmt.Errorf("unsupported format %q: use text, yaml or json", format)
	}
}
