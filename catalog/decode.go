package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Top-level keys of a log-patterns file.
const (
	keyErrorLogs   = "error_logs"
	keyWarningLogs = "warning_logs"
)

// DecodePatternsJSON decodes a JSON log-patterns document with top-level
// error_logs and warning_logs mappings. The standard map decoding would
// randomize category order, so the document is walked token by token and
// categories are kept in document order. Unknown top-level keys are skipped.
func DecodePatternsJSON(data []byte) (Patterns, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	if err := expectDelim(dec, '{'); err != nil {
		return Patterns{}, fmt.Errorf("parsing patterns: %w", err)
	}

	var p Patterns
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Patterns{}, fmt.Errorf("parsing patterns: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return Patterns{}, fmt.Errorf("parsing patterns: expected object key, got %v", tok)
		}

		switch key {
		case keyErrorLogs:
			p.Errors, err = decodeCatalogJSON(dec)
		case keyWarningLogs:
			p.Warnings, err = decodeCatalogJSON(dec)
		default:
			err = skipValue(dec)
		}
		if err != nil {
			return Patterns{}, fmt.Errorf("parsing %s: %w", key, err)
		}
	}

	if err := expectDelim(dec, '}'); err != nil {
		return Patterns{}, fmt.Errorf("parsing patterns: %w", err)
	}
	return p, nil
}

// decodeCatalogJSON decodes one category→messages mapping in document order.
func decodeCatalogJSON(dec *json.Decoder) (Catalog, error) {
	if err := expectDelim(dec, '{'); err != nil {
		return Catalog{}, err
	}

	var c Catalog
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return Catalog{}, err
		}
		name, ok := tok.(string)
		if !ok {
			return Catalog{}, fmt.Errorf("expected category name, got %v", tok)
		}

		var msgs []string
		if err := dec.Decode(&msgs); err != nil {
			return Catalog{}, fmt.Errorf("category %q: %w", name, err)
		}
		c.Categories = append(c.Categories, Category{Name: name, Messages: msgs})
	}

	return c, expectDelim(dec, '}')
}

// expectDelim consumes the next token and checks it is the given delimiter.
func expectDelim(dec *json.Decoder, want json.Delim) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != want {
		return fmt.Errorf("expected %q, got %v", want, tok)
	}
	return nil
}

// skipValue consumes one complete JSON value from the decoder.
func skipValue(dec *json.Decoder) error {
	var v json.RawMessage
	return dec.Decode(&v)
}

// DecodePatternsYAML decodes a YAML log-patterns document. yaml.Node keeps
// mapping keys in document order, so category order is preserved the same
// way as in the JSON path.
func DecodePatternsYAML(data []byte) (Patterns, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Patterns{}, fmt.Errorf("parsing patterns: %w", err)
	}
	if len(doc.Content) == 0 {
		return Patterns{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Patterns{}, fmt.Errorf("parsing patterns: expected mapping at document root")
	}

	var p Patterns
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]

		var err error
		switch key.Value {
		case keyErrorLogs:
			p.Errors, err = decodeCatalogYAML(value)
		case keyWarningLogs:
			p.Warnings, err = decodeCatalogYAML(value)
		}
		if err != nil {
			return Patterns{}, fmt.Errorf("parsing %s: %w", key.Value, err)
		}
	}
	return p, nil
}

func decodeCatalogYAML(node *yaml.Node) (Catalog, error) {
	if node.Kind != yaml.MappingNode {
		return Catalog{}, fmt.Errorf("expected mapping of categories")
	}

	var c Catalog
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]

		var msgs []string
		if err := value.Decode(&msgs); err != nil {
			return Catalog{}, fmt.Errorf("category %q: %w", key.Value, err)
		}
		c.Categories = append(c.Categories, Category{Name: key.Value, Messages: msgs})
	}
	return c, nil
}
