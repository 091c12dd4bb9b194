package document

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dukex/rtcontrol/pkg/models"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

//go:embed schema.json
var schemaJSON []byte

var schema = gojsonschema.NewBytesLoader(schemaJSON)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, path)
	}
}

// FormatFromContentType picks the format from an HTTP content type. An empty
// content type means JSON.
func FormatFromContentType(contentType string) (Format, error) {
	switch ct := strings.ToLower(contentType); {
	case ct == "", strings.Contains(ct, "json"):
		return FormatJSON, nil
	case strings.Contains(ct, "yaml"):
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, contentType)
	}
}

// Parse checks data against the document schema and decodes it.
func Parse(data []byte, format Format) (*Document, error) {
	raw, err := toJSON(data, format)
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(schema, gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	if !result.Valid() {
		violations := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			violations = append(violations, e.String())
		}

		return nil, &SchemaError{Violations: violations}
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
	}

	return &doc, nil
}

// Decode parses data and builds the model it describes.
func Decode(data []byte, format Format) (*models.RealTimeControlModel, error) {
	doc, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	return doc.Model()
}

// Encode writes model in the given format.
func Encode(model *models.RealTimeControlModel, format Format) ([]byte, error) {
	return FromModel(model).Marshal(format)
}

// Marshal writes the document in the given format.
func (d *Document) Marshal(format Format) ([]byte, error) {
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, err
	}

	switch format {
	case FormatJSON:
		return raw, nil
	case FormatYAML:
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return nil, err
		}

		var buf bytes.Buffer

		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)

		if err := enc.Encode(generic); err != nil {
			return nil, err
		}

		if err := enc.Close(); err != nil {
			return nil, err
		}

		return buf.Bytes(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// ReadFile decodes the model stored at path, choosing the format from its extension.
func ReadFile(path string) (*models.RealTimeControlModel, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model file %s: %w", path, err)
	}

	model, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode model file %s: %w", path, err)
	}

	return model, nil
}

// WriteFile encodes model to path, choosing the format from its extension.
func WriteFile(path string, model *models.RealTimeControlModel) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}

	data, err := Encode(model, format)
	if err != nil {
		return fmt.Errorf("failed to encode model %s: %w", model.ID, err)
	}

	return os.WriteFile(path, data, 0600)
}

func toJSON(data []byte, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		if !json.Valid(data) {
			return nil, fmt.Errorf("%w: malformed JSON", ErrInvalidDocument)
		}

		return data, nil
	case FormatYAML:
		var generic any
		if err := yaml.Unmarshal(data, &generic); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		raw, err := json.Marshal(generic)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDocument, err)
		}

		return raw, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
