package schemafile

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"ecs-shapegen/internal/schema"
)

var (
	// ErrInvalidDocument is returned for documents rejected by validation.
	ErrInvalidDocument = errors.New("invalid schema document")
	// ErrEmptyManifest is returned for a manifest that lists no files.
	ErrEmptyManifest = errors.New("manifest lists no schema files")
)

// Parse decodes the documents of one schema file. With knownFields set,
// keys that map to no document or field attribute are rejected.
func Parse(data []byte, filename string, knownFields bool) ([]*schema.Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(knownFields)

	var docs []*schema.Document

	err := dec.Decode(&docs)
	if errors.Is(err, io.EOF) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to parse schema file %s: %w", filename, err)
	}

	for i, doc := range docs {
		if doc == nil {
			return nil, fmt.Errorf("%w: %s[%d]: empty document", ErrInvalidDocument, filename, i)
		}
	}

	return docs, nil
}

// Marshal serializes documents back to the schema file format.
func Marshal(docs []*schema.Document) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(docs); err != nil {
		return nil, fmt.Errorf("failed to marshal schema documents: %w", err)
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
