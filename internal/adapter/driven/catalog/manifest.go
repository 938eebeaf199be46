// Package catalog implements the ManifestReader port for catalog-info YAML files.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
	"github.com/ericfisherdev/techinsights-action/internal/domain/port/driven"
)

// DefaultPath is where the action looks for the manifest when none is configured.
const DefaultPath = "./catalog-info.yaml"

// Compile-time interface satisfaction check.
var _ driven.ManifestReader = (*Reader)(nil)

// Reader reads multi-document catalog-info manifests from the filesystem.
type Reader struct{}

// NewReader creates a new Reader.
func NewReader() *Reader {
	return &Reader{}
}

// ReadEntities parses every YAML document of the manifest at path as a
// catalog entity. Empty documents are skipped; a manifest without any entity
// returns driven.ErrManifestEmpty.
func (r *Reader) ReadEntities(_ context.Context, path string) ([]model.Entity, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog-info file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return decodeEntities(f, path)
}

func decodeEntities(r io.Reader, path string) ([]model.Entity, error) {
	dec := yaml.NewDecoder(r)

	var entities []model.Entity
	for doc := 0; ; doc++ {
		var node yaml.Node
		err := dec.Decode(&node)
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parsing %s document %d: %w", path, doc, err)
		}
		if isEmptyDocument(&node) {
			continue
		}

		var entity model.Entity
		if err := node.Decode(&entity); err != nil {
			return nil, fmt.Errorf("decoding %s document %d: %w", path, doc, err)
		}
		if entity.Kind == "" || entity.Metadata.Name == "" {
			return nil, fmt.Errorf("%s document %d: entity requires kind and metadata.name", path, doc)
		}
		entities = append(entities, entity)
	}

	if len(entities) == 0 {
		return nil, fmt.Errorf("%w: no catalog-info file matching the path %s found", driven.ErrManifestEmpty, path)
	}
	return entities, nil
}

func isEmptyDocument(node *yaml.Node) bool {
	if node.Kind != yaml.DocumentNode || len(node.Content) == 0 {
		return true
	}
	return node.Content[0].Tag == "!!null"
}
