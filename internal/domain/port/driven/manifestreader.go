package driven

import (
	"context"
	"errors"

	"github.com/ericfisherdev/techinsights-action/internal/domain/model"
)

// ErrManifestEmpty is returned when a catalog-info file contains no documents.
var ErrManifestEmpty = errors.New("catalog-info manifest contains no entities")

// ManifestReader defines the driven port for reading catalog-info manifests.
type ManifestReader interface {
	// ReadEntities returns every entity of the manifest at path, in document order.
	ReadEntities(ctx context.Context, path string) ([]model.Entity, error)
}
