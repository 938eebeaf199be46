package model

import "strings"

// DefaultNamespace is the catalog namespace assumed when an entity omits one.
const DefaultNamespace = "default"

// EntityMetadata is the subset of catalog entity metadata used to address an entity.
type EntityMetadata struct {
	Name      string `yaml:"name"`
	Namespace string `yaml:"namespace"`
}

// Entity is a service-catalog entity parsed from a catalog-info manifest.
type Entity struct {
	APIVersion string         `yaml:"apiVersion"`
	Kind       string         `yaml:"kind"`
	Metadata   EntityMetadata `yaml:"metadata"`
}

// Ref returns the stringified entity reference, "kind:namespace/name", with
// kind and namespace lowercased.
func (e Entity) Ref() string {
	namespace := e.Metadata.Namespace
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return strings.ToLower(e.Kind) + ":" + strings.ToLower(namespace) + "/" + e.Metadata.Name
}
