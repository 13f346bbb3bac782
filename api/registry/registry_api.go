package registry

import (
	"hbp-server/features"
	"hbp-server/ml"
)

// RegistryAPI defines the interface for interacting with the model registry,
// the external artifact store consulted when a model or schema artifact is
// missing from the local models directory at startup.
type RegistryAPI interface {
	GetModelArtifact(name string) (*ml.Artifact, error)
	GetSchema(name string) (*features.Schema, error)
	SetCredentials(apiKey string)
}
