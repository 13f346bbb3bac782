package registry

import (
	"fmt"

	"hbp-server/config"
	"hbp-server/features"
	"hbp-server/ml"
)

// RegistryClientMock serves artifacts from the local resources directory
// instead of a live registry. Used outside prod and in tests.
type RegistryClientMock struct {
}

// NewRegistryClientMock creates a new instance of RegistryClientMock
func NewRegistryClientMock() *RegistryClientMock {
	return &RegistryClientMock{}
}

// GetModelArtifact loads a model artifact fixture by name.
func (c *RegistryClientMock) GetModelArtifact(name string) (*ml.Artifact, error) {
	artifact, err := ml.LoadArtifact(config.GetModelPath(name + ".json"))
	if err != nil {
		return nil, fmt.Errorf("mock registry has no model artifact %q: %w", name, err)
	}
	return artifact, nil
}

// GetSchema loads a schema fixture by name.
func (c *RegistryClientMock) GetSchema(name string) (*features.Schema, error) {
	schema, err := features.LoadSchema(config.GetModelPath(name + ".json"))
	if err != nil {
		return nil, fmt.Errorf("mock registry has no schema %q: %w", name, err)
	}
	return schema, nil
}

// SetCredentials is a no-op for the mock.
func (c *RegistryClientMock) SetCredentials(apiKey string) {
}
