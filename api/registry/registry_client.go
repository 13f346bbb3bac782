package registry

import (
	"fmt"

	"hbp-server/api"
	"hbp-server/features"
	"hbp-server/ml"
)

// RegistryClient embeds the common HTTPClient
type RegistryClient struct {
	*api.HTTPClient // Embed HTTPClient to reuse its methods and properties
	apiKey          string
}

// NewRegistryClient creates a new instance of RegistryClient
func NewRegistryClient(httpClient *api.HTTPClient) *RegistryClient {
	return &RegistryClient{
		HTTPClient: httpClient,
	}
}

// SetCredentials stores the API key sent with every registry request.
func (c *RegistryClient) SetCredentials(apiKey string) {
	c.apiKey = apiKey
}

// GetModelArtifact retrieves a model artifact by name and verifies it.
func (c *RegistryClient) GetModelArtifact(name string) (*ml.Artifact, error) {
	var artifact ml.Artifact
	err := c.Request("GET", "/models/"+name, c.headers(), nil, &artifact)
	if err != nil {
		return nil, err
	}
	if err := artifact.Verify(); err != nil {
		return nil, fmt.Errorf("registry returned an invalid artifact %q: %w", name, err)
	}
	return &artifact, nil
}

// GetSchema retrieves a schema artifact by name and validates it.
func (c *RegistryClient) GetSchema(name string) (*features.Schema, error) {
	var schema features.Schema
	err := c.Request("GET", "/schemas/"+name, c.headers(), nil, &schema)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(); err != nil {
		return nil, fmt.Errorf("registry returned an invalid schema %q: %w", name, err)
	}
	return &schema, nil
}

func (c *RegistryClient) headers() map[string]string {
	if c.apiKey == "" {
		return nil
	}
	return map[string]string{"X-Api-Key": c.apiKey}
}
