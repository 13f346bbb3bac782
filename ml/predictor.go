package ml

import (
	"math"

	"github.com/xh3b4sd/tracer"
)

// Predictor wraps a loaded artifact and answers predictions for feature
// vectors produced by the matching schema. It holds no mutable state, so one
// instance is shared by all requests without locking.
type Predictor struct {
	artifact *Artifact
}

// NewPredictor builds a Predictor for a verified artifact.
func NewPredictor(artifact *Artifact) (*Predictor, error) {
	if err := artifact.Verify(); err != nil {
		return nil, tracer.Mask(err)
	}
	return &Predictor{artifact: artifact}, nil
}

// LoadPredictor reads an artifact from disk and wraps it.
func LoadPredictor(path string) (*Predictor, error) {
	artifact, err := LoadArtifact(path)
	if err != nil {
		return nil, tracer.Mask(err)
	}
	return &Predictor{artifact: artifact}, nil
}

// Version returns the artifact version this predictor serves.
func (p *Predictor) Version() string {
	return p.artifact.Version
}

// NumFeatures returns the expected feature vector length.
func (p *Predictor) NumFeatures() int {
	return p.artifact.NumFeatures
}

// Objective returns the artifact objective.
func (p *Predictor) Objective() string {
	return p.artifact.Objective
}

// Predict returns the raw ensemble margin: the base score plus the sum of
// the leaf values every tree routes the vector to. For regression artifacts
// the margin is the prediction in the transformed target space.
func (p *Predictor) Predict(vector []float64) (float64, error) {
	if len(vector) != p.artifact.NumFeatures {
		return 0, tracer.Maskf(invalidFeatureVectorError, "expected %d features, got %d", p.artifact.NumFeatures, len(vector))
	}

	margin := p.artifact.BaseScore
	for i := range p.artifact.Trees {
		margin += p.artifact.Trees[i].leafValue(vector)
	}
	return margin, nil
}

// PredictProba returns the positive-class probability for classification
// artifacts by applying the sigmoid to the margin.
func (p *Predictor) PredictProba(vector []float64) (float64, error) {
	if p.artifact.Objective != ObjectiveBinaryLogistic {
		return 0, tracer.Maskf(invalidObjectiveError, "artifact objective %q does not produce probabilities", p.artifact.Objective)
	}

	margin, err := p.Predict(vector)
	if err != nil {
		return 0, tracer.Mask(err)
	}
	return sigmoid(margin), nil
}

func (t *Tree) leafValue(vector []float64) float64 {
	node := &t.Nodes[0]
	for !node.Leaf {
		if vector[node.Feature] < node.Threshold {
			node = &t.Nodes[node.Left]
		} else {
			node = &t.Nodes[node.Right]
		}
	}
	return node.Value
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}
