package ml

import (
	"encoding/json"
	"os"

	"github.com/xh3b4sd/tracer"
)

// Objectives supported by the serving process. Classification artifacts are
// trained with the logistic objective, regression artifacts on the log1p
// transformed target.
const (
	ObjectiveBinaryLogistic = "binary:logistic"
	ObjectiveRegression     = "reg:squarederror"
)

// TreeNode is one node of a flattened decision tree. Non-leaf nodes route a
// feature vector left when vector[Feature] < Threshold and right otherwise.
type TreeNode struct {
	Feature   int     `json:"feature"`
	Threshold float64 `json:"threshold"`
	Left      int     `json:"left"`
	Right     int     `json:"right"`
	Leaf      bool    `json:"leaf"`
	Value     float64 `json:"value"`
}

// Tree is a single booster tree with its nodes indexed from the root at 0.
type Tree struct {
	Nodes []TreeNode `json:"nodes"`
}

// Artifact is a pre-trained gradient-boosted tree ensemble as exported by the
// training pipeline. It is loaded once at startup and never mutated.
type Artifact struct {
	Name        string  `json:"name"`
	Version     string  `json:"version"`
	Objective   string  `json:"objective"`
	BaseScore   float64 `json:"base_score"`
	NumFeatures int     `json:"num_features"`
	Trees       []Tree  `json:"trees"`
}

// LoadArtifact reads a model artifact from disk.
func LoadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, tracer.Mask(err)
	}

	var art Artifact
	if err := json.Unmarshal(data, &art); err != nil {
		return nil, tracer.Mask(err)
	}

	if err := art.Verify(); err != nil {
		return nil, tracer.Mask(err)
	}

	return &art, nil
}

// Verify checks the structural invariants predictions rely on.
func (a *Artifact) Verify() error {
	if a.NumFeatures <= 0 {
		return tracer.Maskf(invalidArtifactError, "num_features must be positive, got %d", a.NumFeatures)
	}
	if a.Objective != ObjectiveBinaryLogistic && a.Objective != ObjectiveRegression {
		return tracer.Maskf(invalidArtifactError, "unsupported objective %q", a.Objective)
	}
	if len(a.Trees) == 0 {
		return tracer.Maskf(invalidArtifactError, "artifact contains no trees")
	}
	for ti, t := range a.Trees {
		if len(t.Nodes) == 0 {
			return tracer.Maskf(invalidArtifactError, "tree %d has no nodes", ti)
		}
		for ni, n := range t.Nodes {
			if n.Leaf {
				continue
			}
			if n.Feature < 0 || n.Feature >= a.NumFeatures {
				return tracer.Maskf(invalidArtifactError, "tree %d node %d references feature %d out of %d", ti, ni, n.Feature, a.NumFeatures)
			}
			if n.Left < 0 || n.Left >= len(t.Nodes) || n.Right < 0 || n.Right >= len(t.Nodes) {
				return tracer.Maskf(invalidArtifactError, "tree %d node %d has child index out of bounds", ti, ni)
			}
			if n.Left <= ni || n.Right <= ni {
				return tracer.Maskf(invalidArtifactError, "tree %d node %d has a backward child reference", ti, ni)
			}
		}
	}
	return nil
}
