package ml

import (
	"errors"

	"github.com/xh3b4sd/tracer"
)

var invalidArtifactError = &tracer.Error{
	Kind: "invalidArtifactError",
}

func IsInvalidArtifact(err error) bool {
	return errors.Is(err, invalidArtifactError)
}

var invalidFeatureVectorError = &tracer.Error{
	Kind: "invalidFeatureVectorError",
}

func IsInvalidFeatureVector(err error) bool {
	return errors.Is(err, invalidFeatureVectorError)
}

var invalidObjectiveError = &tracer.Error{
	Kind: "invalidObjectiveError",
}

func IsInvalidObjective(err error) bool {
	return errors.Is(err, invalidObjectiveError)
}
