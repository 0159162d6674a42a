package engine

import (
	"github.com/AmirhosseinHonardoust/Crypto-Price-Equilibrium-Simulator/internal/domain"
)

// Pipeline runs the three stages — feature engineering, force scoring,
// equilibrium composition — over a whole snapshot. It is stateless and safe
// for concurrent use; each call works on its own clone of the input.
type Pipeline struct {
	weights ForceWeights
}

// NewPipeline returns a pipeline with the fixed default force weights.
func NewPipeline() Pipeline {
	return Pipeline{weights: DefaultWeights()}
}

// Weights exposes the force weights for explain-style output.
func (p Pipeline) Weights() ForceWeights { return p.weights }

// Run derives every column of the equilibrium model for each row of the
// snapshot. The input is never mutated; row order and count are preserved.
// Running twice on the same snapshot yields bit-identical derived columns.
func (p Pipeline) Run(snap domain.Snapshot) domain.Snapshot {
	out := snap.Clone()
	EngineerFeatures(&out)
	ComputeForces(&out)
	ComposeEquilibrium(&out, p.weights)
	return out
}
