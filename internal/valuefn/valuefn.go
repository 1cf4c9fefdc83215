// Package valuefn implements the §6 value-function contract: a pure
// function from a NumStateFeatures-length feature vector to a scalar in
// [-1, 1], with two concrete shapes (linear dot-product with bias, and a
// one-hidden-layer MLP with ReLU hidden/tanh output), loaded from a JSON
// file. Kept as a tagged pair of structs rather than an interface with a
// registry, per the teacher's closed-set preference,
// with the MLP's matmuls backed by gorgonia.org/tensor the way the teacher's
// strategy_gonnx.go builds tensor.Dense values for inference rather than
// hand-rolled nested loops.
package valuefn

import (
	"encoding/json"
	"math"
	"os"

	"gorgonia.org/tensor"

	"github.com/tormund/gridiron/internal/features"
	"github.com/tormund/gridiron/pkg/bbgame"
)

// ValueFn is a read-only, thread-safe scalar evaluator. Both concrete kinds
// implement it; construction is the only place a value function is mutated.
type ValueFn interface {
	// Evaluate returns a value in [-1, 1] for the given state feature vector.
	Evaluate(stateFeatures []float32) float32
}

// Linear is a dot-product-plus-bias value function: the simplest of the two
// shapes §6 allows, loaded from a bare JSON array of length
// NumStateFeatures+1 (weights followed by the bias term).
type Linear struct {
	weights []float32
	bias    float32
}

// Evaluate computes clamp(w·x + b, -1, 1).
func (l *Linear) Evaluate(x []float32) float32 {
	var sum float32
	for i, w := range l.weights {
		if i < len(x) {
			sum += w * x[i]
		}
	}
	return clampf(sum+l.bias, -1, 1)
}

// MLP is a one-hidden-layer network: W1 (NumStateFeatures x hidden), ReLU,
// W2 (hidden x 1), tanh.
type MLP struct {
	w1, b1   *tensor.Dense
	w2, b2   *tensor.Dense
	hidden   int
}

// Evaluate runs the forward pass x -> W1x+b1 -> ReLU -> W2h+b2 -> tanh.
func (m *MLP) Evaluate(x []float32) float32 {
	xt := tensor.New(tensor.WithShape(1, len(x)), tensor.Of(tensor.Float32), tensor.WithBacking(append([]float32(nil), x...)))

	h, err := xt.MatMul(m.w1)
	if err != nil {
		return 0
	}
	if err := h.Add(m.b1, tensor.UseUnsafe()); err != nil {
		return 0
	}
	if _, err := h.Apply(relu, tensor.UseUnsafe()); err != nil {
		return 0
	}

	o, err := h.MatMul(m.w2)
	if err != nil {
		return 0
	}
	if err := o.Add(m.b2, tensor.UseUnsafe()); err != nil {
		return 0
	}

	v, err := o.At(0, 0)
	if err != nil {
		return 0
	}
	scalar, _ := v.(float32)
	return float32(math.Tanh(float64(scalar)))
}

func relu(x float32) float32 {
	if x < 0 {
		return 0
	}
	return x
}

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// mlpFile is the "type":"neural" JSON object shape.
type mlpFile struct {
	Type       string      `json:"type"`
	HiddenSize int         `json:"hidden_size"`
	W1         [][]float32 `json:"W1"`
	B1         []float32   `json:"b1"`
	W2         [][]float32 `json:"W2"`
	B2         []float32   `json:"b2"`
}

// Load parses a value function file: either a bare JSON array (Linear) or
// an object with "type":"neural" (MLP), per §6. A malformed or
// shape-mismatched file returns a *bbgame.LoadError; callers fall back to
// Constant(0) per §7.
func Load(path string) (ValueFn, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &bbgame.LoadError{Path: path, Reason: err.Error()}
	}

	var arr []float32
	if err := json.Unmarshal(raw, &arr); err == nil {
		if len(arr) != features.NumStateFeatures+1 {
			return nil, &bbgame.LoadError{Path: path, Reason: "linear value file has wrong length"}
		}
		return &Linear{weights: arr[:features.NumStateFeatures], bias: arr[features.NumStateFeatures]}, nil
	}

	var mf mlpFile
	if err := json.Unmarshal(raw, &mf); err != nil {
		return nil, &bbgame.LoadError{Path: path, Reason: "neither a bare array nor a neural object: " + err.Error()}
	}
	if mf.Type != "neural" {
		return nil, &bbgame.LoadError{Path: path, Reason: "missing type:neural"}
	}
	if len(mf.W1) != features.NumStateFeatures || len(mf.B1) != mf.HiddenSize || len(mf.W2) != mf.HiddenSize || len(mf.B2) != 1 {
		return nil, &bbgame.LoadError{Path: path, Reason: "neural value file shape mismatch"}
	}

	w1Flat := make([]float32, 0, features.NumStateFeatures*mf.HiddenSize)
	for _, row := range mf.W1 {
		if len(row) != mf.HiddenSize {
			return nil, &bbgame.LoadError{Path: path, Reason: "W1 row length mismatch"}
		}
		w1Flat = append(w1Flat, row...)
	}
	w2Flat := make([]float32, 0, mf.HiddenSize)
	for _, row := range mf.W2 {
		if len(row) != 1 {
			return nil, &bbgame.LoadError{Path: path, Reason: "W2 row length mismatch"}
		}
		w2Flat = append(w2Flat, row...)
	}

	w1 := tensor.New(tensor.WithShape(features.NumStateFeatures, mf.HiddenSize), tensor.Of(tensor.Float32), tensor.WithBacking(w1Flat))
	b1 := tensor.New(tensor.WithShape(1, mf.HiddenSize), tensor.Of(tensor.Float32), tensor.WithBacking(append([]float32(nil), mf.B1...)))
	w2 := tensor.New(tensor.WithShape(mf.HiddenSize, 1), tensor.Of(tensor.Float32), tensor.WithBacking(w2Flat))
	b2 := tensor.New(tensor.WithShape(1, 1), tensor.Of(tensor.Float32), tensor.WithBacking(append([]float32(nil), mf.B2...)))

	return &MLP{w1: w1, b1: b1, w2: w2, b2: b2, hidden: mf.HiddenSize}, nil
}

// Constant is the uniform/constant baseline §7 falls back to when no
// weights file is supplied or loading fails.
type Constant float32

// Evaluate ignores the features and always returns the constant value.
func (c Constant) Evaluate([]float32) float32 { return float32(c) }
