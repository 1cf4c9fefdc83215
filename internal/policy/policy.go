// Package policy implements the §6 prior-policy contract: a linear logistic
// over concatenated (state_features, action_features) plus a bias,
// producing a softmax distribution over a node's candidate actions at a
// configurable temperature. Grounded on the teacher's
// internal/bot/neural/policy.go (score-then-softmax-then-sort shape), scaled
// down from per-unit order scoring to per-action scoring since this engine's
// "vocabulary" is the rules engine's enumerated legal actions, not a fixed
// per-province order grid.
package policy

import (
	"encoding/json"
	"math"
	"os"
	"sort"

	"github.com/tormund/gridiron/internal/features"
	"github.com/tormund/gridiron/pkg/bbgame"
)

// DefaultTemperature is used when a caller does not override it (§6).
const DefaultTemperature = 1.0

// Prior is a read-only linear logistic prior policy: weight vector over
// state_features ++ action_features, plus a scalar bias.
type Prior struct {
	weights []float32 // length features.NumStateFeatures + features.NumActionFeatures
	bias    float32
}

type priorFile struct {
	PolicyWeights []float32 `json:"policy_weights"`
	PolicyBias    float32   `json:"policy_bias"`
}

// Load parses a prior-policy JSON file per §6. A malformed or
// shape-mismatched file returns a *bbgame.LoadError; callers fall back to a
// uniform prior.
func Load(path string) (*Prior, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &bbgame.LoadError{Path: path, Reason: err.Error()}
	}
	var pf priorFile
	if err := json.Unmarshal(raw, &pf); err != nil {
		return nil, &bbgame.LoadError{Path: path, Reason: err.Error()}
	}
	want := features.NumStateFeatures + features.NumActionFeatures
	if len(pf.PolicyWeights) != want {
		return nil, &bbgame.LoadError{Path: path, Reason: "policy_weights has wrong length"}
	}
	return &Prior{weights: pf.PolicyWeights, bias: pf.PolicyBias}, nil
}

// logit scores one candidate action given its concatenated feature vector.
func (p *Prior) logit(stateFeat, actionFeat []float32) float32 {
	var sum float32
	for i, w := range p.weights {
		if i < len(stateFeat) {
			sum += w * stateFeat[i]
		} else if i-len(stateFeat) < len(actionFeat) {
			sum += w * actionFeat[i-len(stateFeat)]
		}
	}
	return sum + p.bias
}

// Score returns a softmax distribution (summing to 1) over actions, at the
// given temperature (<=0 defaults to DefaultTemperature). When p is nil,
// Score returns a uniform distribution — the §7 LoadError fallback.
func Score(p *Prior, gs *bbgame.GameState, actions []bbgame.Action, temperature float32) []float32 {
	n := len(actions)
	probs := make([]float32, n)
	if n == 0 {
		return probs
	}
	if p == nil {
		uniform := float32(1) / float32(n)
		for i := range probs {
			probs[i] = uniform
		}
		return probs
	}
	if temperature <= 0 {
		temperature = DefaultTemperature
	}

	stateFeat := features.Encode(gs)
	logits := make([]float32, n)
	maxLogit := float32(math.Inf(-1))
	for i, a := range actions {
		logits[i] = p.logit(stateFeat, features.EncodeAction(gs, a)) / temperature
		if logits[i] > maxLogit {
			maxLogit = logits[i]
		}
	}

	var sum float32
	for i, l := range logits {
		e := float32(math.Exp(float64(l - maxLogit)))
		probs[i] = e
		sum += e
	}
	if sum > 0 {
		for i := range probs {
			probs[i] /= sum
		}
	}
	return probs
}

// TopK returns the indices of the k highest-probability actions, descending.
// Used by the "learning" strategy (a policy-greedy, non-search AI kind).
func TopK(probs []float32, k int) []int {
	idx := make([]int, len(probs))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return probs[idx[i]] > probs[idx[j]] })
	if k < len(idx) {
		idx = idx[:k]
	}
	return idx
}
