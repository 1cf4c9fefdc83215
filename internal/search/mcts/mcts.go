// Package mcts implements the §4.L action-level search: a PUCT tree
// (Predictor + Upper Confidence bound applied to Trees) over the rules
// engine's legal actions, with a pluggable value function and prior
// policy. Grounded on hiveGo's cacheNode PUCT searcher
// (internal/searchers/mcts/mcts.go — the Q + cPuct*P*sqrt(N)/(1+n) formula,
// the N/sumScores-per-action bookkeeping, and the visit-count-derived
// policy used for training), adapted for a stochastic engine: hiveGo's
// board transitions are deterministic, so it caches one child board per
// action. This engine's transitions draw dice, so a child node is instead
// an "open-loop" statistics slot keyed by the action itself — every visit
// re-resolves the action against a freshly-seeded dice.Dice and walks
// whatever state actually results, the way a chance node is handled in
// stochastic-game MCTS. darwindeck's gosim/mcts node pool (UCB1 over a
// flat node slice) supplied the node-pooling idea of keeping children
// lazily instantiated rather than pre-expanding the whole tree.
package mcts

import (
	"math"
	"math/rand"
	"sort"

	"github.com/tormund/gridiron/internal/decisionlog"
	"github.com/tormund/gridiron/internal/features"
	"github.com/tormund/gridiron/internal/policy"
	"github.com/tormund/gridiron/internal/valuefn"
	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// Config holds the search's tunable parameters.
type Config struct {
	Iterations      int     // number of tree traverses per Search call
	CPuct           float32 // exploration constant in the PUCT formula
	MaxChildren     int     // §4.L max_children cap; 0 means unlimited
	MaxDepth        int     // tree-traverse depth cap before falling back to a leaf evaluation
	RolloutDepth    int     // plies of random rollout when no value function is supplied
	Temperature     float32 // 0 = always pick the most-visited root action
	DirichletAlpha  float32 // root exploration noise shape parameter
	DirichletWeight float32 // root exploration noise mixing weight (0 disables)
}

// DefaultConfig matches the values used by the "mcts" AI strategy kind
// when the CLI doesn't override them.
func DefaultConfig() Config {
	return Config{
		Iterations:      400,
		CPuct:           1.5,
		MaxChildren:     24,
		MaxDepth:        64,
		RolloutDepth:    20,
		Temperature:     0,
		DirichletAlpha:  0.3,
		DirichletWeight: 0.25,
	}
}

// node is one position in the open-loop PUCT tree: per-legal-action visit
// counts and accumulated scores, plus a lazily-created child node per
// action (nil until that action has been expanded past its first visit).
type node struct {
	side      pitch.Side
	actions   []bbgame.Action
	priors    []float32
	children  []*node
	n         []int
	sumScores []float32
	sumN      int
}

// Tree runs repeated PUCT traverses rooted at a single game state. A Tree
// is single-use: construct one per Search call (the root differs every
// time a handler needs a decision).
type Tree struct {
	cfg    Config
	vf     valuefn.ValueFn
	prior  *policy.Prior
	rng    *rand.Rand
	rootID int64
}

// New builds a Tree. vf may be nil, in which case leaf values come from a
// shallow random rollout instead (§7's no-value-function fallback).
func New(vf valuefn.ValueFn, prior *policy.Prior, cfg Config, seed int64) *Tree {
	return &Tree{cfg: cfg, vf: vf, prior: prior, rng: rand.New(rand.NewSource(seed))}
}

// Search runs cfg.Iterations PUCT traverses from root and returns the
// chosen action, the root's action vocabulary, and the visit-fraction
// distribution over it (the §6 training policy target). If dlog is
// non-nil, one Record is appended recording this decision.
func (t *Tree) Search(root *bbgame.GameState, dlog *decisionlog.Log) (bbgame.Action, []bbgame.Action, []float32) {
	rootNode := t.expand(root)
	if rootNode == nil {
		return bbgame.Action{Kind: bbgame.ActionEndTurn}, nil, nil
	}
	t.addDirichletNoise(rootNode)

	for i := 0; i < t.cfg.Iterations; i++ {
		gs := root.Clone()
		d := dice.NewSeeded(t.rng.Int63())
		t.simulate(rootNode, gs, d, nil, 0)
	}

	visits := make([]float32, len(rootNode.actions))
	for i, n := range rootNode.n {
		if rootNode.sumN > 0 {
			visits[i] = float32(n) / float32(rootNode.sumN)
		}
	}

	chosenIdx := t.selectAction(rootNode)

	if dlog != nil {
		dlog.Append(decisionlog.Record{
			Side:           int8(root.ActiveSide),
			Turn:           int32(root.ActiveTeam().TurnNumber),
			Half:           int8(root.Half),
			StateFeatures:  features.Encode(root),
			VisitFractions: append([]float32(nil), visits...),
			ChosenIndex:    int32(chosenIdx),
		})
	}

	return rootNode.actions[chosenIdx], rootNode.actions, visits
}

// expand builds a fresh node for gs, or nil if gs has no searchable
// actions (any phase but Play, or — never actually possible, since
// ActionEndTurn is always legal in Play — an empty action list).
func (t *Tree) expand(gs *bbgame.GameState) *node {
	if gs.Phase != bbgame.PhasePlay {
		return nil
	}
	actions := bbgame.LegalActions(gs)
	if len(actions) == 0 {
		return nil
	}
	priors := policy.Score(t.prior, gs, actions, policy.DefaultTemperature)

	if t.cfg.MaxChildren > 0 && len(actions) > t.cfg.MaxChildren {
		actions, priors = prune(actions, priors, t.cfg.MaxChildren)
	}

	return &node{
		side:      gs.ActiveSide,
		actions:   actions,
		priors:    priors,
		children:  make([]*node, len(actions)),
		n:         make([]int, len(actions)),
		sumScores: make([]float32, len(actions)),
	}
}

// prune keeps the max children highest-prior actions (always keeping
// index 0, ActionEndTurn, since it must remain a legal fallback), per
// §4.L's max_children cap, and renormalizes the kept priors to sum to 1.
func prune(actions []bbgame.Action, priors []float32, max int) ([]bbgame.Action, []float32) {
	idx := make([]int, len(actions))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(a, b int) bool { return priors[idx[a]] > priors[idx[b]] })

	keep := make(map[int]bool, max)
	keep[0] = true
	for _, i := range idx {
		if len(keep) >= max {
			break
		}
		keep[i] = true
	}

	keptActions := make([]bbgame.Action, 0, len(keep))
	keptPriors := make([]float32, 0, len(keep))
	var sum float32
	for i := 0; i < len(actions); i++ {
		if keep[i] {
			keptActions = append(keptActions, actions[i])
			keptPriors = append(keptPriors, priors[i])
			sum += priors[i]
		}
	}
	if sum > 0 {
		for i := range keptPriors {
			keptPriors[i] /= sum
		}
	}
	return keptActions, keptPriors
}

// simulate runs one traverse: select an action by PUCT, resolve it against
// gs (mutating gs in place), recurse into the resulting node (expanding it
// on first visit), and back up the value. The returned value is always
// expressed from n.side's perspective, so the caller one level up can
// compare it against its own side before adding it to its own statistics.
func (t *Tree) simulate(n *node, gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog, depth int) float32 {
	if depth >= t.cfg.MaxDepth {
		return t.leafValue(gs, n.side, d, log)
	}

	i := t.selectChild(n)
	action := n.actions[i]
	childSide := gs.ActiveSide

	bbgame.Resolve(gs, d, log, action)

	var value float32
	switch {
	case gs.Phase == bbgame.PhaseGameOver:
		value = terminalValue(gs, childSide)
	case gs.Phase != bbgame.PhasePlay:
		// A touchdown, kickoff, or half transition leaves the action
		// vocabulary undefined until internal/sim drives the procedural
		// steps back to Play; treat it as a leaf here.
		value = t.leafValue(gs, childSide, d, log)
	default:
		if n.children[i] == nil {
			n.children[i] = t.expand(gs)
		}
		if n.children[i] == nil {
			value = t.leafValue(gs, childSide, d, log)
		} else {
			value = t.simulate(n.children[i], gs, d, log, depth+1)
			if n.children[i].side != childSide {
				value = -value
			}
		}
	}

	if childSide != n.side {
		value = -value
	}
	n.sumScores[i] += value
	n.n[i]++
	n.sumN++
	return value
}

// selectChild picks the action with the highest PUCT upper confidence.
// Unvisited actions use a first-play-urgency value (the node's own running
// average, or 0 before anything has been visited) rather than an optimistic
// 0, so a single lucky rollout on one branch doesn't starve the rest of
// their prior-weighted exploration term.
func (t *Tree) selectChild(n *node) int {
	var parentQ float32
	if n.sumN > 0 {
		var sum float32
		for _, s := range n.sumScores {
			sum += s
		}
		parentQ = sum / float32(n.sumN)
	}

	globalFactor := t.cfg.CPuct * float32(math.Sqrt(float64(n.sumN)+1))
	best, bestU := 0, float32(math.Inf(-1))
	for i := range n.actions {
		q := parentQ
		if n.n[i] > 0 {
			q = n.sumScores[i] / float32(n.n[i])
		}
		u := q + globalFactor*n.priors[i]/float32(1+n.n[i])
		if u > bestU {
			bestU = u
			best = i
		}
	}
	return best
}

// selectAction picks the root's final move: greedy by visit count at
// Temperature 0, otherwise sampled from visits^(1/T).
func (t *Tree) selectAction(n *node) int {
	if t.cfg.Temperature <= 0 {
		best, bestN := 0, -1
		for i, v := range n.n {
			if v > bestN {
				bestN = v
				best = i
			}
		}
		return best
	}

	probs := make([]float32, len(n.n))
	var sum float32
	for i, v := range n.n {
		p := float32(math.Pow(float64(v)/float64(maxInt(n.sumN, 1)), 1/float64(t.cfg.Temperature)))
		probs[i] = p
		sum += p
	}
	if sum <= 0 {
		return 0
	}
	r := t.rng.Float32() * sum
	var cum float32
	for i, p := range probs {
		cum += p
		if r <= cum {
			return i
		}
	}
	return len(probs) - 1
}

// leafValue evaluates gs from side's perspective: via the value function
// when one is configured, or a shallow random rollout otherwise.
func (t *Tree) leafValue(gs *bbgame.GameState, side pitch.Side, d dice.Dice, log *bbgame.EventLog) float32 {
	if t.vf != nil {
		v := t.vf.Evaluate(features.Encode(gs))
		if side != gs.ActiveSide {
			v = -v
		}
		return v
	}
	return t.rollout(gs, side, d, log)
}

// rollout plays random legal actions for up to RolloutDepth plies and
// scores the result by score differential (or the actual result, if the
// rollout happens to finish the game).
func (t *Tree) rollout(gs *bbgame.GameState, side pitch.Side, d dice.Dice, log *bbgame.EventLog) float32 {
	for i := 0; i < t.cfg.RolloutDepth && gs.Phase == bbgame.PhasePlay; i++ {
		actions := bbgame.LegalActions(gs)
		if len(actions) == 0 {
			break
		}
		a := actions[t.rng.Intn(len(actions))]
		bbgame.Resolve(gs, d, log, a)
	}
	if gs.Phase == bbgame.PhaseGameOver {
		return terminalValue(gs, side)
	}
	diff := gs.Team(side).Score - gs.Team(side.Opponent()).Score
	return clampf(float32(diff), -1, 1)
}

// terminalValue scores a finished game from side's perspective: +1 win,
// -1 loss, 0 draw.
func terminalValue(gs *bbgame.GameState, side pitch.Side) float32 {
	diff := gs.Team(side).Score - gs.Team(side.Opponent()).Score
	switch {
	case diff > 0:
		return 1
	case diff < 0:
		return -1
	default:
		return 0
	}
}

// addDirichletNoise mixes Dir(alpha) noise into the root's priors, per
// AlphaZero's root exploration rule, so repeated searches from the same
// position don't always open with the identical child.
func (t *Tree) addDirichletNoise(n *node) {
	if t.cfg.DirichletWeight <= 0 || len(n.priors) == 0 {
		return
	}
	noise := make([]float32, len(n.priors))
	var sum float32
	for i := range noise {
		g := gammaSample(t.rng, float64(t.cfg.DirichletAlpha))
		noise[i] = float32(g)
		sum += noise[i]
	}
	if sum <= 0 {
		return
	}
	w := t.cfg.DirichletWeight
	for i := range n.priors {
		n.priors[i] = (1-w)*n.priors[i] + w*(noise[i]/sum)
	}
}

// gammaSample draws from Gamma(shape, 1) via Marsaglia & Tsang's method,
// boosted for shape < 1 per the standard Gamma(a) = Gamma(a+1)*U^(1/a)
// transform; used only to build Dirichlet root noise, so approximate
// correctness (not bit-exact statistical rigor) is enough.
func gammaSample(rng *rand.Rand, shape float64) float64 {
	if shape <= 0 {
		shape = 1e-3
	}
	if shape < 1 {
		u := rng.Float64()
		return gammaSample(rng, shape+1) * math.Pow(u, 1/shape)
	}
	d := shape - 1.0/3.0
	c := 1.0 / math.Sqrt(9*d)
	for {
		x := rng.NormFloat64()
		v := 1 + c*x
		if v <= 0 {
			continue
		}
		v = v * v * v
		u := rng.Float64()
		if u < 1-0.0331*x*x*x*x {
			return d * v
		}
		if math.Log(u) < 0.5*x*x+d*(1-v+math.Log(v)) {
			return d * v
		}
	}
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

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
