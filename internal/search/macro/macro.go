// Package macro implements the §4.M macro layer: eleven labelled
// high-level intents (SCORE, ADVANCE, CAGE, BLOCK, BLITZ, PICKUP, PASS,
// FOUL, REPOSITION, END_TURN, BLITZ_AND_SCORE), a greedy realization of a
// chosen macro into a concrete action sequence, and a second PUCT tree
// searching over macros the way internal/search/mcts searches over raw
// actions. The greedy-realize-then-score step is grounded on the teacher's
// internal/bot/strategy_hard.go: hardScoreMoves assigns an additive
// heuristic score to each candidate move and buildOrdersFromScored commits
// to the highest-scoring non-conflicting set — GreedyExpand does the same
// thing one action at a time against this engine's legal-action list
// instead of Diplomacy's order candidates.
package macro

import (
	"math"
	"math/rand"

	"github.com/tormund/gridiron/internal/features"
	"github.com/tormund/gridiron/internal/valuefn"
	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
)

// Kind is one of the eleven macro intents.
type Kind int

const (
	Score Kind = iota
	Advance
	Cage
	Block
	Blitz
	Pickup
	Pass
	Foul
	Reposition
	EndTurn
	BlitzAndScore
)

var kindNames = [...]string{
	"SCORE", "ADVANCE", "CAGE", "BLOCK", "BLITZ", "PICKUP", "PASS", "FOUL",
	"REPOSITION", "END_TURN", "BLITZ_AND_SCORE",
}

func (k Kind) String() string {
	if int(k) < 0 || int(k) >= len(kindNames) {
		return "UNKNOWN"
	}
	return kindNames[k]
}

// NumKinds is the size of the macro vocabulary.
const NumKinds = 11

// maxStepsPerMacro bounds GreedyExpand's internal loop so a macro that
// keeps finding "improving" moves (e.g. repeated small repositions) can't
// consume the whole turn budget in one call.
const maxStepsPerMacro = 8

// Available enumerates the macros that make sense to attempt from gs,
// given which side is active and the state of the ball. EndTurn is always
// included — it's always legal and is the macro driver's signal to stop
// issuing more macros this turn.
func Available(gs *bbgame.GameState) []Kind {
	side := gs.ActiveSide
	carrier := gs.Carrier()
	hasCarrier := carrier != nil && carrier.Side == side

	hasUnacted := false
	hasAdjacentEnemy := false
	hasProneAdjacentEnemy := false
	for i := 1; i <= bbgame.NumPieces; i++ {
		p := &gs.Pieces[i]
		if p.Side != side || p.Scratch.HasActed || p.State != bbgame.Standing {
			continue
		}
		hasUnacted = true
		for j := 1; j <= bbgame.NumPieces; j++ {
			q := &gs.Pieces[j]
			if q.Side == side || !q.State.OnPitch() || !pitch.IsAdjacent(p.Pos, q.Pos) {
				continue
			}
			hasAdjacentEnemy = true
			if q.State == bbgame.Prone || q.State == bbgame.Stunned {
				hasProneAdjacentEnemy = true
			}
		}
	}

	kinds := []Kind{EndTurn}
	if hasCarrier {
		kinds = append(kinds, Score, BlitzAndScore, Pass, Cage)
	}
	if gs.Ball.Status == bbgame.BallOnGround {
		kinds = append(kinds, Pickup)
	}
	if hasAdjacentEnemy {
		kinds = append(kinds, Block, Blitz)
	} else if hasUnacted {
		kinds = append(kinds, Blitz)
	}
	if hasProneAdjacentEnemy {
		kinds = append(kinds, Foul)
	}
	if hasUnacted {
		kinds = append(kinds, Advance, Reposition)
	}
	return kinds
}

// GreedyExpand realizes kind as a concrete action sequence, mutating gs in
// place (drawing dice and appending to log as each step resolves) and
// returning the actions taken in order. It stops when the macro's intent
// is satisfied, no further improving action exists, the turn ends, or
// maxStepsPerMacro is reached — whichever comes first.
func GreedyExpand(gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog, kind Kind) []bbgame.Action {
	if kind == EndTurn {
		a := bbgame.Action{Kind: bbgame.ActionEndTurn}
		bbgame.Resolve(gs, d, log, a)
		return []bbgame.Action{a}
	}

	var taken []bbgame.Action
	side := gs.ActiveSide
	for step := 0; step < maxStepsPerMacro; step++ {
		if gs.Phase != bbgame.PhasePlay || gs.ActiveSide != side {
			break
		}
		legal := bbgame.LegalActions(gs)
		best, bestScore, found := bestAction(gs, legal, kind)
		if !found || best.Kind == bbgame.ActionEndTurn {
			break
		}
		if bestScore < 0 {
			break
		}
		bbgame.Resolve(gs, d, log, best)
		taken = append(taken, best)
	}
	return taken
}

// bestAction scores every legal action (other than ActionEndTurn) per
// kind's heuristic and returns the highest-scoring one.
func bestAction(gs *bbgame.GameState, legal []bbgame.Action, kind Kind) (bbgame.Action, float32, bool) {
	best := bbgame.Action{}
	bestScore := float32(math.Inf(-1))
	found := false
	for _, a := range legal {
		if a.Kind == bbgame.ActionEndTurn {
			continue
		}
		s := score(gs, a, kind)
		if s > bestScore {
			bestScore = s
			best = a
			found = true
		}
	}
	return best, bestScore, found
}

// score assigns a heuristic value to a candidate action under a macro
// intent, in the spirit of hardScoreMoves's additive bonus/penalty style.
func score(gs *bbgame.GameState, a bbgame.Action, kind Kind) float32 {
	af := features.EncodeAction(gs, a)
	var s float32

	switch kind {
	case Score, BlitzAndScore:
		if af[features.ActFeatIsScoringMove] > 0 {
			s += 100
		}
		if af[features.ActFeatIsBallCarrier] > 0 {
			s += 10 * (1 - af[features.ActFeatDistToEndzone])
			if af[features.ActFeatMovesBallForward] > 0 {
				s += 3
			}
		}
		if kind == BlitzAndScore && a.Kind == bbgame.ActionBlitz {
			s += 5 + af[features.ActFeatBlockDiceSigned]*3
		}
		if a.Kind == bbgame.ActionBlock || a.Kind == bbgame.ActionMultiBlock {
			s -= 5
		}

	case Advance, Reposition:
		if a.Kind != bbgame.ActionMove {
			s -= 10
		}
		p := gs.Piece(a.PieceId)
		if p != nil {
			before := pitch.Distance(p.Pos, pitch.At(pitch.EndzoneX(p.Side.Opponent()), p.Pos.Y))
			after := pitch.Distance(a.Dest, pitch.At(pitch.EndzoneX(p.Side.Opponent()), a.Dest.Y))
			s += float32(before-after)
		}
		if af[features.ActFeatGFIRequired] > 0 {
			s -= 2
		}

	case Cage:
		p := gs.Piece(a.PieceId)
		carrier := gs.Carrier()
		if a.Kind == bbgame.ActionMove && p != nil && carrier != nil {
			distBefore := pitch.Distance(p.Pos, carrier.Pos)
			distAfter := pitch.Distance(a.Dest, carrier.Pos)
			if distAfter == 1 {
				s += 8
			} else if distAfter < distBefore {
				s += 2
			} else {
				s -= 3
			}
		}

	case Block:
		if a.Kind == bbgame.ActionBlock || a.Kind == bbgame.ActionMultiBlock {
			s += 10 + af[features.ActFeatBlockDiceSigned]*5
			if af[features.ActFeatTargetIsProne] > 0 {
				s -= 8
			}
		} else {
			s -= 10
		}

	case Blitz:
		if a.Kind == bbgame.ActionBlitz {
			s += 10 + af[features.ActFeatBlockDiceSigned]*5
		} else if a.Kind == bbgame.ActionMove {
			s += 1
		} else {
			s -= 10
		}

	case Pickup:
		if a.Kind == bbgame.ActionMove {
			p := gs.Piece(a.PieceId)
			if p != nil {
				before := pitch.Distance(p.Pos, gs.Ball.Pos)
				after := pitch.Distance(a.Dest, gs.Ball.Pos)
				s += float32(before - after)
			}
		} else {
			s -= 5
		}

	case Pass:
		if a.Kind == bbgame.ActionPass || a.Kind == bbgame.ActionHandOff || a.Kind == bbgame.ActionHailMary {
			s += 10
			if af[features.ActFeatDistToEndzone] < 0.3 {
				s += 5
			}
		} else {
			s -= 10
		}

	case Foul:
		if a.Kind == bbgame.ActionFoul {
			s += 10
		} else {
			s -= 10
		}
	}

	return s
}

// priors returns a softmax distribution over kinds built from a cheap,
// availability-driven heuristic (no learned macro policy exists), used as
// the PUCT prior the way internal/policy.Score is used
// at the action level.
func priors(gs *bbgame.GameState, kinds []Kind) []float32 {
	scores := make([]float32, len(kinds))
	carrier := gs.Carrier()
	for i, k := range kinds {
		switch k {
		case Score:
			if carrier != nil {
				scores[i] = 3
			}
		case BlitzAndScore:
			scores[i] = 1
		case Pass:
			scores[i] = 1
		case Cage:
			scores[i] = 1.5
		case Block, Blitz:
			scores[i] = 2
		case Foul:
			scores[i] = 0.5
		case Pickup:
			scores[i] = 2.5
		case Advance:
			scores[i] = 1
		case Reposition:
			scores[i] = 0.5
		case EndTurn:
			scores[i] = 0.2
		}
	}
	var maxS float32 = scores[0]
	for _, v := range scores {
		if v > maxS {
			maxS = v
		}
	}
	probs := make([]float32, len(scores))
	var sum float32
	for i, v := range scores {
		e := float32(math.Exp(float64(v - maxS)))
		probs[i] = e
		sum += e
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// Config mirrors mcts.Config at macro granularity.
type Config struct {
	Iterations  int
	CPuct       float32
	MaxDepth    int // max number of chained macros explored per traverse
	Temperature float32
}

func DefaultConfig() Config {
	return Config{Iterations: 150, CPuct: 1.5, MaxDepth: 6, Temperature: 0}
}

type node struct {
	side      pitch.Side
	kinds     []Kind
	p         []float32
	children  []*node
	n         []int
	sumScores []float32
	sumN      int
}

// Tree runs PUCT search over macro choices, each edge realized via
// GreedyExpand rather than a single rules-engine action.
type Tree struct {
	cfg Config
	vf  valuefn.ValueFn
	rng *rand.Rand
}

func New(vf valuefn.ValueFn, cfg Config, seed int64) *Tree {
	return &Tree{cfg: cfg, vf: vf, rng: rand.New(rand.NewSource(seed))}
}

// Search runs cfg.Iterations traverses from root and returns the chosen
// macro plus the vocabulary/visit-fraction pair (for decision logging by
// the caller, which has access to the action-level decisionlog.Log).
func (t *Tree) Search(root *bbgame.GameState) (Kind, []Kind, []float32) {
	rootNode := t.expand(root)
	if rootNode == nil {
		return EndTurn, []Kind{EndTurn}, []float32{1}
	}
	for i := 0; i < t.cfg.Iterations; i++ {
		gs := root.Clone()
		d := dice.NewSeeded(t.rng.Int63())
		log := bbgame.NewEventLog()
		t.simulate(rootNode, gs, d, log, 0)
	}

	visits := make([]float32, len(rootNode.kinds))
	for i, n := range rootNode.n {
		if rootNode.sumN > 0 {
			visits[i] = float32(n) / float32(rootNode.sumN)
		}
	}
	best, bestN := 0, -1
	for i, v := range rootNode.n {
		if v > bestN {
			bestN = v
			best = i
		}
	}
	return rootNode.kinds[best], rootNode.kinds, visits
}

func (t *Tree) expand(gs *bbgame.GameState) *node {
	if gs.Phase != bbgame.PhasePlay {
		return nil
	}
	kinds := Available(gs)
	if len(kinds) == 0 {
		return nil
	}
	return &node{
		side:      gs.ActiveSide,
		kinds:     kinds,
		p:         priors(gs, kinds),
		children:  make([]*node, len(kinds)),
		n:         make([]int, len(kinds)),
		sumScores: make([]float32, len(kinds)),
	}
}

func (t *Tree) simulate(n *node, gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog, depth int) float32 {
	if depth >= t.cfg.MaxDepth {
		return t.leafValue(gs, n.side)
	}

	i := t.selectChild(n)
	kind := n.kinds[i]
	childSide := gs.ActiveSide

	GreedyExpand(gs, d, log, kind)

	var value float32
	switch {
	case gs.Phase == bbgame.PhaseGameOver:
		value = terminalValue(gs, childSide)
	case gs.Phase != bbgame.PhasePlay:
		value = t.leafValue(gs, childSide)
	default:
		if n.children[i] == nil {
			n.children[i] = t.expand(gs)
		}
		if n.children[i] == nil {
			value = t.leafValue(gs, childSide)
		} else {
			value = t.simulate(n.children[i], gs, d, log, depth+1)
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
	for i := range n.kinds {
		q := parentQ
		if n.n[i] > 0 {
			q = n.sumScores[i] / float32(n.n[i])
		}
		u := q + globalFactor*n.p[i]/float32(1+n.n[i])
		if u > bestU {
			bestU = u
			best = i
		}
	}
	return best
}

func (t *Tree) leafValue(gs *bbgame.GameState, side pitch.Side) float32 {
	if t.vf == nil {
		diff := gs.Team(side).Score - gs.Team(side.Opponent()).Score
		return clampf(float32(diff), -1, 1)
	}
	v := t.vf.Evaluate(features.Encode(gs))
	if side != gs.ActiveSide {
		v = -v
	}
	return v
}

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

func clampf(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
