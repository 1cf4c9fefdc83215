// Package sim is the §2 row N simulator driver: it places both rosters,
// resolves the kickoff sequence, and drives the flow controller to
// completion by asking a pluggable per-side Strategy for the next decision
// at every PhasePlay step. Grounded on the teacher's internal/bot/arena.go
// drive loop (create state, loop phases until IsGameOver, delegate
// decision-making to a Strategy per side) — stripped of the Postgres
// persistence arena.go layers in because DBs, since headless training runs
// have nowhere to write phase-by-phase history and don't need one.
package sim

import (
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"

	"github.com/tormund/gridiron/internal/decisionlog"
	"github.com/tormund/gridiron/internal/features"
	"github.com/tormund/gridiron/internal/policy"
	"github.com/tormund/gridiron/internal/search/macro"
	"github.com/tormund/gridiron/internal/search/mcts"
	"github.com/tormund/gridiron/internal/valuefn"
	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/dice"
	"github.com/tormund/gridiron/pkg/pitch"
	"github.com/tormund/gridiron/pkg/roster"
)

// AIKind is one of the five pluggable decision-making strategies the CLI
// can assign independently to each side.
type AIKind string

const (
	Random    AIKind = "random"
	Greedy    AIKind = "greedy"
	Learning  AIKind = "learning"
	MCTS      AIKind = "mcts"
	MacroMCTS AIKind = "macro_mcts"
)

// DefaultActionCapPerHalf is the §6 runaway-game safety valve: if one half
// consumes this many resolved actions without reaching half time on its
// own, the driver forces the half to end.
const DefaultActionCapPerHalf = 5000

// AIConfig configures one side's decision-making.
type AIConfig struct {
	Kind    AIKind
	ValueFn valuefn.ValueFn // nil is legal: mcts/macro_mcts fall back to rollout/score-diff leaves
	Prior   *policy.Prior   // nil is legal: mcts/learning fall back to a uniform prior
	MCTS    mcts.Config
	Macro   macro.Config
}

// Config describes one full game.
type Config struct {
	HomeRoster       *roster.Roster
	AwayRoster       *roster.Roster
	HomeAI           AIConfig
	AwayAI           AIConfig
	Seed             int64
	DecisionLog      *decisionlog.Log // optional; mcts strategies append training records to it (macro_mcts decisions are not recorded)
	ActionCapPerHalf int              // 0 uses DefaultActionCapPerHalf
}

// Result summarizes a completed game.
type Result struct {
	HomeScore    int
	AwayScore    int
	Winner       string // "home", "away", or "draw"
	TotalActions int
	Events       []bbgame.Event
	DecisionLog  *decisionlog.Log // set when the Config that produced this Result supplied one
}

// Run plays one full game (both halves) to completion and returns the
// result. It never returns an error for anything the rules engine itself
// can produce — bbgame.Violate panics with an *bbgame.InvariantViolation,
// which only the CLI boundary is expected to recover from.
func Run(cfg Config) (*Result, error) {
	if cfg.ActionCapPerHalf <= 0 {
		cfg.ActionCapPerHalf = DefaultActionCapPerHalf
	}

	d := dice.NewSeeded(cfg.Seed)
	log := bbgame.NewEventLog()

	gs := bbgame.NewInitialState(bbgame.RollWeather(d))

	homePieces, err := roster.BuildTeam(cfg.HomeRoster, pitch.Home, 1)
	if err != nil {
		return nil, fmt.Errorf("build home team: %w", err)
	}
	awayPieces, err := roster.BuildTeam(cfg.AwayRoster, pitch.Away, 12)
	if err != nil {
		return nil, fmt.Errorf("build away team: %w", err)
	}
	for _, p := range homePieces {
		gs.Pieces[p.Id] = p
	}
	for _, p := range awayPieces {
		gs.Pieces[p.Id] = p
	}
	gs.Home.RerollsRemaining = cfg.HomeRoster.Rerolls
	gs.Home.HasApothecary = cfg.HomeRoster.Apothecary
	gs.Away.RerollsRemaining = cfg.AwayRoster.Rerolls
	gs.Away.HasApothecary = cfg.AwayRoster.Apothecary

	if d.D6()%2 == 0 {
		gs.KickingSide = pitch.Away
	} else {
		gs.KickingSide = pitch.Home
	}
	gs.Phase = bbgame.PhaseSetup

	homeStrat := buildStrategy(cfg.HomeAI, cfg.Seed^0x5a5a5a5a, cfg.DecisionLog)
	awayStrat := buildStrategy(cfg.AwayAI, cfg.Seed^0x3c3c3c3c, cfg.DecisionLog)

	actionsThisHalf := 0
	totalActions := 0
	currentHalf := gs.Half

	for gs.Phase != bbgame.PhaseGameOver {
		switch gs.Phase {
		case bbgame.PhaseSetup:
			placeForKickoff(gs)
			gs.Phase = bbgame.PhaseKickoff
		case bbgame.PhaseKickoff:
			runKickoff(gs, d, log)
		case bbgame.PhaseHalfTime:
			gs.KickingSide = gs.KickingSide.Opponent()
			gs.Phase = bbgame.PhaseSetup
		case bbgame.PhaseTouchdown:
			gs.Phase = bbgame.PhaseSetup
		case bbgame.PhasePlay:
			if gs.Half != currentHalf {
				currentHalf = gs.Half
				actionsThisHalf = 0
			}
			if actionsThisHalf >= cfg.ActionCapPerHalf {
				bbgame.HalfTransition(gs, d, log)
				continue
			}
			strat := homeStrat
			if gs.ActiveSide == pitch.Away {
				strat = awayStrat
			}
			n := strat(gs, d, log)
			actionsThisHalf += n
			totalActions += n
		default:
			gs.Phase = bbgame.PhaseGameOver
		}
	}

	result := &Result{
		HomeScore:    gs.Home.Score,
		AwayScore:    gs.Away.Score,
		TotalActions: totalActions,
		Events:       log.Events(),
		DecisionLog:  cfg.DecisionLog,
	}
	switch {
	case gs.Home.Score > gs.Away.Score:
		result.Winner = "home"
	case gs.Away.Score > gs.Home.Score:
		result.Winner = "away"
	default:
		result.Winner = "draw"
	}

	if cfg.DecisionLog != nil {
		homeResult := float32(0)
		switch result.Winner {
		case "home":
			homeResult = 1
		case "away":
			homeResult = -1
		}
		cfg.DecisionLog.BackfillOutcome(homeResult)
	}

	return result, nil
}

// RunMany plays count independent games concurrently, each derived from
// base with its seed offset by index, and returns one Result per game in
// index order. Independent games share no state, so this is the trivial
// parallel case §5 calls out for MCTS self-play batches — grounded on the
// same golang.org/x/sync/errgroup fan-out-and-join idiom the pack uses for
// concurrent independent work, adopted here since the teacher itself has
// no batch-of-games concept to imitate directly.
func RunMany(base Config, count int) ([]*Result, error) {
	results := make([]*Result, count)
	var g errgroup.Group
	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			cfg := base
			cfg.Seed = base.Seed + int64(i)
			if base.DecisionLog != nil {
				cfg.DecisionLog = &decisionlog.Log{}
			}
			res, err := Run(cfg)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// strategy applies one decision to the live state (drawing dice, appending
// to log) and returns how many rules-engine actions it consumed — 1 for
// every per-action AI kind, and however many GreedyExpand realized for
// macro_mcts.
type strategy func(gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog) int

func buildStrategy(cfg AIConfig, seed int64, dlog *decisionlog.Log) strategy {
	rng := rand.New(rand.NewSource(seed))

	switch cfg.Kind {
	case Greedy:
		return func(gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog) int {
			a := greedyPick(gs)
			bbgame.Resolve(gs, d, log, a)
			return 1
		}

	case Learning:
		return func(gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog) int {
			actions := bbgame.LegalActions(gs)
			if len(actions) == 0 {
				return 0
			}
			probs := policy.Score(cfg.Prior, gs, actions, policy.DefaultTemperature)
			best := policy.TopK(probs, 1)
			a := actions[0]
			if len(best) > 0 {
				a = actions[best[0]]
			}
			bbgame.Resolve(gs, d, log, a)
			return 1
		}

	case MCTS:
		return func(gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog) int {
			tree := mcts.New(cfg.ValueFn, cfg.Prior, cfg.MCTS, rng.Int63())
			a, _, _ := tree.Search(gs, dlog)
			bbgame.Resolve(gs, d, log, a)
			return 1
		}

	case MacroMCTS:
		return func(gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog) int {
			tree := macro.New(cfg.ValueFn, cfg.Macro, rng.Int63())
			kind, _, _ := tree.Search(gs)
			taken := macro.GreedyExpand(gs, d, log, kind)
			if len(taken) == 0 {
				bbgame.Resolve(gs, d, log, bbgame.Action{Kind: bbgame.ActionEndTurn})
				return 1
			}
			return len(taken)
		}

	default: // Random
		return func(gs *bbgame.GameState, d dice.Dice, log *bbgame.EventLog) int {
			actions := bbgame.LegalActions(gs)
			if len(actions) == 0 {
				return 0
			}
			a := actions[rng.Intn(len(actions))]
			bbgame.Resolve(gs, d, log, a)
			return 1
		}
	}
}

// greedyPick scores every legal action with a small hand-written heuristic
// (score the move, else progress the ball, else take a favourable block)
// and returns the best, falling back to ActionEndTurn. Grounded on the
// same additive-bonus shape as internal/search/macro's scorer, kept
// separate and action-agnostic since the "greedy" AI kind has no macro
// concept of intent.
func greedyPick(gs *bbgame.GameState) bbgame.Action {
	actions := bbgame.LegalActions(gs)
	best := bbgame.Action{Kind: bbgame.ActionEndTurn}
	var bestScore float32 = -1
	for _, a := range actions {
		if a.Kind == bbgame.ActionEndTurn {
			continue
		}
		af := features.EncodeAction(gs, a)
		var s float32
		if af[features.ActFeatIsScoringMove] > 0 {
			s += 100
		}
		if af[features.ActFeatIsBallCarrier] > 0 {
			s += 10 * (1 - af[features.ActFeatDistToEndzone])
		}
		if a.Kind == bbgame.ActionBlock || a.Kind == bbgame.ActionBlitz || a.Kind == bbgame.ActionMultiBlock {
			s += 3 + af[features.ActFeatBlockDiceSigned]*2
		}
		if s > bestScore {
			bestScore = s
			best = a
		}
	}
	return best
}
