// Command simulate plays one headless game between two rosters and reports
// the result. Flag parsing follows the teacher's cmd/bot/main.go shape
// (flags feed a small set of constructed values, then a single blocking run
// call) widened to pflag+viper so every flag can also be set via
// SIMULATE_-prefixed environment variables, matching pkg/roster's viper
// usage elsewhere in this module.
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tormund/gridiron/internal/decisionlog"
	"github.com/tormund/gridiron/internal/logging"
	"github.com/tormund/gridiron/internal/policy"
	"github.com/tormund/gridiron/internal/search/macro"
	"github.com/tormund/gridiron/internal/search/mcts"
	"github.com/tormund/gridiron/internal/sim"
	"github.com/tormund/gridiron/internal/valuefn"
	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/roster"
)

func main() {
	logging.Init()
	l := logging.Get()

	pflag.String("home", "", "path to the home team's roster YAML")
	pflag.String("away", "", "path to the away team's roster YAML")
	pflag.String("home-ai", string(sim.Random), "home AI kind: random, greedy, learning, mcts, macro_mcts")
	pflag.String("away-ai", string(sim.Random), "away AI kind: random, greedy, learning, mcts, macro_mcts")
	pflag.Int64("seed", 1, "RNG seed for a reproducible game")
	pflag.String("weights", "", "path to a value-function weights file (optional)")
	pflag.String("policy", "", "path to a prior policy weights file (optional)")
	pflag.Int("mcts-iters", mcts.DefaultConfig().Iterations, "MCTS iterations per decision")
	pflag.Int("macro-iters", macro.DefaultConfig().Iterations, "macro-level MCTS iterations per decision")
	pflag.String("decision-log", "", "path to write a flatbuffers decision log (optional)")
	pflag.Int("games", 1, "number of independent games to play concurrently")
	pflag.Parse()

	v := viper.New()
	v.SetEnvPrefix("SIMULATE")
	v.AutomaticEnv()
	if err := v.BindPFlags(pflag.CommandLine); err != nil {
		l.Fatal().Err(err).Msg("bind flags")
	}

	homePath := v.GetString("home")
	awayPath := v.GetString("away")
	if homePath == "" || awayPath == "" {
		l.Fatal().Msg("--home and --away roster paths are required")
	}

	homeRoster, err := roster.Load(homePath)
	if err != nil {
		l.Fatal().Err(err).Str("path", homePath).Msg("load home roster")
	}
	awayRoster, err := roster.Load(awayPath)
	if err != nil {
		l.Fatal().Err(err).Str("path", awayPath).Msg("load away roster")
	}

	vf := loadValueFn(v.GetString("weights"), l)
	prior := loadPrior(v.GetString("policy"), l)

	mctsCfg := mcts.DefaultConfig()
	mctsCfg.Iterations = v.GetInt("mcts-iters")
	macroCfg := macro.DefaultConfig()
	macroCfg.Iterations = v.GetInt("macro-iters")

	cfg := sim.Config{
		HomeRoster: homeRoster,
		AwayRoster: awayRoster,
		HomeAI: sim.AIConfig{
			Kind: sim.AIKind(v.GetString("home-ai")), ValueFn: vf, Prior: prior, MCTS: mctsCfg, Macro: macroCfg,
		},
		AwayAI: sim.AIConfig{
			Kind: sim.AIKind(v.GetString("away-ai")), ValueFn: vf, Prior: prior, MCTS: mctsCfg, Macro: macroCfg,
		},
		Seed: v.GetInt64("seed"),
	}

	logPath := v.GetString("decision-log")
	if logPath != "" {
		cfg.DecisionLog = &decisionlog.Log{}
	}

	games := v.GetInt("games")
	if games <= 1 {
		result, exitCode := run(cfg, l)
		if result != nil && logPath != "" {
			if err := os.WriteFile(logPath, result.DecisionLog.Encode(), 0o644); err != nil {
				l.Error().Err(err).Str("path", logPath).Msg("write decision log")
			}
		}
		if result != nil {
			fmt.Printf("%s %d - %d %s (actions=%d)\n", homeRoster.Name, result.HomeScore, result.AwayScore, awayRoster.Name, result.TotalActions)
			l.Info().Str("winner", result.Winner).Int("home_score", result.HomeScore).Int("away_score", result.AwayScore).Msg("game complete")
		}
		os.Exit(exitCode)
	}

	exitCode := runBatch(cfg, games, logPath, l)
	os.Exit(exitCode)
}

// runBatch plays games independent games concurrently via sim.RunMany and
// reports a summary line plus per-game decision logs (written as
// "<path>.<index>" when --decision-log is set).
func runBatch(cfg sim.Config, games int, logPath string, l zerolog.Logger) (exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(*bbgame.InvariantViolation); ok {
				l.Error().Str("reason", iv.Reason).Msg("invariant violation")
				exitCode = 1
				return
			}
			panic(r)
		}
	}()

	results, err := sim.RunMany(cfg, games)
	if err != nil {
		l.Error().Err(err).Msg("batch simulation failed")
		return 1
	}

	homeWins, awayWins, draws := 0, 0, 0
	for i, res := range results {
		switch res.Winner {
		case "home":
			homeWins++
		case "away":
			awayWins++
		default:
			draws++
		}
		if logPath != "" && res.DecisionLog != nil {
			path := fmt.Sprintf("%s.%d", logPath, i)
			if err := os.WriteFile(path, res.DecisionLog.Encode(), 0o644); err != nil {
				l.Error().Err(err).Str("path", path).Msg("write decision log")
			}
		}
	}
	fmt.Printf("%d games: home %d - %d away (%d draws)\n", games, homeWins, awayWins, draws)
	l.Info().Int("games", games).Int("home_wins", homeWins).Int("away_wins", awayWins).Int("draws", draws).Msg("batch complete")
	return 0
}

// run drives one game and converts an *bbgame.InvariantViolation panic into
// a logged, nonzero exit rather than a crash, matching the rules engine's
// own documented contract that Violate is a programmer-error signal meant
// to surface at a process boundary. runBatch does the same for the
// concurrent-games path.
func run(cfg sim.Config, l zerolog.Logger) (result *sim.Result, exitCode int) {
	defer func() {
		if r := recover(); r != nil {
			if iv, ok := r.(*bbgame.InvariantViolation); ok {
				l.Error().Str("reason", iv.Reason).Msg("invariant violation")
				exitCode = 1
				return
			}
			panic(r)
		}
	}()

	res, err := sim.Run(cfg)
	if err != nil {
		l.Error().Err(err).Msg("simulation failed")
		return nil, 1
	}
	return res, 0
}

func loadValueFn(path string, l zerolog.Logger) valuefn.ValueFn {
	if path == "" {
		return valuefn.Constant(0)
	}
	vf, err := valuefn.Load(path)
	if err != nil {
		l.Warn().Err(err).Str("path", path).Msg("falling back to baseline value function")
		return valuefn.Constant(0)
	}
	return vf
}

func loadPrior(path string, l zerolog.Logger) *policy.Prior {
	if path == "" {
		return nil
	}
	p, err := policy.Load(path)
	if err != nil {
		l.Warn().Err(err).Str("path", path).Msg("falling back to uniform prior")
		return nil
	}
	return p
}
