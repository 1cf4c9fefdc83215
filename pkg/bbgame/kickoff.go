package bbgame

import "github.com/tormund/gridiron/pkg/dice"

// KickoffEvent enumerates the eleven entries of the 2d6 kickoff table (§6).
type KickoffEvent int

const (
	GetTheRef KickoffEvent = iota
	Riot
	PerfectDefence
	HighKick
	CheeringFans
	BrilliantCoaching
	ChangingWeather
	QuickSnap
	BlitzEvent
	ThrowARock
	PitchInvasion
)

func (k KickoffEvent) String() string {
	switch k {
	case GetTheRef:
		return "get-the-ref"
	case Riot:
		return "riot"
	case PerfectDefence:
		return "perfect-defence"
	case HighKick:
		return "high-kick"
	case CheeringFans:
		return "cheering-fans"
	case BrilliantCoaching:
		return "brilliant-coaching"
	case ChangingWeather:
		return "changing-weather"
	case QuickSnap:
		return "quick-snap"
	case BlitzEvent:
		return "blitz"
	case ThrowARock:
		return "throw-a-rock"
	case PitchInvasion:
		return "pitch-invasion"
	default:
		return "unknown"
	}
}

// RollKickoff implements the fixed 2d6 kickoff event table from §6.
func RollKickoff(d dice.Dice) KickoffEvent {
	a, b := d.D2D6()
	switch a + b {
	case 2:
		return GetTheRef
	case 3:
		return Riot
	case 4:
		return PerfectDefence
	case 5:
		return HighKick
	case 6:
		return CheeringFans
	case 7:
		return BrilliantCoaching
	case 8:
		return ChangingWeather
	case 9:
		return QuickSnap
	case 10:
		return BlitzEvent
	case 11:
		return ThrowARock
	default:
		return PitchInvasion
	}
}

// KickScatterDistance returns how far the ball scatters off its kicked
// square for a given d6 result, per the Kick skill's halved-distance rule.
func KickScatterDistance(d6 int) int {
	return (d6 + 1) / 2
}

// ApplyKickoffEvent logs the kickoff event and resolves the one entry that
// has an effect here: ChangingWeather rerolls the weather table. Every other
// entry (HighKick, QuickSnap and Blitz included) is logged as a named no-op;
// neither this package nor the simulator driver applies its placement or
// tempo effect.
func ApplyKickoffEvent(gs *GameState, d dice.Dice, log *EventLog, evt KickoffEvent) {
	log.Append(Event{Kind: EventKickoffEvent, Note: evt.String()})
	switch evt {
	case ChangingWeather:
		gs.WeatherCond = RollWeather(d)
	case HighKick, QuickSnap, BlitzEvent:
		// Logged only; no placement or tempo effect is applied.
	default:
	}
}
