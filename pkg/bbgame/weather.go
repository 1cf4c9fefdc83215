package bbgame

import "github.com/tormund/gridiron/pkg/dice"

// RollWeather implements the fixed 2d6 weather table from §6.
func RollWeather(d dice.Dice) Weather {
	a, b := d.D2D6()
	switch a + b {
	case 2, 3:
		return SwelteringHeat
	case 4:
		return VerySunny
	case 11:
		return PouringRain
	case 12:
		return Blizzard
	default:
		return Nice
	}
}

// WeatherPickupMod returns the weather's additive modifier to pickup targets.
func WeatherPickupMod(w Weather) int {
	if w == Blizzard || w == PouringRain {
		return 1
	}
	return 0
}

// WeatherCatchMod returns the weather's additive modifier to catch targets.
func WeatherCatchMod(w Weather) int {
	if w == PouringRain {
		return 1
	}
	return 0
}

// WeatherPassMod returns the weather's additive modifier to pass targets.
func WeatherPassMod(w Weather) int {
	if w == Blizzard {
		return 1
	}
	return 0
}
