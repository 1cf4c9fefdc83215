package bbgame

import (
	"testing"

	"github.com/tormund/gridiron/pkg/dice"
)

func TestRollWeatherTable(t *testing.T) {
	tests := []struct {
		name   string
		d6s    []int
		want   Weather
	}{
		{"snake eyes -> sweltering heat", []int{1, 1}, SwelteringHeat},
		{"three -> sweltering heat", []int{1, 2}, SwelteringHeat},
		{"four -> very sunny", []int{1, 3}, VerySunny},
		{"seven -> nice", []int{3, 4}, Nice},
		{"eleven -> pouring rain", []int{5, 6}, PouringRain},
		{"boxcars -> blizzard", []int{6, 6}, Blizzard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dice.NewFixed(tt.d6s, nil, nil)
			if got := RollWeather(d); got != tt.want {
				t.Errorf("RollWeather(%v) = %v, want %v", tt.d6s, got, tt.want)
			}
		})
	}
}

func TestWeatherModifiers(t *testing.T) {
	if WeatherPickupMod(Blizzard) != 1 || WeatherPickupMod(PouringRain) != 1 {
		t.Error("Blizzard and PouringRain should impose a +1 pickup modifier")
	}
	if WeatherPickupMod(Nice) != 0 {
		t.Error("Nice weather should impose no pickup modifier")
	}
	if WeatherCatchMod(PouringRain) != 1 {
		t.Error("PouringRain should impose a +1 catch modifier")
	}
	if WeatherCatchMod(Blizzard) != 0 {
		t.Error("Blizzard should not modify catch rolls")
	}
	if WeatherPassMod(Blizzard) != 1 {
		t.Error("Blizzard should impose a +1 pass modifier")
	}
	if WeatherPassMod(PouringRain) != 0 {
		t.Error("PouringRain should not modify pass rolls")
	}
}
