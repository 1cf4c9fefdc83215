package pitch

import "testing"

func TestOnPitch(t *testing.T) {
	tests := []struct {
		name string
		p    Pos
		want bool
	}{
		{"origin", At(0, 0), true},
		{"far corner", At(Width-1, Height-1), true},
		{"negative x", At(-1, 5), false},
		{"x overflow", At(Width, 5), false},
		{"negative y", At(5, -1), false},
		{"y overflow", At(5, Height), false},
		{"off pitch sentinel", Off(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := OnPitch(tt.p); got != tt.want {
				t.Errorf("OnPitch(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestEqual(t *testing.T) {
	if !At(3, 4).Equal(At(3, 4)) {
		t.Error("identical on-pitch positions should be equal")
	}
	if At(3, 4).Equal(At(3, 5)) {
		t.Error("different on-pitch positions should not be equal")
	}
	if !Off().Equal(Off()) {
		t.Error("two off-pitch sentinels should be equal regardless of X/Y")
	}
	if Off().Equal(At(0, 0)) {
		t.Error("off-pitch should never equal an on-pitch square")
	}
}

func TestDistanceIsChebyshev(t *testing.T) {
	tests := []struct {
		a, b Pos
		want int
	}{
		{At(0, 0), At(0, 0), 0},
		{At(0, 0), At(3, 0), 3},
		{At(0, 0), At(0, 3), 3},
		{At(0, 0), At(3, 3), 3},
		{At(2, 2), At(5, 3), 3},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%+v, %+v) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestIsAdjacent(t *testing.T) {
	center := At(5, 5)
	for _, n := range Adjacent(center) {
		if !IsAdjacent(center, n) {
			t.Errorf("Adjacent(%+v) returned %+v which IsAdjacent rejects", center, n)
		}
	}
	if IsAdjacent(center, center) {
		t.Error("a square is not adjacent to itself")
	}
	if IsAdjacent(center, At(5, 7)) {
		t.Error("distance 2 should not be adjacent")
	}
}

func TestAdjacentExcludesOffPitchNeighbours(t *testing.T) {
	corner := At(0, 0)
	for _, n := range Adjacent(corner) {
		if !OnPitch(n) {
			t.Errorf("Adjacent(%+v) returned off-pitch neighbour %+v", corner, n)
		}
	}
	if got := len(Adjacent(corner)); got != 3 {
		t.Errorf("corner square should have 3 on-pitch neighbours, got %d", got)
	}
}

func TestScatterDirectionWrapsD8Faces(t *testing.T) {
	want := []Direction{N, NE, E, SE, S, SW, W, NW}
	for face := 1; face <= 8; face++ {
		if got := ScatterDirection(face); got != want[face-1] {
			t.Errorf("ScatterDirection(%d) = %v, want %v", face, got, want[face-1])
		}
	}
}

func TestStepOffPitchIsNoop(t *testing.T) {
	if got := Step(Off(), N); !got.OffPitch {
		t.Errorf("stepping an off-pitch position should stay off-pitch, got %+v", got)
	}
}

func TestWideZoneAndEndzone(t *testing.T) {
	if !WideZone(At(10, 0)) || !WideZone(At(10, 14)) {
		t.Error("y=0 and y=14 should be in a wide zone")
	}
	if WideZone(At(10, 7)) {
		t.Error("y=7 should not be in a wide zone")
	}
	if !InEndzone(At(HomeEndzoneX, 5), Home) {
		t.Error("home endzone column should be Home's endzone")
	}
	if InEndzone(At(HomeEndzoneX, 5), Away) {
		t.Error("home endzone column should not be Away's endzone")
	}
	if opp := Home.Opponent(); opp != Away {
		t.Errorf("Home.Opponent() = %v, want Away", opp)
	}
}
