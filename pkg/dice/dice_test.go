package dice

import "testing"

func TestSeededD6Range(t *testing.T) {
	d := NewSeeded(42)
	for i := 0; i < 1000; i++ {
		if v := d.D6(); v < 1 || v > 6 {
			t.Fatalf("D6() = %d, out of [1,6]", v)
		}
	}
}

func TestSeededD8Range(t *testing.T) {
	d := NewSeeded(42)
	for i := 0; i < 1000; i++ {
		if v := d.D8(); v < 1 || v > 8 {
			t.Fatalf("D8() = %d, out of [1,8]", v)
		}
	}
}

func TestSeededIsReproducible(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)
	for i := 0; i < 50; i++ {
		if av, bv := a.D6(), b.D6(); av != bv {
			t.Fatalf("roll %d diverged: %d != %d for the same seed", i, av, bv)
		}
	}
}

func TestSeededCloneIsInternallyDeterministic(t *testing.T) {
	parent := NewSeeded(7)
	parent.D6() // advance the parent's stream before branching
	a := parent.Clone()
	b := parent.Clone()
	// Two clones of the same parent state draw from different branch
	// seeds (derived from consecutive parent draws), so they are not
	// expected to agree with each other — only each clone's own stream
	// must be reproducible from its own seed.
	for i := 0; i < 20; i++ {
		if v := a.D6(); v < 1 || v > 6 {
			t.Fatalf("clone a: D6() = %d out of range", v)
		}
		if v := b.D6(); v < 1 || v > 6 {
			t.Fatalf("clone b: D6() = %d out of range", v)
		}
	}

	// Clones of identically seeded parents replay the same stream.
	c1, c2 := NewSeeded(7).Clone(), NewSeeded(7).Clone()
	for i := 0; i < 20; i++ {
		if v1, v2 := c1.D6(), c2.D6(); v1 != v2 {
			t.Fatalf("roll %d: clones of same-seed parents diverged: %d != %d", i, v1, v2)
		}
	}
}

func TestBlockFaceForD6Table(t *testing.T) {
	d := NewFixed([]int{1, 2, 3, 4, 5, 6}, nil, nil)
	want := []BlockFace{AttackerDown, BothDown, Push, Push, DefenderStumbles, DefenderDown}
	for i, w := range want {
		if got := d.BlockDie(); got != w {
			t.Errorf("roll %d: BlockDie() = %v, want %v", i+1, got, w)
		}
	}
}

func TestFixedExhaustedPanics(t *testing.T) {
	d := NewFixed([]int{3}, nil, nil)
	d.D6()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic once the fixed d6 script runs dry")
		}
		if _, ok := r.(*ExhaustedError); !ok {
			t.Fatalf("expected *ExhaustedError, got %T", r)
		}
	}()
	d.D6()
}

func TestFixedBlockDieFallsBackToD6Script(t *testing.T) {
	d := NewFixed([]int{5}, nil, nil)
	if got := d.BlockDie(); got != DefenderStumbles {
		t.Errorf("BlockDie() with no block script should derive from the d6 script, got %v", got)
	}
}

func TestFixedD2D6DrawsTwoD6(t *testing.T) {
	d := NewFixed([]int{2, 5}, nil, nil)
	a, b := d.D2D6()
	if a != 2 || b != 5 {
		t.Errorf("D2D6() = (%d, %d), want (2, 5)", a, b)
	}
}
