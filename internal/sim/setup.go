package sim

import (
	"github.com/tormund/gridiron/pkg/bbgame"
	"github.com/tormund/gridiron/pkg/pitch"
)

// placeForKickoff arranges both sides' available pieces (all but the KO'd,
// injured, dead and ejected ones) into a serviceable
// (if unambitious) legal-ish formation: each side stands in a single
// column near midfield, one piece per row from the top sideline down. It
// does not attempt to
// enforce the full tabletop setup rules (minimum-3-in-wide-zone, etc.) —
// this engine's rules/action layer never inspects formation legality once
// play begins, so any on-pitch arrangement is a valid starting point.
func placeForKickoff(gs *bbgame.GameState) {
	placeSide(gs, pitch.Home, gs.KickingSide == pitch.Home)
	placeSide(gs, pitch.Away, gs.KickingSide == pitch.Away)
}

func placeSide(gs *bbgame.GameState, side pitch.Side, kicking bool) {
	ids := gs.PiecesOf(side)
	if len(ids) == 0 {
		return
	}

	lineX := 12
	if side == pitch.Away {
		lineX = 13
	}
	if !kicking {
		// The receiving side holds its line one column deeper than a
		// kicking side would.
		if side == pitch.Home {
			lineX = 11
		} else {
			lineX = 14
		}
	}

	for i, id := range ids {
		p := gs.Piece(id)
		if !p.State.OnPitch() && p.State != bbgame.OffPitch {
			continue // KO'd, injured, dead and ejected pieces stay out
		}
		p.State = bbgame.Standing
		p.Scratch = bbgame.Scratchpad{MovementRemaining: p.Stats.Movement}
		y := i % pitch.Height
		x := lineX
		if i >= pitch.Height {
			// Overflow pieces (more than 15 on one line, never happens at
			// 11-a-side, but keep the loop total) stack one column back.
			if side == pitch.Home {
				x--
			} else {
				x++
			}
		}
		p.Pos = pitch.At(clampX(x), y)
	}
}

func clampX(x int) int {
	if x < 0 {
		return 0
	}
	if x >= pitch.Width {
		return pitch.Width - 1
	}
	return x
}
