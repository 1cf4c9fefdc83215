package decisionlog

import "testing"

func TestEncodeDecodeRoundTrip(t *testing.T) {
	var l Log
	l.Append(Record{
		Side:           0,
		Turn:           3,
		Half:           1,
		StateFeatures:  []float32{0.1, 0.2, 0.3},
		VisitFractions: []float32{0.25, 0.75},
		ChosenIndex:    1,
	})
	l.Append(Record{
		Side:           1,
		Turn:           4,
		Half:           1,
		StateFeatures:  []float32{0.4, 0.5},
		VisitFractions: []float32{1},
		ChosenIndex:    0,
	})

	buf := l.Encode()
	got := Decode(buf)

	if len(got) != 2 {
		t.Fatalf("Decode returned %d records, want 2", len(got))
	}
	if got[0].Turn != 3 || got[0].ChosenIndex != 1 {
		t.Errorf("record 0 = %+v, want Turn=3 ChosenIndex=1", got[0])
	}
	if len(got[0].StateFeatures) != 3 || got[0].StateFeatures[2] != 0.3 {
		t.Errorf("record 0 StateFeatures = %v, want [0.1 0.2 0.3]", got[0].StateFeatures)
	}
	if len(got[1].VisitFractions) != 1 || got[1].VisitFractions[0] != 1 {
		t.Errorf("record 1 VisitFractions = %v, want [1]", got[1].VisitFractions)
	}
}

func TestBackfillOutcomeFlipsSignByside(t *testing.T) {
	var l Log
	l.Append(Record{Side: 0}) // home
	l.Append(Record{Side: 1}) // away

	l.BackfillOutcome(1) // home won

	if l.records[0].Outcome != 1 {
		t.Errorf("home record outcome = %v, want 1", l.records[0].Outcome)
	}
	if l.records[1].Outcome != -1 {
		t.Errorf("away record outcome = %v, want -1", l.records[1].Outcome)
	}
	if !l.records[0].HasOutcome || !l.records[1].HasOutcome {
		t.Error("both records should have HasOutcome set after backfill")
	}
}

func TestLenTracksAppends(t *testing.T) {
	var l Log
	if l.Len() != 0 {
		t.Errorf("new Log.Len() = %d, want 0", l.Len())
	}
	l.Append(Record{})
	l.Append(Record{})
	if l.Len() != 2 {
		t.Errorf("Log.Len() after 2 appends = %d, want 2", l.Len())
	}
}

func TestEncodeEmptyLog(t *testing.T) {
	var l Log
	buf := l.Encode()
	got := Decode(buf)
	if len(got) != 0 {
		t.Errorf("Decode of an empty log returned %d records, want 0", len(got))
	}
}
