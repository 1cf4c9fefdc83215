// Package decisionlog encodes the §6 per-decision training record — a
// state's feature vector, the search tree's per-action visit fractions, and
// (once backfilled) the game's final outcome — into the flatbuffers wire
// format defined by schema.fbs, the same shape darwindeck's gosim bridge
// uses to move simulation results across a process boundary
// (cgo/bridge.go's builder.StartObject/PrependXSlot/EndObject sequence).
package decisionlog

import (
	flatbuffers "github.com/google/flatbuffers/go"

	"github.com/tormund/gridiron/internal/decisionlog/decisionlogfb"
)

// Record is one search decision: the state it was made from, the resulting
// visit-fraction distribution over that state's legal actions, which action
// was actually played, and (after the game ends) the outcome from Side's
// perspective.
type Record struct {
	Side           int8
	Turn           int32
	Half           int8
	StateFeatures  []float32
	VisitFractions []float32
	ChosenIndex    int32
	HasOutcome     bool
	Outcome        float32
}

// Log accumulates Records for one game and serializes them as a single
// flatbuffers DecisionLog, per §6 "the sole training signal this engine
// emits".
type Log struct {
	records []Record
}

// Append records one search decision.
func (l *Log) Append(r Record) {
	l.records = append(l.records, r)
}

// Len reports how many records have been appended.
func (l *Log) Len() int { return len(l.records) }

// BackfillOutcome stamps every record appended so far with the game's final
// result from its own Side's perspective (+1 win / 0 draw / -1 loss),
// called once the simulator knows who won.
func (l *Log) BackfillOutcome(homeResult float32) {
	for i := range l.records {
		r := &l.records[i]
		if r.Side == 0 {
			r.Outcome = homeResult
		} else {
			r.Outcome = -homeResult
		}
		r.HasOutcome = true
	}
}

// Encode serializes every appended record into one flatbuffers-encoded
// byte slice.
func (l *Log) Encode() []byte {
	builder := flatbuffers.NewBuilder(1024)

	recordOffsets := make([]flatbuffers.UOffsetT, len(l.records))
	for i, r := range l.records {
		recordOffsets[i] = encodeRecord(builder, r)
	}

	decisionlogfb.DecisionLogStartRecordsVector(builder, len(recordOffsets))
	for i := len(recordOffsets) - 1; i >= 0; i-- {
		builder.PrependUOffsetT(recordOffsets[i])
	}
	recordsVec := builder.EndVector(len(recordOffsets))

	decisionlogfb.DecisionLogStart(builder)
	decisionlogfb.DecisionLogAddRecords(builder, recordsVec)
	log := decisionlogfb.DecisionLogEnd(builder)

	decisionlogfb.FinishDecisionLogBuffer(builder, log)
	return builder.FinishedBytes()
}

func encodeRecord(builder *flatbuffers.Builder, r Record) flatbuffers.UOffsetT {
	decisionlogfb.DecisionRecordStartVisitFractionsVector(builder, len(r.VisitFractions))
	for i := len(r.VisitFractions) - 1; i >= 0; i-- {
		builder.PrependFloat32(r.VisitFractions[i])
	}
	visitVec := builder.EndVector(len(r.VisitFractions))

	decisionlogfb.DecisionRecordStartStateFeaturesVector(builder, len(r.StateFeatures))
	for i := len(r.StateFeatures) - 1; i >= 0; i-- {
		builder.PrependFloat32(r.StateFeatures[i])
	}
	stateVec := builder.EndVector(len(r.StateFeatures))

	decisionlogfb.DecisionRecordStart(builder)
	decisionlogfb.DecisionRecordAddSide(builder, r.Side)
	decisionlogfb.DecisionRecordAddTurn(builder, r.Turn)
	decisionlogfb.DecisionRecordAddHalf(builder, r.Half)
	decisionlogfb.DecisionRecordAddStateFeatures(builder, stateVec)
	decisionlogfb.DecisionRecordAddVisitFractions(builder, visitVec)
	decisionlogfb.DecisionRecordAddChosenIndex(builder, r.ChosenIndex)
	decisionlogfb.DecisionRecordAddHasOutcome(builder, r.HasOutcome)
	decisionlogfb.DecisionRecordAddOutcome(builder, r.Outcome)
	return decisionlogfb.DecisionRecordEnd(builder)
}

// Decode parses bytes produced by Encode back into Records, for tests and
// offline training tooling.
func Decode(buf []byte) []Record {
	log := decisionlogfb.GetRootAsDecisionLog(buf, 0)
	n := log.RecordsLength()
	out := make([]Record, n)
	var fb decisionlogfb.DecisionRecord
	for i := 0; i < n; i++ {
		if !log.Records(&fb, i) {
			continue
		}
		sf := make([]float32, fb.StateFeaturesLength())
		for j := range sf {
			sf[j] = fb.StateFeatures(j)
		}
		vf := make([]float32, fb.VisitFractionsLength())
		for j := range vf {
			vf[j] = fb.VisitFractions(j)
		}
		out[i] = Record{
			Side:           fb.Side(),
			Turn:           fb.Turn(),
			Half:           fb.Half(),
			StateFeatures:  sf,
			VisitFractions: vf,
			ChosenIndex:    fb.ChosenIndex(),
			HasOutcome:     fb.HasOutcome(),
			Outcome:        fb.Outcome(),
		}
	}
	return out
}
