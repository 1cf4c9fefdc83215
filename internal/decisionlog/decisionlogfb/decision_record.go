// Code generated by hand in the style flatc produces for schema.fbs; this
// workspace has no flatc binary available so the table accessors below are
// written out manually, field-for-field, against
// github.com/google/flatbuffers/go's Builder/Table primitives. Keep in sync
// with ../schema.fbs if it changes.
package decisionlogfb

import (
	flatbuffers "github.com/google/flatbuffers/go"
)

// DecisionRecord wraps a flatbuffers table matching the DecisionRecord
// schema table.
type DecisionRecord struct {
	_tab flatbuffers.Table
}

func GetRootAsDecisionRecord(buf []byte, offset flatbuffers.UOffsetT) *DecisionRecord {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &DecisionRecord{}
	x._tab.Bytes = buf
	x._tab.Pos = n + offset
	return x
}

func (r *DecisionRecord) Init(buf []byte, i flatbuffers.UOffsetT) {
	r._tab.Bytes = buf
	r._tab.Pos = i
}

func (r *DecisionRecord) Side() int8 {
	o := flatbuffers.UOffsetT(r._tab.Offset(4))
	if o != 0 {
		return r._tab.GetInt8(o + r._tab.Pos)
	}
	return 0
}

func (r *DecisionRecord) Turn() int32 {
	o := flatbuffers.UOffsetT(r._tab.Offset(6))
	if o != 0 {
		return r._tab.GetInt32(o + r._tab.Pos)
	}
	return 0
}

func (r *DecisionRecord) Half() int8 {
	o := flatbuffers.UOffsetT(r._tab.Offset(8))
	if o != 0 {
		return r._tab.GetInt8(o + r._tab.Pos)
	}
	return 0
}

func (r *DecisionRecord) StateFeaturesLength() int {
	o := flatbuffers.UOffsetT(r._tab.Offset(10))
	if o != 0 {
		return r._tab.VectorLen(o)
	}
	return 0
}

func (r *DecisionRecord) StateFeatures(j int) float32 {
	o := flatbuffers.UOffsetT(r._tab.Offset(10))
	if o != 0 {
		a := r._tab.Vector(o)
		return r._tab.GetFloat32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (r *DecisionRecord) VisitFractionsLength() int {
	o := flatbuffers.UOffsetT(r._tab.Offset(12))
	if o != 0 {
		return r._tab.VectorLen(o)
	}
	return 0
}

func (r *DecisionRecord) VisitFractions(j int) float32 {
	o := flatbuffers.UOffsetT(r._tab.Offset(12))
	if o != 0 {
		a := r._tab.Vector(o)
		return r._tab.GetFloat32(a + flatbuffers.UOffsetT(j*4))
	}
	return 0
}

func (r *DecisionRecord) ChosenIndex() int32 {
	o := flatbuffers.UOffsetT(r._tab.Offset(14))
	if o != 0 {
		return r._tab.GetInt32(o + r._tab.Pos)
	}
	return 0
}

func (r *DecisionRecord) HasOutcome() bool {
	o := flatbuffers.UOffsetT(r._tab.Offset(16))
	if o != 0 {
		return r._tab.GetBool(o + r._tab.Pos)
	}
	return false
}

func (r *DecisionRecord) Outcome() float32 {
	o := flatbuffers.UOffsetT(r._tab.Offset(18))
	if o != 0 {
		return r._tab.GetFloat32(o + r._tab.Pos)
	}
	return 0
}

func DecisionRecordStart(builder *flatbuffers.Builder) {
	builder.StartObject(8)
}

func DecisionRecordAddSide(builder *flatbuffers.Builder, side int8) {
	builder.PrependInt8Slot(0, side, 0)
}

func DecisionRecordAddTurn(builder *flatbuffers.Builder, turn int32) {
	builder.PrependInt32Slot(1, turn, 0)
}

func DecisionRecordAddHalf(builder *flatbuffers.Builder, half int8) {
	builder.PrependInt8Slot(2, half, 0)
}

func DecisionRecordAddStateFeatures(builder *flatbuffers.Builder, stateFeatures flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(3, stateFeatures, 0)
}

func DecisionRecordStartStateFeaturesVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func DecisionRecordAddVisitFractions(builder *flatbuffers.Builder, visitFractions flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(4, visitFractions, 0)
}

func DecisionRecordStartVisitFractionsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func DecisionRecordAddChosenIndex(builder *flatbuffers.Builder, chosenIndex int32) {
	builder.PrependInt32Slot(5, chosenIndex, 0)
}

func DecisionRecordAddHasOutcome(builder *flatbuffers.Builder, hasOutcome bool) {
	builder.PrependBoolSlot(6, hasOutcome, false)
}

func DecisionRecordAddOutcome(builder *flatbuffers.Builder, outcome float32) {
	builder.PrependFloat32Slot(7, outcome, 0)
}

func DecisionRecordEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// DecisionLog wraps the root table: a single vector of DecisionRecord
// offsets, used to batch one game's worth of records into one file.
type DecisionLog struct {
	_tab flatbuffers.Table
}

func GetRootAsDecisionLog(buf []byte, offset flatbuffers.UOffsetT) *DecisionLog {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &DecisionLog{}
	x._tab.Bytes = buf
	x._tab.Pos = n + offset
	return x
}

func (l *DecisionLog) RecordsLength() int {
	o := flatbuffers.UOffsetT(l._tab.Offset(4))
	if o != 0 {
		return l._tab.VectorLen(o)
	}
	return 0
}

func (l *DecisionLog) Records(obj *DecisionRecord, j int) bool {
	o := flatbuffers.UOffsetT(l._tab.Offset(4))
	if o != 0 {
		x := l._tab.Vector(o)
		x += flatbuffers.UOffsetT(j) * 4
		x = l._tab.Indirect(x)
		obj.Init(l._tab.Bytes, x)
		return true
	}
	return false
}

func DecisionLogStart(builder *flatbuffers.Builder) {
	builder.StartObject(1)
}

func DecisionLogAddRecords(builder *flatbuffers.Builder, records flatbuffers.UOffsetT) {
	builder.PrependUOffsetTSlot(0, records, 0)
}

func DecisionLogStartRecordsVector(builder *flatbuffers.Builder, numElems int) flatbuffers.UOffsetT {
	return builder.StartVector(4, numElems, 4)
}

func DecisionLogEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

func FinishDecisionLogBuffer(builder *flatbuffers.Builder, offset flatbuffers.UOffsetT) {
	builder.Finish(offset)
}
