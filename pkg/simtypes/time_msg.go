package simtypes

import (
	"errors"
	"fmt"

	flatbuffers "github.com/google/flatbuffers/go"
)

// ErrInvalidTimeMsg is returned by VerifyTimeMsg for a buffer whose offsets
// point outside it.
var ErrInvalidTimeMsg = errors.New("invalid time message buffer")

// Field slots in the TimeMsg vtable.
const (
	timeMsgSecSlot  flatbuffers.VOffsetT = 4
	timeMsgNsecSlot flatbuffers.VOffsetT = 6
)

// TimeMsg is the serialized form of a simulator Time, laid out as a
// flatbuffers table:
//
//	table Time { sec:int; nsec:int; }
type TimeMsg struct {
	_tab flatbuffers.Table
}

// GetRootAsTimeMsg reads the TimeMsg rooted at offset in buf.
func GetRootAsTimeMsg(buf []byte, offset flatbuffers.UOffsetT) *TimeMsg {
	n := flatbuffers.GetUOffsetT(buf[offset:])
	x := &TimeMsg{}
	x.Init(buf, n+offset)
	return x
}

func (rcv *TimeMsg) Init(buf []byte, i flatbuffers.UOffsetT) {
	rcv._tab.Bytes = buf
	rcv._tab.Pos = i
}

func (rcv *TimeMsg) Table() flatbuffers.Table {
	return rcv._tab
}

func (rcv *TimeMsg) Sec() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(timeMsgSecSlot))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *TimeMsg) MutateSec(n int32) bool {
	return rcv._tab.MutateInt32Slot(timeMsgSecSlot, n)
}

func (rcv *TimeMsg) Nsec() int32 {
	o := flatbuffers.UOffsetT(rcv._tab.Offset(timeMsgNsecSlot))
	if o != 0 {
		return rcv._tab.GetInt32(o + rcv._tab.Pos)
	}
	return 0
}

func (rcv *TimeMsg) MutateNsec(n int32) bool {
	return rcv._tab.MutateInt32Slot(timeMsgNsecSlot, n)
}

func TimeMsgStart(builder *flatbuffers.Builder) {
	builder.StartObject(2)
}

func TimeMsgAddSec(builder *flatbuffers.Builder, sec int32) {
	builder.PrependInt32Slot(0, sec, 0)
}

func TimeMsgAddNsec(builder *flatbuffers.Builder, nsec int32) {
	builder.PrependInt32Slot(1, nsec, 0)
}

func TimeMsgEnd(builder *flatbuffers.Builder) flatbuffers.UOffsetT {
	return builder.EndObject()
}

// MarshalTimeMsg serializes t into a finished TimeMsg buffer.
func MarshalTimeMsg(t Time) []byte {
	builder := flatbuffers.NewBuilder(32)
	TimeMsgStart(builder)
	TimeMsgAddSec(builder, t.Sec)
	TimeMsgAddNsec(builder, t.Nsec)
	builder.Finish(TimeMsgEnd(builder))
	return builder.FinishedBytes()
}

// VerifyTimeMsg checks that every offset GetRootAsTimeMsg and the field
// accessors follow stays inside buf. Only buffers that pass are safe to read.
func VerifyTimeMsg(buf []byte) error {
	size := int64(len(buf))
	if size < flatbuffers.SizeUOffsetT {
		return fmt.Errorf("%w: %d bytes is too short for a root offset", ErrInvalidTimeMsg, size)
	}

	table := int64(flatbuffers.GetUOffsetT(buf))
	if table+flatbuffers.SizeSOffsetT > size {
		return fmt.Errorf("%w: root offset %d out of range", ErrInvalidTimeMsg, table)
	}

	vtable := table - int64(flatbuffers.GetSOffsetT(buf[table:]))
	if vtable < 0 || vtable+2*flatbuffers.SizeVOffsetT > size {
		return fmt.Errorf("%w: vtable offset %d out of range", ErrInvalidTimeMsg, vtable)
	}

	vtableSize := int64(flatbuffers.GetVOffsetT(buf[vtable:]))
	tableSize := int64(flatbuffers.GetVOffsetT(buf[vtable+flatbuffers.SizeVOffsetT:]))
	if vtableSize < 2*flatbuffers.SizeVOffsetT || vtableSize%flatbuffers.SizeVOffsetT != 0 || vtable+vtableSize > size {
		return fmt.Errorf("%w: vtable size %d out of range", ErrInvalidTimeMsg, vtableSize)
	}
	if tableSize < flatbuffers.SizeSOffsetT || table+tableSize > size {
		return fmt.Errorf("%w: table size %d out of range", ErrInvalidTimeMsg, tableSize)
	}

	for _, slot := range []flatbuffers.VOffsetT{timeMsgSecSlot, timeMsgNsecSlot} {
		if int64(slot) >= vtableSize {
			continue
		}
		field := int64(flatbuffers.GetVOffsetT(buf[vtable+int64(slot):]))
		if field != 0 && field+flatbuffers.SizeInt32 > tableSize {
			return fmt.Errorf("%w: field at slot %d out of range", ErrInvalidTimeMsg, slot)
		}
	}
	return nil
}
