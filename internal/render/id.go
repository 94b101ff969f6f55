package render

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"runtime"
)

// RenderID identifies the source location that produced a deferred object.
// Two IDs are equal iff both components match. RenderID is comparable and
// can be used as a map key.
type RenderID struct {
	Line uint32
	Col  uint32
}

// At returns the RenderID for an explicit location. Use it where the slot
// identity should not depend on where the call is written.
func At(line, col uint32) RenderID {
	return RenderID{Line: line, Col: col}
}

// Here returns the RenderID of its caller's call site.
//
// Line is the caller's source line. The Go runtime records no source column,
// so Col hashes the caller's fully qualified function name together with the
// call instruction's offset from the function entry. Calls on the same line
// therefore get distinct IDs, and repeated calls from one site (a loop, say)
// get the same one. A function inlined at several places is compiled once
// per place, and each copy is its own call site.
func Here() RenderID {
	pcs := make([]uintptr, 1)
	if runtime.Callers(2, pcs) == 0 {
		return RenderID{}
	}
	frame, _ := runtime.CallersFrames(pcs).Next()

	h := fnv.New32a()
	_, _ = h.Write([]byte(frame.Function))
	var off [8]byte
	binary.LittleEndian.PutUint64(off[:], uint64(frame.PC-frame.Entry))
	_, _ = h.Write(off[:])
	return RenderID{Line: uint32(frame.Line), Col: h.Sum32()}
}

// Less orders IDs by line, then column.
func (id RenderID) Less(other RenderID) bool {
	if id.Line != other.Line {
		return id.Line < other.Line
	}
	return id.Col < other.Col
}

// Compare returns -1, 0 or +1 for use with slices.SortFunc.
func (id RenderID) Compare(other RenderID) int {
	switch {
	case id.Less(other):
		return -1
	case other.Less(id):
		return 1
	default:
		return 0
	}
}

// IsZero reports whether id is the zero RenderID.
func (id RenderID) IsZero() bool {
	return id == RenderID{}
}

// String returns "line:col".
func (id RenderID) String() string {
	return fmt.Sprintf("%d:%d", id.Line, id.Col)
}
