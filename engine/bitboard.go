package engine

import (
	"fmt"
	"math/bits"
	"strings"
)

// BitBoard stores one bit per cell for a 7×7 window of the playing
// field, equivalent to a set of coordinates. Every BitBoard is obtained
// from a Board and acts as a view into it, e.g. the set of cells with a
// visible diamond on them.
//
// The packed layout is:
//
//   - the low 49 bits are the 7×7 window in row-major order, so local
//     coordinate (i, j) is bit i*7+j,
//   - bits 49–55 are the window's j offset,
//   - bits 56–62 are the window's i offset.
//
// The offsets are signed 7-bit values. That range is enough because
// coordinates arising from gameplay never leave [-52, 52]: the board can
// only drift by one cell per card played, and there are 52 cards. The
// offset is added to each local coordinate to obtain the absolute one.
//
// A valid board always fits into a 4×4 box, so why a 7×7 window? When
// the window is centered on any occupied cell, not only every occupied
// cell but also every cell of the board's playable area is
// representable, so the cell of the next card to be placed always fits.
//
// Combining two BitBoards requires them to share the same offset; the
// binary operations panic otherwise. Use Recenter to align a BitBoard
// before combining. Recentering discards cells that are unrepresentable
// from the new offset, which by construction are cells that cannot
// matter to the query at hand.
//
// BitBoard is an immutable value type: methods return a new value.
type BitBoard uint64

const (
	windowSize = 7
	boardMask  = 0x1ffffffffffff    // low 49 bits
	offsetMask = 0x7ffe000000000000 // bits 49–62
	jShift     = 49
	iShift     = 49 + 7
)

// Coord is an absolute (i, j) coordinate pair on the playing field.
type Coord struct {
	I, J int8
}

// NewBitBoard returns an empty BitBoard whose 7×7 window is centered on
// (i, j). Only valid for coordinates in [-52, 52].
func NewBitBoard(i, j int8) BitBoard {
	return BitBoard(encodeOffset(i-3, j-3))
}

func encodeOffset(offsetI, offsetJ int8) uint64 {
	iBits := uint64(uint8(offsetI)&0x7f) << iShift
	jBits := uint64(uint8(offsetJ)&0x7f) << jShift
	return iBits | jBits
}

func decodeOffset(b uint64) (int8, int8) {
	// Sign-extend the 7-bit offsets by copying bit 6 into bit 7.
	offsetI := int8(uint8(b>>iShift) & 0x7f)
	offsetI |= (offsetI & 0x40) << 1
	offsetJ := int8(uint8(b>>jShift) & 0x7f)
	offsetJ |= (offsetJ & 0x40) << 1
	return offsetI, offsetJ
}

func (b BitBoard) offset() (int8, int8) { return decodeOffset(uint64(b)) }

// Center returns the coordinate at the center of the 7×7 window.
func (b BitBoard) Center() (int8, int8) {
	offsetI, offsetJ := b.offset()
	return offsetI + 3, offsetJ + 3
}

// localIndex converts an absolute coordinate into a bit index within the
// window. Coordinates outside the window are a caller bug.
func (b BitBoard) localIndex(i, j int8) uint8 {
	offsetI, offsetJ := b.offset()
	iLocal, jLocal := i-offsetI, j-offsetJ
	if iLocal < 0 || iLocal >= windowSize || jLocal < 0 || jLocal >= windowSize {
		panic(fmt.Sprintf("coordinate (%d, %d) outside the 7x7 window at offset (%d, %d)", i, j, offsetI, offsetJ))
	}
	return uint8(iLocal)*windowSize + uint8(jLocal)
}

// Insert returns the BitBoard with the bit for (i, j) set. The
// coordinate must lie within the window; this holds for any coordinate
// in the underlying board's playable area.
func (b BitBoard) Insert(i, j int8) BitBoard {
	return b | 1<<b.localIndex(i, j)
}

// Remove returns the BitBoard with the bit for (i, j) cleared. The same
// window restriction as for Insert applies.
func (b BitBoard) Remove(i, j int8) BitBoard {
	return b &^ (1 << b.localIndex(i, j))
}

// InsertArea returns the BitBoard with every bit in the given inclusive
// coordinate rectangle set. Both corners must lie within the window.
func (b BitBoard) InsertArea(iMin, jMin, iMax, jMax int8) BitBoard {
	minIdx := b.localIndex(iMin, jMin)
	maxIdx := b.localIndex(iMax, jMax)
	out := b
	for i := minIdx / windowSize; i <= maxIdx/windowSize; i++ {
		for j := minIdx % windowSize; j <= maxIdx%windowSize; j++ {
			out |= 1 << (i*windowSize + j)
		}
	}
	return out
}

// Contains reports whether (i, j) is in the set. Coordinates outside the
// window are reported as absent, even if they would be logically
// relevant; callers keep their boards appropriately centered.
func (b BitBoard) Contains(i, j int8) bool {
	offsetI, offsetJ := b.offset()
	iLocal, jLocal := int(i)-int(offsetI), int(j)-int(offsetJ)
	if iLocal < 0 || iLocal >= windowSize || jLocal < 0 || jLocal >= windowSize {
		return false
	}
	return b&(1<<(iLocal*windowSize+jLocal)) != 0
}

// IsEmpty reports whether no bit is set.
func (b BitBoard) IsEmpty() bool { return b&boardMask == 0 }

// Len returns the number of set bits.
func (b BitBoard) Len() int { return bits.OnesCount64(uint64(b & boardMask)) }

func (b BitBoard) sameOffsetOrPanic(other BitBoard) {
	if b&offsetMask != other&offsetMask {
		panic("combining BitBoards with different offsets; Recenter one of them first")
	}
}

// Union returns the cells present in either BitBoard. Both operands must
// share the same offset.
func (b BitBoard) Union(other BitBoard) BitBoard {
	b.sameOffsetOrPanic(other)
	return b | other
}

// Intersect returns the cells present in both BitBoards. Both operands
// must share the same offset.
func (b BitBoard) Intersect(other BitBoard) BitBoard {
	b.sameOffsetOrPanic(other)
	return b & (other | ^BitBoard(boardMask))
}

// Difference returns the cells in b that are not in other. Both operands
// must share the same offset.
func (b BitBoard) Difference(other BitBoard) BitBoard {
	b.sameOffsetOrPanic(other)
	return b &^ (other & boardMask)
}

// Recenter returns the BitBoard re-addressed to a window centered on
// (i, j). Cells that are not representable from the new offset are
// silently dropped.
func (b BitBoard) Recenter(i, j int8) BitBoard {
	offsetI, offsetJ := b.offset()
	newOffsetI, newOffsetJ := i-3, j-3
	shifted := shift2DLossy(uint64(b)&boardMask, offsetI-newOffsetI, offsetJ-newOffsetJ)
	return BitBoard(encodeOffset(newOffsetI, newOffsetJ) | shifted)
}

// LinesThrough checks for horizontal, vertical or diagonal lines of
// exactly 4 cells passing through (i, j), within the 7×7 area centered
// on that point. All cells belonging to such a line are returned; the
// result is a subset of the input.
//
// A new card can only ever complete a line that passes through its own
// cell, so matching four fixed patterns pre-centered on that cell
// replaces a whole-board scan with a few bitwise operations.
func (b BitBoard) LinesThrough(i, j int8) BitBoard {
	offsetI, offsetJ := b.offset()
	deltaI, deltaJ := i-offsetI-3, j-offsetJ-3

	// Lines on the 7×7 window through its center cell: the middle row,
	// the middle column, and the two diagonals.
	patterns := [4]uint64{
		0x000000fe00000, // row i=3
		0x0204081020408, // column j=3
		0x1010101010101, // diagonal i=j
		0x0041041041040, // diagonal i+j=6
	}

	var lineBits uint64
	for _, pattern := range patterns {
		intersect := uint64(b) & boardMask & shift2DLossy(pattern, deltaI, deltaJ)
		if bits.OnesCount64(intersect) == 4 {
			lineBits |= intersect
		}
	}
	return BitBoard(uint64(b)&offsetMask | lineBits)
}

// Coords returns the absolute coordinates of all set bits, in ascending
// bit order (row-major within the window).
func (b BitBoard) Coords() []Coord {
	offsetI, offsetJ := b.offset()
	out := make([]Coord, 0, b.Len())
	for rem := uint64(b) & boardMask; rem != 0; rem &= rem - 1 {
		idx := int8(bits.TrailingZeros64(rem))
		out = append(out, Coord{I: offsetI + idx/windowSize, J: offsetJ + idx%windowSize})
	}
	return out
}

// String renders the window as a 7×7 grid of zeros and ones, with local
// (0, 0) in the top-left corner.
func (b BitBoard) String() string {
	var sb strings.Builder
	for i := 0; i < windowSize; i++ {
		for j := 0; j < windowSize; j++ {
			if j > 0 {
				sb.WriteByte(' ')
			}
			if b&(1<<(i*windowSize+j)) != 0 {
				sb.WriteByte('1')
			} else {
				sb.WriteByte('0')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// ---------------------------------------------------------------------------
// 2D shifting
// ---------------------------------------------------------------------------

// shiftMaskI[d+7] masks the bits that survive moving every cell by d
// along the i axis; bits that would leave the window are cleared so the
// subsequent plain bit shift cannot wrap them around.
var shiftMaskI = [15]uint64{
	0b0000000000000000000000000000000000000000000000000,
	0b1111111000000000000000000000000000000000000000000,
	0b1111111111111100000000000000000000000000000000000,
	0b1111111111111111111110000000000000000000000000000,
	0b1111111111111111111111111111000000000000000000000,
	0b1111111111111111111111111111111111100000000000000,
	0b1111111111111111111111111111111111111111110000000,
	0b1111111111111111111111111111111111111111111111111,
	0b0000000111111111111111111111111111111111111111111,
	0b0000000000000011111111111111111111111111111111111,
	0b0000000000000000000001111111111111111111111111111,
	0b0000000000000000000000000000111111111111111111111,
	0b0000000000000000000000000000000000011111111111111,
	0b0000000000000000000000000000000000000000001111111,
	0b0000000000000000000000000000000000000000000000000,
}

// shiftMaskJ is the j-axis equivalent of shiftMaskI.
var shiftMaskJ = [15]uint64{
	0b0000000000000000000000000000000000000000000000000,
	0b1000000100000010000001000000100000010000001000000,
	0b1100000110000011000001100000110000011000001100000,
	0b1110000111000011100001110000111000011100001110000,
	0b1111000111100011110001111000111100011110001111000,
	0b1111100111110011111001111100111110011111001111100,
	0b1111110111111011111101111110111111011111101111110,
	0b1111111111111111111111111111111111111111111111111,
	0b0111111011111101111110111111011111101111110111111,
	0b0011111001111100111110011111001111100111110011111,
	0b0001111000111100011110001111000111100011110001111,
	0b0000111000011100001110000111000011100001110000111,
	0b0000011000001100000110000011000001100000110000011,
	0b0000001000000100000010000001000000100000010000001,
	0b0000000000000000000000000000000000000000000000000,
}

// shift2DLossy moves every set cell by (deltaI, deltaJ) within the 7×7
// window. Cells shifted outside the window are dropped.
func shift2DLossy(b uint64, deltaI, deltaJ int8) uint64 {
	maskI := shiftMaskI[clampShiftIndex(int(deltaI)+7)]
	maskJ := shiftMaskJ[clampShiftIndex(int(deltaJ)+7)]
	valid := b & maskI & maskJ
	shiftBy := int(deltaI)*windowSize + int(deltaJ)
	if shiftBy > 0 {
		return valid << min(shiftBy, 63)
	}
	return valid >> min(-shiftBy, 63)
}

// clampShiftIndex clamps a mask table index to [0, 14]; larger shifts
// land on the all-zero entries at the ends.
func clampShiftIndex(idx int) int {
	return min(max(idx, 0), 14)
}
