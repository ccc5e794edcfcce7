package dsk

import (
	"testing"

	"coco-decb/coco"
)

func TestDecodeCellFree(t *testing.T) {
	cell, ok := decodeCell(0xFF)
	if !ok || cell.Kind != coco.FATFree {
		t.Fatalf("decodeCell(0xFF) = %+v, %v", cell, ok)
	}
}

func TestDecodeCellPointer(t *testing.T) {
	cell, ok := decodeCell(0x05)
	if !ok || cell.Kind != coco.FATPointer || cell.Next != 5 {
		t.Fatalf("decodeCell(0x05) = %+v, %v", cell, ok)
	}
}

func TestDecodeCellTerminal(t *testing.T) {
	cases := []struct {
		b       byte
		sectors int
	}{
		{0xC0, 9},
		{0xC1, 1},
		{0xC9, 9},
		{0xC5, 5},
	}
	for _, c := range cases {
		cell, ok := decodeCell(c.b)
		if !ok || cell.Kind != coco.FATTerminal || cell.Sectors != c.sectors {
			t.Fatalf("decodeCell(%#x) = %+v, %v, want sectors=%d", c.b, cell, ok, c.sectors)
		}
	}
}

func TestDecodeCellMalformed(t *testing.T) {
	for _, b := range []byte{0x44, 0xCA, 0xFE} {
		if _, ok := decodeCell(b); ok {
			t.Fatalf("decodeCell(%#x) unexpectedly valid", b)
		}
	}
}

func TestFATWalkSingleGranule(t *testing.T) {
	f := newFreeFAT()
	f[10] = encodeTerminal(3)

	chain, sectors, err := f.walk(10)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	if len(chain) != 1 || chain[0] != 10 || sectors != 3 {
		t.Fatalf("chain=%v sectors=%d", chain, sectors)
	}
}

func TestFATWalkMultiGranule(t *testing.T) {
	f := newFreeFAT()
	f.link([]int{5, 6, 7}, 4)

	chain, sectors, err := f.walk(5)
	if err != nil {
		t.Fatalf("walk: %v", err)
	}
	want := []int{5, 6, 7}
	if len(chain) != len(want) {
		t.Fatalf("chain=%v", chain)
	}
	for i, g := range want {
		if chain[i] != g {
			t.Fatalf("chain=%v want=%v", chain, want)
		}
	}
	if sectors != 4 {
		t.Fatalf("sectors=%d", sectors)
	}
}

func TestFATWalkCycleIsRejected(t *testing.T) {
	f := newFreeFAT()
	f[0] = 1
	f[1] = 0 // points back to 0

	if _, _, err := f.walk(0); err == nil || err.Kind != coco.CorruptFat {
		t.Fatalf("expected CorruptFat for a cycle, got %v", err)
	}
}

func TestFATWalkHeadOutOfRange(t *testing.T) {
	f := newFreeFAT()
	if _, _, err := f.walk(68); err == nil || err.Kind != coco.CorruptFat {
		t.Fatalf("expected CorruptFat, got %v", err)
	}
	if _, _, err := f.walk(-1); err == nil || err.Kind != coco.CorruptFat {
		t.Fatalf("expected CorruptFat, got %v", err)
	}
}

func TestFATWalkLandsOnFree(t *testing.T) {
	f := newFreeFAT()
	f[0] = 1 // pointer to a free granule

	if _, _, err := f.walk(0); err == nil || err.Kind != coco.CorruptFat {
		t.Fatalf("expected CorruptFat when chain lands on free, got %v", err)
	}
}

func TestFATWalkPointerOutOfRange(t *testing.T) {
	f := newFreeFAT()
	f[0] = 0x44 // not a valid pointer, not terminal, not free

	if _, _, err := f.walk(0); err == nil || err.Kind != coco.CorruptFat {
		t.Fatalf("expected CorruptFat for malformed cell, got %v", err)
	}
}

func TestFileSize(t *testing.T) {
	cases := []struct {
		chainLen, terminalSectors, lastBytes, want int
	}{
		{1, 1, 1, 1},
		{1, 9, 256, 2304},
		{2, 9, 256, 4608},
		{3, 5, 100, 2*2304 + 4*256 + 100},
	}
	for _, c := range cases {
		got := fileSize(c.chainLen, c.terminalSectors, c.lastBytes)
		if got != c.want {
			t.Errorf("fileSize(%d,%d,%d) = %d, want %d", c.chainLen, c.terminalSectors, c.lastBytes, got, c.want)
		}
	}
}

func TestAllocateSearchOrder(t *testing.T) {
	f := newFreeFAT()
	granules, err := f.allocate(3)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	want := []int{32, 33, 34}
	for i, g := range want {
		if granules[i] != g {
			t.Fatalf("granules=%v want=%v", granules, want)
		}
	}
}

func TestAllocateWrapsToLowGranules(t *testing.T) {
	f := newFreeFAT()
	// Occupy granules 32..67, leaving only 0..31 free.
	for g := 32; g < 68; g++ {
		f[g] = encodeTerminal(9)
	}

	granules, err := f.allocate(2)
	if err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if granules[0] != 0 || granules[1] != 1 {
		t.Fatalf("granules=%v, want [0 1]", granules)
	}
}

func TestAllocateInsufficientSpace(t *testing.T) {
	f := newFreeFAT()
	for g := range f {
		f[g] = encodeTerminal(9)
	}

	if _, err := f.allocate(1); err == nil || err.Kind != coco.InsufficientSpace {
		t.Fatalf("expected InsufficientSpace, got %v", err)
	}
}

func TestFreeMarksWholeChain(t *testing.T) {
	f := newFreeFAT()
	f.link([]int{1, 2, 3}, 9)

	if err := f.free(1); err != nil {
		t.Fatalf("free: %v", err)
	}
	for _, g := range []int{1, 2, 3} {
		cell, _ := decodeCell(f[g])
		if cell.Kind != coco.FATFree {
			t.Errorf("granule %d = %+v, want free", g, cell)
		}
	}
}

func TestSerializeRoundTrip(t *testing.T) {
	f := newFreeFAT()
	f.link([]int{0, 1}, 5)

	fresh := f.serialize(freshFATPadding())
	if fresh[0] != 1 || fresh[1] != encodeTerminal(5) {
		t.Fatalf("unexpected FAT bytes: %v", fresh[:4])
	}
	for i := 68; i < 256; i++ {
		if fresh[i] != 0xFF {
			t.Fatalf("fresh padding byte %d = %#x, want 0xFF", i, fresh[i])
		}
	}

	dirty := f.serialize(dirtyFATPadding())
	for i := 68; i < 256; i++ {
		if dirty[i] != 0x00 {
			t.Fatalf("dirty padding byte %d = %#x, want 0x00", i, dirty[i])
		}
	}
}
