package dsk

import (
	"bytes"
	"testing"

	"github.com/pkg/errors"

	"coco-decb/coco"
)

func mustFormat(t *testing.T, tracks, sides int, jvc bool) *Volume {
	t.Helper()
	v, err := Format(tracks, sides, jvc)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	return v
}

func TestFormatThenMountRoundTrips(t *testing.T) {
	v := mustFormat(t, 35, 1, true)
	image := v.Bytes()

	mounted, err := Mount(image)
	if err != nil {
		t.Fatalf("Mount: %v", err)
	}
	if len(mounted.List()) != 0 {
		t.Fatalf("expected empty freshly-formatted volume, got %v", mounted.List())
	}
	if mounted.State() != coco.StateMounted {
		t.Fatalf("state = %v, want Mounted", mounted.State())
	}
}

func TestFormatRejectsBadSides(t *testing.T) {
	if _, err := Format(35, 3, true); err == nil {
		t.Fatal("expected error for sides=3")
	}
}

func TestFormatTwoSided(t *testing.T) {
	v := mustFormat(t, 40, 2, true)
	if v.Geometry().Sides != 2 {
		t.Fatalf("sides = %d, want 2", v.Geometry().Sides)
	}

	if err := v.Insert("GAME", []byte("hello world"), coco.FileTypeData, coco.ModeBinary); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	data, err := v.Extract("GAME")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if string(data) != "hello world" {
		t.Fatalf("Extract = %q", data)
	}
}

func TestInsertExtractRoundTrip(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	payload := []byte("10 PRINT \"HELLO\"\n20 GOTO 10\n")

	if err := v.Insert("HELLO.BAS", payload, coco.FileTypeBasic, coco.ModeASCII); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := v.Extract("HELLO.BAS")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Extract = %q, want %q", got, payload)
	}

	entries := v.List()
	if len(entries) != 1 {
		t.Fatalf("List = %v", entries)
	}
	if entries[0].Name() != "HELLO.BAS" || entries[0].Size != len(payload) {
		t.Fatalf("entry = %+v", entries[0])
	}
}

func TestInsertMultiGranuleFile(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	payload := make([]byte, 2304*3+100) // spans 4 granules
	for i := range payload {
		payload[i] = byte(i)
	}

	if err := v.Insert("BIG.DAT", payload, coco.FileTypeData, coco.ModeBinary); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	got, err := v.Extract("BIG.DAT")
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("Extract returned %d bytes, want %d", len(got), len(payload))
	}

	entries := v.List()
	if entries[0].ChainLength != 4 {
		t.Fatalf("ChainLength = %d, want 4", entries[0].ChainLength)
	}
}

func TestInsertDuplicateNameRejected(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	if err := v.Insert("A", []byte("x"), coco.FileTypeData, coco.ModeBinary); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	err := v.Insert("a", []byte("y"), coco.FileTypeData, coco.ModeBinary)
	if err == nil {
		t.Fatal("expected DuplicateName error")
	}
	if cerr, ok := err.(*coco.Error); !ok || cerr.Kind != coco.DuplicateName {
		t.Fatalf("err = %v, want DuplicateName", err)
	}
}

func TestInsertInvalidNameRejected(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	if err := v.Insert("TOOLONGNAME.BAS", []byte("x"), coco.FileTypeData, coco.ModeBinary); err == nil {
		t.Fatal("expected NameInvalid error")
	}
}

func TestInsertInsufficientSpace(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	huge := make([]byte, 2304*69) // more bytes than the disk can hold
	err := v.Insert("HUGE.DAT", huge, coco.FileTypeData, coco.ModeBinary)
	if err == nil {
		t.Fatal("expected InsufficientSpace error")
	}
	if cerr, ok := errors.Cause(err).(*coco.Error); !ok || cerr.Kind != coco.InsufficientSpace {
		t.Fatalf("err = %v, want InsufficientSpace", err)
	}
	// Failed insert must not leave partial state behind.
	if len(v.List()) != 0 {
		t.Fatalf("expected no directory entries after failed insert, got %v", v.List())
	}
}

func TestInsertDirectoryFull(t *testing.T) {
	// A standard 35-track image only has 68 granules for 72 directory
	// slots, so a real Insert sequence can never exhaust every slot
	// (the FAT runs out first). Simulate a directory-full disk directly
	// to exercise the freeSlot rejection at the Volume layer.
	v := mustFormat(t, 35, 1, false)
	for i := 0; i < TotalDirEntries; i++ {
		v.dir.setEntry(i, coco.DirEntry{Status: coco.StatusActive, Filename: "X", FirstGranule: 0})
	}

	err := v.Insert("ONEMORE", []byte("x"), coco.FileTypeData, coco.ModeBinary)
	if err == nil {
		t.Fatal("expected DirectoryFull error")
	}
	if cerr, ok := errors.Cause(err).(*coco.Error); !ok || cerr.Kind != coco.DirectoryFull {
		t.Fatalf("err = %v, want DirectoryFull", err)
	}
	// The granule allocated before the directory-full rejection must be
	// returned to the free pool.
	for g := 32; g < 68; g++ {
		cell, _ := decodeCell(v.fat[g])
		if cell.Kind != coco.FATFree {
			t.Fatalf("granule %d not rolled back: %+v", g, cell)
		}
	}
}

func TestDeleteLeavesResidueButFreesGranules(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	if err := v.Insert("GAME", []byte("payload"), coco.FileTypeData, coco.ModeBinary); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	entry, ok := v.dir.lookup("GAME", "")
	if !ok {
		t.Fatal("lookup failed after insert")
	}
	slotBefore := v.dir.slots[entry.Slot]

	if err := v.Delete("GAME"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if _, ok := v.dir.lookup("GAME", ""); ok {
		t.Fatal("deleted file still resolves via lookup")
	}
	if v.dir.slots[entry.Slot][0] != statusDeleted {
		t.Fatalf("first byte = %#x, want 0x00", v.dir.slots[entry.Slot][0])
	}
	for i := 1; i < entrySize; i++ {
		if v.dir.slots[entry.Slot][i] != slotBefore[i] {
			t.Fatalf("byte %d changed on delete, want residue preserved", i)
		}
	}

	cell, _ := decodeCell(v.fat[entry.FirstGranule])
	if cell.Kind != coco.FATFree {
		t.Fatalf("granule %d not freed: %+v", entry.FirstGranule, cell)
	}
}

func TestDeleteThenReinsertReusesSlot(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	_ = v.Insert("A", []byte("1"), coco.FileTypeData, coco.ModeBinary)
	_ = v.Insert("B", []byte("2"), coco.FileTypeData, coco.ModeBinary)
	_ = v.Delete("A")

	if err := v.Insert("C", []byte("3"), coco.FileTypeData, coco.ModeBinary); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	entry, ok := v.dir.lookup("C", "")
	if !ok || entry.Slot != 0 {
		t.Fatalf("expected C to reuse slot 0, got ok=%v slot=%d", ok, entry.Slot)
	}
}

func TestRenameRejectsDuplicateAndPreservesData(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	_ = v.Insert("A", []byte("1"), coco.FileTypeData, coco.ModeBinary)
	_ = v.Insert("B", []byte("2"), coco.FileTypeData, coco.ModeBinary)

	if err := v.Rename("A", "B"); err == nil {
		t.Fatal("expected DuplicateName renaming onto an existing file")
	}

	if err := v.Rename("A", "C"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	data, err := v.Extract("C")
	if err != nil || string(data) != "1" {
		t.Fatalf("Extract after rename: %q, %v", data, err)
	}
}

func TestExtractFileNotFound(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	if _, err := v.Extract("NOPE"); err == nil {
		t.Fatal("expected FileNotFound error")
	}
}

func TestExtractRejectsCorruptFatChain(t *testing.T) {
	v := mustFormat(t, 35, 1, false)
	_ = v.Insert("A", []byte("1234567890"), coco.FileTypeData, coco.ModeBinary)

	// Corrupt the chain head to point at itself, forming a cycle.
	entry, _ := v.dir.lookup("A", "")
	v.fat[entry.FirstGranule] = byte(entry.FirstGranule)
	v.flush()

	image := v.Bytes()
	mounted, err := Mount(image)
	if err != nil {
		t.Fatalf("Mount should still succeed (corruption is only detected on use): %v", err)
	}

	if _, err := mounted.Extract("A"); err == nil {
		t.Fatal("expected CorruptFat error extracting a file with a cyclic chain")
	}
}

func TestMountRejectsTruncatedImage(t *testing.T) {
	if _, err := Mount([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error mounting a too-small image")
	}
}

func TestSaveWritesFullImage(t *testing.T) {
	v := mustFormat(t, 35, 1, true)
	_ = v.Insert("A", []byte("hi"), coco.FileTypeData, coco.ModeBinary)

	var buf bytes.Buffer
	if err := v.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), v.Bytes()) {
		t.Fatal("Save output does not match Bytes()")
	}
	if v.State() != coco.StateSaved {
		t.Fatalf("state = %v, want Saved", v.State())
	}
}
