package dsk

import (
	"encoding/binary"
	"strings"

	"coco-decb/coco"
)

const (
	// DirectorySectors is the number of directory sectors (3..11 of the
	// directory track).
	DirectorySectors = 9

	// EntriesPerSector is the number of 32-byte directory slots per
	// sector.
	EntriesPerSector = 8

	// TotalDirEntries is the maximum number of directory entries a DECB
	// volume can hold.
	TotalDirEntries = DirectorySectors * EntriesPerSector

	entrySize = 32

	statusNeverUsed = 0xFF
	statusDeleted   = 0x00
)

// directory holds the decoded 72 directory slots, 32 raw bytes each.
type directory struct {
	slots [TotalDirEntries][entrySize]byte
}

// newFreeDirectory returns a directory with every slot filled 0xFF, the
// fresh-format state: every byte never-used, including the reserved
// trailing bytes (spec.md §3's "0xFF for never-used entries" rule).
func newFreeDirectory() directory {
	var d directory
	for i := range d.slots {
		for j := range d.slots[i] {
			d.slots[i][j] = 0xFF
		}
	}
	return d
}

func statusOf(firstByte byte) coco.EntryStatus {
	switch firstByte {
	case statusNeverUsed:
		return coco.StatusNeverUsed
	case statusDeleted:
		return coco.StatusDeleted
	default:
		return coco.StatusActive
	}
}

// decodeEntry unpacks a 32-byte directory slot into its public form. Only
// meaningful when the entry is active; other statuses return just the
// slot index and status.
func decodeEntry(slot int, raw [entrySize]byte) coco.DirEntry {
	e := coco.DirEntry{Slot: slot, Status: statusOf(raw[0])}
	if e.Status != coco.StatusActive {
		return e
	}

	e.Filename = strings.TrimRight(string(raw[0:8]), " ")
	e.Extension = strings.TrimRight(string(raw[8:11]), " ")
	e.Type = coco.FileType(raw[11])
	e.Mode = coco.FileMode(raw[12])
	e.FirstGranule = int(raw[13])

	lastBytes := int(binary.BigEndian.Uint16(raw[14:16]))
	if lastBytes == 0 {
		// "0 meaning 256 in extraction" per spec.md §3.
		lastBytes = 256
	}
	e.LastSectorBytes = lastBytes

	return e
}

// encodeEntry packs a public DirEntry (Status must be StatusActive) back
// into its 32-byte wire form. Reserved bytes are zeroed, the "authentic"
// rule for entries produced by a file operation.
func encodeEntry(e coco.DirEntry) [entrySize]byte {
	var raw [entrySize]byte

	name := padName(e.Filename, e.Extension)
	copy(raw[0:11], name[:])
	raw[11] = byte(e.Type)
	raw[12] = byte(e.Mode)
	raw[13] = byte(e.FirstGranule)
	binary.BigEndian.PutUint16(raw[14:16], uint16(e.LastSectorBytes))
	// raw[16:32] already zero.

	return raw
}

// enumerate walks the directory in slot order, stopping at the first
// never-used entry (the authentic early-termination rule) and skipping
// deleted entries along the way.
func (d *directory) enumerate() []coco.DirEntry {
	var out []coco.DirEntry
	for i := 0; i < TotalDirEntries; i++ {
		switch statusOf(d.slots[i][0]) {
		case coco.StatusNeverUsed:
			return out
		case coco.StatusDeleted:
			continue
		default:
			out = append(out, decodeEntry(i, d.slots[i]))
		}
	}
	return out
}

// lookup finds the first active entry matching filename/ext
// case-insensitively, per the DECB padding convention.
func (d *directory) lookup(filename, ext string) (coco.DirEntry, bool) {
	for _, e := range d.enumerate() {
		if namesEqual(e.Filename, e.Extension, filename, ext) {
			return e, true
		}
	}
	return coco.DirEntry{}, false
}

// freeSlot finds the first slot available for insert: first byte 0x00
// (reuse a deleted entry) or 0xFF (never used), in scan order.
func (d *directory) freeSlot() (int, *coco.Error) {
	for i := 0; i < TotalDirEntries; i++ {
		if d.slots[i][0] == statusDeleted || d.slots[i][0] == statusNeverUsed {
			return i, nil
		}
	}
	return -1, coco.NewError(coco.DirectoryFull, "no free directory slot")
}

// setEntry writes e into slot.
func (d *directory) setEntry(slot int, e coco.DirEntry) {
	d.slots[slot] = encodeEntry(e)
}

// deleteSlot overwrites only the first filename byte with 0x00, leaving
// the remaining 31 bytes unchanged — the authentic DECB delete behavior
// (the stale bytes are the "residue" §8 permits).
func (d *directory) deleteSlot(slot int) {
	d.slots[slot][0] = statusDeleted
}

// renameSlot copies the new filename/extension into slot, leaving every
// other field untouched.
func (d *directory) renameSlot(slot int, filename, ext string) {
	name := padName(filename, ext)
	copy(d.slots[slot][0:11], name[:])
}
