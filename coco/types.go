// Package coco holds the types shared across the DECB geometry, disk and
// BASIC detokenizer packages: file type/mode tags, the decoded directory
// entry shape, the tagged FAT cell, and the volume lifecycle state.
package coco

// FileType is the DECB directory entry file type byte.
type FileType byte

const (
	FileTypeBasic FileType = 0
	FileTypeData  FileType = 1
	FileTypeML    FileType = 2
	FileTypeText  FileType = 3
)

func (t FileType) String() string {
	switch t {
	case FileTypeBasic:
		return "BASIC"
	case FileTypeData:
		return "DATA"
	case FileTypeML:
		return "ML"
	case FileTypeText:
		return "TEXT"
	default:
		return "UNKNOWN"
	}
}

// FileMode is the DECB directory entry ASCII/binary flag.
type FileMode byte

const (
	ModeBinary FileMode = 0x00
	ModeASCII  FileMode = 0xFF
)

func (m FileMode) String() string {
	if m == ModeASCII {
		return "ASCII"
	}
	return "Binary"
}

// EntryStatus is the tri-state encoded in the first byte of a directory
// entry's filename field.
type EntryStatus int

const (
	StatusActive EntryStatus = iota
	StatusDeleted
	StatusNeverUsed
)

// DirEntry is the decoded, public view of a 32-byte directory slot.
type DirEntry struct {
	Slot         int // 0..71, position in the directory
	Status       EntryStatus
	Filename     string // 1..8 chars, upper-cased, unpadded
	Extension    string // 0..3 chars, upper-cased, unpadded
	Type         FileType
	Mode         FileMode
	FirstGranule int // 0..67
	LastSectorBytes int // 1..256, meaningful for active entries only
}

// Name returns the DECB "NAME.EXT" form of the entry.
func (e DirEntry) Name() string {
	if e.Extension == "" {
		return e.Filename
	}
	return e.Filename + "." + e.Extension
}

// ListEntry is a directory entry annotated with its computed size and FAT
// chain length, the shape Volume.List returns.
type ListEntry struct {
	DirEntry
	Size        int
	ChainLength int
}

// FATCellKind tags the three mutually exclusive interpretations of a FAT
// byte, per Design Note 1: a FAT cell is a sum type, never a bare byte
// compared at call sites.
type FATCellKind int

const (
	FATFree FATCellKind = iota
	FATPointer
	FATTerminal
)

// FATCell is the decoded form of one byte of the File Allocation Table.
type FATCell struct {
	Kind     FATCellKind
	Next     int // valid when Kind == FATPointer: successor granule 0..67
	Sectors  int // valid when Kind == FATTerminal: sectors used in granule, 1..9
}

// VolumeState models the §4.5 mount lifecycle.
type VolumeState int

const (
	StateUnmounted VolumeState = iota
	StateMounted
	StateDirty
	StateSaved
)

func (s VolumeState) String() string {
	switch s {
	case StateUnmounted:
		return "Unmounted"
	case StateMounted:
		return "Mounted"
	case StateDirty:
		return "Dirty"
	case StateSaved:
		return "Saved"
	default:
		return "Unknown"
	}
}
