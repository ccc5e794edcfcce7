// Package geometry implements JVC header detection and the sector/granule
// addressing arithmetic for CoCo DECB disk images, including the directory
// track hole.
//
// Reference: DECB stores a disk image as an optional 0..255 byte JVC
// header followed by a flat run of 256-byte sectors, addressed as
// sectors[track][sector] with sector numbering starting at 1.
package geometry

import (
	"github.com/pkg/errors"
)

const (
	// BytesPerSector is the on-disk DECB sector payload size.
	BytesPerSector = 256

	// DefaultSectorsPerTrack is the standard CoCo DECB track geometry.
	DefaultSectorsPerTrack = 18

	// GranuleSectors is the number of sectors making up one granule.
	GranuleSectors = 9

	// GranulesPerDisk is the number of granules on a standard 35-track
	// single-sided disk (68 total, directory track excluded).
	GranulesPerDisk = 68
)

// Geometry describes the physical layout of a DECB disk image.
type Geometry struct {
	SectorsPerTrack int
	Sides           int
	SectorSize      int
	FirstSectorID   int
	Attribute       byte

	// DirTrack is the track holding the FAT and directory sectors. Always
	// 17 on CoCo DECB disks; the source never supports relocating it (see
	// §6), but the field exists so the one place that would need to
	// change has a name.
	DirTrack int
}

// DefaultGeometry returns the standard 35-track single-sided geometry used
// when no JVC header is present.
func DefaultGeometry() Geometry {
	return Geometry{
		SectorsPerTrack: DefaultSectorsPerTrack,
		Sides:           1,
		SectorSize:      BytesPerSector,
		FirstSectorID:   1,
		Attribute:       0,
		DirTrack:        17,
	}
}

// Detect returns the JVC header length implied by an image's total byte
// length: header_length = image_length mod 256. This is the defining
// detection rule — there is no magic signature to look for.
func Detect(imageLength int) int {
	return imageLength % BytesPerSector
}

// ParseHeader decodes a JVC header's first five bytes into a Geometry,
// falling back to DefaultGeometry's values for anything the header leaves
// unspecified (an empty header). Trailing header bytes beyond offset 5 are
// ignored here but must be preserved verbatim by the caller on save.
func ParseHeader(header []byte) (Geometry, error) {
	g := DefaultGeometry()
	if len(header) == 0 {
		return g, nil
	}

	g.SectorsPerTrack = int(header[0])

	if len(header) > 1 {
		g.Sides = int(header[1])
	}

	if len(header) > 2 {
		sizeCode := header[2]
		if sizeCode > 3 {
			return Geometry{}, errors.Errorf("invalid sector size code %d", sizeCode)
		}
		g.SectorSize = 128 << sizeCode
	}

	if len(header) > 3 {
		first := int(header[3])
		if first != 0 && first != 1 {
			// Spec treats out-of-range first sector ids as malformed
			// with a soft fallback to 1, rather than a hard error.
			first = 1
		}
		if first == 0 {
			first = 1
		}
		g.FirstSectorID = first
	}

	if len(header) > 4 {
		g.Attribute = header[4]
	}

	return g, nil
}

// SectorOffset computes the byte offset of (track, sector) within the
// sector area, not counting the header. Track is 0-based; sector numbering
// starts at g.FirstSectorID.
//
// Double-sided images use track-major, side-interleaved ordering: side 0
// and side 1 of a given cylinder are adjacent tracks in the linear layout
// (cylinder 0 side 0, cylinder 0 side 1, cylinder 1 side 0, ...). The
// source spec leaves this unfixed (§9); this is the convention this
// implementation commits to so format() with sides=2 is well-defined.
func (g Geometry) SectorOffset(track, sector int) int {
	return (track*g.SectorsPerTrack + (sector - g.FirstSectorID)) * g.SectorSize
}

// GranuleLocation maps a logical granule number to its (track,
// startSector, sectorCount) physical location, applying the directory
// track hole: granules are numbered 0..67 skipping g.DirTrack.
//
// The formula below hard-codes the directory track hole at track 17 (via
// the "granule < 34 ? g/2 : g/2+1" split), matching the fixed-track-17
// convention every real CoCo DECB disk uses; g.DirTrack is informational
// only (see its doc comment) since the source never relocates it.
func (g Geometry) GranuleLocation(granule int) (track, startSector, sectorCount int, err error) {
	if granule < 0 || granule >= GranulesPerDisk {
		return 0, 0, 0, errors.Errorf("granule %d out of range 0..%d", granule, GranulesPerDisk-1)
	}

	if granule < 34 {
		track = granule / 2
	} else {
		track = granule/2 + 1
	}

	startSector = g.FirstSectorID + GranuleSectors*(granule%2)
	return track, startSector, GranuleSectors, nil
}
