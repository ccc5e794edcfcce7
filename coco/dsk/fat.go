package dsk

import (
	"coco-decb/coco"
	"coco-decb/coco/geometry"
)

// fatTable is the 68-entry File Allocation Table held in the first 68
// bytes of (directory track, sector 2).
type fatTable [geometry.GranulesPerDisk]byte

// decodeCell interprets a single FAT byte as the tagged sum type Design
// Note 1 calls for, instead of comparing raw bytes at every call site.
func decodeCell(b byte) (coco.FATCell, bool) {
	switch {
	case b == 0xFF:
		return coco.FATCell{Kind: coco.FATFree}, true
	case b <= 0x43:
		return coco.FATCell{Kind: coco.FATPointer, Next: int(b)}, true
	case b >= 0xC0 && b <= 0xC9:
		n := int(b & 0x0F)
		if n == 0 {
			n = 9
		}
		return coco.FATCell{Kind: coco.FATTerminal, Sectors: n}, true
	default:
		return coco.FATCell{}, false
	}
}

// encodeTerminal builds the FAT byte for a terminal granule using sectors
// (1..9) sectors used. A full granule (9) is always written as 0xC9, never
// the 0xC0 alias some images in the wild might use for the same meaning
// (see DESIGN.md's "terminal FAT value 0xC0" open question).
func encodeTerminal(sectors int) byte {
	return 0xC0 | byte(sectors%10)
}

// walk follows the FAT chain starting at head, returning the ordered
// granule list and the terminal granule's sectors-used count (1..9).
func (f *fatTable) walk(head int) ([]int, int, *coco.Error) {
	if head < 0 || head >= geometry.GranulesPerDisk {
		return nil, 0, coco.NewError(coco.CorruptFat, "head granule out of range").WithGranule(head)
	}

	visited := make(map[int]bool, geometry.GranulesPerDisk)
	chain := make([]int, 0, geometry.GranulesPerDisk)
	current := head

	for i := 0; i <= geometry.GranulesPerDisk; i++ {
		if visited[current] {
			return nil, 0, coco.NewError(coco.CorruptFat, "cycle in FAT chain").WithGranule(current)
		}
		visited[current] = true
		chain = append(chain, current)
		if len(chain) > geometry.GranulesPerDisk {
			return nil, 0, coco.NewError(coco.CorruptFat, "FAT chain exceeds 68 granules").WithGranule(current)
		}

		cell, ok := decodeCell(f[current])
		if !ok {
			return nil, 0, coco.NewError(coco.CorruptFat, "malformed FAT cell").WithGranule(current)
		}

		switch cell.Kind {
		case coco.FATTerminal:
			return chain, cell.Sectors, nil
		case coco.FATFree:
			return nil, 0, coco.NewError(coco.CorruptFat, "chain lands on a free granule").WithGranule(current)
		case coco.FATPointer:
			next := cell.Next
			if next < 0 || next >= geometry.GranulesPerDisk {
				return nil, 0, coco.NewError(coco.CorruptFat, "FAT pointer out of range").WithGranule(current)
			}
			current = next
		}
	}

	return nil, 0, coco.NewError(coco.CorruptFat, "FAT chain exceeds 68 granules").WithGranule(head)
}

// fileSize computes the byte length of a file from its granule chain per
// §8's invariant: (chainLength-1)*2304 + (terminalSectors-1)*256 + lastSectorBytes.
func fileSize(chainLength, terminalSectors, lastSectorBytes int) int {
	return (chainLength-1)*geometry.GranuleSectors*geometry.BytesPerSector +
		(terminalSectors-1)*geometry.BytesPerSector +
		lastSectorBytes
}

// allocate finds count free granules using the authentic DECB search
// order: ascending 32..67 first, then ascending 0..31.
func (f *fatTable) allocate(count int) ([]int, *coco.Error) {
	if count <= 0 {
		return nil, nil
	}

	order := make([]int, 0, geometry.GranulesPerDisk)
	for g := 32; g < geometry.GranulesPerDisk; g++ {
		order = append(order, g)
	}
	for g := 0; g < 32; g++ {
		order = append(order, g)
	}

	granules := make([]int, 0, count)
	for _, g := range order {
		cell, ok := decodeCell(f[g])
		if ok && cell.Kind == coco.FATFree {
			granules = append(granules, g)
			if len(granules) == count {
				return granules, nil
			}
		}
	}

	return nil, coco.NewError(coco.InsufficientSpace, "not enough free granules")
}

// link writes FAT entries for an ordered list of newly allocated granules,
// terminating the chain with lastSectors (1..9) sectors used in the final
// granule.
func (f *fatTable) link(granules []int, lastSectors int) {
	for i := 0; i < len(granules)-1; i++ {
		f[granules[i]] = byte(granules[i+1])
	}
	f[granules[len(granules)-1]] = encodeTerminal(lastSectors)
}

// free walks the chain at head and marks every visited granule free.
func (f *fatTable) free(head int) *coco.Error {
	chain, _, err := f.walk(head)
	if err != nil {
		return err
	}
	for _, g := range chain {
		f[g] = 0xFF
	}
	return nil
}

// fatPaddingSize is the size of the FAT sector's trailing padding region,
// bytes 68..255.
const fatPaddingSize = geometry.BytesPerSector - geometry.GranulesPerDisk

// freshFATPadding is the FAT sector padding on a just-formatted disk.
func freshFATPadding() [fatPaddingSize]byte {
	var p [fatPaddingSize]byte
	for i := range p {
		p[i] = 0xFF
	}
	return p
}

// dirtyFATPadding is the FAT sector padding after any file-modifying
// write, per the authentic DECB convention (spec.md §3).
func dirtyFATPadding() [fatPaddingSize]byte {
	return [fatPaddingSize]byte{}
}

// serialize renders the 256-byte FAT sector: the 68 FAT bytes followed by
// the caller-supplied padding (see freshFATPadding/dirtyFATPadding, or a
// verbatim padding preserved from an existing image that hasn't been
// mutated yet).
func (f fatTable) serialize(padding [fatPaddingSize]byte) [geometry.BytesPerSector]byte {
	var buf [geometry.BytesPerSector]byte
	copy(buf[:geometry.GranulesPerDisk], f[:])
	copy(buf[geometry.GranulesPerDisk:], padding[:])
	return buf
}

// newFreeFAT returns a FAT with every entry marked free, used by format().
func newFreeFAT() fatTable {
	var f fatTable
	for i := range f {
		f[i] = 0xFF
	}
	return f
}
