package dsk

import (
	"coco-decb/coco"
	"coco-decb/coco/geometry"
)

// sectorStore owns the contiguous in-memory image buffer: an immutable
// header plus the mutable sector area, addressed by (track, sector).
type sectorStore struct {
	geo    geometry.Geometry
	header []byte
	data   []byte
}

func newSectorStore(geo geometry.Geometry, header, data []byte) sectorStore {
	return sectorStore{geo: geo, header: header, data: data}
}

// readSector returns a copy of one 256-byte sector.
func (s *sectorStore) readSector(track, sector int) ([]byte, *coco.Error) {
	off := s.geo.SectorOffset(track, sector)
	if off < 0 || off+s.geo.SectorSize > len(s.data) {
		return nil, coco.NewError(coco.Io, "sector offset out of range").WithOffset(off)
	}
	buf := make([]byte, s.geo.SectorSize)
	copy(buf, s.data[off:off+s.geo.SectorSize])
	return buf, nil
}

// writeSector overwrites one 256-byte sector in place.
func (s *sectorStore) writeSector(track, sector int, buf []byte) *coco.Error {
	off := s.geo.SectorOffset(track, sector)
	if off < 0 || off+s.geo.SectorSize > len(s.data) {
		return coco.NewError(coco.Io, "sector offset out of range").WithOffset(off)
	}
	copy(s.data[off:off+s.geo.SectorSize], buf)
	return nil
}

// readGranule reads the geometry.GranuleSectors consecutive sectors making
// up granule g and concatenates their payload.
func (s *sectorStore) readGranule(granule int) ([]byte, *coco.Error) {
	track, startSector, count, gerr := s.geo.GranuleLocation(granule)
	if gerr != nil {
		return nil, coco.NewError(coco.CorruptFat, gerr.Error()).WithGranule(granule)
	}

	buf := make([]byte, 0, count*s.geo.SectorSize)
	for i := 0; i < count; i++ {
		sec, err := s.readSector(track, startSector+i)
		if err != nil {
			return nil, err
		}
		buf = append(buf, sec...)
	}
	return buf, nil
}

// writeGranule writes data (exactly geometry.GranuleSectors*sectorSize
// bytes) across granule g's sectors.
func (s *sectorStore) writeGranule(granule int, data []byte) *coco.Error {
	track, startSector, count, gerr := s.geo.GranuleLocation(granule)
	if gerr != nil {
		return coco.NewError(coco.CorruptFat, gerr.Error()).WithGranule(granule)
	}

	want := count * s.geo.SectorSize
	if len(data) != want {
		return coco.NewError(coco.Io, "granule payload length mismatch").WithGranule(granule)
	}

	for i := 0; i < count; i++ {
		chunk := data[i*s.geo.SectorSize : (i+1)*s.geo.SectorSize]
		if err := s.writeSector(track, startSector+i, chunk); err != nil {
			return err
		}
	}
	return nil
}

// bytes returns the full image: header followed by the sector area.
func (s *sectorStore) bytes() []byte {
	out := make([]byte, 0, len(s.header)+len(s.data))
	out = append(out, s.header...)
	out = append(out, s.data...)
	return out
}
