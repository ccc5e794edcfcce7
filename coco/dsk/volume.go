// Package dsk implements the DECB volume engine: geometry-aware sector
// storage, the FAT granule allocator, the directory manager, and the
// Volume facade composing them into mount/list/extract/insert/delete/
// rename/format/save.
//
// Additional background on the DSK/JVC container can be found in spec.md.
package dsk

import (
	"io"
	"os"

	"github.com/pkg/errors"

	"coco-decb/coco"
	"coco-decb/coco/geometry"
	"coco-decb/storage"
)

const (
	// fatSectorNum is the sector (within the directory track) holding
	// the FAT.
	fatSectorNum = 2

	// firstDirSector is the first of the nine directory sectors.
	firstDirSector = 3
)

// Volume is a mounted DECB disk image: the public surface the CLI/TUI/HTTP
// collaborators (outside this module's scope) would consume.
//
// Volume is not safe for concurrent mutation from multiple goroutines; per
// §5 the image buffer is exclusively owned by its mounted Volume. Read-only
// use (List/Extract) from multiple goroutines on a Volume nobody else is
// mutating is safe.
type Volume struct {
	geo   geometry.Geometry
	store sectorStore
	fat   fatTable
	dir   directory

	state      coco.VolumeState
	fatPadding [fatPaddingSize]byte
	mutated    bool
}

// shadowCopy is the pre-operation snapshot used to roll back a failed
// mutation, per Design Note 3. FAT and directory are both small, fixed-size
// arrays so a whole-structure copy is cheap and is used instead of
// tracking just the individual touched sectors.
type shadowCopy struct {
	fat fatTable
	dir directory
}

func (v *Volume) snapshot() shadowCopy {
	return shadowCopy{fat: v.fat, dir: v.dir}
}

func (v *Volume) restore(s shadowCopy) {
	v.fat = s.fat
	v.dir = s.dir
}

// Mount parses image bytes into a Volume: detects the JVC header length,
// decodes geometry, and loads the FAT and directory from the directory
// track.
func Mount(image []byte) (*Volume, error) {
	headerLen := geometry.Detect(len(image))
	header := append([]byte(nil), image[:headerLen]...)

	geo, gerr := geometry.ParseHeader(header)
	if gerr != nil {
		return nil, errors.Wrap(coco.NewError(coco.UnsupportedGeometry, gerr.Error()), "parsing JVC header")
	}

	data := append([]byte(nil), image[headerLen:]...)

	trackBytes := geo.SectorsPerTrack * geo.SectorSize
	if geo.SectorsPerTrack <= 0 || trackBytes <= 0 || len(data)%trackBytes != 0 {
		return nil, coco.NewError(coco.InvalidImage, "image size is not a whole number of tracks")
	}
	totalTracks := len(data) / trackBytes
	if totalTracks <= geo.DirTrack {
		return nil, coco.NewError(coco.InvalidImage, "image too small to contain the directory track")
	}

	store := newSectorStore(geo, header, data)

	fatSector, serr := store.readSector(geo.DirTrack, fatSectorNum)
	if serr != nil {
		return nil, serr
	}
	var fat fatTable
	copy(fat[:], fatSector[:geometry.GranulesPerDisk])
	var padding [fatPaddingSize]byte
	copy(padding[:], fatSector[geometry.GranulesPerDisk:])

	var dir directory
	for i := 0; i < DirectorySectors; i++ {
		sec, derr := store.readSector(geo.DirTrack, firstDirSector+i)
		if derr != nil {
			return nil, derr
		}
		for j := 0; j < EntriesPerSector; j++ {
			slot := i*EntriesPerSector + j
			copy(dir.slots[slot][:], sec[j*entrySize:(j+1)*entrySize])
		}
	}

	return &Volume{
		geo:        geo,
		store:      store,
		fat:        fat,
		dir:        dir,
		state:      coco.StateMounted,
		fatPadding: padding,
	}, nil
}

// Load reads and mounts a DECB image from r.
func Load(r io.Reader) (*Volume, error) {
	sr := storage.NewReader(r)
	data, err := sr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading image")
	}
	return Mount(data)
}

// LoadFile opens and mounts the DECB image at path.
func LoadFile(path string) (*Volume, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()
	return Load(f)
}

// Format builds a fresh DECB image of the given geometry: tracks per side,
// number of sides (1 or 2), and whether to prepend a 5-byte JVC header
// (the authentic real-CoCo default is no header; JVC is opt-in).
func Format(tracks, sides int, addJVCHeader bool) (*Volume, error) {
	if sides != 1 && sides != 2 {
		return nil, coco.NewError(coco.UnsupportedGeometry, "sides must be 1 or 2")
	}
	if tracks <= 0 {
		return nil, coco.NewError(coco.UnsupportedGeometry, "tracks must be positive")
	}

	geo := geometry.DefaultGeometry()
	geo.Sides = sides

	totalLinearTracks := tracks * sides
	if totalLinearTracks <= geo.DirTrack {
		return nil, coco.NewError(coco.UnsupportedGeometry, "not enough tracks to hold the directory track")
	}

	dataLen := totalLinearTracks * geo.SectorsPerTrack * geo.SectorSize
	data := make([]byte, dataLen)
	for i := range data {
		data[i] = 0xFF
	}

	var header []byte
	if addJVCHeader {
		// Size code 1: 128<<1 = 256-byte sectors.
		header = []byte{byte(geo.SectorsPerTrack), byte(sides), 1, byte(geo.FirstSectorID), geo.Attribute}
	}

	v := &Volume{
		geo:        geo,
		store:      newSectorStore(geo, header, data),
		fat:        newFreeFAT(),
		dir:        newFreeDirectory(),
		state:      coco.StateMounted,
		fatPadding: freshFATPadding(),
	}
	v.flush()
	return v, nil
}

// State returns the volume's current lifecycle state.
func (v *Volume) State() coco.VolumeState {
	return v.state
}

// Geometry returns the volume's decoded geometry.
func (v *Volume) Geometry() geometry.Geometry {
	return v.geo
}

// List returns every active directory entry, each annotated with its
// computed size and granule chain length (entries whose FAT chain is
// corrupt report a zero size/chain length rather than failing the whole
// listing — per §7, only the FAT walker itself hard-fails).
func (v *Volume) List() []coco.ListEntry {
	entries := v.dir.enumerate()
	out := make([]coco.ListEntry, 0, len(entries))
	for _, e := range entries {
		le := coco.ListEntry{DirEntry: e}
		if chain, terminalSectors, err := v.fat.walk(e.FirstGranule); err == nil {
			le.ChainLength = len(chain)
			le.Size = fileSize(len(chain), terminalSectors, e.LastSectorBytes)
		}
		out = append(out, le)
	}
	return out
}

// Extract resolves name, walks its FAT chain, and returns its file
// contents truncated to the computed size.
func (v *Volume) Extract(name string) ([]byte, error) {
	filename, ext := splitName(name)
	entry, ok := v.dir.lookup(filename, ext)
	if !ok {
		return nil, coco.NewError(coco.FileNotFound, "file not found")
	}

	chain, terminalSectors, werr := v.fat.walk(entry.FirstGranule)
	if werr != nil {
		return nil, errors.Wrapf(werr, "walking FAT chain for %s", name)
	}

	size := fileSize(len(chain), terminalSectors, entry.LastSectorBytes)

	buf := make([]byte, 0, len(chain)*geometry.GranuleSectors*geometry.BytesPerSector)
	for _, g := range chain {
		data, serr := v.store.readGranule(g)
		if serr != nil {
			return nil, errors.Wrapf(serr, "reading granule data for %s", name)
		}
		buf = append(buf, data...)
	}

	if size < 0 {
		size = 0
	}
	if size > len(buf) {
		size = len(buf)
	}
	return buf[:size], nil
}

// Insert allocates granules for data, writes its payload, and creates a
// new directory entry for name. The whole operation is transactional: any
// failure restores the FAT and directory to their pre-call state.
func (v *Volume) Insert(name string, data []byte, fileType coco.FileType, mode coco.FileMode) error {
	rawFilename, rawExt := splitName(name)
	filename, ext, nerr := validateName(rawFilename, rawExt)
	if nerr != nil {
		return nerr
	}

	if _, exists := v.dir.lookup(filename, ext); exists {
		return coco.NewError(coco.DuplicateName, "a file with that name already exists")
	}

	granulesNeeded, sectorsUsed, lastSectorBytes := insertLayout(len(data))

	snap := v.snapshot()

	granules, aerr := v.fat.allocate(granulesNeeded)
	if aerr != nil {
		v.restore(snap)
		return errors.Wrapf(aerr, "allocating granules for %s", name)
	}

	padByte := byte(0x00)
	if mode == coco.ModeASCII {
		padByte = 0xFF
	}
	payload := make([]byte, granulesNeeded*geometry.GranuleSectors*geometry.BytesPerSector)
	for i := range payload {
		payload[i] = padByte
	}
	copy(payload, data)

	for i, g := range granules {
		chunk := payload[i*geometry.GranuleSectors*geometry.BytesPerSector : (i+1)*geometry.GranuleSectors*geometry.BytesPerSector]
		if werr := v.store.writeGranule(g, chunk); werr != nil {
			v.restore(snap)
			return errors.Wrapf(werr, "writing granule data for %s", name)
		}
	}

	v.fat.link(granules, sectorsUsed)

	slot, derr := v.dir.freeSlot()
	if derr != nil {
		v.restore(snap)
		return errors.Wrapf(derr, "finding a free directory slot for %s", name)
	}

	v.dir.setEntry(slot, coco.DirEntry{
		Status:          coco.StatusActive,
		Filename:        filename,
		Extension:       ext,
		Type:            fileType,
		Mode:            mode,
		FirstGranule:    granules[0],
		LastSectorBytes: lastSectorBytes,
	})

	v.markMutated()
	v.flush()
	return nil
}

// insertLayout computes the granule count, terminal-granule sectors-used,
// and last-sector byte count for a payload of size length, per spec.md's
// insert formulas.
//
// A zero-length payload is a degenerate case the DECB on-disk format
// cannot represent exactly: the smallest representable file occupies one
// granule with one used byte in its terminal sector. Inserting an empty
// file therefore round-trips as a single padding byte (0x00 for binary
// mode, 0xFF for ASCII mode), not zero bytes.
func insertLayout(length int) (granulesNeeded, sectorsUsed, lastSectorBytes int) {
	const granuleBytes = geometry.GranuleSectors * geometry.BytesPerSector

	if length == 0 {
		return 1, 1, 1
	}

	granulesNeeded = (length + granuleBytes - 1) / granuleBytes

	remainder := length % granuleBytes
	if remainder == 0 {
		sectorsUsed = geometry.GranuleSectors
	} else {
		sectorsUsed = (remainder + geometry.BytesPerSector - 1) / geometry.BytesPerSector
	}

	lastSectorBytes = length % geometry.BytesPerSector
	if lastSectorBytes == 0 {
		lastSectorBytes = geometry.BytesPerSector
	}

	return granulesNeeded, sectorsUsed, lastSectorBytes
}

// Delete frees name's granule chain and marks its directory entry deleted.
// Per the authentic DECB behavior, only the first filename byte is
// cleared: the rest of the entry's bytes (and the freed sectors) retain
// their stale contents.
func (v *Volume) Delete(name string) error {
	filename, ext := splitName(name)
	entry, ok := v.dir.lookup(filename, ext)
	if !ok {
		return coco.NewError(coco.FileNotFound, "file not found")
	}

	snap := v.snapshot()

	if ferr := v.fat.free(entry.FirstGranule); ferr != nil {
		v.restore(snap)
		return errors.Wrapf(ferr, "freeing FAT chain for %s", name)
	}
	v.dir.deleteSlot(entry.Slot)

	v.markMutated()
	v.flush()
	return nil
}

// Rename validates newName and rewrites oldName's directory entry in
// place, preserving type/mode/first-granule/last-sector/reserved bytes.
func (v *Volume) Rename(oldName, newName string) error {
	oldFilename, oldExt := splitName(oldName)
	entry, ok := v.dir.lookup(oldFilename, oldExt)
	if !ok {
		return coco.NewError(coco.FileNotFound, "file not found")
	}

	rawFilename, rawExt := splitName(newName)
	filename, ext, nerr := validateName(rawFilename, rawExt)
	if nerr != nil {
		return nerr
	}

	if existing, exists := v.dir.lookup(filename, ext); exists && existing.Slot != entry.Slot {
		return coco.NewError(coco.DuplicateName, "a file with that name already exists")
	}

	v.dir.renameSlot(entry.Slot, filename, ext)

	v.markMutated()
	v.flush()
	return nil
}

// Save writes the full image (header, if any, followed by every sector) to
// w.
func (v *Volume) Save(w io.Writer) error {
	sw := storage.NewWriter(w)
	if _, err := sw.Write(v.store.bytes()); err != nil {
		return errors.Wrap(err, "writing image")
	}
	if err := sw.Flush(); err != nil {
		return errors.Wrap(err, "flushing image")
	}
	v.state = coco.StateSaved
	return nil
}

// SaveFile creates (or truncates) path and saves the image to it.
func (v *Volume) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	defer f.Close()
	return v.Save(f)
}

// Bytes returns the full in-memory image: header followed by every
// sector. The returned slice is an independent copy; mutating it does not
// affect the Volume.
func (v *Volume) Bytes() []byte {
	return v.store.bytes()
}

// markMutated transitions the volume to Dirty and switches the FAT sector
// padding convention from "fresh format" to "after a file-modifying
// write" (spec.md §3).
func (v *Volume) markMutated() {
	v.mutated = true
	v.fatPadding = dirtyFATPadding()
	v.state = coco.StateDirty
}

// flush re-renders the FAT and directory sectors from their in-memory
// structures into the sector store, so Bytes()/Save() always reflect the
// current state.
func (v *Volume) flush() {
	fatSector := v.fat.serialize(v.fatPadding)
	_ = v.store.writeSector(v.geo.DirTrack, fatSectorNum, fatSector[:])

	for i := 0; i < DirectorySectors; i++ {
		var sec [geometry.BytesPerSector]byte
		for j := 0; j < EntriesPerSector; j++ {
			slot := i*EntriesPerSector + j
			copy(sec[j*entrySize:(j+1)*entrySize], v.dir.slots[slot][:])
		}
		_ = v.store.writeSector(v.geo.DirTrack, firstDirSector+i, sec[:])
	}
}
