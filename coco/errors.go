package coco

import "fmt"

// ErrorKind enumerates the failure taxonomy exposed across the volume
// facade, FAT allocator and directory manager.
type ErrorKind int

const (
	InvalidImage ErrorKind = iota
	UnsupportedGeometry
	FileNotFound
	DuplicateName
	NameInvalid
	InsufficientSpace
	DirectoryFull
	CorruptFat
	CorruptDirectory
	Truncated
	Io
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidImage:
		return "InvalidImage"
	case UnsupportedGeometry:
		return "UnsupportedGeometry"
	case FileNotFound:
		return "FileNotFound"
	case DuplicateName:
		return "DuplicateName"
	case NameInvalid:
		return "NameInvalid"
	case InsufficientSpace:
		return "InsufficientSpace"
	case DirectoryFull:
		return "DirectoryFull"
	case CorruptFat:
		return "CorruptFat"
	case CorruptDirectory:
		return "CorruptDirectory"
	case Truncated:
		return "Truncated"
	case Io:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error is the typed error value returned across the library boundary. It
// carries enough location detail (sector, granule, offset) to find the
// fault in the image, per §7.
type Error struct {
	Kind    ErrorKind
	Message string
	Sector  int // -1 when not applicable
	Granule int // -1 when not applicable
	Offset  int // -1 when not applicable
}

func (e *Error) Error() string {
	loc := ""
	if e.Sector >= 0 {
		loc += fmt.Sprintf(" sector=%d", e.Sector)
	}
	if e.Granule >= 0 {
		loc += fmt.Sprintf(" granule=%d", e.Granule)
	}
	if e.Offset >= 0 {
		loc += fmt.Sprintf(" offset=%d", e.Offset)
	}
	if loc == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s (%s)", e.Kind, e.Message, loc[1:])
}

// NewError builds an Error with all location fields defaulted to "not
// applicable".
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message, Sector: -1, Granule: -1, Offset: -1}
}

// WithSector sets the sector location field.
func (e *Error) WithSector(sector int) *Error {
	e.Sector = sector
	return e
}

// WithGranule sets the granule location field.
func (e *Error) WithGranule(granule int) *Error {
	e.Granule = granule
	return e
}

// WithOffset sets the byte offset location field.
func (e *Error) WithOffset(offset int) *Error {
	e.Offset = offset
	return e
}
