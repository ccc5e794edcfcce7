package dsk

import (
	"strings"

	"coco-decb/coco"
)

// validNameChars is the DECB filename/extension character set, checked
// after uppercasing.
const validNameChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789$#_.-"

// splitName splits "NAME.EXT" user input into its filename and extension
// parts. A name with no '.' has an empty extension.
func splitName(name string) (filename, ext string) {
	if i := strings.IndexByte(name, '.'); i >= 0 {
		return name[:i], name[i+1:]
	}
	return name, ""
}

// validateName uppercases and validates a filename/extension pair against
// the DECB naming rules: filename 1..8 chars, extension 0..3 chars,
// character set [A-Z0-9$#_.-], and no embedded 0x00/0xFF byte (those are
// the directory status sentinels).
func validateName(filename, ext string) (string, string, *coco.Error) {
	filename = strings.ToUpper(filename)
	ext = strings.ToUpper(ext)

	if len(filename) < 1 || len(filename) > 8 {
		return "", "", coco.NewError(coco.NameInvalid, "filename must be 1..8 characters")
	}
	if len(ext) > 3 {
		return "", "", coco.NewError(coco.NameInvalid, "extension must be 0..3 characters")
	}

	for _, c := range filename + ext {
		if c == 0x00 || c == 0xFF {
			return "", "", coco.NewError(coco.NameInvalid, "name contains a reserved byte")
		}
		if !strings.ContainsRune(validNameChars, c) {
			return "", "", coco.NewError(coco.NameInvalid, "name contains an invalid character")
		}
	}

	return filename, ext, nil
}

// padName renders a filename/extension pair into the on-disk, space-padded
// 8+3 form used for directory storage and comparisons.
func padName(filename, ext string) [11]byte {
	var buf [11]byte
	for i := range buf {
		buf[i] = ' '
	}
	copy(buf[0:8], filename)
	copy(buf[8:11], ext)
	return buf
}

// namesEqual compares two filename/extension pairs case-insensitively
// using the DECB padding convention.
func namesEqual(filename1, ext1, filename2, ext2 string) bool {
	return padName(strings.ToUpper(filename1), strings.ToUpper(ext1)) ==
		padName(strings.ToUpper(filename2), strings.ToUpper(ext2))
}
