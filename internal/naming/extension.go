package naming

import (
	"strconv"
	"strings"
)

// ArchiveExtensions lists the archive container types the tool recognizes
// (lowercase, without the dot). They are the common archive types on Windows
// that 7-Zip extracts.
var ArchiveExtensions = []string{"7z", "zip", "rar", "tgz"}

// IsArchiveExtension reports whether ext is a known archive extension. The
// comparison is case-insensitive and a single leading dot is ignored, so
// "7Z", ".zip" and "RAR" all match. The empty extension never matches.
func IsArchiveExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return false
	}
	for _, a := range ArchiveExtensions {
		if ext == a {
			return true
		}
	}
	return false
}

// IsNumericExtension reports whether ext parses as a non-negative 32-bit
// integer ("001", "042"). Only ASCII digits are accepted; a single leading
// dot is ignored.
func IsNumericExtension(ext string) bool {
	_, ok := ParseNumber(strings.TrimPrefix(ext, "."))
	return ok
}

// ParseNumber parses s as an unsigned 32-bit decimal, leading zeros allowed.
func ParseNumber(s string) (uint32, bool) {
	if s == "" {
		return 0, false
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint32(n), true
}
