package utils

import (
	"path/filepath"
	"strings"
)

// SanitizeFileName replaces characters that are unsafe in file names
// so an uploaded name can be used directly on disk
func SanitizeFileName(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' || r == '.' {
			return r
		}
		return '_'
	}, name)
}

// BaseNameWithoutExt extracts the base file name without its extension
func BaseNameWithoutExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// IsPDF reports whether the file name carries a .pdf extension
func IsPDF(name string) bool {
	return strings.ToLower(filepath.Ext(name)) == ".pdf"
}
