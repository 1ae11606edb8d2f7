// Package outpath turns frame names into file names that are safe to write
// on any common filesystem.
//
// Frame names are flat identifiers. A name such as "hero/idle_0.png" becomes
// "hero_idle_0.png"; no subdirectories are ever created, and two frames whose
// names sanitize to the same string will overwrite each other.
package outpath

import (
	"path/filepath"
	"strings"
)

// PNG is the default output extension.
const PNG = ".png"

// fallback is used when nothing is left of a name after sanitizing.
const fallback = "unnamed"

// Sanitize replaces the characters < > : " / \ | ? * and control characters
// 0x00-0x1F with '_', then trims surrounding whitespace.
func Sanitize(name string) string {
	s := strings.Map(func(r rune) rune {
		if r < 0x20 {
			return '_'
		}
		switch r {
		case '<', '>', ':', '"', '/', '\\', '|', '?', '*':
			return '_'
		}
		return r
	}, name)
	return strings.TrimSpace(s)
}

// Name returns the sanitized name ending in exactly one ".png".
func Name(name string) string {
	return NameExt(name, PNG)
}

// NameExt is like Name for an arbitrary extension, which must include the
// leading dot. A trailing ".png" or ext, in any case, is dropped before ext
// is appended.
func NameExt(name, ext string) string {
	stem := Sanitize(name)
	switch {
	case hasSuffixFold(stem, PNG):
		stem = stem[:len(stem)-len(PNG)]
	case hasSuffixFold(stem, ext):
		stem = stem[:len(stem)-len(ext)]
	}
	if stem == "" {
		stem = fallback
	}
	return stem + strings.ToLower(ext)
}

// Join returns where the frame called name is written under root.
func Join(root, name, ext string) string {
	return filepath.Join(root, NameExt(name, ext))
}

func hasSuffixFold(s, suffix string) bool {
	return len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix)
}
