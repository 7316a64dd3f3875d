// File: summary/extensions.go

package summary

import (
	"path/filepath"
	"strings"
)

// extensionSynonyms collapses synonym extensions to a canonical form.
// Static lookup data, not derived from file content.
var extensionSynonyms = map[string]string{
	"jpeg": "jpg",
	"tiff": "tif",
}

// NormalizeExtension returns the canonical lowercase extension for a file
// path, without the leading dot. A path with no extension yields "".
func NormalizeExtension(path string) string {
	ext := filepath.Ext(path)
	if ext == "" {
		return ""
	}
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if canonical, ok := extensionSynonyms[ext]; ok {
		return canonical
	}
	return ext
}
