// File: metadata/tags.go

package metadata

import (
	"fmt"
	"strings"
)

// tagNames maps directory kind -> tag ID -> human-readable tag name.
// Static lookup data, not derived from file content.
var tagNames = map[string]map[uint16]string{
	KindIFD0: {
		TagImageWidth:     "Image Width",
		TagImageHeight:    "Image Height",
		TagMake:           "Make",
		TagModel:          "Model",
		TagOrientation:    "Orientation",
		TagXResolution:    "X Resolution",
		TagYResolution:    "Y Resolution",
		TagResolutionUnit: "Resolution Unit",
		TagSoftware:       "Software",
		TagDateTime:       "Date/Time",
		TagExifOffset:     "Exif Offset",
	},
	KindSubIFD: {
		TagExifVersion: "Exif Version",
		TagMakernote:   "Makernote",
	},
	KindThumbnail: {
		TagImageWidth:  "Thumbnail Width",
		TagImageHeight: "Thumbnail Height",
		TagCompression: "Compression",
	},
}

// tagValues maps directory kind -> tag ID -> enumerated value descriptions
var tagValues = map[string]map[uint16]map[int]string{
	KindIFD0: {
		TagOrientation: {
			1: "Top, left side (Horizontal / normal)",
			2: "Top, right side (Mirror horizontal)",
			3: "Bottom, right side (Rotate 180)",
			4: "Bottom, left side (Mirror vertical)",
			5: "Left side, top (Mirror horizontal and rotate 270 CW)",
			6: "Right side, top (Rotate 90 CW)",
			7: "Right side, bottom (Mirror horizontal and rotate 90 CW)",
			8: "Left side, bottom (Rotate 270 CW)",
		},
		TagResolutionUnit: {
			1: "(No unit)",
			2: "Inch",
			3: "cm",
		},
	},
	KindThumbnail: {
		TagCompression: {
			1: "Uncompressed",
			6: "JPEG (old-style)",
			7: "JPEG",
		},
	},
}

// makernoteVendors maps a Make prefix to the vendor makernote directory.
// The kind carries the "makernote" marker; the display name carries
// "Makernote".
var makernoteVendors = []struct {
	prefix string
	kind   string
	name   string
}{
	{"Canon", "canon-makernote", "Canon Makernote"},
	{"NIKON", "nikon-makernote", "Nikon Makernote"},
	{"SONY", "sony-makernote", "Sony Makernote"},
	{"FUJIFILM", "fujifilm-makernote", "Fujifilm Makernote"},
	{"OLYMPUS", "olympus-makernote", "Olympus Makernote"},
	{"PENTAX", "pentax-makernote", "Pentax Makernote"},
	{"Panasonic", "panasonic-makernote", "Panasonic Makernote"},
	{"Apple", "apple-makernote", "Apple Makernote"},
	{"CASIO", "casio-makernote", "Casio Makernote"},
	{"KODAK", "kodak-makernote", "Kodak Makernote"},
}

// TagName returns the human-readable name for a tag within a kind
func TagName(kind string, id uint16) string {
	if table, ok := tagNames[kind]; ok {
		if name, ok := table[id]; ok {
			return name
		}
	}
	return fmt.Sprintf("Unknown tag (0x%04X)", id)
}

// makernoteDirectory resolves the vendor directory for a makernote based
// on the camera make. Returns false when the vendor cannot be told.
func makernoteDirectory(cameraMake string) (kind, name string, ok bool) {
	for _, v := range makernoteVendors {
		if strings.HasPrefix(cameraMake, v.prefix) {
			return v.kind, v.name, true
		}
	}
	return "", "", false
}

// describeValue renders a tag value as a human-readable string
func describeValue(kind string, id uint16, value interface{}) string {
	// Enumerated values take precedence
	if v, ok := value.(int); ok {
		if byTag, ok := tagValues[kind]; ok {
			if mapped, ok := byTag[id][v]; ok {
				return mapped
			}
		}
	}

	// Exif version is four ASCII digits, e.g. "0220" -> "2.20"
	if kind == KindSubIFD && id == TagExifVersion {
		if s := versionString(value); s != "" {
			return s
		}
	}

	switch v := value.(type) {
	case string:
		return strings.TrimSpace(v)
	case int:
		return fmt.Sprintf("%d", v)
	case []int:
		parts := make([]string, len(v))
		for i, n := range v {
			parts[i] = fmt.Sprintf("%d", n)
		}
		return strings.Join(parts, " ")
	case []string:
		return strings.Join(v, " ")
	case []byte:
		return fmt.Sprintf("[%d bytes]", len(v))
	default:
		return fmt.Sprintf("%v", v)
	}
}

// versionString converts a four-digit version code to dotted form
func versionString(value interface{}) string {
	var s string
	switch v := value.(type) {
	case []byte:
		s = string(v)
	case string:
		s = v
	default:
		return ""
	}
	if len(s) != 4 {
		return ""
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return ""
		}
	}
	major := strings.TrimLeft(s[:2], "0")
	if major == "" {
		major = "0"
	}
	return major + "." + s[2:]
}
