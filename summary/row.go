// File: summary/row.go

package summary

import (
	"fmt"
	"strings"

	"greg-hacke/go-imagedb/metadata"
)

// Placeholder makernote labels. The Makernote field is never empty: it is
// a vendor label, "(Unknown)" when only the raw tag was seen, or "N/A".
const (
	makernoteUnknown = "(Unknown)"
	makernoteNone    = "N/A"
)

// Row is one summary record per processed file. Empty string fields mean
// the source directory or tag was absent.
type Row struct {
	Path         string // absolute path as supplied by the scan driver
	RelativePath string // root-relative, used to build links
	DirCount     int
	Manufacturer string
	Model        string
	ExifVersion  string
	Thumbnail    string
	Makernote    string
}

// BuildRow derives a summary row from one file's metadata directories.
// Pure function of its inputs; every field independently defaults when its
// source directory or tag is missing.
func BuildRow(filePath string, dirs []metadata.Directory, relativePath string) Row {
	row := Row{
		Path:         filePath,
		RelativePath: relativePath,
		DirCount:     len(dirs),
	}

	if ifd0 := firstOfKind(dirs, metadata.KindIFD0); ifd0 != nil {
		row.Manufacturer, _ = ifd0.Description(metadata.TagMake)
		row.Model, _ = ifd0.Description(metadata.TagModel)
	}

	hasMakernoteTag := false
	if sub := firstOfKind(dirs, metadata.KindSubIFD); sub != nil {
		row.ExifVersion, _ = sub.Description(metadata.TagExifVersion)
		hasMakernoteTag = sub.HasTag(metadata.TagMakernote)
	}

	if thumb := firstOfKind(dirs, metadata.KindThumbnail); thumb != nil {
		width, wok := thumb.Int(metadata.TagImageWidth)
		height, hok := thumb.Int(metadata.TagImageHeight)
		if wok && hok {
			row.Thumbnail = fmt.Sprintf("Yes (%d x %d)", width, height)
		} else {
			row.Thumbnail = "Yes"
		}
	}

	row.Makernote = makernoteLabel(dirs, hasMakernoteTag)

	return row
}

// firstOfKind returns the first directory with the given kind identifier
func firstOfKind(dirs []metadata.Directory, kind string) metadata.Directory {
	for _, dir := range dirs {
		if dir.Kind() == kind {
			return dir
		}
	}
	return nil
}

// makernoteLabel derives the makernote column from the first directory
// whose kind identifier contains the makernote marker. The marker literal
// is stripped once from the display name.
func makernoteLabel(dirs []metadata.Directory, hasMakernoteTag bool) string {
	for _, dir := range dirs {
		if !strings.Contains(dir.Kind(), metadata.KindMarkerMakernote) {
			continue
		}
		name := strings.Replace(dir.Name(), metadata.NameMarkerMakernote, "", 1)
		return strings.TrimSpace(name)
	}
	if hasMakernoteTag {
		return makernoteUnknown
	}
	return makernoteNone
}
