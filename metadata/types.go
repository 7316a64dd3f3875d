// File: metadata/types.go

package metadata

// Directory kind identifiers. Kinds are stable internal names; display
// names are free-form and must not be used for dispatch.
const (
	KindIFD0      = "exif-ifd0"
	KindSubIFD    = "exif-subifd"
	KindThumbnail = "exif-thumbnail"
)

// Makernote markers. Vendor directory kinds contain KindMarkerMakernote
// ("canon-makernote", "nikon-makernote", ...); display names carry
// NameMarkerMakernote ("Canon Makernote", ...).
const (
	KindMarkerMakernote = "makernote"
	NameMarkerMakernote = "Makernote"
)

// TIFF/EXIF tag IDs used across directories
const (
	TagImageWidth     uint16 = 0x0100
	TagImageHeight    uint16 = 0x0101
	TagCompression    uint16 = 0x0103
	TagMake           uint16 = 0x010F
	TagModel          uint16 = 0x0110
	TagOrientation    uint16 = 0x0112
	TagXResolution    uint16 = 0x011A
	TagYResolution    uint16 = 0x011B
	TagResolutionUnit uint16 = 0x0128
	TagSoftware       uint16 = 0x0131
	TagDateTime       uint16 = 0x0132
	TagExifOffset     uint16 = 0x8769
	TagExifVersion    uint16 = 0x9000
	TagMakernote      uint16 = 0x927C
)

// Directory is a named, kind-tagged collection of tag entries extracted
// from one file.
type Directory interface {
	// Kind returns the stable kind identifier
	Kind() string
	// Name returns the human-readable display name
	Name() string
	// TagCount returns the number of tag entries
	TagCount() int
	// HasTag reports whether the tag is present
	HasTag(id uint16) bool
	// Int returns the tag value as an integer with a presence flag
	Int(id uint16) (int, bool)
	// Description returns the human-readable rendering of the tag value
	Description(id uint16) (string, bool)
	// Tags returns the entries in extraction order
	Tags() []Tag
}

// Tag is a single tag entry within a directory
type Tag struct {
	ID    uint16
	Value interface{}
}

// TagDirectory is the concrete Directory used by the extractor
type TagDirectory struct {
	kind  string
	name  string
	tags  []Tag
	index map[uint16]int
}

// NewTagDirectory creates an empty directory of the given kind
func NewTagDirectory(kind, name string) *TagDirectory {
	return &TagDirectory{
		kind:  kind,
		name:  name,
		index: make(map[uint16]int),
	}
}

// SetTag stores a tag value, replacing any previous entry for the ID
func (d *TagDirectory) SetTag(id uint16, value interface{}) {
	if i, ok := d.index[id]; ok {
		d.tags[i].Value = value
		return
	}
	d.index[id] = len(d.tags)
	d.tags = append(d.tags, Tag{ID: id, Value: value})
}

// Kind returns the stable kind identifier
func (d *TagDirectory) Kind() string { return d.kind }

// Name returns the display name
func (d *TagDirectory) Name() string { return d.name }

// TagCount returns the number of tag entries
func (d *TagDirectory) TagCount() int { return len(d.tags) }

// HasTag reports whether the tag is present
func (d *TagDirectory) HasTag(id uint16) bool {
	_, ok := d.index[id]
	return ok
}

// Int returns the tag value as an integer with a presence flag
func (d *TagDirectory) Int(id uint16) (int, bool) {
	i, ok := d.index[id]
	if !ok {
		return 0, false
	}
	switch v := d.tags[i].Value.(type) {
	case int:
		return v, true
	case []int:
		if len(v) > 0 {
			return v[0], true
		}
	}
	return 0, false
}

// Description returns the human-readable rendering of the tag value
func (d *TagDirectory) Description(id uint16) (string, bool) {
	i, ok := d.index[id]
	if !ok {
		return "", false
	}
	return describeValue(d.kind, id, d.tags[i].Value), true
}

// Tags returns the entries in extraction order
func (d *TagDirectory) Tags() []Tag {
	return d.tags
}
