package metadata

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func putEntry(buf *bytes.Buffer, id, dataType uint16, count uint32, inline [4]byte) {
	binary.Write(buf, binary.LittleEndian, id)
	binary.Write(buf, binary.LittleEndian, dataType)
	binary.Write(buf, binary.LittleEndian, count)
	buf.Write(inline[:])
}

// buildTestTIFF assembles a little-endian TIFF stream with an IFD0
// (Make at offset 50, inline Model, SubIFD pointer), a SubIFD (version,
// makernote at offset 86), and an IFD1 thumbnail at offset 94.
func buildTestTIFF() []byte {
	var buf bytes.Buffer

	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(8)) // IFD0 offset

	// IFD0: 3 entries
	binary.Write(&buf, binary.LittleEndian, uint16(3))
	putEntry(&buf, TagMake, 2, 6, [4]byte{50, 0, 0, 0})       // "Canon\x00" at 50
	putEntry(&buf, TagModel, 2, 4, [4]byte{'E', 'O', 'S', 0}) // inline
	putEntry(&buf, TagExifOffset, 4, 1, [4]byte{56, 0, 0, 0}) // SubIFD at 56
	binary.Write(&buf, binary.LittleEndian, uint32(94))       // IFD1 at 94

	buf.WriteString("Canon\x00") // 50..55

	// SubIFD at 56: 2 entries
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	putEntry(&buf, TagExifVersion, 7, 4, [4]byte{'0', '2', '2', '0'})
	putEntry(&buf, TagMakernote, 7, 8, [4]byte{86, 0, 0, 0}) // raw bytes at 86
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	buf.Write([]byte{1, 2, 3, 4, 5, 6, 7, 8}) // 86..93: opaque makernote

	// IFD1 at 94: thumbnail dimensions
	binary.Write(&buf, binary.LittleEndian, uint16(2))
	putEntry(&buf, TagImageWidth, 3, 1, [4]byte{160, 0, 0, 0})
	putEntry(&buf, TagImageHeight, 3, 1, [4]byte{120, 0, 0, 0})
	binary.Write(&buf, binary.LittleEndian, uint32(0))

	return buf.Bytes()
}

func TestParseTIFF(t *testing.T) {
	dirs, err := ParseTIFF(buildTestTIFF())
	require.NoError(t, err)
	require.Len(t, dirs, 4)

	assert.Equal(t, KindIFD0, dirs[0].Kind())
	assert.Equal(t, KindSubIFD, dirs[1].Kind())
	assert.Equal(t, "canon-makernote", dirs[2].Kind())
	assert.Equal(t, KindThumbnail, dirs[3].Kind())

	manufacturer, ok := dirs[0].Description(TagMake)
	require.True(t, ok)
	assert.Equal(t, "Canon", manufacturer)
	model, ok := dirs[0].Description(TagModel)
	require.True(t, ok)
	assert.Equal(t, "EOS", model)

	version, ok := dirs[1].Description(TagExifVersion)
	require.True(t, ok)
	assert.Equal(t, "2.20", version)
	assert.True(t, dirs[1].HasTag(TagMakernote))

	assert.Equal(t, "Canon Makernote", dirs[2].Name())
	assert.Equal(t, 1, dirs[2].TagCount())

	width, ok := dirs[3].Int(TagImageWidth)
	require.True(t, ok)
	assert.Equal(t, 160, width)
	height, ok := dirs[3].Int(TagImageHeight)
	require.True(t, ok)
	assert.Equal(t, 120, height)
}

func TestParseTIFFBigEndianMagicOnly(t *testing.T) {
	// Big-endian header with an empty IFD
	var buf bytes.Buffer
	buf.WriteString("MM")
	binary.Write(&buf, binary.BigEndian, uint16(42))
	binary.Write(&buf, binary.BigEndian, uint32(8))
	binary.Write(&buf, binary.BigEndian, uint16(0)) // no entries

	dirs, err := ParseTIFF(buf.Bytes())
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestParseTIFFRejectsBadHeader(t *testing.T) {
	_, err := ParseTIFF([]byte("II"))
	assert.Error(t, err)

	_, err = ParseTIFF([]byte("XXXXXXXXXX"))
	assert.Error(t, err)
}

func wrapJPEG(tiff []byte) []byte {
	var buf bytes.Buffer
	buf.Write([]byte{0xFF, 0xD8}) // SOI
	buf.Write([]byte{0xFF, 0xE1}) // APP1
	binary.Write(&buf, binary.BigEndian, uint16(2+6+len(tiff)))
	buf.WriteString("Exif\x00\x00")
	buf.Write(tiff)
	buf.Write([]byte{0xFF, 0xD9}) // EOI
	return buf.Bytes()
}

func TestExtractJPEGWithExifSegment(t *testing.T) {
	dirs, err := Extract(bytes.NewReader(wrapJPEG(buildTestTIFF())))
	require.NoError(t, err)
	require.Len(t, dirs, 4)
	assert.Equal(t, KindIFD0, dirs[0].Kind())
}

func TestExtractJPEGWithoutMetadata(t *testing.T) {
	dirs, err := Extract(bytes.NewReader([]byte{0xFF, 0xD8, 0xFF, 0xD9}))
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestExtractUnknownContent(t *testing.T) {
	dirs, err := Extract(bytes.NewReader([]byte("not an image at all")))
	require.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestExtractBareTIFF(t *testing.T) {
	dirs, err := Extract(bytes.NewReader(buildTestTIFF()))
	require.NoError(t, err)
	require.Len(t, dirs, 4)
}
