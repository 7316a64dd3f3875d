// File: metadata/exif.go

package metadata

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
)

// ExtractFile extracts metadata directories from a file on disk
func ExtractFile(path string) ([]Directory, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("cannot open file: %w", err)
	}
	defer file.Close()

	return Extract(file)
}

// Extract extracts metadata directories from a JPEG or TIFF stream.
// A file that carries no metadata yields an empty directory set, not an
// error.
func Extract(r io.Reader) ([]Directory, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("cannot read file: %w", err)
	}

	var tiff []byte
	switch {
	case isJPEG(data):
		tiff = findExifSegment(data)
	case isTIFF(data):
		tiff = data
	}
	if tiff == nil {
		return nil, nil
	}

	return ParseTIFF(tiff)
}

func isJPEG(data []byte) bool {
	return len(data) > 2 && data[0] == 0xFF && data[1] == 0xD8
}

func isTIFF(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	return (data[0] == 'I' && data[1] == 'I' && data[2] == 0x2A && data[3] == 0x00) ||
		(data[0] == 'M' && data[1] == 'M' && data[2] == 0x00 && data[3] == 0x2A)
}

// findExifSegment walks JPEG segments looking for the APP1/EXIF payload
// and returns the embedded TIFF data, or nil if the file has none
func findExifSegment(data []byte) []byte {
	offset := 2 // skip SOI

	for offset+4 <= len(data) {
		if data[offset] != 0xFF {
			offset++
			continue
		}

		marker := data[offset+1]
		offset += 2

		// Skip stuffing bytes and standalone markers
		if marker == 0xFF || marker == 0x00 || marker == 0x01 ||
			(marker >= 0xD0 && marker <= 0xD9) {
			continue
		}
		if marker == 0xDA {
			break // start of scan - image data follows
		}

		if offset+2 > len(data) {
			break
		}
		segLen := int(binary.BigEndian.Uint16(data[offset : offset+2]))
		offset += 2
		if segLen < 2 || offset+segLen-2 > len(data) {
			break
		}

		segData := data[offset : offset+segLen-2]
		if marker == 0xE1 && bytes.HasPrefix(segData, []byte("Exif\x00\x00")) {
			return segData[6:]
		}

		offset += segLen - 2
	}

	return nil
}

// ParseTIFF parses TIFF-formatted EXIF data into metadata directories:
// IFD0, the SubIFD it points at, a vendor makernote when the make is
// recognized, and the IFD1 thumbnail directory
func ParseTIFF(data []byte) ([]Directory, error) {
	if len(data) < 8 {
		return nil, fmt.Errorf("EXIF data too short")
	}

	// Determine byte order
	var order binary.ByteOrder
	switch {
	case data[0] == 'I' && data[1] == 'I':
		order = binary.LittleEndian
	case data[0] == 'M' && data[1] == 'M':
		order = binary.BigEndian
	default:
		return nil, fmt.Errorf("invalid TIFF byte order")
	}
	if order.Uint16(data[2:4]) != 42 {
		return nil, fmt.Errorf("invalid TIFF magic")
	}

	var dirs []Directory

	ifd0 := NewTagDirectory(KindIFD0, "Exif IFD0")
	next := parseIFD(data, order.Uint32(data[4:8]), order, ifd0)
	if ifd0.TagCount() > 0 {
		dirs = append(dirs, ifd0)
	}

	var sub *TagDirectory
	if off, ok := ifd0.Int(TagExifOffset); ok && off > 0 {
		sub = NewTagDirectory(KindSubIFD, "Exif SubIFD")
		parseIFD(data, uint32(off), order, sub)
		if sub.TagCount() > 0 {
			dirs = append(dirs, sub)
		}
	}

	// Split the makernote into a vendor directory when the make is known.
	// An unrecognized vendor leaves the raw tag on the SubIFD only.
	if sub != nil && sub.HasTag(TagMakernote) {
		if cameraMake, ok := ifd0.Description(TagMake); ok {
			if kind, name, known := makernoteDirectory(cameraMake); known {
				mk := NewTagDirectory(kind, name)
				for _, tag := range sub.Tags() {
					if tag.ID == TagMakernote {
						mk.SetTag(TagMakernote, tag.Value)
					}
				}
				dirs = append(dirs, mk)
			}
		}
	}

	// IFD1 holds the embedded thumbnail
	if next > 0 {
		thumb := NewTagDirectory(KindThumbnail, "Exif Thumbnail")
		parseIFD(data, next, order, thumb)
		if thumb.TagCount() > 0 {
			dirs = append(dirs, thumb)
		}
	}

	return dirs, nil
}

// parseIFD decodes one Image File Directory into dir and returns the
// offset of the next IFD, or 0
func parseIFD(data []byte, offset uint32, order binary.ByteOrder, dir *TagDirectory) uint32 {
	if int(offset)+2 > len(data) {
		return 0
	}

	numEntries := int(order.Uint16(data[offset : offset+2]))
	if numEntries > 1000 { // sanity check
		return 0
	}
	pos := int(offset) + 2

	for i := 0; i < numEntries; i++ {
		if pos+12 > len(data) {
			return 0
		}

		tagID := order.Uint16(data[pos : pos+2])
		dataType := order.Uint16(data[pos+2 : pos+4])
		count := order.Uint32(data[pos+4 : pos+8])

		if value := decodeValue(data, data[pos+8:pos+12], dataType, count, order); value != nil {
			dir.SetTag(tagID, value)
		}

		pos += 12
	}

	if pos+4 > len(data) {
		return 0
	}
	return order.Uint32(data[pos : pos+4])
}

// tiffTypeSizes maps TIFF data type codes to component sizes in bytes
var tiffTypeSizes = map[uint16]uint32{
	1: 1, 2: 1, 3: 2, 4: 4, 5: 8, 6: 1,
	7: 1, 8: 2, 9: 4, 10: 8, 11: 4, 12: 8,
	13: 4, // IFD
}

// decodeValue extracts a tag value based on its TIFF data type. Inline
// holds the four value/offset bytes of the IFD entry.
func decodeValue(data, inline []byte, dataType uint16, count uint32, order binary.ByteOrder) interface{} {
	size := tiffTypeSizes[dataType]
	if size == 0 || count == 0 {
		return nil
	}

	total := uint64(size) * uint64(count)
	var valueData []byte
	if total <= 4 {
		valueData = inline[:total]
	} else {
		off := uint64(order.Uint32(inline))
		if off+total > uint64(len(data)) {
			return nil
		}
		valueData = data[off : off+total]
	}

	switch dataType {
	case 2: // ASCII
		if end := bytes.IndexByte(valueData, 0); end >= 0 {
			valueData = valueData[:end]
		}
		return string(valueData)

	case 1: // BYTE
		if count == 1 {
			return int(valueData[0])
		}
		return append([]byte(nil), valueData...)

	case 6: // SBYTE
		if count == 1 {
			return int(int8(valueData[0]))
		}
		return append([]byte(nil), valueData...)

	case 3: // SHORT
		if count == 1 {
			return int(order.Uint16(valueData))
		}
		vals := make([]int, count)
		for i := uint32(0); i < count; i++ {
			vals[i] = int(order.Uint16(valueData[i*2:]))
		}
		return vals

	case 8: // SSHORT
		if count == 1 {
			return int(int16(order.Uint16(valueData)))
		}
		vals := make([]int, count)
		for i := uint32(0); i < count; i++ {
			vals[i] = int(int16(order.Uint16(valueData[i*2:])))
		}
		return vals

	case 4, 13: // LONG, IFD
		if count == 1 {
			return int(order.Uint32(valueData))
		}
		vals := make([]int, count)
		for i := uint32(0); i < count; i++ {
			vals[i] = int(order.Uint32(valueData[i*4:]))
		}
		return vals

	case 9: // SLONG
		if count == 1 {
			return int(int32(order.Uint32(valueData)))
		}
		vals := make([]int, count)
		for i := uint32(0); i < count; i++ {
			vals[i] = int(int32(order.Uint32(valueData[i*4:])))
		}
		return vals

	case 5: // RATIONAL
		if count == 1 {
			return rationalString(order.Uint32(valueData[0:4]), order.Uint32(valueData[4:8]))
		}
		vals := make([]string, count)
		for i := uint32(0); i < count; i++ {
			vals[i] = rationalString(order.Uint32(valueData[i*8:i*8+4]), order.Uint32(valueData[i*8+4:i*8+8]))
		}
		return vals

	case 10: // SRATIONAL
		if count == 1 {
			return signedRationalString(int32(order.Uint32(valueData[0:4])), int32(order.Uint32(valueData[4:8])))
		}
		vals := make([]string, count)
		for i := uint32(0); i < count; i++ {
			vals[i] = signedRationalString(int32(order.Uint32(valueData[i*8:i*8+4])), int32(order.Uint32(valueData[i*8+4:i*8+8])))
		}
		return vals

	case 11: // FLOAT
		if count == 1 {
			return math.Float32frombits(order.Uint32(valueData))
		}
		vals := make([]float32, count)
		for i := uint32(0); i < count; i++ {
			vals[i] = math.Float32frombits(order.Uint32(valueData[i*4:]))
		}
		return vals

	case 12: // DOUBLE
		if count == 1 {
			return math.Float64frombits(order.Uint64(valueData))
		}
		vals := make([]float64, count)
		for i := uint32(0); i < count; i++ {
			vals[i] = math.Float64frombits(order.Uint64(valueData[i*8:]))
		}
		return vals

	default: // UNDEFINED and anything else
		return append([]byte(nil), valueData...)
	}
}

func rationalString(num, den uint32) string {
	if den == 0 {
		return "inf"
	}
	if num%den == 0 {
		return fmt.Sprintf("%d", num/den)
	}
	return fmt.Sprintf("%d/%d", num, den)
}

func signedRationalString(num, den int32) string {
	if den == 0 {
		return "inf"
	}
	if num%den == 0 {
		return fmt.Sprintf("%d", num/den)
	}
	return fmt.Sprintf("%d/%d", num, den)
}
