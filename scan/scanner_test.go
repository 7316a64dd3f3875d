package scan

import (
	"bytes"
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"greg-hacke/go-imagedb/metadata"
)

// tinyTIFF returns a valid little-endian TIFF with a single IFD0 entry
// (an inline ASCII Make)
func tinyTIFF() []byte {
	var buf bytes.Buffer
	buf.WriteString("II")
	binary.Write(&buf, binary.LittleEndian, uint16(42))
	binary.Write(&buf, binary.LittleEndian, uint32(8))
	binary.Write(&buf, binary.LittleEndian, uint16(1))
	binary.Write(&buf, binary.LittleEndian, metadata.TagMake)
	binary.Write(&buf, binary.LittleEndian, uint16(2)) // ASCII
	binary.Write(&buf, binary.LittleEndian, uint32(4))
	buf.WriteString("ACME")
	binary.Write(&buf, binary.LittleEndian, uint32(0))
	return buf.Bytes()
}

// bareJPEG is a JPEG with no metadata segments at all
func bareJPEG() []byte {
	return []byte{0xFF, 0xD8, 0xFF, 0xD9}
}

type captureHandler struct {
	paths     []string
	rels      []string
	dirCounts []int
	completed int
}

func (h *captureHandler) OnFileProcessed(path string, dirs []metadata.Directory, rel string) {
	h.paths = append(h.paths, path)
	h.rels = append(h.rels, rel)
	h.dirCounts = append(h.dirCounts, len(dirs))
}

func (h *captureHandler) OnScanCompleted() error {
	h.completed++
	return nil
}

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, data, 0644))
}

func TestScannerRun(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "readme.txt"), []byte("hello"))
	writeFile(t, filepath.Join(root, "Photo One.tif"), tinyTIFF())
	writeFile(t, filepath.Join(root, "gallery", "pic.jpg"), bareJPEG())
	// dump output from a previous run must not be rescanned
	writeFile(t, filepath.Join(root, "gallery", "metadata", "old.jpg"), bareJPEG())

	handler := &captureHandler{}
	scanner := &Scanner{Root: root, Handlers: []Handler{handler}}

	stats, err := scanner.Run()
	require.NoError(t, err)

	assert.Equal(t, 3, stats.FilesScanned)
	assert.Equal(t, 2, stats.FilesProcessed)
	assert.Equal(t, 1, stats.FilesSkipped)
	assert.Empty(t, stats.Errors)
	assert.Equal(t, 1, handler.completed)

	require.Len(t, handler.rels, 2)
	assert.Contains(t, handler.rels, "Photo One.tif")
	assert.Contains(t, handler.rels, filepath.Join("gallery", "pic.jpg"))

	// The TIFF carries one directory, the bare JPEG none
	for i, rel := range handler.rels {
		if rel == "Photo One.tif" {
			assert.Equal(t, 1, handler.dirCounts[i])
		} else {
			assert.Zero(t, handler.dirCounts[i])
		}
	}
}

func TestScannerRunMissingRoot(t *testing.T) {
	scanner := &Scanner{Root: filepath.Join(t.TempDir(), "nope")}
	_, err := scanner.Run()
	assert.Error(t, err)
}

func TestScannerMetadatalessFilesStillProcessed(t *testing.T) {
	// A valid image without metadata yields a row with absent fields, not
	// an error
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "plain.jpg"), bareJPEG())

	handler := &captureHandler{}
	scanner := &Scanner{Root: root, Handlers: []Handler{handler}}

	stats, err := scanner.Run()
	require.NoError(t, err)
	assert.Equal(t, 1, stats.FilesProcessed)
	assert.Empty(t, stats.Errors)
}
