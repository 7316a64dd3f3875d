// File: summary/report.go

package summary

import (
	"fmt"
	"io"
	"net/url"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"greg-hacke/go-imagedb/metadata"
)

// Report accumulates one summary row per processed file, bucketed by
// normalized extension. It is single-owner state: created at scan start,
// mutated once per file, rendered once at scan end.
type Report struct {
	baseURL string
	rows    map[string][]Row
	order   []string // bucket creation order
}

// NewReport creates an empty report. baseURL prefixes every generated
// link; an empty base yields root-relative links.
func NewReport(baseURL string) *Report {
	return &Report{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		rows:    make(map[string][]Row),
	}
}

// Add builds and records the row for one successfully processed file.
// Files without an extension are silently skipped. Never fails: missing
// metadata shows up as absent row fields, not as an error.
func (r *Report) Add(filePath string, dirs []metadata.Directory, relativePath string) {
	ext := NormalizeExtension(filePath)
	if ext == "" {
		return
	}
	if _, ok := r.rows[ext]; !ok {
		r.order = append(r.order, ext)
	}
	r.rows[ext] = append(r.rows[ext], BuildRow(filePath, dirs, relativePath))
}

// Render produces the markdown document: one section per extension bucket
// in creation order, rows sorted by manufacturer then model. Read-only;
// rendering twice gives identical output.
func (r *Report) Render() string {
	var b strings.Builder
	b.WriteString("# Image Database Summary\n\n")

	for _, ext := range r.order {
		rows := append([]Row(nil), r.rows[ext]...)
		sort.SliceStable(rows, func(i, j int) bool {
			if rows[i].Manufacturer != rows[j].Manufacturer {
				return rows[i].Manufacturer < rows[j].Manufacturer
			}
			return rows[i].Model < rows[j].Model
		})

		fmt.Fprintf(&b, "## %s Files\n\n", strings.ToUpper(ext))
		b.WriteString("| File | Manufacturer | Model | Dir Count | Exif? | Makernote | Thumbnail | All Data |\n")
		b.WriteString("| --- | --- | --- | --- | --- | --- | --- | --- |\n")
		for _, row := range rows {
			b.WriteString(r.formatRow(row))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// Write renders the report and performs a single write to w. The caller
// owns the stream.
func (r *Report) Write(w io.Writer) error {
	if _, err := io.WriteString(w, r.Render()); err != nil {
		return fmt.Errorf("cannot write report: %w", err)
	}
	return nil
}

// formatRow renders one markdown table row with the raw-file and
// metadata-dump links
func (r *Report) formatRow(row Row) string {
	name := filepath.Base(row.Path)
	dir := path.Dir(filepath.ToSlash(row.RelativePath))

	fileURL := r.joinURL(dir, encodeFileName(name))
	metaURL := r.joinURL(dir, "metadata", encodeFileName(strings.ToLower(name))+".txt")

	return fmt.Sprintf("| [%s](%s) | %s | %s | %d | %s | %s | %s | [metadata](%s) |\n",
		name, fileURL, row.Manufacturer, row.Model, row.DirCount,
		row.ExifVersion, row.Makernote, row.Thumbnail, metaURL)
}

// joinURL joins the base URL and path segments with single slashes,
// dropping empty and "." segments
func (r *Report) joinURL(segments ...string) string {
	parts := make([]string, 0, len(segments)+1)
	if r.baseURL != "" {
		parts = append(parts, r.baseURL)
	}
	for _, s := range segments {
		if s == "" || s == "." {
			continue
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "/")
}

// encodeFileName percent-encodes a file name as a URL path segment, then
// folds the literal "%20" sequence (and only that sequence) to "+"
func encodeFileName(name string) string {
	return strings.ReplaceAll(url.PathEscape(name), "%20", "+")
}
