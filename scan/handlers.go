// File: scan/handlers.go

package scan

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"greg-hacke/go-imagedb/metadata"
	"greg-hacke/go-imagedb/summary"
)

// DefaultOutput is the fixed report artifact name, written relative to
// the working directory unless overridden
const DefaultOutput = "ContentSummary.md"

// SummaryHandler feeds every processed file into a summary report and
// writes the document once the scan completes
type SummaryHandler struct {
	report *summary.Report
	output string
}

// NewSummaryHandler wraps a report. output == "" writes DefaultOutput.
func NewSummaryHandler(report *summary.Report, output string) *SummaryHandler {
	if output == "" {
		output = DefaultOutput
	}
	return &SummaryHandler{report: report, output: output}
}

// OnFileProcessed records one row
func (h *SummaryHandler) OnFileProcessed(path string, dirs []metadata.Directory, relativePath string) {
	h.report.Add(path, dirs, relativePath)
}

// OnScanCompleted renders the report and writes it in a single pass
func (h *SummaryHandler) OnScanCompleted() error {
	file, err := os.Create(h.output)
	if err != nil {
		return fmt.Errorf("cannot create %s: %w", h.output, err)
	}

	w := bufio.NewWriter(file)
	if err := h.report.Write(w); err != nil {
		file.Close()
		return err
	}
	if err := w.Flush(); err != nil {
		file.Close()
		return fmt.Errorf("cannot flush %s: %w", h.output, err)
	}
	return file.Close()
}

// DumpHandler writes a per-file metadata dump to
// metadata/<name-lowercased>.txt next to each processed file, matching the
// paths the summary report links to
type DumpHandler struct {
	errs []error
}

// NewDumpHandler creates a dump handler
func NewDumpHandler() *DumpHandler {
	return &DumpHandler{}
}

// OnFileProcessed writes one dump file; failures are collected and
// reported at scan end so a single bad directory cannot abort the scan
func (h *DumpHandler) OnFileProcessed(path string, dirs []metadata.Directory, relativePath string) {
	dumpDir := filepath.Join(filepath.Dir(path), "metadata")
	if err := os.MkdirAll(dumpDir, 0755); err != nil {
		h.errs = append(h.errs, fmt.Errorf("cannot create %s: %w", dumpDir, err))
		return
	}

	name := strings.ToLower(filepath.Base(path)) + ".txt"
	if err := os.WriteFile(filepath.Join(dumpDir, name), []byte(dumpText(path, dirs)), 0644); err != nil {
		h.errs = append(h.errs, fmt.Errorf("cannot write dump for %s: %w", path, err))
	}
}

// OnScanCompleted reports any dump failures
func (h *DumpHandler) OnScanCompleted() error {
	return errors.Join(h.errs...)
}

// dumpText renders one "[directory] tag = value" line per tag entry
func dumpText(path string, dirs []metadata.Directory) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FILE: %s\n", filepath.Base(path))
	for _, dir := range dirs {
		b.WriteString("\n")
		for _, tag := range dir.Tags() {
			desc, _ := dir.Description(tag.ID)
			fmt.Fprintf(&b, "[%s - 0x%04x] %s = %s\n",
				dir.Name(), tag.ID, metadata.TagName(dir.Kind(), tag.ID), desc)
		}
		if dir.TagCount() == 0 {
			fmt.Fprintf(&b, "[%s] (no tags)\n", dir.Name())
		}
	}
	return b.String()
}
