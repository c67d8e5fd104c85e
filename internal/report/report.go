// Package report prints the candidate list of a directory the way the
// indexed picker sees it.
package report

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/bagtoad/pathpick/internal/selector"
)

// Entry describes one candidate file.
type Entry struct {
	Index   int
	Path    string
	ModTime time.Time
	Size    int64
	// Width, Height and Format are zero for files that are not decodable images.
	Width  int
	Height int
	Format string
	// Missing is set when the file vanished between listing and stat.
	Missing bool
}

// Collect stats every path of l and probes image headers. Paths keep their
// listing order, so Entry.Index is the value to pass to the indexed picker.
func Collect(l *selector.Listing) []Entry {
	entries := make([]Entry, 0, len(l.Paths))
	for i, p := range l.Paths {
		e := Entry{Index: i, Path: p}
		info, err := os.Stat(p)
		if err != nil {
			e.Missing = true
			entries = append(entries, e)
			continue
		}
		e.ModTime = info.ModTime()
		e.Size = info.Size()
		e.Width, e.Height, e.Format = probeImage(p)
		entries = append(entries, e)
	}
	return entries
}

// probeImage reads only the image header.
func probeImage(path string) (int, int, string) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, ""
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return 0, 0, ""
	}
	return cfg.Width, cfg.Height, format
}

// Latest returns the index of the entry the last-modified picker would
// choose, or -1 if there is none. Ties keep the earliest entry.
func Latest(entries []Entry) int {
	best := -1
	for i, e := range entries {
		if e.Missing {
			continue
		}
		if best == -1 || e.ModTime.After(entries[best].ModTime) {
			best = i
		}
	}
	return best
}

// Print writes a summary of l and its entries to w. The newest file is
// marked with "*".
func Print(w io.Writer, l *selector.Listing, entries []Entry) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "=== %s ===\n", l.Dir)
	fmt.Fprintf(w, "Matching files:  %d\n", len(entries))
	if l.SkippedCount > 0 {
		fmt.Fprintf(w, "Filtered out:    %d\n", l.SkippedCount)
	}

	if len(entries) == 0 {
		fmt.Fprintln(w, "\nNo matching files.")
		return
	}

	latest := Latest(entries)
	fmt.Fprintln(w)
	for i, e := range entries {
		mark := " "
		if i == latest {
			mark = "*"
		}
		if e.Missing {
			fmt.Fprintf(w, "  [%d]%s (missing)  %s\n", e.Index, mark, filepath.Base(e.Path))
			continue
		}

		dims := "-"
		if e.Format != "" {
			dims = fmt.Sprintf("%dx%d %s", e.Width, e.Height, e.Format)
		}
		fmt.Fprintf(w, "  [%d]%s %s  %9s  %-16s %s\n",
			e.Index, mark, e.ModTime.Format("2006-01-02 15:04:05"), formatSize(e.Size), dims, filepath.Base(e.Path))
	}
	fmt.Fprintln(w)
}

func formatSize(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
