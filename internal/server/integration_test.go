//go:build integration

package server

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/bagtoad/pathpick/internal/logger"
	"github.com/bagtoad/pathpick/internal/node"
	"github.com/bagtoad/pathpick/internal/selector"
)

// renders mimics an image generator's output folder: numbered frames written
// one after another, plus a sidecar file and a previews/ subfolder.
func renders(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour)

	frames := []string{"frame_0003.png", "frame_0001.png", "frame_0002.png"}
	for i, name := range frames {
		path := filepath.Join(dir, name)
		f, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(f, image.NewGray(image.Rect(0, 0, 16, 16))); err != nil {
			t.Fatal(err)
		}
		f.Close()
		mt := base.Add(time.Duration(i) * time.Minute)
		if err := os.Chtimes(path, mt, mt); err != nil {
			t.Fatal(err)
		}
	}

	if err := os.WriteFile(filepath.Join(dir, "workflow.json"), []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Join(dir, "previews"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "previews", "frame_9999.png"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	return dir
}

func call(t *testing.T, base, name, action string, args node.Args) string {
	t.Helper()
	body, _ := json.Marshal(args)
	url := base + "/api/nodes/" + strings.ReplaceAll(name, " ", "%20") + "/" + action
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s: status %d", url, resp.StatusCode)
	}

	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatal(err)
	}
	if action == "run" {
		return out["file_path"]
	}
	return out["token"]
}

func TestNodesOverHTTP(t *testing.T) {
	dir := renders(t)

	h := NewHandler(node.NewRegistry(selector.New()), logger.New(os.Stderr, logger.LevelDebug))
	srv := httptest.NewServer(h.Router())
	defer srv.Close()

	args := node.Args{Directory: dir, Extensions: "png"}

	if got := call(t, srv.URL, node.LastModifiedPath, "run", args); got != filepath.Join(dir, "frame_0002.png") {
		t.Errorf("latest: got %s", got)
	}

	args.Index = 0
	if got := call(t, srv.URL, node.IndexedPath, "run", args); got != filepath.Join(dir, "frame_0001.png") {
		t.Errorf("index 0: got %s", got)
	}
	args.Index = 3
	if got := call(t, srv.URL, node.IndexedPath, "run", args); !strings.HasPrefix(got, "Error: index out of range") {
		t.Errorf("index 3: got %s", got)
	}

	seen := make(map[string]bool)
	for i := 0; i < 200; i++ {
		seen[call(t, srv.URL, node.RandomPath, "run", node.Args{Directory: dir, Extensions: "png"})] = true
	}
	if len(seen) != 3 {
		t.Errorf("random: expected 3 distinct picks, got %d: %v", len(seen), seen)
	}

	// A new frame changes the last-modified token.
	before := call(t, srv.URL, node.LastModifiedPath, "is_changed", node.Args{Directory: dir, Extensions: "png"})
	if err := os.WriteFile(filepath.Join(dir, "frame_0004.png"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	after := call(t, srv.URL, node.LastModifiedPath, "is_changed", node.Args{Directory: dir, Extensions: "png"})
	if before == after {
		t.Errorf("expected token to change after a new frame, both %s", before)
	}
}
