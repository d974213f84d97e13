package archive_test

import (
	"archive/zip"
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/adamwoolhether/modhttp/client/archive"
	"github.com/google/go-cmp/cmp"
)

func zipBytes(t *testing.T, files map[string]string) []byte {
	t.Helper()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("creating zip entry %s: %v", name, err)
		}
		if _, err := io.WriteString(w, files[name]); err != nil {
			t.Fatalf("writing zip entry %s: %v", name, err)
		}
	}

	if err := zw.Close(); err != nil {
		t.Fatalf("closing zip writer: %v", err)
	}

	return buf.Bytes()
}

func TestOpen_Invalid(t *testing.T) {
	_, err := archive.Open([]byte("<html>rate limited</html>"))
	if !errors.Is(err, archive.ErrInvalidArchive) {
		t.Fatalf("expected ErrInvalidArchive, got %v", err)
	}
}

func TestArchive_Files(t *testing.T) {
	a, err := archive.Open(zipBytes(t, map[string]string{
		"Mod.dll":            "dll",
		"Resources/icon.png": "png",
	}))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer a.Close()

	if diff := cmp.Diff([]string{"Mod.dll", "Resources/icon.png"}, a.Files()); diff != "" {
		t.Errorf("files mismatch (-want +got):\n%s", diff)
	}

	rc, err := a.OpenFile("Mod.dll")
	if err != nil {
		t.Fatalf("opening entry: %v", err)
	}
	b, _ := io.ReadAll(rc)
	rc.Close()

	if string(b) != "dll" {
		t.Errorf("entry contents mismatch, got %q", b)
	}
}

func TestArchive_Extract(t *testing.T) {
	files := map[string]string{
		"Mod.dll":                  "dll bytes",
		"Resources/Textures/a.png": "png bytes",
		"README.md":                "# mod",
	}

	a, err := archive.Open(zipBytes(t, files))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	defer a.Close()

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "Mod.dll"), []byte("old"), 0o644); err != nil {
		t.Fatalf("seeding file: %v", err)
	}

	if err := a.Extract(dir); err != nil {
		t.Fatalf("extracting: %v", err)
	}

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(name)))
		if err != nil {
			t.Errorf("reading %s: %v", name, err)
			continue
		}
		if string(got) != want {
			t.Errorf("%s: got %q, want %q", name, got, want)
		}
	}
}

func TestArchive_ExtractRejectsTraversal(t *testing.T) {
	testCases := []string{
		"../evil.dll",
		"mods/../../evil.dll",
	}

	for _, name := range testCases {
		t.Run(name, func(t *testing.T) {
			a, err := archive.Open(zipBytes(t, map[string]string{name: "x"}))
			if err != nil {
				t.Fatalf("opening archive: %v", err)
			}
			defer a.Close()

			parent := t.TempDir()
			target := filepath.Join(parent, "target")

			if err := a.Extract(target); !errors.Is(err, archive.ErrIllegalPath) {
				t.Fatalf("expected ErrIllegalPath, got %v", err)
			}

			if _, err := os.Stat(filepath.Join(parent, "evil.dll")); !os.IsNotExist(err) {
				t.Error("traversal entry was written outside the target")
			}
		})
	}
}

func TestArchive_Closed(t *testing.T) {
	a, err := archive.Open(zipBytes(t, map[string]string{"a.txt": "a"}))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}

	if err := a.Close(); err != nil {
		t.Fatalf("closing: %v", err)
	}
	if err := a.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}

	if err := a.Extract(t.TempDir()); !errors.Is(err, archive.ErrClosed) {
		t.Errorf("expected ErrClosed, got %v", err)
	}
	if a.Files() != nil {
		t.Error("expected no files after close")
	}
}
