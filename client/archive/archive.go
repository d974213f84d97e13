// Package archive wraps an in-memory zip payload and extracts it to disk.
package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrInvalidArchive = errors.New("invalid zip archive")
	ErrIllegalPath    = errors.New("archive entry escapes target directory")
	ErrClosed         = errors.New("archive closed")
)

// Archive is a read-only view over a zip payload held in memory.
// The caller owns it and must Close it once done.
type Archive struct {
	data []byte
	r    *zip.Reader
}

// Open parses b as a zip archive. b must not be modified afterwards.
func Open(b []byte) (*Archive, error) {
	r, err := zip.NewReader(bytes.NewReader(b), int64(len(b)))
	// Insecure names still yield a usable reader; Extract rejects them per entry.
	if err != nil && !errors.Is(err, zip.ErrInsecurePath) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}

	return &Archive{data: b, r: r}, nil
}

// Files lists the entry names in archive order.
func (a *Archive) Files() []string {
	if a.r == nil {
		return nil
	}

	names := make([]string, 0, len(a.r.File))
	for _, f := range a.r.File {
		names = append(names, f.Name)
	}

	return names
}

// Size is the compressed size of the archive in bytes.
func (a *Archive) Size() int64 {
	return int64(len(a.data))
}

// OpenFile opens a single entry by name.
func (a *Archive) OpenFile(name string) (io.ReadCloser, error) {
	if a.r == nil {
		return nil, ErrClosed
	}

	return a.r.Open(name)
}

// Extract writes every entry below dir, keeping the relative paths
// stored in the archive. Existing files are overwritten.
func (a *Archive) Extract(dir string) error {
	if a.r == nil {
		return ErrClosed
	}

	root, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving target dir: %w", err)
	}

	for _, f := range a.r.File {
		target, err := entryPath(root, f.Name)
		if err != nil {
			return err
		}

		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("creating dir: %w", err)
			}
			continue
		}

		if err := extractFile(f, target); err != nil {
			return fmt.Errorf("extracting %s: %w", f.Name, err)
		}
	}

	return nil
}

// Close releases the buffered payload. It is safe to call more than once.
func (a *Archive) Close() error {
	a.data = nil
	a.r = nil

	return nil
}

// entryPath resolves name below root, rejecting absolute names and
// anything that climbs out of root.
func entryPath(root, name string) (string, error) {
	clean := filepath.FromSlash(name)
	if filepath.IsAbs(clean) || filepath.VolumeName(clean) != "" {
		return "", fmt.Errorf("%w: %s", ErrIllegalPath, name)
	}

	target := filepath.Join(root, clean)
	if target != root && !strings.HasPrefix(target, root+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrIllegalPath, name)
	}

	return target, nil
}

func extractFile(f *zip.File, target string) error {
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return fmt.Errorf("creating parent dir: %w", err)
	}

	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidArchive, err)
	}
	defer rc.Close()

	mode := f.Mode().Perm()
	if mode == 0 {
		mode = 0o644
	}

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}

	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		if errors.Is(err, zip.ErrChecksum) || errors.Is(err, zip.ErrFormat) {
			return fmt.Errorf("%w: %w", ErrInvalidArchive, err)
		}
		return fmt.Errorf("writing file: %w", err)
	}

	if err := out.Close(); err != nil {
		return fmt.Errorf("closing file: %w", err)
	}

	return nil
}
