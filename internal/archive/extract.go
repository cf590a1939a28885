// Package archive extracts export archives, including zip files nested
// inside the archive, which real exports carry one level per agent.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrUnsafePath is returned when an archive entry would escape the
// extraction directory.
var ErrUnsafePath = fmt.Errorf("archive entry escapes extraction directory")

// ExtractRecursive extracts the zip at src into dest, then walks the result
// and extracts every nested .zip into a sibling directory named after the
// file without its extension, recursively.
func ExtractRecursive(src, dest string) error {
	if err := extractZip(src, dest); err != nil {
		return err
	}
	return extractNested(dest)
}

// extractNested finds nested zips under dir and extracts each in place.
// Extraction can surface further zips, so each extracted directory is
// walked again.
func extractNested(dir string) error {
	var nested []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".zip") {
			nested = append(nested, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk %s: %w", dir, err)
	}

	for _, zipPath := range nested {
		target := strings.TrimSuffix(zipPath, ".zip")
		if err := extractZip(zipPath, target); err != nil {
			return err
		}
		if err := extractNested(target); err != nil {
			return err
		}
	}
	return nil
}

// extractZip extracts a single zip archive into dest, rejecting entries that
// would land outside it.
func extractZip(src, dest string) error {
	r, err := zip.OpenReader(src)
	if err != nil {
		return fmt.Errorf("open archive %s: %w", src, err)
	}
	defer r.Close()

	if err := os.MkdirAll(dest, 0755); err != nil {
		return fmt.Errorf("create extraction directory: %w", err)
	}

	for _, f := range r.File {
		if err := extractEntry(f, dest); err != nil {
			return err
		}
	}
	return nil
}

func extractEntry(f *zip.File, dest string) error {
	target, err := safeJoin(dest, f.Name)
	if err != nil {
		return err
	}

	if f.FileInfo().IsDir() {
		if err := os.MkdirAll(target, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", target, err)
		}
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return fmt.Errorf("create directory for %s: %w", target, err)
	}

	in, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer in.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("create %s: %w", target, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return nil
}

// safeJoin joins an archive entry name onto dest, refusing path traversal.
func safeJoin(dest, name string) (string, error) {
	target := filepath.Join(dest, filepath.FromSlash(name))
	if target != dest && !strings.HasPrefix(target, dest+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: %s", ErrUnsafePath, name)
	}
	return target, nil
}
