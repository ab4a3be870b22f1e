package pack

import (
	"archive/zip"
	"io"
	"path"
	"strings"
)

// WalkFunc is the type of the function called for each file entry
// visited by Walk. If an error is returned, walking stops.
type WalkFunc func(file *zip.File) error

// Walk visits every file entry of the archive in central directory
// order, calling walkFn for each. Directory entries are skipped.
func Walk(r io.ReaderAt, size int64, walkFn WalkFunc) error {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return err
	}
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		if err := walkFn(f); err != nil {
			return err
		}
	}
	return nil
}

// isSafeName returns false for entry names that could escape an
// extraction directory: absolute paths and those containing ".."
// components.
func isSafeName(name string) bool {
	if name == "" || path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
