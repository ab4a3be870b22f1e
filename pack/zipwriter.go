package pack

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"os"

	fixzip "github.com/hidez8891/zip"
	"go.uber.org/multierr"

	"epb/common"
)

// ZipWriter is the in-process backend built on archive/zip. The first
// entry is stored, everything else deflated.
type ZipWriter struct {
	// FixZip rewrites the finished archive without data descriptors,
	// moving sizes and CRCs into the local headers. Some strict
	// validators want the archive in that shape.
	FixZip bool
}

func (z *ZipWriter) Package(ctx context.Context, first Entry, entries []Entry, to io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sink := to
	var tmp *os.File
	if z.FixZip {
		f, err := os.CreateTemp("", "epb-zip-")
		if err != nil {
			return common.IOError(err)
		}
		defer os.Remove(f.Name())
		defer f.Close()
		tmp, sink = f, f
	}

	zw := zip.NewWriter(sink)

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   first.Name,
		Method: zip.Store,
	})
	if err != nil {
		return common.PackagingError(err)
	}
	if _, err := w.Write(first.Data); err != nil {
		return common.PackagingError(err)
	}

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   e.Name,
			Method: zip.Deflate,
		})
		if err != nil {
			return common.PackagingError(fmt.Errorf("unable to create archive entry (%s): %w", e.Name, err))
		}
		if _, err := w.Write(e.Data); err != nil {
			return common.PackagingError(fmt.Errorf("unable to write archive entry (%s): %w", e.Name, err))
		}
	}
	if err := zw.Close(); err != nil {
		return common.PackagingError(err)
	}

	if tmp != nil {
		if err := tmp.Close(); err != nil {
			return common.IOError(err)
		}
		if err := copyZipWithoutDataDescriptors(tmp.Name(), to); err != nil {
			return common.PackagingError(err)
		}
	}
	return nil
}

// copyZipWithoutDataDescriptors rewrites the archive at from into to,
// clearing the data descriptor flag on every entry.
func copyZipWithoutDataDescriptors(from string, to io.Writer) (err error) {
	r, err := fixzip.OpenReader(from)
	if err != nil {
		return fmt.Errorf("unable to read archive file (%s): %w", from, err)
	}
	defer func() {
		err = multierr.Append(err, r.Close())
	}()

	w := fixzip.NewWriter(to)
	for _, file := range r.File {
		// unset data descriptor flag.
		file.Flags &= ^fixzip.FlagDataDescriptor
		if err := w.CopyFile(file); err != nil {
			return fmt.Errorf("unable to copy archive entry (%s): %w", file.Name, err)
		}
	}
	return w.Close()
}
