// Package pack writes the assembled artifacts into the final archive.
// Two interchangeable backends exist: ZipWriter packages in process,
// ZipCommand stages a directory tree and drives an external archiver.
// The invariants both share are enforced once, in Checked.
package pack

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"epb/common"
)

// Entry is one file in the output archive.
type Entry struct {
	Name string
	Data []byte
}

// Packager writes the mandatory first entry followed by the remaining
// entries, in order, to the sink. The first entry is always stored
// uncompressed, everything after it deflated. A partially written sink
// after a failure is invalid and must be discarded by the caller.
type Packager interface {
	Package(ctx context.Context, first Entry, entries []Entry, to io.Writer) error
}

// Checked wraps a backend with the shared invariants: unique safe entry
// names up front, and after the backend ran, the declared entry order
// and the uncompressed first entry verified against the raw archive
// bytes. Nothing reaches the caller's sink until verification passed.
type Checked struct {
	backend Packager
	log     *zap.Logger
}

func NewChecked(backend Packager, log *zap.Logger) *Checked {
	if log == nil {
		log = zap.NewNop()
	}
	return &Checked{backend: backend, log: log}
}

func (c *Checked) Package(ctx context.Context, first Entry, entries []Entry, to io.Writer) error {
	if !isSafeName(first.Name) {
		return common.PackagingError(fmt.Errorf("unsafe archive entry name %q", first.Name))
	}
	seen := map[string]struct{}{first.Name: {}}
	for _, e := range entries {
		if !isSafeName(e.Name) {
			return common.PackagingError(fmt.Errorf("unsafe archive entry name %q", e.Name))
		}
		if _, dup := seen[e.Name]; dup {
			return common.PackagingError(fmt.Errorf("duplicate archive entry %q", e.Name))
		}
		seen[e.Name] = struct{}{}
	}

	var buf bytes.Buffer
	if err := c.backend.Package(ctx, first, entries, &buf); err != nil {
		return err
	}
	if err := verifyLayout(bytes.NewReader(buf.Bytes()), int64(buf.Len()), first, entries); err != nil {
		return common.PackagingError(err)
	}

	n, err := buf.WriteTo(to)
	if err != nil {
		return common.IOError(err)
	}
	c.log.Debug("archive written",
		zap.Int("entries", len(entries)+1),
		zap.Int64("bytes", n))
	return nil
}

// verifyLayout re-opens the produced archive and checks the observable
// contract: first entry name and store method, then every declared entry
// present in declared order.
func verifyLayout(r io.ReaderAt, size int64, first Entry, entries []Entry) error {
	want := make([]string, 0, len(entries)+1)
	want = append(want, first.Name)
	for _, e := range entries {
		want = append(want, e.Name)
	}

	i := 0
	err := Walk(r, size, func(f *zip.File) error {
		if i >= len(want) {
			return fmt.Errorf("unexpected archive entry %q", f.Name)
		}
		if f.Name != want[i] {
			return fmt.Errorf("archive entry %d is %q, expected %q", i, f.Name, want[i])
		}
		if i == 0 && f.Method != zip.Store {
			return fmt.Errorf("first archive entry %q is compressed", f.Name)
		}
		i++
		return nil
	})
	if err != nil {
		return err
	}
	if i != len(want) {
		return fmt.Errorf("produced archive has %d entries, expected %d", i, len(want))
	}
	return nil
}
