package pack

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"go.uber.org/zap/zaptest"

	"epb/common"
)

var testFirst = Entry{Name: "mimetype", Data: []byte("application/epub+zip")}

func testEntries() []Entry {
	return []Entry{
		{Name: "META-INF/container.xml", Data: []byte("<container/>")},
		{Name: "OEBPS/content.opf", Data: []byte("<package/>")},
		{Name: "OEBPS/ch1.xhtml", Data: []byte("<html/>")},
	}
}

func readArchive(t *testing.T, data []byte) *zip.Reader {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("produced archive is unreadable: %v", err)
	}
	return zr
}

func checkLayout(t *testing.T, data []byte, wantNames []string) {
	t.Helper()
	zr := readArchive(t, data)
	if len(zr.File) != len(wantNames) {
		t.Fatalf("archive has %d entries, want %d", len(zr.File), len(wantNames))
	}
	for i, name := range wantNames {
		if zr.File[i].Name != name {
			t.Errorf("entry %d = %q, want %q", i, zr.File[i].Name, name)
		}
	}
	if zr.File[0].Method != zip.Store {
		t.Error("first entry is compressed")
	}
	rc, err := zr.File[0].Open()
	if err != nil {
		t.Fatal(err)
	}
	defer rc.Close()
	content, err := io.ReadAll(rc)
	if err != nil {
		t.Fatal(err)
	}
	if string(content) != "application/epub+zip" {
		t.Errorf("first entry content = %q", content)
	}
}

func TestZipWriterLayout(t *testing.T) {
	var buf bytes.Buffer
	zw := &ZipWriter{}
	if err := zw.Package(context.Background(), testFirst, testEntries(), &buf); err != nil {
		t.Fatalf("Package: %v", err)
	}
	checkLayout(t, buf.Bytes(), []string{
		"mimetype", "META-INF/container.xml", "OEBPS/content.opf", "OEBPS/ch1.xhtml",
	})
}

func TestZipWriterFixZip(t *testing.T) {
	var buf bytes.Buffer
	zw := &ZipWriter{FixZip: true}
	if err := zw.Package(context.Background(), testFirst, testEntries(), &buf); err != nil {
		t.Fatalf("Package: %v", err)
	}
	checkLayout(t, buf.Bytes(), []string{
		"mimetype", "META-INF/container.xml", "OEBPS/content.opf", "OEBPS/ch1.xhtml",
	})
	// local headers carry no data descriptor flag after the rewrite
	zr := readArchive(t, buf.Bytes())
	for _, f := range zr.File {
		if f.Flags&0x8 != 0 {
			t.Errorf("entry %q still has the data descriptor flag", f.Name)
		}
	}
}

func TestZipWriterCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var buf bytes.Buffer
	zw := &ZipWriter{}
	if err := zw.Package(ctx, testFirst, testEntries(), &buf); !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestCheckedRejectsBadNames(t *testing.T) {
	c := NewChecked(&ZipWriter{}, zaptest.NewLogger(t))
	ctx := context.Background()

	cases := []struct {
		name    string
		entries []Entry
	}{
		{"duplicate", []Entry{{Name: "a.xhtml"}, {Name: "a.xhtml"}}},
		{"duplicate of first", []Entry{{Name: "mimetype"}}},
		{"absolute", []Entry{{Name: "/etc/passwd"}}},
		{"traversal", []Entry{{Name: "../escape"}}},
		{"empty", []Entry{{Name: ""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := c.Package(ctx, testFirst, tc.entries, &buf)
			if !common.IsKind(err, common.KindPackaging) {
				t.Errorf("got %v, want packaging error", err)
			}
			if buf.Len() != 0 {
				t.Errorf("%d bytes written to the sink on failure", buf.Len())
			}
		})
	}
}

type brokenPackager struct{}

func (brokenPackager) Package(ctx context.Context, first Entry, entries []Entry, to io.Writer) error {
	io.WriteString(to, "partial garbage")
	return common.PackagingError(errors.New("backend failed"))
}

// misorderedPackager writes a well-formed archive that violates the
// layout contract.
type misorderedPackager struct{}

func (misorderedPackager) Package(ctx context.Context, first Entry, entries []Entry, to io.Writer) error {
	zw := zip.NewWriter(to)
	for _, e := range entries {
		w, err := zw.Create(e.Name)
		if err != nil {
			return err
		}
		if _, err := w.Write(e.Data); err != nil {
			return err
		}
	}
	w, err := zw.Create(first.Name)
	if err != nil {
		return err
	}
	if _, err := w.Write(first.Data); err != nil {
		return err
	}
	return zw.Close()
}

func TestCheckedSinkStaysCleanOnFailure(t *testing.T) {
	ctx := context.Background()

	var buf bytes.Buffer
	c := NewChecked(brokenPackager{}, zaptest.NewLogger(t))
	if err := c.Package(ctx, testFirst, testEntries(), &buf); err == nil {
		t.Fatal("backend failure not propagated")
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written to the sink after backend failure", buf.Len())
	}

	buf.Reset()
	c = NewChecked(misorderedPackager{}, zaptest.NewLogger(t))
	err := c.Package(ctx, testFirst, testEntries(), &buf)
	if !common.IsKind(err, common.KindPackaging) {
		t.Errorf("got %v, want packaging error for misordered archive", err)
	}
	if buf.Len() != 0 {
		t.Errorf("%d bytes written to the sink after layout violation", buf.Len())
	}
}

func TestCheckedPassesGoodArchive(t *testing.T) {
	var buf bytes.Buffer
	c := NewChecked(&ZipWriter{}, zaptest.NewLogger(t))
	if err := c.Package(context.Background(), testFirst, testEntries(), &buf); err != nil {
		t.Fatalf("Package: %v", err)
	}
	checkLayout(t, buf.Bytes(), []string{
		"mimetype", "META-INF/container.xml", "OEBPS/content.opf", "OEBPS/ch1.xhtml",
	})
}

func TestIsSafeName(t *testing.T) {
	good := []string{"mimetype", "META-INF/container.xml", "OEBPS/a/b.xhtml"}
	bad := []string{"", "/abs", `\win`, "../up", "a/../../b"}
	for _, n := range good {
		if !isSafeName(n) {
			t.Errorf("isSafeName(%q) = false", n)
		}
	}
	for _, n := range bad {
		if isSafeName(n) {
			t.Errorf("isSafeName(%q) = true", n)
		}
	}
}

func TestWalk(t *testing.T) {
	var buf bytes.Buffer
	zw := &ZipWriter{}
	if err := zw.Package(context.Background(), testFirst, testEntries(), &buf); err != nil {
		t.Fatal(err)
	}
	var names []string
	err := Walk(bytes.NewReader(buf.Bytes()), int64(buf.Len()), func(f *zip.File) error {
		names = append(names, f.Name)
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(names) != 4 || names[0] != "mimetype" {
		t.Errorf("walked %v", names)
	}

	sentinel := errors.New("stop")
	err = Walk(bytes.NewReader(buf.Bytes()), int64(buf.Len()), func(f *zip.File) error {
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Errorf("callback error not propagated: %v", err)
	}
}
