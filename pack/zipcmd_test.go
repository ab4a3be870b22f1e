package pack

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap/zaptest"

	"epb/common"
)

func TestZipCommandLayout(t *testing.T) {
	zc := &ZipCommand{TempDir: t.TempDir(), Log: zaptest.NewLogger(t)}
	if err := zc.Test(context.Background()); err != nil {
		t.Skipf("zip command not available: %v", err)
	}

	var buf bytes.Buffer
	if err := zc.Package(context.Background(), testFirst, testEntries(), &buf); err != nil {
		t.Fatalf("Package: %v", err)
	}
	checkLayout(t, buf.Bytes(), []string{
		"mimetype", "META-INF/container.xml", "OEBPS/content.opf", "OEBPS/ch1.xhtml",
	})
}

func TestZipCommandStagingCleanup(t *testing.T) {
	stage := t.TempDir()
	zc := &ZipCommand{
		Command: "no-such-archiver-command",
		TempDir: stage,
		Log:     zaptest.NewLogger(t),
	}

	var buf bytes.Buffer
	err := zc.Package(context.Background(), testFirst, testEntries(), &buf)
	if !common.IsKind(err, common.KindPackaging) {
		t.Errorf("got %v, want packaging error", err)
	}

	// the staging directory is gone even though the command failed
	matches, globErr := filepath.Glob(filepath.Join(stage, "epb-*"))
	if globErr != nil {
		t.Fatal(globErr)
	}
	if len(matches) != 0 {
		t.Errorf("staging directories left behind: %v", matches)
	}
}

func TestZipCommandCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	zc := &ZipCommand{TempDir: t.TempDir()}
	var buf bytes.Buffer
	if err := zc.Package(ctx, testFirst, testEntries(), &buf); err == nil {
		t.Error("cancelled context not honored")
	}
}

func TestCommandOrWriter(t *testing.T) {
	p := CommandOrWriter(context.Background(), "no-such-archiver-command", zaptest.NewLogger(t))
	if _, ok := p.(*ZipWriter); !ok {
		t.Errorf("fallback backend is %T, want *ZipWriter", p)
	}
}

func TestStageEntryCreatesDirectories(t *testing.T) {
	stage := t.TempDir()
	e := Entry{Name: "OEBPS/text/ch1.xhtml", Data: []byte("<html/>")}
	if err := stageEntry(stage, e); err != nil {
		t.Fatalf("stageEntry: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(stage, "OEBPS", "text", "ch1.xhtml"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "<html/>" {
		t.Errorf("staged content = %q", data)
	}
}
