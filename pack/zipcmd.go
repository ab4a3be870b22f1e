package pack

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"epb/common"
)

// ZipCommand is the backend driving an external archiver, the info-zip
// "zip" program or a compatible one. Entries are staged in a fresh
// temporary directory and handed to the command by name, in order, so
// the archive layout does not depend on directory walking.
type ZipCommand struct {
	// Command is the program to run, "zip" when empty.
	Command string
	// TempDir is the parent for staging directories, the system
	// default when empty.
	TempDir string
	Log     *zap.Logger
}

const outputName = "package.zip"

func (z *ZipCommand) command() string {
	if z.Command == "" {
		return "zip"
	}
	return z.Command
}

func (z *ZipCommand) logger() *zap.Logger {
	if z.Log == nil {
		return zap.NewNop()
	}
	return z.Log
}

// Test reports whether the configured command can be executed at all.
func (z *ZipCommand) Test(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, z.command(), "-v")
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("unable to run %s: %w", z.command(), err)
	}
	return nil
}

func (z *ZipCommand) Package(ctx context.Context, first Entry, entries []Entry, to io.Writer) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}

	stage, err := os.MkdirTemp(z.TempDir, "epb-")
	if err != nil {
		return common.IOError(err)
	}
	defer func() {
		err = multierr.Append(err, os.RemoveAll(stage))
	}()

	names := make([]string, 0, len(entries))
	if err := stageEntry(stage, first); err != nil {
		return err
	}
	for _, e := range entries {
		if err := stageEntry(stage, e); err != nil {
			return err
		}
		names = append(names, e.Name)
	}

	out := filepath.Join(stage, outputName)

	// The first invocation stores the first entry uncompressed, the
	// second appends the rest deflated. Passing names explicitly keeps
	// the entry order under our control.
	if err := z.run(ctx, stage, "-X", "-0", outputName, first.Name); err != nil {
		return err
	}
	if err := z.run(ctx, stage, append([]string{"-X", "-9", outputName}, names...)...); err != nil {
		return err
	}

	f, err := os.Open(out)
	if err != nil {
		return common.PackagingError(fmt.Errorf("%s produced no archive: %w", z.command(), err))
	}
	defer f.Close()

	if _, err := io.Copy(to, f); err != nil {
		return common.IOError(err)
	}
	return nil
}

func (z *ZipCommand) run(ctx context.Context, dir string, args ...string) error {
	cmd := exec.CommandContext(ctx, z.command(), args...)
	cmd.Dir = dir

	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr

	z.logger().Debug("running archiver", zap.String("command", z.command()), zap.Strings("args", args))

	if err := cmd.Run(); err != nil {
		return common.PackagingError(fmt.Errorf("%s %v failed: %w: %s", z.command(), args, err, stderr.String()))
	}
	return nil
}

func stageEntry(stage string, e Entry) error {
	p := filepath.Join(stage, filepath.FromSlash(e.Name))
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return common.IOError(err)
	}
	if err := os.WriteFile(p, e.Data, 0644); err != nil {
		return common.IOError(err)
	}
	return nil
}

// CommandOrWriter probes command and returns a backend for it, falling
// back to the in-process writer when the command cannot run.
func CommandOrWriter(ctx context.Context, command string, log *zap.Logger) Packager {
	if log == nil {
		log = zap.NewNop()
	}
	zc := &ZipCommand{Command: command, Log: log}
	if err := zc.Test(ctx); err != nil {
		log.Debug("external archiver unavailable, using built-in writer", zap.Error(err))
		return &ZipWriter{}
	}
	return zc
}
