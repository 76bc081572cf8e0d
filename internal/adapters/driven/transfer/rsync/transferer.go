// Package rsync realises the transfer capability with the rsync binary
// over SSH. The remote destination directory is created as part of the
// same invocation by prefixing the remote rsync command with mkdir -p,
// and --partial-dir stages partial transfers so an interrupted copy
// never leaves a half-written file at the destination.
package rsync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path"
	"strings"

	"github.com/datamoor/csvrelay/internal/core/ports/driven"
	"github.com/datamoor/csvrelay/internal/logger"
)

// Ensure Transferer implements the port.
var _ driven.Transferer = (*Transferer)(nil)

// Transferer copies files to <user>@<host>:<baseDir>/<table> with rsync.
// Arguments are passed as a structured argv, never through a shell, so
// unusual local filenames cannot inject commands. The remote directory
// path still travels inside the --rsync-path command line interpreted
// by the remote shell; it is single-quoted, and table names only ever
// come from template filenames, which are operator-controlled.
type Transferer struct {
	user    string
	host    string
	baseDir string

	// binary is swappable for tests. Defaults to "rsync".
	binary string
}

// New creates a transferer targeting user@host:baseDir.
func New(user, host, baseDir string) *Transferer {
	return &Transferer{
		user:    user,
		host:    host,
		baseDir: baseDir,
		binary:  "rsync",
	}
}

// Destination describes the remote target directory for a table.
func (t *Transferer) Destination(table string) string {
	return fmt.Sprintf("%s@%s:%s", t.user, t.host, path.Join(t.baseDir, table))
}

// Transfer copies localPath into the remote table directory, creating
// the directory if it is missing and preserving file attributes. On
// failure the returned error carries rsync's stderr verbatim so the
// audit log records the real reason.
func (t *Transferer) Transfer(ctx context.Context, localPath, table string) error {
	remoteDir := path.Join(t.baseDir, table)

	args := []string{
		"-aLz",
		"--partial-dir=tmp",
		"--rsync-path=mkdir -p " + quoteRemote(remoteDir) + " && rsync",
		localPath,
		fmt.Sprintf("%s@%s:%s/", t.user, t.host, remoteDir),
	}

	logger.Info("Running rsync %s", strings.Join(args, " "))

	cmd := exec.CommandContext(ctx, t.binary, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("transfer aborted: %w", ctxErr)
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return errors.New(msg)
		}
		return err
	}

	return nil
}

// quoteRemote single-quotes a path for the remote shell, escaping any
// embedded single quotes.
func quoteRemote(p string) string {
	return "'" + strings.ReplaceAll(p, "'", `'\''`) + "'"
}
