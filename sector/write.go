// sector/write.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sector

import (
	"fmt"
	"os"
	"time"

	"github.com/globin/airac-aixm-updater/log"
)

// BackupName returns the path the original file is moved to before a
// new one is written: the original name suffixed with the run's
// timestamp at second precision.
func BackupName(path string, runTime time.Time) string {
	return path + ".bkp" + runTime.Format("20060102_150405")
}

// WriteBack persists a reconciled sector file over its original path:
// the original is first renamed to a timestamped backup, then a new
// file is created at the original path with exclusive-create semantics
// and the serialized dataset written to it. There is no rollback if the
// write fails after the rename; the backup stays on disk as the
// recovery path and the error is surfaced to the caller.
//
// Intersection lists are not written back; WriteBack is a no-op for
// them.
func (f *File) WriteBack(runTime time.Time, ch chan<- log.Message) error {
	if f.Sct == nil {
		return nil
	}

	bkp := BackupName(f.Path, runTime)
	ch <- log.InfoMessage(fmt.Sprintf("Moving %s to %s", f.Path, bkp))
	if err := os.Rename(f.Path, bkp); err != nil {
		return fmt.Errorf("%s -> %s: %w: %v", f.Path, bkp, ErrRename, err)
	}

	ch <- log.InfoMessage(fmt.Sprintf("Writing new %s", f.Path))
	file, err := os.OpenFile(f.Path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("%s: %w: %v", f.Path, ErrCreate, err)
	}

	if err := f.Sct.Write(file); err != nil {
		file.Close()
		return fmt.Errorf("%s: %w: %v", f.Path, ErrWrite, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("%s: %w: %v", f.Path, ErrWrite, err)
	}

	ch <- log.InfoMessage(fmt.Sprintf("Finished writing %s", f.Path))
	return nil
}
