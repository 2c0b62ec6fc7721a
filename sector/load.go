// sector/load.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package sector

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/globin/airac-aixm-updater/log"
	"github.com/globin/airac-aixm-updater/util"
)

// File is one loaded local dataset; exactly one of Sct and Isec is
// non-nil depending on the file's format.
type File struct {
	Path string
	Sct  *Sct
	Isec IsecMap
}

func isSectorFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".sct")
}

func isIsecFile(name string) bool {
	return strings.EqualFold(filepath.Base(name), "isec.txt") ||
		strings.EqualFold(filepath.Ext(name), ".isec")
}

// LoadDir loads every sector file and intersection list in dir, each in
// its own goroutine. A file that fails to load produces one error-level
// message and is excluded from the result; it never aborts its
// siblings. Only an unreadable directory is an error.
func LoadDir(dir string, ch chan<- log.Message, lg *log.Logger) ([]*File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", dir, ErrReadDir, err)
	}

	names := util.FilterSlice(util.MapSlice(entries, os.DirEntry.Name),
		func(name string) bool { return isSectorFile(name) || isIsecFile(name) })

	files := make([]*File, len(names))
	errs := make([]error, len(names))
	var wg sync.WaitGroup
	for i, name := range names {
		i, name := i, name
		wg.Add(1)
		go func() {
			defer wg.Done()
			files[i], errs[i] = loadFile(filepath.Join(dir, name), ch)
		}()
	}
	wg.Wait()

	var loaded []*File
	for i := range files {
		if errs[i] != nil {
			ch <- log.ErrorMessage(errs[i].Error())
			lg.Errorf("%s: %v", names[i], errs[i])
			continue
		}
		loaded = append(loaded, files[i])
	}
	return loaded, nil
}

func loadFile(path string, ch chan<- log.Message) (*File, error) {
	kind := util.Select(isSectorFile(path), ".sct", "intersection list")

	ch <- log.InfoMessage(fmt.Sprintf("Reading %s: %s", kind, path))
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %v", path, ErrOpen, err)
	}

	ch <- log.InfoMessage(fmt.Sprintf("Parsing %s: %s", kind, path))
	file := &File{Path: path}
	if isSectorFile(path) {
		sct, err := ParseSct(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		file.Sct = sct
		ch <- log.InfoMessage(fmt.Sprintf("Parsing %s complete: %s (%s)", kind, path, sct.Name()))
	} else {
		isec, err := ParseIsec(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		file.Isec = isec
		ch <- log.InfoMessage(fmt.Sprintf("Parsing %s complete: %s", kind, path))
	}

	return file, nil
}
