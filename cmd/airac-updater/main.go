// cmd/airac-updater/main.go
// Copyright(c) 2025 airac-aixm-updater contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// airac-updater augments the .sct sector files and intersection lists
// in a directory with the current AIRAC data from the DFS AIXM
// datasets. The original files remain as backups, suffixed with the
// time stamp of execution.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/globin/airac-aixm-updater/aixm"
	"github.com/globin/airac-aixm-updater/log"
	"github.com/globin/airac-aixm-updater/updater"
)

var amendment = flag.Uint("amendment", 0, "Catalog amendment id; 0 is the current cycle")
var release = flag.String("release", "AIXM 5.1", "Dataset release type to resolve")
var datasets = flag.String("datasets", "", "Comma-separated dataset names overriding the defaults")
var aixmFiles = flag.String("aixm", "", "Comma-separated local AIXM files used instead of the DFS catalog")
var noCache = flag.Bool("nocache", false, "Don't cache downloaded datasets")
var cacheDir = flag.String("cachedir", "", "Dataset cache directory")
var logLevel = flag.String("loglevel", "info", "Log level: debug, info, warn, error")
var logDir = flag.String("logdir", "", "Log file directory")

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "usage: airac-updater [flags] <sector-dir>\nwhere [flags] may be:\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

	lg := log.New(*logLevel, *logDir)

	var cache *aixm.Cache
	if !*noCache {
		cache = aixm.OpenCache(*cacheDir, lg)
		for _, desc := range cache.Contents() {
			lg.Infof("cached: %s", desc)
		}
	}

	opts := updater.Options{
		Dir:         flag.Arg(0),
		Amendment:   *amendment,
		ReleaseType: *release,
		Cache:       cache,
	}
	if *datasets != "" {
		opts.Datasets = splitList(*datasets)
	}
	if *aixmFiles != "" {
		opts.LocalFiles = splitList(*aixmFiles)
	}

	ch := make(chan log.Message, log.MessageChanSize)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for msg := range ch {
			msg.Log(lg)
			fmt.Printf("[%s] %s\n", msg.Time.Format(time.RFC3339), msg.Content)
		}
	}()

	err := updater.Run(opts, ch, lg)
	close(ch)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
