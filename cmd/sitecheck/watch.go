package main

import (
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"keephy-check/pkg/check"
	"keephy-check/pkg/model"
)

// runWatch re-runs the offline scans whenever source files under root change.
// API probes are excluded; watch mode is for editing the web tree.
func runWatch(root string, registry []model.RouteConfig) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Fatalf("watch init failed: %v", err)
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, root); err != nil {
		log.Fatalf("watch failed: %v", err)
	}

	rescan := func() {
		check.NewImageChecker(root, os.Stdout).Run()
		check.NewRouteScanner(root, registry, os.Stdout).Run()
	}
	rescan()
	log.Printf("watching %s for changes", root)

	debounce := 300 * time.Millisecond
	var timer *time.Timer
	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if ev.Op&fsnotify.Create != 0 {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = addWatchRecursive(watcher, ev.Name)
				}
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, rescan)
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("watch error: %v", err)
		}
	}
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") && path != root {
			return filepath.SkipDir
		}
		if name == "node_modules" {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}
