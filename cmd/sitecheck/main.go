// sitecheck is the repository health gate: it probes the gateway API
// contract, statically scans the web tree for broken image references, and
// cross-validates the route registry against component files. Exits nonzero
// when any hard error is found.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/uuid"

	"keephy-check/pkg/check"
	"keephy-check/pkg/model"
	"keephy-check/pkg/routes"
)

func main() {
	mode := flag.String("mode", "all", "what to check: api|images|routes|all")
	baseURL := flag.String("base-url", "http://localhost:8080", "gateway base URL for API checks")
	root := flag.String("root", ".", "web repository root for offline scans")
	endpointsFile := flag.String("endpoints", "", "YAML file overriding the probed endpoint list")
	routesFile := flag.String("routes", "", "YAML file overriding the route registry")
	watch := flag.Bool("watch", false, "re-run offline scans when files under root change")
	history := flag.Int("history", 0, "print the N most recent recorded runs and exit")
	flag.Parse()

	if *history > 0 {
		printHistory(*history)
		return
	}

	registry := routes.Registry
	if *routesFile != "" {
		loaded, err := routes.LoadFile(*routesFile)
		if err != nil {
			log.Fatalf("failed to load routes: %v", err)
		}
		registry = loaded
	}

	endpoints := check.DefaultEndpoints(*baseURL)
	if *endpointsFile != "" {
		loaded, err := check.LoadEndpoints(*endpointsFile)
		if err != nil {
			log.Fatalf("failed to load endpoints: %v", err)
		}
		endpoints = loaded
	}

	if *watch {
		runWatch(*root, registry)
		return
	}

	ok := runOnce(*mode, *root, registry, endpoints)
	if !ok {
		os.Exit(1)
	}
}

// printHistory dumps the local run history, newest first.
func printHistory(limit int) {
	runs := check.RecentRuns(limit)
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return
	}
	for _, run := range runs {
		status := "ok"
		if !run.Success {
			status = "fail"
		}
		fmt.Printf("%s  %-6s %-4s errors=%d warnings=%d id=%s\n",
			run.StartedAt.Format(time.RFC3339), run.Mode, status, run.Errors, run.Warnings, run.ID)
	}
}

// runOnce executes the selected checkers, records the run, and reports
// whether everything passed.
func runOnce(mode, root string, registry []model.RouteConfig, endpoints []check.Endpoint) bool {
	started := time.Now()
	errors, warnings := 0, 0
	ok := true

	if mode == "api" || mode == "all" {
		report := check.NewAPIChecker(os.Stdout).Run(context.Background(), endpoints)
		errors += len(report.Errors)
		warnings += len(report.Warnings)
		ok = ok && report.Success
	}
	if mode == "images" || mode == "all" {
		report := check.NewImageChecker(root, os.Stdout).Run()
		errors += len(report.Errors)
		warnings += len(report.Warnings)
		ok = ok && report.Success
	}
	if mode == "routes" || mode == "all" {
		report := check.NewRouteScanner(root, registry, os.Stdout).Run()
		errors += len(report.Errors)
		warnings += len(report.Warnings)
		ok = ok && report.Success
	}

	check.RecordRun(model.CheckRun{
		ID:         uuid.NewString(),
		Mode:       mode,
		Errors:     errors,
		Warnings:   warnings,
		Success:    ok,
		StartedAt:  started,
		FinishedAt: time.Now(),
	})
	return ok
}
