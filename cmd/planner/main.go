// cmd/planner/main.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Command planner drives a single Reset()+Iterate() pass of the
// hierarchical survey planner over a JSON-encoded Problem and writes
// the resulting waypoint list back out as JSON.
package main

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goforj/godump"

	"github.com/mmp-successor/hplanner/geo"
	"github.com/mmp-successor/hplanner/log"
	"github.com/mmp-successor/hplanner/planner"
	"github.com/mmp-successor/hplanner/util"
)

var (
	problemFile = flag.String("problem", "", "path to a JSON-encoded Problem (required)")
	outFile     = flag.String("out", "", "path to write the resulting waypoint list as JSON (default: stdout)")
	plannerKind = flag.String("planner", "phony", "intermediate planner to use: phony, dubins, or smart")
	logLevel    = flag.String("loglevel", "info", "logging level: debug, info, warn, error")
	logDir      = flag.String("logdir", "", "log file directory")
	dump        = flag.Bool("dump", false, "pretty-print the resulting waypoint list")
	cacheDir    = flag.String("cache", "", "if set, cache the solved path for unchanged Problems under this subdirectory of the user cache directory's hplanner folder")
)

// jsonTask and jsonArea mirror planner.Task/Area/Problem field-for-field
// so the CLI's wire format stays decoupled from the core types' Go
// layout.
type jsonTask struct {
	ID   int    `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`
}

type jsonArea struct {
	ID      int            `json:"id"`
	Polygon []geo.Position `json:"polygon"`
	Tasks   []jsonTask     `json:"tasks"`
}

type jsonProblem struct {
	StartLon     float64    `json:"start_lon"`
	StartLat     float64    `json:"start_lat"`
	StartHeading float64    `json:"start_heading_rad"`
	Areas        []jsonArea `json:"areas"`
}

func (jp jsonProblem) toProblem() *planner.Problem {
	p := &planner.Problem{
		StartingPosition:    geo.Position{Lon: jp.StartLon, Lat: jp.StartLat},
		StartingOrientation: geo.Orientation(jp.StartHeading),
	}
	for _, ja := range jp.Areas {
		area := planner.Area{ID: planner.AreaID(ja.ID), GeoPoly: append(geo.Polygon(nil), ja.Polygon...)}
		for _, jt := range ja.Tasks {
			area.Tasks = append(area.Tasks, planner.Task{ID: planner.TaskID(jt.ID), Type: jt.Type, Name: jt.Name})
		}
		p.Areas = append(p.Areas, area)
	}
	return p
}

func main() {
	flag.Parse()

	if *problemFile == "" {
		fmt.Fprintln(os.Stderr, "usage: planner -problem <file> [-out <file>] [-planner phony|dubins|smart]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	logger := log.New(*logLevel, *logDir)

	raw, err := os.ReadFile(*problemFile)
	if err != nil {
		logger.Errorf("reading problem file: %v", err)
		fmt.Fprintf(os.Stderr, "%s: %v\n", *problemFile, err)
		os.Exit(1)
	}

	var jp jsonProblem
	if err := json.Unmarshal(raw, &jp); err != nil {
		logger.Errorf("parsing problem file: %v", err)
		fmt.Fprintf(os.Stderr, "%s: invalid JSON: %v\n", *problemFile, err)
		os.Exit(1)
	}
	problem := jp.toProblem()

	var cacheKey string
	if *cacheDir != "" {
		sum := sha256.Sum256(raw)
		cacheKey = filepath.Join(*cacheDir, hex.EncodeToString(sum[:])+".path")
		var cached planner.Waypoints
		if _, err := util.CacheRetrieveObject(cacheKey, &cached); err == nil {
			logger.Infof("loaded cached path for %s (%d waypoints)", *problemFile, len(cached))
			writeResult(cached)
			return
		}
	}

	ip := selectIntermediatePlanner(*plannerKind)

	pl := planner.New(ip, planner.LawnmowerSubFlightPlanner{}, logger)
	if err := pl.Reset(problem); err != nil {
		logger.Errorf("reset: %v", err)
		fmt.Fprintf(os.Stderr, "reset failed: %v\n", err)
		os.Exit(1)
	}

	if err := pl.Iterate(); err != nil {
		var pe *planner.PlanningError
		if errors.As(err, &pe) {
			logger.Warnf("%v", pe)
			fmt.Fprintf(os.Stderr, "%v\n", pe)
			os.Exit(1)
		}
		logger.Errorf("iterate: %v", err)
		fmt.Fprintf(os.Stderr, "iterate failed: %v\n", err)
		os.Exit(1)
	}

	path := pl.BestFlightSoFar()

	if *dump {
		godump.Dump(path)
	}

	if *cacheDir != "" && cacheKey != "" {
		if err := util.CacheStoreObject(cacheKey, path); err != nil {
			logger.Warnf("caching path: %v", err)
		}
	}

	writeResult(path)
}

func selectIntermediatePlanner(kind string) planner.IntermediatePlanner {
	switch kind {
	case "dubins":
		return planner.DubinsIntermediatePlanner{}
	case "smart":
		return planner.SmartIntermediatePlanner{Dubins: planner.DubinsIntermediatePlanner{}}
	case "phony", "":
		return planner.PhonyIntermediatePlanner{}
	default:
		fmt.Fprintf(os.Stderr, "unknown -planner %q, using phony\n", kind)
		return planner.PhonyIntermediatePlanner{}
	}
}

func writeResult(path planner.Waypoints) {
	enc := json.NewEncoder(os.Stdout)
	if *outFile != "" {
		f, err := os.Create(*outFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", *outFile, err)
			os.Exit(1)
		}
		defer f.Close()
		enc = json.NewEncoder(f)
	}
	enc.SetIndent("", "  ")
	if err := enc.Encode(path); err != nil {
		fmt.Fprintf(os.Stderr, "encoding output: %v\n", err)
		os.Exit(1)
	}
}
