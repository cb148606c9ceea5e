// Command bench is the positional-argument benchmark driver:
//
//	bench height width num_workers num_steps [num_runs]
//
// It mirrors the batch front-end of the original framework: seeded random
// input, one automaton re-run num_runs times, a closing min/max/avg
// summary, and the final grid rendered to stdout.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/grid-automata/internal/benchmark"
	"github.com/grid-automata/internal/rule"
	"github.com/grid-automata/pkg/model"
	"github.com/grid-automata/pkg/utils"
)

var (
	engineFlag = flag.String("engine", "shared", "Engine kind: shared or halo")
	ruleFlag   = flag.String("rule", rule.NameLife, "Transition rule")
	seedFlag   = flag.Int64("seed", 112233, "Seed for the random initial state")
	printFlag  = flag.Bool("print", true, "Render the final grid")
	verbose    = flag.Bool("v", false, "Verbose output")
)

func usage() {
	fmt.Fprintf(os.Stderr, `bench - benchmark a cellular automaton configuration

Usage:
  bench [options] height width num_workers num_steps [num_runs]

Options:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) != 4 && len(args) != 5 {
		fmt.Fprintf(os.Stderr, "Received %d of the minimum 4 arguments\n", len(args))
		usage()
		os.Exit(1)
	}

	height := parsePositive(args[0], "height")
	width := parsePositive(args[1], "width")
	workers := parsePositive(args[2], "num_workers")
	steps := parsePositive(args[3], "num_steps")
	runs := 1
	if len(args) == 5 {
		runs = parsePositive(args[4], "num_runs")
	}

	kind, err := model.ParseEngineKind(*engineFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logLevel := utils.LevelInfo
	if *verbose {
		logLevel = utils.LevelDebug
	}
	logger := utils.NewDefaultLogger(logLevel, os.Stdout)
	utils.SetGlobalLogger(logger)

	spec := model.RunSpec{
		Height:  height,
		Width:   width,
		Workers: workers,
		Steps:   steps,
		Runs:    runs,
		Engine:  kind,
		Rule:    *ruleFlag,
		Seed:    *seedFlag,
	}

	runner := benchmark.NewRunner(benchmark.WithLogger(logger))
	result, err := runner.Run(context.Background(), spec)
	if err != nil {
		logger.Error("benchmark failed: %v", err)
		os.Exit(1)
	}

	if *printFlag {
		rendering, err := result.RenderFinal()
		if err != nil {
			logger.Error("failed to render grid: %v", err)
			os.Exit(1)
		}
		fmt.Print(rendering)
	}
	fmt.Print(result.Report())
}

func parsePositive(s, name string) int {
	v, err := strconv.Atoi(s)
	if err != nil || v <= 0 {
		fmt.Fprintf(os.Stderr, "%s must be a positive integer, got %q\n", name, s)
		usage()
		os.Exit(1)
	}
	return v
}
