// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.

// analyse-control: a tool for rendering the control flow graph of an ES5
// program.
// -dotout Given a path for a .dot file, writes the graphviz rendering of
//         the flow graph in that file instead of standard output.
// -config Given a path for a yaml config file, loads rendering and
//         logging options from it.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/awslabs/ar-js-tools/analysis"
	"github.com/awslabs/ar-js-tools/analysis/config"
	"github.com/awslabs/ar-js-tools/analysis/flow"
	render "github.com/awslabs/ar-js-tools/analysis/rendering"
	"github.com/awslabs/ar-js-tools/internal/formatutil"
	"github.com/awslabs/ar-js-tools/internal/graphutil"
)

var (
	configPath = flag.String("config", "", "Config file")
	dotOut     = flag.String("dotout", "", "Output file for the graph rendering (stdout if not specified)")
	verbose    = flag.Bool("verbose", false, "Verbose construction logging")
)

const usage = ` Render the control flow graph of an ES5 program.
Usage:
    analyse-control [options] <file.js>
Examples:
% analyse-control -dotout example.dot example.js
`

func main() {
	flag.Parse()

	if flag.NArg() != 1 {
		_, _ = fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}
	if *verbose {
		cfg.LogLevel = int(config.DebugLevel)
	}
	logger := config.NewLogGroup(cfg)

	path := flag.Arg(0)
	src, err := os.ReadFile(path)
	if err != nil {
		logger.Errorf("could not read %s: %v", path, err)
		os.Exit(1)
	}

	graph, err := analysis.AnalyseControlFlowFile(logger, path, src)
	if err != nil {
		logger.Errorf("analysis of %s failed: %v", formatutil.Sanitize(path), err)
		os.Exit(1)
	}

	printStatistics(logger, graph)

	out := os.Stdout
	if *dotOut == "" && cfg.DotOut != "" {
		*dotOut = cfg.DotOut
	}
	if *dotOut != "" {
		f, err := os.Create(*dotOut)
		if err != nil {
			logger.Errorf("could not create %s: %v", *dotOut, err)
			os.Exit(1)
		}
		defer f.Close()
		out = f
	}
	if err := render.WriteGraphviz(cfg, graph, out); err != nil {
		logger.Errorf("rendering failed: %v", err)
		os.Exit(1)
	}
	if *dotOut != "" {
		logger.Infof("wrote %s", formatutil.Green(*dotOut))
	}
}

func printStatistics(logger *config.LogGroup, graph *flow.Graph) {
	reachable := flow.ReachableFrom(graph.StartOfFlow())
	it := graphutil.NewFlowIterator(graph)
	loops := graphutil.LoopComponents(it)

	logger.Infof("%s events, %s reachable from start",
		formatutil.Bold(graph.Size()), formatutil.Bold(reachable.Len()))
	if graphutil.HasCycle(it) {
		logger.Infof("graph is cyclic: %s loop component(s)", formatutil.Yellow(len(loops)))
	} else {
		logger.Infof("graph is acyclic: %s terminating path(s)",
			formatutil.Green(flow.CountTerminatingPaths(graph)))
	}
}
