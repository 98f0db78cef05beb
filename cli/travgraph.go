/*
 * EliasDB
 *
 * Copyright 2016 Matthias Ladkau. All rights reserved.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

/*
travgraph projects a property graph stored in a JSON file into a compact
traversal graph and prints the edges of the result.

The JSON file contains an object with a list of vertices and a list of
edges. Every vertex and edge is an object of attributes. Vertices may have
an "id" attribute, edges need "out" and "in" attributes with vertex ids.

A second JSON file with further vertices and edges can be applied after the
projection was created. If continuous learning is enabled the projection
follows these changes.
*/
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"devt.de/krotik/common/logutil"
	"devt.de/krotik/travgraph/config"
	"devt.de/krotik/travgraph/graph"
	"devt.de/krotik/travgraph/projection"
)

func main() {

	// Initialize the default command line parser

	flag.CommandLine.Init(os.Args[0], flag.ContinueOnError)

	// Define default usage message

	flag.Usage = func() {

		// Print usage for tool selection

		fmt.Println(fmt.Sprintf("Usage of %s <tool>", os.Args[0]))
		fmt.Println()
		fmt.Println(fmt.Sprintf("travgraph traversal graph projection (graph version %v)", graph.VERSION))
		fmt.Println()
		fmt.Println("Available commands:")
		fmt.Println()
		fmt.Println("    project   Project a graph file into a traversal graph")
		fmt.Println()
		fmt.Println(fmt.Sprintf("Use %s <command> -help for more information about a given command.", os.Args[0]))
		fmt.Println()
	}

	// Parse the command bit

	err := flag.CommandLine.Parse(os.Args[1:])

	if len(flag.Args()) > 0 {

		arg := flag.Args()[0]

		if arg == "project" {

			if err = config.LoadConfigFile(config.DefaultConfigFile); err == nil {
				initLogging()
				err = RunProject(flag.Args()[1:], os.Stdout)
			}

			if err != nil {
				fmt.Println(err)
				os.Exit(1)
			}

		} else {
			flag.Usage()
		}

	} else if err == nil {

		flag.Usage()
	}
}

/*
initLogging adds a log sink at the configured level and directs the
projection log output to it.
*/
func initLogging() {
	level := logutil.StringToLoglevel(config.Str(config.LogLevel))
	if level == "" {
		level = logutil.Info
	}

	logger := logutil.GetLogger("travgraph")
	logger.AddLogSink(level, logutil.SimpleFormatter(), os.Stderr)

	projection.LogInfo = logger.Info
	projection.LogDebug = logger.Debug
}

/*
RunProject runs the project command with the given arguments. Default values
for all options come from the configuration.
*/
func RunProject(args []string, out io.Writer) error {
	if config.Config == nil {
		config.LoadDefaultConfig()
	}

	flags := flag.NewFlagSet("project", flag.ContinueOnError)
	flags.SetOutput(out)

	graphFile := flags.String("graph", config.Str(config.GraphFile), "Graph file to project")
	updateFile := flags.String("update", "", "Graph file which is applied after the projection was created")
	maxVertices := flags.Int64("max", config.Int(config.ProjectionMaxVertices),
		"Vertex capacity of the projection (0 derives it from the graph)")
	property := flags.String("property", config.Str(config.EdgeValueProperty),
		"Numeric edge property used as edge value (edge labels are used if empty)")
	undirected := flags.Bool("undirected", config.Bool(config.Undirected), "Create an undirected projection")
	learning := flags.Bool("learn", config.Bool(config.ContinuousLearning), "Follow changes of the graph")
	metricsFile := flags.String("metrics", config.Str(config.MetricsFile), "Write metrics to a file")
	showHelp := flags.Bool("help", false, "Show this help message")

	flags.Usage = func() {
		fmt.Fprintln(out)
		fmt.Fprintln(out, fmt.Sprintf("Usage of %s project [options]", os.Args[0]))
		fmt.Fprintln(out)
		flags.PrintDefaults()
		fmt.Fprintln(out)
	}

	if err := flags.Parse(args); err != nil {
		return err
	}

	if *showHelp {
		flags.Usage()
		return nil
	}

	if *maxVertices < 0 {
		return fmt.Errorf("Invalid vertex capacity: %v", *maxVertices)
	}

	gm := graph.NewGraphManager("main")

	if err := importFile(*graphFile, gm); err != nil {
		return err
	}

	var err error

	if *property != "" {
		err = writeProjection(out, gm, *updateFile, *undirected, &projection.Options[float64]{
			MaxVertices:        uint64(*maxVertices),
			Converter:          projection.PropertyConverter(*property, projection.Float64Value),
			ContinuousLearning: *learning,
		})
	} else {
		err = writeProjection(out, gm, *updateFile, *undirected, &projection.Options[string]{
			MaxVertices:        uint64(*maxVertices),
			ContinuousLearning: *learning,
		})
	}

	if err == nil && *metricsFile != "" {
		err = prometheus.WriteToTextfile(*metricsFile, prometheus.DefaultGatherer)
	}

	return err
}

/*
writeProjection projects a graph and writes the result. If an update file
is given it is applied and the result is written again.
*/
func writeProjection[T any](out io.Writer, gm *graph.Manager, updateFile string,
	undirected bool, opts *projection.Options[T]) error {

	var res fmt.Stringer
	var p *projection.Projection[T]
	var err error

	if undirected {
		res, p, err = projection.ProjectUndirected(gm, opts)
	} else {
		res, p, err = projection.Project(gm, opts)
	}

	if err != nil {
		return err
	}

	defer p.Close()

	fmt.Fprint(out, res)

	if updateFile != "" {
		if err = importFile(updateFile, gm); err == nil {
			fmt.Fprint(out, res)
		}
	}

	return err
}

/*
importFile imports a JSON graph file into a graph manager.
*/
func importFile(name string, gm *graph.Manager) error {
	f, err := os.Open(name)

	if err == nil {
		defer f.Close()

		err = graph.ImportGraph(f, gm)
	}

	return err
}
