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
Package config contains the configuration of the travgraph command line tool.
*/
package config

import (
	"fmt"
	"maps"
	"strconv"

	"devt.de/krotik/common/errorutil"
	"devt.de/krotik/common/fileutil"
)

// Global variables
// ================

/*
DefaultConfigFile is the default config file which will be used to configure travgraph
*/
var DefaultConfigFile = "travgraph.config.json"

/*
Known configuration options for travgraph
*/
const (
	GraphFile             = "GraphFile"
	ProjectionMaxVertices = "ProjectionMaxVertices"
	ContinuousLearning    = "ContinuousLearning"
	EdgeValueProperty     = "EdgeValueProperty"
	Undirected            = "Undirected"
	LogLevel              = "LogLevel"
	MetricsFile           = "MetricsFile"
)

/*
DefaultConfig is the defaut configuration
*/
var DefaultConfig = map[string]interface{}{
	GraphFile:             "graph.json",
	ProjectionMaxVertices: 0,
	ContinuousLearning:    false,
	EdgeValueProperty:     "",
	Undirected:            false,
	LogLevel:              "Info",
	MetricsFile:           "",
}

/*
Config is the actual config which is used
*/
var Config map[string]interface{}

/*
LoadConfigFile loads a given config file. If the config file does not exist it is
created with the default options.
*/
func LoadConfigFile(configfile string) error {
	var err error

	Config, err = fileutil.LoadConfig(configfile, DefaultConfig)

	return err
}

/*
LoadDefaultConfig loads the default configuration.
*/
func LoadDefaultConfig() {
	Config = maps.Clone(DefaultConfig)
}

// Helper functions
// ================

/*
Str reads a config value as a string value.
*/
func Str(key string) string {
	return fmt.Sprint(Config[key])
}

/*
Int reads a config value as an int value.
*/
func Int(key string) int64 {
	ret, err := strconv.ParseInt(fmt.Sprint(Config[key]), 10, 64)

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}

/*
Bool reads a config value as a boolean value.
*/
func Bool(key string) bool {
	ret, err := strconv.ParseBool(fmt.Sprint(Config[key]))

	errorutil.AssertTrue(err == nil,
		fmt.Sprintf("Could not parse config key %v: %v", key, err))

	return ret
}
