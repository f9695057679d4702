/*
SPDX-License-Identifier: Apache-2.0

Copyright 2025 The Strata Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/strata/core/inplacevolumes"
	"github.com/google/strata/core/tables"
	"github.com/google/strata/core/wellbores"
	"github.com/google/strata/datasources"
	"github.com/google/strata/demo"
	"github.com/rs/zerolog"
)

func main() {
	logLevel := flag.String("log-level", envOr("STRATA_LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	groupBy := flag.String("group-by", "ZONE", "comma separated columns to group the volumes by")
	result := flag.String("result", "STOIIP", "result column to summarize")
	search := flag.String("search", "", "free text filter for the wellbore hierarchy")
	sources := flag.String("sources", envOr("STRATA_SOURCES", ""), "optional JSON data source config to load and split")
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q: %v\n", *logLevel, err)
		os.Exit(2)
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(level).With().Timestamp().Logger()

	if err := runVolumes(logger, splitList(*groupBy), *result); err != nil {
		logger.Fatal().Err(err).Msg("volumes demo failed")
	}
	if err := runWellbores(logger, *search); err != nil {
		logger.Fatal().Err(err).Msg("wellbores demo failed")
	}
	if *sources != "" {
		if err := runSources(logger, *sources, splitList(*groupBy)); err != nil {
			logger.Fatal().Err(err).Msg("data sources failed")
		}
	}
}

// runSources loads every configured source and splits it by the grouping
// columns it has.
func runSources(logger zerolog.Logger, configPath string, groupBy []string) error {
	manager := datasources.NewManager(logger)
	manager.RegisterLoader(datasources.NewVolumesLoader(logger))
	manager.RegisterLoader(datasources.NewProtoLoader(logger))
	if err := manager.LoadConfig(configPath); err != nil {
		return err
	}

	for _, name := range manager.GetSourceNames() {
		table, err := manager.LoadData(name)
		if err != nil {
			return err
		}
		var present []string
		for _, column := range groupBy {
			if table.HasColumn(column) {
				present = append(present, column)
			}
		}
		if len(present) == 0 {
			logger.Info().Str("source", name).Int("rows", table.Length()).Msg("no grouping columns in source")
			continue
		}
		collection, err := table.SplitByColumns(present)
		if err != nil {
			return err
		}
		fmt.Printf("\n%s\n%s\n", name, collection.ToAscii())
	}
	return nil
}

func runVolumes(logger zerolog.Logger, groupBy []string, result string) error {
	table, err := demo.LoadVolumes(logger)
	if err != nil {
		return err
	}

	var subgroupBy string
	if len(groupBy) > 1 {
		subgroupBy = groupBy[1]
	}
	if len(groupBy) > 0 {
		err := inplacevolumes.CheckEnsembleGrouping(table, groupBy[0], subgroupBy)
		switch {
		case errors.Is(err, inplacevolumes.ErrMultipleEnsembles):
			logger.Warn().Err(err).Msg("grouping mixes ensembles, adding ENSEMBLE")
			groupBy = append([]string{inplacevolumes.ColumnEnsemble}, groupBy...)
		case err != nil:
			return err
		}
	}

	collection, err := table.SplitByColumns(groupBy)
	if err != nil {
		return err
	}
	fmt.Println(collection.ToAscii())

	stats, err := inplacevolumes.StatisticsPerGroup(table, result, groupBy)
	if err != nil {
		return err
	}
	for _, s := range stats {
		fmt.Printf("%s: %s\n", s.Key, s.Statistics)
	}

	return printConvergence(logger, result)
}

// printConvergence prints the convergence trace of the textproto sample,
// which holds a single ensemble.
func printConvergence(logger zerolog.Logger, result string) error {
	table, err := demo.LoadVolumesTextproto(logger)
	if err != nil {
		return err
	}
	points, err := inplacevolumes.Convergence(table, result)
	if err != nil {
		var notFound *tables.ColumnNotFoundError
		if errors.As(err, &notFound) {
			logger.Warn().Strs("columns", notFound.Names).Msg("no convergence for textproto sample")
			return nil
		}
		return err
	}

	fmt.Printf("\nConvergence of %s\n", result)
	for _, p := range points {
		fmt.Printf("  %s\n", p)
	}
	return nil
}

func runWellbores(logger zerolog.Logger, search string) error {
	headers, err := demo.LoadWellbores(logger)
	if err != nil {
		return err
	}

	hierarchy := wellbores.BuildHierarchy(headers, nil)
	filtered := hierarchy.Filter(wellbores.FilterState{SearchText: search})

	fmt.Printf("\nWellbores (%d of %d)\n", len(filtered.Wellbores), len(headers))
	for _, block := range filtered.Blocks {
		fmt.Printf("%s  [%d wellbores, %s]\n", block.Name, block.TotalWellbores, joinTypes(block.CompletionTypes))
		for _, well := range block.Wells {
			fmt.Printf("  %s  [%s]\n", well.UniqueWellIdentifier, joinTypes(well.CompletionTypes))
			for _, wb := range well.Wellbores {
				fmt.Printf("    %s  %s/%s  %s\n", wb.UniqueWellboreIdentifier, wb.WellborePurpose, wb.WellboreStatus,
					strings.Join(wb.PerforationAndScreens, ";"))
			}
		}
	}

	logger.Debug().
		Strs("purposes", hierarchy.Purposes).
		Strs("statuses", hierarchy.Statuses).
		Strs("completionDetails", hierarchy.CompletionDetails).
		Msg("filter values")
	return nil
}

func joinTypes(types []wellbores.CompletionType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ",")
}

func splitList(value string) []string {
	var result []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
