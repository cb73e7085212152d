// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

/*
Command clitesym prints the scopes and declared variables of CLite programs.

	clitesym [flags] program.clite...

Each scope is printed as it closes, and the global scope last.
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/google/clitesym/internal/clite/builder"
	"github.com/google/clitesym/internal/config"
	"github.com/google/clitesym/internal/translator"
)

var (
	configFile = flag.String("config", "", "Path of a TOML file holding default settings.  Flags given on the command line override it.")
	version    = flag.Bool("version", false, "Print clitesym version information.")

	discipline      = flag.String("discipline", "static", "Scoping discipline: static or dynamic.")
	anonymousPrefix = flag.String("anonymous_prefix", builder.DefaultAnonymousPrefix, "Prefix of the names given to anonymous blocks.")
	quietHeader     = flag.Bool("quiet_header", false, "Do not print the discipline header line before each program.")
	color           = flag.Bool("color", false, "Highlight scope names when printing to a terminal.")

	// Debugging flags.
	dumpTable       = flag.Bool("dump_table", false, "Dump the scope tree of each program after the pass (to INFO log).")
	metricsTextfile = flag.String("metrics_textfile", "", "If set, write translation metrics to this file in the Prometheus text format on exit.")
)

var (
	// Branch as well as Version and Revision identifies where in the git
	// history the build came from, as supplied by the linker with
	// -ldflags "-X main.Version=...".  The defaults mark a build that did not
	// set them.
	Branch   = "unknown"
	Version  = "unknown"
	Revision = "unknown"
)

// loadConfig returns the settings from --config, overridden by the flags
// given on the command line.
func loadConfig() (*config.Config, error) {
	cfg := config.Default()
	if *configFile != "" {
		var err error
		if cfg, err = config.Load(*configFile); err != nil {
			return nil, err
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "discipline":
			cfg.Discipline = *discipline
		case "anonymous_prefix":
			cfg.AnonymousPrefix = *anonymousPrefix
		case "quiet_header":
			cfg.QuietHeader = *quietHeader
		case "color":
			cfg.Color = *color
		case "dump_table":
			cfg.DumpTable = *dumpTable
		case "metrics_textfile":
			cfg.MetricsTextfile = *metricsTextfile
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func options(cfg *config.Config, buildInfo translator.BuildInfo) []translator.Option {
	opts := []translator.Option{
		translator.SetBuildInfo(buildInfo),
		translator.DisciplineName(cfg.Discipline),
		translator.AnonymousPrefix(cfg.AnonymousPrefix),
	}
	if !cfg.QuietHeader {
		opts = append(opts, translator.Header)
	}
	if cfg.DumpTable {
		opts = append(opts, translator.DumpTable)
	}
	if cfg.Color {
		opts = append(opts, translator.Color)
	}
	return opts
}

func main() {
	buildInfo := translator.BuildInfo{
		Branch:   Branch,
		Version:  Version,
		Revision: Revision,
	}

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s\n", buildInfo.String())
		fmt.Fprintf(os.Stderr, "\nUsage: %s [flags] program.clite...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if *version {
		fmt.Println(buildInfo.String())
		os.Exit(0)
	}
	glog.Info(buildInfo.String())
	glog.Infof("Commandline: %q", os.Args)
	if flag.NArg() == 0 {
		glog.Exitf("clitesym requires at least one CLite program to translate; name the program files after the flags.")
	}

	cfg, err := loadConfig()
	if err != nil {
		glog.Exit(err)
	}
	t, err := translator.New(options(cfg, buildInfo)...)
	if err != nil {
		glog.Exit(err)
	}
	err = t.TranslateAll(context.Background(), flag.Args())
	if cfg.MetricsTextfile != "" {
		if merr := t.WriteMetricsTextfile(cfg.MetricsTextfile); merr != nil {
			glog.Warning(merr)
		}
	}
	if err != nil {
		glog.Exitf("Translation encountered errors:\n%s", err)
	}
}
