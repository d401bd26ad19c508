// Package main provides the CLI entrypoint for attrstore.
//
// attrstore inspects and edits nested records through dot-delimited paths:
//   - get/flatten read a YAML or JSON record
//   - apply runs a script of write batches and reports change triggers
//   - diff compares two records path by path
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/docopt/docopt-go"

	"attrstore/internal/config"
)

const version = "0.1.0"

const usage = `Nested attribute store.

Usage:
    attrstore get <file> <path> [--exists] [options]
    attrstore flatten <file> [options]
    attrstore apply <file> <script> [--out=<out>] [--watch=<sub>] [options]
    attrstore diff <file> <other> [options]
    attrstore -h | --help
    attrstore --version

Options:
    -h --help            Show this screen.
    --version            Show version.
    --exists             Report whether the path exists instead of its value.
    --out=<out>          Write the resulting record to this file.
    --watch=<sub>        Notify on triggers matching this path or wildcard.
    --config=<config>    YAML config file.
                         Its format setting applies to files without a
                         known extension.
    --separator=<sep>    Path separator, overrides the config.
    --debug              Dump records and triggers.`

func main() {
	opts, err := docopt.ParseArgs(usage, os.Args[1:], version)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	cfg, err := config.Load(optString(opts, "--config"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	if sep := optString(opts, "--separator"); sep != "" {
		cfg.Separator = sep
	}

	setupLogging(cfg.Verbosity)

	a := &app{cfg: cfg, out: os.Stdout}
	a.debug, _ = opts.Bool("--debug")

	if err := a.dispatch(opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func (a *app) dispatch(opts docopt.Opts) error {
	file := optString(opts, "<file>")

	if get, _ := opts.Bool("get"); get {
		exists, _ := opts.Bool("--exists")
		return a.get(file, optString(opts, "<path>"), exists)
	} else if flatten, _ := opts.Bool("flatten"); flatten {
		return a.flatten(file)
	} else if apply, _ := opts.Bool("apply"); apply {
		return a.apply(file, optString(opts, "<script>"), optString(opts, "--out"), optString(opts, "--watch"))
	} else if diff, _ := opts.Bool("diff"); diff {
		return a.diff(file, optString(opts, "<other>"))
	}

	return fmt.Errorf("no command given")
}

// setupLogging routes glog to stderr at the configured verbosity.
func setupLogging(verbosity int) {
	_ = flag.Set("logtostderr", "true")
	_ = flag.Set("v", strconv.Itoa(verbosity))
}

func optString(opts docopt.Opts, key string) string {
	s, err := opts.String(key)
	if err != nil {
		return ""
	}

	return s
}
