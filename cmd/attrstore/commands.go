package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/davecgh/go-spew/spew"

	"attrstore/attrs"
	"attrstore/internal/codec"
	"attrstore/internal/common"
	"attrstore/internal/config"
	"attrstore/internal/diagnostic"
	"attrstore/internal/path"
	"attrstore/internal/suggest"
	"attrstore/internal/track"
)

var errNotFound = errors.New("path not found")

type app struct {
	cfg   config.Config
	out   io.Writer
	debug bool
}

// pathCodec returns the codec for the configured separator, which
// config.Load has already validated.
func (a *app) pathCodec() path.Codec {
	pc, err := path.NewCodec(a.cfg.Separator)
	if err != nil {
		return path.DefaultCodec()
	}

	return pc
}

// format returns the configured format used for files whose extension
// does not name one.
func (a *app) format() codec.Format {
	f, err := codec.ParseFormat(a.cfg.Format)
	if err != nil {
		return codec.FormatYAML
	}

	return f
}

func (a *app) open(file string) (*attrs.Store, error) {
	rec, err := codec.LoadRecord(file, a.format())
	if err != nil {
		return nil, err
	}

	s, err := attrs.New(attrs.WithSeparator(a.cfg.Separator), attrs.WithAttributes(rec))
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", file, err)
	}

	if a.debug {
		spew.Fdump(a.out, rec)
	}

	return s, nil
}

func (a *app) get(file, p string, exists bool) error {
	s, err := a.open(file)
	if err != nil {
		return err
	}

	if exists {
		ok, err := s.Exists(p)
		if err != nil {
			return err
		}

		fmt.Fprintln(a.out, ok)

		return nil
	}

	v, ok, err := s.Get(p)
	if err != nil {
		return err
	}

	if !ok {
		if hints := a.suggestions(s, p); len(hints) > 0 {
			fmt.Fprintf(a.out, "did you mean: %v\n", hints)
		}

		return fmt.Errorf("%s: %w", p, errNotFound)
	}

	fmt.Fprintln(a.out, codec.FormatValue(v))

	return nil
}

func (a *app) flatten(file string) error {
	s, err := a.open(file)
	if err != nil {
		return err
	}

	flat := s.Flatten()
	for _, p := range common.SortedKeys(flat) {
		fmt.Fprintf(a.out, "%s = %s\n", p, codec.FormatValue(flat[p]))
	}

	return nil
}

func (a *app) apply(file, scriptFile, outFile, watch string) error {
	s, err := a.open(file)
	if err != nil {
		return err
	}

	sc, err := codec.LoadScript(scriptFile, a.format())
	if err != nil {
		return err
	}

	original := s.Attributes()

	var diags diagnostic.Diagnostics

	for i, step := range sc.Steps {
		n := i + 1
		a.inspectStep(s, step, n, &diags)

		triggers, err := s.Set(step.Attributes(), attrs.SetOptions{Unset: step.IsUnset(), Silent: step.Silent})
		if err != nil {
			p := ""

			var pathErr *path.InvalidPathError
			if errors.As(err, &pathErr) {
				p = pathErr.Path
			}

			diags.AddError(diagnostic.CodeInvalidPath, err.Error(), n, p)

			continue
		}

		a.printTriggers(n, step, triggers, watch)

		if !step.Silent && len(triggers) == 0 {
			diags.AddInfo(diagnostic.CodeNoChange, "step changed nothing", n, "")
		}
	}

	changed, _ := track.Diff(a.pathCodec(), original, s.Attributes())

	fmt.Fprintln(a.out, "changed:")

	for _, p := range common.SortedKeys(changed) {
		fmt.Fprintf(a.out, "  %s = %s\n", p, codec.FormatValue(changed[p]))
	}

	for _, d := range diags.All() {
		fmt.Fprintf(a.out, "%s: %s\n", d.Severity, d)
	}

	if outFile != "" {
		if err := codec.WriteRecord(s.Attributes(), outFile, a.format()); err != nil {
			return err
		}
	}

	return diags.Error()
}

// inspectStep warns about unsets of missing paths and sets that replace a
// non-map value sitting in an intermediate position.
func (a *app) inspectStep(s *attrs.Store, step codec.Step, n int, diags *diagnostic.Diagnostics) {
	if step.IsUnset() {
		for _, p := range step.Unset {
			ok, err := s.Exists(p)
			if err != nil || ok {
				continue
			}

			diags.AddWarning(diagnostic.CodeMissingPath, "unset of missing path", n, p).
				Suggestions = a.suggestions(s, p)
		}

		return
	}

	pc := a.pathCodec()

	for p := range pc.Flatten(step.Set) {
		for _, ancestor := range pc.Ancestors(p) {
			v, ok, err := s.Get(ancestor)
			if err != nil || !ok || v == nil {
				continue
			}

			if _, isMap := v.(map[string]any); !isMap {
				diags.AddWarning(diagnostic.CodeClobber,
					fmt.Sprintf("replaces %s value at %s", codec.FormatValue(v), ancestor), n, p)
			}
		}
	}
}

// printTriggers lists the triggers of a step. When watch is set, the
// triggers whose path matches it are repeated as notifications.
func (a *app) printTriggers(n int, step codec.Step, triggers []attrs.Trigger, watch string) {
	if step.Silent {
		fmt.Fprintf(a.out, "step %d: silent\n", n)
		return
	}

	fmt.Fprintf(a.out, "step %d:\n", n)

	for _, t := range triggers {
		fmt.Fprintf(a.out, "  %s = %s\n", t.Path, codec.FormatValue(t.Value))
	}

	if watch != "" {
		for _, t := range track.Matching(triggers, watch) {
			fmt.Fprintf(a.out, "  notify %s: %s = %s\n", watch, t.Path, codec.FormatValue(t.Value))
		}
	}

	if a.debug {
		spew.Fdump(a.out, triggers)
	}
}

func (a *app) diff(file, otherFile string) error {
	s, err := a.open(file)
	if err != nil {
		return err
	}

	other, err := codec.LoadRecord(otherFile, a.format())
	if err != nil {
		return err
	}

	changed, ok := s.ChangedAgainst(other)
	if !ok {
		fmt.Fprintln(a.out, "no differences")
		return nil
	}

	for _, p := range common.SortedKeys(changed) {
		fmt.Fprintf(a.out, "%s = %s\n", p, codec.FormatValue(changed[p]))
	}

	return nil
}

// suggestions returns known paths, including intermediate ones, that look
// like p.
func (a *app) suggestions(s *attrs.Store, p string) []string {
	pc := a.pathCodec()

	known := make(map[string]struct{})
	for leaf := range s.Flatten() {
		known[leaf] = struct{}{}

		for _, ancestor := range pc.Ancestors(leaf) {
			known[ancestor] = struct{}{}
		}
	}

	ranked := suggest.Rank(p, common.SortedKeys(known), s.Separator())

	return common.Limit(ranked.AboveThreshold(a.cfg.Suggestions.MinScore), a.cfg.Suggestions.Limit).Paths()
}
