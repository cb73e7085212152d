// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

// Package translator drives one pass over each CLite program: every line is
// classified and applied to a fresh scope builder, and each scope is reported
// as it closes, the global scope last.
package translator

import (
	"bufio"
	"context"
	"expvar"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/golang/glog"
	"github.com/google/clitesym/internal/clite/builder"
	"github.com/google/clitesym/internal/clite/classifier"
	clerrors "github.com/google/clitesym/internal/clite/errors"
	"github.com/google/clitesym/internal/clite/position"
	"github.com/google/clitesym/internal/clite/symbol"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/version"
	"go.opencensus.io/trace"
)

var (
	// LineCount counts the number of source lines read by the translator.
	LineCount = expvar.NewInt("lines_total")
	// LinesByKind counts source lines by the shape they were classified as.
	LinesByKind = expvar.NewMap("lines_by_kind_total")
	// ScopesOpened counts the number of scopes created, excluding global scopes.
	ScopesOpened = expvar.NewInt("scopes_opened_total")
	// Declarations counts the number of symbols declared.
	Declarations = expvar.NewInt("declarations_total")
	// UnbalancedInputs counts the programs that ended with scopes still open.
	UnbalancedInputs = expvar.NewInt("unbalanced_inputs_total")

	linesClassified = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "clitesym",
		Subsystem: "translator",
		Name:      "lines_classified_total",
		Help:      "Source lines by the shape they were classified as.",
	}, []string{"kind"})
	scopeOpenDepth = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "clitesym",
		Subsystem: "translator",
		Name:      "scope_open_depth",
		Help:      "Nesting depth of each scope when it is opened.",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	})
)

// maxLineLength bounds the length of a single source line.
const maxLineLength = 1 << 20

// Translator reconstructs symbol tables from CLite programs.  Each program is
// translated with its own builder, so nothing is shared between programs.
type Translator struct {
	policy     builder.Policy
	anonPrefix string
	out        io.Writer
	buildInfo  BuildInfo

	header    bool // if set, print the discipline before each program's reports
	dumpTable bool // if set, log the scope tree after each pass
	color     bool // if set, highlight scope names

	reg *prometheus.Registry
}

// New creates a Translator from the supplied Options.
func New(options ...Option) (*Translator, error) {
	t := &Translator{
		policy:     builder.Static,
		anonPrefix: builder.DefaultAnonymousPrefix,
		out:        os.Stdout,
		reg:        prometheus.NewRegistry(),
	}
	if err := t.SetOption(options...); err != nil {
		return nil, err
	}
	expvarDescs := map[string]*prometheus.Desc{
		"lines_total":             prometheus.NewDesc("lines_total", "number of source lines read", nil, nil),
		"lines_by_kind_total":     prometheus.NewDesc("lines_by_kind_total", "number of source lines by classified shape", []string{"kind"}, nil),
		"scopes_opened_total":     prometheus.NewDesc("scopes_opened_total", "number of scopes opened", nil, nil),
		"declarations_total":      prometheus.NewDesc("declarations_total", "number of symbols declared", nil, nil),
		"unbalanced_inputs_total": prometheus.NewDesc("unbalanced_inputs_total", "number of programs that ended with scopes open", nil, nil),
	}
	// Prefix all expvar metrics with 'clitesym_'
	prometheus.WrapRegistererWithPrefix("clitesym_", t.reg).MustRegister(
		prometheus.NewExpvarCollector(expvarDescs))

	version.Branch = t.buildInfo.Branch
	version.Version = t.buildInfo.Version
	version.Revision = t.buildInfo.Revision
	t.reg.MustRegister(
		version.NewCollector("clitesym"),
		linesClassified,
		scopeOpenDepth)
	return t, nil
}

// SetOption takes one or more option functions and applies them in order to Translator.
func (t *Translator) SetOption(options ...Option) error {
	for _, option := range options {
		if err := option.apply(t); err != nil {
			return err
		}
	}
	return nil
}

// Policy returns the scoping discipline programs are translated with.
func (t *Translator) Policy() builder.Policy {
	return t.policy
}

// Registry returns the registry holding the translator's metrics.
func (t *Translator) Registry() *prometheus.Registry {
	return t.reg
}

// WriteMetricsTextfile writes the translator's metrics to path in the
// Prometheus text exposition format.
func (t *Translator) WriteMetricsTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, t.reg); err != nil {
		return errors.Wrapf(err, "failed to write metrics to %q", path)
	}
	return nil
}

// TranslateFile translates the program at path.
func (t *Translator) TranslateFile(ctx context.Context, path string) (*symbol.Table, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open program %q", path)
	}
	defer func() {
		if err := f.Close(); err != nil {
			glog.Warning(err)
		}
	}()
	return t.Translate(ctx, path, f)
}

// Translate reads the program named name from input, reporting each scope as
// it closes and the global scope at the end.  The returned table holds every
// scope seen.  If the program leaves scopes open, the table built so far is
// returned with an error caused by errors.ErrUnbalanced, and the global scope
// is not reported.
func (t *Translator) Translate(ctx context.Context, name string, input io.Reader) (*symbol.Table, error) {
	_, span := trace.StartSpan(ctx, "translator.Translate")
	defer span.End()
	span.AddAttributes(trace.StringAttribute("program", name), trace.StringAttribute("discipline", t.policy.Name()))

	b, err := builder.New(builder.WithPolicy(t.policy), builder.AnonymousPrefix(t.anonPrefix))
	if err != nil {
		return nil, err
	}
	r := newReporter(t.out, t.color)
	if t.header {
		if err := r.header(strings.ToUpper(t.policy.Name()[:1]) + t.policy.Name()[1:]); err != nil {
			return nil, err
		}
	}
	glog.V(1).Infof("Translating %s with %s scoping", name, t.policy.Name())

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 4096), maxLineLength)
	pos := position.Position{Filename: filepath.Base(name)}
	for ; scanner.Scan(); pos = pos.Next() {
		l := b.Classify(scanner.Text())
		glog.V(2).Infof("%s: %s", pos, l.Kind)
		LineCount.Add(1)
		LinesByKind.Add(l.Kind.String(), 1)
		linesClassified.WithLabelValues(l.Kind.String()).Inc()

		scopes := b.Table().Len()
		closed := b.Apply(l, pos)
		if b.Table().Len() > scopes {
			ScopesOpened.Add(1)
			scopeOpenDepth.Observe(float64(b.Depth()))
		}
		Declarations.Add(int64(declarationCount(l)))
		if closed != nil {
			if err := r.scope(closed); err != nil {
				return b.Table(), err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return b.Table(), errors.Wrapf(err, "failed to read program %q", name)
	}

	if t.dumpTable {
		glog.Infof("%s symbol table:\n%s", name, b.Table().Dump())
	}
	if err := b.Finish(pos); err != nil {
		UnbalancedInputs.Add(1)
		span.SetStatus(trace.Status{Code: trace.StatusCodeFailedPrecondition, Message: err.Error()})
		return b.Table(), err
	}
	if err := r.scope(b.Table().Get(b.Global())); err != nil {
		return b.Table(), err
	}
	return b.Table(), nil
}

// TranslateAll translates each program in paths in turn.  Every program is
// attempted; the errors are collected and returned together.
func (t *Translator) TranslateAll(ctx context.Context, paths []string) error {
	var errs clerrors.ErrorList
	for _, path := range paths {
		if _, err := t.TranslateFile(ctx, path); err != nil {
			glog.Infof("Translation of %s failed: %s", path, err)
			errs.Add(nil, err.Error())
		}
	}
	return errs.Err()
}

func declarationCount(l classifier.Line) int {
	switch l.Kind {
	case classifier.MainHeader, classifier.FunctionHeader:
		return 1 + len(l.Decls)
	case classifier.VarDecl:
		return len(l.Decls)
	}
	return 0
}
