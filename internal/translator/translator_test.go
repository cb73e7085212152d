// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package translator_test

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/google/clitesym/internal/clite/builder"
	"github.com/google/clitesym/internal/clite/errors"
	"github.com/google/clitesym/internal/testutil"
	"github.com/google/clitesym/internal/translator"
	"github.com/prometheus/client_golang/prometheus"
)

func newTestTranslator(tb testing.TB, out *bytes.Buffer, options ...translator.Option) *translator.Translator {
	tb.Helper()
	tr, err := translator.New(append([]translator.Option{translator.Output(out)}, options...)...)
	testutil.FatalIfErr(tb, err)
	return tr
}

func TestGoldenPrograms(t *testing.T) {
	for _, name := range testutil.GoldenPrograms {
		for _, p := range []builder.Policy{builder.Static, builder.Dynamic} {
			name, p := name, p
			t.Run(name+"/"+p.Name(), func(t *testing.T) {
				want := testutil.ReadGoldenFile(t, name, p.Name())

				var out bytes.Buffer
				tr := newTestTranslator(t, &out, translator.Discipline(p))
				tab, err := tr.TranslateFile(context.Background(), testutil.ProgramPath(t, name))
				testutil.FatalIfErr(t, err)
				testutil.ExpectNoDiff(t, want, out.String())
				if !tab.Contains(tab.Global()) {
					t.Errorf("global scope missing from table")
				}
			})
		}
	}
}

func TestTranslateIsRepeatable(t *testing.T) {
	var out bytes.Buffer
	tr := newTestTranslator(t, &out)
	program := "{\nint a;\n}\n{\nint b;\n}\n"
	for i := 0; i < 2; i++ {
		out.Reset()
		_, err := tr.Translate(context.Background(), "repeat", strings.NewReader(program))
		testutil.FatalIfErr(t, err)
		want := "Scope (unnamed_scope_1) variables: <a, int, 2>\n" +
			"Scope (unnamed_scope_2) variables: <b, int, 5>\n" +
			"Scope (global) variables: \n"
		testutil.ExpectNoDiff(t, want, out.String())
	}
}

func TestUnbalancedProgram(t *testing.T) {
	var out bytes.Buffer
	tr := newTestTranslator(t, &out)
	before := translator.UnbalancedInputs.Value()
	tab, err := tr.TranslateFile(context.Background(), testutil.ProgramPath(t, "unbalanced"))
	if !errors.IsUnbalanced(err) {
		t.Fatalf("TranslateFile() error = %v, want unbalanced", err)
	}
	if !strings.HasPrefix(err.Error(), "unbalanced.clite:") {
		t.Errorf("error %q does not name the program", err)
	}
	// Scopes closed before the end are still reported; the global scope is not.
	testutil.ExpectNoDiff(t, "Scope (unnamed_scope_1) variables: <y, int, 4>\n", out.String())
	if tab == nil || !tab.Contains("f") {
		t.Errorf("partial table not returned")
	}
	if d := translator.UnbalancedInputs.Value() - before; d != 1 {
		t.Errorf("unbalanced_inputs_total changed by %d, want 1", d)
	}
}

func TestExtraClosesProgram(t *testing.T) {
	var out bytes.Buffer
	tr := newTestTranslator(t, &out)
	before := translator.UnbalancedInputs.Value()
	_, err := tr.Translate(context.Background(), "extra.clite", strings.NewReader("int f() {\nint x;\n}\n}\n}\n"))
	if !errors.IsUnbalanced(err) {
		t.Fatalf("Translate() error = %v, want unbalanced", err)
	}
	if !strings.HasPrefix(err.Error(), "extra.clite:4: ") {
		t.Errorf("error %q does not locate the first extra brace", err)
	}
	testutil.ExpectNoDiff(t, "Scope (f) variables: <x, int, 2>\n", out.String())
	if d := translator.UnbalancedInputs.Value() - before; d != 1 {
		t.Errorf("unbalanced_inputs_total changed by %d, want 1", d)
	}
}

func TestRepeatedBlockNames(t *testing.T) {
	var out bytes.Buffer
	tr := newTestTranslator(t, &out)
	program := "int n;\nwhile (n > 0) {\nint a;\n}\nwhile (n > 0) {\nint b;\n}\n"
	tab, err := tr.Translate(context.Background(), "loops", strings.NewReader(program))
	testutil.FatalIfErr(t, err)
	want := "Scope (while (n > 0)) variables: <a, int, 3>\n" +
		"Scope (while (n > 0)) variables: <b, int, 6>\n" +
		"Scope (global) variables: <n, int, 1>\n"
	testutil.ExpectNoDiff(t, want, out.String())
	if !tab.Contains("while (n > 0)#2") {
		t.Errorf("second loop not kept under a distinct id:\n%s", tab.Dump())
	}
}

func TestHeader(t *testing.T) {
	for _, tc := range []struct {
		discipline string
		want       string
	}{
		{"static", "Static symbol table generation...\nScope (global) variables: <x, int, 1>\n"},
		{"dynamic", "Dynamic symbol table generation...\nScope (main) variables: <x, int, 1>\n"},
	} {
		var out bytes.Buffer
		tr := newTestTranslator(t, &out, translator.DisciplineName(tc.discipline), translator.Header)
		_, err := tr.Translate(context.Background(), "h", strings.NewReader("int x;\n"))
		testutil.FatalIfErr(t, err)
		testutil.ExpectNoDiff(t, tc.want, out.String())
	}
}

func TestColorOutput(t *testing.T) {
	defer func(old bool) { color.NoColor = old }(color.NoColor)

	color.NoColor = true
	var out bytes.Buffer
	tr := newTestTranslator(t, &out, translator.Color)
	_, err := tr.Translate(context.Background(), "c", strings.NewReader("int x;\n"))
	testutil.FatalIfErr(t, err)
	testutil.ExpectNoDiff(t, "Scope (global) variables: <x, int, 1>\n", out.String())

	color.NoColor = false
	out.Reset()
	_, err = tr.Translate(context.Background(), "c", strings.NewReader("int x;\n"))
	testutil.FatalIfErr(t, err)
	if !strings.Contains(out.String(), "\x1b[") || !strings.Contains(out.String(), "global") {
		t.Errorf("expected highlighted scope name, got %q", out.String())
	}
}

func TestInvalidOptions(t *testing.T) {
	if _, err := translator.New(translator.DisciplineName("lexical")); err == nil {
		t.Error("unknown discipline accepted")
	}
	if _, err := translator.New(translator.AnonymousPrefix("")); err == nil {
		t.Error("empty anonymous prefix accepted")
	}
	if _, err := translator.New(translator.Discipline(nil)); err == nil {
		t.Error("nil discipline accepted")
	}
}

func TestAnonymousPrefixOption(t *testing.T) {
	var out bytes.Buffer
	tr := newTestTranslator(t, &out, translator.AnonymousPrefix("block_"))
	_, err := tr.Translate(context.Background(), "p", strings.NewReader("{\n}\n"))
	testutil.FatalIfErr(t, err)
	testutil.ExpectNoDiff(t, "Scope (block_1) variables: \nScope (global) variables: \n", out.String())
}

func TestMetrics(t *testing.T) {
	var out bytes.Buffer
	tr := newTestTranslator(t, &out)

	lines := translator.LineCount.Value()
	opened := translator.ScopesOpened.Value()
	decls := translator.Declarations.Value()
	closes := classified(t, tr.Registry(), "scope_close")

	_, err := tr.Translate(context.Background(), "m", strings.NewReader("int f(int a) {\nint b, c;\n{\n}\n}\nx = 1;\n"))
	testutil.FatalIfErr(t, err)

	if d := translator.LineCount.Value() - lines; d != 6 {
		t.Errorf("lines_total changed by %d, want 6", d)
	}
	if d := translator.ScopesOpened.Value() - opened; d != 2 {
		t.Errorf("scopes_opened_total changed by %d, want 2", d)
	}
	if d := translator.Declarations.Value() - decls; d != 4 {
		t.Errorf("declarations_total changed by %d, want 4", d)
	}
	if d := classified(t, tr.Registry(), "scope_close") - closes; d != 2 {
		t.Errorf("scope_close lines changed by %v, want 2", d)
	}
}

// classified returns the count of lines of the given kind from the registry.
func classified(tb testing.TB, reg *prometheus.Registry, kind string) float64 {
	tb.Helper()
	mfs, err := reg.Gather()
	testutil.FatalIfErr(tb, err)
	for _, mf := range mfs {
		if mf.GetName() != "clitesym_translator_lines_classified_total" {
			continue
		}
		for _, m := range mf.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "kind" && l.GetValue() == kind {
					return m.GetCounter().GetValue()
				}
			}
		}
	}
	return 0
}

func TestWriteMetricsTextfile(t *testing.T) {
	var out bytes.Buffer
	tr := newTestTranslator(t, &out)
	_, err := tr.Translate(context.Background(), "m", strings.NewReader("int x;\n{\n}\n"))
	testutil.FatalIfErr(t, err)

	path := filepath.Join(testutil.TestTempDir(t), "clitesym.prom")
	testutil.FatalIfErr(t, tr.WriteMetricsTextfile(path))
	text := testutil.TestReadFile(t, path)
	for _, want := range []string{
		"clitesym_lines_total",
		`clitesym_lines_by_kind_total{kind="var_decl"}`,
		`clitesym_translator_lines_classified_total{kind="scope_close"}`,
		"clitesym_translator_scope_open_depth_bucket",
		"clitesym_build_info",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("metrics text file missing %q", want)
		}
	}
}

func TestTranslateAll(t *testing.T) {
	var out bytes.Buffer
	tr := newTestTranslator(t, &out)
	err := tr.TranslateAll(context.Background(), []string{
		testutil.ProgramPath(t, "course_example"),
		testutil.ProgramPath(t, "unbalanced"),
		filepath.Join(testutil.TestTempDir(t), "missing.clite"),
	})
	if err == nil {
		t.Fatal("TranslateAll() succeeded with a bad program")
	}
	if n := strings.Count(err.Error(), "\n") + 1; n != 2 {
		t.Errorf("want 2 errors, got %d: %s", n, err)
	}
	if !strings.Contains(out.String(), "Scope (global) variables: <h, int, 1>") {
		t.Errorf("good program not reported:\n%s", out.String())
	}
}
