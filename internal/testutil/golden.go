// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package testutil

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// GoldenPrograms names the example programs in the testdata directory that
// have expected reports for both disciplines.
var GoldenPrograms = []string{"course_example", "nested_blocks"}

// TestdataDir returns the directory holding the example programs.
func TestdataDir(tb testing.TB) string {
	tb.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		tb.Fatal("cannot locate testdata directory")
	}
	return filepath.Join(filepath.Dir(file), "..", "..", "testdata")
}

// ProgramPath returns the path of the example program called name.
func ProgramPath(tb testing.TB, name string) string {
	tb.Helper()
	return filepath.Join(TestdataDir(tb), name+".clite")
}

// ReadGolden returns the expected reports in file, dropping comment lines
// that start with '#'.
func ReadGolden(tb testing.TB, file io.Reader) string {
	tb.Helper()
	var b strings.Builder
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "#") {
			continue
		}
		b.WriteString(scanner.Text())
		b.WriteString("\n")
	}
	FatalIfErr(tb, scanner.Err())
	return b.String()
}

// ReadGoldenFile returns the expected reports for program name under the
// named discipline.
func ReadGoldenFile(tb testing.TB, name, discipline string) string {
	tb.Helper()
	f, err := os.Open(filepath.Join(TestdataDir(tb), name+"."+discipline+".golden"))
	FatalIfErr(tb, err)
	defer f.Close()
	return ReadGolden(tb, f)
}
