// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package testutil

import (
	"strings"
	"testing"
)

// FatalIfErr fails the test with a fatal error if err is not nil.
func FatalIfErr(tb testing.TB, err error) {
	tb.Helper()
	if err != nil {
		tb.Fatal(err)
	}
}

// ExpectErrContaining fails the test unless err is non-nil and its message
// contains each of the given fragments.
func ExpectErrContaining(tb testing.TB, err error, fragments ...string) {
	tb.Helper()
	if err == nil {
		tb.Errorf("got nil error, want one containing %q", fragments)
		return
	}
	for _, f := range fragments {
		if !strings.Contains(err.Error(), f) {
			tb.Errorf("error %q does not contain %q", err, f)
		}
	}
}
