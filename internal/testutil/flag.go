// Copyright 2026 Google Inc. All Rights Reserved.
// This file is available under the Apache license.

package testutil

import (
	"flag"
	"testing"
)

// TestSetFlag sets the value of the commandline flag name for the duration of
// the test, restoring the previous value when the test finishes.
func TestSetFlag(tb testing.TB, name, value string) {
	tb.Helper()
	f := flag.Lookup(name)
	if f == nil {
		tb.Fatalf("no flag named %q", name)
	}
	old := f.Value.String()
	if err := flag.Set(name, value); err != nil {
		tb.Fatal(err)
	}
	tb.Cleanup(func() {
		if err := flag.Set(name, old); err != nil {
			tb.Error(err)
		}
	})
}
