package feature

import (
	"fmt"
	"testing"
)

// TestSetFlag sets a feature flag for the duration of the test t.
//
//	feature.TestSetFlag(t, feature.Flag, feature.EagerRangeValidation, true)
func TestSetFlag(t testing.TB, f *FlagSet, name FlagName, value bool) {
	current := f.Enabled(name)

	set := func(v bool) {
		err := f.Apply(fmt.Sprintf("%s=%v", name, v), func(msg string) {
			t.Fatalf("unexpected warning: %v", msg)
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	set(value)
	t.Cleanup(func() { set(current) })
}
