package debug

import "testing"

func TestCheckFilter(t *testing.T) {
	filter := map[string]bool{
		"*/engine.go:*":    true,
		"timer/tick.go:42": false,
		"all":              true,
	}

	for _, test := range []struct {
		key  string
		want bool
	}{
		{"timer/engine.go:17", true},
		{"timer/tick.go:42", false},
		{"main/main.go:1", true},
	} {
		if got := checkFilter(filter, test.key); got != test.want {
			t.Errorf("checkFilter(%q) = %v, want %v", test.key, got, test.want)
		}
	}
}

func TestCheckFilterDisabled(t *testing.T) {
	if checkFilter(map[string]bool{}, "timer/engine.go:1") {
		t.Error("empty filter must not match")
	}
	if checkFilter(map[string]bool{"all": false}, "timer/engine.go:1") {
		t.Error("disabled all must not match")
	}
}

func TestPadFile(t *testing.T) {
	for in, want := range map[string]string{
		"all":               "all",
		"engine.go":         "*/engine.go:*",
		"timer/engine.go":   "timer/engine.go:*",
		"timer/engine.go:3": "timer/engine.go:3",
	} {
		if got := padFile(in); got != want {
			t.Errorf("padFile(%q) = %q, want %q", in, got, want)
		}
	}
}

func BenchmarkLogStatic(b *testing.B) {
	for i := 0; i < b.N; i++ {
		Log("Static string")
	}
}
