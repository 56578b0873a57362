package termstatus

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLineWriter(t *testing.T) {
	var tests = []struct {
		inputs []string
		output string
	}{
		{
			inputs: []string{"00:00:01"},
			output: "00:00:01\n",
		},
		{
			inputs: []string{"00:0", "0:02", "\n", "paused"},
			output: "00:00:02\npaused\n",
		},
		{
			inputs: []string{"tick", " 1\ntick 2\n", "tick 3\n"},
			output: "tick 1\ntick 2\ntick 3\n",
		},
		{
			inputs: []string{"", "\n", "x", "y\nz"},
			output: "\nxy\nz\n",
		},
	}

	for _, test := range tests {
		t.Run("", func(t *testing.T) {
			var output strings.Builder
			w := newLineWriter(func(s string) { output.WriteString(s) })

			for _, data := range test.inputs {
				n, err := w.Write([]byte(data))
				if err != nil {
					t.Fatal(err)
				}

				if n != len(data) {
					t.Errorf("invalid length returned by Write, want %d, got %d", len(data), n)
				}
			}

			if err := w.Close(); err != nil {
				t.Fatal(err)
			}

			if diff := cmp.Diff(test.output, output.String()); diff != "" {
				t.Error(diff)
			}
		})
	}
}
