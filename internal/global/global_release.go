//go:build !debug && !profile

package global

import (
	"io"

	"github.com/spf13/cobra"
)

// RegisterProfiling does nothing, release builds cannot be profiled.
func RegisterProfiling(_ *cobra.Command, _ io.Writer) {}
