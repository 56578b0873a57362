//go:build debug || profile

package global

import (
	"fmt"
	"io"
	"net/http"
	_ "net/http/pprof"

	"github.com/pkg/profile"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/restic/countdown/internal/errors"
)

// RegisterProfiling adds the profiling flags to cmd. The profile is
// started before the command runs and written when cobra finalizes.
func RegisterProfiling(cmd *cobra.Command, stderr io.Writer) {
	var profiler Profiler

	origPreRun := cmd.PersistentPreRunE
	cmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if origPreRun != nil {
			if err := origPreRun(cmd, args); err != nil {
				return err
			}
		}
		return profiler.Start(stderr)
	}

	cobra.OnFinalize(profiler.Stop)

	profiler.opts.AddFlags(cmd.PersistentFlags())
}

type Profiler struct {
	opts ProfileOptions
	stop interface {
		Stop()
	}
}

type ProfileOptions struct {
	listen    string
	memPath   string
	cpuPath   string
	tracePath string
	blockPath string
}

func (opts *ProfileOptions) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&opts.listen, "listen-profile", "", "listen on this `address:port` for memory profiling")
	f.StringVar(&opts.memPath, "mem-profile", "", "write memory profile to `dir`")
	f.StringVar(&opts.cpuPath, "cpu-profile", "", "write cpu profile to `dir`")
	f.StringVar(&opts.tracePath, "trace-profile", "", "write trace to `dir`")
	f.StringVar(&opts.blockPath, "block-profile", "", "write block profile to `dir`")
}

// mode returns the selected profile mode and its output directory.
func (opts ProfileOptions) mode() (func(*profile.Profile), string, error) {
	var mode func(*profile.Profile)
	var path string

	for _, p := range []struct {
		path string
		mode func(*profile.Profile)
	}{
		{opts.memPath, profile.MemProfile},
		{opts.cpuPath, profile.CPUProfile},
		{opts.tracePath, profile.TraceProfile},
		{opts.blockPath, profile.BlockProfile},
	} {
		if p.path == "" {
			continue
		}
		if mode != nil {
			return nil, "", errors.Fatal("only one profile (memory, CPU, trace, or block) may be activated at the same time")
		}
		mode, path = p.mode, p.path
	}

	return mode, path, nil
}

func (p *Profiler) Start(stderr io.Writer) error {
	if p.opts.listen != "" {
		fmt.Fprintf(stderr, "running profile HTTP server on %v\n", p.opts.listen)
		go func() {
			err := http.ListenAndServe(p.opts.listen, nil)
			if err != nil {
				fmt.Fprintf(stderr, "profile HTTP server listen failed: %v\n", err)
			}
		}()
	}

	mode, path, err := p.opts.mode()
	if err != nil {
		return err
	}
	if mode != nil {
		p.stop = profile.Start(profile.Quiet, profile.NoShutdownHook, mode, profile.ProfilePath(path))
	}

	return nil
}

func (p *Profiler) Stop() {
	if p.stop != nil {
		p.stop.Stop()
	}
}
