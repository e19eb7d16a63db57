package profiling

import (
	"fmt"
	"os"
	"runtime"
	"runtime/pprof"

	"github.com/spf13/cobra"
)

// CobraProfiler hangs the pprof and timing flags off the root command.
// All notices go to stderr; stdout belongs to the alt-screen TUI and to
// commands that print data, like `config schema`.
type CobraProfiler struct {
	cpuFile *os.File
	cpuPath string
	memPath string
	timing  bool
}

// NewCobraProfiler creates an unconfigured profiler.
func NewCobraProfiler() *CobraProfiler {
	return &CobraProfiler{}
}

// AddFlags registers the profiling flags as persistent flags.
func (p *CobraProfiler) AddFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&p.cpuPath, "cpu-profile", "", "Write a pprof CPU profile of the session to the given file")
	cmd.PersistentFlags().StringVar(&p.memPath, "mem-profile", "", "Write a pprof heap profile on exit to the given file")
	cmd.PersistentFlags().BoolVar(&p.timing, "timing", false, "Print a span timing summary to stderr on exit")
}

// PreRun starts profiling from the parsed flags. Wire it up as the root
// command's PersistentPreRunE.
func (p *CobraProfiler) PreRun(cmd *cobra.Command, args []string) error {
	if p.timing {
		Enable()
	}

	if p.cpuPath == "" {
		return nil
	}
	f, err := os.Create(p.cpuPath)
	if err != nil {
		return fmt.Errorf("create cpu profile %s: %w", p.cpuPath, err)
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return fmt.Errorf("start cpu profile: %w", err)
	}
	p.cpuFile = f
	return nil
}

// PostRun flushes the profiles and the timing summary. Wire it up as the
// root command's PersistentPostRun.
func (p *CobraProfiler) PostRun(cmd *cobra.Command, args []string) {
	if p.cpuFile != nil {
		pprof.StopCPUProfile()
		p.cpuFile.Close()
		fmt.Fprintf(os.Stderr, "cpu profile written to %s\n", p.cpuPath)
	}

	if p.memPath != "" {
		f, err := os.Create(p.memPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "create heap profile %s: %v\n", p.memPath, err)
		} else {
			runtime.GC()
			if err := pprof.WriteHeapProfile(f); err != nil {
				fmt.Fprintf(os.Stderr, "write heap profile: %v\n", err)
			} else {
				fmt.Fprintf(os.Stderr, "heap profile written to %s\n", p.memPath)
			}
			f.Close()
		}
	}

	if p.timing {
		Summarize(os.Stderr)
	}
}
