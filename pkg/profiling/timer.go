// Package profiling provides opt-in pprof profiles and a lightweight
// hierarchical span timer. Panels mark expensive phases, like the initial
// catalog load or a filesystem walk, with Start/Stop spans; the summary
// shows where startup time went.
package profiling

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"
)

// Stopper ends a timed span, typically via defer.
type Stopper interface {
	Stop()
}

// span is one timed operation in the tree.
type span struct {
	name     string
	start    time.Time
	duration time.Duration
	children []*span
	mu       sync.Mutex
	profiler *Profiler
}

// Stop records the span's duration and pops it off the active stack.
func (s *span) Stop() {
	s.duration = time.Since(s.start)
	s.profiler.endSpan(s)
}

// Profiler holds one timing session. Spans started while another span is
// open nest under it.
type Profiler struct {
	enabled   bool
	mu        sync.Mutex
	root      *span
	spanStack []*span
}

var defaultProfiler = &Profiler{}

// Enable turns on the global profiler. Without it, Start is a no-op.
func Enable() {
	defaultProfiler.mu.Lock()
	defer defaultProfiler.mu.Unlock()

	if defaultProfiler.enabled {
		return
	}

	defaultProfiler.enabled = true
	defaultProfiler.root = &span{name: "root", start: time.Now(), profiler: defaultProfiler}
	defaultProfiler.spanStack = []*span{defaultProfiler.root}
}

// Start opens a named span under the currently active one.
func Start(name string) Stopper {
	if !defaultProfiler.enabled {
		return noopStopper{}
	}
	return defaultProfiler.startSpan(name)
}

// Summarize writes the span tree with durations and percentages of the
// total session time.
func Summarize(w io.Writer) {
	defaultProfiler.mu.Lock()
	defer defaultProfiler.mu.Unlock()

	if !defaultProfiler.enabled || defaultProfiler.root == nil {
		return
	}

	if defaultProfiler.root.duration == 0 {
		defaultProfiler.root.duration = time.Since(defaultProfiler.root.start)
	}

	fmt.Fprintln(w, "\n--- easel timing ---")
	printSpan(w, defaultProfiler.root, 0, defaultProfiler.root.duration)
	fmt.Fprintln(w, "--------------------")
}

func (p *Profiler) startSpan(name string) Stopper {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled {
		return noopStopper{}
	}

	parent := p.spanStack[len(p.spanStack)-1]
	newSpan := &span{name: name, start: time.Now(), profiler: p}

	parent.mu.Lock()
	parent.children = append(parent.children, newSpan)
	parent.mu.Unlock()

	p.spanStack = append(p.spanStack, newSpan)
	return newSpan
}

func (p *Profiler) endSpan(s *span) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.enabled || len(p.spanStack) <= 1 {
		return
	}
	p.spanStack = p.spanStack[:len(p.spanStack)-1]
}

// printSpan walks the tree, children in call order.
func printSpan(w io.Writer, s *span, depth int, total time.Duration) {
	if s.name != "root" {
		indent := strings.Repeat("  ", depth)
		pct := 0.0
		if total > 0 {
			pct = float64(s.duration) / float64(total) * 100
		}
		fmt.Fprintf(w, "%s- %s (%v, %.1f%%)\n", indent, s.name, s.duration.Round(100*time.Microsecond), pct)
	}

	sort.Slice(s.children, func(i, j int) bool {
		return s.children[i].start.Before(s.children[j].start)
	})
	for _, child := range s.children {
		printSpan(w, child, depth+1, total)
	}
}

// noopStopper is returned while the profiler is disabled.
type noopStopper struct{}

func (noopStopper) Stop() {}
