// Package bridgetest provides a fake engine that records outbound commands.
package bridgetest

import (
	"fmt"
	"sync"
)

// Call is one recorded outbound command.
type Call struct {
	Name string
	Args []string
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Recorder implements bridge.Engine by recording every call.
type Recorder struct {
	mu    sync.Mutex
	calls []Call
}

func (r *Recorder) record(name string, args ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, Call{Name: name, Args: args})
}

func (r *Recorder) Search(query string)           { r.record("search", query) }
func (r *Recorder) Open(path string, kind string) { r.record("open", path, kind) }
func (r *Recorder) Hide()                         { r.record("hide") }
func (r *Recorder) StartIndexing()                { r.record("startIndexing") }

// Calls returns a copy of everything recorded so far.
func (r *Recorder) Calls() []Call {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Call, len(r.calls))
	copy(out, r.calls)
	return out
}

// Named returns the recorded calls with the given name.
func (r *Recorder) Named(name string) []Call {
	var out []Call
	for _, c := range r.Calls() {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Count returns how many times name was called.
func (r *Recorder) Count(name string) int {
	return len(r.Named(name))
}

// Reset forgets every recorded call.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
