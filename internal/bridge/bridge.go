// Package bridge is the two-way, fire-and-forget contract between the palette
// and an indexing engine.
//
// Outbound commands (Search, Open, Hide, StartIndexing) flow from the palette to
// whatever Engine is attached; with no engine attached they are silently
// dropped. Inbound events (SetResults, AppendResults, SetLoading, FocusSearch,
// ClearSearch) flow from the engine to the attached Receiver. Engines push from
// their own goroutines, so every inbound call is handed to a Dispatcher that
// runs it on the receiver's thread in arrival order.
package bridge

import (
	"rayline/internal/log"
	"rayline/pkg/types"
)

// Engine receives user intent from the palette. Implementations must not
// block: each call is a notification and nothing waits for a reply.
type Engine interface {
	Search(query string)
	Open(path string, kind string)
	Hide()
	StartIndexing()
}

// Receiver applies engine pushes to palette state.
type Receiver interface {
	SetResults(results []types.FileResult)
	AppendResults(results []types.FileResult)
	SetLoading(loading bool)
	FocusSearch()
	ClearSearch()
}

// Dispatcher runs fn on the receiver's thread. Calls must execute in the order
// they were dispatched.
type Dispatcher func(fn func())

// Immediate runs fn on the calling goroutine. Suitable when the engine already
// calls from the receiver's thread, and in tests.
func Immediate(fn func()) { fn() }

// Bridge connects at most one Engine and one Receiver. Attachment and outbound
// calls happen on the receiver's thread; inbound calls may come from anywhere
// and are marshaled through the Dispatcher before the receiver is consulted.
type Bridge struct {
	dispatch Dispatcher
	engine   Engine
	receiver Receiver
}

// New creates a bridge that marshals inbound calls through dispatch.
// A nil dispatch means Immediate.
func New(dispatch Dispatcher) *Bridge {
	if dispatch == nil {
		dispatch = Immediate
	}
	return &Bridge{dispatch: dispatch}
}

// AttachEngine connects e as the outbound target. The returned func detaches
// it, and is a no-op if another engine has been attached since.
func (b *Bridge) AttachEngine(e Engine) (detach func()) {
	b.engine = e
	return func() {
		if b.engine == e {
			b.engine = nil
		}
	}
}

// AttachReceiver connects r as the inbound target. The returned func detaches
// it, and is a no-op if another receiver has been attached since.
func (b *Bridge) AttachReceiver(r Receiver) (detach func()) {
	b.receiver = r
	return func() {
		if b.receiver == r {
			b.receiver = nil
		}
	}
}

// Close detaches both sides. Inbound calls already queued in the dispatcher
// find no receiver and are dropped.
func (b *Bridge) Close() {
	b.engine = nil
	b.receiver = nil
}

// Search forwards the query to the engine.
func (b *Bridge) Search(query string) {
	if b.engine != nil {
		b.engine.Search(query)
	}
}

// Open asks the engine to launch path.
func (b *Bridge) Open(path string, kind string) {
	if b.engine != nil {
		b.engine.Open(path, kind)
	}
}

// Hide asks the engine to dismiss the palette.
func (b *Bridge) Hide() {
	if b.engine != nil {
		b.engine.Hide()
	}
}

// StartIndexing asks the engine to begin delivering results.
func (b *Bridge) StartIndexing() {
	if b.engine != nil {
		b.engine.StartIndexing()
	}
}

// SetResults replaces the receiver's result set.
func (b *Bridge) SetResults(results []types.FileResult) {
	batch := cloneResults(results)
	b.deliver("setResults", func(r Receiver) { r.SetResults(batch) })
}

// AppendResults merges a batch into the receiver's result set.
func (b *Bridge) AppendResults(results []types.FileResult) {
	batch := cloneResults(results)
	b.deliver("appendResults", func(r Receiver) { r.AppendResults(batch) })
}

// SetLoading updates the receiver's loading flag.
func (b *Bridge) SetLoading(loading bool) {
	b.deliver("setLoading", func(r Receiver) { r.SetLoading(loading) })
}

// FocusSearch asks the receiver to focus its query input.
func (b *Bridge) FocusSearch() {
	b.deliver("focusSearch", func(r Receiver) { r.FocusSearch() })
}

// ClearSearch is forwarded as-is; receivers currently treat it as a no-op.
func (b *Bridge) ClearSearch() {
	b.deliver("clearSearch", func(r Receiver) { r.ClearSearch() })
}

func (b *Bridge) deliver(event string, apply func(Receiver)) {
	b.dispatch(func() {
		r := b.receiver
		if r == nil {
			log.LogWithFields(log.F("event", event)).Debug("no receiver attached, dropping inbound event")
			return
		}
		apply(r)
	})
}

// The engine may reuse its batch buffer after pushing.
func cloneResults(results []types.FileResult) []types.FileResult {
	if results == nil {
		return nil
	}
	out := make([]types.FileResult, len(results))
	copy(out, results)
	return out
}
