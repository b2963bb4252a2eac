// Package confirm implements the confirmation gate: the small state machine
// that mediates "are you sure?" flows in front of destructive facade calls.
//
// The gate is either idle or holds exactly one open request. Accepting
// invokes the request's OnConfirm exactly once and closes the gate;
// cancelling or dismissing closes it without invoking anything. A second
// Confirm while open replaces the pending request (last call wins).
package confirm

import (
	"sync"

	"github.com/atriumhq/atrium/pkg/observability"
)

// Variant hints how the dialog should be styled.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Request describes one confirmation dialog.
type Request struct {
	Title       string
	Description string
	ConfirmText string
	CancelText  string
	Variant     Variant
	OnConfirm   func()
}

// Gate mediates confirmation flows. The zero value is usable; safe for
// concurrent use.
type Gate struct {
	mu      sync.Mutex
	pending *Request
}

// New creates an idle gate.
func New() *Gate {
	return &Gate{}
}

// Confirm opens the gate with the given request. If the gate is already
// open the previous request is replaced and its OnConfirm will never fire.
func (g *Gate) Confirm(req Request) {
	if req.ConfirmText == "" {
		req.ConfirmText = "Confirm"
	}
	if req.CancelText == "" {
		req.CancelText = "Cancel"
	}
	if req.Variant == "" {
		req.Variant = VariantDefault
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.pending = &req
}

// Pending returns the open request, if any, for rendering.
func (g *Gate) Pending() (Request, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.pending == nil {
		return Request{}, false
	}
	return *g.pending, true
}

// IsOpen reports whether a request is awaiting a decision.
func (g *Gate) IsOpen() bool {
	_, open := g.Pending()
	return open
}

// Accept closes the gate and invokes the pending OnConfirm exactly once.
// Accepting an idle gate is a no-op, so a double-click on the confirm
// button cannot re-run the action.
func (g *Gate) Accept() {
	g.mu.Lock()
	req := g.pending
	g.pending = nil
	g.mu.Unlock()

	if req == nil {
		return
	}
	observability.Confirmations.WithLabelValues("accepted").Inc()
	if req.OnConfirm != nil {
		req.OnConfirm()
	}
}

// Cancel closes the gate without invoking anything.
func (g *Gate) Cancel() {
	g.mu.Lock()
	open := g.pending != nil
	g.pending = nil
	g.mu.Unlock()

	if open {
		observability.Confirmations.WithLabelValues("cancelled").Inc()
	}
}

// Dismiss is cancellation by clicking outside the dialog; it behaves
// exactly like Cancel.
func (g *Gate) Dismiss() {
	g.Cancel()
}
