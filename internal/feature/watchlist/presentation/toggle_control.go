package presentation

import (
	"context"
	"log/slog"
	"sync"

	"watchlist_backend/internal/feature/watchlist/usecase"
)

// Toggler performs the server-side toggle. Both the watchlist usecase and
// the HTTP API client satisfy it.
type Toggler interface {
	Toggle(ctx context.Context, symbol, company, email string) usecase.ToggleResult
}

// Listener is told about every local membership change, optimistic or reverted.
type Listener func(symbol string, member bool)

// Phase is the lifecycle state of a ToggleControl.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseSettled
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePending:
		return "pending"
	case PhaseSettled:
		return "settled"
	default:
		return "unknown"
	}
}

// Event drives a ToggleControl from one Phase to the next.
type Event int

const (
	ToggleRequested Event = iota
	ToggleSucceeded
	ToggleFailed
)

// next is the control's transition table. ok is false for events the
// current phase does not accept.
func next(p Phase, ev Event) (Phase, bool) {
	switch {
	case ev == ToggleRequested && (p == PhaseIdle || p == PhaseSettled):
		return PhasePending, true
	case ev == ToggleSucceeded && p == PhasePending:
		return PhaseSettled, true
	case ev == ToggleFailed && p == PhasePending:
		return PhaseSettled, true
	default:
		return p, false
	}
}

// Button labels.
const (
	LabelAdd        = "Add to Watchlist"
	LabelRemove     = "Remove from Watchlist"
	LabelProcessing = "Processing..."
)

// ToggleControl is the optimistic add/remove control for one symbol.
// Membership flips locally before the server answers and reverts when the
// server reports failure.
type ToggleControl struct {
	symbol  string
	company string
	email   string
	toggler Toggler
	notify  Listener

	mu     sync.Mutex
	phase  Phase
	member bool
	target bool
}

// NewToggleControl creates a control in PhaseIdle. email may be empty, in
// which case the control is disabled. notify may be nil.
func NewToggleControl(symbol, company, email string, member bool, toggler Toggler, notify Listener) *ToggleControl {
	return &ToggleControl{
		symbol:  symbol,
		company: company,
		email:   email,
		toggler: toggler,
		notify:  notify,
		member:  member,
	}
}

// Activate runs one toggle round trip. It returns false without side effects
// when the control is pending or has no email; otherwise it returns true and
// the server's result.
func (c *ToggleControl) Activate(ctx context.Context) (bool, usecase.ToggleResult) {
	c.mu.Lock()
	if c.email == "" {
		c.mu.Unlock()
		slog.Warn("watchlist toggle ignored: no signed-in user", "symbol", c.symbol)
		return false, usecase.ToggleResult{}
	}
	phase, ok := next(c.phase, ToggleRequested)
	if !ok {
		c.mu.Unlock()
		return false, usecase.ToggleResult{}
	}
	previous := c.member
	c.phase = phase
	c.target = !previous
	c.member = c.target
	c.mu.Unlock()

	c.emit(!previous)

	res := c.toggler.Toggle(ctx, c.symbol, c.company, c.email)

	c.mu.Lock()
	if res.Success {
		c.phase, _ = next(c.phase, ToggleSucceeded)
		c.mu.Unlock()
		return true, res
	}
	c.phase, _ = next(c.phase, ToggleFailed)
	c.member = previous
	c.mu.Unlock()

	slog.Error("failed to toggle watchlist", "symbol", c.symbol, "error", res.Error)
	c.emit(previous)
	return true, res
}

func (c *ToggleControl) emit(member bool) {
	if c.notify != nil {
		c.notify(c.symbol, member)
	}
}

// Phase returns the current lifecycle phase.
func (c *ToggleControl) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Member reports the locally displayed membership.
func (c *ToggleControl) Member() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.member
}

// Target is the membership a pending toggle is heading to. It is only
// meaningful while Phase is PhasePending.
func (c *ToggleControl) Target() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Label is the button text.
func (c *ToggleControl) Label() string { return c.View().Label }

// Title is the accessible text of the icon variant, e.g. "Add AAPL to watchlist".
func (c *ToggleControl) Title() string { return c.View().Title }

// Disabled reports whether activation is currently ignored.
func (c *ToggleControl) Disabled() bool { return c.View().Disabled }

// View snapshots the control for rendering.
func (c *ToggleControl) View() ToggleView {
	c.mu.Lock()
	defer c.mu.Unlock()

	label := LabelAdd
	if c.member {
		label = LabelRemove
	}
	if c.phase == PhasePending {
		label = LabelProcessing
	}
	return ToggleView{
		Symbol:   c.symbol,
		Company:  c.company,
		Member:   c.member,
		Label:    label,
		Title:    title(c.symbol, c.member),
		Disabled: c.phase == PhasePending || c.email == "",
	}
}

func title(symbol string, member bool) string {
	if member {
		return "Remove " + symbol + " from watchlist"
	}
	return "Add " + symbol + " to watchlist"
}

// ToggleView is the render-ready state of a toggle control.
type ToggleView struct {
	Symbol   string
	Company  string
	Member   bool
	Label    string
	Title    string
	Disabled bool
}
