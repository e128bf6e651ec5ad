package randomizer

import (
	apperrors "github.com/louisbranch/sagashuffle/internal/platform/errors"
	"github.com/louisbranch/sagashuffle/internal/platform/i18n/catalog"
)

// State is the outcome of one pass.
type State int

const (
	StateApplied State = iota
	StateSkipped
	StateFailed
)

// String returns the state name used in logs and the spoiler log.
func (s State) String() string {
	switch s {
	case StateApplied:
		return "applied"
	case StateSkipped:
		return "skipped"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ParseState is the inverse of State.String.
func ParseState(name string) (State, bool) {
	for _, s := range []State{StateApplied, StateSkipped, StateFailed} {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}

// PassStatus records what one pass did.
type PassStatus struct {
	Name   string
	State  State
	Detail string
	Err    error
}

// Report collects the status of every pass of a Run.
type Report struct {
	Seed   int32
	Passes []PassStatus
}

// Applied returns how many passes changed data.
func (r Report) Applied() int {
	n := 0
	for _, p := range r.Passes {
		if p.State == StateApplied {
			n++
		}
	}
	return n
}

// Failed returns the failed passes in run order.
func (r Report) Failed() []PassStatus {
	var out []PassStatus
	for _, p := range r.Passes {
		if p.State == StateFailed {
			out = append(out, p)
		}
	}
	return out
}

// Pass returns the status recorded for name.
func (r Report) Pass(name string) (PassStatus, bool) {
	for _, p := range r.Passes {
		if p.Name == name {
			return p, true
		}
	}
	return PassStatus{}, false
}

// Summary renders the one-line outcome in locale.
func (r Report) Summary(locale string) string {
	return catalog.Printer(locale).Sprintf("report.summary", r.Seed, r.Applied(), len(r.Passes))
}

// Status renders one line per pass in locale. Failed passes show the
// localized error and other passes their detail.
func (r Report) Status(locale string) []string {
	printer := catalog.Printer(locale)
	bundle := catalog.Default()
	lines := make([]string, 0, len(r.Passes))
	for _, p := range r.Passes {
		label, ok := bundle.Message(locale, "report.pass."+p.Name)
		if !ok {
			label = p.Name
		}
		state, _ := bundle.Message(locale, "report.state."+p.State.String())
		line := printer.Sprintf("report.line", label, state)
		switch {
		case p.Err != nil:
			line += " (" + apperrors.Localize(p.Err, locale) + ")"
		case p.Detail != "":
			line += " (" + p.Detail + ")"
		}
		lines = append(lines, line)
	}
	return lines
}
