package pagination

import "math"

const (
	// DefaultPerPage is both the default and the minimum page size.
	DefaultPerPage = 10
	// MaxPerPage caps how many items any window can request.
	MaxPerPage = 50

	// StatusComplete marks the final page of a polled search.
	StatusComplete = "complete"
	// StatusInProgress marks a non-final page of a polled search.
	StatusInProgress = "in-progress"
)

// Params holds the window inputs supplied by a polling client.
type Params struct {
	Page         int
	PerPage      int
	CurrentCount int
}

// Normalize applies the window defaults. PerPage above MaxPerPage is
// a client error and is reported, not clamped.
func (p Params) Normalize() (Params, bool) {
	if p.PerPage > MaxPerPage {
		return p, false
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < DefaultPerPage {
		p.PerPage = DefaultPerPage
	}
	if p.CurrentCount < 0 {
		p.CurrentCount = 0
	}
	return p, true
}

// Window is one page of a full result list held by the server. The
// client polls successive pages as a pseudo-stream of one search.
type Window struct {
	Page         int
	PerPage      int
	CurrentCount int
	TotalCount   int
	TotalPages   int
	Status       string

	lower int
	upper int
}

// NewWindow computes the window for normalized params over a result
// list of totalCount items.
func NewWindow(p Params, totalCount int) Window {
	w := Window{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalCount: totalCount,
		TotalPages: int(math.Ceil(float64(totalCount) / float64(p.PerPage))),
	}

	w.CurrentCount = p.Page * p.PerPage
	if w.CurrentCount > totalCount {
		w.CurrentCount = totalCount
	}

	if p.Page == w.TotalPages {
		w.Status = StatusComplete
	} else {
		w.Status = StatusInProgress
	}

	w.lower = p.CurrentCount
	w.upper = w.lower + p.PerPage
	if w.upper > totalCount {
		w.upper = totalCount
	}
	if w.lower > totalCount {
		w.lower = totalCount
	}
	return w
}

// Beyond reports whether the requested page lies past the last page.
// The endpoints disagree on how to surface this, so the decision is
// left to the caller.
func (w Window) Beyond() bool {
	return w.Page > w.TotalPages
}

// Bounds returns the clamped slice bounds of this window.
func (w Window) Bounds() (lower, upper int) {
	return w.lower, w.upper
}
