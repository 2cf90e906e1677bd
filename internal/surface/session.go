package surface

import (
	"context"
	"errors"
	"image"
	"sync"
)

var (
	errNoPhase     = errors.New("no phase is open")
	errLimit       = errors.New("phase click limit reached")
	errPhaseActive = errors.New("a phase is already open")
)

// session records the clicks of the phase currently open on a surface.
// Toolkit goroutines record clicks while the flow waits in collect.
type session struct {
	mu     sync.Mutex
	req    Request
	open   bool
	clicks []image.Point
	marks  []Mark
	done   chan struct{}
}

func newSession() *session {
	return &session{}
}

func (s *session) begin(req Request) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.open {
		return nil, errPhaseActive
	}
	s.req = req
	s.open = true
	s.clicks = nil
	s.marks = nil
	s.done = make(chan struct{})
	return s.done, nil
}

// record appends a click to the open phase and returns its mark
func (s *session) record(p image.Point) (Mark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return Mark{}, errNoPhase
	}
	if s.req.Limit > 0 && len(s.clicks) >= s.req.Limit {
		return Mark{}, errLimit
	}

	s.clicks = append(s.clicks, p)
	m := Mark{Phase: s.req.Phase, X: p.X, Y: p.Y}
	if s.req.Mark != nil {
		// called under the lock so echoes keep click order
		m.Label = s.req.Mark(len(s.clicks), p)
	}
	s.marks = append(s.marks, m)
	return m, nil
}

// close ends the open phase; closing twice is a no-op
func (s *session) close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.open {
		return false
	}
	s.open = false
	close(s.done)
	return true
}

func (s *session) isOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.open
}

func (s *session) result() []image.Point {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]image.Point(nil), s.clicks...)
}

func (s *session) state() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	return State{
		Phase:    s.req.Phase.String(),
		Title:    s.req.Title,
		Open:     s.open,
		Limit:    s.req.Limit,
		Count:    len(s.clicks),
		ZeroLine: s.req.ZeroLine,
		Marks:    append([]Mark{}, s.marks...),
	}
}

// collect opens a phase and blocks until it is closed or ctx ends
func (s *session) collect(ctx context.Context, req Request) ([]image.Point, error) {
	done, err := s.begin(req)
	if err != nil {
		return nil, err
	}

	select {
	case <-done:
		return s.result(), nil
	case <-ctx.Done():
		s.close()
		return s.result(), ctx.Err()
	}
}
