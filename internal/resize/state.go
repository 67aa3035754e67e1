package resize

import "github.com/san-kum/streams3d/internal/streams"

// State holds per-role resize counters for one render session.
type State struct {
	roles [len(streams.Roles)]counter
}

type counter struct {
	last    int // last render index seen
	renders int // renders since the last resize
	steps   int
}

func NewState() *State { return &State{} }

// Steps returns the number of completed resize intervals for role.
func (s *State) Steps(role streams.Role) int { return s.counter(role).steps }

// Reset returns every role to its initial counters.
func (s *State) Reset() { *s = State{} }

func (s *State) counter(role streams.Role) *counter {
	return &s.roles[role]
}

// advance moves the counter to renderIndex. Renders elapsed since the last
// index seen count toward the interval; the first call counts from index 0.
// An index at or before the last one seen leaves the counter unchanged.
func (c *counter) advance(renderIndex, every int) {
	if renderIndex <= c.last {
		return
	}
	c.renders += renderIndex - c.last
	c.last = renderIndex
	c.steps += c.renders / every
	c.renders %= every
}
