// Package session renders a sequence of time steps: one render per step, in
// order, sharing a single resize state.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/san-kum/streams3d/internal/config"
	"github.com/san-kum/streams3d/internal/logging"
	"github.com/san-kum/streams3d/internal/resize"
	"github.com/san-kum/streams3d/internal/scene"
)

// StampFunc labels a time step for the scene title.
type StampFunc func(step int) (string, error)

type Options struct {
	Steps  []int
	Loader Loader
	Stamp  StampFunc
}

type plan struct {
	cfg  *config.RenderConfig
	opts Options
}

func newPlan(cfg *config.RenderConfig, opts Options) (*plan, error) {
	if opts.Loader == nil {
		return nil, errors.New("session: nil loader")
	}
	if len(opts.Steps) == 0 {
		return nil, errors.New("session: no time steps")
	}
	for _, step := range opts.Steps {
		if step < 0 {
			return nil, fmt.Errorf("session: negative time step %d", step)
		}
	}
	if _, err := scene.NewBuilder(cfg); err != nil {
		return nil, err
	}
	o := opts
	o.Steps = append([]int(nil), opts.Steps...)
	return &plan{cfg: cfg.Clone(), opts: o}, nil
}

// render builds render index r, which shows time step Steps[r].
func (p *plan) render(r int, st *resize.State) (*scene.Scene, error) {
	step := p.opts.Steps[r]
	in, err := p.opts.Loader.Load(step)
	if err != nil {
		return nil, fmt.Errorf("load step %d: %w", step, err)
	}

	cfg := p.cfg.Clone()
	cfg.TimeStep = step
	var opts []scene.Option
	if p.opts.Stamp != nil {
		stamp, err := p.opts.Stamp(step)
		if err != nil {
			return nil, err
		}
		opts = append(opts, scene.WithStamp(stamp))
	}
	b, err := scene.NewBuilder(cfg, opts...)
	if err != nil {
		return nil, err
	}

	sc, err := b.Build(in, r, st)
	if err != nil {
		return nil, fmt.Errorf("render %d (step %d): %w", r, step, err)
	}
	if len(sc.Skipped) > 0 {
		logging.Warnf("step %d: skipped %d streams outside the %s domain: %v", step, len(sc.Skipped), sc.DataScale, sc.Skipped)
	}
	logging.Debugf("render %d step %d: %d entries, multipliers %.4g/%.4g",
		r, step, len(sc.Entries), sc.Multipliers.Active, sc.Multipliers.Background)
	return sc, nil
}

// Session renders the configured steps one after another. It is not safe for
// concurrent use.
type Session struct {
	*plan
	state *resize.State
	next  int
}

func New(cfg *config.RenderConfig, opts Options) (*Session, error) {
	p, err := newPlan(cfg, opts)
	if err != nil {
		return nil, err
	}
	return &Session{plan: p, state: resize.NewState()}, nil
}

// Len returns the number of renders in the session.
func (s *Session) Len() int { return len(s.opts.Steps) }

// Done reports whether every render has been built.
func (s *Session) Done() bool { return s.next >= s.Len() }

// Next builds the next render. A failed render can be retried; it does not
// advance the session.
func (s *Session) Next() (*scene.Scene, error) {
	if s.Done() {
		return nil, errors.New("session: no renders left")
	}
	sc, err := s.render(s.next, s.state)
	if err != nil {
		return nil, err
	}
	s.next++
	return sc, nil
}

// All builds the remaining renders, stopping at the first error or when ctx
// is done.
func (s *Session) All(ctx context.Context) ([]*scene.Scene, error) {
	defer logging.TimeTrack(time.Now(), "session")
	out := make([]*scene.Scene, 0, s.Len()-s.next)
	for !s.Done() {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		sc, err := s.Next()
		if err != nil {
			return out, err
		}
		out = append(out, sc)
	}
	return out, nil
}

// Reset starts the session over with a fresh resize state.
func (s *Session) Reset() {
	s.state.Reset()
	s.next = 0
}

// Batch builds every render concurrently, each with its own resize state.
// Because the resize counter depends only on the render index, the result
// matches a sequential Session.
func Batch(ctx context.Context, cfg *config.RenderConfig, opts Options, workers int) ([]*scene.Scene, error) {
	p, err := newPlan(cfg, opts)
	if err != nil {
		return nil, err
	}
	defer logging.TimeTrack(time.Now(), "batch")

	out := make([]*scene.Scene, len(p.opts.Steps))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for r := range out {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			sc, err := p.render(r, resize.NewState())
			if err != nil {
				return err
			}
			out[r] = sc
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// ForEach calls fn for every scene with at most workers calls in flight. It
// returns the first error.
func ForEach(ctx context.Context, scenes []*scene.Scene, workers int, fn func(context.Context, *scene.Scene) error) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, workers))
	for _, sc := range scenes {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return fn(ctx, sc)
		})
	}
	return g.Wait()
}
