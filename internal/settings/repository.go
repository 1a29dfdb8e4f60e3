package settings

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/charmbracelet/log"
)

// Repository owns the current settings, persists every change and fans
// changes out to subscribers.
type Repository struct {
	backend  Backend
	logger   *log.Logger
	defaults Settings

	// mu serializes updates; the last committed update wins.
	mu      sync.Mutex
	current Settings

	subsMu sync.Mutex
	subs   map[int]chan Settings
	nextID int
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the repository logger.
func WithLogger(logger *log.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithDefaults replaces the factory defaults used when nothing usable is
// stored.
func WithDefaults(s Settings) Option {
	return func(r *Repository) { r.defaults = s.Clone() }
}

// Open loads settings from backend. A missing, empty or corrupt record is
// replaced by the defaults without error.
func Open(ctx context.Context, backend Backend, opts ...Option) *Repository {
	r := &Repository{
		backend:  backend,
		logger:   log.New(io.Discard),
		defaults: Defaults(""),
		subs:     make(map[int]chan Settings),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.current = r.load(ctx)
	return r
}

func (r *Repository) load(ctx context.Context) Settings {
	data, err := r.backend.Load(ctx)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("no stored settings, using defaults")
		} else {
			r.logger.Warn("cannot load settings, using defaults", "error", err)
		}
		return r.defaults.Clone()
	}

	s, err := Decode(data)
	if err != nil {
		r.logger.Warn("stored settings unreadable, using defaults", "error", err)
		return r.defaults.Clone()
	}
	return Complete(s, r.defaults)
}

// Current returns the current settings.
func (r *Repository) Current() Settings {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current.Clone()
}

// Defaults returns the factory defaults of this repository.
func (r *Repository) Defaults() Settings {
	return r.defaults.Clone()
}

// Update applies fn to a copy of the current settings, persists the result
// and publishes it. Nothing is committed if persisting fails.
func (r *Repository) Update(ctx context.Context, fn func(Settings) Settings) (Settings, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := fn(r.current.Clone())
	data, err := Encode(next)
	if err != nil {
		return r.current.Clone(), err
	}
	if err := r.backend.Save(ctx, data); err != nil {
		return r.current.Clone(), fmt.Errorf("settings: cannot persist: %w", err)
	}

	r.current = next
	r.publish(next)
	return next.Clone(), nil
}

// Subscribe returns a channel that first receives the current settings and
// then every committed change. A subscriber that falls behind only sees the
// latest value. The channel is closed when ctx is done.
func (r *Repository) Subscribe(ctx context.Context) <-chan Settings {
	ch := make(chan Settings, 1)

	r.mu.Lock()
	ch <- r.current.Clone()
	r.subsMu.Lock()
	id := r.nextID
	r.nextID++
	r.subs[id] = ch
	r.subsMu.Unlock()
	r.mu.Unlock()

	go func() {
		<-ctx.Done()
		r.subsMu.Lock()
		delete(r.subs, id)
		close(ch)
		r.subsMu.Unlock()
	}()
	return ch
}

// Tools returns the tool settings stream, skipping values equal to the
// previous one.
func (r *Repository) Tools(ctx context.Context) <-chan ToolSettings {
	in := r.Subscribe(ctx)
	out := make(chan ToolSettings, 1)

	go func() {
		defer close(out)
		var last ToolSettings
		first := true
		for s := range in {
			if !first && s.Tools == last {
				continue
			}
			first = false
			last = s.Tools
			select {
			case out <- s.Tools:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

// publish must be called with r.mu held.
func (r *Repository) publish(s Settings) {
	r.subsMu.Lock()
	defer r.subsMu.Unlock()

	for _, ch := range r.subs {
		v := s.Clone()
		select {
		case ch <- v:
			continue
		default:
		}
		// Drop the stale value so the newest one fits.
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- v:
		default:
		}
	}
}
