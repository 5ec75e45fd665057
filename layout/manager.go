package layout

import (
	"context"
	"iter"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"crypto-dashboard/metrics"
	"crypto-dashboard/storage"
)

// StorageKey is the prefix of the key a user's layout is persisted under.
const StorageKey = "crypto-dashboard-layout"

// KeyFor returns the storage key holding a given user's layout.
func KeyFor(owner string) string {
	if owner == "" {
		return StorageKey
	}
	return StorageKey + ":" + owner
}

// Manager owns the in-memory layout for one session and mirrors every change
// to storage. The in-memory layout stays authoritative when a write fails.
type Manager struct {
	mu      sync.Mutex
	store   storage.KV
	key     string
	current Layout
	now     func() time.Time
	log     zerolog.Logger
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

// NewManager returns a manager holding the default layout. Call Load to pick
// up a persisted one.
func NewManager(store storage.KV, key string, opts ...Option) *Manager {
	m := &Manager{
		store: store,
		key:   key,
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.current = Default(m.now())
	return m
}

// Load replaces the in-memory layout with the persisted one. Missing,
// unreadable or malformed data leaves the default layout in place.
func (m *Manager) Load(ctx context.Context) Layout {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.current = m.read(ctx)
	return m.current
}

func (m *Manager) read(ctx context.Context) Layout {
	raw, ok, err := m.store.Get(ctx, m.key)
	if err != nil {
		m.log.Warn().Err(err).Str("key", m.key).Msg("failed to read dashboard layout, using default")
		metrics.RecordLayoutFallback("read_error")
		return Default(m.now())
	}
	if !ok {
		metrics.RecordLayoutFallback("absent")
		return Default(m.now())
	}
	l, err := Decode(raw)
	if err != nil {
		m.log.Warn().Err(err).Str("key", m.key).Msg("stored dashboard layout is malformed, using default")
		metrics.RecordLayoutFallback("malformed")
		return Default(m.now())
	}
	return l
}

// Layout returns the current layout.
func (m *Manager) Layout() Layout {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.current
}

// EnabledSections yields the enabled sections of the layout current at call time.
func (m *Manager) EnabledSections() iter.Seq[Section] {
	return m.Layout().EnabledSections()
}

func (m *Manager) Reorder(ctx context.Context, activeID, overID string) (Layout, bool) {
	return m.apply(ctx, "reorder", func(l Layout, now time.Time) (Layout, bool) {
		return Reorder(l, activeID, overID, now)
	})
}

func (m *Manager) ToggleVisibility(ctx context.Context, sectionID string) (Layout, bool) {
	return m.apply(ctx, "toggle", func(l Layout, now time.Time) (Layout, bool) {
		return ToggleVisibility(l, sectionID, now)
	})
}

func (m *Manager) Resize(ctx context.Context, sectionID string, size Size) (Layout, bool) {
	return m.apply(ctx, "resize", func(l Layout, now time.Time) (Layout, bool) {
		return Resize(l, sectionID, size, now)
	})
}

func (m *Manager) ResetToDefault(ctx context.Context) Layout {
	l, _ := m.apply(ctx, "reset", ResetToDefault)
	return l
}

func (m *Manager) ApplyPreset(ctx context.Context, name string) (Layout, bool) {
	return m.apply(ctx, "preset", func(l Layout, now time.Time) (Layout, bool) {
		return ApplyPreset(l, name, now)
	})
}

func (m *Manager) apply(ctx context.Context, op string, fn func(Layout, time.Time) (Layout, bool)) (Layout, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, changed := fn(m.current, m.now())
	metrics.RecordLayoutMutation(op, changed)
	if !changed {
		return m.current, false
	}
	m.current = next
	m.persist(ctx, op)
	return m.current, true
}

func (m *Manager) persist(ctx context.Context, op string) {
	raw, err := Encode(m.current)
	if err == nil {
		err = m.store.Set(ctx, m.key, raw, 0)
	}
	if err != nil {
		metrics.RecordLayoutPersistFailure()
		m.log.Error().Err(err).Str("key", m.key).Str("op", op).Msg("failed to save dashboard layout")
	}
}
