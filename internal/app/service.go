package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jaminalder/timetravel-tic-tac-toe/internal/domain"
)

// Errors exposed by the service layer.
var (
	ErrNotFound = errors.New("game not found")
)

// Session is one in-memory game.
type Session struct {
	ID      string
	State   domain.GameState
	Created time.Time
	Updated time.Time
}

// View derives the session's view state.
func (s Session) View() domain.View { return domain.DeriveView(s.State) }

type subscriber struct {
	ch        chan []byte
	closeOnce sync.Once
}

func (s *subscriber) close() { s.closeOnce.Do(func() { close(s.ch) }) }

// Service manages sessions and subscribers. Intents for all sessions are
// serialized under one lock, so each engine only ever sees one caller.
type Service struct {
	mu       sync.Mutex
	sessions map[string]*Session
	subs     map[string]map[*subscriber]struct{}
	render   func(Session) []byte
	log      *slog.Logger
	now      func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithRenderer sets the function that encodes broadcast payloads.
func WithRenderer(renderer func(Session) []byte) Option {
	return func(s *Service) {
		if renderer != nil {
			s.render = renderer
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.log = l.With("component", "app")
		}
	}
}

// NewService creates a service; without WithRenderer broadcasts carry no payload.
func NewService(opts ...Option) *Service {
	s := &Service{
		sessions: make(map[string]*Session),
		subs:     make(map[string]map[*subscriber]struct{}),
		render:   func(Session) []byte { return nil },
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetRenderer replaces the broadcast renderer function.
func (s *Service) SetRenderer(renderer func(Session) []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if renderer == nil {
		s.render = func(Session) []byte { return nil }
		return
	}
	s.render = renderer
}

// CreateSession starts a new game on a size×size board.
func (s *Service) CreateSession(size int) (*Session, error) {
	state, err := domain.NewState(size)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	sess := &Session{ID: uuid.NewString(), State: state, Created: now, Updated: now}
	s.sessions[sess.ID] = sess
	s.log.Info("session created", "session", sess.ID, "size", size)
	cp := *sess
	return &cp, nil
}

// Get returns a copy of the session if present.
func (s *Service) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	cp := *sess
	return &cp, true
}

// PlayCell applies a cell click to the session.
func (s *Service) PlayCell(id string, index int) (*Session, error) {
	return s.apply(id, "play", func(e *domain.Engine) error { return e.PlayCell(index) })
}

// JumpTo moves the session to a recorded move; move 0 restarts it.
func (s *Service) JumpTo(id string, move int) (*Session, error) {
	return s.apply(id, "jump", func(e *domain.Engine) error { return e.JumpTo(move) })
}

// ToggleSort flips the session's move list ordering.
func (s *Service) ToggleSort(id string) (*Session, error) {
	return s.apply(id, "sort", func(e *domain.Engine) error {
		e.ToggleSort()
		return nil
	})
}

// apply runs one intent under the lock and fans the rendered session out to
// subscribers. Sends never block; a full subscriber is dropped.
func (s *Service) apply(id, intent string, fn func(*domain.Engine) error) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	engine := domain.FromState(sess.State)
	if err := fn(engine); err != nil {
		s.log.Debug("intent rejected", "session", id, "intent", intent, "error", err)
		cp := *sess
		return &cp, err
	}
	sess.State = engine.State()
	sess.Updated = s.now()
	cp := *sess

	s.log.Debug("intent applied", "session", id, "intent", intent, "step", cp.State.CurrentStep, "moves", len(cp.State.History)-1)

	set := s.subs[id]
	if len(set) == 0 {
		return &cp, nil
	}
	payload := s.render(cp)
	dropped := 0
	for sub := range set {
		select {
		case sub.ch <- payload:
		default:
			// drop slow subscriber
			delete(set, sub)
			sub.close()
			dropped++
		}
	}
	if dropped > 0 {
		s.log.Debug("dropped slow subscribers", "session", id, "count", dropped)
	}
	return &cp, nil
}

// Subscribe registers a subscriber for a session. Returns a channel and an
// unsubscribe func; the subscription also ends when ctx is done.
func (s *Service) Subscribe(ctx context.Context, id string) (<-chan []byte, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return nil, nil, ErrNotFound
	}
	set := s.subs[id]
	if set == nil {
		set = make(map[*subscriber]struct{})
		s.subs[id] = set
	}
	sub := &subscriber{ch: make(chan []byte, 1)}
	set[sub] = struct{}{}

	unsubOnce := &sync.Once{}
	unsub := func() {
		unsubOnce.Do(func() {
			s.mu.Lock()
			if set, ok := s.subs[id]; ok {
				delete(set, sub)
			}
			s.mu.Unlock()
			sub.close()
		})
	}
	go func() {
		<-ctx.Done()
		unsub()
	}()
	return sub.ch, unsub, nil
}
