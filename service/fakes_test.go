package service

import (
	"context"
	"errors"
	"sync"
	"time"

	dmn "github.com/beka-birhanu/penguin-maze/domain"
	"github.com/google/uuid"
)

type memLevelStore struct {
	levels  map[uuid.UUID]int
	saveErr error
	readErr error
	sync.Mutex
}

func newMemLevelStore() *memLevelStore {
	return &memLevelStore{levels: make(map[uuid.UUID]int)}
}

func (m *memLevelStore) Level(_ context.Context, id uuid.UUID) (int, bool, error) {
	m.Lock()
	defer m.Unlock()
	if m.readErr != nil {
		return 0, false, m.readErr
	}
	level, ok := m.levels[id]
	return level, ok, nil
}

func (m *memLevelStore) SaveLevel(_ context.Context, id uuid.UUID, level int) error {
	m.Lock()
	defer m.Unlock()
	if m.saveErr != nil {
		return m.saveErr
	}
	m.levels[id] = level
	return nil
}

type recordingLogger struct {
	infos, warnings, errors []string
	sync.Mutex
}

func (l *recordingLogger) Info(s string) {
	l.Lock()
	defer l.Unlock()
	l.infos = append(l.infos, s)
}

func (l *recordingLogger) Warning(s string) {
	l.Lock()
	defer l.Unlock()
	l.warnings = append(l.warnings, s)
}

func (l *recordingLogger) Error(s string) {
	l.Lock()
	defer l.Unlock()
	l.errors = append(l.errors, s)
}

type memPlayerRepo struct {
	players map[uuid.UUID]*dmn.Player
}

func newMemPlayerRepo() *memPlayerRepo {
	return &memPlayerRepo{players: make(map[uuid.UUID]*dmn.Player)}
}

func (r *memPlayerRepo) Save(_ context.Context, p *dmn.Player) error {
	for _, existing := range r.players {
		if existing.Username == p.Username && existing.ID != p.ID {
			return dmn.ErrUsernameTaken
		}
	}
	r.players[p.ID] = p
	return nil
}

func (r *memPlayerRepo) ByID(_ context.Context, id uuid.UUID) (*dmn.Player, error) {
	if p, ok := r.players[id]; ok {
		return p, nil
	}
	return nil, errors.New("player not found")
}

func (r *memPlayerRepo) ByUsername(_ context.Context, username string) (*dmn.Player, error) {
	for _, p := range r.players {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, errors.New("player not found")
}

type stubTokenizer struct {
	lastClaims map[string]interface{}
	lastTTL    time.Duration
}

func (s *stubTokenizer) Generate(claims map[string]interface{}, ttl time.Duration) (string, error) {
	s.lastClaims = claims
	s.lastTTL = ttl
	return "token", nil
}

func (s *stubTokenizer) Decode(string) (map[string]interface{}, error) {
	return s.lastClaims, nil
}
