package services

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/brikvest/backend/internal/config"
	"github.com/brikvest/backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
)

// Session is the identity attached to an admin bearer token.
type Session struct {
	UserID    uint      `json:"user_id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionStore keeps admin sessions under opaque tokens with a TTL. The
// Redis-backed store survives restarts and is shared across instances; the
// in-memory store is the single-node fallback.
type SessionStore interface {
	// Create stores the session and returns its opaque token.
	Create(ctx context.Context, s *Session) (string, error)
	// Get returns the session for a token. Expired entries are evicted and
	// reported as ErrSessionExpired; unknown tokens as ErrSessionNotFound.
	Get(ctx context.Context, token string) (*Session, error)
	// Delete removes a session. Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) error
}

var (
	globalSessionStore SessionStore
	sessionStoreOnce   sync.Once
)

// InitSessionStore selects the session backend: Redis when enabled,
// otherwise a process-local store.
func InitSessionStore(cfg *config.Config) SessionStore {
	sessionStoreOnce.Do(func() {
		if cfg.Redis.Enabled {
			store, err := NewRedisSessionStore(&cfg.Redis)
			if err != nil {
				logger.Warnf("[Session] Redis unavailable, falling back to in-memory store: %v", err)
				globalSessionStore = NewMemorySessionStore()
			} else {
				logger.Infof("[Session] Redis session store initialized at %s", cfg.Redis.Addr)
				globalSessionStore = store
			}
		} else {
			logger.Infof("[Session] In-memory session store initialized (Redis disabled)")
			globalSessionStore = NewMemorySessionStore()
		}
	})
	return globalSessionStore
}

// GetSessionStore returns the global session store instance.
func GetSessionStore() SessionStore {
	return globalSessionStore
}

// --- In-memory store ---

// MemorySessionStore holds sessions in a mutex-guarded map. Sessions are
// lost on restart; expired entries are evicted lazily on lookup and by the
// periodic sweep.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]*Session)}
}

func (m *MemorySessionStore) Create(_ context.Context, s *Session) (string, error) {
	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	copied := *s
	m.sessions[token] = &copied
	return token, nil
}

func (m *MemorySessionStore) Get(_ context.Context, token string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[token]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrSessionNotFound
	}

	if time.Now().After(s.ExpiresAt) {
		m.mu.Lock()
		delete(m.sessions, token)
		m.mu.Unlock()
		return nil, ErrSessionExpired
	}

	copied := *s
	return &copied, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
	return nil
}

// Prune removes all expired sessions and returns how many were evicted.
func (m *MemorySessionStore) Prune() int {
	now := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for token, s := range m.sessions {
		if now.After(s.ExpiresAt) {
			delete(m.sessions, token)
			evicted++
		}
	}
	return evicted
}

// --- Redis store ---

const redisSessionPrefix = "brikvest:session:"

// RedisSessionStore persists sessions in Redis with a TTL matching the
// session expiry, so identity survives redeploys and is shared across
// instances.
type RedisSessionStore struct {
	client *redis.Client
}

func NewRedisSessionStore(cfg *config.RedisConfig) (*RedisSessionStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &RedisSessionStore{client: client}, nil
}

func (r *RedisSessionStore) Create(ctx context.Context, s *Session) (string, error) {
	token := uuid.NewString()

	data, err := json.Marshal(s)
	if err != nil {
		return "", err
	}

	ttl := time.Until(s.ExpiresAt)
	if ttl <= 0 {
		return "", ErrSessionExpired
	}

	if err := r.client.Set(ctx, redisSessionPrefix+token, data, ttl).Err(); err != nil {
		return "", err
	}
	return token, nil
}

func (r *RedisSessionStore) Get(ctx context.Context, token string) (*Session, error) {
	data, err := r.client.Get(ctx, redisSessionPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		// Redis expires entries itself, so a missing key covers both cases.
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	if time.Now().After(s.ExpiresAt) {
		r.client.Del(ctx, redisSessionPrefix+token)
		return nil, ErrSessionExpired
	}
	return &s, nil
}

func (r *RedisSessionStore) Delete(ctx context.Context, token string) error {
	return r.client.Del(ctx, redisSessionPrefix+token).Err()
}

// Close releases the Redis connection.
func (r *RedisSessionStore) Close() error {
	return r.client.Close()
}
