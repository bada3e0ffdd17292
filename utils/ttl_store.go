package utils

import (
	"context"
	"net"
	"strconv"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/blogfolio/blogfolio/config"
)

const redisOpTimeout = 2 * time.Second

var (
	redisCli  *redis.Client
	redisInit sync.Once
)

// sharedRedis lazily builds the process-wide Redis client. It returns nil
// when no Redis host is configured, which switches every ttlStore to its
// in-memory fallback.
func sharedRedis() *redis.Client {
	redisInit.Do(func() {
		cfg := config.Get()
		if cfg.RedisHost == "" {
			return
		}
		redisCli = redis.NewClient(&redis.Options{
			Addr:         net.JoinHostPort(cfg.RedisHost, strconv.Itoa(cfg.RedisPort)),
			Password:     cfg.RedisPassword,
			DB:           cfg.RedisDB,
			DialTimeout:  3 * time.Second,
			ReadTimeout:  redisOpTimeout,
			WriteTimeout: redisOpTimeout,
		})
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		_ = redisCli.Ping(ctx).Err()
	})
	return redisCli
}

// ttlStore is a set of keys that expire. Redis backs it when configured so
// revocations and OAuth states survive restarts and are shared between
// instances; otherwise a mutex-guarded map serves a single process.
type ttlStore struct {
	prefix string

	mu      sync.Mutex
	entries map[string]time.Time
}

func newTTLStore(prefix string) *ttlStore {
	return &ttlStore{prefix: prefix, entries: map[string]time.Time{}}
}

func (s *ttlStore) put(key string, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	if rc := sharedRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		_ = rc.Set(ctx, s.prefix+key, "1", ttl).Err()
		return
	}
	s.mu.Lock()
	s.entries[key] = time.Now().Add(ttl)
	s.mu.Unlock()
}

// has reports whether the key is present and unexpired. A Redis error reads
// as absent, so a broken Redis cannot lock every caller out.
func (s *ttlStore) has(key string) bool {
	if rc := sharedRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		n, err := rc.Exists(ctx, s.prefix+key).Result()
		return err == nil && n > 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	deadline, ok := s.entries[key]
	if !ok {
		return false
	}
	if time.Now().After(deadline) {
		delete(s.entries, key)
		return false
	}
	return true
}

// take removes the key and reports whether it was present, enforcing
// single use.
func (s *ttlStore) take(key string) bool {
	if rc := sharedRedis(); rc != nil {
		ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
		defer cancel()
		v, err := rc.GetDel(ctx, s.prefix+key).Result()
		return err == nil && v != ""
	}
	s.mu.Lock()
	deadline, ok := s.entries[key]
	delete(s.entries, key)
	s.mu.Unlock()
	return ok && time.Now().Before(deadline)
}

var (
	revokedTokens = newTTLStore("jwt:blacklist:")
	oauthStates   = newTTLStore("oauth:state:")
)

// BlacklistToken revokes a JWT until its natural expiry, backing logout.
func BlacklistToken(token string, expiresAt time.Time) {
	revokedTokens.put(token, time.Until(expiresAt))
}

// IsTokenBlacklisted reports whether the token was revoked before expiry.
func IsTokenBlacklisted(token string) bool {
	return revokedTokens.has(token)
}

// SaveState stores a single-use OAuth state token to mitigate CSRF.
func SaveState(state string, ttl time.Duration) {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	oauthStates.put(state, ttl)
}

// ConsumeState validates and removes a state token.
func ConsumeState(state string) bool {
	return oauthStates.take(state)
}
