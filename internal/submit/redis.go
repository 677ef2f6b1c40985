package submit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultLockTTL = 30 * time.Second

// RedisGuard holds in-flight keys in redis so that several instances of the
// service share them. A key expires after ttl even if release is never
// called.
type RedisGuard struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
	log    *zap.Logger
}

// only the holder of the token may delete the lock
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`)

func NewRedisGuard(rdb *redis.Client, ttl time.Duration, prefix string, log *zap.Logger) *RedisGuard {
	if ttl <= 0 {
		ttl = DefaultLockTTL
	}
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "submit"
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &RedisGuard{rdb: rdb, ttl: ttl, prefix: prefix, log: log}
}

func (g *RedisGuard) Acquire(ctx context.Context, key string) (func(), error) {
	lockKey := g.prefix + ":" + key
	token := uuid.NewString()

	ok, err := g.rdb.SetNX(ctx, lockKey, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire submit lock: %w", err)
	}
	if !ok {
		return nil, ErrInFlight
	}

	return func() {
		// the request context may already be done here
		rctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(rctx, g.rdb, []string{lockKey}, token).Err(); err != nil {
			g.log.Warn("release submit lock",
				zap.String("key", lockKey),
				zap.Error(err),
			)
		}
	}, nil
}
