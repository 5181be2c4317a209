package lock

import (
	"context"
	"time"

	"salesnote/internal/config"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	redisKeyPrefix = "salesnote:lock:client:"
	redisRetry     = 50 * time.Millisecond
)

// 自分のトークンのときだけ消す
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

// 複数インスタンス間の顧客ごとの排他
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Redis{client: client, ttl: ttl}
}

// 取れるまで待つ。ctxが切れたら諦める
func (l *Redis) Lock(ctx context.Context, key string) (func(), error) {
	k := redisKeyPrefix + key
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, k, token, l.ttl).Result()
		if err != nil {
			return nil, errors.Wrapf(err, "redis lock %s", k)
		}
		if ok {
			return func() { l.unlock(k, token) }, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(redisRetry):
		}
	}
}

func (l *Redis) unlock(key, token string) {
	//呼び出し元のctxがキャンセル済みでも解放する
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := releaseScript.Run(ctx, l.client, []string{key}, token).Err(); err != nil && err != redis.Nil {
		log.Warn().Err(err).Str("key", key).Msg("redis unlock failed")
	}
}
