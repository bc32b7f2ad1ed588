package redis

import (
	"context"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Locker 短时互斥锁，ok 为 false 表示锁已被他人持有
type Locker interface {
	Lock(ctx context.Context, key string, ttl time.Duration) (unlock func(), ok bool, err error)
}

// 仅当值匹配时删除，避免释放他人在过期后重新获得的锁
var unlockScript = goredis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

type RedisLocker struct {
	client goredis.UniversalClient
}

func NewLocker(client goredis.UniversalClient) *RedisLocker {
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Lock(ctx context.Context, key string, ttl time.Duration) (func(), bool, error) {
	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl).Result()
	if err != nil || !ok {
		return func() {}, ok, err
	}
	return func() {
		// 请求可能已取消，释放锁使用独立的 context
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = unlockScript.Run(ctx, l.client, []string{key}, token).Err()
	}, true, nil
}

// NopLocker 未配置 Redis 时使用，总是成功
type NopLocker struct{}

func (NopLocker) Lock(context.Context, string, time.Duration) (func(), bool, error) {
	return func() {}, true, nil
}
