package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Publisher 메시지 발행 인터페이스
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) error
}

// RedisClient Redis 클라이언트 인터페이스
type RedisClient interface {
	Publisher
	Close() error
}

// redisClient Redis 클라이언트 구현체
type redisClient struct {
	client *redis.Client
}

// Options Redis 연결 설정
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// NewRedisClient Redis 클라이언트 생성. 연결 확인(PING)에 실패하면 에러를 반환합니다.
func NewRedisClient(ctx context.Context, opts Options) (RedisClient, error) {
	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}

	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: dialTimeout,
		MaxRetries:  1,
	})

	pingCtx, cancel := context.WithTimeout(ctx, dialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("Redis 연결 실패: %w", err)
	}

	return &redisClient{client: client}, nil
}

// Publish 메시지 발행. []byte와 string은 그대로, 나머지는 JSON으로 직렬화합니다.
func (r *redisClient) Publish(ctx context.Context, channel string, message interface{}) error {
	payload, err := encode(message)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, channel, payload).Err()
}

func encode(message interface{}) ([]byte, error) {
	switch m := message.(type) {
	case []byte:
		return m, nil
	case string:
		return []byte(m), nil
	}
	payload, err := json.Marshal(message)
	if err != nil {
		return nil, fmt.Errorf("메시지 직렬화 실패: %w", err)
	}
	return payload, nil
}

// Close Redis 클라이언트 종료
func (r *redisClient) Close() error {
	return r.client.Close()
}
