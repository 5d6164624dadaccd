// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/newsgate/internal/platform/constants"
)

// RedisAttemptRepository implements [AttemptRepository] with one counter key per login.
type RedisAttemptRepository struct {
	client *redis.Client
}

// NewAttemptRepository creates a new Redis-backed AttemptRepository.
func NewAttemptRepository(client *redis.Client) *RedisAttemptRepository {
	return &RedisAttemptRepository{client: client}
}

func attemptKey(login string) string {
	return constants.RedisPrefixSignInAttempts + login
}

/*
Count returns the failures recorded for login.

Parameters:
  - context: context.Context
  - login: string

Returns:
  - int64: Failure count (zero when the key is absent or expired)
  - error: Execution errors
*/
func (repository *RedisAttemptRepository) Count(context context.Context, login string) (int64, error) {
	count, err := repository.client.Get(context, attemptKey(login)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis_attempt_count_failed: %w", err)
	}

	return count, nil
}

/*
Increment bumps the counter and starts the expiry window on the first failure.

Description: INCR and EXPIRE NX run in one MULTI block so a counter can never
be left without a TTL.

Parameters:
  - context: context.Context
  - login: string
  - window: time.Duration

Returns:
  - int64: Count after the increment
  - error: Execution errors
*/
func (repository *RedisAttemptRepository) Increment(context context.Context, login string, window time.Duration) (int64, error) {
	key := attemptKey(login)

	var incr *redis.IntCmd
	_, err := repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		incr = pipe.Incr(context, key)
		pipe.ExpireNX(context, key, window)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("redis_attempt_increment_failed: %w", err)
	}

	return incr.Val(), nil
}

/*
Reset removes the counter of login.

Parameters:
  - context: context.Context
  - login: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisAttemptRepository) Reset(context context.Context, login string) error {
	if err := repository.client.Del(context, attemptKey(login)).Err(); err != nil {
		return fmt.Errorf("redis_attempt_reset_failed: %w", err)
	}
	return nil
}
