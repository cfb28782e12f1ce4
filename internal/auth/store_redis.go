// Copyright (c) 2026 Staffdir. All rights reserved.
// Author: n.wieland@mailbox.org

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nwieland/staffdir/internal/platform/apperr"
	"github.com/nwieland/staffdir/internal/platform/constants"
)

const (
	sessionKeyPrefix     = constants.RedisPrefixSession
	sessionUserKeyPrefix = constants.RedisPrefixSessionUser
	resetTokenKeyPrefix  = constants.RedisPrefixResetToken
)

// RedisSessionRepository implements [SessionRepository] on Redis.
//
// # Layout
//
//   - auth:session:<tokenHash>       → JSON session document, TTL = expiry
//   - auth:session_user:<userID>     → SET of token hashes, for RevokeAll
//
// Expired sessions vanish with their TTL; RevokeAll also cleans stale set
// members it encounters.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	key := sessionKeyPrefix + session.TokenHash
	userKey := sessionUserKeyPrefix + session.UserID

	pipe := repository.client.TxPipeline()
	pipe.Set(context, key, payload, ttl)
	pipe.SAdd(context, userKey, session.TokenHash)
	// The member set lives as long as the longest session could.
	pipe.Expire(context, userKey, ttl)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKeyPrefix+tokenHash).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}
	session.TokenHash = tokenHash
	return session, nil
}

func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	session, err := repository.FindByTokenHash(context, tokenHash)
	if err != nil {
		// Already gone: revocation is idempotent.
		return nil
	}

	pipe := repository.client.TxPipeline()
	pipe.Del(context, sessionKeyPrefix+tokenHash)
	pipe.SRem(context, sessionUserKeyPrefix+session.UserID, tokenHash)
	if _, err := pipe.Exec(context); err != nil {
		return fmt.Errorf("redis_session_revoke_failed: %w", err)
	}
	return nil
}

func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	userKey := sessionUserKeyPrefix + userID

	tokenHashes, err := repository.client.SMembers(context, userKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}
	if len(tokenHashes) == 0 {
		return nil
	}

	keys := make([]string, 0, len(tokenHashes)+1)
	for _, hash := range tokenHashes {
		keys = append(keys, sessionKeyPrefix+hash)
	}
	keys = append(keys, userKey)

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}
	return nil
}

// RedisResetTokenRepository implements [ResetTokenRepository] using Redis.
type RedisResetTokenRepository struct {
	client *redis.Client
}

// NewResetTokenRepository creates a new Redis-backed ResetTokenRepository.
func NewResetTokenRepository(client *redis.Client) *RedisResetTokenRepository {
	return &RedisResetTokenRepository{client: client}
}

func (repository *RedisResetTokenRepository) Set(context context.Context, token string, userID string, ttl time.Duration) error {
	if err := repository.client.Set(context, resetTokenKeyPrefix+token, userID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_set_failed: %w", err)
	}
	return nil
}

func (repository *RedisResetTokenRepository) Get(context context.Context, token string) (string, error) {
	userID, err := repository.client.Get(context, resetTokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", apperr.NotFound("Reset token")
		}
		return "", fmt.Errorf("redis_reset_token_get_failed: %w", err)
	}
	return userID, nil
}

func (repository *RedisResetTokenRepository) Delete(context context.Context, token string) error {
	if err := repository.client.Del(context, resetTokenKeyPrefix+token).Err(); err != nil {
		return fmt.Errorf("redis_reset_token_delete_failed: %w", err)
	}
	return nil
}
