package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type TokenData struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
	IPAddress string    `json:"ip_address,omitempty"`
	UserAgent string    `json:"user_agent,omitempty"`
}

type TokenRepository struct {
	client *redis.Client
}

func NewTokenRepository(client *redis.Client) *TokenRepository {
	return &TokenRepository{
		client: client,
	}
}

// StoreToken records the active session under the user key and keeps a
// reverse lookup token -> user_id for quick validation.
func (r *TokenRepository) StoreToken(ctx context.Context, userID, token, ipAddress, userAgent string, ttl time.Duration) error {
	key := fmt.Sprintf("token:user:%s", userID)

	now := time.Now()
	data := TokenData{
		UserID:    userID,
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
		IPAddress: ipAddress,
		UserAgent: userAgent,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token in Redis: %w", err)
	}

	tokenKey := fmt.Sprintf("token:lookup:%s", token)
	if err := r.client.Set(ctx, tokenKey, userID, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token lookup: %w", err)
	}

	return nil
}

// ValidateToken checks if a token exists and returns the owning user id.
func (r *TokenRepository) ValidateToken(ctx context.Context, token string) (string, error) {
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	userID, err := r.client.Get(ctx, tokenKey).Result()
	if err != nil {
		if err == redis.Nil {
			return "", errors.New("token not found or expired")
		}
		return "", fmt.Errorf("failed to validate token: %w", err)
	}

	return userID, nil
}

// DeleteToken invalidates a session on logout or refresh.
func (r *TokenRepository) DeleteToken(ctx context.Context, userID, token string) error {
	key := fmt.Sprintf("token:user:%s", userID)
	tokenKey := fmt.Sprintf("token:lookup:%s", token)

	if err := r.client.Del(ctx, key, tokenKey).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
