// File: guildroster/utils/auth_session.go
package utils

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

const AdminSessionPrefix = "adminSession:"

// AdminSessionTTL bounds how long an admin token stays usable. Deleting the
// session revokes the token before its JWT expiry.
const AdminSessionTTL = 2 * time.Hour

// AdminSession tracks one issued admin token, keyed by its JWT ID.
type AdminSession struct {
	TokenID   string    `json:"tokenId"`
	IssuedTo  string    `json:"issuedTo"`
	IP        string    `json:"ip"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveAdminSession stores an admin session in Redis with a TTL.
func SaveAdminSession(client *redis.Client, session AdminSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal admin session: %w", err)
	}
	ctx := context.Background()
	if err := client.Set(ctx, AdminSessionPrefix+session.TokenID, data, AdminSessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to save admin session: %w", err)
	}
	return nil
}

// GetAdminSession retrieves an admin session from Redis. A redis.Nil error
// means the token was revoked or expired.
func GetAdminSession(client *redis.Client, tokenID string) (*AdminSession, error) {
	ctx := context.Background()
	data, err := client.Get(ctx, AdminSessionPrefix+tokenID).Result()
	if err != nil {
		return nil, err
	}
	var session AdminSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal admin session: %w", err)
	}
	return &session, nil
}

// DeleteAdminSession revokes an issued admin token.
func DeleteAdminSession(client *redis.Client, tokenID string) error {
	ctx := context.Background()
	return client.Del(ctx, AdminSessionPrefix+tokenID).Err()
}
