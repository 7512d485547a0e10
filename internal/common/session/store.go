// internal/common/session/store.go
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"solar-crm-client/internal/common/config"
	"solar-crm-client/internal/common/errors"
	"solar-crm-client/internal/common/logger"
	"solar-crm-client/internal/models"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store persists the identity triple across process restarts, keyed by a
// stable device ID. It is the headless analogue of the browser client's
// localStorage session.
type Store struct {
	client *redis.Client
	ttl    time.Duration
	log    logger.Logger
}

// NewStore creates a Redis-backed session store.
func NewStore(cfg config.SessionConfig, log logger.Logger) *Store {
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Address,
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	return &Store{
		client: rdb,
		ttl:    time.Duration(cfg.TTLHours) * time.Hour,
		log:    log,
	}
}

// NewStoreWithClient wraps an existing Redis client (used in tests).
func NewStoreWithClient(client *redis.Client, ttl time.Duration, log logger.Logger) *Store {
	return &Store{client: client, ttl: ttl, log: log}
}

// Ping tests the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

// Save persists the session under the device key with the configured TTL.
func (s *Store) Save(ctx context.Context, deviceID string, sess models.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return errors.NewSessionSaveError(err)
	}

	if err := s.client.Set(ctx, keyPrefix+deviceID, data, s.ttl).Err(); err != nil {
		return errors.NewSessionSaveError(err)
	}

	s.log.Debug("Session saved", map[string]interface{}{
		"deviceId":   deviceID,
		"employeeId": sess.EmployeeID,
		"role":       sess.Role,
	})
	return nil
}

// Load returns the stored session, or (nil, nil) when the device has no
// session (not logged in).
func (s *Store) Load(ctx context.Context, deviceID string) (*models.Session, error) {
	data, err := s.client.Get(ctx, keyPrefix+deviceID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, errors.NewSessionLoadError(err)
	}

	var sess models.Session
	if err := json.Unmarshal([]byte(data), &sess); err != nil {
		return nil, errors.NewSessionLoadError(err)
	}
	return &sess, nil
}

// Clear removes the stored session (logout).
func (s *Store) Clear(ctx context.Context, deviceID string) error {
	if err := s.client.Del(ctx, keyPrefix+deviceID).Err(); err != nil {
		return errors.NewSessionSaveError(err)
	}
	return nil
}

// Close closes the Redis connection.
func (s *Store) Close() error {
	if s.client != nil {
		return s.client.Close()
	}
	return nil
}
