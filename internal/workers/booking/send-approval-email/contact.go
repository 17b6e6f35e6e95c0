// internal/workers/booking/send-approval-email/contact.go
package sendapprovalemail

import (
	"context"
	"encoding/json"
	"time"

	"parkhub-notifier/internal/common/errors"
	"parkhub-notifier/internal/common/logger"
	"parkhub-notifier/internal/common/supabase"

	"github.com/redis/go-redis/v9"
)

// UserService is the slice of the identity client the resolver needs.
type UserService interface {
	GetUser(ctx context.Context, userID string) (*supabase.User, error)
}

// ContactResolver resolves a user's contact address through the privileged
// admin lookup, with an optional cache in front of it. A nil redis client
// disables caching.
type ContactResolver struct {
	users    UserService
	cache    *redis.Client
	cacheTTL time.Duration
	logger   logger.Logger
}

func NewContactResolver(users UserService, cache *redis.Client, cacheTTL time.Duration, log logger.Logger) *ContactResolver {
	return &ContactResolver{
		users:    users,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   log,
	}
}

// Resolve returns the contact for userID. A user record without an email
// address is terminal for the event.
func (r *ContactResolver) Resolve(ctx context.Context, userID string) (*Contact, error) {
	cacheKey := "contact:" + userID

	if r.cache != nil {
		if val, err := r.cache.Get(ctx, cacheKey).Result(); err == nil {
			var contact Contact
			if err := json.Unmarshal([]byte(val), &contact); err == nil && contact.Email != "" {
				return &contact, nil
			}
		}
	}

	user, err := r.users.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if user.Email == "" {
		return nil, errors.NewUserEmailNotFoundError(userID)
	}

	contact := &Contact{Email: user.Email}

	if r.cache != nil {
		data, _ := json.Marshal(contact)
		if err := r.cache.Set(ctx, cacheKey, data, r.cacheTTL).Err(); err != nil {
			r.logger.Debug("contact cache write failed", map[string]interface{}{
				"userId": userID,
				"error":  err.Error(),
			})
		}
	}

	return contact, nil
}
