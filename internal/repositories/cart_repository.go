package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pharmakart/pharmacy-store-platform/internal/config"
	"github.com/pharmakart/pharmacy-store-platform/internal/models"
	"github.com/pharmakart/pharmacy-store-platform/internal/utils"
	"github.com/redis/go-redis/v9"
)

// CartRepository is the session store for carts. A cart lives and dies with
// its session: it is never written to Postgres, and the key's TTL is the
// session expiry.
type CartRepository interface {
	GetCart(ctx context.Context, sessionID string) (*models.Cart, error)
	SaveCart(ctx context.Context, cart *models.Cart) error
	ClearCart(ctx context.Context, sessionID string) error
}

type cartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCartRepo(client *redis.Client, cfg *config.SessionConfig) CartRepository {
	return &cartRepository{client: client, ttl: cfg.CartTTL}
}

func cartKey(sessionID string) string {
	return "cart:" + sessionID
}

// GetCart returns an empty cart when the session has none yet.
func (r *cartRepository) GetCart(ctx context.Context, sessionID string) (*models.Cart, error) {

	sessCtx, cancel := utils.WithSessionTimeout(ctx)
	defer cancel()

	data, err := r.client.Get(sessCtx, cartKey(sessionID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return models.NewCart(sessionID), nil
		}

		return nil, fmt.Errorf("failed to get cart for session %s: %w", sessionID, err)
	}

	cart := &models.Cart{}
	if err := json.Unmarshal(data, cart); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart: %w", err)
	}

	if cart.Items == nil {
		cart.Items = make(map[string]models.CartItem)
	}

	return cart, nil
}

func (r *cartRepository) SaveCart(ctx context.Context, cart *models.Cart) error {

	sessCtx, cancel := utils.WithSessionTimeout(ctx)
	defer cancel()

	cart.UpdatedAt = time.Now()

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("failed to marshal cart: %w", err)
	}

	if err := r.client.Set(sessCtx, cartKey(cart.SessionID), string(data), r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart for session %s: %w", cart.SessionID, err)
	}

	return nil
}

func (r *cartRepository) ClearCart(ctx context.Context, sessionID string) error {

	sessCtx, cancel := utils.WithSessionTimeout(ctx)
	defer cancel()

	if err := r.client.Del(sessCtx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to clear cart for session %s: %w", sessionID, err)
	}

	return nil
}
