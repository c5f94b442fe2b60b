package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"io"
	"time"
)

// NonceStore issues and consumes one-shot login nonces for wallet auth
type NonceStore struct {
	ttl time.Duration
}

var (
	setNonceValue = Set
	getNonceValue = Get
	delNonceValue = Del
)

// ErrNonceNotFound is returned when a nonce is missing or already consumed
var ErrNonceNotFound = errors.New("nonce not found")

// NewNonceStore creates a nonce store with the given TTL
func NewNonceStore(ttl time.Duration) *NonceStore {
	return &NonceStore{ttl: ttl}
}

// Issue generates a fresh nonce for the address and stores it with TTL
func (s *NonceStore) Issue(ctx context.Context, address string) (string, error) {
	buf := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return "", err
	}
	nonce := hex.EncodeToString(buf)

	if err := setNonceValue(ctx, "auth:nonce:"+address, nonce, s.ttl); err != nil {
		return "", err
	}
	return nonce, nil
}

// Consume fetches and deletes the nonce for the address. A nonce is only
// good for one verification attempt.
func (s *NonceStore) Consume(ctx context.Context, address string) (string, error) {
	key := "auth:nonce:" + address
	nonce, err := getNonceValue(ctx, key)
	if err != nil {
		return "", ErrNonceNotFound
	}
	_ = delNonceValue(ctx, key)
	return nonce, nil
}
