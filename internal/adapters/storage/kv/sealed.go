package kv

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

// ErrSealBroken is returned when a stored value cannot be opened with the key.
var ErrSealBroken = errors.New("kv: sealed value could not be opened")

// Sealed encrypts values with NaCl secretbox before handing them to the inner store.
type Sealed struct {
	inner Store
	key   [32]byte
}

var _ Store = (*Sealed)(nil)

// NewSealed wraps inner so every value is encrypted at rest.
func NewSealed(inner Store, key [32]byte) *Sealed {
	return &Sealed{inner: inner, key: key}
}

// ParseKey decodes a base64 (std or URL) 32-byte key.
// An empty string yields a random key, so sessions do not survive a restart.
// PRE: none
// POST: returns a 32-byte key or a decoding error
func ParseKey(encoded string) ([32]byte, error) {
	var key [32]byte
	if encoded == "" {
		_, err := io.ReadFull(rand.Reader, key[:])
		return key, err
	}
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		raw, err = base64.URLEncoding.DecodeString(encoded)
	}
	if err != nil {
		return key, fmt.Errorf("token key is not base64: %w", err)
	}
	if len(raw) != len(key) {
		return key, fmt.Errorf("token key must be 32 bytes, got %d", len(raw))
	}
	copy(key[:], raw)
	return key, nil
}

func (s *Sealed) Get(ctx context.Context, key string) ([]byte, error) {
	box, err := s.inner.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if len(box) < nonceSize+secretbox.Overhead {
		return nil, ErrSealBroken
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return nil, ErrSealBroken
	}
	return plain, nil
}

func (s *Sealed) Put(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return fmt.Errorf("kv seal nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], value, &nonce, &s.key)
	return s.inner.Put(ctx, key, box, ttl)
}

func (s *Sealed) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, key)
}

// DeleteExpired forwards to the inner store when it sweeps.
func (s *Sealed) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if sw, ok := s.inner.(Sweeper); ok {
		return sw.DeleteExpired(ctx, now)
	}
	return 0, nil
}
