// Package customdict stores user-added words per language in Redis sets.
package customdict

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "custom_dict"

// CustomDict wraps a Redis client to store custom dictionary words. Each
// language code has its own set under "custom_dict:<code>".
type CustomDict struct {
	client redis.Cmdable
	prefix string
}

// New creates a new CustomDict with the provided Redis client.
func New(client redis.Cmdable) *CustomDict {
	return &CustomDict{client: client, prefix: keyPrefix}
}

// Key returns the Redis key holding the words of language code.
func (cd *CustomDict) Key(code string) string {
	return cd.prefix + ":" + code
}

// Add inserts a word into the custom dictionary of code.
func (cd *CustomDict) Add(ctx context.Context, code, word string) error {
	if err := cd.client.SAdd(ctx, cd.Key(code), word).Err(); err != nil {
		return fmt.Errorf("customdict: add %q to %s: %w", word, code, err)
	}
	return nil
}

// Remove deletes a word from the custom dictionary of code.
func (cd *CustomDict) Remove(ctx context.Context, code, word string) error {
	if err := cd.client.SRem(ctx, cd.Key(code), word).Err(); err != nil {
		return fmt.Errorf("customdict: remove %q from %s: %w", word, code, err)
	}
	return nil
}

// All returns all words stored for code.
func (cd *CustomDict) All(ctx context.Context, code string) ([]string, error) {
	words, err := cd.client.SMembers(ctx, cd.Key(code)).Result()
	if err != nil {
		return nil, fmt.Errorf("customdict: list %s: %w", code, err)
	}
	return words, nil
}

// Ping checks that Redis is reachable.
func (cd *CustomDict) Ping(ctx context.Context) error {
	return cd.client.Ping(ctx).Err()
}
