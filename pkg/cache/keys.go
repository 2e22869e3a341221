package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// Namespace prefixes every key written by this service.
const Namespace = "bookrank:"

// GenerationKey holds the cache generation. Every cached read is stored under
// the generation current when the read started; Invalidate moves to the next one,
// so a read that finishes after an ingestion batch writes to a key nobody looks up.
const GenerationKey = Namespace + "gen"

// Key joins parts under Namespace: Key("ranking", "weekly") = "bookrank:ranking:weekly".
func Key(parts ...string) string {
	return Namespace + strings.Join(parts, ":")
}

// VersionedKey is Key under generation gen: "bookrank:g3:ranking:weekly".
func VersionedKey(gen int64, parts ...string) string {
	return Namespace + "g" + strconv.FormatInt(gen, 10) + ":" + strings.Join(parts, ":")
}

// Generation reads the current generation; 0 until the first Invalidate.
func Generation(ctx context.Context, c Cache) (int64, error) {
	var gen int64
	if _, err := c.Get(ctx, GenerationKey, &gen); err != nil {
		return 0, err
	}
	return gen, nil
}

// Invalidate retires every cached read by bumping the generation, then drops the
// keys of the retired generation. Late writes to it expire with their TTL.
func Invalidate(ctx context.Context, c Cache) error {
	gen, err := c.Incr(ctx, GenerationKey)
	if err != nil {
		return fmt.Errorf("bump cache generation: %w", err)
	}
	if err := c.DeletePattern(ctx, VersionedKey(gen-1, "*")); err != nil {
		return fmt.Errorf("drop generation %d: %w", gen-1, err)
	}
	return nil
}
