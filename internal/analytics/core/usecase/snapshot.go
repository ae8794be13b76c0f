package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"

	"community-metrics-service/internal/analytics/core/ports"
	msgdomain "community-metrics-service/internal/messages/core/domain"
)

// loadTable fetches the current table. An empty snapshot is not an error
// for analytics: reports are built from the empty table and flagged.
func loadTable(ctx context.Context, loader ports.SnapshotLoaderPort) (*msgdomain.Table, bool, error) {
	t, err := loader.Execute(ctx)
	if errors.Is(err, msgdomain.ErrEmptyInput) {
		if t == nil {
			t = &msgdomain.Table{}
		}
		return t, true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return t, t.Empty(), nil
}

// cacheKey hashes the operation, revision and normalized parameters.
func cacheKey(parts ...string) string {
	h := sha256.New()
	for _, p := range parts {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// cached runs compute through the result cache and restores the static type.
func cached[T any](c ports.ResultCachePort, key string, compute func() (T, error)) (T, error) {
	v, err := c.Do(key, func() (any, error) { return compute() })
	if err != nil {
		var zero T
		return zero, err
	}
	return v.(T), nil
}

// normalizedList sorts and dedupes a parameter list for use in a cache key.
func normalizedList(vs []string) string {
	if vs == nil {
		return "*"
	}
	seen := make(map[string]struct{}, len(vs))
	out := make([]string, 0, len(vs))
	for _, v := range vs {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return strings.Join(out, "\x1f")
}
