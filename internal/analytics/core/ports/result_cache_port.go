package ports

// ResultCachePort memoizes computed reports. Concurrent calls for the same
// key run compute once; errors are not cached.
type ResultCachePort interface {
	Do(key string, compute func() (any, error)) (any, error)
}
