package pagination

const (
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 200
	// MaxLimit caps how many rows any listing query can request.
	MaxLimit = 200
)

// NormalizeLimit enforces the configured default and maximum limits.
func NormalizeLimit(limit int) int {
	if limit <= 0 {
		return DefaultLimit
	}
	if limit > MaxLimit {
		return MaxLimit
	}
	return limit
}
