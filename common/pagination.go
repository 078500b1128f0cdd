package common

// MaxPageSize is the biggest page a single paginated query returns. Larger
// limits are clamped, not rejected.
const MaxPageSize = 30

// ErrInvalidPagination is thrown by CheckPagination on negative arguments.
const ErrInvalidPagination = "invalid pagination arguments"

// CheckPagination validates a (start, limit) window and returns the limit
// clamped to MaxPageSize.
func CheckPagination(start int, limit int) int {
	if start < 0 || limit < 0 {
		panic(ErrInvalidPagination)
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
