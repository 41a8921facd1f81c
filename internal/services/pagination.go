package services

// MaxPageSize is the largest page any listing returns.
const MaxPageSize = 100

// clampPage forces offset to be non-negative and limit into [0, MaxPageSize].
func clampPage(offset, limit int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return offset, limit
}
