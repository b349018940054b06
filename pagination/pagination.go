// Package pagination converts 1-indexed page requests into storage offsets.
package pagination

// DefaultPageSize is used when the caller asks for a non-positive page size.
const DefaultPageSize = 10

// Calculate maps (page, pageSize) to (offset, limit). Pages are 1-indexed;
// a page below 1 is treated as page 1 and a page size below 1 falls back to
// DefaultPageSize. No upper bound is applied here, that is the caller's job.
func Calculate(page, pageSize int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	return (page - 1) * pageSize, pageSize
}
