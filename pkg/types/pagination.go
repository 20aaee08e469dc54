package types

// Pagination represents pagination metadata.
type Pagination struct {
	TotalCount uint64 `json:"total_count"`
	Page       int    `json:"page"`
	Limit      int    `json:"limit"`
	TotalPages int    `json:"total_pages"`
}

func NewPagination(total uint64, filter Filter) *Pagination {
	if !filter.WithPagination {
		return nil
	}
	totalPages := 0
	if filter.Limit > 0 {
		totalPages = int((total + uint64(filter.Limit) - 1) / uint64(filter.Limit))
	}
	return &Pagination{TotalCount: total, Page: filter.Page, Limit: filter.Limit, TotalPages: totalPages}
}
