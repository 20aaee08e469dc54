package types

// Filter represents query parameters for filtering and pagination.
type Filter struct {
	Search         string                 `json:"search,omitempty"`
	Sort           map[string]string      `json:"sort,omitempty"`
	Filter         map[string]interface{} `json:"filter,omitempty"`
	Limit          int                    `json:"limit"`
	Offset         int                    `json:"offset"`
	Page           int                    `json:"page"`
	WithPagination bool                   `json:"with_pagination"`
	WithInactive   bool                   `json:"with_inactive"`
}

// http://localhost:8080/api/projects?search=Koivu&filter[customer_id]=260101-1a2b3c4d&sort[created_at]=desc&withPagination=false
