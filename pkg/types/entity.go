package types

import "time"

// Document: общий конверт всех записей хранилища.
type Document struct {
	ID        string    `json:"id"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Document) Envelope() *Document { return d }

// DocumentPtr описывает указатель на запись коллекции.
// SortKey используется для поиска и сортировки по имени.
type DocumentPtr[T any] interface {
	*T
	Envelope() *Document
	SortKey() string
}
