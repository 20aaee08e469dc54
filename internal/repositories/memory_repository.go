package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
	"cert-system/pkg/utils"
)

type memoryRecord struct {
	data      []byte
	fields    map[string]interface{}
	sortKey   string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
	seq       uint64
}

// MemoryDocumentRepository хранит документы коллекции в памяти.
// Документы копируются через JSON, поэтому вызывающий код не держит ссылок на хранилище.
type MemoryDocumentRepository[T any, P types.DocumentPtr[T]] struct {
	mu         sync.RWMutex
	collection Collection
	allowed    map[string]string
	records    map[string]*memoryRecord
	seq        uint64
	now        func() time.Time
}

func NewMemoryDocumentRepository[T any, P types.DocumentPtr[T]](collection Collection) DocumentRepositoryInterface[T] {
	return &MemoryDocumentRepository[T, P]{
		collection: collection,
		allowed:    collection.allowed(),
		records:    make(map[string]*memoryRecord),
		now:        time.Now,
	}
}

func (r *MemoryDocumentRepository[T, P]) decode(id string, rec *memoryRecord) (*T, error) {
	var item T
	if err := json.Unmarshal(rec.data, &item); err != nil {
		return nil, fmt.Errorf("повреждённый документ %s/%s: %w", r.collection.Name, id, err)
	}
	env := P(&item).Envelope()
	env.ID = id
	env.IsActive = rec.isActive
	env.CreatedAt = rec.createdAt
	env.UpdatedAt = rec.updatedAt
	return &item, nil
}

func (r *MemoryDocumentRepository[T, P]) encode(item *T, rec *memoryRecord) error {
	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать документ: %w", err)
	}
	fields := make(map[string]interface{})
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	rec.data = data
	rec.fields = fields
	rec.sortKey = P(item).SortKey()
	return nil
}

// value возвращает значение поля для фильтрации и сортировки.
func (rec *memoryRecord) value(field string) string {
	switch field {
	case "name":
		return rec.sortKey
	case "created_at":
		return rec.createdAt.Format(time.RFC3339Nano)
	case "updated_at":
		return rec.updatedAt.Format(time.RFC3339Nano)
	}
	v, ok := rec.fields[field]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

func (r *MemoryDocumentRepository[T, P]) matches(id string, rec *memoryRecord, filter types.Filter) bool {
	if !filter.WithInactive && !rec.isActive {
		return false
	}
	if filter.Search != "" && !strings.Contains(strings.ToLower(rec.sortKey), strings.ToLower(filter.Search)) {
		return false
	}
	for field, val := range filter.Filter {
		if _, ok := r.allowed[field]; !ok {
			continue
		}
		actual := rec.value(field)
		if field == "id" {
			actual = id
		}
		expected := fmt.Sprint(val)
		if !containsValue(strings.Split(expected, ","), actual) {
			return false
		}
	}
	return true
}

func containsValue(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}

func (r *MemoryDocumentRepository[T, P]) List(ctx context.Context, filter types.Filter) ([]T, uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	type entry struct {
		id  string
		rec *memoryRecord
	}
	matched := make([]entry, 0)
	for id, rec := range r.records {
		if r.matches(id, rec, filter) {
			matched = append(matched, entry{id: id, rec: rec})
		}
	}

	sortFields := make([]string, 0, len(filter.Sort))
	for field := range filter.Sort {
		if _, ok := r.allowed[field]; ok {
			sortFields = append(sortFields, field)
		}
	}
	sort.Strings(sortFields)

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i].rec, matched[j].rec
		for _, field := range sortFields {
			va, vb := a.value(field), b.value(field)
			if va == vb {
				continue
			}
			if strings.EqualFold(filter.Sort[field], "desc") {
				return va > vb
			}
			return va < vb
		}
		// по умолчанию: новые первыми
		return a.seq > b.seq
	})

	total := uint64(len(matched))
	if filter.WithPagination {
		start := filter.Offset
		if start > len(matched) {
			start = len(matched)
		}
		end := len(matched)
		if filter.Limit > 0 && start+filter.Limit < end {
			end = start + filter.Limit
		}
		matched = matched[start:end]
	}

	items := make([]T, 0, len(matched))
	for _, e := range matched {
		item, err := r.decode(e.id, e.rec)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	return items, total, nil
}

func (r *MemoryDocumentRepository[T, P]) Find(ctx context.Context, id string) (*T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok || !rec.isActive {
		return nil, apperrors.ErrNotFound
	}
	return r.decode(id, rec)
}

// FindForUpdate в памяти не блокирует запись: сериализацию обеспечивает MemoryTxManager.
func (r *MemoryDocumentRepository[T, P]) FindForUpdate(ctx context.Context, tx pgx.Tx, id string) (*T, error) {
	return r.Find(ctx, id)
}

func (r *MemoryDocumentRepository[T, P]) Create(ctx context.Context, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	env := P(item).Envelope()
	now := r.now()
	if env.ID == "" {
		env.ID = utils.NewDocumentID(now)
	}
	if _, exists := r.records[env.ID]; exists {
		return fmt.Errorf("документ %s/%s уже существует: %w", r.collection.Name, env.ID, apperrors.ErrConflict)
	}
	env.IsActive = true
	env.CreatedAt = now
	env.UpdatedAt = now

	r.seq++
	rec := &memoryRecord{isActive: true, createdAt: now, updatedAt: now, seq: r.seq}
	if err := r.encode(item, rec); err != nil {
		return err
	}
	r.records[env.ID] = rec
	return nil
}

func (r *MemoryDocumentRepository[T, P]) Patch(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || !rec.isActive {
		return nil, apperrors.ErrNotFound
	}
	current, err := r.decode(id, rec)
	if err != nil {
		return nil, err
	}
	if err := mergeDocument(current, fields); err != nil {
		return nil, err
	}
	if err := r.replaceLocked(current); err != nil {
		return nil, err
	}
	return current, nil
}

func (r *MemoryDocumentRepository[T, P]) Replace(ctx context.Context, tx pgx.Tx, item *T) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.replaceLocked(item)
}

func (r *MemoryDocumentRepository[T, P]) replaceLocked(item *T) error {
	env := P(item).Envelope()
	rec, ok := r.records[env.ID]
	if !ok || !rec.isActive {
		return apperrors.ErrNotFound
	}

	now := r.now()
	env.IsActive = true
	env.CreatedAt = rec.createdAt
	env.UpdatedAt = now

	updated := &memoryRecord{isActive: true, createdAt: rec.createdAt, updatedAt: now, seq: rec.seq}
	if err := r.encode(item, updated); err != nil {
		return err
	}
	r.records[env.ID] = updated
	return nil
}

func (r *MemoryDocumentRepository[T, P]) SoftDelete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok || !rec.isActive {
		return apperrors.ErrNotFound
	}
	rec.isActive = false
	rec.updatedAt = r.now()
	return nil
}

func (r *MemoryDocumentRepository[T, P]) HardDeleteAll(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.records))
	r.records = make(map[string]*memoryRecord)
	return n, nil
}

func (r *MemoryDocumentRepository[T, P]) Count(ctx context.Context, withInactive bool) (uint64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var n uint64
	for _, rec := range r.records {
		if withInactive || rec.isActive {
			n++
		}
	}
	return n, nil
}
