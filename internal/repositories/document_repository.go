package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"cert-system/internal/infrastructure/bd"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
	"cert-system/pkg/utils"
)

// DocumentRepositoryInterface: контракт хранилища документов одной коллекции.
// По умолчанию списки и поиск видят только активные записи.
type DocumentRepositoryInterface[T any] interface {
	List(ctx context.Context, filter types.Filter) ([]T, uint64, error)
	Find(ctx context.Context, id string) (*T, error)
	FindForUpdate(ctx context.Context, tx pgx.Tx, id string) (*T, error)
	Create(ctx context.Context, item *T) error
	Patch(ctx context.Context, id string, fields map[string]interface{}) (*T, error)
	Replace(ctx context.Context, tx pgx.Tx, item *T) error
	SoftDelete(ctx context.Context, id string) error
	HardDeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context, withInactive bool) (uint64, error)
}

// Поля конверта не меняются через Patch.
var envelopeKeys = []string{"id", "is_active", "created_at", "updated_at"}

type DocumentRepository[T any, P types.DocumentPtr[T]] struct {
	storage    *pgxpool.Pool
	collection Collection
	allowed    map[string]string
	logger     *zap.Logger
	now        func() time.Time
}

func NewDocumentRepository[T any, P types.DocumentPtr[T]](storage *pgxpool.Pool, collection Collection, logger *zap.Logger) DocumentRepositoryInterface[T] {
	return &DocumentRepository[T, P]{
		storage:    storage,
		collection: collection,
		allowed:    collection.allowed(),
		logger:     logger,
		now:        time.Now,
	}
}

func (r *DocumentRepository[T, P]) psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func (r *DocumentRepository[T, P]) querier(tx pgx.Tx) Querier {
	if tx != nil {
		return tx
	}
	return r.storage
}

// -----------------------------------------------------------
// SCAN
// -----------------------------------------------------------

func (r *DocumentRepository[T, P]) scan(row pgx.Row) (*T, error) {
	var (
		item      T
		id        string
		raw       []byte
		isActive  bool
		createdAt time.Time
		updatedAt time.Time
	)

	err := row.Scan(&id, &raw, &isActive, &createdAt, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования %s: %w", r.collection.Name, err)
	}

	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("повреждённый документ %s/%s: %w", r.collection.Name, id, err)
	}

	env := P(&item).Envelope()
	env.ID = id
	env.IsActive = isActive
	env.CreatedAt = createdAt
	env.UpdatedAt = updatedAt

	return &item, nil
}

func (r *DocumentRepository[T, P]) selectBuilder() sq.SelectBuilder {
	return r.psql().Select("id", "data", "is_active", "created_at", "updated_at").From(r.collection.Name)
}

func (r *DocumentRepository[T, P]) applyCommon(b sq.SelectBuilder, filter types.Filter) sq.SelectBuilder {
	if !filter.WithInactive {
		b = b.Where(sq.Eq{"is_active": true})
	}
	if filter.Search != "" {
		b = b.Where(sq.ILike{"name": "%" + filter.Search + "%"})
	}
	return b
}

// -----------------------------------------------------------
// GET (Список)
// -----------------------------------------------------------

func (r *DocumentRepository[T, P]) List(ctx context.Context, filter types.Filter) ([]T, uint64, error) {
	// 1. COUNT
	countFilter := filter
	countFilter.WithPagination = false
	countFilter.Sort = nil

	countBuilder := r.applyCommon(r.psql().Select("COUNT(*)").From(r.collection.Name), filter)
	countBuilder = bd.ApplyListParams(countBuilder, countFilter, r.allowed)

	sqlCount, argsCount, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, sqlCount, argsCount...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчёта %s: %w", r.collection.Name, err)
	}
	if total == 0 {
		return []T{}, 0, nil
	}

	// 2. SELECT
	builder := r.applyCommon(r.selectBuilder(), filter)
	builder = bd.ApplyListParams(builder, filter, r.allowed)
	if len(filter.Sort) == 0 {
		builder = builder.OrderBy("created_at DESC")
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, err
	}

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка чтения %s: %w", r.collection.Name, err)
	}
	defer rows.Close()

	items := make([]T, 0)
	for rows.Next() {
		item, err := r.scan(rows)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// -----------------------------------------------------------
// FIND ONE
// -----------------------------------------------------------

func (r *DocumentRepository[T, P]) Find(ctx context.Context, id string) (*T, error) {
	query, args, err := r.selectBuilder().Where(sq.Eq{"id": id, "is_active": true}).ToSql()
	if err != nil {
		return nil, err
	}
	return r.scan(r.storage.QueryRow(ctx, query, args...))
}

func (r *DocumentRepository[T, P]) FindForUpdate(ctx context.Context, tx pgx.Tx, id string) (*T, error) {
	query, args, err := r.selectBuilder().Where(sq.Eq{"id": id, "is_active": true}).Suffix("FOR UPDATE").ToSql()
	if err != nil {
		return nil, err
	}
	return r.scan(r.querier(tx).QueryRow(ctx, query, args...))
}

// -----------------------------------------------------------
// CRUD
// -----------------------------------------------------------

func (r *DocumentRepository[T, P]) Create(ctx context.Context, item *T) error {
	p := P(item)
	env := p.Envelope()
	now := r.now()
	if env.ID == "" {
		env.ID = utils.NewDocumentID(now)
	}
	env.IsActive = true

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать документ: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, data, is_active, created_at, updated_at)
		VALUES ($1, $2, $3::jsonb, TRUE, NOW(), NOW())
		RETURNING created_at, updated_at
	`, r.collection.Name)

	err = r.storage.QueryRow(ctx, query, env.ID, p.SortKey(), string(data)).Scan(&env.CreatedAt, &env.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("документ %s/%s уже существует: %w", r.collection.Name, env.ID, apperrors.ErrConflict)
		}
		return fmt.Errorf("ошибка создания записи в %s: %w", r.collection.Name, err)
	}

	r.logger.Debug("Документ создан", zap.String("collection", r.collection.Name), zap.String("id", env.ID))
	return nil
}

// Patch сливает переданные поля с документом (поверхностно, как jsonb ||).
func (r *DocumentRepository[T, P]) Patch(ctx context.Context, id string, fields map[string]interface{}) (*T, error) {
	var updated *T
	err := WithTx(ctx, r.storage, func(tx pgx.Tx) error {
		current, err := r.FindForUpdate(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := mergeDocument(current, fields); err != nil {
			return err
		}
		if err := r.Replace(ctx, tx, current); err != nil {
			return err
		}
		updated = current
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Replace перезаписывает документ целиком; created_at не меняется.
func (r *DocumentRepository[T, P]) Replace(ctx context.Context, tx pgx.Tx, item *T) error {
	p := P(item)
	env := p.Envelope()

	data, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("не удалось сериализовать документ: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, data = $2::jsonb, updated_at = NOW()
		WHERE id = $3 AND is_active = TRUE
		RETURNING created_at, updated_at
	`, r.collection.Name)

	err = r.querier(tx).QueryRow(ctx, query, p.SortKey(), string(data), env.ID).Scan(&env.CreatedAt, &env.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("ошибка обновления %s/%s: %w", r.collection.Name, env.ID, err)
	}
	return nil
}

func (r *DocumentRepository[T, P]) SoftDelete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`, r.collection.Name)
	result, err := r.storage.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// HardDeleteAll физически удаляет все записи коллекции (административная очистка).
func (r *DocumentRepository[T, P]) HardDeleteAll(ctx context.Context) (int64, error) {
	result, err := r.storage.Exec(ctx, fmt.Sprintf(`DELETE FROM %s`, r.collection.Name))
	if err != nil {
		return 0, fmt.Errorf("ошибка очистки %s: %w", r.collection.Name, err)
	}
	r.logger.Warn("Коллекция очищена", zap.String("collection", r.collection.Name), zap.Int64("deleted", result.RowsAffected()))
	return result.RowsAffected(), nil
}

func (r *DocumentRepository[T, P]) Count(ctx context.Context, withInactive bool) (uint64, error) {
	b := r.psql().Select("COUNT(*)").From(r.collection.Name)
	if !withInactive {
		b = b.Where(sq.Eq{"is_active": true})
	}
	query, args, err := b.ToSql()
	if err != nil {
		return 0, err
	}
	var total uint64
	if err := r.storage.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

// mergeDocument накладывает поля на документ через JSON-представление.
func mergeDocument[T any](item *T, fields map[string]interface{}) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return err
	}
	current := make(map[string]interface{})
	if err := json.Unmarshal(raw, &current); err != nil {
		return err
	}
	for k, v := range fields {
		if isEnvelopeKey(k) {
			continue
		}
		current[k] = v
	}

	merged, err := json.Marshal(current)
	if err != nil {
		return err
	}

	var out T
	if err := json.Unmarshal(merged, &out); err != nil {
		return apperrors.NewInvalidInputError("некорректные данные для обновления: %v", err)
	}
	*item = out
	return nil
}

func isEnvelopeKey(key string) bool {
	for _, k := range envelopeKeys {
		if k == key {
			return true
		}
	}
	return false
}
