package repositories

import (
	"context"
	"sync"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TxManagerInterface interface {
	RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

type TxManager struct {
	pool *pgxpool.Pool
}

func NewTxManager(pool *pgxpool.Pool) TxManagerInterface {
	return &TxManager{pool: pool}
}

// RunInTransaction выполняет fn в одной транзакции: ошибка или паника откатывают её.
func (m *TxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return WithTx(ctx, m.pool, fn)
}

// MemoryTxManager сериализует операции над хранилищем в памяти.
// fn получает nil вместо транзакции, репозитории в памяти это допускают.
type MemoryTxManager struct {
	mu sync.Mutex
}

func NewMemoryTxManager() TxManagerInterface {
	return &MemoryTxManager{}
}

func (m *MemoryTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	return fn(nil)
}
