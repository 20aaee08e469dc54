package services

import (
	"context"

	"github.com/jackc/pgx/v5"

	"cert-system/internal/entities"
	"cert-system/internal/repositories"
	apperrors "cert-system/pkg/errors"
	"cert-system/pkg/types"
)

// PhaseOp изменяет список этапов. changed=false: изменений нет, запись не выполняется.
type PhaseOp func(phases *entities.PhaseList) (changed bool, err error)

// mutatePhases загружает документ под блокировкой, применяет op и сохраняет
// результат в той же транзакции.
func mutatePhases[T any, P types.DocumentPtr[T]](
	ctx context.Context,
	tx repositories.TxManagerInterface,
	repo repositories.DocumentRepositoryInterface[T],
	id string,
	phasesOf func(*T) *entities.PhaseList,
	op PhaseOp,
) (*T, error) {
	var result *T
	err := tx.RunInTransaction(ctx, func(t pgx.Tx) error {
		item, err := repo.FindForUpdate(ctx, t, id)
		if err != nil {
			return err
		}
		changed, err := op(phasesOf(item))
		if err != nil {
			return err
		}
		if changed {
			if err := repo.Replace(ctx, t, item); err != nil {
				return err
			}
		}
		result = item
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Операции над этапом по его номеру. Неизвестный номер: ErrPhaseOutOfRange,
// кроме удаления.

func addPhaseOp(name, description string) PhaseOp {
	return func(l *entities.PhaseList) (bool, error) {
		n := l.Add()
		(*l)[n-1].Name = name
		(*l)[n-1].Description = description
		return true, nil
	}
}

// removePhaseOp: удаление несуществующего этапа ничего не меняет и не считается ошибкой.
func removePhaseOp(number int) PhaseOp {
	return func(l *entities.PhaseList) (bool, error) {
		return l.Remove(l.IndexOf(number)), nil
	}
}

func movePhaseOp(number int, dir entities.MoveDirection) PhaseOp {
	return func(l *entities.PhaseList) (bool, error) {
		i := l.IndexOf(number)
		if i < 0 {
			return false, apperrors.ErrPhaseOutOfRange
		}
		// крайний этап не сдвигается, это не ошибка
		return l.Move(i, dir), nil
	}
}

func editPhaseOp(number int, name, description *string) PhaseOp {
	return func(l *entities.PhaseList) (bool, error) {
		i := l.IndexOf(number)
		if i < 0 {
			return false, apperrors.ErrPhaseOutOfRange
		}
		return l.Edit(i, name, description), nil
	}
}
