package entities

import "time"

type MoveDirection string

const (
	MoveUp   MoveDirection = "up"
	MoveDown MoveDirection = "down"
)

func (d MoveDirection) IsValid() bool { return d == MoveUp || d == MoveDown }

// Phase: один пронумерованный этап чек-листа.
type Phase struct {
	PhaseNumber   int        `json:"phase_number"`
	Name          string     `json:"name"`
	Description   string     `json:"description"`
	IsCompleted   bool       `json:"is_completed"`
	CompletedDate *time.Time `json:"completed_date,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

// PhaseList: упорядоченный список этапов. Номера этапов всегда 1..N
// в порядке списка: каждая изменяющая операция перенумеровывает список.
type PhaseList []Phase

// Add добавляет пустой этап в конец и возвращает его номер.
func (l *PhaseList) Add() int {
	*l = append(*l, Phase{PhaseNumber: len(*l) + 1})
	return len(*l)
}

// Remove удаляет этап по индексу. Индекс вне диапазона: no-op.
func (l *PhaseList) Remove(index int) bool {
	if index < 0 || index >= len(*l) {
		return false
	}
	*l = append((*l)[:index], (*l)[index+1:]...)
	l.Renumber()
	return true
}

// Move сдвигает этап на одну позицию. Первый вверх, последний вниз
// и неизвестное направление: no-op.
func (l PhaseList) Move(index int, dir MoveDirection) bool {
	if !dir.IsValid() {
		return false
	}
	target := index - 1
	if dir == MoveDown {
		target = index + 1
	}
	if index < 0 || index >= len(l) || target < 0 || target >= len(l) {
		return false
	}
	l[index], l[target] = l[target], l[index]
	l.Renumber()
	return true
}

// Edit заменяет имя и/или описание. Пустые строки допустимы.
func (l PhaseList) Edit(index int, name, description *string) bool {
	if index < 0 || index >= len(l) {
		return false
	}
	if name != nil {
		l[index].Name = *name
	}
	if description != nil {
		l[index].Description = *description
	}
	return true
}

// SetCompleted выставляет отметку выполнения.
// false→true ставит дату и заметку; повторная отметка обновляет только заметку;
// снятие отметки очищает и дату, и заметку.
func (l PhaseList) SetCompleted(index int, completed bool, notes string, now time.Time) bool {
	if index < 0 || index >= len(l) {
		return false
	}
	p := &l[index]
	switch {
	case completed && !p.IsCompleted:
		stamp := now
		p.IsCompleted = true
		p.CompletedDate = &stamp
		p.Notes = notes
	case completed && p.IsCompleted:
		if notes != "" {
			p.Notes = notes
		}
	default:
		p.IsCompleted = false
		p.CompletedDate = nil
		p.Notes = ""
	}
	return true
}

func (l PhaseList) Renumber() {
	for i := range l {
		l[i].PhaseNumber = i + 1
	}
}

// IndexOf переводит номер этапа в индекс.
func (l PhaseList) IndexOf(phaseNumber int) int {
	if phaseNumber < 1 || phaseNumber > len(l) {
		return -1
	}
	return phaseNumber - 1
}

// CurrentPhase: 1-based номер первого незавершенного этапа,
// либо длина списка, если завершены все.
func (l PhaseList) CurrentPhase() int {
	for i, p := range l {
		if !p.IsCompleted {
			return i + 1
		}
	}
	return len(l)
}

func (l PhaseList) CompletedCount() int {
	n := 0
	for _, p := range l {
		if p.IsCompleted {
			n++
		}
	}
	return n
}

func (l PhaseList) IsDense() bool {
	for i, p := range l {
		if p.PhaseNumber != i+1 {
			return false
		}
	}
	return true
}

// Clone делает глубокую копию, включая даты завершения.
func (l PhaseList) Clone() PhaseList {
	if l == nil {
		return nil
	}
	out := make(PhaseList, len(l))
	for i, p := range l {
		out[i] = p
		if p.CompletedDate != nil {
			d := *p.CompletedDate
			out[i].CompletedDate = &d
		}
	}
	return out
}
