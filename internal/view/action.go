package view

import (
	"context"
	"errors"
	"sync"
)

// ErrActionInFlight возвращается при попытке запустить действие,
// пока предыдущее ещё не завершилось.
var ErrActionInFlight = errors.New("action already in flight")

// Action выполняет одну мутацию с защитой от повторной отправки.
// Пока запрос в полёте, повторный запуск блокируется; после успеха
// выполняется ровно одна перезагрузка затронутого списка.
type Action struct {
	mu       sync.Mutex
	inFlight bool
}

// InFlight сообщает, выполняется ли действие прямо сейчас.
// Управляющий элемент на экране в этот момент должен быть выключен.
func (a *Action) InFlight() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.inFlight
}

// Run выполняет do и при успехе вызывает refetch.
// При ошибке состояние сущности не трогается, refetch не выполняется,
// а ошибка возвращается для единственного уведомления пользователю.
func (a *Action) Run(ctx context.Context, do func(ctx context.Context) error, refetch func(ctx context.Context)) error {
	a.mu.Lock()
	if a.inFlight {
		a.mu.Unlock()
		return ErrActionInFlight
	}
	a.inFlight = true
	a.mu.Unlock()

	defer func() {
		a.mu.Lock()
		a.inFlight = false
		a.mu.Unlock()
	}()

	if err := do(ctx); err != nil {
		return err
	}
	if refetch != nil {
		refetch(ctx)
	}
	return nil
}
