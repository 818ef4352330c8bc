package view

import (
	"context"
	"strings"

	"github.com/mmeshcher/marketplace-admin/internal/governance"
	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// Confirmation — чистая поверхность сбора подтверждения перехода.
// Она не обращается к API: проверяет причину, и если подтверждение
// допустимо, передаёт её обработчику вызывающей стороны.
// Через неё проходят все разрушительные действия консоли.
type Confirmation struct {
	Target   model.GovernanceStatus
	Negative bool
	Reason   string
	Loading  bool
}

// NewConfirmation создаёт подтверждение перехода в целевой статус.
// Негативность статуса определяется правилами governance.
func NewConfirmation(target model.GovernanceStatus) *Confirmation {
	return &Confirmation{
		Target:   target,
		Negative: governance.Negative(target),
	}
}

// CanConfirm сообщает, доступна ли кнопка подтверждения:
// недоступна во время загрузки и при пустой причине негативного перехода.
// Позитивный переход по содержимому причины не блокируется.
func (c *Confirmation) CanConfirm() bool {
	if c.Loading {
		return false
	}
	if c.Negative && strings.TrimSpace(c.Reason) == "" {
		return false
	}
	return true
}

// Confirm вызывает обработчик с причиной без крайних пробелов.
// Проверка причины выполняется до любого сетевого вызова.
func (c *Confirmation) Confirm(ctx context.Context, handler func(ctx context.Context, reason string) error) error {
	if c.Negative && strings.TrimSpace(c.Reason) == "" {
		return governance.ErrReasonRequired
	}
	if c.Loading {
		return ErrActionInFlight
	}

	c.Loading = true
	defer func() { c.Loading = false }()

	return handler(ctx, strings.TrimSpace(c.Reason))
}

// Close сбрасывает введённую причину. Закрытие не имеет побочных эффектов
// и допустимо в любой момент.
func (c *Confirmation) Close() {
	c.Reason = ""
	c.Loading = false
}
