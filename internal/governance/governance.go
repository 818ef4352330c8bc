// Package governance описывает машину статусов модерируемых сущностей
// и правила обязательности причины перехода.
//
// Одну и ту же форму машины разделяют продавцы, заявки на вывод средств
// и запросы на категории: PENDING переходит в APPROVED или REJECTED.
// Продавца дополнительно можно приостановить и вернуть в работу:
// APPROVED и SUSPENDED взаимно достижимы.
package governance

import (
	"errors"
	"strings"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// Kind определяет вид модерируемой сущности.
type Kind string

const (
	KindMerchant        Kind = "merchant"
	KindWithdrawal      Kind = "withdrawal"
	KindCategoryRequest Kind = "category_request"
)

// ErrReasonRequired возвращается, когда негативный переход запрошен без причины.
var ErrReasonRequired = errors.New("reason is required for this transition")

// ErrTransitionNotAllowed возвращается при недопустимом переходе статуса.
var ErrTransitionNotAllowed = errors.New("status transition is not allowed")

// Allowed сообщает, допустим ли переход сущности вида kind из from в to.
func Allowed(kind Kind, from, to model.GovernanceStatus) bool {
	if from == to {
		return false
	}

	switch from {
	case model.StatusPending:
		return to == model.StatusApproved || to == model.StatusRejected
	case model.StatusApproved:
		return kind == KindMerchant && to == model.StatusSuspended
	case model.StatusSuspended:
		return kind == KindMerchant && to == model.StatusApproved
	default:
		return false
	}
}

// Negative сообщает, является ли целевой статус негативным.
// Негативные переходы требуют непустой причины.
func Negative(to model.GovernanceStatus) bool {
	return to == model.StatusRejected || to == model.StatusSuspended
}

// ValidateReason проверяет причину перехода в целевой статус.
// Причина из одних пробелов считается пустой. Для позитивных переходов
// причина необязательна и не проверяется.
func ValidateReason(to model.GovernanceStatus, reason string) error {
	if Negative(to) && strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	return nil
}

// Validate проверяет переход целиком: и допустимость, и причину.
func Validate(kind Kind, from, to model.GovernanceStatus, reason string) error {
	if !Allowed(kind, from, to) {
		return ErrTransitionNotAllowed
	}
	return ValidateReason(to, reason)
}
