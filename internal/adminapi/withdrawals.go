package adminapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// WithdrawalFilter задаёт параметры выборки заявок на вывод средств.
type WithdrawalFilter struct {
	Status string
}

// ListWithdrawals возвращает заявки на вывод средств по фильтру.
// Это единственный метод выборки заявок: в исходной системе существовали
// два одноимённых метода с разными сигнатурами, из которых реально
// работал только вариант с фильтром по статусу.
func (c *Client) ListWithdrawals(ctx context.Context, filter WithdrawalFilter) ([]model.WithdrawalRequest, error) {
	q := url.Values{}
	setIfPresent(q, "status", filter.Status)

	var env struct {
		Data []model.WithdrawalRequest `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/withdrawals", q, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

type withdrawalNotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// ApproveWithdrawal одобряет заявку на вывод средств; бэкенд запускает выплату.
// Примечание администратора необязательно.
func (c *Client) ApproveWithdrawal(ctx context.Context, id, notes string) error {
	path := fmt.Sprintf("/admin/withdrawals/%s/approve", id)
	return c.do(ctx, http.MethodPost, path, nil, withdrawalNotesRequest{AdminNotes: notes}, nil)
}

// RejectWithdrawal отклоняет заявку на вывод средств; бэкенд возвращает
// средства продавцу. Причина обязательна и проверяется вызывающей стороной.
func (c *Client) RejectWithdrawal(ctx context.Context, id, notes string) error {
	path := fmt.Sprintf("/admin/withdrawals/%s/reject", id)
	return c.do(ctx, http.MethodPost, path, nil, withdrawalNotesRequest{AdminNotes: notes}, nil)
}
