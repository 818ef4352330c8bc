package adminapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// MerchantFilter задаёт параметры выборки продавцов.
type MerchantFilter struct {
	Status string
	Page   int
	Limit  int
}

// Конверт списка продавцов исторически отличается от остальных:
// и список, и pagination вложены внутрь data.
type merchantsEnvelope struct {
	Data struct {
		Merchants  []model.Merchant `json:"merchants"`
		Pagination model.Pagination `json:"pagination"`
	} `json:"data"`
}

// ListMerchants возвращает страницу продавцов по фильтру.
func (c *Client) ListMerchants(ctx context.Context, filter MerchantFilter) ([]model.Merchant, model.Pagination, error) {
	q := pageQuery(filter.Page, filter.Limit)
	setIfPresent(q, "status", filter.Status)

	var env merchantsEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/merchants", q, nil, &env); err != nil {
		return nil, model.Pagination{}, err
	}
	return env.Data.Merchants, env.Data.Pagination, nil
}

// GetMerchant возвращает одного продавца по идентификатору.
func (c *Client) GetMerchant(ctx context.Context, id string) (*model.Merchant, error) {
	var env struct {
		Data model.Merchant `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/merchants/"+id, nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

type merchantStatusRequest struct {
	Status model.GovernanceStatus `json:"status"`
	Reason string                 `json:"reason,omitempty"`
}

// SetMerchantStatus переводит продавца в указанный статус.
// Для негативных переходов причина обязательна и проверяется вызывающей стороной.
func (c *Client) SetMerchantStatus(ctx context.Context, id string, status model.GovernanceStatus, reason string) error {
	path := fmt.Sprintf("/admin/merchants/%s/status", id)
	return c.do(ctx, http.MethodPatch, path, nil, merchantStatusRequest{Status: status, Reason: reason}, nil)
}
