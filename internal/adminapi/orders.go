package adminapi

import (
	"context"
	"net/http"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// OrderFilter задаёт параметры выборки заказов.
// Даты передаются строками в формате YYYY-MM-DD, как их принимает бэкенд.
type OrderFilter struct {
	Status     string
	CustomerID string
	DateFrom   string
	DateTo     string
	Page       int
	Limit      int
}

// конверт списка заказов: список внутри data, метаданные в meta
type ordersEnvelope struct {
	Data struct {
		Orders []model.Order `json:"orders"`
	} `json:"data"`
	Meta model.Pagination `json:"meta"`
}

// ListOrders возвращает страницу заказов по фильтру.
func (c *Client) ListOrders(ctx context.Context, filter OrderFilter) ([]model.Order, model.Pagination, error) {
	q := pageQuery(filter.Page, filter.Limit)
	setIfPresent(q, "status", filter.Status)
	setIfPresent(q, "customer_id", filter.CustomerID)
	setIfPresent(q, "date_from", filter.DateFrom)
	setIfPresent(q, "date_to", filter.DateTo)

	var env ordersEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/orders", q, nil, &env); err != nil {
		return nil, model.Pagination{}, err
	}
	return env.Data.Orders, env.Meta, nil
}

// GetOrder возвращает один заказ по идентификатору.
func (c *Client) GetOrder(ctx context.Context, id string) (*model.Order, error) {
	var env struct {
		Data model.Order `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/orders/"+id, nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
