package adminapi

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// AuditLogFilter задаёт параметры выборки журнала действий.
type AuditLogFilter struct {
	Action     string
	TargetType string
	Page       int
	Limit      int
}

// конверт журнала: данные в data, pagination внутри meta
type auditLogsEnvelope struct {
	Data []model.AuditLogEntry `json:"data"`
	Meta struct {
		Pagination model.Pagination `json:"pagination"`
	} `json:"meta"`
}

// ListAuditLogs возвращает страницу журнала административных действий.
func (c *Client) ListAuditLogs(ctx context.Context, filter AuditLogFilter) ([]model.AuditLogEntry, model.Pagination, error) {
	q := pageQuery(filter.Page, filter.Limit)
	setIfPresent(q, "action", filter.Action)
	setIfPresent(q, "target_type", filter.TargetType)

	var env auditLogsEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/audit-logs", q, nil, &env); err != nil {
		return nil, model.Pagination{}, err
	}
	return env.Data, env.Meta.Pagination, nil
}

// SalesTrend возвращает динамику продаж за указанное число дней.
func (c *Client) SalesTrend(ctx context.Context, days int) ([]model.SalesPoint, error) {
	q := url.Values{}
	if days > 0 {
		q.Set("days", strconv.Itoa(days))
	}

	var env struct {
		Data []model.SalesPoint `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/analytics/sales-trend", q, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CategoryPerformance возвращает показатели продаж по категориям.
func (c *Client) CategoryPerformance(ctx context.Context) ([]model.CategoryPerformance, error) {
	var env struct {
		Data []model.CategoryPerformance `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/analytics/category-performance", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// TopProducts возвращает рейтинг товаров по продажам.
func (c *Client) TopProducts(ctx context.Context, limit int) ([]model.TopProduct, error) {
	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}

	var env struct {
		Data []model.TopProduct `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/analytics/top-products", q, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// GetSettings возвращает платформенные настройки.
func (c *Client) GetSettings(ctx context.Context) (*model.Settings, error) {
	var env struct {
		Data model.Settings `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/settings", nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateSettings сохраняет платформенные настройки и возвращает новое состояние.
func (c *Client) UpdateSettings(ctx context.Context, s model.Settings) (*model.Settings, error) {
	var env struct {
		Data model.Settings `json:"data"`
	}
	if err := c.do(ctx, http.MethodPatch, "/admin/settings", nil, s, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DashboardStats возвращает сводные показатели для главного экрана.
func (c *Client) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	var env struct {
		Data model.DashboardStats `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/dashboard/stats", nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}
