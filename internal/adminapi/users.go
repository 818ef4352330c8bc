package adminapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// UserFilter задаёт параметры выборки пользователей.
type UserFilter struct {
	Role   string
	Status string
	Page   int
	Limit  int
}

// конверт списка пользователей: pagination лежит рядом с data
type usersEnvelope struct {
	Data       []model.User     `json:"data"`
	Pagination model.Pagination `json:"pagination"`
}

// ListUsers возвращает страницу пользователей по фильтру.
func (c *Client) ListUsers(ctx context.Context, filter UserFilter) ([]model.User, model.Pagination, error) {
	q := pageQuery(filter.Page, filter.Limit)
	setIfPresent(q, "role", filter.Role)
	setIfPresent(q, "status", filter.Status)

	var env usersEnvelope
	if err := c.do(ctx, http.MethodGet, "/admin/users", q, nil, &env); err != nil {
		return nil, model.Pagination{}, err
	}
	return env.Data, env.Pagination, nil
}

// GetUser возвращает одного пользователя по идентификатору.
func (c *Client) GetUser(ctx context.Context, id string) (*model.User, error) {
	var env struct {
		Data model.User `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/users/"+id, nil, nil, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// BlockUser блокирует пользователя. Причина обязательна.
func (c *Client) BlockUser(ctx context.Context, id, reason string) error {
	path := fmt.Sprintf("/admin/users/%s/block", id)
	return c.do(ctx, http.MethodPatch, path, nil, reasonRequest{Reason: reason}, nil)
}

// UnblockUser снимает блокировку пользователя.
func (c *Client) UnblockUser(ctx context.Context, id, reason string) error {
	path := fmt.Sprintf("/admin/users/%s/unblock", id)
	return c.do(ctx, http.MethodPatch, path, nil, reasonRequest{Reason: reason}, nil)
}

// ForceLogoutUser принудительно завершает все сессии пользователя.
func (c *Client) ForceLogoutUser(ctx context.Context, id string) error {
	path := fmt.Sprintf("/admin/users/%s/force-logout", id)
	return c.do(ctx, http.MethodPost, path, nil, nil, nil)
}
