package adminapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// CategoryInput содержит поля создания и редактирования категории.
type CategoryInput struct {
	Name      string `json:"name"`
	ParentID  string `json:"parent_id,omitempty"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// ListCategories возвращает все категории каталога.
func (c *Client) ListCategories(ctx context.Context) ([]model.Category, error) {
	var env struct {
		Data []model.Category `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/categories", nil, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// CreateCategory создаёт новую категорию.
func (c *Client) CreateCategory(ctx context.Context, in CategoryInput) (*model.Category, error) {
	var env struct {
		Data model.Category `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/admin/categories", nil, in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// UpdateCategory обновляет существующую категорию.
func (c *Client) UpdateCategory(ctx context.Context, id string, in CategoryInput) (*model.Category, error) {
	var env struct {
		Data model.Category `json:"data"`
	}
	if err := c.do(ctx, http.MethodPatch, "/admin/categories/"+id, nil, in, &env); err != nil {
		return nil, err
	}
	return &env.Data, nil
}

// DeleteCategory удаляет категорию.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/admin/categories/"+id, nil, nil, nil)
}

// ToggleCategoryStatus переключает признак активности категории.
func (c *Client) ToggleCategoryStatus(ctx context.Context, id string) error {
	path := fmt.Sprintf("/admin/categories/%s/toggle-status", id)
	return c.do(ctx, http.MethodPatch, path, nil, nil, nil)
}

// UploadCategoryImage загружает изображение категории одним multipart-запросом.
func (c *Client) UploadCategoryImage(ctx context.Context, id, filename string, r io.Reader) error {
	path := fmt.Sprintf("/admin/categories/%s/image", id)
	return c.uploadMultipart(ctx, path, "image", filename, r)
}

// CategoryRequestFilter задаёт параметры выборки запросов на категории.
type CategoryRequestFilter struct {
	Status string
}

// ListCategoryRequests возвращает запросы продавцов на новые категории.
func (c *Client) ListCategoryRequests(ctx context.Context, filter CategoryRequestFilter) ([]model.CategoryRequest, error) {
	q := url.Values{}
	setIfPresent(q, "status", filter.Status)

	var env struct {
		Data []model.CategoryRequest `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/category-requests", q, nil, &env); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// ApproveCategoryRequest одобряет запрос на категорию. Тело запроса пустое,
// категория создаётся на стороне бэкенда.
func (c *Client) ApproveCategoryRequest(ctx context.Context, id string) error {
	path := fmt.Sprintf("/admin/category-requests/%s/approve", id)
	return c.do(ctx, http.MethodPatch, path, nil, nil, nil)
}

type rejectCategoryRequest struct {
	RejectionReason string `json:"rejection_reason"`
}

// RejectCategoryRequest отклоняет запрос на категорию с указанием причины.
func (c *Client) RejectCategoryRequest(ctx context.Context, id, reason string) error {
	path := fmt.Sprintf("/admin/category-requests/%s/reject", id)
	return c.do(ctx, http.MethodPatch, path, nil, rejectCategoryRequest{RejectionReason: reason}, nil)
}
