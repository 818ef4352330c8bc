package stub

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/mmeshcher/marketplace-admin/internal/governance"
	"github.com/mmeshcher/marketplace-admin/internal/middleware"
	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// Handler реализует HTTP-обработчики заглушки административного API.
type Handler struct {
	store          *Store
	logger         *zap.Logger
	authMiddleware *middleware.AuthMiddleware
}

// NewHandler создаёт новый экземпляр обработчика заглушки.
func NewHandler(store *Store, logger *zap.Logger, auth *middleware.AuthMiddleware) *Handler {
	return &Handler{
		store:          store,
		logger:         logger,
		authMiddleware: auth,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, map[string]any{"data": data})
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeStoreError переводит ошибку хранилища в HTTP-статус.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, governance.ErrReasonRequired):
		writeError(w, http.StatusBadRequest, "reason is required")
	case errors.Is(err, governance.ErrTransitionNotAllowed):
		writeError(w, http.StatusConflict, "status transition is not allowed")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	return page, limit
}

func adminID(r *http.Request) string {
	id, _ := middleware.GetAdminIDFromContext(r.Context())
	return id
}

// ListUsers отдаёт страницу пользователей.
// Конверт исторический: pagination лежит рядом с data.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	users, pg := h.store.ListUsers(r.URL.Query().Get("role"), r.URL.Query().Get("status"), page, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"data":       users,
		"pagination": pg,
	})
}

// GetUser отдаёт одного пользователя.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	u, err := h.store.GetUser(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, u)
}

type reasonRequest struct {
	Reason string `json:"reason"`
}

// BlockUser блокирует пользователя.
func (h *Handler) BlockUser(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.SetUserStatus(chi.URLParam(r, "id"), model.UserStatusBlocked, req.Reason, adminID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UnblockUser снимает блокировку пользователя.
func (h *Handler) UnblockUser(w http.ResponseWriter, r *http.Request) {
	var req reasonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.SetUserStatus(chi.URLParam(r, "id"), model.UserStatusActive, req.Reason, adminID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ForceLogout завершает все сессии пользователя.
func (h *Handler) ForceLogout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ForceLogout(chi.URLParam(r, "id"), adminID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ListMerchants отдаёт страницу продавцов.
// Конверт исторический: и список, и pagination вложены внутрь data.
func (h *Handler) ListMerchants(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	merchants, pg := h.store.ListMerchants(r.URL.Query().Get("status"), page, limit)
	writeData(w, map[string]any{
		"merchants":  merchants,
		"pagination": pg,
	})
}

// GetMerchant отдаёт одного продавца.
func (h *Handler) GetMerchant(w http.ResponseWriter, r *http.Request) {
	m, err := h.store.GetMerchant(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, m)
}

// SetMerchantStatus переводит продавца в новый статус.
func (h *Handler) SetMerchantStatus(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Status model.GovernanceStatus `json:"status"`
		Reason string                 `json:"reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.SetMerchantStatus(chi.URLParam(r, "id"), req.Status, req.Reason, adminID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ListOrders отдаёт страницу заказов.
// Конверт исторический: список внутри data, метаданные в meta.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	q := r.URL.Query()
	orders, pg := h.store.ListOrders(q.Get("status"), q.Get("customer_id"), q.Get("date_from"), q.Get("date_to"), page, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"data": map[string]any{"orders": orders},
		"meta": pg,
	})
}

// GetOrder отдаёт один заказ.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.store.GetOrder(chi.URLParam(r, "id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, o)
}

type categoryRequestBody struct {
	Name      string `json:"name"`
	ParentID  string `json:"parent_id"`
	SortOrder int    `json:"sort_order"`
	IsActive  bool   `json:"is_active"`
}

// ListCategories отдаёт все категории.
func (h *Handler) ListCategories(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.store.ListCategories())
}

// CreateCategory создаёт категорию.
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	c := model.Category{
		Name:      req.Name,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		IsActive:  req.IsActive,
	}
	c.ID = h.store.AddCategory(c)
	writeData(w, c)
}

// UpdateCategory обновляет категорию.
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequestBody
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	c, err := h.store.UpdateCategory(chi.URLParam(r, "id"), req.Name, req.ParentID, req.SortOrder, req.IsActive)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeData(w, c)
}

// DeleteCategory удаляет категорию.
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteCategory(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ToggleCategory переключает признак активности категории.
func (h *Handler) ToggleCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ToggleCategory(chi.URLParam(r, "id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// UploadCategoryImage принимает изображение категории multipart-запросом.
func (h *Handler) UploadCategoryImage(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	if err := h.store.SetCategoryImage(chi.URLParam(r, "id"), header.Filename); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ListCategoryRequests отдаёт запросы на категории.
func (h *Handler) ListCategoryRequests(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.store.ListCategoryRequests(r.URL.Query().Get("status")))
}

// ApproveCategoryRequest одобряет запрос на категорию.
func (h *Handler) ApproveCategoryRequest(w http.ResponseWriter, r *http.Request) {
	if err := h.store.ApproveCategoryRequest(chi.URLParam(r, "id"), adminID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// RejectCategoryRequest отклоняет запрос на категорию.
func (h *Handler) RejectCategoryRequest(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RejectionReason string `json:"rejection_reason"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.RejectCategoryRequest(chi.URLParam(r, "id"), req.RejectionReason, adminID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ListWithdrawals отдаёт заявки на вывод средств.
func (h *Handler) ListWithdrawals(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.store.ListWithdrawals(r.URL.Query().Get("status")))
}

type adminNotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

// ApproveWithdrawal одобряет заявку на вывод средств.
func (h *Handler) ApproveWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req adminNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.ApproveWithdrawal(chi.URLParam(r, "id"), req.AdminNotes, adminID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// RejectWithdrawal отклоняет заявку на вывод средств.
func (h *Handler) RejectWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req adminNotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.store.RejectWithdrawal(chi.URLParam(r, "id"), req.AdminNotes, adminID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// ListAuditLogs отдаёт страницу журнала действий.
// Конверт исторический: pagination вложена внутрь meta.
func (h *Handler) ListAuditLogs(w http.ResponseWriter, r *http.Request) {
	page, limit := pageParams(r)
	entries, pg := h.store.ListAuditLogs(r.URL.Query().Get("action"), r.URL.Query().Get("target_type"), page, limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"data": entries,
		"meta": map[string]any{"pagination": pg},
	})
}

// SalesTrend отдаёт динамику продаж.
func (h *Handler) SalesTrend(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.URL.Query().Get("days"))
	writeData(w, h.store.SalesTrend(days))
}

// CategoryPerformance отдаёт продажи по категориям.
func (h *Handler) CategoryPerformance(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.store.CategoryPerformance())
}

// TopProducts отдаёт рейтинг товаров.
func (h *Handler) TopProducts(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	writeData(w, h.store.TopProducts(limit))
}

// GetSettings отдаёт платформенные настройки.
func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.store.GetSettings())
}

// UpdateSettings сохраняет платформенные настройки.
func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var req model.Settings
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	writeData(w, h.store.UpdateSettings(req))
}

// DashboardStats отдаёт сводные показатели.
func (h *Handler) DashboardStats(w http.ResponseWriter, r *http.Request) {
	writeData(w, h.store.DashboardStats())
}
