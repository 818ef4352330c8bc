package stub

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	custommiddleware "github.com/mmeshcher/marketplace-admin/internal/middleware"
)

// SetupRouter настраивает HTTP-маршруты и middleware заглушки.
func (h *Handler) SetupRouter() *chi.Mux {
	r := chi.NewRouter()

	r.Use(custommiddleware.Logger(h.logger))

	r.Route("/admin", func(r chi.Router) {
		r.Use(h.authMiddleware.Middleware)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.ListUsers)
			r.Get("/{id}", h.GetUser)
			r.Patch("/{id}/block", h.BlockUser)
			r.Patch("/{id}/unblock", h.UnblockUser)
			r.Post("/{id}/force-logout", h.ForceLogout)
		})

		r.Route("/merchants", func(r chi.Router) {
			r.Get("/", h.ListMerchants)
			r.Get("/{id}", h.GetMerchant)
			r.Patch("/{id}/status", h.SetMerchantStatus)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", h.ListOrders)
			r.Get("/{id}", h.GetOrder)
		})

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", h.ListCategories)
			r.Post("/", h.CreateCategory)
			r.Patch("/{id}", h.UpdateCategory)
			r.Delete("/{id}", h.DeleteCategory)
			r.Patch("/{id}/toggle-status", h.ToggleCategory)
			r.Post("/{id}/image", h.UploadCategoryImage)
		})

		r.Route("/category-requests", func(r chi.Router) {
			r.Get("/", h.ListCategoryRequests)
			r.Patch("/{id}/approve", h.ApproveCategoryRequest)
			r.Patch("/{id}/reject", h.RejectCategoryRequest)
		})

		r.Route("/withdrawals", func(r chi.Router) {
			r.Get("/", h.ListWithdrawals)
			r.Post("/{id}/approve", h.ApproveWithdrawal)
			r.Post("/{id}/reject", h.RejectWithdrawal)
		})

		r.Get("/audit-logs", h.ListAuditLogs)

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/sales-trend", h.SalesTrend)
			r.Get("/category-performance", h.CategoryPerformance)
			r.Get("/top-products", h.TopProducts)
		})

		r.Get("/settings", h.GetSettings)
		r.Patch("/settings", h.UpdateSettings)

		r.Get("/dashboard/stats", h.DashboardStats)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
	})

	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
	})

	return r
}
