package stub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/mmeshcher/marketplace-admin/internal/adminapi"
	"github.com/mmeshcher/marketplace-admin/internal/middleware"
	"github.com/mmeshcher/marketplace-admin/internal/model"
)

const testToken = "test-token"

func newTestServer(t *testing.T) (*Store, *adminapi.Client) {
	t.Helper()

	store := NewStore()
	h := NewHandler(store, zap.NewNop(), middleware.NewAuthMiddleware(testToken, "admin-1"))

	ts := httptest.NewServer(h.SetupRouter())
	t.Cleanup(ts.Close)

	return store, adminapi.NewClient(ts.URL, testToken, time.Second)
}

func TestAuth_RejectsWrongToken(t *testing.T) {
	store := NewStore()
	h := NewHandler(store, zap.NewNop(), middleware.NewAuthMiddleware(testToken, "admin-1"))

	ts := httptest.NewServer(h.SetupRouter())
	defer ts.Close()

	client := adminapi.NewClient(ts.URL, "wrong", time.Second)

	_, _, err := client.ListUsers(context.Background(), adminapi.UserFilter{})
	require.Error(t, err)

	apiErr, ok := err.(*adminapi.Error)
	require.True(t, ok, "error must be normalized: %v", err)
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, "invalid or missing token", apiErr.Message)
}

func TestUsers_ListFilterAndBlock(t *testing.T) {
	store, client := newTestServer(t)

	id := store.AddUser(model.User{Email: "a@example.com", Role: model.RoleCustomer, Status: model.UserStatusActive})
	store.AddUser(model.User{Email: "b@example.com", Role: model.RoleMerchant, Status: model.UserStatusActive})

	users, pg, err := client.ListUsers(context.Background(), adminapi.UserFilter{Role: "CUSTOMER"})
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, 1, pg.Total)

	require.NoError(t, client.BlockUser(context.Background(), id, "abusive reviews"))

	u, err := client.GetUser(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, model.UserStatusBlocked, u.Status)

	entries, _, err := client.ListAuditLogs(context.Background(), adminapi.AuditLogFilter{TargetType: "user"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "USER_BLOCKED", entries[0].Action)
	assert.Equal(t, id, entries[0].TargetID)
	assert.Equal(t, "admin-1", entries[0].AdminID)
}

func TestMerchants_Pagination(t *testing.T) {
	store, client := newTestServer(t)

	for i := 0; i < 25; i++ {
		store.AddMerchant(model.Merchant{StoreName: "Store", Status: model.StatusPending})
	}

	merchants, pg, err := client.ListMerchants(context.Background(), adminapi.MerchantFilter{Status: "PENDING", Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, merchants, 10)
	assert.Equal(t, 2, pg.Page)
	assert.Equal(t, 25, pg.Total)
	assert.Equal(t, 11, pg.From())
	assert.Equal(t, 20, pg.To())

	merchants, pg, err = client.ListMerchants(context.Background(), adminapi.MerchantFilter{Status: "PENDING", Page: 3, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, merchants, 5)
	assert.False(t, pg.HasNext())
	assert.True(t, pg.HasPrev())
}

func TestMerchants_GovernanceTransitions(t *testing.T) {
	store, client := newTestServer(t)
	ctx := context.Background()

	id := store.AddMerchant(model.Merchant{StoreName: "Mega Store", Status: model.StatusPending})

	// отклонение без причины не проходит
	err := client.SetMerchantStatus(ctx, id, model.StatusRejected, "")
	require.Error(t, err)
	apiErr := err.(*adminapi.Error)
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)

	m, err := client.GetMerchant(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, m.Status, "failed mutation must leave status untouched")

	// одобрение, затем приостановка с причиной, затем возврат в работу
	require.NoError(t, client.SetMerchantStatus(ctx, id, model.StatusApproved, ""))
	require.NoError(t, client.SetMerchantStatus(ctx, id, model.StatusSuspended, "counterfeit goods"))
	require.NoError(t, client.SetMerchantStatus(ctx, id, model.StatusApproved, "issue resolved"))

	// запрещённый переход
	err = client.SetMerchantStatus(ctx, id, model.StatusPending, "back")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, err.(*adminapi.Error).Status)

	entries, _, err := client.ListAuditLogs(ctx, adminapi.AuditLogFilter{TargetType: "merchant"})
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "MERCHANT_APPROVED", entries[0].Action)
	assert.Equal(t, "MERCHANT_SUSPENDED", entries[1].Action)
	assert.Equal(t, "MERCHANT_APPROVED", entries[2].Action)
}

func TestWithdrawals_ApproveDisbursesAndLogs(t *testing.T) {
	store, client := newTestServer(t)
	ctx := context.Background()

	id := store.AddWithdrawal(model.WithdrawalRequest{MerchantID: "m-1", Amount: 9000})

	require.NoError(t, client.ApproveWithdrawal(ctx, id, "verified payout"))

	items, err := client.ListWithdrawals(ctx, adminapi.WithdrawalFilter{Status: "APPROVED"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, model.StatusApproved, items[0].Status)
	assert.Equal(t, "verified payout", items[0].AdminNotes)
	assert.True(t, store.Disbursed(id), "approval must trigger disbursement")

	// повторное одобрение — запрещённый переход
	err = client.ApproveWithdrawal(ctx, id, "")
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, err.(*adminapi.Error).Status)
}

func TestWithdrawals_RejectRequiresNotesAndReverses(t *testing.T) {
	store, client := newTestServer(t)
	ctx := context.Background()

	id := store.AddWithdrawal(model.WithdrawalRequest{MerchantID: "m-1", Amount: 9000})

	err := client.RejectWithdrawal(ctx, id, "   ")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, err.(*adminapi.Error).Status)
	assert.False(t, store.Reversed(id))

	require.NoError(t, client.RejectWithdrawal(ctx, id, "insufficient KYC"))

	items, err := client.ListWithdrawals(ctx, adminapi.WithdrawalFilter{Status: "REJECTED"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "insufficient KYC", items[0].AdminNotes)
	assert.True(t, store.Reversed(id), "rejection must reverse the funds")
}

func TestCategoryRequests_ApprovalPromotesCategory(t *testing.T) {
	store, client := newTestServer(t)
	ctx := context.Background()

	parent := store.AddCategory(model.Category{Name: "Electronics", IsActive: true})
	id := store.AddCategoryRequest(model.CategoryRequest{MerchantID: "m-1", Name: "Gaming Gear", ParentID: parent})

	require.NoError(t, client.ApproveCategoryRequest(ctx, id))

	requests, err := client.ListCategoryRequests(ctx, adminapi.CategoryRequestFilter{Status: "APPROVED"})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, id, requests[0].ID)

	categories, err := client.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 2)

	var promoted *model.Category
	for i := range categories {
		if categories[i].Name == "Gaming Gear" {
			promoted = &categories[i]
		}
	}
	require.NotNil(t, promoted, "approval must create the category")
	assert.Equal(t, parent, promoted.ParentID)
	assert.True(t, promoted.IsActive)
}

func TestCategoryRequests_Reject(t *testing.T) {
	store, client := newTestServer(t)
	ctx := context.Background()

	id := store.AddCategoryRequest(model.CategoryRequest{MerchantID: "m-1", Name: "Grey Market"})

	require.NoError(t, client.RejectCategoryRequest(ctx, id, "duplicate of an existing category"))

	requests, err := client.ListCategoryRequests(ctx, adminapi.CategoryRequestFilter{Status: "REJECTED"})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, "duplicate of an existing category", requests[0].RejectionReason)

	categories, err := client.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories, "rejection must not create a category")
}

func TestCategories_CRUDAndImage(t *testing.T) {
	_, client := newTestServer(t)
	ctx := context.Background()

	created, err := client.CreateCategory(ctx, adminapi.CategoryInput{Name: "Books", SortOrder: 5, IsActive: true})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	updated, err := client.UpdateCategory(ctx, created.ID, adminapi.CategoryInput{Name: "Books & Media", SortOrder: 5, IsActive: true})
	require.NoError(t, err)
	assert.Equal(t, "Books & Media", updated.Name)

	require.NoError(t, client.ToggleCategoryStatus(ctx, created.ID))

	require.NoError(t, client.UploadCategoryImage(ctx, created.ID, "cover.png", strings.NewReader("png-bytes")))

	categories, err := client.ListCategories(ctx)
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.False(t, categories[0].IsActive)
	assert.Contains(t, categories[0].ImageURL, "cover.png")

	require.NoError(t, client.DeleteCategory(ctx, created.ID))

	categories, err = client.ListCategories(ctx)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestOrders_FilterByDateAndCustomer(t *testing.T) {
	store, client := newTestServer(t)
	ctx := context.Background()

	old := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	recent := time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

	store.AddOrder(model.Order{CustomerID: "c-1", Status: model.OrderStatusDelivered, Total: 100, CreatedAt: old})
	id := store.AddOrder(model.Order{CustomerID: "c-1", Status: model.OrderStatusCreated, Total: 200, CreatedAt: recent})
	store.AddOrder(model.Order{CustomerID: "c-2", Status: model.OrderStatusCreated, Total: 300, CreatedAt: recent})

	orders, pg, err := client.ListOrders(ctx, adminapi.OrderFilter{CustomerID: "c-1", DateFrom: "2026-08-01"})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, id, orders[0].ID)
	assert.Equal(t, 1, pg.Total)

	got, err := client.GetOrder(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.OrderStatusCreated, got.Status)
}

func TestSettingsAndDashboard(t *testing.T) {
	store, client := newTestServer(t)
	ctx := context.Background()

	settings, err := client.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.1, settings.CommissionRate)

	settings.CommissionRate = 0.15
	updated, err := client.UpdateSettings(ctx, *settings)
	require.NoError(t, err)
	assert.Equal(t, 0.15, updated.CommissionRate)

	store.AddMerchant(model.Merchant{Status: model.StatusPending})
	store.AddOrder(model.Order{Total: 500})

	stats, err := client.DashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalMerchants)
	assert.Equal(t, 1, stats.PendingMerchants)
	assert.Equal(t, 500.0, stats.TotalRevenue)
}

func TestAnalytics(t *testing.T) {
	store, client := newTestServer(t)
	ctx := context.Background()

	store.AddCategory(model.Category{Name: "Electronics", IsActive: true})
	now := time.Now().UTC()
	store.AddOrder(model.Order{
		Total:     1290,
		CreatedAt: now,
		Items:     []model.OrderItem{{ProductID: "p-1", ProductName: "Mouse", Quantity: 2, Price: 645}},
	})

	points, err := client.SalesTrend(ctx, 7)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, now.Format("2006-01-02"), points[0].Date)
	assert.Equal(t, 1, points[0].Orders)

	perf, err := client.CategoryPerformance(ctx)
	require.NoError(t, err)
	require.Len(t, perf, 1)
	assert.Equal(t, "Electronics", perf[0].CategoryName)
	assert.Equal(t, 1290.0, perf[0].Revenue)

	top, err := client.TopProducts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, top, 1)
	assert.Equal(t, "Mouse", top[0].ProductName)
	assert.Equal(t, 2, top[0].UnitsSold)
}

func TestNotFound(t *testing.T) {
	_, client := newTestServer(t)

	_, err := client.GetMerchant(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, err.(*adminapi.Error).Status)
}
