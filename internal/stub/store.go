// Package stub реализует заглушку административного API маркетплейса:
// chi-маршрутизатор поверх хранилища в памяти. Заглушка воспроизводит
// контракт реального бэкенда, включая исторически разные формы конвертов
// ответов и побочные эффекты модерации, и используется тестами клиента
// и для локального запуска консоли. Настоящего хранилища у неё нет.
package stub

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mmeshcher/marketplace-admin/internal/governance"
	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// ErrNotFound возвращается, когда сущность с указанным идентификатором не существует.
var ErrNotFound = errors.New("entity not found")

// Store хранит сущности маркетплейса в памяти.
type Store struct {
	mu               sync.Mutex
	users            []model.User
	merchants        []model.Merchant
	orders           []model.Order
	categories       []model.Category
	categoryRequests []model.CategoryRequest
	withdrawals      []model.WithdrawalRequest
	auditLog         []model.AuditLogEntry
	settings         model.Settings
	disbursed        map[string]bool
	reversed         map[string]bool
}

// NewStore создаёт пустое хранилище с настройками по умолчанию.
func NewStore() *Store {
	return &Store{
		settings: model.Settings{
			CommissionRate:      0.1,
			ReturnWindowDays:    14,
			MinWithdrawalAmount: 500,
		},
		disbursed: make(map[string]bool),
		reversed:  make(map[string]bool),
	}
}

func (s *Store) appendAudit(action, targetType, targetID, adminID string) {
	s.auditLog = append(s.auditLog, model.AuditLogEntry{
		ID:         uuid.NewString(),
		Action:     action,
		TargetType: targetType,
		TargetID:   targetID,
		AdminID:    adminID,
		CreatedAt:  time.Now().UTC(),
	})
}

func paginate[T any](items []T, page, limit int) ([]T, model.Pagination) {
	total := len(items)
	pg := model.Pagination{Page: page, Limit: limit, Total: total}

	from := (page - 1) * limit
	if from >= total {
		return []T{}, pg
	}
	to := from + limit
	if to > total {
		to = total
	}
	return items[from:to], pg
}

// AddUser добавляет пользователя и возвращает его идентификатор.
func (s *Store) AddUser(u model.User) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	s.users = append(s.users, u)
	return u.ID
}

// ListUsers возвращает страницу пользователей по фильтру.
func (s *Store) ListUsers(role, status string, page, limit int) ([]model.User, model.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]model.User, 0, len(s.users))
	for _, u := range s.users {
		if role != "" && string(u.Role) != role {
			continue
		}
		if status != "" && string(u.Status) != status {
			continue
		}
		filtered = append(filtered, u)
	}
	return paginate(filtered, page, limit)
}

// GetUser возвращает пользователя по идентификатору.
func (s *Store) GetUser(id string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			u := s.users[i]
			return &u, nil
		}
	}
	return nil, ErrNotFound
}

// SetUserStatus блокирует или разблокирует пользователя и пишет запись в журнал.
func (s *Store) SetUserStatus(id string, status model.UserStatus, reason, adminID string) error {
	if status == model.UserStatusBlocked && strings.TrimSpace(reason) == "" {
		return governance.ErrReasonRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.users[i].Status = status
			s.users[i].UpdatedAt = time.Now().UTC()
			action := "USER_UNBLOCKED"
			if status == model.UserStatusBlocked {
				action = "USER_BLOCKED"
			}
			s.appendAudit(action, "user", id, adminID)
			return nil
		}
	}
	return ErrNotFound
}

// ForceLogout завершает все сессии пользователя; в заглушке остаётся
// только след в журнале действий.
func (s *Store) ForceLogout(id, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.users {
		if s.users[i].ID == id {
			s.appendAudit("USER_FORCE_LOGOUT", "user", id, adminID)
			return nil
		}
	}
	return ErrNotFound
}

// AddMerchant добавляет продавца и возвращает его идентификатор.
func (s *Store) AddMerchant(m model.Merchant) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.Status == "" {
		m.Status = model.StatusPending
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now().UTC()
	}
	s.merchants = append(s.merchants, m)
	return m.ID
}

// ListMerchants возвращает страницу продавцов по фильтру.
func (s *Store) ListMerchants(status string, page, limit int) ([]model.Merchant, model.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]model.Merchant, 0, len(s.merchants))
	for _, m := range s.merchants {
		if status != "" && string(m.Status) != status {
			continue
		}
		filtered = append(filtered, m)
	}
	return paginate(filtered, page, limit)
}

// GetMerchant возвращает продавца по идентификатору.
func (s *Store) GetMerchant(id string) (*model.Merchant, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.merchants {
		if s.merchants[i].ID == id {
			m := s.merchants[i]
			return &m, nil
		}
	}
	return nil, ErrNotFound
}

// SetMerchantStatus переводит продавца в новый статус по правилам модерации
// и пишет запись в журнал.
func (s *Store) SetMerchantStatus(id string, status model.GovernanceStatus, reason, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.merchants {
		if s.merchants[i].ID != id {
			continue
		}
		if err := governance.Validate(governance.KindMerchant, s.merchants[i].Status, status, reason); err != nil {
			return err
		}
		s.merchants[i].Status = status
		s.merchants[i].UpdatedAt = time.Now().UTC()
		if status == model.StatusRejected {
			s.merchants[i].RejectionReason = reason
		}
		s.appendAudit("MERCHANT_"+string(status), "merchant", id, adminID)
		return nil
	}
	return ErrNotFound
}

// AddOrder добавляет заказ и возвращает его идентификатор.
func (s *Store) AddOrder(o model.Order) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if o.ID == "" {
		o.ID = uuid.NewString()
	}
	if o.CreatedAt.IsZero() {
		o.CreatedAt = time.Now().UTC()
	}
	s.orders = append(s.orders, o)
	return o.ID
}

// ListOrders возвращает страницу заказов по фильтру.
// Даты сравниваются по календарному дню в формате YYYY-MM-DD.
func (s *Store) ListOrders(status, customerID, dateFrom, dateTo string, page, limit int) ([]model.Order, model.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		if status != "" && string(o.Status) != status {
			continue
		}
		if customerID != "" && o.CustomerID != customerID {
			continue
		}
		day := o.CreatedAt.Format("2006-01-02")
		if dateFrom != "" && day < dateFrom {
			continue
		}
		if dateTo != "" && day > dateTo {
			continue
		}
		filtered = append(filtered, o)
	}
	return paginate(filtered, page, limit)
}

// GetOrder возвращает заказ по идентификатору.
func (s *Store) GetOrder(id string) (*model.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.orders {
		if s.orders[i].ID == id {
			o := s.orders[i]
			return &o, nil
		}
	}
	return nil, ErrNotFound
}

// AddCategory добавляет категорию и возвращает её идентификатор.
func (s *Store) AddCategory(c model.Category) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.addCategoryLocked(c)
}

func (s *Store) addCategoryLocked(c model.Category) string {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	s.categories = append(s.categories, c)
	return c.ID
}

// ListCategories возвращает все категории, упорядоченные по sort_order.
func (s *Store) ListCategories() []model.Category {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SortOrder < out[j].SortOrder
	})
	return out
}

// UpdateCategory обновляет поля категории.
func (s *Store) UpdateCategory(id, name, parentID string, sortOrder int, isActive bool) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].Name = name
			s.categories[i].ParentID = parentID
			s.categories[i].SortOrder = sortOrder
			s.categories[i].IsActive = isActive
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// DeleteCategory удаляет категорию.
func (s *Store) DeleteCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

// ToggleCategory переключает признак активности категории.
func (s *Store) ToggleCategory(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].IsActive = !s.categories[i].IsActive
			return nil
		}
	}
	return ErrNotFound
}

// SetCategoryImage сохраняет ссылку на загруженное изображение категории.
func (s *Store) SetCategoryImage(id, filename string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categories {
		if s.categories[i].ID == id {
			s.categories[i].ImageURL = fmt.Sprintf("/static/categories/%s/%s", id, filename)
			return nil
		}
	}
	return ErrNotFound
}

// AddCategoryRequest добавляет запрос на категорию и возвращает его идентификатор.
func (s *Store) AddCategoryRequest(r model.CategoryRequest) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = model.StatusPending
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.categoryRequests = append(s.categoryRequests, r)
	return r.ID
}

// ListCategoryRequests возвращает запросы на категории по фильтру статуса.
func (s *Store) ListCategoryRequests(status string) []model.CategoryRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.CategoryRequest, 0, len(s.categoryRequests))
	for _, r := range s.categoryRequests {
		if status != "" && string(r.Status) != status {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ApproveCategoryRequest одобряет запрос: запрос получает статус APPROVED,
// из него создаётся новая категория, в журнал пишется запись.
func (s *Store) ApproveCategoryRequest(id, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categoryRequests {
		if s.categoryRequests[i].ID != id {
			continue
		}
		r := &s.categoryRequests[i]
		if err := governance.Validate(governance.KindCategoryRequest, r.Status, model.StatusApproved, ""); err != nil {
			return err
		}
		r.Status = model.StatusApproved
		s.addCategoryLocked(model.Category{
			Name:     r.Name,
			ParentID: r.ParentID,
			IsActive: true,
		})
		s.appendAudit("CATEGORY_REQUEST_APPROVED", "category_request", id, adminID)
		return nil
	}
	return ErrNotFound
}

// RejectCategoryRequest отклоняет запрос с указанием причины.
func (s *Store) RejectCategoryRequest(id, reason, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.categoryRequests {
		if s.categoryRequests[i].ID != id {
			continue
		}
		r := &s.categoryRequests[i]
		if err := governance.Validate(governance.KindCategoryRequest, r.Status, model.StatusRejected, reason); err != nil {
			return err
		}
		r.Status = model.StatusRejected
		r.RejectionReason = reason
		s.appendAudit("CATEGORY_REQUEST_REJECTED", "category_request", id, adminID)
		return nil
	}
	return ErrNotFound
}

// AddWithdrawal добавляет заявку на вывод средств и возвращает её идентификатор.
func (s *Store) AddWithdrawal(w model.WithdrawalRequest) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Status == "" {
		w.Status = model.StatusPending
	}
	if w.CreatedAt.IsZero() {
		w.CreatedAt = time.Now().UTC()
	}
	s.withdrawals = append(s.withdrawals, w)
	return w.ID
}

// ListWithdrawals возвращает заявки на вывод средств по фильтру статуса.
func (s *Store) ListWithdrawals(status string) []model.WithdrawalRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.WithdrawalRequest, 0, len(s.withdrawals))
	for _, w := range s.withdrawals {
		if status != "" && string(w.Status) != status {
			continue
		}
		out = append(out, w)
	}
	return out
}

// ApproveWithdrawal одобряет заявку: статус APPROVED, выплата помечается
// выполненной, в журнал пишется запись.
func (s *Store) ApproveWithdrawal(id, notes, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.withdrawals {
		if s.withdrawals[i].ID != id {
			continue
		}
		w := &s.withdrawals[i]
		if err := governance.Validate(governance.KindWithdrawal, w.Status, model.StatusApproved, notes); err != nil {
			return err
		}
		w.Status = model.StatusApproved
		w.AdminNotes = notes
		s.disbursed[id] = true
		s.appendAudit("WITHDRAWAL_APPROVED", "withdrawal", id, adminID)
		return nil
	}
	return ErrNotFound
}

// RejectWithdrawal отклоняет заявку: статус REJECTED, средства помечаются
// возвращёнными продавцу, в журнал пишется запись.
func (s *Store) RejectWithdrawal(id, notes, adminID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.withdrawals {
		if s.withdrawals[i].ID != id {
			continue
		}
		w := &s.withdrawals[i]
		if err := governance.Validate(governance.KindWithdrawal, w.Status, model.StatusRejected, notes); err != nil {
			return err
		}
		w.Status = model.StatusRejected
		w.AdminNotes = notes
		s.reversed[id] = true
		s.appendAudit("WITHDRAWAL_REJECTED", "withdrawal", id, adminID)
		return nil
	}
	return ErrNotFound
}

// Disbursed сообщает, была ли по заявке выполнена выплата.
func (s *Store) Disbursed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disbursed[id]
}

// Reversed сообщает, были ли средства по заявке возвращены продавцу.
func (s *Store) Reversed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reversed[id]
}

// ListAuditLogs возвращает страницу журнала административных действий.
func (s *Store) ListAuditLogs(action, targetType string, page, limit int) ([]model.AuditLogEntry, model.Pagination) {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := make([]model.AuditLogEntry, 0, len(s.auditLog))
	for _, e := range s.auditLog {
		if action != "" && e.Action != action {
			continue
		}
		if targetType != "" && e.TargetType != targetType {
			continue
		}
		filtered = append(filtered, e)
	}
	return paginate(filtered, page, limit)
}

// GetSettings возвращает платформенные настройки.
func (s *Store) GetSettings() model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings
}

// UpdateSettings сохраняет платформенные настройки.
func (s *Store) UpdateSettings(settings model.Settings) model.Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings = settings
	return s.settings
}

// DashboardStats считает сводные показатели по текущему содержимому хранилища.
func (s *Store) DashboardStats() model.DashboardStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := model.DashboardStats{
		TotalUsers:     len(s.users),
		TotalMerchants: len(s.merchants),
		TotalOrders:    len(s.orders),
	}
	for _, m := range s.merchants {
		if m.Status == model.StatusPending {
			stats.PendingMerchants++
		}
	}
	for _, o := range s.orders {
		stats.TotalRevenue += o.Total
	}
	return stats
}

// SalesTrend считает динамику продаж за последние days дней.
func (s *Store) SalesTrend(days int) []model.SalesPoint {
	if days <= 0 {
		days = 7
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byDay := make(map[string]*model.SalesPoint)
	cutoff := time.Now().UTC().AddDate(0, 0, -days)
	for _, o := range s.orders {
		if o.CreatedAt.Before(cutoff) {
			continue
		}
		day := o.CreatedAt.Format("2006-01-02")
		p, ok := byDay[day]
		if !ok {
			p = &model.SalesPoint{Date: day}
			byDay[day] = p
		}
		p.Orders++
		p.Revenue += o.Total
	}

	out := make([]model.SalesPoint, 0, len(byDay))
	for _, p := range byDay {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// CategoryPerformance считает продажи по категориям.
// Товары в заглушке распределяются по категориям по кругу.
func (s *Store) CategoryPerformance() []model.CategoryPerformance {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.categories) == 0 {
		return []model.CategoryPerformance{}
	}

	out := make([]model.CategoryPerformance, len(s.categories))
	for i, c := range s.categories {
		out[i] = model.CategoryPerformance{CategoryID: c.ID, CategoryName: c.Name}
	}
	for _, o := range s.orders {
		for j, it := range o.Items {
			idx := j % len(s.categories)
			out[idx].Orders++
			out[idx].Revenue += it.Price * float64(it.Quantity)
		}
	}
	return out
}

// TopProducts считает рейтинг товаров по продажам.
func (s *Store) TopProducts(limit int) []model.TopProduct {
	if limit <= 0 {
		limit = 10
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	byProduct := make(map[string]*model.TopProduct)
	for _, o := range s.orders {
		for _, it := range o.Items {
			p, ok := byProduct[it.ProductID]
			if !ok {
				p = &model.TopProduct{ProductID: it.ProductID, ProductName: it.ProductName}
				byProduct[it.ProductID] = p
			}
			p.UnitsSold += it.Quantity
			p.Revenue += it.Price * float64(it.Quantity)
		}
	}

	out := make([]model.TopProduct, 0, len(byProduct))
	for _, p := range byProduct {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UnitsSold > out[j].UnitsSold })
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
