// Package model содержит доменные сущности админ-консоли маркетплейса.
//
// Все сущности принадлежат бэкенду и хранятся в нём; клиент держит
// только эфемерные копии в рамках жизни одного экрана.
package model

import "time"

// UserRole описывает роль пользователя на платформе.
type UserRole string

const (
	RoleCustomer   UserRole = "CUSTOMER"
	RoleMerchant   UserRole = "MERCHANT"
	RoleSuperAdmin UserRole = "SUPER_ADMIN"
)

// UserStatus описывает статус учётной записи пользователя.
type UserStatus string

const (
	UserStatusActive  UserStatus = "ACTIVE"
	UserStatusBlocked UserStatus = "BLOCKED"
	UserStatusDeleted UserStatus = "DELETED"
)

// User представляет учётную запись пользователя платформы.
type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      UserRole   `json:"role"`
	Status    UserStatus `json:"status"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// GovernanceStatus описывает статус модерируемой сущности:
// продавца, заявки на вывод средств или запроса на категорию.
type GovernanceStatus string

const (
	StatusPending   GovernanceStatus = "PENDING"
	StatusApproved  GovernanceStatus = "APPROVED"
	StatusRejected  GovernanceStatus = "REJECTED"
	StatusSuspended GovernanceStatus = "SUSPENDED"
)

// Merchant представляет магазин продавца и его статус модерации.
type Merchant struct {
	ID              string           `json:"id"`
	StoreName       string           `json:"store_name"`
	OwnerEmail      string           `json:"owner_email"`
	Phone           string           `json:"phone"`
	Address         string           `json:"address"`
	Status          GovernanceStatus `json:"status"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// OrderStatus описывает статус обработки заказа.
type OrderStatus string

const (
	OrderStatusCreated         OrderStatus = "CREATED"
	OrderStatusConfirmed       OrderStatus = "CONFIRMED"
	OrderStatusPacked          OrderStatus = "PACKED"
	OrderStatusShipped         OrderStatus = "SHIPPED"
	OrderStatusDelivered       OrderStatus = "DELIVERED"
	OrderStatusCancelled       OrderStatus = "CANCELLED"
	OrderStatusReturnRequested OrderStatus = "RETURN_REQUESTED"
	OrderStatusReturned        OrderStatus = "RETURNED"
)

// OrderItem описывает одну позицию заказа.
type OrderItem struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

// SubOrder описывает часть заказа, закреплённую за одним продавцом.
type SubOrder struct {
	ID         string      `json:"id"`
	MerchantID string      `json:"merchant_id"`
	Status     OrderStatus `json:"status"`
	Amount     float64     `json:"amount"`
}

// Payment описывает платёж по заказу.
type Payment struct {
	Method string  `json:"method"`
	Status string  `json:"status"`
	Amount float64 `json:"amount"`
}

// Order представляет заказ покупателя целиком.
type Order struct {
	ID         string      `json:"id"`
	CustomerID string      `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	SubOrders  []SubOrder  `json:"sub_orders"`
	Items      []OrderItem `json:"items"`
	Payment    Payment     `json:"payment"`
	Total      float64     `json:"total"`
	CreatedAt  time.Time   `json:"created_at"`
}

// Category представляет категорию каталога.
// Иерархия задаётся через ParentID, глубина вложенности не ограничена.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ParentID  string    `json:"parent_id,omitempty"`
	SortOrder int       `json:"sort_order"`
	IsActive  bool      `json:"is_active"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CategoryRequest представляет предложение продавца о новой категории.
// Одобрение запроса создаёт категорию на стороне бэкенда.
type CategoryRequest struct {
	ID              string           `json:"id"`
	MerchantID      string           `json:"merchant_id"`
	Name            string           `json:"name"`
	ParentID        string           `json:"parent_id,omitempty"`
	Status          GovernanceStatus `json:"status"`
	RejectionReason string           `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time        `json:"created_at"`
}

// WithdrawalRequest представляет заявку продавца на вывод средств.
type WithdrawalRequest struct {
	ID          string           `json:"id"`
	MerchantID  string           `json:"merchant_id"`
	Amount      float64          `json:"amount"`
	BankDetails string           `json:"bank_details"`
	Status      GovernanceStatus `json:"status"`
	AdminNotes  string           `json:"admin_notes,omitempty"`
	CreatedAt   time.Time        `json:"created_at"`
}

// AuditLogEntry представляет запись журнала административных действий.
// Журнал ведёт бэкенд, записи неизменяемы и только добавляются.
type AuditLogEntry struct {
	ID         string    `json:"id"`
	Action     string    `json:"action"`
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	AdminID    string    `json:"admin_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// Settings содержит платформенные константы.
type Settings struct {
	CommissionRate      float64 `json:"commission_rate"`
	ReturnWindowDays    int     `json:"return_window_days"`
	MinWithdrawalAmount float64 `json:"min_withdrawal_amount"`
}

// DashboardStats содержит сводные показатели для главного экрана.
type DashboardStats struct {
	TotalUsers       int     `json:"total_users"`
	TotalMerchants   int     `json:"total_merchants"`
	PendingMerchants int     `json:"pending_merchants"`
	TotalOrders      int     `json:"total_orders"`
	TotalRevenue     float64 `json:"total_revenue"`
}

// SalesPoint описывает одну точку графика продаж.
type SalesPoint struct {
	Date    string  `json:"date"`
	Orders  int     `json:"orders"`
	Revenue float64 `json:"revenue"`
}

// CategoryPerformance описывает продажи по одной категории.
type CategoryPerformance struct {
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Orders       int     `json:"orders"`
	Revenue      float64 `json:"revenue"`
}

// TopProduct описывает товар из рейтинга продаж.
type TopProduct struct {
	ProductID   string  `json:"product_id"`
	ProductName string  `json:"product_name"`
	UnitsSold   int     `json:"units_sold"`
	Revenue     float64 `json:"revenue"`
}

// Pagination содержит метаданные постраничного вывода в едином
// клиентском виде независимо от формы конверта конкретного эндпоинта.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// From возвращает порядковый номер первого элемента страницы, считая с единицы.
func (p Pagination) From() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Page-1)*p.Limit + 1
}

// To возвращает порядковый номер последнего элемента страницы.
func (p Pagination) To() int {
	to := p.Page * p.Limit
	if to > p.Total {
		to = p.Total
	}
	return to
}

// HasPrev сообщает, доступна ли предыдущая страница.
func (p Pagination) HasPrev() bool {
	return p.Page > 1
}

// HasNext сообщает, доступна ли следующая страница.
func (p Pagination) HasNext() bool {
	return p.Page*p.Limit < p.Total
}
