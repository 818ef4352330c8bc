package stub

import (
	"fmt"
	"time"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// Seed наполняет хранилище демонстрационными данными для локального запуска.
func (s *Store) Seed() {
	now := time.Now().UTC()

	customers := make([]string, 0, 8)
	for i := 1; i <= 8; i++ {
		id := s.AddUser(model.User{
			Email:     fmt.Sprintf("customer%d@example.com", i),
			Name:      fmt.Sprintf("Customer %d", i),
			Role:      model.RoleCustomer,
			Status:    model.UserStatusActive,
			CreatedAt: now.AddDate(0, 0, -i),
		})
		customers = append(customers, id)
	}
	s.AddUser(model.User{
		Email:  "blocked@example.com",
		Name:   "Blocked Customer",
		Role:   model.RoleCustomer,
		Status: model.UserStatusBlocked,
	})
	s.AddUser(model.User{
		Email:  "root@example.com",
		Name:   "Platform Admin",
		Role:   model.RoleSuperAdmin,
		Status: model.UserStatusActive,
	})

	merchants := make([]string, 0, 5)
	statuses := []model.GovernanceStatus{
		model.StatusApproved,
		model.StatusApproved,
		model.StatusPending,
		model.StatusPending,
		model.StatusSuspended,
	}
	for i, st := range statuses {
		id := s.AddMerchant(model.Merchant{
			StoreName:  fmt.Sprintf("Store %d", i+1),
			OwnerEmail: fmt.Sprintf("owner%d@example.com", i+1),
			Phone:      fmt.Sprintf("+7900000000%d", i),
			Address:    fmt.Sprintf("Market street, %d", i+1),
			Status:     st,
			CreatedAt:  now.AddDate(0, 0, -i*2),
		})
		merchants = append(merchants, id)
	}

	products := []struct {
		id, name string
		price    float64
	}{
		{"p-1", "Wireless Mouse", 1290},
		{"p-2", "Mechanical Keyboard", 4990},
		{"p-3", "USB-C Hub", 2490},
		{"p-4", "Laptop Stand", 1890},
	}

	orderStatuses := []model.OrderStatus{
		model.OrderStatusCreated,
		model.OrderStatusConfirmed,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCancelled,
	}
	for i := 0; i < 12; i++ {
		p := products[i%len(products)]
		qty := i%3 + 1
		total := p.price * float64(qty)
		s.AddOrder(model.Order{
			CustomerID: customers[i%len(customers)],
			Status:     orderStatuses[i%len(orderStatuses)],
			SubOrders: []model.SubOrder{
				{
					ID:         fmt.Sprintf("so-%d", i+1),
					MerchantID: merchants[i%len(merchants)],
					Status:     orderStatuses[i%len(orderStatuses)],
					Amount:     total,
				},
			},
			Items: []model.OrderItem{
				{ProductID: p.id, ProductName: p.name, Quantity: qty, Price: p.price},
			},
			Payment:   model.Payment{Method: "card", Status: "PAID", Amount: total},
			Total:     total,
			CreatedAt: now.AddDate(0, 0, -(i % 7)),
		})
	}

	electronics := s.AddCategory(model.Category{Name: "Electronics", SortOrder: 1, IsActive: true})
	s.AddCategory(model.Category{Name: "Accessories", ParentID: electronics, SortOrder: 2, IsActive: true})
	s.AddCategory(model.Category{Name: "Home", SortOrder: 3, IsActive: false})

	s.AddCategoryRequest(model.CategoryRequest{
		MerchantID: merchants[0],
		Name:       "Gaming Gear",
		ParentID:   electronics,
		Status:     model.StatusPending,
	})
	s.AddCategoryRequest(model.CategoryRequest{
		MerchantID: merchants[1],
		Name:       "Outdoor",
		Status:     model.StatusPending,
	})

	s.AddWithdrawal(model.WithdrawalRequest{
		MerchantID:  merchants[0],
		Amount:      15000,
		BankDetails: "40702810900000000001",
		Status:      model.StatusPending,
	})
	s.AddWithdrawal(model.WithdrawalRequest{
		MerchantID:  merchants[1],
		Amount:      7200,
		BankDetails: "40702810900000000002",
		Status:      model.StatusPending,
	})
	s.AddWithdrawal(model.WithdrawalRequest{
		MerchantID:  merchants[4],
		Amount:      3100,
		BankDetails: "40702810900000000003",
		Status:      model.StatusApproved,
		AdminNotes:  "verified payout",
	})
}
