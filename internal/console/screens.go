package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/mmeshcher/marketplace-admin/internal/adminapi"
	"github.com/mmeshcher/marketplace-admin/internal/model"
	"github.com/mmeshcher/marketplace-admin/internal/view"
)

// pager — экран списка, к которому применимы команды next и prev.
type pager interface {
	next(ctx context.Context) error
	prev(ctx context.Context) error
}

// listScreen связывает контроллер списка с функцией отрисовки таблицы.
type listScreen[T any] struct {
	c      *Console
	list   *view.List[T]
	render func(w io.Writer, items []T)
}

func (s *listScreen[T]) show(ctx context.Context) error {
	<-s.list.Reload(ctx)
	return s.print()
}

func (s *listScreen[T]) print() error {
	items, pg, _, err := s.list.Snapshot()
	if err != nil {
		return err
	}

	s.render(s.c.out, items)
	if pg.Total > 0 {
		fmt.Fprintf(s.c.out, "showing %d-%d of %d (page %d)\n", pg.From(), pg.To(), pg.Total, pg.Page)
	} else if pg.Limit > 0 {
		fmt.Fprintln(s.c.out, "nothing found")
	}

	s.c.current = s
	return nil
}

func (s *listScreen[T]) next(ctx context.Context) error {
	<-s.list.NextPage(ctx)
	return s.print()
}

func (s *listScreen[T]) prev(ctx context.Context) error {
	<-s.list.PrevPage(ctx)
	return s.print()
}

// screens держит контроллеры и текущие фильтры всех экранов консоли.
type screens struct {
	c *Console

	userFilter     adminapi.UserFilter
	merchantFilter adminapi.MerchantFilter
	orderFilter    adminapi.OrderFilter
	auditFilter    adminapi.AuditLogFilter

	withdrawalStatus string
	requestStatus    string

	users       *listScreen[model.User]
	merchants   *listScreen[model.Merchant]
	orders      *listScreen[model.Order]
	audit       *listScreen[model.AuditLogEntry]
	withdrawals *listScreen[model.WithdrawalRequest]
}

func newScreens(c *Console) *screens {
	s := &screens{c: c}

	s.users = &listScreen[model.User]{
		c: c,
		list: view.NewList(c.limit, func(ctx context.Context, page, limit int) ([]model.User, model.Pagination, error) {
			f := s.userFilter
			f.Page = page
			f.Limit = limit
			return c.client.ListUsers(ctx, f)
		}),
		render: renderUsers,
	}
	s.users.list.SetMatch(func(u model.User, q string) bool {
		return containsFold(u.Email, q) || containsFold(u.Name, q)
	})

	s.merchants = &listScreen[model.Merchant]{
		c: c,
		list: view.NewList(c.limit, func(ctx context.Context, page, limit int) ([]model.Merchant, model.Pagination, error) {
			f := s.merchantFilter
			f.Page = page
			f.Limit = limit
			return c.client.ListMerchants(ctx, f)
		}),
		render: renderMerchants,
	}
	s.merchants.list.SetMatch(func(m model.Merchant, q string) bool {
		return containsFold(m.StoreName, q) || containsFold(m.OwnerEmail, q)
	})

	s.orders = &listScreen[model.Order]{
		c: c,
		list: view.NewList(c.limit, func(ctx context.Context, page, limit int) ([]model.Order, model.Pagination, error) {
			f := s.orderFilter
			f.Page = page
			f.Limit = limit
			return c.client.ListOrders(ctx, f)
		}),
		render: renderOrders,
	}

	s.audit = &listScreen[model.AuditLogEntry]{
		c: c,
		list: view.NewList(c.limit, func(ctx context.Context, page, limit int) ([]model.AuditLogEntry, model.Pagination, error) {
			f := s.auditFilter
			f.Page = page
			f.Limit = limit
			return c.client.ListAuditLogs(ctx, f)
		}),
		render: renderAuditLogs,
	}

	// выборка заявок на вывод не постранична, контроллер нужен ради
	// локального поиска и единого цикла перезагрузки
	s.withdrawals = &listScreen[model.WithdrawalRequest]{
		c: c,
		list: view.NewList(c.limit, func(ctx context.Context, _, _ int) ([]model.WithdrawalRequest, model.Pagination, error) {
			items, err := c.client.ListWithdrawals(ctx, adminapi.WithdrawalFilter{Status: s.withdrawalStatus})
			return items, model.Pagination{}, err
		}),
		render: renderWithdrawals,
	}
	s.withdrawals.list.SetMatch(func(wd model.WithdrawalRequest, q string) bool {
		return containsFold(wd.MerchantID, q) || containsFold(wd.BankDetails, q)
	})

	return s
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderUsers(w io.Writer, items []model.User) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tEMAIL\tNAME\tROLE\tSTATUS")
	for _, u := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", u.ID, u.Email, u.Name, u.Role, u.Status)
	}
	tw.Flush()
}

func renderMerchants(w io.Writer, items []model.Merchant) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tSTORE\tOWNER\tSTATUS\tREASON")
	for _, m := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", m.ID, m.StoreName, m.OwnerEmail, m.Status, m.RejectionReason)
	}
	tw.Flush()
}

func renderOrders(w io.Writer, items []model.Order) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tCUSTOMER\tSTATUS\tPAYMENT\tTOTAL\tCREATED")
	for _, o := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%.2f\t%s\n",
			o.ID, o.CustomerID, o.Status, o.Payment.Status, o.Total, o.CreatedAt.Format("2006-01-02"))
	}
	tw.Flush()
}

func renderAuditLogs(w io.Writer, items []model.AuditLogEntry) {
	tw := newTable(w)
	fmt.Fprintln(tw, "TIME\tACTION\tTARGET\tTARGET ID\tADMIN")
	for _, e := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"), e.Action, e.TargetType, e.TargetID, e.AdminID)
	}
	tw.Flush()
}

func renderWithdrawals(w io.Writer, items []model.WithdrawalRequest) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tMERCHANT\tAMOUNT\tSTATUS\tNOTES")
	for _, wd := range items {
		fmt.Fprintf(tw, "%s\t%s\t%.2f\t%s\t%s\n", wd.ID, wd.MerchantID, wd.Amount, wd.Status, wd.AdminNotes)
	}
	tw.Flush()
}

func renderCategoryRequests(w io.Writer, items []model.CategoryRequest) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tMERCHANT\tNAME\tSTATUS\tREASON")
	for _, r := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.MerchantID, r.Name, r.Status, r.RejectionReason)
	}
	tw.Flush()
}

func renderCategories(w io.Writer, items []model.Category) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tPARENT\tORDER\tACTIVE\tIMAGE")
	for _, cat := range items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%t\t%s\n", cat.ID, cat.Name, cat.ParentID, cat.SortOrder, cat.IsActive, cat.ImageURL)
	}
	tw.Flush()
}

func (s *screens) usersCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "block", "unblock", "logout":
			return s.userAction(ctx, args)
		}
	}

	fs := parseFlags(args)
	s.userFilter.Status = fs.get("status")
	s.userFilter.Role = fs.get("role")
	s.users.list.SetQuery(fs.get("search"))
	<-s.users.list.SetPage(ctx, fs.page())
	return s.users.print()
}

func (s *screens) userDetail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: user <id>")
	}
	u, err := s.c.client.GetUser(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.c.out, "id:      %s\nemail:   %s\nname:    %s\nrole:    %s\nstatus:  %s\ncreated: %s\n",
		u.ID, u.Email, u.Name, u.Role, u.Status, u.CreatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

func (s *screens) merchantsCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "approve", "reject", "suspend":
			return s.merchantAction(ctx, args)
		}
	}

	fs := parseFlags(args)
	s.merchantFilter.Status = fs.get("status")
	s.merchants.list.SetQuery(fs.get("search"))
	<-s.merchants.list.SetPage(ctx, fs.page())
	return s.merchants.print()
}

func (s *screens) merchantDetail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: merchant <id>")
	}
	m, err := s.c.client.GetMerchant(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(s.c.out, "id:      %s\nstore:   %s\nowner:   %s\nphone:   %s\naddress: %s\nstatus:  %s\n",
		m.ID, m.StoreName, m.OwnerEmail, m.Phone, m.Address, m.Status)
	if m.RejectionReason != "" {
		fmt.Fprintf(s.c.out, "reason:  %s\n", m.RejectionReason)
	}
	return nil
}

func (s *screens) ordersCommand(ctx context.Context, args []string) error {
	fs := parseFlags(args)
	s.orderFilter.Status = fs.get("status")
	s.orderFilter.CustomerID = fs.get("customer")
	s.orderFilter.DateFrom = fs.get("from")
	s.orderFilter.DateTo = fs.get("to")
	<-s.orders.list.SetPage(ctx, fs.page())
	return s.orders.print()
}

func (s *screens) orderDetail(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: order <id>")
	}
	o, err := s.c.client.GetOrder(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Fprintf(s.c.out, "id:       %s\ncustomer: %s\nstatus:   %s\ntotal:    %.2f\npayment:  %s %s %.2f\n",
		o.ID, o.CustomerID, o.Status, o.Total, o.Payment.Method, o.Payment.Status, o.Payment.Amount)

	fmt.Fprintln(s.c.out, "items:")
	tw := newTable(s.c.out)
	fmt.Fprintln(tw, "\tPRODUCT\tQTY\tPRICE")
	for _, it := range o.Items {
		fmt.Fprintf(tw, "\t%s\t%d\t%.2f\n", it.ProductName, it.Quantity, it.Price)
	}
	tw.Flush()

	fmt.Fprintln(s.c.out, "sub-orders:")
	tw = newTable(s.c.out)
	fmt.Fprintln(tw, "\tID\tMERCHANT\tSTATUS\tAMOUNT")
	for _, so := range o.SubOrders {
		fmt.Fprintf(tw, "\t%s\t%s\t%s\t%.2f\n", so.ID, so.MerchantID, so.Status, so.Amount)
	}
	tw.Flush()
	return nil
}

func (s *screens) categoriesCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "create", "toggle", "delete":
			return s.categoryAction(ctx, args)
		}
	}

	items, err := s.c.client.ListCategories(ctx)
	if err != nil {
		return err
	}
	renderCategories(s.c.out, items)
	return nil
}

func (s *screens) categoryRequestsCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "approve", "reject":
			return s.categoryRequestAction(ctx, args)
		}
	}

	fs := parseFlags(args)
	s.requestStatus = fs.get("status")
	items, err := s.c.client.ListCategoryRequests(ctx, adminapi.CategoryRequestFilter{Status: s.requestStatus})
	if err != nil {
		return err
	}
	renderCategoryRequests(s.c.out, items)
	return nil
}

func (s *screens) withdrawalsCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		switch args[0] {
		case "approve", "reject":
			return s.withdrawalAction(ctx, args)
		}
	}

	fs := parseFlags(args)
	s.withdrawalStatus = fs.get("status")
	s.withdrawals.list.SetQuery(fs.get("search"))
	<-s.withdrawals.list.Reload(ctx)
	return s.withdrawals.print()
}

func (s *screens) auditCommand(ctx context.Context, args []string) error {
	fs := parseFlags(args)
	s.auditFilter.Action = fs.get("action")
	s.auditFilter.TargetType = fs.get("target")
	<-s.audit.list.SetPage(ctx, fs.page())
	return s.audit.print()
}

func (s *screens) settingsCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		settings, err := s.c.client.GetSettings(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(s.c.out, "commission_rate:       %.4f\nreturn_window_days:    %d\nmin_withdrawal_amount: %.2f\n",
			settings.CommissionRate, settings.ReturnWindowDays, settings.MinWithdrawalAmount)
		return nil
	}

	if len(args) != 3 || args[0] != "set" {
		return fmt.Errorf("usage: settings set <key> <value>")
	}
	return s.updateSetting(ctx, args[1], args[2])
}

func (s *screens) updateSetting(ctx context.Context, key, value string) error {
	settings, err := s.c.client.GetSettings(ctx)
	if err != nil {
		return err
	}

	switch key {
	case "commission_rate":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", value, err)
		}
		settings.CommissionRate = v
	case "return_window_days":
		v, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", value, err)
		}
		settings.ReturnWindowDays = v
	case "min_withdrawal_amount":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("invalid value %q: %w", value, err)
		}
		settings.MinWithdrawalAmount = v
	default:
		return fmt.Errorf("unknown setting %q", key)
	}

	updated, err := s.c.client.UpdateSettings(ctx, *settings)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.c.out, "saved, commission_rate=%.4f return_window_days=%d min_withdrawal_amount=%.2f\n",
		updated.CommissionRate, updated.ReturnWindowDays, updated.MinWithdrawalAmount)
	return nil
}

func (s *screens) statsCommand(ctx context.Context) error {
	stats, err := s.c.client.DashboardStats(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(s.c.out, "users:             %d\nmerchants:         %d\npending merchants: %d\norders:            %d\nrevenue:           %.2f\n",
		stats.TotalUsers, stats.TotalMerchants, stats.PendingMerchants, stats.TotalOrders, stats.TotalRevenue)
	return nil
}

func (s *screens) analyticsCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: analytics sales|categories|products")
	}

	switch args[0] {
	case "sales":
		days := 7
		if len(args) > 1 {
			if v, err := strconv.Atoi(args[1]); err == nil {
				days = v
			}
		}
		points, err := s.c.client.SalesTrend(ctx, days)
		if err != nil {
			return err
		}
		tw := newTable(s.c.out)
		fmt.Fprintln(tw, "DATE\tORDERS\tREVENUE")
		for _, p := range points {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", p.Date, p.Orders, p.Revenue)
		}
		tw.Flush()
		return nil
	case "categories":
		perf, err := s.c.client.CategoryPerformance(ctx)
		if err != nil {
			return err
		}
		tw := newTable(s.c.out)
		fmt.Fprintln(tw, "CATEGORY\tORDERS\tREVENUE")
		for _, p := range perf {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", p.CategoryName, p.Orders, p.Revenue)
		}
		tw.Flush()
		return nil
	case "products":
		limit := 10
		if len(args) > 1 {
			if v, err := strconv.Atoi(args[1]); err == nil {
				limit = v
			}
		}
		top, err := s.c.client.TopProducts(ctx, limit)
		if err != nil {
			return err
		}
		tw := newTable(s.c.out)
		fmt.Fprintln(tw, "PRODUCT\tUNITS\tREVENUE")
		for _, p := range top {
			fmt.Fprintf(tw, "%s\t%d\t%.2f\n", p.ProductName, p.UnitsSold, p.Revenue)
		}
		tw.Flush()
		return nil
	default:
		return fmt.Errorf("unknown analytics report %q", args[0])
	}
}
