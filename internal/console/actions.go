package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmeshcher/marketplace-admin/internal/adminapi"
	"github.com/mmeshcher/marketplace-admin/internal/governance"
	"github.com/mmeshcher/marketplace-admin/internal/model"
	"github.com/mmeshcher/marketplace-admin/internal/view"
)

// confirmTransition проводит переход через единый диалог подтверждения:
// для негативного перехода причина обязательна, для позитивного — необязательная
// заметка. При успехе затронутый список перечитывается ровно один раз.
func (s *screens) confirmTransition(
	ctx context.Context,
	target model.GovernanceStatus,
	negative bool,
	do func(ctx context.Context, reason string) error,
	refetch func(ctx context.Context),
) error {
	conf := &view.Confirmation{Target: target, Negative: negative}

	label := "note (optional): "
	if negative {
		label = "reason: "
	}
	conf.Reason = s.c.prompt(label)

	if !conf.CanConfirm() {
		fmt.Fprintln(s.c.out, "cancelled: reason is required")
		conf.Close()
		return nil
	}

	return conf.Confirm(ctx, func(ctx context.Context, reason string) error {
		return s.c.action.Run(ctx,
			func(ctx context.Context) error { return do(ctx, reason) },
			refetch,
		)
	})
}

// confirmPlain подтверждает действие без причины вопросом да или нет.
func (s *screens) confirmPlain(ctx context.Context, label string, do func(ctx context.Context) error, refetch func(ctx context.Context)) error {
	answer := strings.TrimSpace(strings.ToLower(s.c.prompt(label + " (y/N): ")))
	if answer != "y" && answer != "yes" {
		fmt.Fprintln(s.c.out, "cancelled")
		return nil
	}
	return s.c.action.Run(ctx, do, refetch)
}

func (s *screens) userAction(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: users %s <id>", args[0])
	}
	verb, id := args[0], args[1]

	refetch := func(ctx context.Context) {
		<-s.users.list.Reload(ctx)
		_ = s.users.print()
	}

	switch verb {
	case "block":
		return s.confirmTransition(ctx, model.GovernanceStatus(model.UserStatusBlocked), true,
			func(ctx context.Context, reason string) error {
				return s.c.client.BlockUser(ctx, id, reason)
			}, refetch)
	case "unblock":
		return s.confirmTransition(ctx, model.GovernanceStatus(model.UserStatusActive), false,
			func(ctx context.Context, reason string) error {
				return s.c.client.UnblockUser(ctx, id, reason)
			}, refetch)
	case "logout":
		return s.confirmPlain(ctx, fmt.Sprintf("force logout user %s?", id),
			func(ctx context.Context) error {
				return s.c.client.ForceLogoutUser(ctx, id)
			}, nil)
	default:
		return fmt.Errorf("unknown user action %q", verb)
	}
}

func (s *screens) merchantAction(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: merchants %s <id>", args[0])
	}
	verb, id := args[0], args[1]

	var target model.GovernanceStatus
	switch verb {
	case "approve":
		target = model.StatusApproved
	case "reject":
		target = model.StatusRejected
	case "suspend":
		target = model.StatusSuspended
	default:
		return fmt.Errorf("unknown merchant action %q", verb)
	}

	return s.confirmTransition(ctx, target, governance.Negative(target),
		func(ctx context.Context, reason string) error {
			return s.c.client.SetMerchantStatus(ctx, id, target, reason)
		},
		func(ctx context.Context) {
			<-s.merchants.list.Reload(ctx)
			_ = s.merchants.print()
		})
}

func (s *screens) categoryRequestAction(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: requests %s <id>", args[0])
	}
	verb, id := args[0], args[1]

	refetch := func(ctx context.Context) {
		_ = s.categoryRequestsCommand(ctx, nil)
	}

	switch verb {
	case "approve":
		// одобрение уходит без тела, причина не собирается
		return s.confirmPlain(ctx, fmt.Sprintf("approve category request %s?", id),
			func(ctx context.Context) error {
				return s.c.client.ApproveCategoryRequest(ctx, id)
			}, refetch)
	case "reject":
		return s.confirmTransition(ctx, model.StatusRejected, true,
			func(ctx context.Context, reason string) error {
				return s.c.client.RejectCategoryRequest(ctx, id, reason)
			}, refetch)
	default:
		return fmt.Errorf("unknown request action %q", verb)
	}
}

func (s *screens) withdrawalAction(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: withdrawals %s <id>", args[0])
	}
	verb, id := args[0], args[1]

	refetch := func(ctx context.Context) {
		<-s.withdrawals.list.Reload(ctx)
		_ = s.withdrawals.print()
	}

	switch verb {
	case "approve":
		return s.confirmTransition(ctx, model.StatusApproved, false,
			func(ctx context.Context, notes string) error {
				return s.c.client.ApproveWithdrawal(ctx, id, notes)
			}, refetch)
	case "reject":
		return s.confirmTransition(ctx, model.StatusRejected, true,
			func(ctx context.Context, notes string) error {
				return s.c.client.RejectWithdrawal(ctx, id, notes)
			}, refetch)
	default:
		return fmt.Errorf("unknown withdrawal action %q", verb)
	}
}

func (s *screens) categoryAction(ctx context.Context, args []string) error {
	verb := args[0]
	rest := args[1:]

	refetch := func(ctx context.Context) {
		_ = s.categoriesCommand(ctx, nil)
	}

	switch verb {
	case "create":
		if len(rest) < 1 {
			return fmt.Errorf("usage: categories create <name> [parent-id]")
		}
		in := adminapi.CategoryInput{Name: rest[0], IsActive: true}
		if len(rest) > 1 {
			in.ParentID = rest[1]
		}
		return s.c.action.Run(ctx,
			func(ctx context.Context) error {
				created, err := s.c.client.CreateCategory(ctx, in)
				if err != nil {
					return err
				}
				fmt.Fprintf(s.c.out, "created category %s\n", created.ID)
				return nil
			}, refetch)
	case "toggle":
		if len(rest) != 1 {
			return fmt.Errorf("usage: categories toggle <id>")
		}
		return s.c.action.Run(ctx,
			func(ctx context.Context) error {
				return s.c.client.ToggleCategoryStatus(ctx, rest[0])
			}, refetch)
	case "delete":
		if len(rest) != 1 {
			return fmt.Errorf("usage: categories delete <id>")
		}
		return s.confirmPlain(ctx, fmt.Sprintf("delete category %s?", rest[0]),
			func(ctx context.Context) error {
				return s.c.client.DeleteCategory(ctx, rest[0])
			}, refetch)
	default:
		return fmt.Errorf("unknown category action %q", verb)
	}
}
