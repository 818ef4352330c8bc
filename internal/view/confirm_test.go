package view

import (
	"context"
	"errors"
	"testing"

	"github.com/mmeshcher/marketplace-admin/internal/governance"
	"github.com/mmeshcher/marketplace-admin/internal/model"
)

func TestConfirmation_NegativeRequiresReason(t *testing.T) {
	conf := NewConfirmation(model.StatusRejected)
	if !conf.Negative {
		t.Fatal("REJECTED must build a negative confirmation")
	}

	if conf.CanConfirm() {
		t.Fatal("confirm must be disabled with empty reason")
	}

	conf.Reason = "   "
	if conf.CanConfirm() {
		t.Fatal("confirm must be disabled with whitespace-only reason")
	}

	err := conf.Confirm(context.Background(), func(ctx context.Context, reason string) error {
		t.Fatal("handler must not be called without a reason")
		return nil
	})
	if !errors.Is(err, governance.ErrReasonRequired) {
		t.Fatalf("err = %v, want ErrReasonRequired", err)
	}

	conf.Reason = "  fake documents  "
	if !conf.CanConfirm() {
		t.Fatal("confirm must be enabled with a reason")
	}

	var got string
	err = conf.Confirm(context.Background(), func(ctx context.Context, reason string) error {
		got = reason
		return nil
	})
	if err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if got != "fake documents" {
		t.Fatalf("reason = %q, want trimmed", got)
	}
}

func TestConfirmation_PositiveNeverBlockedByReason(t *testing.T) {
	conf := NewConfirmation(model.StatusApproved)
	if conf.Negative {
		t.Fatal("APPROVED must not be negative")
	}
	if !conf.CanConfirm() {
		t.Fatal("positive confirm must be enabled with empty reason")
	}

	called := false
	if err := conf.Confirm(context.Background(), func(ctx context.Context, reason string) error {
		called = true
		return nil
	}); err != nil {
		t.Fatalf("Confirm error: %v", err)
	}
	if !called {
		t.Fatal("handler was not called")
	}
}

func TestConfirmation_DisabledWhileLoading(t *testing.T) {
	conf := NewConfirmation(model.StatusApproved)
	conf.Loading = true

	if conf.CanConfirm() {
		t.Fatal("confirm must be disabled while loading")
	}
	if err := conf.Confirm(context.Background(), nil); !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("err = %v, want ErrActionInFlight", err)
	}
}

func TestConfirmation_CloseResetsState(t *testing.T) {
	conf := NewConfirmation(model.StatusSuspended)
	conf.Reason = "spam"
	conf.Loading = true

	conf.Close()

	if conf.Reason != "" || conf.Loading {
		t.Fatalf("close must reset state: %+v", conf)
	}
}

func TestConfirmation_HandlerErrorPropagates(t *testing.T) {
	conf := NewConfirmation(model.StatusRejected)
	conf.Reason = "fraud"

	wantErr := errors.New("conflict")
	err := conf.Confirm(context.Background(), func(ctx context.Context, reason string) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if conf.Loading {
		t.Fatal("loading must be reset after handler returns")
	}
}
