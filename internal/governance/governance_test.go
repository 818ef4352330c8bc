package governance

import (
	"errors"
	"testing"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

func TestAllowed(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		from model.GovernanceStatus
		to   model.GovernanceStatus
		want bool
	}{
		{"pending to approved", KindWithdrawal, model.StatusPending, model.StatusApproved, true},
		{"pending to rejected", KindCategoryRequest, model.StatusPending, model.StatusRejected, true},
		{"pending to suspended", KindMerchant, model.StatusPending, model.StatusSuspended, false},
		{"approved merchant to suspended", KindMerchant, model.StatusApproved, model.StatusSuspended, true},
		{"suspended merchant back to approved", KindMerchant, model.StatusSuspended, model.StatusApproved, true},
		{"approved withdrawal to suspended", KindWithdrawal, model.StatusApproved, model.StatusSuspended, false},
		{"suspended withdrawal to approved", KindWithdrawal, model.StatusSuspended, model.StatusApproved, false},
		{"rejected is terminal", KindMerchant, model.StatusRejected, model.StatusApproved, false},
		{"same status", KindMerchant, model.StatusPending, model.StatusPending, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Allowed(tt.kind, tt.from, tt.to); got != tt.want {
				t.Errorf("Allowed(%s, %s, %s) = %v, want %v", tt.kind, tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestNegative(t *testing.T) {
	if !Negative(model.StatusRejected) {
		t.Error("REJECTED must be negative")
	}
	if !Negative(model.StatusSuspended) {
		t.Error("SUSPENDED must be negative")
	}
	if Negative(model.StatusApproved) {
		t.Error("APPROVED must not be negative")
	}
	if Negative(model.StatusPending) {
		t.Error("PENDING must not be negative")
	}
}

func TestValidateReason(t *testing.T) {
	if err := ValidateReason(model.StatusRejected, ""); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("empty reason for REJECTED: err = %v, want ErrReasonRequired", err)
	}
	if err := ValidateReason(model.StatusSuspended, "   \t"); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("whitespace reason for SUSPENDED: err = %v, want ErrReasonRequired", err)
	}
	if err := ValidateReason(model.StatusRejected, "fraud"); err != nil {
		t.Errorf("non-empty reason: err = %v", err)
	}
	if err := ValidateReason(model.StatusApproved, ""); err != nil {
		t.Errorf("APPROVED must not require reason: err = %v", err)
	}
}

func TestValidate(t *testing.T) {
	if err := Validate(KindMerchant, model.StatusRejected, model.StatusApproved, ""); !errors.Is(err, ErrTransitionNotAllowed) {
		t.Errorf("err = %v, want ErrTransitionNotAllowed", err)
	}
	if err := Validate(KindMerchant, model.StatusApproved, model.StatusSuspended, ""); !errors.Is(err, ErrReasonRequired) {
		t.Errorf("err = %v, want ErrReasonRequired", err)
	}
	if err := Validate(KindMerchant, model.StatusApproved, model.StatusSuspended, "spam listings"); err != nil {
		t.Errorf("err = %v, want nil", err)
	}
	if err := Validate(KindWithdrawal, model.StatusPending, model.StatusApproved, ""); err != nil {
		t.Errorf("optional note on approve: err = %v", err)
	}
}
