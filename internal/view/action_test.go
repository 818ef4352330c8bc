package view

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
)

func TestAction_RefetchOnceOnSuccess(t *testing.T) {
	var a Action
	var refetches atomic.Int32

	err := a.Run(context.Background(),
		func(ctx context.Context) error { return nil },
		func(ctx context.Context) { refetches.Add(1) },
	)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if got := refetches.Load(); got != 1 {
		t.Fatalf("refetches = %d, want exactly 1", got)
	}
}

func TestAction_NoRefetchOnFailure(t *testing.T) {
	var a Action
	var refetches atomic.Int32

	wantErr := errors.New("validation failure")
	err := a.Run(context.Background(),
		func(ctx context.Context) error { return wantErr },
		func(ctx context.Context) { refetches.Add(1) },
	)
	if !errors.Is(err, wantErr) {
		t.Fatalf("err = %v, want %v", err, wantErr)
	}
	if got := refetches.Load(); got != 0 {
		t.Fatalf("refetches = %d, want 0", got)
	}
}

func TestAction_BlocksDuplicateSubmission(t *testing.T) {
	var a Action

	started := make(chan struct{})
	release := make(chan struct{})
	firstDone := make(chan error, 1)

	go func() {
		firstDone <- a.Run(context.Background(),
			func(ctx context.Context) error {
				close(started)
				<-release
				return nil
			}, nil)
	}()

	<-started

	err := a.Run(context.Background(), func(ctx context.Context) error { return nil }, nil)
	if !errors.Is(err, ErrActionInFlight) {
		t.Fatalf("err = %v, want ErrActionInFlight", err)
	}
	if !a.InFlight() {
		t.Fatal("InFlight must report true while the first run is pending")
	}

	close(release)
	if err := <-firstDone; err != nil {
		t.Fatalf("first run error: %v", err)
	}

	// после завершения действие снова доступно
	if err := a.Run(context.Background(), func(ctx context.Context) error { return nil }, nil); err != nil {
		t.Fatalf("Run after release error: %v", err)
	}
}
