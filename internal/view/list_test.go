package view

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

func TestReload_StaleResponseDiscarded(t *testing.T) {
	release := make(chan struct{})

	fetch := func(ctx context.Context, page, limit int) ([]string, model.Pagination, error) {
		if page == 1 {
			// медленный ответ первой страницы придёт последним
			<-release
			return []string{"stale"}, model.Pagination{Page: 1, Limit: 20, Total: 100}, nil
		}
		return []string{"fresh"}, model.Pagination{Page: 2, Limit: 20, Total: 100}, nil
	}

	l := NewList(20, fetch)

	first := l.Reload(context.Background())
	second := l.SetPage(context.Background(), 2)
	<-second

	close(release)
	<-first

	items, pg, loading, err := l.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if loading {
		t.Fatal("loading must be false after both fetches settled")
	}
	if len(items) != 1 || items[0] != "fresh" {
		t.Fatalf("items = %v, want [fresh]: stale response must not overwrite newer state", items)
	}
	if pg.Page != 2 {
		t.Fatalf("pagination page = %d, want 2", pg.Page)
	}
}

func TestNextPage_DisabledAtBoundary(t *testing.T) {
	var calls atomic.Int32

	fetch := func(ctx context.Context, page, limit int) ([]string, model.Pagination, error) {
		calls.Add(1)
		return []string{"a", "b"}, model.Pagination{Page: page, Limit: 2, Total: 2}, nil
	}

	l := NewList(2, fetch)
	<-l.Reload(context.Background())

	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1", got)
	}

	// page*limit >= total, перехода нет
	<-l.NextPage(context.Background())
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls after NextPage = %d, want 1: control must be disabled", got)
	}
	if l.Page() != 1 {
		t.Fatalf("page = %d, want 1", l.Page())
	}
}

func TestPrevPage_DisabledOnFirstPage(t *testing.T) {
	var calls atomic.Int32

	fetch := func(ctx context.Context, page, limit int) ([]string, model.Pagination, error) {
		calls.Add(1)
		return nil, model.Pagination{Page: page, Limit: 20, Total: 100}, nil
	}

	l := NewList(20, fetch)
	<-l.PrevPage(context.Background())

	if got := calls.Load(); got != 0 {
		t.Fatalf("calls = %d, want 0", got)
	}
}

func TestSnapshot_LocalSearchFiltersFetchedPageOnly(t *testing.T) {
	var calls atomic.Int32

	fetch := func(ctx context.Context, page, limit int) ([]string, model.Pagination, error) {
		calls.Add(1)
		return []string{"alpha", "beta", "gamma"}, model.Pagination{Page: 1, Limit: 20, Total: 3}, nil
	}

	l := NewList(20, fetch)
	l.SetMatch(func(item, query string) bool {
		return strings.Contains(item, query)
	})
	<-l.Reload(context.Background())

	l.SetQuery("a")
	items, _, _, err := l.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot error: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("items = %v, want all three containing 'a'", items)
	}

	l.SetQuery("bet")
	items, _, _, _ = l.Snapshot()
	if len(items) != 1 || items[0] != "beta" {
		t.Fatalf("items = %v, want [beta]", items)
	}

	// поиск не трогает сервер
	if got := calls.Load(); got != 1 {
		t.Fatalf("calls = %d, want 1: local search must not refetch", got)
	}
}

func TestReload_ErrorKeepsPreviousItems(t *testing.T) {
	var fail atomic.Bool

	fetch := func(ctx context.Context, page, limit int) ([]string, model.Pagination, error) {
		if fail.Load() {
			return nil, model.Pagination{}, errors.New("backend down")
		}
		return []string{"kept"}, model.Pagination{Page: 1, Limit: 20, Total: 1}, nil
	}

	l := NewList(20, fetch)
	<-l.Reload(context.Background())

	fail.Store(true)
	<-l.Reload(context.Background())

	items, _, _, err := l.Snapshot()
	if err == nil {
		t.Fatal("expected error in snapshot")
	}
	if len(items) != 1 || items[0] != "kept" {
		t.Fatalf("items = %v, want previous data intact", items)
	}
}

func TestReload_LoadingFlag(t *testing.T) {
	release := make(chan struct{})

	fetch := func(ctx context.Context, page, limit int) ([]string, model.Pagination, error) {
		<-release
		return nil, model.Pagination{}, nil
	}

	l := NewList(20, fetch)
	done := l.Reload(context.Background())

	deadline := time.After(time.Second)
	for {
		if _, _, loading, _ := l.Snapshot(); loading {
			break
		}
		select {
		case <-deadline:
			t.Fatal("loading flag was never set")
		default:
		}
	}

	close(release)
	<-done

	if _, _, loading, _ := l.Snapshot(); loading {
		t.Fatal("loading must be reset after fetch settles")
	}
}
