// Package view реализует клиентский цикл работы экранов консоли:
// загрузку страниц списков, запуск подтверждаемых действий и
// сбор причины перехода перед мутацией.
//
// Состояние каждого экрана живёт только внутри его контроллера;
// общего кеша между экранами нет.
package view

import (
	"context"
	"strings"
	"sync"

	"github.com/mmeshcher/marketplace-admin/internal/model"
)

// FetchFunc загружает одну страницу данных для экрана списка.
// Актуальный фильтр экрана замыкается вызывающей стороной.
type FetchFunc[T any] func(ctx context.Context, page, limit int) ([]T, model.Pagination, error)

// List хранит состояние одного экрана со списком: текущую страницу,
// последние полученные данные, метаданные пагинации и флаг загрузки.
type List[T any] struct {
	mu         sync.Mutex
	fetch      FetchFunc[T]
	match      func(item T, query string) bool
	page       int
	limit      int
	query      string
	items      []T
	pagination model.Pagination
	inflight   int
	seq        uint64
	lastErr    error
}

// NewList создаёт контроллер списка с указанным размером страницы.
func NewList[T any](limit int, fetch FetchFunc[T]) *List[T] {
	if limit <= 0 {
		limit = 20
	}
	return &List[T]{
		fetch: fetch,
		page:  1,
		limit: limit,
	}
}

// SetMatch задаёт предикат локального текстового поиска.
// Поиск применяется только к уже загруженной странице и не отправляется
// на сервер: серверная пагинация и локальный поиск независимы.
func (l *List[T]) SetMatch(match func(item T, query string) bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.match = match
}

// Reload запускает ровно одну асинхронную загрузку текущей страницы.
// Каждая загрузка помечается порядковым номером; ответ, пришедший после
// более нового запроса, отбрасывается и не затирает свежие данные.
// Возвращаемый канал закрывается после применения либо отбрасывания ответа.
func (l *List[T]) Reload(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	l.seq++
	seq := l.seq
	l.inflight++
	page := l.page
	limit := l.limit
	fetch := l.fetch
	l.mu.Unlock()

	done := make(chan struct{})

	go func() {
		defer close(done)

		items, pg, err := fetch(ctx, page, limit)

		l.mu.Lock()
		defer l.mu.Unlock()

		l.inflight--
		if seq != l.seq {
			// устаревший ответ
			return
		}

		if err != nil {
			l.lastErr = err
			return
		}
		l.items = items
		l.pagination = pg
		l.lastErr = nil
	}()

	return done
}

func closedChan() <-chan struct{} {
	done := make(chan struct{})
	close(done)
	return done
}

// SetPage переходит на указанную страницу и запускает загрузку.
func (l *List[T]) SetPage(ctx context.Context, page int) <-chan struct{} {
	if page < 1 {
		page = 1
	}
	l.mu.Lock()
	l.page = page
	l.mu.Unlock()
	return l.Reload(ctx)
}

// NextPage переходит на следующую страницу. На естественной границе
// пагинации управление выключено: переход не выполняется.
func (l *List[T]) NextPage(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	if !l.pagination.HasNext() {
		l.mu.Unlock()
		return closedChan()
	}
	page := l.page
	l.mu.Unlock()
	return l.SetPage(ctx, page+1)
}

// PrevPage переходит на предыдущую страницу. С первой страницы
// переход не выполняется.
func (l *List[T]) PrevPage(ctx context.Context) <-chan struct{} {
	l.mu.Lock()
	if l.page <= 1 {
		l.mu.Unlock()
		return closedChan()
	}
	page := l.page
	l.mu.Unlock()
	return l.SetPage(ctx, page-1)
}

// SetQuery задаёт строку локального поиска. Загрузка не запускается.
func (l *List[T]) SetQuery(query string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = strings.TrimSpace(query)
}

// Snapshot возвращает текущее состояние экрана: видимые элементы с учётом
// локального поиска, метаданные пагинации, флаг загрузки и последнюю ошибку.
func (l *List[T]) Snapshot() ([]T, model.Pagination, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	items := l.items
	if l.query != "" && l.match != nil {
		filtered := make([]T, 0, len(items))
		for _, it := range items {
			if l.match(it, l.query) {
				filtered = append(filtered, it)
			}
		}
		items = filtered
	}

	return items, l.pagination, l.inflight > 0, l.lastErr
}

// Page возвращает номер текущей страницы.
func (l *List[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.page
}

// ResetPage возвращает экран на первую страницу без загрузки.
// Используется при смене фильтра, чтобы не остаться за границей выборки.
func (l *List[T]) ResetPage() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.page = 1
}
