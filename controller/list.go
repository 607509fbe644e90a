// ABOUTME: Generic list-view controller for one record type
// ABOUTME: Fetches, filters, sorts, paginates, selects, and bulk deletes records
package controller

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
)

// RowsPerPage is the fixed page size.
const RowsPerPage = 10

// DefaultSortKey is the column lists start sorted by, newest first.
const DefaultSortKey = "created_at"

// List owns the list-view state for records of type T.
// It is safe for concurrent use; no lock is held across network calls or prompts.
type List[T models.Record] struct {
	entity   Entity[T]
	messages Messages
	backend  Backend
	notifier notify.Notifier
	logger   *zap.Logger

	mu           sync.Mutex
	items        []T
	loading      bool
	searchQuery  string
	sortBy       string
	sortDesc     bool
	currentPage  int
	selectedIDs  []int64
	selectedItem *T
	editOpen     bool
	addOpen      bool
	viewOpen     bool
}

// NewList creates a list controller in its initial loading state.
func NewList[T models.Record](e Entity[T], b Backend, n notify.Notifier, opts ...Option) *List[T] {
	o := buildOptions(opts)
	return &List[T]{
		entity:      e,
		messages:    e.messages(),
		backend:     b,
		notifier:    n,
		logger:      o.logger.With(zap.String("resource", e.Resource)),
		loading:     true,
		sortBy:      DefaultSortKey,
		sortDesc:    true,
		currentPage: 1,
	}
}

// Entity returns the strategy this list was built with.
func (l *List[T]) Entity() Entity[T] {
	return l.entity
}

// Fetch loads every record of the resource, replacing the current items.
func (l *List[T]) Fetch(ctx context.Context) Outcome {
	if err := l.backend.Authorized(); err != nil {
		l.setLoading(false)
		if errors.Is(err, api.ErrNoToken) {
			l.notifier.Fire(AlertFetchUnauthorized)
			return OutcomeNoToken
		}
		l.logger.Error("failed to read token", zap.Error(err))
		l.notifier.Fire(l.messages.LoadFailure)
		return OutcomeFailed
	}

	l.setLoading(true)
	var fetched []T
	err := l.backend.List(ctx, l.entity.Resource, &fetched)
	if err != nil {
		l.setLoading(false)
		l.logger.Error("failed to load records", zap.Error(err))
		switch {
		case errors.Is(err, api.ErrNoToken):
			l.notifier.Fire(AlertFetchUnauthorized)
			return OutcomeNoToken
		case api.IsUnauthorized(err):
			l.notifier.Fire(AlertFetchUnauthorized)
			return OutcomeUnauthorized
		}
		l.notifier.Fire(l.messages.LoadFailure)
		return OutcomeFailed
	}

	items := make([]T, 0, len(fetched))
	for _, item := range fetched {
		if l.entity.Filter == nil || l.entity.Filter(item) {
			items = append(items, item)
		}
	}

	l.mu.Lock()
	l.items = items
	l.loading = false
	l.mu.Unlock()
	return OutcomeOK
}

func (l *List[T]) setLoading(v bool) {
	l.mu.Lock()
	l.loading = v
	l.mu.Unlock()
}

// Items returns a copy of every loaded record.
func (l *List[T]) Items() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]T(nil), l.items...)
}

// SetItems replaces the loaded records without a fetch.
func (l *List[T]) SetItems(items []T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append([]T(nil), items...)
	l.loading = false
}

func (l *List[T]) Loading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// HandleSort flips direction on a repeated key, otherwise sorts ascending by key.
func (l *List[T]) HandleSort(key string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if key == l.sortBy {
		l.sortDesc = !l.sortDesc
		return
	}
	l.sortBy = key
	l.sortDesc = false
}

func (l *List[T]) SortBy() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortBy
}

func (l *List[T]) SortDesc() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sortDesc
}

// SetSearch sets the free-text filter and returns to the first page.
func (l *List[T]) SetSearch(q string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.searchQuery = q
	l.currentPage = 1
}

func (l *List[T]) SearchQuery() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.searchQuery
}

// SetPage moves to page n, clamped to the available pages.
func (l *List[T]) SetPage(n int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := totalPages(len(l.filteredLocked()))
	if total < 1 {
		total = 1
	}
	switch {
	case n < 1:
		n = 1
	case n > total:
		n = total
	}
	l.currentPage = n
}

func (l *List[T]) NextPage() { l.SetPage(l.Page() + 1) }
func (l *List[T]) PrevPage() { l.SetPage(l.Page() - 1) }

func (l *List[T]) Page() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.currentPage
}

// Filtered returns every record matching the search, in sort order.
func (l *List[T]) Filtered() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.filteredLocked()
}

// Rows returns the current page of filtered, sorted records.
func (l *List[T]) Rows() []T {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pageLocked()
}

// TotalPages is ceil(filtered / RowsPerPage).
func (l *List[T]) TotalPages() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return totalPages(len(l.filteredLocked()))
}

func (l *List[T]) filteredLocked() []T {
	return derive(l.items, l.searchQuery, l.sortBy, l.sortDesc)
}

func (l *List[T]) pageLocked() []T {
	return paginate(l.filteredLocked(), l.currentPage)
}

// ToggleSelect adds or removes one id from the selection.
func (l *List[T]) ToggleSelect(id int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for i, sel := range l.selectedIDs {
		if sel == id {
			l.selectedIDs = append(append([]int64(nil), l.selectedIDs[:i]...), l.selectedIDs[i+1:]...)
			return
		}
	}
	l.selectedIDs = append(append([]int64(nil), l.selectedIDs...), id)
}

// ToggleSelectAll selects exactly the current page, or clears the
// selection when the whole page is already selected.
func (l *List[T]) ToggleSelectAll() {
	l.mu.Lock()
	defer l.mu.Unlock()

	page := l.pageLocked()
	pageIDs := make([]int64, 0, len(page))
	for _, item := range page {
		pageIDs = append(pageIDs, item.RecordID())
	}

	if len(l.selectedIDs) == len(pageIDs) && containsAll(l.selectedIDs, pageIDs) {
		l.selectedIDs = nil
		return
	}
	l.selectedIDs = pageIDs
}

// Selected returns the selected ids in selection order.
func (l *List[T]) Selected() []int64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]int64(nil), l.selectedIDs...)
}

func (l *List[T]) IsSelected(id int64) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return containsAll(l.selectedIDs, []int64{id})
}

// ClearSelection empties the selection.
func (l *List[T]) ClearSelection() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selectedIDs = nil
}

// DeleteSelected confirms, then deletes every selected record in parallel.
// Local items change only when every delete succeeded.
func (l *List[T]) DeleteSelected(ctx context.Context) Outcome {
	ids := l.Selected()
	if len(ids) == 0 {
		l.notifier.Fire(AlertNoSelection)
		return OutcomeNoSelection
	}

	ok, err := l.notifier.Confirm(ctx, ConfirmDelete)
	if err != nil {
		l.logger.Warn("delete confirmation failed", zap.Error(err))
		return OutcomeCancelled
	}
	if !ok {
		return OutcomeCancelled
	}

	if err := l.backend.Authorized(); err != nil {
		if errors.Is(err, api.ErrNoToken) {
			l.notifier.Fire(AlertNotLoggedIn)
			return OutcomeNoToken
		}
		l.logger.Error("failed to read token", zap.Error(err))
		l.notifier.Fire(l.messages.DeleteFailure)
		return OutcomeFailed
	}

	var g errgroup.Group
	for _, id := range ids {
		g.Go(func() error {
			return l.backend.Delete(ctx, l.entity.Resource, id)
		})
	}
	if err := g.Wait(); err != nil {
		l.logger.Error("failed to delete selected records", zap.Int64s("ids", ids), zap.Error(err))
		l.notifier.Fire(l.messages.DeleteFailure)
		if api.IsUnauthorized(err) {
			return OutcomeUnauthorized
		}
		return OutcomeFailed
	}

	l.RemoveItems(ids...)
	l.ClearSelection()
	l.notifier.Fire(l.messages.DeleteSuccess)
	return OutcomeOK
}

// RemoveItems drops records with the given ids from the local items.
func (l *List[T]) RemoveItems(ids ...int64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	kept := make([]T, 0, len(l.items))
	for _, item := range l.items {
		if !containsAll(ids, []int64{item.RecordID()}) {
			kept = append(kept, item)
		}
	}
	l.items = kept
}

// UpdateItem merges updated into the loaded record with the same id.
func (l *List[T]) UpdateItem(updated T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	next := make([]T, len(l.items))
	for i, item := range l.items {
		if item.RecordID() == updated.RecordID() {
			next[i] = models.Merge(item, updated)
		} else {
			next[i] = item
		}
	}
	l.items = next
}

func (l *List[T]) OpenEditModal(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selectedItem = &item
	l.editOpen = true
}

func (l *List[T]) CloseEditModal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.editOpen = false
	l.selectedItem = nil
}

func (l *List[T]) OpenViewModal(item T) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.selectedItem = &item
	l.viewOpen = true
}

func (l *List[T]) CloseViewModal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.viewOpen = false
	l.selectedItem = nil
}

func (l *List[T]) OpenAddModal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.addOpen = true
}

func (l *List[T]) CloseAddModal() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.addOpen = false
}

// SelectedItem returns the record bound to the open view or edit modal.
func (l *List[T]) SelectedItem() (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.selectedItem == nil {
		var zero T
		return zero, false
	}
	return *l.selectedItem, true
}

func (l *List[T]) EditOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.editOpen
}

func (l *List[T]) ViewOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewOpen
}

func (l *List[T]) AddOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.addOpen
}

func containsAll(set, want []int64) bool {
	for _, w := range want {
		found := false
		for _, s := range set {
			if s == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
