// ABOUTME: Tests for the generic list controller
// ABOUTME: Covers fetch, sort toggling, search, paging, selection, and bulk delete
package controller

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
)

func TestList_InitialState(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)

	assert.True(t, l.Loading())
	assert.Equal(t, "created_at", l.SortBy())
	assert.True(t, l.SortDesc())
	assert.Equal(t, 1, l.Page())
	assert.Empty(t, l.Selected())
	assert.False(t, l.EditOpen() || l.AddOpen() || l.ViewOpen())
}

func TestList_FetchLoadsItems(t *testing.T) {
	fx := newFixture(t, "tok")
	seedLeads(fx.srv, 3)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)

	assert.Equal(t, OutcomeOK, l.Fetch(context.Background()))
	assert.False(t, l.Loading())
	assert.Len(t, l.Items(), 3)
	assert.Empty(t, fx.notifier.Alerts())

	// Default sort is newest first.
	assert.Equal(t, int64(3), l.Rows()[0].ID)
}

func TestList_FetchAppliesFilter(t *testing.T) {
	fx := newFixture(t, "tok")
	fx.srv.Seed("lead",
		models.Lead{LeadNo: "A", LeadStatus: "Quotations"},
		models.Lead{LeadNo: "B", LeadStatus: "New"},
	)
	e := testLeadEntity()
	e.Filter = func(l models.Lead) bool { return l.LeadStatus == "Quotations" }
	l := NewList(e, fx.client, fx.notifier)

	require.Equal(t, OutcomeOK, l.Fetch(context.Background()))
	require.Len(t, l.Items(), 1)
	assert.Equal(t, "A", l.Items()[0].LeadNo)
}

func TestList_Fetch401AlertsOnce(t *testing.T) {
	fx := newFixture(t, "tok")
	fx.srv.Fail(http.MethodGet, "/lead", http.StatusUnauthorized)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)

	assert.Equal(t, OutcomeUnauthorized, l.Fetch(context.Background()))
	assert.False(t, l.Loading())

	want := notify.Alert{Icon: notify.IconError, Title: "Unauthorized", Text: "You need to log in to access this resource."}
	assert.Equal(t, 1, fx.notifier.Count(want))
	assert.Len(t, fx.notifier.Alerts(), 1)
}

func TestList_FetchOtherFailure(t *testing.T) {
	fx := newFixture(t, "tok")
	fx.srv.Fail(http.MethodGet, "/lead", http.StatusInternalServerError)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)

	assert.Equal(t, OutcomeFailed, l.Fetch(context.Background()))
	assert.False(t, l.Loading())
	last, _ := fx.notifier.Last()
	assert.Equal(t, "Failed to load leads.", last.Text)
}

func TestList_FetchWithoutTokenSkipsNetwork(t *testing.T) {
	fx := newFixture(t, "")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)

	assert.Equal(t, OutcomeNoToken, l.Fetch(context.Background()))
	assert.False(t, l.Loading())
	assert.Empty(t, fx.srv.Requests())
	assert.Equal(t, 1, fx.notifier.Count(AlertFetchUnauthorized))
}

func TestList_HandleSortToggles(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)

	l.HandleSort("lead_no")
	assert.Equal(t, "lead_no", l.SortBy())
	assert.False(t, l.SortDesc())

	before := l.SortDesc()
	l.HandleSort("lead_no")
	assert.Equal(t, "lead_no", l.SortBy())
	assert.Equal(t, !before, l.SortDesc())

	l.HandleSort("lead_no")
	assert.Equal(t, before, l.SortDesc())

	// Repeating the default key flips the default direction.
	l2 := NewList(testLeadEntity(), fx.client, fx.notifier)
	l2.HandleSort("created_at")
	assert.False(t, l2.SortDesc())
}

func TestList_SortStringsNumbersAndMixed(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	l.SetItems([]models.Lead{
		{ID: 3, CustomerName: "beta"},
		{ID: 1, CustomerName: "Alpha"},
		{ID: 2, CustomerName: "alpha"},
		{ID: 10, CustomerName: "Gamma"},
	})

	l.HandleSort("customer_name")
	names := []string{}
	for _, r := range l.Rows() {
		names = append(names, r.CustomerName)
	}
	assert.Equal(t, []string{"alpha", "Alpha", "beta", "Gamma"}, names)

	l.HandleSort("id")
	ids := []int64{}
	for _, r := range l.Rows() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{1, 2, 3, 10}, ids, "numbers compare numerically, not as text")

	l.HandleSort("id")
	assert.Equal(t, int64(10), l.Rows()[0].ID)
}

func TestList_SortTimestampsChronologically(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	l.SetItems([]models.Lead{
		{ID: 1, CreatedAt: "2024-01-02T09:00:00Z"},
		{ID: 2, CreatedAt: "2024-01-02T10:00:00+02:00"},
		{ID: 3, CreatedAt: "2023-12-31T23:00:00Z"},
	})

	ids := []int64{}
	for _, r := range l.Rows() {
		ids = append(ids, r.ID)
	}
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestList_SearchIsCaseInsensitive(t *testing.T) {
	fx := newFixture(t, "tok")
	seedLeads(fx.srv, 12)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	require.Equal(t, OutcomeOK, l.Fetch(context.Background()))

	l.SetPage(2)
	l.SetSearch("customer 1")
	assert.Equal(t, 1, l.Page(), "search returns to the first page")
	// Customer 1, 10, 11, 12
	assert.Len(t, l.Filtered(), 4)

	l.SetSearch("L005")
	require.Len(t, l.Filtered(), 1)
	assert.Equal(t, int64(5), l.Filtered()[0].ID)

	l.SetSearch("nothing matches")
	assert.Empty(t, l.Rows())
	assert.Equal(t, 0, l.TotalPages())
}

func TestList_SearchSkipsNestedCollections(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	l.SetItems([]models.Lead{{ID: 1, LeadNo: "L1", Contacts: models.List[models.Contact]{{Name: "Hidden"}}}})

	l.SetSearch("hidden")
	assert.Empty(t, l.Filtered())
}

func TestList_Pagination(t *testing.T) {
	fx := newFixture(t, "tok")
	seedLeads(fx.srv, 25)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	require.Equal(t, OutcomeOK, l.Fetch(context.Background()))

	assert.Equal(t, 3, l.TotalPages())
	assert.Len(t, l.Rows(), 10)

	l.SetPage(3)
	assert.Len(t, l.Rows(), 5)

	l.NextPage()
	assert.Equal(t, 3, l.Page(), "clamped to the last page")

	l.SetPage(0)
	assert.Equal(t, 1, l.Page())
	l.PrevPage()
	assert.Equal(t, 1, l.Page())
}

func TestList_ToggleSelect(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)

	l.ToggleSelect(4)
	l.ToggleSelect(7)
	assert.Equal(t, []int64{4, 7}, l.Selected())
	assert.True(t, l.IsSelected(7))

	l.ToggleSelect(4)
	assert.Equal(t, []int64{7}, l.Selected())
}

func TestList_ToggleSelectAllIsPageScoped(t *testing.T) {
	fx := newFixture(t, "tok")
	seedLeads(fx.srv, 15)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	require.Equal(t, OutcomeOK, l.Fetch(context.Background()))

	l.ToggleSelectAll()
	assert.Len(t, l.Selected(), 10, "only the visible page")

	l.ToggleSelectAll()
	assert.Empty(t, l.Selected())

	// With a partial selection, select-all selects exactly the page.
	l.ToggleSelect(2)
	l.ToggleSelectAll()
	assert.Len(t, l.Selected(), 10)
}

func TestList_DeleteWithEmptySelection(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)

	assert.Equal(t, OutcomeNoSelection, l.DeleteSelected(context.Background()))
	assert.Empty(t, fx.srv.Requests())
	assert.Empty(t, fx.notifier.Prompts(), "no confirmation dialog")

	want := notify.Alert{Icon: "warning", Title: "No record selected", Text: "Please select a record to delete."}
	assert.Equal(t, []notify.Alert{want}, fx.notifier.Alerts())
}

func TestList_DeleteCancelled(t *testing.T) {
	fx := newFixture(t, "tok")
	fx.notifier = notify.NewRecorder(false)
	seedLeads(fx.srv, 2)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	require.Equal(t, OutcomeOK, l.Fetch(context.Background()))

	l.ToggleSelect(1)
	assert.Equal(t, OutcomeCancelled, l.DeleteSelected(context.Background()))
	assert.Equal(t, 0, fx.srv.Count(http.MethodDelete, "/lead"))
	assert.Len(t, l.Items(), 2)
	assert.Equal(t, []notify.Confirmation{ConfirmDelete}, fx.notifier.Prompts())
}

func TestList_DeleteRemovesAllSelected(t *testing.T) {
	fx := newFixture(t, "tok")
	seedLeads(fx.srv, 4)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	require.Equal(t, OutcomeOK, l.Fetch(context.Background()))

	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	defer fx.tr.CloseIdleConnections()

	l.ToggleSelect(1)
	l.ToggleSelect(3)
	assert.Equal(t, OutcomeOK, l.DeleteSelected(context.Background()))

	assert.Equal(t, 2, fx.srv.Count(http.MethodDelete, "/lead/"))
	assert.Len(t, l.Items(), 2)
	assert.Empty(t, l.Selected())
	assert.Equal(t, 2, fx.srv.Len("lead"))
	last, _ := fx.notifier.Last()
	assert.Equal(t, notify.Success("Deleted!", "Selected leads have been deleted."), last)
}

func TestList_DeleteIsAllOrNothing(t *testing.T) {
	fx := newFixture(t, "tok")
	seedLeads(fx.srv, 3)
	fx.srv.Fail(http.MethodDelete, "/lead/2", http.StatusInternalServerError)
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	require.Equal(t, OutcomeOK, l.Fetch(context.Background()))

	l.ToggleSelect(1)
	l.ToggleSelect(2)
	assert.Equal(t, OutcomeFailed, l.DeleteSelected(context.Background()))

	// Every delete was attempted and the local list was left alone,
	// even though lead 1 is gone on the server.
	assert.Equal(t, 2, fx.srv.Count(http.MethodDelete, "/lead/"))
	assert.Len(t, l.Items(), 3)
	assert.Equal(t, []int64{1, 2}, l.Selected())
	assert.Equal(t, 2, fx.srv.Len("lead"))

	last, _ := fx.notifier.Last()
	assert.Equal(t, notify.Error("Error!", "Failed to delete selected leads."), last)
}

func TestList_DeleteWithoutToken(t *testing.T) {
	fx := newFixture(t, "")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	l.SetItems([]models.Lead{{ID: 1}})
	l.ToggleSelect(1)

	assert.Equal(t, OutcomeNoToken, l.DeleteSelected(context.Background()))
	assert.Empty(t, fx.srv.Requests())
	assert.Equal(t, 1, fx.notifier.Count(AlertNotLoggedIn))
}

func TestList_UpdateItemMergesByID(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	l.SetItems([]models.Lead{{ID: 1, LeadNo: "L1", City: "Austin"}, {ID: 2, LeadNo: "L2"}})

	l.UpdateItem(models.Lead{ID: 1, LeadNo: "L1-b", City: "Austin"})

	items := l.Items()
	assert.Equal(t, "L1-b", items[0].LeadNo)
	assert.Equal(t, "L2", items[1].LeadNo)
}

func TestList_Modals(t *testing.T) {
	fx := newFixture(t, "tok")
	l := NewList(testLeadEntity(), fx.client, fx.notifier)
	lead := models.Lead{ID: 9, LeadNo: "L9"}

	l.OpenEditModal(lead)
	got, ok := l.SelectedItem()
	require.True(t, ok)
	assert.Equal(t, "L9", got.LeadNo)
	assert.True(t, l.EditOpen())

	l.CloseEditModal()
	_, ok = l.SelectedItem()
	assert.False(t, ok)
	assert.False(t, l.EditOpen())

	l.OpenViewModal(lead)
	assert.True(t, l.ViewOpen())
	l.CloseViewModal()
	assert.False(t, l.ViewOpen())

	l.OpenAddModal()
	assert.True(t, l.AddOpen())
	l.CloseAddModal()
	assert.False(t, l.AddOpen())
}
