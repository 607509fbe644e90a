// ABOUTME: Record MCP tool handlers over the entity tables
// ABOUTME: Implements list_entities, list_records, and delete_records tools
package handlers

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/notify"
)

// RecordHandlers serves MCP tools against the REST backend.
type RecordHandlers struct {
	deps entities.Deps
}

func NewRecordHandlers(deps entities.Deps) *RecordHandlers {
	return &RecordHandlers{deps: deps}
}

// open builds a fresh table for one call. Alerts are collected and
// confirmations are answered with confirm.
func (h *RecordHandlers) open(entity string, confirm bool) (entities.Table, *notify.Recorder, error) {
	rec := notify.NewRecorder(confirm)
	deps := h.deps
	deps.Notifier = rec
	t, err := entities.New(entity, deps)
	if err != nil {
		return nil, nil, err
	}
	return t, rec, nil
}

type AlertOutput struct {
	Icon  string `json:"icon"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

func alertsToOutput(alerts []notify.Alert) []AlertOutput {
	out := make([]AlertOutput, len(alerts))
	for i, a := range alerts {
		out[i] = AlertOutput{Icon: string(a.Icon), Title: a.Title, Text: a.Text}
	}
	return out
}

// failure turns an unsuccessful outcome into a tool error carrying the alert text.
func failure(outcome controller.Outcome, rec *notify.Recorder) error {
	if a, ok := rec.Last(); ok {
		return fmt.Errorf("%s: %s", a.Title, a.Text)
	}
	return fmt.Errorf("request failed: %s", outcome)
}

type ListEntitiesInput struct{}

type EntityOutput struct {
	Name     string   `json:"name"`
	Title    string   `json:"title"`
	Singular string   `json:"singular"`
	Columns  []string `json:"columns"`
}

type ListEntitiesOutput struct {
	Entities []EntityOutput `json:"entities"`
}

func (h *RecordHandlers) ListEntities(_ context.Context, _ *mcp.CallToolRequest, _ ListEntitiesInput) (*mcp.CallToolResult, ListEntitiesOutput, error) {
	var out ListEntitiesOutput
	for _, t := range entities.All(h.deps) {
		e := EntityOutput{Name: t.Name(), Title: t.Title(), Singular: t.Singular()}
		for _, c := range t.Columns() {
			e.Columns = append(e.Columns, c.Key)
		}
		out.Entities = append(out.Entities, e)
	}
	return nil, out, nil
}

type ListRecordsInput struct {
	Entity string `json:"entity" jsonschema:"Entity table name (leads, lead-quotes, followups, quotes, customers, orders, carriers, vendors, brokers, users)"`
	Query  string `json:"query,omitempty" jsonschema:"Case-insensitive substring matched against every field"`
	SortBy string `json:"sort_by,omitempty" jsonschema:"Field to sort by (default created_at)"`
	Desc   *bool  `json:"desc,omitempty" jsonschema:"Sort descending. Defaults to true for created_at and false for any other field"`
	Page   int    `json:"page,omitempty" jsonschema:"Page number starting at 1 (default 1)"`
	All    bool   `json:"all,omitempty" jsonschema:"Return every matching record instead of one page"`
}

// applySort orders t by key, or by the default key when key is empty.
// A nil desc keeps the table's direction for the default key and sorts
// any other key ascending.
func applySort(t entities.Table, key string, desc *bool) {
	if key == "" {
		key = controller.DefaultSortKey
	}
	if key != t.SortBy() {
		t.HandleSort(key)
	}
	if desc != nil && *desc != t.SortDesc() {
		t.HandleSort(key)
	}
}

type ListRecordsOutput struct {
	Entity     string           `json:"entity"`
	Page       int              `json:"page"`
	TotalPages int              `json:"total_pages"`
	Total      int              `json:"total"`
	Records    []map[string]any `json:"records"`
}

func (h *RecordHandlers) ListRecords(ctx context.Context, _ *mcp.CallToolRequest, input ListRecordsInput) (*mcp.CallToolResult, ListRecordsOutput, error) {
	if input.Entity == "" {
		return nil, ListRecordsOutput{}, fmt.Errorf("entity is required")
	}
	t, rec, err := h.open(input.Entity, false)
	if err != nil {
		return nil, ListRecordsOutput{}, err
	}

	if outcome := t.Fetch(ctx); outcome != controller.OutcomeOK {
		return nil, ListRecordsOutput{}, failure(outcome, rec)
	}

	t.SetSearch(input.Query)
	applySort(t, input.SortBy, input.Desc)
	if input.Page > 0 {
		t.SetPage(input.Page)
	}

	rows := t.Rows()
	if input.All {
		rows = t.All()
	}
	out := ListRecordsOutput{
		Entity:     t.Name(),
		Page:       t.Page(),
		TotalPages: t.TotalPages(),
		Total:      len(t.All()),
		Records:    make([]map[string]any, len(rows)),
	}
	for i, r := range rows {
		out.Records[i] = r.Fields
	}
	return nil, out, nil
}

type DeleteRecordsInput struct {
	Entity  string  `json:"entity" jsonschema:"Entity table name"`
	IDs     []int64 `json:"ids" jsonschema:"Record ids to delete"`
	Confirm bool    `json:"confirm" jsonschema:"Must be true to delete. This action cannot be undone."`
}

type DeleteRecordsOutput struct {
	Entity  string        `json:"entity"`
	Outcome string        `json:"outcome"`
	Deleted []int64       `json:"deleted"`
	Alerts  []AlertOutput `json:"alerts"`
}

func (h *RecordHandlers) DeleteRecords(ctx context.Context, _ *mcp.CallToolRequest, input DeleteRecordsInput) (*mcp.CallToolResult, DeleteRecordsOutput, error) {
	if input.Entity == "" {
		return nil, DeleteRecordsOutput{}, fmt.Errorf("entity is required")
	}
	t, rec, err := h.open(input.Entity, input.Confirm)
	if err != nil {
		return nil, DeleteRecordsOutput{}, err
	}

	if outcome := t.Fetch(ctx); outcome != controller.OutcomeOK {
		return nil, DeleteRecordsOutput{}, failure(outcome, rec)
	}
	for _, id := range input.IDs {
		if _, ok := t.Record(id); !ok {
			return nil, DeleteRecordsOutput{}, fmt.Errorf("%s record %d not found", t.Singular(), id)
		}
		t.ToggleSelect(id)
	}
	rec.Reset()

	outcome := t.DeleteSelected(ctx)
	out := DeleteRecordsOutput{
		Entity:  t.Name(),
		Outcome: outcome.String(),
		Deleted: []int64{},
		Alerts:  alertsToOutput(rec.Alerts()),
	}
	switch outcome {
	case controller.OutcomeOK:
		out.Deleted = input.IDs
	case controller.OutcomeCancelled:
		// Declined deletes are reported, not failed.
	default:
		return nil, out, failure(outcome, rec)
	}
	return nil, out, nil
}
