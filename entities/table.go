// ABOUTME: Type-erased views over the generic list and form controllers
// ABOUTME: Lets the TUI, CLI, and MCP surfaces drive any entity by name
package entities

import (
	"context"
	"strconv"
	"strings"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
	"github.com/harperreed/freightdesk/validate"
)

// Column is one displayed list column.
type Column struct {
	Key   string
	Title string
	Width int
}

// Row is one record rendered as wire-named fields.
type Row struct {
	ID     int64
	Fields map[string]any
}

// Text renders one field for display.
func (r Row) Text(key string) string {
	return models.FormatValue(r.Fields[key])
}

// Table drives a list controller without knowing its record type.
type Table interface {
	Name() string
	Title() string
	Singular() string
	Columns() []Column

	Fetch(ctx context.Context) controller.Outcome
	Loading() bool

	SetSearch(q string)
	SearchQuery() string
	HandleSort(key string)
	SortBy() string
	SortDesc() bool
	SetPage(n int)
	Page() int
	TotalPages() int

	// Rows is the current page; All is every filtered, sorted record.
	Rows() []Row
	All() []Row
	Record(id int64) (Row, bool)

	ToggleSelect(id int64)
	ToggleSelectAll()
	Selected() []int64
	IsSelected(id int64) bool
	ClearSelection()
	DeleteSelected(ctx context.Context) controller.Outcome

	AddForm(onSuccess func()) FormEditor
	EditForm(id int64, onClose func()) (FormEditor, bool)
}

// FormEditor drives a form controller without knowing its record type.
type FormEditor interface {
	Mode() controller.Mode
	Fields() []string
	Value(field string) string
	IsRequired(field string) bool
	SetField(field, value string) (string, error)
	Error(field string) string
	Errors() validate.Errors
	Missing() []string
	Children() []controller.ChildEditor
	FileFields() []string
	Attach(field, path string) error
	UploadDocument(ctx context.Context, key, path string) (controller.Outcome, error)
	Save(ctx context.Context) controller.Outcome
}

type table[T models.Record] struct {
	name     string
	title    string
	columns  []Column
	list     *controller.List[T]
	backend  controller.Backend
	notifier notify.Notifier
	opts     []controller.Option
}

func newTable[T models.Record](name, title string, columns []Column, e controller.Entity[T], b controller.Backend, n notify.Notifier, opts []controller.Option) *table[T] {
	return &table[T]{
		name:     name,
		title:    title,
		columns:  columns,
		list:     controller.NewList(e, b, n, opts...),
		backend:  b,
		notifier: n,
		opts:     opts,
	}
}

func (t *table[T]) Name() string       { return t.name }
func (t *table[T]) Title() string      { return t.title }
func (t *table[T]) Singular() string   { return t.list.Entity().Singular }
func (t *table[T]) Columns() []Column  { return t.columns }
func (t *table[T]) Loading() bool      { return t.list.Loading() }
func (t *table[T]) SetSearch(q string) { t.list.SetSearch(q) }

func (t *table[T]) SearchQuery() string {
	return t.list.SearchQuery()
}

func (t *table[T]) Fetch(ctx context.Context) controller.Outcome {
	return t.list.Fetch(ctx)
}

func (t *table[T]) HandleSort(key string) { t.list.HandleSort(key) }
func (t *table[T]) SortBy() string        { return t.list.SortBy() }
func (t *table[T]) SortDesc() bool        { return t.list.SortDesc() }
func (t *table[T]) SetPage(n int)         { t.list.SetPage(n) }
func (t *table[T]) Page() int             { return t.list.Page() }
func (t *table[T]) TotalPages() int       { return t.list.TotalPages() }

func (t *table[T]) Rows() []Row { return toRows(t.list.Rows()) }
func (t *table[T]) All() []Row  { return toRows(t.list.Filtered()) }

func (t *table[T]) Record(id int64) (Row, bool) {
	item, ok := t.find(id)
	if !ok {
		return Row{}, false
	}
	return Row{ID: id, Fields: models.Fields(item)}, true
}

func (t *table[T]) find(id int64) (T, bool) {
	for _, item := range t.list.Items() {
		if item.RecordID() == id {
			return item, true
		}
	}
	var zero T
	return zero, false
}

func (t *table[T]) ToggleSelect(id int64)    { t.list.ToggleSelect(id) }
func (t *table[T]) ToggleSelectAll()         { t.list.ToggleSelectAll() }
func (t *table[T]) Selected() []int64        { return t.list.Selected() }
func (t *table[T]) IsSelected(id int64) bool { return t.list.IsSelected(id) }
func (t *table[T]) ClearSelection()          { t.list.ClearSelection() }

func (t *table[T]) DeleteSelected(ctx context.Context) controller.Outcome {
	return t.list.DeleteSelected(ctx)
}

func (t *table[T]) AddForm(onSuccess func()) FormEditor {
	t.list.OpenAddModal()
	f := controller.NewAddForm(t.list.Entity(), t.backend, t.notifier, func() {
		t.list.CloseAddModal()
		if onSuccess != nil {
			onSuccess()
		}
	}, t.opts...)
	return &formEditor[T]{form: f}
}

// EditForm opens an edit form over the loaded record with id. Saving
// merges the result back into the list.
func (t *table[T]) EditForm(id int64, onClose func()) (FormEditor, bool) {
	item, ok := t.find(id)
	if !ok {
		return nil, false
	}
	t.list.OpenEditModal(item)
	f := controller.NewEditForm(t.list.Entity(), t.backend, t.notifier, item,
		t.list.UpdateItem,
		func() {
			t.list.CloseEditModal()
			if onClose != nil {
				onClose()
			}
		}, t.opts...)
	return &formEditor[T]{form: f}, true
}

func toRows[T models.Record](items []T) []Row {
	rows := make([]Row, len(items))
	for i, item := range items {
		rows[i] = Row{ID: item.RecordID(), Fields: models.Fields(item)}
	}
	return rows
}

type formEditor[T models.Record] struct {
	form *controller.Form[T]
}

var hiddenFields = map[string]bool{"id": true, "created_at": true, "updated_at": true}

func (e *formEditor[T]) Mode() controller.Mode { return e.form.Mode() }

// Fields lists the scalar fields a user edits directly, in declaration order.
func (e *formEditor[T]) Fields() []string {
	draft := e.form.Draft()
	values := models.Fields(draft)
	files := e.FileFields()

	var out []string
	for _, name := range models.FieldNames(draft) {
		if hiddenFields[name] {
			continue
		}
		if _, nested := values[name].([]any); nested {
			continue
		}
		if base, ok := strings.CutSuffix(name, "_name"); ok && contains(files, base) {
			continue
		}
		out = append(out, name)
	}
	return out
}

func (e *formEditor[T]) Value(field string) string {
	if raw, ok := e.form.Pending()[field]; ok {
		return raw
	}
	v := models.Fields(e.form.Draft())[field]
	switch val := v.(type) {
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	}
	return models.FormatValue(v)
}

func (e *formEditor[T]) IsRequired(field string) bool {
	return contains(e.form.Entity().Required, field)
}

func (e *formEditor[T]) SetField(field, value string) (string, error) {
	return e.form.SetField(field, value)
}

func (e *formEditor[T]) Error(field string) string { return e.form.Error(field) }
func (e *formEditor[T]) Errors() validate.Errors   { return e.form.Errors() }
func (e *formEditor[T]) Missing() []string         { return e.form.Missing() }
func (e *formEditor[T]) Children() []controller.ChildEditor {
	return e.form.Children()
}

func (e *formEditor[T]) FileFields() []string {
	if m := e.form.Entity().Multipart; m != nil {
		return m.Files
	}
	return nil
}

func (e *formEditor[T]) Attach(field, path string) error {
	return e.form.Attach(field, path)
}

func (e *formEditor[T]) UploadDocument(ctx context.Context, key, path string) (controller.Outcome, error) {
	return UploadDocument(ctx, e.form, key, path)
}

func (e *formEditor[T]) Save(ctx context.Context) controller.Outcome {
	return e.form.Save(ctx)
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
