// ABOUTME: Nested-collection mutators for form drafts
// ABOUTME: Supports index-based and id-based child lists with a fixed discipline per field
package controller

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/harperreed/freightdesk/models"
)

// ErrWrongDiscipline means an index mutator was used on an id-keyed
// collection or the other way round.
var ErrWrongDiscipline = errors.New("collection mutated with the wrong discipline")

// Collection binds one nested list field of T holding children of type C.
// Collections with ID set are keyed by child id; the rest by position.
type Collection[T models.Record, C any] struct {
	Field string
	Label string
	Get   func(T) models.List[C]
	Set   func(T, models.List[C]) T
	New   func() C

	ID     func(C) string
	WithID func(C, string) C
}

// ByID reports whether children are addressed by id.
func (c Collection[T, C]) ByID() bool {
	return c.ID != nil
}

func (c Collection[T, C]) blank() C {
	if c.New != nil {
		return c.New()
	}
	var zero C
	return zero
}

// AddChild appends a blank child. Id-keyed children get a fresh unique id.
func AddChild[T models.Record, C any](f *Form[T], c Collection[T, C]) {
	f.mutate(func(draft T) T {
		child := c.blank()
		if c.ByID() && c.WithID != nil && c.ID(child) == "" {
			child = c.WithID(child, uuid.NewString())
		}
		return c.Set(draft, c.Get(draft).Append(child))
	})
}

// RemoveChildAt removes the child at index.
func RemoveChildAt[T models.Record, C any](f *Form[T], c Collection[T, C], index int) error {
	if c.ByID() {
		return fmt.Errorf("%s: %w", c.Field, ErrWrongDiscipline)
	}
	f.mutate(func(draft T) T {
		return c.Set(draft, c.Get(draft).RemoveAt(index))
	})
	return nil
}

// UpdateChildAt replaces the child at index.
func UpdateChildAt[T models.Record, C any](f *Form[T], c Collection[T, C], index int, child C) error {
	if c.ByID() {
		return fmt.Errorf("%s: %w", c.Field, ErrWrongDiscipline)
	}
	f.mutate(func(draft T) T {
		return c.Set(draft, c.Get(draft).ReplaceAt(index, child))
	})
	return nil
}

// RemoveChildByID removes every child whose id equals id.
func RemoveChildByID[T models.Record, C any](f *Form[T], c Collection[T, C], id string) error {
	if !c.ByID() {
		return fmt.Errorf("%s: %w", c.Field, ErrWrongDiscipline)
	}
	f.mutate(func(draft T) T {
		return c.Set(draft, c.Get(draft).RemoveWhere(func(ch C) bool { return c.ID(ch) == id }))
	})
	return nil
}

// UpdateChildByID replaces the child whose id equals id.
func UpdateChildByID[T models.Record, C any](f *Form[T], c Collection[T, C], id string, child C) error {
	if !c.ByID() {
		return fmt.Errorf("%s: %w", c.Field, ErrWrongDiscipline)
	}
	f.mutate(func(draft T) T {
		return c.Set(draft, c.Get(draft).ReplaceWhere(func(ch C) bool { return c.ID(ch) == id }, child))
	})
	return nil
}

// Binder produces a type-erased editor for one collection of a form.
type Binder[T models.Record] interface {
	Bind(f *Form[T]) ChildEditor
}

// ChildEditor edits a nested collection without knowing its child type.
// Rows are addressed by position; id-keyed collections translate the
// position to the child's id before mutating.
type ChildEditor interface {
	Field() string
	Label() string
	ByID() bool
	Len() int
	Row(i int) map[string]any
	Columns() []string
	Add()
	Remove(i int) error
	SetChildField(i int, field, value string) error
}

func (c Collection[T, C]) Bind(f *Form[T]) ChildEditor {
	return &boundCollection[T, C]{form: f, c: c}
}

type boundCollection[T models.Record, C any] struct {
	form *Form[T]
	c    Collection[T, C]
}

func (b *boundCollection[T, C]) Field() string { return b.c.Field }
func (b *boundCollection[T, C]) ByID() bool    { return b.c.ByID() }

func (b *boundCollection[T, C]) Label() string {
	if b.c.Label != "" {
		return b.c.Label
	}
	return b.c.Field
}

func (b *boundCollection[T, C]) children() models.List[C] {
	return b.c.Get(b.form.Draft())
}

func (b *boundCollection[T, C]) Len() int {
	return len(b.children())
}

func (b *boundCollection[T, C]) Row(i int) map[string]any {
	children := b.children()
	if i < 0 || i >= len(children) {
		return nil
	}
	return models.Fields(children[i])
}

func (b *boundCollection[T, C]) Columns() []string {
	return models.FieldNames(b.c.blank())
}

func (b *boundCollection[T, C]) Add() {
	AddChild(b.form, b.c)
}

func (b *boundCollection[T, C]) Remove(i int) error {
	if !b.c.ByID() {
		return RemoveChildAt(b.form, b.c, i)
	}
	children := b.children()
	if i < 0 || i >= len(children) {
		return fmt.Errorf("%s: no row %d", b.c.Field, i)
	}
	return RemoveChildByID(b.form, b.c, b.c.ID(children[i]))
}

func (b *boundCollection[T, C]) SetChildField(i int, field, value string) error {
	children := b.children()
	if i < 0 || i >= len(children) {
		return fmt.Errorf("%s: no row %d", b.c.Field, i)
	}
	child, err := models.Patch(children[i], field, sanitizeValue(value))
	if err != nil {
		return err
	}
	if b.c.ByID() {
		return UpdateChildByID(b.form, b.c, b.c.ID(children[i]), child)
	}
	return UpdateChildAt(b.form, b.c, i, child)
}
