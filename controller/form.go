// ABOUTME: Generic draft-form controller for adding and editing one record
// ABOUTME: Validates, patches the draft immutably, and submits via JSON or multipart
package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
	"github.com/harperreed/freightdesk/validate"
)

// Mode distinguishes the add and edit variants.
type Mode int

const (
	ModeAdd Mode = iota
	ModeEdit
)

// Form holds one draft record.
type Form[T models.Record] struct {
	entity   Entity[T]
	messages Messages
	backend  Backend
	notifier notify.Notifier
	logger   *zap.Logger
	fileBase string
	mode     Mode

	onSuccess func()
	onUpdate  func(T)
	onClose   func()

	mu          sync.Mutex
	draft       T
	errs        validate.Errors
	attachments map[string]string
	// pending holds text that the field's kind cannot store yet.
	pending map[string]string
}

// NewAddForm starts from the entity's empty template. onSuccess runs after a
// successful save, typically to re-fetch the list.
func NewAddForm[T models.Record](e Entity[T], b Backend, n notify.Notifier, onSuccess func(), opts ...Option) *Form[T] {
	f := newForm(e, b, n, ModeAdd, opts)
	f.onSuccess = onSuccess
	f.draft = normalize(e.template())
	return f
}

// NewEditForm seeds the draft from source. onUpdate receives the saved
// record and onClose runs after it.
func NewEditForm[T models.Record](e Entity[T], b Backend, n notify.Notifier, source T, onUpdate func(T), onClose func(), opts ...Option) *Form[T] {
	f := newForm(e, b, n, ModeEdit, opts)
	f.onUpdate = onUpdate
	f.onClose = onClose
	f.Load(source)
	return f
}

func newForm[T models.Record](e Entity[T], b Backend, n notify.Notifier, mode Mode, opts []Option) *Form[T] {
	o := buildOptions(opts)
	return &Form[T]{
		entity:      e,
		messages:    e.messages(),
		backend:     b,
		notifier:    n,
		logger:      o.logger.With(zap.String("resource", e.Resource)),
		fileBase:    o.fileBase,
		mode:        mode,
		errs:        validate.Errors{},
		attachments: map[string]string{},
		pending:     map[string]string{},
	}
}

func (f *Form[T]) Mode() Mode {
	return f.mode
}

func (f *Form[T]) Entity() Entity[T] {
	return f.entity
}

// Load re-derives the draft from a new source record.
func (f *Form[T]) Load(source T) {
	draft := normalize(source)
	if f.entity.Hydrate != nil {
		draft = f.entity.Hydrate(draft)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = draft
	f.errs = validate.Errors{}
	f.attachments = map[string]string{}
	f.pending = map[string]string{}
}

// Draft returns the current draft.
func (f *Form[T]) Draft() T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors returns the advisory message per field.
func (f *Form[T]) Errors() validate.Errors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs
}

// Error returns the advisory message for one field.
func (f *Form[T]) Error(field string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.errs[field]
}

// SetField sanitizes value, stores it in the draft, and refreshes that
// field's advisory message. The draft is updated even when the value
// violates the schema. An error is returned only when the value cannot be
// stored in the field at all.
func (f *Form[T]) SetField(field string, value any) (string, error) {
	if s, ok := value.(string); ok {
		value = sanitizeValue(s)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	next, err := models.Patch(f.draft, field, value)
	if errors.Is(err, models.ErrInvalidValue) {
		if raw, ok := value.(string); ok {
			return f.setPending(field, raw), nil
		}
	}
	if err != nil {
		f.errs = f.errs.Set(field, "Invalid value")
		return f.errs[field], err
	}
	if _, ok := f.pending[field]; ok {
		f.pending = without(f.pending, field)
	}

	fields := models.Fields(next)
	msg := f.entity.Schema.Check(field, fields)
	f.errs = f.errs.Set(field, msg)
	// A confirmation field depends on the field it matches.
	for name, rule := range f.entity.Schema {
		if rule.MatchField == field {
			f.errs = f.errs.Set(name, f.entity.Schema.Check(name, fields))
		}
	}
	f.draft = next
	return msg, nil
}

// setPending keeps raw text the draft's field cannot hold and checks the
// schema against that text. Callers hold f.mu.
func (f *Form[T]) setPending(field, raw string) string {
	next := make(map[string]string, len(f.pending)+1)
	for k, v := range f.pending {
		next[k] = v
	}
	next[field] = raw
	f.pending = next

	fields := models.Fields(f.draft)
	fields[field] = raw
	msg := f.entity.Schema.Check(field, fields)
	if msg == "" {
		msg = "Invalid value"
	}
	f.errs = f.errs.Set(field, msg)
	return msg
}

// Pending returns the text typed into fields whose kind cannot store it.
// Those fields keep their last valid value in the draft.
func (f *Form[T]) Pending() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending
}

func without(m map[string]string, key string) map[string]string {
	next := make(map[string]string, len(m))
	for k, v := range m {
		if k != key {
			next[k] = v
		}
	}
	return next
}

// Attach marks a local file to send for a file field on the next save.
func (f *Form[T]) Attach(field, path string) error {
	if f.entity.Multipart == nil || !contains(f.entity.Multipart.Files, field) {
		return fmt.Errorf("field %q does not accept files", field)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	next := make(map[string]string, len(f.attachments)+1)
	for k, v := range f.attachments {
		next[k] = v
	}
	next[field] = path
	f.attachments = next
	return nil
}

// Attachments returns the pending file attachments by field.
func (f *Form[T]) Attachments() map[string]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.attachments
}

// Upload sends a document to the upload endpoint and stores its URL in
// field key and its display name in key_name.
func (f *Form[T]) Upload(ctx context.Context, key, filename string, content io.Reader) Outcome {
	if err := f.backend.Authorized(); err != nil {
		return f.tokenFailure(err)
	}
	file, err := f.backend.Upload(ctx, key, filename, content, f.fileBase)
	if err != nil {
		f.logger.Error("failed to upload document", zap.String("key", key), zap.Error(err))
		f.notifier.Fire(notify.Error("Error", "Failed to upload "+filename+"."))
		if api.IsUnauthorized(err) {
			return OutcomeUnauthorized
		}
		return OutcomeFailed
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	fields := models.Fields(f.draft)
	fields[key] = file.FileURL
	fields[key+"_name"] = file.FileName
	next, err := fromFields[T](fields)
	if err != nil {
		f.logger.Error("failed to store uploaded document", zap.String("key", key), zap.Error(err))
		f.notifier.Fire(notify.Error("Error", "Failed to upload "+filename+"."))
		return OutcomeFailed
	}
	f.draft = next
	return OutcomeOK
}

// Validate is the hard gate: every required field must be non-empty.
func (f *Form[T]) Validate() bool {
	fields := models.Fields(f.Draft())
	for _, name := range f.entity.Required {
		if isEmpty(fields[name]) {
			return false
		}
	}
	return true
}

// Missing lists the required fields that are empty.
func (f *Form[T]) Missing() []string {
	fields := models.Fields(f.Draft())
	var missing []string
	for _, name := range f.entity.Required {
		if isEmpty(fields[name]) {
			missing = append(missing, name)
		}
	}
	return missing
}

// Reset returns the draft to the empty template.
func (f *Form[T]) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = normalize(f.entity.template())
	f.errs = validate.Errors{}
	f.attachments = map[string]string{}
	f.pending = map[string]string{}
}

// HandleSubmit saves an add-form draft: POST for a new record, PUT when an
// id is already set. The draft resets only on success.
func (f *Form[T]) HandleSubmit(ctx context.Context) Outcome {
	if !f.Validate() {
		f.notifier.Fire(AlertValidation)
		return OutcomeInvalid
	}
	if err := f.backend.Authorized(); err != nil {
		if errors.Is(err, api.ErrNoToken) {
			f.notifier.Fire(AlertNoToken)
			return OutcomeNoToken
		}
		f.logger.Error("failed to read token", zap.Error(err))
		f.notifier.Fire(f.messages.AddFailure)
		return OutcomeFailed
	}

	if _, err := f.save(ctx); err != nil {
		f.logger.Error("failed to save record", zap.Error(err))
		f.notifier.Fire(f.messages.AddFailure)
		if api.IsUnauthorized(err) {
			return OutcomeUnauthorized
		}
		return OutcomeFailed
	}

	f.notifier.Fire(f.messages.AddSuccess)
	f.Reset()
	if f.onSuccess != nil {
		f.onSuccess()
	}
	return OutcomeOK
}

// Update saves an edit-form draft and hands the saved record to onUpdate.
// On failure the draft is kept so the user can correct and retry.
func (f *Form[T]) Update(ctx context.Context) Outcome {
	if !f.Validate() {
		f.notifier.Fire(AlertValidation)
		return OutcomeInvalid
	}
	if err := f.backend.Authorized(); err != nil {
		return f.tokenFailure(err)
	}

	saved, err := f.save(ctx)
	if err != nil {
		f.logger.Error("failed to update record", zap.Int64("id", f.Draft().RecordID()), zap.Error(err))
		if api.IsUnauthorized(err) {
			f.notifier.Fire(AlertEditUnauthorized)
			return OutcomeUnauthorized
		}
		f.notifier.Fire(notify.Error("Oops...", f.messages.EditFailure))
		return OutcomeFailed
	}

	f.notifier.Fire(f.messages.EditSuccess)
	if f.onUpdate != nil {
		f.onUpdate(saved)
	}
	if f.onClose != nil {
		f.onClose()
	}
	return OutcomeOK
}

// Save runs the variant's submit operation.
func (f *Form[T]) Save(ctx context.Context) Outcome {
	if f.mode == ModeEdit {
		return f.Update(ctx)
	}
	return f.HandleSubmit(ctx)
}

func (f *Form[T]) tokenFailure(err error) Outcome {
	if errors.Is(err, api.ErrNoToken) {
		f.notifier.Fire(AlertNotLoggedIn)
		return OutcomeNoToken
	}
	f.logger.Error("failed to read token", zap.Error(err))
	f.notifier.Fire(notify.Error("Oops...", f.messages.EditFailure))
	return OutcomeFailed
}

func (f *Form[T]) save(ctx context.Context) (T, error) {
	draft := f.Draft()
	id := draft.RecordID()
	resource := f.entity.Resource

	var saved T
	var err error
	switch {
	case id == 0:
		err = f.backend.Create(ctx, resource, draft, &saved)
	case f.entity.Multipart != nil:
		var form *api.Form
		form, err = f.multipartBody(draft)
		if err == nil {
			err = f.backend.UpdateMultipart(ctx, resource, id, form, &saved)
		}
	default:
		err = f.backend.Update(ctx, resource, id, draft, &saved)
	}
	if err != nil {
		return draft, err
	}
	if saved.RecordID() == 0 {
		// Empty or partial response: report the draft as saved.
		saved = models.Merge(draft, saved)
	}
	return saved, nil
}

// multipartBody sends booleans as "1"/"0", nested collections as JSON,
// attached files as file parts, and every other field as text.
func (f *Form[T]) multipartBody(draft T) (*api.Form, error) {
	mp := f.entity.Multipart
	attachments := f.Attachments()
	pending := f.Pending()
	fields := models.Fields(draft)
	form := api.NewForm()

	for _, name := range models.FieldNames(draft) {
		if contains(mp.Files, name) {
			continue
		}
		if raw, ok := pending[name]; ok {
			form.Field(name, raw)
			continue
		}
		value := fields[name]
		switch v := value.(type) {
		case bool:
			form.Field(name, boolFlag(v))
		case float64:
			form.Field(name, strconv.FormatFloat(v, 'f', -1, 64))
		case string:
			form.Field(name, v)
		case nil:
			form.Field(name, "")
		default:
			data, err := json.Marshal(v)
			if err != nil {
				return nil, fmt.Errorf("failed to encode %s: %w", name, err)
			}
			form.Field(name, string(data))
		}
	}
	for _, name := range mp.Files {
		if path, ok := attachments[name]; ok {
			form.File(name, path)
		}
	}
	return form, nil
}

func (f *Form[T]) mutate(fn func(T) T) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = fn(f.draft)
}

// Children returns editors for every nested collection of the entity.
func (f *Form[T]) Children() []ChildEditor {
	editors := make([]ChildEditor, 0, len(f.entity.Collections))
	for _, b := range f.entity.Collections {
		editors = append(editors, b.Bind(f))
	}
	return editors
}

// normalize round-trips a record through JSON so nil collections become
// empty lists and string-encoded collections are parsed.
func normalize[T any](rec T) T {
	out, err := fromFields[T](models.Fields(rec))
	if err != nil {
		return rec
	}
	return out
}

func fromFields[T any](fields map[string]any) (T, error) {
	var out T
	data, err := json.Marshal(fields)
	if err != nil {
		return out, err
	}
	err = json.Unmarshal(data, &out)
	return out, err
}

func isEmpty(v any) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return val == ""
	case float64:
		return val == 0
	case bool:
		return !val
	}
	return false
}

func boolFlag(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func sanitizeValue(s string) string {
	return validate.Sanitize(s)
}
