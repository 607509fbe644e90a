// ABOUTME: Shared types for the generic list and form controllers
// ABOUTME: Declares the backend contract, action outcomes, and per-entity strategy
package controller

import (
	"context"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
	"github.com/harperreed/freightdesk/validate"
)

// Backend is the REST surface the controllers call. *api.Client satisfies it.
type Backend interface {
	Authorized() error
	List(ctx context.Context, resource string, out any) error
	Create(ctx context.Context, resource string, body, out any) error
	Update(ctx context.Context, resource string, id int64, body, out any) error
	UpdateMultipart(ctx context.Context, resource string, id int64, form *api.Form, out any) error
	Delete(ctx context.Context, resource string, id int64) error
	Post(ctx context.Context, path string, body, out any) error
	Upload(ctx context.Context, key, filename string, content io.Reader, fileBase string) (api.UploadedFile, error)
}

// Outcome is the result of a user action after errors were turned into alerts.
type Outcome int

const (
	OutcomeOK Outcome = iota
	OutcomeCancelled
	OutcomeNoSelection
	OutcomeNoToken
	OutcomeInvalid
	OutcomeUnauthorized
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeOK:
		return "ok"
	case OutcomeCancelled:
		return "cancelled"
	case OutcomeNoSelection:
		return "no selection"
	case OutcomeNoToken:
		return "no token"
	case OutcomeInvalid:
		return "invalid"
	case OutcomeUnauthorized:
		return "unauthorized"
	case OutcomeFailed:
		return "failed"
	}
	return "unknown"
}

// MultipartFields marks an entity whose updates are sent as multipart/form-data.
type MultipartFields struct {
	// Bools are sent as "1" or "0".
	Bools []string
	// Files are sent as file parts when a local file is attached, and skipped otherwise.
	Files []string
}

// Entity is the strategy that specializes the controllers for one record type.
type Entity[T models.Record] struct {
	Resource string
	Singular string
	Plural   string

	// Required is the hard submit gate.
	Required []string
	// Schema drives the advisory per-field messages.
	Schema validate.Schema

	Template func() T
	// Hydrate adjusts a record when an edit form loads it.
	Hydrate func(T) T
	// Filter keeps only matching records after a fetch.
	Filter func(T) bool

	Collections []Binder[T]
	Multipart   *MultipartFields
	Messages    Messages
}

// Messages holds the alert texts an entity shows.
type Messages struct {
	LoadFailure   notify.Alert
	DeleteSuccess notify.Alert
	DeleteFailure notify.Alert
	AddSuccess    notify.Alert
	AddFailure    notify.Alert
	EditSuccess   notify.Alert
	EditFailure   string
}

// Fixed alerts shared by every entity.
var (
	AlertFetchUnauthorized = notify.Error("Unauthorized", "You need to log in to access this resource.")
	AlertNotLoggedIn       = notify.Error("Unauthorized", "You are not logged in. Please log in again.")
	AlertNoSelection       = notify.Warning("No record selected", "Please select a record to delete.")
	AlertValidation        = notify.Error("Validation Error", "Please fill in all required fields.")
	AlertNoToken           = notify.Error("Error", "No token found")
	AlertEditUnauthorized  = notify.Error("Oops...", "Unauthorized. Please log in again.")

	ConfirmDelete = notify.Confirmation{
		Title:       "Are you sure?",
		Text:        "This action cannot be undone.",
		Icon:        notify.IconWarning,
		ConfirmText: "Yes, delete selected!",
		CancelText:  "No, cancel!",
	}
)

// DefaultMessages builds the usual texts from an entity's names.
func DefaultMessages(singular, plural string) Messages {
	return Messages{
		LoadFailure:   notify.Error("Error!", "Failed to load "+plural+"."),
		DeleteSuccess: notify.Success("Deleted!", "Selected "+plural+" have been deleted."),
		DeleteFailure: notify.Error("Error!", "Failed to delete selected "+plural+"."),
		AddSuccess:    notify.Success("Success!", capitalize(singular)+" added successfully."),
		AddFailure:    notify.Error("Error", "An error occurred while saving/updating the "+singular+"."),
		EditSuccess:   notify.Success("Updated!", capitalize(singular)+" updated successfully."),
		EditFailure:   "Failed to update " + singular + ".",
	}
}

func (e Entity[T]) messages() Messages {
	m := e.Messages
	d := DefaultMessages(e.Singular, e.Plural)
	if m.LoadFailure == (notify.Alert{}) {
		m.LoadFailure = d.LoadFailure
	}
	if m.DeleteSuccess == (notify.Alert{}) {
		m.DeleteSuccess = d.DeleteSuccess
	}
	if m.DeleteFailure == (notify.Alert{}) {
		m.DeleteFailure = d.DeleteFailure
	}
	if m.AddSuccess == (notify.Alert{}) {
		m.AddSuccess = d.AddSuccess
	}
	if m.AddFailure == (notify.Alert{}) {
		m.AddFailure = d.AddFailure
	}
	if m.EditSuccess == (notify.Alert{}) {
		m.EditSuccess = d.EditSuccess
	}
	if m.EditFailure == "" {
		m.EditFailure = d.EditFailure
	}
	return m
}

func (e Entity[T]) template() T {
	if e.Template != nil {
		return e.Template()
	}
	var zero T
	return zero
}

// Option configures a controller.
type Option func(*options)

type options struct {
	logger   *zap.Logger
	fileBase string
}

// WithLogger sets the logger failures are reported to.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithFileBase sets the root that relative upload URLs resolve against.
func WithFileBase(base string) Option {
	return func(o *options) { o.fileBase = base }
}

func buildOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
