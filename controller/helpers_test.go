// ABOUTME: Shared fixtures for controller tests
// ABOUTME: Builds lead and follow-up strategies wired to the fake backend
package controller

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/apitest"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
	"github.com/harperreed/freightdesk/validate"
)

var leadContacts = Collection[models.Lead, models.Contact]{
	Field: "contacts",
	Get:   func(l models.Lead) models.List[models.Contact] { return l.Contacts },
	Set: func(l models.Lead, c models.List[models.Contact]) models.Lead {
		l.Contacts = c
		return l
	},
}

var followupContacts = Collection[models.Followup, models.FollowupContact]{
	Field: "contacts",
	Get:   func(f models.Followup) models.List[models.FollowupContact] { return f.Contacts },
	Set: func(f models.Followup, c models.List[models.FollowupContact]) models.Followup {
		f.Contacts = c
		return f
	},
	ID: func(c models.FollowupContact) string { return c.ID },
	WithID: func(c models.FollowupContact, id string) models.FollowupContact {
		c.ID = id
		return c
	},
}

func testLeadEntity() Entity[models.Lead] {
	return Entity[models.Lead]{
		Resource: "lead",
		Singular: "lead",
		Plural:   "leads",
		Required: []string{"lead_no", "lead_date", "lead_type", "lead_status"},
		Schema: validate.Schema{
			"email":   {Email: true},
			"lead_no": {Required: true, MaxLength: 20},
		},
		Template:    func() models.Lead { return models.Lead{} },
		Collections: []Binder[models.Lead]{leadContacts},
		Messages: Messages{
			AddSuccess: notify.Success("Success", "Lead data has been saved successfully."),
			AddFailure: notify.Error("Error", "An error occurred while saving/updating the lead."),
		},
	}
}

func testFollowupEntity() Entity[models.Followup] {
	return Entity[models.Followup]{
		Resource:    "lead-followup",
		Singular:    "follow-up",
		Plural:      "follow-ups",
		Required:    []string{"lead_no", "lead_date", "lead_type", "lead_status"},
		Collections: []Binder[models.Followup]{followupContacts},
		Messages: Messages{
			EditSuccess: notify.Success("Updated!", "Follow-up data has been updated successfully."),
		},
	}
}

type fixture struct {
	srv      *apitest.Server
	client   *api.Client
	notifier *notify.Recorder
	tr       *http.Transport
}

func newFixture(t *testing.T, token string) *fixture {
	t.Helper()
	srv := apitest.NewServer(t)
	tr := &http.Transport{}
	t.Cleanup(tr.CloseIdleConnections)
	return &fixture{
		srv:      srv,
		client:   api.New(srv.URL(), api.StaticToken(token), api.WithTransport(tr)),
		notifier: notify.NewRecorder(true),
		tr:       tr,
	}
}

func seedLeads(srv *apitest.Server, n int) {
	for i := 1; i <= n; i++ {
		srv.Seed("lead", models.Lead{
			ID:           int64(i),
			LeadNo:       fmt.Sprintf("L%03d", i),
			CustomerName: fmt.Sprintf("Customer %d", i),
			LeadStatus:   "New",
			CreatedAt:    fmt.Sprintf("2024-01-%02dT10:00:00Z", i),
		})
	}
}

func jsonUnmarshal(s string, v any) error {
	return json.Unmarshal([]byte(s), v)
}
