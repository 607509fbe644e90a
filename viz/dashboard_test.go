// ABOUTME: Tests for dashboard statistics and rendering
// ABOUTME: Builds stats from tables fetched from the fake backend
package viz

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/apitest"
	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
)

func TestGenerateDashboardStats(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Seed("lead",
		models.Lead{ID: 1, LeadStatus: "New", CreatedAt: "2024-03-09T10:00:00Z"},
		models.Lead{ID: 2, LeadStatus: "Quotations", CreatedAt: "2024-01-01T10:00:00Z"},
		models.Lead{ID: 3, LeadStatus: "New"},
	)
	srv.Seed("carrier",
		models.Carrier{ID: 1, DBA: "Fast Haul", LIEndDate: "2024-03-20"},
		models.Carrier{ID: 2, DBA: "Slow Haul", LIEndDate: "2025-01-01", CIEndDate: "2024-03-01"},
	)
	srv.Fail("GET", "/broker", 500)

	deps := entities.Deps{
		Backend:  api.New(srv.URL(), api.StaticToken("tok")),
		Notifier: notify.NewRecorder(false),
	}
	var tables []entities.Table
	loaded := map[string]bool{}
	for _, name := range []string{"leads", "carriers", "brokers"} {
		tbl, err := entities.New(name, deps)
		require.NoError(t, err)
		loaded[name] = tbl.Fetch(context.Background()) == controller.OutcomeOK
		tables = append(tables, tbl)
	}

	now := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	stats := GenerateDashboardStats(tables, loaded, now)

	assert.Equal(t, []StatusCount{{"New", 2}, {"Quotations", 1}}, stats.PipelineByStatus)
	assert.Equal(t, []TableCount{{"leads", 3}, {"carriers", 2}}, stats.Totals)
	assert.Equal(t, []string{"brokers"}, stats.Unavailable)
	assert.Equal(t, []TableCount{{"leads", 1}}, stats.RecentByTable)

	require.Len(t, stats.ExpiringInsurance, 2)
	assert.Equal(t, InsuranceAlert{Carrier: "Slow Haul", Kind: "cargo", EndDate: "2024-03-01", Days: -9}, stats.ExpiringInsurance[0])
	assert.Equal(t, "Fast Haul", stats.ExpiringInsurance[1].Carrier)
	assert.Equal(t, 10, stats.ExpiringInsurance[1].Days)

	out := RenderDashboard(stats)
	assert.Contains(t, out, "FREIGHT DESK DASHBOARD")
	assert.Contains(t, out, "LEAD PIPELINE")
	assert.Contains(t, out, "██████████")
	assert.Contains(t, out, "unavailable: brokers")
	assert.Contains(t, out, "Slow Haul cargo insurance expired 2024-03-01")
	assert.Contains(t, out, "Fast Haul liability insurance expires 2024-03-20 (10 days)")
}

func TestRenderDashboard_Empty(t *testing.T) {
	out := RenderDashboard(&DashboardStats{})
	assert.Contains(t, out, "RECORDS")
	assert.NotContains(t, out, "NEEDS ATTENTION")
	assert.NotContains(t, out, "LEAD PIPELINE")
}
