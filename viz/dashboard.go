// ABOUTME: Terminal dashboard statistics and rendering
// ABOUTME: Summarizes the lead pipeline, table sizes, and expiring carrier insurance
package viz

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harperreed/freightdesk/entities"
)

type DashboardStats struct {
	// Lead pipeline by status
	PipelineByStatus []StatusCount

	// Records per table; tables that failed to load are listed separately
	Totals      []TableCount
	Unavailable []string

	// Records created in the last 7 days
	RecentByTable []TableCount

	// Needs attention
	ExpiringInsurance []InsuranceAlert
}

type StatusCount struct {
	Status string
	Count  int
}

type TableCount struct {
	Table string
	Count int
}

type InsuranceAlert struct {
	Carrier string
	Kind    string // "liability" or "cargo"
	EndDate string
	Days    int // negative once expired
}

const (
	recentWindow    = 7 * 24 * time.Hour
	insuranceWindow = 30
)

// GenerateDashboardStats summarizes tables that have already been fetched.
// loaded reports which tables fetched successfully.
func GenerateDashboardStats(tables []entities.Table, loaded map[string]bool, now time.Time) *DashboardStats {
	stats := &DashboardStats{}

	for _, t := range tables {
		if !loaded[t.Name()] {
			stats.Unavailable = append(stats.Unavailable, t.Name())
			continue
		}
		rows := t.All()
		stats.Totals = append(stats.Totals, TableCount{Table: t.Name(), Count: len(rows)})

		recent := 0
		for _, r := range rows {
			if created, ok := parseTime(r.Text("created_at")); ok && now.Sub(created) <= recentWindow {
				recent++
			}
		}
		if recent > 0 {
			stats.RecentByTable = append(stats.RecentByTable, TableCount{Table: t.Name(), Count: recent})
		}

		switch t.Name() {
		case "leads":
			stats.PipelineByStatus = pipeline(rows)
		case "carriers":
			stats.ExpiringInsurance = expiringInsurance(rows, now)
		}
	}
	return stats
}

func pipeline(rows []entities.Row) []StatusCount {
	counts := map[string]int{}
	for _, r := range rows {
		status := r.Text("lead_status")
		if status == "" {
			status = "unknown"
		}
		counts[status]++
	}
	out := make([]StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

func expiringInsurance(rows []entities.Row, now time.Time) []InsuranceAlert {
	today := now.Truncate(24 * time.Hour)
	var out []InsuranceAlert
	for _, r := range rows {
		name := r.Text("dba")
		if name == "" {
			name = r.Text("legal_name")
		}
		for _, check := range []struct{ kind, key string }{
			{"liability", "li_end_date"},
			{"cargo", "ci_end_date"},
		} {
			end := entities.DateOnly(r.Text(check.key))
			if end == "" {
				continue
			}
			t, err := time.Parse("2006-01-02", end)
			if err != nil {
				continue
			}
			days := int(t.Sub(today).Hours() / 24)
			if days <= insuranceWindow {
				out = append(out, InsuranceAlert{Carrier: name, Kind: check.kind, EndDate: end, Days: days})
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Days < out[j].Days })
	return out
}

func parseTime(s string) (time.Time, bool) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func RenderDashboard(stats *DashboardStats) string {
	var out strings.Builder

	// Header
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n")
	out.WriteString("  FREIGHT DESK DASHBOARD\n")
	out.WriteString("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━\n\n")

	if len(stats.PipelineByStatus) > 0 {
		out.WriteString("LEAD PIPELINE\n")
		renderPipeline(&out, stats.PipelineByStatus)
		out.WriteString("\n")
	}

	out.WriteString("RECORDS\n")
	for _, tc := range stats.Totals {
		out.WriteString(fmt.Sprintf("  %-13s %5d\n", tc.Table, tc.Count))
	}
	if len(stats.Unavailable) > 0 {
		out.WriteString(fmt.Sprintf("  unavailable: %s\n", strings.Join(stats.Unavailable, ", ")))
	}
	out.WriteString("\n")

	if len(stats.RecentByTable) > 0 {
		out.WriteString("NEW THIS WEEK\n")
		for _, tc := range stats.RecentByTable {
			out.WriteString(fmt.Sprintf("  %-13s %5d\n", tc.Table, tc.Count))
		}
		out.WriteString("\n")
	}

	if len(stats.ExpiringInsurance) > 0 {
		out.WriteString("NEEDS ATTENTION\n")
		for _, a := range stats.ExpiringInsurance {
			if a.Days < 0 {
				out.WriteString(fmt.Sprintf("  ⚠️  %s %s insurance expired %s\n", a.Carrier, a.Kind, a.EndDate))
			} else {
				out.WriteString(fmt.Sprintf("  ⚠️  %s %s insurance expires %s (%d days)\n", a.Carrier, a.Kind, a.EndDate, a.Days))
			}
		}
	}

	return out.String()
}

func renderPipeline(out *strings.Builder, pipeline []StatusCount) {
	// Find max count for scaling
	maxCount := 1
	for _, s := range pipeline {
		if s.Count > maxCount {
			maxCount = s.Count
		}
	}

	for _, s := range pipeline {
		// Bar length is 0-10 blocks
		barLength := (s.Count * 10) / maxCount
		bar := strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
		out.WriteString(fmt.Sprintf("  %-13s %s  %2d\n", s.Status, bar, s.Count))
	}
}
