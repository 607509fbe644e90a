// ABOUTME: Tests for record MCP tool and resource handlers
// ABOUTME: Runs each handler against the fake REST backend
package handlers

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/apitest"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/models"
)

func setupHandlers(t *testing.T, token string) (*RecordHandlers, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(t)
	h := NewRecordHandlers(entities.Deps{
		Backend:  api.New(srv.URL(), api.StaticToken(token)),
		FileBase: srv.FileRoot(),
	})
	return h, srv
}

func TestListEntities(t *testing.T) {
	h, _ := setupHandlers(t, "tok")

	_, out, err := h.ListEntities(context.Background(), nil, ListEntitiesInput{})
	require.NoError(t, err)
	require.Len(t, out.Entities, len(entities.Names))
	assert.Equal(t, "leads", out.Entities[0].Name)
	assert.Contains(t, out.Entities[0].Columns, "lead_no")
}

func TestListRecords(t *testing.T) {
	h, srv := setupHandlers(t, "tok")
	srv.Seed("broker",
		models.Broker{ID: 1, BrokerName: "Zeta Logistics"},
		models.Broker{ID: 2, BrokerName: "Alpha Freight"},
		models.Broker{ID: 3, BrokerName: "Alpha Haulage"},
	)

	_, out, err := h.ListRecords(context.Background(), nil, ListRecordsInput{
		Entity: "brokers",
		Query:  "alpha",
		SortBy: "broker_name",
		Desc:   ptr(true),
	})
	require.NoError(t, err)
	assert.Equal(t, 2, out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 1, out.TotalPages)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "Alpha Haulage", out.Records[0]["broker_name"])
}

func TestListRecords_DefaultSortDirection(t *testing.T) {
	h, srv := setupHandlers(t, "tok")
	srv.Seed("broker",
		models.Broker{ID: 1, BrokerName: "Old", CreatedAt: "2024-01-01 09:00:00"},
		models.Broker{ID: 2, BrokerName: "New", CreatedAt: "2024-06-01 09:00:00"},
	)

	_, out, err := h.ListRecords(context.Background(), nil, ListRecordsInput{Entity: "brokers"})
	require.NoError(t, err)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "New", out.Records[0]["broker_name"], "newest first by default")

	_, out, err = h.ListRecords(context.Background(), nil, ListRecordsInput{Entity: "brokers", Desc: ptr(false)})
	require.NoError(t, err)
	require.Len(t, out.Records, 2)
	assert.Equal(t, "Old", out.Records[0]["broker_name"])

	_, out, err = h.ListRecords(context.Background(), nil, ListRecordsInput{Entity: "brokers", SortBy: "broker_name"})
	require.NoError(t, err)
	assert.Equal(t, "New", out.Records[0]["broker_name"], "other keys sort ascending")
}

func ptr[T any](v T) *T { return &v }

func TestListRecords_Errors(t *testing.T) {
	h, _ := setupHandlers(t, "")

	_, _, err := h.ListRecords(context.Background(), nil, ListRecordsInput{})
	assert.EqualError(t, err, "entity is required")

	_, _, err = h.ListRecords(context.Background(), nil, ListRecordsInput{Entity: "spaceships"})
	assert.Error(t, err)

	_, _, err = h.ListRecords(context.Background(), nil, ListRecordsInput{Entity: "brokers"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Unauthorized")
}

func TestDeleteRecords(t *testing.T) {
	h, srv := setupHandlers(t, "tok")
	srv.Seed("broker", models.Broker{ID: 1}, models.Broker{ID: 2}, models.Broker{ID: 3})

	_, out, err := h.DeleteRecords(context.Background(), nil, DeleteRecordsInput{
		Entity:  "brokers",
		IDs:     []int64{1, 3},
		Confirm: true,
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3}, out.Deleted)
	require.Len(t, out.Alerts, 1)
	assert.Equal(t, "Deleted!", out.Alerts[0].Title)
	assert.Equal(t, 1, srv.Len("broker"))
	assert.Equal(t, 2, srv.Count("DELETE", "/broker"))
}

func TestDeleteRecords_NotConfirmed(t *testing.T) {
	h, srv := setupHandlers(t, "tok")
	srv.Seed("broker", models.Broker{ID: 1})

	_, out, err := h.DeleteRecords(context.Background(), nil, DeleteRecordsInput{
		Entity: "brokers",
		IDs:    []int64{1},
	})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", out.Outcome)
	assert.Empty(t, out.Deleted)
	assert.Equal(t, 1, srv.Len("broker"))
	assert.Equal(t, 0, srv.Count("DELETE", "/broker"))
}

func TestDeleteRecords_Failures(t *testing.T) {
	h, srv := setupHandlers(t, "tok")
	srv.Seed("broker", models.Broker{ID: 1})

	_, _, err := h.DeleteRecords(context.Background(), nil, DeleteRecordsInput{
		Entity: "brokers", IDs: []int64{9}, Confirm: true,
	})
	assert.EqualError(t, err, "broker record 9 not found")

	_, _, err = h.DeleteRecords(context.Background(), nil, DeleteRecordsInput{
		Entity: "brokers", Confirm: true,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No record selected")

	srv.Fail("DELETE", "/broker/*", 500)
	_, out, err := h.DeleteRecords(context.Background(), nil, DeleteRecordsInput{
		Entity: "brokers", IDs: []int64{1}, Confirm: true,
	})
	require.Error(t, err)
	assert.Equal(t, "failed", out.Outcome)
	assert.Equal(t, 1, srv.Len("broker"))
}

func TestReadResource(t *testing.T) {
	h, srv := setupHandlers(t, "tok")
	srv.Seed("broker", models.Broker{ID: 4, BrokerName: "Acme Brokerage"})
	res := NewResourceHandlers(h)

	read := func(uri string) (*mcp.ReadResourceResult, error) {
		return res.ReadResource(context.Background(), &mcp.ReadResourceRequest{
			Params: &mcp.ReadResourceParams{URI: uri},
		})
	}

	result, err := read("freight://brokers")
	require.NoError(t, err)
	var all []map[string]any
	require.NoError(t, json.Unmarshal([]byte(result.Contents[0].Text), &all))
	require.Len(t, all, 1)
	assert.Equal(t, "Acme Brokerage", all[0]["broker_name"])

	result, err = read("freight://brokers/4")
	require.NoError(t, err)
	assert.Contains(t, result.Contents[0].Text, "Acme Brokerage")
	assert.Equal(t, "application/json", result.Contents[0].MIMEType)

	_, err = read("crm://brokers")
	assert.Error(t, err)
	_, err = read("freight://brokers/99")
	assert.Error(t, err)
	_, err = read("freight://brokers/abc")
	assert.Error(t, err)
}

func TestNewServer(t *testing.T) {
	h, _ := setupHandlers(t, "tok")
	assert.NotNil(t, NewServer(h.deps, "test"))
}
