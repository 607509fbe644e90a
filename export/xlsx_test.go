// ABOUTME: Tests for spreadsheet export
// ABOUTME: Reads the written workbook back with excelize
package export

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/harperreed/freightdesk/api"
	"github.com/harperreed/freightdesk/apitest"
	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
)

func TestWriteRows(t *testing.T) {
	columns := []entities.Column{{Key: "name", Title: "Name", Width: 20}, {Key: "hot", Title: "Hot"}, {Key: "amount", Title: "Amount"}}
	rows := []entities.Row{
		{ID: 7, Fields: map[string]any{"name": "Acme", "hot": true, "amount": 12.5}},
		{ID: 9, Fields: map[string]any{"name": "Globex", "hot": false}},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteRows(&buf, "Customers", columns, rows))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows("Customers")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, []string{"ID", "Name", "Hot", "Amount"}, got[0])
	assert.Equal(t, []string{"7", "Acme", "Yes", "12.5"}, got[1])
	assert.Equal(t, []string{"9", "Globex", "No"}, got[2])

	styleID, err := f.GetCellStyle("Customers", "B1")
	require.NoError(t, err)
	style, err := f.GetStyle(styleID)
	require.NoError(t, err)
	assert.True(t, style.Font.Bold)
}

func TestWriteXLSX_UsesFilteredView(t *testing.T) {
	srv := apitest.NewServer(t)
	srv.Seed("broker",
		models.Broker{ID: 1, BrokerName: "Alpha Customs"},
		models.Broker{ID: 2, BrokerName: "Beta Freight"},
		models.Broker{ID: 3, BrokerName: "Alpine Brokers"},
	)
	tbl, err := entities.New("brokers", entities.Deps{
		Backend:  api.New(srv.URL(), api.StaticToken("tok")),
		Notifier: notify.NewRecorder(true),
	})
	require.NoError(t, err)
	require.Equal(t, controller.OutcomeOK, tbl.Fetch(context.Background()))
	tbl.SetSearch("alp")
	tbl.HandleSort("broker_name")

	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, tbl))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()
	got, err := f.GetRows("Brokers")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Alpha Customs", got[1][1])
	assert.Equal(t, "Alpine Brokers", got[2][1])
}
