// ABOUTME: MCP resource handlers for exposing freight records
// ABOUTME: Provides read-only access to every entity table via freight:// URIs
package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/entities"
)

const resourceScheme = "freight://"

type ResourceHandlers struct {
	records *RecordHandlers
}

func NewResourceHandlers(records *RecordHandlers) *ResourceHandlers {
	return &ResourceHandlers{records: records}
}

// ReadResource serves freight://<entity> and freight://<entity>/<id>.
func (h *ResourceHandlers) ReadResource(ctx context.Context, request *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	uri := request.Params.URI
	if !strings.HasPrefix(uri, resourceScheme) {
		return nil, fmt.Errorf("invalid URI scheme: expected %s", resourceScheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, resourceScheme), "/")
	t, rec, err := h.records.open(parts[0], false)
	if err != nil {
		return nil, err
	}
	if outcome := t.Fetch(ctx); outcome != controller.OutcomeOK {
		return nil, failure(outcome, rec)
	}

	if len(parts) == 1 || parts[1] == "" {
		return jsonResource(uri, fieldsOf(t.All()))
	}

	id, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid record id %q: %w", parts[1], err)
	}
	row, ok := t.Record(id)
	if !ok {
		return nil, fmt.Errorf("%s record %d not found", t.Singular(), id)
	}
	return jsonResource(uri, row.Fields)
}

func fieldsOf(rows []entities.Row) []map[string]any {
	out := make([]map[string]any, len(rows))
	for i, r := range rows {
		out[i] = r.Fields
	}
	return out
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resource: %w", err)
	}
	return &mcp.ReadResourceResult{Contents: []*mcp.ResourceContents{
		{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}}, nil
}
