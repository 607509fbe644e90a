// ABOUTME: MCP server assembly for the freight back office
// ABOUTME: Registers record tools and freight:// resources on one server
package handlers

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/harperreed/freightdesk/entities"
)

// NewServer builds an MCP server whose tools act on the backend in deps.
func NewServer(deps entities.Deps, version string) *mcp.Server {
	records := NewRecordHandlers(deps)
	resources := NewResourceHandlers(records)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "freightdesk",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_entities",
		Description: "List the entity tables and their display columns",
	}, records.ListEntities)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_records",
		Description: "Fetch an entity table and return one page after search and sort",
	}, records.ListRecords)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "delete_records",
		Description: "Delete records by id. Nothing is deleted unless confirm is true",
	}, records.DeleteRecords)

	for _, name := range entities.Names {
		server.AddResource(&mcp.Resource{
			Name:     name,
			URI:      resourceScheme + name,
			MIMEType: "application/json",
		}, resources.ReadResource)
	}
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "record",
		URITemplate: resourceScheme + "{entity}/{id}",
		MIMEType:    "application/json",
	}, resources.ReadResource)

	return server
}
