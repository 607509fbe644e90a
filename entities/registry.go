// ABOUTME: Registry of every entity table in tab order
// ABOUTME: Builds tables by name for the TUI tabs and the CLI and MCP commands
package entities

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/notify"
)

var (
	leadColumns = []Column{
		{Key: "lead_no", Title: "Lead No", Width: 10},
		{Key: "lead_date", Title: "Date", Width: 12},
		{Key: "customer_name", Title: "Customer", Width: 24},
		{Key: "lead_type", Title: "Type", Width: 12},
		{Key: "lead_status", Title: "Status", Width: 12},
		{Key: "assigned_to", Title: "Assigned To", Width: 16},
	}
	followupColumns = []Column{
		{Key: "lead_no", Title: "Lead No", Width: 10},
		{Key: "customer_name", Title: "Customer", Width: 24},
		{Key: "followup_type", Title: "Follow-up", Width: 12},
		{Key: "next_follow_up_date", Title: "Next Date", Width: 12},
		{Key: "lead_status", Title: "Status", Width: 12},
	}
	quoteColumns = []Column{
		{Key: "quote_type", Title: "Type", Width: 10},
		{Key: "quote_customer", Title: "Customer", Width: 24},
		{Key: "quote_cust_ref_no", Title: "Ref No", Width: 14},
		{Key: "quote_booked_by", Title: "Booked By", Width: 16},
		{Key: "quote_temperature", Title: "Temp", Width: 8},
	}
	customerColumns = []Column{
		{Key: "cust_name", Title: "Customer", Width: 24},
		{Key: "cust_ref_no", Title: "Ref No", Width: 14},
		{Key: "cust_type", Title: "Type", Width: 16},
		{Key: "cust_email", Title: "Email", Width: 24},
		{Key: "cust_primary_city", Title: "City", Width: 14},
	}
	orderColumns = []Column{
		{Key: "customer", Title: "Customer", Width: 24},
		{Key: "customer_ref_no", Title: "Ref No", Width: 14},
		{Key: "equipment", Title: "Equipment", Width: 14},
		{Key: "load_type", Title: "Load", Width: 8},
		{Key: "final_price", Title: "Price", Width: 10},
	}
	carrierColumns = []Column{
		{Key: "dba", Title: "DBA", Width: 20},
		{Key: "legal_name", Title: "Legal Name", Width: 24},
		{Key: "carr_type", Title: "Type", Width: 12},
		{Key: "dot_number", Title: "DOT", Width: 10},
		{Key: "primary_city", Title: "City", Width: 14},
	}
	vendorColumns = []Column{
		{Key: "legal_name", Title: "Legal Name", Width: 24},
		{Key: "vendor_type", Title: "Type", Width: 14},
		{Key: "service", Title: "Service", Width: 16},
		{Key: "vendor_code", Title: "Code", Width: 10},
	}
	brokerColumns = []Column{
		{Key: "broker_name", Title: "Broker", Width: 24},
		{Key: "broker_city", Title: "City", Width: 14},
		{Key: "broker_email", Title: "Email", Width: 24},
		{Key: "broker_phone", Title: "Phone", Width: 14},
	}
	userColumns = []Column{
		{Key: "name", Title: "Name", Width: 20},
		{Key: "username", Title: "Username", Width: 16},
		{Key: "email", Title: "Email", Width: 24},
		{Key: "emp_code", Title: "Emp Code", Width: 10},
		{Key: "role", Title: "Role", Width: 10},
	}
)

// Names lists every table name in tab order.
var Names = []string{
	"leads", "lead-quotes", "followups", "quotes", "customers",
	"orders", "carriers", "vendors", "brokers", "users",
}

// Deps carries the collaborators every table shares.
type Deps struct {
	Backend  controller.Backend
	Notifier notify.Notifier
	Logger   *zap.Logger
	FileBase string
}

func (d Deps) options() []controller.Option {
	opts := []controller.Option{controller.WithFileBase(d.FileBase)}
	if d.Logger != nil {
		opts = append(opts, controller.WithLogger(d.Logger))
	}
	return opts
}

// New builds the table registered under name.
func New(name string, d Deps) (Table, error) {
	opts := d.options()
	b, n := d.Backend, d.Notifier
	switch strings.ToLower(name) {
	case "leads":
		return newTable("leads", "Leads", leadColumns, Lead(), b, n, opts), nil
	case "lead-quotes":
		return NewLeadQuoteTable(b, n, d.Logger, opts...), nil
	case "followups":
		return newTable("followups", "Follow-ups", followupColumns, Followup(), b, n, opts), nil
	case "quotes":
		return NewQuoteTable(b, n, d.Logger, opts...), nil
	case "customers":
		return newTable("customers", "Customers", customerColumns, Customer(), b, n, opts), nil
	case "orders":
		return newTable("orders", "Orders", orderColumns, Order(), b, n, opts), nil
	case "carriers":
		return newTable("carriers", "Carriers", carrierColumns, Carrier(), b, n, opts), nil
	case "vendors":
		return newTable("vendors", "Vendors", vendorColumns, Vendor(), b, n, opts), nil
	case "brokers":
		return newTable("brokers", "Brokers", brokerColumns, Broker(), b, n, opts), nil
	case "users":
		return newTable("users", "Users", userColumns, User(), b, n, opts), nil
	}
	return nil, fmt.Errorf("unknown entity %q (want one of %s)", name, strings.Join(Names, ", "))
}

// All builds every table in tab order.
func All(d Deps) []Table {
	tables := make([]Table, 0, len(Names))
	for _, name := range Names {
		t, err := New(name, d)
		if err != nil {
			panic(err)
		}
		tables = append(tables, t)
	}
	return tables
}
