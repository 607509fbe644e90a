// ABOUTME: Per-entity strategies that specialize the generic controllers
// ABOUTME: Resource paths, required fields, schemas, alert texts, and load hooks
package entities

import (
	"strconv"
	"time"

	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/models"
	"github.com/harperreed/freightdesk/notify"
	"github.com/harperreed/freightdesk/validate"
)

const (
	nameChars    = `^[a-zA-Z0-9\s.,'"-]*$`
	nameCharsMsg = "Only letters, numbers, spaces, apostrophes, periods, commas, and hyphens allowed"
	codeChars    = `^[a-zA-Z0-9-]*$`
	codeCharsMsg = "Only letters, numbers, and dashes allowed"
	phoneChars   = `^[0-9-+()\s]*$`
)

var (
	namePattern  = validate.Pattern(nameChars)
	codePattern  = validate.Pattern(codeChars)
	phonePattern = validate.Pattern(phoneChars)
)

func name(label string, limit int, required bool) validate.Rule {
	r := validate.Rule{
		MaxLength:      limit,
		MaxMessage:     label + " cannot exceed " + strconv.Itoa(limit) + " characters",
		Pattern:        namePattern,
		PatternMessage: nameCharsMsg,
	}
	if required {
		r.Required = true
		r.RequiredMessage = label + " is required"
	}
	return r
}

func code(label string, limit int) validate.Rule {
	return validate.Rule{
		MaxLength:      limit,
		MaxMessage:     label + " cannot exceed " + strconv.Itoa(limit) + " characters",
		Pattern:        codePattern,
		PatternMessage: codeCharsMsg,
	}
}

func email(limit int) validate.Rule {
	return validate.Rule{
		Email:      true,
		MaxLength:  limit,
		MaxMessage: "Email cannot exceed " + strconv.Itoa(limit) + " characters",
	}
}

func phone(label string) validate.Rule {
	return validate.Rule{
		MaxLength:      30,
		MaxMessage:     label + " cannot exceed 30 characters",
		Pattern:        phonePattern,
		PatternMessage: "Invalid phone format",
	}
}

func required(label string) validate.Rule {
	return validate.Rule{Required: true, RequiredMessage: label + " is required"}
}

var leadRequired = []string{"lead_no", "lead_date", "lead_type", "lead_status"}

var leadSchema = validate.Schema{
	"lead_no":        name("Lead No", 20, true),
	"lead_date":      required("Lead Date"),
	"lead_type":      required("Lead Type"),
	"lead_status":    required("Lead Status"),
	"customer_name":  name("Customer name", 200, false),
	"phone":          phone("Phone"),
	"email":          email(255),
	"website":        {URL: true, MaxLength: 150, MaxMessage: "Website URL too long"},
	"postal_code":    code("Postal code", 10),
	"contact_person": name("Contact person", 100, false),
}

// Lead edits and adds CRM leads.
func Lead() controller.Entity[models.Lead] {
	return controller.Entity[models.Lead]{
		Resource:    "lead",
		Singular:    "lead",
		Plural:      "leads",
		Required:    leadRequired,
		Schema:      leadSchema,
		Collections: []controller.Binder[models.Lead]{leadContacts},
		Messages: controller.Messages{
			AddSuccess: notify.Success("Success", "Lead data has been saved successfully."),
		},
	}
}

// LeadQuote is the lead table restricted to leads in the quotation stage.
func LeadQuote() controller.Entity[models.Lead] {
	e := Lead()
	e.Plural = "quotation leads"
	e.Filter = func(l models.Lead) bool { return l.LeadStatus == "Quotations" }
	return e
}

func Followup() controller.Entity[models.Followup] {
	return controller.Entity[models.Followup]{
		Resource: "lead-followup",
		Singular: "follow-up",
		Plural:   "follow-ups",
		Required: leadRequired,
		Schema: validate.Schema{
			"lead_no":       name("Lead No", 20, true),
			"lead_date":     required("Lead Date"),
			"lead_type":     required("Lead Type"),
			"lead_status":   required("Lead Status"),
			"customer_name": name("Customer name", 200, false),
			"phone":         phone("Phone"),
			"email":         email(255),
			"remarks":       {MaxLength: 500, MaxMessage: "Remarks cannot exceed 500 characters"},
		},
		Collections: []controller.Binder[models.Followup]{FollowupContacts, FollowupProducts},
		Messages: controller.Messages{
			LoadFailure: notify.Error("Error!", "Failed to load follow-ups."),
			EditSuccess: notify.Success("Updated!", "Follow-up data has been updated successfully."),
		},
	}
}

func Quote() controller.Entity[models.Quote] {
	return controller.Entity[models.Quote]{
		Resource: "quote",
		Singular: "quote",
		Plural:   "quotes",
		Required: []string{"quote_type", "quote_customer", "quote_cust_ref_no"},
		Schema: validate.Schema{
			"quote_type":        required("Quote type"),
			"quote_customer":    name("Customer", 200, true),
			"quote_cust_ref_no": name("Customer Ref. No", 100, true),
			"quote_booked_by":   name("Booked By", 100, false),
		},
		Collections: []controller.Binder[models.Quote]{quotePickups, quoteDeliveries},
	}
}

var customerTypes = []string{"Manufacturer", "Trader", "Distributor", "Retailer", "Freight Forwarder"}

func Customer() controller.Entity[models.Customer] {
	return controller.Entity[models.Customer]{
		Resource: "customer",
		Singular: "customer",
		Plural:   "customers",
		Required: []string{"cust_name", "cust_ref_no"},
		Schema: validate.Schema{
			"cust_name":   withRequiredMessage(name("Customer name", 200, true), "Customer is required"),
			"cust_ref_no": name("Customer Ref. No", 100, true),
			"cust_type":   {Enum: customerTypes, EnumMessage: "Invalid customer type"},
			"cust_website": {
				MaxLength: 150, MaxMessage: "Website cannot exceed 150 characters",
				Pattern: namePattern, PatternMessage: nameCharsMsg,
			},
			"cust_email":          email(255),
			"cust_contact_no":     phone("Contact no"),
			"cust_contact_no_ext": code("Phone Ext", 10),
			"cust_tax_id": {
				MaxLength: 20, MaxMessage: "Tax ID cannot exceed 20 characters",
				Pattern:        validate.Pattern(`^[a-zA-Z0-9_/.-]*$`),
				PatternMessage: "Only letters, numbers, dashes, underscores, slashes, and periods allowed",
			},
			"cust_ap_email":     email(255),
			"cust_ap_phone":     phone("AP phone"),
			"cust_credit_limit": {Numeric: true, NumericMessage: "Credit limit must be a number"},
			"cust_credit_terms": {Numeric: true, NumericMessage: "Credit terms must be a number"},
		},
		Collections: []controller.Binder[models.Customer]{customerContacts, customerEquipment},
		Multipart: &controller.MultipartFields{
			Bools: []string{"cust_credit_application"},
			Files: []string{"cust_credit_agreement", "cust_sbk_agreement"},
		},
		Messages: controller.Messages{
			EditSuccess: notify.Success("Success!", "Customer updated successfully."),
		},
	}
}

func Order() controller.Entity[models.Order] {
	return controller.Entity[models.Order]{
		Resource: "order",
		Singular: "order",
		Plural:   "orders",
		Required: []string{"customer", "customer_ref_no", "equipment", "load_type"},
		Schema: validate.Schema{
			"customer":        withRequiredMessage(name("Customer name", 200, true), "Customer is required"),
			"customer_ref_no": name("Customer Ref. No", 100, true),
			"equipment":       required("Equipment"),
			"load_type":       required("Load type"),
			"branch":          name("Branch", 150, false),
			"booked_by":       name("Booked By", 100, false),
			"account_rep":     name("Account Rep", 100, false),
			"sales_rep":       name("Sales Rep", 100, false),
			"customer_po_no": {
				MaxLength: 20, MaxMessage: "Customer PO Number cannot exceed 20 characters",
				Pattern:        validate.Pattern(`^[a-zA-Z0-9-_/]*$`),
				PatternMessage: "Only letters, numbers, dashes, underscores, and slashes allowed",
			},
			"base_price": {Numeric: true, NumericMessage: "Base price must be a number"},
		},
		Collections: []controller.Binder[models.Order]{orderOrigins, orderDestinations, orderCharges, orderDiscounts},
		Messages: controller.Messages{
			AddSuccess: notify.Success("Saved!", "Order created successfully."),
			AddFailure: notify.Error("Error", "An error occurred while processing the order."),
		},
	}
}

var carrierDateFields = []string{"li_start_date", "li_end_date", "ci_start_date", "ci_end_date"}

func Carrier() controller.Entity[models.Carrier] {
	return controller.Entity[models.Carrier]{
		Resource: "carrier",
		Singular: "carrier",
		Plural:   "carriers",
		Required: []string{"dba", "legal_name"},
		Schema: validate.Schema{
			"dba":             name("DBA", 100, true),
			"legal_name":      name("Legal Name", 100, true),
			"remit_name":      name("Remit Name", 100, false),
			"acc_no":          code("Account Number", 50),
			"branch":          name("Branch", 50, false),
			"website":         {URL: true, FormatMessage: "Invalid URL", MaxLength: 150, MaxMessage: "Website URL too long"},
			"fed_id_no":       code("Federal ID Number", 20),
			"pref_curr":       {Enum: []string{"USD", "CAD"}},
			"pay_terms":       name("Payment Terms", 50, false),
			"advertise_email": email(255),
			"scac":            code("SCAC", 10),
			"dot_number":      code("DOT Number", 20),
			"li_coverage":     {Numeric: true},
			"ci_coverage":     {Numeric: true},
			"primary_phone":   phone("Phone"),
			"mailing_phone":   phone("Phone"),
		},
		Hydrate:     hydrateCarrier,
		Collections: []controller.Binder[models.Carrier]{carrierContacts, carrierEquipment, carrierLanes},
		Multipart: &controller.MultipartFields{
			Bools: []string{"form_1099", "advertise", "approved", "csa_approved", "hazmat"},
			Files: []string{"brok_carr_aggmt", "coi_cert"},
		},
		Messages: controller.Messages{
			EditSuccess: notify.Success("Success!", "Carrier updated successfully."),
		},
	}
}

// hydrateCarrier trims insurance dates to YYYY-MM-DD for date inputs.
func hydrateCarrier(c models.Carrier) models.Carrier {
	c.LIStartDate = DateOnly(c.LIStartDate)
	c.LIEndDate = DateOnly(c.LIEndDate)
	c.CIStartDate = DateOnly(c.CIStartDate)
	c.CIEndDate = DateOnly(c.CIEndDate)
	return c
}

var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"01/02/2006",
}

// DateOnly formats a date or timestamp as YYYY-MM-DD. Unparseable input yields "".
func DateOnly(s string) string {
	if s == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(time.DateOnly)
		}
	}
	return ""
}

func Vendor() controller.Entity[models.Vendor] {
	return controller.Entity[models.Vendor]{
		Resource: "vendor",
		Singular: "vendor",
		Plural:   "vendors",
		Required: []string{"legal_name", "remit_name", "vendor_type", "service"},
		Schema: validate.Schema{
			"legal_name":     name("Legal Name", 100, true),
			"remit_name":     name("Remit Name", 200, true),
			"vendor_type":    name("Vendor Type", 50, true),
			"service":        name("Service", 100, true),
			"scac":           code("SCAC", 10),
			"docket_number":  code("Docket#", 50),
			"vendor_code":    code("Vendor Code", 20),
			"gst_hst_number": code("GST/HST#", 20),
			"qst_number":     code("QST#", 20),
			"ca_bond_number": code("CA Bond#", 50),
			"website":        {URL: true, FormatMessage: "Invalid website URL", MaxLength: 255, MaxMessage: "Website must be at most 255 characters long"},
		},
		Collections: []controller.Binder[models.Vendor]{vendorContacts},
	}
}

func Broker() controller.Entity[models.Broker] {
	return controller.Entity[models.Broker]{
		Resource: "broker",
		Singular: "broker",
		Plural:   "brokers",
		Required: []string{"broker_name"},
		Schema: validate.Schema{
			"broker_name":   name("Broker name", 200, true),
			"broker_email":  email(255),
			"broker_phone":  phone("Phone"),
			"broker_ext":    code("Ext", 10),
			"broker_fax":    phone("Fax"),
			"broker_postal": code("Postal code", 10),
		},
		Messages: controller.Messages{
			EditSuccess: notify.Success("Success!", "Broker details updated."),
		},
	}
}

var userRoles = []string{"Admin", "Employee", "Carrier", "Customer"}

func User() controller.Entity[models.User] {
	return controller.Entity[models.User]{
		Resource: "user",
		Singular: "user",
		Plural:   "users",
		Required: []string{"name", "username", "password", "emp_code", "email", "role"},
		Schema: validate.Schema{
			"name":     name("Name", 200, true),
			"username": name("Username", 255, true),
			"email":    {Required: true, RequiredMessage: "Email is required", Email: true},
			"password": {
				Required: true, RequiredMessage: "Password is required",
				MinLength: 12, MinMessage: "Password must be at least 12 characters long",
				MaxLength: 200, MaxMessage: "Password cannot exceed 200 characters",
			},
			"password_confirmation": {
				MinLength: 12, MinMessage: "Password confirmation is required",
				MaxLength: 200, MaxMessage: "Password confirmation cannot exceed 200 characters",
				MatchField: "password", MatchMessage: "Passwords do not match",
			},
			"emp_code": name("Employee code", 100, true),
			"role":     {Required: true, RequiredMessage: "Role is required", Enum: userRoles, EnumMessage: "Invalid role selection"},
		},
		Messages: controller.Messages{
			EditSuccess: notify.Success("Success!", "User details updated."),
		},
	}
}

func withRequiredMessage(r validate.Rule, msg string) validate.Rule {
	r.RequiredMessage = msg
	return r
}
