// ABOUTME: Data models for freight back-office records
// ABOUTME: Defines leads, follow-ups, quotes, customers, orders, carriers, vendors, brokers, and users
package models

// Record is any top-level entity stored by the backend under an integer id.
// An id of zero means the record has not been created yet.
type Record interface {
	RecordID() int64
}

// Contact is a person attached to a lead, customer, carrier, or vendor.
type Contact struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Ext         string `json:"ext"`
	Email       string `json:"email"`
	Fax         string `json:"fax"`
	Designation string `json:"designation"`
}

// Equipment is one type of trailer or truck a customer or carrier uses.
type Equipment struct {
	Equipment string `json:"equipment"`
}

// Lane is a from/to corridor a carrier services.
type Lane struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Location is a pickup or delivery stop on an order or quote.
type Location struct {
	Address    string  `json:"address"`
	City       string  `json:"city"`
	State      string  `json:"state"`
	Postal     string  `json:"postal"`
	Country    string  `json:"country"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
	Currency   string  `json:"currency"`
	Equipment  string  `json:"equipment"`
	PickupPO   string  `json:"pickup_po"`
	Phone      string  `json:"phone"`
	Packages   int     `json:"packages"`
	Weight     float64 `json:"weight"`
	Dimensions string  `json:"dimensions"`
	Notes      string  `json:"notes"`
}

// Charge is an accessorial charge or discount line on an order.
type Charge struct {
	Type    string  `json:"type"`
	Charge  float64 `json:"charge"`
	Percent string  `json:"percent"`
}

// FollowupContact is a follow-up contact keyed by an id unique within its list.
type FollowupContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// Product is a follow-up product line keyed by an id unique within its list.
type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type Lead struct {
	ID            int64         `json:"id,omitempty"`
	LeadNo        string        `json:"lead_no"`
	LeadDate      string        `json:"lead_date"`
	CustomerName  string        `json:"customer_name"`
	Phone         string        `json:"phone"`
	Email         string        `json:"email"`
	Website       string        `json:"website"`
	Address       string        `json:"address"`
	UnitNo        string        `json:"unit_no"`
	City          string        `json:"city"`
	State         string        `json:"state"`
	Country       string        `json:"country"`
	PostalCode    string        `json:"postal_code"`
	LeadType      string        `json:"lead_type"`
	ContactPerson string        `json:"contact_person"`
	Notes         string        `json:"notes"`
	LeadStatus    string        `json:"lead_status"`
	FollowUpDate  string        `json:"follow_up_date"`
	EquipmentType string        `json:"equipment_type"`
	AssignedTo    string        `json:"assigned_to"`
	Contacts      List[Contact] `json:"contacts"`
	CreatedAt     string        `json:"created_at"`
	UpdatedAt     string        `json:"updated_at"`
}

type Followup struct {
	ID               int64                 `json:"id,omitempty"`
	LeadNo           string                `json:"lead_no"`
	LeadDate         string                `json:"lead_date"`
	CustomerName     string                `json:"customer_name"`
	Phone            string                `json:"phone"`
	Email            string                `json:"email"`
	Address          string                `json:"address"`
	City             string                `json:"city"`
	State            string                `json:"state"`
	Country          string                `json:"country"`
	PostalCode       string                `json:"postal_code"`
	UnitNo           string                `json:"unit_no"`
	LeadType         string                `json:"lead_type"`
	ContactPerson    string                `json:"contact_person"`
	Notes            string                `json:"notes"`
	NextFollowUpDate string                `json:"next_follow_up_date"`
	FollowupType     string                `json:"followup_type"`
	LeadStatus       string                `json:"lead_status"`
	Remarks          string                `json:"remarks"`
	Equipment        string                `json:"equipment"`
	Contacts         List[FollowupContact] `json:"contacts"`
	Products         List[Product]         `json:"products"`
	CreatedAt        string                `json:"created_at"`
	UpdatedAt        string                `json:"updated_at"`
}

type Quote struct {
	ID             int64          `json:"id,omitempty"`
	QuoteType      string         `json:"quote_type"`
	QuoteCustomer  string         `json:"quote_customer"`
	QuoteCustRefNo string         `json:"quote_cust_ref_no"`
	QuoteBookedBy  string         `json:"quote_booked_by"`
	QuoteTemp      string         `json:"quote_temperature"`
	QuoteHot       bool           `json:"quote_hot"`
	QuoteTeam      bool           `json:"quote_team"`
	QuoteAirRide   bool           `json:"quote_air_ride"`
	QuoteTarp      bool           `json:"quote_tarp"`
	QuoteHazmat    bool           `json:"quote_hazmat"`
	QuotePickup    List[Location] `json:"quote_pickup"`
	QuoteDelivery  List[Location] `json:"quote_delivery"`
	CreatedAt      string         `json:"created_at"`
	UpdatedAt      string         `json:"updated_at"`
}

type Customer struct {
	ID                    int64           `json:"id,omitempty"`
	CustType              string          `json:"cust_type"`
	CustName              string          `json:"cust_name"`
	CustRefNo             string          `json:"cust_ref_no"`
	CustWebsite           string          `json:"cust_website"`
	CustEmail             string          `json:"cust_email"`
	CustContactNo         string          `json:"cust_contact_no"`
	CustContactNoExt      string          `json:"cust_contact_no_ext"`
	CustTaxID             string          `json:"cust_tax_id"`
	CustPrimaryAddress    string          `json:"cust_primary_address"`
	CustPrimaryCity       string          `json:"cust_primary_city"`
	CustPrimaryState      string          `json:"cust_primary_state"`
	CustPrimaryCountry    string          `json:"cust_primary_country"`
	CustPrimaryPostal     string          `json:"cust_primary_postal"`
	CustPrimaryUnitNo     string          `json:"cust_primary_unit_no"`
	CustMailingAddress    string          `json:"cust_mailing_address"`
	CustMailingCity       string          `json:"cust_mailing_city"`
	CustMailingState      string          `json:"cust_mailing_state"`
	CustMailingCountry    string          `json:"cust_mailing_country"`
	CustMailingPostal     string          `json:"cust_mailing_postal"`
	CustMailingUnitNo     string          `json:"cust_mailing_unit_no"`
	SameAsPrimary         bool            `json:"sameAsPrimary"`
	CustAPName            string          `json:"cust_ap_name"`
	CustAPAddress         string          `json:"cust_ap_address"`
	CustAPCity            string          `json:"cust_ap_city"`
	CustAPState           string          `json:"cust_ap_state"`
	CustAPCountry         string          `json:"cust_ap_country"`
	CustAPPostal          string          `json:"cust_ap_postal"`
	CustAPUnitNo          string          `json:"cust_ap_unit_no"`
	CustAPEmail           string          `json:"cust_ap_email"`
	CustAPPhone           string          `json:"cust_ap_phone"`
	CustAPPhoneExt        string          `json:"cust_ap_phone_ext"`
	CustAPFax             string          `json:"cust_ap_fax"`
	CustBrokerName        string          `json:"cust_broker_name"`
	CustBkpNotes          string          `json:"cust_bkp_notes"`
	CustBksplNotes        string          `json:"cust_bkspl_notes"`
	CustCreditStatus      string          `json:"cust_credit_status"`
	CustCreditMop         string          `json:"cust_credit_mop"`
	CustCreditCurrency    string          `json:"cust_credit_currency"`
	CustCreditAppd        string          `json:"cust_credit_appd"`
	CustCreditExpd        string          `json:"cust_credit_expd"`
	CustCreditTerms       float64         `json:"cust_credit_terms"`
	CustCreditLimit       float64         `json:"cust_credit_limit"`
	CustCreditApplication bool            `json:"cust_credit_application"`
	CustCreditAgreement   string          `json:"cust_credit_agreement"`
	CustSbkAgreement      string          `json:"cust_sbk_agreement"`
	CustCreditAgrmtName   string          `json:"cust_credit_agreement_name"`
	CustSbkAgrmtName      string          `json:"cust_sbk_agreement_name"`
	CustCreditNotes       string          `json:"cust_credit_notes"`
	CustContact           List[Contact]   `json:"cust_contact"`
	CustEquipment         List[Equipment] `json:"cust_equipment"`
	CreatedAt             string          `json:"created_at"`
	UpdatedAt             string          `json:"updated_at"`
}

type Order struct {
	ID                  int64          `json:"id,omitempty"`
	Customer            string         `json:"customer"`
	CustomerRefNo       string         `json:"customer_ref_no"`
	Branch              string         `json:"branch"`
	BookedBy            string         `json:"booked_by"`
	AccountRep          string         `json:"account_rep"`
	SalesRep            string         `json:"sales_rep"`
	CustomerPONo        string         `json:"customer_po_no"`
	Commodity           string         `json:"commodity"`
	Equipment           string         `json:"equipment"`
	LoadType            string         `json:"load_type"`
	Temperature         string         `json:"temperature"`
	OriginLocation      List[Location] `json:"origin_location"`
	DestinationLocation List[Location] `json:"destination_location"`
	Hot                 bool           `json:"hot"`
	Team                bool           `json:"team"`
	AirRide             bool           `json:"air_ride"`
	Tarp                bool           `json:"tarp"`
	Hazmat              bool           `json:"hazmat"`
	Currency            string         `json:"currency"`
	BasePrice           string         `json:"base_price"`
	Charges             List[Charge]   `json:"charges"`
	Discounts           List[Charge]   `json:"discounts"`
	GST                 string         `json:"gst"`
	PST                 string         `json:"pst"`
	HST                 string         `json:"hst"`
	QST                 string         `json:"qst"`
	FinalPrice          string         `json:"final_price"`
	Notes               string         `json:"notes"`
	CreatedAt           string         `json:"created_at"`
	UpdatedAt           string         `json:"updated_at"`
}

type Carrier struct {
	ID             int64           `json:"id,omitempty"`
	DBA            string          `json:"dba"`
	LegalName      string          `json:"legal_name"`
	RemitName      string          `json:"remit_name"`
	AccNo          string          `json:"acc_no"`
	Branch         string          `json:"branch"`
	Website        string          `json:"website"`
	FedIDNo        string          `json:"fed_id_no"`
	PrefCurr       string          `json:"pref_curr"`
	PayTerms       string          `json:"pay_terms"`
	Form1099       bool            `json:"form_1099"`
	Advertise      bool            `json:"advertise"`
	AdvertiseEmail string          `json:"advertise_email"`
	CarrType       string          `json:"carr_type"`
	Rating         string          `json:"rating"`
	BrokCarrAggmt  string          `json:"brok_carr_aggmt"`
	BrokCarrName   string          `json:"brok_carr_aggmt_name"`
	DocketNo       string          `json:"docket_no"`
	DOTNumber      string          `json:"dot_number"`
	WCBNo          string          `json:"wcb_no"`
	CABondNo       string          `json:"ca_bond_no"`
	USBondNo       string          `json:"us_bond_no"`
	SCAC           string          `json:"scac"`
	CSAApproved    bool            `json:"csa_approved"`
	Hazmat         bool            `json:"hazmat"`
	SMSCCode       string          `json:"smsc_code"`
	Approved       bool            `json:"approved"`
	LIProvider     string          `json:"li_provider"`
	LIPolicyNo     string          `json:"li_policy_no"`
	LICoverage     float64         `json:"li_coverage"`
	LIStartDate    string          `json:"li_start_date"`
	LIEndDate      string          `json:"li_end_date"`
	CIProvider     string          `json:"ci_provider"`
	CIPolicyNo     string          `json:"ci_policy_no"`
	CICoverage     float64         `json:"ci_coverage"`
	CIStartDate    string          `json:"ci_start_date"`
	CIEndDate      string          `json:"ci_end_date"`
	COICert        string          `json:"coi_cert"`
	COICertName    string          `json:"coi_cert_name"`
	PrimaryAddress string          `json:"primary_address"`
	PrimaryCity    string          `json:"primary_city"`
	PrimaryState   string          `json:"primary_state"`
	PrimaryCountry string          `json:"primary_country"`
	PrimaryPostal  string          `json:"primary_postal"`
	PrimaryPhone   string          `json:"primary_phone"`
	SameAsPrimary  bool            `json:"sameAsPrimary"`
	MailingAddress string          `json:"mailing_address"`
	MailingCity    string          `json:"mailing_city"`
	MailingState   string          `json:"mailing_state"`
	MailingCountry string          `json:"mailing_country"`
	MailingPostal  string          `json:"mailing_postal"`
	MailingPhone   string          `json:"mailing_phone"`
	IntNotes       string          `json:"int_notes"`
	Contacts       List[Contact]   `json:"contacts"`
	Equipments     List[Equipment] `json:"equipments"`
	Lanes          List[Lane]      `json:"lanes"`
	CreatedAt      string          `json:"created_at"`
	UpdatedAt      string          `json:"updated_at"`
}

type Vendor struct {
	ID           int64         `json:"id,omitempty"`
	LegalName    string        `json:"legal_name"`
	RemitName    string        `json:"remit_name"`
	VendorType   string        `json:"vendor_type"`
	Service      string        `json:"service"`
	SCAC         string        `json:"scac"`
	DocketNumber string        `json:"docket_number"`
	VendorCode   string        `json:"vendor_code"`
	GSTHSTNumber string        `json:"gst_hst_number"`
	QSTNumber    string        `json:"qst_number"`
	CABondNumber string        `json:"ca_bond_number"`
	Website      string        `json:"website"`
	Contacts     List[Contact] `json:"contacts"`
	CreatedAt    string        `json:"created_at"`
	UpdatedAt    string        `json:"updated_at"`
}

type Broker struct {
	ID            int64  `json:"id,omitempty"`
	BrokerName    string `json:"broker_name"`
	BrokerAddress string `json:"broker_address"`
	BrokerCity    string `json:"broker_city"`
	BrokerState   string `json:"broker_state"`
	BrokerCountry string `json:"broker_country"`
	BrokerPostal  string `json:"broker_postal"`
	BrokerEmail   string `json:"broker_email"`
	BrokerPhone   string `json:"broker_phone"`
	BrokerExt     string `json:"broker_ext"`
	BrokerFax     string `json:"broker_fax"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at"`
}

type User struct {
	ID                   int64  `json:"id,omitempty"`
	Name                 string `json:"name"`
	Username             string `json:"username"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
	EmpCode              string `json:"emp_code"`
	Role                 string `json:"role"`
	CreatedAt            string `json:"created_at"`
	UpdatedAt            string `json:"updated_at"`
}

func (r Lead) RecordID() int64     { return r.ID }
func (r Followup) RecordID() int64 { return r.ID }
func (r Quote) RecordID() int64    { return r.ID }
func (r Customer) RecordID() int64 { return r.ID }
func (r Order) RecordID() int64    { return r.ID }
func (r Carrier) RecordID() int64  { return r.ID }
func (r Vendor) RecordID() int64   { return r.ID }
func (r Broker) RecordID() int64   { return r.ID }
func (r User) RecordID() int64     { return r.ID }
