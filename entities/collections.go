// ABOUTME: Nested collection bindings for each record type
// ABOUTME: Index-keyed for most entities, id-keyed for follow-up contacts and products
package entities

import (
	"github.com/harperreed/freightdesk/controller"
	"github.com/harperreed/freightdesk/models"
)

var leadContacts = controller.Collection[models.Lead, models.Contact]{
	Field: "contacts",
	Label: "Contacts",
	Get:   func(l models.Lead) models.List[models.Contact] { return l.Contacts },
	Set: func(l models.Lead, c models.List[models.Contact]) models.Lead {
		l.Contacts = c
		return l
	},
}

// FollowupContacts is id-keyed; new rows get a generated id.
var FollowupContacts = controller.Collection[models.Followup, models.FollowupContact]{
	Field: "contacts",
	Label: "Contacts",
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

var FollowupProducts = controller.Collection[models.Followup, models.Product]{
	Field: "products",
	Label: "Products",
	Get:   func(f models.Followup) models.List[models.Product] { return f.Products },
	Set: func(f models.Followup, p models.List[models.Product]) models.Followup {
		f.Products = p
		return f
	},
	ID: func(p models.Product) string { return p.ID },
	WithID: func(p models.Product, id string) models.Product {
		p.ID = id
		return p
	},
}

var quotePickups = controller.Collection[models.Quote, models.Location]{
	Field: "quote_pickup",
	Label: "Pickups",
	Get:   func(q models.Quote) models.List[models.Location] { return q.QuotePickup },
	Set: func(q models.Quote, l models.List[models.Location]) models.Quote {
		q.QuotePickup = l
		return q
	},
}

var quoteDeliveries = controller.Collection[models.Quote, models.Location]{
	Field: "quote_delivery",
	Label: "Deliveries",
	Get:   func(q models.Quote) models.List[models.Location] { return q.QuoteDelivery },
	Set: func(q models.Quote, l models.List[models.Location]) models.Quote {
		q.QuoteDelivery = l
		return q
	},
}

var customerContacts = controller.Collection[models.Customer, models.Contact]{
	Field: "cust_contact",
	Label: "Contacts",
	Get:   func(c models.Customer) models.List[models.Contact] { return c.CustContact },
	Set: func(c models.Customer, l models.List[models.Contact]) models.Customer {
		c.CustContact = l
		return c
	},
}

var customerEquipment = controller.Collection[models.Customer, models.Equipment]{
	Field: "cust_equipment",
	Label: "Equipment",
	Get:   func(c models.Customer) models.List[models.Equipment] { return c.CustEquipment },
	Set: func(c models.Customer, l models.List[models.Equipment]) models.Customer {
		c.CustEquipment = l
		return c
	},
}

var orderOrigins = controller.Collection[models.Order, models.Location]{
	Field: "origin_location",
	Label: "Origins",
	Get:   func(o models.Order) models.List[models.Location] { return o.OriginLocation },
	Set: func(o models.Order, l models.List[models.Location]) models.Order {
		o.OriginLocation = l
		return o
	},
}

var orderDestinations = controller.Collection[models.Order, models.Location]{
	Field: "destination_location",
	Label: "Destinations",
	Get:   func(o models.Order) models.List[models.Location] { return o.DestinationLocation },
	Set: func(o models.Order, l models.List[models.Location]) models.Order {
		o.DestinationLocation = l
		return o
	},
}

var orderCharges = controller.Collection[models.Order, models.Charge]{
	Field: "charges",
	Label: "Charges",
	Get:   func(o models.Order) models.List[models.Charge] { return o.Charges },
	Set: func(o models.Order, l models.List[models.Charge]) models.Order {
		o.Charges = l
		return o
	},
}

var orderDiscounts = controller.Collection[models.Order, models.Charge]{
	Field: "discounts",
	Label: "Discounts",
	Get:   func(o models.Order) models.List[models.Charge] { return o.Discounts },
	Set: func(o models.Order, l models.List[models.Charge]) models.Order {
		o.Discounts = l
		return o
	},
}

var carrierContacts = controller.Collection[models.Carrier, models.Contact]{
	Field: "contacts",
	Label: "Contacts",
	Get:   func(c models.Carrier) models.List[models.Contact] { return c.Contacts },
	Set: func(c models.Carrier, l models.List[models.Contact]) models.Carrier {
		c.Contacts = l
		return c
	},
}

var carrierEquipment = controller.Collection[models.Carrier, models.Equipment]{
	Field: "equipments",
	Label: "Equipment",
	Get:   func(c models.Carrier) models.List[models.Equipment] { return c.Equipments },
	Set: func(c models.Carrier, l models.List[models.Equipment]) models.Carrier {
		c.Equipments = l
		return c
	},
}

var carrierLanes = controller.Collection[models.Carrier, models.Lane]{
	Field: "lanes",
	Label: "Lanes",
	Get:   func(c models.Carrier) models.List[models.Lane] { return c.Lanes },
	Set: func(c models.Carrier, l models.List[models.Lane]) models.Carrier {
		c.Lanes = l
		return c
	},
}

var vendorContacts = controller.Collection[models.Vendor, models.Contact]{
	Field: "contacts",
	Label: "Contacts",
	Get:   func(v models.Vendor) models.List[models.Contact] { return v.Contacts },
	Set: func(v models.Vendor, l models.List[models.Contact]) models.Vendor {
		v.Contacts = l
		return v
	},
}
