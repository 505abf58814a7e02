// Package models defines the typed records exchanged with the Yango Tech
// B2B API. Raw JSON payloads are mapped to these types at the client
// boundary; nothing downstream sees untyped data.
package models

import (
	"encoding/json"
	"fmt"
)

// DefaultLanguage is the locale preferred when resolving product names.
const DefaultLanguage = "en_EN"

// Order state values returned by the orders/state endpoint.
const (
	OrderStateCreated    = "created"
	OrderStateConfirmed  = "confirmed"
	OrderStateInProgress = "in_progress"
	OrderStateDelivered  = "delivered"
	OrderStateCancelled  = "cancelled"
	OrderStateReturned   = "returned"
)

// Product is a catalog entry. Human-readable names live inside
// CustomAttributes as localized maps (shortNameLoc, longName).
type Product struct {
	ProductID        string         `json:"product_id"`
	MasterCategory   string         `json:"master_category"`
	Status           string         `json:"status"`
	IsMeta           bool           `json:"is_meta"`
	CustomAttributes map[string]any `json:"custom_attributes"`
}

// Validate checks the fields required for downstream joins.
func (p *Product) Validate() error {
	if p.ProductID == "" {
		return fmt.Errorf("product missing product_id")
	}
	return nil
}

// DisplayName resolves a human-readable name for the product.
// Resolution order: shortNameLoc in the requested language, any non-empty
// shortNameLoc entry, longName the same way, then the product id itself
// as the sentinel for unresolvable products.
func (p *Product) DisplayName(language string) string {
	if language == "" {
		language = DefaultLanguage
	}
	if name := localizedValue(p.CustomAttributes["shortNameLoc"], language); name != "" {
		return name
	}
	if name := localizedValue(p.CustomAttributes["longName"], language); name != "" {
		return name
	}
	return p.ProductID
}

// Barcodes returns the product barcodes, if present.
func (p *Product) Barcodes() []string {
	raw, ok := p.CustomAttributes["barcode"].([]any)
	if !ok {
		return nil
	}
	codes := make([]string, 0, len(raw))
	for _, v := range raw {
		if s, ok := v.(string); ok {
			codes = append(codes, s)
		}
	}
	return codes
}

// localizedValue picks a value from a {"lang": "text"} attribute map,
// preferring the requested language over any other non-empty entry.
func localizedValue(attr any, language string) string {
	loc, ok := attr.(map[string]any)
	if !ok {
		return ""
	}
	if name, ok := loc[language].(string); ok && name != "" {
		return name
	}
	for _, v := range loc {
		if name, ok := v.(string); ok && name != "" {
			return name
		}
	}
	return ""
}

// Position is a geographic coordinate pair.
type Position struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Address is a structured street address.
type Address struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Street  string `json:"street"`
	House   string `json:"house"`
}

// DeliveryAddress is the order destination.
type DeliveryAddress struct {
	Position Position `json:"position"`
	PlaceID  string   `json:"place_id"`
	Address  Address  `json:"address"`
}

// CartItem is a single order line. ProductName is empty until the
// enrichment pass populates it; the join key ProductID is never touched.
type CartItem struct {
	ProductID        string `json:"product_id"`
	Quantity         int    `json:"quantity"`
	Price            string `json:"price"`
	PricePerQuantity int    `json:"price_per_quantity"`
	ProductName      string `json:"product_name,omitempty"`
}

// Cart holds the order lines and total.
type Cart struct {
	TotalPrice string     `json:"total_price"`
	Items      []CartItem `json:"items"`
}

// DeliveryProperties describes how the order is fulfilled.
type DeliveryProperties struct {
	Type string `json:"type"`
}

// Order is a read-only projection of remote order state.
type Order struct {
	CreateTime           string             `json:"create_time"`
	StoreID              string             `json:"store_id"`
	ClientPhoneNumber    string             `json:"client_phone_number"`
	PaymentType          string             `json:"payment_type"`
	PaymentStatus        string             `json:"payment_status"`
	DeliveryAddress      DeliveryAddress    `json:"delivery_address"`
	UseExternalLogistics bool               `json:"use_external_logistics"`
	Cart                 Cart               `json:"cart"`
	DeliveryProperties   DeliveryProperties `json:"delivery_properties"`
	HumanOrderID         string             `json:"human_order_id"`
	TraceID              string             `json:"trace_id,omitempty"`
}

// ID returns the human-readable order identifier.
func (o *Order) ID() string {
	return o.HumanOrderID
}

// TotalAmount returns the cart total as reported by the API.
func (o *Order) TotalAmount() string {
	return o.Cart.TotalPrice
}

// Validate checks the fields required for downstream processing.
func (o *Order) Validate() error {
	if o.HumanOrderID == "" {
		return fmt.Errorf("order missing human_order_id")
	}
	return nil
}

// Stock is a per-store availability record. ProductName is populated by
// the enrichment pass.
type Stock struct {
	StoreID     string `json:"store_id"`
	ProductID   string `json:"product_id"`
	Quantity    int    `json:"quantity"`
	ShelfType   string `json:"shelf_type"`
	ProductName string `json:"product_name,omitempty"`
}

// Validate checks the fields required for downstream joins.
func (s *Stock) Validate() error {
	if s.ProductID == "" {
		return fmt.Errorf("stock missing product_id")
	}
	return nil
}

// Page is one page of a cursor-paginated listing. NextCursor is nil when
// the listing is exhausted.
type Page[T any] struct {
	Items      []T     `json:"items"`
	NextCursor *string `json:"next_cursor,omitempty"`
	HasMore    bool    `json:"has_more"`
}

// DecodeStrict unmarshals raw JSON into v, rejecting payloads that do not
// match the expected shape.
func DecodeStrict(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("unexpected payload shape: %w", err)
	}
	return nil
}
