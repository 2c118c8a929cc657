package models

import (
	"bytes"
	"encoding/json"
)

// StockFlag is the catalog's tri-state stock field. The remote service
// stores it as NULL, 0/1 or true/false depending on the record's age, and
// a missing or NULL value must be classified exactly like false.
type StockFlag struct {
	Known bool
	Value bool
}

// InStock reports whether the flag is truthy. NULL/absent counts as out of stock.
func (f StockFlag) InStock() bool {
	return f.Known && f.Value
}

// UnmarshalJSON accepts null, booleans and 0/1 numerics.
func (f *StockFlag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = StockFlag{}
		return nil
	}
	var b bool
	if err := json.Unmarshal(data, &b); err == nil {
		*f = StockFlag{Known: true, Value: b}
		return nil
	}
	var n float64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = StockFlag{Known: true, Value: n != 0}
	return nil
}

// MarshalJSON writes null for an unknown flag so round-trips preserve the tri-state.
func (f StockFlag) MarshalJSON() ([]byte, error) {
	if !f.Known {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// CatalogProduct is one entry of the remote product catalog. ProductID is
// server-assigned and immutable. RCProductName links the record to an
// external bulk-source name; non-empty means the record is matched and can
// be unlinked.
type CatalogProduct struct {
	ProductID       int       `json:"product_id"`
	Name            string    `json:"name"`
	RCProductName   string    `json:"rc_pharam_product_name"`
	SaltName        string    `json:"salt_name"`
	Composition     string    `json:"composition"`
	Manufacturer    string    `json:"manufacturer"`
	Packaging       string    `json:"packaging"`
	ProductType     string    `json:"product_type"`
	ConsumeType     string    `json:"consume_type"`
	ScheduleCat     string    `json:"schedule_category"`
	MarketedBy      string    `json:"marketed_by"`
	UsedFor         string    `json:"used_for"`
	LongDescription string    `json:"long_description"`
	PricingOld      float64   `json:"product_pricing_old"`
	PricingNew      float64   `json:"product_pricing_new"`
	Quantity        int       `json:"quantity_available"`
	Visibility      string    `json:"visibility_status"`
	PublishDate     string    `json:"publish_date"`
	CreatedDate     string    `json:"product_entry_created_date"`
	UpdatedDate     string    `json:"product_entry_updated_date"`
	InStock         StockFlag `json:"inStock"`
}

// IsMatched reports whether the product carries a linked external name.
func (p *CatalogProduct) IsMatched() bool {
	return p.RCProductName != ""
}

// Editable catalog field names accepted by Field/SetField. These mirror the
// remote service's column names; the grid edits records one field at a time.
const (
	FieldName            = "name"
	FieldRCProductName   = "rc_pharam_product_name"
	FieldSaltName        = "salt_name"
	FieldComposition     = "composition"
	FieldManufacturer    = "manufacturer"
	FieldPackaging       = "packaging"
	FieldProductType     = "product_type"
	FieldConsumeType     = "consume_type"
	FieldScheduleCat     = "schedule_category"
	FieldMarketedBy      = "marketed_by"
	FieldUsedFor         = "used_for"
	FieldLongDescription = "long_description"
	FieldPricingOld      = "product_pricing_old"
	FieldPricingNew      = "product_pricing_new"
	FieldQuantity        = "quantity_available"
	FieldVisibility      = "visibility_status"
	FieldPublishDate     = "publish_date"
)

// Field returns the current value of an editable field, or false when the
// field name is not editable.
func (p *CatalogProduct) Field(name string) (any, bool) {
	switch name {
	case FieldName:
		return p.Name, true
	case FieldRCProductName:
		return p.RCProductName, true
	case FieldSaltName:
		return p.SaltName, true
	case FieldComposition:
		return p.Composition, true
	case FieldManufacturer:
		return p.Manufacturer, true
	case FieldPackaging:
		return p.Packaging, true
	case FieldProductType:
		return p.ProductType, true
	case FieldConsumeType:
		return p.ConsumeType, true
	case FieldScheduleCat:
		return p.ScheduleCat, true
	case FieldMarketedBy:
		return p.MarketedBy, true
	case FieldUsedFor:
		return p.UsedFor, true
	case FieldLongDescription:
		return p.LongDescription, true
	case FieldPricingOld:
		return p.PricingOld, true
	case FieldPricingNew:
		return p.PricingNew, true
	case FieldQuantity:
		return p.Quantity, true
	case FieldVisibility:
		return p.Visibility, true
	case FieldPublishDate:
		return p.PublishDate, true
	}
	return nil, false
}

// SetField assigns an editable field. Numeric fields tolerate JSON's
// float64 decoding for integer input. Returns false for unknown fields or
// values of the wrong type.
func (p *CatalogProduct) SetField(name string, value any) bool {
	switch name {
	case FieldPricingOld, FieldPricingNew:
		f, ok := toFloat(value)
		if !ok {
			return false
		}
		if name == FieldPricingOld {
			p.PricingOld = f
		} else {
			p.PricingNew = f
		}
		return true
	case FieldQuantity:
		f, ok := toFloat(value)
		if !ok {
			return false
		}
		p.Quantity = int(f)
		return true
	}

	s, ok := value.(string)
	if !ok {
		return false
	}
	switch name {
	case FieldName:
		p.Name = s
	case FieldRCProductName:
		p.RCProductName = s
	case FieldSaltName:
		p.SaltName = s
	case FieldComposition:
		p.Composition = s
	case FieldManufacturer:
		p.Manufacturer = s
	case FieldPackaging:
		p.Packaging = s
	case FieldProductType:
		p.ProductType = s
	case FieldConsumeType:
		p.ConsumeType = s
	case FieldScheduleCat:
		p.ScheduleCat = s
	case FieldMarketedBy:
		p.MarketedBy = s
	case FieldUsedFor:
		p.UsedFor = s
	case FieldLongDescription:
		p.LongDescription = s
	case FieldVisibility:
		p.Visibility = s
	case FieldPublishDate:
		p.PublishDate = s
	default:
		return false
	}
	return true
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}
