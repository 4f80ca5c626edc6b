package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices are JSON numbers on the wire, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Product represents a product in the catalog.
type Product struct {
	ID          string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string          `json:"name" gorm:"type:varchar(100);not null"`
	Description string          `json:"description" gorm:"type:varchar(500);not null"`
	Price       decimal.Decimal `json:"price" gorm:"type:numeric;not null"`
	Image       *string         `json:"image" gorm:"type:text"`
}

// TableName pins the table name regardless of naming strategy.
func (Product) TableName() string {
	return "products"
}

// CreateProductInput is the body accepted when creating a product.
// The id is never taken from the client.
type CreateProductInput struct {
	Name        string          `json:"name" example:"Wireless mouse"`
	Description string          `json:"description" example:"Ergonomic 2.4GHz mouse"`
	Price       decimal.Decimal `json:"price" example:"19.99"`
	Image       *string         `json:"image,omitempty" example:"https://example.com/mouse.png"`
}

// UpdateProductInput is a partial update. Nil pointers leave the stored value alone;
// Image tracks presence separately so that an explicit null clears it.
type UpdateProductInput struct {
	Name        *string          `json:"name,omitempty"`
	Description *string          `json:"description,omitempty"`
	Price       *decimal.Decimal `json:"price,omitempty"`
	Image       OptionalString   `json:"image,omitzero"`
}

// IsEmpty reports whether the patch carries no field at all.
func (in UpdateProductInput) IsEmpty() bool {
	return in.Name == nil && in.Description == nil && in.Price == nil && !in.Image.Set
}

// OptionalString is a JSON string field that remembers whether it was present
// in the document, so "absent" and "null" can be told apart.
type OptionalString struct {
	Set   bool
	Value *string
}

// SomeString returns a present OptionalString holding s.
func SomeString(s string) OptionalString {
	return OptionalString{Set: true, Value: &s}
}

// NullString returns a present OptionalString holding null.
func NullString() OptionalString {
	return OptionalString{Set: true}
}

// UnmarshalJSON is only invoked when the key exists, which is what marks it Set.
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
