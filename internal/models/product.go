package models

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"
)

type Status string

const (
	StatusAvailable  Status = "available"
	StatusOutOfStock Status = "out-of-stock"
)

type FlagKey string

const (
	FlagRecommended FlagKey = "isRecommended"
	FlagBestseller  FlagKey = "isBestseller"
)

func ParseFlagKey(s string) (FlagKey, error) {
	switch key := FlagKey(s); key {
	case FlagRecommended, FlagBestseller:
		return key, nil
	default:
		return "", fmt.Errorf("unknown flag %q, expected %s or %s", s, FlagRecommended, FlagBestseller)
	}
}

// Product is the remote-owned catalog entry. The server assigns ID and it
// is encoded as "_id" on the wire.
type Product struct {
	ID            string  `json:"_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	Status        Status  `json:"status"`
	IsRecommended bool    `json:"isRecommended"`
	IsBestseller  bool    `json:"isBestseller"`
}

/**
* The backend is loose about types: ids may be "_id" or "id", strings or
* numbers, and the flags may come back as 0/1, "true", null or be missing.
* Everything is normalised here so the rest of the code only sees strict values.
 */
func (p *Product) UnmarshalJSON(data []byte) error {
	type alias Product
	var raw struct {
		alias
		ID            json.RawMessage `json:"_id"`
		IsRecommended json.RawMessage `json:"isRecommended"`
		IsBestseller  json.RawMessage `json:"isBestseller"`
	}
	raw.alias = alias(*p)
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid product: %w", err)
	}

	doc := gjson.ParseBytes(data)

	*p = Product(raw.alias)
	if id, ok := productID(doc); ok {
		p.ID = id
	}
	if v := doc.Get(string(FlagRecommended)); v.Exists() {
		p.IsRecommended = Truthy(v)
	}
	if v := doc.Get(string(FlagBestseller)); v.Exists() {
		p.IsBestseller = Truthy(v)
	}
	return nil
}

func productID(doc gjson.Result) (string, bool) {
	for _, key := range []string{"_id", "id"} {
		if id := doc.Get(key); id.Exists() && id.Type != gjson.Null {
			return id.String(), true
		}
	}
	return "", false
}

// Truthy coerces any JSON value to a strict bool.
func Truthy(v gjson.Result) bool {
	switch v.Type {
	case gjson.True:
		return true
	case gjson.Number:
		return v.Num != 0
	case gjson.String:
		s := v.String()
		return s != "" && s != "false" && s != "0"
	case gjson.JSON:
		return true
	default:
		return false
	}
}

func (p Product) Flag(key FlagKey) bool {
	if key == FlagBestseller {
		return p.IsBestseller
	}
	return p.IsRecommended
}

// Apply returns a copy of p with every set field of patch written over it.
func (p Product) Apply(patch ProductPatch) Product {
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.IsRecommended != nil {
		p.IsRecommended = *patch.IsRecommended
	}
	if patch.IsBestseller != nil {
		p.IsBestseller = *patch.IsBestseller
	}
	return p
}

// Update returns the full mutable field set, as sent on PUT.
func (p Product) Update() ProductUpdate {
	return ProductUpdate{
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		Status:        p.Status,
		IsRecommended: p.IsRecommended,
		IsBestseller:  p.IsBestseller,
	}
}

// ProductUpdate is the edit dialog's field set.
type ProductUpdate struct {
	Name          string  `json:"name" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Price         float64 `json:"price" validate:"required,gte=0"`
	Status        Status  `json:"status" validate:"required,oneof=available out-of-stock"`
	IsRecommended bool    `json:"isRecommended"`
	IsBestseller  bool    `json:"isBestseller"`
}

// ProductPatch is a partial field map; nil fields are left alone.
type ProductPatch struct {
	Name          *string  `json:"name,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Status        *Status  `json:"status,omitempty"`
	IsRecommended *bool    `json:"isRecommended,omitempty"`
	IsBestseller  *bool    `json:"isBestseller,omitempty"`
}

func FlagPatch(key FlagKey, value bool) ProductPatch {
	if key == FlagBestseller {
		return ProductPatch{IsBestseller: &value}
	}
	return ProductPatch{IsRecommended: &value}
}

func (p ProductPatch) IsEmpty() bool {
	return p == ProductPatch{}
}
