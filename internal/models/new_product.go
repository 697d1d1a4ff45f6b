package models

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// NewProduct is what the create form collects; the server assigns the id.
type NewProduct struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"required,min=10"`
	Price       Price  `json:"price" validate:"required,gt=0"`
	Status      Status `json:"status" validate:"required,oneof=available out-of-stock"`
}

/**
* Custom type for Price as the form may post it either as a number or as a
* numeric string, and both should be accepted.
 */
type Price float64

func (p *Price) UnmarshalJSON(data []byte) error {
	var floatVal float64
	if err := json.Unmarshal(data, &floatVal); err == nil {
		*p = Price(floatVal)
		return nil
	}

	var strVal string
	if err := json.Unmarshal(data, &strVal); err == nil {
		floatVal, err := strconv.ParseFloat(strVal, 64)
		if err != nil {
			return fmt.Errorf("invalid price value: %v", strVal)
		}
		*p = Price(floatVal)
		return nil
	}

	return fmt.Errorf("invalid price value: %v", string(data))
}
