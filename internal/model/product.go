package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/spf13/cast"
)

// ProductID identifies a product in the catalogue.
// Remote catalogues send numeric IDs while locally authored products carry
// generated ones, so every ID is normalised to its string form on decode.
type ProductID string

// UnmarshalJSON accepts either a JSON number or a JSON string.
func (id *ProductID) UnmarshalJSON(data []byte) error {
	// UseNumber keeps large generated IDs exact.
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid product id: %w", err)
	}

	switch v := raw.(type) {
	case nil:
		*id = ""
	case json.Number:
		*id = ProductID(canonicalNumber(v))
	case bool:
		return fmt.Errorf("invalid product id %s: booleans are not identifiers", string(data))
	default:
		s, err := cast.ToStringE(v)
		if err != nil {
			return fmt.Errorf("invalid product id %s: %w", string(data), err)
		}
		*id = ProductID(s)
	}
	return nil
}

// canonicalNumber renders integral numbers in plain decimal form, so 1, 1.0
// and 1e0 all name the same product. Other numbers keep their literal text.
func canonicalNumber(n json.Number) string {
	if i, err := n.Int64(); err == nil {
		return strconv.FormatInt(i, 10)
	}
	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) >= math.MaxInt64 {
		return n.String()
	}
	i, err := cast.ToInt64E(f)
	if err != nil {
		return n.String()
	}
	return strconv.FormatInt(i, 10)
}

// String returns the identifier as a plain string.
func (id ProductID) String() string {
	return string(id)
}

// Rating is the normalised review score of a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// UnmarshalJSON accepts a bare number, a numeric string, or a {rate, count}
// object. Anything else decodes to the zero rating.
func (r *Rating) UnmarshalJSON(data []byte) error {
	var raw interface{}
	if err := json.Unmarshal(data, &raw); err != nil {
		*r = Rating{}
		return nil
	}
	*r = NormaliseRating(raw)
	return nil
}

// NormaliseRating converts a loosely typed rating value into a Rating.
// Rates must be finite and non-negative; anything else is the zero rating.
func NormaliseRating(raw interface{}) Rating {
	switch v := raw.(type) {
	case map[string]interface{}:
		rate, ok := parseRate(v["rate"])
		if !ok {
			return Rating{}
		}
		return Rating{Rate: rate, Count: parseCount(v["count"])}
	default:
		rate, ok := parseRate(v)
		if !ok {
			return Rating{}
		}
		return Rating{Rate: rate}
	}
}

func parseRate(raw interface{}) (float64, bool) {
	switch raw.(type) {
	case nil, bool:
		return 0, false
	}
	rate, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(rate) || math.IsInf(rate, 0) || rate < 0 {
		return 0, false
	}
	return rate, true
}

func parseCount(raw interface{}) int {
	if _, ok := raw.(bool); ok {
		return 0
	}
	count, err := cast.ToIntE(raw)
	if err != nil || count < 0 {
		return 0
	}
	return count
}

// Product represents a purchasable item in the catalogue.
type Product struct {
	ID          ProductID `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Price       float64   `json:"price" db:"price"`
	Description string    `json:"description" db:"description"`
	Category    string    `json:"category" db:"category"`
	Image       string    `json:"image" db:"image"`
	Rating      Rating    `json:"rating" db:"-"`
}
