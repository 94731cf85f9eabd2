package domain

import (
	"encoding/json"
	"regexp"
	"strconv"
)

// PriceKind tags the shape a listing price arrived in.
type PriceKind int

const (
	PriceAbsent PriceKind = iota
	PriceRaw
	PriceStructured
)

// ListingPrice is the heterogeneous price field of a visual match. The
// provider emits either nothing, a bare string (possibly with currency
// symbols and a trailing "*"), or an object carrying a human-formatted value
// and/or a machine-extracted numeric value. All three shapes decode into this
// one tagged variant.
type ListingPrice struct {
	Kind         PriceKind
	Raw          string  // PriceRaw: the bare string as received
	Formatted    string  // PriceStructured: human-formatted value, e.g. "₹660*"
	Extracted    float64 // PriceStructured: provider-extracted numeric value
	HasExtracted bool
}

// structuredPrice mirrors the provider's object shape.
type structuredPrice struct {
	Value          string   `json:"value"`
	ExtractedValue *float64 `json:"extracted_value"`
}

// UnmarshalJSON accepts all three provider price shapes.
func (p *ListingPrice) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*p = ListingPrice{Kind: PriceAbsent}
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = ListingPrice{Kind: PriceRaw, Raw: s}
		return nil
	}

	var obj structuredPrice
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	p.Kind = PriceStructured
	p.Formatted = obj.Value
	if obj.ExtractedValue != nil {
		p.Extracted = *obj.ExtractedValue
		p.HasExtracted = true
	}
	return nil
}

// MarshalJSON re-emits the variant in its original shape.
func (p ListingPrice) MarshalJSON() ([]byte, error) {
	switch p.Kind {
	case PriceRaw:
		return json.Marshal(p.Raw)
	case PriceStructured:
		obj := structuredPrice{Value: p.Formatted}
		if p.HasExtracted {
			v := p.Extracted
			obj.ExtractedValue = &v
		}
		return json.Marshal(obj)
	default:
		return []byte("null"), nil
	}
}

// Placeholder strings the provider sometimes uses instead of omitting the field.
var priceNoValue = map[string]bool{"": true, "N/A": true, "null": true}

var (
	currencyTokenRegex  = regexp.MustCompile(`(?i)rs\.?|inr`)
	currencySymbolRegex = regexp.MustCompile(`[₹$,*\s]+`)
	priceNumberRegex    = regexp.MustCompile(`^\d+(\.\d+)?$`)
)

// NormalizePrice strips currency decoration from a price string and reports
// whether the remainder is a plain decimal number. The normalization is
// idempotent: a normalized price normalizes to itself.
func NormalizePrice(raw string) (string, bool) {
	cleaned := currencyTokenRegex.ReplaceAllString(raw, "")
	cleaned = currencySymbolRegex.ReplaceAllString(cleaned, "")
	if !priceNumberRegex.MatchString(cleaned) {
		return "", false
	}
	return cleaned, true
}

// Resolve reduces the variant to a normalized numeric string. The formatted
// value is tried before the extracted one. Returns ok=false when the listing
// carries no usable price.
func (p ListingPrice) Resolve() (string, bool) {
	switch p.Kind {
	case PriceRaw:
		if priceNoValue[p.Raw] {
			return "", false
		}
		return NormalizePrice(p.Raw)
	case PriceStructured:
		if !priceNoValue[p.Formatted] {
			if n, ok := NormalizePrice(p.Formatted); ok {
				return n, true
			}
		}
		if p.HasExtracted {
			return strconv.FormatFloat(p.Extracted, 'f', -1, 64), true
		}
		return "", false
	default:
		return "", false
	}
}
