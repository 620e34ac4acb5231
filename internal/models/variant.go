// ABOUTME: App variants sharing one marker schema
// ABOUTME: GeoMobile is the base app; WildWatch adds the date field and sharing

package models

import (
	"fmt"
	"strings"
)

// Variant selects which optional marker features are enabled.
type Variant string

const (
	VariantGeoMobile Variant = "geomobile"
	VariantWildWatch Variant = "wildwatch"
)

// Features lists the optional parts of the schema a variant exposes.
type Features struct {
	Date  bool
	Share bool
}

// ParseVariant parses a variant name, defaulting to geomobile when empty.
func ParseVariant(s string) (Variant, error) {
	switch Variant(strings.ToLower(strings.TrimSpace(s))) {
	case "", VariantGeoMobile:
		return VariantGeoMobile, nil
	case VariantWildWatch:
		return VariantWildWatch, nil
	default:
		return "", fmt.Errorf("unknown variant: %q (use geomobile or wildwatch)", s)
	}
}

// Features returns the optional features enabled for the variant.
func (v Variant) Features() Features {
	if v == VariantWildWatch {
		return Features{Date: true, Share: true}
	}
	return Features{}
}

// DisplayName is the product name shown to users.
func (v Variant) DisplayName() string {
	if v == VariantWildWatch {
		return "WildWatch"
	}
	return "GeoMobile"
}
