// Package filter selects catalog records matching a set of optional
// predicates and derives the option lists shown next to them.
package filter

import (
	"slices"
	"strings"

	"github.com/giygas/ceassist-api/catalog/entities"
)

// MatchMode selects how the maker predicate compares
type MatchMode string

const (
	MatchContains MatchMode = "contains"
	MatchExact    MatchMode = "exact"
)

// ProductQuery holds the product predicates. Zero fields are ignored.
type ProductQuery struct {
	Maker          string
	MakerMatch     MatchMode
	Classification entities.JSDTClass
	Material       string
	ProductType    entities.ProductType
	HDFClass       entities.HDFClass
}

// DeviceQuery holds the device predicates. Zero fields are ignored.
type DeviceQuery struct {
	Category entities.Category
	Disease  string
}

// Products returns the series matching every set predicate, in catalog order.
// Matching is verbatim: no case or width folding.
func Products(products []entities.ProductSeries, q ProductQuery) []entities.ProductSeries {
	out := make([]entities.ProductSeries, 0, len(products))
	for _, p := range products {
		if q.matches(p) {
			out = append(out, p)
		}
	}
	return out
}

func (q ProductQuery) matches(p entities.ProductSeries) bool {
	if q.Maker != "" {
		if q.MakerMatch == MatchExact {
			if p.Maker != q.Maker {
				return false
			}
		} else if !strings.Contains(p.Maker, q.Maker) {
			return false
		}
	}
	if q.Classification != "" && p.JSDTClass != q.Classification {
		return false
	}
	if q.Material != "" && !strings.Contains(p.Material, q.Material) {
		return false
	}
	if q.ProductType != "" && p.Type != q.ProductType {
		return false
	}
	if q.HDFClass != "" && p.HDFClass != q.HDFClass {
		return false
	}
	return true
}

// Devices returns the devices matching every set predicate, in catalog order
func Devices(devices []entities.ApheresisDevice, q DeviceQuery) []entities.ApheresisDevice {
	out := make([]entities.ApheresisDevice, 0, len(devices))
	for _, d := range devices {
		if q.matches(d) {
			out = append(out, d)
		}
	}
	return out
}

func (q DeviceQuery) matches(d entities.ApheresisDevice) bool {
	if q.Category != "" && d.Category != q.Category {
		return false
	}
	if q.Disease != "" && !slices.ContainsFunc(d.Indications, func(ind string) bool {
		return strings.Contains(ind, q.Disease)
	}) {
		return false
	}
	return true
}
