package filter

import (
	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/navigation"
)

// Listing is the result list of a view. Ready is false until the view has
// the choice it needs (a maker, a class, a search); a ready listing with no
// items is an empty result, not a missing one.
type Listing[T any] struct {
	Ready bool `json:"ready"`
	Items []T  `json:"items"`
}

func notReady[T any]() Listing[T] {
	return Listing[T]{Items: []T{}}
}

// ProductListing returns the product list the state's view displays
func ProductListing(products []entities.ProductSeries, s navigation.State) Listing[entities.ProductSeries] {
	f := s.Filters

	var q ProductQuery
	switch s.View {
	case navigation.HemodialysisMenu:
		if !s.SearchActive {
			return notReady[entities.ProductSeries]()
		}
		q = ProductQuery{Maker: f.Maker, MakerMatch: MatchContains, Classification: f.Classification, Material: f.Material}
	case navigation.ManufacturerBrowser:
		if f.Maker == "" {
			return notReady[entities.ProductSeries]()
		}
		q = ProductQuery{Maker: f.Maker, MakerMatch: MatchExact}
	case navigation.ClassificationBrowser:
		if f.Classification == "" {
			return notReady[entities.ProductSeries]()
		}
		q = ProductQuery{Classification: f.Classification}
	case navigation.TreatmentBrowser:
		if f.ProductType == "" {
			return notReady[entities.ProductSeries]()
		}
		q = ProductQuery{ProductType: f.ProductType, HDFClass: f.HDFClass}
	default:
		return notReady[entities.ProductSeries]()
	}

	return Listing[entities.ProductSeries]{Ready: true, Items: Products(products, q)}
}

// DeviceListing returns the device list the state's view displays
func DeviceListing(devices []entities.ApheresisDevice, s navigation.State) Listing[entities.ApheresisDevice] {
	f := s.Filters

	var q DeviceQuery
	switch s.View {
	case navigation.ApheresisList, navigation.ColumnList:
		if f.Category == "" {
			return notReady[entities.ApheresisDevice]()
		}
		q = DeviceQuery{Category: f.Category}
	case navigation.DiseaseBrowser:
		if f.Disease == "" {
			return notReady[entities.ApheresisDevice]()
		}
		q = DeviceQuery{Disease: f.Disease}
	default:
		return notReady[entities.ApheresisDevice]()
	}

	return Listing[entities.ApheresisDevice]{Ready: true, Items: Devices(devices, q)}
}
