// Package data provides thread-safe storage of the loaded catalog.
// The DataContainer publishes each snapshot through atomic values so
// readers never see a half-built catalog.
package data

import (
	"sync/atomic"
	"time"

	"github.com/giygas/ceassist-api/catalog/entities"
	"github.com/giygas/ceassist-api/interfaces"
	"github.com/giygas/ceassist-api/logging"
)

// Compile-time check to ensure DataContainer implements DataStore
var _ interfaces.DataStore = (*DataContainer)(nil)

// DataContainer holds the catalog and its lookup maps
type DataContainer struct {
	products         atomic.Value // []entities.ProductSeries
	productsMap      atomic.Value // map[string]entities.ProductSeries
	devices          atomic.Value // []entities.ApheresisDevice
	devicesMap       atomic.Value // map[string]entities.ApheresisDevice
	reimbursement    atomic.Value // []entities.ReimbursementRecord
	reimbursementMap atomic.Value // map[entities.Category]entities.ReimbursementRecord
	cartGuide        atomic.Value // entities.CartGuide
	lastUpdated      atomic.Value // time.Time
	serverStartTime  atomic.Value // time.Time
}

// NewDataContainer creates a new DataContainer with empty data
func NewDataContainer() *DataContainer {
	dc := &DataContainer{}
	dc.products.Store(make([]entities.ProductSeries, 0))
	dc.productsMap.Store(make(map[string]entities.ProductSeries))
	dc.devices.Store(make([]entities.ApheresisDevice, 0))
	dc.devicesMap.Store(make(map[string]entities.ApheresisDevice))
	dc.reimbursement.Store(make([]entities.ReimbursementRecord, 0))
	dc.reimbursementMap.Store(make(map[entities.Category]entities.ReimbursementRecord))
	dc.cartGuide.Store(entities.CartGuide{})
	dc.lastUpdated.Store(time.Time{})
	dc.serverStartTime.Store(time.Time{})
	return dc
}

// load reads an atomic value, falling back to zero when it holds another type
func load[T any](v *atomic.Value, name string) T {
	if stored, ok := v.Load().(T); ok {
		return stored
	}
	logging.Warn("Data value is empty or invalid", "value", name)
	var zero T
	return zero
}

// GetProducts returns the product series in declaration order
func (dc *DataContainer) GetProducts() []entities.ProductSeries {
	return load[[]entities.ProductSeries](&dc.products, "products")
}

// GetProductsMap returns the product series keyed by id
func (dc *DataContainer) GetProductsMap() map[string]entities.ProductSeries {
	return load[map[string]entities.ProductSeries](&dc.productsMap, "productsMap")
}

// GetDevices returns the apheresis devices in declaration order
func (dc *DataContainer) GetDevices() []entities.ApheresisDevice {
	return load[[]entities.ApheresisDevice](&dc.devices, "devices")
}

// GetDevicesMap returns the devices keyed by id
func (dc *DataContainer) GetDevicesMap() map[string]entities.ApheresisDevice {
	return load[map[string]entities.ApheresisDevice](&dc.devicesMap, "devicesMap")
}

func (dc *DataContainer) GetReimbursement() []entities.ReimbursementRecord {
	return load[[]entities.ReimbursementRecord](&dc.reimbursement, "reimbursement")
}

func (dc *DataContainer) GetReimbursementMap() map[entities.Category]entities.ReimbursementRecord {
	return load[map[entities.Category]entities.ReimbursementRecord](&dc.reimbursementMap, "reimbursementMap")
}

func (dc *DataContainer) GetCartGuide() entities.CartGuide {
	return load[entities.CartGuide](&dc.cartGuide, "cartGuide")
}

// GetLastUpdated returns when the current snapshot was stored
func (dc *DataContainer) GetLastUpdated() time.Time {
	return load[time.Time](&dc.lastUpdated, "lastUpdated")
}

// SetServerStartTime sets the server start time
func (dc *DataContainer) SetServerStartTime(startTime time.Time) {
	dc.serverStartTime.Store(startTime)
}

// GetServerStartTime returns the server start time
func (dc *DataContainer) GetServerStartTime() time.Time {
	return load[time.Time](&dc.serverStartTime, "serverStartTime")
}

// UpdateData builds the lookup maps and swaps the whole snapshot in
func (dc *DataContainer) UpdateData(catalog *entities.Catalog) {
	if catalog == nil {
		logging.Warn("Ignoring nil catalog update")
		return
	}

	productsMap := make(map[string]entities.ProductSeries, len(catalog.Products))
	for _, p := range catalog.Products {
		productsMap[p.ID] = p
	}

	devicesMap := make(map[string]entities.ApheresisDevice, len(catalog.Devices))
	for _, d := range catalog.Devices {
		devicesMap[d.ID] = d
	}

	reimbursementMap := make(map[entities.Category]entities.ReimbursementRecord, len(catalog.Reimbursement))
	for _, r := range catalog.Reimbursement {
		reimbursementMap[r.Category] = r
	}

	dc.products.Store(catalog.Products)
	dc.productsMap.Store(productsMap)
	dc.devices.Store(catalog.Devices)
	dc.devicesMap.Store(devicesMap)
	dc.reimbursement.Store(catalog.Reimbursement)
	dc.reimbursementMap.Store(reimbursementMap)
	dc.cartGuide.Store(catalog.CartGuide)
	dc.lastUpdated.Store(time.Now())
}
