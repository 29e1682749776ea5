// Package entities holds the catalog data model shared by every package.
package entities

// Catalog is one complete, immutable snapshot of the reference data
type Catalog struct {
	Products      []ProductSeries       `json:"products" yaml:"products"`
	Devices       []ApheresisDevice     `json:"devices" yaml:"devices"`
	Reimbursement []ReimbursementRecord `json:"reimbursement" yaml:"reimbursement"`
	CartGuide     CartGuide             `json:"cartGuide" yaml:"cartGuide"`
}
