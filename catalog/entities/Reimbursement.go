package entities

// PricedMaterial is a reimbursable material line. Lines that only name
// example products carry no price.
type PricedMaterial struct {
	Name     string   `json:"name" yaml:"name"`
	Price    string   `json:"price,omitempty" yaml:"price,omitempty"`
	Examples []string `json:"examples,omitempty" yaml:"examples,omitempty"`
}

// ReimbursementRecord is the fee schedule entry for one therapy category
type ReimbursementRecord struct {
	Category  Category         `json:"category" yaml:"category"`
	Title     string           `json:"title" yaml:"title"`
	Points    string           `json:"points" yaml:"points"`
	Materials []PricedMaterial `json:"materials" yaml:"materials"`
	Notes     []string         `json:"notes" yaml:"notes"`
}
