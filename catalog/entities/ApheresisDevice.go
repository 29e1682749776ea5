package entities

import "slices"

// Category is the therapy category of an apheresis device
type Category string

const (
	CategoryCRRT   Category = "CRRT"
	CategoryPE     Category = "PE"
	CategoryDFPP   Category = "DFPP"
	CategoryPA     Category = "PA"
	CategoryDHP    Category = "DHP"
	CategoryCART   Category = "CART"
	CategoryColumn Category = "COLUMN"
)

// TherapyCategories are the tiles of the apheresis menu, in display order
var TherapyCategories = []Category{CategoryCRRT, CategoryPE, CategoryDFPP, CategoryPA, CategoryDHP, CategoryCART}

// Valid reports whether c is a therapy category or the β2-MG column category
func (c Category) Valid() bool {
	return c == CategoryColumn || slices.Contains(TherapyCategories, c)
}

// Priming describes the pre-treatment flush
type Priming struct {
	Steps       []string `json:"steps" yaml:"steps"`
	BloodVolume string   `json:"bloodVolume" yaml:"bloodVolume"`
	WashVolume  string   `json:"washVolume" yaml:"washVolume"`
}

// TreatmentParams are the recommended running conditions
type TreatmentParams struct {
	BloodFlow     string   `json:"bloodFlow" yaml:"bloodFlow"`
	DialysateFlow string   `json:"dialysateFlow,omitempty" yaml:"dialysateFlow,omitempty"`
	Duration      string   `json:"duration,omitempty" yaml:"duration,omitempty"`
	Notes         []string `json:"notes" yaml:"notes"`
}

// Finish describes how blood or plasma is returned at the end of a session
type Finish struct {
	Method string `json:"method" yaml:"method"`
	Volume string `json:"volume" yaml:"volume"`
}

// ApheresisDevice is an apheresis filter, adsorber or column
type ApheresisDevice struct {
	ID                string          `json:"id" yaml:"id"`
	Name              string          `json:"name" yaml:"name"`
	Maker             string          `json:"maker" yaml:"maker"`
	Category          Category        `json:"category" yaml:"category"`
	Type              string          `json:"type" yaml:"type"`
	Material          string          `json:"material,omitempty" yaml:"material,omitempty"`
	Indications       []string        `json:"indications" yaml:"indications"`
	Contraindications []string        `json:"contraindications,omitempty" yaml:"contraindications,omitempty"`
	Items             []string        `json:"items" yaml:"items"`
	Priming           Priming         `json:"priming" yaml:"priming"`
	Treatment         TreatmentParams `json:"treatment" yaml:"treatment"`
	Finish            Finish          `json:"finish" yaml:"finish"`
	Insurance         string          `json:"insurance" yaml:"insurance"`
}
