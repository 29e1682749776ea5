package entities

import (
	"slices"
	"strconv"
)

// ProductType separates diffusion dialyzers from hemodiafilters
type ProductType string

const (
	Dialyzer      ProductType = "dialyzer"
	Hemodiafilter ProductType = "hemodiafilter"
)

// Valid reports whether t is one of the declared product types
func (t ProductType) Valid() bool {
	return t == Dialyzer || t == Hemodiafilter
}

// JSDTClass is the JSDT functional classification of a dialyzer
type JSDTClass string

const (
	JSDTIa      JSDTClass = "Ⅰa"
	JSDTIb      JSDTClass = "Ⅰb"
	JSDTIIa     JSDTClass = "Ⅱa"
	JSDTIIb     JSDTClass = "Ⅱb"
	JSDTS       JSDTClass = "S"
	JSDTStacked JSDTClass = "特定積層型"
)

// JSDTClasses lists the classification browser tiles in display order
var JSDTClasses = []JSDTClass{JSDTIa, JSDTIb, JSDTIIa, JSDTIIb, JSDTS, JSDTStacked}

// Valid reports whether c is a declared JSDT class
func (c JSDTClass) Valid() bool {
	return slices.Contains(JSDTClasses, c)
}

// HDFClass is the albumin-leakage classification of a hemodiafilter
type HDFClass string

const (
	HDFLowLeakage    HDFClass = "Alb低漏出"
	HDFMediumLeakage HDFClass = "Alb中漏出"
	HDFHighLeakage   HDFClass = "Alb高漏出"
	HDFAdsorptive    HDFClass = "吸着型"
)

// HDFClasses lists every declared hemodiafilter class
var HDFClasses = []HDFClass{HDFLowLeakage, HDFMediumLeakage, HDFHighLeakage, HDFAdsorptive}

// HDFLeakageClasses are the sub-filters offered in the treatment browser
var HDFLeakageClasses = []HDFClass{HDFLowLeakage, HDFMediumLeakage, HDFHighLeakage}

// Valid reports whether c is a declared HDF class
func (c HDFClass) Valid() bool {
	return slices.Contains(HDFClasses, c)
}

// Clearance holds per-solute clearance values in mL/min.
// Urea is always present, the others only when the membrane removes the solute.
type Clearance struct {
	Urea       float64  `json:"urea" yaml:"urea"`
	Phosphate  *float64 `json:"phosphate,omitempty" yaml:"phos,omitempty"`
	B2MG       *float64 `json:"b2mg,omitempty" yaml:"b2mg,omitempty"`
	VitaminB12 *float64 `json:"vitB12,omitempty" yaml:"b12,omitempty"`
}

// SizeSpec is the performance sheet for one membrane size
type SizeSpec struct {
	Area          float64   `json:"area" yaml:"area"`
	UFR           float64   `json:"ufr" yaml:"ufr"`
	PrimingVolume float64   `json:"primingVolume" yaml:"vol"`
	Clearance     Clearance `json:"clearance" yaml:"clearance"`
}

// SizedSpec pairs a size key with its spec for ordered output
type SizedSpec struct {
	Size string `json:"size"`
	SizeSpec
}

// ProductSeries is a dialyzer or hemodiafilter product line
type ProductSeries struct {
	ID            string               `json:"id" yaml:"id"`
	Name          string               `json:"name" yaml:"name"`
	Maker         string               `json:"maker" yaml:"maker"`
	Type          ProductType          `json:"type" yaml:"type"`
	JSDTClass     JSDTClass            `json:"jsdtClass,omitempty" yaml:"jsdtClass,omitempty"`
	HDFClass      HDFClass             `json:"hdfClass,omitempty" yaml:"hdfClass,omitempty"`
	Material      string               `json:"material" yaml:"material"`
	PVP           string               `json:"pvp" yaml:"pvp"`
	BPA           string               `json:"bpa" yaml:"bpa"`
	Sterilization string               `json:"sterilization" yaml:"sterilization"`
	Features      []string             `json:"features" yaml:"features"`
	Specs         map[float64]SizeSpec `json:"-" yaml:"specs"` // keyed by membrane surface area
}

// TreatmentLabel returns "HDF" for hemodiafilters and "HD" otherwise
func (p ProductSeries) TreatmentLabel() string {
	if p.Type == Hemodiafilter {
		return "HDF"
	}
	return "HD"
}

// FunctionalClass returns whichever classification is populated
func (p ProductSeries) FunctionalClass() string {
	if p.JSDTClass != "" {
		return string(p.JSDTClass)
	}
	return string(p.HDFClass)
}

// Sizes returns the declared size keys in ascending order
func (p ProductSeries) Sizes() []float64 {
	sizes := make([]float64, 0, len(p.Specs))
	for size := range p.Specs {
		sizes = append(sizes, size)
	}
	slices.Sort(sizes)
	return sizes
}

// SizedSpecs returns every size spec ordered by size key
func (p ProductSeries) SizedSpecs() []SizedSpec {
	sizes := p.Sizes()
	out := make([]SizedSpec, 0, len(sizes))
	for _, size := range sizes {
		out = append(out, SizedSpec{Size: FormatSize(size), SizeSpec: p.Specs[size]})
	}
	return out
}

// Spec looks up the spec for a size key given in its display form
func (p ProductSeries) Spec(size string) (SizeSpec, bool) {
	key, err := ParseSize(size)
	if err != nil {
		return SizeSpec{}, false
	}
	spec, ok := p.Specs[key]
	return spec, ok
}

// FormatSize renders a size key the way it is declared ("1.5", "2800")
func FormatSize(size float64) string {
	return strconv.FormatFloat(size, 'f', -1, 64)
}

// ParseSize parses a size key from its display form
func ParseSize(size string) (float64, error) {
	return strconv.ParseFloat(size, 64)
}
