// Package compare builds the side-by-side comparison of two dialyzer sizes.
package compare

import (
	"strconv"

	"github.com/giygas/ceassist-api/catalog/entities"
)

// DefaultSize is preselected whenever a series declares it
const DefaultSize = "1.5"

// Placeholder is shown for a value one side does not have
const Placeholder = "-"

// Side is one column of the comparison as chosen by the user
type Side struct {
	Maker   string `json:"maker"`
	Product string `json:"product"`
	Size    string `json:"size"`
}

// Request pairs the two sides
type Request struct {
	Source Side `json:"source"`
	Target Side `json:"target"`
}

// ProductRef names a product offered for a maker
type ProductRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ResolvedSide is a side after cascading resolution: the maker narrows the
// products, the product narrows the sizes.
type ResolvedSide struct {
	Maker    string       `json:"maker"`
	Products []ProductRef `json:"products"`
	Product  *ProductRef  `json:"product,omitempty"`
	Sizes    []string     `json:"sizes"`
	Size     string       `json:"size,omitempty"`

	series *entities.ProductSeries
	spec   *entities.SizeSpec
}

// Highlight marks which side of a numeric row is larger
type Highlight string

const (
	HighlightNone   Highlight = ""
	HighlightSource Highlight = "source"
	HighlightTarget Highlight = "target"
)

// Row is one line of the comparison table
type Row struct {
	Label     string    `json:"label"`
	Unit      string    `json:"unit,omitempty"`
	Source    string    `json:"source"`
	Target    string    `json:"target"`
	Highlight Highlight `json:"highlight,omitempty"`
}

// Result is the full comparison. Ready is true once both sides resolve to a size.
type Result struct {
	Source ResolvedSide `json:"source"`
	Target ResolvedSide `json:"target"`
	Ready  bool         `json:"ready"`
	Rows   []Row        `json:"rows"`
}

// Resolve narrows one side against the catalog. A product that does not
// belong to the chosen maker is dropped; a size the product does not
// declare falls back to the default size.
func Resolve(products []entities.ProductSeries, side Side) ResolvedSide {
	r := ResolvedSide{Maker: side.Maker, Products: []ProductRef{}, Sizes: []string{}}

	for i := range products {
		p := &products[i]
		if side.Maker != "" && p.Maker != side.Maker {
			continue
		}
		r.Products = append(r.Products, ProductRef{ID: p.ID, Name: p.Name})
		if p.ID == side.Product {
			r.series = p
		}
	}

	if r.series == nil {
		return r
	}
	r.Product = &ProductRef{ID: r.series.ID, Name: r.series.Name}

	for _, size := range r.series.Sizes() {
		r.Sizes = append(r.Sizes, entities.FormatSize(size))
	}

	r.Size = side.Size
	spec, ok := r.series.Spec(side.Size)
	if !ok {
		r.Size = DefaultSizeFor(*r.series)
		spec, ok = r.series.Spec(r.Size)
	}
	if ok {
		r.spec = &spec
	} else {
		r.Size = ""
	}

	return r
}

// DefaultSizeFor returns "1.5" when declared, otherwise the smallest size
func DefaultSizeFor(p entities.ProductSeries) string {
	sizes := p.Sizes()
	if len(sizes) == 0 {
		return ""
	}
	if _, ok := p.Spec(DefaultSize); ok {
		return DefaultSize
	}
	return entities.FormatSize(sizes[0])
}

// Compare resolves both sides and builds the comparison table
func Compare(products []entities.ProductSeries, req Request) Result {
	src := Resolve(products, req.Source)
	dst := Resolve(products, req.Target)

	return Result{
		Source: src,
		Target: dst,
		Ready:  src.spec != nil && dst.spec != nil,
		Rows:   buildRows(src, dst),
	}
}

type numericField struct {
	label string
	unit  string
	value func(entities.SizeSpec) *float64
}

func ptr(v float64) *float64 { return &v }

var numericFields = []numericField{
	{"膜面積", "㎡", func(s entities.SizeSpec) *float64 { return ptr(s.Area) }},
	{"UFR", "mL/hr/mmHg", func(s entities.SizeSpec) *float64 { return ptr(s.UFR) }},
	{"プライミング", "mL", func(s entities.SizeSpec) *float64 { return ptr(s.PrimingVolume) }},
	{"尿素 (Urea)", "mL/min", func(s entities.SizeSpec) *float64 { return ptr(s.Clearance.Urea) }},
	{"リン (Phos)", "mL/min", func(s entities.SizeSpec) *float64 { return s.Clearance.Phosphate }},
	{"β2-MG", "mL/min", func(s entities.SizeSpec) *float64 { return s.Clearance.B2MG }},
	{"Vit.B12", "mL/min", func(s entities.SizeSpec) *float64 { return s.Clearance.VitaminB12 }},
}

func buildRows(src, dst ResolvedSide) []Row {
	rows := []Row{
		textRow("分類", src, dst, entities.ProductSeries.TreatmentLabel),
		textRow("膜素材", src, dst, func(p entities.ProductSeries) string { return p.Material }),
		textRow("機能分類", src, dst, entities.ProductSeries.FunctionalClass),
	}

	for _, f := range numericFields {
		a, b := numericValue(src, f), numericValue(dst, f)
		rows = append(rows, Row{
			Label:     f.label,
			Unit:      f.unit,
			Source:    formatValue(a),
			Target:    formatValue(b),
			Highlight: highlight(a, b),
		})
	}

	return rows
}

// Text rows are never highlighted
func textRow(label string, src, dst ResolvedSide, field func(entities.ProductSeries) string) Row {
	return Row{Label: label, Source: textValue(src, field), Target: textValue(dst, field)}
}

func textValue(side ResolvedSide, field func(entities.ProductSeries) string) string {
	if side.series == nil {
		return Placeholder
	}
	if v := field(*side.series); v != "" {
		return v
	}
	return Placeholder
}

func numericValue(side ResolvedSide, f numericField) *float64 {
	if side.spec == nil {
		return nil
	}
	return f.value(*side.spec)
}

func formatValue(v *float64) string {
	if v == nil {
		return Placeholder
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// highlight picks the strictly greater side; ties and missing values are neutral
func highlight(a, b *float64) Highlight {
	switch {
	case a == nil || b == nil:
		return HighlightNone
	case *a > *b:
		return HighlightSource
	case *b > *a:
		return HighlightTarget
	default:
		return HighlightNone
	}
}
