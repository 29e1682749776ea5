package filter

import (
	"strings"

	"github.com/giygas/ceassist-api/catalog/entities"
)

// Options are the choices offered by the selectors
type Options struct {
	Makers            []string             `json:"makers"`
	Materials         []string             `json:"materials"`
	Diseases          []string             `json:"diseases"`
	JSDTClasses       []entities.JSDTClass `json:"jsdtClasses"`
	HDFClasses        []entities.HDFClass  `json:"hdfClasses"`
	TherapyCategories []entities.Category  `json:"therapyCategories"`
}

// BuildOptions derives every option list from the catalog
func BuildOptions(products []entities.ProductSeries, devices []entities.ApheresisDevice) Options {
	return Options{
		Makers:            Makers(products),
		Materials:         Materials(products),
		Diseases:          Diseases(devices),
		JSDTClasses:       entities.JSDTClasses,
		HDFClasses:        entities.HDFLeakageClasses,
		TherapyCategories: entities.TherapyCategories,
	}
}

// Makers lists the product makers once each, in first-seen order
func Makers(products []entities.ProductSeries) []string {
	u := newUniq()
	for _, p := range products {
		u.add(p.Maker)
	}
	return u.items
}

// Materials lists membrane materials by their base name: anything from the
// first "(" on is dropped, so "PS (ポリスルホン)" and "PS" collapse together.
func Materials(products []entities.ProductSeries) []string {
	u := newUniq()
	for _, p := range products {
		base, _, _ := strings.Cut(p.Material, "(")
		u.add(strings.TrimSpace(base))
	}
	return u.items
}

// Diseases lists every indication once, in first-seen order
func Diseases(devices []entities.ApheresisDevice) []string {
	u := newUniq()
	for _, d := range devices {
		for _, ind := range d.Indications {
			u.add(ind)
		}
	}
	return u.items
}

type uniq struct {
	seen  map[string]struct{}
	items []string
}

func newUniq() *uniq {
	return &uniq{seen: make(map[string]struct{}), items: []string{}}
}

func (u *uniq) add(s string) {
	if s == "" {
		return
	}
	if _, ok := u.seen[s]; ok {
		return
	}
	u.seen[s] = struct{}{}
	u.items = append(u.items, s)
}
