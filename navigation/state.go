// Package navigation holds the view state of one browsing session and the
// pure reducer that moves it between views.
package navigation

import "github.com/giygas/ceassist-api/catalog/entities"

// View names one screen of the reference tool
type View string

const (
	TopMenu               View = "top_menu"
	HemodialysisMenu      View = "hemodialysis_menu"
	ManufacturerBrowser   View = "manufacturer"
	ClassificationBrowser View = "classification"
	TreatmentBrowser      View = "treatment"
	ApheresisMenu         View = "apheresis_menu"
	ApheresisList         View = "apheresis_list"
	ColumnList            View = "column_list"
	DiseaseBrowser        View = "apheresis_disease"
)

// parents is the forward navigation graph: each view can be entered only
// from its parent, and back leads to it.
var parents = map[View]View{
	HemodialysisMenu:      TopMenu,
	ApheresisMenu:         TopMenu,
	ManufacturerBrowser:   HemodialysisMenu,
	ClassificationBrowser: HemodialysisMenu,
	TreatmentBrowser:      HemodialysisMenu,
	ColumnList:            HemodialysisMenu,
	ApheresisList:         ApheresisMenu,
	DiseaseBrowser:        ApheresisMenu,
}

// Valid reports whether v is a known view
func (v View) Valid() bool {
	_, ok := parents[v]
	return ok || v == TopMenu
}

// Parent returns the view back leads to. The top menu has no parent.
func (v View) Parent() (View, bool) {
	p, ok := parents[v]
	return p, ok
}

// Filters are the drill-down selectors. A zero field means unset.
type Filters struct {
	Maker          string               `json:"maker,omitempty"`
	Classification entities.JSDTClass   `json:"classification,omitempty"`
	Material       string               `json:"material,omitempty"`
	ProductType    entities.ProductType `json:"productType,omitempty"`
	HDFClass       entities.HDFClass    `json:"hdfClass,omitempty"`
	Disease        string               `json:"disease,omitempty"`
	Category       entities.Category    `json:"category,omitempty"`
}

// SelectionKind tags which catalog table a selection points into
type SelectionKind string

const (
	SelectionNone    SelectionKind = ""
	SelectionProduct SelectionKind = "product"
	SelectionDevice  SelectionKind = "device"
)

// Selection is the entity whose detail is open. At most one is open.
type Selection struct {
	Kind SelectionKind `json:"kind,omitempty"`
	ID   string        `json:"id,omitempty"`
}

func ProductSelection(id string) Selection { return Selection{Kind: SelectionProduct, ID: id} }
func DeviceSelection(id string) Selection  { return Selection{Kind: SelectionDevice, ID: id} }

// IsNone reports whether no detail is open
func (s Selection) IsNone() bool { return s.Kind == SelectionNone }

// Modal is the overlay dialog currently shown
type Modal string

const (
	ModalNone             Modal = ""
	ModalReimbursement    Modal = "reimbursement"
	ModalPlasmaSimulation Modal = "plasma_simulation"
	ModalCartGuide        Modal = "cart_guide"
)

// State is the complete navigation state of a session. It is a value:
// the reducer never mutates its input.
type State struct {
	View         View      `json:"view"`
	Filters      Filters   `json:"filters"`
	SearchActive bool      `json:"searchActive"`
	Selection    Selection `json:"selection"`
	Modal        Modal     `json:"modal,omitempty"`
}

// NewState returns the initial state: the top menu with nothing selected
func NewState() State {
	return State{View: TopMenu}
}

// overlayOpen reports whether a detail or modal currently owns the screen
func (s State) overlayOpen() bool {
	return !s.Selection.IsNone() || s.Modal != ModalNone
}
