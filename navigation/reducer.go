package navigation

import (
	"slices"

	"github.com/giygas/ceassist-api/catalog/entities"
)

// Reduce applies a to s and returns the resulting state. Actions that do
// not apply to s return s unchanged.
func Reduce(s State, a Action) State {
	next, _ := Apply(s, a)
	return next
}

// Applicable reports whether a would change or act on s
func Applicable(s State, a Action) bool {
	_, ok := Apply(s, a)
	return ok
}

// Apply is Reduce that also reports whether the action applied. When it
// did not, the returned state is s.
func Apply(s State, a Action) (State, bool) {
	switch a.Type {
	case ActionReset:
		return NewState(), true
	case ActionBack:
		return back(s)
	case ActionCloseDetail:
		if s.Selection.IsNone() {
			return s, false
		}
		s.Selection = Selection{}
		return s, true
	case ActionCloseModal:
		if s.Modal == ModalNone {
			return s, false
		}
		s.Modal = ModalNone
		return s, true
	}

	// An open detail or modal covers the view, so nothing below it can be
	// acted on until it is closed.
	if s.overlayOpen() {
		return s, false
	}

	switch a.Type {
	case ActionNavigate:
		return navigate(s, View(a.Value))
	case ActionSelectCategory:
		return selectCategory(s, entities.Category(a.Value))
	case ActionSelectMaker:
		if s.View != HemodialysisMenu && s.View != ManufacturerBrowser {
			return s, false
		}
		s.Filters.Maker = a.Value
		return s, true
	case ActionSelectClassification:
		if s.View != HemodialysisMenu && s.View != ClassificationBrowser {
			return s, false
		}
		class := entities.JSDTClass(a.Value)
		if class != "" && !class.Valid() {
			return s, false
		}
		s.Filters.Classification = class
		return s, true
	case ActionSelectMaterial:
		if s.View != HemodialysisMenu {
			return s, false
		}
		s.Filters.Material = a.Value
		return s, true
	case ActionSelectProductType:
		return selectProductType(s, entities.ProductType(a.Value))
	case ActionSelectHDFClass:
		return selectHDFClass(s, entities.HDFClass(a.Value))
	case ActionSelectDisease:
		if s.View != DiseaseBrowser {
			return s, false
		}
		s.Filters.Disease = a.Value
		return s, true
	case ActionExecuteSearch:
		if s.View != HemodialysisMenu {
			return s, false
		}
		s.SearchActive = true
		return s, true
	case ActionClearSearch:
		if s.View != HemodialysisMenu {
			return s, false
		}
		s.Filters = Filters{}
		s.SearchActive = false
		return s, true
	case ActionOpenDetail:
		return openDetail(s, SelectionKind(a.Kind), a.ID)
	case ActionOpenModal:
		return openModal(s, Modal(a.Kind))
	}

	return s, false
}

// navigate moves one level down the graph. Entering a view starts it with
// a clean filter set so nothing chosen in a sibling section carries over.
func navigate(s State, target View) (State, bool) {
	parent, ok := target.Parent()
	if !ok || parent != s.View {
		return s, false
	}

	next := State{View: target}
	if target == ColumnList {
		next.Filters.Category = entities.CategoryColumn
	}
	return next, true
}

func selectCategory(s State, category entities.Category) (State, bool) {
	if s.View != ApheresisMenu || !slices.Contains(entities.TherapyCategories, category) {
		return s, false
	}
	return State{View: ApheresisList, Filters: Filters{Category: category}}, true
}

func selectProductType(s State, productType entities.ProductType) (State, bool) {
	if s.View != TreatmentBrowser {
		return s, false
	}
	if productType != "" && !productType.Valid() {
		return s, false
	}
	s.Filters.ProductType = productType
	s.Filters.HDFClass = ""
	return s, true
}

func selectHDFClass(s State, class entities.HDFClass) (State, bool) {
	if s.View != TreatmentBrowser || s.Filters.ProductType != entities.Hemodiafilter {
		return s, false
	}
	if class != "" && !class.Valid() {
		return s, false
	}
	s.Filters.HDFClass = class
	return s, true
}

func openDetail(s State, kind SelectionKind, id string) (State, bool) {
	if id == "" {
		return s, false
	}

	switch kind {
	case SelectionProduct:
		switch s.View {
		case HemodialysisMenu, ManufacturerBrowser, ClassificationBrowser, TreatmentBrowser:
		default:
			return s, false
		}
	case SelectionDevice:
		switch s.View {
		case ApheresisList, ColumnList, DiseaseBrowser:
		default:
			return s, false
		}
	default:
		return s, false
	}

	s.Selection = Selection{Kind: kind, ID: id}
	return s, true
}

func openModal(s State, modal Modal) (State, bool) {
	switch modal {
	case ModalReimbursement:
		if (s.View != ApheresisList && s.View != ColumnList) || s.Filters.Category == "" {
			return s, false
		}
	case ModalPlasmaSimulation, ModalCartGuide:
		if s.View != ApheresisMenu {
			return s, false
		}
	default:
		return s, false
	}

	s.Modal = modal
	return s, true
}

// back undoes exactly one step, most specific first: the modal, then the
// detail, then the innermost sub-filter of a browser, then the view itself.
func back(s State) (State, bool) {
	if s.Modal != ModalNone {
		s.Modal = ModalNone
		return s, true
	}

	if !s.Selection.IsNone() {
		s.Selection = Selection{}
		return s, true
	}

	switch s.View {
	case TreatmentBrowser:
		if s.Filters.HDFClass != "" {
			s.Filters.HDFClass = ""
			return s, true
		}
		if s.Filters.ProductType != "" {
			s.Filters.ProductType = ""
			return s, true
		}
	case ManufacturerBrowser:
		if s.Filters.Maker != "" {
			s.Filters.Maker = ""
			return s, true
		}
	case ClassificationBrowser:
		if s.Filters.Classification != "" {
			s.Filters.Classification = ""
			return s, true
		}
	}

	if parent, ok := s.View.Parent(); ok {
		return State{View: parent}, true
	}

	// Top menu, or a state that cannot be reached by navigation
	initial := NewState()
	if s == initial {
		return s, false
	}
	return initial, true
}
