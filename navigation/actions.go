package navigation

// ActionType enumerates the user actions the reducer understands
type ActionType string

const (
	ActionNavigate             ActionType = "navigate"
	ActionSelectMaker          ActionType = "select_maker"
	ActionSelectClassification ActionType = "select_classification"
	ActionSelectMaterial       ActionType = "select_material"
	ActionSelectProductType    ActionType = "select_product_type"
	ActionSelectHDFClass       ActionType = "select_hdf_class"
	ActionSelectDisease        ActionType = "select_disease"
	ActionSelectCategory       ActionType = "select_category"
	ActionOpenDetail           ActionType = "open_detail"
	ActionCloseDetail          ActionType = "close_detail"
	ActionOpenModal            ActionType = "open_modal"
	ActionCloseModal           ActionType = "close_modal"
	ActionExecuteSearch        ActionType = "execute_search"
	ActionClearSearch          ActionType = "clear_search"
	ActionBack                 ActionType = "back"
	ActionReset                ActionType = "reset"
)

var actionTypes = map[ActionType]bool{
	ActionNavigate: true, ActionSelectMaker: true, ActionSelectClassification: true,
	ActionSelectMaterial: true, ActionSelectProductType: true, ActionSelectHDFClass: true,
	ActionSelectDisease: true, ActionSelectCategory: true, ActionOpenDetail: true,
	ActionCloseDetail: true, ActionOpenModal: true, ActionCloseModal: true,
	ActionExecuteSearch: true, ActionClearSearch: true, ActionBack: true, ActionReset: true,
}

// Valid reports whether t is an action the reducer knows
func (t ActionType) Valid() bool { return actionTypes[t] }

// Action is one user action. Value carries the view or filter value,
// Kind the detail or modal kind, ID the entity to open.
type Action struct {
	Type  ActionType `json:"type"`
	Value string     `json:"value,omitempty"`
	Kind  string     `json:"kind,omitempty"`
	ID    string     `json:"id,omitempty"`
}

func Navigate(v View) Action                { return Action{Type: ActionNavigate, Value: string(v)} }
func SelectMaker(maker string) Action       { return Action{Type: ActionSelectMaker, Value: maker} }
func SelectClassification(c string) Action { return Action{Type: ActionSelectClassification, Value: c} }
func SelectMaterial(material string) Action { return Action{Type: ActionSelectMaterial, Value: material} }
func SelectProductType(t string) Action     { return Action{Type: ActionSelectProductType, Value: t} }
func SelectHDFClass(c string) Action        { return Action{Type: ActionSelectHDFClass, Value: c} }
func SelectDisease(disease string) Action   { return Action{Type: ActionSelectDisease, Value: disease} }
func SelectCategory(c string) Action        { return Action{Type: ActionSelectCategory, Value: c} }
func CloseDetail() Action                   { return Action{Type: ActionCloseDetail} }
func OpenModal(m Modal) Action              { return Action{Type: ActionOpenModal, Kind: string(m)} }
func CloseModal() Action                    { return Action{Type: ActionCloseModal} }
func ExecuteSearch() Action                 { return Action{Type: ActionExecuteSearch} }
func ClearSearch() Action                   { return Action{Type: ActionClearSearch} }
func Back() Action                          { return Action{Type: ActionBack} }
func Reset() Action                         { return Action{Type: ActionReset} }

func OpenDetail(kind SelectionKind, id string) Action {
	return Action{Type: ActionOpenDetail, Kind: string(kind), ID: id}
}
