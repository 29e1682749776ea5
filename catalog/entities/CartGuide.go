package entities

type ChecklistItem struct {
	Label  string `json:"label" yaml:"label"`
	Detail string `json:"detail" yaml:"detail"`
}

type GuideParameter struct {
	Step     string `json:"step" yaml:"step"`
	Value    string `json:"value" yaml:"value"`
	Note     string `json:"note" yaml:"note"`
	Critical bool   `json:"critical,omitempty" yaml:"critical,omitempty"`
}

type LeakTest struct {
	Method    string `json:"method" yaml:"method"`
	Procedure string `json:"procedure" yaml:"procedure"`
}

// CartGuide is the reference sheet for ascites filtration and concentration
type CartGuide struct {
	Title      string           `json:"title" yaml:"title"`
	Overview   string           `json:"overview" yaml:"overview"`
	Checklist  []ChecklistItem  `json:"checklist" yaml:"checklist"`
	Parameters []GuideParameter `json:"parameters" yaml:"parameters"`
	LeakTests  []LeakTest       `json:"leakTests" yaml:"leakTests"`
}
