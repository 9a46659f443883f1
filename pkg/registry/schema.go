// pkg/registry/schema.go
package registry

// FieldKind names the canonical query field a quiz question feeds.
type FieldKind string

const (
	FieldLocationMethod FieldKind = "locationMethod"
	FieldNeighborhoods  FieldKind = "neighborhoods"
	FieldDistance       FieldKind = "distance"
	FieldCuisines       FieldKind = "cuisines"
	FieldPrice          FieldKind = "price"
	FieldDietary        FieldKind = "dietary"
	FieldAtmosphere     FieldKind = "atmosphere"
)

type SelectionMode string

const (
	SelectSingle   SelectionMode = "single"
	SelectMultiple SelectionMode = "multiple"
	SelectNumeric  SelectionMode = "numeric"
)

// Schema versions shipped with the service.
const (
	VersionClassic = "classic"
	VersionFlow    = "flow"
)

// QuizSchema is the canonical form both quiz layouts are adapted into.
type QuizSchema struct {
	Version   string         `json:"version"`
	Questions []QuizQuestion `json:"questions"`
}

type QuizQuestion struct {
	ID      string        `json:"id"`
	Prompt  string        `json:"prompt"`
	Field   FieldKind     `json:"field"`
	Mode    SelectionMode `json:"mode"`
	Options []QuizOption  `json:"options,omitempty"`
}

// QuizOption carries its icon as a plain reference name regardless of how
// the source layout encoded it.
type QuizOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon,omitempty"`
}

// classicDocument is the single-page quiz layout: options carry an icon key.
type classicDocument struct {
	Version   string            `json:"version"`
	Questions []classicQuestion `json:"questions"`
}

type classicQuestion struct {
	ID       string          `json:"id"`
	Question string          `json:"question"`
	Type     string          `json:"type"` // single | multiple | slider
	Field    string          `json:"field"`
	Options  []classicOption `json:"options"`
}

type classicOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
}

// flowDocument is the step-by-step layout: choices reference an icon component.
type flowDocument struct {
	Version string         `json:"version"`
	Steps   []flowQuestion `json:"steps"`
}

type flowQuestion struct {
	Key         string       `json:"key"`
	Title       string       `json:"title"`
	MultiSelect bool         `json:"multiSelect"`
	Numeric     bool         `json:"numeric"`
	Maps        string       `json:"mapsTo"`
	Choices     []flowChoice `json:"choices"`
}

type flowChoice struct {
	ID            string `json:"id"`
	Text          string `json:"text"`
	IconComponent string `json:"iconComponent"`
}
