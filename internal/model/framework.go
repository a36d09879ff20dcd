package model

// QualificationFramework defines the question prompts rendered for each
// FAINT category. A scorecard's answer arrays are positionally aligned to
// the framework active at its creation time.
type QualificationFramework struct {
	ID           string             `json:"id" yaml:"id"`
	Name         string             `json:"name" yaml:"name"`
	Description  string             `json:"description" yaml:"description"`
	Active       bool               `json:"active" yaml:"active"`
	DisplayOrder int                `json:"display_order" yaml:"display_order"`
	Structure    FrameworkStructure `json:"structure" yaml:"structure"`
}

// FrameworkStructure holds the per-category question definitions.
type FrameworkStructure struct {
	Categories []FrameworkCategory `json:"categories" yaml:"categories"`
}

// FrameworkCategory defines one category's prompts and presentation.
type FrameworkCategory struct {
	Name        Category `json:"name" yaml:"name"`
	DisplayName string   `json:"displayName" yaml:"display_name"`
	Color       string   `json:"color" yaml:"color"`
	Questions   []string `json:"questions" yaml:"questions"`
}

// CategoryByName returns the framework category with the given name.
func (f *QualificationFramework) CategoryByName(name Category) (FrameworkCategory, bool) {
	for _, c := range f.Structure.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return FrameworkCategory{}, false
}
