package catalog

import "github.com/rpggio/qontract/internal/localization"

// Kind enumerates the known template kinds.
type Kind string

const (
	KindFreelanceProject    Kind = "freelance_project"
	KindSupplierCooperation Kind = "supplier_cooperation"
	KindEquipmentRental     Kind = "equipment_rental"
)

// Icon names a renderable asset for the presentation layer.
type Icon string

const (
	IconFileText Icon = "file-text"
	IconTruck    Icon = "truck"
	IconWrench   Icon = "wrench"
)

// Icon resolves the asset shown for a template kind.
func (k Kind) Icon() Icon {
	switch k {
	case KindSupplierCooperation:
		return IconTruck
	case KindEquipmentRental:
		return IconWrench
	default:
		return IconFileText
	}
}

// Template is a predefined contract category.
type Template struct {
	ID          string                           `json:"id"`
	Kind        Kind                             `json:"kind"`
	Title       map[localization.Language]string `json:"title"`
	Description map[localization.Language]string `json:"description"`
}

// TitleIn returns the title in lang, falling back to Indonesian.
func (t Template) TitleIn(lang localization.Language) string {
	if title, ok := t.Title[lang]; ok {
		return title
	}
	return t.Title[localization.Indonesian]
}

// DescriptionIn returns the description in lang, falling back to Indonesian.
func (t Template) DescriptionIn(lang localization.Language) string {
	if desc, ok := t.Description[lang]; ok {
		return desc
	}
	return t.Description[localization.Indonesian]
}

// View is a template localized for display.
type View struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        Icon   `json:"icon"`
}

// Localize renders the template in lang.
func (t Template) Localize(lang localization.Language) View {
	return View{
		ID:          t.ID,
		Kind:        t.Kind,
		Title:       t.TitleIn(lang),
		Description: t.DescriptionIn(lang),
		Icon:        t.Kind.Icon(),
	}
}
