package catalog

import (
	"errors"

	"github.com/rpggio/qontract/internal/localization"
)

// ErrTemplateNotFound indicates an unknown template ID.
var ErrTemplateNotFound = errors.New("template not found")

var templates = []Template{
	{
		ID:   string(KindFreelanceProject),
		Kind: KindFreelanceProject,
		Title: map[localization.Language]string{
			localization.Indonesian: "Proyek Freelance",
			localization.English:    "Freelance Project",
		},
		Description: map[localization.Language]string{
			localization.Indonesian: "Kontrak untuk pekerjaan lepas berbasis proyek.",
			localization.English:    "Contract for project-based freelance work.",
		},
	},
	{
		ID:   string(KindSupplierCooperation),
		Kind: KindSupplierCooperation,
		Title: map[localization.Language]string{
			localization.Indonesian: "Kerjasama Supplier",
			localization.English:    "Supplier Cooperation",
		},
		Description: map[localization.Language]string{
			localization.Indonesian: "Perjanjian kerjasama dengan pemasok barang atau jasa.",
			localization.English:    "Agreement for cooperation with a supplier of goods or services.",
		},
	},
	{
		ID:   string(KindEquipmentRental),
		Kind: KindEquipmentRental,
		Title: map[localization.Language]string{
			localization.Indonesian: "Sewa Alat",
			localization.English:    "Equipment Rental",
		},
		Description: map[localization.Language]string{
			localization.Indonesian: "Kontrak untuk sewa-menyewa peralatan atau aset.",
			localization.English:    "Contract for renting equipment or assets.",
		},
	},
}

// All returns every template in display order.
func All() []Template {
	return append([]Template(nil), templates...)
}

// Get returns the template with the given ID.
func Get(id string) (Template, error) {
	for _, t := range templates {
		if t.ID == id {
			return t, nil
		}
	}
	return Template{}, ErrTemplateNotFound
}

// Localized returns every template rendered in lang.
func Localized(lang localization.Language) []View {
	views := make([]View, 0, len(templates))
	for _, t := range templates {
		views = append(views, t.Localize(lang))
	}
	return views
}
