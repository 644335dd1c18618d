package catalog_test

import (
	"testing"

	"github.com/rpggio/qontract/internal/domain/catalog"
	"github.com/rpggio/qontract/internal/localization"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Get(t *testing.T) {
	tmpl, err := catalog.Get("supplier_cooperation")
	require.NoError(t, err)
	require.Equal(t, catalog.KindSupplierCooperation, tmpl.Kind)
	require.Equal(t, "Supplier Cooperation", tmpl.TitleIn(localization.English))
	require.Equal(t, "Kerjasama Supplier", tmpl.TitleIn(localization.Indonesian))

	_, err = catalog.Get("nda")
	require.ErrorIs(t, err, catalog.ErrTemplateNotFound)
}

func TestCatalog_Localized(t *testing.T) {
	views := catalog.Localized(localization.English)
	require.Len(t, views, 3)
	require.Equal(t, "Freelance Project", views[0].Title)
	require.Equal(t, catalog.IconFileText, views[0].Icon)
	require.Equal(t, catalog.IconTruck, views[1].Icon)
	require.Equal(t, catalog.IconWrench, views[2].Icon)
}

func TestCatalog_AllIsACopy(t *testing.T) {
	all := catalog.All()
	all[0].ID = "changed"

	tmpl, err := catalog.Get("freelance_project")
	require.NoError(t, err)
	require.Equal(t, "freelance_project", tmpl.ID)
}
