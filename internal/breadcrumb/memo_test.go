package breadcrumb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superadmin/navigation/internal/domain"
	"superadmin/navigation/internal/routes"
)

func TestMemoReturnsCachedTrailForSameGeneration(t *testing.T) {
	memo := NewMemo(newTestResolver(), 0)
	table := testTable()

	first := memo.Resolve("", "/es/catalogos/42", table, 1)
	first[0].Name = "mutated"

	second := memo.Resolve("", "/es/catalogos/42", nil, 1)
	require.Len(t, second, 3)
	assert.Equal(t, "Inicio", second[0].Name)
	assert.Equal(t, "Catálogos #42", second[2].Name)
}

func TestMemoResetsOnNewGeneration(t *testing.T) {
	memo := NewMemo(newTestResolver(), 0)

	memo.Resolve("", "/es/proyectos", testTable(), 1)
	items := memo.Resolve("", "/es/proyectos", nil, 2)

	require.Len(t, items, 2)
	// static table has a Proyectos mock entry, so the label survives, but the
	// result was recomputed against the new table
	assert.Equal(t, "Proyectos", items[1].Name)
	assert.Len(t, memo.entries, 1)
}

func TestMemoBoundsEntries(t *testing.T) {
	memo := NewMemo(newTestResolver(), 2)
	table := testTable()

	memo.Resolve("", "/es/a", table, 1)
	memo.Resolve("", "/es/b", table, 1)
	memo.Resolve("", "/es/c", table, 1)

	assert.LessOrEqual(t, len(memo.entries), 2)
}

func TestMemoSeparatesScopes(t *testing.T) {
	memo := NewMemo(newTestResolver(), 0)
	admin := routes.BuildRouteConfigFromMenu([]domain.NavigationItem{
		{Name: "Zona Admin", Href: "/zona"},
	}, domain.MenuTypeMain)

	adminItems := memo.Resolve("admin", "/es/zona", admin, 1)
	userItems := memo.Resolve("user", "/es/zona", nil, 1)

	require.Len(t, adminItems, 2)
	require.Len(t, userItems, 2)
	assert.Equal(t, "Zona Admin", adminItems[1].Name)
	assert.Equal(t, "Zona", userItems[1].Name)
	assert.Len(t, memo.entries, 2)
}
