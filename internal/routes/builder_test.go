package routes

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superadmin/navigation/internal/domain"
)

func sampleMenu() []domain.NavigationItem {
	return []domain.NavigationItem{
		{Name: "Dashboard", Href: "/dashboard", Icon: domain.IconDashboard},
		{Name: "Catálogos", Href: "/catalogos", Icon: domain.IconCatalog, Children: []domain.NavigationItem{
			{Name: "Detalle", Href: "/catalogos/42", Icon: domain.IconDocument},
			{Name: "Nuevo", Href: "/catalogos/nuevo"},
		}},
		{Name: "Usuarios", Href: "/admin/seguridad/usuarios", Icon: domain.IconUsers},
		{Name: "Raíz", Href: "/"},
	}
}

func TestSplitPath(t *testing.T) {
	assert.Equal(t, []string{"catalogos", "42"}, SplitPath("/catalogos/42/"))
	assert.Equal(t, []string{"a", "b"}, SplitPath("https://admin.example.com/a/b?x=1#top"))
	assert.Equal(t, []string{"reportes"}, SplitPath("reportes?tab=2"))
	assert.Empty(t, SplitPath("/"))
	assert.Empty(t, SplitPath(""))
}

func TestNormalizeSegment(t *testing.T) {
	key, dynamic := NormalizeSegment("999")
	assert.Equal(t, domain.WildcardKey, key)
	assert.True(t, dynamic)

	key, dynamic = NormalizeSegment("v2")
	assert.Equal(t, "v2", key)
	assert.False(t, dynamic)

	assert.Equal(t, "navigation.dynamic", TranslationKey(domain.WildcardKey))
	assert.Equal(t, "navigation.catalogos", TranslationKey("catalogos"))
}

func TestBuildRouteConfigKeysAndDepth(t *testing.T) {
	table := BuildRouteConfigFromMenu(sampleMenu(), domain.MenuTypeMain)

	assert.Equal(t, []string{"admin", "catalogos", "dashboard"}, table.Keys())
	assert.Equal(t, 3, table.Depth())

	catalogos := table["catalogos"]
	require.NotNil(t, catalogos)
	assert.Equal(t, "Catálogos", catalogos.Label)
	assert.Equal(t, domain.IconCatalog, catalogos.Icon)
	assert.Equal(t, "MAIN_MENU", catalogos.SourceMenuType)
	assert.False(t, catalogos.Dynamic)

	detail := catalogos.Children[domain.WildcardKey]
	require.NotNil(t, detail)
	assert.True(t, detail.Dynamic)
	assert.Equal(t, "/catalogos/42", detail.Href)
	assert.Equal(t, "navigation.dynamic", detail.TranslationKey)
}

func TestBuildRouteConfigIntermediatePlaceholders(t *testing.T) {
	table := BuildRouteConfigFromMenu(sampleMenu(), domain.MenuTypeMain)

	admin := table["admin"]
	require.NotNil(t, admin)
	assert.True(t, admin.Placeholder())
	assert.Empty(t, admin.Label)
	assert.True(t, admin.Children["seguridad"].Placeholder())
	assert.Equal(t, "Usuarios", admin.Children["seguridad"].Children["usuarios"].Label)
}

func TestBuildRouteConfigNumericSegmentsCollapse(t *testing.T) {
	a := BuildRouteConfigFromMenu([]domain.NavigationItem{{Name: "Uno", Href: "/catalogos/1"}}, domain.MenuTypeMain)
	b := BuildRouteConfigFromMenu([]domain.NavigationItem{{Name: "Uno", Href: "/catalogos/999"}}, domain.MenuTypeMain)

	assert.Equal(t, a["catalogos"].Children.Keys(), b["catalogos"].Children.Keys())

	both := BuildRouteConfigFromMenu([]domain.NavigationItem{
		{Name: "Uno", Href: "/catalogos/1"},
		{Name: "Dos", Href: "/catalogos/999"},
	}, domain.MenuTypeMain)
	assert.Len(t, both["catalogos"].Children, 1)
}

func TestBuildRouteConfigOrderIndependent(t *testing.T) {
	flat := flatten(sampleMenu())
	flat = append(flat,
		domain.NavigationItem{Name: "Otro", Href: "/catalogos/7"},
		domain.NavigationItem{Name: "Admin", Href: "/admin"},
	)
	want := BuildRouteConfigFromMenu(flat, domain.MenuTypeMain)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]domain.NavigationItem(nil), flat...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		if diff := cmp.Diff(want, BuildRouteConfigFromMenu(shuffled, domain.MenuTypeMain)); diff != "" {
			t.Fatalf("shuffle %d changed the route table (-want +got):\n%s", i, diff)
		}
	}
}

func TestBuildRouteConfigSameHrefAndNameIgnoresOrder(t *testing.T) {
	a := domain.NavigationItem{Name: "Catálogos", Href: "/catalogos", Icon: domain.IconCatalog}
	b := domain.NavigationItem{Name: "Catálogos", Href: "/catalogos", Icon: domain.IconFolder}

	ab := BuildRouteConfigFromMenu([]domain.NavigationItem{a, b}, domain.MenuTypeMain)
	ba := BuildRouteConfigFromMenu([]domain.NavigationItem{b, a}, domain.MenuTypeMain)

	if diff := cmp.Diff(ab, ba); diff != "" {
		t.Fatalf("insertion order changed the route table (-ab +ba):\n%s", diff)
	}
}

func TestBuildRouteConfigDoesNotMutateInput(t *testing.T) {
	items := sampleMenu()
	before := domain.CloneNavigation(items)
	BuildRouteConfigFromMenu(items, domain.MenuTypeUser)
	assert.Equal(t, before, items)
}
