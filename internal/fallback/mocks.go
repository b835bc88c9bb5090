package fallback

import "superadmin/navigation/internal/domain"

// Named mock sets used as development fallbacks, one per menu type.
var (
	MainMenuMock = []domain.NavigationItem{
		{Name: "Dashboard", Href: "/dashboard", Icon: domain.IconDashboard},
		{Name: "Catálogos", Href: "/catalogos", Icon: domain.IconCatalog},
		{Name: "Reportes", Href: "/reportes", Icon: domain.IconReport, Children: []domain.NavigationItem{
			{Name: "Exportaciones", Href: "/reportes/exportaciones", Icon: domain.IconExport},
		}},
	}

	SecondaryMenuMock = []domain.NavigationItem{
		{Name: "Usuarios", Href: "/usuarios", Icon: domain.IconUsers},
		{Name: "Roles", Href: "/roles", Icon: domain.IconShield},
	}

	AdminProjectsMenuMock = []domain.NavigationItem{
		{Name: "Proyectos", Href: "/proyectos", Icon: domain.IconProject},
	}

	UserMenuMock = []domain.NavigationItem{
		{Name: "Perfil", Href: "/perfil", Icon: domain.IconUser},
		{Name: "Configuración", Href: "/configuracion", Icon: domain.IconSettings},
		{Name: "Cerrar sesión", Href: "/logout", Icon: domain.IconLogout},
	}
)

// Mock returns a copy of the named mock for a menu type, or an empty list
func Mock(menuType domain.MenuTypeCode) []domain.NavigationItem {
	switch menuType {
	case domain.MenuTypeMain:
		return domain.CloneNavigation(MainMenuMock)
	case domain.MenuTypeSecondary:
		return domain.CloneNavigation(SecondaryMenuMock)
	case domain.MenuTypeAdminProjects:
		return domain.CloneNavigation(AdminProjectsMenuMock)
	case domain.MenuTypeUser:
		return domain.CloneNavigation(UserMenuMock)
	default:
		return []domain.NavigationItem{}
	}
}

// StaticNavigation is the union of all mocks; breadcrumbs use it when no
// menu could be loaded at all.
func StaticNavigation() []domain.NavigationItem {
	var out []domain.NavigationItem
	for _, mt := range domain.MenuTypes {
		out = append(out, Mock(mt)...)
	}
	return out
}
