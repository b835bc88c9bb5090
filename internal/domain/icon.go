package domain

import "strings"

// Icon is a closed set of icon names the frontend maps to components
type Icon string

const (
	IconDefault   Icon = "circle"
	IconHome      Icon = "home"
	IconDashboard Icon = "dashboard"
	IconCatalog   Icon = "catalog"
	IconFolder    Icon = "folder"
	IconUsers     Icon = "users"
	IconUser      Icon = "user"
	IconSettings  Icon = "settings"
	IconShield    Icon = "shield"
	IconReport    Icon = "report"
	IconExport    Icon = "export"
	IconProject   Icon = "project"
	IconLogout    Icon = "logout"
	IconBell      Icon = "bell"
	IconDocument  Icon = "document"
)

var knownIcons = map[Icon]struct{}{
	IconDefault:   {},
	IconHome:      {},
	IconDashboard: {},
	IconCatalog:   {},
	IconFolder:    {},
	IconUsers:     {},
	IconUser:      {},
	IconSettings:  {},
	IconShield:    {},
	IconReport:    {},
	IconExport:    {},
	IconProject:   {},
	IconLogout:    {},
	IconBell:      {},
	IconDocument:  {},
}

// iconAliases maps names the menu API sends (heroicons style) onto Icon
var iconAliases = map[string]Icon{
	"homeicon":                  IconHome,
	"squares2x2icon":            IconDashboard,
	"chartpieicon":              IconDashboard,
	"rectanglestackicon":        IconCatalog,
	"bookopenicon":              IconCatalog,
	"foldericon":                IconFolder,
	"usergroupicon":             IconUsers,
	"usersicon":                 IconUsers,
	"usericon":                  IconUser,
	"usercircleicon":            IconUser,
	"cog6toothicon":             IconSettings,
	"cogicon":                   IconSettings,
	"shieldcheckicon":           IconShield,
	"chartbaricon":              IconReport,
	"documentarrowdownicon":     IconExport,
	"arrowdowntrayicon":         IconExport,
	"briefcaseicon":             IconProject,
	"arrowrightonrectangleicon": IconLogout,
	"bellicon":                  IconBell,
	"documenttexticon":          IconDocument,
}

// ParseIcon resolves an API icon name. Unknown names yield IconDefault and false.
func ParseIcon(name string) (Icon, bool) {
	normalized := strings.ToLower(strings.TrimSpace(name))
	if normalized == "" {
		return IconDefault, false
	}
	if _, ok := knownIcons[Icon(normalized)]; ok {
		return Icon(normalized), true
	}
	compact := strings.NewReplacer("-", "", "_", "", " ", "").Replace(normalized)
	if icon, ok := iconAliases[compact]; ok {
		return icon, true
	}
	if icon, ok := iconAliases[compact+"icon"]; ok {
		return icon, true
	}
	return IconDefault, false
}

// Valid reports whether the icon belongs to the known set
func (i Icon) Valid() bool {
	_, ok := knownIcons[i]
	return ok
}
