package domain

type MenuTypeCode string

func (m MenuTypeCode) String() string {
	return string(m)
}

const (
	MenuTypeMain          MenuTypeCode = "MAIN_MENU"           // Main sidebar
	MenuTypeSecondary     MenuTypeCode = "SECONDARY_MENU"      // Secondary sidebar
	MenuTypeAdminProjects MenuTypeCode = "ADMIN_PROJECTS_MENU" // Admin projects list
	MenuTypeUser          MenuTypeCode = "USER_MENU"           // User dropdown
)

var MenuTypes = []MenuTypeCode{
	MenuTypeMain,
	MenuTypeSecondary,
	MenuTypeAdminProjects,
	MenuTypeUser,
}

func (m MenuTypeCode) DisplayName() string {
	switch m {
	case MenuTypeMain:
		return "Main menu"
	case MenuTypeSecondary:
		return "Secondary menu"
	case MenuTypeAdminProjects:
		return "Admin projects"
	case MenuTypeUser:
		return "User menu"
	default:
		return "Unknown"
	}
}

// ParseMenuTypes converts configured codes, dropping blanks and duplicates
func ParseMenuTypes(codes []string) []MenuTypeCode {
	seen := make(map[MenuTypeCode]struct{}, len(codes))
	out := make([]MenuTypeCode, 0, len(codes))
	for _, code := range codes {
		if code == "" {
			continue
		}
		mt := MenuTypeCode(code)
		if _, ok := seen[mt]; ok {
			continue
		}
		seen[mt] = struct{}{}
		out = append(out, mt)
	}
	return out
}
