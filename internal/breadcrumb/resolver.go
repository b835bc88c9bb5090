// Package breadcrumb turns a pathname into a breadcrumb trail using a
// consolidated route table.
package breadcrumb

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"superadmin/navigation/internal/domain"
	"superadmin/navigation/internal/fallback"
	"superadmin/navigation/internal/i18n"
	"superadmin/navigation/internal/routes"
)

const staticMenuType domain.MenuTypeCode = "STATIC"

type Options struct {
	Locales         []string
	DefaultLanguage string
	DefaultSection  string
}

// Resolver is stateless; Resolve is a pure function of its inputs.
type Resolver struct {
	opts       Options
	translator i18n.Translator
	static     domain.RouteTable
}

func NewResolver(opts Options, translator i18n.Translator) *Resolver {
	return &Resolver{
		opts:       opts,
		translator: translator,
		static:     routes.BuildRouteConfigFromMenu(fallback.StaticNavigation(), staticMenuType),
	}
}

// Resolve builds the breadcrumb trail for pathname. An empty table resolves
// against the static fallback table.
func (r *Resolver) Resolve(pathname string, table domain.RouteTable) []domain.BreadcrumbItem {
	segments := routes.SplitPath(pathname)
	lang := r.opts.DefaultLanguage
	if len(segments) > 0 {
		if locale, ok := r.locale(segments[0]); ok {
			lang = locale
			segments = segments[1:]
		}
	}
	if len(table) == 0 {
		table = r.static
	}

	home := domain.BreadcrumbItem{
		Name: r.translate(lang, i18n.KeyHome, "Home"),
		Href: "/" + lang + "/" + r.opts.DefaultSection,
		Icon: domain.IconHome,
	}
	if len(segments) == 0 || (len(segments) == 1 && segments[0] == r.opts.DefaultSection) {
		home.Current = true
		return []domain.BreadcrumbItem{home}
	}

	items := []domain.BreadcrumbItem{home}
	level := table
	var parent *domain.RouteConfigNode
	parentName := home.Name
	prefix := "/" + lang

	start := 0
	if segments[0] == r.opts.DefaultSection {
		prefix += "/" + segments[0]
		if node, ok := table[segments[0]]; ok {
			parent = node
			level = node.Children
		}
		start = 1
	}

	for i := start; i < len(segments); i++ {
		segment := segments[i]
		prefix += "/" + segment
		current := i == len(segments)-1

		node := lookup(level, segment, parent, prefix)

		var name string
		switch {
		case routes.IsNumeric(segment):
			name = r.translator.DynamicRoute(lang, parentName, segment)
		case node != nil:
			name = r.label(lang, node, segment)
		default:
			name = Capitalize(segment)
		}

		item := domain.BreadcrumbItem{
			Name:    name,
			Href:    prefix,
			Current: current,
		}
		if node != nil {
			item.Icon = node.Icon
			item.Disabled = !current && node.Placeholder()
		}
		items = append(items, item)

		parent = node
		parentName = name
		level = nil
		if node != nil {
			level = node.Children
		}
	}

	return items
}

// lookup tries the exact segment, then the wildcard key, then synthesizes a
// dynamic node from the parent when a numeric segment has no configuration.
func lookup(level domain.RouteTable, segment string, parent *domain.RouteConfigNode, href string) *domain.RouteConfigNode {
	if node, ok := level[segment]; ok {
		return node
	}
	if !routes.IsNumeric(segment) {
		return nil
	}
	if node, ok := level[domain.WildcardKey]; ok {
		return node
	}
	if parent == nil {
		return nil
	}
	return &domain.RouteConfigNode{
		Key:            domain.WildcardKey,
		TranslationKey: routes.TranslationKey(domain.WildcardKey),
		Href:           href,
		Icon:           parent.Icon,
		RequiresAuth:   parent.RequiresAuth,
		Dynamic:        true,
		SourceMenuType: parent.SourceMenuType,
	}
}

func (r *Resolver) label(lang string, node *domain.RouteConfigNode, segment string) string {
	if msg, ok := r.translator.T(lang, node.TranslationKey); ok {
		return msg
	}
	if node.Label != "" {
		return node.Label
	}
	return Capitalize(segment)
}

func (r *Resolver) translate(lang, key, def string) string {
	if msg, ok := r.translator.T(lang, key); ok {
		return msg
	}
	return def
}

// locale returns the configured spelling of a locale prefix
func (r *Resolver) locale(segment string) (string, bool) {
	for _, l := range r.opts.Locales {
		if strings.EqualFold(l, segment) {
			return l, true
		}
	}
	return "", false
}

// Capitalize upper-cases the first letter of a raw segment
func Capitalize(segment string) string {
	first, size := utf8.DecodeRuneInString(segment)
	if first == utf8.RuneError {
		return segment
	}
	return string(unicode.ToUpper(first)) + segment[size:]
}
