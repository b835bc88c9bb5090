// Package i18n resolves route and breadcrumb labels for the supported locales.
package i18n

import (
	"strings"
)

const (
	KeyHome         = "breadcrumbs.home"
	KeyDynamicRoute = "breadcrumbs.dynamic_route"
)

// Translator looks up a message for a locale. ok is false when the key is unknown.
type Translator interface {
	T(locale, key string) (string, bool)
	DynamicRoute(locale, parent, id string) string
}

type Messages map[string]map[string]string

type dictionary struct {
	messages        Messages
	defaultLanguage string
}

// NewTranslator builds a translator over the built-in messages, with overrides
// merged on top per locale.
func NewTranslator(defaultLanguage string, overrides Messages) Translator {
	messages := make(Messages, len(builtin))
	for locale, entries := range builtin {
		messages[locale] = make(map[string]string, len(entries))
		for k, v := range entries {
			messages[locale][k] = v
		}
	}
	for locale, entries := range overrides {
		if messages[locale] == nil {
			messages[locale] = make(map[string]string, len(entries))
		}
		for k, v := range entries {
			messages[locale][k] = v
		}
	}
	return &dictionary{messages: messages, defaultLanguage: defaultLanguage}
}

func (d *dictionary) T(locale, key string) (string, bool) {
	if msg, ok := d.messages[locale][key]; ok {
		return msg, true
	}
	if msg, ok := d.messages[d.defaultLanguage][key]; ok {
		return msg, true
	}
	return "", false
}

// DynamicRoute renders the dynamic route template, e.g. "Catálogos #42"
func (d *dictionary) DynamicRoute(locale, parent, id string) string {
	template, ok := d.T(locale, KeyDynamicRoute)
	if !ok {
		template = "{parent} #{id}"
	}
	return strings.TrimSpace(strings.NewReplacer("{parent}", parent, "{id}", id).Replace(template))
}

var builtin = Messages{
	"es": {
		KeyHome:                    "Inicio",
		KeyDynamicRoute:            "{parent} #{id}",
		"navigation.dashboard":     "Panel",
		"navigation.catalogos":     "Catálogos",
		"navigation.usuarios":      "Usuarios",
		"navigation.roles":         "Roles",
		"navigation.perfil":        "Perfil",
		"navigation.proyectos":     "Proyectos",
		"navigation.reportes":      "Reportes",
		"navigation.configuracion": "Configuración",
	},
	"en": {
		KeyHome:                    "Home",
		KeyDynamicRoute:            "{parent} #{id}",
		"navigation.dashboard":     "Dashboard",
		"navigation.catalogos":     "Catalogs",
		"navigation.usuarios":      "Users",
		"navigation.roles":         "Roles",
		"navigation.perfil":        "Profile",
		"navigation.proyectos":     "Projects",
		"navigation.reportes":      "Reports",
		"navigation.configuracion": "Settings",
	},
}
