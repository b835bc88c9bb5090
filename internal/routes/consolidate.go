package routes

import (
	"strings"

	"superadmin/navigation/internal/domain"
)

// ConsolidateRouteConfigs merges route tables from several menu types.
//
// The first table to contribute a top-level key keeps its metadata; later
// tables only add children and their menu type to SourceMenuType. Below the
// top level, colliding childless leaves are replaced by the later one.
// Inputs are never modified.
func ConsolidateRouteConfigs(sources []domain.SourcedRouteTable) domain.RouteTable {
	out := domain.RouteTable{}
	for _, source := range sources {
		for _, key := range source.RouteConfig.Keys() {
			incoming := source.RouteConfig[key]
			provenance := source.MenuType.String()
			if provenance == "" {
				provenance = incoming.SourceMenuType
			}

			existing, ok := out[key]
			if !ok {
				node := incoming.Clone()
				node.SourceMenuType = appendProvenance(incoming.SourceMenuType, provenance)
				out[key] = node
				continue
			}
			out[key] = mergeNode(existing, incoming, provenance)
		}
	}
	return out
}

func mergeNode(existing, incoming *domain.RouteConfigNode, provenance string) *domain.RouteConfigNode {
	merged := *existing
	if existing.Placeholder() && !incoming.Placeholder() {
		merged.Label = incoming.Label
		merged.Href = incoming.Href
		merged.Icon = incoming.Icon
	}
	merged.SourceMenuType = appendProvenance(existing.SourceMenuType, provenance)
	merged.Children = mergeChildren(existing.Children, incoming.Children)
	return &merged
}

func mergeChildren(existing, incoming domain.RouteTable) domain.RouteTable {
	if len(existing) == 0 && len(incoming) == 0 {
		return nil
	}

	out := existing.Clone()
	if out == nil {
		out = domain.RouteTable{}
	}
	for _, key := range incoming.Keys() {
		in := incoming[key]
		current, ok := out[key]
		switch {
		case !ok:
			out[key] = in.Clone()
		case len(current.Children) == 0 && len(in.Children) == 0:
			out[key] = in.Clone()
		default:
			out[key] = mergeNode(current, in, in.SourceMenuType)
		}
	}
	return out
}

func appendProvenance(current, add string) string {
	for _, part := range strings.Split(add, ",") {
		if part == "" || containsPart(current, part) {
			continue
		}
		if current == "" {
			current = part
		} else {
			current += "," + part
		}
	}
	return current
}

func containsPart(list, part string) bool {
	for _, p := range strings.Split(list, ",") {
		if p == part {
			return true
		}
	}
	return false
}
