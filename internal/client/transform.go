package client

import (
	"fmt"
	"strings"

	"superadmin/navigation/internal/domain"

	"github.com/PuerkitoBio/goquery"
	log "github.com/sirupsen/logrus"
)

const maxMenuDepth = 16

// ToNavigationItems converts menu API nodes into navigation items. Names may
// arrive with HTML markup from the admin editor; it is reduced to plain text.
// A node with neither name nor url, or a tree deeper than maxMenuDepth, is
// reported as ErrInvalidPayload.
func ToNavigationItems(nodes []domain.MenuItemAPIResponse) ([]domain.NavigationItem, error) {
	return transformLevel(nodes, 1)
}

func transformLevel(nodes []domain.MenuItemAPIResponse, depth int) ([]domain.NavigationItem, error) {
	if depth > maxMenuDepth {
		return nil, fmt.Errorf("%w: menu deeper than %d levels", ErrInvalidPayload, maxMenuDepth)
	}

	items := make([]domain.NavigationItem, 0, len(nodes))
	for _, node := range nodes {
		name := plainText(node.Name)
		if name == "" {
			name = plainText(node.Description)
		}
		if name == "" && strings.TrimSpace(node.URL) == "" {
			return nil, fmt.Errorf("%w: node %q has neither name nor url", ErrInvalidPayload, node.GlobalUniqueID)
		}

		icon, known := domain.ParseIcon(node.Icon)
		if !known && node.Icon != "" {
			log.Debugf("Unknown icon %q on menu node %s, using default", node.Icon, node.GlobalUniqueID)
		}

		item := domain.NavigationItem{
			Name: name,
			Href: normalizeHref(node.URL),
			Icon: icon,
		}

		if len(node.Children) > 0 {
			children, err := transformLevel(node.Children, depth+1)
			if err != nil {
				return nil, err
			}
			item.Children = children
		}

		items = append(items, item)
	}
	return items, nil
}

func plainText(s string) string {
	s = strings.TrimSpace(s)
	if !strings.ContainsAny(s, "<&") {
		return s
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		log.Warnf("Failed to parse menu label markup %q: %v", s, err)
		return s
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func normalizeHref(url string) string {
	url = strings.TrimSpace(url)
	if url == "" || strings.Contains(url, "://") || strings.HasPrefix(url, "/") {
		return url
	}
	return "/" + url
}
