package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"superadmin/navigation/internal/client"
	"superadmin/navigation/internal/domain"
)

type fakeNavigation struct {
	lastMenuType    domain.MenuTypeCode
	lastLang        string
	includeInactive bool
	peeked          bool
	token           string
	invalidated     []string
}

func (f *fakeNavigation) Language(lang string) string {
	if lang == "en" {
		return "en"
	}
	return "es"
}

func (f *fakeNavigation) MenuTypes() []domain.MenuTypeCode {
	return []domain.MenuTypeCode{domain.MenuTypeMain, domain.MenuTypeUser}
}

func (f *fakeNavigation) Menu(ctx context.Context, menuType domain.MenuTypeCode, lang string, includeInactive bool) domain.MenuState {
	f.lastMenuType, f.lastLang, f.includeInactive = menuType, lang, includeInactive
	f.token, _ = client.NewContextTokenProvider(client.NewStaticTokenProvider("")).Token(ctx)
	return domain.MenuState{Items: []domain.NavigationItem{{Name: "Dashboard", Href: "/dashboard", Icon: domain.IconDashboard}}}
}

func (f *fakeNavigation) PeekMenu(_ context.Context, menuType domain.MenuTypeCode, lang string) domain.MenuState {
	f.peeked = true
	f.lastMenuType, f.lastLang = menuType, lang
	return domain.MenuState{Items: []domain.NavigationItem{}, IsLoading: true}
}

func (f *fakeNavigation) RouteTable(context.Context, string) domain.RouteTable {
	return domain.RouteTable{"dashboard": {Key: "dashboard", Href: "/dashboard", SourceMenuType: "MAIN_MENU"}}
}

func (f *fakeNavigation) Breadcrumbs(_ context.Context, pathname string) []domain.BreadcrumbItem {
	return []domain.BreadcrumbItem{{Name: "Inicio", Href: "/dashboard"}, {Name: pathname, Current: true}}
}

func (f *fakeNavigation) RequestInvalidation(_ context.Context, menuType domain.MenuTypeCode, lang, reason string) error {
	f.invalidated = append(f.invalidated, menuType.String()+":"+lang+":"+reason)
	return nil
}

func serve(t *testing.T, s *Server, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestGetMenu(t *testing.T) {
	nav := &fakeNavigation{}
	s := New(nav, []string{"*"})

	rec := serve(t, s, http.MethodGet, "/api/menus/main_menu?lang=en&includeInactive=true", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var st domain.MenuState
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	require.Len(t, st.Items, 1)
	assert.Equal(t, "/dashboard", st.Items[0].Href)

	assert.Equal(t, domain.MenuTypeMain, nav.lastMenuType)
	assert.Equal(t, "en", nav.lastLang)
	assert.True(t, nav.includeInactive)
	assert.False(t, nav.peeked)
}

func TestGetMenuWithoutWaitingPeeks(t *testing.T) {
	nav := &fakeNavigation{}
	s := New(nav, []string{"*"})

	rec := serve(t, s, http.MethodGet, "/api/menus/USER_MENU?wait=false", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, nav.peeked)
	assert.Contains(t, rec.Body.String(), `"is_loading":true`)
}

func TestGetMenuUnknownType(t *testing.T) {
	s := New(&fakeNavigation{}, []string{"*"})

	rec := serve(t, s, http.MethodGet, "/api/menus/FOOTER_MENU", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown menu type")
}

func TestGetMenuForwardsBearerToken(t *testing.T) {
	nav := &fakeNavigation{}
	s := New(nav, []string{"*"})

	serve(t, s, http.MethodGet, "/api/menus/MAIN_MENU", http.Header{"Authorization": {"Bearer abc123"}})
	assert.Equal(t, "abc123", nav.token)
}

func TestListMenus(t *testing.T) {
	s := New(&fakeNavigation{}, []string{"*"})

	rec := serve(t, s, http.MethodGet, "/api/menus", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"code":"MAIN_MENU"`)
	assert.Contains(t, rec.Body.String(), `"code":"USER_MENU"`)
}

func TestGetRoutes(t *testing.T) {
	s := New(&fakeNavigation{}, []string{"*"})

	rec := serve(t, s, http.MethodGet, "/api/routes?lang=es", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var table domain.RouteTable
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &table))
	assert.Equal(t, "MAIN_MENU", table["dashboard"].SourceMenuType)
}

func TestGetBreadcrumbs(t *testing.T) {
	s := New(&fakeNavigation{}, []string{"*"})

	rec := serve(t, s, http.MethodGet, "/api/breadcrumbs?path=/es/catalogos", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var items []domain.BreadcrumbItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 2)
	assert.True(t, items[1].Current)

	rec = serve(t, s, http.MethodGet, "/api/breadcrumbs", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestInvalidateMenu(t *testing.T) {
	nav := &fakeNavigation{}
	s := New(nav, []string{"*"})

	rec := serve(t, s, http.MethodPost, "/api/menus/MAIN_MENU/invalidate?lang=en&reason=edited", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	rec = serve(t, s, http.MethodPost, "/api/menus/MAIN_MENU/invalidate", nil)
	assert.Equal(t, http.StatusAccepted, rec.Code)

	assert.Equal(t, []string{"MAIN_MENU:en:edited", "MAIN_MENU::"}, nav.invalidated)
}

func TestHealth(t *testing.T) {
	s := New(&fakeNavigation{}, []string{"*"})

	rec := serve(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "OK"))
}
