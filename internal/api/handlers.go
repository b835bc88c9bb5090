package api

import (
	"net/http"
	"strconv"
	"strings"

	"superadmin/navigation/internal/client"
	"superadmin/navigation/internal/domain"

	"github.com/go-chi/chi/v5"
)

// forwardToken passes the caller's bearer token on to menu API requests
func forwardToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer "); ok && token != "" {
			r = r.WithContext(client.WithToken(r.Context(), token))
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) menuType(r *http.Request) (domain.MenuTypeCode, bool) {
	requested := domain.MenuTypeCode(strings.ToUpper(chi.URLParam(r, "menuType")))
	for _, mt := range s.nav.MenuTypes() {
		if mt == requested {
			return mt, true
		}
	}
	return "", false
}

func (s *Server) handleListMenus(w http.ResponseWriter, r *http.Request) {
	type menuType struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	out := make([]menuType, 0)
	for _, mt := range s.nav.MenuTypes() {
		out = append(out, menuType{Code: mt.String(), Name: mt.DisplayName()})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetMenu(w http.ResponseWriter, r *http.Request) {
	mt, ok := s.menuType(r)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown menu type")
		return
	}

	q := r.URL.Query()
	lang := s.nav.Language(q.Get("lang"))

	if wait, err := strconv.ParseBool(q.Get("wait")); err == nil && !wait {
		respondJSON(w, http.StatusOK, s.nav.PeekMenu(r.Context(), mt, lang))
		return
	}

	includeInactive, _ := strconv.ParseBool(q.Get("includeInactive"))
	respondJSON(w, http.StatusOK, s.nav.Menu(r.Context(), mt, lang, includeInactive))
}

func (s *Server) handleInvalidateMenu(w http.ResponseWriter, r *http.Request) {
	mt, ok := s.menuType(r)
	if !ok {
		respondError(w, http.StatusNotFound, "unknown menu type")
		return
	}

	lang := r.URL.Query().Get("lang")
	if lang != "" {
		lang = s.nav.Language(lang)
	}

	if err := s.nav.RequestInvalidation(r.Context(), mt, lang, r.URL.Query().Get("reason")); err != nil {
		respondError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	respondJSON(w, http.StatusAccepted, map[string]string{"status": "accepted"})
}

func (s *Server) handleGetRoutes(w http.ResponseWriter, r *http.Request) {
	lang := s.nav.Language(r.URL.Query().Get("lang"))
	respondJSON(w, http.StatusOK, s.nav.RouteTable(r.Context(), lang))
}

func (s *Server) handleGetBreadcrumbs(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	if path == "" {
		respondError(w, http.StatusBadRequest, "path is required")
		return
	}
	respondJSON(w, http.StatusOK, s.nav.Breadcrumbs(r.Context(), path))
}
