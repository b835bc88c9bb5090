package fallback

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"superadmin/navigation/internal/domain"
)

type stubSnapshots struct {
	items []domain.NavigationItem
	err   error
	calls int
}

func (s *stubSnapshots) LoadSnapshot(_ context.Context, _ domain.MenuQuery) ([]domain.NavigationItem, error) {
	s.calls++
	return s.items, s.err
}

var mainQuery = domain.MenuQuery{MenuType: domain.MenuTypeMain, LanguageCode: "es"}

func TestPolicyProductionReturnsEmpty(t *testing.T) {
	snapshots := &stubSnapshots{items: []domain.NavigationItem{{Name: "Stale", Href: "/stale"}}}
	p := Policy{UseFallback: true, Development: false, Snapshots: snapshots}

	items := p.Navigation(context.Background(), mainQuery)
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.Zero(t, snapshots.calls)
}

func TestPolicyDisabledReturnsEmpty(t *testing.T) {
	p := Policy{UseFallback: false, Development: true}
	assert.Empty(t, p.Navigation(context.Background(), mainQuery))
}

func TestPolicyDevelopmentUsesMock(t *testing.T) {
	p := Policy{UseFallback: true, Development: true}

	items := p.Navigation(context.Background(), mainQuery)
	assert.Equal(t, MainMenuMock, items)

	items[0].Name = "changed"
	assert.Equal(t, "Dashboard", MainMenuMock[0].Name)
}

func TestPolicyDevelopmentPrefersSnapshot(t *testing.T) {
	snapshot := []domain.NavigationItem{{Name: "Catálogos", Href: "/catalogos"}}
	p := Policy{UseFallback: true, Development: true, Snapshots: &stubSnapshots{items: snapshot}}

	assert.Equal(t, snapshot, p.Navigation(context.Background(), mainQuery))
}

func TestPolicyPrincipalQuerySkipsSnapshot(t *testing.T) {
	snapshots := &stubSnapshots{items: []domain.NavigationItem{{Name: "Catálogos", Href: "/catalogos"}}}
	p := Policy{UseFallback: true, Development: true, Snapshots: snapshots}

	q := mainQuery
	q.Principal = "ab12"
	assert.Equal(t, MainMenuMock, p.Navigation(context.Background(), q))
	assert.Zero(t, snapshots.calls)
}

func TestPolicySnapshotErrorFallsBackToMock(t *testing.T) {
	p := Policy{UseFallback: true, Development: true, Snapshots: &stubSnapshots{err: errors.New("db down")}}

	assert.Equal(t, UserMenuMock, p.Navigation(context.Background(), domain.MenuQuery{MenuType: domain.MenuTypeUser}))
}

func TestMockUnknownMenuType(t *testing.T) {
	items := Mock(domain.MenuTypeCode("OTHER"))
	assert.NotNil(t, items)
	assert.Empty(t, items)
	assert.NotEmpty(t, StaticNavigation())
}
