package services

import (
	"context"
	"sync"
	"testing"

	"cuebook-api/fixtures"
	"cuebook-api/packages/core/membership"
	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/store"
)

func fixtureReader(t *testing.T) *store.FixtureStore {
	t.Helper()
	s, err := store.NewFixtureStore(context.Background(), fixtures.Source(""))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type memberKey struct{ user, group string }

// memoryMembers keeps memberships in a map. beforeSet, when set, runs inside
// CompareAndSetStatus before the stored status is compared.
type memoryMembers struct {
	mu        sync.Mutex
	rows      map[memberKey]membership.Status
	order     []memberKey
	beforeSet func()
}

func newMemoryMembers() *memoryMembers {
	return &memoryMembers{rows: make(map[memberKey]membership.Status)}
}

func (m *memoryMembers) GetStatus(ctx context.Context, userID, groupID string) (membership.Status, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.rows[memberKey{userID, groupID}]; ok {
		return s, nil
	}
	return membership.StatusIdle, nil
}

func (m *memoryMembers) set(userID, groupID string, s membership.Status) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := memberKey{userID, groupID}
	if _, ok := m.rows[k]; !ok {
		m.order = append(m.order, k)
	}
	m.rows[k] = s
}

func (m *memoryMembers) CompareAndSetStatus(ctx context.Context, userID, groupID string, from, to membership.Status) error {
	if m.beforeSet != nil {
		m.beforeSet()
	}
	current, _ := m.GetStatus(ctx, userID, groupID)
	if current != from {
		return store.ErrConcurrentUpdate
	}
	m.set(userID, groupID, to)
	return nil
}

func (m *memoryMembers) ListMembers(ctx context.Context, groupID string, statuses ...membership.Status) ([]models.GroupMember, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.GroupMember
	for _, k := range m.order {
		s := m.rows[k]
		if k.group != groupID || s == membership.StatusIdle {
			continue
		}
		out = append(out, models.GroupMember{UserID: k.user, GroupID: k.group, Status: string(s)})
	}
	return out, nil
}

type memoryGroups struct {
	groups  map[string]*models.LedgerGroup
	members *memoryMembers
}

func (g *memoryGroups) CreateGroup(ctx context.Context, group *models.LedgerGroup) error {
	g.groups[group.ID] = group
	g.members.set(group.OwnerID, group.ID, membership.StatusActive)
	return nil
}

func (g *memoryGroups) GetGroup(ctx context.Context, id string) (*models.LedgerGroup, error) {
	group, ok := g.groups[id]
	if !ok {
		return nil, store.ErrGroupNotFound
	}
	return group, nil
}

func newLedger() (*memoryGroups, *memoryMembers) {
	members := newMemoryMembers()
	return &memoryGroups{groups: make(map[string]*models.LedgerGroup), members: members}, members
}
