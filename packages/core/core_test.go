package core

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"cuebook-api/fixtures"
	"cuebook-api/packages/auth"
	authModels "cuebook-api/packages/auth/models"
	authUtils "cuebook-api/packages/auth/utils"
	"cuebook-api/packages/core/membership"
	"cuebook-api/packages/core/models"
	"cuebook-api/packages/core/standings"
	"cuebook-api/packages/core/store"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

type ledger struct {
	mu      sync.Mutex
	groups  map[string]*models.LedgerGroup
	status  map[[2]string]membership.Status
	members []models.GroupMember
}

func newLedger() *ledger {
	return &ledger{
		groups: make(map[string]*models.LedgerGroup),
		status: make(map[[2]string]membership.Status),
	}
}

func (l *ledger) CreateGroup(ctx context.Context, g *models.LedgerGroup) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.groups[g.ID] = g
	l.status[[2]string{g.OwnerID, g.ID}] = membership.StatusActive
	return nil
}

func (l *ledger) GetGroup(ctx context.Context, id string) (*models.LedgerGroup, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if g, ok := l.groups[id]; ok {
		return g, nil
	}
	return nil, store.ErrGroupNotFound
}

func (l *ledger) GetStatus(ctx context.Context, userID, groupID string) (membership.Status, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if s, ok := l.status[[2]string{userID, groupID}]; ok {
		return s, nil
	}
	return membership.StatusIdle, nil
}

func (l *ledger) CompareAndSetStatus(ctx context.Context, userID, groupID string, from, to membership.Status) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	k := [2]string{userID, groupID}
	current, ok := l.status[k]
	if !ok {
		current = membership.StatusIdle
	}
	if current != from {
		return store.ErrConcurrentUpdate
	}
	l.status[k] = to
	return nil
}

func (l *ledger) ListMembers(ctx context.Context, groupID string, statuses ...membership.Status) ([]models.GroupMember, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var out []models.GroupMember
	for k, s := range l.status {
		if k[1] == groupID && s != membership.StatusIdle {
			out = append(out, models.GroupMember{UserID: k[0], GroupID: k[1], Status: string(s)})
		}
	}
	return out, nil
}

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	reader, err := store.NewFixtureStore(context.Background(), fixtures.Source(""))
	if err != nil {
		t.Fatal(err)
	}
	l := newLedger()
	m := NewModule(reader, l, l, Options{Policy: standings.DefaultPolicy(), PreviousRankWindow: 1})

	r := gin.New()
	m.SetupRoutes(r, auth.NewModule(testSecret))
	return r
}

func bearer(t *testing.T, userID string, roles ...string) string {
	t.Helper()
	tok, err := authUtils.GenerateToken(testSecret, userID, roles, time.Minute)
	if err != nil {
		t.Fatal(err)
	}
	return "Bearer " + tok
}

func do(r *gin.Engine, method, path, authHeader string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPublicRoutes(t *testing.T) {
	r := testRouter(t)

	cases := []struct {
		path string
		code int
	}{
		{"/tournaments", http.StatusOK},
		{"/tournaments?page=0", http.StatusBadRequest},
		{"/tournaments/spring-cup-2026", http.StatusOK},
		{"/tournaments/unknown", http.StatusNotFound},
		{"/tournaments/autumn-open-2026/standings", http.StatusOK},
		{"/tournaments/autumn-open-2026/bracket", http.StatusOK},
		{"/tournaments/autumn-open-2026/qualifiers", http.StatusOK},
		{"/players?pageSize=500", http.StatusOK},
		{"/players/p01", http.StatusOK},
		{"/players/p99", http.StatusNotFound},
		{"/players/p01/elo-history", http.StatusOK},
		{"/players/p01/achievements", http.StatusOK},
		{"/stats", http.StatusOK},
	}
	for _, tc := range cases {
		if w := do(r, http.MethodGet, tc.path, "", nil); w.Code != tc.code {
			t.Errorf("GET %s = %d, want %d: %s", tc.path, w.Code, tc.code, w.Body.String())
		}
	}
}

func TestBracketResponse(t *testing.T) {
	r := testRouter(t)

	w := do(r, http.MethodGet, "/tournaments/spring-cup-2026/bracket", "", nil)
	var body struct {
		Champion string `json:"champion"`
		RunnerUp string `json:"runner_up"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body.Champion != "p01" || body.RunnerUp != "p02" {
		t.Errorf("champion %q runner-up %q", body.Champion, body.RunnerUp)
	}
}

func TestGroupMembershipFlow(t *testing.T) {
	r := testRouter(t)
	owner, ann := bearer(t, "owner"), bearer(t, "ann")

	if w := do(r, http.MethodPost, "/groups", "", map[string]string{"name": "Flat"}); w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/groups", owner, map[string]string{}); w.Code != http.StatusBadRequest {
		t.Fatalf("create without name = %d", w.Code)
	}

	w := do(r, http.MethodPost, "/groups", owner, map[string]string{"name": "Flat"})
	if w.Code != http.StatusCreated {
		t.Fatalf("create = %d: %s", w.Code, w.Body.String())
	}
	var group models.LedgerGroup
	if err := json.Unmarshal(w.Body.Bytes(), &group); err != nil {
		t.Fatal(err)
	}
	actions := "/groups/" + group.ID + "/members/ann/actions"

	steps := []struct {
		auth, action string
		code         int
	}{
		{ann, "DANCE", http.StatusBadRequest},
		{ann, "ACCEPT_INVITE", http.StatusConflict},
		{owner, "REQUEST", http.StatusForbidden},
		{ann, "REQUEST", http.StatusOK},
		{ann, "REQUEST", http.StatusConflict},
		{owner, "ACCEPT_REQUEST", http.StatusOK},
		{ann, "LEAVE", http.StatusOK},
	}
	for _, s := range steps {
		w := do(r, http.MethodPost, actions, s.auth, map[string]string{"action": s.action})
		if w.Code != s.code {
			t.Errorf("%s = %d, want %d: %s", s.action, w.Code, s.code, w.Body.String())
		}
	}

	if w := do(r, http.MethodPost, "/groups/missing/members/ann/actions", ann, map[string]string{"action": "REQUEST"}); w.Code != http.StatusNotFound {
		t.Errorf("unknown group = %d", w.Code)
	}

	w = do(r, http.MethodGet, "/groups/"+group.ID+"/members", owner, nil)
	var members []models.GroupMember
	if err := json.Unmarshal(w.Body.Bytes(), &members); err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 || members[0].UserID != "owner" {
		t.Errorf("members = %+v", members)
	}
}

func TestFixtureReloadNeedsAdmin(t *testing.T) {
	r := testRouter(t)

	if w := do(r, http.MethodPost, "/admin/fixtures/reload", bearer(t, "ann"), nil); w.Code != http.StatusForbidden {
		t.Errorf("user reload = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/admin/fixtures/reload", bearer(t, "root", authModels.RoleAdmin), nil); w.Code != http.StatusOK {
		t.Errorf("admin reload = %d: %s", w.Code, w.Body.String())
	}
}
