package auth

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/app/services/memstore"
	"clinic-service/internal/pkg/constvars"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGate(t *testing.T, policy *models.RolePolicy, failClosed, bypass bool) (*roleGate, *memstore.Store) {
	t.Helper()
	store := memstore.New()
	return &roleGate{
		UserRoleRepository: store.UserRoles(),
		Policy:             normalizePolicy(policy),
		Bypass:             bypass,
		FailClosed:         failClosed,
		Log:                zap.NewNop(),
	}, store
}

func userWithRole(t *testing.T, store *memstore.Store, roleName string) *models.Session {
	t.Helper()
	ctx := context.Background()
	existing, err := store.Users().FindAll(ctx, "")
	require.NoError(t, err)
	username := fmt.Sprintf("user%d", len(existing)+1)
	user := &models.User{Username: username, Email: username + "@clinic.test", Status: constvars.UserStatusActive}
	require.NoError(t, store.Users().Create(ctx, user))
	if roleName != "" {
		role, err := store.Roles().FindByName(ctx, roleName)
		require.NoError(t, err)
		if role == nil {
			role = &models.Role{Name: roleName}
			require.NoError(t, store.Roles().Create(ctx, role))
		}
		require.NoError(t, store.UserRoles().Create(ctx, &models.UserRole{UserID: user.ID, RoleID: role.ID}))
	}
	return &models.Session{SessionID: "sid", UserID: user.ID}
}

func TestAuthorizeDefaultPolicy(t *testing.T) {
	gate, store := newGate(t, DefaultRolePolicy(), false, false)
	ctx := context.Background()
	receptionist := userWithRole(t, store, " Receptionist ")
	practitioner := userWithRole(t, store, "practitioner")
	nobody := userWithRole(t, store, "")

	cases := []struct {
		name     string
		session  *models.Session
		resource string
		action   string
		want     models.Decision
	}{
		{"login needs no session", nil, constvars.ResourceUsers, constvars.ActionLogin, models.DecisionAllow},
		{"anonymous list patients", nil, constvars.ResourcePatients, constvars.ActionList, models.DecisionDenyUnauthenticated},
		{"receptionist role matched after trim", receptionist, constvars.ResourcePatients, constvars.ActionCreate, models.DecisionAllow},
		{"receptionist cannot delete appointments", receptionist, constvars.ResourceAppointments, constvars.ActionDelete, models.DecisionDenyForbidden},
		{"practitioner writes clinical records", practitioner, constvars.ResourceClinicalRecords, constvars.ActionPartialUpdate, models.DecisionAllow},
		{"practitioner cannot request appointments", practitioner, constvars.ResourceAppointments, constvars.ActionRequest, models.DecisionDenyForbidden},
		{"roleless user lists practitioners", nobody, constvars.ResourcePractitioners, constvars.ActionList, models.DecisionAllow},
		{"roleless user changes own password", nobody, constvars.ResourceUsers, constvars.ActionChangePassword, models.DecisionAllow},
		{"roleless user reads audit", nobody, constvars.ResourceAudit, constvars.ActionList, models.DecisionDenyForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			decision, err := gate.Authorize(ctx, tc.session, tc.resource, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.want, decision)
		})
	}
}

func TestAuthorizeUnmappedAction(t *testing.T) {
	policy := &models.RolePolicy{Resources: map[string]models.ResourcePolicy{
		"widgets": {Actions: map[string][]string{"create": {"Admin"}}},
	}}
	ctx := context.Background()

	open, store := newGate(t, policy, false, false)
	session := userWithRole(t, store, "")
	decision, err := open.Authorize(ctx, session, "widgets", "list")
	require.NoError(t, err)
	assert.Equal(t, models.DecisionAllow, decision)

	closed, store := newGate(t, policy, true, false)
	session = userWithRole(t, store, "")
	decision, err = closed.Authorize(ctx, session, "widgets", "list")
	require.NoError(t, err)
	assert.Equal(t, models.DecisionDenyForbidden, decision)

	admin := userWithRole(t, store, "admin")
	decision, err = closed.Authorize(ctx, admin, "widgets", "create")
	require.NoError(t, err)
	assert.Equal(t, models.DecisionAllow, decision, "policy role names are normalized")
}

func TestAuthorizeBypass(t *testing.T) {
	gate, _ := newGate(t, DefaultRolePolicy(), true, true)
	decision, err := gate.Authorize(context.Background(), nil, constvars.ResourceAudit, constvars.ActionList)
	require.NoError(t, err)
	assert.Equal(t, models.DecisionAllow, decision)
}

func TestDefaultPolicyIsExhaustive(t *testing.T) {
	assert.NoError(t, ValidateRolePolicy(DefaultRolePolicy(), GuardedActions()))

	partial := DefaultRolePolicy()
	delete(partial.Resources, constvars.ResourceAudit)
	err := ValidateRolePolicy(partial, GuardedActions())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "audit.list")
}

func TestLoadRolePolicy(t *testing.T) {
	policy, err := LoadRolePolicy("")
	require.NoError(t, err)
	assert.Contains(t, policy.Resources, constvars.ResourcePatients)

	path := filepath.Join(t.TempDir(), "policy.yaml")
	content := `
resources:
  patients:
    actions:
      list: [admin]
  users:
    unauthenticated: [login]
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	policy, err = LoadRolePolicy(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"admin"}, policy.Resources[constvars.ResourcePatients].Actions[constvars.ActionList])
	assert.Equal(t, []string{"login"}, policy.Resources[constvars.ResourceUsers].Unauthenticated)

	empty := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(empty, []byte("resources: {}\n"), 0o600))
	_, err = LoadRolePolicy(empty)
	assert.Error(t, err)

	_, err = LoadRolePolicy(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
