package auth

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

var crudActions = []string{
	constvars.ActionList,
	constvars.ActionRetrieve,
	constvars.ActionCreate,
	constvars.ActionUpdate,
	constvars.ActionPartialUpdate,
	constvars.ActionDelete,
}

// GuardedActions lists every (resource, action) pair the router registers.
func GuardedActions() map[string][]string {
	return map[string][]string{
		constvars.ResourcePatients:        append([]string{constvars.ActionHistory}, crudActions...),
		constvars.ResourceClinicalRecords: crudActions,
		constvars.ResourceClinicalFiles:   crudActions,
		constvars.ResourcePractitioners:   crudActions,
		constvars.ResourceAvailabilities:  crudActions,
		constvars.ResourceAppointments:    append([]string{constvars.ActionRequest, constvars.ActionCancel}, crudActions...),
		constvars.ResourceRoles:           crudActions,
		constvars.ResourceUserRoles:       crudActions,
		constvars.ResourceUsers: append([]string{
			constvars.ActionLogin,
			constvars.ActionLogout,
			constvars.ActionMe,
			constvars.ActionReceptionists,
			constvars.ActionCreateReceptionist,
			constvars.ActionChangePassword,
		}, crudActions...),
		constvars.ResourceAudit: {constvars.ActionList},
	}
}

// DefaultRolePolicy is the built-in policy. It covers every guarded action so
// it also passes fail-closed validation.
func DefaultRolePolicy() *models.RolePolicy {
	staff := []string{constvars.RoleAdmin, constvars.RoleReceptionist, constvars.RolePractitioner}
	frontDesk := []string{constvars.RoleAdmin, constvars.RoleReceptionist}
	clinical := []string{constvars.RoleAdmin, constvars.RolePractitioner}
	admin := []string{constvars.RoleAdmin}
	anyone := []string{constvars.RoleAnyAuthenticated}

	return &models.RolePolicy{Resources: map[string]models.ResourcePolicy{
		constvars.ResourcePatients: {Actions: map[string][]string{
			constvars.ActionList:          staff,
			constvars.ActionRetrieve:      staff,
			constvars.ActionHistory:       staff,
			constvars.ActionCreate:        frontDesk,
			constvars.ActionUpdate:        frontDesk,
			constvars.ActionPartialUpdate: frontDesk,
			constvars.ActionDelete:        frontDesk,
		}},
		constvars.ResourceClinicalRecords: {Actions: clinicalActions(staff, clinical)},
		constvars.ResourceClinicalFiles:   {Actions: clinicalActions(staff, clinical)},
		constvars.ResourcePractitioners: {Actions: map[string][]string{
			constvars.ActionList:          anyone,
			constvars.ActionRetrieve:      anyone,
			constvars.ActionCreate:        admin,
			constvars.ActionUpdate:        admin,
			constvars.ActionPartialUpdate: admin,
			constvars.ActionDelete:        admin,
		}},
		constvars.ResourceAvailabilities: {Actions: map[string][]string{
			constvars.ActionList:          anyone,
			constvars.ActionRetrieve:      anyone,
			constvars.ActionCreate:        staff,
			constvars.ActionUpdate:        staff,
			constvars.ActionPartialUpdate: staff,
			constvars.ActionDelete:        staff,
		}},
		constvars.ResourceAppointments: {Actions: map[string][]string{
			constvars.ActionList:          anyone,
			constvars.ActionRetrieve:      anyone,
			constvars.ActionRequest:       frontDesk,
			constvars.ActionCancel:        frontDesk,
			constvars.ActionCreate:        frontDesk,
			constvars.ActionUpdate:        frontDesk,
			constvars.ActionPartialUpdate: frontDesk,
			constvars.ActionDelete:        admin,
		}},
		constvars.ResourceRoles:     {Actions: allActions(crudActions, admin)},
		constvars.ResourceUserRoles: {Actions: allActions(crudActions, admin)},
		constvars.ResourceUsers: {
			Actions: withAction(allActions(append([]string{
				constvars.ActionReceptionists,
				constvars.ActionCreateReceptionist,
			}, crudActions...), admin), constvars.ActionChangePassword, anyone),
			Unauthenticated: []string{constvars.ActionLogin, constvars.ActionLogout, constvars.ActionMe},
		},
		constvars.ResourceAudit: {Actions: map[string][]string{
			constvars.ActionList: admin,
		}},
	}}
}

func clinicalActions(readers, writers []string) map[string][]string {
	return map[string][]string{
		constvars.ActionList:          readers,
		constvars.ActionRetrieve:      readers,
		constvars.ActionCreate:        writers,
		constvars.ActionUpdate:        writers,
		constvars.ActionPartialUpdate: writers,
		constvars.ActionDelete:        writers,
	}
}

func allActions(actions []string, roles []string) map[string][]string {
	result := make(map[string][]string, len(actions))
	for _, action := range actions {
		result[action] = roles
	}
	return result
}

func withAction(actions map[string][]string, action string, roles []string) map[string][]string {
	actions[action] = roles
	return actions
}

// LoadRolePolicy reads a YAML policy file. An empty path yields the default policy.
func LoadRolePolicy(path string) (*models.RolePolicy, error) {
	if path == "" {
		return DefaultRolePolicy(), nil
	}

	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read role policy %s: %w", path, err)
	}

	policy := new(models.RolePolicy)
	if err := yaml.Unmarshal(content, policy); err != nil {
		return nil, fmt.Errorf("parse role policy %s: %w", path, err)
	}
	if len(policy.Resources) == 0 {
		return nil, errors.New("role policy defines no resources")
	}
	return policy, nil
}

// ValidateRolePolicy reports every guarded action that has neither required
// roles nor an unauthenticated entry. Fail-closed gates refuse to start on it.
func ValidateRolePolicy(policy *models.RolePolicy, guarded map[string][]string) error {
	var missing []string
	for resource, actions := range guarded {
		resourcePolicy := policy.Resources[resource]
		for _, action := range actions {
			if containsAction(resourcePolicy.Unauthenticated, action) {
				continue
			}
			if len(resourcePolicy.Actions[action]) == 0 {
				missing = append(missing, resource+"."+action)
			}
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)
	return fmt.Errorf("role policy has no roles for: %s", strings.Join(missing, ", "))
}

func containsAction(actions []string, action string) bool {
	for _, candidate := range actions {
		if candidate == action {
			return true
		}
	}
	return false
}
