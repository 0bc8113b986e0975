package auth

import (
	"clinic-service/internal/app/config"
	"clinic-service/internal/app/contracts"
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/utils"
	"context"
	"sync"

	"go.uber.org/zap"
)

type roleGate struct {
	UserRoleRepository contracts.UserRoleRepository
	Policy             *models.RolePolicy
	Bypass             bool
	FailClosed         bool
	Log                *zap.Logger
}

var (
	roleGateInstance contracts.Authorizer
	onceRoleGate     sync.Once
)

// NewRoleGate builds the authorization gate. A fail-closed gate refuses a
// policy that leaves any guarded action without roles.
func NewRoleGate(
	userRoleRepository contracts.UserRoleRepository,
	policy *models.RolePolicy,
	gateConfig config.AppGate,
	logger *zap.Logger,
) (contracts.Authorizer, error) {
	var err error
	onceRoleGate.Do(func() {
		if gateConfig.FailClosed {
			err = ValidateRolePolicy(policy, GuardedActions())
			if err != nil {
				return
			}
		}
		if gateConfig.DisableRolePermissions {
			logger.Warn("roleGate running with role permissions disabled")
		}
		roleGateInstance = &roleGate{
			UserRoleRepository: userRoleRepository,
			Policy:             normalizePolicy(policy),
			Bypass:             gateConfig.DisableRolePermissions,
			FailClosed:         gateConfig.FailClosed,
			Log:                logger,
		}
	})
	if err != nil {
		return nil, err
	}
	return roleGateInstance, nil
}

func (g *roleGate) Authorize(ctx context.Context, session *models.Session, resource, action string) (models.Decision, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	if g.Bypass {
		return models.DecisionAllow, nil
	}

	resourcePolicy := g.Policy.Resources[resource]
	if containsAction(resourcePolicy.Unauthenticated, action) {
		return models.DecisionAllow, nil
	}

	if session == nil || session.UserID == 0 {
		return models.DecisionDenyUnauthenticated, nil
	}

	required := resourcePolicy.Actions[action]
	if len(required) == 0 {
		if g.FailClosed {
			g.logDenied(requestID, session.UserID, resource, action)
			return models.DecisionDenyForbidden, nil
		}
		return models.DecisionAllow, nil
	}

	if containsAction(required, constvars.RoleAnyAuthenticated) {
		return models.DecisionAllow, nil
	}

	roleNames, err := g.UserRoleRepository.FindRoleNamesByUserID(ctx, session.UserID)
	if err != nil {
		g.Log.Error("roleGate.Authorize error loading roles",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int64(constvars.LoggingUserIDKey, session.UserID),
			zap.Error(err),
		)
		return models.DecisionDenyForbidden, err
	}

	for _, roleName := range roleNames {
		if containsAction(required, utils.NormalizeRoleName(roleName)) {
			return models.DecisionAllow, nil
		}
	}

	g.logDenied(requestID, session.UserID, resource, action)
	return models.DecisionDenyForbidden, nil
}

func (g *roleGate) logDenied(requestID string, userID int64, resource, action string) {
	utils.LogSecurityEvent(g.Log, "permission_denied", requestID, "medium",
		zap.Int64(constvars.LoggingUserIDKey, userID),
		zap.String(constvars.LoggingResourceKey, resource),
		zap.String(constvars.LoggingActionKey, action),
	)
}

// normalizePolicy lower-cases and trims every role name.
func normalizePolicy(policy *models.RolePolicy) *models.RolePolicy {
	normalized := &models.RolePolicy{Resources: make(map[string]models.ResourcePolicy, len(policy.Resources))}
	for resource, resourcePolicy := range policy.Resources {
		actions := make(map[string][]string, len(resourcePolicy.Actions))
		for action, roles := range resourcePolicy.Actions {
			names := make([]string, 0, len(roles))
			for _, role := range roles {
				names = append(names, utils.NormalizeRoleName(role))
			}
			actions[action] = names
		}
		normalized.Resources[resource] = models.ResourcePolicy{
			Actions:         actions,
			Unauthenticated: resourcePolicy.Unauthenticated,
		}
	}
	return normalized
}
