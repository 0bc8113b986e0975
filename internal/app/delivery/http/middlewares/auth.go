package middlewares

import (
	"clinic-service/internal/app/models"
	"clinic-service/internal/pkg/constvars"
	"clinic-service/internal/pkg/exceptions"
	"clinic-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// Authorize guards a route with the role gate for the given resource action.
func (m *Middlewares) Authorize(resource, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session := utils.GetSession(r.Context())

			decision, err := m.Authorizer.Authorize(r.Context(), session, resource, action)
			if err != nil {
				utils.BuildErrorResponse(m.Log, w, err)
				return
			}

			switch decision {
			case models.DecisionAllow:
				next.ServeHTTP(w, r)
			case models.DecisionDenyUnauthenticated:
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotAuthenticated(nil))
			default:
				requestID, _ := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
				m.Log.Info("Middlewares.Authorize denied",
					zap.String(constvars.LoggingRequestIDKey, requestID),
					zap.String(constvars.LoggingResourceKey, resource),
					zap.String(constvars.LoggingActionKey, action),
					zap.String(constvars.LoggingDecisionKey, decision.String()),
				)
				utils.BuildErrorResponse(m.Log, w, exceptions.ErrForbidden(nil, resource, action))
			}
		})
	}
}
