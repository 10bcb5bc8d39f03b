package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/jmkang/pepper-shop/internal/httpx"
	"github.com/jmkang/pepper-shop/pkg/models"
)

type contextKey string

const claimsKey contextKey = "admin_claims"

// ClaimsFromContext returns the claims RequireAdmin stored, if any.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// RequireAdmin rejects requests without a valid bearer token carrying
// the admin role.
func (m *TokenManager) RequireAdmin(logger *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				httpx.RespondError(w, http.StatusUnauthorized, "Authentication required")
				return
			}

			claims, err := m.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				logger.WithError(err).Warn("Rejected invalid admin token")
				httpx.RespondError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			if claims.Role != models.RoleAdmin {
				logger.WithFields(logrus.Fields{
					"username": claims.Username,
					"role":     claims.Role,
				}).Warn("Rejected non-admin token on admin route")
				httpx.RespondError(w, http.StatusForbidden, "Admin role required")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsKey, claims)))
		})
	}
}
