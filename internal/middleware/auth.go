package middleware

import (
	"math"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/booking-calendar/internal/httperr"
)

const (
	ContextUserID      = "userID"
	ContextWorkspaceID = "workspaceID"
)

// WorkspaceScope reads :workspaceID from the route and puts it in the
// context. Handlers get it back with WorkspaceID.
func WorkspaceScope() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Param("workspaceID"), 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_workspace_id", "workspace id must be a positive integer")
			return
		}
		c.Set(ContextWorkspaceID, uint(id))
		c.Next()
	}
}

func WorkspaceID(c *gin.Context) uint {
	return c.MustGet(ContextWorkspaceID).(uint)
}

// AuthMiddleware checks an HS256 bearer token and that its workspaceId
// claim matches the workspace in the route. Must run after WorkspaceScope.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearerToken(c)
		if !ok {
			return
		}
		authorize(c, secret, raw)
	}
}

// WebSocketAuth guards the relay socket. workspace_id becomes mandatory and
// the token may also come as ?token=, browsers cannot set headers on a
// websocket upgrade.
func WebSocketAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseUint(c.Query("workspace_id"), 10, 64)
		if err != nil || id == 0 {
			httperr.BadRequest(c, "invalid_workspace_id", "workspace_id must be a positive integer")
			return
		}
		c.Set(ContextWorkspaceID, uint(id))

		raw := c.Query("token")
		if raw == "" {
			var ok bool
			if raw, ok = bearerToken(c); !ok {
				return
			}
		}
		authorize(c, secret, raw)
	}
}

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		httperr.Unauthorized(c, "missing_authorization_header", "authorization header is required")
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		httperr.Unauthorized(c, "invalid_authorization_header", "expected a bearer token")
		return "", false
	}
	return parts[1], true
}

// authorize validates raw against the workspace already in the context.
func authorize(c *gin.Context, secret, raw string) {
	token, err := jwt.Parse(raw, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		httperr.Unauthorized(c, "invalid_token", "token is invalid or expired")
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		httperr.Unauthorized(c, "invalid_token_claims", "token claims are unreadable")
		return
	}

	workspaceID, ok := claimID(claims["workspaceId"])
	if !ok {
		httperr.Unauthorized(c, "invalid_token_payload", "token has no workspace")
		return
	}
	if workspaceID != WorkspaceID(c) {
		httperr.Forbidden(c, "workspace_forbidden", "token is not valid for this workspace")
		return
	}

	if sub, ok := claimID(claims["sub"]); ok {
		c.Set(ContextUserID, sub)
	}

	c.Next()
}

// claimID accepts positive whole numbers only; JSON numbers arrive as
// float64.
func claimID(v any) (uint, bool) {
	f, ok := v.(float64)
	if !ok || f < 1 || f > math.MaxUint32 || f != math.Trunc(f) {
		return 0, false
	}
	return uint(f), true
}

// UserID is the token subject, when the request was authenticated.
func UserID(c *gin.Context) *uint {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return nil
	}
	id := v.(uint)
	return &id
}
