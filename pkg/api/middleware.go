package api

import (
	"errors"
	"time"

	jwt "github.com/appleboy/gin-jwt/v2"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrNoTenantClaim is returned when an authenticated request carries no tenant id claim
var ErrNoTenantClaim = errors.New("jwt carries no tenant claim")

// TokenUser is the identity carried in the jwt for api consumers
type TokenUser struct {
	ID       string
	TenantID string
	Roles    []string
}

// Middleware handles authentication for routes requiring authentication
type Middleware interface {
	GinJWTMiddleware(authenticator func(c *gin.Context) (interface{}, error)) (middleware *jwt.GinJWTMiddleware, err error)
}

// NewAuthMiddleware returns a new api.Middleware
func NewAuthMiddleware(config *APIConfig) (authMiddleware Middleware) {
	authMiddleware = &authMiddlewareImpl{
		config: config,
	}

	return
}

type authMiddlewareImpl struct {
	config *APIConfig
}

func (m *authMiddlewareImpl) GinJWTMiddleware(authenticator func(c *gin.Context) (interface{}, error)) (middleware *jwt.GinJWTMiddleware, err error) {
	middleware, err = jwt.New(&jwt.GinJWTMiddleware{
		Realm:         m.config.Auth.JWT.Domain,
		Key:           []byte(m.config.Auth.JWT.Key),
		TokenLookup:   "header:Authorization, cookie:jwt",
		Authenticator: authenticator,
		Timeout:       time.Duration(8) * time.Hour,
		TimeFunc:      time.Now,
	})
	if err != nil {
		return nil, err
	}

	// set user properties as claims
	middleware.PayloadFunc = func(data interface{}) jwt.MapClaims {
		if user, ok := data.(*TokenUser); ok {
			return jwt.MapClaims{
				jwt.IdentityKey: user.ID,
				"tenant":        user.TenantID,
				"roles":         user.Roles,
			}
		}
		return jwt.MapClaims{}
	}

	return middleware, nil
}

// ZeroLogMiddleware logs gin requests via zerolog
func ZeroLogMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		path := c.Request.URL.Path
		if path == "/liveness" || path == "/readiness" {
			// don't log these requests, only execute them
			c.Next()
			return
		}

		start := time.Now()

		c.Next()

		raw := c.Request.URL.RawQuery
		latency := time.Since(start)
		clientIP := c.ClientIP()
		method := c.Request.Method
		statusCode := c.Writer.Status()

		if raw != "" {
			path = path + "?" + raw
		}

		event := log.Debug()
		if statusCode >= 500 {
			event = log.Warn()
		}

		event.
			Int("statusCode", statusCode).
			Dur("latencyMs", latency).
			Str("clientIP", clientIP).
			Str("path", path).
			Msgf("[GIN] %3d %13v %15s %-7s %s", statusCode, latency, clientIP, method, path)
	}
}

// RequestTenantID returns the tenant id claim of the authenticated request
func RequestTenantID(c *gin.Context) (tenantID string, err error) {
	claims := jwt.ExtractClaims(c)

	tenantID, ok := claims["tenant"].(string)
	if !ok || tenantID == "" {
		return "", ErrNoTenantClaim
	}

	return tenantID, nil
}
