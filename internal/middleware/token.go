package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	jwtPkg "TravelLedger/pkg/jwt"
)

const unauthorizedMessage = "Unauthorized, access token invalid or expired"

func (m *middleware) NewTokenMiddleware(ctx *fiber.Ctx) error {
	requestID := m.GetRequestID(ctx)

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"path":       ctx.Path(),
			"client_ip":  ctx.IP(),
			"error":      err.Error(),
		}).Warn("Token verification failed")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": unauthorizedMessage,
		})
	}

	user, err := jwtPkg.UserFromToken(userToken)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Warn("Token claims check")
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": unauthorizedMessage,
		})
	}

	ctx.Locals("user", user)

	m.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    user.ID,
	}).Debug("Authentication successful")
	return ctx.Next()
}

// NewOptionalTokenMiddleware attaches the caller when a valid bearer token
// is present and lets anonymous requests through otherwise.
func (m *middleware) NewOptionalTokenMiddleware(ctx *fiber.Ctx) error {
	if ctx.Get("Authorization") == "" {
		return ctx.Next()
	}

	userToken, err := jwtPkg.VerifyTokenHeader(ctx, jwtPkg.AccessTokenSecret)
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"error":      err.Error(),
		}).Debug("Ignoring invalid optional token")
		return ctx.Next()
	}

	if user, err := jwtPkg.UserFromToken(userToken); err == nil {
		ctx.Locals("user", user)
	}

	return ctx.Next()
}
