package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"

	contextPkg "TravelLedger/pkg/context"
	"TravelLedger/pkg/utils"
)

func NewRequestIDMiddleware() fiber.Handler {
	utilsInstance := utils.New()

	return func(c *fiber.Ctx) error {
		requestID := c.Get(contextPkg.RequestIDHeader)

		if requestID == "" {
			requestID, _ = utilsInstance.NewULIDFromTimestamp(time.Now())
		}

		c.Locals(contextPkg.RequestIDHeader, requestID)
		c.Set(contextPkg.RequestIDHeader, requestID)

		return c.Next()
	}
}
