package config

import (
	"errors"
	"os"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"TravelLedger/pkg/handlerUtil"
)

func NewFiber(logger *logrus.Logger) *fiber.App {
	decimal.MarshalJSONWithoutQuotes = true

	app := fiber.New(
		fiber.Config{
			AppName:           "Travel Ledger",
			BodyLimit:         4 * 1024 * 1024,
			DisableKeepalive:  false,
			StrictRouting:     true,
			CaseSensitive:     true,
			EnablePrintRoutes: os.Getenv("APP_ENV") == "development",
			JSONEncoder:       jsoniter.Marshal,
			JSONDecoder:       jsoniter.Unmarshal,
			ErrorHandler: func(c *fiber.Ctx, err error) error {
				code := fiber.StatusInternalServerError
				var fiberErr *fiber.Error
				if errors.As(err, &fiberErr) {
					code = fiberErr.Code
				}
				if code >= fiber.StatusInternalServerError {
					logger.WithFields(logrus.Fields{
						"path":  c.Path(),
						"error": err.Error(),
					}).Error("Unhandled error")
					return c.Status(code).JSON(handlerUtil.ErrorResponse{Error: "An unexpected error occurred"})
				}
				return c.Status(code).JSON(handlerUtil.ErrorResponse{Error: err.Error()})
			},
		})

	return app
}
