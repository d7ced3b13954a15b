// Package fiberx holds the HTTP glue shared by every API package
package fiberx

import (
	"errors"

	"github.com/Abraxas-365/careerpal/pkg/errx"
	"github.com/Abraxas-365/careerpal/pkg/logx"
	"github.com/gofiber/fiber/v2"
)

// ErrorHandler converts handler errors to JSON responses. errx errors keep
// their registered status; anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(fiber.Map{
			"error": fe.Message,
			"code":  fe.Code,
		})
	}

	var xe *errx.Error
	if errors.As(err, &xe) {
		if xe.HTTPStatus >= fiber.StatusInternalServerError {
			logx.With("code", xe.Code).Errorf("%v", xe)
		}
		return c.Status(xe.HTTPStatus).JSON(xe.ToHTTPResponse())
	}

	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Internal Server Error",
		"code":  fiber.StatusInternalServerError,
	})
}
