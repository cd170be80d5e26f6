package render

import (
	"github.com/gofiber/fiber/v2"
)

func RenderInternalServerErrorPage(ctx *fiber.Ctx) error {
	body, err := RenderHTML("error-internal", nil)
	if err != nil {
		return err
	}
	ctx.Set("Content-Type", "text/html; charset=utf-8")
	return ctx.Status(fiber.StatusInternalServerError).SendString(body)
}

func RenderNotFoundErrorPage(ctx *fiber.Ctx) error {
	body, err := RenderHTML("error-not-found", nil)
	if err != nil {
		return err
	}
	ctx.Set("Content-Type", "text/html; charset=utf-8")
	return ctx.Status(fiber.StatusNotFound).SendString(body)
}

func RenderForbiddenErrorPage(ctx *fiber.Ctx) error {
	body, err := RenderHTML("error-forbidden", nil)
	if err != nil {
		return err
	}
	ctx.Set("Content-Type", "text/html; charset=utf-8")
	return ctx.Status(fiber.StatusForbidden).SendString(body)
}

func RenderBadRequestErrorPage(ctx *fiber.Ctx) error {
	body, err := RenderHTML("error-bad-request", nil)
	if err != nil {
		return err
	}
	ctx.Set("Content-Type", "text/html; charset=utf-8")
	return ctx.Status(fiber.StatusBadRequest).SendString(body)
}
