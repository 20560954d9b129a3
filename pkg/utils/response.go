package utils

import "github.com/gofiber/fiber/v2"

// ResponseSuccess writes the {success:true, ...payload} envelope.
func ResponseSuccess(ctx *fiber.Ctx, status int, payload fiber.Map) error {
	body := fiber.Map{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	return ctx.Status(status).JSON(body)
}

func ResponseError(ctx *fiber.Ctx, status int, msg string) error {
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
	})
}

// ResponseErrorDetails includes the details field; callers gate it to
// non-production environments.
func ResponseErrorDetails(ctx *fiber.Ctx, status int, msg, details string) error {
	if details == "" {
		return ResponseError(ctx, status, msg)
	}
	return ctx.Status(status).JSON(fiber.Map{
		"success": false,
		"error":   msg,
		"details": details,
	})
}
