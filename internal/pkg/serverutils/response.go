package serverutils

import "github.com/gofiber/fiber/v2"

// Success renders the flat response envelope the client expects:
// {"error": false, <payload fields>, "message": "..."}.
func Success(ctx *fiber.Ctx, message string, payload fiber.Map) error {
	body := fiber.Map{
		"error":   false,
		"message": message,
	}
	for k, v := range payload {
		body[k] = v
	}
	return ctx.JSON(body)
}
