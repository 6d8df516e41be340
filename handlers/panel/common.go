package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

var errBadID = errors.New("geçersiz ID parametresi")

// parseIDParam rota parametresini pozitif uint olarak okur.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, errBadID
	}
	return uint(id), nil
}
