package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lalankumar17/Automated-Examination-Management-System/database"
)

func HandleCheckHealth(c *fiber.Ctx, store database.Storage) error {
	db := "Connected"
	if err := store.HealthCheck(); err != nil {
		db = "Disconnected"
	}
	return c.JSON(fiber.Map{"status": "ok", "db": db})
}
