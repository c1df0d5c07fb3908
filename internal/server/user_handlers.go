package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetUsers lists every registered user, sorted by email. Admin only.
func (s *Server) GetUsers(c *fiber.Ctx) error {
	users, err := s.userService.ListUsers(c.UserContext())
	if err != nil {
		return respondAppError(c, err)
	}
	return c.JSON(fiber.Map{"users": users})
}

// About serves the static about-page copy.
func (s *Server) About(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"title": "About Me",
		"body": "Hey there, welcome to my blog. I write about whatever is on " +
			"my mind, from programming to travel. Stick around, leave a " +
			"comment, and say hello through the contact page.",
	})
}
