package server

import (
	"fmt"
	"strings"

	"inkwell/internal/models"
	"inkwell/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Contact relays a contact-form submission to the blog owner's inbox.
// Delivery is best effort: a failed relay still answers 200, with
// "sent" reporting what happened.
func (s *Server) Contact(c *fiber.Ctx) error {
	var req contactRequest
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("invalid request body"))
	}

	if err := validation.ValidateName(req.Name); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateContactMessage(req.Message); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	var body strings.Builder
	fmt.Fprintf(&body, "%s wants to contact to you:\n", req.Name)
	fmt.Fprintf(&body, "%s\n", strings.TrimSpace(req.Message))
	fmt.Fprintf(&body, "Email address: %s\n", req.Email)
	if req.Phone != "" {
		fmt.Fprintf(&body, "Phone Number %s\n", req.Phone)
	}

	sent := s.mailer.Send(c.UserContext(), body.String())

	return c.JSON(fiber.Map{"sent": sent})
}
