package server

import (
	"errors"
	"log/slog"

	"inkwell/internal/middleware"
	"inkwell/internal/models"

	"github.com/gofiber/fiber/v2"
)

// respondAppError maps application error codes to HTTP statuses.
func respondAppError(c *fiber.Ctx, err error) error {
	var appErr *models.AppError
	if !errors.As(err, &appErr) {
		middleware.Logger.ErrorContext(c.UserContext(), "unexpected handler error", slog.Any("error", err))
		return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
	}

	status := fiber.StatusInternalServerError
	switch appErr.Code {
	case models.CodeNotFound:
		status = fiber.StatusNotFound
	case models.CodeConstraintViolation:
		status = fiber.StatusConflict
	case models.CodeValidationError:
		status = fiber.StatusBadRequest
	case models.CodeUnauthorized:
		status = fiber.StatusUnauthorized
	}

	if status == fiber.StatusInternalServerError {
		middleware.Logger.ErrorContext(c.UserContext(), "internal handler error", slog.Any("error", err))
	}

	return models.RespondWithError(c, status, appErr)
}

// currentUserID pulls the authenticated user's ID placed in locals by
// the auth middleware.
func currentUserID(c *fiber.Ctx) (uint, bool) {
	id, ok := c.Locals("userID").(uint)
	return id, ok
}

// AdminRequired allows only users with the admin role past. Everyone
// else is bounced back to the public post listing rather than shown an
// error page.
func (s *Server) AdminRequired(c *fiber.Ctx) error {
	userID, ok := currentUserID(c)
	if !ok {
		return c.Redirect("/api/posts", fiber.StatusSeeOther)
	}

	user, err := s.userRepo.GetByID(c.UserContext(), userID)
	if err != nil || !user.IsAdmin() {
		middleware.Logger.WarnContext(c.UserContext(), "admin route denied",
			slog.Uint64("user_id", uint64(userID)))
		return c.Redirect("/api/posts", fiber.StatusSeeOther)
	}

	return c.Next()
}
