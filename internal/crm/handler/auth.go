package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/wellness-booking-platform/internal/crm/repository"
	"github.com/iliyamo/wellness-booking-platform/internal/utils"
)

// AuthHandler serves facilitator login.  The CRM keeps its own accounts;
// booking-side user credentials are never accepted here.
type AuthHandler struct {
	Facilitators *repository.CRMFacilitatorRepo
}

func NewAuthHandler(facilitators *repository.CRMFacilitatorRepo) *AuthHandler {
	return &AuthHandler{Facilitators: facilitators}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login verifies facilitator credentials and returns the profile.  Unknown
// username and wrong password are answered identically.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "no data provided"})
	}
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "missing username or password"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	f, err := h.Facilitators.GetByUsername(ctx, req.Username)
	if err != nil || !utils.VerifyPassword(f.PasswordHash, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message":     "login successful",
		"facilitator": newFacilitatorView(f),
	})
}
