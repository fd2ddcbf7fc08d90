package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/core/ports"
)

// AccountHandler serves profile reads and admin user deletion.
type AccountHandler struct {
	accounts ports.AccountService
}

func NewAccountHandler(accounts ports.AccountService) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Me returns the caller's own profile.
//
// @Summary      Own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  profileResponse
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /me [get]
func (h *AccountHandler) Me(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	user, err := h.accounts.Profile(c.Request().Context(), principal.Username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Username: user.Username,
		Email:    user.Email,
		Disabled: user.Disabled,
	})
}

// GetUser returns another user's profile. Admin only.
//
// @Summary      Get a user profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  profileResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /user/{username} [get]
func (h *AccountHandler) GetUser(c echo.Context) error {
	user, err := h.accounts.Profile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, profileResponse{
		Username: user.Username,
		Email:    user.Email,
		Disabled: user.Disabled,
	})
}

// DeleteUser removes a user account. Admin only; self-deletion is a 400.
//
// @Summary      Delete a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        username  path      string  true  "Username"
// @Success      200       {object}  messageResponse
// @Failure      400       {object}  map[string]string
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /user/{username} [delete]
func (h *AccountHandler) DeleteUser(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.accounts.DeleteUser(c.Request().Context(), c.Param("username"), principal); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Msg: "User deleted successfully"})
}
