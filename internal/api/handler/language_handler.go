package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/core/ports"
)

// LanguageHandler serves language CRUD. Mutations are contributor-gated at
// the router; the service layer additionally enforces that the verified
// principal matches the claimed username.
type LanguageHandler struct {
	content ports.ContentService
}

func NewLanguageHandler(content ports.ContentService) *LanguageHandler {
	return &LanguageHandler{content: content}
}

// Add creates a new language.
//
// @Summary      Add a language
// @Tags         languages
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        name  path      string        true  "Language name"
// @Param        body  body      claimRequest  true  "Acting username"
// @Success      201   {object}  messageResponse
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /add_language/{name} [post]
func (h *LanguageHandler) Add(c echo.Context) error {
	var req claimRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.content.AddLanguage(c.Request().Context(), c.Param("name"), req.Username, principal); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, messageResponse{Msg: "Language added successfully"})
}

// Delete removes a language.
//
// @Summary      Delete a language
// @Tags         languages
// @Produce      json
// @Security     BearerAuth
// @Param        name      path      string  true  "Language name"
// @Param        username  query     string  true  "Acting username"
// @Success      200       {object}  messageResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /delete_language/{name} [delete]
func (h *LanguageHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.content.DeleteLanguage(c.Request().Context(), c.Param("name"), c.QueryParam("username"), principal); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Msg: "Language deleted successfully"})
}

// List returns all language names. Unauthenticated.
//
// @Summary      List languages
// @Tags         languages
// @Produce      json
// @Success      200  {array}  string
// @Router       /languages [get]
func (h *LanguageHandler) List(c echo.Context) error {
	names, err := h.content.ListLanguages(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, names)
}
