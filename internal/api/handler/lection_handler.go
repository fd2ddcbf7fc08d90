package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/core/ports"
)

// LectionHandler serves lection CRUD and the unauthenticated read endpoints.
type LectionHandler struct {
	content ports.ContentService
}

func NewLectionHandler(content ports.ContentService) *LectionHandler {
	return &LectionHandler{content: content}
}

// Add creates a new lection within a language.
//
// @Summary      Add a lection
// @Tags         lections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        language  path      string          true  "Language name"
// @Param        body      body      lectionRequest  true  "Lection payload"
// @Success      201       {object}  lectionResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Failure      409       {object}  map[string]string
// @Router       /add_lection/{language} [post]
func (h *LectionHandler) Add(c echo.Context) error {
	var req lectionRequest
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

	lection, err := h.content.AddLection(c.Request().Context(), c.Param("language"), req.LectionName, req.Username, req.Content, principal)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toLectionResponse(lection))
}

// Edit replaces a lection's content in place, preserving id, title and the
// created_* stamps.
//
// @Summary      Edit a lection
// @Tags         lections
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        language  path      string          true  "Language name"
// @Param        body      body      lectionRequest  true  "Lection payload"
// @Success      200       {object}  messageResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /edit_lection/{language} [put]
func (h *LectionHandler) Edit(c echo.Context) error {
	var req lectionRequest
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

	if err := h.content.EditLection(c.Request().Context(), c.Param("language"), req.LectionName, req.Username, req.Content, principal); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Msg: "Lection updated successfully"})
}

// Delete removes a lection.
//
// @Summary      Delete a lection
// @Tags         lections
// @Produce      json
// @Security     BearerAuth
// @Param        language  path      string  true  "Language name"
// @Param        title     path      string  true  "Lection title"
// @Param        username  query     string  true  "Acting username"
// @Success      200       {object}  messageResponse
// @Failure      403       {object}  map[string]string
// @Failure      404       {object}  map[string]string
// @Router       /delete_lection/{language}/{title} [delete]
func (h *LectionHandler) Delete(c echo.Context) error {
	principal, err := ctxPrincipal(c)
	if err != nil {
		return err
	}

	if err := h.content.DeleteLection(c.Request().Context(), c.Param("language"), c.Param("title"), c.QueryParam("username"), principal); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Msg: "Lection deleted successfully"})
}

// List returns {id, title} pairs for a language. Unauthenticated.
//
// @Summary      List lections of a language
// @Tags         lections
// @Produce      json
// @Param        language  path      string  true  "Language name"
// @Success      200       {array}   domain.LectionSummary
// @Failure      404       {object}  map[string]string
// @Router       /languages/{language}/lections [get]
func (h *LectionHandler) List(c echo.Context) error {
	summaries, err := h.content.ListLections(c.Request().Context(), c.Param("language"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summaries)
}

// GetByTitle returns the full lection record. Unauthenticated.
//
// @Summary      Get a lection by title
// @Tags         lections
// @Produce      json
// @Param        language  path      string  true  "Language name"
// @Param        title     path      string  true  "Lection title"
// @Success      200       {object}  lectionResponse
// @Failure      404       {object}  map[string]string
// @Router       /languages/{language}/lections/by_title/{title} [get]
func (h *LectionHandler) GetByTitle(c echo.Context) error {
	lection, err := h.content.GetLectionByTitle(c.Request().Context(), c.Param("language"), c.Param("title"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLectionResponse(lection))
}

// GetByID returns the full lection record. Unauthenticated.
//
// @Summary      Get a lection by id
// @Tags         lections
// @Produce      json
// @Param        language  path      string  true  "Language name"
// @Param        id        path      string  true  "Lection id"
// @Success      200       {object}  lectionResponse
// @Failure      404       {object}  map[string]string
// @Router       /languages/{language}/lections/{id} [get]
func (h *LectionHandler) GetByID(c echo.Context) error {
	lection, err := h.content.GetLectionByID(c.Request().Context(), c.Param("language"), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toLectionResponse(lection))
}
