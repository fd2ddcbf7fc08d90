package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/openlingu/lingua-server/internal/api/metrics"
	"github.com/openlingu/lingua-server/internal/api/middleware"
	"github.com/openlingu/lingua-server/internal/core/domain"
	"github.com/openlingu/lingua-server/internal/core/ports"
)

// AuthHandler serves login, registration and logout.
type AuthHandler struct {
	authService  ports.AuthService
	tokenService ports.TokenService
}

func NewAuthHandler(authService ports.AuthService, tokenService ports.TokenService) *AuthHandler {
	return &AuthHandler{authService: authService, tokenService: tokenService}
}

// Login authenticates an ordinary user and returns a bearer token.
//
// @Summary      User login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  tokenResponse
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	token, err := h.authService.AuthenticateUser(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("user", "failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("user", "success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("user").Inc()

	return c.JSON(http.StatusOK, tokenResponse{AccessToken: token, TokenType: "bearer"})
}

// LoginContributor authenticates a contributor. The route is a GET carrying
// credentials as query parameters, kept for compatibility with the existing
// editor clients (typo in the path included).
//
// @Summary      Contributor login
// @Tags         auth
// @Produce      json
// @Param        username  query     string  true  "Contributor username"
// @Param        password  query     string  true  "Contributor password"
// @Success      200       {object}  contributorLoginResponse
// @Failure      401       {object}  map[string]string
// @Router       /login_contributer [get]
func (h *AuthHandler) LoginContributor(c echo.Context) error {
	username := c.QueryParam("username")
	password := c.QueryParam("password")
	if username == "" || password == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "username and password are required"})
	}

	token, contributor, err := h.authService.AuthenticateContributor(c.Request().Context(), username, password)
	if err != nil {
		metrics.AuthAttemptsTotal.WithLabelValues("contributor", "failure").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("contributor", "success").Inc()
	metrics.TokensIssuedTotal.WithLabelValues("contributor").Inc()

	return c.JSON(http.StatusOK, contributorLoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: domain.Principal{
			Username:      contributor.Username,
			IsContributor: true,
			IsAdmin:       contributor.IsAdmin,
		},
	})
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  profileResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, profileResponse{
		Username: user.Username,
		Email:    user.Email,
		Disabled: user.Disabled,
	})
}

// Logout revokes the caller's token. Deliberately tolerant: a token that was
// never issued, already revoked, or plain garbage still yields 200 with
// token_removed=false, so client retries can never fail.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  logoutResponse
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	raw, err := middleware.BearerToken(c)
	if err != nil {
		return c.JSON(http.StatusOK, logoutResponse{TokenRemoved: false})
	}

	found, err := h.tokenService.Revoke(c.Request().Context(), raw)
	if err != nil {
		// Store failure is the one case logout reports honestly.
		return err
	}
	if found {
		metrics.TokensRevokedTotal.WithLabelValues("true").Inc()
	} else {
		metrics.TokensRevokedTotal.WithLabelValues("false").Inc()
	}

	return c.JSON(http.StatusOK, logoutResponse{TokenRemoved: found})
}
