package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/kalakaari/storefront-service/internal/domain/dto"
	"github.com/kalakaari/storefront-service/internal/domain/model"
	"github.com/kalakaari/storefront-service/internal/i18n"
	"github.com/kalakaari/storefront-service/internal/middleware"
	"github.com/kalakaari/storefront-service/internal/service"
)

// AuthHandler provides HTTP handlers for the owner login routes. There
// is no registration endpoint; the single owner account comes from
// deployment configuration.
type AuthHandler struct {
	authService service.AuthService
	events      service.EventService
}

// NewAuthHandler creates a new authentication handler. events may be
// nil when the audit trail is disabled.
func NewAuthHandler(authService service.AuthService, events service.EventService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		events:      events,
	}
}

func (h *AuthHandler) record(c *gin.Context, action, message string, fields map[string]interface{}) {
	if h.events == nil {
		return
	}
	entry := &model.EventEntry{
		RequestID: middleware.GetRequestID(c),
		Action:    action,
		Message:   message,
		Fields:    fields,
	}
	go func() {
		ctx, cancel := newDetachedContext(2 * time.Second)
		defer cancel()
		_ = h.events.Record(ctx, entry)
	}()
}

// Login handles POST /api/auth/login requests.
//
// @Summary      Owner login
// @Description  Authenticates the shop owner and returns a JWT access and refresh token pair.
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Login credentials"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Successful login"
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid credentials"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	builder := NewResponseBuilder(c)

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}
	if err := req.Validate(); err != nil {
		builder.ErrorWithMessage(http.StatusBadRequest, err.Error(), err)
		return
	}

	tokenPair, owner, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			h.record(c, "login_failed", "Failed owner login attempt", map[string]interface{}{
				"email": req.Email,
			})
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidCredentials, err)
		} else {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	h.record(c, "login", "Owner logged in", map[string]interface{}{
		"email": owner.Email,
	})

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		Owner: dto.OwnerResponse{
			Email: owner.Email,
			Name:  owner.Name,
		},
	})
}

// RefreshToken handles POST /api/auth/refresh requests.
//
// @Summary      Refresh access token
// @Description  Rotates the token pair using the refresh token from the X-Refresh-Token header. The old refresh token is invalidated.
// @Tags         Auth
// @Produce      json
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse{data=dto.LoginResponse} "Rotated token pair"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized - invalid refresh token"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	builder := NewResponseBuilder(c)

	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		builder.ErrorWithMessage(http.StatusBadRequest, "X-Refresh-Token header is required", nil)
		return
	}

	tokenPair, err := h.authService.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, service.ErrInvalidToken) {
			builder.Error(http.StatusUnauthorized, i18n.ErrKeyInvalidToken, err)
		} else {
			builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		}
		return
	}

	builder.SuccessOK(dto.LoginResponse{
		Token:        tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
	})
}

// Logout handles POST /api/auth/logout requests.
//
// @Summary      Owner logout
// @Description  Blacklists the access token and deletes the refresh token. Access token comes from the Authorization header, refresh token from X-Refresh-Token.
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Param        Authorization header string true "Bearer token" default(Bearer )
// @Param        X-Refresh-Token header string true "Refresh token"
// @Success      200 {object} dto.SuccessResponse "Successful logout"
// @Failure      400 {object} dto.ErrorResponse "Bad request - missing refresh token"
// @Failure      401 {object} dto.ErrorResponse "Unauthorized"
// @Failure      500 {object} dto.ErrorResponse "Internal server error"
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	authHeader := c.GetHeader("Authorization")
	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return
	}
	accessToken := strings.TrimPrefix(authHeader, bearerPrefix)
	if accessToken == "" {
		builder.Error(http.StatusUnauthorized, i18n.ErrKeyTokenRequired, nil)
		return
	}

	refreshToken := c.GetHeader("X-Refresh-Token")
	if refreshToken == "" {
		builder.ErrorWithMessage(http.StatusBadRequest, "X-Refresh-Token header is required", nil)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), accessToken, refreshToken); err != nil {
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	h.record(c, "logout", "Owner logged out", nil)

	builder.SuccessOK(map[string]string{"message": "Logged out successfully"})
}
