package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dto"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// UserStore is implemented by repository.UserGormRepository.
type UserStore interface {
	FindByPhone(ctx context.Context, phone string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}

type AuthHandler struct {
	users  UserStore
	auth   *middleware.Authenticator
	secure bool
}

func NewAuthHandler(users UserStore, auth *middleware.Authenticator, secureCookies bool) *AuthHandler {
	return &AuthHandler{users: users, auth: auth, secure: secureCookies}
}

// --------- Handlers ---------

// Register creates a patient account and signs it in.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", err.Error())
		return
	}

	phone, ok := validators.NormalizePhone(req.PhoneNumber)
	if !ok {
		httperr.Unprocessable(c, "invalid_phone_number", "Phone number is not valid")
		return
	}

	var email *string
	if req.Email != nil && *req.Email != "" {
		e := validators.NormalizeEmail(*req.Email)
		email = &e
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	role := access.PatientRoleID
	user := models.User{
		PhoneNumber:  phone,
		Email:        email,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		PasswordHash: string(hashed),
		IsActive:     true,
		RoleID:       &role,
	}

	if err := h.users.CreateUser(c.Request.Context(), &user); err != nil {
		if httperr.IsUniqueViolation(err) {
			httperr.BadRequest(c, "phone_already_registered", "Phone number is already registered")
			return
		}
		httperr.Respond(c, err)
		return
	}

	token, ok := h.issue(c, &user)
	if !ok {
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"user":  dto.UserFromModel(&user),
		"token": token,
	})
}

// Token exchanges phone and password for an access token.
func (h *AuthHandler) Token(c *gin.Context) {
	var req dto.TokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Unprocessable(c, "invalid_request", err.Error())
		return
	}

	phone, ok := validators.NormalizePhone(req.PhoneNumber)
	if !ok {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid phone number or password")
		return
	}

	user, err := h.users.FindByPhone(c.Request.Context(), phone)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid phone number or password")
		return
	}
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		httperr.Unauthorized(c, "invalid_credentials", "Invalid phone number or password")
		return
	}
	if !user.IsActive {
		httperr.Forbidden(c, "inactive_user", "User is inactive")
		return
	}

	token, ok := h.issue(c, user)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, token)
}

// issue signs a token and mirrors it into the access_token cookie used by the
// chat socket.
func (h *AuthHandler) issue(c *gin.Context, u *models.User) (dto.TokenResponse, bool) {
	tok, exp, err := h.auth.IssueToken(u)
	if err != nil {
		httperr.Respond(c, err)
		return dto.TokenResponse{}, false
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AccessTokenCookie, tok, int(time.Until(exp).Seconds()), "/", "", h.secure, true)

	return dto.TokenResponse{AccessToken: tok, TokenType: "bearer", ExpiresAt: exp}, true
}
