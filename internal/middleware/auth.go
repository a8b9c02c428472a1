package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/config"
	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/access"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const (
	ContextUser       = "user"
	ContextPrincipal  = "principal"
	AccessTokenCookie = "access_token"
)

var (
	ErrMissingToken = errors.New("missing token")
	ErrInvalidToken = errors.New("invalid token")
	ErrInactiveUser = errors.New("inactive user")
)

type UserLookup interface {
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// Authenticator issues and verifies HS256 access tokens whose subject is the
// user id.
type Authenticator struct {
	secret []byte
	ttl    time.Duration
	users  UserLookup
	now    func() time.Time
}

func NewAuthenticator(cfg *config.Config, users UserLookup) *Authenticator {
	return &Authenticator{
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL(),
		users:  users,
		now:    time.Now,
	}
}

func (a *Authenticator) IssueToken(u *models.User) (string, time.Time, error) {
	now := a.now()
	exp := now.Add(a.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  u.ID.String(),
		"role": access.FromID(u.RoleID).String(),
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// TokenFromRequest reads a bearer token from the Authorization header and
// falls back to the access_token cookie. Browsers cannot set headers on a
// WebSocket handshake, hence the cookie.
func TokenFromRequest(r *http.Request) (string, error) {
	if h := r.Header.Get("Authorization"); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			return "", ErrInvalidToken
		}
		return parts[1], nil
	}

	if ck, err := r.Cookie(AccessTokenCookie); err == nil && ck.Value != "" {
		return ck.Value, nil
	}
	return "", ErrMissingToken
}

func (a *Authenticator) Subject(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, func(*jwt.Token) (interface{}, error) {
		return a.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	)
	if err != nil || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	sub, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, ErrInvalidToken
	}
	return id, nil
}

// Authenticate resolves the request's token to an active user.
func (a *Authenticator) Authenticate(r *http.Request) (*models.User, error) {
	tok, err := TokenFromRequest(r)
	if err != nil {
		return nil, err
	}

	id, err := a.Subject(tok)
	if err != nil {
		return nil, err
	}

	u, err := a.users.GetUser(r.Context(), id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidToken
	}
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, ErrInactiveUser
	}
	return u, nil
}

func AuthMiddleware(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := a.Authenticate(c.Request)
		switch {
		case errors.Is(err, ErrMissingToken):
			httperr.Unauthorized(c, "missing_authorization_header", "Authorization required")
		case errors.Is(err, ErrInvalidToken):
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token")
		case errors.Is(err, ErrInactiveUser):
			httperr.Forbidden(c, "inactive_user", "User is inactive")
		case err != nil:
			httperr.Respond(c, err)
		default:
			c.Set(ContextUser, u)
			c.Set(ContextPrincipal, access.PrincipalOf(u))
			c.Next()
			return
		}
		c.Abort()
	}
}

func PrincipalFrom(c *gin.Context) access.Principal {
	v, _ := c.Get(ContextPrincipal)
	p, _ := v.(access.Principal)
	return p
}

func UserFrom(c *gin.Context) *models.User {
	v, _ := c.Get(ContextUser)
	u, _ := v.(*models.User)
	return u
}
