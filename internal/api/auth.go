package api

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const (
	adminCookieName    = "admin-token"
	adminTokenLifespan = 7 * 24 * time.Hour
	adminSubject       = "admin"
)

var errUnauthorized = echo.NewHTTPError(http.StatusUnauthorized, "admin login required")

// adminAuth gates the registration endpoints behind a single shared admin
// password; a successful login sets a signed cookie.
type adminAuth struct {
	secret   []byte
	password string
}

func newAdminAuth(secret, password string) *adminAuth {
	return &adminAuth{secret: []byte(secret), password: password}
}

func (a *adminAuth) CheckPassword(password string) bool {
	return subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
}

// IssueCookie signs a fresh admin token into the session cookie.
func (a *adminAuth) IssueCookie(ec echo.Context) error {
	exp := time.Now().Add(adminTokenLifespan)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   adminSubject,
		ExpiresAt: jwt.NewNumericDate(exp),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})

	signed, err := token.SignedString(a.secret)
	if err != nil {
		return err
	}

	ec.SetCookie(&http.Cookie{
		Name:     adminCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  exp,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClearCookie expires the session cookie.
func (a *adminAuth) ClearCookie(ec echo.Context) {
	ec.SetCookie(&http.Cookie{
		Name:     adminCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// IsAdmin reports whether the request carries a valid admin cookie.
func (a *adminAuth) IsAdmin(ec echo.Context) bool {
	cookie, err := ec.Cookie(adminCookieName)
	if err != nil || cookie.Value == "" {
		return false
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}

	return claims.Subject == adminSubject
}

// RequireAdmin is the middleware guarding admin-only routes.
func (a *adminAuth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ec echo.Context) error {
		if !a.IsAdmin(ec) {
			return errUnauthorized
		}
		return next(ec)
	}
}
