package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"club-site/internal/domain/admins"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const (
	SessionCookie = "session_token"
	SessionTTL    = 7 * 24 * time.Hour

	adminKey = "admin"
)

// Claims is the payload of the session token.
type Claims struct {
	GithubID string `json:"github_id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

func IssueSession(secret []byte, a *admins.AllowedAdmin, now time.Time) (string, error) {
	claims := Claims{
		GithubID: a.GithubID,
		Username: a.GithubUsername,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   a.GithubID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	if a.Email != nil {
		claims.Email = *a.Email
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

func ParseSession(secret []byte, tokenString string) (*Claims, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.GithubID == "" {
		return nil, errors.New("invalid session token")
	}
	return &claims, nil
}

// TokenFromRequest reads the session cookie, falling back to a Bearer header.
func TokenFromRequest(c *gin.Context) string {
	if v, err := c.Cookie(SessionCookie); err == nil && v != "" {
		return v
	}
	h := c.GetHeader("Authorization")
	if t := strings.TrimPrefix(h, "Bearer "); t != h {
		return strings.TrimSpace(t)
	}
	return ""
}

// FindAdmin looks up the allowlist row for a GitHub id. It returns nil when
// the id is not on the list.
func FindAdmin(db *gorm.DB, githubID string) (*admins.AllowedAdmin, error) {
	var a admins.AllowedAdmin
	err := db.Where("github_id = ?", githubID).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func SetCurrentAdmin(c *gin.Context, a *admins.AllowedAdmin) { c.Set(adminKey, a) }

// CurrentAdmin returns the admin resolved by the session middleware, or nil.
func CurrentAdmin(c *gin.Context) *admins.AllowedAdmin {
	v, ok := c.Get(adminKey)
	if !ok {
		return nil
	}
	a, _ := v.(*admins.AllowedAdmin)
	return a
}

func setSessionCookie(c *gin.Context, value string, maxAge int, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, value, maxAge, "/", "", secure, true)
}
