package auth

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"log"
	"net/http"
	"strconv"
	"time"

	"club-site/internal/domain/admins"

	"github.com/gin-gonic/gin"
	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"
	githuboauth "golang.org/x/oauth2/github"
	"gorm.io/gorm"
)

// Config holds the OAuth app and session settings.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	JWTSecret    string
	// AdminRedirectURL is where the browser lands after login. Empty means
	// the callback answers with JSON.
	AdminRedirectURL string
	CookieSecure     bool
}

// GithubUser is the part of the GitHub profile the login needs.
type GithubUser struct {
	ID    string
	Login string
	Email *string
}

type Handler struct {
	db        *gorm.DB
	cfg       Config
	oauth     *oauth2.Config
	fetchUser func(ctx context.Context, oc *oauth2.Config, tok *oauth2.Token) (*GithubUser, error)
	now       func() time.Time
}

func NewHandler(db *gorm.DB, cfg Config) *Handler {
	return &Handler{
		db:  db,
		cfg: cfg,
		oauth: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     githuboauth.Endpoint,
		},
		fetchUser: fetchGithubUser,
		now:       time.Now,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/github
func (h *Handler) GithubStart(c *gin.Context) {
	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie("oauth_state", state, 300, "/", "", h.cfg.CookieSecure, true)

	c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state, oauth2.AccessTypeOnline))
}

// GET /auth/github/callback
func (h *Handler) GithubCallback(c *gin.Context) {
	state := c.Query("state")
	code := c.Query("code")
	if code == "" || state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing code/state"})
		return
	}

	cookieState, err := c.Cookie("oauth_state")
	if err != nil || cookieState != state {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid oauth state"})
		return
	}
	c.SetCookie("oauth_state", "", -1, "/", "", h.cfg.CookieSecure, true)

	ctx := c.Request.Context()
	tok, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	gh, err := h.fetchUser(ctx, h.oauth, tok)
	if err != nil {
		log.Printf("❌ github user lookup: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to load github user"})
		return
	}

	admin, err := FindAdmin(h.db.WithContext(ctx), gh.ID)
	if err != nil {
		log.Printf("❌ allowlist lookup for %s: %v", gh.Login, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}
	if admin == nil {
		log.Printf("🚫 login refused for github user %s (%s)", gh.Login, gh.ID)
		c.JSON(http.StatusForbidden, gin.H{"error": "Not on the admin allowlist"})
		return
	}

	if err := h.refreshProfile(ctx, admin, gh); err != nil {
		log.Printf("⚠️ could not refresh admin profile %s: %v", gh.Login, err)
	}

	tokenString, err := IssueSession([]byte(h.cfg.JWTSecret), admin, h.now())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}
	setSessionCookie(c, tokenString, int(SessionTTL.Seconds()), h.cfg.CookieSecure)

	if h.cfg.AdminRedirectURL == "" {
		c.JSON(http.StatusOK, gin.H{"success": true, "admin": admin})
		return
	}
	c.Redirect(http.StatusFound, h.cfg.AdminRedirectURL)
}

// refreshProfile keeps the stored username and email in step with GitHub.
func (h *Handler) refreshProfile(ctx context.Context, a *admins.AllowedAdmin, gh *GithubUser) error {
	updates := map[string]any{}
	if gh.Login != "" && gh.Login != a.GithubUsername {
		updates["github_username"] = gh.Login
		a.GithubUsername = gh.Login
	}
	if gh.Email != nil && (a.Email == nil || *a.Email != *gh.Email) {
		updates["email"] = *gh.Email
		a.Email = gh.Email
	}
	if len(updates) == 0 {
		return nil
	}
	return h.db.WithContext(ctx).Model(&admins.AllowedAdmin{}).Where("id = ?", a.ID).Updates(updates).Error
}

func fetchGithubUser(ctx context.Context, oc *oauth2.Config, tok *oauth2.Token) (*GithubUser, error) {
	client := github.NewClient(oc.Client(ctx, tok))

	u, _, err := client.Users.Get(ctx, "")
	if err != nil {
		return nil, err
	}
	out := &GithubUser{
		ID:    strconv.FormatInt(u.GetID(), 10),
		Login: u.GetLogin(),
	}
	if email := u.GetEmail(); email != "" {
		out.Email = &email
	}
	return out, nil
}
