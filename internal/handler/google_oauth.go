package handler

import (
	"encoding/json"
	"net/http"

	"duit/config"
	"duit/internal/service"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

type GoogleOAuthHandler struct {
	cfg     *config.Config
	authSvc *service.AuthService
}

func NewGoogleOAuthHandler(cfg *config.Config, authSvc *service.AuthService) *GoogleOAuthHandler {
	return &GoogleOAuthHandler{cfg: cfg, authSvc: authSvc}
}

func (h *GoogleOAuthHandler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.cfg.OAuth.GoogleClientID,
		ClientSecret: h.cfg.OAuth.GoogleClientSecret,
		RedirectURL:  h.cfg.OAuth.GoogleRedirectURL,
		Scopes:       []string{"https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
		Endpoint:     google.Endpoint,
	}
}

// Redirect sends the user to the Google consent screen.
func (h *GoogleOAuthHandler) Redirect(c *gin.Context) {
	if h.cfg.OAuth.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Google OAuth not configured"})
		return
	}
	url := h.oauth2Config().AuthCodeURL("state", oauth2.AccessTypeOffline)
	c.Redirect(http.StatusFound, url)
}

type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Callback exchanges the code, fetches the profile, and signs the user in.
func (h *GoogleOAuthHandler) Callback(c *gin.Context) {
	if h.cfg.OAuth.GoogleClientID == "" {
		c.JSON(http.StatusServiceUnavailable, gin.H{"message": "Google OAuth not configured"})
		return
	}
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "missing code"})
		return
	}
	ctx := c.Request.Context()
	conf := h.oauth2Config()
	tok, err := conf.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "code exchange failed"})
		return
	}
	resp, err := conf.Client(ctx, tok).Get("https://www.googleapis.com/oauth2/v2/userinfo")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"message": "failed to fetch user info"})
		return
	}
	defer resp.Body.Close()
	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil || info.ID == "" {
		c.JSON(http.StatusBadGateway, gin.H{"message": "invalid user info"})
		return
	}
	u, access, refresh, err := h.authSvc.LoginWithGoogle(info.ID, info.Email, info.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, http.StatusOK, "logged in", tokenPayload(u, access, refresh))
}
