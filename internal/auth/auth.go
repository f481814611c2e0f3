package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nuestraboda/wedding-rsvp-api/internal/config"
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"gorm.io/gorm"
)

const (
	GoogleAuthorizeEndpoint = "https://accounts.google.com/o/oauth2/auth"
	GoogleTokenEndpoint     = "https://oauth2.googleapis.com/token"
	GoogleUserInfoAPI       = "https://www.googleapis.com/oauth2/v2/userinfo"

	TokenDuration = 24 * time.Hour
)

type AuthHandler struct {
	oauthConfig *oauth2.Config
	db          *gorm.DB
	cfg         *config.Config
}

func NewAuthHandler(cfg *config.Config, db *gorm.DB) *AuthHandler {
	return &AuthHandler{
		oauthConfig: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  GoogleAuthorizeEndpoint,
				TokenURL: GoogleTokenEndpoint,
			},
		},
		db:  db,
		cfg: cfg,
	}
}

func (h *AuthHandler) HandleGoogleLogin(w http.ResponseWriter, r *http.Request) {
	url := h.oauthConfig.AuthCodeURL("state", oauth2.AccessTypeOnline)
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

func (h *AuthHandler) HandleGoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "Code not found", http.StatusBadRequest)
		return
	}

	token, err := h.oauthConfig.Exchange(r.Context(), code)
	if err != nil {
		http.Error(w, "Failed to exchange token", http.StatusInternalServerError)
		return
	}

	client := h.oauthConfig.Client(r.Context(), token)

	resp, err := client.Get(GoogleUserInfoAPI)
	if err != nil {
		http.Error(w, "Failed to get user info", http.StatusInternalServerError)
		return
	}
	defer resp.Body.Close()

	var googleUser struct {
		ID    string `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&googleUser); err != nil {
		http.Error(w, "Failed to decode user info", http.StatusInternalServerError)
		return
	}

	// Only the configured host addresses may sign in.
	if !h.isHostEmail(googleUser.Email) {
		http.Error(w, "Access denied: this address is not a registered host.", http.StatusForbidden)
		return
	}

	var host models.Host
	if err := h.db.FirstOrInit(&host, models.Host{Email: googleUser.Email}).Error; err != nil {
		http.Error(w, "Database error", http.StatusInternalServerError)
		return
	}
	host.Name = googleUser.Name
	host.GoogleID = googleUser.ID

	if err := h.db.Save(&host).Error; err != nil {
		http.Error(w, "Failed to save host", http.StatusInternalServerError)
		return
	}

	jwtToken, err := h.GenerateToken(host.ID)
	if err != nil {
		http.Error(w, "Failed to generate token", http.StatusInternalServerError)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "auth_token",
		Value:    jwtToken,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	})

	w.Write([]byte(fmt.Sprintf("Welcome %s! You are logged in.", host.Name)))
}

func (h *AuthHandler) isHostEmail(email string) bool {
	for _, allowed := range h.cfg.HostEmails {
		if allowed == email {
			return true
		}
	}
	return false
}

type LoginInput struct {
	Body struct {
		Email    string `json:"email" doc:"Host email address"`
		Password string `json:"password" doc:"Host password"`
	}
}

type LoginOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		Message string `json:"message"`
	}
}

// HandlePasswordLogin is the first-party login used by the host pages.
func (h *AuthHandler) HandlePasswordLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	var host models.Host
	if err := h.db.WithContext(ctx).Where("email = ?", input.Body.Email).First(&host).Error; err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}
	if host.PasswordHash == "" {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(host.PasswordHash), []byte(input.Body.Password)); err != nil {
		return nil, huma.Error401Unauthorized("Invalid credentials")
	}

	token, err := h.GenerateToken(host.ID)
	if err != nil {
		return nil, huma.Error500InternalServerError("Failed to generate token")
	}

	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    token,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	}

	out := &LoginOutput{SetCookie: cookie.String()}
	out.Body.Message = fmt.Sprintf("Welcome %s!", host.Name)
	return out, nil
}

func (h *AuthHandler) GenerateToken(hostID uint) (string, error) {
	claims := jwt.MapClaims{
		"host_id": hostID,
		"exp":     time.Now().Add(TokenDuration).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.cfg.JWTSecret))
}

// SeedHost ensures a password-login host account exists; used at startup
// so a fresh database has a way in.
func SeedHost(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&models.Host{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return db.Create(&models.Host{Email: email, Name: "Host", PasswordHash: string(hash)}).Error
}
