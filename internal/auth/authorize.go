package auth

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/nuestraboda/wedding-rsvp-api/internal/models"
)

// AuthInput is embedded by every host-only operation. Check-in terminals
// authenticate with X-API-KEY; browsers carry the JWT cookie.
type AuthInput struct {
	Cookie string `header:"Cookie" doc:"Host session cookie"`
	APIKey string `header:"X-API-KEY" doc:"Check-in terminal API key"`
}

// Authorize resolves the calling host from an API key or session cookie.
func (h *AuthHandler) Authorize(ctx context.Context, input AuthInput) (uint, error) {
	if input.APIKey != "" {
		var keyModel models.APIKey
		if err := h.db.WithContext(ctx).Where("key = ?", input.APIKey).First(&keyModel).Error; err == nil {
			if keyModel.ExpiresAt != nil && time.Now().After(*keyModel.ExpiresAt) {
				return 0, huma.Error401Unauthorized("API key expired")
			}
			h.db.WithContext(ctx).Model(&keyModel).Update("last_used_at", time.Now())
			return keyModel.HostID, nil
		}
	}

	tokenString, err := cookieValue(input.Cookie, "auth_token")
	if err != nil {
		return 0, huma.Error401Unauthorized("No token found")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return 0, huma.Error401Unauthorized("Invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, huma.Error401Unauthorized("Invalid token claims")
	}
	hostIDFloat, ok := claims["host_id"].(float64)
	if !ok {
		return 0, huma.Error401Unauthorized("Invalid token claims")
	}
	return uint(hostIDFloat), nil
}

// RefreshedCookie implements the sliding session: once a token is past
// half its lifetime, callers get a fresh cookie to set on the response.
func (h *AuthHandler) RefreshedCookie(cookieHeader string) string {
	tokenString, err := cookieValue(cookieHeader, "auth_token")
	if err != nil {
		return ""
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(h.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ""
	}
	hostIDFloat, ok := claims["host_id"].(float64)
	if !ok {
		return ""
	}
	exp, ok := claims["exp"].(float64)
	if !ok {
		return ""
	}
	if time.Until(time.Unix(int64(exp), 0)) >= TokenDuration/2 {
		return ""
	}

	newToken, err := h.GenerateToken(uint(hostIDFloat))
	if err != nil {
		return ""
	}
	cookie := &http.Cookie{
		Name:     "auth_token",
		Value:    newToken,
		Expires:  time.Now().Add(TokenDuration),
		HttpOnly: true,
		Path:     "/",
	}
	return cookie.String()
}

type MeInput struct {
	AuthInput
}

type MeOutput struct {
	SetCookie string `header:"Set-Cookie"`
	Body      struct {
		ID    uint   `json:"id"`
		Email string `json:"email"`
		Name  string `json:"name"`
	}
}

func (h *AuthHandler) HandleMe(ctx context.Context, input *MeInput) (*MeOutput, error) {
	hostID, err := h.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	var host models.Host
	if err := h.db.WithContext(ctx).First(&host, hostID).Error; err != nil {
		return nil, huma.Error401Unauthorized("Unknown host")
	}

	out := &MeOutput{SetCookie: h.RefreshedCookie(input.Cookie)}
	out.Body.ID = host.ID
	out.Body.Email = host.Email
	out.Body.Name = host.Name
	return out, nil
}

// cookieValue pulls one cookie out of a raw Cookie header.
func cookieValue(header, name string) (string, error) {
	req := http.Request{Header: http.Header{"Cookie": []string{header}}}
	c, err := req.Cookie(name)
	if err != nil {
		return "", err
	}
	return c.Value, nil
}
