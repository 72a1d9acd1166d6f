package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"courseware-app/config"
	"courseware-app/database"
	"courseware-app/internal/domain/accounts"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

func googleOAuthConfig() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     config.GOOGLE_CLIENT_ID,
		ClientSecret: config.GOOGLE_CLIENT_SECRET,
		RedirectURL:  config.GOOGLE_REDIRECT_URL,
		Scopes: []string{
			"openid",
			"email",
			"profile",
		},
		Endpoint: google.Endpoint,
	}
}

func randomState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// GET /auth/google
func GoogleStart(c *gin.Context) {
	if config.GOOGLE_CLIENT_ID == "" {
		c.JSON(http.StatusNotImplemented, gin.H{"error": "Google sign-in not configured"})
		return
	}

	state, err := randomState()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate state"})
		return
	}

	// store state in an HttpOnly cookie (simple + works well)
	c.SetCookie(
		"oauth_state",
		state,
		300, // 5 minutes
		"/",
		"",    // domain (set in prod)
		false, // secure (true in prod HTTPS)
		true,  // httpOnly
	)

	url := googleOAuthConfig().AuthCodeURL(state, oauth2.AccessTypeOnline)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/google/callback
func GoogleCallback(c *gin.Context) {
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

	// exchange code -> tokens
	tok, err := googleOAuthConfig().Exchange(c.Request.Context(), code)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "failed to exchange code"})
		return
	}

	// Google returns an ID token (JWT) with openid scope
	rawIDToken, ok := tok.Extra("id_token").(string)
	if !ok || rawIDToken == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing id_token"})
		return
	}

	claims, err := verifyGoogleIDToken(c, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}

	if claims.Email == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "google account has no email"})
		return
	}

	account, err := findOrCreateGoogleAccount(claims)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create account"})
		return
	}

	// issue the normal app JWT (same as Login)
	tokenString, err := issueAppJWT(account)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not create token"})
		return
	}

	redirect := config.GOOGLE_FRONTEND_REDIRECT
	if redirect == "" {
		c.JSON(http.StatusOK, gin.H{"token": tokenString})
		return
	}
	c.Redirect(http.StatusFound, redirect+"?token="+tokenString)
}

/* ---------------- helpers ---------------- */

type googleIDClaims struct {
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Iss           string `json:"iss"`
	Aud           string `json:"aud"`
	Exp           int64  `json:"exp"`
	Iat           int64  `json:"iat"`
}

func verifyGoogleIDToken(c *gin.Context, rawIDToken string) (*googleIDClaims, error) {
	ctx := c.Request.Context()

	provider, err := oidc.NewProvider(ctx, "https://accounts.google.com")
	if err != nil {
		return nil, errors.New("failed to init google oidc provider")
	}

	verifier := provider.Verifier(&oidc.Config{
		ClientID: config.GOOGLE_CLIENT_ID,
	})

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, errors.New("invalid id_token")
	}

	var claims googleIDClaims
	if err := idToken.Claims(&claims); err != nil {
		return nil, errors.New("failed to decode token claims")
	}

	if claims.Email == "" || claims.Sub == "" {
		return nil, errors.New("token missing required claims")
	}

	return &claims, nil
}

func findOrCreateGoogleAccount(gc *googleIDClaims) (accounts.Account, error) {
	var account accounts.Account

	// 1) Try by google_sub
	if gc.Sub != "" {
		if err := database.DB.Where("google_sub = ?", gc.Sub).First(&account).Error; err == nil {
			return account, nil
		}
	}

	// 2) Try by email, then link google_sub if missing
	if err := database.DB.Where("email = ?", gc.Email).First(&account).Error; err == nil {
		if account.GoogleSub == nil {
			sub := gc.Sub
			account.GoogleSub = &sub
			account.AuthProvider = "google"
			if err := database.DB.Save(&account).Error; err != nil {
				return accounts.Account{}, err
			}
		}
		return account, nil
	}

	// 3) Create new account (google)
	sub := gc.Sub
	account = accounts.Account{
		Email:        gc.Email,
		Username:     usernameForGoogleAccount(gc),
		Password:     nil,
		AuthProvider: "google",
		GoogleSub:    &sub,
	}

	if err := database.DB.Create(&account).Error; err != nil {
		return accounts.Account{}, err
	}
	return account, nil
}

// usernameForGoogleAccount derives a unique username from the email's local
// part, suffixing a counter on collision.
func usernameForGoogleAccount(gc *googleIDClaims) string {
	base := gc.Email
	if at := strings.Index(base, "@"); at > 0 {
		base = base[:at]
	}

	username := base
	for n := 2; ; n++ {
		var count int64
		database.DB.Model(&accounts.Account{}).Where("username = ?", username).Count(&count)
		if count == 0 {
			return username
		}
		username = fmt.Sprintf("%s-%d", base, n)
	}
}
