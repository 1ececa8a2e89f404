package auth

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/coreos/go-oidc/v3/oidc"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"

	"github.com/mwangik/go-storefront/internal/db"
	"github.com/mwangik/go-storefront/internal/models"
)

var (
	provider     *oidc.Provider
	verifier     *oidc.IDTokenVerifier
	oauth2Config *oauth2.Config
)

const sessionName = "storesess"

var errMissingToken = errors.New("no bearer token supplied")

func Init() {
	ctx := context.Background()

	var err error
	provider, err = oidc.NewProvider(ctx, os.Getenv("OIDC_ISSUER"))
	if err != nil {
		log.Fatalf("OIDC provider init error: %v", err)
	}

	verifier = provider.Verifier(&oidc.Config{ClientID: os.Getenv("OIDC_CLIENT_ID")})

	oauth2Config = &oauth2.Config{
		ClientID:     os.Getenv("OIDC_CLIENT_ID"),
		ClientSecret: os.Getenv("OIDC_CLIENT_SECRET"),
		RedirectURL:  os.Getenv("OIDC_REDIRECT_URL"),
		Endpoint:     provider.Endpoint(),
		Scopes:       []string{oidc.ScopeOpenID, "profile", "email", "phone"},
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Handlers
// ─────────────────────────────────────────────────────────────────────────────

// GET /auth/login
func Login(c *gin.Context) {
	state := "rand" // TODO: generate & store real CSRF-safe state if needed
	url := oauth2Config.AuthCodeURL(state)
	c.Redirect(http.StatusFound, url)
}

// GET /auth/callback
func Callback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code missing"})
		return
	}

	ctx := c.Request.Context()
	oauth2Token, err := oauth2Config.Exchange(ctx, code)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "token exchange failed"})
		return
	}

	rawIDToken, ok := oauth2Token.Extra("id_token").(string)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no id_token in token response"})
		return
	}

	idToken, err := verifier.Verify(ctx, rawIDToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "token verification failed"})
		return
	}

	cust, err := upsertCustomer(idToken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "claims parse error"})
		return
	}

	// Store customer-ID in session
	sess := sessions.Default(c)
	sess.Set("customer_id", cust.ID)
	_ = sess.Save()

	c.JSON(http.StatusOK, gin.H{"message": "logged in", "customer": cust})
}

// POST /auth/logout
func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func upsertCustomer(idToken *oidc.IDToken) (*models.Customer, error) {

	var claims struct {
		Sub   string `json:"sub"`
		Name  string `json:"name"`
		Email string `json:"email"`
		Phone string `json:"phone_number"`
	}
	if err := idToken.Claims(&claims); err != nil {
		return nil, err
	}

	var cust models.Customer
	if err := db.DB.Where("o_id_c_id = ?", claims.Sub).First(&cust).Error; err != nil {
		cust = models.Customer{
			OIDCID: claims.Sub,
			Name:   claims.Name,
			Email:  claims.Email,
			Phone:  claims.Phone,
		}
		db.DB.Create(&cust)
	}

	return &cust, nil
}

// Middleware: ensures the caller is authenticated and injects *models.Customer
// into the context. Accepts either the session established by the login
// callback or a bearer ID token issued by the OIDC provider.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess := sessions.Default(c)
		custID, ok := sess.Get("customer_id").(uint)

		if !ok || custID == 0 {
			cust, err := customerFromBearer(c)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
				return
			}
			c.Set("customer", cust)
			c.Next()
			return
		}

		var cust models.Customer
		if err := db.DB.First(&cust, custID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
			return
		}
		c.Set("customer", &cust)
		c.Next()
	}
}

// Middleware: on top of RequireAuth, rejects non-staff customers.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		cust := CurrentCustomer(c)
		if cust == nil || !cust.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "staff access required"})
			return
		}
		c.Next()
	}
}

// CurrentCustomer returns the customer RequireAuth stored on the context.
func CurrentCustomer(c *gin.Context) *models.Customer {
	v, exists := c.Get("customer")
	if !exists {
		return nil
	}
	cust, _ := v.(*models.Customer)
	return cust
}

func customerFromBearer(c *gin.Context) (*models.Customer, error) {

	header := c.GetHeader("Authorization")
	rawIDToken, found := strings.CutPrefix(header, "Bearer ")
	if !found || verifier == nil {
		return nil, errMissingToken
	}

	idToken, err := verifier.Verify(c.Request.Context(), rawIDToken)
	if err != nil {
		return nil, err
	}

	return upsertCustomer(idToken)
}
