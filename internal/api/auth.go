package api

import (
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"time"     // Cookie lifetime

	"plant_journal/internal/auth"       // Authentication service
	"plant_journal/internal/domain"     // Importing domain models
	"plant_journal/internal/forms"      // Form validators
	"plant_journal/internal/middleware" // Session cookie name
	"plant_journal/internal/store"      // Persistence contract

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Raw form values bound from the registration request
type registerRequest struct {
	Username string `form:"username"` // Desired username
	Email    string `form:"email"`    // Email address
	Password string `form:"password"` // Plain password, hashed before storage
}

// Raw form values bound from the login request
type loginRequest struct {
	Username string `form:"username"` // Username
	Password string `form:"password"` // Password
}

// RegisterHandler serves the registration form. On a valid POST it creates
// the user and redirects to the login page; validation and uniqueness
// failures re-present the form with field errors.
func RegisterHandler(st store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			// Present the empty form
			c.JSON(http.StatusOK, gin.H{"errors": forms.Errors{}})
			return
		}
		var req registerRequest // Bind form request to struct
		if err := c.ShouldBind(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate field shapes and formats
		in, errs := forms.ValidateRegistration(req.Username, req.Email, req.Password)
		if errs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		// Hash the password; the plain value is never stored
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Username: in.Username, Email: in.Email, Password: string(hash)}
		// Attempt to create the user; uniqueness is decided by the database
		if err := st.CreateUser(c.Request.Context(), &user); err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicateUsername):
				// Surface as a field error on the conflicting field
				c.JSON(http.StatusBadRequest, gin.H{"errors": forms.Errors{{Field: "username", Message: "is already taken"}}})
			case errors.Is(err, store.ErrDuplicateEmail):
				c.JSON(http.StatusBadRequest, gin.H{"errors": forms.Errors{{Field: "email", Message: "is already registered"}}})
			default:
				logrus.WithFields(logrus.Fields{
					"username": in.Username, // Attempted username
					"error":    err.Error(), // Error message
				}).Error("Failed to create user") // Log failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Registration failed"})
			}
			return
		}
		// Log successful registration
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered")
		c.Redirect(http.StatusSeeOther, "/login") // Send the new user to the login page
	}
}

// LoginHandler serves the login form. On success it sets the session cookie
// and redirects to the plant list; failures get a generic message that does
// not disclose which field was wrong.
func LoginHandler(svc *auth.Service, cookieTTL time.Duration, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			// Present the empty form
			c.JSON(http.StatusOK, gin.H{"errors": forms.Errors{}})
			return
		}
		var req loginRequest // Bind form request to struct
		if err := c.ShouldBind(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		// Validate field shapes; credential correctness is checked below
		if _, errs := forms.ValidateLogin(req.Username, req.Password); errs != nil {
			c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
			return
		}
		token, err := svc.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, auth.ErrInvalidCredentials) {
				// Generic message, no field attribution
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"username": req.Username, // Attempted username
				"error":    err.Error(),  // Error message
			}).Error("Login failed") // Log failure
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Login failed"})
			return
		}
		// Set the session cookie; Lax keeps cross-site POSTs out
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.CookieName, token, int(cookieTTL.Seconds()), "/", "", secureCookie, true)
		logrus.WithFields(logrus.Fields{
			"username": req.Username, // Logged-in username
		}).Info("User logged in")
		c.Redirect(http.StatusSeeOther, "/") // Send the user to their plant list
	}
}

// LogoutHandler invalidates the session and clears the cookie
func LogoutHandler(svc *auth.Service, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, err := c.Cookie(middleware.CookieName); err == nil {
			// Delete the server-side session record
			if err := svc.Logout(c.Request.Context(), token); err != nil {
				logrus.WithFields(logrus.Fields{
					"error": err.Error(), // Error message
				}).Warn("Failed to invalidate session")
			}
		}
		// Clear the cookie regardless
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(middleware.CookieName, "", -1, "/", "", secureCookie, true)
		c.Redirect(http.StatusSeeOther, "/login") // Back to the login page
	}
}
