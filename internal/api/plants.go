package api

import (
	"context"  // Context for store and Redis calls
	"net/http" // HTTP status codes

	"plant_journal/internal/domain"     // Importing domain models
	"plant_journal/internal/forms"      // Form validators
	"plant_journal/internal/middleware" // Current user lookup
	"plant_journal/internal/store"      // Persistence contract

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Raw form values bound from the plant creation request
type plantRequest struct {
	Name      string `form:"name"`       // Plant name
	PlantDate string `form:"plant_date"` // Planting date, dd.mm.yyyy
}

// plantResponse is the plant data returned in listings
type plantResponse struct {
	ID        uint   `json:"id"`         // Plant ID
	Name      string `json:"name"`       // Plant name
	PlantDate string `json:"plant_date"` // Planting date, dd.mm.yyyy
}

// IndexHandler serves the plant list for the authenticated user and, on a
// valid POST, creates a plant and redirects back to itself so a refresh
// cannot resubmit the form.
func IndexHandler(st store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Resolved by SessionAuth
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		ctx := c.Request.Context()
		if c.Request.Method == http.MethodPost {
			var req plantRequest // Bind form request to struct
			if err := c.ShouldBind(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
			// Validate name and planting date
			in, errs := forms.ValidatePlantCreation(req.Name, req.PlantDate)
			if errs != nil {
				// Re-present the list together with the field errors
				plants, err := plantList(ctx, st, user.ID)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plants"})
					return
				}
				c.JSON(http.StatusBadRequest, gin.H{"errors": errs, "plants": plants})
				return
			}
			plant := domain.Plant{Name: in.Name, PlantDate: in.PlantDate, UserID: user.ID}
			// Save the new plant
			if err := st.CreatePlant(ctx, &plant); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id": user.ID,     // Owning user
					"name":    in.Name,     // Plant name
					"error":   err.Error(), // Error message
				}).Error("Failed to create plant") // Log failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create plant"})
				return
			}
			// Log successful creation
			logrus.WithFields(logrus.Fields{
				"user_id":  user.ID,    // Owning user
				"plant_id": plant.ID,   // New plant ID
				"name":     plant.Name, // Plant name
			}).Info("Plant created")
			// Invalidate the cached plant list
			_ = deleteCache(ctx, rdb, plantsCacheKey(user.ID))
			c.Redirect(http.StatusSeeOther, "/") // POST/redirect/GET
			return
		}
		// GET: try the cached list first
		key := plantsCacheKey(user.ID)
		var cached []plantResponse
		if found, err := getCache(ctx, rdb, key, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"plants": cached, "cached": true})
			return
		}
		plants, err := plantList(ctx, st, user.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plants"})
			return
		}
		// Cache the listing for future requests
		_ = setCache(ctx, rdb, key, plants, listCacheTTL)
		c.JSON(http.StatusOK, gin.H{"plants": plants, "cached": false})
	}
}

// plantList fetches a user's plants and maps them to the response format
func plantList(ctx context.Context, st store.Store, userID uint) ([]plantResponse, error) {
	plants, err := st.ListPlantsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := make([]plantResponse, len(plants))
	for i, p := range plants {
		resp[i] = plantResponse{
			ID:        p.ID,                                       // Plant ID
			Name:      p.Name,                                     // Plant name
			PlantDate: p.PlantDate.Format(forms.PlantDateLayout),  // Display format dd.mm.yyyy
		}
	}
	return resp, nil
}
