package api

import (
	"context"  // Context for store and Redis calls
	"errors"   // Sentinel error checks
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing

	"plant_journal/internal/domain"     // Importing domain models
	"plant_journal/internal/forms"      // Form validators
	"plant_journal/internal/middleware" // Current user lookup
	"plant_journal/internal/store"      // Persistence contract

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logging library
)

// Raw form values bound from the entry creation request
type entryRequest struct {
	Date        string `form:"date"`        // Journal date, yyyy-mm-dd
	Temperature string `form:"temperature"` // Temperature reading
	Humidity    string `form:"humidity"`    // Humidity reading
	Ventilation string `form:"ventilation"` // Ventilation level
	Fertilized  string `form:"fertilized"`  // Checkbox
	Watered     string `form:"watered"`     // Checkbox
	Pruned      string `form:"pruned"`      // Checkbox
}

// entryResponse is the entry data returned in listings
type entryResponse struct {
	ID          uint    `json:"id"`          // Entry ID
	Date        string  `json:"date"`        // Journal date, yyyy-mm-dd
	Temperature float64 `json:"temperature"` // Temperature reading
	Humidity    float64 `json:"humidity"`    // Humidity reading
	Ventilation int     `json:"ventilation"` // Ventilation level
	Fertilized  bool    `json:"fertilized"`  // Care action flag
	Watered     bool    `json:"watered"`     // Care action flag
	Pruned      bool    `json:"pruned"`      // Care action flag
}

// EntriesHandler serves a plant's journal and, on a valid POST, appends an
// entry and redirects back to itself. Plants that do not exist or belong to
// another user answer 404; ownership is never disclosed.
func EntriesHandler(st store.Store, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := middleware.CurrentUser(c) // Resolved by SessionAuth
		if user == nil {
			c.Redirect(http.StatusSeeOther, "/login")
			return
		}
		ctx := c.Request.Context()
		// Parse the plant id from the path
		id64, err := strconv.ParseUint(c.Param("plantID"), 10, 64)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plant not found"})
			return
		}
		plantID := uint(id64)
		plant, err := st.FindPlantByID(ctx, plantID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "Plant not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch plant"})
			return
		}
		// Only the owner may view or append to a plant's journal
		if plant.UserID != user.ID {
			c.JSON(http.StatusNotFound, gin.H{"error": "Plant not found"})
			return
		}
		if c.Request.Method == http.MethodPost {
			var req entryRequest // Bind form request to struct
			if err := c.ShouldBind(&req); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
				return
			}
			// Validate date, readings and care flags
			in, errs := forms.ValidateEntryCreation(req.Date, req.Temperature, req.Humidity, req.Ventilation, req.Fertilized, req.Watered, req.Pruned)
			if errs != nil {
				// Re-present the journal together with the field errors
				entries, err := entryList(ctx, st, plant.ID)
				if err != nil {
					c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
					return
				}
				c.JSON(http.StatusBadRequest, gin.H{"errors": errs, "entries": entries})
				return
			}
			entry := domain.Entry{
				Date:        in.Date,        // Journal date
				Temperature: in.Temperature, // Temperature reading
				Humidity:    in.Humidity,    // Humidity reading
				Ventilation: in.Ventilation, // Ventilation level
				Fertilized:  in.Fertilized,  // Care action flag
				Watered:     in.Watered,     // Care action flag
				Pruned:      in.Pruned,      // Care action flag
				PlantID:     plant.ID,       // Owning plant
			}
			// Save the new entry
			if err := st.CreateEntry(ctx, &entry); err != nil {
				logrus.WithFields(logrus.Fields{
					"user_id":  user.ID,     // Requesting user
					"plant_id": plant.ID,    // Owning plant
					"error":    err.Error(), // Error message
				}).Error("Failed to create entry") // Log failure
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
				return
			}
			// Log successful creation
			logrus.WithFields(logrus.Fields{
				"user_id":  user.ID,  // Requesting user
				"plant_id": plant.ID, // Owning plant
				"entry_id": entry.ID, // New entry ID
			}).Info("Entry created")
			// Invalidate the cached entry list
			_ = deleteCache(ctx, rdb, entriesCacheKey(plant.ID))
			c.Redirect(http.StatusSeeOther, "/entries/"+strconv.Itoa(int(plant.ID))) // POST/redirect/GET
			return
		}
		// GET: try the cached list first
		key := entriesCacheKey(plant.ID)
		plantResp := plantResponse{
			ID:        plant.ID,                                      // Plant ID
			Name:      plant.Name,                                    // Plant name
			PlantDate: plant.PlantDate.Format(forms.PlantDateLayout), // Display format
		}
		var cached []entryResponse
		if found, err := getCache(ctx, rdb, key, &cached); err == nil && found {
			c.JSON(http.StatusOK, gin.H{"plant": plantResp, "entries": cached, "cached": true})
			return
		}
		entries, err := entryList(ctx, st, plant.ID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch entries"})
			return
		}
		// Cache the listing for future requests
		_ = setCache(ctx, rdb, key, entries, listCacheTTL)
		c.JSON(http.StatusOK, gin.H{"plant": plantResp, "entries": entries, "cached": false})
	}
}

// entryList fetches a plant's entries and maps them to the response format
func entryList(ctx context.Context, st store.Store, plantID uint) ([]entryResponse, error) {
	entries, err := st.ListEntriesForPlant(ctx, plantID)
	if err != nil {
		return nil, err
	}
	resp := make([]entryResponse, len(entries))
	for i, e := range entries {
		resp[i] = entryResponse{
			ID:          e.ID,                                 // Entry ID
			Date:        e.Date.Format(forms.EntryDateLayout), // Journal date
			Temperature: e.Temperature,                        // Temperature reading
			Humidity:    e.Humidity,                           // Humidity reading
			Ventilation: e.Ventilation,                        // Ventilation level
			Fertilized:  e.Fertilized,                         // Care action flag
			Watered:     e.Watered,                            // Care action flag
			Pruned:      e.Pruned,                             // Care action flag
		}
	}
	return resp, nil
}
