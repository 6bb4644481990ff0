package handlers

import (
	"io"
	"net/http"

	"pointify-pos/internal/settings"

	"github.com/gin-gonic/gin"
)

// --- GET: Resolved store profile plus derived payment methods ---
func (h *Handlers) GetSettings(c *gin.Context) {
	profile, err := settings.Load(h.Store)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"profile":        profile,
		"paymentMethods": profile.PaymentMethods(),
	})
}

// --- PUT: Upsert setting keys ---
// The UI sends only the keys it changed; each is upserted by its
// natural key. Values are opaque strings (the logo arrives already
// base64-encoded by the UI layer).
func (h *Handlers) UpdateSettings(c *gin.Context) {
	var values map[string]string
	if err := c.ShouldBindJSON(&values); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	for key, value := range values {
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Setting key cannot be empty"})
			return
		}
		if err := h.Store.PutSetting(key, value); err != nil {
			fail(c, err)
			return
		}
	}

	profile, err := settings.Load(h.Store)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Settings saved successfully", "profile": profile})
}

// --- GET: Full database backup as one JSON file ---
func (h *Handlers) ExportBackup(c *gin.Context) {
	data, err := h.Store.ExportAll()
	if err != nil {
		fail(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="pointify-backup.json"`)
	c.Data(http.StatusOK, "application/json", data)
}

// --- POST: Overwrite the database from a backup file ---
func (h *Handlers) ImportBackup(c *gin.Context) {
	data, err := io.ReadAll(c.Request.Body)
	if err != nil || len(data) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No backup payload"})
		return
	}

	if err := h.Store.ImportAll(data); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Database restored successfully"})
}
