package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"thinqkitchen/internal/config"
	"thinqkitchen/internal/models"
	"thinqkitchen/internal/service"
	"thinqkitchen/internal/thinq"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Flash messages shown after successful actions.
const (
	msgConfigSaved    = "Saved configuration to .env."
	msgPreheatSent    = "Preheat command sent."
	msgPreheatRefresh = "Refreshed and sent preheat."
	msgOvenSent       = "Oven command sent."
)

// errorStatus maps an error to the HTTP status of its kind: vendor failures
// and broken profile shapes are upstream problems, validation and missing
// credentials are the caller's, everything else is ours.
func errorStatus(err error) int {
	var apiErr *thinq.APIError
	var validation *service.ValidationError
	switch {
	case errors.As(err, &apiErr), errors.Is(err, thinq.ErrUnexpectedProfile):
		return http.StatusBadGateway
	case errors.As(err, &validation), errors.Is(err, config.ErrMissingCredentials):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Centralized error logging and response; the error message doubles as the
// user-visible flash.
func (h *Handler) logAndJSONError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(errorStatus(err), gin.H{"error": err.Error()})
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// @Summary      Appliance snapshot
// @Description  Devices, selection, cook modes and status for display. When
// @Description  credentials are missing the response carries a config prompt
// @Description  with a suggested client id instead of a snapshot.
// @Tags         appliance
// @Produce      json
// @Param        device_id  query  string  false  "Device to select"
// @Param        location   query  string  false  "Oven cavity to select"
// @Success      200  {object}  map[string]interface{}
// @Failure      502  {object}  map[string]interface{}
// @Router       / [get]
func (h *Handler) index(c *gin.Context) {
	cfg, err := h.store.Load()
	if err != nil {
		// Not an error state for the view: prompt for configuration and
		// suggest a fresh client id, as ThinQ wants one per installation.
		c.JSON(http.StatusOK, gin.H{
			"config_error":        err.Error(),
			"suggested_client_id": uuid.NewString(),
		})
		return
	}

	snapshot, err := h.services.Build(c.Request.Context(), cfg, c.Query("device_id"), c.Query("location"))
	if err != nil {
		if h.log != nil {
			h.log.Errorw("snapshot_failed", "err", err)
		}
		// The view always renders; fall back to an empty snapshot with the
		// vendor message attached as a flash.
		c.JSON(errorStatus(err), gin.H{"error": err.Error(), "snapshot": models.EmptySnapshot()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"snapshot": snapshot})
}

// @Summary      Save ThinQ credentials
// @Tags         config
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        access_token  formData  string  true   "ThinQ PAT"
// @Param        client_id     formData  string  true   "Client id"
// @Param        country       formData  string  false  "Country code (default US)"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /save-config [post]
func (h *Handler) saveConfig(c *gin.Context) {
	cfg := config.Config{
		AccessToken: c.PostForm("access_token"),
		ClientID:    c.PostForm("client_id"),
		Country:     c.DefaultPostForm("country", "US"),
	}
	if cfg.AccessToken == "" || cfg.ClientID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access token and client ID are required"})
		return
	}
	if err := h.store.Save(cfg); err != nil {
		h.logAndJSONError(c, "save_config_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "saved", "message": msgConfigSaved})
}

// @Summary      Preheat an oven cavity
// @Description  Sets cook mode and target temperature. The refresh_preheat,
// @Description  test_upper and test_lower actions re-fetch status first and
// @Description  refuse when remote control is off for the cavity.
// @Tags         appliance
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        device_id          formData  string  true   "Device id"
// @Param        cook_mode          formData  string  true   "Cook mode"
// @Param        temperature        formData  string  true   "Whole-number target temperature"
// @Param        unit               formData  string  false  "C or F (default F)"
// @Param        location           formData  string  false  "Oven cavity"
// @Param        location_override  formData  string  false  "Overrides location"
// @Param        action             formData  string  false  "preheat | refresh_preheat | test_upper | test_lower"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /preheat [post]
func (h *Handler) preheat(c *gin.Context) {
	cfg, err := h.store.Load()
	if err != nil {
		h.logAndJSONError(c, "preheat_no_config", err)
		return
	}

	location := c.PostForm("location")
	if override := c.PostForm("location_override"); override != "" {
		location = override
	}
	action := c.DefaultPostForm("action", service.ActionPreheat)
	refresh, known := service.PreheatRefreshes(action)
	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown action: " + action})
		return
	}

	params := service.PreheatParams{
		DeviceID:    c.PostForm("device_id"),
		Mode:        c.PostForm("cook_mode"),
		Unit:        c.DefaultPostForm("unit", "F"),
		Temperature: c.PostForm("temperature"),
		Location:    location,
		Refresh:     refresh,
	}
	if err := h.services.Preheat(c.Request.Context(), cfg, params); err != nil {
		h.logAndJSONError(c, "preheat_failed", err, "device_id", params.DeviceID, "action", action)
		return
	}

	message := msgPreheatSent
	if refresh {
		message = msgPreheatRefresh
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   message,
		"device_id": params.DeviceID,
		"location":  location,
	})
}

// @Summary      Oven action
// @Description  start | stop | remote_on | remote_off for the resolved cavity.
// @Tags         appliance
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        device_id  formData  string  true   "Device id"
// @Param        location   formData  string  false  "Oven cavity"
// @Param        action     formData  string  true   "Action name"
// @Success      200  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /oven-action [post]
func (h *Handler) ovenAction(c *gin.Context) {
	cfg, err := h.store.Load()
	if err != nil {
		h.logAndJSONError(c, "oven_action_no_config", err)
		return
	}

	deviceID := c.PostForm("device_id")
	location := c.PostForm("location")
	action := c.PostForm("action")
	if err := h.services.OvenAction(c.Request.Context(), cfg, deviceID, location, action); err != nil {
		h.logAndJSONError(c, "oven_action_failed", err, "device_id", deviceID, "action", action)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   msgOvenSent,
		"device_id": deviceID,
		"location":  location,
	})
}

// @Summary      Refresh the view
// @Description  No-op redirect back to the snapshot, preserving selection.
// @Tags         appliance
// @Success      303
// @Router       /refresh [post]
func (h *Handler) refresh(c *gin.Context) {
	query := url.Values{}
	if deviceID := c.PostForm("device_id"); deviceID != "" {
		query.Set("device_id", deviceID)
	}
	if location := c.PostForm("location"); location != "" {
		query.Set("location", location)
	}
	target := "/"
	if encoded := query.Encode(); encoded != "" {
		target += "?" + encoded
	}
	c.Redirect(http.StatusSeeOther, target)
}
