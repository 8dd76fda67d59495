package thinq

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"thinqkitchen/internal/logger"
)

// ThinQ Connect regional API hosts. The country code decides the region.
const (
	hostAmericas = "https://api-aic.lgthinq.com"
	hostEurope   = "https://api-eic.lgthinq.com"
	hostKorea    = "https://api-kic.lgthinq.com"

	// Published ThinQ Connect API key, shared by all third-party clients.
	apiKey = "v6GFvkweNo7DK7yD3ylIZ9w52aKBU0eJ7wLXkSR3"
)

var europeanCountries = map[string]bool{
	"AT": true, "BE": true, "CH": true, "CZ": true, "DE": true, "DK": true,
	"ES": true, "FI": true, "FR": true, "GB": true, "IE": true, "IT": true,
	"NL": true, "NO": true, "PL": true, "PT": true, "SE": true,
}

func regionHost(country string) string {
	code := strings.ToUpper(strings.TrimSpace(country))
	switch {
	case code == "KR":
		return hostKorea
	case europeanCountries[code]:
		return hostEurope
	default:
		return hostAmericas
	}
}

// APIError is a failed vendor call. The message is surfaced to the user
// verbatim; the core does not interpret vendor error codes beyond that.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("thinq api error (status %d)", e.Status)
}

// Credentials are the per-request ThinQ API credentials.
type Credentials struct {
	AccessToken string
	ClientID    string
	Country     string
}

// Session is a scoped connection to the vendor API. Each HTTP request of ours
// opens its own session, performs a short sequential chain of calls, and
// closes it before the request completes; nothing is shared across requests.
type Session struct {
	base   string
	creds  Credentials
	client *http.Client
	log    *logger.Logger
}

// NewSession opens a vendor API session for one request.
func NewSession(creds Credentials, timeout time.Duration, log *logger.Logger) *Session {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Session{
		base:   regionHost(creds.Country),
		creds:  creds,
		client: &http.Client{Timeout: timeout},
		log:    log,
	}
}

// Close releases the session's network resources. Callers must close on every
// exit path, error paths included.
func (s *Session) Close() {
	s.client.CloseIdleConnections()
}

// GetDeviceList fetches the raw list-devices payload.
func (s *Session) GetDeviceList(ctx context.Context) (any, error) {
	return s.get(ctx, "/devices")
}

// GetDeviceProfile fetches the raw profile payload for one device.
func (s *Session) GetDeviceProfile(ctx context.Context, deviceID string) (any, error) {
	return s.get(ctx, "/devices/"+deviceID+"/profile")
}

// GetDeviceStatus fetches the raw status payload for one device.
func (s *Session) GetDeviceStatus(ctx context.Context, deviceID string) (any, error) {
	return s.get(ctx, "/devices/"+deviceID+"/state")
}

// ControlDevice posts a control payload built by one of the command builders.
func (s *Session) ControlDevice(ctx context.Context, deviceID string, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode control payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.base+"/devices/"+deviceID+"/control", bytes.NewReader(body))
	if err != nil {
		return err
	}
	s.log.Debugw("thinq control", "device_id", deviceID, "payload", string(body))
	_, err = s.do(req)
	return err
}

func (s *Session) get(ctx context.Context, path string) (any, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.base+path, nil)
	if err != nil {
		return nil, err
	}
	body, err := s.do(req)
	if err != nil {
		return nil, err
	}
	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &APIError{Message: "undecodable response from ThinQ API"}
	}
	return payload, nil
}

func (s *Session) do(req *http.Request) ([]byte, error) {
	req.Header.Set("Authorization", "Bearer "+s.creds.AccessToken)
	req.Header.Set("x-client-id", s.creds.ClientID)
	req.Header.Set("x-country", strings.ToUpper(s.creds.Country))
	req.Header.Set("x-message-id", uuid.NewString())
	req.Header.Set("x-api-key", apiKey)
	req.Header.Set("x-service-phase", "OP")
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &APIError{Message: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, apiErrorFromBody(resp.StatusCode, body)
	}
	return body, nil
}

// apiErrorFromBody pulls the human-readable message out of an error response.
// Vendor error bodies vary in shape, so the likely spots are probed with
// gjson before falling back to the raw body.
func apiErrorFromBody(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}
	if result := gjson.GetBytes(body, "error.code"); result.Exists() {
		apiErr.Code = result.String()
	}
	for _, path := range []string{"error.message", "message", "error"} {
		if result := gjson.GetBytes(body, path); result.Exists() && result.Type == gjson.String {
			apiErr.Message = result.String()
			return apiErr
		}
	}
	if trimmed := strings.TrimSpace(string(body)); trimmed != "" {
		apiErr.Message = trimmed
	}
	return apiErr
}
