package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"trippilot/skyview/internal/constants"
	"trippilot/skyview/internal/models/dtos"
	"trippilot/skyview/internal/models/entities"
	"trippilot/skyview/internal/normalize"
)

// maxBodyBytes bounds how much of a backend response is read.
const maxBodyBytes = 8 << 20

// BackendProvider talks to the flight/airport/chat backend
type BackendProvider struct {
	BaseURL string
	Client  *http.Client
}

// NewBackendProvider creates a provider for baseURL with the given request timeout
func NewBackendProvider(baseURL string, timeout time.Duration) *BackendProvider {
	return &BackendProvider{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchAirports fetches and normalizes GET /api/airports
func (p *BackendProvider) FetchAirports(ctx context.Context) ([]entities.Airport, error) {
	body, _, err := p.doGET(ctx, "/api/airports")
	if err != nil {
		return nil, err
	}

	airports, err := normalize.Airports(body)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeDecodeError,
			Message: constants.GetErrorMessage(constants.ErrCodeDecodeError),
			Details: snippet(body),
			Err:     err,
		}
	}
	return airports, nil
}

// FetchFlights fetches and normalizes GET /api/flights/active
func (p *BackendProvider) FetchFlights(ctx context.Context) ([]entities.Flight, error) {
	body, _, err := p.doGET(ctx, "/api/flights/active")
	if err != nil {
		return nil, err
	}

	flights, err := normalize.Flights(body)
	if err != nil {
		return nil, &ProviderError{
			Code:    constants.ErrCodeDecodeError,
			Message: constants.GetErrorMessage(constants.ErrCodeDecodeError),
			Details: snippet(body),
			Err:     err,
		}
	}
	return flights, nil
}

// Chat forwards a user message plus UI context to POST /api/chat
func (p *BackendProvider) Chat(ctx context.Context, message, uiContext string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &ProviderError{
			Code:    constants.ErrCodeInvalidInput,
			Message: constants.MsgMissingMessage,
		}
	}

	var result dtos.ChatResponse
	if _, err := p.doPost(ctx, "/api/chat", dtos.ChatRequest{Message: message, Context: uiContext}, &result); err != nil {
		return "", err
	}
	return result.Response, nil
}

// TrackFlight resolves the route of an aircraft through POST /api/track-flight
func (p *BackendProvider) TrackFlight(ctx context.Context, icao24 string) (*dtos.TrackFlightResponse, error) {
	if icao24 == "" {
		return nil, &ProviderError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "icao24 cannot be empty",
		}
	}

	var result dtos.TrackFlightResponse
	if _, err := p.doPost(ctx, "/api/track-flight", dtos.TrackFlightRequest{ICAO24: icao24}, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// ============================================================================
// HTTP Helper Methods
// ============================================================================

// doGET performs a GET request and returns the raw body of a 2xx response
func (p *BackendProvider) doGET(ctx context.Context, endpoint string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+endpoint, nil)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Accept", "application/json")

	return p.do(req, endpoint)
}

// doPost performs a POST request with a JSON body and decodes the response into result
func (p *BackendProvider) doPost(ctx context.Context, endpoint string, payload interface{}, result interface{}) (int, error) {
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeInvalidInput,
			Message: "Failed to marshal request body",
			Err:     err,
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+endpoint, bytes.NewReader(payloadBytes))
	if err != nil {
		return 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: "Failed to create request",
			Err:     err,
		}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, status, err := p.do(req, endpoint)
	if err != nil {
		return status, err
	}

	if err := json.Unmarshal(body, result); err != nil {
		return status, &ProviderError{
			Code:       constants.ErrCodeDecodeError,
			Message:    constants.GetErrorMessage(constants.ErrCodeDecodeError),
			StatusCode: status,
			Details:    snippet(body),
			Err:        err,
		}
	}
	return status, nil
}

func (p *BackendProvider) do(req *http.Request, endpoint string) ([]byte, int, error) {
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, 0, &ProviderError{
			Code:    constants.ErrCodeNetworkError,
			Message: constants.GetErrorMessage(constants.ErrCodeNetworkError),
			Err:     err,
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, resp.StatusCode, &ProviderError{
			Code:       constants.ErrCodeNetworkError,
			Message:    "Failed to read response body",
			StatusCode: resp.StatusCode,
			Err:        err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, resp.StatusCode, buildHTTPError(resp.StatusCode, endpoint, body)
	}
	return body, resp.StatusCode, nil
}

// buildHTTPError creates appropriate error based on status code
func buildHTTPError(statusCode int, endpoint string, body []byte) error {
	code := constants.ErrCodeUnexpectedCode
	if statusCode == http.StatusNotFound {
		code = constants.ErrCodeNotFound
	}
	return &ProviderError{
		Code:       code,
		Message:    fmt.Sprintf("%s: %s returned %d", constants.GetErrorMessage(code), endpoint, statusCode),
		StatusCode: statusCode,
		Details:    snippet(body),
	}
}

func snippet(body []byte) string {
	const limit = 256
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
