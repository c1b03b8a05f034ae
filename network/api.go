package network

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/automoto/splashed/config"
	"github.com/automoto/splashed/logging"
	"github.com/automoto/splashed/shared/messages"
	"github.com/rs/zerolog"
)

// StatusError is a non-2xx answer from the room API.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("room api returned %d: %s", e.Code, e.Message)
}

// API talks to the room HTTP endpoints.
type API struct {
	BaseURL string
	HTTP    *http.Client
	Tokens  TokenStore
	log     zerolog.Logger
}

func NewAPI(baseURL string, tokens TokenStore) *API {
	if tokens == nil {
		tokens = &MemoryStore{}
	}
	return &API{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: config.Network.RequestTimeout},
		Tokens:  tokens,
		log:     logging.For("api"),
	}
}

// Join asks the server for a room slot and stores the issued token. An
// empty RoomID lets the server pick.
func (a *API) Join(ctx context.Context, req messages.JoinRequest) (messages.JoinResponse, error) {
	var resp messages.JoinResponse

	body, err := json.Marshal(req)
	if err != nil {
		return resp, fmt.Errorf("encode join request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.BaseURL+"/room/join", bytes.NewReader(body))
	if err != nil {
		return resp, fmt.Errorf("build join request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := a.HTTP.Do(httpReq)
	if err != nil {
		return resp, fmt.Errorf("join room: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return resp, statusError(res)
	}
	if err := json.NewDecoder(res.Body).Decode(&resp); err != nil {
		return resp, fmt.Errorf("decode join response: %w", err)
	}
	if err := a.Tokens.SaveToken(resp.Token); err != nil {
		a.log.Warn().Err(err).Msg("could not persist session token")
	}
	a.log.Info().Str("clientId", string(resp.ClientID)).Msg("joined room")
	return resp, nil
}

// FetchSnapshot returns the full room state. A JSON null body yields a nil
// snapshot.
func (a *API) FetchSnapshot(ctx context.Context) (*messages.SnapshotEventData, error) {
	token, err := a.Tokens.LoadToken()
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, ErrNoToken
	}

	u := a.BaseURL + "/room/snapshot?token=" + url.QueryEscape(token)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("build snapshot request: %w", err)
	}
	res, err := a.HTTP.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("fetch snapshot: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, statusError(res)
	}

	var snapshot *messages.SnapshotEventData
	if err := json.NewDecoder(res.Body).Decode(&snapshot); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return snapshot, nil
}

func statusError(res *http.Response) error {
	text, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	msg := strings.TrimSpace(string(text))
	if msg == "" {
		msg = "unknown error"
	}
	return &StatusError{Code: res.StatusCode, Message: msg}
}
