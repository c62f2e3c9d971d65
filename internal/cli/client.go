package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tycoon/internal/auth"
	"tycoon/internal/game"
)

type Client struct {
	BaseURL string
	HTTP    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// APIError is a non-2xx response. Message is the server's "error" field when
// the body carries one.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api status %d: %s", e.Status, e.Message)
}

type TurnResult struct {
	State  game.GameState  `json:"state"`
	Report game.TurnReport `json:"report"`
}

func (c *Client) Signup(ctx context.Context, username, password string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/signup", "", map[string]any{
		"username": username,
		"password": password,
	}, &out)
	return out, err
}

func (c *Client) Login(ctx context.Context, username, password string) (auth.Session, error) {
	var out auth.Session
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/auth/login", "", map[string]any{
		"username": username,
		"password": password,
	}, &out)
	return out, err
}

func (c *Client) NewGame(ctx context.Context, accessToken, playerName string) (game.GameState, error) {
	var out game.GameState
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/game", accessToken, map[string]any{
		"player_name": playerName,
	}, &out)
	return out, err
}

func (c *Client) State(ctx context.Context, accessToken string) (game.GameState, error) {
	var out game.GameState
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/game", accessToken, nil, &out)
	return out, err
}

func (c *Client) Dashboard(ctx context.Context, accessToken string) (game.Dashboard, error) {
	var out game.Dashboard
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/game/dashboard", accessToken, nil, &out)
	return out, err
}

func (c *Client) Turn(ctx context.Context, accessToken string) (TurnResult, error) {
	var out TurnResult
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/game/turn", accessToken, nil, &out)
	return out, err
}

// Act sends an action to its resource route.
func (c *Client) Act(ctx context.Context, accessToken string, a game.Action) (game.GameState, error) {
	method, path, body := actionRequest(a)
	var out game.GameState
	err := c.jsonRequest(ctx, method, path, accessToken, body, &out)
	return out, err
}

func actionRequest(a game.Action) (string, string, any) {
	id := url.PathEscape(a.TargetID)
	item := url.PathEscape(a.ItemID)
	switch a.Kind {
	case game.ActionBuyBusiness:
		return http.MethodPost, "/v1/businesses/" + id + "/buy", nil
	case game.ActionUpgradeBusiness:
		return http.MethodPost, "/v1/businesses/" + id + "/upgrade", nil
	case game.ActionSellBusiness:
		return http.MethodPost, "/v1/businesses/" + id + "/sell", nil
	case game.ActionQuickMoney:
		return http.MethodPost, "/v1/businesses/" + id + "/boost", nil
	case game.ActionBuyUpgrade:
		return http.MethodPost, "/v1/businesses/" + id + "/upgrades/" + item + "/buy", nil
	case game.ActionApplyStrategy:
		return http.MethodPost, "/v1/businesses/" + id + "/strategies/" + item + "/apply", nil
	case game.ActionBuyStock:
		return http.MethodPost, "/v1/stocks/" + id + "/buy", map[string]any{"quantity": a.Quantity}
	case game.ActionSellStock:
		return http.MethodPost, "/v1/stocks/" + id + "/sell", map[string]any{"quantity": a.Quantity}
	case game.ActionBuyAsset:
		return http.MethodPost, "/v1/assets/" + id + "/buy", nil
	case game.ActionSellAsset:
		return http.MethodPost, "/v1/assets/" + id + "/sell", nil
	default:
		return http.MethodPost, "/v1/game/actions", a
	}
}

func (c *Client) ListSaves(ctx context.Context, accessToken string) ([]game.SaveSummary, error) {
	var out struct {
		Saves []game.SaveSummary `json:"saves"`
	}
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/saves", accessToken, nil, &out)
	return out.Saves, err
}

func (c *Client) CreateSave(ctx context.Context, accessToken, name string) (game.SaveSummary, error) {
	var out game.SaveSummary
	err := c.jsonRequest(ctx, http.MethodPost, "/v1/saves", accessToken, map[string]any{"name": name}, &out)
	return out, err
}

func (c *Client) UpdateSave(ctx context.Context, accessToken, saveID, name string) (game.SaveSummary, error) {
	var out game.SaveSummary
	err := c.jsonRequest(ctx, http.MethodPut, "/v1/saves/"+url.PathEscape(saveID), accessToken, map[string]any{"name": name}, &out)
	return out, err
}

func (c *Client) LoadSave(ctx context.Context, accessToken, saveID string) (game.GameState, error) {
	var out game.GameState
	err := c.jsonRequest(ctx, http.MethodGet, "/v1/saves/"+url.PathEscape(saveID), accessToken, nil, &out)
	return out, err
}

func (c *Client) DeleteSave(ctx context.Context, accessToken, saveID string) error {
	return c.jsonRequest(ctx, http.MethodDelete, "/v1/saves/"+url.PathEscape(saveID), accessToken, nil, nil)
}

func (c *Client) jsonRequest(ctx context.Context, method, path, accessToken string, in any, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if accessToken != "" {
		req.Header.Set("Authorization", "Bearer "+accessToken)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		apiErr := &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(raw))}
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
		}
		return apiErr
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
