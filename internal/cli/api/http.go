package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Error - ответ сервера со статусом не 2xx.
type Error struct {
	Status   int
	Message  string
	Messages []string
}

func (e *Error) Error() string {
	if len(e.Messages) > 1 {
		return strings.Join(e.Messages, "; ")
	}
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// StatusOf возвращает HTTP статус из ошибки клиента или 0.
func StatusOf(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
}

type AuthResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type Item struct {
	ID          int64     `json:"id"`
	UUID        string    `json:"uuid"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Owner       *string   `json:"owner"`
	Category    *string   `json:"category"`
	Tags        []string  `json:"tags"`
	OwnerID     *int64    `json:"owner_id"`
	CategoryID  *int64    `json:"category_id"`
	TagIDs      []int64   `json:"tag_ids"`
}

type ItemList struct {
	Items  []Item `json:"items"`
	Total  int64  `json:"total"`
	Limit  *int   `json:"limit"`
	Offset *int   `json:"offset"`
}

type Category struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

type Tag struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// ItemFields - поля элемента для создания/частичного обновления; nil поля не отправляются.
type ItemFields struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	CategoryID  *int64   `json:"category_id,omitempty"`
	TagIDs      *[]int64 `json:"tag_ids,omitempty"`
}

// ItemQuery - параметры GET /api/items.
type ItemQuery struct {
	Search     string
	CategoryID int64
	TagIDs     []int64
	Limit      *int
	Offset     *int
}

func (q ItemQuery) values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.CategoryID > 0 {
		v.Set("category_id", strconv.FormatInt(q.CategoryID, 10))
	}
	for _, id := range q.TagIDs {
		v.Add("tag_id", strconv.FormatInt(id, 10))
	}
	if q.Limit != nil {
		v.Set("limit", strconv.Itoa(*q.Limit))
	}
	if q.Offset != nil {
		v.Set("offset", strconv.Itoa(*q.Offset))
	}
	return v
}

// Client - HTTP клиент JSON API каталога. Token передаётся как Bearer.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Token:   token,
		HTTP:    &http.Client{Timeout: 15 * time.Second},
	}
}

// Do отправляет запрос и декодирует успешный ответ в out (если out != nil).
func (c *Client) Do(ctx context.Context, method, path string, payload, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, raw)
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func decodeError(status int, raw []byte) error {
	var body struct {
		Error  string   `json:"error"`
		Errors []string `json:"errors"`
	}
	e := &Error{Status: status}
	if json.Unmarshal(raw, &body) == nil {
		e.Message, e.Messages = body.Error, body.Errors
	}
	if e.Message == "" && len(e.Messages) == 0 {
		e.Message = strings.TrimSpace(string(raw))
	}
	if e.Message == "" && len(e.Messages) > 0 {
		e.Message = e.Messages[0]
	}
	return e
}

func (c *Client) Register(ctx context.Context, username, email, password string) (*AuthResult, error) {
	var res AuthResult
	payload := map[string]string{"username": username, "email": email, "password": password}
	if err := c.Do(ctx, http.MethodPost, "/api/auth/register", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	var res AuthResult
	payload := map[string]string{"username": username, "password": password}
	if err := c.Do(ctx, http.MethodPost, "/api/auth/login", payload, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) User(ctx context.Context, id int64) (*User, error) {
	var u User
	if err := c.Do(ctx, http.MethodGet, fmt.Sprintf("/api/users/%d", id), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *Client) Items(ctx context.Context, q ItemQuery) (*ItemList, error) {
	path := "/api/items"
	if v := q.values(); len(v) > 0 {
		path += "?" + v.Encode()
	}
	var list ItemList
	if err := c.Do(ctx, http.MethodGet, path, nil, &list); err != nil {
		return nil, err
	}
	return &list, nil
}

// Item ищет элемент по числовому id либо по uuid.
func (c *Client) Item(ctx context.Context, ref string) (*Item, error) {
	path := "/api/items/uuid/" + url.PathEscape(ref)
	if _, err := strconv.ParseInt(ref, 10, 64); err == nil {
		path = "/api/items/" + ref
	}
	var it Item
	if err := c.Do(ctx, http.MethodGet, path, nil, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) CreateItem(ctx context.Context, f ItemFields) (*Item, error) {
	var it Item
	if err := c.Do(ctx, http.MethodPost, "/api/items", f, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) UpdateItem(ctx context.Context, id int64, f ItemFields) (*Item, error) {
	var it Item
	if err := c.Do(ctx, http.MethodPut, fmt.Sprintf("/api/items/%d", id), f, &it); err != nil {
		return nil, err
	}
	return &it, nil
}

func (c *Client) DeleteItem(ctx context.Context, id int64) error {
	return c.Do(ctx, http.MethodDelete, fmt.Sprintf("/api/items/%d", id), nil, nil)
}

func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var cats []Category
	if err := c.Do(ctx, http.MethodGet, "/api/categories", nil, &cats); err != nil {
		return nil, err
	}
	return cats, nil
}

func (c *Client) Tags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.Do(ctx, http.MethodGet, "/api/tags", nil, &tags); err != nil {
		return nil, err
	}
	return tags, nil
}

func (c *Client) CreateTag(ctx context.Context, name string) (*Tag, error) {
	var tag Tag
	if err := c.Do(ctx, http.MethodPost, "/api/tags", map[string]string{"name": name}, &tag); err != nil {
		return nil, err
	}
	return &tag, nil
}
