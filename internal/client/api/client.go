package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/iudanet/zennotes/pkg/api"
)

//go:generate moq -out noteapi_mock.go . NoteAPI

// NoteAPI describes the remote note service consumed by the sync engine
type NoteAPI interface {
	// Create создает заметку с выбранным клиентом ID
	Create(ctx context.Context, req api.CreateNoteRequest) (*api.Note, error)

	// Patch обновляет заметку, BaseVersion - токен оптимистичной блокировки
	Patch(ctx context.Context, id string, req api.UpdateNoteRequest) (*api.Note, error)

	// Remove помечает заметку удалённой, возвращает tombstone
	Remove(ctx context.Context, id string, baseVersion int64) (*api.Note, error)

	// GetAll возвращает полный список заметок
	GetAll(ctx context.Context) (*ListResult, error)

	// GetSince возвращает заметки, изменённые после cursor
	GetSince(ctx context.Context, cursor string) (*ListResult, error)
}

// ListResult is a listing response with the server-supplied next cursor
type ListResult struct {
	NextCursor string
	Notes      []*api.Note
}

const notesPath = "/api/v1/notes"

// Client представляет HTTP клиент для взаимодействия с сервером
type Client struct {
	httpClient *http.Client
	validate   *validator.Validate
	baseURL    string
	token      string
}

// Option настраивает Client
type Option func(*Client)

// WithToken задаёт bearer token для всех запросов
func WithToken(token string) Option {
	return func(c *Client) {
		c.token = token
	}
}

// WithTimeout задаёт таймаут HTTP запросов
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// NewClient создает новый API клиент
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:  strings.TrimRight(baseURL, "/"),
		validate: validator.New(validator.WithRequiredStructEnabled()),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовки Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the server base URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Token returns the configured bearer token
func (c *Client) Token() string {
	return c.token
}

// Create создает заметку на сервере
func (c *Client) Create(ctx context.Context, req api.CreateNoteRequest) (*api.Note, error) {
	var note api.Note
	if _, err := c.doRequest(ctx, http.MethodPost, notesPath, req, &note); err != nil {
		return nil, fmt.Errorf("create note %s: %w", req.ID, err)
	}
	if err := c.validateNote(&note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Patch обновляет заметку
func (c *Client) Patch(ctx context.Context, id string, req api.UpdateNoteRequest) (*api.Note, error) {
	var note api.Note
	if _, err := c.doRequest(ctx, http.MethodPatch, notePath(id), req, &note); err != nil {
		return nil, fmt.Errorf("patch note %s: %w", id, err)
	}
	if err := c.validateNote(&note); err != nil {
		return nil, err
	}
	return &note, nil
}

// Remove помечает заметку удалённой
func (c *Client) Remove(ctx context.Context, id string, baseVersion int64) (*api.Note, error) {
	path := notePath(id) + "?" + api.QueryBaseVersion + "=" + strconv.FormatInt(baseVersion, 10)

	var note api.Note
	if _, err := c.doRequest(ctx, http.MethodDelete, path, nil, &note); err != nil {
		return nil, fmt.Errorf("remove note %s: %w", id, err)
	}
	if err := c.validateNote(&note); err != nil {
		return nil, err
	}
	return &note, nil
}

// GetAll возвращает полный список заметок
func (c *Client) GetAll(ctx context.Context) (*ListResult, error) {
	return c.list(ctx, notesPath)
}

// GetSince возвращает заметки, изменённые после cursor
func (c *Client) GetSince(ctx context.Context, cursor string) (*ListResult, error) {
	return c.list(ctx, notesPath+"?"+api.QuerySince+"="+url.QueryEscape(cursor))
}

// Health проверяет доступность сервера
func (c *Client) Health(ctx context.Context) (*api.HealthResponse, error) {
	var resp api.HealthResponse
	if _, err := c.doRequest(ctx, http.MethodGet, "/api/v1/health", nil, &resp); err != nil {
		return nil, fmt.Errorf("health check failed: %w", err)
	}
	return &resp, nil
}

// EventsURL returns the websocket URL of the server change stream
func (c *Client) EventsURL() string {
	u := c.baseURL + notesPath + "/events"
	switch {
	case strings.HasPrefix(u, "https://"):
		return "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		return "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u
}

func (c *Client) list(ctx context.Context, path string) (*ListResult, error) {
	var notes []*api.Note
	header, err := c.doRequest(ctx, http.MethodGet, path, nil, &notes)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}

	for _, n := range notes {
		if err := c.validateNote(n); err != nil {
			return nil, err
		}
	}

	return &ListResult{
		Notes:      notes,
		NextCursor: header.Get(api.HeaderNextCursor),
	}, nil
}

// validateNote проверяет схему ответа; некорректный ответ - ошибка класса сервера
func (c *Client) validateNote(n *api.Note) error {
	if n == nil {
		return fmt.Errorf("%w: empty note in response", ErrServer)
	}
	if err := c.validate.Struct(n); err != nil {
		return fmt.Errorf("%w: malformed note in response: %v", ErrServer, err)
	}
	return nil
}

func notePath(id string) string {
	return notesPath + "/" + url.PathEscape(id)
}

// doRequest выполняет HTTP запрос и классифицирует ответ
func (c *Client) doRequest(ctx context.Context, method, path string, body, result any) (http.Header, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сетевые ошибки - транзиентные, как 5xx
		return nil, fmt.Errorf("%w: request failed: %v", ErrServer, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read response body: %v", ErrServer, err)
	}

	switch {
	case resp.StatusCode == http.StatusConflict:
		return nil, c.conflictError(respBody)
	case resp.StatusCode == http.StatusNotFound:
		return nil, &statusError{kind: ErrNotFound, status: resp.StatusCode, message: errorMessage(respBody)}
	case resp.StatusCode >= 500:
		return nil, &statusError{kind: ErrServer, status: resp.StatusCode, message: errorMessage(respBody)}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return nil, &statusError{kind: ErrBadRequest, status: resp.StatusCode, message: errorMessage(respBody)}
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return nil, fmt.Errorf("%w: failed to decode response: %v", ErrServer, err)
		}
	}

	return resp.Header, nil
}

// conflictError декодирует текущую серверную запись из тела 409
func (c *Client) conflictError(body []byte) error {
	var current api.Note
	if err := json.Unmarshal(body, &current); err != nil {
		return fmt.Errorf("%w: failed to decode conflict payload: %v", ErrServer, err)
	}
	if err := c.validateNote(&current); err != nil {
		return err
	}
	return &ConflictError{Current: &current}
}

func errorMessage(body []byte) string {
	var errResp api.ErrorResponse
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		if errResp.Message != "" {
			return errResp.Error + ": " + errResp.Message
		}
		return errResp.Error
	}
	return strings.TrimSpace(string(body))
}
