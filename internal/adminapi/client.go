// Package adminapi предоставляет клиент административного REST API маркетплейса.
//
// На каждый эндпоинт приходится ровно один метод. Метод выполняет один
// HTTP-запрос без повторов и кеширования, разворачивает конверт ответа
// конкретного эндпоинта и возвращает данные в едином клиентском виде.
package adminapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	defaultPage  = 1
	defaultLimit = 20
)

// Client инкапсулирует HTTP-взаимодействие с административным API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Error — нормализованная ошибка административного API.
// Message берётся из тела ответа сервера, если оно есть.
type Error struct {
	Status  int    `json:"-"`
	Message string `json:"error"`
}

// Error возвращает текстовое описание ошибки.
func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("admin api: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("admin api: status %d", e.Status)
}

// NewClient создаёт клиент административного API по указанному адресу.
// Токен добавляется в заголовок Authorization каждого запроса.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

func (c *Client) endpoint(path string, query url.Values) string {
	base := c.baseURL
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		base = "http://" + base
	}
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do выполняет один запрос и декодирует успешный ответ в out.
// Тело body, если оно задано, сериализуется в JSON.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("admin api client not configured")
	}

	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError приводит ответ сервера об ошибке к *Error.
// Если сервер не прислал структурированное тело, остаётся только статус.
func decodeError(resp *http.Response) error {
	apiErr := &Error{Status: resp.StatusCode}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err == nil {
		if payload.Error != "" {
			apiErr.Message = payload.Error
		} else if payload.Message != "" {
			apiErr.Message = payload.Message
		}
	}
	return apiErr
}

// pageQuery возвращает query с обязательными page и limit.
// Нулевые значения заменяются значениями по умолчанию.
func pageQuery(page, limit int) url.Values {
	if page <= 0 {
		page = defaultPage
	}
	if limit <= 0 {
		limit = defaultLimit
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	return q
}

// setIfPresent добавляет параметр только при непустом значении:
// отсутствующий фильтр означает отсутствующий параметр, а не пустую строку.
func setIfPresent(q url.Values, key, value string) {
	if value != "" {
		q.Set(key, value)
	}
}

// uploadMultipart отправляет файл одним multipart-запросом.
func (c *Client) uploadMultipart(ctx context.Context, path, field, filename string, r io.Reader) error {
	if c == nil || c.baseURL == "" {
		return fmt.Errorf("admin api client not configured")
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	if err != nil {
		return fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return fmt.Errorf("copy file: %w", err)
	}
	if err := mw.Close(); err != nil {
		return fmt.Errorf("close multipart: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint(path, nil), &buf)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeError(resp)
	}
	return nil
}
