package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Типизация ошибок удалённого API
// клиент не ретраит и не глотает ошибки: решение всегда за вызывающей стороной
var (
	// ErrNotFound — операция ссылается на отсутствующий id (HTTP 404)
	ErrNotFound = errors.New("entity not found")
	// ErrValidation — сервер отверг payload (остальные 4xx)
	ErrValidation = errors.New("payload validation failed")
)

// ServerError — ответ 5xx: причина на стороне сервера
type ServerError struct {
	StatusCode int
	Body       string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error: status %d: %s", e.StatusCode, e.Body)
}

// Client — общая часть REST-клиентов коллекций: базовый адрес и транспорт
// сетевые сбои транспорта возвращаются обёрнутыми ошибками http.Client
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New создаёт базовый клиент API
// timeout применяется ко всему запросу целиком, слой выше таймаутов не задаёт
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// do выполняет один HTTP-вызов и декодирует ответ в out (если out != nil)
// тело запроса, если оно есть, сериализуется в JSON
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	const op = "client.Client.do"

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%s: failed to marshal request body: %w", op, err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("%s: failed to build request: %w", op, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// сбой транспорта: до сервера не дошли или не дождались ответа
		return fmt.Errorf("%s: request failed: %w", op, err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return fmt.Errorf("%s: %s %s: %w", op, method, path, err)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: failed to decode response: %w", op, err)
	}
	return nil
}

// checkStatus переводит не-2xx ответы в таксономию ошибок клиента
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	// тело ошибки короткое, читаем его целиком для диагностики
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	msg := strings.TrimSpace(string(data))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return fmt.Errorf("%w: %s", ErrValidation, msg)
	default:
		return &ServerError{StatusCode: resp.StatusCode, Body: msg}
	}
}
