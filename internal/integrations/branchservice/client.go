package branchservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент для работы с BranchService (каталог филиалов)
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента BranchService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetBranch получает филиал по ID
func (c *Client) GetBranch(ctx context.Context, branchID int64) (*Branch, error) {
	url := fmt.Sprintf("%s/internal/branches/%d", c.baseURL, branchID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrBranchNotFound
	default:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var branch Branch
	if err := json.NewDecoder(resp.Body).Decode(&branch); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	if branch.Timezone != "" {
		if _, err := time.LoadLocation(branch.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidResponse, branch.Timezone)
		}
	}

	return &branch, nil
}

// GetBranchWithGracefulDegradation получает филиал с graceful degradation
// При недоступности BranchService возвращает ErrServiceDegraded,
// вызывающая сторона использует часовой пояс по умолчанию
func (c *Client) GetBranchWithGracefulDegradation(ctx context.Context, branchID int64) (*Branch, error) {
	branch, err := c.GetBranch(ctx, branchID)
	if err != nil {
		if errors.Is(err, ErrBranchNotFound) {
			c.log.Info("GetBranch: branch=%d not found", branchID)
			return nil, err
		}

		// Отмена запроса клиентом - не деградация сервиса
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.log.Error("GetBranch: BranchService unavailable, applying graceful degradation for branch=%d: %v", branchID, err)
		return nil, fmt.Errorf("%w: branch=%d, error=%v", ErrServiceDegraded, branchID, err)
	}

	return branch, nil
}
