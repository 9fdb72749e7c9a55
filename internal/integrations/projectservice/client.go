package projectservice

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ReservationService/internal/domain"
)

// Client клиент для работы с ProjectService
// Строки заказа создаются при преобразовании заказа в проект и здесь только читаются
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента ProjectService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// GetServiceLine получает строку заказа с требованиями к компетенциям
func (c *Client) GetServiceLine(ctx context.Context, id uuid.UUID) (*domain.ServiceLine, error) {
	url := fmt.Sprintf("%s/internal/prestations/%s", c.baseURL, id)

	var line ServiceLine
	if err := c.get(ctx, url, ErrServiceLineNotFound, &line); err != nil {
		return nil, err
	}

	return line.ToDomain(), nil
}

// ListServiceLines получает все строки заказа проекта
func (c *Client) ListServiceLines(ctx context.Context, projectID uuid.UUID) ([]*domain.ServiceLine, error) {
	url := fmt.Sprintf("%s/internal/projects/%s/prestations", c.baseURL, projectID)

	var lines []ServiceLine
	if err := c.get(ctx, url, ErrProjectNotFound, &lines); err != nil {
		return nil, err
	}

	result := make([]*domain.ServiceLine, 0, len(lines))
	for i := range lines {
		result = append(result, lines[i].ToDomain())
	}

	c.log.Info("ProjectService: project_id=%s, service_lines=%d", projectID, len(result))
	return result, nil
}

func (c *Client) get(ctx context.Context, url string, notFound error, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error("ProjectService unavailable: url=%s, error=%v", url, err)
		return fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return notFound
	case http.StatusBadRequest:
		return fmt.Errorf("%w: invalid identifier format", ErrInvalidResponse)
	default:
		body, _ := io.ReadAll(resp.Body)
		var errResp ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Message != "" {
			return fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, errResp.Message)
		}
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
