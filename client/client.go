package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Apartment - детальная проекция квартиры в ответах API.
type Apartment struct {
	ID          string    `json:"id"`
	UnitName    string    `json:"unitName"`
	UnitNumber  string    `json:"unitNumber"`
	Project     string    `json:"project"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	Bedrooms    *int      `json:"bedrooms"`
	Bathrooms   *int      `json:"bathrooms"`
	Area        *float64  `json:"area"`
	Floor       *int      `json:"floor"`
	IsAvailable bool      `json:"isAvailable"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	Images      []string  `json:"images"`
}

// ApartmentListItem - списочная проекция: без описания и таймстемпов.
type ApartmentListItem struct {
	ID          string   `json:"id"`
	UnitName    string   `json:"unitName"`
	UnitNumber  string   `json:"unitNumber"`
	Project     string   `json:"project"`
	Price       *float64 `json:"price"`
	Bedrooms    *int     `json:"bedrooms"`
	Bathrooms   *int     `json:"bathrooms"`
	Area        *float64 `json:"area"`
	Floor       *int     `json:"floor"`
	IsAvailable bool     `json:"isAvailable"`
	Images      []string `json:"images"`
}

// ApartmentsPage - конверт постраничной выдачи, как его отдает сервер.
type ApartmentsPage struct {
	Data         []ApartmentListItem `json:"data"`
	TotalRecords int                 `json:"totalRecords"`
	Page         int                 `json:"page"`
	Limit        int                 `json:"limit"`
	TotalPages   int                 `json:"totalPages"`
}

// Client - HTTP-клиент к REST API листинга.
type Client struct {
	baseURL    string // Например, "http://localhost:3000/api/v1"
	httpClient *http.Client
}

// NewClient - конструктор. baseURL указывается вместе с версионированным префиксом.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// doRequest - внутренний хелпер для выполнения запросов
func (c *Client) doRequest(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("client: failed to create request: %w", err)
	}

	// Каждый запрос несет trace_id, чтобы его можно было найти в логах сервера
	req.Header.Set("X-Trace-ID", uuid.New().String())
	req.Header.Set("Accept", "application/json")

	return c.httpClient.Do(req)
}

// FetchApartments запрашивает страницу квартир по заданным фильтрам.
// Сетевая ошибка и не-2xx статус схлопываются в одну ошибку; ретраев нет.
func (c *Client) FetchApartments(ctx context.Context, filters Filters) (*ApartmentsPage, error) {
	requestURL := c.baseURL + "/apartments"
	if query := filters.Encode(); query != "" {
		requestURL += "?" + query
	}

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("client: failed to fetch apartments: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("client: server returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var page ApartmentsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("client: failed to decode apartments page: %w", err)
	}
	return &page, nil
}

// FetchApartment запрашивает детальную проекцию одной квартиры.
func (c *Client) FetchApartment(ctx context.Context, id string) (*Apartment, error) {
	requestURL := c.baseURL + "/apartments/" + id

	resp, err := c.doRequest(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("client: failed to fetch apartment %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("client: server returned status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apartment Apartment
	if err := json.NewDecoder(resp.Body).Decode(&apartment); err != nil {
		return nil, fmt.Errorf("client: failed to decode apartment: %w", err)
	}
	return &apartment, nil
}
