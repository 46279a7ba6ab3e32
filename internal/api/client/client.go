package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/salespoint/internal/models"
)

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewClient() (*Client, error) {
	baseURL := os.Getenv("SALESPOINT_API_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}

	token := os.Getenv("SALESPOINT_API_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("SALESPOINT_API_TOKEN environment variable is not set")
	}

	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}, nil
}

func (c *Client) ListProducts(lowStockOnly bool) ([]models.Product, error) {
	endpoint := "/api/v1/products"
	if lowStockOnly {
		endpoint += "?low_stock=true"
	}
	var products []models.Product
	if err := c.get(endpoint, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) LatestReport(reportType models.ReportType) (*models.Report, error) {
	var record models.Report
	query := url.Values{"type": []string{string(reportType)}}
	if err := c.get("/api/v1/reports/latest?"+query.Encode(), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *Client) ReportHistory(reportType models.ReportType, limit int) ([]models.Report, error) {
	query := url.Values{}
	if reportType != "" {
		query.Set("type", string(reportType))
	}
	if limit > 0 {
		query.Set("limit", fmt.Sprintf("%d", limit))
	}
	var records []models.Report
	if err := c.get("/api/v1/reports?"+query.Encode(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *Client) GenerateReport(reportType models.ReportType, date string) (map[string]interface{}, error) {
	body := map[string]string{"type": string(reportType), "date": date}
	var result map[string]interface{}
	if err := c.post("/api/v1/reports/generate", body, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) ListSchedules() ([]models.ReportSchedule, error) {
	var schedules []models.ReportSchedule
	if err := c.get("/api/v1/schedules", &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Client) get(endpoint string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return err
	}
	return c.do(req, out)
}

func (c *Client) post(endpoint string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, c.baseURL+endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, out)
}

func (c *Client) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("API error (%d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("API error: status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}
