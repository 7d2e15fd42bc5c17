package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"time"

	"github.com/mfergus/tiller/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Tiller/1.0"
)

// SubmitError carries the server's rejection of a staff submission so
// the caller can surface the server-provided message verbatim.
type SubmitError struct {
	Status  int
	Message string
}

func (e *SubmitError) Error() string {
	return fmt.Sprintf("submit rejected: status %d: %s", e.Status, e.Message)
}

// Client implements domain.CatalogClient against the record service's
// HTTP API.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewClient creates a new record service API client.
func NewClient(baseURL, token string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

// doRequest performs an authenticated HTTP request and maps transport
// and auth failures onto domain errors.
func (c *Client) doRequest(ctx context.Context, method, path string, query url.Values, contentType string, reqBody io.Reader) (int, []byte, error) {
	reqURL := fmt.Sprintf("%s%s", c.baseURL, path)
	if query != nil {
		reqURL = fmt.Sprintf("%s?%s", reqURL, query.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug("catalog request", "method", method, "url", reqURL)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("catalog request failed", "error", err)
		return 0, nil, domain.ErrServerOffline
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		return resp.StatusCode, body, domain.ErrAuthFailed
	}

	return resp.StatusCode, body, nil
}

// serverMessage pulls the message field out of an error response body,
// falling back to the raw status when the body is not parseable.
func serverMessage(status int, body []byte) string {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err == nil && eb.Message != "" {
		return eb.Message
	}
	return fmt.Sprintf("unexpected status %d", status)
}

// ListRecords returns catalog rows, optionally narrowed by a
// server-side filter term.
func (c *Client) ListRecords(ctx context.Context, filter string) ([]domain.RecordSummary, error) {
	var query url.Values
	if filter != "" {
		query = url.Values{}
		query.Set("filter", filter)
	}

	status, body, err := c.doRequest(ctx, http.MethodGet, "/records", query, "", nil)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		c.logger.Error("list records error", "status", status, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", status)
	}

	var resp listResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapSummaries(resp.Records), nil
}

// GetRecord fetches the full record for an identifier.
func (c *Client) GetRecord(ctx context.Context, id string) (*domain.RecordDetail, error) {
	path := fmt.Sprintf("/records/%s", url.PathEscape(id))
	status, body, err := c.doRequest(ctx, http.MethodGet, path, nil, "", nil)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, domain.ErrRecordNotFound
	}
	if status != http.StatusOK {
		c.logger.Error("get record error", "status", status, "body", string(body))
		return nil, fmt.Errorf("unexpected status code: %d", status)
	}

	var dto recordDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return MapDetail(dto), nil
}

// DeleteRecord removes a record by identifier.
func (c *Client) DeleteRecord(ctx context.Context, id string) error {
	path := fmt.Sprintf("/records/%s", url.PathEscape(id))
	status, body, err := c.doRequest(ctx, http.MethodDelete, path, nil, "", nil)
	if err != nil {
		return err
	}
	if status == http.StatusNotFound {
		return domain.ErrRecordNotFound
	}
	if status != http.StatusOK && status != http.StatusNoContent {
		c.logger.Error("delete record error", "status", status, "body", string(body))
		return fmt.Errorf("unexpected status code: %d", status)
	}
	return nil
}

// CreateStaff submits the onboarding form with its attachments as a
// multipart request. A non-2xx response becomes a *SubmitError so the
// caller can show the server's own message.
func (c *Client) CreateStaff(ctx context.Context, form domain.StaffForm, assets []domain.AssetDraft) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fields := map[string]string{
		"name":          form.Name,
		"email":         form.Email,
		"phoneNumber":   form.PhoneNumber,
		"joiningDate":   form.JoiningDate,
		"role":          form.Role,
		"termsAccepted": strconv.FormatBool(form.TermsAccepted),
	}
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return fmt.Errorf("failed to build form: %w", err)
		}
	}

	for _, a := range assets {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="file"; filename="%s"`, a.Name))
		h.Set("Content-Type", a.MIMEType)
		part, err := w.CreatePart(h)
		if err != nil {
			return fmt.Errorf("failed to build form: %w", err)
		}
		if _, err := part.Write(a.Data); err != nil {
			return fmt.Errorf("failed to build form: %w", err)
		}
	}

	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to build form: %w", err)
	}

	status, body, err := c.doRequest(ctx, http.MethodPost, "/staff", nil, w.FormDataContentType(), &buf)
	if err != nil {
		return err
	}
	if status != http.StatusOK && status != http.StatusCreated {
		c.logger.Error("create staff error", "status", status, "body", string(body))
		return &SubmitError{Status: status, Message: serverMessage(status, body)}
	}
	return nil
}
