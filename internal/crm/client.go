// Package crm is the HTTP client for the solar CRM backend. All persistence
// and business rules live behind this API; the client only shapes requests
// and classifies failures.
package crm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"solar-crm-client/internal/common/config"
	"solar-crm-client/internal/common/errors"
	commonhttp "solar-crm-client/internal/common/http"
	"solar-crm-client/internal/common/logger"
	"solar-crm-client/internal/common/metrics"
	"solar-crm-client/internal/common/observability"
	"solar-crm-client/internal/models"

	"github.com/google/uuid"
)

type Client struct {
	baseURL    string
	httpClient *commonhttp.Client
	log        logger.Logger
	obs        *observability.Observability
}

// NewClient creates an API client. obs may be nil (tests).
func NewClient(cfg config.APIConfig, log logger.Logger, obs *observability.Observability) *Client {
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: commonhttp.NewClient(time.Duration(cfg.Timeout) * time.Millisecond),
		log:        log,
		obs:        obs,
	}
}

// apiErrorBody is the error envelope of every non-2xx JSON response.
type apiErrorBody struct {
	Error string `json:"error"`
}

// do issues the request, records metrics and maps transport failures to the
// network error class. The caller still owns status-code handling.
func (c *Client) do(ctx context.Context, req *http.Request, endpoint, action string) (*http.Response, error) {
	req.Header.Set("X-Request-Id", uuid.NewString())

	start := time.Now()
	resp, err := c.httpClient.DoWithContext(ctx, req)
	if c.obs != nil {
		c.obs.RecordAPIRequestDuration(ctx, endpoint, time.Since(start))
	}

	if err != nil {
		metrics.APIRequestsTotal.WithLabelValues(endpoint, "network_error").Inc()
		if c.obs != nil {
			c.obs.RecordAPIRequest(ctx, endpoint, "network_error")
		}
		c.log.Error("CRM API request failed", map[string]interface{}{
			"endpoint": endpoint,
			"action":   action,
			"error":    err.Error(),
		})
		return nil, errors.NewNetworkError(action, err)
	}

	status := strconv.Itoa(resp.StatusCode)
	metrics.APIRequestsTotal.WithLabelValues(endpoint, status).Inc()
	if c.obs != nil {
		c.obs.RecordAPIRequest(ctx, endpoint, status)
	}
	return resp, nil
}

// checkResponse drains non-2xx responses into an API error. The server's
// error string is shown verbatim when present; fallback covers its absence.
func checkResponse(action string, resp *http.Response, fallback string) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)
	msg := fallback
	var apiErr apiErrorBody
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error != "" {
		msg = apiErr.Error
	}
	return errors.NewAPIError(action, msg, resp.StatusCode)
}

func (c *Client) newJSONRequest(ctx context.Context, method, url string, payload interface{}) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

// ==========================
// Auth
// ==========================

func (c *Client) Login(ctx context.Context, input models.LoginInput) (*models.Session, error) {
	url := fmt.Sprintf("%s/auth/login", c.baseURL)
	req, err := c.newJSONRequest(ctx, http.MethodPost, url, input)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, req, "auth/login", "login")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkResponse("login", resp, "Login failed."); err != nil {
		return nil, err
	}

	var sess models.Session
	if err := json.NewDecoder(resp.Body).Decode(&sess); err != nil {
		return nil, errors.NewNetworkError("login", err)
	}
	return &sess, nil
}

func (c *Client) Signup(ctx context.Context, input models.SignupInput) error {
	url := fmt.Sprintf("%s/auth/signup", c.baseURL)
	req, err := c.newJSONRequest(ctx, http.MethodPost, url, input)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "auth/signup", "signup")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkResponse("signup", resp, "Signup failed.")
}

// ==========================
// Tasks
// ==========================

func (c *Client) GetTasks(ctx context.Context, employeeID int) ([]models.Task, error) {
	url := fmt.Sprintf("%s/tasks?employee_id=%d", c.baseURL, employeeID)
	req, err := c.newJSONRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, req, "tasks", "fetch tasks")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkResponse("fetch tasks", resp, "Failed to fetch tasks"); err != nil {
		return nil, err
	}

	var tasks []models.Task
	if err := json.NewDecoder(resp.Body).Decode(&tasks); err != nil {
		return nil, errors.NewNetworkError("fetch tasks", err)
	}
	return tasks, nil
}

func (c *Client) UpdateTaskStatus(ctx context.Context, taskID int, status models.TaskStatus) error {
	url := fmt.Sprintf("%s/tasks/%d/status", c.baseURL, taskID)
	req, err := c.newJSONRequest(ctx, http.MethodPatch, url, map[string]interface{}{
		"status": status,
	})
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "tasks/status", "update task status")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkResponse("update task status", resp, "Failed to update task status")
}

// ==========================
// Installation
// ==========================

func (c *Client) GetInstallationTechnicians(ctx context.Context) ([]models.Technician, error) {
	url := fmt.Sprintf("%s/installation-technicians", c.baseURL)
	req, err := c.newJSONRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, req, "installation-technicians", "fetch technicians")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkResponse("fetch technicians", resp, "Failed to fetch technicians"); err != nil {
		return nil, err
	}

	var technicians []models.Technician
	if err := json.NewDecoder(resp.Body).Decode(&technicians); err != nil {
		return nil, errors.NewNetworkError("fetch technicians", err)
	}
	return technicians, nil
}

func (c *Client) SaveInstallationDetails(ctx context.Context, details models.InstallationDetailsRequest) error {
	url := fmt.Sprintf("%s/installation-details", c.baseURL)
	req, err := c.newJSONRequest(ctx, http.MethodPost, url, details)
	if err != nil {
		return err
	}

	resp, err := c.do(ctx, req, "installation-details", "save installation details")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkResponse("save installation details", resp, "Failed to save installation details")
}

// ==========================
// Documents
// ==========================

// GetRegisterApplicantDocs fetches the document-status record for an
// application. A 404 means no documents yet and is not an error.
func (c *Client) GetRegisterApplicantDocs(ctx context.Context, applicationID int) (*models.RegisterApplicantDocs, error) {
	url := fmt.Sprintf("%s/register-applicant/%d", c.baseURL, applicationID)
	req, err := c.newJSONRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.do(ctx, req, "register-applicant", "fetch documents")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if err := checkResponse("fetch documents", resp, "Failed to fetch documents"); err != nil {
		return nil, err
	}

	var docs models.RegisterApplicantDocs
	if err := json.NewDecoder(resp.Body).Decode(&docs); err != nil {
		return nil, errors.NewNetworkError("fetch documents", err)
	}
	return &docs, nil
}

// UploadRegisterDocs submits the registration bundle. files is keyed by the
// form-data field names in models.RegistrationDocFields; absent slots are
// simply not sent.
func (c *Client) UploadRegisterDocs(ctx context.Context, applicationID int, files map[string]models.FileUpload) error {
	body, contentType, err := buildMultipart(map[string]string{
		"application_id": strconv.Itoa(applicationID),
	}, files)
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/register-applicant", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(ctx, req, "register-applicant", "upload documents")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkResponse("upload documents", resp, "Failed to upload files")
}

func (c *Client) UploadIntentDocument(ctx context.Context, applicationID int, file models.FileUpload) error {
	url := fmt.Sprintf("%s/register-applicant/%d/intent", c.baseURL, applicationID)
	return c.uploadSingleDocument(ctx, url, "register-applicant/intent", "upload intent document",
		"intent_document", file, "Failed to upload intent document")
}

func (c *Client) UploadCommissionDocument(ctx context.Context, applicationID int, file models.FileUpload) error {
	url := fmt.Sprintf("%s/register-applicant/%d/commission", c.baseURL, applicationID)
	return c.uploadSingleDocument(ctx, url, "register-applicant/commission", "upload commission document",
		"commission_document", file, "Failed to upload commission document")
}

func (c *Client) uploadSingleDocument(ctx context.Context, url, endpoint, action, field string, file models.FileUpload, fallback string) error {
	body, contentType, err := buildMultipart(nil, map[string]models.FileUpload{field: file})
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.do(ctx, req, endpoint, action)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkResponse(action, resp, fallback)
}

func buildMultipart(fields map[string]string, files map[string]models.FileUpload) (io.Reader, string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := w.WriteField(name, value); err != nil {
			return nil, "", fmt.Errorf("failed to write form field %s: %w", name, err)
		}
	}

	for field, file := range files {
		part, err := w.CreateFormFile(field, file.Filename)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create form file %s: %w", field, err)
		}
		if _, err := part.Write(file.Content); err != nil {
			return nil, "", fmt.Errorf("failed to write form file %s: %w", field, err)
		}
	}

	if err := w.Close(); err != nil {
		return nil, "", fmt.Errorf("failed to finalize form: %w", err)
	}
	return &buf, w.FormDataContentType(), nil
}
