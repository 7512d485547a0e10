// internal/crm/client_test.go
package crm

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"solar-crm-client/internal/common/config"
	"solar-crm-client/internal/common/errors"
	"solar-crm-client/internal/common/logger"
	"solar-crm-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func newTestClient(serverURL string) *Client {
	return NewClient(config.APIConfig{BaseURL: serverURL, Timeout: 5000}, logger.NewNoOpLogger(), nil)
}

func jsonResponse(t *testing.T, w http.ResponseWriter, status int, body interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

// ==========================
// Task Endpoint Tests
// ==========================

func TestGetTasks_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/tasks", r.URL.Path)
		assert.Equal(t, "12", r.URL.Query().Get("employee_id"))
		assert.NotEmpty(t, r.Header.Get("X-Request-Id"))

		jsonResponse(t, w, http.StatusOK, []models.Task{
			{TaskID: 1, ApplicationID: 10, Work: "Register applicant documents", Status: models.TaskStatusPending},
			{TaskID: 2, ApplicationID: 11, Work: "Upload indent", Status: models.TaskStatusInProgress},
		})
	}))
	defer server.Close()

	tasks, err := newTestClient(server.URL).GetTasks(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	assert.Equal(t, 1, tasks[0].TaskID)
	assert.Equal(t, models.TaskStatusInProgress, tasks[1].Status)
}

func TestGetTasks_ServerErrorMessageIsVerbatim(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusInternalServerError, map[string]string{"error": "database unavailable"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetTasks(context.Background(), 12)
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeAPIError, stdErr.Code)
	assert.Equal(t, "database unavailable", stdErr.Message)
	assert.True(t, stdErr.Retryable)
}

func TestGetTasks_FallbackMessageWhenBodyHasNoError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).GetTasks(context.Background(), 12)
	require.Error(t, err)
	assert.Equal(t, "Failed to fetch tasks", errors.AsStandardError(err).Message)
}

func TestGetTasks_NetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused

	_, err := newTestClient(server.URL).GetTasks(context.Background(), 12)
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, errors.ErrCodeNetworkFailure, stdErr.Code)
	assert.Equal(t, "Network error. Please try again.", stdErr.Message)
	assert.True(t, stdErr.Retryable)
}

func TestUpdateTaskStatus_Request(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/tasks/5/status", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"status":"completed"}`, string(body))

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestClient(server.URL).UpdateTaskStatus(context.Background(), 5, models.TaskStatusCompleted)
	assert.NoError(t, err)
}

// ==========================
// Auth Endpoint Tests
// ==========================

func TestLogin_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/login", r.URL.Path)

		var input models.LoginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "ravi@example.com", input.EmailID)

		jsonResponse(t, w, http.StatusOK, models.Session{
			EmployeeID: 12,
			Name:       "Ravi",
			Role:       models.RoleSystemAdmin,
		})
	}))
	defer server.Close()

	sess, err := newTestClient(server.URL).Login(context.Background(), models.LoginInput{
		EmailID:  "ravi@example.com",
		Password: "secret",
	})
	require.NoError(t, err)
	assert.Equal(t, 12, sess.EmployeeID)
	assert.Equal(t, models.RoleSystemAdmin, sess.Role)
}

func TestLogin_BadCredentials(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Login(context.Background(), models.LoginInput{
		EmailID:  "ravi@example.com",
		Password: "wrong",
	})
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, "Invalid email or password", stdErr.Message)
	assert.False(t, stdErr.Retryable)
}

// ==========================
// Installation Endpoint Tests
// ==========================

func TestSaveInstallationDetails_PayloadKeepsNullID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/installation-details", r.URL.Path)

		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"application_id": 42,
			"store_location": "Varanasi",
			"plant_installation_date": "2026-09-15",
			"technician_details": [
				{"type": "external", "id": null, "name": "Outside Crew", "phone": "9999999999"}
			],
			"image_uploader_technician_id": null,
			"task_id": 5
		}`, string(body))

		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	err := newTestClient(server.URL).SaveInstallationDetails(context.Background(), models.InstallationDetailsRequest{
		ApplicationID:         42,
		StoreLocation:         "Varanasi",
		PlantInstallationDate: "2026-09-15",
		TechnicianDetails: []models.TechnicianAssignment{
			{Type: models.TechnicianExternal, ID: nil, Name: "Outside Crew", Phone: "9999999999"},
		},
		TaskID: 5,
	})
	assert.NoError(t, err)
}

func TestGetInstallationTechnicians_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/installation-technicians", r.URL.Path)
		jsonResponse(t, w, http.StatusOK, []models.Technician{
			{ID: 7, Name: "Ravi Kumar", District: "Varanasi"},
		})
	}))
	defer server.Close()

	technicians, err := newTestClient(server.URL).GetInstallationTechnicians(context.Background())
	require.NoError(t, err)
	require.Len(t, technicians, 1)
	assert.Equal(t, "Ravi Kumar", technicians[0].Name)
}

// ==========================
// Document Endpoint Tests
// ==========================

func TestGetRegisterApplicantDocs_NotFoundMeansNoRecord(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register-applicant/42", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL).GetRegisterApplicantDocs(context.Background(), 42)
	require.NoError(t, err)
	assert.Nil(t, docs)
}

func TestGetRegisterApplicantDocs_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		jsonResponse(t, w, http.StatusOK, models.RegisterApplicantDocs{
			ApplicationID:      42,
			ApplicationFormURL: "/static/docs/42/application.pdf",
		})
	}))
	defer server.Close()

	docs, err := newTestClient(server.URL).GetRegisterApplicantDocs(context.Background(), 42)
	require.NoError(t, err)
	require.NotNil(t, docs)
	assert.Equal(t, "/static/docs/42/application.pdf", docs.ApplicationFormURL)
}

func TestUploadRegisterDocs_MultipartFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/register-applicant", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		assert.Equal(t, "42", r.FormValue("application_id"))

		file, header, err := r.FormFile(models.DocFieldApplicationForm)
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "application.pdf", header.Filename)

		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "form bytes", string(content))

		_, _, err = r.FormFile(models.DocFieldSubsidyForm)
		assert.Error(t, err) // unselected slots are not sent

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestClient(server.URL).UploadRegisterDocs(context.Background(), 42, map[string]models.FileUpload{
		models.DocFieldApplicationForm: {Filename: "application.pdf", Content: []byte("form bytes")},
	})
	assert.NoError(t, err)
}

func TestUploadIntentDocument_Request(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/register-applicant/42/intent", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))

		_, header, err := r.FormFile("intent_document")
		require.NoError(t, err)
		assert.Equal(t, "intent.pdf", header.Filename)

		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	err := newTestClient(server.URL).UploadIntentDocument(context.Background(), 42,
		models.FileUpload{Filename: "intent.pdf", Content: []byte("intent bytes")})
	assert.NoError(t, err)
}

func TestUploadCommissionDocument_FailureMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/register-applicant/42/commission", r.URL.Path)
		jsonResponse(t, w, http.StatusBadRequest, map[string]string{"error": "unsupported file type"})
	}))
	defer server.Close()

	err := newTestClient(server.URL).UploadCommissionDocument(context.Background(), 42,
		models.FileUpload{Filename: "commission.exe", Content: []byte("nope")})
	require.Error(t, err)

	stdErr := errors.AsStandardError(err)
	assert.Equal(t, "unsupported file type", stdErr.Message)
	assert.False(t, stdErr.Retryable)
}
