// Package uploads manages the pending file selections and submissions for
// the three document flows: the registration bundle, the intent document,
// and the commissioning report.
package uploads

import (
	"context"
	"fmt"
	"time"

	"solar-crm-client/internal/common/errors"
	"solar-crm-client/internal/common/logger"
	"solar-crm-client/internal/common/metrics"
	"solar-crm-client/internal/models"
)

// API is the slice of the CRM client the coordinator needs.
type API interface {
	GetRegisterApplicantDocs(ctx context.Context, applicationID int) (*models.RegisterApplicantDocs, error)
	UploadRegisterDocs(ctx context.Context, applicationID int, files map[string]models.FileUpload) error
	UploadIntentDocument(ctx context.Context, applicationID int, file models.FileUpload) error
	UploadCommissionDocument(ctx context.Context, applicationID int, file models.FileUpload) error
}

// Coordinator holds per-flow selections and busy flags for one modal
// session. The three flows are independent: an in-flight intent upload does
// not block a commissioning upload.
type Coordinator struct {
	api API
	log logger.Logger

	docs *models.RegisterApplicantDocs

	registration map[string]models.FileUpload
	intent       *models.FileUpload
	commission   *models.FileUpload

	uploadingRegistration bool
	uploadingIntent       bool
	uploadingCommission   bool
}

func NewCoordinator(api API, log logger.Logger) *Coordinator {
	return &Coordinator{
		api:          api,
		log:          log,
		registration: map[string]models.FileUpload{},
	}
}

// Docs returns the last fetched document-status record, nil when none.
func (c *Coordinator) Docs() *models.RegisterApplicantDocs {
	return c.docs
}

// SetDocs seeds the record fetched on modal open.
func (c *Coordinator) SetDocs(docs *models.RegisterApplicantDocs) {
	c.docs = docs
}

// SelectRegistrationFile stages a file for one of the four named bundle
// slots. A nil file clears the slot.
func (c *Coordinator) SelectRegistrationFile(field string, file *models.FileUpload) error {
	if !validRegistrationField(field) {
		return errors.NewValidationError(fmt.Sprintf("Unknown document field %q", field))
	}
	if file == nil {
		delete(c.registration, field)
		return nil
	}
	c.registration[field] = *file
	return nil
}

func (c *Coordinator) SelectIntentFile(file *models.FileUpload) {
	c.intent = file
}

func (c *Coordinator) SelectCommissionFile(file *models.FileUpload) {
	c.commission = file
}

// PendingRegistrationCount reports how many bundle slots have selections.
func (c *Coordinator) PendingRegistrationCount() int {
	return len(c.registration)
}

// SubmitRegistration uploads every staged bundle slot in one multipart
// request. Requires at least one selection.
func (c *Coordinator) SubmitRegistration(ctx context.Context, applicationID int) error {
	const action = "upload_registration_docs"

	if c.uploadingRegistration {
		return errors.NewActionInFlightError(action)
	}
	if len(c.registration) == 0 {
		return errors.NewValidationError("Please select at least one file to upload")
	}

	c.uploadingRegistration = true
	defer func() { c.uploadingRegistration = false }()

	return c.submit(ctx, action, applicationID, func() error {
		files := make(map[string]models.FileUpload, len(c.registration))
		for field, file := range c.registration {
			files[field] = file
		}
		return c.api.UploadRegisterDocs(ctx, applicationID, files)
	}, func() {
		c.registration = map[string]models.FileUpload{}
	})
}

// SubmitIntent uploads the staged intent document.
func (c *Coordinator) SubmitIntent(ctx context.Context, applicationID int) error {
	const action = "upload_intent"

	if c.uploadingIntent {
		return errors.NewActionInFlightError(action)
	}
	if c.intent == nil {
		return errors.NewValidationError("Please select an intent document to upload")
	}

	c.uploadingIntent = true
	defer func() { c.uploadingIntent = false }()

	return c.submit(ctx, action, applicationID, func() error {
		return c.api.UploadIntentDocument(ctx, applicationID, *c.intent)
	}, func() {
		c.intent = nil
	})
}

// SubmitCommission uploads the staged commissioning report.
func (c *Coordinator) SubmitCommission(ctx context.Context, applicationID int) error {
	const action = "upload_commission"

	if c.uploadingCommission {
		return errors.NewActionInFlightError(action)
	}
	if c.commission == nil {
		return errors.NewValidationError("Please select a commission document to upload")
	}

	c.uploadingCommission = true
	defer func() { c.uploadingCommission = false }()

	return c.submit(ctx, action, applicationID, func() error {
		return c.api.UploadCommissionDocument(ctx, applicationID, *c.commission)
	}, func() {
		c.commission = nil
	})
}

// submit runs one upload: on failure every selection and the docs record stay
// untouched; on success the selection is cleared and the docs record is
// refetched. A failed refetch keeps the previous record rather than blanking
// already-uploaded URLs.
func (c *Coordinator) submit(ctx context.Context, action string, applicationID int, upload func() error, clear func()) error {
	start := time.Now()

	if err := upload(); err != nil {
		stdErr := errors.AsStandardError(err)
		metrics.BoardActionsFailed.WithLabelValues(action, string(stdErr.Code)).Inc()
		c.log.Error("Document upload failed", map[string]interface{}{
			"action":        action,
			"applicationId": applicationID,
			"errorCode":     stdErr.Code,
			"error":         stdErr.Message,
		})
		return stdErr
	}

	clear()

	docs, err := c.api.GetRegisterApplicantDocs(ctx, applicationID)
	if err != nil {
		c.log.Warn("Failed to refresh document record after upload", map[string]interface{}{
			"action":        action,
			"applicationId": applicationID,
			"error":         err.Error(),
		})
	} else {
		c.docs = docs
	}

	metrics.BoardActionsCompleted.WithLabelValues(action).Inc()
	metrics.BoardActionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	c.log.Info("Document upload completed", map[string]interface{}{
		"action":        action,
		"applicationId": applicationID,
	})
	return nil
}

// Reset discards all selections and the docs record (modal close).
func (c *Coordinator) Reset() {
	c.docs = nil
	c.registration = map[string]models.FileUpload{}
	c.intent = nil
	c.commission = nil
}

func validRegistrationField(field string) bool {
	for _, f := range models.RegistrationDocFields {
		if f == field {
			return true
		}
	}
	return false
}
