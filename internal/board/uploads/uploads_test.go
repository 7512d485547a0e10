// internal/board/uploads/uploads_test.go
package uploads

import (
	"context"
	"testing"

	"solar-crm-client/internal/common/errors"
	"solar-crm-client/internal/common/logger"
	"solar-crm-client/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

type fakeAPI struct {
	docs    *models.RegisterApplicantDocs
	docsErr error

	registerErr   error
	intentErr     error
	commissionErr error

	registeredFiles map[string]models.FileUpload
	intentFile      *models.FileUpload
	commissionFile  *models.FileUpload

	onIntentUpload func() error
}

func (f *fakeAPI) GetRegisterApplicantDocs(ctx context.Context, applicationID int) (*models.RegisterApplicantDocs, error) {
	if f.docsErr != nil {
		return nil, f.docsErr
	}
	return f.docs, nil
}

func (f *fakeAPI) UploadRegisterDocs(ctx context.Context, applicationID int, files map[string]models.FileUpload) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.registeredFiles = files
	return nil
}

func (f *fakeAPI) UploadIntentDocument(ctx context.Context, applicationID int, file models.FileUpload) error {
	if f.onIntentUpload != nil {
		if err := f.onIntentUpload(); err != nil {
			return err
		}
	}
	if f.intentErr != nil {
		return f.intentErr
	}
	f.intentFile = &file
	return nil
}

func (f *fakeAPI) UploadCommissionDocument(ctx context.Context, applicationID int, file models.FileUpload) error {
	if f.commissionErr != nil {
		return f.commissionErr
	}
	f.commissionFile = &file
	return nil
}

func testFile(name string) *models.FileUpload {
	return &models.FileUpload{Filename: name, Content: []byte("content of " + name)}
}

func newTestCoordinator(api *fakeAPI) *Coordinator {
	return NewCoordinator(api, logger.NewNoOpLogger())
}

// ==========================
// Registration Bundle Tests
// ==========================

func TestSubmitRegistration_RequiresSelection(t *testing.T) {
	c := newTestCoordinator(&fakeAPI{})

	err := c.SubmitRegistration(context.Background(), 42)
	assert.True(t, errors.IsValidation(err))
}

func TestSubmitRegistration_Success(t *testing.T) {
	api := &fakeAPI{
		docs: &models.RegisterApplicantDocs{ApplicationFormURL: "/static/docs/42/application.pdf"},
	}
	c := newTestCoordinator(api)
	require.NoError(t, c.SelectRegistrationFile(models.DocFieldApplicationForm, testFile("application.pdf")))
	require.NoError(t, c.SelectRegistrationFile(models.DocFieldSubsidyForm, testFile("subsidy.pdf")))

	err := c.SubmitRegistration(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, api.registeredFiles, 2)
	assert.Equal(t, "application.pdf", api.registeredFiles[models.DocFieldApplicationForm].Filename)
	assert.Equal(t, "subsidy.pdf", api.registeredFiles[models.DocFieldSubsidyForm].Filename)

	// Selections cleared and docs refreshed.
	assert.Zero(t, c.PendingRegistrationCount())
	require.NotNil(t, c.Docs())
	assert.Equal(t, "/static/docs/42/application.pdf", c.Docs().ApplicationFormURL)
}

func TestSubmitRegistration_FailureLeavesStateUntouched(t *testing.T) {
	api := &fakeAPI{registerErr: errors.NewAPIError("upload documents", "disk full", 500)}
	c := newTestCoordinator(api)
	previous := &models.RegisterApplicantDocs{IntentDocumentURL: "/static/docs/42/intent.pdf"}
	c.SetDocs(previous)
	require.NoError(t, c.SelectRegistrationFile(models.DocFieldApplicationForm, testFile("application.pdf")))

	err := c.SubmitRegistration(context.Background(), 42)

	require.Error(t, err)
	assert.Equal(t, errors.ErrCodeAPIError, errors.AsStandardError(err).Code)
	assert.Equal(t, 1, c.PendingRegistrationCount())
	assert.Same(t, previous, c.Docs())
}

func TestSelectRegistrationFile_UnknownField(t *testing.T) {
	c := newTestCoordinator(&fakeAPI{})

	err := c.SelectRegistrationFile("random_form", testFile("x.pdf"))
	assert.True(t, errors.IsValidation(err))
}

func TestSelectRegistrationFile_NilClearsSlot(t *testing.T) {
	c := newTestCoordinator(&fakeAPI{})
	require.NoError(t, c.SelectRegistrationFile(models.DocFieldFeasibilityForm, testFile("f.pdf")))
	require.NoError(t, c.SelectRegistrationFile(models.DocFieldFeasibilityForm, nil))

	assert.Zero(t, c.PendingRegistrationCount())
}

// ==========================
// Single Document Tests
// ==========================

func TestSubmitIntent_Success(t *testing.T) {
	api := &fakeAPI{docs: &models.RegisterApplicantDocs{IntentDocumentURL: "/static/docs/42/intent.pdf"}}
	c := newTestCoordinator(api)
	c.SelectIntentFile(testFile("intent.pdf"))

	require.NoError(t, c.SubmitIntent(context.Background(), 42))

	require.NotNil(t, api.intentFile)
	assert.Equal(t, "intent.pdf", api.intentFile.Filename)
	assert.Equal(t, "/static/docs/42/intent.pdf", c.Docs().IntentDocumentURL)
}

func TestSubmitIntent_RequiresSelection(t *testing.T) {
	c := newTestCoordinator(&fakeAPI{})
	assert.True(t, errors.IsValidation(c.SubmitIntent(context.Background(), 42)))
}

func TestSubmitIntent_RejectedWhileInFlight(t *testing.T) {
	api := &fakeAPI{}
	c := newTestCoordinator(api)
	c.SelectIntentFile(testFile("intent.pdf"))

	var reentrant error
	api.onIntentUpload = func() error {
		reentrant = c.SubmitIntent(context.Background(), 42)
		return nil
	}

	require.NoError(t, c.SubmitIntent(context.Background(), 42))
	require.Error(t, reentrant)
	assert.Equal(t, errors.ErrCodeActionInFlight, errors.AsStandardError(reentrant).Code)
}

func TestSubmitCommission_FailureKeepsSelection(t *testing.T) {
	api := &fakeAPI{commissionErr: errors.NewNetworkError("upload commission document", assert.AnError)}
	c := newTestCoordinator(api)
	c.SelectCommissionFile(testFile("commission.pdf"))

	err := c.SubmitCommission(context.Background(), 42)

	require.Error(t, err)
	// The selection survives, so a retry needs no re-pick.
	require.NoError(t, func() error {
		api.commissionErr = nil
		return c.SubmitCommission(context.Background(), 42)
	}())
	require.NotNil(t, api.commissionFile)
	assert.Equal(t, "commission.pdf", api.commissionFile.Filename)
}

func TestSubmit_RefetchFailureKeepsPreviousDocs(t *testing.T) {
	api := &fakeAPI{docsErr: errors.NewNetworkError("fetch documents", assert.AnError)}
	c := newTestCoordinator(api)
	previous := &models.RegisterApplicantDocs{SubsidyFormURL: "/static/docs/42/subsidy.pdf"}
	c.SetDocs(previous)
	c.SelectIntentFile(testFile("intent.pdf"))

	require.NoError(t, c.SubmitIntent(context.Background(), 42))

	assert.Same(t, previous, c.Docs())
}

func TestReset_ClearsEverything(t *testing.T) {
	c := newTestCoordinator(&fakeAPI{})
	c.SetDocs(&models.RegisterApplicantDocs{})
	require.NoError(t, c.SelectRegistrationFile(models.DocFieldApplicationForm, testFile("a.pdf")))
	c.SelectIntentFile(testFile("i.pdf"))
	c.SelectCommissionFile(testFile("c.pdf"))

	c.Reset()

	assert.Nil(t, c.Docs())
	assert.Zero(t, c.PendingRegistrationCount())
	assert.True(t, errors.IsValidation(c.SubmitIntent(context.Background(), 42)))
	assert.True(t, errors.IsValidation(c.SubmitCommission(context.Background(), 42)))
}
