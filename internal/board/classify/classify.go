// Package classify decides which form a task's detail modal renders. The
// task's free-text work description doubles as an informal work-type tag on
// the server side, so classification is a substring match gated by role.
package classify

import (
	"strings"

	"solar-crm-client/internal/models"
)

// Mode selects the form/view the task modal renders.
type Mode string

const (
	// ModeEditApplication navigates to the application edit screen instead
	// of rendering a modal.
	ModeEditApplication Mode = "edit_application"

	ModeRegisterDocuments   Mode = "register_documents"
	ModeIntentUpload        Mode = "intent_upload"
	ModeCommissionUpload    Mode = "commission_upload"
	ModeInstallationDetails Mode = "installation_details"

	// ModeGeneric is the read-only applicant/plant summary.
	ModeGeneric Mode = "generic"
)

// Keyword list the server embeds in task descriptions. Order matters: the
// first match wins, so a work string containing both "register" and "indent"
// resolves to the register flow. Do not reorder.
const (
	keywordCompleteForm = "complete applicant form"
	keywordRegister     = "register"
	keywordIntent       = "indent"
	keywordCommission   = "commissioning report"
	keywordInstallation = "customer details"
)

// Classify maps (task, role) to exactly one Mode. Pure function of the
// lowercased work text and the role.
func Classify(task models.Task, role models.Role) Mode {
	work := strings.ToLower(task.Work)

	switch {
	case role == models.RoleSalesExecutive && strings.Contains(work, keywordCompleteForm):
		return ModeEditApplication
	case role == models.RoleSystemAdmin && strings.Contains(work, keywordRegister):
		return ModeRegisterDocuments
	case role == models.RoleSystemAdmin && strings.Contains(work, keywordIntent):
		return ModeIntentUpload
	case role == models.RoleSystemAdmin && strings.Contains(work, keywordCommission):
		return ModeCommissionUpload
	case role == models.RoleOperationsEngineer && strings.Contains(work, keywordInstallation):
		return ModeInstallationDetails
	default:
		return ModeGeneric
	}
}

// NeedsDocuments reports whether the mode works against the application's
// document-status record and should fetch it on modal open.
func (m Mode) NeedsDocuments() bool {
	switch m {
	case ModeRegisterDocuments, ModeIntentUpload, ModeCommissionUpload:
		return true
	}
	return false
}

// NeedsTechnicianCatalog reports whether the mode requires the
// installation-technician catalog.
func (m Mode) NeedsTechnicianCatalog() bool {
	return m == ModeInstallationDetails
}
