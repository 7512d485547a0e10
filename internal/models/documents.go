// internal/models/documents.go
package models

// Registration bundle form-data field names accepted by POST
// /register-applicant. The server keys document URLs off these names.
const (
	DocFieldApplicationForm       = "application_form"
	DocFieldFeasibilityForm       = "feasibility_form"
	DocFieldSubsidyForm           = "subsidy_form"
	DocFieldPlanCommissioningForm = "plan_commissioning_form"
)

// RegistrationDocFields lists the four registration bundle slots in upload
// order.
var RegistrationDocFields = []string{
	DocFieldApplicationForm,
	DocFieldFeasibilityForm,
	DocFieldSubsidyForm,
	DocFieldPlanCommissioningForm,
}

// RegisterApplicantDocs is the server's record of uploaded document URLs for
// one application. URLs are server-relative static file paths; an empty field
// means that document has not been uploaded yet.
type RegisterApplicantDocs struct {
	ApplicationID            int    `json:"application_id,omitempty"`
	ApplicationFormURL       string `json:"application_form_url,omitempty"`
	FeasibilityFormURL       string `json:"feasibility_form_url,omitempty"`
	SubsidyFormURL           string `json:"subsidy_form_url,omitempty"`
	PlanCommissioningFormURL string `json:"plan_commissioning_form_url,omitempty"`
	IntentDocumentURL        string `json:"intent_document_url,omitempty"`
	CommissionDocURL         string `json:"commission_doc_url,omitempty"`
}

// FileUpload is a pending file selection: the original filename plus its
// contents, held in memory until the owning flow submits it.
type FileUpload struct {
	Filename string
	Content  []byte
}
