// internal/models/technician.go
package models

// Technician is an entry in the organization's installation-technician
// catalog, served by GET /installation-technicians.
type Technician struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	District string `json:"district,omitempty"`
}

// TechnicianType distinguishes catalog technicians from ad hoc external ones.
type TechnicianType string

const (
	TechnicianInternal TechnicianType = "internal"
	TechnicianExternal TechnicianType = "external"
)

// TechnicianAssignment is one slot in an installation roster.
//
// Invariant: internal assignments carry a catalog ID and name and never a
// phone; external assignments carry a nil ID and require both name and phone.
type TechnicianAssignment struct {
	Type  TechnicianType `json:"type"`
	ID    *int           `json:"id"`
	Name  string         `json:"name"`
	Phone string         `json:"phone"`
}

// InstallationDetailsDraft is the working state of one installation-details
// modal session. It is discarded when the modal closes and submitted
// atomically on save.
type InstallationDetailsDraft struct {
	StoreLocation             string                 `json:"store_location"`
	PlantInstallationDate     string                 `json:"plant_installation_date"`
	TechnicianCount           int                    `json:"technician_count"`
	Technicians               []TechnicianAssignment `json:"technicians"`
	ImageUploaderTechnicianID *int                   `json:"image_uploader_technician_id"`
}

// InstallationDetailsRequest is the payload of POST /installation-details.
// The server creates any follow-on image-upload task.
type InstallationDetailsRequest struct {
	ApplicationID             int                    `json:"application_id"`
	StoreLocation             string                 `json:"store_location"`
	PlantInstallationDate     string                 `json:"plant_installation_date"`
	TechnicianDetails         []TechnicianAssignment `json:"technician_details"`
	ImageUploaderTechnicianID *int                   `json:"image_uploader_technician_id"`
	TaskID                    int                    `json:"task_id"`
}
