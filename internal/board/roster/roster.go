// Package roster builds and validates the technician roster for one
// installation-details modal session.
package roster

import (
	"fmt"

	"solar-crm-client/internal/common/errors"
	"solar-crm-client/internal/models"
)

// Builder holds the draft of one modal session. It lives from modal open to
// submit or close and is never shared across sessions.
type Builder struct {
	draft   models.InstallationDetailsDraft
	catalog []models.Technician
	maxSize int
}

// NewBuilder creates an empty draft. catalog may be empty when the catalog
// fetch failed; internal selections will then never resolve, which surfaces
// at validation, not here.
func NewBuilder(catalog []models.Technician, maxSize int) *Builder {
	return &Builder{
		draft: models.InstallationDetailsDraft{
			Technicians: []models.TechnicianAssignment{},
		},
		catalog: catalog,
		maxSize: maxSize,
	}
}

// Draft returns a copy of the current draft state.
func (b *Builder) Draft() models.InstallationDetailsDraft {
	out := b.draft
	out.Technicians = make([]models.TechnicianAssignment, len(b.draft.Technicians))
	copy(out.Technicians, b.draft.Technicians)
	return out
}

// Catalog returns the available-technician catalog for this session.
func (b *Builder) Catalog() []models.Technician {
	return b.catalog
}

func (b *Builder) SetStoreLocation(location string) {
	b.draft.StoreLocation = location
}

func (b *Builder) SetInstallationDate(date string) {
	b.draft.PlantInstallationDate = date
}

// SetCount resizes the roster to n slots. Entries below min(old, n) keep
// their edits; new slots default to an unselected internal technician.
// Shrinking to zero also clears the image uploader.
func (b *Builder) SetCount(n int) {
	if n < 0 {
		n = 0
	}
	if n > b.maxSize {
		n = b.maxSize
	}

	technicians := make([]models.TechnicianAssignment, n)
	for i := 0; i < n; i++ {
		if i < len(b.draft.Technicians) {
			technicians[i] = b.draft.Technicians[i]
			continue
		}
		technicians[i] = models.TechnicianAssignment{
			Type:  models.TechnicianInternal,
			ID:    nil,
			Name:  "",
			Phone: "",
		}
	}

	b.draft.TechnicianCount = n
	b.draft.Technicians = technicians
	if n == 0 {
		b.draft.ImageUploaderTechnicianID = nil
	}
}

// SetType switches slot i between internal and external. Name is cleared
// unconditionally; ID is nulled only when switching to internal (an external
// slot never had one); phone is cleared only when switching to external.
func (b *Builder) SetType(i int, t models.TechnicianType) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}

	tech := &b.draft.Technicians[i]
	tech.Type = t
	tech.Name = ""
	if t == models.TechnicianInternal {
		tech.ID = nil
	}
	if t == models.TechnicianExternal {
		tech.Phone = ""
	}
	return nil
}

// SelectInternal resolves technicianID against the catalog and fills slot i
// with the match's id and name. A missing or unknown id clears the slot's
// selection instead.
func (b *Builder) SelectInternal(i int, technicianID int) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}

	tech := &b.draft.Technicians[i]
	for _, entry := range b.catalog {
		if entry.ID == technicianID {
			id := entry.ID
			tech.ID = &id
			tech.Name = entry.Name
			return nil
		}
	}

	tech.ID = nil
	tech.Name = ""
	return nil
}

// ExternalField names the editable fields of an external technician slot.
type ExternalField string

const (
	FieldName  ExternalField = "name"
	FieldPhone ExternalField = "phone"
)

// SetExternalField edits the name or phone of slot i.
func (b *Builder) SetExternalField(i int, field ExternalField, value string) error {
	if err := b.checkIndex(i); err != nil {
		return err
	}

	tech := &b.draft.Technicians[i]
	switch field {
	case FieldName:
		tech.Name = value
	case FieldPhone:
		tech.Phone = value
	default:
		return errors.NewValidationError(fmt.Sprintf("Unknown technician field %q", field))
	}
	return nil
}

// SetUploader records which technician will upload installation images. A nil
// id clears the selection.
func (b *Builder) SetUploader(id *int) {
	if id == nil {
		b.draft.ImageUploaderTechnicianID = nil
		return
	}
	v := *id
	b.draft.ImageUploaderTechnicianID = &v
}

// Reset discards the draft, keeping the catalog.
func (b *Builder) Reset() {
	b.draft = models.InstallationDetailsDraft{
		Technicians: []models.TechnicianAssignment{},
	}
}

func (b *Builder) checkIndex(i int) error {
	if i < 0 || i >= len(b.draft.Technicians) {
		return errors.NewValidationError(fmt.Sprintf("Technician %d does not exist", i+1))
	}
	return nil
}

// Validate runs the ordered submission checks, stopping at the first failure.
// Messages are user-facing.
func (b *Builder) Validate() error {
	if b.draft.StoreLocation == "" {
		return errors.NewValidationError("Please select a store location")
	}
	if b.draft.PlantInstallationDate == "" {
		return errors.NewValidationError("Please select plant installation date")
	}

	if b.draft.TechnicianCount > 0 {
		for i, tech := range b.draft.Technicians {
			switch tech.Type {
			case models.TechnicianInternal:
				if tech.ID == nil || tech.Name == "" {
					return errors.NewValidationError(
						fmt.Sprintf("Please select a technician for Technician %d", i+1))
				}
			case models.TechnicianExternal:
				if tech.Name == "" || tech.Phone == "" {
					return errors.NewValidationError(
						fmt.Sprintf("Please enter name and phone for external Technician %d", i+1))
				}
			}
		}

		if b.draft.ImageUploaderTechnicianID == nil {
			return errors.NewValidationError(
				"Please select which internal technician will upload installation images")
		}

		uploaderValid := false
		for _, tech := range b.draft.Technicians {
			if tech.Type == models.TechnicianInternal && tech.ID != nil &&
				*tech.ID == *b.draft.ImageUploaderTechnicianID {
				uploaderValid = true
				break
			}
		}
		if !uploaderValid {
			return errors.NewValidationError(
				"Image uploader must be one of the selected internal technicians")
		}
	}

	return nil
}

// BuildRequest assembles the atomic submission payload. Callers must run
// Validate first; BuildRequest does not re-check.
func (b *Builder) BuildRequest(applicationID, taskID int) models.InstallationDetailsRequest {
	draft := b.Draft()
	return models.InstallationDetailsRequest{
		ApplicationID:             applicationID,
		StoreLocation:             draft.StoreLocation,
		PlantInstallationDate:     draft.PlantInstallationDate,
		TechnicianDetails:         draft.Technicians,
		ImageUploaderTechnicianID: draft.ImageUploaderTechnicianID,
		TaskID:                    taskID,
	}
}
