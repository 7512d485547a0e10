// Package board is the task board controller: it owns the task list, the
// open modal, and every mutation the board can issue against the CRM.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"solar-crm-client/internal/board/classify"
	"solar-crm-client/internal/board/roster"
	"solar-crm-client/internal/board/uploads"
	"solar-crm-client/internal/common/config"
	"solar-crm-client/internal/common/errors"
	"solar-crm-client/internal/common/logger"
	"solar-crm-client/internal/common/metrics"
	"solar-crm-client/internal/common/validation"
	"solar-crm-client/internal/models"
)

// API is everything the board needs from the CRM client.
type API interface {
	GetTasks(ctx context.Context, employeeID int) ([]models.Task, error)
	UpdateTaskStatus(ctx context.Context, taskID int, status models.TaskStatus) error
	GetInstallationTechnicians(ctx context.Context) ([]models.Technician, error)
	SaveInstallationDetails(ctx context.Context, details models.InstallationDetailsRequest) error

	uploads.API
}

// Modal is the detail view for one open task. Roster is set only in
// installation-details mode, Uploads only in the document modes, EditURL only
// in edit-application mode.
type Modal struct {
	Task    models.Task
	Mode    classify.Mode
	EditURL string
	Roster  *roster.Builder
	Uploads *uploads.Coordinator
}

// Board holds the client-side state for one signed-in user.
type Board struct {
	api     API
	cfg     config.BoardConfig
	session models.Session
	log     logger.Logger

	tasks []models.Task
	modal *Modal

	updating map[int]bool
	saving   bool
}

func New(api API, cfg config.BoardConfig, session models.Session, log logger.Logger) *Board {
	return &Board{
		api:      api,
		cfg:      cfg,
		session:  session,
		log:      log,
		updating: map[int]bool{},
	}
}

// Session returns the signed-in user the board was built for.
func (b *Board) Session() models.Session {
	return b.session
}

// StoreLocations returns the configured store choices for the
// installation-details form.
func (b *Board) StoreLocations() []string {
	return b.cfg.StoreLocations
}

// Refresh replaces the task list with the server's current view.
func (b *Board) Refresh(ctx context.Context) error {
	tasks, err := b.api.GetTasks(ctx, b.session.EmployeeID)
	if err != nil {
		b.log.Error("Failed to fetch tasks", map[string]interface{}{
			"employeeId": b.session.EmployeeID,
			"error":      err.Error(),
		})
		return err
	}

	b.tasks = tasks
	b.log.Debug("Task list refreshed", map[string]interface{}{
		"employeeId": b.session.EmployeeID,
		"count":      len(tasks),
	})
	return nil
}

// Tasks returns a copy of the current task list.
func (b *Board) Tasks() []models.Task {
	out := make([]models.Task, len(b.tasks))
	copy(out, b.tasks)
	return out
}

// Lane returns the tasks in one status column, in server order.
func (b *Board) Lane(status models.TaskStatus) []models.Task {
	var out []models.Task
	for _, task := range b.tasks {
		if task.Status == status {
			out = append(out, task)
		}
	}
	return out
}

// Modal returns the open modal, nil when none.
func (b *Board) Modal() *Modal {
	return b.modal
}

// OpenTask classifies the task and assembles its modal. The side-effect
// fetches (technician catalog, document record) degrade gracefully: a failure
// is logged and the modal opens with an empty catalog or no record.
func (b *Board) OpenTask(ctx context.Context, taskID int) (*Modal, error) {
	task, ok := b.findTask(taskID)
	if !ok {
		return nil, errors.NewValidationError(fmt.Sprintf("Task %d is not on the board", taskID))
	}

	mode := classify.Classify(task, b.session.Role)
	modal := &Modal{Task: task, Mode: mode}

	if mode == classify.ModeEditApplication {
		modal.EditURL = fmt.Sprintf("/applications/%d/edit", task.ApplicationID)
	}

	if mode.NeedsTechnicianCatalog() {
		catalog, err := b.api.GetInstallationTechnicians(ctx)
		if err != nil {
			b.log.Warn("Failed to fetch technician catalog, opening with empty list", map[string]interface{}{
				"taskId": taskID,
				"error":  err.Error(),
			})
			catalog = nil
		}
		modal.Roster = roster.NewBuilder(catalog, b.cfg.MaxTechnicians)
	}

	if mode.NeedsDocuments() {
		coordinator := uploads.NewCoordinator(b.api, b.log)
		if task.ApplicationID > 0 {
			docs, err := b.api.GetRegisterApplicantDocs(ctx, task.ApplicationID)
			if err != nil {
				b.log.Warn("Failed to fetch document record, opening without one", map[string]interface{}{
					"taskId":        taskID,
					"applicationId": task.ApplicationID,
					"error":         err.Error(),
				})
			} else {
				coordinator.SetDocs(docs)
			}
		}
		modal.Uploads = coordinator
	}

	b.modal = modal
	b.log.Info("Task opened", map[string]interface{}{
		"taskId": taskID,
		"mode":   string(mode),
	})
	return modal, nil
}

// CloseModal discards the modal and all of its draft state.
func (b *Board) CloseModal() {
	if b.modal == nil {
		return
	}
	if b.modal.Roster != nil {
		b.modal.Roster.Reset()
	}
	if b.modal.Uploads != nil {
		b.modal.Uploads.Reset()
	}
	b.modal = nil
}

// UpdateStatus moves a task to another column. The local copy changes only
// after the server accepts; a second call for the same task while one is in
// flight is rejected.
func (b *Board) UpdateStatus(ctx context.Context, taskID int, status models.TaskStatus) error {
	const action = "update_task_status"

	if !status.Valid() {
		return errors.NewValidationError(fmt.Sprintf("Unknown task status %q", status))
	}
	if b.updating[taskID] {
		return errors.NewActionInFlightError(action)
	}

	b.updating[taskID] = true
	defer delete(b.updating, taskID)

	start := time.Now()
	if err := b.api.UpdateTaskStatus(ctx, taskID, status); err != nil {
		stdErr := errors.AsStandardError(err)
		metrics.BoardActionsFailed.WithLabelValues(action, string(stdErr.Code)).Inc()
		return stdErr
	}

	b.setLocalStatus(taskID, status)
	metrics.BoardActionsCompleted.WithLabelValues(action).Inc()
	metrics.BoardActionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	b.log.Info("Task status updated", map[string]interface{}{
		"taskId": taskID,
		"status": string(status),
	})
	return nil
}

// SaveInstallationDetails submits the modal's roster draft as one atomic
// request. On success the originating task is marked in progress, the modal
// closes and the task list is refetched.
func (b *Board) SaveInstallationDetails(ctx context.Context) error {
	const action = "save_installation_details"

	modal := b.modal
	if modal == nil || modal.Roster == nil {
		return errors.NewValidationError("No installation details form is open")
	}
	if b.saving {
		return errors.NewActionInFlightError(action)
	}

	if err := modal.Roster.Validate(); err != nil {
		return err
	}

	request := modal.Roster.BuildRequest(modal.Task.ApplicationID, modal.Task.TaskID)
	if err := checkSubmission(request); err != nil {
		return err
	}

	b.saving = true
	defer func() { b.saving = false }()

	start := time.Now()
	if err := b.api.SaveInstallationDetails(ctx, request); err != nil {
		stdErr := errors.AsStandardError(err)
		metrics.BoardActionsFailed.WithLabelValues(action, string(stdErr.Code)).Inc()
		b.log.Error("Failed to save installation details", map[string]interface{}{
			"taskId":        modal.Task.TaskID,
			"applicationId": modal.Task.ApplicationID,
			"error":         stdErr.Message,
		})
		return stdErr
	}

	b.setLocalStatus(modal.Task.TaskID, models.TaskStatusInProgress)
	b.CloseModal()

	metrics.BoardActionsCompleted.WithLabelValues(action).Inc()
	metrics.BoardActionDuration.WithLabelValues(action).Observe(time.Since(start).Seconds())
	b.log.Info("Installation details saved", map[string]interface{}{
		"taskId":        request.TaskID,
		"applicationId": request.ApplicationID,
	})

	// Refetch after the mutation so the board reflects the server's view.
	if err := b.Refresh(ctx); err != nil {
		b.log.Warn("Task refetch after save failed, keeping local view", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return nil
}

// checkSubmission runs the wire-level schema over the marshaled payload as a
// final structural gate behind the form validation.
func checkSubmission(request models.InstallationDetailsRequest) error {
	data, err := json.Marshal(request)
	if err != nil {
		return errors.NewValidationError("Installation details could not be encoded")
	}
	var payload map[string]interface{}
	if err := json.Unmarshal(data, &payload); err != nil {
		return errors.NewValidationError("Installation details could not be encoded")
	}

	result := validation.ValidateInput(payload, roster.SubmissionSchema())
	if !result.Valid {
		return errors.NewValidationError(strings.Join(result.GetErrorMessages(), "; "))
	}
	return nil
}

func (b *Board) findTask(taskID int) (models.Task, bool) {
	for _, task := range b.tasks {
		if task.TaskID == taskID {
			return task, true
		}
	}
	return models.Task{}, false
}

func (b *Board) setLocalStatus(taskID int, status models.TaskStatus) {
	for i := range b.tasks {
		if b.tasks[i].TaskID == taskID {
			b.tasks[i].Status = status
			return
		}
	}
}
