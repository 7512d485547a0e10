// Package render prints the board and modal as plain text for the CLI.
package render

import (
	"fmt"
	"strings"

	"solar-crm-client/internal/board"
	"solar-crm-client/internal/board/classify"
	"solar-crm-client/internal/models"
)

var laneTitles = map[models.TaskStatus]string{
	models.TaskStatusPending:    "Pending",
	models.TaskStatusInProgress: "In Progress",
	models.TaskStatusCompleted:  "Completed",
}

// Board renders the three lanes with one card per task.
func Board(b *board.Board) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Task Board - %s (%s)\n", b.Session().Name, b.Session().Role))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	for _, status := range models.AllTaskStatuses {
		tasks := b.Lane(status)
		sb.WriteString(fmt.Sprintf("\n%s (%d)\n", laneTitles[status], len(tasks)))
		sb.WriteString(strings.Repeat("-", 60) + "\n")
		for _, task := range tasks {
			sb.WriteString(card(task))
		}
	}
	return sb.String()
}

func card(task models.Task) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("  #%d %s\n", task.TaskID, task.Work))
	sb.WriteString(fmt.Sprintf("      %s", task.ApplicantName))
	if task.MobileNumber != "" {
		sb.WriteString(" | " + task.MobileNumber)
	}
	sb.WriteString("\n")
	if task.District != "" || task.PlantSizeKW > 0 {
		sb.WriteString("     ")
		if task.District != "" {
			sb.WriteString(" " + task.District)
		}
		if task.PlantSizeKW > 0 {
			sb.WriteString(fmt.Sprintf(" %.1f kW", task.PlantSizeKW))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Modal renders the open task's detail view for its mode.
func Modal(m *board.Modal) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Task #%d: %s\n", m.Task.TaskID, m.Task.Work))
	sb.WriteString(strings.Repeat("=", 60) + "\n")

	switch m.Mode {
	case classify.ModeEditApplication:
		sb.WriteString(fmt.Sprintf("Open the application form at %s\n", m.EditURL))

	case classify.ModeInstallationDetails:
		sb.WriteString("Installation details form\n")
		sb.WriteString("Available technicians:\n")
		for _, tech := range m.Roster.Catalog() {
			sb.WriteString(fmt.Sprintf("  [%d] %s (%s)\n", tech.ID, tech.Name, tech.District))
		}

	case classify.ModeRegisterDocuments, classify.ModeIntentUpload, classify.ModeCommissionUpload:
		sb.WriteString(documentStatus(m.Uploads.Docs()))

	default:
		sb.WriteString(summary(m.Task))
	}
	return sb.String()
}

func documentStatus(docs *models.RegisterApplicantDocs) string {
	if docs == nil {
		return "No documents uploaded yet\n"
	}

	var sb strings.Builder
	sb.WriteString("Uploaded documents:\n")
	sb.WriteString(docLine("Application form", docs.ApplicationFormURL))
	sb.WriteString(docLine("Feasibility form", docs.FeasibilityFormURL))
	sb.WriteString(docLine("Subsidy form", docs.SubsidyFormURL))
	sb.WriteString(docLine("Plan commissioning form", docs.PlanCommissioningFormURL))
	sb.WriteString(docLine("Intent document", docs.IntentDocumentURL))
	sb.WriteString(docLine("Commission document", docs.CommissionDocURL))
	return sb.String()
}

func docLine(label, url string) string {
	if url == "" {
		return fmt.Sprintf("  %-25s -\n", label)
	}
	return fmt.Sprintf("  %-25s %s\n", label, url)
}

func summary(task models.Task) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Applicant: %s\n", task.ApplicantName))
	if task.MobileNumber != "" {
		sb.WriteString(fmt.Sprintf("Mobile:    %s\n", task.MobileNumber))
	}
	if task.SolarSystemType != "" {
		sb.WriteString(fmt.Sprintf("System:    %s\n", task.SolarSystemType))
	}
	if task.PlantSizeKW > 0 {
		sb.WriteString(fmt.Sprintf("Plant:     %.1f kW\n", task.PlantSizeKW))
	}
	if task.District != "" {
		sb.WriteString(fmt.Sprintf("District:  %s\n", task.District))
	}
	if app := task.Applications; app != nil {
		if app.SiteAddress != "" {
			sb.WriteString(fmt.Sprintf("Address:   %s\n", app.SiteAddress))
		}
		if app.PaymentMode != "" {
			sb.WriteString(fmt.Sprintf("Payment:   %s\n", app.PaymentMode))
		}
	}
	return sb.String()
}
