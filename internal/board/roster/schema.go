package roster

import "solar-crm-client/internal/common/validation"

// SubmissionSchema describes the POST /installation-details payload. The
// board runs it as a final structural check after Validate, before the
// request goes on the wire.
func SubmissionSchema() validation.JSONSchema {
	return validation.JSONSchema{
		Type: "object",
		Required: []string{
			"application_id",
			"store_location",
			"plant_installation_date",
			"technician_details",
			"task_id",
		},
		Properties: map[string]validation.Property{
			"application_id": {
				Type:        "integer",
				Description: "Application the installation belongs to",
			},
			"store_location": {
				Type:        "string",
				Description: "Store handling the installation",
				MinLength:   intPtr(1),
			},
			"plant_installation_date": {
				Type:        "string",
				Description: "Scheduled installation date (YYYY-MM-DD)",
				MinLength:   intPtr(1),
			},
			"technician_details": {
				Type:        "array",
				Description: "Roster of technician assignments",
				Items: &validation.Property{
					Type:     "object",
					Required: []string{"type", "name"},
					Properties: map[string]validation.Property{
						"type": {
							Type: "string",
							Enum: []string{"internal", "external"},
						},
						"id":    {Type: "integer"},
						"name":  {Type: "string"},
						"phone": {Type: "string"},
					},
				},
			},
			"image_uploader_technician_id": {
				Type:        "integer",
				Description: "Internal technician who uploads installation images",
			},
			"task_id": {
				Type:        "integer",
				Description: "Originating task",
			},
		},
		AdditionalProperties: false,
	}
}

func intPtr(i int) *int {
	return &i
}
