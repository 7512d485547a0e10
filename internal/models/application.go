// internal/models/application.go
package models

// ApplicationSummary is the flat application record the server attaches to a
// task. Every field is optional; the client only reads it for display
// summaries, never writes it back.
type ApplicationSummary struct {
	ApplicationID     int    `json:"application_id,omitempty"`
	ApplicantName     string `json:"applicant_name,omitempty"`
	MobileNumber      string `json:"mobile_number,omitempty"`
	EmailID           string `json:"email_id,omitempty"`
	ApplicationStatus string `json:"application_status,omitempty"`

	// Plant specs
	SolarPlantType     string  `json:"solar_plant_type,omitempty"`
	SolarSystemType    string  `json:"solar_system_type,omitempty"`
	PlantSizeKW        float64 `json:"plant_size_kw,omitempty"`
	PlantPrice         float64 `json:"plant_price,omitempty"`
	StructureType      string  `json:"structure_type,omitempty"`
	BuildingFloorCount string  `json:"building_floor_number,omitempty"`
	FreeShadowArea     string  `json:"free_shadow_area,omitempty"`

	// Location
	District            string `json:"district,omitempty"`
	InstallationPincode string `json:"installation_pincode,omitempty"`
	SiteAddress         string `json:"site_address,omitempty"`
	SiteLatitude        string `json:"site_latitude,omitempty"`
	SiteLongitude       string `json:"site_longitude,omitempty"`

	// Payment
	PaymentMode            string  `json:"payment_mode,omitempty"`
	AdvancePaymentMode     string  `json:"advance_payment_mode,omitempty"`
	UPIType                string  `json:"upi_type,omitempty"`
	MarginMoney            float64 `json:"margin_money,omitempty"`
	SpecialFinanceRequired string  `json:"special_finance_required,omitempty"`

	// Special requests
	NameCorrectionRequired  string `json:"name_correction_required,omitempty"`
	CorrectName             string `json:"correct_name,omitempty"`
	LoadEnhancementRequired string `json:"load_enhancement_required,omitempty"`
	CurrentLoad             string `json:"current_load,omitempty"`
	RequiredLoad            string `json:"required_load,omitempty"`
	COTRequired             string `json:"cot_required,omitempty"`
	COTType                 string `json:"cot_type,omitempty"`
	MeterType               string `json:"meter_type,omitempty"`

	// Attribution and scheduling
	SalesExecutiveID         int    `json:"sales_executive_id,omitempty"`
	SalesExecutiveName       string `json:"sales_executive_name,omitempty"`
	InstallationDateFeasible string `json:"installation_date_feasible,omitempty"`
}
