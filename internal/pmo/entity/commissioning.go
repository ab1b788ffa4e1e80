package entity

// CommissioningMilestone tracks a commissioning (Cx) milestone and its DOE
// submission state.
type CommissioningMilestone struct {
	ID                      string    `json:"id"`
	ProjectID               string    `json:"project_id"`
	MilestoneName           string    `json:"milestone_name"`
	PlannedDate             string    `json:"planned_date"`
	ActualDate              *string   `json:"actual_date,omitempty"`
	ScriptsValidated        bool      `json:"scripts_validated"`
	CalibratedEquipmentNote string    `json:"calibrated_equipment_note"`
	DOEStatus               DOEStatus `json:"doe_status"`
}

// DOEStatus is the state of the DOE (dossier des ouvrages exécutés).
type DOEStatus string

const (
	DOEToSubmit DOEStatus = "À Soumettre"
	DOEInReview DOEStatus = "En Revue"
	DOEClosed   DOEStatus = "Clôturé"
)
