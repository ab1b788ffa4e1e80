package entity

// QualityHSEDocument tracks a quality or HSE control document for a lot.
type QualityHSEDocument struct {
	ID                string    `json:"id"`
	ProjectID         string    `json:"project_id"`
	DocumentType      string    `json:"document_type"`
	AssociatedLot     string    `json:"associated_lot"`
	FinalStatus       HSEStatus `json:"final_status"`
	UpdateSatisfied   bool      `json:"update_satisfied"`
	SignedControlLink string    `json:"signed_control_link"`
}

// HSEStatus is the final status of a quality/HSE document.
type HSEStatus string

const (
	HSEInProgress     HSEStatus = "En cours"
	HSEUpdateRequired HSEStatus = "MAJ Requise"
	HSEClosed         HSEStatus = "Clôturé"
)
