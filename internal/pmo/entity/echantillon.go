package entity

// Sample is a material sample submitted for validation.
type Sample struct {
	ID                 string       `json:"id"`
	ProjectID          string       `json:"project_id"`
	ProductName        string       `json:"product_name"`
	BrandModelRef      string       `json:"brand_model_ref"`
	ValidationOwnerID  string       `json:"validation_owner_id"`
	ValidationStatus   SampleStatus `json:"validation_status"`
	FireComplianceNote string       `json:"fire_compliance_note"`
	CertificateLink    string       `json:"certificate_link"`
}

// SampleStatus is the validation state of a sample.
type SampleStatus string

const (
	SampleVAO       SampleStatus = "Validé Avec Observation (VAO)"
	SampleVSO       SampleStatus = "Validé Sans Observation (VSO)"
	SampleRejected  SampleStatus = "Refusé"
	SampleToDeliver SampleStatus = "À Livrer"
)
