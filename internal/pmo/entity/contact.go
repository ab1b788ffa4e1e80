package entity

// Contact is a project-scoped person referenced by actions and
// non-conformities. Contacts are the only collection the views consume
// unfiltered, so names resolve across projects.
type Contact struct {
	ID          string      `json:"id"`
	ProjectID   string      `json:"project_id"`
	FirstName   string      `json:"first_name"`
	LastName    string      `json:"last_name"`
	Email       string      `json:"email"`
	Phone       string      `json:"phone"`
	Function    string      `json:"function"`
	CompanyRole CompanyRole `json:"company_role"`
}

// FullName returns "First Last" as displayed and matched by quick-add.
func (c Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

// CompanyRole classifies the contact's employer.
type CompanyRole string

const (
	RoleArchitect        CompanyRole = "Architecte"
	RoleConstructionFirm CompanyRole = "Entreprise Construction"
	RoleTechnicalFirm    CompanyRole = "Entreprise Technique"
	RolePMO              CompanyRole = "PMO"
	RoleOther            CompanyRole = "Autre"
)
