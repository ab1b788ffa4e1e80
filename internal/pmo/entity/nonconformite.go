package entity

// NonConformity records a minor deviation observed on an action.
// ClosedAt is stamped exactly once, on the transition into Clôturée.
// Reopening does not clear it (observed product behavior, kept as-is).
type NonConformity struct {
	ID             string   `json:"id"`
	ProjectID      string   `json:"project_id"`
	ActionRef      string   `json:"action_ref"`
	Kind           string   `json:"kind"`
	Description    string   `json:"description"`
	OwnerContactID string   `json:"owner_contact_id"`
	ObservedAt     string   `json:"observed_at"`
	Status         NCStatus `json:"status"`
	ClosedAt       *string  `json:"closed_at,omitempty"`
	PhotoURL       *string  `json:"photo_url,omitempty"`
}

// NCStatus is the open/closed lifecycle of a non-conformity.
type NCStatus string

const (
	NCOpen   NCStatus = "Ouverte"
	NCClosed NCStatus = "Clôturée"
)
