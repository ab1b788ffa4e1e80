package entity

// Action is a tracked deliverable on the Kanban board.
// Owner fields reference Contact ids; dates are ISO strings (YYYY-MM-DD).
type Action struct {
	ID                string           `json:"id"`
	ProjectID         string           `json:"project_id"`
	DeliverableName   string           `json:"deliverable_name"`
	TechnicalLot      string           `json:"technical_lot"` // CFO/CFA, FLUIDE/CVC, GO/ARCHI, SSI, Structure
	VersionIndex      string           `json:"version_index"`
	ExecutionOwnerID  string           `json:"execution_owner_id"`
	ValidationOwnerID string           `json:"validation_owner_id"`
	InitialDueDate    string           `json:"initial_due_date"`
	CurrentDueDate    string           `json:"current_due_date"`
	KanbanStatus      KanbanStatus     `json:"kanban_status"`
	AlertCriticality  AlertCriticality `json:"alert_criticality"`
	SlippageReason    string           `json:"slippage_reason"`
	StatusComment     string           `json:"status_comment"`
	DocumentLink      string           `json:"document_link,omitempty"`
	VisaLink          string           `json:"visa_link,omitempty"`
	ReportCount       int              `json:"report_count,omitempty"`
}

// KanbanStatus is one of the five ordered workflow stages.
type KanbanStatus string

const (
	StatusToSubmit    KanbanStatus = "À Soumettre"
	StatusUnderReview KanbanStatus = "En Revue MOE"
	StatusVAO         KanbanStatus = "Validé avec Obs. (VAO)"
	StatusVSO         KanbanStatus = "Validé sans Obs. (VSO)"
	StatusClosed      KanbanStatus = "Clôturé"
)

// KanbanColumns lists the stages in board order.
var KanbanColumns = []KanbanStatus{
	StatusToSubmit,
	StatusUnderReview,
	StatusVAO,
	StatusVSO,
	StatusClosed,
}

// ParseKanbanStatus maps a raw value to a known status. Unknown or missing
// values fall back to the initial stage.
func ParseKanbanStatus(s string) KanbanStatus {
	for _, k := range KanbanColumns {
		if string(k) == s {
			return k
		}
	}
	return StatusToSubmit
}

// AlertCriticality qualifies how urgent an action is.
type AlertCriticality string

const (
	CriticalityNormal   AlertCriticality = "Normal"
	CriticalityWatch    AlertCriticality = "Vigilance"
	CriticalityCritical AlertCriticality = "Retard Critique"
	CriticalityMajorNC  AlertCriticality = "Non-conformité Majeure"
)

// TechnicalLots lists the five technical lot categories.
var TechnicalLots = []string{"CFO/CFA", "FLUIDE/CVC", "GO/ARCHI", "SSI", "Structure"}
