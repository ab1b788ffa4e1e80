package entity

// HistoryEntry is an append-only audit record of a notable event on an
// action. Entries are never mutated or deleted individually; the local
// collection keeps them newest first.
type HistoryEntry struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	ActionRef string    `json:"action_ref"`
	LoggedAt  string    `json:"logged_at"` // RFC 3339
	EventType EventType `json:"event_type"`
	Detail    string    `json:"detail"`
}

// EventType classifies a history entry.
type EventType string

const (
	EventCreation     EventType = "Création"
	EventStatusChange EventType = "Changement de statut"
	EventDateChange   EventType = "Modification de date"
	EventOwnerChange  EventType = "Changement de responsable"
	EventComment      EventType = "Ajout de commentaire"
)
