// Package mapper translates between the store's wire rows (legacy French
// snake_case columns) and the in-memory entities. The wire schema is fixed
// by the existing database and cannot change; everything above this
// package speaks entities only.
package mapper

import (
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/gateway"
)

// putID writes the id column only when the entity already has a canonical
// id. Inserts leave it out so the store mints one via its column default.
func putID(row gateway.Row, id string, includeID bool) {
	if includeID && id != "" {
		row["id"] = id
	}
}

func ProjectFromWire(row gateway.Row) entity.Project {
	return entity.Project{
		ID:   asString(row, "id"),
		Name: asString(row, "nom_projet"),
	}
}

func ProjectToWire(p entity.Project, includeID bool) gateway.Row {
	row := gateway.Row{"nom_projet": p.Name}
	putID(row, p.ID, includeID)
	return row
}

func ActionFromWire(row gateway.Row) entity.Action {
	return entity.Action{
		ID:                asString(row, "id"),
		ProjectID:         asString(row, "projet_id"),
		DeliverableName:   asString(row, "nom_livrable"),
		TechnicalLot:      asString(row, "lot_technique"),
		VersionIndex:      asString(row, "indice_version"),
		ExecutionOwnerID:  asString(row, "resp_execution"),
		ValidationOwnerID: asString(row, "resp_validation_ppl"),
		InitialDueDate:    asString(row, "date_limite_init"),
		CurrentDueDate:    asString(row, "derniere_limite"),
		KanbanStatus:      entity.ParseKanbanStatus(asString(row, "statut_kanban")),
		AlertCriticality:  entity.AlertCriticality(asString(row, "criticite_alerte")),
		SlippageReason:    asString(row, "cause_glissement"),
		StatusComment:     asString(row, "commentaire_statut"),
		DocumentLink:      asString(row, "lien_drive_doc"),
		VisaLink:          asString(row, "lien_fiche_visa"),
		ReportCount:       asInt(row, "nombre_reports"),
	}
}

func ActionToWire(a entity.Action, includeID bool) gateway.Row {
	row := gateway.Row{
		"projet_id":           a.ProjectID,
		"nom_livrable":        a.DeliverableName,
		"lot_technique":       a.TechnicalLot,
		"indice_version":      a.VersionIndex,
		"resp_execution":      a.ExecutionOwnerID,
		"resp_validation_ppl": a.ValidationOwnerID,
		"date_limite_init":    a.InitialDueDate,
		"derniere_limite":     a.CurrentDueDate,
		"statut_kanban":       string(a.KanbanStatus),
		"criticite_alerte":    string(a.AlertCriticality),
		"cause_glissement":    a.SlippageReason,
		"commentaire_statut":  a.StatusComment,
		"lien_drive_doc":      a.DocumentLink,
		"lien_fiche_visa":     a.VisaLink,
		"nombre_reports":      a.ReportCount,
	}
	putID(row, a.ID, includeID)
	return row
}

func ContactFromWire(row gateway.Row) entity.Contact {
	return entity.Contact{
		ID:          asString(row, "id"),
		ProjectID:   asString(row, "projet_id"),
		FirstName:   asString(row, "first_name"),
		LastName:    asString(row, "last_name"),
		Email:       asString(row, "email"),
		Phone:       asString(row, "phone"),
		Function:    asString(row, "function"),
		CompanyRole: entity.CompanyRole(asString(row, "company_role")),
	}
}

func ContactToWire(c entity.Contact, includeID bool) gateway.Row {
	row := gateway.Row{
		"projet_id":    c.ProjectID,
		"first_name":   c.FirstName,
		"last_name":    c.LastName,
		"email":        c.Email,
		"phone":        c.Phone,
		"function":     c.Function,
		"company_role": string(c.CompanyRole),
	}
	putID(row, c.ID, includeID)
	return row
}

func HistoryFromWire(row gateway.Row) entity.HistoryEntry {
	return entity.HistoryEntry{
		ID:        asString(row, "id"),
		ProjectID: asString(row, "projet_id"),
		ActionRef: asString(row, "id_action_ref"),
		LoggedAt:  asString(row, "date_log"),
		EventType: entity.EventType(asString(row, "type_evenement")),
		Detail:    asString(row, "evenement_detail"),
	}
}

func HistoryToWire(h entity.HistoryEntry, includeID bool) gateway.Row {
	row := gateway.Row{
		"projet_id":        h.ProjectID,
		"id_action_ref":    h.ActionRef,
		"date_log":         h.LoggedAt,
		"type_evenement":   string(h.EventType),
		"evenement_detail": h.Detail,
	}
	putID(row, h.ID, includeID)
	return row
}

func NonConformityFromWire(row gateway.Row) entity.NonConformity {
	return entity.NonConformity{
		ID:             asString(row, "id"),
		ProjectID:      asString(row, "projet_id"),
		ActionRef:      asString(row, "id_action_ref"),
		Kind:           asString(row, "type_non_conformite"),
		Description:    asString(row, "description"),
		OwnerContactID: asString(row, "resp_action"),
		ObservedAt:     asString(row, "date_constat"),
		Status:         entity.NCStatus(asString(row, "statut")),
		ClosedAt:       asStringPtr(row, "date_cloture"),
		PhotoURL:       asStringPtr(row, "photo_url"),
	}
}

func NonConformityToWire(nc entity.NonConformity, includeID bool) gateway.Row {
	row := gateway.Row{
		"projet_id":           nc.ProjectID,
		"id_action_ref":       nc.ActionRef,
		"type_non_conformite": nc.Kind,
		"description":         nc.Description,
		"resp_action":         nc.OwnerContactID,
		"date_constat":        nc.ObservedAt,
		"statut":              string(nc.Status),
	}
	if nc.ClosedAt != nil {
		row["date_cloture"] = *nc.ClosedAt
	}
	if nc.PhotoURL != nil {
		row["photo_url"] = *nc.PhotoURL
	}
	putID(row, nc.ID, includeID)
	return row
}

func QualityHSEFromWire(row gateway.Row) entity.QualityHSEDocument {
	return entity.QualityHSEDocument{
		ID:                asString(row, "id"),
		ProjectID:         asString(row, "projet_id"),
		DocumentType:      asString(row, "type_document"),
		AssociatedLot:     asString(row, "lot_associe"),
		FinalStatus:       entity.HSEStatus(asString(row, "statut_final")),
		UpdateSatisfied:   asBool(row, "maj_satisfaite"),
		SignedControlLink: asString(row, "lien_controle_signe"),
	}
}

func QualityHSEToWire(q entity.QualityHSEDocument, includeID bool) gateway.Row {
	row := gateway.Row{
		"projet_id":           q.ProjectID,
		"type_document":       q.DocumentType,
		"lot_associe":         q.AssociatedLot,
		"statut_final":        string(q.FinalStatus),
		"maj_satisfaite":      q.UpdateSatisfied,
		"lien_controle_signe": q.SignedControlLink,
	}
	putID(row, q.ID, includeID)
	return row
}

func SampleFromWire(row gateway.Row) entity.Sample {
	return entity.Sample{
		ID:                 asString(row, "id"),
		ProjectID:          asString(row, "projet_id"),
		ProductName:        asString(row, "nom_produit"),
		BrandModelRef:      asString(row, "marque_modele_ref"),
		ValidationOwnerID:  asString(row, "resp_validation"),
		ValidationStatus:   entity.SampleStatus(asString(row, "statut_validation")),
		FireComplianceNote: asString(row, "conformite_coupe_feu"),
		CertificateLink:    asString(row, "lien_certificat"),
	}
}

func SampleToWire(s entity.Sample, includeID bool) gateway.Row {
	row := gateway.Row{
		"projet_id":            s.ProjectID,
		"nom_produit":          s.ProductName,
		"marque_modele_ref":    s.BrandModelRef,
		"resp_validation":      s.ValidationOwnerID,
		"statut_validation":    string(s.ValidationStatus),
		"conformite_coupe_feu": s.FireComplianceNote,
		"lien_certificat":      s.CertificateLink,
	}
	putID(row, s.ID, includeID)
	return row
}

func CommissioningFromWire(row gateway.Row) entity.CommissioningMilestone {
	return entity.CommissioningMilestone{
		ID:                      asString(row, "id"),
		ProjectID:               asString(row, "projet_id"),
		MilestoneName:           asString(row, "jalon_cx"),
		PlannedDate:             asString(row, "date_prevue"),
		ActualDate:              asStringPtr(row, "date_reelle"),
		ScriptsValidated:        asBool(row, "scripts_valide"),
		CalibratedEquipmentNote: asString(row, "materiel_etalonnage"),
		DOEStatus:               entity.DOEStatus(asString(row, "statut_doe")),
	}
}

func CommissioningToWire(c entity.CommissioningMilestone, includeID bool) gateway.Row {
	row := gateway.Row{
		"projet_id":           c.ProjectID,
		"jalon_cx":            c.MilestoneName,
		"date_prevue":         c.PlannedDate,
		"scripts_valide":      c.ScriptsValidated,
		"materiel_etalonnage": c.CalibratedEquipmentNote,
		"statut_doe":          string(c.DOEStatus),
	}
	if c.ActualDate != nil {
		row["date_reelle"] = *c.ActualDate
	}
	putID(row, c.ID, includeID)
	return row
}
