package gateway

import (
	"fmt"

	"gorm.io/gorm"
)

// Migrate applies the idempotent DDL for the eight tables. The six
// project-scoped tables cascade on project deletion so a single remote
// delete is enough; historique and non_conformites deliberately carry no
// FK on id_action_ref (dangling refs to deleted actions are accepted).
func Migrate(db *gorm.DB) error {
	ddl := []string{
		`CREATE TABLE IF NOT EXISTS projects (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			nom_projet TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS actions (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			projet_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			nom_livrable TEXT NOT NULL DEFAULT '',
			lot_technique TEXT NOT NULL DEFAULT 'GO/ARCHI',
			indice_version TEXT NOT NULL DEFAULT 'A',
			resp_execution TEXT NOT NULL DEFAULT '',
			resp_validation_ppl TEXT NOT NULL DEFAULT '',
			date_limite_init TEXT NOT NULL DEFAULT '',
			derniere_limite TEXT NOT NULL DEFAULT '',
			statut_kanban TEXT NOT NULL DEFAULT 'À Soumettre',
			criticite_alerte TEXT NOT NULL DEFAULT 'Normal',
			cause_glissement TEXT NOT NULL DEFAULT '',
			commentaire_statut TEXT NOT NULL DEFAULT '',
			lien_drive_doc TEXT,
			lien_fiche_visa TEXT,
			nombre_reports INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_actions_projet ON actions(projet_id)`,
		`CREATE TABLE IF NOT EXISTS contacts (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			projet_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			first_name TEXT NOT NULL DEFAULT '',
			last_name TEXT NOT NULL DEFAULT '',
			email TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			function TEXT NOT NULL DEFAULT '',
			company_role TEXT NOT NULL DEFAULT 'Autre'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_contacts_projet ON contacts(projet_id)`,
		`CREATE TABLE IF NOT EXISTS historique (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			projet_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			id_action_ref TEXT NOT NULL DEFAULT '',
			date_log TEXT NOT NULL DEFAULT '',
			type_evenement TEXT NOT NULL DEFAULT '',
			evenement_detail TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_historique_projet ON historique(projet_id)`,
		`CREATE INDEX IF NOT EXISTS idx_historique_action ON historique(id_action_ref)`,
		`CREATE TABLE IF NOT EXISTS non_conformites (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			projet_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			id_action_ref TEXT NOT NULL DEFAULT '',
			type_non_conformite TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			resp_action TEXT NOT NULL DEFAULT '',
			date_constat TEXT NOT NULL DEFAULT '',
			statut TEXT NOT NULL DEFAULT 'Ouverte',
			date_cloture TEXT,
			photo_url TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_non_conformites_projet ON non_conformites(projet_id)`,
		`CREATE TABLE IF NOT EXISTS qualite_hse (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			projet_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			type_document TEXT NOT NULL DEFAULT '',
			lot_associe TEXT NOT NULL DEFAULT '',
			statut_final TEXT NOT NULL DEFAULT 'En cours',
			maj_satisfaite BOOLEAN NOT NULL DEFAULT false,
			lien_controle_signe TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_qualite_hse_projet ON qualite_hse(projet_id)`,
		`CREATE TABLE IF NOT EXISTS echantillons (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			projet_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			nom_produit TEXT NOT NULL DEFAULT '',
			marque_modele_ref TEXT NOT NULL DEFAULT '',
			resp_validation TEXT NOT NULL DEFAULT '',
			statut_validation TEXT NOT NULL DEFAULT 'À Livrer',
			conformite_coupe_feu TEXT NOT NULL DEFAULT '',
			lien_certificat TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_echantillons_projet ON echantillons(projet_id)`,
		`CREATE TABLE IF NOT EXISTS commissioning (
			id TEXT PRIMARY KEY DEFAULT gen_random_uuid(),
			projet_id TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
			jalon_cx TEXT NOT NULL DEFAULT '',
			date_prevue TEXT NOT NULL DEFAULT '',
			date_reelle TEXT,
			scripts_valide BOOLEAN NOT NULL DEFAULT false,
			materiel_etalonnage TEXT NOT NULL DEFAULT '',
			statut_doe TEXT NOT NULL DEFAULT 'À Soumettre'
		)`,
		`CREATE INDEX IF NOT EXISTS idx_commissioning_projet ON commissioning(projet_id)`,
	}
	for _, sql := range ddl {
		if err := db.Exec(sql).Error; err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}
