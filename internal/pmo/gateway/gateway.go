package gateway

import (
	"context"
	"errors"
	"io"
)

// Row is a flat wire record, snake_case keys as stored in the row store.
type Row = map[string]any

// Fixed table names of the remote store.
const (
	TableProjects       = "projects"
	TableActions        = "actions"
	TableContacts       = "contacts"
	TableHistorique     = "historique"
	TableNonConformites = "non_conformites"
	TableQualiteHSE     = "qualite_hse"
	TableEchantillons   = "echantillons"
	TableCommissioning  = "commissioning"
)

// PhotoBucket is the blob bucket for non-conformity photo attachments.
const PhotoBucket = "photos_non_conformites"

var (
	ErrNotFound     = errors.New("record not found")
	ErrUnknownTable = errors.New("unknown table")
)

// Gateway is the generic per-table CRUD surface of the remote store.
// Insert and Update return the canonical row as persisted (server-minted id,
// column defaults applied); callers replace local state with it.
type Gateway interface {
	Select(ctx context.Context, table string) ([]Row, error)
	Insert(ctx context.Context, table string, row Row) (Row, error)
	Update(ctx context.Context, table string, id string, patch Row) (Row, error)
	Delete(ctx context.Context, table string, id string) error
}

// BlobStore uploads binary attachments and resolves their public URLs.
type BlobStore interface {
	Upload(ctx context.Context, bucket, path string, r io.Reader, size int64, contentType string) error
	PublicURL(bucket, path string) string
}

var knownTables = map[string]bool{
	TableProjects:       true,
	TableActions:        true,
	TableContacts:       true,
	TableHistorique:     true,
	TableNonConformites: true,
	TableQualiteHSE:     true,
	TableEchantillons:   true,
	TableCommissioning:  true,
}

// KnownTable reports whether the table is one of the fixed eight.
func KnownTable(table string) bool {
	return knownTables[table]
}
