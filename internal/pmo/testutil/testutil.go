// Package testutil provides the in-memory gateway and blob store fakes
// plus the HTTP helpers shared by the store and handler tests.
package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/gateway"
)

// FakeGateway mimics the remote row store in memory. It mints ids for
// inserts the way the real store's column default does, and cascades
// project deletes across the dependent tables like the FK constraints.
type FakeGateway struct {
	mu     sync.Mutex
	tables map[string][]gateway.Row
	nextID int

	// Per-table injected failures. A nil map entry means success.
	SelectErr map[string]error
	InsertErr map[string]error
	UpdateErr map[string]error
	DeleteErr map[string]error
}

func NewFakeGateway() *FakeGateway {
	return &FakeGateway{
		tables:    map[string][]gateway.Row{},
		SelectErr: map[string]error{},
		InsertErr: map[string]error{},
		UpdateErr: map[string]error{},
		DeleteErr: map[string]error{},
	}
}

// Seed places a row directly into a table, minting an id when absent.
func (f *FakeGateway) Seed(table string, row gateway.Row) gateway.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.insertLocked(table, row)
}

// Rows returns a copy of a table's rows, for assertions.
func (f *FakeGateway) Rows(table string) []gateway.Row {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]gateway.Row, 0, len(f.tables[table]))
	for _, r := range f.tables[table] {
		out = append(out, cloneRow(r))
	}
	return out
}

func (f *FakeGateway) Select(_ context.Context, table string) ([]gateway.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.SelectErr[table]; err != nil {
		return nil, err
	}
	if !gateway.KnownTable(table) {
		return nil, gateway.ErrUnknownTable
	}
	out := make([]gateway.Row, 0, len(f.tables[table]))
	for _, r := range f.tables[table] {
		out = append(out, cloneRow(r))
	}
	return out, nil
}

func (f *FakeGateway) Insert(_ context.Context, table string, row gateway.Row) (gateway.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.InsertErr[table]; err != nil {
		return nil, err
	}
	if !gateway.KnownTable(table) {
		return nil, gateway.ErrUnknownTable
	}
	return cloneRow(f.insertLocked(table, row)), nil
}

func (f *FakeGateway) insertLocked(table string, row gateway.Row) gateway.Row {
	stored := cloneRow(row)
	if _, ok := stored["id"]; !ok {
		f.nextID++
		stored["id"] = fmt.Sprintf("gen-%04d", f.nextID)
	}
	f.tables[table] = append(f.tables[table], stored)
	return stored
}

func (f *FakeGateway) Update(_ context.Context, table, id string, patch gateway.Row) (gateway.Row, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.UpdateErr[table]; err != nil {
		return nil, err
	}
	for _, r := range f.tables[table] {
		if r["id"] == id {
			for k, v := range patch {
				r[k] = v
			}
			return cloneRow(r), nil
		}
	}
	return nil, gateway.ErrNotFound
}

func (f *FakeGateway) Delete(_ context.Context, table, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.DeleteErr[table]; err != nil {
		return err
	}
	out := f.tables[table][:0]
	for _, r := range f.tables[table] {
		if r["id"] != id {
			out = append(out, r)
		}
	}
	f.tables[table] = out

	if table == gateway.TableProjects {
		for _, dep := range []string{
			gateway.TableActions, gateway.TableContacts, gateway.TableHistorique,
			gateway.TableNonConformites, gateway.TableQualiteHSE,
			gateway.TableEchantillons, gateway.TableCommissioning,
		} {
			kept := f.tables[dep][:0]
			for _, r := range f.tables[dep] {
				if r["projet_id"] != id {
					kept = append(kept, r)
				}
			}
			f.tables[dep] = kept
		}
	}
	return nil
}

func cloneRow(row gateway.Row) gateway.Row {
	out := make(gateway.Row, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}

// FakeBlobStore records uploads in memory.
type FakeBlobStore struct {
	mu      sync.Mutex
	Objects map[string][]byte
	Err     error
}

func NewFakeBlobStore() *FakeBlobStore {
	return &FakeBlobStore{Objects: map[string][]byte{}}
}

func (f *FakeBlobStore) Upload(_ context.Context, bucket, path string, r io.Reader, _ int64, _ string) error {
	if f.Err != nil {
		return f.Err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Objects[bucket+"/"+path] = data
	return nil
}

func (f *FakeBlobStore) PublicURL(bucket, path string) string {
	return "http://blobs.local/" + bucket + "/" + path
}

// DoRequest performs a request against a router and returns the recorder.
func DoRequest(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ParseResponse decodes the standard {code,message,data} envelope.
func ParseResponse(t *testing.T, w *httptest.ResponseRecorder) (int, string, json.RawMessage) {
	t.Helper()
	var envelope struct {
		Code    int             `json:"code"`
		Message string          `json:"message"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response %q: %v", w.Body.String(), err)
	}
	return envelope.Code, envelope.Message, envelope.Data
}

// CheckStatus fails the test when the HTTP status differs.
func CheckStatus(t *testing.T, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("status = %d, want %d; body: %s", w.Code, want, w.Body.String())
	}
}
