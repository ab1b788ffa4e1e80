// Package store owns the in-memory mirror of the remote row store and
// every mutation against it. All reads served to the HTTP layer come from
// the mirror; the remote store is the source of truth and is written
// first, so a gateway failure leaves the mirror untouched.
package store

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/entity"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/gateway"
	"github.com/nbendourou/Gestion-Projets-DC/internal/pmo/mapper"
)

// Collections holds the eight entity slices mirrored from the remote
// store. Historique is kept newest first; the others keep fetch order
// with inserts appended.
type Collections struct {
	Projects        []entity.Project
	Actions         []entity.Action
	Contacts        []entity.Contact
	History         []entity.HistoryEntry
	NonConformities []entity.NonConformity
	QualityHSE      []entity.QualityHSEDocument
	Samples         []entity.Sample
	Commissioning   []entity.CommissioningMilestone
}

// Store synchronizes the mirror with the gateway. The mutex is held
// across the remote call so each public operation is atomic with respect
// to the mirror; mutations are single-row and last-write-wins.
type Store struct {
	mu       sync.RWMutex
	c        Collections
	selected string

	gw    gateway.Gateway
	blobs gateway.BlobStore
	log   *zap.Logger
	now   func() time.Time

	// OnChange fires after each successful mutation, outside any
	// handler error path. Set before serving; nil disables fan-out.
	OnChange func(table, action, id string)
}

func New(gw gateway.Gateway, blobs gateway.BlobStore, log *zap.Logger) *Store {
	return &Store{gw: gw, blobs: blobs, log: log, now: time.Now}
}

func (s *Store) notify(table, action, id string) {
	if s.OnChange != nil {
		s.OnChange(table, action, id)
	}
}

// LoadAll hydrates the mirror in a fixed order, aborting on the first
// error. With zero projects the remaining fetches are skipped and nothing
// is selected; otherwise the first project becomes the selection.
func (s *Store) LoadAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.gw.Select(ctx, gateway.TableProjects)
	if err != nil {
		return fmt.Errorf("load projects: %w", err)
	}
	projects := make([]entity.Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, mapper.ProjectFromWire(r))
	}
	s.c = Collections{Projects: projects}
	s.selected = ""
	if len(projects) == 0 {
		s.log.Info("no projects in store, skipping dependent collections")
		return nil
	}
	s.selected = projects[0].ID

	if rows, err = s.gw.Select(ctx, gateway.TableActions); err != nil {
		return fmt.Errorf("load actions: %w", err)
	}
	for _, r := range rows {
		s.c.Actions = append(s.c.Actions, mapper.ActionFromWire(r))
	}
	if rows, err = s.gw.Select(ctx, gateway.TableContacts); err != nil {
		return fmt.Errorf("load contacts: %w", err)
	}
	for _, r := range rows {
		s.c.Contacts = append(s.c.Contacts, mapper.ContactFromWire(r))
	}
	if rows, err = s.gw.Select(ctx, gateway.TableHistorique); err != nil {
		return fmt.Errorf("load historique: %w", err)
	}
	for _, r := range rows {
		s.c.History = append(s.c.History, mapper.HistoryFromWire(r))
	}
	sortHistoryNewestFirst(s.c.History)
	if rows, err = s.gw.Select(ctx, gateway.TableNonConformites); err != nil {
		return fmt.Errorf("load non_conformites: %w", err)
	}
	for _, r := range rows {
		s.c.NonConformities = append(s.c.NonConformities, mapper.NonConformityFromWire(r))
	}
	if rows, err = s.gw.Select(ctx, gateway.TableQualiteHSE); err != nil {
		return fmt.Errorf("load qualite_hse: %w", err)
	}
	for _, r := range rows {
		s.c.QualityHSE = append(s.c.QualityHSE, mapper.QualityHSEFromWire(r))
	}
	if rows, err = s.gw.Select(ctx, gateway.TableEchantillons); err != nil {
		return fmt.Errorf("load echantillons: %w", err)
	}
	for _, r := range rows {
		s.c.Samples = append(s.c.Samples, mapper.SampleFromWire(r))
	}
	if rows, err = s.gw.Select(ctx, gateway.TableCommissioning); err != nil {
		return fmt.Errorf("load commissioning: %w", err)
	}
	for _, r := range rows {
		s.c.Commissioning = append(s.c.Commissioning, mapper.CommissioningFromWire(r))
	}

	s.log.Info("collections loaded",
		zap.Int("projects", len(s.c.Projects)),
		zap.Int("actions", len(s.c.Actions)),
		zap.Int("contacts", len(s.c.Contacts)),
		zap.String("selected_project", s.selected))
	return nil
}

// SelectedProjectID returns the current selection, empty when none.
func (s *Store) SelectedProjectID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selected
}

// SelectProject switches the selection. Unknown ids are rejected so the
// view layer cannot point at a project that does not exist.
func (s *Store) SelectProject(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.c.Projects {
		if p.ID == id {
			s.selected = id
			return nil
		}
	}
	return fmt.Errorf("projet inconnu: %s", id)
}

// Projects returns a copy of the full project list.
func (s *Store) Projects() []entity.Project {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Project, len(s.c.Projects))
	copy(out, s.c.Projects)
	return out
}

// Contacts returns every contact regardless of project, so names resolve
// across project boundaries.
func (s *Store) Contacts() []entity.Contact {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Contact, len(s.c.Contacts))
	copy(out, s.c.Contacts)
	return out
}

// SaveProject updates when the id is already mirrored, inserts otherwise.
// A newly created project becomes the selection.
func (s *Store) SaveProject(ctx context.Context, p entity.Project) (entity.Project, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.c.Projects {
		if s.c.Projects[i].ID == p.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		row, err := s.gw.Update(ctx, gateway.TableProjects, p.ID, mapper.ProjectToWire(p, false))
		if err != nil {
			return entity.Project{}, fmt.Errorf("update project: %w", err)
		}
		saved := mapper.ProjectFromWire(row)
		s.c.Projects[idx] = saved
		s.notify(gateway.TableProjects, "update", saved.ID)
		return saved, nil
	}

	row, err := s.gw.Insert(ctx, gateway.TableProjects, mapper.ProjectToWire(p, false))
	if err != nil {
		return entity.Project{}, fmt.Errorf("insert project: %w", err)
	}
	saved := mapper.ProjectFromWire(row)
	s.c.Projects = append(s.c.Projects, saved)
	s.selected = saved.ID
	s.notify(gateway.TableProjects, "insert", saved.ID)
	return saved, nil
}

// DeleteProject issues one remote delete (the store cascades server-side)
// then drops the project and its dependents from the mirror. When the
// deleted project was selected, the first remaining one takes over.
func (s *Store) DeleteProject(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gw.Delete(ctx, gateway.TableProjects, id); err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	keep := func(projectID string) bool { return projectID != id }
	s.c.Actions = filterActions(s.c.Actions, keep)
	s.c.Contacts = filterContacts(s.c.Contacts, keep)
	s.c.History = filterHistory(s.c.History, keep)
	s.c.NonConformities = filterNonConformities(s.c.NonConformities, keep)
	s.c.QualityHSE = filterQualityHSE(s.c.QualityHSE, keep)
	s.c.Samples = filterSamples(s.c.Samples, keep)
	s.c.Commissioning = filterCommissioning(s.c.Commissioning, keep)

	remaining := s.c.Projects[:0]
	for _, p := range s.c.Projects {
		if p.ID != id {
			remaining = append(remaining, p)
		}
	}
	s.c.Projects = remaining
	if s.selected == id {
		s.selected = ""
		if len(s.c.Projects) > 0 {
			s.selected = s.c.Projects[0].ID
		}
	}
	s.notify(gateway.TableProjects, "delete", id)
	return nil
}

// SaveAction reconciles an action. Updates log a status-change history
// entry when the kanban status moved; inserts are stamped with the
// selected project, get their canonical id from the store and log a
// creation entry. History failures are logged but do not undo the save.
func (s *Store) SaveAction(ctx context.Context, a entity.Action) (entity.Action, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.c.Actions {
		if s.c.Actions[i].ID == a.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		old := s.c.Actions[idx]
		row, err := s.gw.Update(ctx, gateway.TableActions, a.ID, mapper.ActionToWire(a, false))
		if err != nil {
			return entity.Action{}, fmt.Errorf("update action: %w", err)
		}
		saved := mapper.ActionFromWire(row)
		s.c.Actions[idx] = saved
		if old.KanbanStatus != saved.KanbanStatus {
			detail := fmt.Sprintf("Statut changé de %q à %q", old.KanbanStatus, saved.KanbanStatus)
			s.appendHistoryLocked(ctx, saved.ID, entity.EventStatusChange, detail)
		}
		s.notify(gateway.TableActions, "update", saved.ID)
		return saved, nil
	}

	a.ProjectID = s.selected
	row, err := s.gw.Insert(ctx, gateway.TableActions, mapper.ActionToWire(a, false))
	if err != nil {
		return entity.Action{}, fmt.Errorf("insert action: %w", err)
	}
	saved := mapper.ActionFromWire(row)
	s.c.Actions = append(s.c.Actions, saved)
	s.appendHistoryLocked(ctx, saved.ID, entity.EventCreation,
		fmt.Sprintf("Action %q créée.", saved.DeliverableName))
	s.notify(gateway.TableActions, "insert", saved.ID)
	return saved, nil
}

// DeleteAction removes the action remotely then locally. History entries
// and non-conformities referencing it are left in place.
func (s *Store) DeleteAction(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gw.Delete(ctx, gateway.TableActions, id); err != nil {
		return fmt.Errorf("delete action: %w", err)
	}
	out := s.c.Actions[:0]
	for _, a := range s.c.Actions {
		if a.ID != id {
			out = append(out, a)
		}
	}
	s.c.Actions = out
	s.notify(gateway.TableActions, "delete", id)
	return nil
}

func (s *Store) SaveContact(ctx context.Context, c entity.Contact) (entity.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.c.Contacts {
		if s.c.Contacts[i].ID == c.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		row, err := s.gw.Update(ctx, gateway.TableContacts, c.ID, mapper.ContactToWire(c, false))
		if err != nil {
			return entity.Contact{}, fmt.Errorf("update contact: %w", err)
		}
		saved := mapper.ContactFromWire(row)
		s.c.Contacts[idx] = saved
		s.notify(gateway.TableContacts, "update", saved.ID)
		return saved, nil
	}

	if c.ProjectID == "" {
		c.ProjectID = s.selected
	}
	row, err := s.gw.Insert(ctx, gateway.TableContacts, mapper.ContactToWire(c, false))
	if err != nil {
		return entity.Contact{}, fmt.Errorf("insert contact: %w", err)
	}
	saved := mapper.ContactFromWire(row)
	s.c.Contacts = append(s.c.Contacts, saved)
	s.notify(gateway.TableContacts, "insert", saved.ID)
	return saved, nil
}

func (s *Store) DeleteContact(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.gw.Delete(ctx, gateway.TableContacts, id); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	out := s.c.Contacts[:0]
	for _, c := range s.c.Contacts {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.c.Contacts = out
	s.notify(gateway.TableContacts, "delete", id)
	return nil
}

// SaveNonConformity reconciles a non-conformity. The closing date is
// stamped once, on the transition into Clôturée; it is neither recomputed
// on later saves nor cleared when the NC is reopened.
func (s *Store) SaveNonConformity(ctx context.Context, nc entity.NonConformity) (entity.NonConformity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveNonConformityLocked(ctx, nc)
}

// SaveNonConformityWithPhoto uploads the photo first and aborts the whole
// save when the upload fails; a row must never point at a missing blob.
func (s *Store) SaveNonConformityWithPhoto(ctx context.Context, nc entity.NonConformity, photo io.Reader, size int64, filename, contentType string) (entity.NonConformity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := fmt.Sprintf("%d-%s", s.now().UnixMilli(), filename)
	if err := s.blobs.Upload(ctx, gateway.PhotoBucket, path, photo, size, contentType); err != nil {
		return entity.NonConformity{}, fmt.Errorf("upload photo: %w", err)
	}
	url := s.blobs.PublicURL(gateway.PhotoBucket, path)
	nc.PhotoURL = &url
	return s.saveNonConformityLocked(ctx, nc)
}

func (s *Store) saveNonConformityLocked(ctx context.Context, nc entity.NonConformity) (entity.NonConformity, error) {
	idx := -1
	for i := range s.c.NonConformities {
		if s.c.NonConformities[i].ID == nc.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		old := s.c.NonConformities[idx]
		if nc.Status == entity.NCClosed && old.Status != entity.NCClosed {
			closed := s.now().Format(time.RFC3339)
			nc.ClosedAt = &closed
		}
		row, err := s.gw.Update(ctx, gateway.TableNonConformites, nc.ID, mapper.NonConformityToWire(nc, false))
		if err != nil {
			return entity.NonConformity{}, fmt.Errorf("update non_conformite: %w", err)
		}
		saved := mapper.NonConformityFromWire(row)
		s.c.NonConformities[idx] = saved
		s.notify(gateway.TableNonConformites, "update", saved.ID)
		return saved, nil
	}

	if nc.ProjectID == "" {
		nc.ProjectID = s.selected
	}
	if nc.Status == entity.NCClosed && nc.ClosedAt == nil {
		closed := s.now().Format(time.RFC3339)
		nc.ClosedAt = &closed
	}
	row, err := s.gw.Insert(ctx, gateway.TableNonConformites, mapper.NonConformityToWire(nc, false))
	if err != nil {
		return entity.NonConformity{}, fmt.Errorf("insert non_conformite: %w", err)
	}
	saved := mapper.NonConformityFromWire(row)
	s.c.NonConformities = append(s.c.NonConformities, saved)
	s.notify(gateway.TableNonConformites, "insert", saved.ID)
	return saved, nil
}

func (s *Store) SaveQualityHSE(ctx context.Context, q entity.QualityHSEDocument) (entity.QualityHSEDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.c.QualityHSE {
		if s.c.QualityHSE[i].ID == q.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		row, err := s.gw.Update(ctx, gateway.TableQualiteHSE, q.ID, mapper.QualityHSEToWire(q, false))
		if err != nil {
			return entity.QualityHSEDocument{}, fmt.Errorf("update qualite_hse: %w", err)
		}
		saved := mapper.QualityHSEFromWire(row)
		s.c.QualityHSE[idx] = saved
		s.notify(gateway.TableQualiteHSE, "update", saved.ID)
		return saved, nil
	}

	if q.ProjectID == "" {
		q.ProjectID = s.selected
	}
	row, err := s.gw.Insert(ctx, gateway.TableQualiteHSE, mapper.QualityHSEToWire(q, false))
	if err != nil {
		return entity.QualityHSEDocument{}, fmt.Errorf("insert qualite_hse: %w", err)
	}
	saved := mapper.QualityHSEFromWire(row)
	s.c.QualityHSE = append(s.c.QualityHSE, saved)
	s.notify(gateway.TableQualiteHSE, "insert", saved.ID)
	return saved, nil
}

func (s *Store) SaveSample(ctx context.Context, e entity.Sample) (entity.Sample, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.c.Samples {
		if s.c.Samples[i].ID == e.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		row, err := s.gw.Update(ctx, gateway.TableEchantillons, e.ID, mapper.SampleToWire(e, false))
		if err != nil {
			return entity.Sample{}, fmt.Errorf("update echantillon: %w", err)
		}
		saved := mapper.SampleFromWire(row)
		s.c.Samples[idx] = saved
		s.notify(gateway.TableEchantillons, "update", saved.ID)
		return saved, nil
	}

	if e.ProjectID == "" {
		e.ProjectID = s.selected
	}
	row, err := s.gw.Insert(ctx, gateway.TableEchantillons, mapper.SampleToWire(e, false))
	if err != nil {
		return entity.Sample{}, fmt.Errorf("insert echantillon: %w", err)
	}
	saved := mapper.SampleFromWire(row)
	s.c.Samples = append(s.c.Samples, saved)
	s.notify(gateway.TableEchantillons, "insert", saved.ID)
	return saved, nil
}

func (s *Store) SaveCommissioning(ctx context.Context, m entity.CommissioningMilestone) (entity.CommissioningMilestone, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i := range s.c.Commissioning {
		if s.c.Commissioning[i].ID == m.ID {
			idx = i
			break
		}
	}
	if idx >= 0 {
		row, err := s.gw.Update(ctx, gateway.TableCommissioning, m.ID, mapper.CommissioningToWire(m, false))
		if err != nil {
			return entity.CommissioningMilestone{}, fmt.Errorf("update commissioning: %w", err)
		}
		saved := mapper.CommissioningFromWire(row)
		s.c.Commissioning[idx] = saved
		s.notify(gateway.TableCommissioning, "update", saved.ID)
		return saved, nil
	}

	if m.ProjectID == "" {
		m.ProjectID = s.selected
	}
	row, err := s.gw.Insert(ctx, gateway.TableCommissioning, mapper.CommissioningToWire(m, false))
	if err != nil {
		return entity.CommissioningMilestone{}, fmt.Errorf("insert commissioning: %w", err)
	}
	saved := mapper.CommissioningFromWire(row)
	s.c.Commissioning = append(s.c.Commissioning, saved)
	s.notify(gateway.TableCommissioning, "insert", saved.ID)
	return saved, nil
}

// AppendHistory inserts an audit entry stamped with the current time and
// the selected project, then prepends it to the mirror.
func (s *Store) AppendHistory(ctx context.Context, actionRef string, eventType entity.EventType, detail string) (entity.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	h := entity.HistoryEntry{
		ProjectID: s.selected,
		ActionRef: actionRef,
		LoggedAt:  s.now().Format(time.RFC3339),
		EventType: eventType,
		Detail:    detail,
	}
	row, err := s.gw.Insert(ctx, gateway.TableHistorique, mapper.HistoryToWire(h, false))
	if err != nil {
		return entity.HistoryEntry{}, fmt.Errorf("insert historique: %w", err)
	}
	saved := mapper.HistoryFromWire(row)
	s.c.History = append([]entity.HistoryEntry{saved}, s.c.History...)
	s.notify(gateway.TableHistorique, "insert", saved.ID)
	return saved, nil
}

// appendHistoryLocked is the best-effort variant used inside SaveAction:
// the action is already persisted, so a failed audit insert is logged and
// swallowed rather than turning a successful save into an error.
func (s *Store) appendHistoryLocked(ctx context.Context, actionRef string, eventType entity.EventType, detail string) {
	h := entity.HistoryEntry{
		ProjectID: s.selected,
		ActionRef: actionRef,
		LoggedAt:  s.now().Format(time.RFC3339),
		EventType: eventType,
		Detail:    detail,
	}
	row, err := s.gw.Insert(ctx, gateway.TableHistorique, mapper.HistoryToWire(h, false))
	if err != nil {
		s.log.Error("append history failed",
			zap.String("action_ref", actionRef),
			zap.String("event_type", string(eventType)),
			zap.Error(err))
		return
	}
	saved := mapper.HistoryFromWire(row)
	s.c.History = append([]entity.HistoryEntry{saved}, s.c.History...)
	s.notify(gateway.TableHistorique, "insert", saved.ID)
}

func sortHistoryNewestFirst(entries []entity.HistoryEntry) {
	// RFC 3339 strings order lexicographically, so a plain string
	// comparison is enough.
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].LoggedAt > entries[j].LoggedAt
	})
}

func filterActions(in []entity.Action, keep func(string) bool) []entity.Action {
	out := in[:0]
	for _, v := range in {
		if keep(v.ProjectID) {
			out = append(out, v)
		}
	}
	return out
}

func filterContacts(in []entity.Contact, keep func(string) bool) []entity.Contact {
	out := in[:0]
	for _, v := range in {
		if keep(v.ProjectID) {
			out = append(out, v)
		}
	}
	return out
}

func filterHistory(in []entity.HistoryEntry, keep func(string) bool) []entity.HistoryEntry {
	out := in[:0]
	for _, v := range in {
		if keep(v.ProjectID) {
			out = append(out, v)
		}
	}
	return out
}

func filterNonConformities(in []entity.NonConformity, keep func(string) bool) []entity.NonConformity {
	out := in[:0]
	for _, v := range in {
		if keep(v.ProjectID) {
			out = append(out, v)
		}
	}
	return out
}

func filterQualityHSE(in []entity.QualityHSEDocument, keep func(string) bool) []entity.QualityHSEDocument {
	out := in[:0]
	for _, v := range in {
		if keep(v.ProjectID) {
			out = append(out, v)
		}
	}
	return out
}

func filterSamples(in []entity.Sample, keep func(string) bool) []entity.Sample {
	out := in[:0]
	for _, v := range in {
		if keep(v.ProjectID) {
			out = append(out, v)
		}
	}
	return out
}

func filterCommissioning(in []entity.CommissioningMilestone, keep func(string) bool) []entity.CommissioningMilestone {
	out := in[:0]
	for _, v := range in {
		if keep(v.ProjectID) {
			out = append(out, v)
		}
	}
	return out
}
