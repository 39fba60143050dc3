package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/engrainai/siteapi/internal/forms"
)

// Store retains validated submissions for the lifetime of the process. Records
// are keyed by generated UUID, kept in insertion order per kind, and never
// mutated or deleted. Everything is lost on restart.
//
// Handlers run on concurrent goroutines, so all access goes through one mutex.
type Store struct {
	mu sync.Mutex

	consultations    map[string]forms.ConsultationRequest
	consultationList []string
	demoCalls        map[string]forms.DemoCallRequest
	demoCallList     []string
	contacts         map[string]forms.ContactRequest
	contactList      []string

	// lastCreated guards the per-kind monotonic createdAt invariant against
	// clock steps between inserts.
	lastCreated map[forms.Kind]time.Time

	now func() time.Time
}

// New creates an empty Store. One Store is constructed at process start and
// injected into the API layer.
func New() *Store {
	return &Store{
		consultations: make(map[string]forms.ConsultationRequest),
		demoCalls:     make(map[string]forms.DemoCallRequest),
		contacts:      make(map[string]forms.ContactRequest),
		lastCreated:   make(map[forms.Kind]time.Time),
		now:           time.Now,
	}
}

// stamp returns a fresh id and a createdAt that never goes backwards within
// the given kind. Must be called with mu held.
func (s *Store) stamp(kind forms.Kind) (string, time.Time) {
	id := uuid.NewString()
	ts := s.now().UTC()
	if last, ok := s.lastCreated[kind]; ok && ts.Before(last) {
		ts = last
	}
	s.lastCreated[kind] = ts
	return id, ts
}

// CreateConsultationRequest persists a validated consultation submission and
// returns the stored record.
func (s *Store) CreateConsultationRequest(in forms.ConsultationInput) forms.ConsultationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ts := s.stamp(forms.KindConsultation)
	rec := forms.ConsultationRequest{
		ID:                     id,
		BusinessName:           in.BusinessName,
		ContactName:            in.ContactName,
		Email:                  in.Email,
		Phone:                  in.Phone,
		BusinessType:           in.BusinessType,
		AutomationNeeds:        in.AutomationNeeds,
		PreferredContactMethod: in.PreferredContactMethod,
		CreatedAt:              ts,
	}
	s.consultations[id] = rec
	s.consultationList = append(s.consultationList, id)
	return rec
}

// ListConsultationRequests returns all consultation records in insertion order.
func (s *Store) ListConsultationRequests() []forms.ConsultationRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]forms.ConsultationRequest, 0, len(s.consultationList))
	for _, id := range s.consultationList {
		out = append(out, s.consultations[id])
	}
	return out
}

// CreateDemoCallRequest persists a validated demo-call submission.
func (s *Store) CreateDemoCallRequest(in forms.DemoCallInput) forms.DemoCallRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ts := s.stamp(forms.KindDemoCall)
	rec := forms.DemoCallRequest{
		ID:           id,
		Name:         in.Name,
		BusinessName: in.BusinessName,
		Email:        in.Email,
		Phone:        in.Phone,
		CreatedAt:    ts,
	}
	s.demoCalls[id] = rec
	s.demoCallList = append(s.demoCallList, id)
	return rec
}

// ListDemoCallRequests returns all demo-call records in insertion order.
func (s *Store) ListDemoCallRequests() []forms.DemoCallRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]forms.DemoCallRequest, 0, len(s.demoCallList))
	for _, id := range s.demoCallList {
		out = append(out, s.demoCalls[id])
	}
	return out
}

// CreateContactRequest persists a validated contact submission.
func (s *Store) CreateContactRequest(in forms.ContactInput) forms.ContactRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ts := s.stamp(forms.KindContact)
	rec := forms.ContactRequest{
		ID:        id,
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Message:   in.Message,
		CreatedAt: ts,
	}
	s.contacts[id] = rec
	s.contactList = append(s.contactList, id)
	return rec
}

// ListContactRequests returns all contact records in insertion order.
func (s *Store) ListContactRequests() []forms.ContactRequest {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]forms.ContactRequest, 0, len(s.contactList))
	for _, id := range s.contactList {
		out = append(out, s.contacts[id])
	}
	return out
}
