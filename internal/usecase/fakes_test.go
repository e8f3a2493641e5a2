package usecase

import (
	"context"
	"net/http"
	"sync"
	"time"

	domainErrors "github.com/ArtLegends/medtravel-main-sub002/internal/domain/errors"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/dto"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/entity"
	"github.com/ArtLegends/medtravel-main-sub002/internal/domain/model"
	"github.com/google/uuid"
)

// fakeRegistry resolves approved codes from a map
type fakeRegistry struct {
	codes map[string]model.ReferralCode
}

func newFakeRegistry(codes ...model.ReferralCode) *fakeRegistry {
	r := &fakeRegistry{codes: make(map[string]model.ReferralCode)}
	for _, c := range codes {
		r.codes[c.Code] = c
	}
	return r
}

func (r *fakeRegistry) Resolve(_ context.Context, code string) (*entity.ResolvedCode, error) {
	c, ok := r.codes[entity.NormalizeCode(code)]
	if !ok || c.Status != model.ApprovalStatusApproved {
		return nil, domainErrors.ErrCodeNotFound
	}
	return &entity.ResolvedCode{Code: c.Code, OwnerPrincipalID: c.OwnerPrincipalID, ProgramKey: c.ProgramKey}, nil
}

// fakeAttachmentStore enforces the unique patient constraint under a mutex the
// way the database unique index does.
type fakeAttachmentStore struct {
	mu     sync.Mutex
	rows   map[string]*model.ReferralAttachment
	nextID int64
	// gate, when set, is waited on before each insert so goroutines pile up
	gate chan struct{}
}

func newFakeAttachmentStore() *fakeAttachmentStore {
	return &fakeAttachmentStore{rows: make(map[string]*model.ReferralAttachment)}
}

func (s *fakeAttachmentStore) CreateIfAbsent(_ context.Context, a *model.ReferralAttachment) (*model.ReferralAttachment, bool, error) {
	if s.gate != nil {
		<-s.gate
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.rows[a.PatientPrincipalID]; ok {
		return existing, false, nil
	}
	s.nextID++
	stored := *a
	stored.ID = s.nextID
	s.rows[a.PatientPrincipalID] = &stored
	return &stored, true, nil
}

func (s *fakeAttachmentStore) GetByPatient(_ context.Context, id string) (*model.ReferralAttachment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.rows[id]
	if !ok {
		return nil, domainErrors.ErrAttachmentNotFound
	}
	return a, nil
}

func (s *fakeAttachmentStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// fakeLeadStore mirrors the conditional UPDATE used by the gorm repository
type fakeLeadStore struct {
	mu    sync.Mutex
	leads map[uuid.UUID]*model.Lead
}

func newFakeLeadStore(leads ...*model.Lead) *fakeLeadStore {
	s := &fakeLeadStore{leads: make(map[uuid.UUID]*model.Lead)}
	for _, l := range leads {
		s.leads[l.ID] = l
	}
	return s
}

func (s *fakeLeadStore) GetByID(_ context.Context, id uuid.UUID) (*model.Lead, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok {
		return nil, domainErrors.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (s *fakeLeadStore) BindPrincipal(_ context.Context, id uuid.UUID, principalID string, contact entity.ContactFields) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.leads[id]
	if !ok || (l.PatientPrincipalID != nil && *l.PatientPrincipalID != principalID) {
		return false, nil
	}
	p := principalID
	l.PatientPrincipalID = &p
	if l.ReconciledAt == nil {
		now := time.Now()
		l.ReconciledAt = &now
	}
	if contact.FullName != "" {
		l.FullName = contact.FullName
	}
	if contact.Phone != "" {
		l.Phone = contact.Phone
	}
	if contact.Email != "" {
		l.Email = contact.Email
	}
	return true, nil
}

func (s *fakeLeadStore) List(context.Context, dto.LeadFilters) ([]*model.Lead, int64, error) {
	return nil, 0, nil
}

// fakeConversionStore implements compare-and-set on status
type fakeConversionStore struct {
	mu   sync.Mutex
	rows map[string]*model.ReferralConversion
}

func newFakeConversionStore(rows ...*model.ReferralConversion) *fakeConversionStore {
	s := &fakeConversionStore{rows: make(map[string]*model.ReferralConversion)}
	for _, r := range rows {
		s.rows[r.PatientPrincipalID] = r
	}
	return s
}

func (s *fakeConversionStore) GetByPatient(_ context.Context, id string) (*model.ReferralConversion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, domainErrors.ErrAttachmentNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeConversionStore) CompareAndSetStatus(_ context.Context, id int64, from model.ConversionStatus, decision *model.ReferralConversion) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.rows {
		if r.ID != id {
			continue
		}
		if r.Status != from {
			return false, nil
		}
		cp := *decision
		s.rows[r.PatientPrincipalID] = &cp
		return true, nil
	}
	return false, nil
}

// recordingCookies wraps a CookieManager and logs when Issue is called
type recordingCookies struct {
	*CookieManager
	events *[]string
}

func (r recordingCookies) Issue(code string) *http.Cookie {
	*r.events = append(*r.events, "issue_cookie")
	return r.CookieManager.Issue(code)
}
