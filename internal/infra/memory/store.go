// Package memory implementa os repositórios do engine em processo.
// Serve os testes e deployments single-node sem Postgres; a
// serialização de ReserveHold é um mutex por (tenant, staff).
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	availdomain "github.com/BruksfildServices01/booking-core/internal/domain/availability"
	resdomain "github.com/BruksfildServices01/booking-core/internal/domain/reservation"
	wldomain "github.com/BruksfildServices01/booking-core/internal/domain/waitlist"
	"github.com/BruksfildServices01/booking-core/internal/httperr"
	"github.com/BruksfildServices01/booking-core/internal/models"
)

type resourceKey struct {
	TenantID uint
	StaffID  uint
}

type Store struct {
	mu sync.RWMutex

	nextID uint

	tenants    map[uint]models.Tenant
	bySlug     map[string]uint
	services   map[uint]models.Service
	rules      []models.AvailabilityRule
	exceptions []models.TimeOffException
	holds      map[uint]models.BookingHold
	holdKeys   map[string]uint
	bookings   map[uint]models.Booking
	entries    map[uint]models.WaitlistEntry

	lockMu        sync.Mutex
	resourceLocks map[resourceKey]*sync.Mutex

	// relógio injetável para os testes de expiração
	Now func() time.Time
}

func NewStore() *Store {
	return &Store{
		tenants:       make(map[uint]models.Tenant),
		bySlug:        make(map[string]uint),
		services:      make(map[uint]models.Service),
		holds:         make(map[uint]models.BookingHold),
		holdKeys:      make(map[string]uint),
		bookings:      make(map[uint]models.Booking),
		entries:       make(map[uint]models.WaitlistEntry),
		resourceLocks: make(map[resourceKey]*sync.Mutex),
		Now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *Store) nextIDLocked() uint {
	s.nextID++
	return s.nextID
}

func (s *Store) resourceLock(tenantID, staffID uint) *sync.Mutex {
	s.lockMu.Lock()
	defer s.lockMu.Unlock()

	k := resourceKey{TenantID: tenantID, StaffID: staffID}
	if _, ok := s.resourceLocks[k]; !ok {
		s.resourceLocks[k] = &sync.Mutex{}
	}
	return s.resourceLocks[k]
}

// --------------------------------------------------
// Seeds (testes / bootstrap)
// --------------------------------------------------

func (s *Store) SeedTenant(t models.Tenant) models.Tenant {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t.ID == 0 {
		t.ID = s.nextIDLocked()
	}
	s.tenants[t.ID] = t
	if t.Slug != "" {
		s.bySlug[t.Slug] = t.ID
	}
	return t
}

func (s *Store) SeedService(svc models.Service) models.Service {
	s.mu.Lock()
	defer s.mu.Unlock()

	if svc.ID == 0 {
		svc.ID = s.nextIDLocked()
	}
	s.services[svc.ID] = svc
	return svc
}

func (s *Store) SeedBooking(b models.Booking) models.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	if b.ID == 0 {
		b.ID = s.nextIDLocked()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = s.Now()
	}
	s.bookings[b.ID] = b
	return b
}

// --------------------------------------------------
// availability.Repository
// --------------------------------------------------

func (s *Store) GetTenantByID(_ context.Context, id uint) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tenants[id]
	if !ok {
		return nil, httperr.ErrBusiness("tenant_not_found")
	}
	return &t, nil
}

func (s *Store) GetTenantBySlug(_ context.Context, slug string) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.bySlug[slug]
	if !ok {
		return nil, httperr.ErrBusiness("tenant_not_found")
	}
	t := s.tenants[id]
	return &t, nil
}

func (s *Store) GetService(_ context.Context, tenantID, serviceID uint) (*models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	svc, ok := s.services[serviceID]
	if !ok || svc.TenantID != tenantID {
		return nil, httperr.ErrBusiness("service_not_found")
	}
	return &svc, nil
}

func (s *Store) LoadRules(_ context.Context, tenantID, staffID uint) ([]models.AvailabilityRule, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.AvailabilityRule
	for _, r := range s.rules {
		if r.TenantID == tenantID && r.StaffID == staffID && r.Active {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Weekday < out[j].Weekday })
	return out, nil
}

func (s *Store) LoadExceptions(_ context.Context, tenantID, staffID uint, from, to time.Time) ([]models.TimeOffException, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.TimeOffException
	for _, ex := range s.exceptions {
		if ex.TenantID != tenantID || ex.StaffID != staffID {
			continue
		}
		if !ex.StartDate.After(to) && !ex.EndDate.Before(from) {
			out = append(out, ex)
		}
	}
	return out, nil
}

func (s *Store) UpsertRule(_ context.Context, rule *models.AvailabilityRule) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.rules {
		r := &s.rules[i]
		if r.TenantID == rule.TenantID && r.StaffID == rule.StaffID &&
			r.Weekday == rule.Weekday && r.Active {
			r.Active = false
		}
	}

	rule.ID = s.nextIDLocked()
	rule.Active = true
	rule.CreatedAt = s.Now()
	rule.UpdatedAt = rule.CreatedAt
	s.rules = append(s.rules, *rule)
	return nil
}

func (s *Store) CreateException(_ context.Context, ex *models.TimeOffException) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ex.ID = s.nextIDLocked()
	ex.CreatedAt = s.Now()
	s.exceptions = append(s.exceptions, *ex)
	return nil
}

// --------------------------------------------------
// reservation.Repository
// --------------------------------------------------

func (s *Store) HasConflict(_ context.Context, tenantID, staffID uint, start, end time.Time) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hasConflictLocked(tenantID, staffID, start, end), nil
}

func (s *Store) hasConflictLocked(tenantID, staffID uint, start, end time.Time) bool {
	now := s.Now()

	for _, b := range s.bookings {
		if b.TenantID != tenantID || b.StaffID != staffID {
			continue
		}
		if !resdomain.OccupiesConflictSpace(resdomain.Status(b.Status)) {
			continue
		}
		if resdomain.Overlaps(start, end, b.StartTime, b.EndTime) {
			return true
		}
	}

	for _, h := range s.holds {
		if h.TenantID != tenantID || h.StaffID != staffID {
			continue
		}
		if !resdomain.IsHoldActive(&h, now) {
			continue
		}
		if resdomain.Overlaps(start, end, h.StartTime, h.EndTime) {
			return true
		}
	}

	return false
}

// ReserveHold: seção crítica curta por (tenant, staff); leituras e
// geração de slots continuam paralelas.
func (s *Store) ReserveHold(_ context.Context, hold *models.BookingHold) error {
	l := s.resourceLock(hold.TenantID, hold.StaffID)
	l.Lock()
	defer l.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hasConflictLocked(hold.TenantID, hold.StaffID, hold.StartTime, hold.EndTime) {
		return httperr.ErrBusiness(httperr.CodeTimeConflict)
	}

	hold.ID = s.nextIDLocked()
	hold.CreatedAt = s.Now()
	s.holds[hold.ID] = *hold
	s.holdKeys[hold.HoldKey] = hold.ID
	return nil
}

func (s *Store) GetHoldByKey(_ context.Context, tenantID uint, holdKey string) (*models.BookingHold, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.holdKeys[holdKey]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeHoldNotFound)
	}
	h := s.holds[id]
	if h.TenantID != tenantID {
		return nil, httperr.ErrBusiness(httperr.CodeHoldNotFound)
	}
	return &h, nil
}

func (s *Store) DeleteHold(_ context.Context, tenantID uint, holdKey string) (*models.BookingHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.holdKeys[holdKey]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeHoldNotFound)
	}
	h := s.holds[id]
	if h.TenantID != tenantID {
		return nil, httperr.ErrBusiness(httperr.CodeHoldNotFound)
	}

	delete(s.holds, id)
	delete(s.holdKeys, holdKey)
	return &h, nil
}

func (s *Store) ConvertHold(_ context.Context, tenantID uint, holdKey string, now time.Time) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id, ok := s.holdKeys[holdKey]
	if !ok {
		return nil, httperr.ErrBusiness(httperr.CodeHoldNotFound)
	}
	h := s.holds[id]
	if h.TenantID != tenantID || !resdomain.IsHoldActive(&h, now) {
		return nil, httperr.ErrBusiness(httperr.CodeHoldNotFound)
	}

	booking := models.Booking{
		ID:         s.nextIDLocked(),
		TenantID:   h.TenantID,
		StaffID:    h.StaffID,
		ServiceID:  h.ServiceID,
		CustomerID: h.CustomerID,
		StartTime:  h.StartTime,
		EndTime:    h.EndTime,
		Status:     string(resdomain.StatusConfirmed),
		CreatedAt:  now,
	}
	s.bookings[booking.ID] = booking

	delete(s.holds, id)
	delete(s.holdKeys, holdKey)
	return &booking, nil
}

func (s *Store) DeleteExpiredHolds(_ context.Context, now time.Time) ([]models.BookingHold, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed []models.BookingHold
	for id, h := range s.holds {
		if !now.Before(h.ExpiresAt) {
			removed = append(removed, h)
			delete(s.holds, id)
			delete(s.holdKeys, h.HoldKey)
		}
	}
	return removed, nil
}

func (s *Store) GetBooking(_ context.Context, tenantID, bookingID uint) (*models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.bookings[bookingID]
	if !ok || b.TenantID != tenantID {
		return nil, httperr.ErrBusiness("booking_not_found")
	}
	return &b, nil
}

func (s *Store) LoadActiveBookings(_ context.Context, tenantID, staffID uint, from, to time.Time) ([]models.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Booking
	for _, b := range s.bookings {
		if b.TenantID != tenantID || b.StaffID != staffID {
			continue
		}
		if !resdomain.OccupiesConflictSpace(resdomain.Status(b.Status)) {
			continue
		}
		if resdomain.Overlaps(from, to, b.StartTime, b.EndTime) {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out, nil
}

func (s *Store) UpdateBooking(_ context.Context, booking *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.bookings[booking.ID]; !ok {
		return httperr.ErrBusiness("booking_not_found")
	}
	s.bookings[booking.ID] = *booking
	return nil
}

// --------------------------------------------------
// waitlist.Repository
// --------------------------------------------------

func (s *Store) CreateEntry(_ context.Context, entry *models.WaitlistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, e := range s.entries {
		if e.TenantID == entry.TenantID && e.StaffID == entry.StaffID &&
			e.CustomerID == entry.CustomerID &&
			e.PreferredStart.Equal(entry.PreferredStart) &&
			e.PreferredEnd.Equal(entry.PreferredEnd) &&
			e.Status == string(wldomain.StatusWaiting) {
			return httperr.ErrBusiness(httperr.CodeDuplicateEntry)
		}
	}

	entry.ID = s.nextIDLocked()
	entry.Status = string(wldomain.StatusWaiting)
	entry.CreatedAt = s.Now()
	entry.UpdatedAt = entry.CreatedAt
	s.entries[entry.ID] = *entry
	return nil
}

func (s *Store) ListWaiting(_ context.Context, tenantID, staffID uint) ([]models.WaitlistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.WaitlistEntry
	for _, e := range s.entries {
		if e.TenantID == tenantID && e.StaffID == staffID &&
			e.Status == string(wldomain.StatusWaiting) {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority < out[j].Priority
		}
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) MarkNotified(_ context.Context, tenantID, entryID uint, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryID]
	if !ok || e.TenantID != tenantID {
		return httperr.ErrBusiness(httperr.CodeEntryNotFound)
	}

	e.Status = string(wldomain.StatusNotified)
	e.NotifiedAt = &now
	e.UpdatedAt = now
	s.entries[entryID] = e
	return nil
}

func (s *Store) RemoveEntry(_ context.Context, tenantID, entryID uint) (*models.WaitlistEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[entryID]
	if !ok || e.TenantID != tenantID {
		return nil, httperr.ErrBusiness(httperr.CodeEntryNotFound)
	}

	delete(s.entries, entryID)
	return &e, nil
}

// Compile-time checks
var (
	_ availdomain.Repository = (*Store)(nil)
	_ resdomain.Repository   = (*Store)(nil)
	_ wldomain.Repository    = (*Store)(nil)
)
