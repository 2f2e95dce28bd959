// Package servicetest provides in-memory repositories for service tests.
package servicetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/advance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/attendance"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/holiday"
	"github.com/kaamgar/kaamgar-backend-go/internal/domain/worker"
	"github.com/kaamgar/kaamgar-backend-go/internal/pkg/calendar"
)

type attendanceKey struct {
	tenantID string
	workerID string
	date     time.Time
}

type holidayKey struct {
	tenantID string
	date     time.Time
}

// Store holds every aggregate in maps and implements database.Transactor by
// snapshotting state and restoring it when fn fails.
type Store struct {
	mu          sync.Mutex
	workers     map[string]worker.Worker
	attendances map[attendanceKey]attendance.Attendance
	advances    map[string]advance.Advance
	holidays    map[string]holiday.Holiday
	clock       time.Time

	TxCount int
}

func NewStore() *Store {
	return &Store{
		workers:     map[string]worker.Worker{},
		attendances: map[attendanceKey]attendance.Attendance{},
		advances:    map[string]advance.Advance{},
		holidays:    map[string]holiday.Holiday{},
		clock:       time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
	}
}

// tick returns a strictly increasing timestamp so last-write ordering is deterministic.
func (s *Store) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	s.mu.Lock()
	s.TxCount++
	workers := cloneMap(s.workers)
	attendances := cloneMap(s.attendances)
	advances := cloneMap(s.advances)
	holidays := cloneMap(s.holidays)
	s.mu.Unlock()

	if err := fn(ctx); err != nil {
		s.mu.Lock()
		s.workers, s.attendances, s.advances, s.holidays = workers, attendances, advances, holidays
		s.mu.Unlock()
		return err
	}
	return nil
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) Workers() worker.WorkerRepository { return workerRepo{s} }
func (s *Store) Attendances() attendance.AttendanceRepository { return attendanceRepo{s} }
func (s *Store) Advances() advance.AdvanceRepository { return advanceRepo{s} }
func (s *Store) Holidays() holiday.HolidayRepository { return holidayRepo{s} }

// AttendanceCount returns the number of stored attendance rows of a tenant.
func (s *Store) AttendanceCount(tenantID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for k := range s.attendances {
		if k.tenantID == tenantID {
			n++
		}
	}
	return n
}

type workerRepo struct{ s *Store }

func (r workerRepo) Create(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w.ID = newID()
	w.CreatedAt = r.s.tick()
	w.UpdatedAt = w.CreatedAt
	r.s.workers[w.ID] = w
	return w, nil
}

func (r workerRepo) GetByID(ctx context.Context, tenantID, id string) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workers[id]
	if !ok || w.ContractorID != tenantID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	return w, nil
}

func (r workerRepo) List(ctx context.Context, tenantID string, filter worker.WorkerFilter) ([]worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []worker.Worker{}
	for _, w := range r.s.workers {
		if w.ContractorID != tenantID {
			continue
		}
		if filter.Status != nil && w.Status != *filter.Status {
			continue
		}
		if filter.Search != nil && !strings.Contains(strings.ToLower(w.Name), strings.ToLower(*filter.Search)) {
			continue
		}
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r workerRepo) ListActive(ctx context.Context, tenantID string) ([]worker.Worker, error) {
	status := worker.StatusActive
	return r.List(ctx, tenantID, worker.WorkerFilter{Status: &status})
}

func (r workerRepo) Update(ctx context.Context, w worker.Worker) (worker.Worker, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.workers[w.ID]
	if !ok || current.ContractorID != w.ContractorID {
		return worker.Worker{}, worker.ErrWorkerNotFound
	}
	w.CreatedAt = current.CreatedAt
	w.Photo, w.PhotoLocation = current.Photo, current.PhotoLocation
	w.UpdatedAt = r.s.tick()
	r.s.workers[w.ID] = w
	return w, nil
}

func (r workerRepo) ReplacePhoto(ctx context.Context, tenantID, id string, photo *string, location *worker.PhotoLocation) (worker.Worker, *string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workers[id]
	if !ok || w.ContractorID != tenantID {
		return worker.Worker{}, nil, worker.ErrWorkerNotFound
	}
	previous := w.Photo
	w.Photo, w.PhotoLocation = photo, location
	w.UpdatedAt = r.s.tick()
	r.s.workers[id] = w
	return w, previous, nil
}

func (r workerRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workers[id]
	if !ok || w.ContractorID != tenantID {
		return worker.ErrWorkerNotFound
	}
	delete(r.s.workers, id)
	return nil
}

func (r workerRepo) CountByStatus(ctx context.Context, tenantID string) (map[worker.Status]int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	counts := map[worker.Status]int{worker.StatusActive: 0, worker.StatusInactive: 0}
	for _, w := range r.s.workers {
		if w.ContractorID == tenantID {
			counts[w.Status]++
		}
	}
	return counts, nil
}

type attendanceRepo struct{ s *Store }

func (r attendanceRepo) Upsert(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	key := attendanceKey{a.ContractorID, a.WorkerID, calendar.Day(a.Date)}
	now := r.s.tick()
	if current, ok := r.s.attendances[key]; ok {
		a.ID = current.ID
		a.CreatedAt = current.CreatedAt
	} else {
		a.ID = newID()
		a.CreatedAt = now
	}
	a.Date = key.date
	a.UpdatedAt = now
	a.WorkerName = nil
	r.s.attendances[key] = a
	return a, nil
}

func (r attendanceRepo) GetByID(ctx context.Context, tenantID, id string) (attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, a := range r.s.attendances {
		if k.tenantID == tenantID && a.ID == id {
			return r.s.withWorkerName(a), nil
		}
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (s *Store) withWorkerName(a attendance.Attendance) attendance.Attendance {
	if w, ok := s.workers[a.WorkerID]; ok && w.ContractorID == a.ContractorID {
		name := w.Name
		a.WorkerName = &name
	}
	return a
}

func (r attendanceRepo) List(ctx context.Context, tenantID string, filter attendance.AttendanceFilter) ([]attendance.Attendance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []attendance.Attendance{}
	for k, a := range r.s.attendances {
		if k.tenantID != tenantID {
			continue
		}
		if filter.WorkerID != nil && *filter.WorkerID != "" && a.WorkerID != *filter.WorkerID {
			continue
		}
		if filter.Date != nil && !a.Date.Equal(calendar.Day(*filter.Date)) {
			continue
		}
		if !filter.Period.Contains(a.Date) {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, r.s.withWorkerName(a))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].WorkerID < out[j].WorkerID
	})
	return out, nil
}

func (r attendanceRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for k, a := range r.s.attendances {
		if k.tenantID == tenantID && a.ID == id {
			delete(r.s.attendances, k)
			return nil
		}
	}
	return attendance.ErrAttendanceNotFound
}

type advanceRepo struct{ s *Store }

func (r advanceRepo) Create(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = newID()
	a.CreatedAt = r.s.tick()
	a.UpdatedAt = a.CreatedAt
	r.s.advances[a.ID] = a
	return a, nil
}

func (r advanceRepo) GetByID(ctx context.Context, tenantID, id string) (advance.Advance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.advances[id]
	if !ok || a.ContractorID != tenantID {
		return advance.Advance{}, advance.ErrAdvanceNotFound
	}
	return a, nil
}

func (r advanceRepo) List(ctx context.Context, tenantID string, filter advance.AdvanceFilter) ([]advance.Advance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []advance.Advance{}
	for _, a := range r.s.advances {
		if a.ContractorID != tenantID {
			continue
		}
		if filter.WorkerID != nil && *filter.WorkerID != "" && a.WorkerID != *filter.WorkerID {
			continue
		}
		if !filter.Period.Contains(a.Date) {
			continue
		}
		if filter.Status != nil && a.Status != *filter.Status {
			continue
		}
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.After(out[j].Date)
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r advanceRepo) Update(ctx context.Context, a advance.Advance) (advance.Advance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.advances[a.ID]
	if !ok || current.ContractorID != a.ContractorID {
		return advance.Advance{}, advance.ErrAdvanceNotFound
	}
	a.CreatedAt = current.CreatedAt
	a.UpdatedAt = r.s.tick()
	r.s.advances[a.ID] = a
	return a, nil
}

func (r advanceRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.advances[id]
	if !ok || a.ContractorID != tenantID {
		return advance.ErrAdvanceNotFound
	}
	delete(r.s.advances, id)
	return nil
}

type holidayRepo struct{ s *Store }

func (r holidayRepo) conflicts(h holiday.Holiday) bool {
	for _, existing := range r.s.holidays {
		if existing.ID != h.ID && existing.ContractorID == h.ContractorID && existing.Date.Equal(calendar.Day(h.Date)) {
			return true
		}
	}
	return false
}

func (r holidayRepo) Create(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.conflicts(h) {
		return holiday.Holiday{}, holiday.ErrHolidayExists
	}
	h.ID = newID()
	h.Date = calendar.Day(h.Date)
	h.CreatedAt = r.s.tick()
	h.UpdatedAt = h.CreatedAt
	r.s.holidays[h.ID] = h
	return h, nil
}

func (r holidayRepo) GetByID(ctx context.Context, tenantID, id string) (holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.holidays[id]
	if !ok || h.ContractorID != tenantID {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	return h, nil
}

func (r holidayRepo) List(ctx context.Context, tenantID string, period calendar.Period) ([]holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := []holiday.Holiday{}
	for _, h := range r.s.holidays {
		if h.ContractorID == tenantID && period.Contains(h.Date) {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r holidayRepo) Update(ctx context.Context, h holiday.Holiday) (holiday.Holiday, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	current, ok := r.s.holidays[h.ID]
	if !ok || current.ContractorID != h.ContractorID {
		return holiday.Holiday{}, holiday.ErrHolidayNotFound
	}
	if r.conflicts(h) {
		return holiday.Holiday{}, holiday.ErrHolidayExists
	}
	h.Date = calendar.Day(h.Date)
	h.CreatedAt = current.CreatedAt
	h.UpdatedAt = r.s.tick()
	r.s.holidays[h.ID] = h
	return h, nil
}

func (r holidayRepo) Delete(ctx context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	h, ok := r.s.holidays[id]
	if !ok || h.ContractorID != tenantID {
		return holiday.ErrHolidayNotFound
	}
	delete(r.s.holidays, id)
	return nil
}
