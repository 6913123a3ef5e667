package app

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Kabralz/sistema-gerenciador-de-recebimento/internal/domain"
)

// fakeStore is an in-memory store shared by the service tests. WithTx holds a
// mutex so admissions are serialized the way a real store serializes them.
type fakeStore struct {
	txMu sync.Mutex

	mu           sync.Mutex
	limits       map[domain.TruckType]int
	blocked      map[domain.Date]string
	reservations []domain.Reservation
	conferences  []domain.ConferenceRecord

	lockedSlots     []string
	createErr       error
	markReceivedErr error
}

func newFakeStore(limits map[domain.TruckType]int) *fakeStore {
	l := make(map[domain.TruckType]int, len(limits))
	for k, v := range limits {
		l[k] = v
	}
	return &fakeStore{
		limits:  l,
		blocked: make(map[domain.Date]string),
	}
}

func (f *fakeStore) addReservations(day domain.Date, truckType domain.TruckType, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := 0; i < n; i++ {
		f.reservations = append(f.reservations, domain.Reservation{
			ID:        string(truckType) + "-" + day.String() + "-" + string(rune('a'+i)),
			Date:      day,
			TruckType: truckType,
			SlotIndex: i,
			Status:    domain.ReservationStatusPending,
		})
	}
}

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()

	f.mu.Lock()
	snapshot := append([]domain.Reservation(nil), f.reservations...)
	conferences := append([]domain.ConferenceRecord(nil), f.conferences...)
	f.mu.Unlock()

	if err := fn(ctx); err != nil {
		f.mu.Lock()
		f.reservations = snapshot
		f.conferences = conferences
		f.mu.Unlock()
		return err
	}
	return nil
}

func (f *fakeStore) LockSlot(_ context.Context, day domain.Date, truckType domain.TruckType) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lockedSlots = append(f.lockedSlots, day.String()+":"+string(truckType))
	return nil
}

func (f *fakeStore) GetLimit(_ context.Context, truckType domain.TruckType) (domain.CapacityLimit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	limit, ok := f.limits[truckType]
	if !ok {
		return domain.CapacityLimit{}, domain.ErrLimitNotConfigured
	}
	return domain.CapacityLimit{TruckType: truckType, MaxPerDay: limit}, nil
}

func (f *fakeStore) CountReservations(_ context.Context, day domain.Date, truckType domain.TruckType) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.countLocked(day, truckType), nil
}

func (f *fakeStore) countLocked(day domain.Date, truckType domain.TruckType) int {
	n := 0
	for _, r := range f.reservations {
		if r.Date == day && r.TruckType == truckType {
			n++
		}
	}
	return n
}

func (f *fakeStore) CreateReservation(_ context.Context, r domain.Reservation, limit int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	if f.countLocked(r.Date, r.TruckType) >= limit {
		return domain.ErrSlotTaken
	}
	f.reservations = append(f.reservations, r)
	return nil
}

func (f *fakeStore) GetReservation(_ context.Context, id string) (domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.ID == id {
			return r, nil
		}
	}
	return domain.Reservation{}, domain.ErrReservationNotFound
}

func (f *fakeStore) GetReservationForUpdate(ctx context.Context, id string) (domain.Reservation, error) {
	return f.GetReservation(ctx, id)
}

func (f *fakeStore) ListReservationsByDate(_ context.Context, day domain.Date) ([]domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.Reservation
	for _, r := range f.reservations {
		if r.Date == day {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateConference(_ context.Context, rec domain.ConferenceRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.conferences {
		if c.ReservationID == rec.ReservationID {
			return domain.ErrAlreadyReceived
		}
	}
	f.conferences = append(f.conferences, rec)
	return nil
}

func (f *fakeStore) MarkReceived(_ context.Context, id string, at time.Time, handlingTime string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.markReceivedErr != nil {
		return f.markReceivedErr
	}
	for i := range f.reservations {
		r := &f.reservations[i]
		if r.ID != id || r.Status != domain.ReservationStatusPending {
			continue
		}
		r.Status = domain.ReservationStatusReceived
		r.ConferenceAt = &at
		if handlingTime != "" {
			r.HandlingTime = handlingTime
		}
		return nil
	}
	return domain.ErrReservationNotFound
}

func (f *fakeStore) SetArrival(_ context.Context, id string, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.reservations {
		if f.reservations[i].ID == id {
			f.reservations[i].ArrivalAt = &at
			return nil
		}
	}
	return domain.ErrReservationNotFound
}

func (f *fakeStore) ListLimits(_ context.Context) ([]domain.CapacityLimit, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.CapacityLimit, 0, len(f.limits))
	for k, v := range f.limits {
		out = append(out, domain.CapacityLimit{TruckType: k, MaxPerDay: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TruckType < out[j].TruckType })
	return out, nil
}

func (f *fakeStore) UpsertLimit(_ context.Context, limit domain.CapacityLimit) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits[limit.TruckType] = limit.MaxPerDay
	return nil
}

func (f *fakeStore) BlockDate(_ context.Context, b domain.BlockedDate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.blocked[b.Date] = b.Reason
	return nil
}

func (f *fakeStore) UnblockDate(_ context.Context, day domain.Date) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.blocked[day]; !ok {
		return domain.ErrBlockedDateNotFound
	}
	delete(f.blocked, day)
	return nil
}

func (f *fakeStore) ListBlockedDates(_ context.Context, from, to domain.Date) ([]domain.BlockedDate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []domain.BlockedDate
	for d, reason := range f.blocked {
		if d.Before(from) || d.After(to) {
			continue
		}
		out = append(out, domain.BlockedDate{Date: d, Reason: reason})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (f *fakeStore) CountByDateRange(_ context.Context, from, to domain.Date) ([]domain.SlotCount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	type key struct {
		d domain.Date
		t domain.TruckType
	}
	counts := make(map[key]int)
	for _, r := range f.reservations {
		if r.Date.Before(from) || r.Date.After(to) {
			continue
		}
		counts[key{r.Date, r.TruckType}]++
	}
	out := make([]domain.SlotCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, domain.SlotCount{Date: k.d, TruckType: k.t, Count: n})
	}
	return out, nil
}

func (f *fakeStore) HasReservationsBefore(_ context.Context, day domain.Date) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reservations {
		if r.Date.Before(day) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStore) reservationCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.reservations)
}
