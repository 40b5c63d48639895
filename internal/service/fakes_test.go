package service

import (
    "context"
    "errors"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/queue"
    "github.com/campuskit/hall-booking/internal/repository"
)

// fakeStore is an in-memory stand-in for the repository layer. WithTx
// snapshots the state before running fn and restores it on error, so the
// rollback semantics the services rely on hold in tests too.
type fakeStore struct {
    nextID   uint64
    events   []model.Event
    requests []model.ExchangeRequest
    regs     []model.Registration
    halls    []model.Hall
    users    []model.User

    failRegInsertDup bool // next registration insert hits the unique index
    hideRegOnce      bool // next registration lookup misses, as if racing
}

func newFakeStore() *fakeStore {
    return &fakeStore{
        nextID: 100,
        halls: []model.Hall{
            {ID: 1, Name: "N.G.P. Conference Center", Capacity: 500, Location: "Main Block"},
            {ID: 2, Name: "Seminar Hall A", Capacity: 150, Location: "Science Block"},
        },
        users: []model.User{
            {ID: 2, Name: "Prof. Sarah Smith", Email: "staff@college.test", Role: model.RoleTeacher},
            {ID: 3, Name: "Prof. Alan Turing", Email: "math@college.test", Role: model.RoleTeacher},
            {ID: 4, Name: "John Doe", Email: "student@college.test", Role: model.RoleStudent},
        },
    }
}

func (f *fakeStore) id() uint64 {
    f.nextID++
    return f.nextID
}

// --- Tx ---

func (f *fakeStore) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
    events := append([]model.Event(nil), f.events...)
    requests := append([]model.ExchangeRequest(nil), f.requests...)
    regs := append([]model.Registration(nil), f.regs...)
    nextID := f.nextID
    if err := fn(ctx); err != nil {
        f.events, f.requests, f.regs, f.nextID = events, requests, regs, nextID
        return err
    }
    return nil
}

// --- EventStore ---

func (f *fakeStore) ForUpdateByHallDate(_ context.Context, hallID uint64, date string) ([]model.Event, error) {
    var out []model.Event
    for _, e := range f.events {
        if e.HallID == hallID && e.Date == date {
            out = append(out, e)
        }
    }
    return out, nil
}

func (f *fakeStore) Insert(_ context.Context, e *model.Event) error {
    e.ID = f.id()
    f.events = append(f.events, *e)
    return nil
}

func (f *fakeStore) GetByID(_ context.Context, id uint64) (model.Event, error) {
    for _, e := range f.events {
        if e.ID == id {
            return e, nil
        }
    }
    return model.Event{}, repository.ErrNotFound
}

func (f *fakeStore) GetForUpdate(ctx context.Context, id uint64) (model.Event, error) {
    return f.GetByID(ctx, id)
}

func (f *fakeStore) List(_ context.Context, flt repository.EventFilter) ([]model.Event, error) {
    var out []model.Event
    for _, e := range f.events {
        if flt.Date != "" && e.Date != flt.Date {
            continue
        }
        if flt.FromDate != "" && e.Date < flt.FromDate {
            continue
        }
        if flt.HallID != 0 && e.HallID != flt.HallID {
            continue
        }
        if flt.OrganizerID != 0 && e.OrganizerID != flt.OrganizerID {
            continue
        }
        if flt.Status != "" {
            if e.Status != flt.Status {
                continue
            }
        } else if !flt.All && e.Status == model.EventStatusCancelled {
            continue
        }
        out = append(out, e)
    }
    return out, nil
}

func (f *fakeStore) UpdateStatus(_ context.Context, id uint64, status string) error {
    for i := range f.events {
        if f.events[i].ID == id {
            f.events[i].Status = status
            return nil
        }
    }
    return repository.ErrNotFound
}

func (f *fakeStore) SetRefreshmentsDelivered(_ context.Context, id uint64) error {
    for i := range f.events {
        if f.events[i].ID == id {
            f.events[i].RefreshmentsDelivered = true
            return nil
        }
    }
    return repository.ErrNotFound
}

func (f *fakeStore) Delete(_ context.Context, id uint64) error {
    for i := range f.events {
        if f.events[i].ID == id {
            f.events = append(f.events[:i], f.events[i+1:]...)
            kept := f.regs[:0]
            for _, r := range f.regs {
                if r.EventID != id {
                    kept = append(kept, r)
                }
            }
            f.regs = kept
            return nil
        }
    }
    return repository.ErrNotFound
}

// --- HallStore ---

func (f *fakeStore) HallByID(_ context.Context, id uint64) (model.Hall, error) {
    for _, h := range f.halls {
        if h.ID == id {
            return h, nil
        }
    }
    return model.Hall{}, repository.ErrNotFound
}

// halls is a method-set adapter so fakeStore can serve HallStore without
// clashing with the event GetByID.
type fakeHalls struct{ *fakeStore }

func (f fakeHalls) GetByID(ctx context.Context, id uint64) (model.Hall, error) {
    return f.HallByID(ctx, id)
}

// --- UserStore ---

type fakeUsers struct{ *fakeStore }

func (f fakeUsers) GetByID(_ context.Context, id uint64) (model.User, error) {
    for _, u := range f.users {
        if u.ID == id {
            return u, nil
        }
    }
    return model.User{}, repository.ErrNotFound
}

// --- RegistrationStore ---

func (f *fakeStore) FindByEventStudent(_ context.Context, eventID, studentID uint64) (model.Registration, error) {
    if f.hideRegOnce {
        f.hideRegOnce = false
        return model.Registration{}, repository.ErrNotFound
    }
    for _, r := range f.regs {
        if r.EventID == eventID && r.StudentID == studentID {
            return r, nil
        }
    }
    return model.Registration{}, repository.ErrNotFound
}

func (f *fakeStore) InsertRegistration(_ context.Context, reg *model.Registration) error {
    if f.failRegInsertDup {
        f.failRegInsertDup = false
        return errors.New("Error 1062 (23000): Duplicate entry")
    }
    reg.ID = f.id()
    f.regs = append(f.regs, *reg)
    return nil
}

type fakeRegs struct{ *fakeStore }

func (f fakeRegs) Insert(ctx context.Context, reg *model.Registration) error {
    return f.InsertRegistration(ctx, reg)
}

// --- ExchangeStore / RequestStore ---

func (f *fakeStore) InsertRequest(_ context.Context, req *model.ExchangeRequest) error {
    req.ID = f.id()
    f.requests = append(f.requests, *req)
    return nil
}

func (f *fakeStore) RequestForUpdate(_ context.Context, id uint64) (model.ExchangeRequest, error) {
    for _, r := range f.requests {
        if r.ID == id {
            return r, nil
        }
    }
    return model.ExchangeRequest{}, repository.ErrNotFound
}

func (f *fakeStore) UpdateRequestStatus(_ context.Context, id uint64, status string) error {
    for i := range f.requests {
        if f.requests[i].ID == id {
            f.requests[i].Status = status
            return nil
        }
    }
    return repository.ErrNotFound
}

func (f *fakeStore) RejectPendingForEvent(_ context.Context, eventID uint64) error {
    for i := range f.requests {
        if f.requests[i].TargetEventID == eventID && f.requests[i].Status == model.ExchangeStatusPending {
            f.requests[i].Status = model.ExchangeStatusRejected
        }
    }
    return nil
}

type fakeRequests struct{ *fakeStore }

func (f fakeRequests) Insert(ctx context.Context, req *model.ExchangeRequest) error {
    return f.InsertRequest(ctx, req)
}

func (f fakeRequests) GetForUpdate(ctx context.Context, id uint64) (model.ExchangeRequest, error) {
    return f.RequestForUpdate(ctx, id)
}

func (f fakeRequests) UpdateStatus(ctx context.Context, id uint64, status string) error {
    return f.UpdateRequestStatus(ctx, id, status)
}

// --- Notifier ---

type recordingNotifier struct {
    sent []queue.Notification
}

func (n *recordingNotifier) Notify(_ context.Context, msg queue.Notification) error {
    n.sent = append(n.sent, msg)
    return nil
}

// --- wiring helpers ---

func newBookingService(f *fakeStore) *BookingService {
    return NewBookingService(f, f, fakeHalls{f}, f)
}

func newRegistrationService(f *fakeStore) *RegistrationService {
    return NewRegistrationService(f, f, fakeRegs{f})
}

func newExchangeService(f *fakeStore, n *recordingNotifier) *ExchangeService {
    return NewExchangeService(f, f, fakeRequests{f}, fakeUsers{f}, n)
}

func confirmedEvent(id, hallID, organizerID uint64, date, start, end, title string) model.Event {
    return model.Event{
        ID:          id,
        Title:       title,
        Date:        date,
        StartTime:   start,
        EndTime:     end,
        HallID:      hallID,
        OrganizerID: organizerID,
        Status:      model.EventStatusConfirmed,
    }
}
