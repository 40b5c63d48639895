package service

import (
    "context"
    "errors"

    "github.com/campuskit/hall-booking/internal/model"
    "github.com/campuskit/hall-booking/internal/repository"
)

// RegistrationStore is the registration persistence surface the service
// needs.
type RegistrationStore interface {
    FindByEventStudent(ctx context.Context, eventID, studentID uint64) (model.Registration, error)
    Insert(ctx context.Context, reg *model.Registration) error
}

// RegistrationService handles student opt-ins. Registration is a set-add
// keyed by student id: a duplicate attempt returns the existing row
// untouched, whatever details the second attempt carried.
type RegistrationService struct {
    tx     Tx
    events EventStore
    regs   RegistrationStore
}

func NewRegistrationService(tx Tx, events EventStore, regs RegistrationStore) *RegistrationService {
    return &RegistrationService{tx: tx, events: events, regs: regs}
}

// Register adds the student to the event roster. Returns the stored
// registration and whether this call created it. Events that are not
// CONFIRMED reject registration with repository.ErrEventNotOpen.
func (s *RegistrationService) Register(ctx context.Context, eventID uint64, student model.User, rollNo, phone string) (model.Registration, bool, error) {
    var (
        out     model.Registration
        created bool
    )
    err := s.tx.WithTx(ctx, func(ctx context.Context) error {
        ev, err := s.events.GetForUpdate(ctx, eventID)
        if err != nil {
            return err
        }
        if ev.Status != model.EventStatusConfirmed {
            return repository.ErrEventNotOpen
        }

        existing, err := s.regs.FindByEventStudent(ctx, eventID, student.ID)
        if err == nil {
            out = existing
            return nil
        }
        if !errors.Is(err, repository.ErrNotFound) {
            return err
        }

        reg := model.Registration{
            EventID:     eventID,
            StudentID:   student.ID,
            StudentName: student.Name,
            RollNo:      rollNo,
            Phone:       phone,
        }
        if err := s.regs.Insert(ctx, &reg); err != nil {
            // A concurrent registrant won the unique index; re-read theirs.
            if repository.IsDuplicate(err) {
                existing, rerr := s.regs.FindByEventStudent(ctx, eventID, student.ID)
                if rerr != nil {
                    return rerr
                }
                out = existing
                return nil
            }
            return err
        }
        out = reg
        created = true
        return nil
    })
    if err != nil {
        return model.Registration{}, false, err
    }
    return out, created, nil
}
