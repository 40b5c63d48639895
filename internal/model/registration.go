package model

import "time"

// Registration is a student's opt-in record of attendance for an event.
// The registrations table carries UNIQUE(event_id, student_id), so a
// student appears at most once per event regardless of concurrent attempts.
//
// Fields:
//  ID           – primary key identifier.
//  EventID      – the event being attended.
//  StudentID    – registering student's user ID.
//  StudentName  – student display name (denormalized for rosters).
//  RollNo       – roll number supplied at registration.
//  Phone        – contact number supplied at registration.
//  RegisteredAt – registration timestamp.
type Registration struct {
    ID           uint64    // registrations.id
    EventID      uint64    // registrations.event_id
    StudentID    uint64    // registrations.student_id
    StudentName  string    // registrations.student_name
    RollNo       string    // registrations.roll_no
    Phone        string    // registrations.phone
    RegisteredAt time.Time // registrations.registered_at
}
