package handler // handler defines http handlers

import (
    "errors"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/campuskit/hall-booking/internal/model"
)

// dbTimeout bounds every database call made from a handler.
const dbTimeout = 5 * time.Second

// getUserID extracts the user_id claim from echo.Context and converts it
// to uint64. JWT numeric claims decode as float64; older contexts may
// carry strings or native ints.
func getUserID(c echo.Context) (uint64, error) {
    switch t := c.Get("user_id").(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// getUserName returns the display-name claim, empty when absent.
func getUserName(c echo.Context) string {
    if s, ok := c.Get("name").(string); ok {
        return s
    }
    return ""
}

// pathID parses the :id route parameter.
func pathID(c echo.Context) (uint64, error) {
    return strconv.ParseUint(c.Param("id"), 10, 64)
}

// parseUint parses a numeric query parameter.
func parseUint(s string) (uint64, error) {
    return strconv.ParseUint(s, 10, 64)
}

// ----- shared response shapes -----

// eventResp is the full event representation returned to authenticated
// callers. Public listings use the slimmer publicEvent instead.
type eventResp struct {
    ID                    uint64   `json:"id"`
    Reference             string   `json:"reference"`
    Title                 string   `json:"title"`
    Department            string   `json:"department"`
    Date                  string   `json:"date"`
    StartTime             string   `json:"start_time"`
    EndTime               string   `json:"end_time"`
    HallID                uint64   `json:"hall_id"`
    OrganizerID           uint64   `json:"organizer_id"`
    OrganizerName         string   `json:"organizer_name"`
    OrganizerContact      string   `json:"organizer_contact"`
    GuestName             string   `json:"guest_name"`
    VIPArrival            string   `json:"vip_arrival,omitempty"`
    ExpectedParticipants  uint32   `json:"expected_participants"`
    Status                string   `json:"status"`
    Refreshments          []string `json:"refreshments"`
    RefreshmentsDelivered bool     `json:"refreshments_delivered"`
    SecurityNeeds         string   `json:"security_needs,omitempty"`
    ElectricalNeeds       []string `json:"electrical_needs"`
    LabRequirements       []string `json:"lab_requirements"`
    StoreItems            []string `json:"store_items"`
}

func newEventResp(e model.Event) eventResp {
    return eventResp{
        ID:                    e.ID,
        Reference:             e.Reference,
        Title:                 e.Title,
        Department:            e.Department,
        Date:                  e.Date,
        StartTime:             e.StartTime,
        EndTime:               e.EndTime,
        HallID:                e.HallID,
        OrganizerID:           e.OrganizerID,
        OrganizerName:         e.OrganizerName,
        OrganizerContact:      e.OrganizerContact,
        GuestName:             e.GuestName,
        VIPArrival:            e.VIPArrival,
        ExpectedParticipants:  e.ExpectedParticipants,
        Status:                e.Status,
        Refreshments:          e.Refreshments,
        RefreshmentsDelivered: e.RefreshmentsDelivered,
        SecurityNeeds:         e.SecurityNeeds,
        ElectricalNeeds:       e.ElectricalNeeds,
        LabRequirements:       e.LabRequirements,
        StoreItems:            e.StoreItems,
    }
}

func eventRespList(events []model.Event) []eventResp {
    out := make([]eventResp, 0, len(events))
    for _, e := range events {
        out = append(out, newEventResp(e))
    }
    return out
}

type registrationResp struct {
    ID           uint64    `json:"id"`
    EventID      uint64    `json:"event_id"`
    StudentID    uint64    `json:"student_id"`
    StudentName  string    `json:"student_name"`
    RollNo       string    `json:"roll_no"`
    Phone        string    `json:"phone"`
    RegisteredAt time.Time `json:"registered_at"`
}

func newRegistrationResp(r model.Registration) registrationResp {
    return registrationResp{
        ID:           r.ID,
        EventID:      r.EventID,
        StudentID:    r.StudentID,
        StudentName:  r.StudentName,
        RollNo:       r.RollNo,
        Phone:        r.Phone,
        RegisteredAt: r.RegisteredAt,
    }
}

type exchangeResp struct {
    ID                uint64           `json:"id"`
    RequesterID       uint64           `json:"requester_id"`
    RequesterName     string           `json:"requester_name"`
    TargetEventID     uint64           `json:"target_event_id"`
    TargetEventTitle  string           `json:"target_event_title"`
    TargetOrganizerID uint64           `json:"target_organizer_id"`
    Proposed          model.EventDraft `json:"proposed"`
    Status            string           `json:"status"`
    CreatedAt         time.Time        `json:"created_at"`
}

func newExchangeResp(r model.ExchangeRequest) exchangeResp {
    return exchangeResp{
        ID:                r.ID,
        RequesterID:       r.RequesterID,
        RequesterName:     r.RequesterName,
        TargetEventID:     r.TargetEventID,
        TargetEventTitle:  r.TargetEventTitle,
        TargetOrganizerID: r.TargetOrganizerID,
        Proposed:          r.Proposed,
        Status:            r.Status,
        CreatedAt:         r.CreatedAt,
    }
}
