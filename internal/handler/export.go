package handler

// Roster CSV export. The spreadsheet columns mirror what front-desk staff
// print for the sign-in sheet at the hall entrance.

import (
    "encoding/csv"
    "fmt"
    "net/http"
    "strconv"

    "github.com/labstack/echo/v4"
)

// ExportRoster streams the event's registration list as a CSV download.
// Access rules are the same as Roster.
func (h *OrganizerHandler) ExportRoster(c echo.Context) error {
    regs, event, ok, err := h.loadRoster(c)
    if !ok {
        return err
    }

    filename := fmt.Sprintf("roster-event-%d.csv", event.ID)
    c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
    c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
    c.Response().WriteHeader(http.StatusOK)

    w := csv.NewWriter(c.Response())
    if err := w.Write([]string{"S.No", "Student Name", "Roll No", "Phone", "Registered At"}); err != nil {
        return err
    }
    for i, r := range regs {
        row := []string{
            strconv.Itoa(i + 1),
            r.StudentName,
            r.RollNo,
            r.Phone,
            r.RegisteredAt.UTC().Format("2006-01-02 15:04:05"),
        }
        if err := w.Write(row); err != nil {
            return err
        }
    }
    w.Flush()
    return w.Error()
}
