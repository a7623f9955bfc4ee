package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// MissionOrderData carries everything the official document needs. The
// renderer stays decoupled from internal/models so it can be exercised from
// the jobs worker with a plain value.
type MissionOrderData struct {
	Reference       string
	InstitutionName string
	Object          string
	DepartureDate   time.Time
	ReturnDate      time.Time
	EstimatedCosts  *float64
	Participants    []MissionOrderParticipant
	Vehicle         string
	Driver          string
	TicketRef       string
	ValidatedAt     time.Time
	Validations     []MissionOrderValidation
}

// MissionOrderParticipant is one employee line on the order.
type MissionOrderParticipant struct {
	Matricule string
	FullName  string
	Position  string
}

// MissionOrderValidation is one signature line of the approval chain.
type MissionOrderValidation struct {
	Role      string
	ActorName string
	Date      time.Time
}

// MissionOrderRenderer produces the official travel-authorization PDF.
type MissionOrderRenderer struct{}

// NewMissionOrderRenderer constructs the renderer.
func NewMissionOrderRenderer() *MissionOrderRenderer {
	return &MissionOrderRenderer{}
}

// Render builds the PDF for a validated mission order.
func (r *MissionOrderRenderer) Render(data MissionOrderData) ([]byte, error) {
	if data.Reference == "" {
		return nil, fmt.Errorf("mission order requires a reference")
	}
	if len(data.Participants) == 0 {
		return nil, fmt.Errorf("mission order requires at least one participant")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 8, strings.ToUpper(data.InstitutionName), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "MISSION ORDER", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 6, fmt.Sprintf("Ref: %s", data.Reference), "", 1, "C", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", 10)
	writeField := func(label, value string) {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(45, 7, label, "", 0, "", false, 0, "")
		pdf.SetFont("Arial", "", 10)
		pdf.MultiCell(0, 7, value, "", "", false)
	}
	writeField("Object:", data.Object)
	writeField("Departure:", data.DepartureDate.Format("02 Jan 2006"))
	writeField("Return:", data.ReturnDate.Format("02 Jan 2006"))
	if data.EstimatedCosts != nil {
		writeField("Estimated costs:", fmt.Sprintf("%.2f", *data.EstimatedCosts))
	}
	if data.Vehicle != "" {
		writeField("Vehicle:", data.Vehicle)
	}
	if data.Driver != "" {
		writeField("Driver:", data.Driver)
	}
	if data.TicketRef != "" {
		writeField("Ticket:", data.TicketRef)
	}
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(0, 7, "Participants", "", 1, "", false, 0, "")
	headers := []string{"Matricule", "Full name", "Position"}
	widths := []float64{40, 80, 60}
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, p := range data.Participants {
		pdf.CellFormat(widths[0], 7, p.Matricule, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[1], 7, p.FullName, "1", 0, "", false, 0, "")
		pdf.CellFormat(widths[2], 7, p.Position, "1", 0, "", false, 0, "")
		pdf.Ln(-1)
	}
	pdf.Ln(6)

	if len(data.Validations) > 0 {
		pdf.SetFont("Arial", "B", 10)
		pdf.CellFormat(0, 7, "Approval chain", "", 1, "", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		for _, v := range data.Validations {
			line := fmt.Sprintf("%s - %s - %s", v.Role, v.ActorName, v.Date.Format("02 Jan 2006 15:04"))
			pdf.CellFormat(0, 6, line, "", 1, "", false, 0, "")
		}
		pdf.Ln(4)
	}

	pdf.SetFont("Arial", "I", 9)
	pdf.CellFormat(0, 6, fmt.Sprintf("Validated on %s", data.ValidatedAt.Format("02 Jan 2006 15:04")), "", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render mission order: %w", err)
	}
	return buf.Bytes(), nil
}
