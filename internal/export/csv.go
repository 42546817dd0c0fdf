// Package export renders appointment lists for download.
package export

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"tattoo-studio-server/internal/models"
)

// ContentType is served with CSV downloads.
const ContentType = "text/csv; charset=utf-8"

// byteOrderMark lets spreadsheet tools detect UTF-8 so accented names display correctly.
const byteOrderMark = "\uFEFF"

// createdAtLayout matches the pt-BR locale date-time format.
const createdAtLayout = "02/01/2006, 15:04:05"

var header = []string{
	"ID", "Cliente", "Telefone", "Email", "Data", "Horário",
	"Serviço", "Observações", "Status", "Criado em",
}

// FileName is the download name for an export made at now.
func FileName(now time.Time) string {
	return "agendamentos_" + models.DateOf(now) + ".csv"
}

// WriteCSV writes appts as CSV with every field quoted. Status is derived at
// now and creation times are shown in now's location.
func WriteCSV(w io.Writer, appts []models.Appointment, now time.Time) error {
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(byteOrderMark); err != nil {
		return err
	}
	writeRow(bw, header)
	for _, a := range appts {
		bw.WriteByte('\n')
		writeRow(bw, []string{
			strconv.Itoa(a.ID),
			a.ClientName,
			a.Phone,
			a.Email,
			a.Date,
			a.TimeSlot,
			a.Service,
			a.Notes,
			models.StatusAt(a.Date, now).Label(),
			a.CreatedAt.In(now.Location()).Format(createdAtLayout),
		})
	}
	return bw.Flush()
}

func writeRow(bw *bufio.Writer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			bw.WriteByte(',')
		}
		bw.WriteByte('"')
		bw.WriteString(strings.ReplaceAll(f, `"`, `""`))
		bw.WriteByte('"')
	}
}
