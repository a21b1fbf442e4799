// Package export renders dashboard lists as downloadable xlsx workbooks.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"companysite/internal/models"
)

// ContentType is the MIME type of every workbook produced here.
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04:05"
	notAvailable   = "N/A"
)

// sheet describes one worksheet: a title, a header colour, the column
// headers and one row of cell values per record.
type sheet struct {
	name    string
	color   string
	headers []string
	rows    [][]interface{}
}

// FileName returns "<kind>_yyyyMMdd_HHmmss.xlsx".
func FileName(kind string, at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", kind, at.Format("20060102_150405"))
}

func Reports(reports []models.Report) ([]byte, error) {
	s := sheet{
		name:    "Reports",
		color:   "0000FF",
		headers: []string{"Title", "Reference", "Description", "Report Exe", "Updated"},
	}
	for _, r := range reports {
		s.rows = append(s.rows, []interface{}{r.Title, r.Reference, r.Description, r.ReportExe, r.Updated.Format(dateTimeLayout)})
	}
	return s.render()
}

func DatabaseStatuses(statuses []models.DatabaseStatus) ([]byte, error) {
	s := sheet{
		name:    "Database Status",
		color:   "008000",
		headers: []string{"Company", "Region", "Database", "Refresh Date", "Expected Refresh Date", "Status"},
	}
	for _, st := range statuses {
		s.rows = append(s.rows, []interface{}{
			st.Company,
			st.Region,
			st.Database,
			formatOptional(st.RefreshDate, dateTimeLayout),
			st.ExpectedRefreshDate.Format(dateLayout),
			st.Status,
		})
	}
	return s.render()
}

func AccessRequests(requests []models.AccessRequest) ([]byte, error) {
	s := sheet{
		name:    "Access Requests",
		color:   "FFA500",
		headers: []string{"Ref", "Status", "Category", "Requestor Name", "Date of Request", "Details"},
	}
	for _, r := range requests {
		s.rows = append(s.rows, []interface{}{
			r.ID,
			r.Status,
			r.CategoryLabel(),
			r.RequestorName,
			r.CreateDate.Format(dateTimeLayout),
			r.UserName + " - " + r.RequestDetails,
		})
	}
	return s.render()
}

// Schedules renders schedules that already carry their NextRunDate.
func Schedules(schedules []models.Schedule) ([]byte, error) {
	s := sheet{
		name:  "Schedules",
		color: "800080",
		headers: []string{
			"Id", "Machine", "Last Run Date", "Next Run Date", "Last Run Status", "Report",
			"DB", "Server", "Frequency", "Day or Date", "Output Directory",
		},
	}
	for _, sc := range schedules {
		dayOrDate := ""
		if sc.DayOrDate != nil {
			dayOrDate = *sc.DayOrDate
		}
		s.rows = append(s.rows, []interface{}{
			sc.ID,
			sc.Server,
			sc.LastRunDate.Format(dateTimeLayout),
			formatOptional(sc.NextRunDate, dateLayout),
			string(sc.LastRunState),
			sc.ReportName,
			sc.ClientDatabase,
			sc.ClientServer,
			string(sc.Frequency),
			dayOrDate,
			sc.OutputDirectory,
		})
	}
	return s.render()
}

func formatOptional(t *time.Time, layout string) string {
	if t == nil {
		return notAvailable
	}
	return t.Format(layout)
}

func (s sheet) render() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", s.name); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{s.color}},
	})
	if err != nil {
		return nil, fmt.Errorf("header style: %w", err)
	}
	zebraStyle, err := f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"D3D3D3"}},
	})
	if err != nil {
		return nil, fmt.Errorf("row style: %w", err)
	}

	if err := f.SetSheetRow(s.name, "A1", &s.headers); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}
	lastCol, _ := excelize.ColumnNumberToName(len(s.headers))
	if err := f.SetCellStyle(s.name, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}

	widths := make([]int, len(s.headers))
	for i, h := range s.headers {
		widths[i] = len(h)
	}

	for i, values := range s.rows {
		row := i + 2
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(s.name, cell, &values); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if row%2 == 0 {
			if err := f.SetCellStyle(s.name, cell, fmt.Sprintf("%s%d", lastCol, row), zebraStyle); err != nil {
				return nil, fmt.Errorf("style row %d: %w", row, err)
			}
		}
		for c, v := range values {
			if n := len(fmt.Sprint(v)); n > widths[c] {
				widths[c] = n
			}
		}
	}

	for c, w := range widths {
		col, _ := excelize.ColumnNumberToName(c + 1)
		if err := f.SetColWidth(s.name, col, col, float64(min(w+2, 80))); err != nil {
			return nil, fmt.Errorf("column width: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
