package models

import "time"

// Report maps to the `Reports` catalog table.
type Report struct {
	ID          uint      `gorm:"column:Id;primaryKey;autoIncrement" json:"-"`
	Title       string    `gorm:"column:Title;size:300" json:"title"`
	Reference   string    `gorm:"column:Reference;size:100" json:"reference"`
	Description string    `gorm:"column:Description;type:text" json:"description"`
	ReportExe   string    `gorm:"column:ReportExe;size:300" json:"reportExe"`
	Updated     time.Time `gorm:"column:Updated" json:"updated"`
}

func (Report) TableName() string {
	return "Reports"
}

// Database freshness outcomes.
const (
	DatabaseStatusOK              = "OK"
	DatabaseStatusOutOfDate       = "Out of date"
	DatabaseStatusConnectionError = "Connection Error"
)

// DatabaseStatus is the computed freshness of one client database. Not persisted.
type DatabaseStatus struct {
	Company             string     `json:"company"`
	Region              string     `json:"region"`
	Database            string     `json:"database"`
	RefreshDate         *time.Time `json:"refreshDate"`
	ExpectedRefreshDate time.Time  `json:"expectedRefreshDate"`
	Status              string     `json:"status"`
}
