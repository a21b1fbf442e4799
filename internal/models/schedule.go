package models

import "time"

// Frequency is the recurrence code stored on a schedule row.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyNBD     Frequency = "NBD"
	FrequencyMonthly Frequency = "Monthly"
	FrequencyFBD     Frequency = "FBD"
	FrequencyWeekly  Frequency = "Weekly"
)

// Known reports whether f is one of the recurrence codes the engine understands.
func (f Frequency) Known() bool {
	switch f {
	case FrequencyDaily, FrequencyNBD, FrequencyMonthly, FrequencyFBD, FrequencyWeekly:
		return true
	}
	return false
}

// RunState is the outcome of a schedule's most recent run.
type RunState string

const (
	RunStateSuccess RunState = "Success"
	RunStateError   RunState = "Error"
	RunStateRunning RunState = "Running"
	RunStatePending RunState = "Pending"
)

func (s RunState) Known() bool {
	switch s {
	case RunStateSuccess, RunStateError, RunStateRunning, RunStatePending:
		return true
	}
	return false
}

// Schedule maps to the `Schedules` table.
// NextRunDate is derived on every read and never stored.
type Schedule struct {
	ID              uint       `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	Server          string     `gorm:"column:Server;size:200" json:"server"`
	LastRunDate     time.Time  `gorm:"column:LastRunDate" json:"lastRunDate"`
	Frequency       Frequency  `gorm:"column:Frequency;size:20" json:"frequency"`
	ClientDatabase  string     `gorm:"column:ClientDatabase;size:200;index" json:"clientDatabase"`
	DayOrDate       *string    `gorm:"column:DayOrDate;size:20" json:"dayOrDate"`
	LastRunState    RunState   `gorm:"column:LastRunState;size:20" json:"lastRunState"`
	ReportName      string     `gorm:"column:ReportName;size:300" json:"reportName"`
	ClientServer    string     `gorm:"column:ClientServer;size:200" json:"clientServer"`
	OutputDirectory string     `gorm:"column:OutputDirectory;size:500" json:"outputDirectory"`
	NextRunDate     *time.Time `gorm:"-" json:"nextRunDate"`
}

func (Schedule) TableName() string {
	return "Schedules"
}

// Holiday maps to the `Holidays` table. One row per non-working date per region.
type Holiday struct {
	ID            uint      `gorm:"column:Id;primaryKey;autoIncrement" json:"-"`
	HolidayDate   time.Time `gorm:"column:HolidayDate;index:idx_holidays_region_date,priority:2" json:"holidayDate"`
	HolidayRegion string    `gorm:"column:HolidayRegion;size:100;index:idx_holidays_region_date,priority:1" json:"holidayRegion"`
}

func (Holiday) TableName() string {
	return "Holidays"
}
