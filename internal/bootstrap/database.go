package bootstrap

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"companysite/internal/models"
	"companysite/internal/repository"
)

// MigrateAndSeed ensures required tables exist and inserts baseline rows for singleton tables.
func MigrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(allModels()...); err != nil {
		return fmt.Errorf("auto migrate failed: %w", err)
	}
	if err := seedDefaults(db); err != nil {
		return fmt.Errorf("seed defaults failed: %w", err)
	}
	return nil
}

func allModels() []interface{} {
	return []interface{}{
		// Scheduling
		&models.Schedule{},
		&models.Holiday{},
		// Client directory
		&models.ClientServer{},
		&models.ClientCompany{},
		&models.CompanyUser{},
		// Report catalogue and requests
		&models.Report{},
		&models.AccessRequest{},
	}
}

// seedDefaults gives a fresh local database one client server row so the
// status page has something to resolve against.
func seedDefaults(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.ClientServer{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		return tx.Create(&models.ClientServer{ServerName: "localhost", ClientServer: "127.0.0.1"}).Error
	})
}

// holidayFile is the YAML layout accepted by ImportHolidays:
//
//	holidays:
//	  - region: UK
//	    dates: [2024-12-25, 2024-12-26]
type holidayFile struct {
	Holidays []struct {
		Region string   `yaml:"region"`
		Dates  []string `yaml:"dates"`
	} `yaml:"holidays"`
}

// ParseHolidays reads a holiday YAML document into rows. Dates are calendar
// dates and are stored at UTC midnight.
func ParseHolidays(r io.Reader) ([]models.Holiday, error) {
	var doc holidayFile
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("decode holidays: %w", err)
	}

	var out []models.Holiday
	for _, group := range doc.Holidays {
		region := strings.TrimSpace(group.Region)
		if region == "" {
			return nil, fmt.Errorf("holiday group without region")
		}
		for _, raw := range group.Dates {
			d, err := time.Parse("2006-01-02", strings.TrimSpace(raw))
			if err != nil {
				return nil, fmt.Errorf("region %s: invalid date %q: %w", region, raw, err)
			}
			out = append(out, models.Holiday{HolidayDate: d, HolidayRegion: region})
		}
	}
	return out, nil
}

// ImportHolidays loads a holiday YAML document and inserts the rows that are
// not present yet. It returns the number of inserted rows.
func ImportHolidays(ctx context.Context, repo *repository.ScheduleRepository, r io.Reader) (int, error) {
	holidays, err := ParseHolidays(r)
	if err != nil {
		return 0, err
	}
	if len(holidays) == 0 {
		return 0, nil
	}
	return repo.UpsertHolidays(ctx, holidays)
}
