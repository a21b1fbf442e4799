package status

import (
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"companysite/internal/config"
	"companysite/internal/models"
)

// MySQLDialer opens a short-lived gorm connection to each client database.
type MySQLDialer struct {
	DefaultPort string
}

func NewMySQLDialer() *MySQLDialer {
	return &MySQLDialer{DefaultPort: "3306"}
}

func (d *MySQLDialer) LatestRefresh(ctx context.Context, host string, company models.ClientCompany) (*time.Time, error) {
	dsn := config.MySQLDSN(company.ClientDatabaseUser, company.ClientDatabasePassword, d.addr(host), company.ClientDatabase, "")
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline).Round(time.Millisecond); left > 0 {
			dsn += "&timeout=" + left.String()
		}
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to client database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}
	defer sqlDB.Close()

	return latestRefresh(ctx, db)
}

func (d *MySQLDialer) addr(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, d.DefaultPort)
}

// latestRefresh reads the single ClientControl row.
func latestRefresh(ctx context.Context, db *gorm.DB) (*time.Time, error) {
	var row models.ClientControl
	err := db.WithContext(ctx).Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read ClientControl: %w", err)
	}
	return row.RefreshDate, nil
}
