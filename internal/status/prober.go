// Package status checks how fresh every client database is.
package status

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"companysite/internal/models"
	"companysite/internal/recurrence"
)

// CompanySource supplies the client companies and the servers hosting them.
type CompanySource interface {
	FetchClientServers(ctx context.Context) (map[string]string, error)
	FetchClientCompanies(ctx context.Context) ([]models.ClientCompany, error)
}

// Dialer reads the last refresh date of one client database hosted on host.
// A nil date with a nil error means the database has never been refreshed.
type Dialer interface {
	LatestRefresh(ctx context.Context, host string, company models.ClientCompany) (*time.Time, error)
}

// Prober computes a DatabaseStatus per client company.
type Prober struct {
	companies   CompanySource
	dialer      Dialer
	timeout     time.Duration
	concurrency int
	logger      *zap.Logger
}

func NewProber(companies CompanySource, dialer Dialer, timeout time.Duration, concurrency int, logger *zap.Logger) *Prober {
	if concurrency <= 0 {
		concurrency = 1
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Prober{
		companies:   companies,
		dialer:      dialer,
		timeout:     timeout,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Check probes every company whose server is known. Companies on an
// unknown server are left out. A failure to read the control tables is
// returned as an error; a failure to reach a client database is reported
// in that company's status instead.
func (p *Prober) Check(ctx context.Context, today time.Time) ([]models.DatabaseStatus, error) {
	servers, err := p.companies.FetchClientServers(ctx)
	if err != nil {
		return nil, err
	}
	companies, err := p.companies.FetchClientCompanies(ctx)
	if err != nil {
		return nil, err
	}

	type target struct {
		host    string
		company models.ClientCompany
	}
	targets := make([]target, 0, len(companies))
	for _, c := range companies {
		host, ok := servers[c.ServerName]
		if !ok {
			continue
		}
		targets = append(targets, target{host: host, company: c})
	}

	results := make([]models.DatabaseStatus, len(targets))
	sem := semaphore.NewWeighted(int64(p.concurrency))
	var wg sync.WaitGroup
	for i, tg := range targets {
		wg.Add(1)
		go func(i int, tg target) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				results[i] = unreachable(tg.company, today)
				return
			}
			defer sem.Release(1)
			results[i] = p.probe(ctx, tg.host, tg.company, today)
		}(i, tg)
	}
	wg.Wait()

	return results, nil
}

func (p *Prober) probe(ctx context.Context, host string, company models.ClientCompany, today time.Time) models.DatabaseStatus {
	probeCtx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	refreshed, err := p.dialer.LatestRefresh(probeCtx, host, company)
	if err != nil {
		p.logger.Warn("Client database probe failed",
			zap.String("database", company.ClientDatabase),
			zap.String("host", host),
			zap.Error(err))
		return unreachable(company, today)
	}

	st := baseStatus(company, today)
	st.RefreshDate = refreshed
	st.Status = Evaluate(refreshed, recurrence.DateOf(today).AddDays(company.RefreshValue))
	return st
}

// unreachable reports company as a connection error.
func unreachable(company models.ClientCompany, today time.Time) models.DatabaseStatus {
	st := baseStatus(company, today)
	st.Status = models.DatabaseStatusConnectionError
	return st
}

func baseStatus(company models.ClientCompany, today time.Time) models.DatabaseStatus {
	expected := recurrence.DateOf(today).AddDays(company.RefreshValue)
	return models.DatabaseStatus{
		Company:             company.ClientName,
		Region:              company.ClientRegion,
		Database:            company.ClientDatabase,
		ExpectedRefreshDate: expected.In(today.Location()),
	}
}

// Evaluate classifies a refresh date against the expected refresh day.
func Evaluate(refreshed *time.Time, expected recurrence.Date) string {
	if refreshed != nil && !recurrence.DateOf(*refreshed).Before(expected) {
		return models.DatabaseStatusOK
	}
	return models.DatabaseStatusOutOfDate
}
