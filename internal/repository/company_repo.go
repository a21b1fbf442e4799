package repository

import (
	"context"

	"gorm.io/gorm"

	"companysite/internal/models"
)

// CompanyRepository reads client companies, their servers and internal users.
type CompanyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// FetchClientRegions maps each client database to its holiday region.
func (r *CompanyRepository) FetchClientRegions(ctx context.Context) (map[string]string, error) {
	var rows []models.ClientCompany
	if err := r.db.WithContext(ctx).Select("ClientDatabase", "ClientRegion").Find(&rows).Error; err != nil {
		return nil, unavailable("fetch client regions", err)
	}
	regions := make(map[string]string, len(rows))
	for _, row := range rows {
		regions[row.ClientDatabase] = row.ClientRegion
	}
	return regions, nil
}

// FetchClientCompanies returns every client company including its database credentials.
func (r *CompanyRepository) FetchClientCompanies(ctx context.Context) ([]models.ClientCompany, error) {
	var companies []models.ClientCompany
	if err := r.db.WithContext(ctx).Order("ServerName ASC, ClientName ASC, ClientDatabase ASC").Find(&companies).Error; err != nil {
		return nil, unavailable("fetch client companies", err)
	}
	return companies, nil
}

// FetchClientServers maps logical server names to DNS hosts.
func (r *CompanyRepository) FetchClientServers(ctx context.Context) (map[string]string, error) {
	var rows []models.ClientServer
	if err := r.db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, unavailable("fetch client servers", err)
	}
	servers := make(map[string]string, len(rows))
	for _, row := range rows {
		servers[row.ServerName] = row.ClientServer
	}
	return servers, nil
}

// FetchCompanies returns the distinct client company names.
func (r *CompanyRepository) FetchCompanies(ctx context.Context) ([]string, error) {
	var names []string
	err := r.db.WithContext(ctx).Model(&models.ClientCompany{}).
		Distinct("ClientName").
		Order("ClientName ASC").
		Pluck("ClientName", &names).Error
	if err != nil {
		return nil, unavailable("fetch companies", err)
	}
	return names, nil
}

// FetchUsers returns internal users.
func (r *CompanyRepository) FetchUsers(ctx context.Context) ([]models.CompanyUser, error) {
	var users []models.CompanyUser
	if err := r.db.WithContext(ctx).Order("UserName ASC").Find(&users).Error; err != nil {
		return nil, unavailable("fetch users", err)
	}
	return users, nil
}

// FetchAuthorizers returns the users allowed to authorise report changes.
func (r *CompanyRepository) FetchAuthorizers(ctx context.Context) ([]models.CompanyUser, error) {
	users, err := r.FetchUsers(ctx)
	if err != nil {
		return nil, err
	}
	authorizers := make([]models.CompanyUser, 0, len(users))
	for _, u := range users {
		if u.Authorizer() {
			authorizers = append(authorizers, u)
		}
	}
	return authorizers, nil
}
