package models

import "time"

// ClientServer maps to the `ClientServer` table: logical server name to its DNS host.
type ClientServer struct {
	ServerName   string `gorm:"column:ServerName;primaryKey;size:200" json:"serverName"`
	ClientServer string `gorm:"column:ClientServer;size:300" json:"clientServerDns"`
}

func (ClientServer) TableName() string {
	return "ClientServer"
}

// ClientCompany maps to the `ClientCompany` table.
// ClientRegion selects the holiday calendar for the company's schedules.
type ClientCompany struct {
	ClientDatabase         string `gorm:"column:ClientDatabase;primaryKey;size:200" json:"clientDatabase"`
	ServerName             string `gorm:"column:ServerName;size:200;index" json:"serverName"`
	ClientName             string `gorm:"column:ClientName;size:300" json:"clientName"`
	ClientRegion           string `gorm:"column:ClientRegion;size:100" json:"clientRegion"`
	ClientDatabaseUser     string `gorm:"column:ClientDatabaseUser;size:200" json:"-"`
	ClientDatabasePassword string `gorm:"column:ClientDatabasePassword;size:200" json:"-"`
	RefreshValue           int    `gorm:"column:RefreshValue;default:0" json:"refreshValue"`
}

func (ClientCompany) TableName() string {
	return "ClientCompany"
}

// CompanyUser maps to the `MyCompanyUsers` table.
type CompanyUser struct {
	UserName     string `gorm:"column:UserName;primaryKey;size:200" json:"userName"`
	IsAuthorizer string `gorm:"column:IsAuthorizer;size:1;default:'N'" json:"isAuthorizer"`
}

func (CompanyUser) TableName() string {
	return "MyCompanyUsers"
}

// Authorizer reports whether the user may authorise report changes.
func (u CompanyUser) Authorizer() bool {
	return u.IsAuthorizer == "Y"
}

// ClientControl is the single-row table inside every client database that
// records when the client's data was last refreshed.
type ClientControl struct {
	RefreshDate *time.Time `gorm:"column:RefreshDate"`
}

func (ClientControl) TableName() string {
	return "ClientControl"
}
