package models

import "time"

// Access request types.
const (
	AccessRequestAdd    = "A"
	AccessRequestRemove = "R"
)

// AccessRequestStatusNew marks a request nobody has actioned yet.
const AccessRequestStatusNew = "new"

// AccessRequest maps to the `UserAccessRequest` table.
// Rows are only ever inserted here; status changes happen outside this system.
type AccessRequest struct {
	ID             uint      `gorm:"column:Id;primaryKey;autoIncrement" json:"id"`
	Status         string    `gorm:"column:Status;size:30;index" json:"status"`
	RequestType    string    `gorm:"column:RequestType;size:1" json:"requestType"`
	RequestorName  string    `gorm:"column:RequestorName;size:200" json:"requestorName"`
	UserName       string    `gorm:"column:UserName;size:200" json:"userName"`
	UserID         string    `gorm:"column:UserId;size:100" json:"userId"`
	RequestDetails string    `gorm:"column:RequestDetails;type:text" json:"requestDetails"`
	CreateDate     time.Time `gorm:"column:CreateDate" json:"createDate"`
}

func (AccessRequest) TableName() string {
	return "UserAccessRequest"
}

// Outstanding reports whether the request still awaits action.
func (r AccessRequest) Outstanding() bool {
	return r.Status == AccessRequestStatusNew
}

// CategoryLabel is the human label used in listings and exports.
func (r AccessRequest) CategoryLabel() string {
	if r.RequestType == AccessRequestAdd {
		return "Add access request"
	}
	return "Remove access request"
}
