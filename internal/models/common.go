package models

// APIResponse is the envelope every dashboard endpoint answers with.
type APIResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// AccessRequestForm carries the lookups the access-request form needs.
type AccessRequestForm struct {
	RequestType string        `json:"requestType"`
	Users       []CompanyUser `json:"users"`
}

// ChangeRequestForm carries the lookups the report-change form needs.
type ChangeRequestForm struct {
	RequestType string        `json:"requestType"`
	Authorizers []CompanyUser `json:"authorizers"`
	Companies   []string      `json:"companies"`
}

// AccessRequestInput is the submitted access-request form.
type AccessRequestInput struct {
	RequestType    string `json:"requestType" form:"requestType"`
	YourName       string `json:"yourName" form:"yourName"`
	EmployeeName   string `json:"employeeName" form:"employeeName"`
	EmployeeID     string `json:"employeeId" form:"employeeId"`
	RequestDetails string `json:"requestDetails" form:"requestDetails"`
}
