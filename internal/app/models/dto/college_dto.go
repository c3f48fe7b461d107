package dto

import (
	"encoding/json"
)

// DepartmentRequest is one department inside a college request
type DepartmentRequest struct {
	Name       string `json:"name" binding:"required"`
	LeaderName string `json:"leader_name"`
	Email      string `json:"email" binding:"omitempty,email"`
	Phone      string `json:"phone"`
}

// CollegeRequest creates or updates a college.
// A non-nil LeaderImage sends the request as multipart/form-data, in which
// case departments travel as a JSON-encoded form value.
type CollegeRequest struct {
	Name        string              `json:"name" form:"name" binding:"required"`
	LeaderName  string              `json:"leader_name" form:"leader_name"`
	Departments []DepartmentRequest `json:"departments,omitempty" form:"-" binding:"dive"`
	LeaderImage *FileUpload         `json:"-" form:"-"`
}

// FormFields flattens the request into multipart values
func (r CollegeRequest) FormFields() (map[string][]string, error) {
	fields := map[string][]string{
		"name":        {r.Name},
		"leader_name": {r.LeaderName},
	}
	if len(r.Departments) > 0 {
		encoded, err := json.Marshal(r.Departments)
		if err != nil {
			return nil, err
		}
		fields["departments"] = []string{string(encoded)}
	}
	return fields, nil
}
