package models

import "encoding/json"

// College is an academic college with its dean and departments
type College struct {
	ID          ID           `json:"id"`
	Name        string       `json:"name"`
	LeaderName  string       `json:"leader_name"`
	LeaderImage string       `json:"leader_image,omitempty"`
	Departments []Department `json:"departments"`
}

// UnmarshalJSON also accepts the legacy nested {leader: {name, image}} shape
func (c *College) UnmarshalJSON(data []byte) error {
	type plain College
	var raw struct {
		plain
		Leader *struct {
			Name  string `json:"name"`
			Image string `json:"image"`
		} `json:"leader"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*c = College(raw.plain)
	if raw.Leader != nil {
		if c.LeaderName == "" {
			c.LeaderName = raw.Leader.Name
		}
		if c.LeaderImage == "" {
			c.LeaderImage = raw.Leader.Image
		}
	}
	return nil
}

// Department belongs to a college
type Department struct {
	ID         ID     `json:"id,omitempty"`
	Name       string `json:"name"`
	LeaderName string `json:"leader_name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
}

// UnmarshalJSON accepts both leader_name and leaderName
func (d *Department) UnmarshalJSON(data []byte) error {
	type plain Department
	var raw struct {
		plain
		LeaderNameC string `json:"leaderName"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*d = Department(raw.plain)
	if d.LeaderName == "" {
		d.LeaderName = raw.LeaderNameC
	}
	return nil
}

// CollegeStats summarises the college directory
type CollegeStats struct {
	TotalColleges           int            `json:"total_colleges"`
	TotalDepartments        int            `json:"total_departments"`
	CollegeDepartmentCounts map[string]int `json:"college_department_counts"`
}
