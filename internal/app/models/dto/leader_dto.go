package dto

import "strconv"

// LeaderRequest creates or updates a leader profile.
// A non-nil Image sends the request as multipart/form-data.
type LeaderRequest struct {
	Name         string      `json:"name" form:"name" binding:"required"`
	Position     string      `json:"position" form:"position" binding:"required"`
	Department   string      `json:"department" form:"department" binding:"required"`
	Description  string      `json:"description" form:"description"`
	Email        string      `json:"email" form:"email" binding:"omitempty,email"`
	Phone        string      `json:"phone" form:"phone"`
	Location     string      `json:"location" form:"location"`
	JoinDate     string      `json:"join_date" form:"join_date"`
	TeamSize     int         `json:"team_size" form:"team_size" binding:"gte=0"`
	Achievements []string    `json:"achievements" form:"achievements"`
	IsCabinet    bool        `json:"is_cabinet" form:"is_cabinet"`
	College      string      `json:"college,omitempty" form:"college"`
	Image        *FileUpload `json:"-" form:"-"`
}

// FormFields flattens the request into multipart values.
// Achievements are sent as a repeated field.
func (r LeaderRequest) FormFields() map[string][]string {
	fields := map[string][]string{
		"name":        {r.Name},
		"position":    {r.Position},
		"department":  {r.Department},
		"description": {r.Description},
		"email":       {r.Email},
		"phone":       {r.Phone},
		"location":    {r.Location},
		"join_date":   {r.JoinDate},
		"team_size":   {strconv.Itoa(r.TeamSize)},
		"is_cabinet":  {strconv.FormatBool(r.IsCabinet)},
	}
	if r.College != "" {
		fields["college"] = []string{r.College}
	}
	if len(r.Achievements) > 0 {
		fields["achievements"] = r.Achievements
	}
	return fields
}
