package models

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Leader is a student organisation leader profile
type Leader struct {
	ID           ID           `json:"id"`
	Name         string       `json:"name"`
	Position     string       `json:"position"`
	Department   string       `json:"department"`
	Description  string       `json:"description"`
	Email        string       `json:"email"`
	Phone        string       `json:"phone"`
	Location     string       `json:"location"`
	JoinDate     string       `json:"join_date"`
	TeamSize     int          `json:"team_size"`
	Image        string       `json:"image,omitempty"`
	IsCabinet    bool         `json:"is_cabinet"`
	College      *College     `json:"college,omitempty"`
	Achievements Achievements `json:"achievements"`
}

// Achievement is the structured form of a leader achievement
type Achievement struct {
	ID          ID     `json:"id,omitempty"`
	Achievement string `json:"achievement"`
	Order       int    `json:"order"`
}

// Achievements is an ordered list of achievement texts. The gateway sends
// either plain strings or Achievement objects; objects are sorted by order.
type Achievements []string

// UnmarshalJSON implements json.Unmarshaler
func (a *Achievements) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = nil
		return nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return err
	}

	structured := make([]Achievement, 0, len(items))
	for i, item := range items {
		item = bytes.TrimSpace(item)
		if len(item) > 0 && item[0] == '"' {
			var text string
			if err := json.Unmarshal(item, &text); err != nil {
				return err
			}
			structured = append(structured, Achievement{Achievement: text, Order: i})
			continue
		}

		var entry Achievement
		if err := json.Unmarshal(item, &entry); err != nil {
			return err
		}
		structured = append(structured, entry)
	}

	sort.SliceStable(structured, func(i, j int) bool {
		return structured[i].Order < structured[j].Order
	})

	out := make(Achievements, 0, len(structured))
	for _, entry := range structured {
		out = append(out, entry.Achievement)
	}
	*a = out
	return nil
}

// LeaderFilter narrows the leader list. The value "all" means no filter.
type LeaderFilter struct {
	Department string
	Position   string
	College    string
	IsCabinet  *bool
	Search     string
}

// LeaderStats summarises the leader directory
type LeaderStats struct {
	TotalLeaders     int            `json:"total_leaders"`
	TotalTeamSize    int            `json:"total_team_size"`
	DepartmentCounts map[string]int `json:"department_counts"`
	Departments      []string       `json:"departments"`
}
