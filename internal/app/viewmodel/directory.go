package viewmodel

import (
	"github.com/mustso/portal/internal/app/models"
	"github.com/mustso/portal/internal/app/normalize"
)

// LeaderView is a rendered leader profile
type LeaderView struct {
	ID                models.ID
	Name              string
	Initials          string
	Position          string
	Department        string
	CollegeName       string
	IsCabinet         bool
	Email             string
	Phone             string
	Location          string
	JoinDate          string
	TeamSize          int
	Description       string
	Excerpt           string
	IsLongDescription bool
	Image             string
	Achievements      []string
}

// Leader projects a leader. Achievements are only carried in the Detail context.
func Leader(l models.Leader, opts Options) LeaderView {
	view := LeaderView{
		ID:                l.ID,
		Name:              l.Name,
		Initials:          normalize.Initials(l.Name),
		Position:          l.Position,
		Department:        l.Department,
		IsCabinet:         l.IsCabinet,
		Email:             l.Email,
		Phone:             l.Phone,
		Location:          l.Location,
		JoinDate:          l.JoinDate,
		TeamSize:          l.TeamSize,
		Description:       l.Description,
		Excerpt:           Excerpt(l.Description),
		IsLongDescription: IsLong(l.Description),
		Image:             l.Image,
	}
	if l.College != nil {
		view.CollegeName = l.College.Name
	}
	if opts.Context == Detail {
		view.Achievements = append([]string{}, l.Achievements...)
	}
	return view
}

// Leaders projects a list of leaders
func Leaders(items []models.Leader, opts Options) []LeaderView {
	views := make([]LeaderView, 0, len(items))
	for _, l := range items {
		views = append(views, Leader(l, opts))
	}
	return views
}

// DepartmentView is a rendered department row
type DepartmentView struct {
	ID           models.ID
	Name         string
	HeadName     string
	HeadInitials string
	Email        string
	Phone        string
}

// CollegeView is a rendered college with its dean
type CollegeView struct {
	ID              models.ID
	Name            string
	DeanName        string
	DeanInitials    string
	DeanImage       string
	DepartmentCount int
	// Departments is only populated in the Detail context
	Departments []DepartmentView
}

// College projects a college
func College(c models.College, opts Options) CollegeView {
	view := CollegeView{
		ID:              c.ID,
		Name:            c.Name,
		DeanName:        c.LeaderName,
		DeanInitials:    normalize.Initials(c.LeaderName),
		DeanImage:       c.LeaderImage,
		DepartmentCount: len(c.Departments),
	}
	if opts.Context == Detail {
		view.Departments = make([]DepartmentView, 0, len(c.Departments))
		for _, d := range c.Departments {
			view.Departments = append(view.Departments, Department(d))
		}
	}
	return view
}

// Colleges projects a list of colleges
func Colleges(items []models.College, opts Options) []CollegeView {
	views := make([]CollegeView, 0, len(items))
	for _, c := range items {
		views = append(views, College(c, opts))
	}
	return views
}

// Department projects a department
func Department(d models.Department) DepartmentView {
	return DepartmentView{
		ID:           d.ID,
		Name:         d.Name,
		HeadName:     d.LeaderName,
		HeadInitials: normalize.Initials(d.LeaderName),
		Email:        d.Email,
		Phone:        d.Phone,
	}
}

// ProfileView is the rendered profile of the session user
type ProfileView struct {
	ID          models.ID
	DisplayName string
	Initials    string
	Email       string
	Role        models.RoleType
	IsAdmin     bool
	Phone       string
	Location    string
	Department  string
	Position    string
	JoinDate    string
	Bio         string
	Avatar      string
}

// Profile projects a user
func Profile(u models.User) ProfileView {
	name := normalize.UserName(&u)
	return ProfileView{
		ID:          u.ID,
		DisplayName: name,
		Initials:    normalize.Initials(name),
		Email:       u.Email,
		Role:        u.Role,
		IsAdmin:     u.IsAdmin(),
		Phone:       u.Phone,
		Location:    u.Location,
		Department:  u.Department,
		Position:    u.Position,
		JoinDate:    u.JoinDate,
		Bio:         u.Bio,
		Avatar:      u.Avatar,
	}
}
