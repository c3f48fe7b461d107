package seed

import (
	"context"
	"errors"
	"time"

	"github.com/mustso/portal/internal/app/models"
	appRepos "github.com/mustso/portal/internal/app/repositories"
	"github.com/mustso/portal/internal/pkg/auth"
	"github.com/rs/zerolog"
)

// Demo account passwords
const (
	UserPassword  = "password123"
	AdminPassword = "admin123"
)

type seedUser struct {
	user     models.User
	password string
}

var defaultUsers = []seedUser{
	{
		user: models.User{
			FirstName: "John", LastName: "Doe", Email: "john.doe@company.com",
			Phone: "+1 (555) 123-4567", Location: "New York, NY", Department: "Engineering",
			Position: "Senior Software Engineer", JoinDate: "2022-03-01", Role: models.RoleUser,
			Bio: "Passionate software engineer with expertise in full-stack development and cloud technologies.",
		},
		password: UserPassword,
	},
	{
		user: models.User{
			FirstName: "Sarah", LastName: "Johnson", Email: "sarah.johnson@company.com",
			Phone: "+1 (555) 234-5678", Location: "San Francisco, CA", Department: "Executive",
			Position: "Chief Executive Officer", JoinDate: "2020-01-01", Role: models.RoleAdmin,
			Bio: "Experienced leader passionate about innovation and team development.",
		},
		password: AdminPassword,
	},
	{
		user: models.User{
			FirstName: "David", LastName: "Wilson", Email: "david.wilson@company.com",
			Phone: "+1 (555) 345-6789", Location: "San Francisco, CA", Department: "Technology",
			Position: "Chief Technology Officer", JoinDate: "2021-03-01", Role: models.RoleAdmin,
			Bio: "Technology leader with expertise in cloud architecture and scalable systems.",
		},
		password: AdminPassword,
	},
	{
		user: models.User{
			FirstName: "Emma", LastName: "Davis", Email: "emma.davis@company.com",
			Phone: "+1 (555) 456-7890", Location: "Los Angeles, CA", Department: "Marketing",
			Position: "VP of Marketing", JoinDate: "2020-06-01", Role: models.RoleUser,
			Bio: "Creative marketing strategist focused on brand awareness and customer engagement.",
		},
		password: UserPassword,
	},
	{
		user: models.User{
			FirstName: "Mike", LastName: "Chen", Email: "mike.chen@company.com",
			Phone: "+1 (555) 567-8901", Location: "Chicago, IL", Department: "Sales",
			Position: "VP of Sales", JoinDate: "2020-11-01", Role: models.RoleUser,
			Bio: "Results-driven sales leader with a focus on client relationships and market expansion.",
		},
		password: UserPassword,
	},
}

var defaultCategories = []models.Category{
	{Name: "Academic", Color: "#3B82F6", IsActive: true},
	{Name: "Administrative", Color: "#6B7280", IsActive: true},
	{Name: "Company News", Color: "#10B981", IsActive: true},
	{Name: "Events", Color: "#F59E0B", IsActive: true},
	{Name: "General", Color: "#64748B", IsActive: true},
	{Name: "HR Updates", Color: "#EC4899", IsActive: true},
	{Name: "IT Security", Color: "#EF4444", IsActive: true},
	{Name: "Infrastructure", Color: "#8B5CF6", IsActive: true},
	{Name: "Research", Color: "#14B8A6", IsActive: true},
	{Name: "Student Life", Color: "#F97316", IsActive: true},
}

type dept = models.Department

var defaultColleges = []appRepos.CollegeInput{
	{
		Name: "College of Engineering & Technology", LeaderName: "Dr. Sarah Johnson",
		Departments: []models.Department{
			dept{Name: "Computer Science", LeaderName: "Prof. David Wilson", Email: "david.wilson@mustso.edu", Phone: "+1 (555) 234-5678"},
			dept{Name: "Mechanical Engineering", LeaderName: "Dr. Mike Chen", Email: "mike.chen@mustso.edu", Phone: "+1 (555) 567-8901"},
			dept{Name: "Electrical Engineering", LeaderName: "Prof. Lisa Park", Email: "lisa.park@mustso.edu", Phone: "+1 (555) 678-9012"},
			dept{Name: "Civil Engineering", LeaderName: "Dr. James Thompson", Email: "james.thompson@mustso.edu", Phone: "+1 (555) 789-0123"},
			dept{Name: "Chemical Engineering", LeaderName: "Prof. Maria Garcia", Email: "maria.garcia@mustso.edu", Phone: "+1 (555) 890-1234"},
		},
	},
	{
		Name: "College of Business & Management", LeaderName: "Dr. Alex Rodriguez",
		Departments: []models.Department{
			dept{Name: "Business Administration", LeaderName: "Prof. Robert Kim", Email: "robert.kim@mustso.edu", Phone: "+1 (555) 901-2345"},
			dept{Name: "Marketing", LeaderName: "Dr. Jennifer Lee", Email: "jennifer.lee@mustso.edu", Phone: "+1 (555) 012-3456"},
			dept{Name: "Finance", LeaderName: "Prof. Anthony Brown", Email: "anthony.brown@mustso.edu", Phone: "+1 (555) 123-4567"},
			dept{Name: "Human Resources", LeaderName: "Dr. Rachel Adams", Email: "rachel.adams@mustso.edu", Phone: "+1 (555) 234-5678"},
			dept{Name: "Operations Management", LeaderName: "Prof. Kevin Martinez", Email: "kevin.martinez@mustso.edu", Phone: "+1 (555) 345-6789"},
		},
	},
	{
		Name: "College of Health Sciences", LeaderName: "Dr. Emma Davis",
		Departments: []models.Department{
			dept{Name: "Medicine", LeaderName: "Dr. Michael Brown", Email: "michael.brown@mustso.edu", Phone: "+1 (555) 456-7890"},
			dept{Name: "Nursing", LeaderName: "Prof. Sarah Williams", Email: "sarah.williams@mustso.edu", Phone: "+1 (555) 567-8901"},
			dept{Name: "Pharmacy", LeaderName: "Dr. John Davis", Email: "john.davis@mustso.edu", Phone: "+1 (555) 678-9012"},
			dept{Name: "Public Health", LeaderName: "Prof. Lisa Johnson", Email: "lisa.johnson@mustso.edu", Phone: "+1 (555) 789-0123"},
			dept{Name: "Medical Technology", LeaderName: "Dr. David Wilson", Email: "david.wilson@mustso.edu", Phone: "+1 (555) 890-1234"},
		},
	},
	{
		Name: "College of Arts & Sciences", LeaderName: "Dr. Mike Chen",
		Departments: []models.Department{
			dept{Name: "Literature", LeaderName: "Prof. Emily Rodriguez", Email: "emily.rodriguez@mustso.edu", Phone: "+1 (555) 901-2345"},
			dept{Name: "Mathematics", LeaderName: "Dr. Robert Taylor", Email: "robert.taylor@mustso.edu", Phone: "+1 (555) 012-3456"},
			dept{Name: "Physics", LeaderName: "Prof. Maria Lopez", Email: "maria.lopez@mustso.edu", Phone: "+1 (555) 123-4567"},
			dept{Name: "Chemistry", LeaderName: "Dr. James Anderson", Email: "james.anderson@mustso.edu", Phone: "+1 (555) 234-5678"},
			dept{Name: "Biology", LeaderName: "Prof. Jennifer White", Email: "jennifer.white@mustso.edu", Phone: "+1 (555) 345-6789"},
		},
	},
	{
		Name: "College of Social Sciences", LeaderName: "Dr. Lisa Park",
		Departments: []models.Department{
			dept{Name: "Psychology", LeaderName: "Prof. Daniel Harris", Email: "daniel.harris@mustso.edu", Phone: "+1 (555) 456-7890"},
			dept{Name: "Sociology", LeaderName: "Dr. Amanda Clark", Email: "amanda.clark@mustso.edu", Phone: "+1 (555) 567-8901"},
			dept{Name: "Political Science", LeaderName: "Prof. Mark Thompson", Email: "mark.thompson@mustso.edu", Phone: "+1 (555) 678-9012"},
			dept{Name: "Economics", LeaderName: "Dr. Sandra Lee", Email: "sandra.lee@mustso.edu", Phone: "+1 (555) 789-0123"},
			dept{Name: "International Relations", LeaderName: "Prof. Carlos Martinez", Email: "carlos.martinez@mustso.edu", Phone: "+1 (555) 890-1234"},
		},
	},
	{
		Name: "College of Education", LeaderName: "Dr. James Thompson",
		Departments: []models.Department{
			dept{Name: "Elementary Education", LeaderName: "Prof. Nancy Wilson", Email: "nancy.wilson@mustso.edu", Phone: "+1 (555) 901-2345"},
			dept{Name: "Secondary Education", LeaderName: "Dr. Paul Johnson", Email: "paul.johnson@mustso.edu", Phone: "+1 (555) 012-3456"},
			dept{Name: "Special Education", LeaderName: "Prof. Linda Brown", Email: "linda.brown@mustso.edu", Phone: "+1 (555) 123-4567"},
			dept{Name: "Educational Psychology", LeaderName: "Dr. Kevin Davis", Email: "kevin.davis@mustso.edu", Phone: "+1 (555) 234-5678"},
			dept{Name: "Curriculum Development", LeaderName: "Prof. Helen Garcia", Email: "helen.garcia@mustso.edu", Phone: "+1 (555) 345-6789"},
		},
	},
}

// CreateDefaultData fills empty repositories with the demo fixtures.
// Relative timestamps are resolved against now.
func CreateDefaultData(ctx context.Context, repos *appRepos.Repositories, now time.Time, lgr zerolog.Logger) error {
	lgr.Info().Msg("Seeding mock gateway fixtures...")
	var finalErr error

	users := make(map[string]models.User, len(defaultUsers))
	for _, su := range defaultUsers {
		hash, err := auth.HashPasswordCost(su.password, auth.FixtureCost)
		if err != nil {
			finalErr = errors.Join(finalErr, err)
			continue
		}
		u := su.user
		u.Username = u.Email
		created, err := repos.UserRepository.CreateUser(ctx, u, hash)
		if err != nil && !errors.Is(err, appRepos.ErrEmailAlreadyExists) {
			lgr.Error().Err(err).Str("email", u.Email).Msg("Error creating demo user")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		if err == nil {
			users[created.Email] = created
		}
	}

	ago := func(d time.Duration) string { return now.Add(-d).UTC().Format(time.RFC3339) }

	if john, ok := users["john.doe@company.com"]; ok {
		err := repos.UserRepository.SeedFeed(ctx, john.ID,
			[]models.Activity{
				{Type: models.ActivityComment, Title: `Commented on "Q4 Company All-Hands Meeting"`, Timestamp: ago(2 * time.Hour)},
				{Type: models.ActivityLike, Title: `Liked "New Employee Wellness Program Launch"`, Timestamp: ago(24 * time.Hour)},
				{Type: models.ActivityView, Title: "Viewed Sarah Johnson's profile", Timestamp: ago(48 * time.Hour)},
				{Type: models.ActivityPost, Title: `Posted a comment on "IT Security Training"`, Timestamp: ago(72 * time.Hour)},
			},
			[]models.Notification{
				{Title: `New announcement: "IT Security Training"`, Timestamp: ago(time.Hour)},
				{Title: "Emma Davis replied to your comment", Timestamp: ago(3 * time.Hour)},
				{Title: "Weekly digest is now available", Timestamp: ago(24 * time.Hour), Read: true},
				{Title: "Your profile was viewed by David Wilson", Timestamp: ago(48 * time.Hour), Read: true},
				{Title: "New leader announcement posted", Timestamp: ago(72 * time.Hour), Read: true},
			})
		finalErr = errors.Join(finalErr, err)
	}

	for _, c := range defaultCategories {
		repos.AnnouncementRepository.CreateCategory(ctx, c)
	}

	var colleges []models.College
	for _, in := range defaultColleges {
		colleges = append(colleges, repos.CollegeRepository.CreateCollege(ctx, in))
	}

	seedLeaders(ctx, repos.LeaderRepository, colleges)
	seedAnnouncements(ctx, repos.AnnouncementRepository, users, now)

	if finalErr != nil {
		lgr.Warn().Err(finalErr).Msg("Seeding finished with errors")
		return finalErr
	}
	lgr.Info().Msg("Mock gateway fixtures seeded")
	return nil
}

func seedLeaders(ctx context.Context, repo *appRepos.LeaderRepository, colleges []models.College) {
	collegeID := func(i int) string {
		if i < len(colleges) {
			return colleges[i].ID.String()
		}
		return ""
	}

	leaders := []appRepos.LeaderInput{
		{
			Name: "Alex Rodriguez", Position: "President", Department: "Executive",
			Description: "Leads the student government and represents students on the university council.",
			Email: "president@mustso.edu", Phone: "+1 (555) 100-0001", Location: "Student Center, Room 201",
			JoinDate: "2023-09-01", TeamSize: 12, IsCabinet: true, College: collegeID(1),
			Achievements: []string{"Launched the campus mentorship initiative", "Secured funding for the new student lounge"},
		},
		{
			Name: "Lisa Park", Position: "Vice President", Department: "Executive",
			Description: "Coordinates cabinet ministries and student welfare programs.",
			Email: "vp@mustso.edu", Phone: "+1 (555) 100-0002", Location: "Student Center, Room 202",
			JoinDate: "2023-09-01", TeamSize: 8, IsCabinet: true, College: collegeID(4),
			Achievements: []string{"Organised the annual leadership summit"},
		},
		{
			Name: "Mike Chen", Position: "Treasurer", Department: "Finance",
			Description: "Manages the student union budget and grant disbursements.",
			Email: "treasurer@mustso.edu", Phone: "+1 (555) 100-0003", Location: "Student Center, Room 205",
			JoinDate: "2023-10-15", TeamSize: 4, IsCabinet: true, College: collegeID(0),
		},
		{
			Name: "Emma Davis", Position: "Minister", Department: "Human Resources",
			Description: "Runs volunteer recruitment and club onboarding.",
			Email: "hr.minister@mustso.edu", Phone: "+1 (555) 100-0004", Location: "Student Center, Room 210",
			JoinDate: "2024-01-10", TeamSize: 6, IsCabinet: false, College: collegeID(2),
			Achievements: []string{"Grew the volunteer programme to 200 members"},
		},
		{
			Name: "David Wilson", Position: "Director", Department: "Technology",
			Description: "Maintains the student portal and digital services.",
			Email: "tech@mustso.edu", Phone: "+1 (555) 100-0005", Location: "Innovation Hub",
			JoinDate: "2024-02-01", TeamSize: 5, IsCabinet: false,
		},
	}
	for _, in := range leaders {
		repo.CreateLeader(ctx, in)
	}
}

func seedAnnouncements(ctx context.Context, repo *appRepos.AnnouncementRepository, users map[string]models.User, now time.Time) {
	ago := func(d time.Duration) string { return now.Add(-d).UTC().Format(time.RFC3339) }
	author := func(email, fallback string) models.Person {
		if u, ok := users[email]; ok {
			return models.NewIdentity(u.Identity())
		}
		return models.NewPersonName(fallback)
	}
	name := models.NewPersonName

	type fixture struct {
		a        models.Announcement
		hashtags []string
		comments []models.Comment
	}

	fixtures := []fixture{
		{
			a: models.Announcement{
				Title:       "Q4 Company All-Hands Meeting",
				Description: "Join us for our quarterly all-hands meeting where we'll discuss achievements, upcoming initiatives, and answer your questions. This meeting will cover our performance metrics, new product launches, strategic partnerships, and team expansions planned for the next quarter.",
				Category:    models.NewCategoryName("Company News"),
				Author:      author("sarah.johnson@company.com", "Sarah Johnson"),
				Timestamp:   ago(2 * time.Hour),
				Likes:       24,
				IsPinned:    true,
			},
			hashtags: []string{"allhands", "q4"},
			comments: []models.Comment{
				{Author: name("Mike Chen"), Content: "Looking forward to the updates on the new product launch!", Timestamp: ago(time.Hour)},
				{Author: name("Emma Davis"), Content: "Will this be recorded for those who can't attend live?", Timestamp: ago(45 * time.Minute)},
			},
		},
		{
			a: models.Announcement{
				Title:       "New Employee Wellness Program Launch",
				Description: "We're excited to announce the launch of our comprehensive employee wellness program, featuring mental health resources, fitness memberships, and work-life balance initiatives.",
				Category:    models.NewCategoryName("HR Updates"),
				Author:      author("david.wilson@company.com", "David Wilson"),
				Timestamp:   ago(24 * time.Hour),
				Likes:       18,
			},
			hashtags: []string{"wellness"},
			comments: []models.Comment{
				{Author: name("Lisa Park"), Content: "This is fantastic! When does the fitness membership start?", Timestamp: ago(18 * time.Hour)},
			},
		},
		{
			a: models.Announcement{
				Title:       "IT Security Training - Mandatory Completion",
				Description: "All employees must complete the updated cybersecurity training by the end of this month. This training covers the latest security protocols, phishing awareness, and data protection measures.",
				Category:    models.NewCategoryName("IT Security"),
				Author:      name("Alex Rodriguez"),
				Timestamp:   ago(48 * time.Hour),
				Likes:       12,
			},
			hashtags: []string{"security", "training"},
		},
		{
			a: models.Announcement{
				Title:       "Welcome to the New Academic Year",
				Description: "We are excited to welcome all students, faculty, and staff to the new academic year. This year brings new opportunities, challenges, and exciting developments across all our programs.",
				Category:    models.NewCategoryName("Academic"),
				Author:      name("Dr. Sarah Johnson"),
				Timestamp:   ago(5 * 24 * time.Hour),
				Likes:       15,
			},
			hashtags: []string{"welcome", "academic"},
		},
		{
			a: models.Announcement{
				Title:       "Campus Infrastructure Updates",
				Description: "We are pleased to announce significant infrastructure improvements across our campus facilities, including new laboratories, upgraded technology centers, and enhanced student recreational areas.",
				Category:    models.NewCategoryName("Infrastructure"),
				Author:      name("Facilities Management"),
				Timestamp:   ago(10 * 24 * time.Hour),
				Likes:       8,
			},
			hashtags: []string{"campus"},
		},
		{
			a: models.Announcement{
				Title:       "Research Grant Opportunities",
				Description: "New research grant opportunities are now available for faculty members across all departments. Applications are due by the end of this month.",
				Category:    models.NewCategoryName("Research"),
				Author:      name("Research Office"),
				Timestamp:   ago(12 * 24 * time.Hour),
				Likes:       12,
			},
			hashtags: []string{"research", "grants"},
		},
		{
			a: models.Announcement{
				Title:       "Student Leadership Development Program",
				Description: "Applications are now open for our comprehensive student leadership development program. This program is designed to enhance leadership skills and provide opportunities for personal growth.",
				Category:    models.NewCategoryName("Student Life"),
				Author:      name("Student Affairs Office"),
				Timestamp:   ago(15 * 24 * time.Hour),
				Likes:       22,
			},
			hashtags: []string{"leadership", "students"},
		},
		{
			a: models.Announcement{
				Title:       "Annual Tech Conference 2024",
				Description: "Join us for our annual technology conference featuring industry experts, innovative research presentations, and networking opportunities for students and faculty.",
				Category:    models.NewCategoryName("Events"),
				Author:      name("Tech Committee"),
				Timestamp:   ago(17 * 24 * time.Hour),
				Likes:       35,
			},
			hashtags: []string{"tech", "conference", "events"},
		},
	}

	for _, f := range fixtures {
		f.a.IsPublished = true
		f.a.UpdatedAt = f.a.Timestamp
		repo.SeedAnnouncement(ctx, f.a, f.hashtags, f.comments)
	}
}
