package repositories

import (
	"context"
	"sort"
	"sync"

	"github.com/mustso/portal/internal/app/models"
)

// CollegeInput carries the writable college fields.
// A nil Departments leaves the stored departments unchanged on update.
type CollegeInput struct {
	Name        string
	LeaderName  string
	LeaderImage *string
	Departments []models.Department
}

// CollegeRepository stores colleges and their departments
type CollegeRepository struct {
	mu            sync.RWMutex
	colleges      map[models.ID]*models.College
	ids           sequence
	departmentIDs sequence
}

// NewCollegeRepository creates a new CollegeRepository
func NewCollegeRepository() *CollegeRepository {
	return &CollegeRepository{colleges: make(map[models.ID]*models.College)}
}

// CreateCollege stores a new college with its departments
func (r *CollegeRepository) CreateCollege(_ context.Context, in CollegeInput) models.College {
	r.mu.Lock()
	defer r.mu.Unlock()

	c := &models.College{ID: r.ids.next(), Departments: []models.Department{}}
	r.apply(c, in)
	r.colleges[c.ID] = c
	return copyCollege(c)
}

// UpdateCollege applies in to the stored college
func (r *CollegeRepository) UpdateCollege(_ context.Context, id models.ID, in CollegeInput) (models.College, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.colleges[id]
	if !ok {
		return models.College{}, ErrNotFound
	}
	r.apply(c, in)
	return copyCollege(c), nil
}

func (r *CollegeRepository) apply(c *models.College, in CollegeInput) {
	if in.Name != "" {
		c.Name = in.Name
	}
	if in.LeaderName != "" {
		c.LeaderName = in.LeaderName
	}
	if in.LeaderImage != nil {
		c.LeaderImage = *in.LeaderImage
	}
	if in.Departments != nil {
		c.Departments = make([]models.Department, 0, len(in.Departments))
		for _, d := range in.Departments {
			d.ID = r.departmentIDs.next()
			c.Departments = append(c.Departments, d)
		}
	}
}

// DeleteCollege removes the college and its departments
func (r *CollegeRepository) DeleteCollege(_ context.Context, id models.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.colleges[id]; !ok {
		return ErrNotFound
	}
	delete(r.colleges, id)
	return nil
}

// GetCollege retrieves a college by ID
func (r *CollegeRepository) GetCollege(_ context.Context, id models.ID) (models.College, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.colleges[id]
	if !ok {
		return models.College{}, ErrNotFound
	}
	return copyCollege(c), nil
}

// FindCollege resolves a college by id or exact name
func (r *CollegeRepository) FindCollege(_ context.Context, ref string) (models.College, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.colleges[models.ID(ref)]; ok {
		return copyCollege(c), true
	}
	for _, c := range r.colleges {
		if c.Name == ref {
			return copyCollege(c), true
		}
	}
	return models.College{}, false
}

// ListColleges returns colleges whose name or dean matches search, ordered by name
func (r *CollegeRepository) ListColleges(_ context.Context, search string) []models.College {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.College, 0, len(r.colleges))
	for _, c := range r.colleges {
		if matchesSearch(search, c.Name, c.LeaderName) {
			out = append(out, copyCollege(c))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// GetDepartments returns the departments of one college ordered by name
func (r *CollegeRepository) GetDepartments(_ context.Context, collegeID models.ID) ([]models.Department, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.colleges[collegeID]
	if !ok {
		return nil, ErrNotFound
	}
	out := append([]models.Department{}, c.Departments...)
	sortDepartments(out)
	return out, nil
}

// GetAllDepartments returns every department ordered by name
func (r *CollegeRepository) GetAllDepartments(_ context.Context) []models.Department {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := []models.Department{}
	for _, c := range r.colleges {
		out = append(out, c.Departments...)
	}
	sortDepartments(out)
	return out
}

// GetStats counts colleges and departments
func (r *CollegeRepository) GetStats(_ context.Context) models.CollegeStats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := models.CollegeStats{CollegeDepartmentCounts: make(map[string]int, len(r.colleges))}
	for _, c := range r.colleges {
		stats.TotalColleges++
		stats.TotalDepartments += len(c.Departments)
		stats.CollegeDepartmentCounts[c.Name] = len(c.Departments)
	}
	return stats
}

func sortDepartments(ds []models.Department) {
	sort.SliceStable(ds, func(i, j int) bool {
		if ds[i].Name != ds[j].Name {
			return ds[i].Name < ds[j].Name
		}
		return compareIDs(ds[i].ID, ds[j].ID) < 0
	})
}

func copyCollege(c *models.College) models.College {
	out := *c
	out.Departments = append([]models.Department{}, c.Departments...)
	return out
}
