// file: internals/console/lookups.go
package console

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"reflectify_backend/internals/console/client"
	deptDTO "reflectify_backend/internals/features/academics/departments/dto"
	semDTO "reflectify_backend/internals/features/academics/semesters/dto"
)

const dateLayout = "2006-01-02"

// Lookups: nama departemen / semester untuk kolom dan input draft.
// Dimuat ulang setiap page refresh.
type Lookups struct {
	Departments *client.Resource[deptDTO.DepartmentResponse]
	Semesters   *client.Resource[semDTO.SemesterResponse]

	mu       sync.RWMutex
	depts    map[uuid.UUID]deptDTO.DepartmentResponse
	sems     map[uuid.UUID]semDTO.SemesterResponse
	loadedAt time.Time
}

func NewLookups(c *client.Client) *Lookups {
	return &Lookups{
		Departments: client.NewResource[deptDTO.DepartmentResponse](c, "/api/a/departments"),
		Semesters:   client.NewResource[semDTO.SemesterResponse](c, "/api/a/semesters"),
		depts:       map[uuid.UUID]deptDTO.DepartmentResponse{},
		sems:        map[uuid.UUID]semDTO.SemesterResponse{},
	}
}

func (l *Lookups) Load(ctx context.Context) error {
	depts, err := l.Departments.List(ctx, nil)
	if err != nil {
		return err
	}
	sems, err := l.Semesters.List(ctx, nil)
	if err != nil {
		return err
	}
	l.Set(depts, sems)
	return nil
}

// Set dipakai Load dan test.
func (l *Lookups) Set(depts []deptDTO.DepartmentResponse, sems []semDTO.SemesterResponse) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.depts = make(map[uuid.UUID]deptDTO.DepartmentResponse, len(depts))
	for _, d := range depts {
		l.depts[d.DepartmentID] = d
	}
	l.sems = make(map[uuid.UUID]semDTO.SemesterResponse, len(sems))
	for _, s := range sems {
		l.sems[s.SemesterID] = s
	}
	l.loadedAt = time.Now()
}

// DepartmentLabel: singkatan departemen, atau id pendek kalau tidak dikenal.
func (l *Lookups) DepartmentLabel(id uuid.UUID) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if d, ok := l.depts[id]; ok {
		return d.DepartmentAbbreviation
	}
	return shortID(id)
}

// DepartmentRef: nilai draft yang bisa di-resolve balik.
func (l *Lookups) DepartmentRef(id uuid.UUID) string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if d, ok := l.depts[id]; ok {
		return d.DepartmentAbbreviation
	}
	return id.String()
}

// SemesterLabel: "CE Sem 3 (2024-25)".
func (l *Lookups) SemesterLabel(id uuid.UUID) string {
	l.mu.RLock()
	s, ok := l.sems[id]
	l.mu.RUnlock()
	if !ok {
		return shortID(id)
	}
	return fmt.Sprintf("%s Sem %d (%s)", l.DepartmentLabel(s.SemesterDepartmentID), s.SemesterNumber, s.SemesterAcademicYear)
}

// ResolveDepartment menerima UUID atau singkatan (case-insensitive).
func (l *Lookups) ResolveDepartment(ref string) (uuid.UUID, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return id, true
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	for id, d := range l.depts {
		if strings.EqualFold(d.DepartmentAbbreviation, ref) {
			return id, true
		}
	}
	return uuid.Nil, false
}

// ResolveSemester menerima UUID atau "<DEPT>-<nomor>", mis. "CE-3". Kalau
// ada beberapa tahun ajaran, yang terbaru menang.
func (l *Lookups) ResolveSemester(ref string) (uuid.UUID, bool) {
	ref = strings.TrimSpace(ref)
	if id, err := uuid.Parse(ref); err == nil {
		return id, true
	}
	i := strings.LastIndex(ref, "-")
	if i <= 0 {
		return uuid.Nil, false
	}
	deptID, ok := l.ResolveDepartment(ref[:i])
	if !ok {
		return uuid.Nil, false
	}
	n, err := strconv.Atoi(ref[i+1:])
	if err != nil {
		return uuid.Nil, false
	}

	l.mu.RLock()
	defer l.mu.RUnlock()
	var best *semDTO.SemesterResponse
	for _, s := range l.sems {
		if s.SemesterDepartmentID != deptID || s.SemesterNumber != n {
			continue
		}
		if best == nil || s.SemesterAcademicYear > best.SemesterAcademicYear {
			s := s
			best = &s
		}
	}
	if best == nil {
		return uuid.Nil, false
	}
	return best.SemesterID, true
}

/* ===================== draft helpers ===================== */

func shortID(id uuid.UUID) string {
	if id == uuid.Nil {
		return ""
	}
	return id.String()[:8]
}

func fmtDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func parseDate(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, &ValidationError{Field: field, Message: "must be YYYY-MM-DD"}
	}
	return &t, nil
}

func optString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func unknownField(field string) error {
	return &ValidationError{Field: field, Message: "unknown field"}
}

// countBy menghitung baris per key, urut jumlah terbanyak lalu nama.
func countBy[T any](rows []T, key func(T) string) []Count {
	m := map[string]int{}
	for _, r := range rows {
		k := key(r)
		if k == "" {
			k = "(none)"
		}
		m[k]++
	}
	out := make([]Count, 0, len(m))
	for k, n := range m {
		out = append(out, Count{Key: k, N: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].N != out[j].N {
			return out[i].N > out[j].N
		}
		return out[i].Key < out[j].Key
	})
	return out
}
