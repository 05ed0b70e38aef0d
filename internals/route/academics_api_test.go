package routes_test

import (
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	deptDTO "reflectify_backend/internals/features/academics/departments/dto"
	facDTO "reflectify_backend/internals/features/academics/faculties/dto"
	semDTO "reflectify_backend/internals/features/academics/semesters/dto"
	subDTO "reflectify_backend/internals/features/academics/subjects/dto"
)

func (a *testAPI) createDepartment(name, abbr string) deptDTO.DepartmentResponse {
	a.t.Helper()
	var out deptDTO.DepartmentResponse
	a.mustData("POST", "/api/a/departments", map[string]any{
		"department_name":         name,
		"department_abbreviation": abbr,
	}, fiber.StatusCreated, &out)
	return out
}

func (a *testAPI) createFaculty(dept uuid.UUID, name, email string, seniority int) facDTO.FacultyResponse {
	a.t.Helper()
	var out facDTO.FacultyResponse
	a.mustData("POST", "/api/a/faculties", map[string]any{
		"faculty_name":          name,
		"faculty_email":         email,
		"faculty_designation":   "ASSISTANT_PROFESSOR",
		"faculty_seniority":     seniority,
		"faculty_department_id": dept,
	}, fiber.StatusCreated, &out)
	return out
}

func (a *testAPI) createSemester(dept uuid.UUID, n int, year string) semDTO.SemesterResponse {
	a.t.Helper()
	var out semDTO.SemesterResponse
	a.mustData("POST", "/api/a/semesters", map[string]any{
		"semester_department_id": dept,
		"semester_number":        n,
		"semester_academic_year": year,
	}, fiber.StatusCreated, &out)
	return out
}

func (a *testAPI) createSubject(dept, sem uuid.UUID, name, code string) subDTO.SubjectResponse {
	a.t.Helper()
	var out subDTO.SubjectResponse
	a.mustData("POST", "/api/a/subjects", map[string]any{
		"subject_name":          name,
		"subject_abbreviation":  code[:2],
		"subject_code":          code,
		"subject_department_id": dept,
		"subject_semester_id":   sem,
	}, fiber.StatusCreated, &out)
	return out
}

func TestAdminRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.call("GET", "/api/a/faculties", "", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.False(t, env.Success)
}

func TestLoginMeLogout(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.call("POST", "/api/auth/login", "", map[string]string{"email": "root@reflectify.test", "password": "wrong-password"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.NotEmpty(t, env.Message)

	token := api.login("ROOT@reflectify.test", "password123")

	status, _ = api.call("GET", "/api/auth/me", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = api.call("POST", "/api/auth/logout", token, nil)
	require.Equal(t, fiber.StatusOK, status)

	// token yang sudah logout masuk blacklist
	status, _ = api.call("GET", "/api/auth/me", token, nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestFacultySoftDeleteAndRestore(t *testing.T) {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")
	fac := api.createFaculty(dept.DepartmentID, "Alice Smith", "alice@uni.test", 5)

	var got facDTO.FacultyResponse
	api.mustData("PATCH", "/api/a/faculties/"+fac.FacultyID.String(), map[string]any{"faculty_seniority": 6}, fiber.StatusOK, &got)
	assert.Equal(t, 6, got.FacultySeniority)

	api.mustData("DELETE", "/api/a/faculties/"+fac.FacultyID.String(), nil, fiber.StatusOK, nil)

	status, _ := api.admin("GET", "/api/a/faculties/"+fac.FacultyID.String(), nil)
	assert.Equal(t, fiber.StatusNotFound, status)

	var list []facDTO.FacultyResponse
	api.mustData("GET", "/api/a/faculties", nil, fiber.StatusOK, &list)
	assert.Empty(t, list)

	api.mustData("GET", "/api/a/faculties?only_deleted=true", nil, fiber.StatusOK, &list)
	require.Len(t, list, 1)

	api.mustData("POST", "/api/a/faculties/"+fac.FacultyID.String()+"/restore", nil, fiber.StatusOK, &got)
	assert.Equal(t, "Alice Smith", got.FacultyName)

	api.mustData("GET", "/api/a/faculties", nil, fiber.StatusOK, &list)
	assert.Len(t, list, 1)

	// restore kedua kali: tidak sedang terhapus
	status, _ = api.admin("POST", "/api/a/faculties/"+fac.FacultyID.String()+"/restore", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestFacultyDuplicateEmailConflicts(t *testing.T) {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")
	api.createFaculty(dept.DepartmentID, "Alice Smith", "alice@uni.test", 5)

	status, env := api.admin("POST", "/api/a/faculties", map[string]any{
		"faculty_name":          "Alice Again",
		"faculty_email":         "ALICE@uni.test",
		"faculty_designation":   "HOD",
		"faculty_department_id": dept.DepartmentID,
	})
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "CONFLICT", env.ErrorCode)
}

func TestFacultyValidationErrors(t *testing.T) {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")

	status, env := api.admin("POST", "/api/a/faculties", map[string]any{
		"faculty_name":          "",
		"faculty_email":         "not-an-email",
		"faculty_designation":   "HOD",
		"faculty_department_id": dept.DepartmentID,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "faculty_email")

	status, _ = api.admin("POST", "/api/a/faculties", map[string]any{
		"faculty_name":          "Bob",
		"faculty_email":         "bob@uni.test",
		"faculty_designation":   "Dean of Everything",
		"faculty_department_id": dept.DepartmentID,
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	status, _ = api.admin("POST", "/api/a/faculties", map[string]any{
		"faculty_name":          "Bob",
		"faculty_email":         "bob@uni.test",
		"faculty_designation":   "HOD",
		"faculty_department_id": uuid.New(),
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestFacultyListPaginatesSearchesAndSorts(t *testing.T) {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")
	for i := 1; i <= 17; i++ {
		name := fmt.Sprintf("Faculty %02d", i)
		if i == 9 {
			name = "Alice Smith"
		}
		api.createFaculty(dept.DepartmentID, name, fmt.Sprintf("f%02d@uni.test", i), i)
	}

	var list []facDTO.FacultyResponse
	env := api.mustData("GET", "/api/a/faculties?per_page=15", nil, fiber.StatusOK, &list)
	assert.Len(t, list, 15)
	assert.Equal(t, 2, env.Pagination.TotalPages)
	assert.EqualValues(t, 17, env.Pagination.Total)

	env = api.mustData("GET", "/api/a/faculties?per_page=15&page=2", nil, fiber.StatusOK, &list)
	assert.Len(t, list, 2)
	assert.Equal(t, 2, env.Pagination.Page)

	api.mustData("GET", "/api/a/faculties?q=smith", nil, fiber.StatusOK, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Alice Smith", list[0].FacultyName)

	api.mustData("GET", "/api/a/faculties?sort_by=seniority&order=desc&per_page=3", nil, fiber.StatusOK, &list)
	require.Len(t, list, 3)
	assert.Equal(t, []int{17, 16, 15}, []int{list[0].FacultySeniority, list[1].FacultySeniority, list[2].FacultySeniority})
}

func TestFacultySearchMatchesDepartment(t *testing.T) {
	api := newTestAPI(t)
	mech := api.createDepartment("Mechanical", "MECH")
	civil := api.createDepartment("Civil", "CIV")
	api.createFaculty(mech.DepartmentID, "Bob Ray", "bob@uni.test", 3)
	api.createFaculty(civil.DepartmentID, "Dan Lee", "dan@uni.test", 4)

	var list []facDTO.FacultyResponse
	api.mustData("GET", "/api/a/faculties?q=mech", nil, fiber.StatusOK, &list)
	require.Len(t, list, 1)
	assert.Equal(t, "Bob Ray", list[0].FacultyName)

	api.mustData("GET", "/api/a/faculties?sort_by=department&order=asc", nil, fiber.StatusOK, &list)
	require.Len(t, list, 2)
	assert.Equal(t, "Dan Lee", list[0].FacultyName)
}

func TestListRejectsUnknownSortKey(t *testing.T) {
	api := newTestAPI(t)

	status, env := api.admin("GET", "/api/a/faculties?sort_by=salary", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, env.Message, `"salary"`)
	assert.Contains(t, env.Message, "seniority")

	status, _ = api.admin("GET", "/api/a/departments?sort_by=salary", nil)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestFacultyListIncludeDeleted(t *testing.T) {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")
	gone := api.createFaculty(dept.DepartmentID, "Gone Soon", "gone@uni.test", 1)
	api.createFaculty(dept.DepartmentID, "Still Here", "here@uni.test", 2)
	api.mustData("DELETE", "/api/a/faculties/"+gone.FacultyID.String(), nil, fiber.StatusOK, nil)

	var list []facDTO.FacultyResponse
	api.mustData("GET", "/api/a/faculties", nil, fiber.StatusOK, &list)
	assert.Len(t, list, 1)

	api.mustData("GET", "/api/a/faculties?include_deleted=true", nil, fiber.StatusOK, &list)
	assert.Len(t, list, 2)
}

func TestSemesterTypeDerivedFromNumber(t *testing.T) {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")

	odd := api.createSemester(dept.DepartmentID, 3, "2024-25")
	even := api.createSemester(dept.DepartmentID, 4, "2024-25")
	assert.Equal(t, "ODD", odd.SemesterType)
	assert.Equal(t, "EVEN", even.SemesterType)

	status, env := api.admin("POST", "/api/a/semesters", map[string]any{
		"semester_department_id": dept.DepartmentID,
		"semester_number":        5,
		"semester_academic_year": "2024/25",
	})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "semester_academic_year")
}

func TestSubjectRequiresKnownSemester(t *testing.T) {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")
	sem := api.createSemester(dept.DepartmentID, 3, "2024-25")

	sub := api.createSubject(dept.DepartmentID, sem.SemesterID, "Data Structures", "CE301")
	assert.Equal(t, "MANDATORY", sub.SubjectType)

	status, _ := api.admin("POST", "/api/a/subjects", map[string]any{
		"subject_name":          "Ghost",
		"subject_abbreviation":  "GH",
		"subject_code":          "CE999",
		"subject_department_id": dept.DepartmentID,
		"subject_semester_id":   uuid.New(),
	})
	assert.Equal(t, fiber.StatusBadRequest, status)
}
