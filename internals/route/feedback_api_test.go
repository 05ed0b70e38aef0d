package routes_test

import (
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	analyticsDTO "reflectify_backend/internals/features/analytics/dto"
	formDTO "reflectify_backend/internals/features/feedback/forms/dto"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	osDTO "reflectify_backend/internals/features/feedback/override_students/dto"
	respDTO "reflectify_backend/internals/features/feedback/responses/dto"
)

type feedbackFixture struct {
	api       *testAPI
	semester  uuid.UUID
	faculty   uuid.UUID
	subject   uuid.UUID
	form      formDTO.FormResponse
	questions []formModel.Question
}

// newFeedbackFixture: satu departemen, semester, dosen, mata kuliah dan
// form DRAFT dengan dua pertanyaan (rating + text).
func newFeedbackFixture(t *testing.T, targets ...string) *feedbackFixture {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")
	sem := api.createSemester(dept.DepartmentID, 3, "2024-25")
	fac := api.createFaculty(dept.DepartmentID, "Alice Smith", "alice@uni.test", 5)
	sub := api.createSubject(dept.DepartmentID, sem.SemesterID, "Data Structures", "CE301")

	end := time.Now().Add(48 * time.Hour)
	var form formDTO.FormResponse
	api.mustData("POST", "/api/a/feedback-forms", map[string]any{
		"feedback_form_title":       "Mid Semester Feedback",
		"feedback_form_semester_id": sem.SemesterID,
		"feedback_form_division":    "a",
		"feedback_form_end_date":    end,
		"feedback_form_questions": []map[string]any{
			{"text": "Teaching quality", "type": "rating", "faculty_id": fac.FacultyID, "subject_id": sub.SubjectID},
			{"text": "Comments", "type": "text", "required": false},
		},
		"feedback_form_target_emails": targets,
	}, fiber.StatusCreated, &form)

	return &feedbackFixture{
		api:       api,
		semester:  sem.SemesterID,
		faculty:   fac.FacultyID,
		subject:   sub.SubjectID,
		form:      form,
		questions: form.FeedbackFormQuestions,
	}
}

func (f *feedbackFixture) path(suffix string) string {
	return "/api/a/feedback-forms/" + f.form.FeedbackFormID.String() + suffix
}

func (f *feedbackFixture) publish() {
	f.api.t.Helper()
	f.api.mustData("POST", f.path("/publish"), nil, fiber.StatusOK, nil)
}

func (f *feedbackFixture) submit(email string, answers map[string]any) (int, envelope) {
	f.api.t.Helper()
	return f.api.call("POST", "/api/public/forms/"+f.form.FeedbackFormSlug+"/responses", "", map[string]any{
		"email":   email,
		"answers": answers,
	})
}

func TestFormCreateAssignsSlugAndQuestionIDs(t *testing.T) {
	f := newFeedbackFixture(t)

	assert.Equal(t, "mid-semester-feedback", f.form.FeedbackFormSlug)
	assert.Equal(t, formModel.FormStatusDraft, f.form.FeedbackFormStatus)
	assert.Equal(t, "A", f.form.FeedbackFormDivision)
	require.Len(t, f.questions, 2)
	assert.Equal(t, "q1", f.questions[0].ID)
	assert.True(t, f.questions[0].Required)
	assert.False(t, f.questions[1].Required)

	// judul sama → slug diberi suffix
	var second formDTO.FormResponse
	f.api.mustData("POST", "/api/a/feedback-forms", map[string]any{
		"feedback_form_title":       "Mid Semester Feedback",
		"feedback_form_semester_id": f.semester,
		"feedback_form_division":    "B",
	}, fiber.StatusCreated, &second)
	assert.NotEqual(t, f.form.FeedbackFormSlug, second.FeedbackFormSlug)
	assert.Contains(t, second.FeedbackFormSlug, "mid-semester-feedback")
}

func TestDraftFormIsNotPublic(t *testing.T) {
	f := newFeedbackFixture(t)

	status, _ := f.api.call("GET", "/api/public/forms/"+f.form.FeedbackFormSlug, "", nil)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestPublishSendsOneEmailPerRecipient(t *testing.T) {
	f := newFeedbackFixture(t, "s1@uni.test", "S1@uni.test", "s2@uni.test")

	var out struct {
		Form           formDTO.FormResponse `json:"form"`
		EmailsEnqueued int                  `json:"emails_enqueued"`
		Link           string               `json:"link"`
	}
	f.api.mustData("POST", f.path("/publish"), nil, fiber.StatusOK, &out)
	assert.Equal(t, formModel.FormStatusActive, out.Form.FeedbackFormStatus)
	assert.NotNil(t, out.Form.FeedbackFormPublishedAt)
	assert.Equal(t, 2, out.EmailsEnqueued)
	assert.Equal(t, "http://front.test/feedback/"+f.form.FeedbackFormSlug, out.Link)

	sent := f.api.Mailer.Sent()
	require.Len(t, sent, 2)
	for _, m := range sent {
		assert.Len(t, m.To, 1)
		assert.Contains(t, m.TextContent, out.Link)
	}

	// publish kedua kali ditolak
	status, _ := f.api.admin("POST", f.path("/publish"), nil)
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestPublishWithoutQuestionsIsRejected(t *testing.T) {
	api := newTestAPI(t)
	dept := api.createDepartment("Computer Engineering", "CE")
	sem := api.createSemester(dept.DepartmentID, 3, "2024-25")

	var form formDTO.FormResponse
	api.mustData("POST", "/api/a/feedback-forms", map[string]any{
		"feedback_form_title":       "Empty",
		"feedback_form_semester_id": sem.SemesterID,
		"feedback_form_division":    "A",
	}, fiber.StatusCreated, &form)

	status, _ := api.admin("POST", "/api/a/feedback-forms/"+form.FeedbackFormID.String()+"/publish", nil)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestActiveFormQuestionsAreLocked(t *testing.T) {
	f := newFeedbackFixture(t)
	f.publish()

	status, _ := f.api.admin("PATCH", f.path(""), map[string]any{
		"feedback_form_questions": []map[string]any{{"text": "New", "type": "text"}},
	})
	assert.Equal(t, fiber.StatusConflict, status)

	var got formDTO.FormResponse
	f.api.mustData("PATCH", f.path(""), map[string]any{"feedback_form_title": "Renamed"}, fiber.StatusOK, &got)
	assert.Equal(t, "Renamed", got.FeedbackFormTitle)

	f.api.mustData("POST", f.path("/close"), nil, fiber.StatusOK, &got)
	assert.Equal(t, formModel.FormStatusClosed, got.FeedbackFormStatus)

	status, _ = f.api.admin("PATCH", f.path(""), map[string]any{"feedback_form_title": "Again"})
	assert.Equal(t, fiber.StatusConflict, status)
}

func TestSubmitResponseFlow(t *testing.T) {
	f := newFeedbackFixture(t)
	f.publish()

	var public formDTO.PublicFormResponse
	status, env := f.api.call("GET", "/api/public/forms/"+f.form.FeedbackFormSlug, "", nil)
	require.Equal(t, fiber.StatusOK, status)
	require.NoError(t, unmarshal(env.Data, &public))
	assert.Len(t, public.FeedbackFormQuestions, 2)

	// rating di luar 1..5
	status, env = f.submit("student@uni.test", map[string]any{"q1": 7})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "q1")

	// pertanyaan tidak dikenal
	status, env = f.submit("student@uni.test", map[string]any{"q1": 4, "q9": "x"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Contains(t, env.Errors, "q9")

	status, _ = f.submit("Student@uni.test", map[string]any{"q1": 4, "q2": "Great pace"})
	require.Equal(t, fiber.StatusCreated, status)

	// satu respon per email
	status, _ = f.submit("student@uni.test", map[string]any{"q1": 5})
	assert.Equal(t, fiber.StatusConflict, status)

	var rows []respDTO.FeedbackResponseResponse
	f.api.mustData("GET", f.path("/responses"), nil, fiber.StatusOK, &rows)
	require.Len(t, rows, 1)
	assert.Equal(t, "student@uni.test", rows[0].FeedbackResponseRespondentEmail)
	assert.EqualValues(t, 4, rows[0].FeedbackResponseAnswers["q1"])

	// setelah respon dihapus (soft) email yang sama boleh mengisi lagi
	f.api.mustData("DELETE", f.path("/responses/"+rows[0].FeedbackResponseID.String()), nil, fiber.StatusOK, nil)
	status, _ = f.submit("student@uni.test", map[string]any{"q1": 3})
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestClosedFormRejectsResponses(t *testing.T) {
	f := newFeedbackFixture(t)
	f.publish()
	f.api.mustData("POST", f.path("/close"), nil, fiber.StatusOK, nil)

	status, _ := f.submit("student@uni.test", map[string]any{"q1": 4})
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestRecipientsRestrictSubmissions(t *testing.T) {
	f := newFeedbackFixture(t, "listed@uni.test")

	var added struct {
		Created []osDTO.OverrideStudentResponse `json:"created"`
		Skipped []string                        `json:"skipped"`
	}
	f.api.mustData("POST", f.path("/override-students"), map[string]any{
		"students": []map[string]any{
			{"override_student_enrollment_number": "22CE001", "override_student_name": "Override One", "override_student_email": "override@uni.test", "override_student_batch": "A1"},
			{"override_student_enrollment_number": "22CE002", "override_student_name": "Override Dup", "override_student_email": "override@uni.test"},
		},
	}, fiber.StatusCreated, &added)
	assert.Len(t, added.Created, 1)
	assert.Equal(t, []string{"override@uni.test"}, added.Skipped)

	var students []osDTO.OverrideStudentResponse
	f.api.mustData("GET", f.path("/override-students"), nil, fiber.StatusOK, &students)
	require.Len(t, students, 1)

	var out struct {
		EmailsEnqueued int `json:"emails_enqueued"`
	}
	f.api.mustData("POST", f.path("/publish"), nil, fiber.StatusOK, &out)
	assert.Equal(t, 2, out.EmailsEnqueued)

	status, _ := f.submit("stranger@uni.test", map[string]any{"q1": 4})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = f.submit("override@uni.test", map[string]any{"q1": 4})
	assert.Equal(t, fiber.StatusCreated, status)
	status, _ = f.submit("listed@uni.test", map[string]any{"q1": 2})
	assert.Equal(t, fiber.StatusCreated, status)
}

func TestAnalyticsAggregatesRatings(t *testing.T) {
	f := newFeedbackFixture(t)
	f.publish()
	for email, rating := range map[string]int{"a@uni.test": 5, "b@uni.test": 4, "c@uni.test": 4} {
		status, _ := f.submit(email, map[string]any{"q1": rating})
		require.Equal(t, fiber.StatusCreated, status)
	}

	var overview analyticsDTO.Overview
	f.api.mustData("GET", "/api/a/analytics/overview", nil, fiber.StatusOK, &overview)
	assert.EqualValues(t, 1, overview.FormsByStatus["ACTIVE"])
	assert.EqualValues(t, 3, overview.Responses)
	assert.Equal(t, 3, overview.Ratings.RatingCount)
	assert.InDelta(t, 4.33, overview.Ratings.Average, 0.001)
	assert.Equal(t, 2, overview.Ratings.Distribution["4"])

	var subjects []analyticsDTO.SubjectRating
	f.api.mustData("GET", "/api/a/analytics/subject-ratings", nil, fiber.StatusOK, &subjects)
	require.Len(t, subjects, 1)
	assert.Equal(t, f.subject, subjects[0].SubjectID)
	assert.Equal(t, "CE301", subjects[0].SubjectCode)
	assert.Equal(t, 3, subjects[0].ResponseCount)

	var faculties []analyticsDTO.FacultyRating
	f.api.mustData("GET", "/api/a/analytics/faculty-ratings?semester_id="+f.semester.String(), nil, fiber.StatusOK, &faculties)
	require.Len(t, faculties, 1)
	assert.Equal(t, "Alice Smith", faculties[0].FacultyName)

	var trend []analyticsDTO.SemesterTrendPoint
	f.api.mustData("GET", "/api/a/analytics/semester-trend", nil, fiber.StatusOK, &trend)
	require.Len(t, trend, 1)
	assert.Equal(t, 3, trend[0].Responses)
}

func TestDevPurgeOnlyInDevelopment(t *testing.T) {
	f := newFeedbackFixture(t)

	status, _ := f.api.admin("DELETE", "/api/a/dev/all-data", nil)
	assert.Equal(t, fiber.StatusForbidden, status)

	f.api.dev = true
	f.api.mustData("DELETE", "/api/a/dev/all-data", nil, fiber.StatusOK, nil)

	var forms []formDTO.FormResponse
	f.api.mustData("GET", "/api/a/feedback-forms", nil, fiber.StatusOK, &forms)
	assert.Empty(t, forms)

	// admin tetap ada, token masih valid
	status, _ = f.api.admin("GET", "/api/auth/me", nil)
	assert.Equal(t, fiber.StatusOK, status)
}
