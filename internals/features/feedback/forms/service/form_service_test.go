package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"reflectify_backend/internals/databases/repository"
	"reflectify_backend/internals/features/feedback/forms/model"
	"reflectify_backend/internals/features/feedback/forms/service"
	overrideModel "reflectify_backend/internals/features/feedback/override_students/model"
	"reflectify_backend/internals/services/mail"
)

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func newService(t *testing.T) (*service.FormService, *repository.MemoryRepository[model.FeedbackFormModel], *repository.MemoryRepository[overrideModel.OverrideStudentModel], *mail.ConsoleService) {
	t.Helper()
	forms := repository.NewMemory[model.FeedbackFormModel]()
	overrides := repository.NewMemory[overrideModel.OverrideStudentModel]()
	mailer := mail.NewConsoleServiceMock()
	svc := service.NewFormService(forms, overrides, mailer, "Reflectify", "https://app.test/")
	svc.Now = func() time.Time { return now }
	return svc, forms, overrides, mailer
}

func draft(title string, end *time.Time, emails ...string) *model.FeedbackFormModel {
	return &model.FeedbackFormModel{
		FeedbackFormTitle:        title,
		FeedbackFormSlug:         title,
		FeedbackFormDivision:     "A",
		FeedbackFormEndDate:      end,
		FeedbackFormTargetEmails: emails,
		FeedbackFormQuestions: datatypes.JSONSlice[model.Question]{
			{ID: "q1", Text: "Teaching", Type: model.QuestionTypeRating, Required: true},
		},
	}
}

func at(d time.Duration) *time.Time {
	t := now.Add(d)
	return &t
}

func TestFormLinkTrimsSlash(t *testing.T) {
	svc, _, _, _ := newService(t)
	assert.Equal(t, "https://app.test/feedback/mid-sem", svc.FormLink("mid-sem"))
}

func TestPublishActivatesAndNotifies(t *testing.T) {
	svc, forms, overrides, mailer := newService(t)
	ctx := context.Background()

	f := draft("mid-sem", at(24*time.Hour), "a@uni.test", "A@uni.test")
	require.NoError(t, forms.Create(ctx, f))
	require.NoError(t, overrides.Create(ctx, &overrideModel.OverrideStudentModel{
		OverrideStudentFormID:           f.FeedbackFormID,
		OverrideStudentEnrollmentNumber: "22CE001",
		OverrideStudentName:             "Override",
		OverrideStudentEmail:            "o@uni.test",
	}))

	got, n, err := svc.Publish(ctx, f.FeedbackFormID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Equal(t, model.FormStatusActive, got.FeedbackFormStatus)
	require.NotNil(t, got.FeedbackFormStartDate)
	assert.True(t, got.FeedbackFormStartDate.Equal(now))
	sent := mailer.Sent()
	require.Len(t, sent, 2)
	var to []string
	for _, m := range sent {
		require.Len(t, m.To, 1, "satu email per penerima")
		to = append(to, m.To[0].Address)
		assert.Equal(t, "Feedback form: mid-sem", m.Subject)
		assert.Contains(t, m.TextContent, "https://app.test/feedback/mid-sem")
	}
	assert.ElementsMatch(t, []string{"a@uni.test", "o@uni.test"}, to)

	_, _, err = svc.Publish(ctx, f.FeedbackFormID)
	assert.ErrorIs(t, err, service.ErrNotDraft)

	n, err = svc.Resend(ctx, f.FeedbackFormID)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, mailer.Sent(), 4)
}

func TestPublishRejectsPastEndDateAndEmptyForms(t *testing.T) {
	svc, forms, _, _ := newService(t)
	ctx := context.Background()

	past := draft("past", at(-time.Hour))
	require.NoError(t, forms.Create(ctx, past))
	_, _, err := svc.Publish(ctx, past.FeedbackFormID)
	assert.ErrorIs(t, err, service.ErrEndInThePast)

	empty := draft("empty", nil)
	empty.FeedbackFormQuestions = nil
	require.NoError(t, forms.Create(ctx, empty))
	_, _, err = svc.Publish(ctx, empty.FeedbackFormID)
	assert.ErrorIs(t, err, service.ErrNoQuestions)

	stored, err := forms.Get(ctx, empty.FeedbackFormID)
	require.NoError(t, err)
	assert.Equal(t, model.FormStatusDraft, stored.FeedbackFormStatus)
}

func TestCloseOnlyFromActive(t *testing.T) {
	svc, forms, _, _ := newService(t)
	ctx := context.Background()

	f := draft("close-me", nil)
	require.NoError(t, forms.Create(ctx, f))

	_, err := svc.Close(ctx, f.FeedbackFormID)
	assert.ErrorIs(t, err, service.ErrNotActive)

	_, _, err = svc.Publish(ctx, f.FeedbackFormID)
	require.NoError(t, err)
	closed, err := svc.Close(ctx, f.FeedbackFormID)
	require.NoError(t, err)
	assert.Equal(t, model.FormStatusClosed, closed.FeedbackFormStatus)
	assert.False(t, closed.FeedbackFormIsExpired)
}

func TestCloseExpiredOnlyTouchesOverdueActiveForms(t *testing.T) {
	svc, forms, _, _ := newService(t)
	ctx := context.Background()

	overdue := draft("overdue", at(time.Hour))
	open := draft("open", at(72*time.Hour))
	noEnd := draft("no-end", nil)
	stillDraft := draft("still-draft", at(-time.Hour))
	for _, f := range []*model.FeedbackFormModel{overdue, open, noEnd} {
		require.NoError(t, forms.Create(ctx, f))
		_, _, err := svc.Publish(ctx, f.FeedbackFormID)
		require.NoError(t, err)
	}
	require.NoError(t, forms.Create(ctx, stillDraft))

	// dua jam kemudian
	svc.Now = func() time.Time { return now.Add(2 * time.Hour) }
	n, err := svc.CloseExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := forms.Get(ctx, overdue.FeedbackFormID)
	require.NoError(t, err)
	assert.Equal(t, model.FormStatusClosed, got.FeedbackFormStatus)
	assert.True(t, got.FeedbackFormIsExpired)
	assert.NotNil(t, got.FeedbackFormClosedAt)

	for _, id := range []*model.FeedbackFormModel{open, noEnd} {
		got, err := forms.Get(ctx, id.FeedbackFormID)
		require.NoError(t, err)
		assert.Equal(t, model.FormStatusActive, got.FeedbackFormStatus)
	}
	got, err = forms.Get(ctx, stillDraft.FeedbackFormID)
	require.NoError(t, err)
	assert.Equal(t, model.FormStatusDraft, got.FeedbackFormStatus)
}

func TestIsRecipient(t *testing.T) {
	svc, forms, _, _ := newService(t)
	ctx := context.Background()

	open := draft("open", nil)
	require.NoError(t, forms.Create(ctx, open))
	ok, err := svc.IsRecipient(ctx, open, "anyone@uni.test")
	require.NoError(t, err)
	assert.True(t, ok, "form without recipients is open to anyone")

	closed := draft("listed", nil, "a@uni.test")
	require.NoError(t, forms.Create(ctx, closed))
	ok, err = svc.IsRecipient(ctx, closed, " A@UNI.test ")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = svc.IsRecipient(ctx, closed, "b@uni.test")
	require.NoError(t, err)
	assert.False(t, ok)
}
