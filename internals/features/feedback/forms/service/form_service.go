// file: internals/features/feedback/forms/service/form_service.go
package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"reflectify_backend/internals/databases/repository"
	"reflectify_backend/internals/features/feedback/forms/model"
	overrideModel "reflectify_backend/internals/features/feedback/override_students/model"
	"reflectify_backend/internals/services/mail"
)

var (
	ErrNotDraft     = errors.New("form bukan DRAFT")
	ErrNotActive    = errors.New("form tidak ACTIVE")
	ErrNoQuestions  = errors.New("form belum punya pertanyaan")
	ErrEndInThePast = errors.New("tanggal selesai sudah lewat")
)

// FormService: transisi status form DRAFT -> ACTIVE -> CLOSED beserta
// notifikasi email saat publish.
type FormService struct {
	Forms     repository.Repository[model.FeedbackFormModel]
	Overrides repository.Repository[overrideModel.OverrideStudentModel]
	Mailer    mail.EmailService

	AppName         string
	FrontendBaseURL string
	Now             func() time.Time
}

func NewFormService(
	forms repository.Repository[model.FeedbackFormModel],
	overrides repository.Repository[overrideModel.OverrideStudentModel],
	mailer mail.EmailService,
	appName, frontendBaseURL string,
) *FormService {
	return &FormService{
		Forms:           forms,
		Overrides:       overrides,
		Mailer:          mailer,
		AppName:         appName,
		FrontendBaseURL: frontendBaseURL,
		Now:             time.Now,
	}
}

// FormLink: URL publik yang dibuka mahasiswa.
func (s *FormService) FormLink(slug string) string {
	return strings.TrimRight(s.FrontendBaseURL, "/") + "/feedback/" + slug
}

// Recipients = target emails + override students, lowercase tanpa duplikat.
func (s *FormService) Recipients(ctx context.Context, form *model.FeedbackFormModel) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	add := func(e string) {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			return
		}
		seen[e] = true
		out = append(out, e)
	}
	for _, e := range form.FeedbackFormTargetEmails {
		add(e)
	}
	if s.Overrides != nil {
		rows, err := s.Overrides.List(ctx, repository.Where("override_student_form_id", form.FeedbackFormID))
		if err != nil {
			return nil, err
		}
		for _, r := range rows {
			add(r.OverrideStudentEmail)
		}
	}
	return out, nil
}

// IsRecipient: form tanpa penerima sama sekali terbuka untuk siapa saja.
func (s *FormService) IsRecipient(ctx context.Context, form *model.FeedbackFormModel, email string) (bool, error) {
	list, err := s.Recipients(ctx, form)
	if err != nil {
		return false, err
	}
	if len(list) == 0 {
		return true, nil
	}
	email = strings.ToLower(strings.TrimSpace(email))
	for _, e := range list {
		if e == email {
			return true, nil
		}
	}
	return false, nil
}

// Publish memindahkan form DRAFT ke ACTIVE lalu mengirim email ke semua
// penerima. Return jumlah email yang dijadwalkan.
func (s *FormService) Publish(ctx context.Context, id uuid.UUID) (*model.FeedbackFormModel, int, error) {
	form, err := s.Forms.Get(ctx, id)
	if err != nil {
		return nil, 0, err
	}
	if form.FeedbackFormStatus != model.FormStatusDraft {
		return form, 0, ErrNotDraft
	}
	if len(form.FeedbackFormQuestions) == 0 {
		return form, 0, ErrNoQuestions
	}
	now := s.Now()
	if form.FeedbackFormEndDate != nil && form.FeedbackFormEndDate.Before(now) {
		return form, 0, ErrEndInThePast
	}

	form.FeedbackFormStatus = model.FormStatusActive
	form.FeedbackFormPublishedAt = &now
	form.FeedbackFormIsExpired = false
	if form.FeedbackFormStartDate == nil {
		form.FeedbackFormStartDate = &now
	}
	if err := s.Forms.Save(ctx, form); err != nil {
		return nil, 0, err
	}

	recipients, err := s.Recipients(ctx, form)
	if err != nil {
		// form sudah ACTIVE; email bisa dikirim ulang lewat resend
		log.Printf("[WARN] recipients form %s: %v", form.FeedbackFormID, err)
		return form, 0, nil
	}
	s.notify(form, recipients)
	return form, len(recipients), nil
}

// Resend mengirim ulang undangan untuk form ACTIVE.
func (s *FormService) Resend(ctx context.Context, id uuid.UUID) (int, error) {
	form, err := s.Forms.Get(ctx, id)
	if err != nil {
		return 0, err
	}
	if form.FeedbackFormStatus != model.FormStatusActive {
		return 0, ErrNotActive
	}
	recipients, err := s.Recipients(ctx, form)
	if err != nil {
		return 0, err
	}
	s.notify(form, recipients)
	return len(recipients), nil
}

// satu email per penerima, supaya alamat tidak saling terlihat
func (s *FormService) notify(form *model.FeedbackFormModel, recipients []string) {
	if s.Mailer == nil || len(recipients) == 0 {
		return
	}
	data := mail.FormPublishedData{
		AppName:   s.AppName,
		FormTitle: form.FeedbackFormTitle,
		Division:  form.FeedbackFormDivision,
		Link:      s.FormLink(form.FeedbackFormSlug),
	}
	if form.FeedbackFormEndDate != nil {
		data.EndDate = form.FeedbackFormEndDate.Format("02 Jan 2006 15:04")
	}
	msgs := make([]*mail.EmailMessage, 0, len(recipients))
	for _, to := range mail.Recipients(recipients...) {
		msgs = append(msgs, &mail.EmailMessage{
			To:           []mail.Address{to},
			Subject:      "Feedback form: " + form.FeedbackFormTitle,
			TemplateName: mail.TemplateFormPublished,
			TemplateData: data,
		})
	}
	s.Mailer.SendMessages(msgs...)
	log.Printf("[INFO] 📧 form %s: %d undangan dikirim", form.FeedbackFormSlug, len(msgs))
}

// Close: ACTIVE -> CLOSED.
func (s *FormService) Close(ctx context.Context, id uuid.UUID) (*model.FeedbackFormModel, error) {
	form, err := s.Forms.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if form.FeedbackFormStatus != model.FormStatusActive {
		return form, ErrNotActive
	}
	now := s.Now()
	form.FeedbackFormStatus = model.FormStatusClosed
	form.FeedbackFormClosedAt = &now
	if err := s.Forms.Save(ctx, form); err != nil {
		return nil, err
	}
	return form, nil
}

// CloseExpired menutup semua form ACTIVE yang end date-nya sudah lewat.
// Dipanggil cron.
func (s *FormService) CloseExpired(ctx context.Context) (int, error) {
	rows, err := s.Forms.List(ctx, repository.Where("feedback_form_status", model.FormStatusActive))
	if err != nil {
		return 0, err
	}
	now := s.Now()
	n := 0
	for i := range rows {
		f := &rows[i]
		if f.FeedbackFormEndDate == nil || !now.After(*f.FeedbackFormEndDate) {
			continue
		}
		f.FeedbackFormStatus = model.FormStatusClosed
		f.FeedbackFormIsExpired = true
		f.FeedbackFormClosedAt = &now
		if err := s.Forms.Save(ctx, f); err != nil {
			return n, err
		}
		n++
	}
	return n, nil
}
