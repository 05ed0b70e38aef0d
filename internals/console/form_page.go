// file: internals/console/form_page.go
package console

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"reflectify_backend/internals/console/client"
	formDTO "reflectify_backend/internals/features/feedback/forms/dto"
	formModel "reflectify_backend/internals/features/feedback/forms/model"
	"reflectify_backend/internals/helpers/datatable"
)

// FormDraft. Questions ditulis "rating:Teaching quality; text:Comments".
type FormDraft struct {
	Title        string
	Semester     string
	Division     string
	StartDate    string
	EndDate      string
	Questions    string
	TargetEmails string

	// status entity yang sedang diedit; kosong saat Adding
	status formModel.FormStatus
}

var formFields = []string{"title", "semester", "division", "start_date", "end_date", "questions", "target_emails"}

func (d *FormDraft) set(field, value string) error {
	switch field {
	case "title":
		d.Title = value
	case "semester", "sem":
		d.Semester = value
	case "division":
		d.Division = value
	case "start_date":
		d.StartDate = value
	case "end_date":
		d.EndDate = value
	case "questions":
		d.Questions = value
	case "target_emails", "emails":
		d.TargetEmails = value
	default:
		return unknownField(field)
	}
	return nil
}

func (d FormDraft) get(field string) string {
	switch field {
	case "title":
		return d.Title
	case "semester":
		return d.Semester
	case "division":
		return d.Division
	case "start_date":
		return d.StartDate
	case "end_date":
		return d.EndDate
	case "questions":
		return d.Questions
	case "target_emails":
		return d.TargetEmails
	}
	return ""
}

func parseQuestions(s string) ([]formDTO.QuestionDTO, error) {
	var out []formDTO.QuestionDTO
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		typ, text, ok := strings.Cut(part, ":")
		typ = strings.ToLower(strings.TrimSpace(typ))
		text = strings.TrimSpace(text)
		if !ok || text == "" || (typ != formModel.QuestionTypeRating && typ != formModel.QuestionTypeText) {
			return nil, &ValidationError{Field: "questions", Message: fmt.Sprintf("%q must look like rating:<text> or text:<text>", part)}
		}
		out = append(out, formDTO.QuestionDTO{Text: text, Type: typ})
	}
	return out, nil
}

func formatQuestions(qs []formModel.Question) string {
	parts := make([]string, 0, len(qs))
	for _, q := range qs {
		parts = append(parts, q.Type+":"+q.Text)
	}
	return strings.Join(parts, "; ")
}

func splitEmails(s string) []string {
	var out []string
	for _, e := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' || r == ';' }) {
		if e = strings.TrimSpace(e); e != "" {
			out = append(out, e)
		}
	}
	return out
}

func (d FormDraft) toCreate(l *Lookups) (formDTO.FormCreateDTO, error) {
	var out formDTO.FormCreateDTO
	if strings.TrimSpace(d.Title) == "" {
		return out, Required("title")
	}
	if strings.TrimSpace(d.Semester) == "" {
		return out, Required("semester")
	}
	if strings.TrimSpace(d.Division) == "" {
		return out, Required("division")
	}
	semID, ok := l.ResolveSemester(d.Semester)
	if !ok {
		return out, &ValidationError{Field: "semester", Message: "unknown semester (use UUID or DEPT-number)"}
	}
	start, err := parseDate("start_date", d.StartDate)
	if err != nil {
		return out, err
	}
	end, err := parseDate("end_date", d.EndDate)
	if err != nil {
		return out, err
	}
	if start != nil && end != nil && end.Before(*start) {
		return out, &ValidationError{Field: "end_date", Message: "must not be before start_date"}
	}
	questions, err := parseQuestions(d.Questions)
	if err != nil {
		return out, err
	}
	return formDTO.FormCreateDTO{
		FeedbackFormTitle:        strings.TrimSpace(d.Title),
		FeedbackFormSemesterID:   semID,
		FeedbackFormDivision:     strings.ToUpper(strings.TrimSpace(d.Division)),
		FeedbackFormStartDate:    start,
		FeedbackFormEndDate:      end,
		FeedbackFormQuestions:    questions,
		FeedbackFormTargetEmails: splitEmails(d.TargetEmails),
	}, nil
}

type formMutations struct {
	res     *client.Resource[formDTO.FormResponse]
	lookups *Lookups
}

func (m formMutations) Create(ctx context.Context, d FormDraft) (formDTO.FormResponse, error) {
	body, err := d.toCreate(m.lookups)
	if err != nil {
		return formDTO.FormResponse{}, err
	}
	return m.res.Create(ctx, body)
}

// Update: di luar DRAFT hanya judul, tanggal dan email target yang dikirim.
func (m formMutations) Update(ctx context.Context, id uuid.UUID, d FormDraft) (formDTO.FormResponse, error) {
	c, err := d.toCreate(m.lookups)
	if err != nil {
		return formDTO.FormResponse{}, err
	}
	upd := formDTO.FormUpdateDTO{
		FeedbackFormTitle:        &c.FeedbackFormTitle,
		FeedbackFormStartDate:    c.FeedbackFormStartDate,
		FeedbackFormEndDate:      c.FeedbackFormEndDate,
		FeedbackFormTargetEmails: &c.FeedbackFormTargetEmails,
	}
	if d.status == "" || d.status == formModel.FormStatusDraft {
		upd.FeedbackFormSemesterID = &c.FeedbackFormSemesterID
		upd.FeedbackFormDivision = &c.FeedbackFormDivision
		upd.FeedbackFormQuestions = &c.FeedbackFormQuestions
	}
	return m.res.Update(ctx, id, upd)
}

func (m formMutations) SoftDelete(ctx context.Context, id uuid.UUID) error {
	return m.res.Delete(ctx, id)
}

// FormPage menambah aksi publish / close di atas CRUD biasa.
type FormPage struct {
	*Page[formDTO.FormResponse, FormDraft]
	res *client.Resource[formDTO.FormResponse]
}

type publishResult struct {
	Form           formDTO.FormResponse `json:"form"`
	EmailsEnqueued int                  `json:"emails_enqueued"`
	Link           string               `json:"link"`
}

func (p *FormPage) Actions() []string { return []string{"publish", "close"} }

// Run menjalankan aksi lifecycle untuk baris ref.
func (p *FormPage) Run(ctx context.Context, action, ref string) error {
	id, err := p.Resolve(ref)
	if err != nil {
		return err
	}
	if !p.acquire(MutationUpdate) {
		return ErrPending
	}
	defer p.release(MutationUpdate)

	switch action {
	case "publish":
		var out publishResult
		if err := p.res.Action(ctx, id, "publish", &out); err != nil {
			p.notifier.Notify(Error, client.Message(err))
			return err
		}
		p.notifier.Notify(Success, fmt.Sprintf("Published %q, %d invitation(s) queued: %s", out.Form.FeedbackFormTitle, out.EmailsEnqueued, out.Link))
	case "close":
		var out formDTO.FormResponse
		if err := p.res.Action(ctx, id, "close", &out); err != nil {
			p.notifier.Notify(Error, client.Message(err))
			return err
		}
		p.notifier.Notify(Success, fmt.Sprintf("Closed %q", out.FeedbackFormTitle))
	default:
		return fmt.Errorf("unknown action %q", action)
	}
	_ = p.Refresh(ctx)
	return nil
}

// NewFeedbackFormPage: CRUD form feedback di /api/a/feedback-forms.
func NewFeedbackFormPage(c *client.Client, l *Lookups, n Notifier) *FormPage {
	res := client.NewResource[formDTO.FormResponse](c, "/api/a/feedback-forms")
	type row = formDTO.FormResponse
	page := NewPage(PageConfig[row, FormDraft]{
		Name:     "forms",
		Singular: "Feedback form",
		Columns: []datatable.Column[row]{
			{Key: "feedback_form_title", Header: "Title", Sortable: true,
				Field: func(f row) any { return f.FeedbackFormTitle }},
			{Key: "feedback_form_semester", Header: "Semester", Sortable: true,
				Accessor: func(f row) any { return l.SemesterLabel(f.FeedbackFormSemesterID) }},
			{Key: "feedback_form_division", Header: "Div", Sortable: true,
				Field: func(f row) any { return f.FeedbackFormDivision }},
			{Key: "feedback_form_status", Header: "Status", Sortable: true,
				Field: func(f row) any { return string(f.FeedbackFormStatus) }},
			{Key: "feedback_form_questions", Header: "Qs", Align: datatable.AlignRight,
				Accessor: func(f row) any { return len(f.FeedbackFormQuestions) }},
			{Key: "feedback_form_end_date", Header: "Ends", Sortable: true,
				Accessor: func(f row) any { return fmtDate(f.FeedbackFormEndDate) },
				Field:    func(f row) any { return f.FeedbackFormEndDate }},
		},
		Fetcher: FetchFunc[row](func(ctx context.Context) ([]row, error) {
			if err := l.Load(ctx); err != nil {
				return nil, err
			}
			return res.List(ctx, nil)
		}),
		Mutations: formMutations{res: res, lookups: l},
		ID:        func(f row) uuid.UUID { return f.FeedbackFormID },
		Label:     func(f row) string { return f.FeedbackFormTitle },
		DraftFrom: func(f row) FormDraft {
			return FormDraft{
				Title:        f.FeedbackFormTitle,
				Semester:     f.FeedbackFormSemesterID.String(),
				Division:     f.FeedbackFormDivision,
				StartDate:    fmtDate(f.FeedbackFormStartDate),
				EndDate:      fmtDate(f.FeedbackFormEndDate),
				Questions:    formatQuestions(f.FeedbackFormQuestions),
				TargetEmails: strings.Join(f.FeedbackFormTargetEmails, ", "),
				status:       f.FeedbackFormStatus,
			}
		},
		SetField: func(d *FormDraft, field, value string) error { return d.set(field, value) },
		GetField: func(d FormDraft, field string) string { return d.get(field) },
		Fields:   formFields,
		Validate: func(d FormDraft) error {
			_, err := d.toCreate(l)
			return err
		},
		Stats: func(rows []row) []Stat {
			return []Stat{
				{Label: "by status", Counts: countBy(rows, func(f row) string { return string(f.FeedbackFormStatus) })},
				{Label: "by semester", Counts: countBy(rows, func(f row) string { return l.SemesterLabel(f.FeedbackFormSemesterID) })},
			}
		},
	}, n)
	return &FormPage{Page: page, res: res}
}
