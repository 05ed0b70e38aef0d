// file: internals/features/feedback/responses/service/answers.go
package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"

	"gorm.io/datatypes"

	formModel "reflectify_backend/internals/features/feedback/forms/model"
)

const MaxTextAnswerLen = 2000

// ValidateAnswers cek jawaban terhadap pertanyaan form:
//   - id tidak dikenal ditolak
//   - pertanyaan required wajib dijawab
//   - rating harus bilangan bulat 1..5, text harus string
//
// Hasilnya jawaban yang sudah dinormalisasi (rating jadi int) dan error per
// question id.
func ValidateAnswers(form *formModel.FeedbackFormModel, answers map[string]any) (datatypes.JSONMap, map[string][]string) {
	out := datatypes.JSONMap{}
	errs := map[string][]string{}
	add := func(k, msg string) { errs[k] = append(errs[k], msg) }

	for id := range answers {
		if _, ok := form.Question(id); !ok {
			add(id, "unknown question")
		}
	}

	for _, q := range form.FeedbackFormQuestions {
		raw, present := answers[q.ID]
		if !present || isBlank(raw) {
			if q.Required {
				add(q.ID, "required")
			}
			continue
		}
		switch q.Type {
		case formModel.QuestionTypeRating:
			n, ok := ratingValue(raw)
			if !ok {
				add(q.ID, fmt.Sprintf("must be an integer between %d and %d", formModel.RatingMin, formModel.RatingMax))
				continue
			}
			out[q.ID] = n
		default:
			s, ok := raw.(string)
			if !ok {
				add(q.ID, "must be text")
				continue
			}
			s = strings.TrimSpace(s)
			if utf8.RuneCountInString(s) > MaxTextAnswerLen {
				add(q.ID, fmt.Sprintf("max %d characters", MaxTextAnswerLen))
				continue
			}
			out[q.ID] = s
		}
	}
	if len(errs) == 0 {
		return out, nil
	}
	return out, errs
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

func ratingValue(v any) (int, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case string:
		p, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = p
	default:
		return 0, false
	}
	if f != math.Trunc(f) || f < formModel.RatingMin || f > formModel.RatingMax {
		return 0, false
	}
	return int(f), true
}
