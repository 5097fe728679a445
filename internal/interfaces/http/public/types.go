package public

import "github.com/sngm3741/business-intake/api/internal/intake/domain"

type statusResponse struct {
	Status string `json:"status"`
}

type fieldProblem struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

func toFieldProblems(fields []domain.FieldError) []fieldProblem {
	problems := make([]fieldProblem, 0, len(fields))
	for _, f := range fields {
		problems = append(problems, fieldProblem{Field: f.Field, Rule: f.Rule})
	}
	return problems
}
