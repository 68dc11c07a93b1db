package service

import "errors"

// Исходы одного resolve. Не фатальные: состояние движка не меняется.
var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrThicknessNotFound = errors.New("thickness not found")
	ErrMassUnavailable   = errors.New("mass unavailable")
	ErrAmbiguousQuery    = errors.New("ambiguous query")
)

const (
	OutcomeOK                = "ok"
	OutcomeCategoryNotFound  = "category_not_found"
	OutcomeThicknessNotFound = "thickness_not_found"
	OutcomeMassUnavailable   = "mass_unavailable"
	OutcomeAmbiguousQuery    = "ambiguous_query"
)

// Outcome переводит ошибку в код исхода для ответа API.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, ErrCategoryNotFound):
		return OutcomeCategoryNotFound
	case errors.Is(err, ErrThicknessNotFound):
		return OutcomeThicknessNotFound
	case errors.Is(err, ErrMassUnavailable):
		return OutcomeMassUnavailable
	case errors.Is(err, ErrAmbiguousQuery):
		return OutcomeAmbiguousQuery
	default:
		return "error"
	}
}
