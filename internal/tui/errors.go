package tui

import (
	"errors"
	"fmt"

	"github.com/dentalink/dentalink/internal/api"
)

// wrapErr formats an error with a contextual prefix.
func wrapErr(context string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", context, err)
}

// describeErr turns an API error into a short Arabic status line.
func describeErr(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, api.ErrNotFound):
		return "العنصر غير موجود"
	case errors.Is(err, api.ErrNetwork):
		return "تعذر الاتصال بالخادم"
	case errors.Is(err, api.ErrServer):
		return fmt.Sprintf("خطأ من الخادم (%d)", api.Status(err))
	case errors.Is(err, api.ErrMalformed):
		return "استجابة غير صالحة من الخادم"
	default:
		return err.Error()
	}
}
