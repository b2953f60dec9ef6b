package handler

import (
	"html/template"
	"strconv"
	"strings"
	"time"

	"github.com/dukerupert/gamestore/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateFuncs returns a FuncMap with custom template functions
func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"add": func(a, b int) int {
			return a + b
		},
		"year": func() int {
			return time.Now().Year()
		},
		"rub":        FormatRubles,
		"rubDecimal": FormatRublesDecimal,
		"toastClass": func(level domain.NotificationLevel) string {
			return "toast toast-" + string(level)
		},
	}
}

// FormatRubles renders a whole-ruble amount with thin grouping, e.g. "1 499 ₽".
func FormatRubles(amount int64) string {
	return groupThousands(strconv.FormatInt(amount, 10)) + " ₽"
}

// FormatRublesDecimal renders a total that may carry a fractional part,
// e.g. "908.6 ₽". Whole amounts print without a decimal point.
func FormatRublesDecimal(amount decimal.Decimal) string {
	s := amount.String()
	intPart, frac, hasFrac := strings.Cut(s, ".")
	out := groupThousands(intPart)
	if hasFrac {
		out += "." + frac
	}
	return out + " ₽"
}

func groupThousands(digits string) string {
	sign := ""
	if strings.HasPrefix(digits, "-") {
		sign, digits = "-", digits[1:]
	}
	if len(digits) <= 3 {
		return sign + digits
	}

	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(digits[i : i+3])
	}
	return sign + b.String()
}
