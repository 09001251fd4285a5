package domain

import (
	"regexp"
	"strings"
)

// Spreadsheet column headers. The misspellings ("paided", "need_to_paid") are
// what the published sheet actually uses.
const (
	ColID            = "id"
	ColNumber        = "number"
	ColSize          = "size"
	ColCostPerMonth  = "cost_per_month"
	ColCostPerYear   = "cost_per_year"
	ColStartBalance  = "start_balance"
	ColBalance       = "balance"
	ColPaid          = "paided"
	ColNeedToPay     = "need_to_paid"
	ColMonthsOfDebt  = "months_of_debt"
	ColPaidLastMonth = "paided_last_month"
	ColDate          = "date"
)

// FieldKind tells how a cell was converted.
type FieldKind int

const (
	KindText FieldKind = iota
	KindInt
	KindMoney
	KindMonths
)

func (k FieldKind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindMoney:
		return "money"
	case KindMonths:
		return "months"
	default:
		return "text"
	}
}

// Field is one converted cell. Text always holds the cleaned cell text;
// Number is set for int, money and months columns.
type Field struct {
	Header string
	Kind   FieldKind
	Text   string
	Number float64
}

var whitespaceRunRe = regexp.MustCompile(`[\s\p{Zs}\x{FEFF}]+`)

// columnKind maps known headers to their conversion. Unknown headers are text.
func columnKind(header string) FieldKind {
	switch header {
	case ColID:
		return KindInt
	case ColCostPerMonth, ColCostPerYear, ColStartBalance, ColBalance,
		ColPaid, ColNeedToPay, ColPaidLastMonth:
		return KindMoney
	case ColMonthsOfDebt:
		return KindMonths
	default:
		return KindText
	}
}

// convertField cleans a raw cell and converts it according to its column.
func convertField(header, raw string) Field {
	value := strings.TrimSpace(strings.ReplaceAll(raw, `"`, ""))
	f := Field{Header: header, Kind: columnKind(header), Text: value}

	switch f.Kind {
	case KindInt:
		f.Number = float64(parseIntOrZero(value))
	case KindMoney:
		f.Number = ParseMoney(value)
	case KindMonths:
		f.Number = ParseMonths(value)
	default:
		if header == ColSize {
			f.Text = strings.TrimSpace(whitespaceRunRe.ReplaceAllString(value, " "))
		}
	}
	return f
}
