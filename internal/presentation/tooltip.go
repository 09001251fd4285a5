package presentation

import (
	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	defaultSize = "Не указан"
	defaultDate = "Не указана"
	currency    = " ₽"
)

// Tooltip is the hover card for a parcel, already formatted for display.
type Tooltip struct {
	Title string        `json:"title"`
	Lines []TooltipLine `json:"lines"`

	// RemainingForYear is what is still owed this year including arrears.
	RemainingForYear decimal.Decimal `json:"remaining_for_year"`
}

// TooltipLine is one labelled value on the card.
type TooltipLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// NewTooltip builds the card for rec.
func NewTooltip(rec domain.ParcelRecord) Tooltip {
	remaining := decimal.NewFromFloat(rec.NeedToPay).Sub(decimal.NewFromFloat(rec.Paid))

	size := rec.Size
	if size == "" {
		size = defaultSize
	}
	date := rec.Date
	if date == "" {
		date = defaultDate
	}

	return Tooltip{
		Title: "Участок " + rec.Number,
		Lines: []TooltipLine{
			{"Баланс", formatBalance(rec.Balance) + currency},
			{"Месяцев с задолженностью", formatMonths(rec.MonthsOfDebt)},
			{"Оплачено в этом году", money(rec.Paid)},
			{"Оплачено в этом месяце", money(rec.PaidLastMonth)},
			{"Плата в месяц", money(rec.CostPerMonth)},
			{"Плата в год", money(rec.CostPerYear)},
			{"Осталось за год (с учетом задолженностей)", FormatMoney(remaining) + currency},
			{"Размер", size},
			{"Дата актуальности", date},
		},
		RemainingForYear: remaining,
	}
}

func money(v float64) string {
	return FormatMoney(decimal.NewFromFloat(v)) + currency
}
