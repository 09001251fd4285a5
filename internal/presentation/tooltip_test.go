package presentation

import (
	"testing"

	"github.com/couchcryptid/parcel-balance-map/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewTooltip(t *testing.T) {
	balance := -1500.5
	rec := domain.ParcelRecord{
		Number:        "12a",
		Size:          "6 соток",
		CostPerMonth:  1000,
		CostPerYear:   12000,
		Balance:       &balance,
		Paid:          3000,
		NeedToPay:     4500.5,
		MonthsOfDebt:  2,
		PaidLastMonth: 1000,
		Date:          "01.05.2024",
	}

	tip := NewTooltip(rec)

	assert.Equal(t, "Участок 12a", tip.Title)
	want := []TooltipLine{
		{"Баланс", "-1 500.50 ₽"},
		{"Месяцев с задолженностью", "2"},
		{"Оплачено в этом году", "3 000.00 ₽"},
		{"Оплачено в этом месяце", "1 000.00 ₽"},
		{"Плата в месяц", "1 000.00 ₽"},
		{"Плата в год", "12 000.00 ₽"},
		{"Осталось за год (с учетом задолженностей)", "1 500.50 ₽"},
		{"Размер", "6 соток"},
		{"Дата актуальности", "01.05.2024"},
	}
	if diff := cmp.Diff(want, tip.Lines); diff != "" {
		t.Errorf("tooltip lines mismatch (-want +got):\n%s", diff)
	}
	assert.True(t, decimal.RequireFromString("1500.5").Equal(tip.RemainingForYear))
}

func TestNewTooltip_Defaults(t *testing.T) {
	tip := NewTooltip(domain.ParcelRecord{Number: "7", MonthsOfDebt: 1.5})

	lines := map[string]string{}
	for _, l := range tip.Lines {
		lines[l.Label] = l.Value
	}
	assert.Equal(t, "0 ₽", lines["Баланс"])
	assert.Equal(t, "1.5", lines["Месяцев с задолженностью"])
	assert.Equal(t, "0.00 ₽", lines["Оплачено в этом году"])
	assert.Equal(t, "Не указан", lines["Размер"])
	assert.Equal(t, "Не указана", lines["Дата актуальности"])
}

func TestNewTooltip_RemainingIsExact(t *testing.T) {
	// 0.3 - 0.1 is 0.19999999999999998 in binary floating point.
	tip := NewTooltip(domain.ParcelRecord{NeedToPay: 0.3, Paid: 0.1})
	assert.Equal(t, "0.2", tip.RemainingForYear.String())
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00"},
		{"5", "5.00"},
		{"999.999", "1 000.00"},
		{"1234.5", "1 234.50"},
		{"-1234.5", "-1 234.50"},
		{"1234567.891", "1 234 567.89"},
		{"-50000", "-50 000.00"},
		{"100000", "100 000.00"},
		{"-0.001", "0.00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMoney(decimal.RequireFromString(tt.in)))
		})
	}
}
