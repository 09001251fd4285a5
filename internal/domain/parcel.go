package domain

// ParcelRecord is one spreadsheet row describing a parcel's account.
type ParcelRecord struct {
	SheetID       int      `json:"id"`
	Number        string   `json:"number"`
	Size          string   `json:"size"`
	CostPerMonth  float64  `json:"cost_per_month"`
	CostPerYear   float64  `json:"cost_per_year"`
	StartBalance  float64  `json:"start_balance"`
	Balance       *float64 `json:"balance"` // nil when the export has no balance column
	Paid          float64  `json:"paided"`
	NeedToPay     float64  `json:"need_to_paid"`
	MonthsOfDebt  float64  `json:"months_of_debt"`
	PaidLastMonth float64  `json:"paided_last_month"`
	Date          string   `json:"date"`

	// Extra holds columns the service does not know about, keyed by header.
	Extra map[string]string `json:"extra,omitempty"`
}

// HasBalance reports whether the record carries a usable balance.
func (p ParcelRecord) HasBalance() bool {
	return validBalance(p.Balance)
}

// InDebt reports whether the parcel owes money.
func (p ParcelRecord) InDebt() bool {
	return p.HasBalance() && *p.Balance < 0
}

// RecordFromRow maps a parsed row onto a ParcelRecord.
func RecordFromRow(row Row) ParcelRecord {
	rec := ParcelRecord{}
	for _, f := range row.fields {
		switch f.Header {
		case ColID:
			rec.SheetID = int(f.Number)
		case ColNumber:
			rec.Number = f.Text
		case ColSize:
			rec.Size = f.Text
		case ColCostPerMonth:
			rec.CostPerMonth = f.Number
		case ColCostPerYear:
			rec.CostPerYear = f.Number
		case ColStartBalance:
			rec.StartBalance = f.Number
		case ColBalance:
			v := f.Number
			rec.Balance = &v
		case ColPaid:
			rec.Paid = f.Number
		case ColNeedToPay:
			rec.NeedToPay = f.Number
		case ColMonthsOfDebt:
			rec.MonthsOfDebt = f.Number
		case ColPaidLastMonth:
			rec.PaidLastMonth = f.Number
		case ColDate:
			rec.Date = f.Text
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]string)
			}
			rec.Extra[f.Header] = f.Text
		}
	}
	return rec
}
