// Package domain models the parcel balance spreadsheet and its mapping onto the
// parcel map.
//
// # Data Source
//
// Balances are maintained by the treasurer in a Google Sheet and published as a
// CSV export. The export is loosely structured: it is edited by hand, money
// columns carry currency symbols and locale formatting, and rows are sometimes
// half-filled. Every function in this package is therefore total: malformed
// input degrades to zero values or dropped rows, never to an error.
//
// Expected header row (order is not significant, extra columns are passed through):
//
//	id,number,size,cost_per_month,cost_per_year,start_balance,balance,
//	paided,need_to_paid,months_of_debt,paided_last_month,date
//
// # Parcel Identifiers
//
// The map's shapes carry a data-place attribute typed independently of the
// spreadsheet's number column, so the two disagree on case and script:
//
//	"12a"  (Latin a)        →  "12а"
//	"12А"  (Cyrillic capital) →  "12а"
//	"12"                    →  "12"
//	"12 а" / "12ab"         →  unchanged (not a parcel id)
//
// Both sides are folded with [NormalizePlaceID] before joining.
//
// # Money Formatting
//
//	"1 234,56 ₽"  →  1234.56   (spaces, NBSP and ₽ stripped, comma decimal)
//	"-150"        →  -150
//	"" / "abc"    →  0
//
// See [ParseMoney] and [ParseMonths].
//
// # Color Scale
//
// Balances map to colors through 28 fixed breakpoints from +1000 (bright green)
// down to -50000 (dark red). Between breakpoints each RGB channel is linearly
// interpolated; outside the table the scale clamps. A parcel with no balance
// is drawn in [UnknownColor]. See [ColorFor].
package domain
