package receipt

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/shopspring/decimal"
)

// Minimum widths of the amount columns. Wider amounts widen their column
// rather than being cut.
const (
	weightCol = 9
	priceCol  = 8
	valueCol  = 14
)

// RenderText renders the bill as fixed-column text for the LAN thermal
// printer. Padding uses display width so Sinhala labels line up.
func RenderText(agg Aggregation, net Net, meta Meta) (string, error) {
	if agg.Empty() {
		return "", ErrEmptyReport
	}
	w := Paper(meta.Mode.Layout).Columns

	var b strings.Builder
	rule := strings.Repeat("-", w)

	if meta.BusinessName != "" {
		b.WriteString(center(meta.BusinessName, w) + "\n")
	}
	if meta.BusinessAddress != "" {
		b.WriteString(center(meta.BusinessAddress, w) + "\n")
	}
	if meta.BusinessPhone != "" {
		b.WriteString(center(meta.BusinessPhone, w) + "\n")
	}
	b.WriteString(rule + "\n")
	if meta.BillNo != "" {
		b.WriteString(keyValue(LabelBillNo.String(), meta.BillNo, w) + "\n")
	}
	b.WriteString(keyValue(LabelDate.String(), formatDate(meta.Date), w) + "\n")
	if meta.CounterpartyName != "" || meta.CounterpartyCode != "" {
		party := meta.CounterpartyName
		if meta.CounterpartyCode != "" {
			party = strings.TrimSpace(party + " (" + meta.CounterpartyCode + ")")
		}
		b.WriteString(keyValue(counterpartyLabel(meta.Mode).String(), party, w) + "\n")
	}
	b.WriteString(rule + "\n")

	// Each entry takes two lines: the item with its pack count and
	// counterparty code, then the amounts.
	b.WriteString(itemLine(LabelItem.En, LabelPacks.En, "", w) + "\n")
	b.WriteString(amountLines(LabelWeight.En, LabelPrice.En, LabelValue.En, w))
	b.WriteString(rule + "\n")
	for _, l := range agg.Lines {
		row := lineRowFor(l, meta.Mode)
		b.WriteString(itemLine(row.Name, row.Packs, row.Code, w) + "\n")
		b.WriteString(amountLines(row.Weight, row.Price, row.Value, w))
	}
	b.WriteString(rule + "\n")
	totalPacks := FormatNumber(decimal.NewFromInt(agg.Totals.Packs))
	b.WriteString(itemLine(LabelGrandTotal.En, totalPacks, "", w) + "\n")
	b.WriteString(amountLines(FormatWeight(agg.Totals.Weight), "", FormatCurrency(SalesFor(agg.Totals, meta.Mode)), w))
	b.WriteString(rule + "\n")

	b.WriteString(LabelItemSummary.String() + "\n")
	for _, it := range agg.PerItem {
		summary := FormatNumber(decimal.NewFromInt(it.Packs)) + " / " + FormatWeight(it.Weight)
		b.WriteString(keyValue(it.ItemName, summary, w) + "\n")
	}
	b.WriteString(rule + "\n")

	for _, t := range totalRows(agg.Totals, net, meta.Mode) {
		if t.Strong {
			b.WriteString(strings.Repeat("=", w) + "\n")
		}
		b.WriteString(keyValue(t.Label.String(), t.Amount, w) + "\n")
	}
	b.WriteString(rule + "\n")
	b.WriteString(center(LabelThankYou.String(), w) + "\n")
	return b.String(), nil
}

// itemLine prints "name (packs)" on the left and code on the right. Only the
// name is shortened when the line is too long.
func itemLine(name, packs, code string, width int) string {
	suffix := " (" + packs + ")"
	room := width - runewidth.StringWidth(suffix)
	if code != "" && room-runewidth.StringWidth(code)-1 < 1 {
		// code goes on its own line
		return itemLine(name, packs, "", width) + "\n" + runewidth.FillLeft(code, width)
	}
	if code != "" {
		room -= runewidth.StringWidth(code) + 1
	}
	if room < 0 {
		room = 0
	}
	left := runewidth.Truncate(name, room, "") + suffix
	if code == "" {
		return left
	}
	return left + strings.Repeat(" ", width-runewidth.StringWidth(left)-runewidth.StringWidth(code)) + code
}

// amountLines right-aligns weight, price and value. Amounts are never cut:
// when they do not fit on one line the value moves to a line of its own.
func amountLines(weight, price, value string, width int) string {
	cells := runewidth.FillLeft(weight, weightCol) + " " + runewidth.FillLeft(price, priceCol)
	line := cells + " " + runewidth.FillLeft(value, valueCol)
	if runewidth.StringWidth(line) <= width {
		return runewidth.FillLeft(line, width) + "\n"
	}
	return strings.TrimRight(cells, " ") + "\n" + runewidth.FillLeft(value, width) + "\n"
}

func keyValue(key, value string, width int) string {
	gap := width - runewidth.StringWidth(key) - runewidth.StringWidth(value)
	if gap < 1 {
		key = runewidth.Truncate(key, width-runewidth.StringWidth(value)-1, "")
		gap = width - runewidth.StringWidth(key) - runewidth.StringWidth(value)
		if gap < 1 {
			gap = 1
		}
	}
	return key + strings.Repeat(" ", gap) + value
}

func center(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return runewidth.Truncate(s, width, "")
	}
	return strings.Repeat(" ", (width-sw)/2) + s
}
