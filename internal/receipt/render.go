package receipt

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"time"

	"produce-backend/internal/models"

	"github.com/shopspring/decimal"
)

// ErrEmptyReport is returned by the renderers when there are no lines. The
// caller is expected to show nothing rather than an empty bill.
var ErrEmptyReport = errors.New("report has no lines")

// Meta is everything printed on a bill that does not come from the lines.
type Meta struct {
	BusinessName     string
	BusinessAddress  string
	BusinessPhone    string
	BillNo           string
	CounterpartyName string
	CounterpartyCode string
	Date             time.Time
	Mode             models.ReportMode
}

const dateTimeLayout = "2006-01-02 03:04 PM"

type lineRow struct {
	Name   string
	Packs  string
	Weight string
	Price  string
	Code   string
	Value  string
}

type itemRow struct {
	Name   string
	Packs  string
	Weight string
}

type totalRow struct {
	Label  Label
	Amount string
	Strong bool
}

type receiptView struct {
	Paper             PaperSpec
	Meta              Meta
	DateText          string
	CounterpartyLabel Label
	Labels            map[string]Label
	Rows              []lineRow
	Items             []itemRow
	TotalPacks        string
	TotalWeight       string
	TotalValue        string
	Totals            []totalRow
}

var receiptTemplate = template.Must(template.New("receipt").Parse(`<div class="receipt receipt-{{.Meta.Mode.Layout}}" style="width:{{.Paper.BodyWidth}};font-family:'Courier New',monospace;font-size:{{.Paper.FontSize}};line-height:1.25;color:#000">
<div style="text-align:center;font-weight:bold;font-size:1.2em">{{.Meta.BusinessName}}</div>
{{- if .Meta.BusinessAddress}}
<div style="text-align:center">{{.Meta.BusinessAddress}}</div>
{{- end}}
{{- if .Meta.BusinessPhone}}
<div style="text-align:center">{{.Meta.BusinessPhone}}</div>
{{- end}}
<div style="border-top:1px dashed #000;margin:4px 0"></div>
<table style="width:100%;border-collapse:collapse">
{{- if .Meta.BillNo}}
<tr><td>{{.Labels.BillNo}}</td><td style="text-align:right">{{.Meta.BillNo}}</td></tr>
{{- end}}
<tr><td>{{.Labels.Date}}</td><td style="text-align:right">{{.DateText}}</td></tr>
{{- if or .Meta.CounterpartyName .Meta.CounterpartyCode}}
<tr><td>{{.CounterpartyLabel}}</td><td style="text-align:right">{{.Meta.CounterpartyName}}{{if .Meta.CounterpartyCode}} ({{.Meta.CounterpartyCode}}){{end}}</td></tr>
{{- end}}
</table>
<div style="border-top:1px dashed #000;margin:4px 0"></div>
<table class="lines" style="width:100%;border-collapse:collapse">
<thead><tr>
<th style="text-align:left">{{.Labels.Item.Si}}<br>{{.Labels.Item.En}} ({{.Labels.Packs.En}})</th>
<th style="text-align:right">{{.Labels.Weight.Si}}<br>{{.Labels.Weight.En}}</th>
<th style="text-align:right">{{.Labels.Price.Si}}<br>{{.Labels.Price.En}}</th>
<th style="text-align:right">{{.Labels.Value.Si}}<br>{{.Labels.Value.En}}</th>
</tr></thead>
<tbody>
{{- range .Rows}}
<tr><td style="text-align:left">{{.Name}} ({{.Packs}})</td><td style="text-align:right">{{.Weight}}</td><td style="text-align:right">{{.Price}}</td><td style="text-align:right">{{if .Code}}{{.Code}} {{end}}{{.Value}}</td></tr>
{{- end}}
</tbody>
<tfoot><tr style="border-top:1px solid #000;font-weight:bold">
<td style="text-align:left">{{.Labels.GrandTotal.En}} ({{.TotalPacks}})</td><td style="text-align:right">{{.TotalWeight}}</td><td></td><td style="text-align:right">{{.TotalValue}}</td>
</tr></tfoot>
</table>
<div style="border-top:1px dashed #000;margin:4px 0"></div>
<div style="font-weight:bold">{{.Labels.ItemSummary}}</div>
<table class="items" style="width:100%;border-collapse:collapse">
{{- range .Items}}
<tr><td style="text-align:left">{{.Name}}</td><td style="text-align:right">{{.Packs}} / {{.Weight}}</td></tr>
{{- end}}
</table>
<div style="border-top:1px dashed #000;margin:4px 0"></div>
<table class="totals" style="width:100%;border-collapse:collapse">
{{- range .Totals}}
<tr{{if .Strong}} style="font-weight:bold"{{end}}><td style="text-align:left">{{.Label}}</td><td style="text-align:right">{{.Amount}}</td></tr>
{{- end}}
</table>
<div style="border-top:1px dashed #000;margin:4px 0"></div>
<div style="text-align:center">{{.Labels.ThankYou}}</div>
</div>`))

var printPageTemplate = template.Must(template.New("print").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>@page{margin:0}body{margin:0;padding:2mm}</style>
</head>
<body>
{{.Body}}
<script>window.onload=function(){window.print();};</script>
</body>
</html>`))

// RenderReceipt renders the bill as an HTML fragment for the browser print
// pipeline. Column order and footer are fixed: shopkeepers read bills by
// position.
func RenderReceipt(agg Aggregation, net Net, meta Meta) (string, error) {
	if agg.Empty() {
		return "", ErrEmptyReport
	}

	view := receiptView{
		Paper:             Paper(meta.Mode.Layout),
		Meta:              meta,
		DateText:          formatDate(meta.Date),
		CounterpartyLabel: counterpartyLabel(meta.Mode),
		Labels:            templateLabels,
		TotalPacks:        FormatNumber(decimal.NewFromInt(agg.Totals.Packs)),
		TotalWeight:       FormatWeight(agg.Totals.Weight),
		TotalValue:        FormatCurrency(SalesFor(agg.Totals, meta.Mode)),
		Totals:            totalRows(agg.Totals, net, meta.Mode),
	}
	for _, l := range agg.Lines {
		view.Rows = append(view.Rows, lineRowFor(l, meta.Mode))
	}
	for _, it := range agg.PerItem {
		view.Items = append(view.Items, itemRow{
			Name:   it.ItemName,
			Packs:  FormatNumber(decimal.NewFromInt(it.Packs)),
			Weight: FormatWeight(it.Weight),
		})
	}

	var buf bytes.Buffer
	if err := receiptTemplate.Execute(&buf, view); err != nil {
		return "", fmt.Errorf("render receipt: %w", err)
	}
	return buf.String(), nil
}

// RenderPrintPage wraps a receipt fragment in a standalone document that
// opens the platform print dialog when loaded.
func RenderPrintPage(title, fragment string) (string, error) {
	var buf bytes.Buffer
	err := printPageTemplate.Execute(&buf, struct {
		Title string
		Body  template.HTML
	}{Title: title, Body: template.HTML(fragment)})
	if err != nil {
		return "", fmt.Errorf("render print page: %w", err)
	}
	return buf.String(), nil
}

var templateLabels = map[string]Label{
	"BillNo":      LabelBillNo,
	"Date":        LabelDate,
	"Item":        LabelItem,
	"Packs":       LabelPacks,
	"Weight":      LabelWeight,
	"Price":       LabelPrice,
	"Value":       LabelValue,
	"GrandTotal":  LabelGrandTotal,
	"ItemSummary": LabelItemSummary,
	"ThankYou":    LabelThankYou,
}

func lineRowFor(l models.TransactionLine, mode models.ReportMode) lineRow {
	row := lineRow{
		Name:   l.ItemName,
		Packs:  FormatNumber(decimal.NewFromInt(l.Packs)),
		Weight: FormatWeight(l.Weight),
	}
	if mode.IsSupplier() {
		row.Price = FormatCurrency(l.SupplierPrice)
		row.Code = l.CustomerCode
		row.Value = FormatCurrency(l.SupplierValue())
	} else {
		row.Price = FormatCurrency(l.UnitPrice)
		row.Code = l.SupplierCode
		row.Value = FormatCurrency(l.Value())
	}
	return row
}

// SalesFor picks the sales figure the audience is billed on.
func SalesFor(t models.ReportTotals, mode models.ReportMode) decimal.Decimal {
	if mode.IsSupplier() {
		return t.SupplierSales
	}
	return t.Sales
}

func counterpartyLabel(mode models.ReportMode) Label {
	if mode.IsSupplier() {
		return LabelSupplier
	}
	return LabelCustomer
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateTimeLayout)
}

// totalRows lists the footer lines of a bill in print order.
func totalRows(t models.ReportTotals, net Net, mode models.ReportMode) []totalRow {
	if mode.IsSupplier() {
		rows := []totalRow{{Label: LabelSales, Amount: FormatCurrency(t.SupplierSales)}}
		switch mode.Settlement {
		case models.SettlementAdvance:
			rows = append(rows, totalRow{Label: LabelAdvance, Amount: FormatCurrency(t.Advance)})
		case models.SettlementCommission:
			rows = append(rows, totalRow{Label: LabelCommission, Amount: FormatCurrency(t.Commission)})
		}
		if net.NetPayable != nil {
			rows = append(rows, totalRow{Label: LabelNetPayable, Amount: FormatCurrency(*net.NetPayable), Strong: true})
		}
		return rows
	}

	rows := []totalRow{{Label: LabelSales, Amount: FormatCurrency(t.Sales)}}
	if !t.PackCost.IsZero() {
		rows = append(rows, totalRow{Label: LabelPackCost, Amount: FormatCurrency(t.PackCost)})
	}
	rows = append(rows, totalRow{Label: LabelGrandTotal, Amount: FormatCurrency(t.GrandTotal), Strong: true})
	if mode.WithLoan && net.TotalWithLoan != nil {
		rows = append(rows,
			totalRow{Label: LabelPriorLoan, Amount: FormatCurrency(t.PriorLoan)},
			totalRow{Label: LabelTotalWithLoan, Amount: FormatCurrency(*net.TotalWithLoan), Strong: true},
		)
	}
	if net.Remaining != nil {
		rows = append(rows,
			totalRow{Label: LabelGiven, Amount: FormatCurrency(t.Given)},
			totalRow{Label: LabelRemaining, Amount: FormatCurrency(*net.Remaining), Strong: true},
		)
	}
	return rows
}
