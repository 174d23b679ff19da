package main

import (
	"fmt"
	"io"
	"strings"

	"poasmaster/pkg/core/settings"
)

type labels struct {
	margin, beROAS, beCPA, targetROAS, targetCPA, maxCPC          string
	spend, revenue, profit, status, viable, notViable, bep, curve string
	noAdvice                                                      string
}

var reportLabels = map[settings.LanguageCode]labels{
	settings.Spanish: {
		margin: "Margen de contribución", beROAS: "ROAS de equilibrio", beCPA: "CPA de equilibrio",
		targetROAS: "ROAS objetivo", targetCPA: "CPA objetivo", maxCPC: "CPC máximo",
		spend: "Inversión diaria", revenue: "Facturación diaria", profit: "Beneficio neto diario",
		status: "Estado", viable: "viable", notViable: "no viable: el objetivo supera el margen",
		bep: "Punto de equilibrio", curve: "Curva de equilibrio",
		noAdvice: "Sin consejo: el escenario no es viable.",
	},
	settings.English: {
		margin: "Contribution margin", beROAS: "Break-even ROAS", beCPA: "Break-even CPA",
		targetROAS: "Target ROAS", targetCPA: "Target CPA", maxCPC: "Max CPC",
		spend: "Daily ad spend", revenue: "Daily revenue", profit: "Daily net profit",
		status: "Status", viable: "viable", notViable: "not viable: target profit exceeds the margin",
		bep: "Break-even point", curve: "Break-even curve",
		noAdvice: "No advice: the scenario is not viable.",
	},
}

func labelsFor(lang settings.LanguageCode) labels {
	if l, ok := reportLabels[lang]; ok {
		return l
	}
	return reportLabels[settings.English]
}

func printReport(w io.Writer, r report, adviceRequested bool) {
	lang := r.Settings.Language
	cur := r.Settings.CurrencyInfo()
	l := labelsFor(lang)
	money := func(v float64) string { return settings.FormatCurrency(v, lang, cur) }
	ratio := func(v float64) string { return settings.FormatValue(v, lang) + "x" }
	row := func(label, value string) { fmt.Fprintf(w, "%-24s %s\n", label, value) }

	res := r.Result
	row(l.margin, money(res.ContributionMargin))
	row(l.beROAS, ratio(res.BreakEvenROAS))
	row(l.beCPA, money(res.BreakEvenCPA))
	row(l.targetROAS, ratio(res.TargetROAS))
	row(l.targetCPA, money(res.TargetCPA))
	row(l.maxCPC, money(res.TargetCPC))
	row(l.spend, money(res.DailySpend))
	row(l.revenue, money(res.DailyRevenue))
	row(l.profit, money(res.DailyProfit))
	if res.IsViable {
		row(l.status, l.viable)
	} else {
		row(l.status, l.notViable)
	}

	if c := r.Curve; c != nil {
		fmt.Fprintf(w, "\n%s: %d (%s)\n", l.bep, c.BEPUnitsRounded(), money(c.BEPRevenue))
		fmt.Fprintf(w, "%s\n", l.curve)
		fmt.Fprintf(w, "%10s %14s %14s %14s %14s\n", "units", "income", "cost", "profit", "loss")
		for _, p := range c.Points {
			fmt.Fprintf(w, "%10s %14s %14s %14s %14s\n",
				settings.FormatValue(p.Units, lang), money(p.Income), money(p.Cost), money(p.Profit), money(p.Loss))
		}
	}

	switch {
	case r.Advice != nil:
		fmt.Fprintf(w, "\n%s\n", strings.TrimSpace(r.Advice.Raw))
	case adviceRequested && !res.IsViable:
		fmt.Fprintf(w, "\n%s\n", l.noAdvice)
	}
}
