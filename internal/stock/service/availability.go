package service

import (
	"github.com/shopspring/decimal"

	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/utils"
)

var thousand = decimal.NewFromInt(1000)

// TonsToKg / KgToTons: фиксированная пара ×1000 / ÷1000 без потерь для десятичных входов.
func TonsToKg(t float64) float64 {
	return decimal.NewFromFloat(t).Mul(thousand).InexactFloat64()
}

func KgToTons(kg float64) float64 {
	return decimal.NewFromFloat(kg).Div(thousand).InexactFloat64()
}

// VerdictFor: три исхода, взаимоисключающие для неотрицательных входов.
// Нулевой остаток: всегда "нет в наличии", даже при запросе 0.
func VerdictFor(available float64, requested int, massKnown bool) model.Verdict {
	switch {
	case !massKnown || available <= 0:
		return model.NotAvailable
	case available >= float64(requested):
		return model.Available
	default:
		return model.Low
	}
}

// Evaluate переводит остаток в штуки и выносит вердикт.
// Масса нужна только для tons/kg; без нее (или при 0): "нет в наличии".
func Evaluate(stock float64, unit model.Unit, massKg *float64, requested int) model.Availability {
	if stock < 0 {
		stock = 0
	}
	if requested < 0 {
		requested = 0
	}
	a := model.Availability{StockRaw: stock}

	massKnown := massKg != nil && *massKg > 0
	var kg decimal.Decimal
	switch unit {
	case model.UnitPieces:
		a.Pieces = decimal.NewFromFloat(stock).Floor().InexactFloat64()
		if massKnown {
			a.StockKg = utils.FloatPtr(decimal.NewFromFloat(a.Pieces).Mul(decimal.NewFromFloat(*massKg)).InexactFloat64())
		}
		// штуки сравниваются напрямую, масса для вердикта не нужна
		massKnown = true
	case model.UnitKg:
		kg = decimal.NewFromFloat(stock)
	default:
		kg = decimal.NewFromFloat(stock).Mul(thousand)
	}
	if unit != model.UnitPieces {
		a.StockKg = utils.FloatPtr(kg.InexactFloat64())
		if massKnown {
			a.Pieces = kg.Div(decimal.NewFromFloat(*massKg)).Floor().InexactFloat64()
		}
	}

	a.Verdict = VerdictFor(a.Pieces, requested, massKnown)
	if a.Verdict == model.Available {
		a.Remaining = utils.FloatPtr(a.Pieces - float64(requested))
	}
	return a
}
