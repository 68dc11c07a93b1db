package service

import (
	"fmt"
	"strings"

	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/utils"
)

const DefaultFuzzyThreshold = 0.83

// Engine: сверка запроса со справочниками и остатками.
// Таблицы передаются снаружи и после создания не меняются; Engine безопасен для параллельного чтения.
type Engine struct {
	tables model.Tables
	opt    model.Options

	weightIdx *Index
	widthIdx  *Index
	stockIdx  *Index
}

func NewEngine(t model.Tables, opt model.Options) *Engine {
	if opt.MassFactor <= 0 {
		opt.MassFactor = DefaultMassFactor
	}
	if opt.FuzzyThreshold <= 0 {
		opt.FuzzyThreshold = DefaultFuzzyThreshold
	}
	if opt.StockUnit == "" {
		opt.StockUnit = model.UnitTons
	}
	return &Engine{
		tables:    t,
		opt:       opt,
		weightIdx: NewIndex(referenceLabels(t.Weight), opt.EnableFuzzy, opt.FuzzyThreshold),
		widthIdx:  NewIndex(referenceLabels(t.Width), opt.EnableFuzzy, opt.FuzzyThreshold),
		stockIdx:  NewIndex(stockLabels(t.Stock), opt.EnableFuzzy, opt.FuzzyThreshold),
	}
}

func (e *Engine) Options() model.Options { return e.opt }

func (e *Engine) Tables() model.Tables { return e.tables }

// Resolve выполняет один поиск: разбор запроса → категория → толщина → масса → наличие.
// Ошибка: один из исходов (ErrCategoryNotFound и т.д.); Result заполнен настолько, насколько удалось.
// requestedQty <= 0: берем количество из текста запроса, если оно там есть.
func (e *Engine) Resolve(query string, requestedQty int) (model.Result, error) {
	q := ParseQuery(query)
	res := model.Result{Query: q, Requested: requestedQty}
	if requestedQty <= 0 {
		res.Requested = 0
		if q.Qty != nil {
			res.Requested = *q.Qty
		}
	}
	res.Verdict = model.NotAvailable

	if strings.TrimSpace(q.Category) == "" {
		return finish(res, ErrAmbiguousQuery)
	}

	hit, ok := e.stockIdx.Match(q.Category)
	if !ok {
		return finish(res, fmt.Errorf("%w: %q", ErrCategoryNotFound, q.Category))
	}
	stock := &e.tables.Stock[hit.Row]
	res.Stock = stock
	res.Category = stock.Category
	res.Method = hit.Method

	// справочник ищем по токену запроса, а если там этой записи нет, то по меткам найденной строки остатков
	refs := e.references(q.Category)
	if len(refs) == 0 {
		refs = e.referencesFor(stock.Labels)
	}
	if len(refs) > 0 {
		res.Reference = refs[0]
	}

	r, err := e.thickness(q, refs, stock)
	if err != nil {
		return finish(res, err)
	}
	if !r.Flat || q.Thickness != nil {
		res.Thickness = utils.FloatPtr(r.Thickness)
	}
	res.Provenance = r.Provenance

	mass, width, ref := e.mass(q, refs, r)
	res.Mass, res.StripWidth = mass, width
	if ref != nil {
		res.Reference = ref
	}
	if q.Mass != nil && *q.Mass > 0 && r.Provenance != model.ProvWeightMatch {
		res.Provenance = model.ProvDeclaredMass
	}

	qty, _ := stock.Lookup(r.Thickness)
	res.Availability = Evaluate(qty, e.opt.StockUnit, mass, res.Requested)

	if mass == nil && e.opt.StockUnit != model.UnitPieces {
		return finish(res, ErrMassUnavailable)
	}
	return finish(res, nil)
}

func finish(res model.Result, err error) (model.Result, error) {
	res.Outcome = Outcome(err)
	return res, err
}

// references ищет строки справочников для токена: сначала таблица масс, потом ширин.
func (e *Engine) references(token string) []*model.ReferenceRow {
	var out []*model.ReferenceRow
	if h, ok := e.weightIdx.Match(token); ok {
		out = append(out, &e.tables.Weight[h.Row])
	}
	if h, ok := e.widthIdx.Match(token); ok {
		out = append(out, &e.tables.Width[h.Row])
	}
	return out
}

// thickness: ось толщин берется из первого справочника, у которого она есть, иначе из остатков.
func (e *Engine) thickness(q model.ParsedQuery, refs []*model.ReferenceRow, stock *model.StockRow) (Resolution, error) {
	basis := stock.Series
	var basisRef *model.ReferenceRow
	for _, ref := range refs {
		if len(ref.Cells) > 0 {
			basis, basisRef = ref.Series, ref
			break
		}
	}

	if q.Thickness == nil && q.Mass != nil && basisRef != nil && basisRef.Kind == model.KindMass {
		if r, ok := MatchByWeight(basis, *q.Mass, e.opt.WeightTolerance); ok {
			return r, nil
		}
	}
	return ResolveThickness(basis, q.Thickness, !e.opt.ExactThickness)
}

// mass: заявленная масса побеждает; иначе табличная масса или K * ширина * толщина.
func (e *Engine) mass(q model.ParsedQuery, refs []*model.ReferenceRow, r Resolution) (mass, width *float64, used *model.ReferenceRow) {
	if q.Mass != nil && *q.Mass > 0 {
		return utils.FloatPtr(*q.Mass), nil, nil
	}
	for _, ref := range refs {
		v, ok := ref.Lookup(r.Thickness)
		if !ok || v <= 0 {
			continue
		}
		switch ref.Kind {
		case model.KindMass:
			return utils.FloatPtr(v), nil, ref
		case model.KindWidth:
			m, err := StripMass(e.opt.MassFactor, v, r.Thickness)
			if err != nil {
				continue
			}
			return utils.FloatPtr(m), utils.FloatPtr(v), ref
		}
	}
	return nil, nil, nil
}
