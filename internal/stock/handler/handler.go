// Package handler: HTTP-обработчики поиска по остаткам.
package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"pipe-stock/internal/fileio"
	"pipe-stock/internal/middleware"
	"pipe-stock/internal/stock/catalog"
	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/stock/service"
)

// Catalog: источник текущего движка (catalog.Store).
type Catalog interface {
	Engine() *service.Engine
	Info() catalog.Info
	Refresh(ctx context.Context) (catalog.Info, error)
}

type resolveRequest struct {
	Query string `json:"query"`
	Qty   int    `json:"qty"`
}

// POST /resolve, тело: JSON {"query","qty"} или form-поля query/q и qty.
func Resolve(cat Catalog, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log := requestLogger(logger, r)

		eng := cat.Engine()
		if eng == nil {
			writeError(w, http.StatusServiceUnavailable, catalog.ErrNotLoaded.Error())
			return
		}

		req, err := decodeResolve(r)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		res, err := eng.Resolve(req.Query, req.Qty)
		status := statusFor(err)
		if err != nil {
			log.Debug().Err(err).Str("query", req.Query).Msg("resolve outcome")
		}
		writeJSON(w, status, res)

		log.Info().
			Str("query", req.Query).
			Str("category", res.Category).
			Str("outcome", res.Outcome).
			Str("verdict", string(res.Verdict)).
			Dur("elapsed", time.Since(start)).
			Msg("resolve done")
	}
}

func decodeResolve(r *http.Request) (resolveRequest, error) {
	var req resolveRequest
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		defer r.Body.Close()
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			return req, fmt.Errorf("bad json: %w", err)
		}
		return req, nil
	}
	if err := r.ParseForm(); err != nil {
		return req, fmt.Errorf("bad form: %w", err)
	}
	req.Query = r.FormValue("query")
	if req.Query == "" {
		req.Query = r.FormValue("q")
	}
	req.Qty = atoi(r.FormValue("qty"), 0)
	return req, nil
}

// statusFor: категории нет → 404; толщины нет или запрос пустой → 422;
// масса неизвестна → 200 с outcome в теле.
func statusFor(err error) int {
	switch {
	case err == nil, errors.Is(err, service.ErrMassUnavailable):
		return http.StatusOK
	case errors.Is(err, service.ErrCategoryNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrThicknessNotFound), errors.Is(err, service.ErrAmbiguousQuery):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// GET /stock?q=&thickness=&in_stock=
func Stock(cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eng := cat.Engine()
		if eng == nil {
			writeError(w, http.StatusServiceUnavailable, catalog.ErrNotLoaded.Error())
			return
		}
		rows := eng.Table(tableFilter(r))
		if rows == nil {
			rows = []model.TableRow{}
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"unit":  eng.Options().StockUnit,
			"count": len(rows),
			"rows":  rows,
		})
	}
}

// GET /stock/export?format=xlsx|csv с теми же фильтрами, что /stock.
func Export(cat Catalog, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eng := cat.Engine()
		if eng == nil {
			writeError(w, http.StatusServiceUnavailable, catalog.ErrNotLoaded.Error())
			return
		}
		sheet := service.TableSheet(eng.Table(tableFilter(r)))
		writeSheet(w, r, requestLogger(logger, r), sheet, "stock")
	}
}

// GET /weight-sheet?format=xlsx|csv, массы из таблицы ширин штрипса.
func WeightSheet(cat Catalog, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eng := cat.Engine()
		if eng == nil {
			writeError(w, http.StatusServiceUnavailable, catalog.ErrNotLoaded.Error())
			return
		}
		lines := service.WeightSheet(eng.Tables().Width, eng.Options().MassFactor)
		writeSheet(w, r, requestLogger(logger, r), service.WeightSheetTable(lines), "weights")
	}
}

// POST /refresh перечитывает файлы сразу.
func Refresh(cat Catalog, logger zerolog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := cat.Refresh(r.Context())
		if err != nil {
			log := requestLogger(logger, r)
			log.Error().Err(err).Msg("refresh")
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func Datasets(cat Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info := cat.Info()
		if info.Datasets == nil {
			info.Datasets = []catalog.Dataset{}
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func tableFilter(r *http.Request) model.TableFilter {
	q := r.URL.Query()
	f := model.TableFilter{
		Query:   strings.TrimSpace(q.Get("q")),
		InStock: toBool(q.Get("in_stock"), false),
	}
	if v, ok := toFloat(q.Get("thickness")); ok {
		f.Thickness = &v
	}
	return f
}

func writeSheet(w http.ResponseWriter, r *http.Request, log zerolog.Logger, s fileio.Sheet, name string) {
	format := strings.ToLower(r.URL.Query().Get("format"))
	stamp := time.Now().Format("20060102")
	var err error
	switch format {
	case "", "xlsx":
		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s.xlsx"`, name, stamp))
		err = fileio.WriteXLSX(w, s)
	case "csv":
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s_%s.csv"`, name, stamp))
		err = fileio.WriteCSV(w, s)
	default:
		writeError(w, http.StatusBadRequest, "unsupported format: "+format)
		return
	}
	if err != nil {
		log.Error().Err(err).Str("format", format).Msg("write export")
	}
}

func requestLogger(logger zerolog.Logger, r *http.Request) zerolog.Logger {
	if rid := middleware.GetRequestID(r); rid != "" {
		return logger.With().Str("rid", rid).Logger()
	}
	return logger
}
