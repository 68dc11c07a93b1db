// Package catalog загружает справочники и файл остатков и держит актуальный Engine.
package catalog

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"pipe-stock/internal/config"
	"pipe-stock/internal/fileio"
	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/stock/service"
	"pipe-stock/internal/stock/table"
)

const (
	DatasetWeight = "weight"
	DatasetWidth  = "width"
	DatasetStock  = "stock"
)

// Dataset: что загружено из одного файла.
type Dataset struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	ModTime time.Time `json:"mod_time"`
	Records int       `json:"records"` // длинных записей после разворота
	Rows    int       `json:"rows"`    // строк (категорий) после группировки
}

type Info struct {
	Datasets  []Dataset  `json:"datasets"`
	LoadedAt  time.Time  `json:"loaded_at"`
	StockUnit model.Unit `json:"stock_unit"`
}

// Snapshot: Engine и то, из чего он собран. После создания не меняется.
type Snapshot struct {
	Engine *service.Engine
	Info   Info
}

// Loader читает датасеты из конфигурации.
type Loader struct {
	Datasets config.Datasets
	Options  model.Options
}

func NewLoader(cfg config.Config) Loader {
	return Loader{Datasets: cfg.Datasets, Options: cfg.EngineOptions()}
}

// Load читает все таблицы параллельно. Ошибка в любой, ошибка всей загрузки.
func (l Loader) Load(ctx context.Context) (*Snapshot, error) {
	var (
		tables                  model.Tables
		weightDS, widthDS, stDS Dataset
	)

	g, ctx := errgroup.WithContext(ctx)
	if l.Datasets.Weight.Path != "" {
		g.Go(func() error {
			recs, ds, err := readDataset(ctx, DatasetWeight, l.Datasets.Weight)
			if err != nil {
				return err
			}
			tables.Weight = table.GroupReference(recs, model.KindMass)
			ds.Rows = len(tables.Weight)
			weightDS = ds
			return nil
		})
	}
	if l.Datasets.Width.Path != "" {
		g.Go(func() error {
			recs, ds, err := readDataset(ctx, DatasetWidth, l.Datasets.Width)
			if err != nil {
				return err
			}
			tables.Width = table.GroupReference(recs, model.KindWidth)
			ds.Rows = len(tables.Width)
			widthDS = ds
			return nil
		})
	}
	g.Go(func() error {
		recs, ds, err := readDataset(ctx, DatasetStock, l.Datasets.Stock)
		if err != nil {
			return err
		}
		tables.Stock = table.GroupStock(recs)
		ds.Rows = len(tables.Stock)
		stDS = ds
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	info := Info{LoadedAt: time.Now(), StockUnit: l.Options.StockUnit}
	for _, ds := range []Dataset{weightDS, widthDS, stDS} {
		if ds.Name != "" {
			info.Datasets = append(info.Datasets, ds)
		}
	}
	eng := service.NewEngine(tables, l.Options)
	info.StockUnit = eng.Options().StockUnit
	return &Snapshot{Engine: eng, Info: info}, nil
}

// Fingerprint перечисляет пути и mtime файлов, которые загрузил бы Load сейчас.
func (l Loader) Fingerprint() (string, error) {
	var b strings.Builder
	for _, d := range []struct {
		name string
		ds   config.Dataset
	}{
		{DatasetWeight, l.Datasets.Weight},
		{DatasetWidth, l.Datasets.Width},
		{DatasetStock, l.Datasets.Stock},
	} {
		if d.ds.Path == "" {
			continue
		}
		fi, err := locate(d.ds.Path)
		if err != nil {
			return "", fmt.Errorf("%s: %w", d.name, err)
		}
		fmt.Fprintf(&b, "%s=%s@%d;", d.name, fi.Path, fi.ModTime.UnixNano())
	}
	return b.String(), nil
}

func fingerprintOf(info Info) string {
	var b strings.Builder
	for _, ds := range info.Datasets {
		fmt.Fprintf(&b, "%s=%s@%d;", ds.Name, ds.Path, ds.ModTime.UnixNano())
	}
	return b.String()
}

func readDataset(ctx context.Context, name string, d config.Dataset) ([]model.Record, Dataset, error) {
	if err := ctx.Err(); err != nil {
		return nil, Dataset{}, err
	}
	if d.Path == "" {
		return nil, Dataset{}, fmt.Errorf("%s: path is not configured", name)
	}
	fi, err := locate(d.Path)
	if err != nil {
		return nil, Dataset{}, fmt.Errorf("%s: %w", name, err)
	}
	rows, err := fileio.ReadFile(fi.Path)
	if err != nil {
		return nil, Dataset{}, fmt.Errorf("%s: %w", name, err)
	}
	recs, err := table.Reshape(rows, d.Layout)
	if err != nil {
		return nil, Dataset{}, fmt.Errorf("%s %s: %w", name, fi.Path, err)
	}
	return recs, Dataset{Name: name, Path: fi.Path, ModTime: fi.ModTime, Records: len(recs)}, nil
}

// locate берет путь как есть или самый свежий файл по glob-шаблону.
func locate(path string) (fileio.FileInfo, error) {
	if strings.ContainsAny(path, "*?[") {
		return fileio.LatestMatching(path)
	}
	return fileio.Stat(path)
}
