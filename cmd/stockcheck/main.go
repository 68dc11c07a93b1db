package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pipe-stock/internal/config"
	"pipe-stock/internal/fileio"
	"pipe-stock/internal/stock/catalog"
	"pipe-stock/internal/stock/model"
	"pipe-stock/internal/stock/service"
	"pipe-stock/internal/stock/table"
	"pipe-stock/internal/utils"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cmd := os.Args[1]
	switch cmd {
	case "resolve":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		q := fs.String("q", "", "query, e.g. \"40x40 1.6mm\"")
		qty := fs.Int("qty", 0, "requested pieces (0 = take from query)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*q) == "" {
			must(fmt.Errorf("--q is required"))
		}
		snap, err := catalog.NewLoader(cfg).Load(context.Background())
		must(err)
		res, err := snap.Engine.Resolve(*q, *qty)
		printJSON(res)
		if err != nil {
			fmt.Fprintf(os.Stderr, "outcome: %v\n", err)
			os.Exit(2)
		}
	case "table":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		q := fs.String("q", "", "category filter")
		thickness := fs.String("thickness", "", "exact thickness, mm")
		inStock := fs.Bool("in-stock", false, "only non-zero stock")
		out := fs.String("out", "", "output .xlsx or .csv (stdout JSON if empty)")
		_ = fs.Parse(os.Args[2:])
		snap, err := catalog.NewLoader(cfg).Load(context.Background())
		must(err)
		f := model.TableFilter{Query: *q, InStock: *inStock}
		if v, ok := utils.ParseNumber(*thickness); ok {
			f.Thickness = &v
		}
		rows := snap.Engine.Table(f)
		if *out == "" {
			printJSON(rows)
			return
		}
		must(saveSheet(*out, service.TableSheet(rows)))
		fmt.Printf("exported %d rows to %s\n", len(rows), *out)
	case "weight-sheet":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		in := fs.String("in", cfg.Datasets.Width.Path, "strip width table (.xlsx/.xls/.csv)")
		out := fs.String("out", "", "output .xlsx or .csv")
		headerRow := fs.Int("header-row", cfg.Datasets.Width.HeaderRow, "1-based header row (0 = detect)")
		_ = fs.Parse(os.Args[2:])
		if strings.TrimSpace(*in) == "" || strings.TrimSpace(*out) == "" {
			must(fmt.Errorf("--in and --out are required"))
		}
		rows, err := fileio.ReadFile(*in)
		must(err)
		layout := cfg.Datasets.Width.Layout
		layout.HeaderRow = *headerRow
		recs, err := table.Reshape(rows, layout)
		must(err)
		k := cfg.EngineOptions().MassFactor
		lines := service.WeightSheet(table.GroupReference(recs, model.KindWidth), k)
		must(saveSheet(*out, service.WeightSheetTable(lines)))
		fmt.Printf("weight sheet: %d rows to %s\n", len(lines), *out)
	case "datasets":
		snap, err := catalog.NewLoader(cfg).Load(context.Background())
		must(err)
		printJSON(snap.Info)
	default:
		usage()
		os.Exit(1)
	}
}

func saveSheet(path string, s fileio.Sheet) error {
	if strings.ToLower(filepath.Ext(path)) != ".csv" {
		return fileio.SaveXLSX(path, s)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := fileio.WriteCSV(f, s); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	must(enc.Encode(v))
}

func usage() {
	fmt.Println("usage: stockcheck <command>")
	fmt.Println("commands:")
	fmt.Println("  resolve --q=\"40x40 1.6mm\" [--qty=500]")
	fmt.Println("  table [--q=40x40] [--thickness=1.6] [--in-stock] [--out=./out/stock.xlsx]")
	fmt.Println("  weight-sheet --in=./data/strip_width.xlsx --out=./out/weights.xlsx")
	fmt.Println("  datasets")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
