package main

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/truckline/bdm-console/internal/export"
	"github.com/truckline/bdm-console/internal/forecast"
	"github.com/truckline/bdm-console/internal/refdata"
)

var (
	exportYear   int
	exportGroup  string
	exportBDM    string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a forecast summary workbook",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		pool, err := initPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		year := exportYear
		if year == 0 {
			year = time.Now().Year()
		}

		ref := refdata.NewPostgresStore(pool)
		dealerships, err := ref.ListDealerships(ctx)
		if err != nil {
			return err
		}

		sel := refdata.Selection{BDMID: exportBDM, DealerGroup: exportGroup}
		dealerIDs := refdata.ResolveDealerIDs(dealerships, sel)

		rows, err := forecast.NewPostgresStore(pool).ListActuals(ctx, year)
		if err != nil {
			return err
		}

		title := exportGroup
		if title == "" {
			title = "All dealerships"
		}
		sum := export.SummaryFromRows(title, year, rows, dealerIDs, cfg.Forecast.TileFields)

		out := exportOutput
		if out == "" {
			name := "forecast-" + strconv.Itoa(year)
			if exportGroup != "" {
				name += "-" + strings.ReplaceAll(strings.ToLower(exportGroup), " ", "-")
			}
			out = filepath.Join(cfg.Export.OutputDir, name+".xlsx")
		}

		f, err := os.Create(out) //nolint:gosec // path comes from config/flags
		if err != nil {
			return eris.Wrap(err, "export: create output file")
		}
		defer f.Close() //nolint:errcheck

		if err := export.WriteForecastWorkbook(f, sum); err != nil {
			return err
		}
		zap.L().Info("workbook written",
			zap.String("path", out),
			zap.Int("dealerships", len(dealerIDs)),
		)
		return nil
	},
}

func init() {
	exportCmd.Flags().IntVar(&exportYear, "year", 0, "actuals year (default current)")
	exportCmd.Flags().StringVar(&exportGroup, "group", "", "restrict to one dealer group")
	exportCmd.Flags().StringVar(&exportBDM, "bdm", "", "restrict to one BDM's dealerships")
	exportCmd.Flags().StringVar(&exportOutput, "output", "", "output path (default derived)")
	rootCmd.AddCommand(exportCmd)
}
