package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/truckline/bdm-console/internal/model"
	"github.com/truckline/bdm-console/internal/refdata"
)

// seedFile is the YAML layout accepted by the seed command.
type seedFile struct {
	Frameworks  []model.QualificationFramework `yaml:"frameworks"`
	BDMs        []model.BDM                    `yaml:"bdms"`
	Dealerships []model.Dealership             `yaml:"dealerships"`
}

var seedCmd = &cobra.Command{
	Use:   "seed <file.yaml>",
	Short: "Load frameworks and reference data from a YAML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		data, err := os.ReadFile(args[0])
		if err != nil {
			return eris.Wrap(err, "seed: read file")
		}
		var sf seedFile
		if err := yaml.Unmarshal(data, &sf); err != nil {
			return eris.Wrap(err, "seed: parse yaml")
		}

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		if err := st.Migrate(ctx); err != nil {
			return err
		}

		for i := range sf.Frameworks {
			if err := st.UpsertFramework(ctx, &sf.Frameworks[i]); err != nil {
				return err
			}
		}
		zap.L().Info("frameworks seeded", zap.Int("count", len(sf.Frameworks)))

		if len(sf.BDMs) == 0 && len(sf.Dealerships) == 0 {
			return nil
		}

		// Reference data lives in Postgres only.
		pool, err := initPool(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		ref := refdata.NewPostgresStore(pool)
		for _, b := range sf.BDMs {
			if err := ref.UpsertBDM(ctx, b); err != nil {
				return err
			}
		}
		for _, d := range sf.Dealerships {
			if err := ref.UpsertDealership(ctx, d); err != nil {
				return err
			}
		}
		zap.L().Info("reference data seeded",
			zap.Int("bdms", len(sf.BDMs)),
			zap.Int("dealerships", len(sf.Dealerships)),
		)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)
}
