package cmd

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/christianolin/cellar-critiques-sub000/configs"
	"github.com/christianolin/cellar-critiques-sub000/pkg/model"
	"github.com/christianolin/cellar-critiques-sub000/pkg/repository"
)

// ImportCmd loads location and grape master data from CSV files. Rows are
// upserted by name, so re-running an import is safe.
type ImportCmd struct {
	ConfigFile string `default:".CellarCritiques.toml" help:"Path to config file" short:"c"`
	Taxonomy   string `help:"CSV file with country,region,appellation rows"    type:"existingfile"`
	Grapes     string `help:"CSV file with name,type grape variety rows"       type:"existingfile"`
}

var ErrBadImportRow = errors.New("bad import row")

func (i *ImportCmd) Run(_ *Context) error {
	logConfig := zap.NewDevelopmentConfig()
	logConfig.DisableStacktrace = true

	logger, _ := logConfig.Build()
	defer logger.Sync() //nolint:errcheck // we don't care about logger sync errors

	if i.Taxonomy == "" && i.Grapes == "" {
		return fmt.Errorf("%w: nothing to import, pass --taxonomy and/or --grapes", ErrBadImportRow)
	}

	conf, err := configs.GetConfig(i.ConfigFile, logger)
	if err != nil {
		logger.Error("error loading config", zap.Error(err))

		return err
	}

	repo, err := repository.Open(conf, logger)
	if err != nil {
		logger.Fatal("error connecting to database")
	}
	defer repo.Close()

	ctx := context.Background()

	if i.Taxonomy != "" {
		if err = i.importTaxonomy(ctx, repo, logger); err != nil {
			return err
		}
	}

	if i.Grapes != "" {
		if err = i.importGrapes(ctx, repo, logger); err != nil {
			return err
		}
	}

	return nil
}

// importTaxonomy reads country,region,appellation rows. Region and
// appellation columns may be empty to import a bare country or region.
func (i *ImportCmd) importTaxonomy(ctx context.Context, repo *repository.Repository, logger *zap.Logger) error {
	rows, err := readCSV(i.Taxonomy)
	if err != nil {
		return err
	}

	imported := 0

	for _, row := range rows {
		if len(row) < 1 || row[0] == "" {
			return fmt.Errorf("%w: missing country in %v", ErrBadImportRow, row)
		}

		country, err := repo.AddCountry(ctx, row[0])
		if err != nil {
			return err
		}

		if len(row) < 2 || row[1] == "" {
			imported++

			continue
		}

		region, err := repo.AddRegion(ctx, row[1], country.ID)
		if err != nil {
			return err
		}

		if len(row) >= 3 && row[2] != "" {
			if _, err = repo.AddAppellation(ctx, row[2], region.ID); err != nil {
				return err
			}
		}

		imported++
	}

	logger.Info("imported taxonomy rows", zap.String("file", i.Taxonomy), zap.Int("rows", imported))

	return nil
}

func (i *ImportCmd) importGrapes(ctx context.Context, repo *repository.Repository, logger *zap.Logger) error {
	rows, err := readCSV(i.Grapes)
	if err != nil {
		return err
	}

	for _, row := range rows {
		if len(row) < 2 || row[0] == "" {
			return fmt.Errorf("%w: grape rows need name,type in %v", ErrBadImportRow, row)
		}

		grapeType := model.GrapeType(strings.ToLower(row[1]))
		if grapeType != model.GrapeTypeRed && grapeType != model.GrapeTypeWhite {
			return fmt.Errorf("%w: grape type must be red or white, got %q", ErrBadImportRow, row[1])
		}

		if _, err = repo.AddGrapeVariety(ctx, row[0], grapeType); err != nil {
			return err
		}
	}

	logger.Info("imported grape varieties", zap.String("file", i.Grapes), zap.Int("rows", len(rows)))

	return nil
}

func readCSV(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	var rows [][]string

	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			return nil, err
		}

		rows = append(rows, row)
	}

	return rows, nil
}
