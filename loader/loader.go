package loader

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"prodledger/config"
	"prodledger/database"
	"prodledger/model"
	"prodledger/parsers"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

const (
	productsFile  = "products.csv"
	materialsFile = "materials.csv"
)

// SeedResult は初期カタログ投入の件数です。
type SeedResult struct {
	Sections  int  `json:"sections"`
	Products  int  `json:"products"`
	Materials int  `json:"materials"`
	Skipped   bool `json:"skipped"`
}

// InitDatabase はデータベーススキーマを適用し、カタログが空なら seed_dir の CSV をロードします。
func InitDatabase(db *sqlx.DB, cfg config.Config) error {
	zap.S().Info("Applying database schema...")
	if err := database.ApplySchema(db); err != nil {
		return err
	}
	zap.S().Info("Schema applied successfully.")

	res, err := SeedCatalog(db, cfg.SeedDir, cfg.CSVEncoding, false)
	if err != nil {
		return err
	}
	if !res.Skipped {
		zap.S().Infof("Seed catalog loaded: %d sections, %d products, %d materials", res.Sections, res.Products, res.Materials)
	}
	return nil
}

// SeedCatalog は products.csv / materials.csv を読み込みます。
// force でなければ、製品か資材が1件でもある場合は何もしません。
// force の再読み込みではコードで突合できない行を読み飛ばします。
func SeedCatalog(db *sqlx.DB, dir, encoding string, force bool) (*SeedResult, error) {
	if !force {
		products, materials, err := database.CountCatalog(db)
		if err != nil {
			return nil, err
		}
		if products > 0 || materials > 0 {
			return &SeedResult{Skipped: true}, nil
		}
	}

	productRows, err := readSeed(filepath.Join(dir, productsFile), encoding, parsers.ParseProductsCSV)
	if err != nil {
		return nil, err
	}
	materialRows, err := readSeed(filepath.Join(dir, materialsFile), encoding, parsers.ParseMaterialsCSV)
	if err != nil {
		return nil, err
	}
	if productRows == nil && materialRows == nil {
		return &SeedResult{Skipped: true}, nil
	}

	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction for seed: %w", err)
	}
	defer tx.Rollback()

	res := &SeedResult{}
	sectionIDs, err := sectionMap(tx)
	if err != nil {
		return nil, err
	}
	for _, row := range productRows {
		sid, ok := sectionIDs[row.SectionName]
		if !ok {
			sid, err = database.CreateSection(tx, row.SectionName)
			if err != nil {
				return nil, err
			}
			sectionIDs[row.SectionName] = sid
			res.Sections++
		}
		if row.Code == "" && force {
			zap.S().Warnf("WARN: product %s has no code, skipping on reload", row.Name)
			continue
		}
		if row.Code != "" {
			exists, err := database.ProductExistsByCode(tx, row.Code)
			if err != nil {
				return nil, err
			}
			if exists {
				zap.S().Warnf("WARN: product code %s already present, skipping seed row", row.Code)
				continue
			}
		}
		if _, err := database.CreateProduct(tx, model.ProductInput{
			SectionID: sid,
			Name:      row.Name,
			Code:      row.Code,
			BasePrice: row.BasePrice,
			SKU:       row.SKU,
		}); err != nil {
			return nil, err
		}
		res.Products++
	}

	for _, m := range materialRows {
		if m.Code == "" && force {
			zap.S().Warnf("WARN: material %s has no code, skipping on reload", m.Name)
			continue
		}
		if m.Code != "" {
			if err := database.UpsertMaterialByCodeInTx(tx, m); err != nil {
				return nil, err
			}
		} else if _, err := database.CreateMaterial(tx, m); err != nil {
			return nil, err
		}
		res.Materials++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit seed: %w", err)
	}
	return res, nil
}

func sectionMap(tx *sqlx.Tx) (map[string]int64, error) {
	sections, err := database.GetAllSections(tx)
	if err != nil {
		return nil, err
	}
	m := make(map[string]int64, len(sections))
	for _, s := range sections {
		m[s.Name] = s.ID
	}
	return m, nil
}

// readSeed はファイルが無ければ nil を返します。
func readSeed[T any](path, encoding string, parse func(io.Reader) ([]T, error)) ([]T, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			zap.S().Warnf("WARN: %s not found, skipping.", path)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	r, err := parsers.DecodeReader(f, encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	rows, err := parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return rows, nil
}
