// Package testutil はテスト用のインメモリDBとシードヘルパーを提供します。
package testutil

import (
	"prodledger/database"
	"prodledger/model"
	"testing"

	"github.com/jmoiron/sqlx"
)

// NewDB はスキーマ適用済みのインメモリDBを開き、テスト終了時に閉じます。
func NewDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.ApplySchema(db); err != nil {
		db.Close()
		t.Fatalf("failed to apply schema: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func SeedSection(t *testing.T, db database.DBTX, name string) int64 {
	t.Helper()
	id, err := database.CreateSection(db, name)
	if err != nil {
		t.Fatalf("failed to seed section %q: %v", name, err)
	}
	return id
}

func SeedProduct(t *testing.T, db database.DBTX, sectionID int64, name, code string, basePrice float64) int64 {
	t.Helper()
	id, err := database.CreateProduct(db, model.ProductInput{
		SectionID: sectionID,
		Name:      name,
		Code:      code,
		BasePrice: basePrice,
	})
	if err != nil {
		t.Fatalf("failed to seed product %q: %v", name, err)
	}
	return id
}

func SeedMaterial(t *testing.T, db database.DBTX, name, code, materialType string, price float64) int64 {
	t.Helper()
	id, err := database.CreateMaterial(db, model.MaterialInput{
		Name:  name,
		Code:  code,
		Type:  materialType,
		Price: price,
	})
	if err != nil {
		t.Fatalf("failed to seed material %q: %v", name, err)
	}
	return id
}

// SeedProduction は1日分の生産実績を登録します。
func SeedProduction(t *testing.T, db database.DBTX, productID int64, date string, batch, carton int64) {
	t.Helper()
	if _, err := database.UpsertDailyProduction(db, productID, date, batch, carton); err != nil {
		t.Fatalf("failed to seed production %d/%s: %v", productID, date, err)
	}
}
