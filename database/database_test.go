package database_test

import (
	"errors"
	"prodledger/database"
	"prodledger/model"
	"prodledger/testutil"
	"testing"
)

func TestDeleteSectionCascades(t *testing.T) {
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Biscuit")
	pid := testutil.SeedProduct(t, db, sid, "Cream Biscuit", "FG001", 100)
	mid := testutil.SeedMaterial(t, db, "Flour", "RM001", model.MaterialTypeRM, 45)

	if err := database.UpsertRecipe(db, model.Recipe{ProductID: pid, MaterialID: mid, Quantity: 2, Purpose: model.PurposeBatch, MaterialType: model.MaterialTypeRM}); err != nil {
		t.Fatalf("UpsertRecipe: %v", err)
	}
	testutil.SeedProduction(t, db, pid, "2026-05-01", 1, 10)
	if err := database.UpsertSectionManpower(db, sid, "2026-05-01", 12); err != nil {
		t.Fatalf("UpsertSectionManpower: %v", err)
	}

	if err := database.DeleteSection(db, sid); err != nil {
		t.Fatalf("DeleteSection: %v", err)
	}

	assertRowCounts(t, db, map[string]int{
		"products":               0,
		"product_info":           0,
		"recipes":                0,
		"daily_production":       0,
		"daily_section_manpower": 0,
		"materials":              1,
	})
}

func assertRowCounts(t *testing.T, db database.DBTX, want map[string]int) {
	t.Helper()
	for table, n := range want {
		var got int
		if err := db.Get(&got, `SELECT COUNT(*) FROM `+table); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if got != n {
			t.Errorf("%s: got %d rows, want %d", table, got, n)
		}
	}
}

func TestDeleteProductCascades(t *testing.T) {
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Biscuit")
	pid := testutil.SeedProduct(t, db, sid, "Cream Biscuit", "FG001", 100)
	other := testutil.SeedProduct(t, db, sid, "Glucose", "FG002", 80)
	mid := testutil.SeedMaterial(t, db, "Flour", "RM001", model.MaterialTypeRM, 45)

	for _, p := range []int64{pid, other} {
		if _, err := database.AddProductInfo(db, p, "net weight", "g", 100); err != nil {
			t.Fatalf("AddProductInfo: %v", err)
		}
		if err := database.UpsertRecipe(db, model.Recipe{ProductID: p, MaterialID: mid, Quantity: 2, Purpose: model.PurposeBatch, MaterialType: model.MaterialTypeRM}); err != nil {
			t.Fatalf("UpsertRecipe: %v", err)
		}
		if err := database.UpsertMonthlyPrice(db, model.MonthlyPrice{ProductID: p, Year: 2026, Month: 5, Price: 150}); err != nil {
			t.Fatalf("UpsertMonthlyPrice: %v", err)
		}
		if err := database.EnsureMonthlySummary(db, p, 2026, 5); err != nil {
			t.Fatalf("EnsureMonthlySummary: %v", err)
		}
		testutil.SeedProduction(t, db, p, "2026-05-04", 2, 20)
	}

	if err := database.DeleteProduct(db, pid); err != nil {
		t.Fatalf("DeleteProduct: %v", err)
	}

	// 削除した製品の行だけが消え、もう一方の製品と資材は残る
	assertRowCounts(t, db, map[string]int{
		"products":                1,
		"product_info":            1,
		"recipes":                 1,
		"monthly_prices":          1,
		"monthly_product_summary": 1,
		"daily_production":        1,
		"materials":               1,
		"sections":                1,
	})
	for _, table := range []string{"product_info", "recipes", "monthly_prices", "monthly_product_summary", "daily_production"} {
		var n int
		if err := db.Get(&n, `SELECT COUNT(*) FROM `+table+` WHERE p_id = ?`, pid); err != nil {
			t.Fatalf("count %s: %v", table, err)
		}
		if n != 0 {
			t.Errorf("%s: %d rows left for the deleted product", table, n)
		}
	}
}

func TestDeleteMaterialCascadesToRecipes(t *testing.T) {
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Biscuit")
	pid := testutil.SeedProduct(t, db, sid, "Cream Biscuit", "FG001", 100)
	flour := testutil.SeedMaterial(t, db, "Flour", "RM001", model.MaterialTypeRM, 45)
	sugar := testutil.SeedMaterial(t, db, "Sugar", "RM002", model.MaterialTypeRM, 30)

	for _, r := range []model.Recipe{
		{ProductID: pid, MaterialID: flour, Quantity: 10, Purpose: model.PurposeBatch, MaterialType: model.MaterialTypeRM},
		{ProductID: pid, MaterialID: flour, Quantity: 0.5, Purpose: model.PurposeCarton, MaterialType: model.MaterialTypeRM},
		{ProductID: pid, MaterialID: sugar, Quantity: 4, Purpose: model.PurposeBatch, MaterialType: model.MaterialTypeRM},
	} {
		if err := database.UpsertRecipe(db, r); err != nil {
			t.Fatalf("UpsertRecipe: %v", err)
		}
	}

	if err := database.DeleteMaterial(db, flour); err != nil {
		t.Fatalf("DeleteMaterial: %v", err)
	}

	rows, err := database.GetRecipesByProduct(db, pid)
	if err != nil {
		t.Fatalf("GetRecipesByProduct: %v", err)
	}
	if len(rows) != 1 || rows[0].MaterialID != sugar {
		t.Errorf("recipes after delete: %+v", rows)
	}
	assertRowCounts(t, db, map[string]int{"products": 1, "materials": 1})
}

func TestDeleteMissingRowIsNotFound(t *testing.T) {
	db := testutil.NewDB(t)
	if err := database.DeleteProduct(db, 42); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("DeleteProduct: got %v, want ErrNotFound", err)
	}
	if _, err := database.GetSectionByID(db, 42); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("GetSectionByID: got %v, want ErrNotFound", err)
	}
}

func TestMaterialCodeUniqueness(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedMaterial(t, db, "Sugar", "RM002", model.MaterialTypeRM, 30)

	_, err := database.CreateMaterial(db, model.MaterialInput{Name: "Sugar again", Code: "RM002"})
	if !errors.Is(err, database.ErrDuplicate) {
		t.Fatalf("duplicate code: got %v, want ErrDuplicate", err)
	}

	// コード無しの資材は何件でも登録でき、"" として読み戻される
	a := testutil.SeedMaterial(t, db, "Water", "", model.MaterialTypeRM, 0)
	testutil.SeedMaterial(t, db, "Steam", "", model.MaterialTypeRM, 0)
	m, err := database.GetMaterialByID(db, a)
	if err != nil {
		t.Fatalf("GetMaterialByID: %v", err)
	}
	if m.Code != "" {
		t.Errorf("code: got %q, want empty", m.Code)
	}

	codes, err := database.GetMaterialCodeMap(db)
	if err != nil {
		t.Fatalf("GetMaterialCodeMap: %v", err)
	}
	if len(codes) != 1 {
		t.Errorf("code map: got %v, want only RM002", codes)
	}
}

func TestMaterialDefaults(t *testing.T) {
	db := testutil.NewDB(t)
	id, err := database.CreateMaterial(db, model.MaterialInput{Name: " Salt "})
	if err != nil {
		t.Fatalf("CreateMaterial: %v", err)
	}
	m, err := database.GetMaterialByID(db, id)
	if err != nil {
		t.Fatalf("GetMaterialByID: %v", err)
	}
	if m.Name != "Salt" || m.Unit != "kg" || m.Type != model.MaterialTypeRM {
		t.Errorf("got %+v, want trimmed name with kg/RM defaults", m)
	}

	if _, err := database.CreateMaterial(db, model.MaterialInput{Name: "Box", Type: "XX"}); !errors.Is(err, database.ErrInvalidInput) {
		t.Errorf("unknown type: got %v, want ErrInvalidInput", err)
	}
}

func TestGetMaterialsByIDs(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.SeedMaterial(t, db, "Flour", "RM001", model.MaterialTypeRM, 45)
	b := testutil.SeedMaterial(t, db, "Carton", "PM001", model.MaterialTypePM, 12)

	got, err := database.GetMaterialsByIDs(db, []int64{a, b, 999})
	if err != nil {
		t.Fatalf("GetMaterialsByIDs: %v", err)
	}
	if len(got) != 2 || got[b].Name != "Carton" {
		t.Errorf("got %+v", got)
	}

	empty, err := database.GetMaterialsByIDs(db, nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("empty ids: got %v, %v", empty, err)
	}
}

func TestProductInfoDuplicateName(t *testing.T) {
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Cake")
	pid := testutil.SeedProduct(t, db, sid, "Sponge", "FG010", 50)

	if _, err := database.AddProductInfo(db, pid, "net weight", "g", 250); err != nil {
		t.Fatalf("AddProductInfo: %v", err)
	}
	if _, err := database.AddProductInfo(db, pid, "net weight", "g", 300); !errors.Is(err, database.ErrDuplicate) {
		t.Errorf("duplicate info: got %v, want ErrDuplicate", err)
	}

	p, err := database.GetProductWithInfo(db, pid)
	if err != nil {
		t.Fatalf("GetProductWithInfo: %v", err)
	}
	if len(p.Infos) != 1 || p.Infos[0].Value != 250 {
		t.Errorf("infos: got %+v", p.Infos)
	}
}

func TestEffectivePriceFallsBackToBasePrice(t *testing.T) {
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Bread")
	pid := testutil.SeedProduct(t, db, sid, "Loaf", "FG020", 300)

	if err := database.UpsertMonthlyPrice(db, model.MonthlyPrice{ProductID: pid, Year: 2026, Month: 5, Price: 500}); err != nil {
		t.Fatalf("UpsertMonthlyPrice: %v", err)
	}

	tests := []struct {
		month int
		want  float64
	}{
		{5, 500},
		{6, 300},
	}
	for _, tt := range tests {
		got, err := database.GetEffectivePrice(db, pid, 2026, tt.month)
		if err != nil {
			t.Fatalf("GetEffectivePrice(%d): %v", tt.month, err)
		}
		if got != tt.want {
			t.Errorf("month %d: got %v, want %v", tt.month, got, tt.want)
		}
	}
}

func TestEnsureMonthlySummaryIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Bread")
	pid := testutil.SeedProduct(t, db, sid, "Loaf", "FG020", 300)

	for i := 0; i < 3; i++ {
		if err := database.EnsureMonthlySummary(db, pid, 2026, 1); err != nil {
			t.Fatalf("EnsureMonthlySummary: %v", err)
		}
	}
	n, err := database.CountMonthlySummaries(db, pid, 2026, 1)
	if err != nil {
		t.Fatalf("CountMonthlySummaries: %v", err)
	}
	if n != 1 {
		t.Errorf("got %d rows, want 1", n)
	}
}

func TestMonthBounds(t *testing.T) {
	tests := []struct {
		year, month int
		end         string
		days        int
	}{
		{2028, 2, "2028-02-29", 29},
		{2026, 2, "2026-02-28", 28},
		{2026, 12, "2026-12-31", 31},
		{2026, 4, "2026-04-30", 30},
	}
	for _, tt := range tests {
		start, end, days := database.MonthBounds(tt.year, tt.month)
		if start[8:] != "01" || end != tt.end || days != tt.days {
			t.Errorf("MonthBounds(%d, %d) = %s, %s, %d", tt.year, tt.month, start, end, days)
		}
	}
}

func TestParseDateRejectsGarbage(t *testing.T) {
	if _, _, err := database.ParseDate("2026-13-01"); !errors.Is(err, database.ErrInvalidInput) {
		t.Errorf("got %v, want ErrInvalidInput", err)
	}
	y, m, err := database.ParseDate("2028-02-29")
	if err != nil || y != 2028 || m != 2 {
		t.Errorf("got %d-%d, %v", y, m, err)
	}
}
