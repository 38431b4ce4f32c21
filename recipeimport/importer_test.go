package recipeimport_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"prodledger/database"
	"prodledger/model"
	"prodledger/recipeimport"
	"prodledger/testutil"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/xuri/excelize/v2"
)

func seedCatalog(t *testing.T) (*sqlx.DB, int64) {
	t.Helper()
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Biscuit")
	pid := testutil.SeedProduct(t, db, sid, "Cream Biscuit", "FG001", 100)
	testutil.SeedMaterial(t, db, "Flour", "RM001", model.MaterialTypeRM, 45)
	testutil.SeedMaterial(t, db, "Sugar", "RM002", model.MaterialTypeRM, 30)
	testutil.SeedMaterial(t, db, "Carton", "PM001", model.MaterialTypePM, 12)
	testutil.SeedMaterial(t, db, "Wrapper", "PM002", model.MaterialTypePM, 2)
	return db, pid
}

func items(pairs ...interface{}) []model.RecipeImportItem {
	var out []model.RecipeImportItem
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, model.RecipeImportItem{Code: pairs[i].(string), Qty: model.Quantity(pairs[i+1].(float64))})
	}
	return out
}

func countRecipes(t *testing.T, db *sqlx.DB, pid int64) int {
	t.Helper()
	rows, err := database.GetRecipesByProduct(db, pid)
	if err != nil {
		t.Fatalf("GetRecipesByProduct: %v", err)
	}
	return len(rows)
}

func TestImportSkipsUnknownCodes(t *testing.T) {
	db, pid := seedCatalog(t)
	doc := model.RecipeDocument{
		RM:       items("RM001", 10.5, "RM002", 4.0, "RM999", 1.0),
		CartonRM: items("RM001", 0.25),
		PM:       items(),
		CartonPM: items("PM001", 1.0, "PM404", 3.0),
	}

	res, err := recipeimport.Import(db, "FG001", doc)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	d := res.Details
	if !res.Success || d.ProductID != pid {
		t.Errorf("result: %+v", res)
	}
	if d.RMInserted != 2 || d.RMSkipped != 1 {
		t.Errorf("rm: inserted %d skipped %d, want 2/1", d.RMInserted, d.RMSkipped)
	}
	if d.CartonRMInserted != 1 || d.CartonPMInserted != 1 || d.CartonPMSkipped != 1 {
		t.Errorf("carton lists: %+v", d)
	}
	if d.TotalInserted != 4 || d.TotalSkipped != 2 {
		t.Errorf("totals: inserted %d skipped %d, want 4/2", d.TotalInserted, d.TotalSkipped)
	}
	if n := countRecipes(t, db, pid); n != 4 {
		t.Errorf("stored rows: got %d, want 4", n)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	db, pid := seedCatalog(t)
	doc := model.RecipeDocument{
		RM: items("RM001", 10.0, "RM002", 4.0),
		PM: items("PM002", 8.0),
	}
	for i := 0; i < 2; i++ {
		if _, err := recipeimport.Import(db, "FG001", doc); err != nil {
			t.Fatalf("Import #%d: %v", i+1, err)
		}
	}
	if n := countRecipes(t, db, pid); n != 3 {
		t.Errorf("got %d rows after re-import, want 3", n)
	}
}

func TestImportReplacesPreviousRecipe(t *testing.T) {
	db, pid := seedCatalog(t)
	if _, err := recipeimport.Import(db, "FG001", model.RecipeDocument{RM: items("RM001", 1.0, "RM002", 1.0)}); err != nil {
		t.Fatalf("first Import: %v", err)
	}
	if _, err := recipeimport.Import(db, "FG001", model.RecipeDocument{PM: items("PM001", 2.0)}); err != nil {
		t.Fatalf("second Import: %v", err)
	}
	rows, err := database.GetRecipesByProduct(db, pid)
	if err != nil {
		t.Fatalf("GetRecipesByProduct: %v", err)
	}
	if len(rows) != 1 || rows[0].MaterialCode != "PM001" {
		t.Errorf("got %+v, want only PM001", rows)
	}
}

func TestImportUnknownProductWritesNothing(t *testing.T) {
	db, pid := seedCatalog(t)
	if _, err := recipeimport.Import(db, "FG001", model.RecipeDocument{RM: items("RM001", 1.0)}); err != nil {
		t.Fatalf("Import: %v", err)
	}

	_, err := recipeimport.Import(db, "NOPE", model.RecipeDocument{RM: items("RM002", 1.0)})
	if !errors.Is(err, database.ErrNotFound) {
		t.Fatalf("got %v, want ErrNotFound", err)
	}
	if n := countRecipes(t, db, pid); n != 1 {
		t.Errorf("existing recipe changed: got %d rows, want 1", n)
	}
}

func TestDocumentForProductRoundTrips(t *testing.T) {
	db, pid := seedCatalog(t)
	doc := model.RecipeDocument{
		RM:       items("RM001", 10.5),
		CartonRM: items("RM002", 0.125),
		PM:       items("PM002", 6.0),
		CartonPM: items("PM001", 1.0),
	}
	if _, err := recipeimport.Import(db, "FG001", doc); err != nil {
		t.Fatalf("Import: %v", err)
	}

	out, err := recipeimport.DocumentForProduct(db, pid)
	if err != nil {
		t.Fatalf("DocumentForProduct: %v", err)
	}
	if out.ProductCode != "FG001" {
		t.Errorf("product code: got %q", out.ProductCode)
	}
	check := func(name string, got []model.RecipeImportItem, code string, qty float64) {
		if len(got) != 1 || got[0].Code != code || float64(got[0].Qty) != qty {
			t.Errorf("%s: got %+v, want %s x %v", name, got, code, qty)
		}
	}
	check("rm", out.RM, "RM001", 10.5)
	check("carton_rm", out.CartonRM, "RM002", 0.125)
	check("pm", out.PM, "PM002", 6)
	check("carton_pm", out.CartonPM, "PM001", 1)

	// 書き出した内容を再取込しても行数は変わらない
	if _, err := recipeimport.Import(db, out.ProductCode, *out); err != nil {
		t.Fatalf("re-Import: %v", err)
	}
	if n := countRecipes(t, db, pid); n != 4 {
		t.Errorf("got %d rows after round trip, want 4", n)
	}
}

func TestImportWorkbook(t *testing.T) {
	db, pid := seedCatalog(t)

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", "Home")
	sheet := "Cream Biscuit"
	if _, err := f.NewSheet(sheet); err != nil {
		t.Fatalf("NewSheet: %v", err)
	}
	rows := [][]interface{}{
		{"FG001", 1, "Cream Biscuit", 2, 3, 4, 4},
		{"x", "RM001", "Flour", "kg", 10.123456, 0.1234567},
		{"x", "RM002", "Sugar", "kg", 4, 0.05},
		{"x", "PM001", "Carton", "pcs", "", 1},
	}
	for i, row := range rows {
		cellRef, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheet, cellRef, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write: %v", err)
	}

	results, err := recipeimport.ImportWorkbook(db, &buf, []string{"Home"})
	if err != nil {
		t.Fatalf("ImportWorkbook: %v", err)
	}
	if len(results) != 1 || !results[0].Success {
		t.Fatalf("results: %+v", results)
	}
	// RM 2行 × (batch, carton) + PM 1行 × (batch, carton)
	if n := countRecipes(t, db, pid); n != 6 {
		t.Errorf("got %d rows, want 6", n)
	}
}

func TestImportTreatsUnparsableQuantityAsZero(t *testing.T) {
	db, pid := seedCatalog(t)
	var doc model.RecipeDocument
	body := `{"rm":[{"id":"RM001","qty":"NaN"},{"id":"RM002","qty":"2"}],"carton_rm":[{"id":"RM001","qty":"abc"}],"pm":[],"carton_pm":[]}`
	if err := json.Unmarshal([]byte(body), &doc); err != nil {
		t.Fatalf("decode document: %v", err)
	}

	res, err := recipeimport.Import(db, "FG001", doc)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if res.Details.TotalInserted != 3 || res.Details.TotalSkipped != 0 {
		t.Errorf("totals: %+v", res.Details)
	}

	rows, err := database.GetRecipesByProduct(db, pid)
	if err != nil {
		t.Fatalf("GetRecipesByProduct: %v", err)
	}
	got := map[string]float64{}
	for _, r := range rows {
		got[r.MaterialCode+"/"+r.Purpose] = r.Quantity
	}
	want := map[string]float64{
		"RM001/" + model.PurposeBatch:  0,
		"RM002/" + model.PurposeBatch:  2,
		"RM001/" + model.PurposeCarton: 0,
	}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for k, v := range want {
		if q, ok := got[k]; !ok || q != v {
			t.Errorf("%s: got %v (present %v), want %v", k, q, ok, v)
		}
	}
}

func TestImportSkipsNegativeQuantity(t *testing.T) {
	db, pid := seedCatalog(t)
	doc := model.RecipeDocument{
		RM:       items("RM001", -1.0, "RM002", 2.0),
		CartonRM: items(),
		PM:       items("PM001", 1.0),
		CartonPM: items(),
	}

	res, err := recipeimport.Import(db, "FG001", doc)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	d := res.Details
	if d.RMInserted != 1 || d.RMSkipped != 1 || d.TotalInserted != 2 || d.TotalSkipped != 1 {
		t.Errorf("details: %+v", d)
	}
	if n := countRecipes(t, db, pid); n != 2 {
		t.Errorf("got %d recipe rows, want 2", n)
	}
}
