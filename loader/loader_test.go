package loader_test

import (
	"os"
	"path/filepath"
	"prodledger/database"
	"prodledger/loader"
	"prodledger/model"
	"prodledger/testutil"
	"testing"
)

const (
	productsCSV = "section,name,code,base_price,sku\n" +
		"Biscuit,Cream Biscuit,FG001,120,12x100g\n" +
		"Biscuit,Glucose,FG002,80,\n" +
		"Cake,Sponge,,200,\n"
	materialsCSV = "name,code,price,unit,type\n" +
		"Flour,RM001,45,KGS,RM\n" +
		"Carton,PM001,12,,PM\n" +
		"Salt,,8,kg,RM\n"
)

func writeSeed(t *testing.T, dir, products, materials string) {
	t.Helper()
	if products != "" {
		if err := os.WriteFile(filepath.Join(dir, "products.csv"), []byte(products), 0644); err != nil {
			t.Fatal(err)
		}
	}
	if materials != "" {
		if err := os.WriteFile(filepath.Join(dir, "materials.csv"), []byte(materials), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func materialByCode(t *testing.T, ms []model.Material, code string) model.Material {
	t.Helper()
	for _, m := range ms {
		if m.Code == code {
			return m
		}
	}
	t.Fatalf("material %s not found", code)
	return model.Material{}
}

func TestSeedCatalog(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()
	writeSeed(t, dir, productsCSV, materialsCSV)

	res, err := loader.SeedCatalog(db, dir, "auto", false)
	if err != nil {
		t.Fatalf("SeedCatalog: %v", err)
	}
	want := loader.SeedResult{Sections: 2, Products: 3, Materials: 3}
	if *res != want {
		t.Errorf("got %+v, want %+v", *res, want)
	}

	sections, err := database.GetAllSections(db)
	if err != nil {
		t.Fatal(err)
	}
	if len(sections) != 2 {
		t.Errorf("got %d sections, want 2", len(sections))
	}
	materials, err := database.GetAllMaterials(db)
	if err != nil {
		t.Fatal(err)
	}
	if flour := materialByCode(t, materials, "RM001"); flour.Unit != "kg" || flour.Price != 45 {
		t.Errorf("flour: %+v", flour)
	}
	if carton := materialByCode(t, materials, "PM001"); carton.Unit != "pcs" || carton.Type != model.MaterialTypePM {
		t.Errorf("carton: %+v", carton)
	}
}

func TestSeedCatalogSkipsWhenCatalogExists(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()
	writeSeed(t, dir, productsCSV, materialsCSV)
	testutil.SeedMaterial(t, db, "Sugar", "RM900", model.MaterialTypeRM, 60)

	res, err := loader.SeedCatalog(db, dir, "auto", false)
	if err != nil {
		t.Fatalf("SeedCatalog: %v", err)
	}
	if !res.Skipped {
		t.Errorf("got %+v, want skipped", *res)
	}
	products, materials, err := database.CountCatalog(db)
	if err != nil {
		t.Fatal(err)
	}
	if products != 0 || materials != 1 {
		t.Errorf("catalog: %d products, %d materials, want 0 and 1", products, materials)
	}
}

func TestSeedCatalogForceReload(t *testing.T) {
	db := testutil.NewDB(t)
	dir := t.TempDir()
	writeSeed(t, dir, productsCSV, materialsCSV)
	if _, err := loader.SeedCatalog(db, dir, "auto", false); err != nil {
		t.Fatalf("first seed: %v", err)
	}

	writeSeed(t, dir, productsCSV+"Biscuit,Marie,FG003,90,\n",
		"name,code,price,unit,type\nFlour (Maida),RM001,50,kg,RM\nCarton,PM001,12,,PM\nSalt,,8,kg,RM\n")
	res, err := loader.SeedCatalog(db, dir, "auto", true)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	want := loader.SeedResult{Products: 1, Materials: 2}
	if *res != want {
		t.Errorf("got %+v, want %+v", *res, want)
	}

	products, materials, err := database.CountCatalog(db)
	if err != nil {
		t.Fatal(err)
	}
	if products != 4 || materials != 3 {
		t.Errorf("catalog: %d products, %d materials, want 4 and 3", products, materials)
	}
	all, err := database.GetAllMaterials(db)
	if err != nil {
		t.Fatal(err)
	}
	if flour := materialByCode(t, all, "RM001"); flour.Name != "Flour (Maida)" || flour.Price != 50 {
		t.Errorf("flour after reload: %+v", flour)
	}
}

func TestSeedCatalogWithoutFiles(t *testing.T) {
	db := testutil.NewDB(t)
	res, err := loader.SeedCatalog(db, t.TempDir(), "auto", false)
	if err != nil {
		t.Fatalf("SeedCatalog: %v", err)
	}
	if !res.Skipped {
		t.Errorf("got %+v, want skipped", *res)
	}
}
