package valuation_test

import (
	"errors"
	"prodledger/database"
	"prodledger/model"
	"prodledger/recipe"
	"prodledger/testutil"
	"prodledger/valuation"
	"testing"
)

func TestRecipeCost(t *testing.T) {
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Biscuit")
	pid := testutil.SeedProduct(t, db, sid, "Cream Biscuit", "FG001", 100)
	flour := testutil.SeedMaterial(t, db, "Flour", "RM001", model.MaterialTypeRM, 45.5)
	sugar := testutil.SeedMaterial(t, db, "Sugar", "RM002", model.MaterialTypeRM, 30)
	box := testutil.SeedMaterial(t, db, "Box", "PM001", model.MaterialTypePM, 12.25)

	for _, r := range []model.Recipe{
		{ProductID: pid, MaterialID: flour, Quantity: 10, Purpose: model.PurposeBatch},
		{ProductID: pid, MaterialID: sugar, Quantity: 2.5, Purpose: model.PurposeBatch},
		{ProductID: pid, MaterialID: box, Quantity: 1, Purpose: model.PurposeCarton},
	} {
		if err := recipe.Upsert(db, r); err != nil {
			t.Fatalf("Upsert: %v", err)
		}
	}

	cost, err := valuation.RecipeCost(db, pid)
	if err != nil {
		t.Fatalf("RecipeCost: %v", err)
	}
	if got := cost.Totals[model.PurposeBatch]; got != "530.0000" {
		t.Errorf("batch total: got %s, want 530.0000", got)
	}
	if got := cost.Totals[model.PurposeCarton]; got != "12.2500" {
		t.Errorf("carton total: got %s, want 12.2500", got)
	}
	if len(cost.Lines[model.PurposeBatch]) != 2 || len(cost.Lines[model.PurposeCarton]) != 1 {
		t.Errorf("lines: %+v", cost.Lines)
	}
}

func TestRecipeCostWithoutRecipe(t *testing.T) {
	db := testutil.NewDB(t)
	sid := testutil.SeedSection(t, db, "Biscuit")
	pid := testutil.SeedProduct(t, db, sid, "Cream Biscuit", "FG001", 100)

	cost, err := valuation.RecipeCost(db, pid)
	if err != nil {
		t.Fatalf("RecipeCost: %v", err)
	}
	if cost.Totals[model.PurposeBatch] != "0.0000" || cost.Totals[model.PurposeCarton] != "0.0000" {
		t.Errorf("totals: %+v", cost.Totals)
	}

	if _, err := valuation.RecipeCost(db, 999); !errors.Is(err, database.ErrNotFound) {
		t.Errorf("unknown product: got %v, want ErrNotFound", err)
	}
}
