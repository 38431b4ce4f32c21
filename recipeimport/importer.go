// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\recipeimport\importer.go
package recipeimport

import (
	"fmt"
	"io"
	"prodledger/database"
	"prodledger/model"
	"prodledger/parsers"
	"strings"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// category は取込ドキュメントの4リストの1つと、その書き込み先 (用途, 資材区分) です。
type category struct {
	items        []model.RecipeImportItem
	purpose      string
	materialType string
	inserted     *int
	skipped      *int
}

// Import は製品コードで指定した製品のレシピを doc の内容で置き換えます。
// 全処理は1トランザクションで行い、製品が見つからなければ何も書き込みません。
// 資材コードが資材マスタに無い行と数量が負の行はスキップして件数だけ数えます。
func Import(db *sqlx.DB, productCode string, doc model.RecipeDocument) (*model.RecipeImportResult, error) {
	productCode = strings.TrimSpace(productCode)

	tx, err := db.Beginx()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	product, err := database.GetProductByCode(tx, productCode)
	if err != nil {
		return nil, err
	}

	codeMap, err := database.GetMaterialCodeMap(tx)
	if err != nil {
		return nil, err
	}

	if _, err := database.DeleteRecipesByProduct(tx, product.ID); err != nil {
		return nil, err
	}

	details := model.RecipeImportDetails{ProductID: product.ID, ProductCode: productCode}
	categories := []category{
		{doc.RM, model.PurposeBatch, model.MaterialTypeRM, &details.RMInserted, &details.RMSkipped},
		{doc.CartonRM, model.PurposeCarton, model.MaterialTypeRM, &details.CartonRMInserted, &details.CartonRMSkipped},
		{doc.PM, model.PurposeBatch, model.MaterialTypePM, &details.PMInserted, &details.PMSkipped},
		{doc.CartonPM, model.PurposeCarton, model.MaterialTypePM, &details.CartonPMInserted, &details.CartonPMSkipped},
	}

	for _, c := range categories {
		for _, item := range c.items {
			code := strings.TrimSpace(item.Code)
			materialID, ok := codeMap[code]
			if !ok {
				zap.S().Warnf("WARN: material code %q not found, skipping (%s %s, product %s)", code, c.purpose, c.materialType, productCode)
				*c.skipped++
				continue
			}
			if item.Qty < 0 {
				zap.S().Warnf("WARN: negative quantity %v for %q, skipping (%s %s, product %s)", float64(item.Qty), code, c.purpose, c.materialType, productCode)
				*c.skipped++
				continue
			}
			r := model.Recipe{
				ProductID:    product.ID,
				MaterialID:   materialID,
				Quantity:     float64(item.Qty),
				Purpose:      c.purpose,
				MaterialType: c.materialType,
			}
			if err := database.UpsertRecipe(tx, r); err != nil {
				return nil, err
			}
			*c.inserted++
		}
	}
	details.TotalInserted = details.RMInserted + details.CartonRMInserted + details.PMInserted + details.CartonPMInserted
	details.TotalSkipped = details.RMSkipped + details.CartonRMSkipped + details.PMSkipped + details.CartonPMSkipped

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit recipe import: %w", err)
	}

	zap.S().Infof("Imported recipe for %s: %d inserted, %d skipped", productCode, details.TotalInserted, details.TotalSkipped)
	return &model.RecipeImportResult{
		Success: true,
		Message: fmt.Sprintf("Recipe imported for %s", productCode),
		Details: details,
	}, nil
}

// ProductExists は製品コードが登録済みかを返します。
func ProductExists(db database.DBTX, productCode string) (bool, error) {
	return database.ProductExistsByCode(db, productCode)
}

// DocumentForProduct は現在のレシピを取込形式 (資材コード基準) に書き出します。
// コード未設定の資材は再取込できないため含めません。
func DocumentForProduct(db database.DBTX, productID int64) (*model.RecipeDocument, error) {
	product, err := database.GetProductByID(db, productID)
	if err != nil {
		return nil, err
	}
	rows, err := database.GetRecipesForImport(db, productID)
	if err != nil {
		return nil, err
	}

	doc := &model.RecipeDocument{
		ProductCode: product.Code,
		ProductName: product.Name,
		RM:          []model.RecipeImportItem{},
		CartonRM:    []model.RecipeImportItem{},
		PM:          []model.RecipeImportItem{},
		CartonPM:    []model.RecipeImportItem{},
	}
	for _, row := range rows {
		if row.MaterialCode == "" {
			continue
		}
		item := model.RecipeImportItem{Code: row.MaterialCode, Unit: row.MaterialUnit, Qty: model.Quantity(row.Quantity)}
		switch {
		case row.Purpose == model.PurposeBatch && row.MaterialType == model.MaterialTypeRM:
			doc.RM = append(doc.RM, item)
		case row.Purpose == model.PurposeCarton && row.MaterialType == model.MaterialTypeRM:
			doc.CartonRM = append(doc.CartonRM, item)
		case row.Purpose == model.PurposeBatch && row.MaterialType == model.MaterialTypePM:
			doc.PM = append(doc.PM, item)
		case row.Purpose == model.PurposeCarton && row.MaterialType == model.MaterialTypePM:
			doc.CartonPM = append(doc.CartonPM, item)
		}
	}
	return doc, nil
}

// WorkbookResult はレシピブック1シート分の取込結果です。
type WorkbookResult struct {
	ProductCode string                    `json:"product_code"`
	ProductName string                    `json:"product_name"`
	Success     bool                      `json:"success"`
	Message     string                    `json:"message"`
	Result      *model.RecipeImportResult `json:"result,omitempty"`
}

// ImportWorkbook はレシピブックを読み、シートごとに Import します。
// 1製品の失敗は他の製品の取込を止めません。
func ImportWorkbook(db *sqlx.DB, r io.Reader, skipSheets []string) ([]WorkbookResult, error) {
	docs, err := parsers.ParseRecipeWorkbook(r, skipSheets)
	if err != nil {
		return nil, err
	}
	results := make([]WorkbookResult, 0, len(docs))
	for _, doc := range docs {
		wr := WorkbookResult{ProductCode: doc.ProductCode, ProductName: doc.ProductName}
		res, err := Import(db, doc.ProductCode, doc)
		if err != nil {
			zap.S().Warnf("WARN: recipe import failed for %s (%s): %v", doc.ProductCode, doc.ProductName, err)
			wr.Message = err.Error()
		} else {
			wr.Success = true
			wr.Message = res.Message
			wr.Result = res
		}
		results = append(results, wr)
	}
	return results, nil
}
