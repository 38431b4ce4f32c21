// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\routes.go
package main

import (
	"net/http"
	"prodledger/aggregation"
	"prodledger/backup"
	"prodledger/loader"
	"prodledger/manpower"
	"prodledger/masteredit"
	"prodledger/pricing"
	"prodledger/product"
	"prodledger/production"
	"prodledger/recipe"
	"prodledger/recipeimport"
	"prodledger/target"
	"prodledger/valuation"

	"github.com/jmoiron/sqlx"
)

// SetupRoutes は API を mux に登録します。
// バックアップ・リストア以外はすべて backups.Guard の共有ロック内で処理されます。
func SetupRoutes(mux *http.ServeMux, dbConn *sqlx.DB, backups *backup.Manager) {
	api := http.NewServeMux()

	// 部門
	api.HandleFunc("GET /api/sections", ListSectionsHandler(dbConn))
	api.HandleFunc("POST /api/sections", CreateSectionHandler(dbConn))
	api.HandleFunc("PUT /api/sections/{id}", UpdateSectionHandler(dbConn))
	api.HandleFunc("DELETE /api/sections/{id}", DeleteSectionHandler(dbConn))

	// 製品・製品属性
	api.HandleFunc("GET /api/products", product.ListProductsHandler(dbConn))
	api.HandleFunc("GET /api/products/exists", product.ProductExistsHandler(dbConn))
	api.HandleFunc("POST /api/products", product.CreateProductHandler(dbConn))
	api.HandleFunc("GET /api/products/{id}", product.GetProductHandler(dbConn))
	api.HandleFunc("PUT /api/products/{id}", product.UpdateProductHandler(dbConn))
	api.HandleFunc("DELETE /api/products/{id}", product.DeleteProductHandler(dbConn))
	api.HandleFunc("GET /api/products/{id}/info", product.ListProductInfoHandler(dbConn))
	api.HandleFunc("POST /api/products/{id}/info", product.AddProductInfoHandler(dbConn))
	api.HandleFunc("PUT /api/product-info/{infoId}", product.UpdateProductInfoHandler(dbConn))
	api.HandleFunc("DELETE /api/product-info/{infoId}", product.DeleteProductInfoHandler(dbConn))

	// 資材
	api.HandleFunc("GET /api/materials", masteredit.ListMaterialsHandler(dbConn))
	api.HandleFunc("GET /api/materials/grouped", masteredit.GroupedMaterialsHandler(dbConn))
	api.HandleFunc("GET /api/materials/search", masteredit.SearchMaterialsHandler(dbConn))
	api.HandleFunc("GET /api/materials/by-ids", masteredit.MaterialsByIDsHandler(dbConn))
	api.HandleFunc("POST /api/materials", masteredit.CreateMaterialHandler(dbConn))
	api.HandleFunc("PUT /api/materials/{id}", masteredit.UpdateMaterialHandler(dbConn))
	api.HandleFunc("DELETE /api/materials/{id}", masteredit.DeleteMaterialHandler(dbConn))

	// レシピ
	api.HandleFunc("GET /api/products/{id}/recipes", recipe.ListByProductHandler(dbConn))
	api.HandleFunc("GET /api/products/{id}/recipes/summary", recipe.SummaryHandler(dbConn))
	api.HandleFunc("GET /api/products/{id}/recipes/check", recipe.CheckMaterialHandler(dbConn))
	api.HandleFunc("PUT /api/products/{id}/recipes", recipe.ReplaceHandler(dbConn))
	api.HandleFunc("DELETE /api/products/{id}/recipes", recipe.DeleteByKeyHandler(dbConn))
	api.HandleFunc("GET /api/products/{id}/recipes/export", recipeimport.ExportHandler(dbConn))
	api.HandleFunc("GET /api/products/{id}/cost", valuation.GetRecipeCostHandler(dbConn))
	api.HandleFunc("POST /api/recipes", recipe.AddHandler(dbConn))
	api.HandleFunc("PUT /api/recipes", recipe.UpsertHandler(dbConn))
	api.HandleFunc("POST /api/recipes/bulk", recipe.BulkInsertHandler(dbConn))
	api.HandleFunc("PUT /api/recipes/{id}", recipe.UpdateHandler(dbConn))
	api.HandleFunc("DELETE /api/recipes/{id}", recipe.DeleteHandler(dbConn))
	api.HandleFunc("POST /api/recipes/import", recipeimport.ImportHandler(dbConn))
	api.HandleFunc("POST /api/recipes/import/xlsx", recipeimport.ImportWorkbookHandler(dbConn))

	// 月次価格・目標
	api.HandleFunc("GET /api/products/{id}/price", pricing.GetMonthlyPriceHandler(dbConn))
	api.HandleFunc("PUT /api/products/{id}/price", pricing.SetMonthlyPriceHandler(dbConn))
	api.HandleFunc("GET /api/products/{id}/summary", target.GetSummaryHandler(dbConn))
	api.HandleFunc("PUT /api/products/{id}/summary", target.UpdateSummaryHandler(dbConn))

	// 日報・人員
	api.HandleFunc("GET /api/production", production.GetDailyProductionHandler(dbConn))
	api.HandleFunc("PUT /api/production", production.SetDailyProductionHandler(dbConn))
	api.HandleFunc("GET /api/manpower/sections", manpower.GetSectionManpowerHandler(dbConn))
	api.HandleFunc("PUT /api/manpower/sections", manpower.SetSectionManpowerHandler(dbConn))
	api.HandleFunc("GET /api/manpower/total", manpower.GetDailyTotalManpowerHandler(dbConn))
	api.HandleFunc("PUT /api/manpower/total", manpower.SetDailyTotalManpowerHandler(dbConn))

	// レポート
	api.HandleFunc("GET /api/reports/monthly", aggregation.MonthlyProductionHandler(dbConn))
	api.HandleFunc("GET /api/reports/monthly/export", aggregation.ExportMonthlyHandler(dbConn))
	api.HandleFunc("GET /api/reports/yearly", aggregation.YearlyProductionHandler(dbConn))
	api.HandleFunc("GET /api/reports/manpower/yearly", aggregation.YearlyManpowerHandler(dbConn))
	api.HandleFunc("GET /api/reports/manpower/sections", aggregation.SectionManpowerDetailsHandler(dbConn))

	// 設定・マスター再読込
	api.HandleFunc("GET /api/config", GetConfigHandler())
	api.HandleFunc("POST /api/config", SaveConfigHandler())
	api.HandleFunc("POST /api/seed/reload", loader.ReloadSeedHandler(dbConn))

	mux.Handle("/api/", backups.Guard(api))
	mux.HandleFunc("POST /api/backup", backups.BackupHandler())
	mux.HandleFunc("POST /api/restore", backups.RestoreHandler())
}
