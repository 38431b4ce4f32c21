package recipeimport

import (
	"errors"
	"net/http"
	"prodledger/config"
	"prodledger/database"
	"prodledger/model"
	"prodledger/render"

	"github.com/jmoiron/sqlx"
)

// maxWorkbookSize はアップロードを受け付けるレシピブックの上限サイズです。
const maxWorkbookSize = 32 << 20

// ImportHandler は {product_code, rm, carton_rm, pm, carton_pm} を受け取り取込みます。
func ImportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var doc model.RecipeDocument
		if !render.Decode(w, r, &doc) {
			return
		}
		if doc.ProductCode == "" {
			render.BadRequest(w, "product_code is required")
			return
		}
		res, err := Import(db, doc.ProductCode, doc)
		if err != nil {
			status := render.StatusFor(err)
			msg := "recipe import failed"
			if errors.Is(err, database.ErrNotFound) {
				msg = "product not found: " + doc.ProductCode
			}
			render.JSON(w, status, model.RecipeImportResult{Success: false, Message: msg})
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}

// ImportWorkbookHandler は multipart の "file" にあるレシピブックを全シート取込みます。
func ImportWorkbookHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxWorkbookSize)
		file, _, err := r.FormFile("file")
		if err != nil {
			render.BadRequest(w, "upload a workbook in the \"file\" field")
			return
		}
		defer file.Close()

		results, err := ImportWorkbook(db, file, config.GetConfig().RecipeSkipSheets)
		if err != nil {
			render.BadRequest(w, "could not read workbook: "+err.Error())
			return
		}
		render.JSON(w, http.StatusOK, results)
	}
}

// ExportHandler は製品のレシピを取込形式で返します。
func ExportHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		doc, err := DocumentForProduct(db, productID)
		if err != nil {
			render.Error(w, err, "failed to export recipe")
			return
		}
		render.JSON(w, http.StatusOK, doc)
	}
}
