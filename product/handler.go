// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\product\handler.go
package product

import (
	"net/http"
	"prodledger/database"
	"prodledger/model"
	"prodledger/render"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// ListProductsHandler は製品一覧を返します。?section_id= を指定すると部門内を ID 順で返します。
func ListProductsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			products []model.Product
			err      error
		)
		if s := r.URL.Query().Get("section_id"); s != "" {
			sectionID, convErr := strconv.ParseInt(s, 10, 64)
			if convErr != nil {
				render.BadRequest(w, "invalid section_id")
				return
			}
			products, err = database.GetProductsBySection(db, sectionID)
		} else {
			products, err = database.GetAllProducts(db)
		}
		if err != nil {
			render.Error(w, err, "failed to list products")
			return
		}
		render.JSON(w, http.StatusOK, products)
	}
}

// GetProductHandler は製品と属性をまとめて返します。
func GetProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		p, err := database.GetProductWithInfo(db, id)
		if err != nil {
			render.Error(w, err, "failed to get product")
			return
		}
		render.JSON(w, http.StatusOK, p)
	}
}

// ProductExistsHandler は ?code= の製品が存在するかを返します。
func ProductExistsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			render.BadRequest(w, "code is required")
			return
		}
		exists, err := database.ProductExistsByCode(db, code)
		if err != nil {
			render.Error(w, err, "failed to check product")
			return
		}
		render.JSON(w, http.StatusOK, map[string]bool{"exists": exists})
	}
}

func CreateProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.ProductInput
		if !render.Decode(w, r, &in) {
			return
		}
		id, err := database.CreateProduct(db, in)
		if err != nil {
			render.Error(w, err, "failed to create product")
			return
		}
		render.JSON(w, http.StatusCreated, map[string]interface{}{"id": id, "message": "product created"})
	}
}

func UpdateProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		var in model.ProductInput
		if !render.Decode(w, r, &in) {
			return
		}
		if err := database.UpdateProduct(db, id, in); err != nil {
			render.Error(w, err, "failed to update product")
			return
		}
		render.Message(w, http.StatusOK, "product updated")
	}
}

func DeleteProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		if err := database.DeleteProduct(db, id); err != nil {
			render.Error(w, err, "failed to delete product")
			return
		}
		render.Message(w, http.StatusOK, "product deleted")
	}
}

type infoInput struct {
	Name  string  `json:"name"`
	Unit  string  `json:"unit"`
	Value float64 `json:"value"`
}

func ListProductInfoHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		infos, err := database.GetProductInfoByProduct(db, id)
		if err != nil {
			render.Error(w, err, "failed to list product info")
			return
		}
		render.JSON(w, http.StatusOK, infos)
	}
}

func AddProductInfoHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		var in infoInput
		if !render.Decode(w, r, &in) {
			return
		}
		id, err := database.AddProductInfo(db, productID, in.Name, in.Unit, in.Value)
		if err != nil {
			render.Error(w, err, "failed to add product info")
			return
		}
		render.JSON(w, http.StatusCreated, map[string]interface{}{"id": id, "message": "product info added"})
	}
}

func UpdateProductInfoHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "infoId")
		if !ok {
			return
		}
		var in infoInput
		if !render.Decode(w, r, &in) {
			return
		}
		if err := database.UpdateProductInfo(db, id, in.Name, in.Unit, in.Value); err != nil {
			render.Error(w, err, "failed to update product info")
			return
		}
		render.Message(w, http.StatusOK, "product info updated")
	}
}

func DeleteProductInfoHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "infoId")
		if !ok {
			return
		}
		if err := database.DeleteProductInfo(db, id); err != nil {
			render.Error(w, err, "failed to delete product info")
			return
		}
		render.Message(w, http.StatusOK, "product info deleted")
	}
}
