package recipe

import (
	"errors"
	"net/http"
	"prodledger/database"
	"prodledger/model"
	"prodledger/render"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// ListByProductHandler は製品のレシピ行を返します。?purpose= で用途を絞り込めます。
func ListByProductHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		var (
			rows []model.RecipeView
			err  error
		)
		if purpose := r.URL.Query().Get("purpose"); purpose != "" {
			rows, err = database.GetRecipesByProductAndPurpose(db, productID, purpose)
		} else {
			rows, err = database.GetRecipesByProduct(db, productID)
		}
		if err != nil {
			render.Error(w, err, "failed to list recipes")
			return
		}
		render.JSON(w, http.StatusOK, rows)
	}
}

func SummaryHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		summary, err := database.SummarizeRecipes(db, productID)
		if err != nil {
			render.Error(w, err, "failed to summarize recipes")
			return
		}
		render.JSON(w, http.StatusOK, summary)
	}
}

// CheckMaterialHandler は ?m_id= の資材が製品レシピに含まれるかを返します。
func CheckMaterialHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		materialID, err := strconv.ParseInt(r.URL.Query().Get("m_id"), 10, 64)
		if err != nil {
			render.BadRequest(w, "invalid m_id")
			return
		}
		found, err := database.CheckMaterialInRecipe(db, productID, materialID)
		if err != nil {
			render.Error(w, err, "failed to check recipe")
			return
		}
		render.JSON(w, http.StatusOK, map[string]bool{"exists": found})
	}
}

// AddHandler は上書きしない追加です。重複は 409 で返します。
func AddHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.Recipe
		if !render.Decode(w, r, &in) {
			return
		}
		id, err := Add(db, in)
		if errors.Is(err, ErrMaterialAlreadyAdded) {
			render.Message(w, http.StatusConflict, ErrMaterialAlreadyAdded.Error())
			return
		}
		if err != nil {
			render.Error(w, err, "failed to add recipe")
			return
		}
		render.JSON(w, http.StatusCreated, map[string]interface{}{"id": id, "message": "recipe added"})
	}
}

func UpsertHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.Recipe
		if !render.Decode(w, r, &in) {
			return
		}
		if err := Upsert(db, in); err != nil {
			render.Error(w, err, "failed to save recipe")
			return
		}
		render.Message(w, http.StatusOK, "recipe saved")
	}
}

func BulkInsertHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in []model.Recipe
		if !render.Decode(w, r, &in) {
			return
		}
		n, err := BulkInsert(db, in)
		if err != nil {
			render.Error(w, err, "failed to insert recipes")
			return
		}
		render.JSON(w, http.StatusCreated, map[string]interface{}{"inserted": n, "message": "recipes added"})
	}
}

// ReplaceHandler は製品のレシピ全体を本文の行で置き換えます。1行でも不正なら何も変わりません。
func ReplaceHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		var in []model.Recipe
		if !render.Decode(w, r, &in) {
			return
		}
		if err := Replace(db, productID, in); err != nil {
			render.Error(w, err, "failed to replace recipes")
			return
		}
		render.JSON(w, http.StatusOK, map[string]interface{}{"replaced": len(in), "message": "recipes replaced"})
	}
}

func UpdateHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		var in struct {
			Quantity     float64 `json:"quantity"`
			Purpose      string  `json:"purpose"`
			MaterialType string  `json:"m_type"`
		}
		if !render.Decode(w, r, &in) {
			return
		}
		if err := database.UpdateRecipe(db, id, in.Quantity, in.Purpose, in.MaterialType); err != nil {
			render.Error(w, err, "failed to update recipe")
			return
		}
		render.Message(w, http.StatusOK, "recipe updated")
	}
}

func DeleteHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		if err := database.DeleteRecipe(db, id); err != nil {
			render.Error(w, err, "failed to delete recipe")
			return
		}
		render.Message(w, http.StatusOK, "recipe deleted")
	}
}

// DeleteByKeyHandler は ?m_id=&purpose= で指定した1行を削除します。
func DeleteByKeyHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		materialID, err := strconv.ParseInt(r.URL.Query().Get("m_id"), 10, 64)
		if err != nil {
			render.BadRequest(w, "invalid m_id")
			return
		}
		purpose := r.URL.Query().Get("purpose")
		if err := database.ValidatePurpose(purpose); err != nil {
			render.Error(w, err, "invalid purpose")
			return
		}
		if err := database.DeleteRecipeByKey(db, productID, materialID, purpose); err != nil {
			render.Error(w, err, "failed to delete recipe")
			return
		}
		render.Message(w, http.StatusOK, "recipe deleted")
	}
}
