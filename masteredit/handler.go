// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\masteredit\handler.go
package masteredit

import (
	"net/http"
	"prodledger/database"
	"prodledger/model"
	"prodledger/render"
	"prodledger/units"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

// ListMaterialsHandler は資材一覧を返します。?type=RM|PM で区分を絞り込めます。
func ListMaterialsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materialType := strings.ToUpper(r.URL.Query().Get("type"))
		var (
			materials []model.Material
			err       error
		)
		if materialType == "" {
			materials, err = database.GetAllMaterials(db)
		} else {
			materials, err = database.GetMaterialsByType(db, materialType)
		}
		if err != nil {
			render.Error(w, err, "failed to list materials")
			return
		}
		render.JSON(w, http.StatusOK, materials)
	}
}

func GroupedMaterialsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		grouped, err := database.GetGroupedMaterials(db)
		if err != nil {
			render.Error(w, err, "failed to list materials")
			return
		}
		render.JSON(w, http.StatusOK, grouped)
	}
}

func SearchMaterialsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		materials, err := database.SearchMaterials(db, r.URL.Query().Get("q"))
		if err != nil {
			render.Error(w, err, "failed to search materials")
			return
		}
		render.JSON(w, http.StatusOK, materials)
	}
}

// MaterialsByIDsHandler は ?ids=1,2,3 の資材を ID をキーにしたマップで返します。
func MaterialsByIDsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var ids []int64
		for _, s := range strings.Split(r.URL.Query().Get("ids"), ",") {
			s = strings.TrimSpace(s)
			if s == "" {
				continue
			}
			id, err := strconv.ParseInt(s, 10, 64)
			if err != nil {
				render.BadRequest(w, "invalid ids")
				return
			}
			ids = append(ids, id)
		}
		materials, err := database.GetMaterialsByIDs(db, ids)
		if err != nil {
			render.Error(w, err, "failed to get materials")
			return
		}
		render.JSON(w, http.StatusOK, materials)
	}
}

func CreateMaterialHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in model.MaterialInput
		if !render.Decode(w, r, &in) {
			return
		}
		in.Unit = units.Normalize(in.Unit, in.Type)
		id, err := database.CreateMaterial(db, in)
		if err != nil {
			render.Error(w, err, "failed to create material")
			return
		}
		render.JSON(w, http.StatusCreated, map[string]interface{}{"id": id, "message": "material created"})
	}
}

func UpdateMaterialHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		var in model.MaterialInput
		if !render.Decode(w, r, &in) {
			return
		}
		in.Unit = units.Normalize(in.Unit, in.Type)
		if err := database.UpdateMaterial(db, id, in); err != nil {
			render.Error(w, err, "failed to update material")
			return
		}
		render.Message(w, http.StatusOK, "material updated")
	}
}

func DeleteMaterialHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		if err := database.DeleteMaterial(db, id); err != nil {
			render.Error(w, err, "failed to delete material")
			return
		}
		render.Message(w, http.StatusOK, "material deleted")
	}
}
