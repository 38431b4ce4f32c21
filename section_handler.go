// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\section_handler.go
package main

import (
	"net/http"
	"prodledger/database"
	"prodledger/render"

	"github.com/jmoiron/sqlx"
)

type sectionInput struct {
	Name string `json:"name"`
}

// ListSectionsHandler は部門一覧を返します
func ListSectionsHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sections, err := database.GetAllSections(db)
		if err != nil {
			render.Error(w, err, "failed to list sections")
			return
		}
		render.JSON(w, http.StatusOK, sections)
	}
}

// CreateSectionHandler は新しい部門を作成します
func CreateSectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input sectionInput
		if !render.Decode(w, r, &input) {
			return
		}
		id, err := database.CreateSection(db, input.Name)
		if err != nil {
			render.Error(w, err, "failed to create section")
			return
		}
		render.JSON(w, http.StatusCreated, map[string]interface{}{"id": id, "message": "section created"})
	}
}

func UpdateSectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		var input sectionInput
		if !render.Decode(w, r, &input) {
			return
		}
		if err := database.UpdateSection(db, id, input.Name); err != nil {
			render.Error(w, err, "failed to update section")
			return
		}
		render.Message(w, http.StatusOK, "section updated")
	}
}

// DeleteSectionHandler は部門を削除します (製品も削除されます)
func DeleteSectionHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := render.PathID(w, r, "id")
		if !ok {
			return
		}
		if err := database.DeleteSection(db, id); err != nil {
			render.Error(w, err, "failed to delete section")
			return
		}
		render.Message(w, http.StatusOK, "section deleted")
	}
}
