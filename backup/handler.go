package backup

import (
	"net/http"
	"prodledger/render"
)

type pathInput struct {
	Path string `json:"path"`
}

// BackupHandler はバックアップを作成します。path 省略時は backup_dir に作ります。
// Guard の外で登録してください (排他ロックを取るため)。
func (m *Manager) BackupHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in pathInput
		if r.ContentLength != 0 && !render.Decode(w, r, &in) {
			return
		}
		dest, err := m.Backup(in.Path)
		if err != nil {
			render.Error(w, err, "backup failed")
			return
		}
		render.JSON(w, http.StatusOK, map[string]string{"message": "backup created", "path": dest})
	}
}

func (m *Manager) RestoreHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in pathInput
		if !render.Decode(w, r, &in) {
			return
		}
		if in.Path == "" {
			render.BadRequest(w, "path is required")
			return
		}
		if err := m.Restore(in.Path); err != nil {
			render.Error(w, err, "restore failed")
			return
		}
		render.Message(w, http.StatusOK, "database restored")
	}
}
