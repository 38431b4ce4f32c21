// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\loader\handler.go
package loader

import (
	"net/http"
	"prodledger/config"
	"prodledger/render"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// ReloadSeedHandler は seed_dir の products.csv / materials.csv を再読み込みします。
// 既存の製品コードは読み飛ばし、資材はコードで上書きします。
func ReloadSeedHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg := config.GetConfig()
		zap.S().Infof("HTTP request received: reloading seed catalog from %s", cfg.SeedDir)

		res, err := SeedCatalog(db, cfg.SeedDir, cfg.CSVEncoding, true)
		if err != nil {
			render.Error(w, err, "failed to reload seed catalog")
			return
		}
		render.JSON(w, http.StatusOK, res)
	}
}
