// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\config_handler.go
package main

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"prodledger/config"
	"prodledger/database"
	"prodledger/parsers"
	"prodledger/render"

	"go.uber.org/zap"
)

// GetConfigHandler は現在の設定を返します
func GetConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, http.StatusOK, config.GetConfig())
	}
}

// SaveConfigHandler は設定を保存します。database_path と listen_addr は再起動後に反映されます。
func SaveConfigHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var newCfg config.Config
		if !render.Decode(w, r, &newCfg) {
			return
		}

		if err := validateFolderPath(newCfg.SeedDir); err != nil {
			render.Error(w, err, "invalid seed directory")
			return
		}
		if err := validateFolderPath(newCfg.BackupDir); err != nil && !errors.Is(err, database.ErrNotFound) {
			render.Error(w, err, "invalid backup directory")
			return
		}
		if err := parsers.ValidateEncoding(newCfg.CSVEncoding); err != nil {
			render.Error(w, fmt.Errorf("%v: %w", err, database.ErrInvalidInput), "invalid csv encoding")
			return
		}

		if err := config.SaveConfig(newCfg); err != nil {
			zap.S().Errorf("Error saving config: %v", err)
			render.Message(w, http.StatusInternalServerError, "failed to save config")
			return
		}
		render.Message(w, http.StatusOK, "config saved")
	}
}

// フォルダパスを検証するヘルパー関数 (空は検証しない)
func validateFolderPath(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("folder %s: %w", path, database.ErrNotFound)
		}
		return fmt.Errorf("failed to check folder %s: %w", path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s is not a folder: %w", path, database.ErrInvalidInput)
	}
	return nil
}
