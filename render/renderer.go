// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\render\renderer.go
package render

import (
	"encoding/json"
	"errors"
	"net/http"
	"prodledger/database"
	"strconv"

	"go.uber.org/zap"
)

// JSON は値を JSON で書き出します。
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Errorf("failed to encode response: %v", err)
	}
}

// Message は {"message": ...} を返します。
func Message(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"message": message})
}

// StatusFor はエラーの種別を HTTP ステータスに対応付けます。
func StatusFor(err error) int {
	switch {
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, database.ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Error はエラーを種別に応じたステータスで返します。
// 500 の場合は内部エラーを記録し、利用者には msg だけを返します。
func Error(w http.ResponseWriter, err error, msg string) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		zap.S().Errorf("%s: %v", msg, err)
		Message(w, status, msg)
		return
	}
	Message(w, status, msg+": "+err.Error())
}

// BadRequest は入力不正を返します。
func BadRequest(w http.ResponseWriter, msg string) {
	Message(w, http.StatusBadRequest, msg)
}

// Decode はリクエストボディを v に読み込みます。失敗時は 400 を返して false です。
func Decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		BadRequest(w, "invalid request body")
		return false
	}
	return true
}

// PathID はパスパラメータを int64 として読みます。失敗時は 400 を返して false です。
func PathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		BadRequest(w, "invalid "+name)
		return 0, false
	}
	return id, true
}

// QueryInt はクエリパラメータを int として読みます。
func QueryInt(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil {
		BadRequest(w, "invalid "+name)
		return 0, false
	}
	return n, true
}
