// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\parsers\parser_utils.go
package parsers

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DecodeReader は指定エンコーディングの入力を UTF-8 に変換します。
// "auto" は BOM を見て UTF-8 / UTF-16 を判別し、BOM が無ければ UTF-8 とみなします。
func DecodeReader(r io.Reader, enc string) (io.Reader, error) {
	dec, err := decoderFor(enc)
	if err != nil {
		return nil, err
	}
	return transform.NewReader(r, dec), nil
}

// ValidateEncoding は設定値が DecodeReader で扱えるか確認します。
func ValidateEncoding(enc string) error {
	_, err := decoderFor(enc)
	return err
}

func decoderFor(enc string) (transform.Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(enc)) {
	case "", "auto", "utf-8", "utf8":
		return unicode.BOMOverride(unicode.UTF8.NewDecoder()), nil
	case "utf-16", "utf16":
		return unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder(), nil
	case "windows-1252", "cp1252", "latin1":
		return charmap.Windows1252.NewDecoder(), nil
	case "shift_jis", "sjis", "shift-jis":
		return japanese.ShiftJIS.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", enc)
	}
}

// getColIndex はヘッダー名から列インデックスを取得するヘルパーです。
// ヘッダー名は大文字小文字を区別しません。
func getColIndex(header []string, required []string) (map[string]int, error) {
	colIndex := make(map[string]int)
	for i, colName := range header {
		colIndex[strings.ToLower(strings.TrimSpace(colName))] = i
	}
	for _, req := range required {
		if _, ok := colIndex[req]; !ok {
			return nil, fmt.Errorf("required header not found: %s", req)
		}
	}
	return colIndex, nil
}

func cell(row []string, colIndex map[string]int, name string) string {
	i, ok := colIndex[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat は空や不正な値を 0 として扱います。
func parseFloat(s string) float64 {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
