package model

type DailyTotalManpower struct {
	ID      int64  `db:"id" json:"id"`
	Date    string `db:"date" json:"date"`
	MPCount int64  `db:"mp_count" json:"mp_count"`
}

// DailySectionManpower の ID が nil の行は未登録日の補完行です。
type DailySectionManpower struct {
	ID        *int64 `db:"id" json:"id"`
	SectionID int64  `db:"s_id" json:"s_id"`
	Date      string `db:"date" json:"date"`
	MPCount   int64  `db:"mp_count" json:"mp_count"`
	Exists    bool   `db:"-" json:"exists"`
}

type SectionManpowerGrid struct {
	Section Section                `json:"section"`
	DailyMP []DailySectionManpower `json:"daily_mp"`
}
