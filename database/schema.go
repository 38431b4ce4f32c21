// C:\Users\wasab\OneDrive\デスクトップ\PRODLEDGER\database\schema.go
package database

// SchemaSQL は唯一のスキーマ定義です。テストもこの文字列から DB を作ります。
// 参照整合性はすべて ON DELETE CASCADE で統一しています。
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS sections (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	s_id       INTEGER NOT NULL,
	name       TEXT    NOT NULL DEFAULT '',
	code       TEXT    NOT NULL DEFAULT '',
	base_price REAL    NOT NULL DEFAULT 0.0,
	sku        TEXT    NOT NULL DEFAULT '',
	FOREIGN KEY (s_id) REFERENCES sections (id) ON DELETE CASCADE
);
CREATE INDEX IF NOT EXISTS idx_products_s_id ON products (s_id);
CREATE INDEX IF NOT EXISTS idx_products_code ON products (code);

CREATE TABLE IF NOT EXISTS materials (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	name       TEXT NOT NULL,
	price      REAL NOT NULL DEFAULT 0.0,
	code       TEXT UNIQUE,
	unit       TEXT NOT NULL DEFAULT 'kg',
	type       TEXT NOT NULL DEFAULT 'RM' CHECK (type IN ('RM', 'PM')),
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS product_info (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	p_id       INTEGER NOT NULL,
	name       TEXT    NOT NULL,
	unit       TEXT    NOT NULL DEFAULT '',
	value      REAL    NOT NULL DEFAULT 0.0,
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (p_id) REFERENCES products (id) ON DELETE CASCADE,
	UNIQUE (p_id, name)
);

CREATE TABLE IF NOT EXISTS recipes (
	id         INTEGER PRIMARY KEY AUTOINCREMENT,
	p_id       INTEGER NOT NULL,
	m_id       INTEGER NOT NULL,
	quantity   REAL    NOT NULL DEFAULT 1.0,
	purpose    TEXT    NOT NULL DEFAULT 'batch' CHECK (purpose IN ('batch', 'carton')),
	m_type     TEXT    NOT NULL DEFAULT 'RM' CHECK (m_type IN ('RM', 'PM')),
	created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (p_id) REFERENCES products (id) ON DELETE CASCADE,
	FOREIGN KEY (m_id) REFERENCES materials (id) ON DELETE CASCADE,
	UNIQUE (p_id, m_id, purpose)
);

CREATE TABLE IF NOT EXISTS monthly_prices (
	id    INTEGER PRIMARY KEY AUTOINCREMENT,
	p_id  INTEGER NOT NULL,
	year  INTEGER NOT NULL,
	month INTEGER NOT NULL,
	price REAL    NOT NULL DEFAULT 0.0,
	FOREIGN KEY (p_id) REFERENCES products (id) ON DELETE CASCADE,
	UNIQUE (p_id, year, month)
);

CREATE TABLE IF NOT EXISTS monthly_product_summary (
	id                INTEGER PRIMARY KEY AUTOINCREMENT,
	p_id              INTEGER NOT NULL,
	year              INTEGER NOT NULL,
	month             INTEGER NOT NULL,
	opening           INTEGER NOT NULL DEFAULT 0,
	sales_target      INTEGER NOT NULL DEFAULT 0,
	production_target INTEGER NOT NULL DEFAULT 0,
	created_at        TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (p_id) REFERENCES products (id) ON DELETE CASCADE,
	UNIQUE (p_id, year, month)
);

CREATE TABLE IF NOT EXISTS daily_total_manpower (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	date     TEXT    NOT NULL UNIQUE,
	mp_count INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS daily_section_manpower (
	id       INTEGER PRIMARY KEY AUTOINCREMENT,
	s_id     INTEGER NOT NULL,
	date     TEXT    NOT NULL,
	mp_count INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (s_id) REFERENCES sections (id) ON DELETE CASCADE,
	UNIQUE (s_id, date)
);

CREATE TABLE IF NOT EXISTS daily_production (
	id     INTEGER PRIMARY KEY AUTOINCREMENT,
	p_id   INTEGER NOT NULL,
	date   TEXT    NOT NULL,
	batch  INTEGER NOT NULL DEFAULT 0,
	carton INTEGER NOT NULL DEFAULT 0,
	FOREIGN KEY (p_id) REFERENCES products (id) ON DELETE CASCADE,
	UNIQUE (p_id, date)
);
CREATE INDEX IF NOT EXISTS idx_daily_production_date ON daily_production (date);
`
