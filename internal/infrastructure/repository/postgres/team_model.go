package postgres

import "time"

type teamTableModel struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Abbreviation string    `db:"abbreviation"`
	LogoURL      string    `db:"logo_url"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type teamInsertModel struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Abbreviation string `db:"abbreviation"`
	LogoURL      string `db:"logo_url"`
}
