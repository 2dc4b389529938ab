package model

import "time"

// TarotCard is an entry of the static tarot catalog.
type TarotCard struct {
	ID      string
	Image   string
	Title   map[Lang]string
	Keyword map[Lang]string
	Meaning map[Lang]string
}

// TarotDraw is the last card drawn by a user.
type TarotDraw struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	CardID    string    `db:"card_id" json:"card_id"`
	DrawnOn   string    `db:"drawn_on" json:"drawn_on"` // YYYY-MM-DD, local
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Quote is the quote of the day for a sign.
type Quote struct {
	Date   string `db:"date" json:"date"`
	Sign   Sign   `db:"sign" json:"sign"`
	Text   string `db:"text" json:"text"`
	Author string `db:"author" json:"author"`
	Source string `db:"source" json:"source"` // "ai" or "pool"
}
