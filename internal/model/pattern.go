package model

// DailyPattern is the set of fragment indices chosen once per (sign, date).
type DailyPattern struct {
	Sign   Sign   `db:"sign" json:"sign"`
	Date   string `db:"date" json:"date"` // YYYY-MM-DD in the reference timezone
	Mood   int    `db:"mood" json:"mood"`
	Season int    `db:"season" json:"season"`
	Love   int    `db:"love" json:"love"`
	Work   int    `db:"work" json:"work"`
	Money  int    `db:"money" json:"money"`
	Health int    `db:"health" json:"health"`
	Advice int    `db:"advice" json:"advice"`
	Color  int    `db:"color" json:"color"`
	Number int    `db:"number" json:"number"`
}

// SameDraw compares the drawn tuple, ignoring the (sign, date) key.
func (p DailyPattern) SameDraw(o DailyPattern) bool {
	return p.Mood == o.Mood &&
		p.Season == o.Season &&
		p.Love == o.Love &&
		p.Work == o.Work &&
		p.Money == o.Money &&
		p.Health == o.Health &&
		p.Advice == o.Advice &&
		p.Color == o.Color &&
		p.Number == o.Number
}
