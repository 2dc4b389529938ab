package horoscope

import (
	"fmt"
	"strings"
	"time"

	"astrobot/internal/content"
	"astrobot/internal/model"
)

// Renderer turns a pattern into display text. It holds no mutable state.
type Renderer struct {
	content *content.Store
}

func NewRenderer(c *content.Store) *Renderer {
	return &Renderer{content: c}
}

// Render builds the daily horoscope of sign in lang. An unsupported lang
// renders in the default language; an unknown sign gets a placeholder title.
func (r *Renderer) Render(sign model.Sign, lang model.Lang, date time.Time, p model.DailyPattern) string {
	c := r.content
	lang = c.Resolve(lang)
	label := func(k content.LabelKey) string { return c.Label(lang, k) }
	phrase := func(cat content.Category, idx int) string { return c.Phrase(cat, lang, idx) }

	emoji, name := c.SignMeta(sign, lang)

	var b strings.Builder
	fmt.Fprintf(&b, "%s%s — %s\n\n", emoji, name, label(content.LabelTitle))
	fmt.Fprintf(&b, "%s, %s\n\n", c.Weekday(lang, date.Weekday()), date.Format("02.01.2006"))
	fmt.Fprintf(&b, "%s ⚡ %s\n\n", label(content.LabelTypeOfDay), phrase(content.CategoryMood, p.Mood))
	fmt.Fprintf(&b, "❄️%s: %s\n", label(content.LabelSeasonalMood), phrase(content.CategorySeason, p.Season))
	fmt.Fprintf(&b, "💕%s: %s\n", label(content.LabelLove), phrase(content.CategoryLove, p.Love))
	fmt.Fprintf(&b, "👩‍💻%s: %s\n", label(content.LabelWork), phrase(content.CategoryWork, p.Work))
	fmt.Fprintf(&b, "💰%s: %s\n", label(content.LabelMoney), phrase(content.CategoryMoney, p.Money))
	fmt.Fprintf(&b, "🩺%s: %s\n", label(content.LabelHealth), phrase(content.CategoryHealth, p.Health))
	fmt.Fprintf(&b, "🧘%s: %s\n\n", label(content.LabelAdvice), phrase(content.CategoryAdvice, p.Advice))
	fmt.Fprintf(&b, "✨%s: %d\n", label(content.LabelNumberOfDay), p.Number)
	fmt.Fprintf(&b, "✨%s: %s", label(content.LabelColorOfDay), phrase(content.CategoryColor, p.Color))
	return b.String()
}
