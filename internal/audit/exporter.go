// Package audit exports subscriber data as a spreadsheet for managers.
package audit

import (
	"context"
	"fmt"
	"io"

	"astrobot/internal/model"
)

const (
	SheetSubscribers = "Subscribers"
	SheetSigns       = "Signs"
)

// UserLister provides every stored profile.
type UserLister interface {
	ListUsers(ctx context.Context) ([]model.UserProfile, error)
}

type Exporter struct {
	users UserLister
}

func NewExporter(users UserLister) *Exporter {
	return &Exporter{users: users}
}

// Export writes an XLSX workbook with one row per user and per-sign totals.
func (e *Exporter) Export(ctx context.Context, w io.Writer) error {
	users, err := e.users.ListUsers(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	sw := newSheetWriter()
	defer sw.Close()

	if err := sw.AddSheet(SheetSubscribers); err != nil {
		return err
	}
	if err := sw.WriteHeader([]string{"user_id", "sign", "lang", "notify", "time", "last_notified", "created_at"}); err != nil {
		return err
	}

	type signTotals struct{ users, subscribed int }
	bySign := make(map[model.Sign]*signTotals, len(model.Signs))
	for _, s := range model.Signs {
		bySign[s] = &signTotals{}
	}

	for _, u := range users {
		notify := "off"
		if u.NotifyEnabled {
			notify = "on"
		}
		row := []any{u.UserID, string(u.Sign), string(u.Lang), notify, u.NotifyTime.String(), u.LastNotified, u.CreatedAt.Format("2006-01-02 15:04")}
		if err := sw.WriteRow(row); err != nil {
			return err
		}
		if t, ok := bySign[u.Sign]; ok {
			t.users++
			if u.NotifyEnabled {
				t.subscribed++
			}
		}
	}

	if err := sw.AddSheet(SheetSigns); err != nil {
		return err
	}
	if err := sw.WriteHeader([]string{"sign", "users", "subscribed"}); err != nil {
		return err
	}
	for _, s := range model.Signs {
		t := bySign[s]
		if err := sw.WriteRow([]any{string(s), t.users, t.subscribed}); err != nil {
			return err
		}
	}

	return sw.Save(w)
}
