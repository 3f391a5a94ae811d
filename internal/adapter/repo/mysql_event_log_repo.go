package repo

import (
	"context"
	"database/sql"
)

// MySQLEventLogRepo records lifecycle events the notification consumer
// drains from RabbitMQ, feeding the admin dashboard's activity feed.
type MySQLEventLogRepo struct{ db *sql.DB }

func NewMySQLEventLogRepo(db *sql.DB) *MySQLEventLogRepo { return &MySQLEventLogRepo{db: db} }

func (r *MySQLEventLogRepo) InsertEvent(ctx context.Context, channel string, payload []byte) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO admin_event_log (channel, payload, recorded_at) VALUES (?, ?, NOW())`,
		channel, payload)
	return err
}
