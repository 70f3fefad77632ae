package repositories

import (
	"context"
	"time"

	"produce-backend/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReportLogRepository struct {
	DB *pgxpool.Pool
}

func NewReportLogRepository(db *pgxpool.Pool) *ReportLogRepository {
	return &ReportLogRepository{DB: db}
}

// Create records an export or print and fills in ID and CreatedAt
func (r *ReportLogRepository) Create(ctx context.Context, entry *models.ReportLog) error {
	query := `
		INSERT INTO report_logs (kind, format, reference, user_name, line_count, grand_total, archive_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	return r.DB.QueryRow(ctx, query,
		entry.Kind,
		entry.Format,
		entry.Reference,
		entry.UserName,
		entry.LineCount,
		entry.GrandTotal,
		entry.ArchiveKey,
	).Scan(&entry.ID, &entry.CreatedAt)
}

// ListRecent returns the newest entries first, optionally for one kind
func (r *ReportLogRepository) ListRecent(ctx context.Context, kind string, limit int) ([]*models.ReportLog, error) {
	query := `
		SELECT id, kind, format, reference, user_name, line_count, grand_total, archive_key, created_at
		FROM report_logs
		WHERE ($1 = '' OR kind = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.DB.Query(ctx, query, kind, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []*models.ReportLog{}
	for rows.Next() {
		var l models.ReportLog
		err := rows.Scan(
			&l.ID, &l.Kind, &l.Format, &l.Reference, &l.UserName,
			&l.LineCount, &l.GrandTotal, &l.ArchiveKey, &l.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		logs = append(logs, &l)
	}

	return logs, rows.Err()
}

// DeleteBefore removes entries older than cutoff and returns how many went
func (r *ReportLogRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM report_logs WHERE created_at < $1`, cutoff)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
