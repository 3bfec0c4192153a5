package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rafly/siprojek/internal/app/models"
	"github.com/rafly/siprojek/internal/pkg/apperrors"
)

// KelompokRepository handles group database operations
type KelompokRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewKelompokRepository creates a new KelompokRepository
func NewKelompokRepository(db *pgxpool.Pool) *KelompokRepository {
	return &KelompokRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new group inside the given transaction. Groups come into
// existence only through the matching engine.
func (r *KelompokRepository) Create(ctx context.Context, tx pgx.Tx, kelompok *models.Kelompok) (int64, error) {
	sql, args, err := r.sb.Insert("kelompok").
		Columns("name", "track").
		Values(kelompok.Name, string(kelompok.Track)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("failed to build create kelompok query: %w", err)
	}

	var id int64
	if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("error creating kelompok: %w", err)
	}

	return id, nil
}

// GetByID retrieves a group by primary key
func (r *KelompokRepository) GetByID(ctx context.Context, id int64) (*models.Kelompok, error) {
	sql, args, err := r.sb.Select("id", "name", "track").
		From("kelompok").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build get kelompok query: %w", err)
	}

	var k models.Kelompok
	var track string
	err = r.db.QueryRow(ctx, sql, args...).Scan(&k.ID, &k.Name, &track)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("kelompok %d not found", id)
		}
		return nil, fmt.Errorf("error retrieving kelompok: %w", err)
	}
	k.Track = models.Track(track)

	return &k, nil
}

// DeleteAll removes every group row. Part of the period completion cascade;
// student rows must be detached first.
func (r *KelompokRepository) DeleteAll(ctx context.Context, tx pgx.Tx) error {
	if _, err := tx.Exec(ctx, "DELETE FROM kelompok"); err != nil {
		return fmt.Errorf("error deleting kelompok rows: %w", err)
	}
	return nil
}
