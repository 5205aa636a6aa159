// README: History store backed by PostgreSQL.
package history

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// Insert saves v and fills in its generated id and visit time.
func (s *Store) Insert(ctx context.Context, v *Visit) error {
	row := s.db.QueryRow(ctx, `
        INSERT INTO restaurant_history (
            session_id, place_id, name, address, rating,
            price_level, cuisine_type, latitude, longitude, revealed
        ) VALUES (
            $1, $2, $3, $4, $5,
            $6, $7, $8, $9, FALSE
        )
        RETURNING id, visited_at`,
		v.SessionID, v.PlaceID, v.Name, v.Address, v.Rating,
		v.PriceLevel, v.CuisineType, v.Location.Lat, v.Location.Lng,
	)
	return row.Scan(&v.ID, &v.VisitedAt)
}

// SetUserRating and MarkRevealed only touch rows owned by sessionID; any
// other row reports ErrNotFound.
func (s *Store) SetUserRating(ctx context.Context, sessionID string, id int64, rating int) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE restaurant_history SET user_rating = $3
        WHERE id = $1 AND session_id = $2`, id, sessionID, rating)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) MarkRevealed(ctx context.Context, sessionID string, id int64) error {
	tag, err := s.db.Exec(ctx, `
        UPDATE restaurant_history SET revealed = TRUE
        WHERE id = $1 AND session_id = $2`, id, sessionID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RecentPlaceIDs returns the place ids of the last limit visits, newest first.
func (s *Store) RecentPlaceIDs(ctx context.Context, sessionID string, limit int) ([]string, error) {
	rows, err := s.db.Query(ctx, `
        SELECT place_id FROM restaurant_history
        WHERE session_id = $1
        ORDER BY visited_at DESC, id DESC
        LIMIT $2`, sessionID, limit)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (s *Store) Get(ctx context.Context, id int64) (*Visit, error) {
	row := s.db.QueryRow(ctx, selectVisit+` WHERE id = $1`, id)
	v, err := scanVisit(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return v, err
}

// List returns every visit of a session, newest first.
func (s *Store) List(ctx context.Context, sessionID string) ([]Visit, error) {
	rows, err := s.db.Query(ctx, selectVisit+` WHERE session_id = $1 ORDER BY visited_at DESC, id DESC`, sessionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Visit{}
	for rows.Next() {
		v, err := scanVisit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

const selectVisit = `
        SELECT id, session_id, place_id, name, COALESCE(address, ''), COALESCE(rating, 0),
               COALESCE(price_level, 0), COALESCE(cuisine_type, ''), COALESCE(latitude, 0),
               COALESCE(longitude, 0), revealed, user_rating, visited_at
        FROM restaurant_history`

func scanVisit(row pgx.Row) (*Visit, error) {
	var v Visit
	var rating float32
	err := row.Scan(
		&v.ID, &v.SessionID, &v.PlaceID, &v.Name, &v.Address, &rating,
		&v.PriceLevel, &v.CuisineType, &v.Location.Lat,
		&v.Location.Lng, &v.Revealed, &v.UserRating, &v.VisitedAt,
	)
	if err != nil {
		return nil, err
	}
	v.Rating = float64(rating)
	return &v, nil
}
