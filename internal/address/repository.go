package address

import (
	"context"
	"database/sql"

	"roastery-be/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Repository owns the single-default invariant: every mutation that can move
// the default flag runs inside one transaction, so no reader ever observes
// two defaults or none while one remains.
type Repository interface {
	ListByUser(ctx context.Context, userID int) ([]Address, error)
	GetByIDAndUser(ctx context.Context, id uuid.UUID, userID int) (*Address, error)
	Create(ctx context.Context, addr *Address) error
	Update(ctx context.Context, addr *Address) error
	Delete(ctx context.Context, userID int, id uuid.UUID) error
	SetDefault(ctx context.Context, userID int, id uuid.UUID) error
}

type repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) Repository {
	return &repository{db: db}
}

const addressColumns = `id, user_id, house_flat_no, landmark, street, area,
	city, state, pincode, is_default, created_at`

func (r *repository) ListByUser(ctx context.Context, userID int) ([]Address, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "ListByUser"),
		zap.Int("user_id", userID),
	)

	rows, err := r.db.QueryContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE user_id = $1 ORDER BY is_default DESC, created_at",
		userID,
	)
	if err != nil {
		log.Error("query failed", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var res []Address
	for rows.Next() {
		var a Address
		if err := rows.Scan(
			&a.ID, &a.UserID, &a.HouseFlatNo, &a.Landmark, &a.Street, &a.Area,
			&a.City, &a.State, &a.Pincode, &a.IsDefault, &a.CreatedAt,
		); err != nil {
			log.Error("scan failed", zap.Error(err))
			return nil, err
		}
		res = append(res, a)
	}

	return res, rows.Err()
}

func (r *repository) GetByIDAndUser(ctx context.Context, id uuid.UUID, userID int) (*Address, error) {
	var a Address
	err := r.db.QueryRowContext(ctx,
		"SELECT "+addressColumns+" FROM addresses WHERE id = $1 AND user_id = $2",
		id, userID,
	).Scan(
		&a.ID, &a.UserID, &a.HouseFlatNo, &a.Landmark, &a.Street, &a.Area,
		&a.City, &a.State, &a.Pincode, &a.IsDefault, &a.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrAddressNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("db: address lookup failed",
			zap.String("address_id", id.String()), zap.Error(err))
		return nil, err
	}
	return &a, nil
}

// Create inserts the address; the user's first address is forced default, and
// an explicitly-default address clears the previous default in the same
// transaction.
func (r *repository) Create(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Create"),
		zap.String("address_id", addr.ID.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	var count int
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM addresses WHERE user_id = $1",
		addr.UserID,
	).Scan(&count); err != nil {
		log.Error("count failed", zap.Error(err))
		return err
	}

	if count == 0 {
		addr.IsDefault = true
	} else if addr.IsDefault {
		if _, err := tx.ExecContext(ctx,
			"UPDATE addresses SET is_default = false WHERE user_id = $1 AND is_default = true",
			addr.UserID,
		); err != nil {
			log.Error("clear default failed", zap.Error(err))
			return err
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO addresses (
			id, user_id, house_flat_no, landmark, street, area,
			city, state, pincode, is_default
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		addr.ID, addr.UserID, addr.HouseFlatNo, addr.Landmark, addr.Street, addr.Area,
		addr.City, addr.State, addr.Pincode, addr.IsDefault,
	); err != nil {
		log.Error("insert failed", zap.Error(err))
		return err
	}

	return tx.Commit()
}

func (r *repository) Update(ctx context.Context, addr *Address) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Update"),
		zap.String("address_id", addr.ID.String()),
	)

	res, err := r.db.ExecContext(ctx,
		`UPDATE addresses
		 SET house_flat_no = $3, landmark = $4, street = $5, area = $6,
		     city = $7, state = $8, pincode = $9
		 WHERE id = $1 AND user_id = $2`,
		addr.ID, addr.UserID, addr.HouseFlatNo, addr.Landmark, addr.Street, addr.Area,
		addr.City, addr.State, addr.Pincode,
	)
	if err != nil {
		log.Error("update failed", zap.Error(err))
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAddressNotFound
	}
	return nil
}

// Delete removes the address; when the default is deleted, the oldest
// remaining address (if any) is promoted inside the same transaction.
func (r *repository) Delete(ctx context.Context, userID int, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "Delete"),
		zap.String("address_id", id.String()),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	var wasDefault bool
	err = tx.QueryRowContext(ctx,
		"DELETE FROM addresses WHERE id = $1 AND user_id = $2 RETURNING is_default",
		id, userID,
	).Scan(&wasDefault)
	if err == sql.ErrNoRows {
		return ErrAddressNotFound
	}
	if err != nil {
		log.Error("delete failed", zap.Error(err))
		return err
	}

	if wasDefault {
		if _, err := tx.ExecContext(ctx,
			`UPDATE addresses SET is_default = true
			 WHERE id = (
				SELECT id FROM addresses WHERE user_id = $1 ORDER BY created_at LIMIT 1
			 )`,
			userID,
		); err != nil {
			log.Error("promote failed", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

// SetDefault clears the flag on all of the user's addresses and sets the
// target, as one transaction.
func (r *repository) SetDefault(ctx context.Context, userID int, id uuid.UUID) error {
	log := logger.FromCtx(ctx).With(
		zap.String("repo", "Address"),
		zap.String("method", "SetDefault"),
		zap.String("address_id", id.String()),
		zap.Int("user_id", userID),
	)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("begin failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"UPDATE addresses SET is_default = false WHERE user_id = $1 AND is_default = true",
		userID,
	); err != nil {
		log.Error("clear default failed", zap.Error(err))
		return err
	}

	res, err := tx.ExecContext(ctx,
		"UPDATE addresses SET is_default = true WHERE id = $1 AND user_id = $2",
		id, userID,
	)
	if err != nil {
		log.Error("set default failed", zap.Error(err))
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrAddressNotFound
	}

	return tx.Commit()
}
