package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

/* ───────────── public interface ───────────── */

type UnitRepository interface {
	Create(ctx context.Context, u *models.Unit) (*models.Unit, error)
	GetByID(ctx context.Context, id int) (*models.Unit, error)
	List(ctx context.Context) ([]*models.Unit, error)
	Search(ctx context.Context, keyword string) ([]*models.Unit, error)
	Update(ctx context.Context, id int, u *models.Unit) (*models.Unit, error)
	Delete(ctx context.Context, id int) (int64, error)

	// RecountAll re-derives num_occupants for every unit from current
	// rows. Used by the periodic reconciliation sweep.
	RecountAll(ctx context.Context) error
}

/* ───────────── implementation ───────────── */

type unitRepo struct {
	db DB
}

func NewUnitRepository(db DB) UnitRepository {
	return &unitRepo{db: db}
}

// occupantCountExpr derives the occupant count from current rows: 0 for a
// vacant unit, else the active tenant plus their sub-tenants. The same
// expression backs both curr_occupants on reads and the stored
// num_occupants on recounts, so the two can only diverge through edits
// made outside the API.
const occupantCountExpr = `
	(CASE WHEN u.active_tenant_id IS NULL THEN 0
	      ELSE 1 + (SELECT COUNT(*) FROM sub_tenants st WHERE st.main_tenant_id = u.active_tenant_id)
	 END)`

func baseSelectUnit() string {
	return `
		SELECT u.id, u.unit_number, u.name, u.description, u.price,
		       u.num_occupants, ` + occupantCountExpr + ` AS curr_occupants,
		       u.active_tenant_id
		FROM units u`
}

/* ---------- create ---------- */

func (r *unitRepo) Create(ctx context.Context, u *models.Unit) (out *models.Unit, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	exists, err := unitNumberNameExists(ctx, tx, u.UnitNumber, u.Name, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.ErrUnitExists
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO units (unit_number, name, description, price, num_occupants, active_tenant_id)
		VALUES ($1, $2, $3, $4, 0, NULL)
		RETURNING id
	`, u.UnitNumber, u.Name, u.Description, u.Price).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "units_unit_number_name_key") {
			return nil, utils.ErrUnitExists
		}
		return nil, err
	}

	row := tx.QueryRow(ctx, baseSelectUnit()+" WHERE u.id=$1", id)
	return scanUnit(row)
}

/* ---------- reads ---------- */

func (r *unitRepo) GetByID(ctx context.Context, id int) (*models.Unit, error) {
	row := r.db.QueryRow(ctx, baseSelectUnit()+" WHERE u.id=$1", id)
	return scanUnit(row)
}

func (r *unitRepo) List(ctx context.Context) ([]*models.Unit, error) {
	rows, err := r.db.Query(ctx, baseSelectUnit()+" ORDER BY u.name, u.unit_number")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

func (r *unitRepo) Search(ctx context.Context, keyword string) ([]*models.Unit, error) {
	like := "%" + keyword + "%"
	rows, err := r.db.Query(ctx, baseSelectUnit()+`
		WHERE u.name ILIKE $1 OR u.description ILIKE $1 OR u.unit_number ILIKE $1
		ORDER BY u.name, u.unit_number`, like)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanUnits(rows)
}

/* ---------- update / delete ---------- */

func (r *unitRepo) Update(ctx context.Context, id int, u *models.Unit) (out *models.Unit, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	row := tx.QueryRow(ctx, `SELECT id FROM units WHERE id=$1 FOR UPDATE`, id)
	var existingID int
	if err = row.Scan(&existingID); err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrUnitNotFound
		}
		return nil, err
	}

	exists, err := unitNumberNameExists(ctx, tx, u.UnitNumber, u.Name, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, utils.ErrUnitExists
	}

	_, err = tx.Exec(ctx, `
		UPDATE units SET unit_number=$1, name=$2, description=$3, price=$4
		WHERE id=$5
	`, u.UnitNumber, u.Name, u.Description, u.Price, id)
	if err != nil {
		return nil, err
	}

	newRow := tx.QueryRow(ctx, baseSelectUnit()+" WHERE u.id=$1", id)
	return scanUnit(newRow)
}

func (r *unitRepo) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM units WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *unitRepo) RecountAll(ctx context.Context) error {
	_, err := r.db.Exec(ctx, `
		UPDATE units u SET num_occupants = `+occupantCountExpr+`
		WHERE u.num_occupants <> `+occupantCountExpr)
	return err
}

/* ---------- internals ---------- */

func unitNumberNameExists(ctx context.Context, db DB, unitNumber, name string, excludeID int) (bool, error) {
	var count int
	err := db.QueryRow(ctx, `
		SELECT COUNT(*) FROM units WHERE unit_number=$1 AND name=$2 AND id<>$3
	`, unitNumber, name, excludeID).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// recountOccupants refreshes the stored num_occupants for one unit. Runs
// inside the caller's transaction so the recount commits or rolls back
// with the mutation that made it necessary.
func recountOccupants(ctx context.Context, db DB, unitID int) error {
	_, err := db.Exec(ctx, `
		UPDATE units u SET num_occupants = `+occupantCountExpr+`
		WHERE u.id = $1
	`, unitID)
	return err
}

func scanUnit(row pgx.Row) (*models.Unit, error) {
	var u models.Unit
	if err := row.Scan(
		&u.ID, &u.UnitNumber, &u.Name, &u.Description, &u.Price,
		&u.NumOccupants, &u.CurrOccupants, &u.ActiveTenantID,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrUnitNotFound
		}
		return nil, err
	}
	return &u, nil
}

func scanUnits(rows pgx.Rows) ([]*models.Unit, error) {
	var out []*models.Unit
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}
