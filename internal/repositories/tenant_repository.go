package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

/* ───────────── public interface ───────────── */

// TenantRepository owns every multi-statement occupancy mutation. Each
// mutating method runs in a single transaction: the target unit row is
// locked FOR UPDATE before any occupancy decision, the vacancy and
// uniqueness checks are made on the locked state, and the unit's stored
// occupant count is re-derived from current rows before commit. Two
// concurrent calls against the same unit therefore serialize at the row
// lock instead of racing the check-then-act window.
type TenantRepository interface {
	Create(ctx context.Context, t *models.Tenant) (*models.Tenant, error)
	Update(ctx context.Context, id int, t *models.Tenant) (*models.Tenant, error)
	Delete(ctx context.Context, id int) (int64, error)
	MoveOut(ctx context.Context, id int, moveOutDate time.Time) (*models.Tenant, error)

	GetByID(ctx context.Context, id int) (*models.Tenant, error)
	List(ctx context.Context) ([]*models.Tenant, error)
	ListByUnitID(ctx context.Context, unitID int) ([]*models.Tenant, error)
	ListMovedIn(ctx context.Context) ([]*models.Tenant, error)
	ListMovedOut(ctx context.Context) ([]*models.Tenant, error)
}

/* ───────────── implementation ───────────── */

type tenantRepo struct {
	db DB
}

func NewTenantRepository(db DB) TenantRepository {
	return &tenantRepo{db: db}
}

func baseSelectTenant() string {
	return `
		SELECT id, last_name, first_name, middle_initial, email, phone_number,
		       messenger_link, unit_id, move_in_date, move_out_date
		FROM tenants`
}

/* ---------- create ---------- */

func (r *tenantRepo) Create(ctx context.Context, t *models.Tenant) (out *models.Tenant, err error) {
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

	// Lock the unit row first: the vacancy decision below must hold until
	// commit even against a concurrent Create targeting the same unit.
	activeTenantID, err := lockUnit(ctx, tx, t.UnitID)
	if err != nil {
		return nil, err
	}
	if activeTenantID != nil {
		return nil, utils.ErrUnitOccupied
	}

	if err = tenantDuplicateExists(ctx, tx, t.Email, t.PhoneNumber, 0); err != nil {
		return nil, err
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO tenants (last_name, first_name, middle_initial, email, phone_number,
		                     messenger_link, unit_id, move_in_date, move_out_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULL)
		RETURNING id
	`, t.LastName, t.FirstName, t.MiddleInitial, t.Email, t.PhoneNumber,
		t.MessengerLink, t.UnitID, t.MoveInDate).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "tenants_email_key") {
			return nil, utils.ErrEmailExists
		}
		if isUniqueViolation(err, "tenants_phone_number_key") {
			return nil, utils.ErrPhoneExists
		}
		return nil, err
	}

	_, err = tx.Exec(ctx, `UPDATE units SET active_tenant_id=$1 WHERE id=$2`, id, t.UnitID)
	if err != nil {
		return nil, err
	}
	if err = recountOccupants(ctx, tx, t.UnitID); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1", id)
	return scanTenant(row)
}

/* ---------- update (incl. unit transfer) ---------- */

func (r *tenantRepo) Update(ctx context.Context, id int, t *models.Tenant) (out *models.Tenant, err error) {
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

	row := tx.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1 FOR UPDATE", id)
	existing, err := scanTenant(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrTenantNotFound
		}
		return nil, err
	}

	oldUnitID := existing.UnitID
	newUnitID := t.UnitID

	if oldUnitID == newUnitID {
		if _, err = lockUnit(ctx, tx, oldUnitID); err != nil {
			return nil, err
		}
	} else {
		// Lock in ascending id order so two concurrent transfers between
		// the same pair of units cannot deadlock. The old unit may have
		// been deleted out from under the tenant; the new one must exist
		// and be vacant.
		ids := [2]int{oldUnitID, newUnitID}
		if ids[1] < ids[0] {
			ids[0], ids[1] = ids[1], ids[0]
		}
		for _, uid := range ids {
			active, lockErr := lockUnit(ctx, tx, uid)
			if lockErr != nil {
				if uid == oldUnitID && lockErr == utils.ErrUnitNotFound {
					continue
				}
				err = lockErr
				return nil, err
			}
			if uid == newUnitID && active != nil {
				err = utils.ErrUnitOccupied
				return nil, err
			}
		}
	}

	if err = tenantDuplicateExists(ctx, tx, t.Email, t.PhoneNumber, id); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE tenants SET last_name=$1, first_name=$2, middle_initial=$3, email=$4,
		       phone_number=$5, messenger_link=$6, unit_id=$7, move_in_date=$8, move_out_date=$9
		WHERE id=$10
	`, t.LastName, t.FirstName, t.MiddleInitial, t.Email, t.PhoneNumber,
		t.MessengerLink, t.UnitID, t.MoveInDate, t.MoveOutDate, id)
	if err != nil {
		if isUniqueViolation(err, "tenants_email_key") {
			return nil, utils.ErrEmailExists
		}
		if isUniqueViolation(err, "tenants_phone_number_key") {
			return nil, utils.ErrPhoneExists
		}
		return nil, err
	}

	if oldUnitID != newUnitID {
		// Vacate the old unit only if this tenant was its active tenant,
		// then occupy the new one. Both counts are re-derived so neither
		// unit leaves the transaction inconsistent.
		_, err = tx.Exec(ctx, `UPDATE units SET active_tenant_id=NULL WHERE id=$1 AND active_tenant_id=$2`, oldUnitID, id)
		if err != nil {
			return nil, err
		}
		_, err = tx.Exec(ctx, `UPDATE units SET active_tenant_id=$1 WHERE id=$2`, id, newUnitID)
		if err != nil {
			return nil, err
		}
		if err = recountOccupants(ctx, tx, oldUnitID); err != nil {
			return nil, err
		}
		if err = recountOccupants(ctx, tx, newUnitID); err != nil {
			return nil, err
		}
	} else {
		// Covers sub-tenant roster changes made since the last recount.
		if err = recountOccupants(ctx, tx, newUnitID); err != nil {
			return nil, err
		}
	}

	newRow := tx.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1", id)
	return scanTenant(newRow)
}

/* ---------- delete ---------- */

func (r *tenantRepo) Delete(ctx context.Context, id int) (affected int64, err error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			_ = tx.Commit(ctx)
		}
	}()

	var unitID int
	err = tx.QueryRow(ctx, `SELECT unit_id FROM tenants WHERE id=$1 FOR UPDATE`, id).Scan(&unitID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, utils.ErrTenantNotFound
		}
		return 0, err
	}

	if _, err = lockUnit(ctx, tx, unitID); err != nil && err != utils.ErrUnitNotFound {
		return 0, err
	}
	err = nil

	// Clear the pointer before the row goes away; only if this tenant was
	// the unit's active tenant.
	_, err = tx.Exec(ctx, `UPDATE units SET active_tenant_id=NULL WHERE id=$1 AND active_tenant_id=$2`, unitID, id)
	if err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tenants WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}

	if err = recountOccupants(ctx, tx, unitID); err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

/* ---------- move out ---------- */

// MoveOut stamps the tenant's move-out date and vacates their unit in the
// same transaction: the active-tenant pointer is cleared (when it pointed
// at this tenant) and the occupant count re-derived to 0. The tenant row
// stays as a historical record.
func (r *tenantRepo) MoveOut(ctx context.Context, id int, moveOutDate time.Time) (out *models.Tenant, err error) {
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

	var unitID int
	err = tx.QueryRow(ctx, `SELECT unit_id FROM tenants WHERE id=$1 FOR UPDATE`, id).Scan(&unitID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrTenantNotFound
		}
		return nil, err
	}

	if _, err = lockUnit(ctx, tx, unitID); err != nil && err != utils.ErrUnitNotFound {
		return nil, err
	}
	err = nil

	_, err = tx.Exec(ctx, `UPDATE tenants SET move_out_date=$1 WHERE id=$2`, moveOutDate, id)
	if err != nil {
		return nil, err
	}
	_, err = tx.Exec(ctx, `UPDATE units SET active_tenant_id=NULL WHERE id=$1 AND active_tenant_id=$2`, unitID, id)
	if err != nil {
		return nil, err
	}
	if err = recountOccupants(ctx, tx, unitID); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1", id)
	return scanTenant(row)
}

/* ---------- reads ---------- */

func (r *tenantRepo) GetByID(ctx context.Context, id int) (*models.Tenant, error) {
	row := r.db.QueryRow(ctx, baseSelectTenant()+" WHERE id=$1", id)
	t, err := scanTenant(row)
	if err == pgx.ErrNoRows {
		return nil, utils.ErrTenantNotFound
	}
	return t, err
}

func (r *tenantRepo) List(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" ORDER BY move_in_date DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) ListByUnitID(ctx context.Context, unitID int) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" WHERE unit_id=$1 ORDER BY move_in_date DESC, id DESC", unitID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) ListMovedIn(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" WHERE move_out_date IS NULL ORDER BY move_in_date DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

func (r *tenantRepo) ListMovedOut(ctx context.Context) ([]*models.Tenant, error) {
	rows, err := r.db.Query(ctx, baseSelectTenant()+" WHERE move_out_date IS NOT NULL ORDER BY move_out_date DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTenants(rows)
}

/* ---------- internals ---------- */

// lockUnit takes the unit's row lock and returns its current active
// tenant id. ErrUnitNotFound when no such unit exists.
func lockUnit(ctx context.Context, db DB, unitID int) (*int, error) {
	var activeTenantID *int
	err := db.QueryRow(ctx, `SELECT active_tenant_id FROM units WHERE id=$1 FOR UPDATE`, unitID).Scan(&activeTenantID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrUnitNotFound
		}
		return nil, err
	}
	return activeTenantID, nil
}

// tenantDuplicateExists checks email then phone uniqueness across all
// tenants, historical included, excluding excludeID (0 for creates).
func tenantDuplicateExists(ctx context.Context, db DB, email, phone string, excludeID int) error {
	var count int
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants WHERE email=$1 AND id<>$2`, email, excludeID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.ErrEmailExists
	}
	err = db.QueryRow(ctx, `SELECT COUNT(*) FROM tenants WHERE phone_number=$1 AND id<>$2`, phone, excludeID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.ErrPhoneExists
	}
	return nil
}

func scanTenant(row pgx.Row) (*models.Tenant, error) {
	var t models.Tenant
	if err := row.Scan(
		&t.ID, &t.LastName, &t.FirstName, &t.MiddleInitial, &t.Email,
		&t.PhoneNumber, &t.MessengerLink, &t.UnitID, &t.MoveInDate, &t.MoveOutDate,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

func scanTenants(rows pgx.Rows) ([]*models.Tenant, error) {
	var out []*models.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
