package repositories

import (
	"context"

	"github.com/jackc/pgx/v4"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

/* ───────────── public interface ───────────── */

// SubTenantRepository manages the occupants who live under a main
// tenant. Every mutation re-derives the affected unit's occupant count
// in the same transaction, so a sub-tenant never changes a roster
// without the unit reflecting it.
type SubTenantRepository interface {
	Create(ctx context.Context, st *models.SubTenant) (*models.SubTenant, error)
	Update(ctx context.Context, id int, st *models.SubTenant) (*models.SubTenant, error)
	Delete(ctx context.Context, id int) (int64, error)

	GetByID(ctx context.Context, id int) (*models.SubTenant, error)
	List(ctx context.Context) ([]*models.SubTenant, error)
	ListByMainTenantID(ctx context.Context, mainTenantID int) ([]*models.SubTenant, error)
}

/* ───────────── implementation ───────────── */

type subTenantRepo struct {
	db DB
}

func NewSubTenantRepository(db DB) SubTenantRepository {
	return &subTenantRepo{db: db}
}

func baseSelectSubTenant() string {
	return `
		SELECT id, last_name, first_name, middle_initial, phone_number,
		       messenger_link, main_tenant_id
		FROM sub_tenants`
}

/* ---------- create ---------- */

func (r *subTenantRepo) Create(ctx context.Context, st *models.SubTenant) (out *models.SubTenant, err error) {
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

	unitID, err := lockMainTenantUnit(ctx, tx, st.MainTenantID)
	if err != nil {
		return nil, err
	}

	if err = subTenantDuplicateExists(ctx, tx, st.PhoneNumber, st.MessengerLink, 0); err != nil {
		return nil, err
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO sub_tenants (last_name, first_name, middle_initial, phone_number, messenger_link, main_tenant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`, st.LastName, st.FirstName, st.MiddleInitial, st.PhoneNumber, st.MessengerLink, st.MainTenantID).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "sub_tenants_phone_number_key") {
			return nil, utils.ErrPhoneExists
		}
		if isUniqueViolation(err, "sub_tenants_messenger_link_idx") {
			return nil, utils.ErrMessengerExists
		}
		return nil, err
	}

	if err = recountOccupants(ctx, tx, unitID); err != nil {
		return nil, err
	}

	row := tx.QueryRow(ctx, baseSelectSubTenant()+" WHERE id=$1", id)
	return scanSubTenant(row)
}

/* ---------- update ---------- */

func (r *subTenantRepo) Update(ctx context.Context, id int, st *models.SubTenant) (out *models.SubTenant, err error) {
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

	var oldMainTenantID int
	err = tx.QueryRow(ctx, `SELECT main_tenant_id FROM sub_tenants WHERE id=$1 FOR UPDATE`, id).Scan(&oldMainTenantID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, utils.ErrSubTenantNotFound
		}
		return nil, err
	}

	oldUnitID, err := lockMainTenantUnit(ctx, tx, oldMainTenantID)
	if err != nil {
		return nil, err
	}
	newUnitID := oldUnitID
	if st.MainTenantID != oldMainTenantID {
		newUnitID, err = lockMainTenantUnit(ctx, tx, st.MainTenantID)
		if err != nil {
			return nil, err
		}
	}

	if err = subTenantDuplicateExists(ctx, tx, st.PhoneNumber, st.MessengerLink, id); err != nil {
		return nil, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE sub_tenants SET last_name=$1, first_name=$2, middle_initial=$3,
		       phone_number=$4, messenger_link=$5, main_tenant_id=$6
		WHERE id=$7
	`, st.LastName, st.FirstName, st.MiddleInitial, st.PhoneNumber, st.MessengerLink, st.MainTenantID, id)
	if err != nil {
		if isUniqueViolation(err, "sub_tenants_phone_number_key") {
			return nil, utils.ErrPhoneExists
		}
		if isUniqueViolation(err, "sub_tenants_messenger_link_idx") {
			return nil, utils.ErrMessengerExists
		}
		return nil, err
	}

	if err = recountOccupants(ctx, tx, oldUnitID); err != nil {
		return nil, err
	}
	if newUnitID != oldUnitID {
		if err = recountOccupants(ctx, tx, newUnitID); err != nil {
			return nil, err
		}
	}

	row := tx.QueryRow(ctx, baseSelectSubTenant()+" WHERE id=$1", id)
	return scanSubTenant(row)
}

/* ---------- delete ---------- */

func (r *subTenantRepo) Delete(ctx context.Context, id int) (affected int64, err error) {
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

	var mainTenantID int
	err = tx.QueryRow(ctx, `SELECT main_tenant_id FROM sub_tenants WHERE id=$1 FOR UPDATE`, id).Scan(&mainTenantID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, utils.ErrSubTenantNotFound
		}
		return 0, err
	}

	var unitID int
	err = tx.QueryRow(ctx, `SELECT unit_id FROM tenants WHERE id=$1`, mainTenantID).Scan(&unitID)
	if err != nil && err != pgx.ErrNoRows {
		return 0, err
	}
	hasUnit := err == nil
	err = nil

	tag, err := tx.Exec(ctx, `DELETE FROM sub_tenants WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}

	if hasUnit {
		if err = recountOccupants(ctx, tx, unitID); err != nil {
			return 0, err
		}
	}
	return tag.RowsAffected(), nil
}

/* ---------- reads ---------- */

func (r *subTenantRepo) GetByID(ctx context.Context, id int) (*models.SubTenant, error) {
	row := r.db.QueryRow(ctx, baseSelectSubTenant()+" WHERE id=$1", id)
	st, err := scanSubTenant(row)
	if err == pgx.ErrNoRows {
		return nil, utils.ErrSubTenantNotFound
	}
	return st, err
}

func (r *subTenantRepo) List(ctx context.Context) ([]*models.SubTenant, error) {
	rows, err := r.db.Query(ctx, baseSelectSubTenant()+" ORDER BY last_name, first_name, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubTenants(rows)
}

func (r *subTenantRepo) ListByMainTenantID(ctx context.Context, mainTenantID int) ([]*models.SubTenant, error) {
	rows, err := r.db.Query(ctx, baseSelectSubTenant()+" WHERE main_tenant_id=$1 ORDER BY last_name, first_name, id", mainTenantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanSubTenants(rows)
}

/* ---------- internals ---------- */

// lockMainTenantUnit resolves the main tenant's unit and takes that
// unit's row lock, serializing the roster change against concurrent
// occupancy mutations on the same unit.
func lockMainTenantUnit(ctx context.Context, db DB, mainTenantID int) (int, error) {
	var unitID int
	err := db.QueryRow(ctx, `SELECT unit_id FROM tenants WHERE id=$1`, mainTenantID).Scan(&unitID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return 0, utils.ErrTenantNotFound
		}
		return 0, err
	}
	if _, err = lockUnit(ctx, db, unitID); err != nil && err != utils.ErrUnitNotFound {
		return 0, err
	}
	return unitID, nil
}

// subTenantDuplicateExists checks phone uniqueness always and messenger
// uniqueness only when a non-empty link is provided.
func subTenantDuplicateExists(ctx context.Context, db DB, phone string, messenger *string, excludeID int) error {
	var count int
	err := db.QueryRow(ctx, `SELECT COUNT(*) FROM sub_tenants WHERE phone_number=$1 AND id<>$2`, phone, excludeID).Scan(&count)
	if err != nil {
		return err
	}
	if count > 0 {
		return utils.ErrPhoneExists
	}
	if messenger != nil && *messenger != "" {
		err = db.QueryRow(ctx, `SELECT COUNT(*) FROM sub_tenants WHERE messenger_link=$1 AND id<>$2`, *messenger, excludeID).Scan(&count)
		if err != nil {
			return err
		}
		if count > 0 {
			return utils.ErrMessengerExists
		}
	}
	return nil
}

func scanSubTenant(row pgx.Row) (*models.SubTenant, error) {
	var st models.SubTenant
	if err := row.Scan(
		&st.ID, &st.LastName, &st.FirstName, &st.MiddleInitial,
		&st.PhoneNumber, &st.MessengerLink, &st.MainTenantID,
	); err != nil {
		return nil, err
	}
	return &st, nil
}

func scanSubTenants(rows pgx.Rows) ([]*models.SubTenant, error) {
	var out []*models.SubTenant
	for rows.Next() {
		st, err := scanSubTenant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, st)
	}
	return out, rows.Err()
}
