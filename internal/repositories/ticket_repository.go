package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v4"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

/* ───────────── public interface ───────────── */

type TicketRepository interface {
	// Create inserts the ticket unless a Pending ticket with the same
	// phone number and subject already exists, in which case it returns
	// ErrDuplicatePendingTicket and inserts nothing.
	Create(ctx context.Context, t *models.Ticket) (*models.Ticket, error)
	UpdateStatus(ctx context.Context, id int, status models.Status, updatedAt time.Time, updatedBy string) (*models.Ticket, error)
	Delete(ctx context.Context, id int) (int64, error)

	GetByID(ctx context.Context, id int) (*models.Ticket, error)
	List(ctx context.Context) ([]*models.Ticket, error)
	ListByStatus(ctx context.Context, status models.Status) ([]*models.Ticket, error)
}

/* ───────────── implementation ───────────── */

type ticketRepo struct {
	db DB
}

func NewTicketRepository(db DB) TicketRepository {
	return &ticketRepo{db: db}
}

func baseSelectTicket() string {
	return `
		SELECT id, unit_number, apartment_name, name, phone_number, email,
		       messenger_link, category, subject, body, status,
		       submitted_at, status_updated_at, status_updated_by
		FROM tickets`
}

/* ---------- create ---------- */

func (r *ticketRepo) Create(ctx context.Context, t *models.Ticket) (out *models.Ticket, err error) {
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

	// The partial unique index on (phone_number, subject) WHERE
	// status='Pending' backs this check; the count here gives the caller
	// a clean conflict instead of a constraint error in the common case.
	var pending int
	err = tx.QueryRow(ctx, `
		SELECT COUNT(*) FROM tickets
		WHERE phone_number=$1 AND subject=$2 AND status=$3
	`, t.PhoneNumber, t.Subject, models.StatusPending.Label()).Scan(&pending)
	if err != nil {
		return nil, err
	}
	if pending > 0 {
		return nil, utils.ErrDuplicatePendingTicket
	}

	var id int
	err = tx.QueryRow(ctx, `
		INSERT INTO tickets (unit_number, apartment_name, name, phone_number, email,
		                     messenger_link, category, subject, body, status,
		                     submitted_at, status_updated_at, status_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, t.UnitNumber, t.ApartmentName, t.Name, t.PhoneNumber, t.Email,
		t.MessengerLink, t.Category.Label(), t.Subject, t.Body, t.Status.Label(),
		t.SubmittedAt, t.StatusUpdatedAt, t.StatusUpdatedBy).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "tickets_pending_phone_subject_idx") {
			return nil, utils.ErrDuplicatePendingTicket
		}
		return nil, err
	}

	row := tx.QueryRow(ctx, baseSelectTicket()+" WHERE id=$1", id)
	return scanTicket(row)
}

/* ---------- status update ---------- */

func (r *ticketRepo) UpdateStatus(ctx context.Context, id int, status models.Status, updatedAt time.Time, updatedBy string) (out *models.Ticket, err error) {
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

	tag, err := tx.Exec(ctx, `
		UPDATE tickets SET status=$1, status_updated_at=$2, status_updated_by=$3
		WHERE id=$4
	`, status.Label(), updatedAt, updatedBy, id)
	if err != nil {
		if isUniqueViolation(err, "tickets_pending_phone_subject_idx") {
			return nil, utils.ErrDuplicatePendingTicket
		}
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, utils.ErrTicketNotFound
	}

	row := tx.QueryRow(ctx, baseSelectTicket()+" WHERE id=$1", id)
	return scanTicket(row)
}

/* ---------- delete / reads ---------- */

func (r *ticketRepo) Delete(ctx context.Context, id int) (int64, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM tickets WHERE id=$1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *ticketRepo) GetByID(ctx context.Context, id int) (*models.Ticket, error) {
	row := r.db.QueryRow(ctx, baseSelectTicket()+" WHERE id=$1", id)
	t, err := scanTicket(row)
	if err == pgx.ErrNoRows {
		return nil, utils.ErrTicketNotFound
	}
	return t, err
}

func (r *ticketRepo) List(ctx context.Context) ([]*models.Ticket, error) {
	rows, err := r.db.Query(ctx, baseSelectTicket()+" ORDER BY submitted_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

func (r *ticketRepo) ListByStatus(ctx context.Context, status models.Status) ([]*models.Ticket, error) {
	rows, err := r.db.Query(ctx, baseSelectTicket()+" WHERE status=$1 ORDER BY submitted_at DESC, id DESC", status.Label())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTickets(rows)
}

/* ---------- internals ---------- */

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var (
		t             models.Ticket
		categoryLabel string
		statusLabel   string
	)
	if err := row.Scan(
		&t.ID, &t.UnitNumber, &t.ApartmentName, &t.Name, &t.PhoneNumber,
		&t.Email, &t.MessengerLink, &categoryLabel, &t.Subject, &t.Body,
		&statusLabel, &t.SubmittedAt, &t.StatusUpdatedAt, &t.StatusUpdatedBy,
	); err != nil {
		return nil, err
	}

	category, err := models.ParseCategory(categoryLabel)
	if err != nil {
		return nil, err
	}
	status, err := models.ParseStatus(statusLabel)
	if err != nil {
		return nil, err
	}
	t.Category = category
	t.Status = status
	return &t, nil
}

func scanTickets(rows pgx.Rows) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
