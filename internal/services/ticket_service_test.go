package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

/* ------------------------------------------------------------------
   Fakes
------------------------------------------------------------------ */

type fakeTicketRepo struct {
	tickets map[int]*models.Ticket
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[int]*models.Ticket{}, nextID: 1}
}

func (f *fakeTicketRepo) Create(_ context.Context, t *models.Ticket) (*models.Ticket, error) {
	for _, existing := range f.tickets {
		if existing.PhoneNumber == t.PhoneNumber && existing.Subject == t.Subject && existing.Status == models.StatusPending {
			return nil, utils.ErrDuplicatePendingTicket
		}
	}
	created := *t
	created.ID = f.nextID
	f.nextID++
	f.tickets[created.ID] = &created
	return &created, nil
}

func (f *fakeTicketRepo) UpdateStatus(_ context.Context, id int, status models.Status, updatedAt time.Time, updatedBy string) (*models.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, utils.ErrTicketNotFound
	}
	t.Status = status
	t.StatusUpdatedAt = updatedAt
	t.StatusUpdatedBy = updatedBy
	return t, nil
}

func (f *fakeTicketRepo) Delete(_ context.Context, id int) (int64, error) {
	if _, ok := f.tickets[id]; !ok {
		return 0, nil
	}
	delete(f.tickets, id)
	return 1, nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id int) (*models.Ticket, error) {
	t, ok := f.tickets[id]
	if !ok {
		return nil, utils.ErrTicketNotFound
	}
	return t, nil
}

func (f *fakeTicketRepo) List(_ context.Context) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, t := range f.tickets {
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTicketRepo) ListByStatus(_ context.Context, status models.Status) ([]*models.Ticket, error) {
	var out []*models.Ticket
	for _, t := range f.tickets {
		if t.Status == status {
			out = append(out, t)
		}
	}
	return out, nil
}

type fakeRecaptcha struct {
	ok bool
}

func (f *fakeRecaptcha) Verify(_ context.Context, _ string) bool { return f.ok }

/* ------------------------------------------------------------------
   Helpers
------------------------------------------------------------------ */

func submitReq(phone, subject string) dtos.SubmitTicketRequest {
	return dtos.SubmitTicketRequest{
		RecaptchaToken: "token",
		UnitNumber:     "101",
		ApartmentName:  "Maple",
		Name:           "Ana Reyes",
		PhoneNumber:    phone,
		Category:       "Maintenance & Repairs",
		Subject:        subject,
		Body:           "The faucet leaks.",
		SubmittedAt:    "2025-03-01T09:30:00Z",
	}
}

/* ------------------------------------------------------------------
   Tests
------------------------------------------------------------------ */

func TestSubmitTicketRecaptchaGate(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: false})

	_, err := svc.SubmitTicket(context.Background(), submitReq("555-0001", "Leak"))
	appErr := requireAppError(t, err, 403)
	require.Equal(t, utils.ErrCodeRecaptcha, appErr.Code)
	require.Empty(t, repo.tickets)
}

func TestSubmitTicketDefaults(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: true})

	resp, err := svc.SubmitTicket(context.Background(), submitReq("555-0001", "Leak"))
	require.NoError(t, err)
	require.NotZero(t, resp.ID)

	stored := repo.tickets[resp.ID]
	require.Equal(t, models.StatusPending, stored.Status)
	require.Equal(t, SystemUpdater, stored.StatusUpdatedBy)
	require.Equal(t, stored.SubmittedAt, stored.StatusUpdatedAt)
	require.Equal(t, models.CategoryMaintenanceAndRepairs, stored.Category)
}

func TestSubmitTicketValidation(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: true})

	cases := []struct {
		name   string
		mutate func(*dtos.SubmitTicketRequest)
	}{
		{"blank unit number", func(r *dtos.SubmitTicketRequest) { r.UnitNumber = " " }},
		{"blank apartment", func(r *dtos.SubmitTicketRequest) { r.ApartmentName = "" }},
		{"blank name", func(r *dtos.SubmitTicketRequest) { r.Name = "" }},
		{"blank phone", func(r *dtos.SubmitTicketRequest) { r.PhoneNumber = "" }},
		{"blank subject", func(r *dtos.SubmitTicketRequest) { r.Subject = "" }},
		{"blank body", func(r *dtos.SubmitTicketRequest) { r.Body = "" }},
		{"blank submitted_at", func(r *dtos.SubmitTicketRequest) { r.SubmittedAt = "" }},
		{"unknown category", func(r *dtos.SubmitTicketRequest) { r.Category = "Plumbing" }},
		{"bad timestamp", func(r *dtos.SubmitTicketRequest) { r.SubmittedAt = "March 1st" }},
		{"unknown status", func(r *dtos.SubmitTicketRequest) { r.Status = utils.Ptr("Done") }},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			req := submitReq("555-0001", "Leak")
			c.mutate(&req)
			_, err := svc.SubmitTicket(context.Background(), req)
			requireAppError(t, err, 400)
		})
	}
	require.Empty(t, repo.tickets)
}

func TestDuplicatePendingTicketSuppressed(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: true})
	ctx := context.Background()

	first, err := svc.SubmitTicket(ctx, submitReq("555-0001", "Leak"))
	require.NoError(t, err)

	_, err = svc.SubmitTicket(ctx, submitReq("555-0001", "Leak"))
	requireAppError(t, err, 409)

	// Same phone, different subject is fine.
	_, err = svc.SubmitTicket(ctx, submitReq("555-0001", "Broken lock"))
	require.NoError(t, err)

	// Once the first is Resolved, an identical resubmission goes through.
	_, err = svc.UpdateStatus(ctx, first.ID, dtos.UpdateTicketStatusRequest{
		Status:    "Resolved",
		UpdatedAt: "2025-03-02T10:00:00Z",
	}, "admin")
	require.NoError(t, err)

	_, err = svc.SubmitTicket(ctx, submitReq("555-0001", "Leak"))
	require.NoError(t, err)
}

func TestUpdateStatusParsesLabelsLoosely(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: true})
	ctx := context.Background()

	resp, err := svc.SubmitTicket(ctx, submitReq("555-0001", "Leak"))
	require.NoError(t, err)

	ticket, err := svc.UpdateStatus(ctx, resp.ID, dtos.UpdateTicketStatusRequest{
		Status:    "in_progress",
		UpdatedAt: "2025-03-02T10:00:00Z",
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, models.StatusInProgress, ticket.Status)
	require.Equal(t, "admin", ticket.StatusUpdatedBy)

	// Closed -> Pending is allowed; there is no state machine.
	_, err = svc.UpdateStatus(ctx, resp.ID, dtos.UpdateTicketStatusRequest{
		Status:    "Closed",
		UpdatedAt: "2025-03-03T10:00:00Z",
	}, "admin")
	require.NoError(t, err)
	ticket, err = svc.UpdateStatus(ctx, resp.ID, dtos.UpdateTicketStatusRequest{
		Status:    "PENDING",
		UpdatedAt: "2025-03-04T10:00:00Z",
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, models.StatusPending, ticket.Status)
}

func TestUpdateStatusInvalidInputLeavesTicketUnchanged(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: true})
	ctx := context.Background()

	resp, err := svc.SubmitTicket(ctx, submitReq("555-0001", "Leak"))
	require.NoError(t, err)
	before := *repo.tickets[resp.ID]

	_, err = svc.UpdateStatus(ctx, resp.ID, dtos.UpdateTicketStatusRequest{
		Status:    "Done",
		UpdatedAt: "2025-03-02T10:00:00Z",
	}, "admin")
	requireAppError(t, err, 400)

	_, err = svc.UpdateStatus(ctx, resp.ID, dtos.UpdateTicketStatusRequest{
		Status:    "Resolved",
		UpdatedAt: "yesterday",
	}, "admin")
	requireAppError(t, err, 400)

	require.Equal(t, before, *repo.tickets[resp.ID])
}

func TestUpdateStatusRequiresSomeUpdater(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: true})
	ctx := context.Background()

	resp, err := svc.SubmitTicket(ctx, submitReq("555-0001", "Leak"))
	require.NoError(t, err)

	// No principal, no explicit updatedBy.
	_, err = svc.UpdateStatus(ctx, resp.ID, dtos.UpdateTicketStatusRequest{
		Status:    "Resolved",
		UpdatedAt: "2025-03-02T10:00:00Z",
	}, "")
	requireAppError(t, err, 400)

	// Explicit updatedBy wins over the principal.
	ticket, err := svc.UpdateStatus(ctx, resp.ID, dtos.UpdateTicketStatusRequest{
		Status:    "Resolved",
		UpdatedAt: "2025-03-02T10:00:00Z",
		UpdatedBy: utils.Ptr("maintenance-lead"),
	}, "admin")
	require.NoError(t, err)
	require.Equal(t, "maintenance-lead", ticket.StatusUpdatedBy)
}

func TestUpdateStatusNotFound(t *testing.T) {
	svc := NewTicketService(newFakeTicketRepo(), &fakeRecaptcha{ok: true})

	_, err := svc.UpdateStatus(context.Background(), 42, dtos.UpdateTicketStatusRequest{
		Status:    "Resolved",
		UpdatedAt: "2025-03-02T10:00:00Z",
	}, "admin")
	requireAppError(t, err, 404)
}

func TestListTicketsStatusFilter(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: true})
	ctx := context.Background()

	a, err := svc.SubmitTicket(ctx, submitReq("555-0001", "Leak"))
	require.NoError(t, err)
	_, err = svc.SubmitTicket(ctx, submitReq("555-0002", "Noise"))
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, a.ID, dtos.UpdateTicketStatusRequest{
		Status:    "Resolved",
		UpdatedAt: "2025-03-02T10:00:00Z",
	}, "admin")
	require.NoError(t, err)

	resolved, err := svc.ListTickets(ctx, "resolved")
	require.NoError(t, err)
	require.Len(t, resolved, 1)

	pending, err := svc.ListTickets(ctx, "pending")
	require.NoError(t, err)
	require.Len(t, pending, 1)

	all, err := svc.ListTickets(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)

	_, err = svc.ListTickets(ctx, "bogus")
	requireAppError(t, err, 400)
}

func TestDeleteTicket(t *testing.T) {
	repo := newFakeTicketRepo()
	svc := NewTicketService(repo, &fakeRecaptcha{ok: true})
	ctx := context.Background()

	resp, err := svc.SubmitTicket(ctx, submitReq("555-0001", "Leak"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteTicket(ctx, resp.ID))
	requireAppError(t, svc.DeleteTicket(ctx, resp.ID), 404)
}
