package repo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/vacation-planner/internal/domain"
)

// VacationRepo defines the persistence operations for Vacations and their
// ordered leg reference lists.
type VacationRepo interface {
	// Create inserts a new vacation owned by vacation.UserID and returns the
	// persisted record with an empty leg list.
	Create(ctx context.Context, vacation domain.Vacation) (domain.Vacation, error)

	// GetByID retrieves a vacation with its leg ids in position order.
	// Returns domain.ErrNotFound if no vacation with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Vacation, error)

	// ListByIDs resolves a set of vacation ids, oldest first.
	// Ids that do not exist are skipped.
	ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Vacation, error)

	// UpdateBudget applies the non-nil budget fields and returns the updated
	// record. Returns domain.ErrNotFound if no vacation with that ID exists.
	UpdateBudget(ctx context.Context, id uuid.UUID, patch domain.BudgetPatch) (domain.Vacation, error)

	// AppendLeg adds legID at the end of the vacation's leg list and returns
	// the position it was given.
	AppendLeg(ctx context.Context, vacationID, legID uuid.UUID) (int, error)
}

// pgVacationRepo is the Postgres implementation of VacationRepo.
type pgVacationRepo struct {
	db db
}

// NewVacationRepo constructs a VacationRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewVacationRepo(db db) VacationRepo {
	return &pgVacationRepo{db: db}
}

const vacationColumns = `
	v.id, v.user_id, v.name, v.money_budget, v.days_budget, v.start_date,
	v.num_days, v.created_at, v.updated_at,
	ARRAY(SELECT vl.leg_id FROM vacation_legs vl WHERE vl.vacation_id = v.id ORDER BY vl.position)`

// Create inserts a new vacation row and returns the full persisted record.
func (r *pgVacationRepo) Create(ctx context.Context, vacation domain.Vacation) (domain.Vacation, error) {
	const q = `
		WITH v AS (
			INSERT INTO vacations (user_id, name, money_budget, days_budget, start_date, num_days)
			VALUES (@user_id, @name, @money_budget, @days_budget, @start_date, @num_days)
			RETURNING *
		)
		SELECT v.id, v.user_id, v.name, v.money_budget, v.days_budget, v.start_date,
		       v.num_days, v.created_at, v.updated_at, '{}'::uuid[]
		FROM v`

	args := pgx.NamedArgs{
		"user_id":      vacation.UserID,
		"name":         vacation.Name,
		"money_budget": vacation.Budget.MoneyBudget,
		"days_budget":  vacation.Budget.DaysBudget,
		"start_date":   vacation.StartDate, // nil becomes NULL
		"num_days":     vacation.NumDays,
	}

	result, err := scanVacation(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("repo.VacationRepo.Create: %w", err)
	}
	return result, nil
}

// GetByID retrieves a vacation by primary key.
func (r *pgVacationRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Vacation, error) {
	q := `SELECT ` + vacationColumns + ` FROM vacations v WHERE v.id = @id`

	result, err := scanVacation(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("repo.VacationRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByIDs is the equivalent of a document-store "$in" lookup.
func (r *pgVacationRepo) ListByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Vacation, error) {
	q := `SELECT ` + vacationColumns + `
		FROM vacations v
		WHERE v.id = ANY(@ids)
		ORDER BY v.created_at, v.id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"ids": uuidArray(ids)})
	if err != nil {
		return nil, fmt.Errorf("repo.VacationRepo.ListByIDs: %w", err)
	}
	defer rows.Close()

	vacations := []domain.Vacation{}
	for rows.Next() {
		v, err := scanVacation(rows)
		if err != nil {
			return nil, fmt.Errorf("repo.VacationRepo.ListByIDs: scan: %w", err)
		}
		vacations = append(vacations, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.VacationRepo.ListByIDs: rows: %w", err)
	}
	return vacations, nil
}

// UpdateBudget writes only the budget fields present in patch.
func (r *pgVacationRepo) UpdateBudget(ctx context.Context, id uuid.UUID, patch domain.BudgetPatch) (domain.Vacation, error) {
	const q = `
		UPDATE vacations
		SET money_budget = COALESCE(@money_budget, money_budget),
		    days_budget  = COALESCE(@days_budget, days_budget),
		    updated_at   = now()
		WHERE id = @id`

	args := pgx.NamedArgs{
		"id":           id,
		"money_budget": patch.MoneyBudget,
		"days_budget":  patch.DaysBudget,
	}

	tag, err := r.db.Exec(ctx, q, args)
	if err != nil {
		return domain.Vacation{}, fmt.Errorf("repo.VacationRepo.UpdateBudget: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Vacation{}, fmt.Errorf("repo.VacationRepo.UpdateBudget: %w", domain.ErrNotFound)
	}
	return r.GetByID(ctx, id)
}

// AppendLeg inserts the leg reference at the next free position.
// Two concurrent appends to the same vacation can pick the same position; the
// loser fails on the primary key and surfaces as an error.
func (r *pgVacationRepo) AppendLeg(ctx context.Context, vacationID, legID uuid.UUID) (int, error) {
	const q = `
		INSERT INTO vacation_legs (vacation_id, leg_id, position)
		SELECT @vacation_id::uuid, @leg_id::uuid, COALESCE(MAX(position) + 1, 0)
		FROM vacation_legs
		WHERE vacation_id = @vacation_id
		RETURNING position`

	var position int
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"vacation_id": vacationID, "leg_id": legID}).Scan(&position)
	if err != nil {
		return 0, fmt.Errorf("repo.VacationRepo.AppendLeg: %w", mapError(err))
	}
	if _, err := r.db.Exec(ctx, `UPDATE vacations SET updated_at = now() WHERE id = @id`, pgx.NamedArgs{"id": vacationID}); err != nil {
		return 0, fmt.Errorf("repo.VacationRepo.AppendLeg: touch: %w", err)
	}
	return position, nil
}

// scanVacation maps a row selected with vacationColumns into a domain.Vacation.
func scanVacation(s scanner) (domain.Vacation, error) {
	var (
		v         domain.Vacation
		id        pgtype.UUID
		userID    pgtype.UUID
		startDate pgtype.Date
		legIDs    []pgtype.UUID
	)

	err := s.Scan(&id, &userID, &v.Name, &v.Budget.MoneyBudget, &v.Budget.DaysBudget,
		&startDate, &v.NumDays, &v.CreatedAt, &v.UpdatedAt, &legIDs)
	if err != nil {
		return domain.Vacation{}, mapError(err)
	}

	v.ID = uuid.UUID(id.Bytes)
	v.UserID = uuid.UUID(userID.Bytes)
	if startDate.Valid {
		sd := startDate.Time
		v.StartDate = &sd
	}
	v.LegIDs = fromUUIDArray(legIDs)
	return v, nil
}
