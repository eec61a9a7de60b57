package plans

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/woodgrain-labs/furnplan-backend/internal/design/schema"
)

// AnonymousOwner is the sentinel owner for plans saved without authentication.
// Rows it owns are readable and mutable by any caller.
const AnonymousOwner = "anonymous"

var ErrPlanNotFound = errors.New("plan not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// Summary is the list-view projection of a stored plan.
type Summary struct {
	ID        string    `json:"id"`
	PlanName  string    `json:"plan_name"`
	Status    string    `json:"status"`
	Version   int       `json:"version"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Create stores a validated plan document. An empty plan id is assigned one.
func (r *Repo) Create(ctx context.Context, plan *schema.BuildPlan) error {
	if plan.ID == "" {
		plan.ID = uuid.New().String()
	}
	if plan.UserID == "" {
		plan.UserID = AnonymousOwner
	}

	briefData, err := json.Marshal(plan.DesignBrief)
	if err != nil {
		return fmt.Errorf("marshal brief: %w", err)
	}
	planData, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("marshal plan: %w", err)
	}

	const q = `
insert into build_plans (id, user_id, plan_name, status, version, design_brief, plan_data)
values ($1, $2, $3, $4, $5, $6, $7);
`
	_, err = r.db.Exec(ctx, q,
		plan.ID, plan.UserID, plan.PlanName, plan.Status, int(plan.Version), briefData, planData)
	if err != nil {
		return fmt.Errorf("insert plan: %w", err)
	}
	return nil
}

// Get retrieves a plan by id, scoped to the caller. Rows owned by the
// anonymous sentinel are visible to everyone.
func (r *Repo) Get(ctx context.Context, userID, planID string) (*schema.BuildPlan, error) {
	const q = `
select plan_data
from build_plans
where id = $1 and (user_id = $2 or user_id = $3);
`
	var data []byte
	err := r.db.QueryRow(ctx, q, planID, userID, AnonymousOwner).Scan(&data)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get plan: %w", err)
	}

	var plan schema.BuildPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return nil, fmt.Errorf("unmarshal plan: %w", err)
	}
	return &plan, nil
}

// List returns summaries of the caller's plans plus anonymous ones, most
// recently updated first.
func (r *Repo) List(ctx context.Context, userID string) ([]Summary, error) {
	const q = `
select id, plan_name, status, version, created_at, updated_at
from build_plans
where user_id = $1 or user_id = $2
order by updated_at desc;
`
	rows, err := r.db.Query(ctx, q, userID, AnonymousOwner)
	if err != nil {
		return nil, fmt.Errorf("list plans: %w", err)
	}
	defer rows.Close()

	out := make([]Summary, 0, 16)
	for rows.Next() {
		var s Summary
		if err := rows.Scan(&s.ID, &s.PlanName, &s.Status, &s.Version, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// Update replaces a stored plan document, bumping its version. The stored
// version wins over whatever the submitted document carries.
func (r *Repo) Update(ctx context.Context, userID string, plan *schema.BuildPlan) (*schema.BuildPlan, error) {
	existing, err := r.Get(ctx, userID, plan.ID)
	if err != nil {
		return nil, err
	}

	plan.Version = existing.Version + 1
	plan.UpdatedAt = time.Now().UTC().Format(time.RFC3339)
	if plan.CreatedAt == "" {
		plan.CreatedAt = existing.CreatedAt
	}

	briefData, err := json.Marshal(plan.DesignBrief)
	if err != nil {
		return nil, fmt.Errorf("marshal brief: %w", err)
	}
	planData, err := json.Marshal(plan)
	if err != nil {
		return nil, fmt.Errorf("marshal plan: %w", err)
	}

	const q = `
update build_plans
set plan_name = $3, status = $4, version = $5, design_brief = $6, plan_data = $7, updated_at = now()
where id = $1 and (user_id = $2 or user_id = $8);
`
	ct, err := r.db.Exec(ctx, q,
		plan.ID, userID, plan.PlanName, plan.Status, int(plan.Version), briefData, planData, AnonymousOwner)
	if err != nil {
		return nil, fmt.Errorf("update plan: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return nil, ErrPlanNotFound
	}
	return plan, nil
}

// Delete removes a plan. Returns false when no owned row matched.
func (r *Repo) Delete(ctx context.Context, userID, planID string) (bool, error) {
	const q = `
delete from build_plans
where id = $1 and (user_id = $2 or user_id = $3);
`
	ct, err := r.db.Exec(ctx, q, planID, userID, AnonymousOwner)
	if err != nil {
		return false, fmt.Errorf("delete plan: %w", err)
	}
	return ct.RowsAffected() > 0, nil
}
