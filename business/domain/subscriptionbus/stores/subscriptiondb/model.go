package subscriptiondb

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/planora/planora/business/domain/subscriptionbus"
	"github.com/planora/planora/business/types/plan"
)

type subscriptionDB struct {
	ID             uuid.UUID      `db:"subscription_id"`
	WorkspaceID    uuid.UUID      `db:"workspace_id"`
	Plan           string         `db:"plan"`
	PendingPlan    sql.NullString `db:"pending_plan"`
	Status         string         `db:"status"`
	LimitUsers     int            `db:"limit_users"`
	LimitCampaigns int            `db:"limit_campaigns"`
	LimitPlanning  int            `db:"limit_planning"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func toDBSubscription(bus subscriptionbus.Subscription) subscriptionDB {
	db := subscriptionDB{
		ID:             bus.ID,
		WorkspaceID:    bus.WorkspaceID,
		Plan:           bus.Plan.String(),
		Status:         bus.Status,
		LimitUsers:     bus.Limits.Users,
		LimitCampaigns: bus.Limits.Campaigns,
		LimitPlanning:  bus.Limits.Planning,
		CreatedAt:      bus.CreatedAt.UTC(),
		UpdatedAt:      bus.UpdatedAt.UTC(),
	}

	if !bus.PendingPlan.IsZero() {
		db.PendingPlan = sql.NullString{String: bus.PendingPlan.String(), Valid: true}
	}

	return db
}

func toBusSubscription(db subscriptionDB) (subscriptionbus.Subscription, error) {
	pl, err := plan.Parse(db.Plan)
	if err != nil {
		return subscriptionbus.Subscription{}, fmt.Errorf("parse plan: %w", err)
	}

	bus := subscriptionbus.Subscription{
		ID:          db.ID,
		WorkspaceID: db.WorkspaceID,
		Plan:        pl,
		Status:      db.Status,
		Limits: plan.Limits{
			Users:     db.LimitUsers,
			Campaigns: db.LimitCampaigns,
			Planning:  db.LimitPlanning,
		},
		CreatedAt: db.CreatedAt.In(time.Local),
		UpdatedAt: db.UpdatedAt.In(time.Local),
	}

	if db.PendingPlan.Valid {
		pending, err := plan.Parse(db.PendingPlan.String)
		if err != nil {
			return subscriptionbus.Subscription{}, fmt.Errorf("parse pending plan: %w", err)
		}
		bus.PendingPlan = pending
	}

	return bus, nil
}
