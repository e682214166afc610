package availability

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/scheduling-service/internal/domain"
	availabilityRepo "github.com/glowbook/scheduling-service/internal/infra/storage/availability"
	"github.com/glowbook/scheduling-service/internal/service/availability/models"
)

type memRuleRepo struct {
	nextID int64
	rules  []*domain.AvailabilityRule
}

func (r *memRuleRepo) Create(_ context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	r.nextID++
	created := *rule
	created.ID = r.nextID
	r.rules = append(r.rules, &created)
	return &created, nil
}

func (r *memRuleRepo) GetByID(_ context.Context, id int64) (*domain.AvailabilityRule, error) {
	for _, rule := range r.rules {
		if rule.ID == id {
			return rule, nil
		}
	}
	return nil, availabilityRepo.ErrRuleNotFound
}

func (r *memRuleRepo) GetActiveByStylist(_ context.Context, stylistID int64) ([]*domain.AvailabilityRule, error) {
	result := make([]*domain.AvailabilityRule, 0)
	for _, rule := range r.rules {
		if rule.StylistID == stylistID && rule.IsActive {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (r *memRuleRepo) GetActiveByStylistAndDay(_ context.Context, stylistID int64, dayOfWeek int) ([]*domain.AvailabilityRule, error) {
	result := make([]*domain.AvailabilityRule, 0)
	for _, rule := range r.rules {
		if rule.StylistID == stylistID && rule.DayOfWeek == dayOfWeek && rule.IsActive {
			result = append(result, rule)
		}
	}
	return result, nil
}

func (r *memRuleRepo) Deactivate(_ context.Context, id int64) error {
	for _, rule := range r.rules {
		if rule.ID == id {
			rule.IsActive = false
			return nil
		}
	}
	return availabilityRepo.ErrRuleNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func addRuleRequest(day int, start, end string) *models.AddRuleRequest {
	return &models.AddRuleRequest{
		UserID:    10,
		StylistID: 10,
		DayOfWeek: day,
		StartTime: start,
		EndTime:   end,
	}
}

func TestAddRule(t *testing.T) {
	svc := NewService(&memRuleRepo{}, nopLogger{})

	created, err := svc.AddRule(context.Background(), addRuleRequest(1, "09:00", "18:00"))
	require.NoError(t, err)
	assert.Equal(t, int64(10), created.StylistID)
	assert.Equal(t, "09:00", created.StartTime)
	assert.True(t, created.IsActive)

	t.Run("start not before end", func(t *testing.T) {
		_, err := svc.AddRule(context.Background(), addRuleRequest(2, "18:00", "09:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)

		_, err = svc.AddRule(context.Background(), addRuleRequest(2, "09:00", "09:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed time", func(t *testing.T) {
		_, err := svc.AddRule(context.Background(), addRuleRequest(2, "9am", "18:00"))
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("overlap same day rejected", func(t *testing.T) {
		_, err := svc.AddRule(context.Background(), addRuleRequest(1, "12:00", "20:00"))
		assert.ErrorIs(t, err, ErrRuleOverlap)
	})

	t.Run("touching window allowed", func(t *testing.T) {
		_, err := svc.AddRule(context.Background(), addRuleRequest(1, "18:00", "20:00"))
		assert.NoError(t, err)
	})

	t.Run("same window other day allowed", func(t *testing.T) {
		_, err := svc.AddRule(context.Background(), addRuleRequest(3, "09:00", "18:00"))
		assert.NoError(t, err)
	})

	t.Run("foreign schedule denied", func(t *testing.T) {
		req := addRuleRequest(4, "09:00", "18:00")
		req.UserID = 11
		_, err := svc.AddRule(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestRemoveRule(t *testing.T) {
	repo := &memRuleRepo{}
	svc := NewService(repo, nopLogger{})

	created, err := svc.AddRule(context.Background(), addRuleRequest(1, "09:00", "18:00"))
	require.NoError(t, err)

	removeReq := &models.RemoveRuleRequest{UserID: 10, StylistID: 10, RuleID: created.ID}
	require.NoError(t, svc.RemoveRule(context.Background(), removeReq))

	rules, err := svc.ListRules(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, rules.Rules)

	t.Run("idempotent", func(t *testing.T) {
		assert.NoError(t, svc.RemoveRule(context.Background(), removeReq))
	})

	t.Run("unknown rule", func(t *testing.T) {
		err := svc.RemoveRule(context.Background(), &models.RemoveRuleRequest{UserID: 10, StylistID: 10, RuleID: 999})
		assert.ErrorIs(t, err, ErrRuleNotFound)
	})

	t.Run("foreign rule denied", func(t *testing.T) {
		err := svc.RemoveRule(context.Background(), &models.RemoveRuleRequest{UserID: 11, StylistID: 10, RuleID: created.ID})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("window freed for a new rule", func(t *testing.T) {
		_, err := svc.AddRule(context.Background(), addRuleRequest(1, "10:00", "16:00"))
		assert.NoError(t, err)
	})
}
