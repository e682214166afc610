package offerings

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glowbook/scheduling-service/internal/domain"
	serviceRepo "github.com/glowbook/scheduling-service/internal/infra/storage/serviceoffering"
	"github.com/glowbook/scheduling-service/internal/service/offerings/models"
)

type memServiceRepo struct {
	nextID    int64
	offerings []*domain.ServiceOffering
}

func (r *memServiceRepo) Create(_ context.Context, offering *domain.ServiceOffering) (*domain.ServiceOffering, error) {
	r.nextID++
	created := *offering
	created.ID = r.nextID
	r.offerings = append(r.offerings, &created)
	return &created, nil
}

func (r *memServiceRepo) GetByID(_ context.Context, id int64) (*domain.ServiceOffering, error) {
	for _, offering := range r.offerings {
		if offering.ID == id {
			return offering, nil
		}
	}
	return nil, serviceRepo.ErrServiceNotFound
}

func (r *memServiceRepo) GetActiveByStylist(_ context.Context, stylistID int64) ([]*domain.ServiceOffering, error) {
	result := make([]*domain.ServiceOffering, 0)
	for _, offering := range r.offerings {
		if offering.StylistID == stylistID && offering.IsActive {
			result = append(result, offering)
		}
	}
	return result, nil
}

func (r *memServiceRepo) Deactivate(_ context.Context, id int64) error {
	for _, offering := range r.offerings {
		if offering.ID == id {
			offering.IsActive = false
			return nil
		}
	}
	return serviceRepo.ErrServiceNotFound
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func createRequest() *models.CreateServiceRequest {
	return &models.CreateServiceRequest{
		UserID:          10,
		StylistID:       10,
		Name:            "Стрижка",
		DurationMinutes: 60,
		Price:           1500,
	}
}

func TestCreateService(t *testing.T) {
	svc := NewService(&memServiceRepo{}, nopLogger{})

	created, err := svc.CreateService(context.Background(), createRequest())
	require.NoError(t, err)
	assert.Equal(t, "Стрижка", created.Name)
	assert.True(t, created.IsActive)

	t.Run("name trimmed", func(t *testing.T) {
		req := createRequest()
		req.Name = "  Окрашивание  "
		created, err := svc.CreateService(context.Background(), req)
		require.NoError(t, err)
		assert.Equal(t, "Окрашивание", created.Name)
	})

	t.Run("empty name", func(t *testing.T) {
		req := createRequest()
		req.Name = "   "
		_, err := svc.CreateService(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("name too long", func(t *testing.T) {
		req := createRequest()
		req.Name = strings.Repeat("ы", domain.MaxServiceNameLength+1)
		_, err := svc.CreateService(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("duration out of range", func(t *testing.T) {
		req := createRequest()
		req.DurationMinutes = domain.MinServiceDurationMinutes - 1
		_, err := svc.CreateService(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)

		req.DurationMinutes = domain.MaxServiceDurationMinutes + 1
		_, err = svc.CreateService(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("negative price", func(t *testing.T) {
		req := createRequest()
		req.Price = -1
		_, err := svc.CreateService(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("foreign catalog denied", func(t *testing.T) {
		req := createRequest()
		req.UserID = 11
		_, err := svc.CreateService(context.Background(), req)
		assert.ErrorIs(t, err, ErrAccessDenied)
	})
}

func TestRemoveService(t *testing.T) {
	repo := &memServiceRepo{}
	svc := NewService(repo, nopLogger{})

	created, err := svc.CreateService(context.Background(), createRequest())
	require.NoError(t, err)

	t.Run("foreign service denied", func(t *testing.T) {
		err := svc.RemoveService(context.Background(), &models.RemoveServiceRequest{
			UserID: 11, StylistID: 10, ServiceID: created.ID,
		})
		assert.ErrorIs(t, err, ErrAccessDenied)
	})

	t.Run("soft delete hides from listing", func(t *testing.T) {
		err := svc.RemoveService(context.Background(), &models.RemoveServiceRequest{
			UserID: 10, StylistID: 10, ServiceID: created.ID,
		})
		require.NoError(t, err)

		listed, err := svc.ListServices(context.Background(), 10)
		require.NoError(t, err)
		assert.Empty(t, listed.Services)
	})

	t.Run("unknown service", func(t *testing.T) {
		err := svc.RemoveService(context.Background(), &models.RemoveServiceRequest{
			UserID: 10, StylistID: 10, ServiceID: 999,
		})
		assert.ErrorIs(t, err, ErrServiceNotFound)
	})
}
