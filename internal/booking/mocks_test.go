package booking

import (
	"context"

	"github.com/Varun5711/autocare/internal/models"
	"github.com/stretchr/testify/mock"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) RequestUploadURL(ctx context.Context, token, fileName, fileType string) (*models.UploadTarget, error) {
	args := m.Called(ctx, token, fileName, fileType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadTarget), args.Error(1)
}

func (m *MockAPI) PutObject(ctx context.Context, uploadURL, contentType string, data []byte) error {
	args := m.Called(ctx, uploadURL, contentType, data)
	return args.Error(0)
}

func (m *MockAPI) CreateAppointment(ctx context.Context, token string, draft models.AppointmentDraft) (*models.Appointment, error) {
	args := m.Called(ctx, token, draft)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Appointment), args.Error(1)
}

type MockRefresher struct {
	mock.Mock
}

func (m *MockRefresher) Refresh(ctx context.Context) {
	m.Called(ctx)
}
