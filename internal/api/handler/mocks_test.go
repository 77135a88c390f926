package handler_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reportbox/backend/internal/models"
)

type MockReportStore struct {
	mock.Mock
}

func (m *MockReportStore) InsertReport(ctx context.Context, r *models.Report) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

func (m *MockReportStore) ListReports(ctx context.Context) ([]models.Report, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Report), args.Error(1)
}

func (m *MockReportStore) GetReportByID(ctx context.Context, id string) (*models.Report, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportStore) UpdateReportStatus(ctx context.Context, id, status string) (*models.Report, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

type MockChatStore struct {
	mock.Mock
}

func (m *MockChatStore) CreateChatUser(ctx context.Context) (*models.ChatUser, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatUser), args.Error(1)
}

func (m *MockChatStore) SaveTurn(ctx context.Context, turn *models.ChatTurn) error {
	args := m.Called(ctx, turn)
	return args.Error(0)
}

func (m *MockChatStore) History(ctx context.Context, userID string) ([]models.ChatTurn, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatTurn), args.Error(1)
}

func (m *MockChatStore) RecentTurns(ctx context.Context, userID string, n int) ([]models.ChatTurn, error) {
	args := m.Called(ctx, userID, n)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChatTurn), args.Error(1)
}

type MockOTPSender struct {
	mock.Mock
}

func (m *MockOTPSender) SendOTP(ctx context.Context, phone string) (string, error) {
	args := m.Called(ctx, phone)
	return args.String(0), args.Error(1)
}

func (m *MockOTPSender) VerifyOTP(ctx context.Context, phone, code string) (bool, error) {
	args := m.Called(ctx, phone, code)
	return args.Bool(0), args.Error(1)
}

type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Reverse(ctx context.Context, lat, lng float64) (string, error) {
	args := m.Called(ctx, lat, lng)
	return args.String(0), args.Error(1)
}

type MockAssistant struct {
	mock.Mock
}

func (m *MockAssistant) Generate(ctx context.Context, message string, history []models.ChatTurn) (string, error) {
	args := m.Called(ctx, message, history)
	return args.String(0), args.Error(1)
}

// MockNotifier records notifications on a channel so tests can wait out the
// handler's asynchronous dispatch.
type MockNotifier struct {
	Notified chan *models.Report
}

func NewMockNotifier() *MockNotifier {
	return &MockNotifier{Notified: make(chan *models.Report, 8)}
}

func (m *MockNotifier) ReportCreated(r *models.Report) {
	m.Notified <- r
}
