package handler_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"reportbox/backend/internal/models"
	"reportbox/backend/internal/storage"
)

func validReportBody() map[string]any {
	return map[string]any{
		"name":        "A",
		"email":       "a@x.com",
		"location":    "City",
		"category":    "Environment",
		"title":       "T",
		"description": "D",
	}
}

// TestCreateReport_MinimalPayload: a valid payload without phone or media
// yields a success envelope with a server-assigned id and createdAt.
func TestCreateReport_MinimalPayload(t *testing.T) {
	env := newTestEnv(t)

	assigned := primitive.NewObjectID()
	env.reports.On("InsertReport", mock.Anything, mock.AnythingOfType("*models.Report")).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(*models.Report)
			r.ID = assigned
		}).
		Return(nil).Once()

	before := time.Now().UTC()
	w := env.doJSON(t, http.MethodPost, "/api/ReportForm", validReportBody())

	require.Equal(t, http.StatusCreated, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, http.StatusCreated, statusOf(envelope))

	data := envelope["data"].(map[string]any)
	assert.Equal(t, assigned.Hex(), data["id"])
	assert.Equal(t, "A", data["name"])
	assert.Equal(t, "medium", data["priority"], "priority defaults to medium")
	assert.Equal(t, "pending", data["status"])

	createdAt, err := time.Parse(time.RFC3339Nano, data["createdAt"].(string))
	require.NoError(t, err)
	assert.False(t, createdAt.Before(before.Truncate(time.Second)),
		"createdAt must be at or after submission time")

	env.reports.AssertExpectations(t)
}

// TestCreateReport_MissingRequiredField is rejected 400 before any store call.
func TestCreateReport_MissingRequiredField(t *testing.T) {
	required := []string{"name", "email", "location", "category", "title", "description"}

	for _, field := range required {
		t.Run(field, func(t *testing.T) {
			env := newTestEnv(t)

			body := validReportBody()
			delete(body, field)

			w := env.doJSON(t, http.MethodPost, "/api/ReportForm", body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			env.reports.AssertNotCalled(t, "InsertReport", mock.Anything, mock.Anything)
		})
	}
}

func TestCreateReport_RejectsUnknownPriority(t *testing.T) {
	env := newTestEnv(t)

	body := validReportBody()
	body["priority"] = "critical"

	w := env.doJSON(t, http.MethodPost, "/api/ReportForm", body)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.reports.AssertNotCalled(t, "InsertReport", mock.Anything, mock.Anything)
}

// TestCreateReport_DispatchesNotification: every stored report reaches the
// notifier with its submitted priority; the priority filter lives downstream.
func TestCreateReport_DispatchesNotification(t *testing.T) {
	env := newTestEnv(t)

	env.reports.On("InsertReport", mock.Anything, mock.Anything).Return(nil).Once()

	body := validReportBody()
	body["priority"] = "urgent"
	w := env.doJSON(t, http.MethodPost, "/api/ReportForm", body)

	require.Equal(t, http.StatusCreated, w.Code)
	select {
	case r := <-env.notifier.Notified:
		assert.Equal(t, models.PriorityUrgent, r.Priority)
		assert.Equal(t, "T", r.Title)
	case <-time.After(time.Second):
		t.Fatal("notifier was not invoked for the created report")
	}
}

func TestCreateReport_StoreFailure(t *testing.T) {
	env := newTestEnv(t)

	env.reports.On("InsertReport", mock.Anything, mock.Anything).
		Return(errors.New("connection reset")).Once()

	w := env.doJSON(t, http.MethodPost, "/api/ReportForm", validReportBody())

	require.Equal(t, http.StatusInternalServerError, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Failed to submit report.", envelope["message"])

	errs := envelope["errors"].(map[string]any)
	assert.Contains(t, errs["exception"], "connection reset")

	select {
	case <-env.notifier.Notified:
		t.Fatal("failed creates must not notify")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestListReports_ReturnsEnvelope(t *testing.T) {
	env := newTestEnv(t)

	stored := []models.Report{
		{ID: primitive.NewObjectID(), Name: "A", Title: "T1", Priority: "medium"},
		{ID: primitive.NewObjectID(), Name: "B", Title: "T2", Priority: "urgent"},
	}
	env.reports.On("ListReports", mock.Anything).Return(stored, nil).Once()

	w := env.doJSON(t, http.MethodGet, "/api/ReportForm", nil)

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, true, envelope["success"])
	assert.Equal(t, "Report data fetched successfully.", envelope["message"])
	assert.Len(t, envelope["data"], 2)
}

// TestListReports_Idempotent verifies two list calls without intervening
// writes return identical data.
func TestListReports_Idempotent(t *testing.T) {
	env := newTestEnv(t)

	stored := []models.Report{{ID: primitive.NewObjectID(), Name: "A", Title: "T"}}
	env.reports.On("ListReports", mock.Anything).Return(stored, nil).Twice()

	first := env.doJSON(t, http.MethodGet, "/api/ReportForm", nil)
	second := env.doJSON(t, http.MethodGet, "/api/ReportForm", nil)

	assert.Equal(t, first.Body.String(), second.Body.String())
}

func TestListReports_StoreFailure(t *testing.T) {
	env := newTestEnv(t)

	env.reports.On("ListReports", mock.Anything).Return(nil, errors.New("timeout")).Once()

	w := env.doJSON(t, http.MethodGet, "/api/ReportForm", nil)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	envelope := decodeEnvelope(t, w)
	assert.Equal(t, false, envelope["success"])
	assert.Equal(t, "Failed to fetch report data.", envelope["message"])
}

// TestUpdateReportStatus_PartialUpdate verifies only status moves and the
// updated document comes back.
func TestUpdateReportStatus_PartialUpdate(t *testing.T) {
	env := newTestEnv(t)

	id := primitive.NewObjectID()
	updated := &models.Report{
		ID: id, Name: "A", Email: "a@x.com", Title: "T",
		Priority: "medium", Status: models.StatusResolved,
	}
	env.reports.On("UpdateReportStatus", mock.Anything, id.Hex(), "resolved").
		Return(updated, nil).Once()

	w := env.doJSON(t, http.MethodPatch, "/api/ReportForm/"+id.Hex(),
		map[string]string{"status": "resolved"})

	require.Equal(t, http.StatusOK, w.Code)
	envelope := decodeEnvelope(t, w)
	data := envelope["data"].(map[string]any)
	assert.Equal(t, "resolved", data["status"])
	assert.Equal(t, "A", data["name"], "other fields stay unchanged")

	env.reports.AssertExpectations(t)
}

func TestUpdateReportStatus_UnknownID(t *testing.T) {
	env := newTestEnv(t)

	env.reports.On("UpdateReportStatus", mock.Anything, "deadbeef", "resolved").
		Return(nil, storage.ErrNotFound).Once()

	w := env.doJSON(t, http.MethodPatch, "/api/ReportForm/deadbeef",
		map[string]string{"status": "resolved"})

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateReportStatus_RejectsUnknownStatus(t *testing.T) {
	env := newTestEnv(t)

	w := env.doJSON(t, http.MethodPatch, "/api/ReportForm/deadbeef",
		map[string]string{"status": "closed"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	env.reports.AssertNotCalled(t, "UpdateReportStatus", mock.Anything, mock.Anything, mock.Anything)
}
