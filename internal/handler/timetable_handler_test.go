package handler

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/timetable"
)

type timetableServiceMock struct {
	captured dto.GenerateTimetableRequest
	mode     timetable.Mode
	proposal *dto.GenerateTimetableResponse
	catalog  *dto.TimetableCatalogResponse
	err      error
}

func (m *timetableServiceMock) Generate(ctx context.Context, req dto.GenerateTimetableRequest, mode timetable.Mode) (*dto.GenerateTimetableResponse, error) {
	m.captured = req
	m.mode = mode
	if m.err != nil {
		return nil, m.err
	}
	return &dto.GenerateTimetableResponse{ProposalID: "proposal-1", Status: "ok", ScheduledCount: 2}, nil
}

func (m *timetableServiceMock) GetProposal(id string) (*dto.GenerateTimetableResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.proposal, nil
}

func (m *timetableServiceMock) Catalog(ctx context.Context) (*dto.TimetableCatalogResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.catalog, nil
}

func TestTimetableHandlerGenerateStrict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{}
	h := &TimetableHandler{service: mockSvc}

	payload := []byte(`{"days":["Mon","Tue"],"slotsPerDay":3,"classrooms":[{"id":"r1","name":"Room 1","capacity":40}],"batches":[{"id":"b1","name":"Batch 1","size":30}],"subjects":[{"id":"math","name":"Math","batchId":"b1","classesPerWeek":2}],"faculties":[{"id":"f1","name":"Teacher 1","canTeach":["math"]}]}`)
	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.Generate(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, timetable.ModeStrict, mockSvc.mode)
	require.Equal(t, "b1", mockSvc.captured.Batches[0].ID)
}

func TestTimetableHandlerGenerateHybridUsesHybridMode(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &timetableServiceMock{}
	h := &TimetableHandler{service: mockSvc}

	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate/hybrid", bytes.NewReader([]byte(`{}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.GenerateHybrid(c)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, timetable.ModeHybrid, mockSvc.mode)
}

func TestTimetableHandlerGenerateInvalidJSON(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &TimetableHandler{service: &timetableServiceMock{}}

	req, _ := http.NewRequest(http.MethodPost, "/schedule/generate", bytes.NewReader([]byte(`{"days":`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req

	h.Generate(c)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestTimetableHandlerExportPDFDisabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := &TimetableHandler{service: &timetableServiceMock{}, pdfEnabled: false}

	req, _ := http.NewRequest(http.MethodGet, "/schedule/p1/export.pdf", nil)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = req
	c.Params = gin.Params{{Key: "proposalId", Value: "p1"}}

	h.ExportPDF(c)

	require.Equal(t, http.StatusForbidden, w.Code)
}
