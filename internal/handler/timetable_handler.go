package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/timetable-api/internal/dto"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/internal/timetable"
	appErrors "github.com/noah-isme/timetable-api/pkg/errors"
	"github.com/noah-isme/timetable-api/pkg/export"
	"github.com/noah-isme/timetable-api/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest, mode timetable.Mode) (*dto.GenerateTimetableResponse, error)
	GetProposal(id string) (*dto.GenerateTimetableResponse, error)
	Catalog(ctx context.Context) (*dto.TimetableCatalogResponse, error)
}

type timetablePDFRenderer interface {
	Render(matrix []dto.MatrixRowView, title string) ([]byte, error)
}

// TimetableHandler exposes the weekly class-schedule generation endpoints.
type TimetableHandler struct {
	service    timetableGenerator
	pdf        timetablePDFRenderer
	pdfEnabled bool
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService, pdfExporter *export.TimetablePDFExporter, pdfEnabled bool) *TimetableHandler {
	return &TimetableHandler{service: svc, pdf: pdfExporter, pdfEnabled: pdfEnabled}
}

// Generate godoc
// @Summary Generate a conflict-free weekly timetable (strict mode)
// @Description Solves the full constraint model in one shot.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generate timetable payload"
// @Success 200 {object} response.Envelope
// @Router /schedule/generate [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	h.handleGenerate(c, timetable.ModeStrict)
}

// GenerateHybrid godoc
// @Summary Generate a weekly timetable (hybrid mode)
// @Description Greedy pre-fill followed by a reduced constraint model.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Generate timetable payload"
// @Success 200 {object} response.Envelope
// @Router /schedule/generate/hybrid [post]
func (h *TimetableHandler) GenerateHybrid(c *gin.Context) {
	h.handleGenerate(c, timetable.ModeHybrid)
}

// GetProposal godoc
// @Summary Fetch a previously generated timetable proposal
// @Tags Timetable
// @Produce json
// @Param proposalId path string true "Proposal ID"
// @Success 200 {object} response.Envelope
// @Router /schedule/{proposalId} [get]
func (h *TimetableHandler) GetProposal(c *gin.Context) {
	proposal, err := h.service.GetProposal(c.Param("proposalId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, proposal, nil)
}

// ExportPDF godoc
// @Summary Export a timetable proposal's readable matrix as a PDF
// @Tags Timetable
// @Produce application/pdf
// @Param proposalId path string true "Proposal ID"
// @Success 200 {file} binary
// @Router /schedule/{proposalId}/export.pdf [get]
func (h *TimetableHandler) ExportPDF(c *gin.Context) {
	if !h.pdfEnabled {
		response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "PDF export is disabled"))
		return
	}
	proposal, err := h.service.GetProposal(c.Param("proposalId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	body, err := h.pdf.Render(proposal.TimetableMatrix, "Weekly Timetable")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable pdf"))
		return
	}
	c.Data(http.StatusOK, "application/pdf", body)
}

// Catalog godoc
// @Summary List the classroom/batch/subject/faculty catalog
// @Tags Timetable
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /schedule/catalog [get]
func (h *TimetableHandler) Catalog(c *gin.Context) {
	catalog, err := h.service.Catalog(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, catalog, nil)
}

func (h *TimetableHandler) handleGenerate(c *gin.Context, mode timetable.Mode) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable generate payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req, mode)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
