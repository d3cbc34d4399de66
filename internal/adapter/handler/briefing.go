package handler

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/voxly/errors"
	"github.com/johnquangdev/voxly/internal/adapter/dto"
	"github.com/johnquangdev/voxly/internal/adapter/presenter"
	"github.com/johnquangdev/voxly/internal/capture"
	"github.com/johnquangdev/voxly/internal/domain/entities"
	httpmw "github.com/johnquangdev/voxly/internal/infrastructure/http/middleware"
	"github.com/johnquangdev/voxly/internal/report"
	"github.com/johnquangdev/voxly/internal/usecase/briefing"
	"github.com/johnquangdev/voxly/internal/usecase/session"
	"github.com/johnquangdev/voxly/pkg/config"
	"github.com/johnquangdev/voxly/pkg/runcontext"
	pkgvalidator "github.com/johnquangdev/voxly/pkg/validator"
)

// Briefing handles session and pipeline endpoints
type Briefing struct {
	sessions *session.Manager
	cfg      *config.Config
	messages briefing.Messages
	logger   *zap.Logger
}

// NewBriefing creates a new briefing handler
func NewBriefing(sessions *session.Manager, cfg *config.Config, logger *zap.Logger) *Briefing {
	return &Briefing{
		sessions: sessions,
		cfg:      cfg,
		messages: briefing.MessagesFor(cfg.Pipeline.Locale),
		logger:   logger,
	}
}

// CreateSession opens a new session
// @Summary      Create session
// @Description  Opens a session holding one pipeline in the idle state
// @Tags         Sessions
// @Produce      json
// @Success      200  {object}  common.SuccessResponse{data=dto.SessionResponse}
// @Failure      500  {object}  common.ErrorResponse
// @Router       /sessions [post]
func (h *Briefing) CreateSession(c echo.Context) error {
	snap, err := h.sessions.Create(c.Request().Context())
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(snap))
}

// GetSession returns the current status, progress and result
// @Summary      Get session
// @Description  Returns the processing status, progress percentage and, once completed, the briefing
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=dto.SessionResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Router       /sessions/{id} [get]
func (h *Briefing) GetSession(c echo.Context) error {
	id := httpmw.SessionID(c)
	snap, err := h.snapshot(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(snap))
}

// SubmitBriefing runs the pipeline on a JSON payload
// @Summary      Run briefing
// @Description  Transcribes audio (skipped for text) and analyzes the transcript. Blocks until the run ends.
// @Tags         Briefings
// @Accept       json
// @Produce      json
// @Param        id       path      string                     true  "Session ID (UUID)"
// @Param        request  body      dto.CreateBriefingRequest  true  "Audio or text input"
// @Success      200      {object}  common.SuccessResponse{data=dto.SessionResponse}
// @Failure      400      {object}  common.ErrorResponse  "Invalid or empty input"
// @Failure      404      {object}  common.ErrorResponse  "Session not found"
// @Failure      409      {object}  common.ErrorResponse  "Run in progress or reset required"
// @Failure      429      {object}  common.ErrorResponse  "Provider rate limit"
// @Failure      502      {object}  common.ErrorResponse  "Transcription or analysis failed"
// @Failure      503      {object}  common.ErrorResponse  "API key not configured"
// @Router       /sessions/{id}/briefings [post]
func (h *Briefing) SubmitBriefing(c echo.Context) error {
	id := httpmw.SessionID(c)

	var req dto.CreateBriefingRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidPayload())
	}
	if err := c.Validate(&req); err != nil {
		appErr := errors.ErrInvalidArgument("invalid briefing request")
		for field, rule := range pkgvalidator.FieldErrors(err) {
			appErr = appErr.WithDetail(field, rule)
		}
		return HandleError(h.logger, c, appErr)
	}

	input, err := req.ToInput()
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id, h.messages))
	}
	return h.run(c, id, input)
}

// UploadBriefing runs the pipeline on an uploaded audio file
// @Summary      Run briefing from file
// @Description  Accepts a multipart audio upload; its MIME type is passed through or detected from content
// @Tags         Briefings
// @Accept       multipart/form-data
// @Produce      json
// @Param        id    path      string  true  "Session ID (UUID)"
// @Param        file  formData  file    true  "Audio file"
// @Success      200   {object}  common.SuccessResponse{data=dto.SessionResponse}
// @Failure      400   {object}  common.ErrorResponse
// @Failure      413   {object}  common.ErrorResponse  "File too large"
// @Failure      502   {object}  common.ErrorResponse
// @Router       /sessions/{id}/briefings/upload [post]
func (h *Briefing) UploadBriefing(c echo.Context) error {
	id := httpmw.SessionID(c)
	limit := int64(h.cfg.Server.MaxUploadMB) << 20

	fh, err := c.FormFile("file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("multipart field \"file\" is required"))
	}
	if fh.Size > limit {
		return HandleError(h.logger, c, errors.ErrUploadTooLarge(h.cfg.Server.MaxUploadMB))
	}

	f, err := fh.Open()
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer f.Close()

	input, err := capture.ReadAudio(c.Request().Context(), f, fh.Filename, fh.Header.Get(echo.HeaderContentType), limit)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id, h.messages))
	}
	return h.run(c, id, input)
}

// ResetSession returns the session to idle and discards the result
// @Summary      Reset session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse{data=dto.SessionResponse}
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Run in progress"
// @Router       /sessions/{id}/reset [post]
func (h *Briefing) ResetSession(c echo.Context) error {
	id := httpmw.SessionID(c)
	if err := h.sessions.Reset(id); err != nil {
		return HandleError(h.logger, c, toAppError(err, id, h.messages))
	}
	snap, err := h.snapshot(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(snap))
}

// DeleteSession closes a session
// @Summary      Delete session
// @Tags         Sessions
// @Produce      json
// @Param        id   path      string  true  "Session ID (UUID)"
// @Success      200  {object}  common.SuccessResponse
// @Failure      404  {object}  common.ErrorResponse
// @Failure      409  {object}  common.ErrorResponse  "Run in progress"
// @Router       /sessions/{id} [delete]
func (h *Briefing) DeleteSession(c echo.Context) error {
	id := httpmw.SessionID(c)
	if err := h.sessions.Delete(c.Request().Context(), id); err != nil {
		return HandleError(h.logger, c, toAppError(err, id, h.messages))
	}
	return HandleSuccess(h.logger, c, map[string]string{"session_id": id, "status": "deleted"})
}

// GetReport exports a completed briefing
// @Summary      Export report
// @Description  format=json (default) returns the result with tone and plain text; text returns the clipboard report; doc downloads a Word document; transcript returns speaker segments
// @Tags         Reports
// @Produce      json
// @Produce      plain
// @Produce      application/msword
// @Param        id      path      string  true   "Session ID (UUID)"
// @Param        format  query     string  false  "json | text | doc | transcript"
// @Success      200     {object}  common.SuccessResponse{data=dto.ReportResponse}
// @Failure      400     {object}  common.ErrorResponse  "Unsupported format"
// @Failure      404     {object}  common.ErrorResponse
// @Failure      409     {object}  common.ErrorResponse  "Briefing not completed"
// @Router       /sessions/{id}/report [get]
func (h *Briefing) GetReport(c echo.Context) error {
	id := httpmw.SessionID(c)
	format := c.QueryParam("format")
	if format == "" {
		format = "json"
	}

	snap, err := h.snapshot(c.Request().Context(), id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	if snap.Status.Step != entities.StepCompleted || snap.Result == nil {
		return HandleError(h.logger, c, errors.ErrResultNotReady(id, string(snap.Status.Step)))
	}
	locale := h.cfg.Pipeline.Locale

	switch format {
	case "json":
		return HandleSuccess(h.logger, c, presenter.ToReportResponse(snap, locale))
	case "text":
		return c.String(http.StatusOK, report.PlainText(snap.Result, locale))
	case "doc":
		doc, err := report.Document(snap.Result, locale)
		if err != nil {
			return HandleError(h.logger, c, errors.ErrReportExportFailed(format, err))
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", report.DocumentFileName(time.Now())))
		return c.Blob(http.StatusOK, report.DocumentContentType, doc)
	case "transcript":
		return HandleSuccess(h.logger, c, presenter.ToTranscriptResponse(snap))
	}
	return HandleError(h.logger, c, errors.ErrUnsupportedFormat(format))
}

// run executes the pipeline detached from the request; PIPELINE_TIMEOUT bounds it
func (h *Briefing) run(c echo.Context, id string, input entities.InputPayload) error {
	ctx, cancel := runcontext.Begin(c.Request().Context(), id, string(input.Kind()), h.cfg.Pipeline.Timeout)
	defer cancel()

	_, err := h.sessions.Run(ctx, id, input)
	if h.logger != nil {
		h.logger.Info("briefing.request.finished", append(runcontext.Fields(ctx), zap.Bool("ok", err == nil))...)
	}
	if stdErrors.Is(err, entities.ErrNotReset) {
		snap, _ := h.sessions.Snapshot(ctx, id)
		return HandleError(h.logger, c, errors.ErrSessionNotReset(id, string(snap.Status.Step)))
	}
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, id, h.messages))
	}

	snap, err := h.snapshot(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, err)
	}
	return HandleSuccess(h.logger, c, presenter.ToSessionResponse(snap))
}

func (h *Briefing) snapshot(ctx context.Context, id string) (entities.Snapshot, error) {
	snap, err := h.sessions.Snapshot(ctx, id)
	if stdErrors.Is(err, session.ErrSessionNotFound) {
		return snap, errors.ErrSessionNotFound(id)
	}
	if err != nil {
		return snap, errors.ErrCacheFailed("load snapshot", err)
	}
	return snap, nil
}
