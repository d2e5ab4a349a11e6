package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/talentscout/internal/models"
	"alfredoptarigan/talentscout/internal/repositories"
	"alfredoptarigan/talentscout/internal/services"
)

const exportFilenameFormat = "interview_20060102_150405.csv"

type SessionHandler struct {
	sessionRepo repositories.SessionRepository
	interviewer services.Interviewer
	assembler   services.RecordAssembler
	store       services.CandidateStore
	locks       *sessionLocks
	log         *slog.Logger
}

func NewSessionHandler(
	sessionRepo repositories.SessionRepository,
	interviewer services.Interviewer,
	assembler services.RecordAssembler,
	store services.CandidateStore,
	log *slog.Logger,
) *SessionHandler {
	return &SessionHandler{
		sessionRepo: sessionRepo,
		interviewer: interviewer,
		assembler:   assembler,
		store:       store,
		locks:       newSessionLocks(),
		log:         log,
	}
}

// HandleCreate handles POST /sessions
func (h *SessionHandler) HandleCreate(c *fiber.Ctx) error {
	session := h.interviewer.Start(c.UserContext())

	if err := h.sessionRepo.Save(c.UserContext(), session); err != nil {
		return fmt.Errorf("failed to store new session: %w", err)
	}

	return c.Status(fiber.StatusCreated).JSON(h.view(session))
}

// HandleGet handles GET /sessions/:id
func (h *SessionHandler) HandleGet(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessionRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return h.sessionError(c, err)
	}

	return c.JSON(h.view(session))
}

// HandleMessage handles POST /sessions/:id/messages
func (h *SessionHandler) HandleMessage(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	var req models.MessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if err := getValidator().Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "Validation failed",
			"details": validationDetails(err),
		})
	}

	unlock := h.locks.Lock(id)
	defer unlock()

	session, err := h.sessionRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return h.sessionError(c, err)
	}

	next, outcome, err := h.interviewer.Process(c.UserContext(), session, req.Text)
	if err != nil {
		return h.sessionError(c, err)
	}

	if outcome.Kind != services.OutcomeRejected {
		if err := h.sessionRepo.Save(c.UserContext(), next); err != nil {
			return fmt.Errorf("failed to store session: %w", err)
		}
	}

	return c.JSON(models.OutcomeResponse{
		Kind:    string(outcome.Kind),
		Reason:  outcome.Reason,
		Replies: outcome.Replies,
		Session: h.view(next),
	})
}

// HandleReset handles POST /sessions/:id/reset
func (h *SessionHandler) HandleReset(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	unlock := h.locks.Lock(id)
	defer unlock()

	session, err := h.sessionRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return h.sessionError(c, err)
	}

	fresh := h.interviewer.Reset(c.UserContext(), session)
	if err := h.sessionRepo.Save(c.UserContext(), fresh); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}

	return c.JSON(h.view(fresh))
}

// HandleSave handles POST /sessions/:id/save
func (h *SessionHandler) HandleSave(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	unlock := h.locks.Lock(id)
	defer unlock()

	session, err := h.sessionRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return h.sessionError(c, err)
	}

	if session.Phase != models.PhaseCompleted {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": services.ErrInterviewIncomplete.Error(),
		})
	}

	record := h.assembler.Assemble(session, time.Now())
	if err := h.store.Save(record); err != nil {
		h.log.Warn("candidate record not saved, session kept for retry",
			slog.String("session_id", id.String()),
			slog.String("error", err.Error()),
		)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": services.MessageSaveFailed,
			"retry": true,
		})
	}

	return c.JSON(models.SaveResponse{
		Message: services.MessageSaveSucceeded,
		Count:   h.store.Count(),
	})
}

// HandleExport handles GET /sessions/:id/export
func (h *SessionHandler) HandleExport(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	session, err := h.sessionRepo.FindByID(c.UserContext(), id)
	if err != nil {
		return h.sessionError(c, err)
	}

	now := time.Now()
	record := h.assembler.Assemble(session, now)
	data, err := services.EncodeCSV(h.assembler.Columns(), []models.CandidateRecord{record})
	if err != nil {
		return fmt.Errorf("failed to export session: %w", err)
	}

	c.Attachment(now.Format(exportFilenameFormat))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(data)
}

// HandleDelete handles DELETE /sessions/:id
func (h *SessionHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := sessionID(c)
	if err != nil {
		return err
	}

	unlock := h.locks.Lock(id)
	defer unlock()

	if err := h.sessionRepo.Delete(c.UserContext(), id); err != nil {
		return h.sessionError(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func (h *SessionHandler) view(session models.InterviewSession) *models.SessionResponse {
	resp := &models.SessionResponse{
		ID:              session.ID.String(),
		Phase:           string(session.Phase),
		Aborted:         session.Aborted,
		CurrentQuestion: h.interviewer.CurrentQuestion(session),
		Messages:        session.Messages,
	}

	if !session.Closed() {
		resp.Progress = h.interviewer.Progress(session)
	} else {
		summary := h.interviewer.Summary(session)
		resp.Summary = &summary
	}

	return resp
}

func (h *SessionHandler) sessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, repositories.ErrSessionNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Session not found",
		})
	case errors.Is(err, services.ErrSessionClosed):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"error": "Interview has already ended. Reset the session to start again.",
		})
	default:
		return err
	}
}

func sessionID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid session ID format")
	}
	return id, nil
}
