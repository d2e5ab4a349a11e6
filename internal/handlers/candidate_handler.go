package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/talentscout/internal/models"
	"alfredoptarigan/talentscout/internal/services"
)

type CandidateHandler struct {
	store services.CandidateStore
}

func NewCandidateHandler(store services.CandidateStore) *CandidateHandler {
	return &CandidateHandler{store: store}
}

// HandleList handles GET /candidates
func (h *CandidateHandler) HandleList(c *fiber.Ctx) error {
	records, err := h.store.LoadAll()
	if err != nil {
		return fmt.Errorf("failed to load candidates: %w", err)
	}

	rows := make([]map[string]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, r.Map())
	}

	return c.JSON(fiber.Map{
		"count":      len(rows),
		"candidates": rows,
	})
}

// HandleCount handles GET /candidates/count
func (h *CandidateHandler) HandleCount(c *fiber.Ctx) error {
	return c.JSON(models.CountResponse{Count: h.store.Count()})
}
