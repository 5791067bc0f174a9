package handler

import (
	"context"
	"errors"
	"net/http"

	"taskboard/internal/model"
	"taskboard/internal/service"

	"github.com/gin-gonic/gin"
)

type BoardLister interface {
	List(ctx context.Context) ([]model.BoardDocument, error)
}

type BoardHandler struct {
	boards BoardLister
}

func NewBoardHandler(boards BoardLister) *BoardHandler {
	return &BoardHandler{boards: boards}
}

// GetAll godoc
// @Summary      List boards
// @Description  Every board with assignees and creators expanded to user summaries.
// @Tags         Boards
// @Produce      json
// @Success      200  {array}   model.BoardDocument
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/boards [get]
func (h *BoardHandler) GetAll(c *gin.Context) {
	boards, err := h.boards.List(c.Request.Context())
	if errors.Is(err, service.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "No boards found"})
		return
	}
	if err != nil {
		respondError(c, err, "Failed to fetch boards")
		return
	}
	c.JSON(http.StatusOK, boards)
}
