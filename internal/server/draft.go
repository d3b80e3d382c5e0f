package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	draftdomain "github.com/metersharelabs/metershare/internal/draft/domain"
)

// @Summary      Get Draft
// @Description  Get the current working session
// @Tags         draft
// @Produce      json
// @Success      200  {object}  draftdomain.Draft
// @Router       /draft [get]
func (s *Server) GetDraft(c *gin.Context) {
	draft, err := s.draftSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	if draft == nil {
		c.JSON(http.StatusOK, gin.H{"data": nil})
		return
	}
	respondData(c, draft)
}

// @Summary      Put Draft
// @Description  Store the working session; writes are last-write-wins by
// @Description  the supplied updated_at timestamp
// @Tags         draft
// @Accept       json
// @Produce      json
// @Param        request body draftdomain.Draft true "Draft"
// @Success      200  {object}  draftdomain.PutResult
// @Router       /draft [put]
func (s *Server) PutDraft(c *gin.Context) {
	var req draftdomain.Draft
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.UpdatedAt.IsZero() {
		AbortWithError(c, newValidationError("updated_at", "required", "updated_at drives conflict resolution and is required"))
		return
	}

	result, err := s.draftSvc.Put(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, result)
}
