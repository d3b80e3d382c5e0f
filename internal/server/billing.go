package server

import (
	"github.com/gin-gonic/gin"
)

type forwardEstimateRequest struct {
	Units float64 `json:"units"`
}

type reverseEstimateRequest struct {
	Amount float64 `json:"amount"`
}

// @Summary      Allocate Bill
// @Description  Split the draft's total bill across its tenant meters
// @Tags         billing
// @Produce      json
// @Success      200  {object}  service.AllocationResponse
// @Router       /bill/allocate [post]
func (s *Server) AllocateBill(c *gin.Context) {
	resp, err := s.billingSvc.AllocateCurrent(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Estimate Bill From Units
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request body forwardEstimateRequest true "Units"
// @Success      200  {object}  domain.ForwardEstimate
// @Router       /estimate/forward [post]
func (s *Server) EstimateForward(c *gin.Context) {
	var req forwardEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Units < 0 {
		AbortWithError(c, newValidationError("units", "negative", "units must not be negative"))
		return
	}

	resp, err := s.billingSvc.Forward(c.Request.Context(), req.Units)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Estimate Units From Bill
// @Description  Derive consumption from a target payable amount, with a
// @Description  step-by-step audit trail
// @Tags         billing
// @Accept       json
// @Produce      json
// @Param        request body reverseEstimateRequest true "Amount"
// @Success      200  {object}  domain.ReverseEstimate
// @Router       /estimate/reverse [post]
func (s *Server) EstimateReverse(c *gin.Context) {
	var req reverseEstimateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}
	if req.Amount < 0 {
		AbortWithError(c, newValidationError("amount", "negative", "amount must not be negative"))
		return
	}

	resp, err := s.billingSvc.Reverse(c.Request.Context(), req.Amount)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
