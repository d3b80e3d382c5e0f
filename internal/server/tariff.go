package server

import (
	"github.com/gin-gonic/gin"

	tariffdomain "github.com/metersharelabs/metershare/internal/tariff/domain"
)

// @Summary      Get Tariff
// @Description  Get the active tariff configuration
// @Tags         tariff
// @Produce      json
// @Success      200  {object}  tariffdomain.Response
// @Router       /tariff [get]
func (s *Server) GetTariff(c *gin.Context) {
	resp, err := s.tariffSvc.Get(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Tariff
// @Description  Validate and activate a new tariff configuration
// @Tags         tariff
// @Accept       json
// @Produce      json
// @Param        request body tariffdomain.UpdateRequest true "Tariff Update Request"
// @Success      200  {object}  tariffdomain.Response
// @Router       /tariff [put]
func (s *Server) UpdateTariff(c *gin.Context) {
	var req tariffdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tariffSvc.Update(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
