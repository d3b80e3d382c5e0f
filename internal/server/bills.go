package server

import (
	"github.com/gin-gonic/gin"
)

// @Summary      Save Bill
// @Description  Freeze the current draft into an immutable snapshot
// @Tags         bills
// @Produce      json
// @Success      200  {object}  domain.Response
// @Router       /bills [post]
func (s *Server) SaveBill(c *gin.Context) {
	resp, err := s.ledgerSvc.Save(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      List Bills
// @Description  Saved bills ordered by generated date, newest first
// @Tags         bills
// @Produce      json
// @Success      200  {array}  domain.Response
// @Router       /bills [get]
func (s *Server) ListBills(c *gin.Context) {
	resp, err := s.ledgerSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Bill
// @Tags         bills
// @Param        id  path  string  true  "Bill ID"
// @Success      200
// @Router       /bills/{id} [delete]
func (s *Server) DeleteBill(c *gin.Context) {
	if err := s.ledgerSvc.Remove(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"deleted": true})
}

// @Summary      Load Bill Into Draft
// @Description  Copy a saved snapshot back into the working session
// @Tags         bills
// @Param        id  path  string  true  "Bill ID"
// @Success      200  {object}  domain.Response
// @Router       /bills/{id}/load [post]
func (s *Server) LoadBill(c *gin.Context) {
	resp, err := s.ledgerSvc.LoadIntoDraft(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}
