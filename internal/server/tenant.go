package server

import (
	"github.com/gin-gonic/gin"

	tenantdomain "github.com/metersharelabs/metershare/internal/tenant/domain"
)

// @Summary      List Tenants
// @Tags         tenants
// @Produce      json
// @Success      200  {array}  tenantdomain.Response
// @Router       /tenants [get]
func (s *Server) ListTenants(c *gin.Context) {
	resp, err := s.tenantSvc.List(c.Request.Context())
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Create Tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        request body tenantdomain.CreateRequest true "Create Tenant Request"
// @Success      200  {object}  tenantdomain.Response
// @Router       /tenants [post]
func (s *Server) CreateTenant(c *gin.Context) {
	var req tenantdomain.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tenantSvc.Create(c.Request.Context(), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Get Tenant
// @Tags         tenants
// @Produce      json
// @Param        id  path  string  true  "Tenant ID"
// @Success      200  {object}  tenantdomain.Response
// @Router       /tenants/{id} [get]
func (s *Server) GetTenant(c *gin.Context) {
	resp, err := s.tenantSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Update Tenant
// @Tags         tenants
// @Accept       json
// @Produce      json
// @Param        id  path  string  true  "Tenant ID"
// @Param        request body tenantdomain.UpdateRequest true "Update Tenant Request"
// @Success      200  {object}  tenantdomain.Response
// @Router       /tenants/{id} [put]
func (s *Server) UpdateTenant(c *gin.Context) {
	var req tenantdomain.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, invalidRequestError())
		return
	}

	resp, err := s.tenantSvc.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, resp)
}

// @Summary      Delete Tenant
// @Tags         tenants
// @Param        id  path  string  true  "Tenant ID"
// @Success      200
// @Router       /tenants/{id} [delete]
func (s *Server) DeleteTenant(c *gin.Context) {
	if err := s.tenantSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		AbortWithError(c, err)
		return
	}
	respondData(c, gin.H{"deleted": true})
}
