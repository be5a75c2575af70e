package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lucaspascoa/novoteste/internal/auth"
	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/service"
)

func registerAdminRoutes(admin *gin.RouterGroup, s *Server) {
	st := admin.Group("/staff")
	st.GET("", s.require(auth.PermStaffRead), s.listStaff)
	st.POST("", s.require(auth.PermStaffManage), s.createStaff)
	st.PUT(":id", s.require(auth.PermStaffManage), s.updateStaff)
	st.DELETE(":id", s.require(auth.PermStaffManage), s.deleteStaff)

	ro := admin.Group("/roles")
	ro.GET("", s.require(auth.PermRolesRead), s.listRoles)
	ro.POST("", s.require(auth.PermRolesManage), s.createRole)
	ro.PUT(":id", s.require(auth.PermRolesManage), s.updateRole)
	ro.DELETE(":id", s.require(auth.PermRolesManage), s.deleteRole)

	ca := admin.Group("/categories")
	ca.POST("", s.require(auth.PermSettingsUpdate), s.createCategory)
	ca.PUT(":id", s.require(auth.PermSettingsUpdate), s.updateCategory)
	ca.DELETE(":id", s.require(auth.PermSettingsUpdate), s.deleteCategory)

	z := admin.Group("/delivery-zones")
	z.POST("", s.require(auth.PermSettingsUpdate), s.createZone)
	z.PUT(":id", s.require(auth.PermSettingsUpdate), s.updateZone)
	z.DELETE(":id", s.require(auth.PermSettingsUpdate), s.deleteZone)

	admin.GET("/config", s.require(auth.PermSettingsRead), s.getConfig)
	admin.PUT("/config", s.require(auth.PermSettingsUpdate), s.saveConfig)

	cl := admin.Group("/closures")
	cl.GET("", s.require(auth.PermDashboardRead), s.listClosures)
	cl.GET("/preview", s.require(auth.PermDashboardRead), s.previewClosure)
	cl.POST("", s.require(auth.PermDashboardRead), s.closeDay)

	admin.GET("/reports/sales", s.require(auth.PermDashboardRead), s.salesReport)
}

// Equipe

// @Summary List staff
// @Tags admin-staff
// @Produce json
// @Success 200 {array} domain.Staff
// @Router /admin/staff [get]
func (s *Server) listStaff(c *gin.Context) {
	staff, err := s.admin.ListStaff(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, staff)
}

type createStaffReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// @Summary Create staff member
// @Tags admin-staff
// @Accept json
// @Produce json
// @Param input body createStaffReq true "Staff"
// @Success 201 {object} domain.Staff
// @Failure 400 {object} map[string]string
// @Router /admin/staff [post]
func (s *Server) createStaff(c *gin.Context) {
	var req createStaffReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	st, err := s.admin.CreateStaff(c, service.CreateStaffInput{
		Username: req.Username,
		Password: req.Password,
		FullName: req.FullName,
		Role:     req.Role,
	})
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, st)
}

type updateStaffReq struct {
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Status   string `json:"status"`
	Password string `json:"password"`
}

// @Summary Update staff member
// @Tags admin-staff
// @Accept json
// @Produce json
// @Param id path string true "Staff ID"
// @Param input body updateStaffReq true "Fields to change"
// @Success 200 {object} domain.Staff
// @Failure 404 {object} map[string]string
// @Router /admin/staff/{id} [put]
func (s *Server) updateStaff(c *gin.Context) {
	var req updateStaffReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	st, err := s.admin.UpdateStaff(c, c.Param("id"), service.UpdateStaffInput{
		FullName: req.FullName,
		Role:     req.Role,
		Status:   req.Status,
		Password: req.Password,
	})
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, st)
}

// @Summary Delete staff member
// @Tags admin-staff
// @Param id path string true "Staff ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/staff/{id} [delete]
func (s *Server) deleteStaff(c *gin.Context) {
	if err := s.admin.DeleteStaff(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Perfis

// @Summary List roles
// @Tags admin-roles
// @Produce json
// @Success 200 {array} domain.Role
// @Router /admin/roles [get]
func (s *Server) listRoles(c *gin.Context) {
	roles, err := s.admin.ListRoles(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, roles)
}

// @Summary Create role
// @Tags admin-roles
// @Accept json
// @Produce json
// @Param input body domain.Role true "Role"
// @Success 201 {object} domain.Role
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/roles [post]
func (s *Server) createRole(c *gin.Context) {
	var r domain.Role
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	created, err := s.admin.CreateRole(c, r)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Update role
// @Tags admin-roles
// @Accept json
// @Produce json
// @Param id path string true "Role ID"
// @Param input body domain.Role true "Role"
// @Success 200 {object} domain.Role
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/roles/{id} [put]
func (s *Server) updateRole(c *gin.Context) {
	var r domain.Role
	if err := c.ShouldBindJSON(&r); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	r.ID = c.Param("id")
	updated, err := s.admin.UpdateRole(c, r)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete role
// @Tags admin-roles
// @Param id path string true "Role ID"
// @Success 204
// @Failure 409 {object} map[string]string
// @Router /admin/roles/{id} [delete]
func (s *Server) deleteRole(c *gin.Context) {
	if err := s.admin.DeleteRole(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Categorias

// @Summary Create category
// @Tags admin-settings
// @Accept json
// @Produce json
// @Param input body domain.Category true "Category"
// @Success 201 {object} domain.Category
// @Router /admin/categories [post]
func (s *Server) createCategory(c *gin.Context) {
	var cat domain.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	created, err := s.admin.CreateCategory(c, cat)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Update category
// @Tags admin-settings
// @Accept json
// @Produce json
// @Param id path string true "Category ID"
// @Param input body domain.Category true "Category"
// @Success 200 {object} domain.Category
// @Router /admin/categories/{id} [put]
func (s *Server) updateCategory(c *gin.Context) {
	var cat domain.Category
	if err := c.ShouldBindJSON(&cat); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	cat.ID = c.Param("id")
	updated, err := s.admin.UpdateCategory(c, cat)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete category
// @Tags admin-settings
// @Param id path string true "Category ID"
// @Success 204
// @Router /admin/categories/{id} [delete]
func (s *Server) deleteCategory(c *gin.Context) {
	if err := s.admin.DeleteCategory(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Zonas de entrega

// @Summary Create delivery zone
// @Tags admin-settings
// @Accept json
// @Produce json
// @Param input body domain.DeliveryZone true "Zone"
// @Success 201 {object} domain.DeliveryZone
// @Router /admin/delivery-zones [post]
func (s *Server) createZone(c *gin.Context) {
	var z domain.DeliveryZone
	if err := c.ShouldBindJSON(&z); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	created, err := s.admin.CreateZone(c, z)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Update delivery zone
// @Tags admin-settings
// @Accept json
// @Produce json
// @Param id path string true "Zone ID"
// @Param input body domain.DeliveryZone true "Zone"
// @Success 200 {object} domain.DeliveryZone
// @Router /admin/delivery-zones/{id} [put]
func (s *Server) updateZone(c *gin.Context) {
	var z domain.DeliveryZone
	if err := c.ShouldBindJSON(&z); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	z.ID = c.Param("id")
	updated, err := s.admin.UpdateZone(c, z)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete delivery zone
// @Tags admin-settings
// @Param id path string true "Zone ID"
// @Success 204
// @Router /admin/delivery-zones/{id} [delete]
func (s *Server) deleteZone(c *gin.Context) {
	if err := s.admin.DeleteZone(c, c.Param("id")); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// Configuração

// @Summary Store configuration (admin)
// @Tags admin-settings
// @Produce json
// @Success 200 {object} domain.StoreConfig
// @Failure 404 {object} map[string]string
// @Router /admin/config [get]
func (s *Server) getConfig(c *gin.Context) {
	cfg, err := s.admin.GetConfig(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary Save store configuration
// @Tags admin-settings
// @Accept json
// @Produce json
// @Param input body domain.StoreConfig true "Config"
// @Success 200 {object} domain.StoreConfig
// @Failure 400 {object} map[string]string
// @Router /admin/config [put]
func (s *Server) saveConfig(c *gin.Context) {
	var cfg domain.StoreConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	saved, err := s.admin.SaveConfig(c, cfg)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// Fechamento de caixa

// @Summary List daily closures
// @Tags admin-closures
// @Produce json
// @Success 200 {array} domain.DailyClosure
// @Router /admin/closures [get]
func (s *Server) listClosures(c *gin.Context) {
	closures, err := s.closures.List(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, closures)
}

// @Summary Preview closure for a date
// @Tags admin-closures
// @Produce json
// @Param date query string true "Date (2006-01-02)"
// @Success 200 {object} domain.DailyClosure
// @Failure 400 {object} map[string]string
// @Router /admin/closures/preview [get]
func (s *Server) previewClosure(c *gin.Context) {
	closure, err := s.closures.Compute(c, c.Query("date"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, closure)
}

type closeDayReq struct {
	Date  string `json:"date"`
	Notes string `json:"notes"`
}

// @Summary Close the day
// @Tags admin-closures
// @Accept json
// @Produce json
// @Param input body closeDayReq true "Closure"
// @Success 201 {object} domain.DailyClosure
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/closures [post]
func (s *Server) closeDay(c *gin.Context) {
	var req closeDayReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	var closedBy string
	if staff := currentStaff(c); staff != nil {
		closedBy = staff.FullName
	}
	closure, err := s.closures.Close(c, req.Date, req.Notes, closedBy)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, closure)
}

// @Summary Sales report
// @Tags admin-reports
// @Produce json
// @Param from query string true "Start date (2006-01-02)"
// @Param to query string true "End date (2006-01-02)"
// @Success 200 {object} service.SalesReport
// @Failure 400 {object} map[string]string
// @Router /admin/reports/sales [get]
func (s *Server) salesReport(c *gin.Context) {
	report, err := s.reports.Sales(c, c.Query("from"), c.Query("to"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, report)
}
