package httpapi

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/lucaspascoa/novoteste/internal/auth"
	"github.com/lucaspascoa/novoteste/internal/domain"
	"github.com/lucaspascoa/novoteste/internal/repository"
	"github.com/lucaspascoa/novoteste/internal/service"
	"github.com/lucaspascoa/novoteste/internal/stock"
)

const staffKey = "staff"

type Server struct {
	engine   *gin.Engine
	products *service.ProductService
	orders   *service.OrderService
	admin    *service.AdminService
	closures *service.ClosureService
	reports  *service.ReportService
	stock    *stock.Manager
	auth     *auth.Service
	audit    repository.AuditLogRepository
}

type Deps struct {
	Products *service.ProductService
	Orders   *service.OrderService
	Admin    *service.AdminService
	Closures *service.ClosureService
	Reports  *service.ReportService
	Stock    *stock.Manager
	Auth     *auth.Service
	Audit    repository.AuditLogRepository
}

func NewServer(serviceName string, d Deps) *Server {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), otelgin.Middleware(serviceName))
	s := &Server{
		engine:   r,
		products: d.Products,
		orders:   d.Orders,
		admin:    d.Admin,
		closures: d.Closures,
		reports:  d.Reports,
		stock:    d.Stock,
		auth:     d.Auth,
		audit:    d.Audit,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	v1 := s.engine.Group("/api/v1")
	{
		// vitrine pública
		v1.GET("/store", s.getStore)
		v1.GET("/categories", s.listCategories)
		v1.GET("/delivery-zones", s.listZones)
		v1.GET("/products", s.listStoreProducts)
		v1.GET("/products/:id", s.getProduct)
		v1.POST("/orders", s.placeOrder)
		v1.GET("/orders/track", s.trackOrders)

		v1.POST("/auth/login", s.login)
		v1.POST("/auth/logout", s.logout)

		admin := v1.Group("/admin", s.authRequired)
		{
			admin.GET("/me", s.me)

			p := admin.Group("/products")
			p.GET("", s.require(auth.PermProductsRead), s.listProducts)
			p.POST("", s.require(auth.PermProductsCreate), s.createProduct)
			p.PUT(":id", s.require(auth.PermProductsUpdate), s.updateProduct)
			p.DELETE(":id", s.require(auth.PermProductsDelete), s.deleteProduct)
			p.POST(":id/stock", s.require(auth.PermProductsUpdate), s.adjustStock)
			p.GET(":id/audit", s.require(auth.PermProductsRead), s.productAudit)
			admin.GET("/products-low-stock", s.require(auth.PermProductsRead), s.lowStock)
			admin.POST("/products-recalculate-stock", s.require(auth.PermProductsUpdate), s.recalculateStock)

			o := admin.Group("/orders")
			o.GET("", s.require(auth.PermOrdersRead), s.listOrders)
			o.GET(":id", s.require(auth.PermOrdersRead), s.getOrder)
			o.PUT(":id/status", s.require(auth.PermOrdersUpdate), s.updateOrderStatus)

			registerAdminRoutes(admin, s)
		}
	}
}

// authRequired resolve o Bearer token para o membro da equipe logado
func (s *Server) authRequired(c *gin.Context) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
		return
	}
	staff, err := s.auth.Authenticate(token)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
		return
	}
	c.Set(staffKey, staff)
	c.Next()
}

// require exige a permissão no perfil do membro logado
func (s *Server) require(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		staff := currentStaff(c)
		ok, err := s.auth.Authorizer().HasPermission(c.Request.Context(), staff, permission)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
			return
		}
		c.Next()
	}
}

func currentStaff(c *gin.Context) *domain.Staff {
	v, _ := c.Get(staffKey)
	staff, _ := v.(*domain.Staff)
	return staff
}

func currentActor(c *gin.Context) stock.Actor {
	if staff := currentStaff(c); staff != nil {
		return stock.Actor{ID: staff.ID, Name: staff.FullName}
	}
	return stock.Actor{}
}

// Storefront

// @Summary Store configuration
// @Tags store
// @Produce json
// @Success 200 {object} domain.StoreConfig
// @Router /store [get]
func (s *Server) getStore(c *gin.Context) {
	cfg, err := s.admin.GetConfig(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

// @Summary List categories
// @Tags store
// @Produce json
// @Success 200 {array} domain.Category
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	cats, err := s.admin.ListCategories(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, cats)
}

// @Summary List delivery zones
// @Tags store
// @Produce json
// @Success 200 {array} domain.DeliveryZone
// @Router /delivery-zones [get]
func (s *Server) listZones(c *gin.Context) {
	zones, err := s.admin.ListZones(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, zones)
}

// @Summary Storefront products (active only)
// @Tags store
// @Produce json
// @Param category query string false "Category"
// @Param q query string false "Name substring"
// @Success 200 {array} domain.Product
// @Router /products [get]
func (s *Server) listStoreProducts(c *gin.Context) {
	f := repository.ProductFilter{
		Category:      c.Query("category"),
		NameSubstring: c.Query("q"),
	}
	products, err := s.products.ListActive(c, f)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary Get product by id
// @Tags store
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 404 {object} map[string]string
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	p, err := s.products.GetByID(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, p)
}

type placeOrderReq struct {
	CustomerName        string                 `json:"customer_name"`
	CustomerPhone       string                 `json:"customer_phone"`
	Items               []service.CheckoutItem `json:"items"`
	DeliveryMethod      string                 `json:"delivery_method"`
	PaymentMethod       string                 `json:"payment_method"`
	ChangeFor           string                 `json:"change_for"`
	AddressStreet       string                 `json:"address_street"`
	AddressNumber       string                 `json:"address_number"`
	AddressNeighborhood string                 `json:"address_neighborhood"`
	AddressZipcode      string                 `json:"address_zipcode"`
}

// @Summary Place order (checkout)
// @Tags orders
// @Accept json
// @Produce json
// @Param input body placeOrderReq true "Order"
// @Success 201 {object} domain.Order
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /orders [post]
func (s *Server) placeOrder(c *gin.Context) {
	var req placeOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, err := s.orders.PlaceOrder(c, service.PlaceOrderInput{
		CustomerName:        req.CustomerName,
		CustomerPhone:       req.CustomerPhone,
		Items:               req.Items,
		DeliveryMethod:      req.DeliveryMethod,
		PaymentMethod:       req.PaymentMethod,
		ChangeFor:           req.ChangeFor,
		AddressStreet:       req.AddressStreet,
		AddressNumber:       req.AddressNumber,
		AddressNeighborhood: req.AddressNeighborhood,
		AddressZipcode:      req.AddressZipcode,
	})
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, o)
}

// @Summary Track orders by phone
// @Tags orders
// @Produce json
// @Param phone query string true "Customer phone"
// @Success 200 {array} domain.Order
// @Failure 400 {object} map[string]string
// @Router /orders/track [get]
func (s *Server) trackOrders(c *gin.Context) {
	orders, err := s.orders.TrackByPhone(c, c.Query("phone"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// Auth

type loginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// @Summary Staff login
// @Tags auth
// @Accept json
// @Produce json
// @Param input body loginReq true "Credentials"
// @Success 200 {object} auth.Session
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (s *Server) login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	session, err := s.auth.Login(c, req.Username, req.Password)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// @Summary Staff logout
// @Tags auth
// @Success 204
// @Router /auth/logout [post]
func (s *Server) logout(c *gin.Context) {
	header := c.GetHeader("Authorization")
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		s.auth.Logout(token)
	}
	c.Status(http.StatusNoContent)
}

// @Summary Logged-in staff member
// @Tags auth
// @Produce json
// @Success 200 {object} domain.Staff
// @Router /admin/me [get]
func (s *Server) me(c *gin.Context) {
	c.JSON(http.StatusOK, currentStaff(c))
}

// Painel: produtos e estoque

// @Summary List products (admin)
// @Tags admin-products
// @Produce json
// @Param category query string false "Category"
// @Param status query string false "Status"
// @Param q query string false "Name substring"
// @Param min_price query number false "Minimum price"
// @Param max_price query number false "Maximum price"
// @Success 200 {array} domain.Product
// @Router /admin/products [get]
func (s *Server) listProducts(c *gin.Context) {
	f := repository.ProductFilter{
		Category:      c.Query("category"),
		Status:        domain.ProductStatus(c.Query("status")),
		NameSubstring: c.Query("q"),
	}
	if v, err := strconv.ParseFloat(c.Query("min_price"), 64); err == nil {
		f.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_price"), 64); err == nil {
		f.MaxPrice = &v
	}
	products, err := s.products.List(c, f)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary Create product
// @Tags admin-products
// @Accept json
// @Produce json
// @Param input body domain.Product true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Router /admin/products [post]
func (s *Server) createProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	created, err := s.products.Create(c, p, currentActor(c))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, created)
}

// @Summary Update product
// @Tags admin-products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body domain.Product true "Product"
// @Success 200 {object} domain.Product
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	var p domain.Product
	if err := c.ShouldBindJSON(&p); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	p.ID = c.Param("id")
	updated, err := s.products.Update(c, p, currentActor(c))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updated)
}

// @Summary Delete product
// @Tags admin-products
// @Param id path string true "Product ID"
// @Success 204
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id} [delete]
func (s *Server) deleteProduct(c *gin.Context) {
	if err := s.products.Delete(c, c.Param("id"), currentActor(c)); err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

type adjustStockReq struct {
	Action   string `json:"action"`
	Quantity int    `json:"quantity"`
}

// @Summary Adjust product stock
// @Tags admin-products
// @Accept json
// @Produce json
// @Param id path string true "Product ID"
// @Param input body adjustStockReq true "reduce or increase"
// @Success 200 {object} stock.AdjustResult
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/products/{id}/stock [post]
func (s *Server) adjustStock(c *gin.Context) {
	var req adjustStockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
		return
	}
	var res stock.AdjustResult
	switch req.Action {
	case "reduce":
		res = s.stock.ReduceStock(c, c.Param("id"), req.Quantity, currentActor(c))
	case "increase":
		res = s.stock.IncreaseStock(c, c.Param("id"), req.Quantity, currentActor(c))
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "action must be reduce or increase"})
		return
	}
	if !res.Success {
		status := http.StatusBadRequest
		if res.NotFound {
			status = http.StatusNotFound
		}
		c.JSON(status, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Products at or below minimum stock
// @Tags admin-products
// @Produce json
// @Success 200 {array} domain.Product
// @Router /admin/products-low-stock [get]
func (s *Server) lowStock(c *gin.Context) {
	products, err := s.stock.LowStockProducts(c)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, products)
}

// @Summary Recalculate stock status of the whole catalog
// @Tags admin-products
// @Produce json
// @Success 200 {object} stock.RecalcResult
// @Router /admin/products-recalculate-stock [post]
func (s *Server) recalculateStock(c *gin.Context) {
	res := s.stock.RecalculateAllStockStatus(c)
	if !res.Success {
		c.JSON(http.StatusInternalServerError, res)
		return
	}
	c.JSON(http.StatusOK, res)
}

// @Summary Product audit trail
// @Tags admin-products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {array} domain.AuditLog
// @Router /admin/products/{id}/audit [get]
func (s *Server) productAudit(c *gin.Context) {
	logs, err := s.audit.List(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Painel: pedidos

// @Summary List orders
// @Tags admin-orders
// @Produce json
// @Param status query string false "Status"
// @Param phone query string false "Customer phone"
// @Success 200 {array} domain.Order
// @Router /admin/orders [get]
func (s *Server) listOrders(c *gin.Context) {
	f := repository.OrderFilter{
		Status:        domain.OrderStatus(c.Query("status")),
		CustomerPhone: c.Query("phone"),
	}
	orders, err := s.orders.List(c, f)
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, orders)
}

// @Summary Get order by id
// @Tags admin-orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 404 {object} map[string]string
// @Router /admin/orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	o, err := s.orders.Get(c, c.Param("id"))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, o)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

type updateStatusResp struct {
	Order        *domain.Order      `json:"order"`
	StockResults []stock.ItemResult `json:"stock_results,omitempty"`
}

// @Summary Update order status
// @Tags admin-orders
// @Accept json
// @Produce json
// @Param id path string true "Order ID"
// @Param input body updateStatusReq true "New status"
// @Success 200 {object} updateStatusResp
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/orders/{id}/status [put]
func (s *Server) updateOrderStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	o, results, err := s.orders.UpdateStatus(c, c.Param("id"), domain.OrderStatus(req.Status), currentActor(c))
	if err != nil {
		c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, updateStatusResp{Order: o, StockResults: results})
}

func mapErrorToStatus(err error) int {
	switch err {
	case service.ErrInvalidInput, service.ErrBelowMinimumOrder,
		service.ErrUnknownRole, service.ErrUnknownPermission, service.ErrUsernameTaken:
		return http.StatusBadRequest
	case auth.ErrInvalidCredentials, auth.ErrInvalidSession:
		return http.StatusUnauthorized
	case auth.ErrInactiveStaff:
		return http.StatusForbidden
	case repository.ErrNotFound:
		return http.StatusNotFound
	case service.ErrInvalidState, service.ErrAlreadyClosed, service.ErrProtectedRole:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
