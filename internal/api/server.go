package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/salespoint/internal/auth"
	"github.com/salespoint/internal/database"
	"github.com/salespoint/internal/models"
	"github.com/salespoint/internal/notify"
	"github.com/salespoint/internal/report"
	"github.com/salespoint/internal/sales"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Server struct {
	sales     *sales.Service
	reports   *report.Store
	generator *report.Generator
	notifier  *notify.Manager
	router    *gin.Engine
}

func NewServer(salesService *sales.Service, reports *report.Store, generator *report.Generator, notifier *notify.Manager) *Server {
	server := &Server{
		sales:     salesService,
		reports:   reports,
		generator: generator,
		notifier:  notifier,
		router:    gin.Default(),
	}

	server.setupRoutes()
	return server
}

func (s *Server) setupRoutes() {
	// Public routes
	s.router.POST("/api/v1/auth/login", s.login)
	s.router.POST("/api/v1/auth/register", s.register)

	// Protected routes (require authentication)
	api := s.router.Group("/api/v1")
	api.Use(auth.AuthMiddleware())

	// Product catalog
	products := api.Group("/products")
	{
		products.GET("", s.listProducts)
		products.GET("/:id", s.getProduct)
		products.POST("", auth.RequireRole(models.RoleAdmin, models.RoleManager), s.createProduct)
		products.PUT("/:id", auth.RequireRole(models.RoleAdmin, models.RoleManager), s.updateProduct)
		products.DELETE("/:id", auth.RequireRole(models.RoleAdmin), s.deleteProduct)
		products.POST("/:id/restock", auth.RequireRole(models.RoleAdmin, models.RoleManager), s.restockProduct)
	}

	categories := api.Group("/categories")
	{
		categories.GET("", s.listCategories)
		categories.POST("", auth.RequireRole(models.RoleAdmin, models.RoleManager), s.createCategory)
		categories.PUT("/:id", auth.RequireRole(models.RoleAdmin, models.RoleManager), s.updateCategory)
		categories.DELETE("/:id", auth.RequireRole(models.RoleAdmin), s.deleteCategory)
	}

	// Sales
	transactions := api.Group("/transactions")
	{
		transactions.GET("", s.listTransactions)
		transactions.GET("/:id", s.getTransaction)
		transactions.POST("", s.createTransaction)
		transactions.POST("/:id/void", auth.RequireRole(models.RoleAdmin, models.RoleManager), s.voidTransaction)
	}

	// Reports
	reports := api.Group("/reports")
	{
		reports.GET("", s.listReports)
		reports.GET("/latest", s.latestReport)
		reports.POST("/generate", auth.RequireRole(models.RoleAdmin, models.RoleManager), s.generateReport)
	}

	// Report schedules
	schedules := api.Group("/schedules")
	schedules.Use(auth.RequireRole(models.RoleAdmin))
	{
		schedules.GET("", s.listSchedules)
		schedules.PUT("/:id", s.updateSchedule)
	}

	api.GET("/notifications", s.listNotifications)
	api.PUT("/notifications/:id/read", s.markNotificationRead)

	api.GET("/audit-logs", auth.RequireRole(models.RoleAdmin), s.listAuditLogs)

	api.GET("/settings", s.listSettings)
	api.PUT("/settings/:key", auth.RequireRole(models.RoleAdmin), s.updateSetting)

	// User management
	admin := api.Group("/admin")
	admin.Use(auth.RequireRole(models.RoleAdmin))
	admin.GET("/users", s.listUsers)
	admin.POST("/users", s.createUser)
	admin.PUT("/users/:id", s.updateUser)
	admin.DELETE("/users/:id", s.deleteUser)
}

func (s *Server) Start(port int) error {
	return s.router.Run(fmt.Sprintf(":%d", port))
}

// Auth handlers

func (s *Server) login(c *gin.Context) {
	var loginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&loginReq); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := database.GetDB().Where("username = ?", loginReq.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	if !user.CheckPassword(loginReq.Password) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	token, err := auth.GenerateToken(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token, "user": user})
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required,min=8"`
		FullName string `json:"full_name"`
		Email    string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user := models.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     models.RoleCashier,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Product handlers

func (s *Server) listProducts(c *gin.Context) {
	query := database.GetDB().Model(&models.Product{})

	if q := c.Query("q"); q != "" {
		query = query.Where("name LIKE ? OR barcode = ?", "%"+q+"%", q)
	}
	if categoryID := c.Query("category_id"); categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if c.Query("low_stock") == "true" {
		query = query.Where("quantity <= reorder_level")
	}

	var products []models.Product
	if err := query.Order("name").Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	var product models.Product
	if err := database.GetDB().First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}
	c.JSON(http.StatusOK, product)
}

func (s *Server) createProduct(c *gin.Context) {
	var product models.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if product.Name == "" || product.UnitPrice <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and a positive unit_price are required"})
		return
	}

	if err := database.GetDB().Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "create", "product", product.ID, product.Name)
	c.JSON(http.StatusCreated, product)
}

func (s *Server) updateProduct(c *gin.Context) {
	var product models.Product
	if err := database.GetDB().First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	var updates models.Product
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates.ID = product.ID
	if err := database.GetDB().Model(&product).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "update", "product", product.ID, product.Name)
	c.JSON(http.StatusOK, product)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product ID"})
		return
	}

	if err := database.GetDB().Delete(&models.Product{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "delete", "product", uint(id), "")
	c.JSON(http.StatusOK, gin.H{"message": "product deleted"})
}

func (s *Server) restockProduct(c *gin.Context) {
	var req struct {
		Quantity int `json:"quantity" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a positive quantity is required"})
		return
	}

	var product models.Product
	if err := database.GetDB().First(&product, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
		return
	}

	previous := product.Quantity
	product.Quantity += req.Quantity

	err := database.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Product{}).Where("id = ?", product.ID).
			Update("quantity", product.Quantity).Error; err != nil {
			return err
		}
		return tx.Create(&models.StockLog{
			ProductID:        product.ID,
			UserID:           c.GetUint("user_id"),
			ChangeType:       models.StockChangeRestock,
			QuantityChange:   req.Quantity,
			PreviousQuantity: previous,
			NewQuantity:      product.Quantity,
		}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "restock", "product", product.ID,
		fmt.Sprintf("+%d units", req.Quantity))
	c.JSON(http.StatusOK, product)
}

// Category handlers

func (s *Server) listCategories(c *gin.Context) {
	var categories []models.Category
	if err := database.GetDB().Order("name").Find(&categories).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch categories"})
		return
	}
	c.JSON(http.StatusOK, categories)
}

func (s *Server) createCategory(c *gin.Context) {
	var category models.Category
	if err := c.ShouldBindJSON(&category); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if category.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "category name is required"})
		return
	}

	if err := database.GetDB().Create(&category).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "category already exists"})
		return
	}
	c.JSON(http.StatusCreated, category)
}

func (s *Server) updateCategory(c *gin.Context) {
	var category models.Category
	if err := database.GetDB().First(&category, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
		return
	}

	var updates models.Category
	if err := c.ShouldBindJSON(&updates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := database.GetDB().Model(&category).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, category)
}

func (s *Server) deleteCategory(c *gin.Context) {
	if err := database.GetDB().Delete(&models.Category{}, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "category deleted"})
}

// Transaction handlers

func (s *Server) listTransactions(c *gin.Context) {
	query := database.GetDB().Model(&models.Transaction{})

	if start := c.Query("start"); start != "" {
		if t, err := time.Parse(time.RFC3339, start); err == nil {
			query = query.Where("transaction_date >= ?", t)
		}
	}
	if end := c.Query("end"); end != "" {
		if t, err := time.Parse(time.RFC3339, end); err == nil {
			query = query.Where("transaction_date <= ?", t)
		}
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			query = query.Limit(l)
		}
	}

	var transactions []models.Transaction
	if err := query.Order("transaction_date desc").Find(&transactions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, transactions)
}

func (s *Server) getTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	txn, err := s.sales.GetTransaction(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "transaction not found"})
		return
	}
	c.JSON(http.StatusOK, txn)
}

func (s *Server) createTransaction(c *gin.Context) {
	var req sales.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	req.UserID = c.GetUint("user_id")

	txn, err := s.sales.CreateTransaction(&req)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(req.UserID, "create", "transaction", txn.ID, txn.ReceiptNumber)
	c.JSON(http.StatusCreated, txn)
}

func (s *Server) voidTransaction(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid transaction ID"})
		return
	}

	userID := c.GetUint("user_id")
	if err := s.sales.VoidTransaction(uint(id), userID); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(userID, "void", "transaction", uint(id), "")
	c.JSON(http.StatusOK, gin.H{"message": "transaction voided"})
}

// Report handlers

func (s *Server) listReports(c *gin.Context) {
	limit := 30
	if l := c.Query("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	records, err := s.reports.History(models.ReportType(c.Query("type")), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) latestReport(c *gin.Context) {
	reportType := models.ReportType(c.Query("type"))
	if reportType == "" {
		reportType = models.ReportTypeDaily
	}

	record, err := s.reports.Latest(reportType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no report found"})
		return
	}
	c.JSON(http.StatusOK, record)
}

func (s *Server) generateReport(c *gin.Context) {
	var req struct {
		Type models.ReportType `json:"type" binding:"required"`
		Date string            `json:"date" binding:"required"` // YYYY-MM-DD
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be YYYY-MM-DD"})
		return
	}

	var stats *report.Stats
	switch req.Type {
	case models.ReportTypeDaily:
		stats, err = s.generator.DailyStats(c.Request.Context(), date)
	case models.ReportTypeWeekly:
		stats, err = s.generator.WeeklyStats(c.Request.Context(), date)
	case models.ReportTypeMonthly:
		stats, err = s.generator.MonthlyStats(c.Request.Context(), date)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown report type: %s", req.Type)})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	result, err := s.reports.Save(stats, c.GetUint("user_id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": stats, "result": result})
}

// Schedule handlers

func (s *Server) listSchedules(c *gin.Context) {
	var schedules []models.ReportSchedule
	if err := database.GetDB().Order("id").Find(&schedules).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch schedules"})
		return
	}
	c.JSON(http.StatusOK, schedules)
}

func (s *Server) updateSchedule(c *gin.Context) {
	var schedule models.ReportSchedule
	if err := database.GetDB().First(&schedule, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "schedule not found"})
		return
	}

	var req struct {
		IsActive *bool      `json:"is_active"`
		NextRun  *time.Time `json:"next_run"` // manual force, admin only
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	updates := map[string]interface{}{}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.NextRun != nil {
		updates["next_run"] = *req.NextRun
	}
	if len(updates) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	if err := database.GetDB().Model(&schedule).Updates(updates).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "update", "schedule", schedule.ID, string(schedule.ReportType))
	c.JSON(http.StatusOK, schedule)
}

// Notification handlers

func (s *Server) listNotifications(c *gin.Context) {
	query := database.GetDB().Model(&models.Notification{})
	if c.Query("unread") == "true" {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at desc").Limit(100).Find(&notifications).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch notifications"})
		return
	}
	c.JSON(http.StatusOK, notifications)
}

func (s *Server) markNotificationRead(c *gin.Context) {
	result := database.GetDB().Model(&models.Notification{}).
		Where("id = ?", c.Param("id")).
		Update("is_read", true)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusOK)
}

// Audit log handlers

func (s *Server) listAuditLogs(c *gin.Context) {
	query := database.GetDB().Model(&models.AuditLog{})
	if userID := c.Query("user_id"); userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if entity := c.Query("entity"); entity != "" {
		query = query.Where("entity = ?", entity)
	}

	var logs []models.AuditLog
	if err := query.Order("created_at desc").Limit(200).Find(&logs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch audit logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Settings handlers

func (s *Server) listSettings(c *gin.Context) {
	var settings []models.Setting
	if err := database.GetDB().Order("key").Find(&settings).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch settings"})
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) updateSetting(c *gin.Context) {
	var req struct {
		Value string `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	key := c.Param("key")
	setting := models.Setting{Key: key, Value: req.Value}
	err := database.GetDB().Where("key = ?", key).
		Assign(models.Setting{Value: req.Value}).
		FirstOrCreate(&setting).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "update", "setting", setting.ID, key)
	c.JSON(http.StatusOK, setting)
}

// User management handlers

func (s *Server) listUsers(c *gin.Context) {
	var users []models.User
	if err := database.GetDB().Order("username").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) createUser(c *gin.Context) {
	var req struct {
		Username string      `json:"username" binding:"required"`
		Password string      `json:"password" binding:"required,min=8"`
		FullName string      `json:"full_name"`
		Email    string      `json:"email" binding:"required,email"`
		Role     models.Role `json:"role" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !isValidRole(req.Role) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid role: %s", req.Role)})
		return
	}

	user := models.User{
		Username: req.Username,
		FullName: req.FullName,
		Email:    req.Email,
		Role:     req.Role,
		IsActive: true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	if err := database.GetDB().Create(&user).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "username or email already taken"})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "create", "user", user.ID, user.Username)
	c.JSON(http.StatusCreated, user)
}

func (s *Server) updateUser(c *gin.Context) {
	var user models.User
	if err := database.GetDB().First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}

	var req struct {
		FullName *string      `json:"full_name"`
		Email    *string      `json:"email"`
		Role     *models.Role `json:"role"`
		IsActive *bool        `json:"is_active"`
		Password *string      `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.FullName != nil {
		user.FullName = *req.FullName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Role != nil {
		if !isValidRole(*req.Role) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid role: %s", *req.Role)})
			return
		}
		user.Role = *req.Role
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
			return
		}
	}

	if err := database.GetDB().Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "update", "user", user.ID, user.Username)
	c.JSON(http.StatusOK, user)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user ID"})
		return
	}

	if err := database.GetDB().Delete(&models.User{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	s.notifier.Audit(c.GetUint("user_id"), "delete", "user", uint(id), "")
	c.JSON(http.StatusOK, gin.H{"message": "user deleted"})
}

func isValidRole(role models.Role) bool {
	validRoles := map[models.Role]bool{
		models.RoleAdmin:   true,
		models.RoleManager: true,
		models.RoleCashier: true,
	}
	return validRoles[role]
}
