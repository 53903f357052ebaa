package http

import (
	"crypto/subtle"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/suchimauz/coaching-slot-picker/internal/config"
	"github.com/suchimauz/coaching-slot-picker/internal/core/domain"
	"github.com/suchimauz/coaching-slot-picker/internal/core/json_types"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/in"
	"github.com/suchimauz/coaching-slot-picker/internal/core/ports/out"
	"github.com/suchimauz/coaching-slot-picker/internal/utils"
)

type SlotPickerController struct {
	useCase     in.SlotPickerUseCase
	cfg         *config.Config
	logger      out.LoggerPort
	rateLimiter *ipRateLimiter
	now         func() time.Time
}

func NewSlotPickerController(useCase in.SlotPickerUseCase, cfg *config.Config, logger out.LoggerPort) *SlotPickerController {
	return &SlotPickerController{
		useCase:     useCase,
		cfg:         cfg,
		logger:      logger,
		rateLimiter: newIPRateLimiter(cfg.HTTP.RateLimitPerMinute, cfg.HTTP.RateLimitBurst, cfg.HTTP.RateLimitClients, cfg.HTTP.RateLimitClientTTL),
		now:         time.Now,
	}
}

func (c *SlotPickerController) RegisterRoutes(router *gin.Engine) {
	router.Use(c.cors())
	router.GET("/health", c.health)

	api := router.Group("/api/v1")
	api.Use(c.rateLimit(), c.basicAuth())
	{
		api.GET("/calendar/months/:month/available-dates", c.getAvailableDates)
		api.GET("/calendar/days/:date/slots", c.getDaySlots)

		api.POST("/pickers", c.startPicker)
		api.GET("/pickers/:pickerId", c.getPicker)
		api.POST("/pickers/:pickerId/month", c.pickerChangeMonth)
		api.POST("/pickers/:pickerId/day", c.pickerSelectDay)
		api.POST("/pickers/:pickerId/back", c.pickerBack)
		api.POST("/pickers/:pickerId/slot", c.pickerSelectSlot)
		api.DELETE("/pickers/:pickerId", c.closePicker)

		api.POST("/bookings", c.submitBooking)

		api.GET("/services", c.listServices)
		api.GET("/users/:userId/bookings", c.listUserBookings)
	}
}

type StartPickerRequest struct {
	Month string `json:"month"`
}

type ChangeMonthRequest struct {
	Month string `json:"month" binding:"required"`
}

type SelectDayRequest struct {
	Date string `json:"date" binding:"required"`
}

type SelectSlotRequest struct {
	Index *int `json:"index" binding:"required"`
}

type SubmitBookingRequest struct {
	Selection domain.SlotSelection  `json:"selection"`
	Details   domain.BookingDetails `json:"details"`
}

func (c *SlotPickerController) health(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"version": c.cfg.App.Version,
	})
}

func (c *SlotPickerController) getAvailableDates(ctx *gin.Context) {
	month, err := json_types.ParseMonth(ctx.Param("month"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month format, expected YYYY-MM"})
		return
	}

	dates, err := c.useCase.GetAvailableDates(ctx.Request.Context(), month)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"month": month,
		"dates": dates,
	})
}

func (c *SlotPickerController) getDaySlots(ctx *gin.Context) {
	date, err := json_types.ParseDate(ctx.Param("date"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	slots, debugInfo, err := c.useCase.GetDaySlots(ctx.Request.Context(), date)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	response := gin.H{
		"date":  date,
		"slots": slots,
	}
	if ctx.Query("debug") == "true" {
		response["debug"] = debugInfo
	}

	ctx.JSON(http.StatusOK, response)
}

func (c *SlotPickerController) startPicker(ctx *gin.Context) {
	var req StartPickerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil && ctx.Request.ContentLength > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// Без месяца открываем текущий
	month := utils.CurrentMonth(c.now(), c.cfg.App.Location)
	if req.Month != "" {
		parsed, err := json_types.ParseMonth(req.Month)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month format, expected YYYY-MM"})
			return
		}
		month = parsed
	}

	view, err := c.useCase.StartPicker(ctx.Request.Context(), month)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, view)
}

func (c *SlotPickerController) getPicker(ctx *gin.Context) {
	view, err := c.useCase.GetPicker(ctx.Request.Context(), ctx.Param("pickerId"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (c *SlotPickerController) pickerChangeMonth(ctx *gin.Context) {
	var req ChangeMonthRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	month, err := json_types.ParseMonth(req.Month)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month format, expected YYYY-MM"})
		return
	}

	view, err := c.useCase.PickerChangeMonth(ctx.Request.Context(), ctx.Param("pickerId"), month)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (c *SlotPickerController) pickerSelectDay(ctx *gin.Context) {
	var req SelectDayRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	date, err := json_types.ParseDate(req.Date)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	view, err := c.useCase.PickerSelectDay(ctx.Request.Context(), ctx.Param("pickerId"), date)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (c *SlotPickerController) pickerBack(ctx *gin.Context) {
	view, err := c.useCase.PickerBack(ctx.Request.Context(), ctx.Param("pickerId"))
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (c *SlotPickerController) pickerSelectSlot(ctx *gin.Context) {
	var req SelectSlotRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := c.useCase.PickerSelectSlot(ctx.Request.Context(), ctx.Param("pickerId"), *req.Index)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, view)
}

func (c *SlotPickerController) closePicker(ctx *gin.Context) {
	if err := c.useCase.ClosePicker(ctx.Request.Context(), ctx.Param("pickerId")); err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

func (c *SlotPickerController) submitBooking(ctx *gin.Context) {
	var req SubmitBookingRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	confirmation, err := c.useCase.SubmitBooking(ctx.Request.Context(), req.Selection, req.Details)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, confirmation)
}

func (c *SlotPickerController) listServices(ctx *gin.Context) {
	services, err := c.useCase.ListServices(ctx.Request.Context())
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"services": services,
	})
}

func (c *SlotPickerController) listUserBookings(ctx *gin.Context) {
	userID, err := strconv.Atoi(ctx.Param("userId"))
	if err != nil || userID <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user id, expected a positive number"})
		return
	}

	bookings, err := c.useCase.ListUserBookings(ctx.Request.Context(), userID)
	if err != nil {
		c.writeError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"userId":   userID,
		"bookings": bookings,
	})
}

func (c *SlotPickerController) basicAuth() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		username, password, hasAuth := ctx.Request.BasicAuth()
		if !hasAuth || !c.isClientAllowed(username, password) {
			ctx.Header("WWW-Authenticate", "Basic realm=Authorization Required")
			ctx.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		ctx.Next()
	}
}

func (c *SlotPickerController) isClientAllowed(username, password string) bool {
	allowed := false
	for _, client := range c.cfg.Auth.BasicClients {
		userMatch := subtle.ConstantTimeCompare([]byte(username), []byte(client.Username)) == 1
		passwordMatch := subtle.ConstantTimeCompare([]byte(password), []byte(client.Password)) == 1
		if userMatch && passwordMatch {
			allowed = true
		}
	}
	return allowed
}
