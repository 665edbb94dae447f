package handlers

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"strings"
	"sync"

	"homechef-api/events"
	"homechef-api/logger"
	"homechef-api/models"
	"homechef-api/payment"
	"homechef-api/store"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Handler carries every dependency the routes need
type Handler struct {
	store    store.Store
	payments payment.Provider
	events   events.Publisher
	logger   *logger.Logger

	// randIntn backs chef identifier generation
	randIntn func(n int) int
}

func New(st store.Store, payments payment.Provider, publisher events.Publisher, log *logger.Logger) *Handler {
	registerValidators()
	if publisher == nil {
		publisher = events.Noop{}
	}
	return &Handler{
		store:    st,
		payments: payments,
		events:   publisher,
		logger:   log.WithComponent("handlers"),
		randIntn: rand.IntN,
	}
}

var registerOnce sync.Once

// registerValidators adds the enum tags used in request bindings
func registerValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("orderstatus", func(fl validator.FieldLevel) bool {
			return models.OrderStatus(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("requesttype", func(fl validator.FieldLevel) bool {
			return models.RequestType(fl.Field().String()).Valid()
		})
	})
}

func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"message": message})
}

// internalError logs the cause and hides it from the client
func (h *Handler) internalError(c *gin.Context, msg string, err error) {
	h.logger.Error(msg, "error", err, "path", c.FullPath())
	_ = c.Error(err)
	respondError(c, http.StatusInternalServerError, "Internal server error")
}

// bindJSON binds the body and answers 400 on failure
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, len(verrs))
		for i, fe := range verrs {
			fields[i] = fe.Field() + " failed on '" + fe.Tag() + "'"
		}
		return "Invalid request: " + strings.Join(fields, "; ")
	}
	return "Invalid request body: " + err.Error()
}

// publish is best effort: a broker failure never fails the request
func (h *Handler) publish(ctx context.Context, subject string, payload interface{}) {
	if err := h.events.Publish(ctx, subject, payload); err != nil {
		h.logger.Warn("Failed to publish event", "subject", subject, "error", err)
	}
}
