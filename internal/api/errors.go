package api

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/muhammadolammi/opportunitymatch/internal/domain"
)

func statusOf(kind domain.Kind) int {
	switch kind {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindAuth:
		return http.StatusUnauthorized
	case domain.KindConflict:
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// respondError writes err as {"message": ...}. Upstream, persistence and
// unclassified errors are logged and answered with fallback so no internal
// detail reaches the client.
func respondError(c *gin.Context, err error, fallback string) {
	kind := domain.KindOf(err)
	status := statusOf(kind)
	msg := domain.MessageOf(err, fallback)
	if status == http.StatusInternalServerError {
		log.Printf("[api] %s %s: %v", c.Request.Method, c.FullPath(), err)
		msg = fallback
	}
	c.AbortWithStatusJSON(status, gin.H{"message": msg})
}

// bindJSON decodes the request body into v and turns binding failures into
// validation errors naming the offending fields.
func bindJSON(c *gin.Context, v any) error {
	err := c.ShouldBindJSON(v)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, fieldMessage(fe))
		}
		return domain.Validation(strings.Join(msgs, "; "))
	}
	return domain.Validation("Invalid request body")
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		return name + " must be at least " + fe.Param() + " characters"
	case "max":
		return name + " must be at most " + fe.Param() + " characters"
	}
	return name + " is invalid"
}
