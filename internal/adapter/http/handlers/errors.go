package handlers

import (
	"errors"
	"net/http"
	"strings"

	"tasktracker/internal/adapter/http/validation"
	"tasktracker/pkg/apierrors"

	"github.com/gin-gonic/gin"
)

var violationMessages = map[string]string{
	validation.RuleRequired: apierrors.MsgValidationRequired,
	validation.RuleString:   apierrors.MsgValidationString,
	validation.RuleMax:      apierrors.MsgValidationMax,
	validation.RuleEnum:     apierrors.MsgValidationEnum,
	validation.RuleDate:     apierrors.MsgValidationDate,
}

func respondError(c *gin.Context, code int, msgKey, lang string) {
	c.JSON(code, apierrors.CreateError(code, msgKey, lang))
}

// respondPayloadError answers 422 with every field message for validation
// failures and 400 for anything else.
func respondPayloadError(c *gin.Context, err error, lang string) {
	var fieldErrs validation.FieldErrors
	if !errors.As(err, &fieldErrs) {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
		return
	}

	c.JSON(
		http.StatusUnprocessableEntity,
		apierrors.CreateValidationError(
			http.StatusUnprocessableEntity,
			apierrors.MsgValidationFailed,
			lang,
			translateFieldErrors(fieldErrs, lang),
		),
	)
}

func translateFieldErrors(fieldErrs validation.FieldErrors, lang string) map[string][]string {
	fields := make(map[string][]string, len(fieldErrs))
	for field, violations := range fieldErrs {
		attribute := strings.ReplaceAll(field, "_", " ")
		for _, violation := range violations {
			data := map[string]any{"Attribute": attribute}
			for key, value := range violation.Params {
				data[key] = value
			}
			fields[field] = append(fields[field], apierrors.GetTransMsg(violationMessages[violation.Rule], lang, data))
		}
	}
	return fields
}
