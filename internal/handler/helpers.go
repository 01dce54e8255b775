package handler

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/Wallacekaast/CRMESTOFADOS/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// bindAndValidateSlice is the variant for endpoints whose body is a bare
// JSON array (the sale-items batch insert).
func bindAndValidateSlice(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON inválido: "+err.Error()))
		return false
	}
	if err := validate.Var(req, "required,min=1,dive"); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("Erro de validação"))
		return false
	}
	return true
}

// notFoundMessage reports whether a service error is a "não encontrado"
// lookup miss, which handlers surface as 404 instead of 400.
func notFoundMessage(err error) bool {
	return err != nil && strings.Contains(err.Error(), "não encontrad")
}
