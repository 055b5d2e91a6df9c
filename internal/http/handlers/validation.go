package handlers

import (
	"math"
	"reflect"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("money", validMoney)
	}
}

// validMoney accepts amounts with at most two decimal places, the scale of
// every NUMERIC amount column.
func validMoney(fl validator.FieldLevel) bool {
	f := fl.Field()

	switch f.Kind() {
	case reflect.Float32, reflect.Float64:
		cents := f.Float() * 100
		return math.Abs(cents-math.Round(cents)) < 1e-6
	case reflect.Int, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}
