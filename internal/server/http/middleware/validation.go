package middleware

import (
	"reflect"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/polkiloo/ecocoleta/internal/domain/model"
	"github.com/polkiloo/ecocoleta/internal/usecase"
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags on gin's validator:
// "cpf" for Brazilian tax ids, "shift" for pickup shifts and "equipment" for
// the equipment catalog.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("cpf", validateCPF)
		_ = v.RegisterValidation("shift", validateShift)
		_ = v.RegisterValidation("equipment", validateEquipment)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
}

func validateCPF(fl validator.FieldLevel) bool {
	return usecase.ValidateTaxID(fl.Field().String())
}

func validateShift(fl validator.FieldLevel) bool {
	return model.Shift(fl.Field().String()).Valid()
}

func validateEquipment(fl validator.FieldLevel) bool {
	return model.EquipmentType(fl.Field().String()).Valid()
}
