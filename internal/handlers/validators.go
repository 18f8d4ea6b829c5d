package handlers

import (
	"strings"
	"sync"

	"github.com/SscSPs/bookkeeping_app/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// registerValidators installs the custom binding tags used by the DTOs and makes
// JSON binding reject unknown fields so clients cannot set server-owned ones.
func registerValidators(classifier *domain.Classifier) {
	registerOnce.Do(func() {
		binding.EnableDecoderDisallowUnknownFields = true

		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("accountgroup", func(fl validator.FieldLevel) bool {
			_, err := classifier.Lookup(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("vouchertype", func(fl validator.FieldLevel) bool {
			return domain.VoucherType(strings.ToUpper(strings.TrimSpace(fl.Field().String()))).IsValid()
		})
	})
}
