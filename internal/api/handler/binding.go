package handler

import (
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators 在 gin 的绑定引擎上注册自定义校验规则
//
//	notblank  去首尾空白后非空
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
	})
}

// failedOn 绑定失败是否由指定的校验规则引起
func failedOn(err error, tags ...string) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return false
	}
	for _, fe := range verrs {
		for _, tag := range tags {
			if fe.Tag() == tag {
				return true
			}
		}
	}
	return false
}
