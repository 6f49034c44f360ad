package validator

import (
	"log"
	"strconv"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"internship_admin/internal/filter"
)

const maxStatusLen = 64

// registerCustomRules регистрирует кастомные правила в переданном валидаторе.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			// Без правил приложение запускать нельзя.
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'not-blank': строка не пустая после trim
	mustRegister("not-blank", validateNotBlank)

	// 'is-entity-id': положительный числовой id, как его шлет select формы
	mustRegister("is-entity-id", validateEntityID)

	// 'is-filter-status': "all" или однострочное имя статуса
	mustRegister("is-filter-status", validateFilterStatus)
}

func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

func validateEntityID(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' обрабатывает пустые
	}
	n, err := strconv.ParseInt(value, 10, 64)
	return err == nil && n > 0
}

func validateFilterStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" || value == filter.StatusAll {
		return true
	}
	if len(value) > maxStatusLen {
		return false
	}
	for _, r := range value {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}
