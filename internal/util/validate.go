package util

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var httpURLPattern = regexp.MustCompile(`^https?://`)

// Validate 请求体校验器，字段规则集中在结构体 tag 上
var Validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// level 枚举
	v.RegisterValidation("path_level", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case "beginner", "intermediate", "advanced":
			return true
		}
		return false
	})

	// 仅接受 http/https 链接
	v.RegisterValidation("http_url", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return httpURLPattern.MatchString(s)
	})

	return v
}

// ValidateStruct 返回首个违规字段的可读描述
func ValidateStruct(s interface{}) error {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return err
	}

	fe := errs[0]
	field := strings.ToLower(fe.Field()[:1]) + fe.Field()[1:]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf("field '%s' is required", field)
	case "max":
		return fmt.Errorf("field '%s' exceeds maximum length of %s characters", field, fe.Param())
	case "path_level":
		return fmt.Errorf("field '%s' must be one of: beginner, intermediate, advanced", field)
	case "http_url":
		return fmt.Errorf("field '%s' must be a valid http(s) URL", field)
	case "dive", "gt", "min":
		return fmt.Errorf("field '%s' is invalid", field)
	}
	return fmt.Errorf("field '%s' failed validation (%s)", field, fe.Tag())
}

// ParseUUID 校验路径参数里的 UUID
func ParseUUID(s string) (string, error) {
	id, err := uuid.Parse(s)
	if err != nil {
		return "", fmt.Errorf("'%s' is not a valid UUID", s)
	}
	return id.String(), nil
}
