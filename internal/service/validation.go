package service

import "strings"

// requiredField 把字段名和输入值绑定在一起，报错顺序由调用方的排列决定。
type requiredField struct {
	name  string
	value *string
}

// missingFields 返回为 nil 或空白的必填字段名，按传入顺序。
func missingFields(fields ...requiredField) []string {
	var missing []string
	for _, field := range fields {
		if field.value == nil || strings.TrimSpace(*field.value) == "" {
			missing = append(missing, field.name)
		}
	}
	return missing
}
