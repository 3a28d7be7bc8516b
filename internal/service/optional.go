package service

import "encoding/json"

// OptionalString 区分"请求中未出现"与"显式传 null"两种情况。
// Set 为 false 表示字段未出现，更新时保持原值；
// Set 为 true 且 Value 为 nil 表示显式置空。
type OptionalString struct {
	Set   bool
	Value *string
}

// UnmarshalJSON 只有字段出现在请求体里才会被调用，借此感知字段是否出现。
func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}
	var v string
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// MarshalJSON 按 Value 输出，主要用于测试回放。
func (o OptionalString) MarshalJSON() ([]byte, error) {
	if o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}
