package dto

import (
	"bytes"
	"encoding/json"
)

// Optional различает три состояния поля в PATCH-запросе:
// поле не передано (Set=false), передан null (Set=true, Null=true),
// передано значение (Set=true, Value).
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Null = true
		return nil
	}
	return json.Unmarshal(data, &o.Value)
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Null {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// Ptr возвращает nil для null, иначе указатель на копию значения
func (o Optional[T]) Ptr() *T {
	if o.Null {
		return nil
	}
	v := o.Value
	return &v
}

// Merge - значение из патча, если поле передано, иначе текущее.
func Merge[T any](current T, patch *T) T {
	if patch != nil {
		return *patch
	}
	return current
}

// MergeNullable - то же для nullable колонок: null в патче сбрасывает значение.
func MergeNullable[T any](current *T, patch Optional[T]) *T {
	if !patch.Set {
		return current
	}
	return patch.Ptr()
}
