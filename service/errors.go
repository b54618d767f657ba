package service

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError 参数校验失败，发生在任何写操作之前
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.Key)
}

func notFound(entity string, key any) error {
	return &NotFoundError{Entity: entity, Key: fmt.Sprint(key)}
}

// InsufficientStockError 携带当前可用库存，便于客户端修正数量
type InsufficientStockError struct {
	ProductID uint64 `json:"product_id"`
	ColorName string `json:"color_name"`
	SizeLabel string `json:"size"`
	Requested int    `json:"requested"`
	Available int    `json:"available"`
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d (%s/%s): requested %d, available %d",
		e.ProductID, e.ColorName, e.SizeLabel, e.Requested, e.Available)
}

type InvalidTransitionError struct {
	From    string   `json:"current"`
	To      string   `json:"requested"`
	Allowed []string `json:"allowed"`
}

func (e *InvalidTransitionError) Error() string {
	allowed := "none"
	if len(e.Allowed) > 0 {
		allowed = strings.Join(e.Allowed, ", ")
	}
	return fmt.Sprintf("cannot move order from %s to %s, allowed: %s", e.From, e.To, allowed)
}

// ErrConcurrentUpdate 订单状态在读取后被其他请求修改
var ErrConcurrentUpdate = errors.New("order was modified concurrently, retry")

// ItemError 标出订单中出错的行，Index 从 0 开始
type ItemError struct {
	Index int
	Err   error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("item %d: %v", e.Index, e.Err)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}
