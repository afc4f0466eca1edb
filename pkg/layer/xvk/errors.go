package xvk

import "errors"

// 链接记录推进相关错误
var (
	// ErrNoLayerLink 链接记录上已没有下一层信息
	ErrNoLayerLink = errors.New("xvk: loader link record has no layer info")

	// ErrAlreadyAdvanced 同一层重复推进同一条链接记录
	ErrAlreadyAdvanced = errors.New("xvk: loader link record already advanced by this layer")
)
