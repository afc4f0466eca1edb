package xlayer

import "errors"

var (
	// ErrInvalidSettings 配置无效
	ErrInvalidSettings = errors.New("xlayer: invalid settings")

	// ErrUnregistered 对象未在分发注册表中登记
	ErrUnregistered = errors.New("xlayer: object is not registered")

	// ErrMissingOwner 设备创建时找不到物理设备所属的已登记实例
	ErrMissingOwner = errors.New("xlayer: physical device has no registered owning instance")
)
