package icdsim

import "errors"

// ErrNoPhysicalDevices 驱动至少需要一个物理设备
var ErrNoPhysicalDevices = errors.New("icdsim: physical device count must be positive")
