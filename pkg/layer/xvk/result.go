package xvk

import "strconv"

// Result 入口函数返回的结果码。非负值表示成功，负值表示失败。
type Result int32

// 结果码，数值与图形 API 保持一致
const (
	Success    Result = 0
	NotReady   Result = 1
	Timeout    Result = 2
	Incomplete Result = 5

	ErrorOutOfHostMemory      Result = -1
	ErrorOutOfDeviceMemory    Result = -2
	ErrorInitializationFailed Result = -3
	ErrorDeviceLost           Result = -4
	ErrorLayerNotPresent      Result = -6
	ErrorExtensionNotPresent  Result = -7
	ErrorFeatureNotPresent    Result = -8
	ErrorIncompatibleDriver   Result = -9
	ErrorTooManyObjects       Result = -10
	ErrorUnknown              Result = -13
	ErrorInvalidShader        Result = -1000012000
)

var resultNames = map[Result]string{
	Success:                   "SUCCESS",
	NotReady:                  "NOT_READY",
	Timeout:                   "TIMEOUT",
	Incomplete:                "INCOMPLETE",
	ErrorOutOfHostMemory:      "ERROR_OUT_OF_HOST_MEMORY",
	ErrorOutOfDeviceMemory:    "ERROR_OUT_OF_DEVICE_MEMORY",
	ErrorInitializationFailed: "ERROR_INITIALIZATION_FAILED",
	ErrorDeviceLost:           "ERROR_DEVICE_LOST",
	ErrorLayerNotPresent:      "ERROR_LAYER_NOT_PRESENT",
	ErrorExtensionNotPresent:  "ERROR_EXTENSION_NOT_PRESENT",
	ErrorFeatureNotPresent:    "ERROR_FEATURE_NOT_PRESENT",
	ErrorIncompatibleDriver:   "ERROR_INCOMPATIBLE_DRIVER",
	ErrorTooManyObjects:       "ERROR_TOO_MANY_OBJECTS",
	ErrorUnknown:              "ERROR_UNKNOWN",
	ErrorInvalidShader:        "ERROR_INVALID_SHADER_NV",
}

// String 返回结果码名称，未知值返回 "Result(n)"。
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return "Result(" + strconv.Itoa(int(r)) + ")"
}

// Succeeded 报告结果码是否表示成功（包括 NotReady 等非零成功码）。
func (r Result) Succeeded() bool { return r >= Success }

// Err 将失败码转换为 error，成功码返回 nil。
//
// 返回的错误可用 errors.Is 与另一个同码的 Err() 比较，
// 也可用 errors.As 取回 *ResultError。
func (r Result) Err() error {
	if r.Succeeded() {
		return nil
	}
	return &ResultError{Result: r}
}

// ResultError 承载失败结果码的 error 实现。
type ResultError struct {
	Result Result
}

// Error 实现 error 接口
func (e *ResultError) Error() string {
	return "xvk: " + e.Result.String()
}

// Is 按结果码比较
func (e *ResultError) Is(target error) bool {
	t, ok := target.(*ResultError)
	return ok && t.Result == e.Result
}
