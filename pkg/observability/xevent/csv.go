package xevent

import (
	"strconv"
	"strings"
	"time"

	"github.com/omeyang/vkperf/pkg/util/xtiming"
)

// needsQuote 单元格是否含有会破坏行结构的字符
func needsQuote(cell string) bool {
	return strings.ContainsAny(cell, ",\"\r\n")
}

// Quote 无条件地用双引号包裹 cell，内部的双引号加倍。
func Quote(cell string) string {
	var b strings.Builder
	b.Grow(len(cell) + 2)
	b.WriteByte('"')
	for i := 0; i < len(cell); i++ {
		if cell[i] == '"' {
			b.WriteByte('"')
		}
		b.WriteByte(cell[i])
	}
	b.WriteByte('"')
	return b.String()
}

// Cell 需要时对 cell 加引号，否则原样返回。
func Cell(cell string) string {
	if needsQuote(cell) {
		return Quote(cell)
	}
	return cell
}

// CsvCat 用逗号连接各段，不做引号处理：
// 各段可以是已经格式化好的多列内容。
func CsvCat(parts ...string) string {
	return strings.Join(parts, ",")
}

// Row 把每个值作为一个单元格拼成一行，按需加引号。
func Row(cells ...string) string {
	quoted := make([]string, len(cells))
	for i, c := range cells {
		quoted[i] = Cell(c)
	}
	return strings.Join(quoted, ",")
}

// Prefix 返回事件日志行前缀 "event_type,timestamp_ns"。
func Prefix(eventType string, ts time.Time) string {
	return CsvCat(Cell(eventType), strconv.FormatInt(xtiming.ToUnixNanos(ts), 10))
}
