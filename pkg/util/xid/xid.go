package xid

import (
	"errors"
	"fmt"

	"github.com/sony/sonyflake/v2"
)

// Sonyflake v2 的固定位布局
const (
	machineBits  = 16
	sequenceBits = 8
	machineMask  = (1 << machineBits) - 1
	sequenceMask = (1 << sequenceBits) - 1
)

// Components ID 分解结果
type Components struct {
	Time     int64
	Sequence int64
	Machine  int64
}

// Generator 唯一 ID 生成器，并发安全。
type Generator struct {
	sf         *sonyflake.Sonyflake
	generateID func() (int64, error)
}

// NewGenerator 创建生成器
func NewGenerator(opts ...Option) (*Generator, error) {
	o := &options{machineID: DefaultMachineID}
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}
	if o.machineID == nil {
		o.machineID = DefaultMachineID
	}

	settings := sonyflake.Settings{
		MachineID: func() (int, error) {
			id, err := o.machineID()
			return int(id), err
		},
	}
	if o.checkMachineID != nil {
		settings.CheckMachineID = func(id int) bool {
			return o.checkMachineID(uint16(id)) //#nosec G115 -- sonyflake 保证 16 位以内
		}
	}

	sf, err := sonyflake.New(settings)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return &Generator{sf: sf, generateID: sf.NextID}, nil
}

// New 生成下一个 ID。同一 10ms 内序列号用尽时会阻塞到下一个时间单位。
func (g *Generator) New() (uint64, error) {
	if g == nil || g.generateID == nil {
		return 0, ErrNilGenerator
	}
	id, err := g.generateID()
	if err != nil {
		if errors.Is(err, sonyflake.ErrOverTimeLimit) {
			return 0, fmt.Errorf("%w: %w", ErrOverTimeLimit, err)
		}
		return 0, err
	}
	return uint64(id), nil //#nosec G115 -- sonyflake ID 恒为正
}

// Decompose 拆分 ID 的各组成部分
func Decompose(id uint64) (Components, error) {
	if id == 0 || id > 1<<63-1 {
		return Components{}, ErrInvalidID
	}
	v := int64(id) //#nosec G115 -- 上面已检查范围
	return Components{
		Time:     v >> (sequenceBits + machineBits),
		Sequence: (v >> machineBits) & sequenceMask,
		Machine:  v & machineMask,
	}, nil
}
