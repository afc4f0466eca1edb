package xid

import (
	"errors"
	"sync"
	"testing"

	"github.com/sony/sonyflake/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedMachine(id uint16) Option {
	return WithMachineID(func() (uint16, error) { return id, nil })
}

func TestGenerator_UniqueAndNonZero(t *testing.T) {
	g, err := NewGenerator(fixedMachine(7))
	require.NoError(t, err)

	const goroutines, perG = 8, 64
	var (
		mu   sync.Mutex
		seen = make(map[uint64]struct{}, goroutines*perG)
		wg   sync.WaitGroup
	)
	for range goroutines {
		wg.Go(func() {
			for range perG {
				id, err := g.New()
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				seen[id] = struct{}{}
				mu.Unlock()
			}
		})
	}
	wg.Wait()
	assert.Len(t, seen, goroutines*perG)
	_, zero := seen[0]
	assert.False(t, zero)
}

func TestDecompose(t *testing.T) {
	g, err := NewGenerator(fixedMachine(0x1234))
	require.NoError(t, err)
	id, err := g.New()
	require.NoError(t, err)

	c, err := Decompose(id)
	require.NoError(t, err)
	assert.Equal(t, int64(0x1234), c.Machine)

	_, err = Decompose(0)
	assert.ErrorIs(t, err, ErrInvalidID)
}

func TestNewGenerator_CheckMachineID(t *testing.T) {
	_, err := NewGenerator(fixedMachine(3), WithCheckMachineID(func(id uint16) bool { return id != 3 }))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewGenerator(WithMachineID(func() (uint16, error) { return 0, errors.New("boom") }))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerator_Errors(t *testing.T) {
	var nilGen *Generator
	_, err := nilGen.New()
	assert.ErrorIs(t, err, ErrNilGenerator)

	g := &Generator{generateID: func() (int64, error) { return 0, sonyflake.ErrOverTimeLimit }}
	_, err = g.New()
	assert.ErrorIs(t, err, ErrOverTimeLimit)
}

func TestDefaultMachineID(t *testing.T) {
	_, err := DefaultMachineID()
	assert.NoError(t, err)
}
