package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunWaitsForEveryJob(t *testing.T) {
	p := New(4)
	defer p.Close()

	var n atomic.Int32
	jobs := make([]func(), 100)
	for i := range jobs {
		jobs[i] = func() { n.Add(1) }
	}
	p.Run(jobs...)
	assert.Equal(t, int32(100), n.Load())

	p.Run()
	assert.Equal(t, int32(100), n.Load())
}

func TestPanickingJobDoesNotStopPool(t *testing.T) {
	p := New(1)
	defer p.Close()

	var n atomic.Int32
	p.Run(func() { panic("boom") }, func() { n.Add(1) })
	p.Run(func() { n.Add(1) })
	assert.Equal(t, int32(2), n.Load())
}

func TestCloseDrainsQueue(t *testing.T) {
	p := New(0)

	var n atomic.Int32
	for i := 0; i < 10; i++ {
		p.Submit(func() { n.Add(1) })
	}
	p.Close()
	p.Close()
	assert.Equal(t, int32(10), n.Load())
}
