package track

import (
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/born-ml/track/internal/nn"
)

// MemFunc reads a memory level in bytes. It is the fixed measurement
// interface the memory trackers consume; any source (process RSS, a
// device allocator, a test stub) can back it.
type MemFunc func() (uint64, error)

// ProcessRSS reads the resident set size of the current process.
//
// This is the memory consumption of the whole process, not of any
// particular tensor allocator.
func ProcessRSS() (uint64, error) {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return 0, err
	}
	info, err := p.MemoryInfo()
	if err != nil {
		return 0, err
	}
	return info.RSS, nil
}

// MemTracker records the signed delta between two reads of a memory
// source, one at entry and one at exit.
//
// A failed read does not abort the traversal: the sample is marked
// unknown and renders as such. CPUMemTracker and GPUMemTracker are the
// two stock configurations.
type MemTracker struct {
	Base
	ModuleKind string
	read       MemFunc
	pre, post  uint64
	known      bool
}

// NewCPUMemTracker is a Factory for a MemTracker over the process
// resident set size.
func NewCPUMemTracker(count, depth int, leaf bool, shared Dict) Tracker {
	return MemTrackerWith(ProcessRSS)(count, depth, leaf, shared)
}

// NewGPUMemTracker is a Factory for a MemTracker over device memory on
// device 0. Without a registered device reader every sample reads zero.
func NewGPUMemTracker(count, depth int, leaf bool, shared Dict) Tracker {
	return MemTrackerWith(DeviceMem(0))(count, depth, leaf, shared)
}

// MemTrackerWith returns a Factory for a MemTracker over an arbitrary
// memory source.
func MemTrackerWith(read MemFunc) Factory {
	return func(count, depth int, leaf bool, shared Dict) Tracker {
		return &MemTracker{
			Base: Base{Count: count, Depth: depth, Leaf: leaf, Shared: shared},
			read: read,
		}
	}
}

// Pre records the module kind and the baseline reading.
func (t *MemTracker) Pre(m nn.Module, inputs []any) {
	t.ModuleKind = m.Kind()
	t.known = true
	v, err := t.read()
	if err != nil {
		t.known = false
		return
	}
	t.pre = v
}

// Post records the exit reading.
func (t *MemTracker) Post(m nn.Module, inputs []any, output any) {
	if !t.known {
		return
	}
	v, err := t.read()
	if err != nil {
		t.known = false
		return
	}
	t.post = v
}

// Delta returns the signed byte delta between exit and entry, and
// whether both readings succeeded.
func (t *MemTracker) Delta() (int64, bool) {
	if !t.known {
		return 0, false
	}
	return int64(t.post) - int64(t.pre), true
}

// String renders "<count> <kind>: <delta> B", or "unknown" when a
// reading failed.
func (t *MemTracker) String() string {
	delta, ok := t.Delta()
	if !ok {
		return fmt.Sprintf("%s: unknown", labelFor(t.Count, t.Depth, t.ModuleKind))
	}
	return fmt.Sprintf("%s: %d B", labelFor(t.Count, t.Depth, t.ModuleKind), delta)
}

// deviceMemFunc is the registered device-memory source. Device memory
// accounting is external to this package; a compute backend registers
// its allocator statistics here. The default reports zero allocated
// bytes on every device.
var deviceMemFunc = func(device int) (uint64, error) {
	return 0, nil
}

// RegisterDeviceMem installs the device-memory source consumed by
// DeviceMem and NewGPUMemTracker. Passing nil restores the default
// zero reader.
func RegisterDeviceMem(read func(device int) (uint64, error)) {
	if read == nil {
		deviceMemFunc = func(int) (uint64, error) { return 0, nil }
		return
	}
	deviceMemFunc = read
}

// DeviceMem returns a MemFunc reading allocated bytes on the given
// device index.
func DeviceMem(device int) MemFunc {
	return func() (uint64, error) {
		return deviceMemFunc(device)
	}
}
