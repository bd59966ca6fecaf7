package track

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/born-ml/track/internal/nn"
	"github.com/born-ml/track/internal/tensor"
)

func TestShapeTracker_EndToEnd(t *testing.T) {
	net := testNet()

	trackers := Trace(net, NewShapeTracker, nil, func() {
		nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
	})
	require.Len(t, trackers, 6)

	wantIn := [][]int{{7, 3}, {7, 3}, {7, 1000}, {7, 1000}, {7, 1000}, {7, 2}}
	wantOut := [][]int{{7, 2}, {7, 1000}, {7, 1000}, {7, 2}, {7, 2}, {7, 2}}

	for i, tr := range trackers {
		st := tr.(*ShapeTracker)
		assert.Equal(t, []any{wantIn[i]}, st.InputShape, "input shape of node %d", i)
		assert.Equal(t, wantOut[i], st.OutputShape, "output shape of node %d", i)
	}

	root := trackers[0].(*ShapeTracker)
	assert.Equal(t, "0 Sequential          : ([7 3]) -> [7 2]", root.String())
}

func TestShapeTracker_NestedStructures(t *testing.T) {
	a := tensor.Zeros(tensor.Shape{2, 3})
	b := tensor.Zeros(tensor.Shape{4})

	// Non-tensor leaves are dropped from slices and omitted from maps.
	in := []any{a, "not a tensor", []any{b, 5}}
	assert.Equal(t,
		[]any{[]int{2, 3}, []any{[]int{4}}},
		resolveShape(in))

	m := map[string]any{"x": a, "meta": 42}
	assert.Equal(t,
		map[string]any{"x": []int{2, 3}},
		resolveShape(m))

	assert.Nil(t, resolveShape("plain value"))
	assert.Nil(t, resolveShape(nil))
}

func TestParamTracker_EndToEnd(t *testing.T) {
	net := testNet()

	trackers := Trace(net, NewParamTracker, nil, func() {
		nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
	})
	require.Len(t, trackers, 6)

	want := []int{0, 4000, 0, 0, 2002, 0}
	total := 0
	for i, tr := range trackers {
		pt := tr.(*ParamTracker)
		assert.Equal(t, want[i], pt.NumParams, "params of node %d", i)
		total += pt.NumParams
	}
	assert.Equal(t, 6002, total)

	assert.Equal(t, "1   Linear            : 4000", trackers[1].(*ParamTracker).String())
}

func TestParamTracker_FilteredContainerCountsSubtree(t *testing.T) {
	net := testNet()

	// The inner Sequential, tracked as a leaf, contributes its full
	// recursive parameter set.
	trackers := Trace(net, NewParamTracker, []string{"Sequential"}, func() {
		nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
	})
	require.Len(t, trackers, 4)

	want := []int{0, 4000, 0, 2002}
	for i, tr := range trackers {
		assert.Equal(t, want[i], tr.(*ParamTracker).NumParams)
	}
}

func TestTimeTracker(t *testing.T) {
	net := testNet()

	trackers := Trace(net, NewTimeTracker, nil, func() {
		nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
	})
	require.Len(t, trackers, 6)

	root := trackers[0].(*TimeTracker)
	assert.Greater(t, root.Elapsed().Nanoseconds(), int64(0))

	// A parent's elapsed time covers its whole subtree.
	for _, tr := range trackers[1:] {
		assert.LessOrEqual(t, tr.(*TimeTracker).Elapsed(), root.Elapsed())
	}
}

func TestMemTracker_Delta(t *testing.T) {
	layer := nn.NewLinear(2, 2)

	readings := []uint64{100, 150}
	read := func() (uint64, error) {
		v := readings[0]
		readings = readings[1:]
		return v, nil
	}

	trackers := Trace(layer, MemTrackerWith(read), nil, func() {
		nn.Call(layer, tensor.Randn(tensor.Shape{1, 2}))
	})
	require.Len(t, trackers, 1)

	delta, ok := trackers[0].(*MemTracker).Delta()
	assert.True(t, ok)
	assert.Equal(t, int64(50), delta)
	assert.Equal(t, "0 Linear              : 50 B", trackers[0].(*MemTracker).String())
}

func TestMemTracker_NegativeDelta(t *testing.T) {
	layer := nn.NewReLU()

	readings := []uint64{200, 80}
	read := func() (uint64, error) {
		v := readings[0]
		readings = readings[1:]
		return v, nil
	}

	trackers := Trace(layer, MemTrackerWith(read), nil, func() {
		nn.Call(layer, tensor.Ones(tensor.Shape{1}))
	})

	delta, ok := trackers[0].(*MemTracker).Delta()
	assert.True(t, ok)
	assert.Equal(t, int64(-120), delta)
}

func TestMemTracker_UnknownOnFailure(t *testing.T) {
	layer := nn.NewReLU()

	read := func() (uint64, error) {
		return 0, errors.New("no reading")
	}

	// A failing source never aborts the traversal.
	trackers := Trace(layer, MemTrackerWith(read), nil, func() {
		nn.Call(layer, tensor.Ones(tensor.Shape{1}))
	})
	require.Len(t, trackers, 1)

	_, ok := trackers[0].(*MemTracker).Delta()
	assert.False(t, ok)
	assert.Equal(t, "0 ReLU                : unknown", trackers[0].(*MemTracker).String())
}

func TestCPUMemTracker_ReadsProcessRSS(t *testing.T) {
	rss, err := ProcessRSS()
	require.NoError(t, err)
	assert.Greater(t, rss, uint64(0))

	layer := nn.NewLinear(8, 8)
	trackers := Trace(layer, NewCPUMemTracker, nil, func() {
		nn.Call(layer, tensor.Randn(tensor.Shape{4, 8}))
	})

	_, ok := trackers[0].(*MemTracker).Delta()
	assert.True(t, ok)
}

func TestGPUMemTracker_DefaultReadsZero(t *testing.T) {
	layer := nn.NewReLU()

	trackers := Trace(layer, NewGPUMemTracker, nil, func() {
		nn.Call(layer, tensor.Ones(tensor.Shape{1}))
	})

	delta, ok := trackers[0].(*MemTracker).Delta()
	assert.True(t, ok)
	assert.Equal(t, int64(0), delta)
}

func TestGPUMemTracker_RegisteredSource(t *testing.T) {
	allocated := map[int]uint64{0: 1024}
	RegisterDeviceMem(func(device int) (uint64, error) {
		return allocated[device], nil
	})
	defer RegisterDeviceMem(nil)

	layer := nn.NewReLU()
	trackers := Trace(layer, MemTrackerWith(DeviceMem(0)), nil, func() {
		allocated[0] += 512
		nn.Call(layer, tensor.Ones(tensor.Shape{1}))
	})

	delta, ok := trackers[0].(*MemTracker).Delta()
	assert.True(t, ok)
	assert.Equal(t, int64(512), delta)
}

func TestIOPNumTracker_EndToEnd(t *testing.T) {
	net := testNet()

	trackers := Trace(net, NewIOPNumTracker, nil, func() {
		nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
	})
	require.Len(t, trackers, 6)

	wantLocal := []IOPCounts{
		{ParamsLearnable: 0, TensorsLearnable: 14, TensorsFixed: 21},
		{ParamsLearnable: 4000, TensorsLearnable: 7000, TensorsFixed: 21},
		{ParamsLearnable: 0, TensorsLearnable: 14000},
		{ParamsLearnable: 0, TensorsLearnable: 7014},
		{ParamsLearnable: 2002, TensorsLearnable: 7014},
		{ParamsLearnable: 0, TensorsLearnable: 28},
	}
	for i, tr := range trackers {
		assert.Equal(t, wantLocal[i], tr.(*IOPTracker).Local(), "local counts of node %d", i)
	}

	// De-duplication by identity makes the session totals smaller than
	// the sum of the per-module numbers.
	total := trackers[5].(*IOPTracker).SessionTotal()
	assert.Equal(t, IOPCounts{
		ParamsLearnable:  6002,
		TensorsLearnable: 14028,
		TensorsFixed:     21,
	}, total)
	assert.Equal(t, 6002, total.Params())
	assert.Equal(t, 14049, total.Tensors())

	assert.Equal(t,
		"P:   6002 (requires_grad:   6002) IO:  14049 (requires_grad:  14028)",
		trackers[5].(*IOPTracker).TotalString())
}

func TestIOPMemTracker_EndToEnd(t *testing.T) {
	net := testNet()

	trackers := Trace(net, NewIOPMemTracker, nil, func() {
		nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
	})

	// Byte accounting is element accounting times the float32 width.
	total := trackers[5].(*IOPTracker).SessionTotal()
	assert.Equal(t, IOPCounts{
		ParamsLearnable:  24008,
		TensorsLearnable: 56112,
		TensorsFixed:     84,
	}, total)

	assert.Equal(t,
		"P:  24008 B (requires_grad:  24008 B) IO:  56196 B (requires_grad:  56112 B)",
		trackers[5].(*IOPTracker).TotalString())
}

func TestCombine_FanOutMatchesSoloRuns(t *testing.T) {
	net := testNet()
	input := tensor.Randn(tensor.Shape{7, 3})

	combined := Trace(net, Combine(NewShapeTracker, NewParamTracker), nil, func() {
		nn.Call(net, input)
	})
	soloShapes := Trace(net, NewShapeTracker, nil, func() {
		nn.Call(net, input)
	})
	soloParams := Trace(net, NewParamTracker, nil, func() {
		nn.Call(net, input)
	})

	require.Len(t, combined, 6)
	for i, tr := range combined {
		mt := tr.(*MultiTracker)
		require.Equal(t, 2, mt.Len())

		shape := mt.At(0).(*ShapeTracker)
		param := mt.At(1).(*ParamTracker)
		soloShape := soloShapes[i].(*ShapeTracker)
		soloParam := soloParams[i].(*ParamTracker)

		assert.Equal(t, soloShape.InputShape, shape.InputShape)
		assert.Equal(t, soloShape.OutputShape, shape.OutputShape)
		assert.Equal(t, soloParam.NumParams, param.NumParams)
		assert.Equal(t, i, shape.Count)
		assert.Equal(t, i, param.Count)
	}
}

func TestCombine_SubDictsAreIsolated(t *testing.T) {
	net := testNet()

	// Two accumulating kinds combined: each gets its own sub-slot, so
	// element and byte tallies never collide.
	trackers := Trace(net, Combine(NewIOPNumTracker, NewIOPMemTracker), nil, func() {
		nn.Call(net, tensor.Randn(tensor.Shape{7, 3}))
	})

	last := trackers[5].(*MultiTracker)
	num := last.At(0).(*IOPTracker).SessionTotal()
	mem := last.At(1).(*IOPTracker).SessionTotal()

	assert.Equal(t, 6002, num.Params())
	assert.Equal(t, 24008, mem.Params())
}
