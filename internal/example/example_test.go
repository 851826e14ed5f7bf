package example

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/andreyvit/trackgen"
)

func TestFreshRecordIsClean(t *testing.T) {
	var p Point
	require.False(t, p.ChangedAny())
	require.False(t, p.Changed(PointMaskX))
	require.False(t, p.Changed(PointMaskY))
	require.False(t, p.Changed(PointMaskAll))

	var s Settings
	require.False(t, s.ChangedAny())
}

func TestPointScenario(t *testing.T) {
	var p Point
	p.SetX(42)
	require.True(t, p.Changed(PointMaskX))
	require.False(t, p.Changed(PointMaskY))

	p.Reset()
	require.False(t, p.Changed(PointMaskX))
	require.False(t, p.Changed(PointMaskY))

	p.SetX(42)
	require.False(t, p.Changed(PointMaskX))
	require.Equal(t, 42, p.GetX())

	p.SetX(7)
	require.True(t, p.ChangedX())
	require.Equal(t, 7, p.X)
}

func TestSetIsMonotonic(t *testing.T) {
	var p Point
	p.SetY(1)
	require.True(t, p.ChangedY())
	p.SetY(1)
	require.True(t, p.ChangedY(), "an unchanged set must not clear an earlier change")
}

func TestNoEqAlwaysMarks(t *testing.T) {
	var s Sample
	s.SetC(5)
	require.True(t, s.Changed(SampleMaskC))
	s.Reset()
	s.SetC(5)
	require.True(t, s.Changed(SampleMaskC))
	require.Equal(t, 5, s.GetC())

	s.Reset()
	s.SetTags(nil)
	require.True(t, s.ChangedTags())
}

func TestMutableReadAndUpdateAlwaysMark(t *testing.T) {
	var p Point
	_ = p.GetMutX()
	require.True(t, p.ChangedX())
	require.False(t, p.ChangedY())

	p.Reset()
	p.UpdateY(func(*int) {})
	require.True(t, p.ChangedY())

	p.Reset()
	*p.GetMutX() = 3
	p.UpdateY(func(y *int) { *y += 4 })
	require.Equal(t, 3, p.X)
	require.Equal(t, 4, p.Y)
}

func TestGetDoesNotMark(t *testing.T) {
	s := Sample{A: 1, Tags: []string{"a"}}
	require.Equal(t, 1, s.GetA())
	require.Equal(t, []string{"a"}, s.GetTags())
	require.False(t, s.ChangedAny())
}

func TestUntrackedFieldDoesNotTouchTracker(t *testing.T) {
	var s Sample
	s.B = "direct"
	require.False(t, s.ChangedAny())
	require.Equal(t, SampleMaskA|SampleMaskC|SampleMaskTags|sampleMaskMaxLen, SampleMaskAll)
}

func TestUnexportedField(t *testing.T) {
	var s Sample
	s.setMaxLen(10)
	require.True(t, s.changedMaxLen())
	require.Equal(t, 10, s.getMaxLen())
	s.Reset()
	s.updateMaxLen(func(v *int) { *v++ })
	require.Equal(t, 11, s.max_len)
	require.True(t, s.Changed(sampleMaskMaxLen))
}

func TestCombinedMasks(t *testing.T) {
	var p Point
	p.SetY(3)
	require.True(t, p.Changed(PointMaskX|PointMaskY))
	require.Equal(t, p.Changed(PointMaskX) || p.Changed(PointMaskY), p.Changed(PointMaskX|PointMaskY))

	p.Reset()
	require.False(t, p.Changed(PointMaskX|PointMaskY))
}

func TestMasksAreDistinct(t *testing.T) {
	masks := []SettingsTracker{
		SettingsMaskF1, SettingsMaskF2, SettingsMaskF3, SettingsMaskF4, SettingsMaskF5,
		SettingsMaskF6, SettingsMaskF7, SettingsMaskF8, SettingsMaskF9,
	}
	var all SettingsTracker
	for i, a := range masks {
		for j, b := range masks {
			if i != j {
				require.Zero(t, a&b, "masks %d and %d overlap", i, j)
			}
		}
		all |= a
	}
	require.Equal(t, SettingsMaskAll, all)
}

func TestNineFieldsUseSixteenBits(t *testing.T) {
	var s Settings
	var tracker uint16 = uint16(s.tracker)
	require.Zero(t, tracker)
	require.Equal(t, SettingsTracker(1<<8), SettingsMaskF9)

	s.SetF9(1)
	require.True(t, s.ChangedF9())
	require.False(t, s.ChangedF1())
}

func TestResetAndMarkAll(t *testing.T) {
	var s Settings
	s.MarkAllChanged()
	require.True(t, s.ChangedF1())
	require.True(t, s.ChangedF9())
	require.Equal(t, SettingsMaskAll, s.tracker)
	s.Reset()
	require.False(t, s.ChangedAny())
	for _, m := range []SettingsTracker{SettingsMaskF1, SettingsMaskF5, SettingsMaskF9} {
		require.False(t, s.Changed(m))
	}
}

func TestGenericRecord(t *testing.T) {
	var e Entry[string, []int]
	e.SetKey("")
	require.False(t, e.ChangedKey())
	e.SetKey("k")
	require.True(t, e.ChangedKey())

	e.SetValue(nil)
	require.True(t, e.ChangedValue())
	e.UpdateValue(func(v *[]int) { *v = append(*v, 1) })
	require.Equal(t, []int{1}, e.GetValue())
	require.True(t, e.Changed(EntryMaskAll))
}

func TestGeneratedFileIsCurrent(t *testing.T) {
	scm, err := trackgen.LoadPackage(".", trackgen.LoadOptions{})
	require.NoError(t, err)
	code, err := trackgen.Generate(scm)
	require.NoError(t, err)
	existing, err := os.ReadFile("tracker_gen.go")
	require.NoError(t, err)
	require.Equal(t, string(existing), string(code), "tracker_gen.go is stale; run go generate")
}

func TestSetUncomparableDynamicValues(t *testing.T) {
	var b Box
	b.SetV([]int{1})
	require.True(t, b.ChangedV())

	b.Reset()
	require.NotPanics(t, func() { b.SetV([]int{2}) })
	require.True(t, b.ChangedV())
	require.Equal(t, []int{2}, b.GetV())

	b.Reset()
	b.SetV(map[string]int{"a": 1})
	require.True(t, b.ChangedV())

	b.Reset()
	b.SetV(nil)
	require.True(t, b.ChangedV())
	b.Reset()
	b.SetV(nil)
	require.False(t, b.ChangedV())

	b.SetV(7)
	b.Reset()
	b.SetV(7)
	require.False(t, b.ChangedV())
	b.SetV("7")
	require.True(t, b.ChangedV())

	err := errors.New("x")
	b.SetV(err)
	b.Reset()
	b.SetV(err)
	require.False(t, b.ChangedV())
}

func TestGenericKeyHoldsInterfaces(t *testing.T) {
	var e Entry[any, int]
	e.SetKey([]int{1})
	e.Reset()
	require.NotPanics(t, func() { e.SetKey([]int{1}) })
	require.True(t, e.ChangedKey())

	e.SetKey("k")
	e.Reset()
	e.SetKey("k")
	require.False(t, e.ChangedKey())
}
