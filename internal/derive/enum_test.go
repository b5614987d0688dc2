package derive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

type eggsCase struct {
	Count int64
}

type toastCase struct {
	Slices int64
	Butter bool
}

type breakfastItem interface{ isBreakfastItem() }

func (*eggsCase) isBreakfastItem()  {}
func (*toastCase) isBreakfastItem() {}

var breakfastItemCodec = RegisterEnum[breakfastItem]("breakfastItem",
	Case[breakfastItem]{Name: "Eggs", New: func() breakfastItem { return &eggsCase{} }},
	Case[breakfastItem]{Name: "Toast", New: func() breakfastItem { return &toastCase{} }},
)

func TestEnumCodec_WriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	in := &toastCase{Slices: 2, Butter: true}
	require.NoError(t, breakfastItemCodec.Write(&buf, in))
	require.Equal(t, byte(1), buf.Bytes()[0])

	out, err := breakfastItemCodec.Read(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	got, ok := out.(*toastCase)
	require.True(t, ok)
	require.Equal(t, in, got)
}

func TestEnumCodec_FirstCaseIsIndexZero(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, breakfastItemCodec.Write(&buf, &eggsCase{Count: 3}))
	require.Equal(t, byte(0), buf.Bytes()[0])
}

func TestEnumCodec_UnexpectedIndexError(t *testing.T) {
	_, err := breakfastItemCodec.Read(bytes.NewReader([]byte{200}))
	require.Error(t, err)
	var target *ErrUnexpectedVariantIndex
	require.ErrorAs(t, err, &target)
	require.Equal(t, byte(200), target.Index)
}

func TestRegisterEnum_PanicsOverCaseLimit(t *testing.T) {
	cases := make([]Case[breakfastItem], 257)
	for i := range cases {
		idx := i
		cases[i] = Case[breakfastItem]{
			Name: "case",
			New:  func() breakfastItem { _ = idx; return &eggsCase{} },
		}
	}
	require.Panics(t, func() {
		RegisterEnum[breakfastItem]("tooManyCases", cases...)
	})
}

func TestEnumCodec_Size(t *testing.T) {
	in := &eggsCase{Count: 12}
	var buf bytes.Buffer
	require.NoError(t, breakfastItemCodec.Write(&buf, in))
	require.Equal(t, buf.Len(), breakfastItemCodec.Size(in))
}
