package codec

import (
	"reflect"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/leanbuffer/planner"
)

func TestStructOf(t *testing.T) {
	plan, err := planner.Assemble(mixedRecord)
	require.NoError(t, err)

	st, err := StructOf(plan)
	require.NoError(t, err)
	require.Equal(t, len(plan.Fields), st.NumField())

	f, ok := st.FieldByName("TVecString")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[[]string](), f.Type)
	assert.Equal(t, "t_vec_string", f.Tag.Get(TagName))

	f, _ = st.FieldByName("TOptChar")
	assert.Equal(t, reflect.TypeFor[*rune](), f.Type)

	f, _ = st.FieldByName("TVecU8")
	assert.Equal(t, reflect.TypeFor[[]byte](), f.Type)
}

func TestStructOfCollision(t *testing.T) {
	plan, err := planner.Assemble(planner.Record{Name: "R", Fields: []planner.Declaration{
		{Name: "a_b", Type: "u8"},
		{Name: "aB", Type: "u8"},
	}})
	require.NoError(t, err)

	_, err = StructOf(plan)
	assert.Error(t, err)
}

func TestBindDynamicRoundTrip(t *testing.T) {
	plan, err := planner.Assemble(planner.Record{Name: "R", Fields: []planner.Declaration{
		{Name: "count", Type: "u32"},
		{Name: "label", Type: "option<string>"},
		{Name: "data", Type: "list<s8>"},
	}})
	require.NoError(t, err)

	bd, err := BindDynamic(plan)
	require.NoError(t, err)

	v := bd.New()
	rv := reflect.ValueOf(v).Elem()
	rv.FieldByName("Count").SetUint(77)
	label := "hi"
	rv.FieldByName("Label").Set(reflect.ValueOf(&label))
	rv.FieldByName("Data").Set(reflect.ValueOf([]int8{-1, 2}))

	buf, err := bd.Flatten(newTestBuilder(), v)
	require.NoError(t, err)

	out := bd.New()
	require.NoError(t, bd.Inflate(buf, out))
	ov := reflect.ValueOf(out).Elem()
	assert.Equal(t, uint64(77), ov.FieldByName("Count").Uint())
	assert.Equal(t, "hi", ov.FieldByName("Label").Elem().String())
	assert.Equal(t, []int8{-1, 2}, ov.FieldByName("Data").Interface())
}

func newTestBuilder() *flatbuffers.Builder {
	return flatbuffers.NewBuilder(64)
}
