package codec

import (
	"math"
	"reflect"
	"sync"
	"testing"

	flatbuffers "github.com/google/flatbuffers/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wippyai/leanbuffer"
	"github.com/wippyai/leanbuffer/errors"
	"github.com/wippyai/leanbuffer/planner"
	"github.com/wippyai/leanbuffer/table"
)

type EntityMixed struct {
	TU64       uint64
	TI64       int64
	TU32       uint32
	TI32       int32
	TChar      rune
	TU16       uint16
	TI16       int16
	TU8        uint8
	TI8        int8
	TBool      bool
	TString    string
	TDouble    float64 `lb:"t_double"`
	TFloat     float32 `lb:"t_float"`
	TOptU64    *uint64
	TOptI64    *int64
	TOptChar   *rune
	TOptBool   *bool
	TOptString *string
	TOptDouble *float64
	TVecU64    []uint64
	TVecI64    []int64
	TVecChar   []rune
	TVecU8     []byte
	TVecI8     []int8
	TVecBool   []bool
	TVecString []string
	TVecFloat  []float32
	unexported int
}

var mixedRecord = planner.Record{
	Name: "EntityMixed",
	Fields: []planner.Declaration{
		{Name: "t_u64", Type: "u64"},
		{Name: "t_i64", Type: "i64"},
		{Name: "t_u32", Type: "u32"},
		{Name: "t_i32", Type: "i32"},
		{Name: "t_char", Type: "char"},
		{Name: "t_u16", Type: "u16"},
		{Name: "t_i16", Type: "i16"},
		{Name: "t_u8", Type: "u8"},
		{Name: "t_i8", Type: "i8"},
		{Name: "t_bool", Type: "bool"},
		{Name: "t_string", Type: "String"},
		{Name: "t_double", Type: "f64"},
		{Name: "t_float", Type: "f32"},
		{Name: "t_opt_u64", Type: "Option<u64>"},
		{Name: "t_opt_i64", Type: "Option<i64>"},
		{Name: "t_opt_char", Type: "Option<char>"},
		{Name: "t_opt_bool", Type: "Option<bool>"},
		{Name: "t_opt_string", Type: "Option<String>"},
		{Name: "t_opt_double", Type: "Option<f64>"},
		{Name: "t_vec_u64", Type: "Vec<u64>"},
		{Name: "t_vec_i64", Type: "Vec<i64>"},
		{Name: "t_vec_char", Type: "Vec<char>"},
		{Name: "t_vec_u8", Type: "Vec<u8>"},
		{Name: "t_vec_i8", Type: "Vec<i8>"},
		{Name: "t_vec_bool", Type: "Vec<bool>"},
		{Name: "t_vec_string", Type: "Vec<String>"},
		{Name: "t_vec_float", Type: "Vec<f32>"},
	},
}

func ptr[T any](v T) *T { return &v }

func mixedConverter(t *testing.T) *Converter[EntityMixed] {
	t.Helper()
	plan, err := planner.Assemble(mixedRecord)
	require.NoError(t, err)
	conv, err := Compile[EntityMixed](plan)
	require.NoError(t, err)
	return conv
}

func singleField[T any](t *testing.T, typeText string) (*Converter[T], *planner.Plan) {
	t.Helper()
	plan, err := planner.Assemble(planner.Record{
		Name:   "Single",
		Fields: []planner.Declaration{{Name: "value", Type: typeText}},
	})
	require.NoError(t, err)
	conv, err := Compile[T](plan)
	require.NoError(t, err)
	return conv, plan
}

func TestScenarioScalarI64(t *testing.T) {
	type R struct{ Value int64 }
	conv, _ := singleField[R](t, "i64")

	got := conv.Decode(conv.Marshal(&R{Value: 0x1337833F}))
	assert.Equal(t, int64(0x1337833F), got.Value)
}

func TestScenarioOptionalI64(t *testing.T) {
	type R struct{ Value *int64 }
	conv, _ := singleField[R](t, "option<i64>")

	got := conv.Decode(conv.Marshal(&R{Value: ptr(int64(64))}))
	require.NotNil(t, got.Value)
	assert.Equal(t, int64(64), *got.Value)
}

func TestScenarioSequenceI64(t *testing.T) {
	type R struct{ Value []int64 }
	conv, _ := singleField[R](t, "list<i64>")

	got := conv.Decode(conv.Marshal(&R{Value: []int64{8, 3, 3, 15}}))
	assert.Equal(t, []int64{8, 3, 3, 15}, got.Value)
}

func TestScenarioEmptyBuffer(t *testing.T) {
	conv := mixedConverter(t)

	for _, buf := range [][]byte{nil, {}, {0, 0}, {0xde, 0xad, 0xbe, 0xef, 1, 2, 3}} {
		got := conv.Decode(buf)
		assert.Equal(t, conv.New(), got)
	}
}

func TestNewDefaults(t *testing.T) {
	v := mixedConverter(t).New()

	assert.Zero(t, v.TU64)
	assert.Zero(t, v.TChar)
	assert.Equal(t, "", v.TString)
	assert.Nil(t, v.TOptU64)
	assert.Nil(t, v.TOptString)
	assert.NotNil(t, v.TVecU64)
	assert.Empty(t, v.TVecU64)
	assert.NotNil(t, v.TVecString)
	assert.NotNil(t, v.TVecU8)
}

func TestRoundTripMixed(t *testing.T) {
	conv := mixedConverter(t)
	in := EntityMixed{
		TU64:       math.MaxUint64,
		TI64:       math.MinInt64,
		TU32:       math.MaxUint32,
		TI32:       -7,
		TChar:      '😀',
		TU16:       0xBEEF,
		TI16:       -300,
		TU8:        200,
		TI8:        -100,
		TBool:      true,
		TString:    "héllo",
		TDouble:    math.Pi,
		TFloat:     -1.25,
		TOptU64:    ptr(uint64(5)),
		TOptI64:    nil,
		TOptChar:   ptr('λ'),
		TOptBool:   ptr(true),
		TOptString: ptr("maybe"),
		TOptDouble: ptr(0.5),
		TVecU64:    []uint64{1, 2, math.MaxUint64},
		TVecI64:    []int64{-1, 0, 1},
		TVecChar:   []rune("añ😀"),
		TVecU8:     []byte{0, 128, 255},
		TVecI8:     []int8{-128, -1, 0, 127},
		TVecBool:   []bool{true, false},
		TVecString: []string{"x", "", "zz"},
		TVecFloat:  []float32{0.5, -0.5},
		unexported: 99,
	}

	got := conv.Decode(conv.Marshal(&in))
	in.unexported = 0
	assert.Equal(t, in, got)
}

func TestOmitsRequiredDefaults(t *testing.T) {
	conv := mixedConverter(t)
	plan := conv.Binding().Plan()

	v := conv.New()
	v.TString = ""
	v.TVecU64 = nil
	buf := conv.Marshal(&v)
	r := table.NewReader(buf)
	require.True(t, r.Valid())

	for _, f := range plan.Fields {
		switch f.Type.Shape {
		case planner.ShapeScalar, planner.ShapeOptional:
			assert.False(t, r.Has(f.Slot), "%s should be omitted", f.Name)
		case planner.ShapeText, planner.ShapeSequence:
			assert.True(t, r.Has(f.Slot), "%s should be written even when empty", f.Name)
		}
	}

	got := conv.Decode(buf)
	assert.Equal(t, conv.New(), got)
}

func TestOptionalDefaultIsPresent(t *testing.T) {
	conv := mixedConverter(t)
	plan := conv.Binding().Plan()

	v := conv.New()
	v.TOptU64 = ptr(uint64(0))
	v.TOptBool = ptr(false)
	v.TOptChar = ptr(rune(0))
	v.TOptString = ptr("")
	buf := conv.Marshal(&v)

	r := table.NewReader(buf)
	for _, name := range []string{"t_opt_u64", "t_opt_bool", "t_opt_char", "t_opt_string"} {
		f, ok := plan.Field(name)
		require.True(t, ok)
		assert.True(t, r.Has(f.Slot), name)
	}
	f, _ := plan.Field("t_opt_i64")
	assert.False(t, r.Has(f.Slot))

	got := conv.Decode(buf)
	require.NotNil(t, got.TOptU64)
	assert.Equal(t, uint64(0), *got.TOptU64)
	require.NotNil(t, got.TOptBool)
	assert.False(t, *got.TOptBool)
	require.NotNil(t, got.TOptChar)
	assert.Equal(t, rune(0), *got.TOptChar)
	require.NotNil(t, got.TOptString)
	assert.Equal(t, "", *got.TOptString)
	assert.Nil(t, got.TOptI64)
}

func TestEmptySequenceDistinctFromAbsent(t *testing.T) {
	type R struct{ Value []uint16 }
	conv, plan := singleField[R](t, "list<u16>")

	buf := conv.Marshal(&R{})
	r := table.NewReader(buf)
	assert.True(t, r.Has(plan.Fields[0].Slot))

	v, ok := table.Vector[uint16](r, plan.Fields[0].Slot)
	assert.True(t, ok)
	assert.Empty(t, v)
}

func TestCharDecodePolicies(t *testing.T) {
	type R struct {
		C    rune
		OC   *rune
		List []rune
	}
	plan, err := planner.Assemble(planner.Record{Name: "R", Fields: []planner.Declaration{
		{Name: "c", Type: "char"},
		{Name: "oc", Type: "option<char>"},
		{Name: "list", Type: "list<char>"},
	}})
	require.NoError(t, err)
	conv, err := Compile[R](plan)
	require.NoError(t, err)

	b := flatbuffers.NewBuilder(0)
	codes := table.CreateVector(b, []uint32{'o', 0xD800, 'k', 0x7FFFFFFF})
	b.StartObject(3)
	table.PrependOffsetSlot(b, 2, codes)
	table.PrependSlot(b, 0, uint32(0xDC00), 0)
	table.PrependSlotAlways(b, 1, uint32(0x110000))
	got := conv.Decode(table.Finish(b))

	assert.Equal(t, rune(0), got.C, "invalid scalar char keeps the default")
	assert.Nil(t, got.OC, "invalid optional char decodes as absent")
	assert.Equal(t, []rune("ok"), got.List, "invalid code points are dropped")
}

func TestSlotsFollowDeclarationOrder(t *testing.T) {
	type R struct {
		A uint8
		B []string
		C float64
	}
	plan, err := planner.Assemble(planner.Record{Name: "R", Fields: []planner.Declaration{
		{Name: "a", Type: "u8"},
		{Name: "b", Type: "list<string>"},
		{Name: "c", Type: "f64"},
	}})
	require.NoError(t, err)
	conv := MustCompile[R](plan)

	r := table.NewReader(conv.Marshal(&R{A: 1, B: []string{"q"}, C: 2.5}))
	assert.Equal(t, uint8(1), table.Get(r, 4, uint8(0)))
	strs, ok := r.Strings(6)
	require.True(t, ok)
	assert.Equal(t, []string{"q"}, strs)
	assert.Equal(t, 2.5, table.Get(r, 8, 0.0))
}

func TestEncoderReuse(t *testing.T) {
	conv := mixedConverter(t)
	enc := NewEncoder(conv)

	a := conv.New()
	a.TString = "first"
	a.TOptString = ptr("x")
	first := append([]byte(nil), enc.Encode(&a)...)

	b := conv.New()
	b.TU8 = 3
	second := enc.Encode(&b)

	assert.Equal(t, a, conv.Decode(first))
	assert.Equal(t, b, conv.Decode(second))
}

func TestConcurrentUse(t *testing.T) {
	conv := mixedConverter(t)
	v := conv.New()
	v.TVecString = []string{"shared"}
	buf := conv.Marshal(&v)

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := conv.New()
			w.TI32 = int32(i)
			assert.Equal(t, int32(i), conv.Decode(conv.Marshal(&w)).TI32)
			assert.Equal(t, v, conv.Decode(buf))
		}()
	}
	wg.Wait()
}

func TestFactoryContract(t *testing.T) {
	conv := mixedConverter(t)
	var f leanbuffer.Factory[EntityMixed] = conv

	v := conv.New()
	v.TI16 = -5
	buf := leanbuffer.Marshal(flatbuffers.NewBuilder(0), conv.Adapter(&v))
	assert.Equal(t, v, leanbuffer.Unmarshal(f, buf))
}

func TestBindErrors(t *testing.T) {
	plan, err := planner.Assemble(planner.Record{Name: "R", Fields: []planner.Declaration{
		{Name: "id", Type: "u64"},
		{Name: "tags", Type: "list<string>"},
	}})
	require.NoError(t, err)

	tests := []struct {
		name   string
		goType reflect.Type
		kind   errors.Kind
	}{
		{"not a struct", reflect.TypeFor[int](), errors.KindTypeMismatch},
		{"missing field", reflect.TypeFor[struct{ ID uint64 }](), errors.KindFieldMissing},
		{"wrong scalar", reflect.TypeFor[struct {
			ID   int64
			Tags []string
		}](), errors.KindTypeMismatch},
		{"wrong element", reflect.TypeFor[struct {
			ID   uint64
			Tags []int
		}](), errors.KindTypeMismatch},
		{"skipped by tag", reflect.TypeFor[struct {
			ID   uint64 `lb:"-"`
			Tags []string
		}](), errors.KindFieldMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(plan, tt.goType)
			require.Error(t, err)
			var e *errors.Error
			require.ErrorAs(t, err, &e)
			assert.Equal(t, tt.kind, e.Kind)
		})
	}

	_, err = Bind(nil, reflect.TypeFor[struct{}]())
	assert.Error(t, err)
}

func TestBindNamedTypes(t *testing.T) {
	type ID uint64
	type Tag string
	type R struct {
		Key  ID    `lb:"id"`
		Tags []Tag `lb:"tags"`
	}
	plan, err := planner.Assemble(planner.Record{Name: "R", Fields: []planner.Declaration{
		{Name: "id", Type: "u64"},
		{Name: "tags", Type: "list<string>"},
	}})
	require.NoError(t, err)
	conv := MustCompile[R](plan)

	in := R{Key: 9, Tags: []Tag{"a", "b"}}
	assert.Equal(t, in, conv.Decode(conv.Marshal(&in)))
}

func TestBindingUntyped(t *testing.T) {
	conv := mixedConverter(t)
	bd := conv.Binding()

	_, err := bd.Flatten(flatbuffers.NewBuilder(0), EntityMixed{})
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindTypeMismatch})

	_, err = bd.Flatten(flatbuffers.NewBuilder(0), (*EntityMixed)(nil))
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseEncode, Kind: errors.KindNilPointer})

	v := bd.New().(*EntityMixed)
	v.TString = "via binding"
	buf, err := bd.Flatten(flatbuffers.NewBuilder(0), v)
	require.NoError(t, err)

	out := &EntityMixed{TU8: 42}
	require.NoError(t, bd.Inflate(buf, out))
	assert.Equal(t, "via binding", out.TString)
	assert.Equal(t, uint8(0), out.TU8, "fields missing from the buffer reset to defaults")
}

func BenchmarkMarshal(b *testing.B) {
	plan, _ := planner.Assemble(mixedRecord)
	conv := MustCompile[EntityMixed](plan)
	enc := NewEncoder(conv)
	v := conv.New()
	v.TVecString = []string{"a", "b", "c"}
	v.TU64 = 1

	b.ReportAllocs()
	for b.Loop() {
		enc.Encode(&v)
	}
}

func BenchmarkDecode(b *testing.B) {
	plan, _ := planner.Assemble(mixedRecord)
	conv := MustCompile[EntityMixed](plan)
	v := conv.New()
	v.TVecI64 = []int64{1, 2, 3}
	buf := conv.Marshal(&v)

	b.ReportAllocs()
	for b.Loop() {
		conv.Decode(buf)
	}
}

func FuzzDecode(f *testing.F) {
	plan, err := planner.Assemble(mixedRecord)
	require.NoError(f, err)
	conv := MustCompile[EntityMixed](plan)

	v := conv.New()
	v.TU64 = 7
	v.TVecString = []string{"a", "bc"}
	v.TVecChar = []rune{'x', 'λ'}
	f.Add(conv.Marshal(&v))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, buf []byte) {
		out := conv.Decode(buf)
		_ = conv.Decode(conv.Marshal(&out))
	})
}
