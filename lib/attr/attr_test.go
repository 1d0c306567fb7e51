package attr

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/ValentinKolb/sio/lib/wire"
	"github.com/google/go-cmp/cmp"
)

// --------------------------------------------------------------------------
// Test types
// --------------------------------------------------------------------------

type user struct {
	ID     int32
	Name   string
	Active bool
}

func userSchema() *Schema[user] {
	return NewSchema[user]("user").MustRegister(
		Bind("id", func(u *user) *int32 { return &u.ID }),
		Bind("name", func(u *user) *string { return &u.Name }),
		Bind("active", func(u *user) *bool { return &u.Active }),
	)
}

type state int

const (
	stateIdle state = iota
	stateActive
	stateBanned
)

var stateEnum = NewEnumType("state", "IDLE", "ACTIVE", "BANNED")

// record has one member of every primitive kind
type record struct {
	B   byte
	S   int16
	I   int32
	L   int64
	F   float32
	D   float64
	Z   bool
	C   uint16
	Str string
	St  state
	Opt *string
}

func recordSchema() *Schema[record] {
	return NewSchema[record]("record").MustRegister(
		Bind("b", func(r *record) *byte { return &r.B }),
		Bind("s", func(r *record) *int16 { return &r.S }),
		Bind("i", func(r *record) *int32 { return &r.I }),
		Bind("l", func(r *record) *int64 { return &r.L }),
		Bind("f", func(r *record) *float32 { return &r.F }),
		Bind("d", func(r *record) *float64 { return &r.D }),
		Bind("z", func(r *record) *bool { return &r.Z }),
		Bind("c", func(r *record) *uint16 { return &r.C }),
		Bind("str", func(r *record) *string { return &r.Str }),
		BindEnum("st", stateEnum, func(r *record) *state { return &r.St }),
		BindPtr("opt", func(r *record) **string { return &r.Opt }),
	)
}

// bitwise compares floats by their bit pattern so NaN payloads can be checked
var bitwise = cmp.Options{
	cmp.Comparer(func(a, b float32) bool { return math.Float32bits(a) == math.Float32bits(b) }),
	cmp.Comparer(func(a, b float64) bool { return math.Float64bits(a) == math.Float64bits(b) }),
}

// stream builds a raw byte stream, used to craft inputs the schemas would never produce
func stream(fn func(enc *Encoder)) []byte {
	var buf bytes.Buffer
	fn(NewEncoder(&buf))
	return buf.Bytes()
}

func strPtr(s string) *string { return &s }

// --------------------------------------------------------------------------
// Round trips
// --------------------------------------------------------------------------

// TestRoundTrip tests that every primitive kind survives encode/decode bit for bit
func TestRoundTrip(t *testing.T) {
	schema := recordSchema()

	tests := []struct {
		name string
		in   record
	}{
		{"ZeroValues", record{}},
		{"Maximums", record{
			B: math.MaxUint8, S: math.MaxInt16, I: math.MaxInt32, L: math.MaxInt64,
			F: math.MaxFloat32, D: math.MaxFloat64, Z: true, C: math.MaxUint16,
			Str: "max", St: stateBanned, Opt: strPtr("set"),
		}},
		{"Minimums", record{
			S: math.MinInt16, I: math.MinInt32, L: math.MinInt64,
			F: -math.MaxFloat32, D: -math.SmallestNonzeroFloat64,
			St: stateIdle, Opt: strPtr(""),
		}},
		{"NaNPayloads", record{
			F: math.Float32frombits(0x7FC00123),
			D: math.Float64frombits(0x7FF8000000000ABC),
		}},
		{"Infinities", record{
			F: float32(math.Inf(-1)),
			D: math.Inf(1),
		}},
		{"NegativeZero", record{
			F: math.Float32frombits(0x80000000),
			D: math.Copysign(0, -1),
		}},
		{"NonASCII", record{
			C:   'ß',
			Str: "Grüße, 世界 🌍",
			St:  stateActive,
			Opt: strPtr("ünïcödé"),
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			data, err := schema.Marshal(&tc.in)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}

			var out record
			if err := schema.Unmarshal(data, &out); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}

			if diff := cmp.Diff(tc.in, out, bitwise); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestEndToEndBytes tests the exact encoding of a small object
func TestEndToEndBytes(t *testing.T) {
	schema := userSchema()
	in := user{ID: 42, Name: "judi", Active: true}

	want := []byte{
		4, 0, 0, 0, 2, 'i', 'd', 0, 0, 0, 42,
		10, 0, 0, 0, 4, 'n', 'a', 'm', 'e', 0, 0, 0, 4, 'j', 'u', 'd', 'i',
		8, 0, 0, 0, 6, 'a', 'c', 't', 'i', 'v', 'e', 1,
		0,
	}

	data, err := schema.Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if !bytes.Equal(data, want) {
		t.Fatalf("Marshal() = %v, want %v", data, want)
	}

	var out user
	if err := schema.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded object mismatch (-want +got):\n%s", diff)
	}
}

// TestFragmentingSource tests decoding from a source that returns one byte per read
func TestFragmentingSource(t *testing.T) {
	schema := recordSchema()
	in := record{L: math.MinInt64 + 1, Str: strings.Repeat("x", 1000), St: stateActive}

	data, err := schema.Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out record
	dec := NewDecoder(iotest.OneByteReader(bytes.NewReader(data)))
	if err := schema.Decode(dec, &out); err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded object mismatch (-want +got):\n%s", diff)
	}
	if dec.Count() != int64(len(data)) {
		t.Errorf("Count() = %d, want %d", dec.Count(), len(data))
	}
}

// TestOrderIndependence tests that attributes are correlated by name, not position
func TestOrderIndependence(t *testing.T) {
	reversed := NewSchema[user]("user").MustRegister(
		Bind("active", func(u *user) *bool { return &u.Active }),
		Bind("name", func(u *user) *string { return &u.Name }),
		Bind("id", func(u *user) *int32 { return &u.ID }),
	)
	in := user{ID: 7, Name: "reversed", Active: true}

	data, err := reversed.Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out user
	if err := userSchema().Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded object mismatch (-want +got):\n%s", diff)
	}
}

// TestNullAttributes tests how null attributes are applied to bound members
func TestNullAttributes(t *testing.T) {
	data := stream(func(enc *Encoder) {
		enc.WriteAttribute("i", Null())
		enc.WriteAttribute("str", Null())
		enc.WriteAttribute("st", Null())
		enc.WriteAttribute("opt", Null())
		enc.WriteEnd()
	})

	out := record{I: 5, Str: "old", St: stateBanned, Opt: strPtr("old")}
	if err := recordSchema().Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(record{}, out); diff != "" {
		t.Errorf("null attributes not applied (-want +got):\n%s", diff)
	}
}

// --------------------------------------------------------------------------
// Unknown attributes and tags
// --------------------------------------------------------------------------

// TestUnknownAttributeSkipped tests that the value bytes of unknown attributes
// are consumed so the following attributes stay in sync
func TestUnknownAttributeSkipped(t *testing.T) {
	type known struct {
		A int32
		C string
	}
	schema := NewSchema[known]("known").MustRegister(
		Bind("knownA", func(k *known) *int32 { return &k.A }),
		Bind("knownC", func(k *known) *string { return &k.C }),
	)

	tests := []struct {
		name string
		data []byte
		want known
	}{
		{
			name: "IntBetweenKnown",
			data: stream(func(enc *Encoder) {
				enc.WriteAttribute("knownA", Int(5))
				enc.WriteAttribute("unknownB", Int(7))
				enc.WriteEnd()
			}),
			want: known{A: 5},
		},
		{
			name: "EveryKind",
			data: stream(func(enc *Encoder) {
				enc.WriteAttribute("u1", Byte(1))
				enc.WriteAttribute("u2", Short(2))
				enc.WriteAttribute("knownA", Int(5))
				enc.WriteAttribute("u3", Long(3))
				enc.WriteAttribute("u4", Float(4))
				enc.WriteAttribute("u5", Double(5))
				enc.WriteAttribute("u6", Bool(true))
				enc.WriteAttribute("u7", Char('x'))
				enc.WriteAttribute("u8", String("skipped text"))
				enc.WriteAttribute("u9", Enum("SOME"))
				enc.WriteAttribute("u10", Null())
				enc.WriteAttribute("knownC", String("after"))
				enc.WriteEnd()
			}),
			want: known{A: 5, C: "after"},
		},
		{
			name: "NullString",
			data: stream(func(enc *Encoder) {
				enc.WriteTag(TagString)
				enc.WriteString("u")
				enc.WriteNullString()
				enc.WriteAttribute("knownC", String("after"))
				enc.WriteEnd()
			}),
			want: known{C: "after"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var out known
			if err := schema.Unmarshal(tc.data, &out); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if diff := cmp.Diff(tc.want, out); diff != "" {
				t.Errorf("decoded object mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

// TestUnknownTag tests that reserved tags stop decoding
func TestUnknownTag(t *testing.T) {
	for _, tag := range []byte{12, 49, 51, 255} {
		var out user
		err := userSchema().Unmarshal([]byte{tag, 0, 0, 0, 1, 'x', 0}, &out)
		if !errors.Is(err, ErrUnknownTag) {
			t.Errorf("tag %d: error = %v, want ErrUnknownTag", tag, err)
		}
	}
}

// TestTypeMismatch tests that a wire tag different from the registered kind is rejected
func TestTypeMismatch(t *testing.T) {
	type flags struct{ Flag bool }
	schema := NewSchema[flags]("flags").MustRegister(
		Bind("flag", func(f *flags) *bool { return &f.Flag }),
	)

	data := stream(func(enc *Encoder) {
		enc.WriteAttribute("flag", Int(1))
		enc.WriteEnd()
	})

	var out flags
	err := schema.Unmarshal(data, &out)

	var mismatch *TypeMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("error = %v, want *TypeMismatchError", err)
	}
	if mismatch.Expected != TagBool || mismatch.Actual != TagInt || mismatch.Attribute != "flag" {
		t.Errorf("unexpected mismatch details: %+v", mismatch)
	}
	if out.Flag {
		t.Errorf("value was coerced into the bool member")
	}
}

// --------------------------------------------------------------------------
// Error handling
// --------------------------------------------------------------------------

// TestTruncatedInput tests that every truncation of a valid stream reports end of input
func TestTruncatedInput(t *testing.T) {
	schema := userSchema()
	data, err := schema.Marshal(&user{ID: 1, Name: "truncated", Active: true})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	for n := 0; n < len(data); n++ {
		var out user
		err := schema.Unmarshal(data[:n], &out)
		if !errors.Is(err, wire.ErrEndOfInput) {
			t.Errorf("truncated to %d bytes: error = %v, want end of input", n, err)
		}
	}
}

// TestTrailingData tests that Unmarshal rejects bytes behind the end tag
func TestTrailingData(t *testing.T) {
	schema := userSchema()
	data, _ := schema.Marshal(&user{})

	var out user
	if err := schema.Unmarshal(append(data, 0), &out); !errors.Is(err, ErrTrailingData) {
		t.Errorf("error = %v, want ErrTrailingData", err)
	}
}

// TestNullName tests that a null attribute name is rejected
func TestNullName(t *testing.T) {
	data := stream(func(enc *Encoder) {
		enc.WriteTag(TagInt)
		enc.WriteNullString()
		enc.WriteInt32(1)
		enc.WriteEnd()
	})

	var out user
	if err := userSchema().Unmarshal(data, &out); !errors.Is(err, ErrNullName) {
		t.Errorf("error = %v, want ErrNullName", err)
	}
}

// TestSetterError tests that setter failures are reported with the attribute name
func TestSetterError(t *testing.T) {
	errRange := errors.New("out of range")
	type bounded struct{ N int32 }
	schema := NewSchema[bounded]("bounded").MustRegister(Field[bounded]{
		Name: "n",
		Kind: TagInt,
		Get:  func(b *bounded) Value { return Int(b.N) },
		Set: func(b *bounded, v Value) error {
			if v.Int() > 10 {
				return errRange
			}
			b.N = v.Int()
			return nil
		},
	})

	data, _ := schema.Marshal(&bounded{N: 11})

	var out bounded
	err := schema.Unmarshal(data, &out)
	var attrErr *AttributeError
	if !errors.As(err, &attrErr) || attrErr.Attribute != "n" {
		t.Fatalf("error = %v, want *AttributeError for n", err)
	}
	if !errors.Is(err, errRange) {
		t.Errorf("error does not wrap the setter error: %v", err)
	}
}

// TestSinkFailure tests that write errors are returned with the attribute name
func TestSinkFailure(t *testing.T) {
	w := &limitWriter{limit: 12}
	err := userSchema().Encode(NewEncoder(w), &user{ID: 1, Name: "sink"})

	var attrErr *AttributeError
	if !errors.As(err, &attrErr) || attrErr.Attribute != "name" {
		t.Errorf("error = %v, want *AttributeError for name", err)
	}
}

// limitWriter accepts limit bytes and fails afterwards
type limitWriter struct {
	limit int
	n     int
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if w.n+len(p) > w.limit {
		return 0, errors.New("sink full")
	}
	w.n += len(p)
	return len(p), nil
}

// TestNilObject tests the nil object guard
func TestNilObject(t *testing.T) {
	if _, err := userSchema().Marshal(nil); err == nil {
		t.Error("Marshal(nil) succeeded")
	}
	if err := userSchema().Unmarshal([]byte{0}, nil); err == nil {
		t.Error("Unmarshal(nil) succeeded")
	}
}

// --------------------------------------------------------------------------
// Enums
// --------------------------------------------------------------------------

// TestEnum tests the enum wire form and unknown variants in both directions
func TestEnum(t *testing.T) {
	type job struct{ St state }
	schema := NewSchema[job]("job").MustRegister(
		BindEnum("st", stateEnum, func(j *job) *state { return &j.St }),
	)

	t.Run("WireForm", func(t *testing.T) {
		data, err := schema.Marshal(&job{St: stateActive})
		if err != nil {
			t.Fatalf("Marshal failed: %v", err)
		}
		want := stream(func(enc *Encoder) {
			enc.WriteTag(TagEnum)
			enc.WriteString("st")
			enc.WriteString("ACTIVE")
			enc.WriteEnd()
		})
		if !bytes.Equal(data, want) {
			t.Errorf("Marshal() = %v, want %v", data, want)
		}
	})

	t.Run("UnknownOrdinal", func(t *testing.T) {
		_, err := schema.Marshal(&job{St: 17})
		var unknown *UnknownEnumVariantError
		if !errors.As(err, &unknown) {
			t.Errorf("error = %v, want *UnknownEnumVariantError", err)
		}
	})

	t.Run("UnknownName", func(t *testing.T) {
		data := stream(func(enc *Encoder) {
			enc.WriteAttribute("st", Enum("DELETED"))
			enc.WriteEnd()
		})
		var out job
		err := schema.Unmarshal(data, &out)
		var unknown *UnknownEnumVariantError
		if !errors.As(err, &unknown) || unknown.Variant != "DELETED" {
			t.Errorf("error = %v, want *UnknownEnumVariantError for DELETED", err)
		}
	})
}

// TestEnumType tests the variant lookup
func TestEnumType(t *testing.T) {
	if n, ok := stateEnum.Name(1); !ok || n != "ACTIVE" {
		t.Errorf("Name(1) = %q, %v", n, ok)
	}
	if _, ok := stateEnum.Name(-1); ok {
		t.Error("Name(-1) found a variant")
	}
	if o, ok := stateEnum.Ordinal("BANNED"); !ok || o != 2 {
		t.Errorf("Ordinal(BANNED) = %d, %v", o, ok)
	}
	if diff := cmp.Diff([]string{"IDLE", "ACTIVE", "BANNED"}, stateEnum.Variants()); diff != "" {
		t.Errorf("Variants() mismatch (-want +got):\n%s", diff)
	}

	defer func() {
		if recover() == nil {
			t.Error("NewEnumType with duplicate variants did not panic")
		}
	}()
	NewEnumType("broken", "A", "A")
}

// --------------------------------------------------------------------------
// Registration
// --------------------------------------------------------------------------

// TestRegisterErrors tests that malformed accessors are rejected at registration
func TestRegisterErrors(t *testing.T) {
	get := func(u *user) Value { return Null() }
	set := func(u *user, v Value) error { return nil }

	tests := []struct {
		name  string
		field Field[user]
	}{
		{"EmptyName", Field[user]{Name: "", Kind: TagInt, Get: get, Set: set}},
		{"KindEnd", Field[user]{Name: "x", Kind: TagEnd, Get: get, Set: set}},
		{"KindNull", Field[user]{Name: "x", Kind: TagNull, Get: get, Set: set}},
		{"KindCustom", Field[user]{Name: "x", Kind: TagCustom, Get: get, Set: set}},
		{"MissingGetter", Field[user]{Name: "x", Kind: TagInt, Set: set}},
		{"MissingSetter", Field[user]{Name: "x", Kind: TagInt, Get: get}},
		{"EnumWithoutType", Field[user]{Name: "x", Kind: TagEnum, Get: get, Set: set}},
		{"TypeWithoutEnum", Field[user]{Name: "x", Kind: TagInt, Enum: stateEnum, Get: get, Set: set}},
		{"Duplicate", Field[user]{Name: "id", Kind: TagInt, Get: get, Set: set}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			schema := userSchema()
			before := len(schema.Fields())

			err := schema.Register(tc.field)
			var malformed *MalformedAccessorError
			if !errors.As(err, &malformed) {
				t.Fatalf("Register() error = %v, want *MalformedAccessorError", err)
			}
			if len(schema.Fields()) != before {
				t.Errorf("rejected field was added")
			}
		})
	}
}

// TestRegisterAtomic tests that a failing batch adds no field at all
func TestRegisterAtomic(t *testing.T) {
	schema := NewSchema[user]("user")
	err := schema.Register(
		Bind("id", func(u *user) *int32 { return &u.ID }),
		Bind("id", func(u *user) *int32 { return &u.ID }),
	)
	if err == nil {
		t.Fatal("Register() with duplicate names succeeded")
	}
	if len(schema.Fields()) != 0 {
		t.Errorf("Fields() = %v, want none", schema.Fields())
	}
}

// TestMalformedGetter tests a getter returning a value of the wrong kind
func TestMalformedGetter(t *testing.T) {
	schema := NewSchema[user]("user").MustRegister(Field[user]{
		Name: "id",
		Kind: TagInt,
		Get:  func(u *user) Value { return String("not an int") },
		Set:  func(u *user, v Value) error { return nil },
	})

	_, err := schema.Marshal(&user{})
	var malformed *MalformedAccessorError
	if !errors.As(err, &malformed) {
		t.Errorf("error = %v, want *MalformedAccessorError", err)
	}
}

// TestDescriptor tests the type independent schema view
func TestDescriptor(t *testing.T) {
	var d Descriptor = recordSchema()

	if d.Name() != "record" {
		t.Errorf("Name() = %q", d.Name())
	}
	fields := d.Fields()
	if len(fields) != 11 || fields[0].Name != "b" || fields[10].Name != "opt" {
		t.Errorf("Fields() not in registration order: %v", fields)
	}
	if f, ok := d.Field("st"); !ok || f.Kind != TagEnum || f.Enum != stateEnum {
		t.Errorf("Field(st) = %+v, %v", f, ok)
	}
	if _, ok := d.Field("missing"); ok {
		t.Error("Field(missing) found an attribute")
	}
}

// TestTags tests tag classification and names
func TestTags(t *testing.T) {
	for tag := TagByte; tag <= TagEnum; tag++ {
		if !tag.IsPrimitive() || !tag.IsKnown() || !tag.HasName() {
			t.Errorf("%s not classified as named primitive", tag)
		}
		parsed, err := ParseTag(tag.String())
		if err != nil || parsed != tag {
			t.Errorf("ParseTag(%q) = %v, %v", tag.String(), parsed, err)
		}
	}
	if TagEnd.HasName() || TagCustom.HasName() {
		t.Error("end or custom reported to carry a name")
	}
	if Tag(12).IsKnown() || Tag(51).IsKnown() {
		t.Error("reserved tag reported as known")
	}
	if _, err := ParseTag("custom"); err == nil {
		t.Error("ParseTag(custom) succeeded")
	}
}

// TestMetrics tests that the codec counters are exported
func TestMetrics(t *testing.T) {
	schema := userSchema()
	data, _ := schema.Marshal(&user{ID: 1})
	var out user
	_ = schema.Unmarshal(data, &out)

	var buf bytes.Buffer
	WriteMetrics(&buf)
	for _, name := range []string{"sio_objects_encoded_total", "sio_objects_decoded_total", "sio_encoded_object_bytes"} {
		if !strings.Contains(buf.String(), name) {
			t.Errorf("metric %s not exported", name)
		}
	}
}
