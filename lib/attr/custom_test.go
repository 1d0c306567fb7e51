package attr

import (
	"bytes"
	"errors"
	"testing"

	"github.com/ValentinKolb/sio/lib/wire"
	"github.com/google/go-cmp/cmp"
)

// node is a linked list whose tail travels inside the custom block of its head
type node struct {
	Name string
	Next *node
}

func nodeSchema() *Schema[node] {
	s := NewSchema[node]("node").MustRegister(
		Bind("name", func(n *node) *string { return &n.Name }),
	)
	s.SetCustom(
		func(n *node, enc *Encoder) error {
			if n.Next == nil {
				return nil
			}
			return s.Encode(enc, n.Next)
		},
		func(n *node, dec *Decoder) error {
			n.Next = &node{}
			return s.Decode(dec, n.Next)
		},
	)
	return s
}

func chain(n int) *node {
	var head *node
	for i := n; i > 0; i-- {
		head = &node{Name: string(rune('a' + i%26)), Next: head}
	}
	return head
}

// point implements CustomEncoder and CustomDecoder itself
type point struct {
	Label string
	X, Y  int32
}

func (p *point) EncodeCustom(enc *Encoder) error {
	if p.X == 0 && p.Y == 0 {
		return nil
	}
	if err := enc.WriteInt32(p.X); err != nil {
		return err
	}
	return enc.WriteInt32(p.Y)
}

func (p *point) DecodeCustom(dec *Decoder) error {
	var err error
	if p.X, err = dec.ReadInt32(); err != nil {
		return err
	}
	p.Y, err = dec.ReadInt32()
	return err
}

func pointSchema() *Schema[point] {
	return NewSchema[point]("point").MustRegister(
		Bind("label", func(p *point) *string { return &p.Label }),
	)
}

// TestCustomEmptyOmitted tests that a hook writing nothing produces no custom tag
func TestCustomEmptyOmitted(t *testing.T) {
	withHook, err := pointSchema().Marshal(&point{Label: "origin"})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	plain := NewSchema[point]("point").MustRegister(
		Bind("label", func(p *point) *string { return &p.Label }),
	).SetCustom(func(*point, *Encoder) error { return nil }, nil)
	withSchemaHook, err := plain.Marshal(&point{Label: "origin", X: 1})
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := stream(func(enc *Encoder) {
		enc.WriteAttribute("label", String("origin"))
		enc.WriteEnd()
	})
	if !bytes.Equal(withHook, want) {
		t.Errorf("interface hook: Marshal() = %v, want %v", withHook, want)
	}
	if !bytes.Equal(withSchemaHook, want) {
		t.Errorf("schema hook: Marshal() = %v, want %v", withSchemaHook, want)
	}
}

// TestCustomInterface tests custom blocks through CustomEncoder/CustomDecoder
func TestCustomInterface(t *testing.T) {
	schema := pointSchema()
	in := point{Label: "p", X: -3, Y: 9}

	data, err := schema.Marshal(&in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	want := stream(func(enc *Encoder) {
		enc.WriteAttribute("label", String("p"))
		enc.WriteTag(TagCustom)
		enc.WriteInt32(8)
		enc.WriteInt32(-3)
		enc.WriteInt32(9)
		enc.WriteEnd()
	})
	if !bytes.Equal(data, want) {
		t.Errorf("Marshal() = %v, want %v", data, want)
	}

	var out point
	if err := schema.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("decoded object mismatch (-want +got):\n%s", diff)
	}
}

// TestCustomNested tests attribute sequences nested inside custom blocks
func TestCustomNested(t *testing.T) {
	schema := nodeSchema()
	in := chain(5)

	data, err := schema.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	var out node
	if err := schema.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if diff := cmp.Diff(in, &out); diff != "" {
		t.Errorf("decoded chain mismatch (-want +got):\n%s", diff)
	}
}

// TestCustomFraming tests that a hook can neither read past its block nor
// leave unread bytes for the outer sequence
func TestCustomFraming(t *testing.T) {
	type holder struct {
		After int32
		Seen  []int32
	}

	// block of two ints followed by a regular attribute
	data := stream(func(enc *Encoder) {
		enc.WriteTag(TagCustom)
		enc.WriteInt32(8)
		enc.WriteInt32(1)
		enc.WriteInt32(2)
		enc.WriteAttribute("after", Int(9))
		enc.WriteEnd()
	})

	schemaReading := func(n int) *Schema[holder] {
		return NewSchema[holder]("holder").MustRegister(
			Bind("after", func(h *holder) *int32 { return &h.After }),
		).SetCustom(nil, func(h *holder, dec *Decoder) error {
			for i := 0; i < n; i++ {
				v, err := dec.ReadInt32()
				if err != nil {
					return err
				}
				h.Seen = append(h.Seen, v)
			}
			return nil
		})
	}

	t.Run("UnderRead", func(t *testing.T) {
		var out holder
		if err := schemaReading(1).Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if diff := cmp.Diff(holder{After: 9, Seen: []int32{1}}, out); diff != "" {
			t.Errorf("decoded object mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("ExactRead", func(t *testing.T) {
		var out holder
		if err := schemaReading(2).Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if diff := cmp.Diff(holder{After: 9, Seen: []int32{1, 2}}, out); diff != "" {
			t.Errorf("decoded object mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("OverRead", func(t *testing.T) {
		var out holder
		err := schemaReading(3).Unmarshal(data, &out)
		if !errors.Is(err, wire.ErrEndOfInput) {
			t.Fatalf("error = %v, want end of input", err)
		}
		if out.After != 0 {
			t.Errorf("hook consumed the outer attribute")
		}
	})

	t.Run("NoHook", func(t *testing.T) {
		var out holder
		schema := NewSchema[holder]("holder").MustRegister(
			Bind("after", func(h *holder) *int32 { return &h.After }),
		)
		if err := schema.Unmarshal(data, &out); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if out.After != 9 {
			t.Errorf("After = %d, want 9", out.After)
		}
	})
}

// TestCustomNullBlock tests that a null length is treated as an empty block
func TestCustomNullBlock(t *testing.T) {
	data := stream(func(enc *Encoder) {
		enc.WriteTag(TagCustom)
		enc.WriteInt32(-1)
		enc.WriteAttribute("label", String("null block"))
		enc.WriteEnd()
	})

	called := false
	schema := NewSchema[point]("point").MustRegister(
		Bind("label", func(p *point) *string { return &p.Label }),
	).SetCustom(nil, func(p *point, dec *Decoder) error {
		called = true
		if _, err := dec.ReadByte(); !errors.Is(err, wire.ErrEndOfInput) {
			t.Errorf("read in empty block: error = %v, want end of input", err)
		}
		return nil
	})

	var out point
	if err := schema.Unmarshal(data, &out); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !called || out.Label != "null block" {
		t.Errorf("called = %v, label = %q", called, out.Label)
	}
}

// TestCustomDuplicate tests that a second custom block is rejected
func TestCustomDuplicate(t *testing.T) {
	data := stream(func(enc *Encoder) {
		enc.WriteCustom([]byte{7})
		enc.WriteCustom([]byte{7})
		enc.WriteEnd()
	})

	var out user
	if err := userSchema().Unmarshal(data, &out); !errors.Is(err, ErrDuplicateCustom) {
		t.Errorf("error = %v, want ErrDuplicateCustom", err)
	}
}

// TestCustomMaxDepth tests the nesting limit in both directions
func TestCustomMaxDepth(t *testing.T) {
	schema := nodeSchema()

	t.Run("Encode", func(t *testing.T) {
		if _, err := schema.Marshal(chain(MaxDepth)); err != nil {
			t.Fatalf("chain at the limit failed: %v", err)
		}
		if _, err := schema.Marshal(chain(MaxDepth + 1)); !errors.Is(err, ErrMaxDepth) {
			t.Errorf("error = %v, want ErrMaxDepth", err)
		}
	})

	t.Run("Decode", func(t *testing.T) {
		// MaxDepth+1 nested blocks around an empty sequence
		data := []byte{byte(TagEnd)}
		for i := 0; i <= MaxDepth; i++ {
			inner := data
			data = stream(func(enc *Encoder) {
				enc.WriteCustom(inner)
				enc.WriteEnd()
			})
		}

		var out node
		if err := schema.Unmarshal(data, &out); !errors.Is(err, ErrMaxDepth) {
			t.Errorf("error = %v, want ErrMaxDepth", err)
		}
	})
}

// TestCustomDepth tests that hooks see the nesting level
func TestCustomDepth(t *testing.T) {
	var depths []int
	type leaf struct{}
	inner := NewSchema[leaf]("leaf").SetCustom(func(_ *leaf, enc *Encoder) error {
		depths = append(depths, enc.Depth())
		return nil
	}, nil)
	outer := NewSchema[leaf]("outer").SetCustom(func(l *leaf, enc *Encoder) error {
		depths = append(depths, enc.Depth())
		return inner.Encode(enc, l)
	}, nil)

	if _, err := outer.Marshal(&leaf{}); err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if diff := cmp.Diff([]int{1, 2}, depths); diff != "" {
		t.Errorf("depths mismatch (-want +got):\n%s", diff)
	}
}
