/*
Package attr implements the tagged attribute protocol on top of package wire.

An object is encoded as an attribute sequence: a list of named, tagged values,
optionally followed by one custom block and terminated by the end tag.

	Attribute    := Tag(1 byte) Name(String) Value
	Custom block := TagCustom(1 byte) Length(Int32) Bytes
	End          := TagEnd(1 byte)

The tag identifies the kind of the value:

	Tag  Kind     Value bytes
	---  -------  --------------------------------------------
	  0  end      none, carries no name
	  1  null     none
	  2  byte     1
	  3  short    2, big-endian
	  4  int      4, big-endian
	  5  long     8, big-endian
	  6  float    4, IEEE-754 bit pattern
	  7  double   8, IEEE-754 bit pattern
	  8  bool     1 (1 = true)
	  9  char     2, UTF-16 code unit
	 10  string   Int32 length + UTF-8 bytes (-1 = null)
	 11  enum     variant name as string
	 50  custom   Int32 length + opaque bytes, carries no name

Tags 12 to 49 and above 50 are reserved. A decoder that meets one of them stops
with ErrUnknownTag, because the width of the value is unknown.

# Schemas

Objects are not discovered by reflection. Each type registers its attributes
explicitly in a Schema:

	type User struct {
		ID     int32
		Name   string
		Active bool
	}

	var userSchema = attr.NewSchema[User]("user").MustRegister(
		attr.Bind("id", func(u *User) *int32 { return &u.ID }),
		attr.Bind("name", func(u *User) *string { return &u.Name }),
		attr.Bind("active", func(u *User) *bool { return &u.Active }),
	)

	data, err := userSchema.Marshal(&User{ID: 42, Name: "judi", Active: true})

Attributes are written in registration order. Decoding correlates attributes
by name only, so the order on the wire does not matter. Attributes without a
registered accessor are skipped (their value bytes are consumed), which lets
old readers process data written by newer writers. An attribute whose tag does
not match the registered kind is rejected with a *TypeMismatchError; a null
attribute is accepted for every kind.

Bind, BindPtr and BindEnum create accessors for the common cases. Field can be
filled by hand for everything else.

# Custom blocks

A type can append a free-form custom block, either through Schema.SetCustom or
by implementing CustomEncoder and CustomDecoder. The encode hook writes into a
separate buffer; if it writes nothing, no custom block is emitted at all.

The decode hook receives a Decoder confined to the block: it can neither read
past the end of the block nor leave the outer stream out of sync, because any
bytes it does not consume are discarded afterwards. Custom blocks may contain
further attribute sequences up to MaxDepth levels deep. At most one custom
block is allowed per sequence.

# Schema-less access

ReadSequence and WriteSequence work on a generic Sequence of attributes. They
are used by tools that inspect streams without knowing the object type, and
Check compares such a sequence with a registered Descriptor.

# Metrics

Encode and Decode update process wide counters (objects, errors, skipped
attributes, custom blocks) that can be exported with WriteMetrics.

# Thread Safety

Encoder and Decoder are not safe for concurrent use. A fully registered Schema
is read-only and may be shared. Registry is safe for concurrent use.
*/
package attr
