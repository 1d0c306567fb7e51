package codec

import (
	"github.com/ValentinKolb/sio/lib/attr"
)

// The sample types are used by bench and metrics and are registered in the
// default registry, so documents can refer to them with schema = "profile".

type Level int

const (
	LevelGuest Level = iota
	LevelMember
	LevelAdmin
)

var levelEnum = attr.NewEnumType("level", "GUEST", "MEMBER", "ADMIN")

// Address travels in the custom block of a Profile
type Address struct {
	Street string
	City   string
	Zip    int32
}

// Profile has one attribute of most kinds and an optional nested Address
type Profile struct {
	ID       int32
	Name     string
	Active   bool
	Score    float64
	Level    Level
	Nickname *string
	Initial  uint16
	Address  *Address
}

var AddressSchema = attr.NewSchema[Address]("address").MustRegister(
	attr.Bind("street", func(a *Address) *string { return &a.Street }),
	attr.Bind("city", func(a *Address) *string { return &a.City }),
	attr.Bind("zip", func(a *Address) *int32 { return &a.Zip }),
)

var ProfileSchema = attr.NewSchema[Profile]("profile").MustRegister(
	attr.Bind("id", func(p *Profile) *int32 { return &p.ID }),
	attr.Bind("name", func(p *Profile) *string { return &p.Name }),
	attr.Bind("active", func(p *Profile) *bool { return &p.Active }),
	attr.Bind("score", func(p *Profile) *float64 { return &p.Score }),
	attr.BindEnum("level", levelEnum, func(p *Profile) *Level { return &p.Level }),
	attr.BindPtr("nickname", func(p *Profile) **string { return &p.Nickname }),
	attr.Bind("initial", func(p *Profile) *uint16 { return &p.Initial }),
).SetCustom(
	func(p *Profile, enc *attr.Encoder) error {
		if p.Address == nil {
			return nil
		}
		return AddressSchema.Encode(enc, p.Address)
	},
	func(p *Profile, dec *attr.Decoder) error {
		p.Address = &Address{}
		return AddressSchema.Decode(dec, p.Address)
	},
)

func init() {
	for _, d := range []attr.Descriptor{ProfileSchema, AddressSchema} {
		if err := attr.Register(d); err != nil {
			panic(err)
		}
	}
}

// SampleProfile returns a fully populated profile
func SampleProfile() *Profile {
	nick := "jd"
	return &Profile{
		ID:       42,
		Name:     "judi",
		Active:   true,
		Score:    97.5,
		Level:    LevelAdmin,
		Nickname: &nick,
		Initial:  'J',
		Address: &Address{
			Street: "Hauptstraße 1",
			City:   "Ulm",
			Zip:    89073,
		},
	}
}
