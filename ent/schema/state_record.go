package schema

import (
	"time"

	"entgo.io/ent"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// StateRecord is a single persisted entity keyed by its logical name
// (profile, progress, skills-map, ...). The value is stored as raw JSON so
// each domain package owns its own serialization.
type StateRecord struct {
	ent.Schema
}

func (StateRecord) Fields() []ent.Field {
	return []ent.Field{
		field.String("key").
			NotEmpty().
			Unique().
			Comment("Logical state key"),
		field.Bytes("value").
			Comment("JSON-encoded entity value"),
		field.Time("updated_at").
			Default(time.Now).
			UpdateDefault(time.Now).
			Comment("Last write time"),
	}
}

func (StateRecord) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("key"),
	}
}
