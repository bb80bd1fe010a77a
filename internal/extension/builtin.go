package extension

import (
	"strings"

	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

// DefaultTagPrefix namespaces the tags added by Tags.
const DefaultTagPrefix = "ecs:"

// Documentation copies document and field descriptions into the
// documentation trait unless one is already set.
type Documentation struct{ Base }

func (Documentation) Name() string { return "documentation" }

func (Documentation) UpdateStructure(s *shape.Structure, doc *schema.Document) *shape.Structure {
	desc := strings.TrimSpace(doc.Description)
	if desc == "" || s.Traits.Has(shape.TraitDocumentation) {
		return s
	}

	return s.WithTrait(shape.TraitDocumentation, desc)
}

func (Documentation) UpdateMember(m shape.Member, field *schema.Field) shape.Member {
	desc := strings.TrimSpace(field.Description)
	if desc == "" || m.Traits.Has(shape.TraitDocumentation) {
		return m
	}

	return m.WithTrait(shape.TraitDocumentation, desc)
}

// Required marks members of required fields.
type Required struct{ Base }

func (Required) Name() string { return "required" }

func (Required) UpdateMember(m shape.Member, field *schema.Field) shape.Member {
	if !field.IsRequired() || m.Traits.Has(shape.TraitRequired) {
		return m
	}

	return m.WithTrait(shape.TraitRequired, struct{}{})
}

// JSONName records the declared field name as the wire name when it differs
// from the derived member name, e.g. "status_code" for member "statusCode".
type JSONName struct{ Base }

func (JSONName) Name() string { return "jsonName" }

func (JSONName) UpdateMember(m shape.Member, field *schema.Field) shape.Member {
	if field.Name == m.Name || m.Traits.Has(shape.TraitJSONName) {
		return m
	}

	return m.WithTrait(shape.TraitJSONName, field.Name)
}

// Tags classifies members: non-core levels become "<prefix><level>" and
// unindexed fields "<prefix>unindexed". Tags accumulate across stages.
type Tags struct {
	Base

	Prefix string
}

func (Tags) Name() string { return "tags" }

func (t Tags) UpdateMember(m shape.Member, field *schema.Field) shape.Member {
	var tags []string

	if level := field.EffectiveLevel(); level != schema.LevelCore {
		tags = append(tags, t.Prefix+string(level))
	}

	if field.IsUnindexed() {
		tags = append(tags, t.Prefix+"unindexed")
	}

	if len(tags) == 0 {
		return m
	}

	return m.WithTags(tags...)
}
