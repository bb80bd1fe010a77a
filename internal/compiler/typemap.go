package compiler

import (
	"fmt"
	"strings"

	"ecs-shapegen/internal/naming"
	"ecs-shapegen/internal/schema"
	"ecs-shapegen/internal/shape"
)

const (
	listSuffix     = "List"
	mapValueSuffix = "Member"
)

// mapping is the outcome of mapping one field: the shape its member should
// target plus any shapes created along the way, in dependency order.
type mapping struct {
	target shape.ID
	shapes []shape.Shape
}

// mapField maps field to a shape identified by id. When asList is set the
// singular shape is wrapped in a list named id+"List".
func mapField(id shape.ID, field *schema.Field, asList bool) (mapping, error) {
	single, err := mapSingular(id, field)
	if err != nil || !asList {
		return single, err
	}

	listID := id.WithSuffix(listSuffix)
	single.shapes = append(single.shapes, shape.NewList(listID, single.target))
	single.target = listID

	return single, nil
}

func mapSingular(id shape.ID, field *schema.Field) (mapping, error) {
	switch field.Type {
	case schema.KindKeyword, schema.KindText, schema.KindIP:
		if len(field.AllowedValues) == 0 {
			return mapping{target: shape.String}, nil
		}

		enum, err := enumShape(id, field.AllowedValues)
		if err != nil {
			return mapping{}, err
		}

		return mapping{target: id, shapes: []shape.Shape{enum}}, nil
	case schema.KindDate:
		return mapping{target: shape.Timestamp}, nil
	case schema.KindBoolean:
		return mapping{target: shape.Boolean}, nil
	case schema.KindInteger:
		return mapping{target: shape.Integer}, nil
	case schema.KindLong:
		return mapping{target: shape.Long}, nil
	case schema.KindFloat:
		return mapping{target: shape.Float}, nil
	case schema.KindObject:
		return mapObject(id, field)
	case schema.KindGeoPoint:
		point := shape.NewStructure(id).
			WithMember(shape.Member{Name: "lat", Target: shape.Double}).
			WithMember(shape.Member{Name: "lon", Target: shape.Double})

		return mapping{target: id, shapes: []shape.Shape{point}}, nil
	default:
		return mapping{}, fmt.Errorf("%w: %q", ErrUnrecognizedKind, field.Type)
	}
}

// mapObject maps an object field: without object_type it is an open
// structure, with one it is a string-keyed map of that kind.
func mapObject(id shape.ID, field *schema.Field) (mapping, error) {
	if field.ObjectType == nil {
		return mapping{target: id, shapes: []shape.Shape{shape.NewStructure(id)}}, nil
	}

	if strings.TrimSpace(string(*field.ObjectType)) == "" {
		return mapping{}, fmt.Errorf("%w: object field %q", ErrMissingNestedKind, field.Name)
	}

	nested := *field
	nested.Type = *field.ObjectType
	nested.ObjectType = nil

	value, err := mapSingular(id.WithSuffix(mapValueSuffix), &nested)
	if err != nil {
		return mapping{}, fmt.Errorf("object_type of %q: %w", field.Name, err)
	}

	value.shapes = append(value.shapes, shape.NewMap(id, value.target))
	value.target = id

	return value, nil
}

func enumShape(id shape.ID, values []schema.AllowedValue) (*shape.Enum, error) {
	enum := &shape.Enum{ShapeID: id, Variants: make([]shape.EnumVariant, 0, len(values))}
	seen := make(map[string]string, len(values))

	for _, v := range values {
		tag := naming.EnumTag(v.Name)
		if tag == "" {
			return nil, fmt.Errorf("%w: allowed value %q of %s", ErrInvalidName, v.Name, id)
		}

		if prev, dup := seen[tag]; dup {
			return nil, fmt.Errorf("%w: allowed values %q and %q of %s both derive tag %s",
				shape.ErrDuplicateIdentifier, prev, v.Name, id, tag)
		}

		seen[tag] = v.Name
		enum.Variants = append(enum.Variants, shape.EnumVariant{
			Tag:           tag,
			Value:         v.Name,
			Documentation: strings.TrimSpace(v.Description),
		})
	}

	return enum, nil
}
