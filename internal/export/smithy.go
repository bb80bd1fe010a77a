package export

import (
	"fmt"
	"io"
	"slices"

	"github.com/valyala/fastjson"

	"ecs-shapegen/internal/shape"
)

// SmithyVersion is the IDL version written to the JSON AST.
const SmithyVersion = "1.0"

const traitEnum = "smithy.api#enum"

// SmithyJSON renders every non-prelude shape of idx as a Smithy JSON AST
// document.
func SmithyJSON(idx *shape.Index) ([]byte, error) {
	var a fastjson.Arena

	shapes := a.NewObject()

	for _, s := range idx.Shapes() {
		if s.ID().IsPrelude() {
			continue
		}

		v, err := smithyShape(&a, s)
		if err != nil {
			return nil, err
		}

		shapes.Set(s.ID().String(), v)
	}

	doc := a.NewObject()
	doc.Set("smithy", a.NewString(SmithyVersion))
	doc.Set("shapes", shapes)

	return append(doc.MarshalTo(nil), '\n'), nil
}

// WriteSmithyJSON writes the JSON AST of idx to w.
func WriteSmithyJSON(w io.Writer, idx *shape.Index) error {
	data, err := SmithyJSON(idx)
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

func smithyShape(a *fastjson.Arena, s shape.Shape) (*fastjson.Value, error) {
	v := a.NewObject()

	switch s := s.(type) {
	case *shape.Structure:
		v.Set("type", a.NewString("structure"))

		members := a.NewObject()
		for _, name := range s.MemberNames() {
			m, err := smithyMember(a, s.Members[name])
			if err != nil {
				return nil, err
			}

			members.Set(name, m)
		}

		v.Set("members", members)

		if err := setTraits(a, v, s.Traits); err != nil {
			return nil, fmt.Errorf("%s: %w", s.ID(), err)
		}
	case *shape.List:
		v.Set("type", a.NewString("list"))

		m, err := smithyMember(a, s.Member)
		if err != nil {
			return nil, err
		}

		v.Set("member", m)
	case *shape.Map:
		v.Set("type", a.NewString("map"))

		key, err := smithyMember(a, s.Key)
		if err != nil {
			return nil, err
		}

		value, err := smithyMember(a, s.Value)
		if err != nil {
			return nil, err
		}

		v.Set("key", key)
		v.Set("value", value)
	case *shape.Enum:
		v.Set("type", a.NewString("string"))

		traits := s.Traits.With(traitEnum, enumDefinitions(s))
		if err := setTraits(a, v, traits); err != nil {
			return nil, fmt.Errorf("%s: %w", s.ID(), err)
		}
	default:
		return nil, fmt.Errorf("%s: unsupported shape kind %s", s.ID(), s.Kind())
	}

	return v, nil
}

func smithyMember(a *fastjson.Arena, m shape.Member) (*fastjson.Value, error) {
	v := a.NewObject()
	v.Set("target", a.NewString(m.Target.String()))

	if err := setTraits(a, v, m.Traits); err != nil {
		return nil, fmt.Errorf("%s: %w", m.ID(), err)
	}

	return v, nil
}

func enumDefinitions(e *shape.Enum) []any {
	defs := make([]any, 0, len(e.Variants))

	for _, variant := range e.Variants {
		def := map[string]any{
			"value": variant.Value,
			"name":  variant.Tag,
		}
		if variant.Documentation != "" {
			def["documentation"] = variant.Documentation
		}

		defs = append(defs, def)
	}

	return defs
}

func setTraits(a *fastjson.Arena, v *fastjson.Value, traits shape.Traits) error {
	if len(traits) == 0 {
		return nil
	}

	obj := a.NewObject()

	for _, name := range traits.Names() {
		tv, err := jsonValue(a, traits[name])
		if err != nil {
			return fmt.Errorf("trait %s: %w", name, err)
		}

		obj.Set(name, tv)
	}

	v.Set("traits", obj)

	return nil
}

// jsonValue converts a trait value to JSON. Maps are written with sorted keys.
func jsonValue(a *fastjson.Arena, x any) (*fastjson.Value, error) {
	switch x := x.(type) {
	case nil:
		return a.NewNull(), nil
	case struct{}:
		return a.NewObject(), nil
	case string:
		return a.NewString(x), nil
	case bool:
		if x {
			return a.NewTrue(), nil
		}

		return a.NewFalse(), nil
	case int:
		return a.NewNumberInt(x), nil
	case float64:
		return a.NewNumberFloat64(x), nil
	case []string:
		arr := a.NewArray()
		for i, s := range x {
			arr.SetArrayItem(i, a.NewString(s))
		}

		return arr, nil
	case []any:
		arr := a.NewArray()
		for i, item := range x {
			iv, err := jsonValue(a, item)
			if err != nil {
				return nil, err
			}

			arr.SetArrayItem(i, iv)
		}

		return arr, nil
	case map[string]any:
		obj := a.NewObject()

		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}

		slices.Sort(keys)

		for _, k := range keys {
			kv, err := jsonValue(a, x[k])
			if err != nil {
				return nil, err
			}

			obj.Set(k, kv)
		}

		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported trait value %T", x)
	}
}
