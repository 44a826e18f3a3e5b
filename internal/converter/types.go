// Package converter provides conversions between model types and protobuf
// well-known Struct values
package converter

import (
	"fmt"

	"google.golang.org/protobuf/types/known/structpb"

	"github.com/napolitain/microciv/internal/models"
)

// ResourcesToMap converts resources to a map keyed by resource name
func ResourcesToMap(r models.Resources) map[string]any {
	out := make(map[string]any, 4)
	r.Each(func(rt models.ResourceType, v float64) {
		out[string(rt)] = v
	})
	return out
}

// ResourcesFromStruct reads resources from a Struct keyed by resource name.
// Unknown keys are an error, missing keys are zero.
func ResourcesFromStruct(s *structpb.Struct) (models.Resources, error) {
	var r models.Resources
	for key, v := range s.GetFields() {
		rt, ok := models.ParseResourceType(key)
		if !ok {
			return r, fmt.Errorf("unknown resource %q", key)
		}
		n, ok := v.GetKind().(*structpb.Value_NumberValue)
		if !ok {
			return r, fmt.Errorf("resource %s: expected number", key)
		}
		r.Set(rt, n.NumberValue)
	}
	return r, nil
}

// BuildingsToMap converts owned building counts to a map keyed by building type
func BuildingsToMap(b models.BuildingCounts) map[string]any {
	out := make(map[string]any, len(models.AllBuildingTypes()))
	b.Each(func(bt models.BuildingType, n int) {
		out[string(bt)] = n
	})
	return out
}

// ArmyToMap converts unit counts to a map keyed by unit type
func ArmyToMap(a models.Army) map[string]any {
	out := make(map[string]any, len(models.AllUnitTypes()))
	for _, ut := range models.AllUnitTypes() {
		out[string(ut)] = a.Get(ut)
	}
	return out
}

// TradeOfferToMap converts a trade offer
func TradeOfferToMap(o models.TradeOffer) map[string]any {
	return map[string]any{
		"give":           string(o.Give),
		"give_amount":    o.GiveAmount,
		"receive":        string(o.Receive),
		"receive_amount": o.ReceiveAmount,
	}
}

// RaidToMap converts a raid record
func RaidToMap(r models.RaidRecord) map[string]any {
	return map[string]any{
		"turn":     r.Turn,
		"strength": r.Strength,
		"defense":  r.Defense,
		"repelled": r.Repelled,
		"losses":   ResourcesToMap(r.Losses),
		"people":   r.People,
		"building": string(r.Building),
		"loot":     ResourcesToMap(r.Loot),
	}
}

// fields wraps a Struct's fields with typed getters that remember the first error
type fields struct {
	m   map[string]*structpb.Value
	err error
}

func (f *fields) number(key string) float64 {
	v, ok := f.m[key]
	if !ok {
		return 0
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		f.fail("%s: expected number", key)
		return 0
	}
	return n.NumberValue
}

func (f *fields) integer(key string) int {
	return int(f.number(key))
}

func (f *fields) boolean(key string) bool {
	v, ok := f.m[key]
	if !ok {
		return false
	}
	b, ok := v.GetKind().(*structpb.Value_BoolValue)
	if !ok {
		f.fail("%s: expected bool", key)
		return false
	}
	return b.BoolValue
}

func (f *fields) str(key string) string {
	v, ok := f.m[key]
	if !ok {
		return ""
	}
	s, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		f.fail("%s: expected string", key)
		return ""
	}
	return s.StringValue
}

func (f *fields) object(key string) *fields {
	v, ok := f.m[key]
	if !ok {
		return &fields{m: map[string]*structpb.Value{}}
	}
	s, ok := v.GetKind().(*structpb.Value_StructValue)
	if !ok {
		f.fail("%s: expected object", key)
		return &fields{m: map[string]*structpb.Value{}}
	}
	return &fields{m: s.StructValue.GetFields()}
}

func (f *fields) list(key string) []*structpb.Value {
	v, ok := f.m[key]
	if !ok {
		return nil
	}
	l, ok := v.GetKind().(*structpb.Value_ListValue)
	if !ok {
		f.fail("%s: expected list", key)
		return nil
	}
	return l.ListValue.GetValues()
}

func (f *fields) resources(key string) models.Resources {
	v, ok := f.m[key]
	if !ok {
		return models.Resources{}
	}
	r, err := ResourcesFromStruct(v.GetStructValue())
	if err != nil {
		f.fail("%s: %v", key, err)
	}
	return r
}

func (f *fields) fail(format string, args ...any) {
	if f.err == nil {
		f.err = fmt.Errorf(format, args...)
	}
}
