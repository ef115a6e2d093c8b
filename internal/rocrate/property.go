package rocrate

import (
	"fmt"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// additionalType discriminators routing a flattened PropertyValue back
// to the sub-list it came from.
const (
	CharacteristicType = "Characteristic"
	FactorValueType    = "FactorValue"
)

// EncodeCharacteristicValue flattens a characteristic value into a
// PropertyValue entity.
func EncodeCharacteristicValue(cv isa.CharacteristicValue) *jtree.Object {
	return encodePropertyValue(CharacteristicType, cv.Category, cv.Value, cv.Unit)
}

// EncodeFactorValue flattens a factor value into a PropertyValue entity.
func EncodeFactorValue(fv isa.FactorValue) *jtree.Object {
	return encodePropertyValue(FactorValueType, fv.Category, fv.Value, fv.Unit)
}

// encodePropertyValue writes the schema.org PropertyValue shape: the
// category lands in "name"/"propertyID", the value in
// "value"/"valueCode" and the unit in "unit"/"unitCode". Term source
// references are not written; decode recovers them from the accessions.
func encodePropertyValue(additionalType string, cat isa.OntologyAnnotation, val isa.Value, unit isa.OntologyAnnotation) *jtree.Object {
	o := jtree.NewObject()
	setEnvelope(o, propertyValueID(additionalType, cat, val), "PropertyValue")
	o.Set("additionalType", jtree.String(additionalType))
	codec.TryIncludeString(o, "name", cat.NameText())
	codec.TryIncludeString(o, "propertyID", cat.TermAccessionText())
	switch v := val.(type) {
	case isa.OntologyValue:
		codec.TryIncludeString(o, "value", v.Term.NameText())
		codec.TryIncludeString(o, "valueCode", v.Term.TermAccessionText())
	case isa.IntValue:
		o.Set("value", jtree.Int(v))
	case isa.FloatValue:
		o.Set("value", jtree.Float(v))
	case isa.NameValue:
		codec.TryIncludeString(o, "value", string(v))
	case nil:
	}
	codec.TryIncludeString(o, "unit", unit.NameText())
	codec.TryIncludeString(o, "unitCode", unit.TermAccessionText())
	return o
}

// propertyValueID derives the node id from the category and value texts,
// so distinct values of the same category get distinct nodes.
func propertyValueID(kind string, cat isa.OntologyAnnotation, val isa.Value) string {
	name := cat.NameText()
	if val != nil {
		if vt := val.Text(); vt != "" {
			if name != "" {
				name += " " + vt
			} else {
				name = vt
			}
		}
	}
	return EntityID(kind, name)
}

// decodePropertyValue reads a PropertyValue entity back into its parts.
func decodePropertyValue(v jtree.Value) (additionalType string, cat isa.OntologyAnnotation, val isa.Value, unit isa.OntologyAnnotation, err error) {
	f, err := codec.NewFields("property value", v, opts)
	if err != nil {
		return "", cat, nil, unit, err
	}
	if additionalType, err = f.Text("additionalType"); err != nil {
		return "", cat, nil, unit, err
	}
	name, err := f.Text("name")
	if err != nil {
		return "", cat, nil, unit, err
	}
	propertyID, err := f.Text("propertyID")
	if err != nil {
		return "", cat, nil, unit, err
	}
	cat = annotationFrom(name, propertyID)

	valueCode, err := f.Text("valueCode")
	if err != nil {
		return "", cat, nil, unit, err
	}
	if raw, ok := f.Get("value"); ok {
		if val, err = decodeFlatValue(raw, valueCode); err != nil {
			return "", cat, nil, unit, err
		}
	}

	unitName, err := f.Text("unit")
	if err != nil {
		return "", cat, nil, unit, err
	}
	unitCode, err := f.Text("unitCode")
	if err != nil {
		return "", cat, nil, unit, err
	}
	unit = annotationFrom(unitName, unitCode)
	return additionalType, cat, val, unit, nil
}

// decodeFlatValue interprets the "value" key: numbers stay numeric, a
// string becomes an ontology value when a valueCode accompanies it and a
// plain name otherwise.
func decodeFlatValue(raw jtree.Value, valueCode string) (isa.Value, error) {
	switch v := raw.(type) {
	case jtree.Int:
		return isa.IntValue(v), nil
	case jtree.Float:
		return isa.FloatValue(v), nil
	case jtree.String:
		if valueCode != "" {
			return isa.OntologyValue{Term: annotationFrom(string(v), valueCode)}, nil
		}
		return isa.NameValue(v), nil
	}
	return nil, codec.NewTypeMismatchError("property value", "value", "string or number", codec.KindName(raw))
}

// EncodeSample renders a sample; its characteristic and factor values
// merge, in that order, into one additionalProperties list.
func EncodeSample(s isa.Sample) *jtree.Object {
	o := jtree.NewObject()
	setEnvelope(o, EntityID("Sample", s.Name), "Sample")
	codec.TryIncludeString(o, "name", s.Name)
	props := make([]jtree.Value, 0, len(s.Characteristics)+len(s.FactorValues))
	for _, cv := range s.Characteristics {
		props = append(props, EncodeCharacteristicValue(cv))
	}
	for _, fv := range s.FactorValues {
		props = append(props, EncodeFactorValue(fv))
	}
	codec.TryIncludeArray(o, "additionalProperties", props)
	return o
}

// DecodeSample reads a sample, routing each additionalProperties entry
// on its additionalType back to the characteristics or factor values.
func DecodeSample(v jtree.Value) (isa.Sample, error) {
	f, err := codec.NewFields("sample", v, opts)
	if err != nil {
		return isa.Sample{}, err
	}
	var s isa.Sample
	if s.Name, err = f.Text("name"); err != nil {
		return isa.Sample{}, err
	}
	raw, err := f.Array("additionalProperties")
	if err != nil {
		return isa.Sample{}, err
	}
	for i, entry := range raw {
		additionalType, cat, val, unit, err := decodePropertyValue(entry)
		if err != nil {
			return isa.Sample{}, fmt.Errorf("additionalProperties[%d]: %w", i, err)
		}
		switch additionalType {
		case CharacteristicType:
			s.Characteristics = append(s.Characteristics, isa.CharacteristicValue{Category: cat, Value: val, Unit: unit})
		case FactorValueType:
			s.FactorValues = append(s.FactorValues, isa.FactorValue{Category: cat, Value: val, Unit: unit})
		default:
			return isa.Sample{}, fmt.Errorf("additionalProperties[%d]: %w", i,
				codec.NewUnknownVariantError("additionalType", additionalType))
		}
	}
	return s, nil
}
