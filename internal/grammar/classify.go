package grammar

import (
	"strconv"
	"strings"
)

// Classification is the result of matching a header string against the
// column grammar. Implementations form a closed set; the marker method
// keeps the set sealed.
type Classification interface {
	classification()
}

// TermColumn is the generic "<type> [<term>]" shape. Classify returns it
// only when no specialized shape matched.
type TermColumn struct {
	ColumnType string
	TermName   string
}

func (TermColumn) classification() {}

// ParameterColumn, FactorColumn, CharacteristicColumn and ComponentColumn
// are TermColumn specializations selected by the column-type literal sets.
type ParameterColumn struct{ Term string }

func (ParameterColumn) classification() {}

type FactorColumn struct{ Term string }

func (FactorColumn) classification() {}

type CharacteristicColumn struct{ Term string }

func (CharacteristicColumn) classification() {}

type ComponentColumn struct{ Term string }

func (ComponentColumn) classification() {}

// InputColumn and OutputColumn carry the raw IO-type text from the
// brackets. Interpreting that text is the caller's concern.
type InputColumn struct{ IOType string }

func (InputColumn) classification() {}

type OutputColumn struct{ IOType string }

func (OutputColumn) classification() {}

// CommentColumn carries the comment key from the brackets.
type CommentColumn struct{ Key string }

func (CommentColumn) classification() {}

// UnitColumn is the literal "Unit" header.
type UnitColumn struct{}

func (UnitColumn) classification() {}

// TSRColumn and TANColumn are the Term Source REF and Term Accession Number
// reference columns. The fields are all empty when the parenthesized
// annotation was empty or did not parse as a term annotation; that still
// counts as a successful match.
type TSRColumn struct {
	IDSpace       string
	LocalID       string
	FullAccession string
}

func (TSRColumn) classification() {}

type TANColumn struct {
	IDSpace       string
	LocalID       string
	FullAccession string
}

func (TANColumn) classification() {}

// ReferenceColumn matches either reference column shape without
// interpreting the annotation. Classify never returns it (the specific
// TSRColumn/TANColumn win); it serves callers that only need to group
// reference columns with their main column.
type ReferenceColumn struct{ Annotation string }

func (ReferenceColumn) classification() {}

// AutoGeneratedTableName matches names from the "New Table <n>" scheme.
type AutoGeneratedTableName struct{ Number int }

func (AutoGeneratedTableName) classification() {}

// Classify matches header against the column shapes, most specific first.
// The second return is false when no shape matched; callers treat that as
// free text, not as an error.
func Classify(header string) (Classification, bool) {
	if c, ok := MatchUnitColumn(header); ok {
		return c, true
	}
	if c, ok := MatchTSRColumn(header); ok {
		return c, true
	}
	if c, ok := MatchTANColumn(header); ok {
		return c, true
	}
	if c, ok := MatchInputColumn(header); ok {
		return c, true
	}
	if c, ok := MatchOutputColumn(header); ok {
		return c, true
	}
	if c, ok := MatchCommentColumn(header); ok {
		return c, true
	}
	if c, ok := MatchParameterColumn(header); ok {
		return c, true
	}
	if c, ok := MatchFactorColumn(header); ok {
		return c, true
	}
	if c, ok := MatchCharacteristicColumn(header); ok {
		return c, true
	}
	if c, ok := MatchComponentColumn(header); ok {
		return c, true
	}
	if c, ok := MatchTermColumn(header); ok {
		return c, true
	}
	if c, ok := MatchAutoGeneratedTableName(header); ok {
		return c, true
	}
	return nil, false
}

// MatchTermColumn matches the generic "<type> [<term>]" shape. The term
// capture is greedy: "Parameter [instrument [model]]" yields the term
// "instrument [model]".
func MatchTermColumn(s string) (TermColumn, bool) {
	m := termColumnRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TermColumn{}, false
	}
	return TermColumn{
		ColumnType: m[termColumnRegex.SubexpIndex("columntype")],
		TermName:   m[termColumnRegex.SubexpIndex("termname")],
	}, true
}

func MatchParameterColumn(s string) (ParameterColumn, bool) {
	tc, ok := MatchTermColumn(s)
	if !ok || !isLiteral(parameterLiterals, tc.ColumnType) {
		return ParameterColumn{}, false
	}
	return ParameterColumn{Term: tc.TermName}, true
}

func MatchFactorColumn(s string) (FactorColumn, bool) {
	tc, ok := MatchTermColumn(s)
	if !ok || !isLiteral(factorLiterals, tc.ColumnType) {
		return FactorColumn{}, false
	}
	return FactorColumn{Term: tc.TermName}, true
}

func MatchCharacteristicColumn(s string) (CharacteristicColumn, bool) {
	tc, ok := MatchTermColumn(s)
	if !ok || !isLiteral(characteristicLiterals, tc.ColumnType) {
		return CharacteristicColumn{}, false
	}
	return CharacteristicColumn{Term: tc.TermName}, true
}

func MatchComponentColumn(s string) (ComponentColumn, bool) {
	tc, ok := MatchTermColumn(s)
	if !ok || !isLiteral(componentLiterals, tc.ColumnType) {
		return ComponentColumn{}, false
	}
	return ComponentColumn{Term: tc.TermName}, true
}

func MatchInputColumn(s string) (InputColumn, bool) {
	m := inputRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return InputColumn{}, false
	}
	return InputColumn{IOType: m[inputRegex.SubexpIndex("iotype")]}, true
}

func MatchOutputColumn(s string) (OutputColumn, bool) {
	m := outputRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return OutputColumn{}, false
	}
	return OutputColumn{IOType: m[outputRegex.SubexpIndex("iotype")]}, true
}

func MatchCommentColumn(s string) (CommentColumn, bool) {
	m := commentRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return CommentColumn{}, false
	}
	return CommentColumn{Key: m[commentRegex.SubexpIndex("key")]}, true
}

func MatchUnitColumn(s string) (UnitColumn, bool) {
	if strings.TrimSpace(s) != "Unit" {
		return UnitColumn{}, false
	}
	return UnitColumn{}, true
}

func MatchTSRColumn(s string) (TSRColumn, bool) {
	m := tsrColumnRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TSRColumn{}, false
	}
	idspace, localID, full := splitReferenceAnnotation(m[tsrColumnRegex.SubexpIndex("id")])
	return TSRColumn{IDSpace: idspace, LocalID: localID, FullAccession: full}, true
}

func MatchTANColumn(s string) (TANColumn, bool) {
	m := tanColumnRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return TANColumn{}, false
	}
	idspace, localID, full := splitReferenceAnnotation(m[tanColumnRegex.SubexpIndex("id")])
	return TANColumn{IDSpace: idspace, LocalID: localID, FullAccession: full}, true
}

func MatchReferenceColumn(s string) (ReferenceColumn, bool) {
	m := referenceColumnRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return ReferenceColumn{}, false
	}
	return ReferenceColumn{Annotation: m[referenceColumnRegex.SubexpIndex("id")]}, true
}

// MatchAutoGeneratedTableName matches "New Table <n>". Any trailing token
// after the number rejects the match, as does a number too large for int.
func MatchAutoGeneratedTableName(s string) (AutoGeneratedTableName, bool) {
	m := autoGeneratedTableNameRegex.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return AutoGeneratedTableName{}, false
	}
	n, err := strconv.Atoi(m[autoGeneratedTableNameRegex.SubexpIndex("number")])
	if err != nil {
		return AutoGeneratedTableName{}, false
	}
	return AutoGeneratedTableName{Number: n}, true
}

// splitReferenceAnnotation interprets the parenthesized annotation of a
// reference column. Empty or unparseable annotations yield empty fields.
func splitReferenceAnnotation(raw string) (idspace, localID, full string) {
	ta, ok := ParseTermAnnotation(raw)
	if !ok {
		return "", "", ""
	}
	return ta.IDSpace, ta.LocalID, strings.TrimSpace(raw)
}
