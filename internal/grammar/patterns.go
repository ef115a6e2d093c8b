package grammar

import "regexp"

// Header patterns. Anchors, lazy/greedy choices and single-space separators
// are exactly the shapes external spreadsheet tooling emits; they must not be
// "fixed". Notably the lazy columntype together with the greedy termname
// means "Parameter [instrument [model]]" captures termname "instrument
// [model]" and "Parameter [a] [b]" captures termname "a] [b".
const (
	// TermColumnPattern matches the generic "<type> [<term>]" column shape.
	TermColumnPattern = `^(?P<columntype>.+?)\s\[(?P<termname>.+)\]$`

	// InputPattern and OutputPattern carry the IO type inside brackets.
	InputPattern  = `^Input\s\[(?P<iotype>.+)\]$`
	OutputPattern = `^Output\s\[(?P<iotype>.+)\]$`

	// CommentPattern tolerates a missing space before the bracket.
	CommentPattern = `^Comment\s?\[(?P<key>.+)\]$`

	// TSRColumnPattern and TANColumnPattern match reference columns with a
	// parenthesized term annotation. The annotation may be empty.
	TSRColumnPattern = `^Term Source REF\s\((?P<id>.*)\)$`
	TANColumnPattern = `^Term Accession Number\s\((?P<id>.*)\)$`

	// ReferenceColumnPattern matches either reference column shape.
	ReferenceColumnPattern = `^(Term Source REF|Term Accession Number)\s\((?P<id>.*)\)$`

	// AutoGeneratedTableNamePattern matches table names assigned by the
	// "New Table <n>" auto-naming scheme.
	AutoGeneratedTableNamePattern = `^New Table (?P<number>\d+)$`
)

var (
	termColumnRegex             = regexp.MustCompile(TermColumnPattern)
	inputRegex                  = regexp.MustCompile(InputPattern)
	outputRegex                 = regexp.MustCompile(OutputPattern)
	commentRegex                = regexp.MustCompile(CommentPattern)
	tsrColumnRegex              = regexp.MustCompile(TSRColumnPattern)
	tanColumnRegex              = regexp.MustCompile(TANColumnPattern)
	referenceColumnRegex        = regexp.MustCompile(ReferenceColumnPattern)
	autoGeneratedTableNameRegex = regexp.MustCompile(AutoGeneratedTableNamePattern)
)

// Literal keyword sets for the specialized term columns. Each set names the
// spellings accepted for the column type both in bare form ("Factor [x]")
// and in the value form some writers emit ("Factor Value [x]").
// Characteristic additionally accepts its plural.
var (
	parameterLiterals      = []string{"Parameter", "Parameter Value"}
	factorLiterals         = []string{"Factor", "Factor Value"}
	characteristicLiterals = []string{"Characteristic", "Characteristics", "Characteristics Value"}
	componentLiterals      = []string{"Component", "Component Value"}
)

func isLiteral(set []string, s string) bool {
	for _, lit := range set {
		if s == lit {
			return true
		}
	}
	return false
}
