package expression

import (
	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

var (
	varA = NewVariable("a")
	varB = NewVariable("b")
	varC = NewVariable("c")

	hello       = NewConstant(rdf.NewPlainLiteral("hello"))
	helloEN     = NewConstant(rdf.NewLangLiteral("hello", "en-US"))
	en          = NewConstant(rdf.NewPlainLiteral("en"))
	arabic      = NewConstant(rdf.NewPlainLiteral("ar"))
	rtl         = NewConstant(rdf.NewPlainLiteral("rtl"))
	two         = NewConstant(rdf.NewIntegerLiteral(2))
	three       = NewConstant(rdf.NewIntegerLiteral(3))
	twentyFive  = NewConstant(rdf.NewTypedLiteral("25", vocabulary.XSDInt))
	item        = NewConstant(rdf.NewResource("http://example.org/item"))
	integerType = NewConstant(rdf.NewResource(vocabulary.XSDInteger))
	point       = NewConstant(rdf.NewTypedLiteral("POINT(9.18854 45.464664)", vocabulary.GEOWktLiteral))
)

type fixture struct {
	name string
	x    *Expression
}

// fixtures covers every operator once. The golden render files list them
// in the same order.
func fixtures() []fixture {
	return []fixture{
		{"add", Must(New(KindAdd, varA, varB))},
		{"subtract_nested", Must(New(KindSubtract, Must(New(KindMultiply, varA, twentyFive)), varB))},
		{"divide", Must(New(KindDivide, varA, varB))},
		{"abs", Must(New(KindAbs, varA))},
		{"ceil", Must(New(KindCeil, varA))},
		{"floor_add", Must(New(KindFloor, Must(New(KindAdd, varA, varB))))},
		{"round", Must(New(KindRound, varA))},
		{"equal", Must(New(KindEqual, varA, hello))},
		{"not_equal", Must(New(KindNotEqual, varA, varB))},
		{"less", Must(New(KindLess, varA, twentyFive))},
		{"less_or_equal", Must(New(KindLessOrEqual, varA, varB))},
		{"greater", Must(New(KindGreater, varA, varB))},
		{"greater_or_equal", Must(New(KindGreaterOrEqual, varA, varB))},
		{"and_or", Must(New(KindAnd, Must(New(KindBound, varA)), Must(New(KindOr, varB, varC))))},
		{"not", Must(New(KindNot, Must(New(KindBound, varA))))},
		{"if", Must(New(KindIf, varA, hello, helloEN))},
		{"coalesce", Must(New(KindCoalesce, varA, varB, hello))},
		{"in", Must(NewIn(varA, hello, varB))},
		{"in_empty", Must(NewIn(varA))},
		{"not_in", Must(NewNotIn(varA, item))},
		{"same_term", Must(New(KindSameTerm, varA, varB))},
		{"is_iri", Must(New(KindIsIRI, varA))},
		{"is_blank", Must(New(KindIsBlank, varA))},
		{"is_literal", Must(New(KindIsLiteral, varA))},
		{"is_numeric", Must(New(KindIsNumeric, varA))},
		{"str", Must(New(KindStr, varA))},
		{"strlen", Must(New(KindStrLen, varA))},
		{"concat", Must(New(KindConcat, varA, varB))},
		{"contains", Must(New(KindContains, varA, hello))},
		{"strstarts", Must(New(KindStrStarts, varA, varB))},
		{"strends", Must(New(KindStrEnds, varA, varB))},
		{"strbefore", Must(New(KindStrBefore, varA, varB))},
		{"strafter", Must(New(KindStrAfter, varA, varB))},
		{"substr", Must(New(KindSubstr, varA, two, three))},
		{"ucase", Must(New(KindUCase, varA))},
		{"lcase", Must(New(KindLCase, varA))},
		{"encode_for_uri", Must(New(KindEncodeForURI, varA))},
		{"regex", Must(NewRegex(varA, `^hel+o\s`, "xi"))},
		{"regex_no_flags", Must(NewRegex(varA, "hello", ""))},
		{"replace", Must(NewReplace(varA, "(l+)", "[$1]", "i"))},
		{"md5", Must(New(KindMD5, varA))},
		{"sha1", Must(New(KindSHA1, varA))},
		{"sha256", Must(New(KindSHA256, varA))},
		{"sha384", Must(New(KindSHA384, varA))},
		{"sha512", Must(New(KindSHA512, varA))},
		{"datatype", Must(New(KindDatatype, varA))},
		{"iri", Must(New(KindIRI, varA))},
		{"bnode", Must(New(KindBNode))},
		{"bnode_labelled", Must(New(KindBNode, varA))},
		{"uuid", Must(New(KindUUID))},
		{"struuid", Must(New(KindStrUUID))},
		{"rand", Must(New(KindRand))},
		{"lang", Must(New(KindLang, varA))},
		{"langdir", Must(New(KindLangDir, varA))},
		{"langmatches", Must(New(KindLangMatches, Must(New(KindLang, varA)), en))},
		{"haslang", Must(New(KindHasLang, varA))},
		{"haslangdir", Must(New(KindHasLangDir, varA))},
		{"strlang", Must(New(KindStrLang, varA, en))},
		{"strlangdir", Must(New(KindStrLangDir, varA, arabic, rtl))},
		{"strdt", Must(New(KindStrDT, varA, integerType))},
		{"now", Must(New(KindNow))},
		{"year", Must(New(KindYear, varA))},
		{"month", Must(New(KindMonth, varA))},
		{"day", Must(New(KindDay, varA))},
		{"hours", Must(New(KindHours, varA))},
		{"minutes", Must(New(KindMinutes, varA))},
		{"seconds", Must(New(KindSeconds, varA))},
		{"timezone", Must(New(KindTimezone, varA))},
		{"tz", Must(New(KindTZ, varA))},
		{"geo_buffer", Must(NewBuffer(point, 150, vocabulary.UOMMetre))},
		{"geo_convex_hull", Must(New(KindGeoConvexHull, varA))},
		{"geo_is_empty", Must(New(KindGeoIsEmpty, varA))},
		{"geo_equals", Must(New(KindGeoEquals, varA, point))},
		{"geo_disjoint", Must(New(KindGeoDisjoint, varA, varB))},
		{"geo_intersects", Must(New(KindGeoIntersects, varA, varB))},
		{"geo_overlaps", Must(New(KindGeoOverlaps, varA, varB))},
		{"geo_contains", Must(New(KindGeoContains, varA, varB))},
		{"geo_within", Must(New(KindGeoWithin, varA, varB))},
		{"geo_touches", Must(New(KindGeoTouches, varA, varB))},
		{"geo_crosses", Must(New(KindGeoCrosses, varA, varB))},
	}
}
