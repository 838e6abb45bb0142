package expression

import (
	"testing"

	"github.com/c360/semsparql/rdf"
	"github.com/c360/semsparql/vocabulary"
)

func stringLit(text string) Constant { return NewConstant(rdf.NewStringLiteral(text)) }

func TestEvaluator_StringTests(t *testing.T) {
	e := newTestEvaluator(t)
	r := row(map[string]string{"?A": "foobar"}, "?N")
	null := NewVariable("n")

	tests := []evalCase{
		{"contains", Must(New(KindContains, varA, plainLit("oba"))), r, rdf.True},
		{"contains_missing", Must(New(KindContains, varA, plainLit("baz"))), r, rdf.False},
		{"contains_is_case_sensitive", Must(New(KindContains, varA, plainLit("FOO"))), r, rdf.False},
		{"starts", Must(New(KindStrStarts, varA, plainLit("foo"))), r, rdf.True},
		{"starts_wrong_end", Must(New(KindStrStarts, varA, plainLit("bar"))), r, rdf.False},
		{"ends", Must(New(KindStrEnds, varA, plainLit("bar"))), r, rdf.True},
		{"ends_longer_needle", Must(New(KindStrEnds, varA, plainLit("xfoobar"))), r, rdf.False},
		{"empty_needle", Must(New(KindStrEnds, varA, plainLit(""))), r, rdf.True},
		{"null_haystack_empty_needle", Must(New(KindStrStarts, null, plainLit(""))), r, rdf.True},
		// A null cell reads as "", which contains only the empty needle.
		{"null_haystack", Must(New(KindContains, null, plainLit("a"))), r, rdf.False},
		{"null_haystack_ends", Must(New(KindStrEnds, null, plainLit("hello"))), r, rdf.False},
		{"null_needle", Must(New(KindContains, varA, null)), r, rdf.True},
		{"tagged_haystack", Must(New(KindContains, langLit("foobar", "en"), plainLit("bar"))), nil, rdf.True},
		{"absent_haystack", Must(New(KindContains, varB, plainLit("a"))), r, nil},
		{"numeric_haystack", Must(New(KindContains, twentyFive, plainLit("2"))), nil, nil},
	}

	runCases(t, e, tests)
}

func TestEvaluator_StrAndStrLen(t *testing.T) {
	e := newTestEvaluator(t)

	tests := []evalCase{
		{"str_iri", Must(New(KindStr, item)), nil, rdf.NewPlainLiteral("http://example.org/item")},
		{"str_typed", Must(New(KindStr, twentyFive)), nil, rdf.NewPlainLiteral("25")},
		{"str_drops_language", Must(New(KindStr, helloEN)), nil, rdf.NewPlainLiteral("hello")},
		{"str_blank_node", Must(New(KindStr, NewConstant(rdf.NewBlankNode("b1")))), nil, nil},
		{"strlen_counts_characters", Must(New(KindStrLen, plainLit("café"))), nil, rdf.NewIntegerLiteral(4)},
		{"strlen_tagged", Must(New(KindStrLen, helloEN)), nil, rdf.NewIntegerLiteral(5)},
		{"strlen_null", Must(New(KindStrLen, varA)), row(nil, "?A"), rdf.NewIntegerLiteral(0)},
		{"strlen_numeric", Must(New(KindStrLen, twentyFive)), nil, nil},
	}

	runCases(t, e, tests)
}

func TestEvaluator_Concat(t *testing.T) {
	e := newTestEvaluator(t)

	tests := []evalCase{
		{"shared_language", Must(New(KindConcat, langLit("a", "en"), langLit("b", "EN"))), nil, rdf.NewLangLiteral("ab", "en")},
		{"mixed_languages", Must(New(KindConcat, langLit("a", "en"), langLit("b", "fr"))), nil, rdf.NewPlainLiteral("ab")},
		{"language_and_simple", Must(New(KindConcat, langLit("a", "en"), plainLit("b"))), nil, rdf.NewPlainLiteral("ab")},
		{"all_xsd_string", Must(New(KindConcat, stringLit("a"), stringLit("b"))), nil, rdf.NewStringLiteral("ab")},
		{"xsd_string_and_plain", Must(New(KindConcat, stringLit("a"), plainLit("b"))), nil, rdf.NewPlainLiteral("ab")},
		{"iri_operand", Must(New(KindConcat, item, plainLit("#x"))), nil, rdf.NewPlainLiteral("http://example.org/item#x")},
		{"absent_operand_is_empty", Must(New(KindConcat, plainLit("x"), varA)), nil, rdf.NewPlainLiteral("x")},
		{"numeric_operand", Must(New(KindConcat, plainLit("x"), twentyFive)), nil, nil},
		{"single", Must(New(KindConcat, helloEN)), nil, rdf.NewLangLiteral("hello", "en-US")},
	}

	runCases(t, e, tests)
}

func TestEvaluator_StrBeforeAfter(t *testing.T) {
	e := newTestEvaluator(t)
	abc := langLit("abc", "en")

	tests := []evalCase{
		{"before_keeps_language", Must(New(KindStrBefore, abc, plainLit("b"))), nil, rdf.NewLangLiteral("a", "en")},
		{"after_keeps_language", Must(New(KindStrAfter, abc, langLit("b", "en"))), nil, rdf.NewLangLiteral("c", "en")},
		{"before_missing_needle", Must(New(KindStrBefore, plainLit("abc"), plainLit("z"))), nil, rdf.NewPlainLiteral("")},
		{"after_empty_needle", Must(New(KindStrAfter, abc, plainLit(""))), nil, rdf.NewLangLiteral("abc", "en")},
		{"before_xsd_string", Must(New(KindStrBefore, stringLit("abc"), plainLit("c"))), nil, rdf.NewStringLiteral("ab")},
		{"incompatible_languages", Must(New(KindStrAfter, abc, langLit("b", "fr"))), nil, nil},
		{"tagged_needle_simple_haystack", Must(New(KindStrBefore, plainLit("abc"), langLit("b", "en"))), nil, nil},
	}

	runCases(t, e, tests)
}

func TestEvaluator_Substr(t *testing.T) {
	e := newTestEvaluator(t)
	digits := plainLit("12345")
	dec := func(s string) Constant { return typedLit(s, vocabulary.XSDDecimal) }
	num := func(s string) Constant { return typedLit(s, vocabulary.XSDInteger) }

	tests := []evalCase{
		{"rounded_bounds", Must(New(KindSubstr, digits, dec("1.5"), dec("2.6"))), nil, rdf.NewPlainLiteral("234")},
		{"start_zero", Must(New(KindSubstr, digits, num("0"), num("3"))), nil, rdf.NewPlainLiteral("12")},
		{"no_length", Must(New(KindSubstr, digits, num("3"))), nil, rdf.NewPlainLiteral("345")},
		{"past_end", Must(New(KindSubstr, digits, num("9"))), nil, rdf.NewPlainLiteral("")},
		{"negative_length", Must(New(KindSubstr, digits, num("2"), num("-1"))), nil, rdf.NewPlainLiteral("")},
		{"characters_not_bytes", Must(New(KindSubstr, langLit("café", "fr"), num("4"), num("1"))), nil, rdf.NewLangLiteral("é", "fr")},
		{"non_numeric_start", Must(New(KindSubstr, digits, plainLit("1"))), nil, nil},
	}

	runCases(t, e, tests)
}

func TestEvaluator_CaseAndEncoding(t *testing.T) {
	e := newTestEvaluator(t)

	tests := []evalCase{
		{"ucase", Must(New(KindUCase, plainLit("foo"))), nil, rdf.NewPlainLiteral("FOO")},
		{"ucase_keeps_language", Must(New(KindUCase, helloEN)), nil, rdf.NewLangLiteral("HELLO", "en-US")},
		{"ucase_turkish", Must(New(KindUCase, langLit("i", "tr"))), nil, rdf.NewLangLiteral("İ", "tr")},
		{"lcase_xsd_string", Must(New(KindLCase, stringLit("BAR"))), nil, rdf.NewStringLiteral("bar")},
		{"lcase_numeric", Must(New(KindLCase, twentyFive)), nil, nil},
		{"encode_space", Must(New(KindEncodeForURI, plainLit("Los Angeles"))), nil, rdf.NewPlainLiteral("Los%20Angeles")},
		{"encode_multibyte", Must(New(KindEncodeForURI, langLit("café", "fr"))), nil, rdf.NewPlainLiteral("caf%C3%A9")},
		{"encode_keeps_unreserved", Must(New(KindEncodeForURI, plainLit("a-b_c.d~e"))), nil, rdf.NewPlainLiteral("a-b_c.d~e")},
		{"encode_reserved", Must(New(KindEncodeForURI, plainLit("a/b?c"))), nil, rdf.NewPlainLiteral("a%2Fb%3Fc")},
	}

	runCases(t, e, tests)
}

func TestEvaluator_RegexAndReplace(t *testing.T) {
	e := newTestEvaluator(t)
	r := row(map[string]string{"?A": "Alice"})

	tests := []evalCase{
		{"regex_match", Must(NewRegex(varA, "^Ali", "")), r, rdf.True},
		{"regex_case_sensitive", Must(NewRegex(varA, "^ali", "")), r, rdf.False},
		{"regex_ignore_case", Must(NewRegex(varA, "^ali", "i")), r, rdf.True},
		{"regex_extended", Must(NewRegex(varA, "A l i", "x")), r, rdf.True},
		{"regex_dot_all", Must(NewRegex(plainLit("a\nb"), "a.b", "s")), nil, rdf.True},
		{"regex_multi_line", Must(NewRegex(plainLit("a\nb"), "^b$", "m")), nil, rdf.True},
		{"regex_iri_string_value", Must(NewRegex(item, "example", "")), nil, rdf.True},
		{"regex_absent", Must(NewRegex(varB, "x", "")), r, nil},
		{"regex_blank_node", Must(NewRegex(NewConstant(rdf.NewBlankNode("b1")), "b1", "")), nil, nil},
		{"replace", Must(NewReplace(plainLit("abcd"), "b", "Z", "")), nil, rdf.NewPlainLiteral("aZcd")},
		{"replace_all", Must(NewReplace(plainLit("banana"), "a", "o", "")), nil, rdf.NewPlainLiteral("bonono")},
		{"replace_groups", Must(NewReplace(plainLit("abc"), "(a)(b)", "$2$1", "")), nil, rdf.NewPlainLiteral("bac")},
		{"replace_escaped_dollar", Must(NewReplace(plainLit("cost"), "cost", `\$5`, "")), nil, rdf.NewPlainLiteral("$5")},
		{"replace_keeps_language", Must(NewReplace(helloEN, "l+", "L", "")), nil, rdf.NewLangLiteral("heLo", "en-US")},
		{"replace_ignore_case", Must(NewReplace(plainLit("ABC"), "b", "-", "i")), nil, rdf.NewPlainLiteral("A-C")},
		{"replace_numeric", Must(NewReplace(twentyFive, "2", "3", "")), nil, nil},
	}

	runCases(t, e, tests)
}
