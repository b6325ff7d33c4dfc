// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package expr

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ebay/sparqlcore/rdf/value"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// String functions.
var (
	StrLen = register(&Function{Name: "STRLEN", MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			s, err := stringArg("STRLEN", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewInteger(int64(utf8.RuneCountInString(s))), nil
		}})
	SubStr = register(&Function{Name: "SUBSTR", MinArgs: 2, MaxArgs: 3, Eval: evalSubStr})
	UCase  = register(&Function{Name: "UCASE", MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return changeCase("UCASE", args[0], cases.Upper)
		}})
	LCase = register(&Function{Name: "LCASE", MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return changeCase("LCASE", args[0], cases.Lower)
		}})
	StrStarts = register(stringTest("STRSTARTS", strings.HasPrefix))
	StrEnds   = register(stringTest("STRENDS", strings.HasSuffix))
	Contains  = register(stringTest("CONTAINS", strings.Contains))
	StrBefore = register(&Function{Name: "STRBEFORE", MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return split("STRBEFORE", args, func(s string, i, n int) string { return s[:i] })
		}})
	StrAfter = register(&Function{Name: "STRAFTER", MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			return split("STRAFTER", args, func(s string, i, n int) string { return s[i+n:] })
		}})
	Concat       = register(&Function{Name: "CONCAT", MinArgs: 0, MaxArgs: -1, Eval: evalConcat})
	LangMatches  = register(&Function{Name: "LANGMATCHES", MinArgs: 2, MaxArgs: 2, Eval: evalLangMatches})
	Regex        = register(&Function{Name: "REGEX", MinArgs: 2, MaxArgs: 3, Eval: evalRegex})
	Replace      = register(&Function{Name: "REPLACE", MinArgs: 3, MaxArgs: 4, Eval: evalReplace})
	EncodeForURI = register(&Function{Name: "ENCODE_FOR_URI", MinArgs: 1, MaxArgs: 1,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			s, err := stringArg("ENCODE_FOR_URI", args[0])
			if err != nil {
				return nil, err
			}
			return value.NewString(encodeForURI(s)), nil
		}})
)

// stringArg returns the lexical form of a simple, xsd:string, or
// language-tagged literal.
func stringArg(fn string, v *value.Value) (string, error) {
	if !v.IsStringLiteral() {
		return "", value.Errorf("%v: %v is not a string literal", fn, v)
	}
	return v.Str(), nil
}

// likeString returns a string literal of the same kind as v: language-tagged
// with v's tag, xsd:string, or simple.
func likeString(v *value.Value, s string) *value.Value {
	switch {
	case v.Kind() == value.KindLangString:
		return value.NewLangString(s, v.Lang())
	case v.IsTypedString():
		return value.NewTypedString(s)
	}
	return value.NewString(s)
}

// compatibleArgs returns the lexical forms of two string literal arguments
// if they're compatible: both simple or xsd:string, both language-tagged with
// the same tag, or the first language-tagged and the second not.
func compatibleArgs(fn string, a, b *value.Value) (string, string, error) {
	as, err := stringArg(fn, a)
	if err != nil {
		return "", "", err
	}
	bs, err := stringArg(fn, b)
	if err != nil {
		return "", "", err
	}
	if b.Kind() == value.KindLangString && (a.Kind() != value.KindLangString || !strings.EqualFold(a.Lang(), b.Lang())) {
		return "", "", value.Errorf("%v: incompatible arguments %v and %v", fn, a, b)
	}
	return as, bs, nil
}

func stringTest(name string, test func(s, sub string) bool) *Function {
	return &Function{Name: name, MinArgs: 2, MaxArgs: 2,
		Eval: func(env *Env, args []*value.Value) (*value.Value, error) {
			s, sub, err := compatibleArgs(name, args[0], args[1])
			if err != nil {
				return nil, err
			}
			return value.NewBoolean(test(s, sub)), nil
		}}
}

// split implements STRBEFORE and STRAFTER. If the second argument doesn't
// occur in the first, the result is the empty simple literal.
func split(fn string, args []*value.Value, part func(s string, i, n int) string) (*value.Value, error) {
	s, sep, err := compatibleArgs(fn, args[0], args[1])
	if err != nil {
		return nil, err
	}
	i := strings.Index(s, sep)
	if i < 0 {
		return value.NewString(""), nil
	}
	return likeString(args[0], part(s, i, len(sep))), nil
}

// roundHalfUp rounds to the nearest integer, with halves rounded towards
// positive infinity.
func roundHalfUp(f float64) float64 {
	return math.Floor(f + 0.5)
}

// evalSubStr returns the characters at 1-based positions p where
// round(start) <= p < round(start) + round(length).
func evalSubStr(env *Env, args []*value.Value) (*value.Value, error) {
	s, err := stringArg("SUBSTR", args[0])
	if err != nil {
		return nil, err
	}
	for _, arg := range args[1:] {
		if !arg.IsNumeric() {
			return nil, value.Errorf("SUBSTR: %v is not numeric", arg)
		}
	}
	first := roundHalfUp(args[1].Float())
	end := math.Inf(1)
	if len(args) == 3 {
		end = first + roundHalfUp(args[2].Float())
	}
	var b strings.Builder
	pos := 1.0
	for _, r := range s {
		if pos >= first && pos < end {
			b.WriteRune(r)
		}
		pos++
	}
	return likeString(args[0], b.String()), nil
}

// changeCase maps the string with a caser for the literal's language, if it
// has a valid one.
func changeCase(fn string, v *value.Value, caser func(language.Tag, ...cases.Option) cases.Caser) (*value.Value, error) {
	s, err := stringArg(fn, v)
	if err != nil {
		return nil, err
	}
	tag := language.Und
	if v.Lang() != "" {
		if t, err := language.Parse(v.Lang()); err == nil {
			tag = t
		}
	}
	c := caser(tag)
	return likeString(v, c.String(s)), nil
}

// evalConcat joins its arguments. The result keeps a language tag or the
// xsd:string datatype only if every argument has it.
func evalConcat(env *Env, args []*value.Value) (*value.Value, error) {
	var b strings.Builder
	allTyped, allLang := len(args) > 0, len(args) > 0
	lang := ""
	for i, arg := range args {
		s, err := stringArg("CONCAT", arg)
		if err != nil {
			return nil, err
		}
		b.WriteString(s)
		allTyped = allTyped && arg.IsTypedString()
		if i == 0 {
			lang = arg.Lang()
		}
		allLang = allLang && arg.Lang() != "" && strings.EqualFold(arg.Lang(), lang)
	}
	switch {
	case allLang:
		return value.NewLangString(b.String(), lang), nil
	case allTyped:
		return value.NewTypedString(b.String()), nil
	}
	return value.NewString(b.String()), nil
}

// evalLangMatches implements RFC 4647 basic filtering of a language tag by a
// language range.
func evalLangMatches(env *Env, args []*value.Value) (*value.Value, error) {
	tag, err := plainString("LANGMATCHES", args[0])
	if err != nil {
		return nil, err
	}
	rng, err := plainString("LANGMATCHES", args[1])
	if err != nil {
		return nil, err
	}
	if rng == "*" {
		return value.NewBoolean(tag != ""), nil
	}
	match := strings.EqualFold(tag, rng) ||
		(len(tag) > len(rng) && tag[len(rng)] == '-' && strings.EqualFold(tag[:len(rng)], rng))
	return value.NewBoolean(match), nil
}

// compileRegex compiles an XPath regular expression with the given flags.
func compileRegex(env *Env, fn string, pattern, flags string) (*regexp.Regexp, error) {
	key := flags + "/" + pattern
	if re, ok := env.cachedRegexp(key); ok {
		return re, nil
	}
	var prefix strings.Builder
	for _, flag := range flags {
		switch flag {
		case 'i', 's', 'm':
			if prefix.Len() == 0 {
				prefix.WriteString("(?")
			}
			prefix.WriteRune(flag)
		case 'x':
			pattern = stripRegexSpace(pattern)
		case 'q':
			pattern = regexp.QuoteMeta(pattern)
		default:
			return nil, value.Errorf("%v: invalid flag %q", fn, flag)
		}
	}
	if prefix.Len() > 0 {
		prefix.WriteByte(')')
	}
	re, err := regexp.Compile(prefix.String() + pattern)
	if err != nil {
		return nil, value.Errorf("%v: invalid pattern %q: %v", fn, pattern, err)
	}
	env.cacheRegexp(key, re)
	return re, nil
}

// stripRegexSpace removes whitespace outside of character classes, as the
// XPath 'x' flag does.
func stripRegexSpace(pattern string) string {
	var b strings.Builder
	inClass := false
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\\' && i+1 < len(pattern):
			b.WriteByte(c)
			i++
			b.WriteByte(pattern[i])
			continue
		case c == '[':
			inClass = true
		case c == ']':
			inClass = false
		case !inClass && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

func evalRegex(env *Env, args []*value.Value) (*value.Value, error) {
	text, err := stringArg("REGEX", args[0])
	if err != nil {
		return nil, err
	}
	re, err := patternArgs(env, "REGEX", args[1:])
	if err != nil {
		return nil, err
	}
	return value.NewBoolean(re.MatchString(text)), nil
}

// patternArgs compiles the pattern and optional flags arguments of REGEX and
// REPLACE.
func patternArgs(env *Env, fn string, args []*value.Value) (*regexp.Regexp, error) {
	pattern, err := plainString(fn, args[0])
	if err != nil {
		return nil, err
	}
	flags := ""
	if len(args) > 1 {
		flags, err = plainString(fn, args[1])
		if err != nil {
			return nil, err
		}
	}
	return compileRegex(env, fn, pattern, flags)
}

func evalReplace(env *Env, args []*value.Value) (*value.Value, error) {
	text, err := stringArg("REPLACE", args[0])
	if err != nil {
		return nil, err
	}
	replacement, err := plainString("REPLACE", args[2])
	if err != nil {
		return nil, err
	}
	patternAndFlags := []*value.Value{args[1]}
	if len(args) == 4 {
		patternAndFlags = append(patternAndFlags, args[3])
	}
	re, err := patternArgs(env, "REPLACE", patternAndFlags)
	if err != nil {
		return nil, err
	}
	if re.MatchString("") {
		return nil, value.Errorf("REPLACE: pattern %v matches the empty string", args[1])
	}
	repl, err := goReplacement(replacement, re.NumSubexp())
	if err != nil {
		return nil, err
	}
	return likeString(args[0], re.ReplaceAllString(text, repl)), nil
}

// goReplacement converts an XPath replacement string, which uses $N for
// groups and backslash escapes, to the regexp package's syntax. As in XPath,
// a group reference takes as many digits as still name one of the pattern's
// groups, so with fewer than ten groups "$10" is group 1 followed by "0".
func goReplacement(s string, groups int) (string, error) {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 == len(s) || (s[i+1] != '\\' && s[i+1] != '$') {
				return "", value.Errorf("REPLACE: invalid escape in replacement %q", s)
			}
			i++
			if s[i] == '$' {
				b.WriteString("$$")
			} else {
				b.WriteByte('\\')
			}
		case '$':
			if i+1 == len(s) || !isDigit(s[i+1]) {
				return "", value.Errorf("REPLACE: '$' not followed by a group number in %q", s)
			}
			n := int(s[i+1] - '0')
			j := i + 2
			for j < len(s) && isDigit(s[j]) && n*10+int(s[j]-'0') <= groups {
				n = n*10 + int(s[j]-'0')
				j++
			}
			b.WriteString("${")
			b.WriteString(strconv.Itoa(n))
			b.WriteByte('}')
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// encodeForURI percent-encodes every byte except the RFC 3986 unreserved
// characters.
func encodeForURI(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9',
			c == '-', c == '_', c == '.', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&15])
		}
	}
	return b.String()
}
