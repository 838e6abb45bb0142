package expression

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/c360/semsparql/pkg/cache"
)

const (
	maxPatternLength = 1000
	maxPatternNest   = 8
	maxRepeatCount   = 1000
)

// patternCache shares compiled patterns between trees built from the same
// query text.
var patternCache cache.Cache[*compiledPattern]

func init() {
	var err error
	patternCache, err = cache.NewLRU[*compiledPattern](256)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize pattern cache: %v", err))
	}
}

var repeatCount = regexp.MustCompile(`\{([0-9]+)`)

// compiledPattern is a REGEX or REPLACE pattern with its flags.
type compiledPattern struct {
	source string
	flags  string
	re     *regexp.Regexp
}

// canonicalFlags orders the flags i, s, m, x and rejects anything else.
func canonicalFlags(flags string) (string, error) {
	var seen [4]bool
	for _, f := range flags {
		switch f {
		case 'i':
			seen[0] = true
		case 's':
			seen[1] = true
		case 'm':
			seen[2] = true
		case 'x':
			seen[3] = true
		default:
			return "", fmt.Errorf("unsupported regex flag %q", f)
		}
	}
	var b strings.Builder
	for i, f := range "ismx" {
		if seen[i] {
			b.WriteRune(f)
		}
	}
	return b.String(), nil
}

// compilePattern returns the cached pattern for (pattern, flags), compiling
// it on a miss.
func compilePattern(pattern, flags string) (*compiledPattern, error) {
	canonical, err := canonicalFlags(flags)
	if err != nil {
		return nil, err
	}
	return cache.GetOrCreate(patternCache, canonical+"/"+pattern, func() (*compiledPattern, error) {
		if err := validatePatternComplexity(pattern); err != nil {
			return nil, err
		}
		source := pattern
		if strings.Contains(canonical, "x") {
			source = stripPatternWhitespace(source)
		}
		if inline := strings.ReplaceAll(canonical, "x", ""); inline != "" {
			source = "(?" + inline + ")" + source
		}
		re, err := regexp.Compile(source)
		if err != nil {
			return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
		}
		return &compiledPattern{source: pattern, flags: canonical, re: re}, nil
	})
}

// stripPatternWhitespace implements the x flag: whitespace outside
// character classes is removed unless escaped.
func stripPatternWhitespace(pattern string) string {
	var b strings.Builder
	inClass, escaped := false, false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '[':
			inClass = true
		case r == ']':
			inClass = false
		case !inClass && (r == ' ' || r == '\t' || r == '\n' || r == '\r'):
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// validatePatternComplexity rejects patterns too large to compile cheaply.
// RE2 matching is linear, so the limits bound compile cost and memory.
func validatePatternComplexity(pattern string) error {
	if len(pattern) > maxPatternLength {
		return fmt.Errorf("regex pattern too long (max %d chars): %d chars", maxPatternLength, len(pattern))
	}

	for _, m := range repeatCount.FindAllStringSubmatch(pattern, -1) {
		if n, err := strconv.Atoi(m[1]); err != nil || n >= maxRepeatCount {
			return fmt.Errorf("regex pattern contains excessive repetition count (>= %d)", maxRepeatCount)
		}
	}

	nest, deepest := 0, 0
	for _, ch := range pattern {
		switch ch {
		case '(':
			nest++
			if nest > deepest {
				deepest = nest
			}
		case ')':
			nest--
		}
	}
	if deepest > maxPatternNest {
		return fmt.Errorf("regex pattern has excessive nesting depth (max %d levels)", maxPatternNest)
	}
	return nil
}

// sparqlReplacement rewrites $n group references as ${n} so that a digit
// following the reference is not read as part of the group name. \$ and \\
// escape a literal dollar and backslash.
func sparqlReplacement(replacement string) (string, error) {
	var b strings.Builder
	for i := 0; i < len(replacement); i++ {
		c := replacement[i]
		switch {
		case c == '\\':
			if i+1 >= len(replacement) || (replacement[i+1] != '$' && replacement[i+1] != '\\') {
				return "", fmt.Errorf("invalid escape in replacement %q", replacement)
			}
			i++
			if replacement[i] == '$' {
				b.WriteString("$$")
			} else {
				b.WriteByte('\\')
			}
		case c == '$':
			j := i + 1
			for j < len(replacement) && replacement[j] >= '0' && replacement[j] <= '9' {
				j++
			}
			if j == i+1 {
				return "", fmt.Errorf("dangling $ in replacement %q", replacement)
			}
			b.WriteString("${" + replacement[i+1:j] + "}")
			i = j - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String(), nil
}
