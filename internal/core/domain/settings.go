package domain

import (
	"bufio"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Well known setting keys.
const (
	SettingOtherLDFlags                = "OTHER_LDFLAGS"
	SettingFrameworkSearchPaths        = "FRAMEWORK_SEARCH_PATHS"
	SettingLibrarySearchPaths          = "LIBRARY_SEARCH_PATHS"
	SettingOtherSwiftFlags             = "OTHER_SWIFT_FLAGS"
	SettingHeaderSearchPaths           = "HEADER_SEARCH_PATHS"
	SettingOtherCFlags                 = "OTHER_CFLAGS"
	SettingSwiftVersion                = "SWIFT_VERSION"
	SettingApplicationExtensionAPIOnly = "APPLICATION_EXTENSION_API_ONLY"
	SettingArchs                       = "ARCHS"
	SettingPodsRoot                    = "PODS_ROOT"
	SettingPodsConfigurationBuildDir   = "PODS_CONFIGURATION_BUILD_DIR"
)

var multiValuedSettings = map[string]bool{
	SettingOtherLDFlags:         true,
	SettingFrameworkSearchPaths: true,
	SettingLibrarySearchPaths:   true,
	SettingOtherSwiftFlags:      true,
	SettingHeaderSearchPaths:    true,
	SettingOtherCFlags:          true,
}

// IsMultiValuedSetting reports whether key holds an append-only token list.
func IsMultiValuedSetting(key string) bool {
	return multiValuedSettings[key]
}

// Settings is a build settings document ("xcconfig").
// Multi-valued keys hold token lists that are only ever extended; a token that is already
// present is never added twice.
type Settings struct {
	values map[string]string
	tokens map[string][]string
}

// NewSettings creates an empty settings document.
func NewSettings() *Settings {
	return &Settings{
		values: make(map[string]string),
		tokens: make(map[string][]string),
	}
}

// Append adds tokens to key in order, skipping tokens already present.
// For single-valued keys the tokens are joined onto the existing value.
func (s *Settings) Append(key string, tokens ...string) {
	if !IsMultiValuedSetting(key) {
		joined := strings.Join(tokens, " ")
		if joined == "" {
			return
		}
		if existing, ok := s.values[key]; ok && existing != "" {
			s.values[key] = existing + " " + joined
			return
		}
		s.values[key] = joined
		return
	}
	list, ok := s.tokens[key]
	for _, t := range tokens {
		if t == "" || slices.Contains(list, t) {
			continue
		}
		list = append(list, t)
	}
	if ok || len(list) > 0 {
		s.tokens[key] = list
	}
}

// Set replaces the value of key. Multi-valued values are tokenized.
func (s *Settings) Set(key, value string) {
	if IsMultiValuedSetting(key) {
		s.tokens[key] = []string{}
		s.Append(key, TokenizeSetting(key, value)...)
		return
	}
	s.values[key] = value
}

// Delete removes key.
func (s *Settings) Delete(key string) {
	delete(s.values, key)
	delete(s.tokens, key)
}

// Has reports whether key is present.
func (s *Settings) Has(key string) bool {
	if _, ok := s.values[key]; ok {
		return true
	}
	_, ok := s.tokens[key]
	return ok
}

// Get returns the flat value of key.
func (s *Settings) Get(key string) string {
	if IsMultiValuedSetting(key) {
		return strings.Join(s.tokens[key], " ")
	}
	return s.values[key]
}

// Tokens returns a copy of the token list of key.
func (s *Settings) Tokens(key string) []string {
	if IsMultiValuedSetting(key) {
		return slices.Clone(s.tokens[key])
	}
	return TokenizeSetting(key, s.values[key])
}

// Contains reports whether key holds token.
func (s *Settings) Contains(key, token string) bool {
	return slices.Contains(s.Tokens(key), token)
}

// Keys returns the keys of the document sorted by name.
func (s *Settings) Keys() []string {
	keys := make([]string, 0, len(s.values)+len(s.tokens))
	for k := range s.values {
		keys = append(keys, k)
	}
	for k := range s.tokens {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Merge folds other into s without dropping anything already present. Multi-valued keys
// are appended, single-valued keys are set when absent and extended when they differ.
func (s *Settings) Merge(other *Settings) {
	if other == nil {
		return
	}
	for _, key := range other.Keys() {
		if IsMultiValuedSetting(key) {
			s.Append(key, other.tokens[key]...)
			continue
		}
		value := other.values[key]
		existing, ok := s.values[key]
		switch {
		case !ok:
			s.values[key] = value
		case existing != value:
			s.Append(key, value)
		}
	}
}

// MergeMap merges a flat key/value map, in key order.
func (s *Settings) MergeMap(m map[string]string) {
	other := NewSettings()
	for _, key := range sortedKeys(m) {
		other.Set(key, m[key])
	}
	s.Merge(other)
}

// Clone returns a deep copy of the document.
func (s *Settings) Clone() *Settings {
	c := NewSettings()
	for k, v := range s.values {
		c.values[k] = v
	}
	for k, v := range s.tokens {
		c.tokens[k] = slices.Clone(v)
	}
	return c
}

// Map returns the flat key/value form of the document.
func (s *Settings) Map() map[string]string {
	out := make(map[string]string, len(s.values)+len(s.tokens))
	for _, k := range s.Keys() {
		out[k] = s.Get(k)
	}
	return out
}

// Render returns the document as "KEY = value" lines sorted by key.
func (s *Settings) Render() string {
	var b strings.Builder
	for _, k := range s.Keys() {
		b.WriteString(k)
		b.WriteString(" = ")
		b.WriteString(s.Get(k))
		b.WriteByte('\n')
	}
	return b.String()
}

// ParseSettings parses the rendered form of a document. Blank lines, comments and include
// directives are skipped.
func ParseSettings(text string) (*Settings, error) {
	s := NewSettings()
	sc := bufio.NewScanner(strings.NewReader(text))
	line := 0
	for sc.Scan() {
		line++
		raw := strings.TrimSpace(sc.Text())
		if raw == "" || strings.HasPrefix(raw, "//") || strings.HasPrefix(raw, "#include") {
			continue
		}
		key, value, ok := cutAssignment(raw)
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, zerr.With(ErrMalformedSetting, "line", line)
		}
		s.Set(key, strings.TrimSpace(value))
	}
	if err := sc.Err(); err != nil {
		return nil, zerr.Wrap(err, "failed to scan settings")
	}
	return s, nil
}

// cutAssignment splits line at the first "=" outside a conditional key such as
// EXCLUDED_ARCHS[sdk=iphonesimulator*].
func cutAssignment(line string) (key, value string, ok bool) {
	depth := 0
	for i, r := range line {
		switch r {
		case '[':
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
		case '=':
			if depth == 0 {
				return line[:i], line[i+1:], true
			}
		}
	}
	return line, "", false
}

// TokenizeSetting splits a flat value into tokens. Quoted spans stay within one token and
// linker flags of OTHER_LDFLAGS are normalised to their quoted form.
func TokenizeSetting(key, value string) []string {
	words := splitWords(value)
	if key != SettingOtherLDFlags {
		return words
	}
	out := make([]string, 0, len(words))
	for i := 0; i < len(words); i++ {
		w := words[i]
		switch {
		case (w == "-framework" || w == "-weak_framework") && i+1 < len(words):
			out = append(out, w+" "+quoteWord(words[i+1]))
			i++
		case w == "-l" && i+1 < len(words):
			out = append(out, "-l"+quoteWord(words[i+1]))
			i++
		case strings.HasPrefix(w, "-l") && len(w) > 2:
			out = append(out, "-l"+quoteWord(w[2:]))
		default:
			out = append(out, w)
		}
	}
	return out
}

func quoteWord(w string) string {
	if strings.HasPrefix(w, `"`) && strings.HasSuffix(w, `"`) && len(w) >= 2 {
		return w
	}
	return `"` + w + `"`
}

func splitWords(value string) []string {
	var (
		words  []string
		cur    strings.Builder
		quoted bool
		inWord bool
	)
	for _, r := range value {
		switch {
		case r == '"':
			quoted = !quoted
			inWord = true
			cur.WriteRune(r)
		case (r == ' ' || r == '\t') && !quoted:
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			inWord = true
			cur.WriteRune(r)
		}
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words
}
