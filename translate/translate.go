// Package translate resolves message ids from YAML catalogs keyed by
// language. The first language of a catalog is its default.
package translate

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ErrEmptyCatalog is returned for a catalog without languages.
var ErrEmptyCatalog = errors.New("translate: catalog has no language")

// Catalog holds messages per language.
type Catalog struct {
	tags     []language.Tag
	messages []map[string]string
	matcher  language.Matcher
}

// Load reads a catalog file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	return Parse(data)
}

// Parse decodes a YAML catalog of the form
//
//	en:
//	  report.title: "Calculation %id%"
//	fr:
//	  report.title: "Calcul %id%"
func Parse(data []byte) (*Catalog, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, ErrEmptyCatalog
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("translate: line %d: catalog must be a mapping of languages", root.Line)
	}
	c := &Catalog{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		tag, err := language.Parse(key.Value)
		if err != nil {
			return nil, fmt.Errorf("translate: line %d: language %q: %w", key.Line, key.Value, err)
		}
		var msgs map[string]string
		if err := value.Decode(&msgs); err != nil {
			return nil, fmt.Errorf("translate: language %s: %w", tag, err)
		}
		c.add(tag, msgs)
	}
	if len(c.tags) == 0 {
		return nil, ErrEmptyCatalog
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// New builds a catalog from messages. default is the fallback language.
func New(def language.Tag, messages map[language.Tag]map[string]string) *Catalog {
	c := &Catalog{}
	c.add(def, messages[def])
	for tag, msgs := range messages {
		if tag != def {
			c.add(tag, msgs)
		}
	}
	c.matcher = language.NewMatcher(c.tags)
	return c
}

func (c *Catalog) add(tag language.Tag, msgs map[string]string) {
	for i, t := range c.tags {
		if t == tag {
			for k, v := range msgs {
				c.messages[i][k] = v
			}
			return
		}
	}
	m := make(map[string]string, len(msgs))
	for k, v := range msgs {
		m[k] = v
	}
	c.tags = append(c.tags, tag)
	c.messages = append(c.messages, m)
}

// Languages returns the catalog languages, default first.
func (c *Catalog) Languages() []language.Tag { return c.tags }

// Translator returns a translator for the language best matching locale.
// Unknown or unparsable locales select the default language.
func (c *Catalog) Translator(locale string) *Translator {
	idx := 0
	if tag, err := language.Parse(locale); err == nil {
		_, idx, _ = c.matcher.Match(tag)
	}
	t := &Translator{tag: c.tags[idx], messages: c.messages[idx]}
	if idx != 0 {
		t.fallback = c.messages[0]
	}
	return t
}

// Translator resolves ids for one language.
type Translator struct {
	tag      language.Tag
	messages map[string]string
	fallback map[string]string
}

// Language returns the selected language.
func (t *Translator) Language() language.Tag { return t.tag }

// Trans returns the message for id with %name% placeholders replaced by
// params. Parameter keys may be given with or without the percent signs.
// Missing ids fall back to the default language, then to id itself.
func (t *Translator) Trans(id string, params map[string]string) string {
	msg, ok := t.messages[id]
	if !ok {
		if msg, ok = t.fallback[id]; !ok {
			msg = id
		}
	}
	if len(params) == 0 {
		return msg
	}
	pairs := make([]string, 0, 2*len(params))
	for k, v := range params {
		if !strings.HasPrefix(k, "%") {
			k = "%" + k + "%"
		}
		pairs = append(pairs, k, v)
	}
	return strings.NewReplacer(pairs...).Replace(msg)
}
