package report

import (
	_ "embed"
	"sync"

	"github.com/laurentmuller/calculation-sub010/translate"
)

//go:embed messages.yaml
var messagesYAML []byte

var (
	messagesOnce sync.Once
	messages     *translate.Catalog
	messagesErr  error
)

// Messages returns the built-in catalog in English, French and German.
func Messages() (*translate.Catalog, error) {
	messagesOnce.Do(func() {
		messages, messagesErr = translate.Parse(messagesYAML)
	})
	return messages, messagesErr
}
