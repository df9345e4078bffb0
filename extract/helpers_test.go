package extract_test

import (
	"testing"

	"github.com/fwojciec/chatlens"
	"github.com/fwojciec/chatlens/goquery"
	"github.com/stretchr/testify/require"
)

// parse returns the document root of html.
func parse(t *testing.T, html string) chatlens.Node {
	t.Helper()

	root, err := goquery.NewPage("test", html).Root()
	require.NoError(t, err)
	return root
}

// extractMessages runs strategy against html and returns the messages.
func extractMessages(t *testing.T, strategy chatlens.Strategy, html string) []chatlens.Message {
	t.Helper()

	conv, err := strategy.Extract(parse(t, html))
	require.NoError(t, err)
	require.NotNil(t, conv)
	return conv.Messages
}

func user(content string) chatlens.Message {
	return chatlens.Message{Role: chatlens.RoleUser, Content: content}
}

func model(content string) chatlens.Message {
	return chatlens.Message{Role: chatlens.RoleModel, Content: content}
}
