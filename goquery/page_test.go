package goquery_test

import (
	"testing"

	"github.com/fwojciec/chatlens/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPage_Root(t *testing.T) {
	t.Parallel()

	t.Run("returns host and root", func(t *testing.T) {
		t.Parallel()

		page := goquery.NewPage("chatgpt.com", `<html><body><p>hi</p></body></html>`)

		root, err := page.Root()

		require.NoError(t, err)
		assert.Equal(t, "chatgpt.com", page.Host())
		assert.Equal(t, "hi", root.Text())
	})
}

func TestNode_Find(t *testing.T) {
	t.Parallel()

	html := `<html><body>
<div class="msg a" data-role="user">one</div>
<section><div class="msg b">two</div></section>
<div class="msg c" data-role="">three</div>
</body></html>`

	root, err := goquery.NewPage("x", html).Root()
	require.NoError(t, err)

	t.Run("returns matches in document order", func(t *testing.T) {
		t.Parallel()

		nodes := root.Find(".msg")

		require.Len(t, nodes, 3)
		assert.Equal(t, "one", nodes[0].Text())
		assert.Equal(t, "two", nodes[1].Text())
		assert.Equal(t, "three", nodes[2].Text())
	})

	t.Run("combined selector keeps document order", func(t *testing.T) {
		t.Parallel()

		nodes := root.Find(".c, .a")

		require.Len(t, nodes, 2)
		assert.Equal(t, "one", nodes[0].Text())
		assert.Equal(t, "three", nodes[1].Text())
	})

	t.Run("invalid selector matches nothing", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, root.Find("[[["))
	})

	t.Run("reads attributes", func(t *testing.T) {
		t.Parallel()

		nodes := root.Find(".msg")
		require.Len(t, nodes, 3)

		v, ok := nodes[0].Attr("data-role")
		assert.True(t, ok)
		assert.Equal(t, "user", v)

		_, ok = nodes[1].Attr("data-role")
		assert.False(t, ok)

		v, ok = nodes[2].Attr("data-role")
		assert.True(t, ok)
		assert.Empty(t, v)
	})

	t.Run("tests class membership by token", func(t *testing.T) {
		t.Parallel()

		nodes := root.Find(".msg")
		require.Len(t, nodes, 3)

		assert.True(t, nodes[0].HasClass("a"))
		assert.False(t, nodes[0].HasClass("ms"))
	})
}

func TestNode_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		html string
		want string
	}{
		{
			name: "collapses inline whitespace",
			html: "<div>  hello \n\t  <b>big</b>   world  </div>",
			want: "hello big world",
		},
		{
			name: "puts blocks on their own lines",
			html: "<div><div>You</div><div>What is Go?</div></div>",
			want: "You\nWhat is Go?",
		},
		{
			name: "separates paragraphs with a blank line",
			html: "<div><p>one</p><p>two</p></div>",
			want: "one\n\ntwo",
		},
		{
			name: "breaks lines at br",
			html: "<div>a<br>b<br/>c</div>",
			want: "a\nb\nc",
		},
		{
			name: "preserves pre formatting",
			html: "<div><pre>func main() {\n    fmt.Println(1)\n}</pre></div>",
			want: "func main() {\n    fmt.Println(1)\n}",
		},
		{
			name: "skips script style and hidden",
			html: "<div>shown<script>var x = 1</script><style>.a{}</style><span hidden>secret</span></div>",
			want: "shown",
		},
		{
			name: "renders list items",
			html: "<ul><li>first</li><li>second</li></ul>",
			want: "first\nsecond",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			root, err := goquery.NewPage("x", "<html><body>"+tt.html+"</body></html>").Root()
			require.NoError(t, err)

			nodes := root.Find("body > *")
			require.NotEmpty(t, nodes)
			assert.Equal(t, tt.want, nodes[0].Text())
		})
	}
}

func TestParser_Parse(t *testing.T) {
	t.Parallel()

	page, err := goquery.NewParser().Parse("claude.ai", "<div class='font-user-message'>hi</div>")

	require.NoError(t, err)
	assert.Equal(t, "claude.ai", page.Host())
}
