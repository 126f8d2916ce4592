package markdown

import (
	"strings"
	"testing"
)

func TestPolicyStripsExecutableContent(t *testing.T) {
	input := `<p onclick="steal()">Hi <a href="javascript:alert(1)" onmouseover="x()" title="t">link</a>` +
		`<img src="x" onerror="alert(1)"><script>alert(2)</script><style>p{}</style></p>` +
		`<iframe src="https://evil.example"></iframe><form><input value="x"></form>`

	tree, err := DefaultPolicy().Sanitize([]byte(input))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	got := tree.HTML()

	for _, forbidden := range []string{"onclick", "onmouseover", "onerror", "javascript:", "<script", "alert(2)", "<style", "<img", "<iframe", "<form", "<input"} {
		if strings.Contains(got, forbidden) {
			t.Fatalf("expected %q to be removed, got %q", forbidden, got)
		}
	}
	if got != `<p>Hi <a title="t">link</a></p>` {
		t.Fatalf("unexpected sanitised html %q", got)
	}
}

func TestPolicyProtocols(t *testing.T) {
	cases := []struct {
		href string
		keep bool
	}{
		{href: "https://example.com", keep: true},
		{href: "http://example.com/a:b", keep: true},
		{href: "mailto:me@example.com", keep: true},
		{href: "/blog/css/a", keep: true},
		{href: "#section", keep: true},
		{href: "../relative?x=a:b", keep: true},
		{href: "javascript:alert(1)", keep: false},
		{href: "JaVaScRiPt:alert(1)", keep: false},
		{href: "java\tscript:alert(1)", keep: false},
		{href: "data:text/html;base64,PHNjcmlwdD4=", keep: false},
		{href: "vbscript:msgbox", keep: false},
		{href: "", keep: false},
	}
	policy := DefaultPolicy()
	for _, tc := range cases {
		if got := policy.allowedURL(tc.href); got != tc.keep {
			t.Fatalf("%q: expected keep=%v, got %v", tc.href, tc.keep, got)
		}
	}
}

func TestPolicyUnwrapsUnknownElements(t *testing.T) {
	tree, err := DefaultPolicy().Sanitize([]byte(`<section><p>kept <sup>1</sup> <u>text</u></p></section>`))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	if got := tree.HTML(); got != `<p>kept 1 text</p>` {
		t.Fatalf("unexpected html %q", got)
	}
}

func TestPolicyAttributeAllowList(t *testing.T) {
	input := `<h2 id="x" class="big" style="color:red">Title</h2>` +
		`<a href="https://example.com" rel="noopener" target="_blank" class="c">go</a>` +
		`<p lang="en" id="clobber">text</p>`

	tree, err := DefaultPolicy().Sanitize([]byte(input))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	want := `<h2 id="x">Title</h2><a href="https://example.com" rel="noopener">go</a><p lang="en">text</p>`
	if got := tree.HTML(); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestPolicyLiftsCodeBlocks(t *testing.T) {
	input := `<pre><code class="language-go" onclick="x()">fmt.Println(&quot;&lt;hi&gt;&quot;)
</code></pre>`

	tree, err := DefaultPolicy().Sanitize([]byte(input))
	if err != nil {
		t.Fatalf("Sanitize: %v", err)
	}
	blocks := tree.CodeBlocks()
	if len(blocks) != 1 {
		t.Fatalf("expected one code block, got %d", len(blocks))
	}
	block := blocks[0]
	if block.Language != "go" || block.Class != "language-go" {
		t.Fatalf("unexpected language %q class %q", block.Language, block.Class)
	}
	if block.Text != "fmt.Println(\"<hi>\")\n" {
		t.Fatalf("expected raw code, got %q", block.Text)
	}
	if got := tree.HTML(); got != `<pre class="language-go"><code class="language-go">fmt.Println(&#34;&lt;hi&gt;&#34;)`+"\n"+`</code></pre>` {
		t.Fatalf("unexpected code html %q", got)
	}
}
