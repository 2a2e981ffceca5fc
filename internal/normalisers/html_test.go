package normalisers

import (
	"strings"
	"testing"

	"github.com/custodia-labs/docfinder/internal/core/domain"
)

func TestHTMLNormaliser(t *testing.T) {
	n := &HTMLNormaliser{}

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"simple html", "<p>Hello</p>", "Hello"},
		{"nested tags", "<div><p>Hello</p></div>", "Hello"},
		{"script removal", "<script>alert(1)</script><p>Hello world</p>", "Hello world"},
		{"style removal", "<style>.a{color:red}</style>Text", "Text"},
		{"entity decode", "<p>&amp; &lt; &gt;</p>", "& < >"},
		{"multiple spaces", "<p>Hello     World</p>", "Hello World"},
		{"adjacent blocks keep a separator", "<div>one</div><div>two</div>", "one two"},
		{"inline elements", "<p>Read <b>the</b><i>guide</i></p>", "Read the guide"},
		{"comments dropped", "<p>a<!-- hidden -->b</p>", "a b"},
		{"empty document", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := n.Normalise([]byte(tt.input))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, result)
			}
		})
	}
}

func TestHTMLNormaliser_SkipsPageChrome(t *testing.T) {
	n := &HTMLNormaliser{}

	page := `<!DOCTYPE html>
<html>
<head><title>ADManager Plus datasheet</title><style>body{}</style></head>
<body>
  <header><a href="/">Home</a></header>
  <nav><ul><li>Products</li><li>Pricing</li></ul></nav>
  <main>
    <h1>ADManager Plus</h1>
    <p>Automate   Active Directory
       management.</p>
    <noscript>Enable JavaScript</noscript>
  </main>
  <footer>Copyright</footer>
  <script>track()</script>
</body>
</html>`

	result, err := n.Normalise([]byte(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"ADManager Plus datasheet", "Automate Active Directory management."} {
		if !strings.Contains(result, want) {
			t.Errorf("expected %q in %q", want, result)
		}
	}
	for _, unwanted := range []string{"Home", "Pricing", "Copyright", "track()", "Enable JavaScript", "body{}"} {
		if strings.Contains(result, unwanted) {
			t.Errorf("did not expect %q in %q", unwanted, result)
		}
	}
}

func TestHTMLNormaliser_Metadata(t *testing.T) {
	n := &HTMLNormaliser{}

	if n.Kind() != domain.ContentHTML {
		t.Errorf("expected kind html, got %s", n.Kind())
	}
	if n.Priority() >= 10 {
		t.Errorf("expected fallback priority below 10, got %d", n.Priority())
	}
	for _, ct := range []string{"text/html", "", "application/octet-stream"} {
		if !n.Accepts(ct, "/page") {
			t.Errorf("expected %q to be accepted", ct)
		}
	}
}
