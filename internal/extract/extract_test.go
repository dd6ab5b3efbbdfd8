package extract

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"CrawlerLinkedinAbout/internal/company"
)

func load(t *testing.T, name string) *goquery.Document {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		t.Fatal(err)
	}
	doc, err := Parse(string(b))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func mustParse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := Parse(html)
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func TestField_DefinitionListLayout(t *testing.T) {
	doc := load(t, "about_dl.html")

	want := map[Label]string{
		Website:      "hcltech.com",
		Phone:        "+91 1234567890 ext 2",
		CompanySize:  "10,001+ employees",
		Headquarters: "Noida, Uttar Pradesh",
	}
	for label, w := range want {
		if got := Field(doc, label); got != w {
			t.Errorf("Field(%q) = %q, want %q", label, got, w)
		}
	}
	if got := CompanyName(doc); got != "HCLTech" {
		t.Errorf("CompanyName = %q", got)
	}
}

func TestField_DivLayout(t *testing.T) {
	doc := load(t, "about_divs.html")

	if got := Field(doc, Website); got != "example.org" {
		t.Errorf("Website = %q", got)
	}
	if got := Field(doc, Phone); got != "Call 0800 123 456" {
		t.Errorf("Phone = %q", got)
	}
	// label without a following sibling
	if got := Field(doc, Headquarters); got != company.Unknown {
		t.Errorf("Headquarters = %q, want unknown", got)
	}
	if got := CompanyName(doc); got != company.Unknown {
		t.Errorf("CompanyName = %q, want unknown", got)
	}
}

func TestField_AboutCardIsLastResort(t *testing.T) {
	doc := load(t, "about_card.html")

	// only the About card matches case-insensitively
	if got := Field(doc, CompanySize); got != "51-200 employees" {
		t.Errorf("Company size = %q", got)
	}
	// the generic container strategy runs first and wins
	if got := Field(doc, Headquarters); got != "Not this one" {
		t.Errorf("Headquarters = %q", got)
	}
	if got, ok := AboutCard(doc, Headquarters); !ok || got != "Berlin, Germany" {
		t.Errorf("AboutCard(Headquarters) = %q, %v", got, ok)
	}
}

func TestField_NoMatchIsUnknown(t *testing.T) {
	docs := map[string]*goquery.Document{
		"empty":       mustParse(t, ""),
		"blank body":  mustParse(t, "<html><body></body></html>"),
		"lowercase":   mustParse(t, "<dl><dt>website</dt><dd>x.com</dd><dt>phone</dt><dd>1234567890</dd></dl>"),
		"empty value": mustParse(t, "<dl><dt>Website</dt><dd>  </dd></dl>"),
		"hidden text": mustParse(t, "<body><code>Phone Website Headquarters Company size</code><span>5551234567</span><script>var Phone</script><div>99</div></body>"),
	}
	for name, doc := range docs {
		for _, l := range Labels {
			if got := Field(doc, l); got != company.Unknown {
				t.Errorf("%s: Field(%q) = %q, want unknown", name, l, got)
			}
		}
	}
	if got := Field(nil, Website); got != company.Unknown {
		t.Errorf("nil doc: %q", got)
	}
}

func TestDefinitionList_ExactMatchOnly(t *testing.T) {
	doc := mustParse(t, "<dl><dt>Website address</dt><dd>wrong.com</dd><dt>Website</dt><dd>right.com</dd></dl>")
	got, ok := DefinitionList(doc, Website)
	if !ok || got != "right.com" {
		t.Errorf("DefinitionList = %q, %v", got, ok)
	}
}

func TestContainer_SkipsToNextCandidate(t *testing.T) {
	doc := mustParse(t, `<body><div><div>Phone</div></div><div><div>Phone</div><div>+1 (415) 5550100999</div></div></body>`)
	got, ok := Container(doc, Phone)
	if !ok || got != "+1 (415) 5550100999" {
		t.Errorf("Container = %q, %v", got, ok)
	}
}

func TestContainer_OnlyDivsAreCandidates(t *testing.T) {
	doc := mustParse(t, `<body>
<nav><a>Website builder</a><a>Pricing</a></nav>
<p>Website</p><span>not-a-div.com</span>
<code>Website</code><div>tracking</div>
<div class="org-page-details"><div>Website</div><span>|</span><div>acme.io</div></div>
</body>`)
	got, ok := Container(doc, Website)
	if !ok || got != "acme.io" {
		t.Errorf("Container = %q, %v, want acme.io", got, ok)
	}
}

func TestFirstOf(t *testing.T) {
	miss := func(*goquery.Document, Label) (string, bool) { return "", false }
	hit := func(v string) Strategy {
		return func(*goquery.Document, Label) (string, bool) { return v, true }
	}

	if v, ok := FirstOf(miss, hit("a"), hit("b"))(nil, Website); !ok || v != "a" {
		t.Errorf("FirstOf = %q, %v", v, ok)
	}
	if _, ok := FirstOf(miss, miss)(nil, Website); ok {
		t.Error("FirstOf of misses should miss")
	}
	if _, ok := FirstOf()(nil, Website); ok {
		t.Error("empty FirstOf should miss")
	}
}

func TestDetails(t *testing.T) {
	d := Details(load(t, "about_dl.html"))
	if len(d) != len(Labels) {
		t.Fatalf("got %d fields", len(d))
	}
	if d[Headquarters] != "Noida, Uttar Pradesh" {
		t.Errorf("Headquarters = %q", d[Headquarters])
	}
}
