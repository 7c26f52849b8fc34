package markdown

import (
	"encoding/json"
	"reflect"
	"testing"
)

func withoutLines(blocks []Block) []Block {
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		b.Line = 0
		out[i] = b
	}
	return out
}

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Block
	}{
		{
			name: "headings longest prefix first",
			in:   "# One\n## Two\n### Three",
			want: []Block{Heading(1, "One"), Heading(2, "Two"), Heading(3, "Three")},
		},
		{
			name: "hash without space is prose",
			in:   "#hashtag",
			want: []Block{Text("#hashtag")},
		},
		{
			name: "bold spans split the line",
			in:   "Energy is **conserved** in a **closed** system",
			want: []Block{Text("Energy is "), Bold("conserved"), Text(" in a "), Bold("closed"), Text(" system")},
		},
		{
			name: "bold alone",
			in:   "**Key idea**",
			want: []Block{Bold("Key idea")},
		},
		{
			name: "list items drop nested bold markers",
			in:   "- first\n- **second** point",
			want: []Block{ListItem("first"), ListItem("second point")},
		},
		{
			name: "blank runs collapse and edges are trimmed",
			in:   "\n\nalpha\n\n\n\nbeta\n\n",
			want: []Block{Text("alpha"), Break(), Text("beta")},
		},
		{
			name: "ansi stripped before headings",
			in:   "\x1b[1m## Styled\x1b[0m",
			want: []Block{Heading(2, "Styled")},
		},
		{
			name: "crlf input",
			in:   "# Title\r\n\r\n- item\r\n",
			want: []Block{Heading(1, "Title"), Break(), ListItem("item")},
		},
		{
			name: "heading text is not re-matched",
			in:   "# - not a list",
			want: []Block{Heading(1, "- not a list")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := withoutLines(Render(tt.in))
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Render(%q)\n got  %#v\n want %#v", tt.in, got, tt.want)
			}
		})
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(""); len(got) != 0 {
		t.Fatalf("expected no blocks, got %#v", got)
	}
	if got := Render("\n \n\t\n"); len(got) != 0 {
		t.Fatalf("expected no blocks for whitespace, got %#v", got)
	}
}

func TestRenderInlineBlocksShareLine(t *testing.T) {
	blocks := Render("intro\nA **b** c")
	if blocks[0].Line != 1 {
		t.Fatalf("expected first block on line 1, got %d", blocks[0].Line)
	}
	for _, b := range blocks[1:] {
		if b.Line != 2 {
			t.Fatalf("expected inline blocks on line 2, got %#v", blocks)
		}
	}
	if got := Plain(blocks); got != "intro\nA b c" {
		t.Fatalf("Plain = %q", got)
	}
}

func TestRenderIdempotentOnPlainText(t *testing.T) {
	in := "Cells are the unit of life.\nThey divide.\n\n\nMitosis has phases."
	first := Render(in)
	second := Render(Plain(first))
	if !reflect.DeepEqual(withoutLines(first), withoutLines(second)) {
		t.Fatalf("render not idempotent\n first  %#v\n second %#v", first, second)
	}
	if Plain(first) != Plain(second) {
		t.Fatalf("plain forms differ: %q vs %q", Plain(first), Plain(second))
	}
}

func TestCustomRuleOrder(t *testing.T) {
	r := &Renderer{Rules: []Rule{ListItemRule()}}
	got := withoutLines(r.Render("# not a heading\n- item\n\nrest"))
	want := []Block{Text("# not a heading"), ListItem("item"), Break(), Text("rest")}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v, want %#v", got, want)
	}
}

func TestKindString(t *testing.T) {
	if KindListItem.String() != "list_item" || KindBreak.String() != "break" || KindText.String() != "text" {
		t.Fatal("unexpected kind names")
	}
}

func TestBlockJSONUsesKindNames(t *testing.T) {
	data, err := json.Marshal(Heading(2, "Two"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"kind":"heading","level":2,"text":"Two","line":0}` {
		t.Fatalf("unexpected JSON %s", data)
	}
	var back Block
	if err := json.Unmarshal(data, &back); err != nil || back.Kind != KindHeading {
		t.Fatalf("unmarshal: %+v, %v", back, err)
	}
	if err := json.Unmarshal([]byte(`{"kind":"table"}`), &back); err == nil {
		t.Fatal("expected error for unknown kind")
	}
}
