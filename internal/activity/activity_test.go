package activity

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    Record
	}{
		{
			name:    "photo",
			content: "[Photo: sunset.jpg] looks great",
			want:    Record{Kind: KindPhoto, Target: "sunset.jpg", HasTarget: true, Body: "looks great"},
		},
		{
			name:    "changes requested",
			content: "[Gallery: Wedding] Changes requested: fix the crop",
			want:    Record{Kind: KindChangesRequested, Target: "Wedding", HasTarget: true, Body: "fix the crop"},
		},
		{
			name:    "plain",
			content: "just a note",
			want:    Record{Kind: KindPage, Body: "just a note"},
		},
		{
			name:    "plain is trimmed",
			content: "  \n just a note \t\n",
			want:    Record{Kind: KindPage, Body: "just a note"},
		},
		{
			name:    "photo multi-line body",
			content: "[Photo: IMG_0042.jpg] first line\nsecond line\n",
			want:    Record{Kind: KindPhoto, Target: "IMG_0042.jpg", HasTarget: true, Body: "first line\nsecond line"},
		},
		{
			name:    "photo label trimmed",
			content: "[Photo:    portrait 1.png   ]   nice",
			want:    Record{Kind: KindPhoto, Target: "portrait 1.png", HasTarget: true, Body: "nice"},
		},
		{
			name:    "photo without body",
			content: "[Photo: a.jpg]",
			want:    Record{Kind: KindPhoto, Target: "a.jpg", HasTarget: true, Body: ""},
		},
		{
			name:    "photo whitespace body",
			content: "[Photo: a.jpg]   \n  ",
			want:    Record{Kind: KindPhoto, Target: "a.jpg", HasTarget: true, Body: ""},
		},
		{
			name:    "changes requested multi-line",
			content: "[Gallery: Engagement ] Changes requested:\n- brighten\n- crop",
			want:    Record{Kind: KindChangesRequested, Target: "Engagement", HasTarget: true, Body: "- brighten\n- crop"},
		},
		{
			name:    "changes requested empty body",
			content: "[Gallery: Wedding] Changes requested:",
			want:    Record{Kind: KindChangesRequested, Target: "Wedding", HasTarget: true, Body: ""},
		},
		{
			name:    "gallery tag without marker is plain",
			content: "[Gallery: Wedding] love it",
			want:    Record{Kind: KindPage, Body: "[Gallery: Wedding] love it"},
		},
		{
			name:    "tag not at start is plain",
			content: "see [Photo: a.jpg] here",
			want:    Record{Kind: KindPage, Body: "see [Photo: a.jpg] here"},
		},
		{
			name:    "leading whitespace defeats tag",
			content: " [Photo: a.jpg] hi",
			want:    Record{Kind: KindPage, Body: "[Photo: a.jpg] hi"},
		},
		{
			name:    "case sensitive",
			content: "[photo: a.jpg] hi",
			want:    Record{Kind: KindPage, Body: "[photo: a.jpg] hi"},
		},
		{
			name:    "empty",
			content: "",
			want:    Record{Kind: KindPage, Body: ""},
		},
		{
			name:    "photo wins over gallery text in body",
			content: "[Photo: a.jpg] [Gallery: W] Changes requested: x",
			want:    Record{Kind: KindPhoto, Target: "a.jpg", HasTarget: true, Body: "[Gallery: W] Changes requested: x"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.content)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Classify(%q) mismatch (-want +got):\n%s", tt.content, diff)
			}
		})
	}
}

func TestClassifyBareBodyIsPage(t *testing.T) {
	inputs := []string{
		"[Photo: sunset.jpg] looks great",
		"[Gallery: Wedding] Changes requested: fix the crop",
	}
	for _, in := range inputs {
		body := Classify(in).Body
		if got := Classify(body).Kind; got != KindPage {
			t.Errorf("Classify(%q).Kind = %q, want %q", body, got, KindPage)
		}
	}
}

func TestComposeRoundTrip(t *testing.T) {
	records := []Record{
		Page("just a note"),
		Page("multi\nline"),
		Photo("sunset.jpg", "looks great"),
		Photo(" IMG 1.png ", ""),
		Photo("a(1).jpg", "line one\nline two"),
		ChangesRequested("Wedding", "fix the crop"),
		ChangesRequested("Engagement", ""),
	}

	for _, r := range records {
		text, err := Compose(r)
		if err != nil {
			t.Fatalf("Compose(%+v): %v", r, err)
		}
		if diff := cmp.Diff(r, Classify(text)); diff != "" {
			t.Errorf("round trip of %q mismatch (-want +got):\n%s", text, diff)
		}
	}
}

func TestComposeText(t *testing.T) {
	text, err := Compose(ChangesRequested("Wedding", "fix the crop"))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if want := "[Gallery: Wedding] Changes requested: fix the crop"; text != want {
		t.Errorf("text = %q, want %q", text, want)
	}

	text, err = Compose(Photo("sunset.jpg", "looks great"))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if want := "[Photo: sunset.jpg] looks great"; text != want {
		t.Errorf("text = %q, want %q", text, want)
	}
}

func TestComposeRejects(t *testing.T) {
	tests := []struct {
		name string
		r    Record
	}{
		{"photo empty name", Photo("  ", "hi")},
		{"photo bracket", Photo("a]b", "hi")},
		{"gallery newline", ChangesRequested("a\nb", "hi")},
		{"page looks tagged", Page("[Photo: a.jpg] hi")},
		{"unknown kind", Record{Kind: "video", Body: "hi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Compose(tt.r); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestKindValid(t *testing.T) {
	for _, k := range []Kind{KindPage, KindPhoto, KindChangesRequested} {
		if !k.Valid() {
			t.Errorf("%q should be valid", k)
		}
	}
	if Kind("video").Valid() {
		t.Error("video should not be valid")
	}
}
