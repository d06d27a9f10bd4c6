package metadata

import "testing"

func TestPathRewriteApply(t *testing.T) {
	r := PathRewrite{HostPrefix: "root/", DevicePrefix: "/Music/"}
	got := r.Apply("root/Band/Album/01 Song.mp3")
	want := "/Music/Band/Album/01 Song.mp3"
	if got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}
}

func TestPathRewriteApplyBackslashes(t *testing.T) {
	r := PathRewrite{HostPrefix: `C:\music\`, DevicePrefix: "/Music/"}
	got := r.Apply(`C:\music\Band\Song.mp3`)
	want := "/Music/Band/Song.mp3"
	if got != want {
		t.Errorf("Apply = %q, want %q", got, want)
	}
}

func TestCanonicalGenreMapped(t *testing.T) {
	r := NewReader(PathRewrite{}, map[string]string{
		"Alt-Rock":         "Rock",
		"Alternative Rock": "Rock",
	})
	for _, in := range []string{"Alt-Rock", "Alternative Rock", "Rock"} {
		if got := r.canonicalGenre(in); got != "Rock" {
			t.Errorf("canonicalGenre(%q) = %q, want Rock", in, got)
		}
	}
}

func TestCanonicalGenreUnmappedPassesThrough(t *testing.T) {
	r := NewReader(PathRewrite{}, map[string]string{"Alt-Rock": "Rock"})
	if got := r.canonicalGenre("Jazz"); got != "Jazz" {
		t.Errorf("canonicalGenre(Jazz) = %q, want Jazz", got)
	}
}

func TestCanonicalGenreNilMap(t *testing.T) {
	r := NewReader(PathRewrite{}, nil)
	if got := r.canonicalGenre("Jazz"); got != "Jazz" {
		t.Errorf("canonicalGenre(Jazz) = %q, want Jazz", got)
	}
}
