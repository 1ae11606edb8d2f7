package outpath

import (
	"path/filepath"
	"testing"
)

func TestName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"folder/sub/name.png", "folder_sub_name.png"},
		{"icon", "icon.png"},
		{"icon.PNG", "icon.png"},
		{"icon.png.png", "icon.png.png"},
		{`a<b>c:d"e\f|g?h*i`, "a_b_c_d_e_f_g_h_i.png"},
		{"tab\there\x00\x1f", "tab_here__.png"},
		{"  spaced out.png  ", "spaced out.png"},
		{"", "unnamed.png"},
		{".png", "unnamed.png"},
		{"ünïcødé", "ünïcødé.png"},
		{"../escape", ".._escape.png"},
	}
	for _, tt := range tests {
		if got := Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestNameExt(t *testing.T) {
	tests := []struct {
		in, ext, want string
	}{
		{"walk_0.png", ".webp", "walk_0.webp"},
		{"walk_0.WEBP", ".webp", "walk_0.webp"},
		{"walk_0", ".webp", "walk_0.webp"},
		{"walk_0.png", ".PNG", "walk_0.png"},
	}
	for _, tt := range tests {
		if got := NameExt(tt.in, tt.ext); got != tt.want {
			t.Errorf("NameExt(%q, %q) = %q; want %q", tt.in, tt.ext, got, tt.want)
		}
	}
}

func TestJoinNeverLeavesRoot(t *testing.T) {
	root := filepath.Join("out", "sheet")
	for _, name := range []string{"../../etc/passwd", `..\..\boot.ini`, "/abs/path.png", "a/b/c"} {
		got := Join(root, name, PNG)
		if filepath.Dir(got) != root {
			t.Errorf("Join(%q, %q) = %q; want a file directly under %q", root, name, got, root)
		}
	}
}

func TestSanitizeKeepsInnerSpaces(t *testing.T) {
	if got, want := Sanitize(" a b "), "a b"; got != want {
		t.Errorf("got %q; want %q", got, want)
	}
}
