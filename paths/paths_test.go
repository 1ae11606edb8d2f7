package paths

import (
	"os"
	"path/filepath"
	"testing"
)

func touch(t *testing.T, path string) string {
	t.Helper()
	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatalf("failed to create %s: %v", path, err)
	}
	return path
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	sheetPNG := touch(t, filepath.Join(dir, "sheet.png"))
	sheetJSON := touch(t, filepath.Join(dir, "sheet.json"))
	onlyJPG := touch(t, filepath.Join(dir, "photo.jpg"))
	photoAtlas := touch(t, filepath.Join(dir, "photo.atlas"))
	lonely := touch(t, filepath.Join(dir, "lonely.json"))

	tests := []struct {
		name string
		args []string
		want Inputs
	}{
		{
			name: "explicit pair",
			args: []string{sheetPNG, sheetJSON},
			want: Inputs{Image: sheetPNG, Descriptor: sheetJSON, OutDir: filepath.Join(dir, "sheet")},
		},
		{
			name: "explicit pair with outdir",
			args: []string{sheetPNG, sheetJSON, "/tmp/out"},
			want: Inputs{Image: sheetPNG, Descriptor: sheetJSON, OutDir: "/tmp/out"},
		},
		{
			name: "descriptor only",
			args: []string{sheetJSON},
			want: Inputs{Image: sheetPNG, Descriptor: sheetJSON, OutDir: filepath.Join(dir, "sheet")},
		},
		{
			name: "image only with outdir",
			args: []string{sheetPNG, "elsewhere"},
			want: Inputs{Image: sheetPNG, Descriptor: sheetJSON, OutDir: "elsewhere"},
		},
		{
			name: "atlas descriptor finds jpg",
			args: []string{photoAtlas},
			want: Inputs{Image: onlyJPG, Descriptor: photoAtlas, OutDir: filepath.Join(dir, "photo")},
		},
		{
			name: "jpg finds atlas descriptor",
			args: []string{onlyJPG},
			want: Inputs{Image: onlyJPG, Descriptor: photoAtlas, OutDir: filepath.Join(dir, "photo")},
		},
		{
			name: "missing image left empty",
			args: []string{lonely},
			want: Inputs{Descriptor: lonely, OutDir: filepath.Join(dir, "lonely")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Resolve(tt.args)
			if err != nil {
				t.Fatalf("Resolve(%q): %v", tt.args, err)
			}
			if got != tt.want {
				t.Errorf("got %+v; want %+v", got, tt.want)
			}
		})
	}
}

func TestResolveErrors(t *testing.T) {
	if _, err := Resolve(nil); err == nil {
		t.Errorf("Resolve(nil) succeeded; want error")
	}
	if _, err := Resolve([]string{"notes.txt"}); err == nil {
		t.Errorf("Resolve(notes.txt) succeeded; want error")
	}
}

func TestCheck(t *testing.T) {
	dir := t.TempDir()
	img := touch(t, filepath.Join(dir, "a.png"))
	desc := touch(t, filepath.Join(dir, "a.json"))

	if err := (Inputs{Image: img, Descriptor: desc}).Check(); err != nil {
		t.Errorf("Check with both files: %v", err)
	}
	if err := (Inputs{Descriptor: desc}).Check(); err == nil {
		t.Errorf("Check without image succeeded; want error")
	}
	if err := (Inputs{Image: img, Descriptor: filepath.Join(dir, "gone.json")}).Check(); err == nil {
		t.Errorf("Check with missing descriptor succeeded; want error")
	}
}

func TestFindImageForMeta(t *testing.T) {
	dir := t.TempDir()
	desc := touch(t, filepath.Join(dir, "data.json"))
	img := touch(t, filepath.Join(dir, "texture-0.png"))

	if got := FindImageForMeta(desc, "texture-0.png"); got != img {
		t.Errorf("got %q; want %q", got, img)
	}
	if got := FindImageForMeta(desc, "missing.png"); got != "" {
		t.Errorf("got %q; want empty", got)
	}
	if got := FindImageForMeta(desc, ""); got != "" {
		t.Errorf("got %q; want empty", got)
	}
}
