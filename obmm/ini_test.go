package obmm

import "testing"

const sampleINI = `; Oblivion settings
[General]
sLocalSavePath=Saves\
uGridsToLoad=5 ; do not touch

[Display]
iSize W=1280
iSize H = 720
bFull Screen
fGamma=1.0 # tuned
`

func TestINIValue(t *testing.T) {
	tests := []struct {
		section, name, want string
		found               bool
	}{
		{"General", "uGridsToLoad", "5", true},
		{"general", "SLOCALSAVEPATH", `Saves\`, true},
		{"Display", "iSize H", "720", true},
		{"display", "fGamma", "1.0", true},
		{"Display", "bFull Screen", "", false},
		{"Display", "uGridsToLoad", "", false},
		{"Audio", "fVolume", "", false},
	}
	for _, tc := range tests {
		got, ok := iniValue([]byte(sampleINI), tc.section, tc.name)
		if got != tc.want || ok != tc.found {
			t.Fatalf("iniValue(%s, %s) = %q, %v; want %q, %v", tc.section, tc.name, got, ok, tc.want, tc.found)
		}
	}
}

func TestINIValueMalformedDocument(t *testing.T) {
	if got, ok := iniValue([]byte("[General\nsLanguage=ENGLISH\n"), "General", "sLanguage"); ok {
		t.Fatalf("unterminated section header resolved to %q", got)
	}
}

func TestRendererValue(t *testing.T) {
	doc := "Renderer: Direct3D\nShader Package\t\t: 19\nWater shader: yes\n"
	if got, ok := rendererValue(doc, "shader package"); !ok || got != "19" {
		t.Fatalf("rendererValue = %q, %v", got, ok)
	}
	if _, ok := rendererValue(doc, "HDR"); ok {
		t.Fatalf("missing renderer value reported as found")
	}
}
