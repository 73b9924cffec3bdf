package obmm

import "testing"

func TestFormatIndentsBlocks(t *testing.T) {
	src := "If DataFileExists a.esp   \n" +
		"Message \"a\"\n" +
		"  Else\n" +
		"Message b\t\n" +
		"EndIf\n" +
		"Select \"Pick\" x y\n" +
		"Case x\n" +
		"For Count i 1 2\n" +
		"SetVar v %i%\n" +
		"EndFor\n" +
		"Break\n" +
		"Default\n" +
		"Break\n" +
		"EndSelect\n" +
		"; comment\n" +
		"\n" +
		"EndIf\n\n\n"
	want := "If DataFileExists a.esp\n" +
		"\tMessage \"a\"\n" +
		"Else\n" +
		"\tMessage b\n" +
		"EndIf\n" +
		"Select \"Pick\" x y\n" +
		"\tCase x\n" +
		"\t\tFor Count i 1 2\n" +
		"\t\t\tSetVar v %i%\n" +
		"\t\tEndFor\n" +
		"\t\tBreak\n" +
		"\tDefault\n" +
		"\t\tBreak\n" +
		"EndSelect\n" +
		"; comment\n" +
		"\n" +
		"EndIf\n"
	got := Format(src)
	if got != want {
		t.Fatalf("unexpected format:\n%s\nwant:\n%s", got, want)
	}
	if again := Format(got); again != got {
		t.Fatalf("format is not idempotent:\n%s", again)
	}
}

func TestFormatRunOnLines(t *testing.T) {
	got := Format("AllowRunOnLines\r\nMessage \"a\" \\\r\n\"b\"\r\n")
	want := "AllowRunOnLines\nMessage \"a\" \\\n\t\"b\"\n"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatEmpty(t *testing.T) {
	if got := Format("\n \n"); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}
