package obmm

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCheckCleanScript(t *testing.T) {
	script := `; header comment
If DataFileExists foo.esp
	Message "found it"
Else
	Message missing
EndIf
SelectMany "Pick" a b
Case a
	If Equal 1 1
		Break
	EndIf
Default
	Break
EndSelect
For Count i 1 3
	IfNot Equal %i% 2
		Continue
	EndIf
	Exit
EndFor
%cmd% arg
Goto end
Label end`
	if got := Check(script); len(got) != 0 {
		t.Fatalf("expected no warnings, got %v", got)
	}
}

func TestCheckReportsProblems(t *testing.T) {
	script := `Mesage hi
EndIf
Case x
Goto nowhere
For Count i 1 2
	Exit
If DataFileExists x
Message "oops`
	want := []Warning{
		{Line: 0, Message: "Unrecognized function: Mesage! Did you mean Message?"},
		{Line: 1, Message: "Unexpected EndIf"},
		{Line: 2, Message: "Unexpected Case"},
		{Line: 3, Message: "Expected: Label nowhere!"},
		{Line: 4, Message: "Unclosed For block"},
		{Line: 6, Message: "Unclosed If block"},
		{Line: 7, Message: "Unterminated quote"},
	}
	if diff := cmp.Diff(want, Check(script)); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckMismatchedEnd(t *testing.T) {
	got := Check("For Count i 1 2\nEndIf\nEndFor\nContinue\nBreak")
	want := []Warning{
		{Line: 1, Message: "Unexpected EndIf"},
		{Line: 3, Message: "Unexpected Continue"},
		{Line: 4, Message: "Unexpected Break"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckJoinsRunOnLines(t *testing.T) {
	script := "AllowRunOnLines\nIf DataFileExists \\\n\tfoo.esp\nEndIf\nMessage \\"
	want := []Warning{{Line: 4, Message: "Run-on line passed end of script"}}
	if diff := cmp.Diff(want, Check(script)); diff != "" {
		t.Fatalf("warnings mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckWithoutRunOnLines(t *testing.T) {
	// without AllowRunOnLines the backslash is part of the token
	got := Check("If DataFileExists \\\nfoo.esp\nEndIf")
	if len(got) != 1 || got[0].Line != 1 {
		t.Fatalf("expected one warning for line 1, got %v", got)
	}
}
