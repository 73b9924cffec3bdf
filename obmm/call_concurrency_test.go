package obmm

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const concurrencyScript = `SetVar total 0
For Count i 0 %count%
	iSet total %total% + 1
EndFor
SelectString %total%
Case 3
	InstallPlugin Foo.esp
	Break
Default
	DontInstallPlugin Foo.esp
	Break
EndSelect
EditINI General uCount %total%`

func TestConcurrentRunsAreIsolated(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/plugins/Foo.esp": "foo"})
	engine := newTestEngine(t, Config{}, fs)

	const workers = 16
	plans := make([]*Plan, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			count := 3 + i%2
			script := fmt.Sprintf("SetVar count %d\n%s", count, concurrencyScript)
			plans[i], errs[i] = engine.Execute(context.Background(), script, testRoots, &recordingHost{})
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d failed: %v", i, errs[i])
		}
		count := 3 + i%2
		want := NewPlan()
		if count == 3 {
			want.InstallPlugins = []string{"foo.esp"}
		} else {
			want.IgnorePlugins = []string{"foo.esp"}
		}
		want.INIEdits = []INIEdit{{Section: "General", Name: "uCount", Value: fmt.Sprint(count)}}
		if diff := cmp.Diff(want, plans[i], planOpts); diff != "" {
			t.Fatalf("worker %d plan mismatch (-want +got):\n%s", i, diff)
		}
	}
}

func TestRepeatedRunsAreIdempotent(t *testing.T) {
	fs := newTestFS(t, map[string]string{"/plugins/Foo.esp": "foo"})
	engine := newTestEngine(t, Config{}, fs)
	script := "SetVar count 3\n" + concurrencyScript

	first, err := engine.Execute(context.Background(), script, testRoots, &recordingHost{})
	if err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	second, err := engine.Execute(context.Background(), script, testRoots, &recordingHost{})
	if err != nil {
		t.Fatalf("second run failed: %v", err)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("runs differ (-first +second):\n%s", diff)
	}
}
