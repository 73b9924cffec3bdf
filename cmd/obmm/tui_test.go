package main

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/mgomes/obmmscript/obmm"
)

var (
	keyUp    = tea.KeyMsg{Type: tea.KeyUp}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// scriptedRun feeds msgs to the model instead of starting a program.
func scriptedRun(msgs ...tea.Msg) func(tea.Model) (tea.Model, error) {
	return func(m tea.Model) (tea.Model, error) {
		for _, msg := range msgs {
			m, _ = m.Update(msg)
		}
		return m, nil
	}
}

func requireQuit(t *testing.T, cmd tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok, "expected QuitMsg")
}

func TestSelectModelSingleChoice(t *testing.T) {
	m := newSelectModel(obmm.SelectRequest{Title: "Pick", Items: []string{"a", "b", "c"}})
	model, _ := m.Update(keyDown)
	model, _ = model.Update(keyDown)
	model, _ = model.Update(keyDown)
	model, _ = model.Update(keyUp)
	model, cmd := model.Update(keyEnter)
	requireQuit(t, cmd)

	sm := model.(selectModel)
	require.True(t, sm.done)
	require.Equal(t, []int{1}, sm.selection())
}

func TestSelectModelMultiChoice(t *testing.T) {
	m := newSelectModel(obmm.SelectRequest{Title: "Pick", Items: []string{"a", "b", "c"}, Multi: true})
	model, _ := m.Update(keySpace)
	model, _ = model.Update(keyDown)
	model, _ = model.Update(keyDown)
	model, _ = model.Update(keySpace)
	model, _ = model.Update(keyUp)
	model, _ = model.Update(keySpace)
	model, _ = model.Update(keySpace)
	model, _ = model.Update(keyEnter)

	require.Equal(t, []int{0, 2}, model.(selectModel).selection())
}

func TestSelectModelCancel(t *testing.T) {
	m := newSelectModel(obmm.SelectRequest{Title: "Pick", Items: []string{"a"}, Multi: true})
	model, _ := m.Update(keySpace)
	model, cmd := model.Update(keyEsc)
	requireQuit(t, cmd)
	require.Empty(t, model.(selectModel).selection())
}

func TestSelectModelView(t *testing.T) {
	m := newSelectModel(obmm.SelectRequest{
		Title:        "Textures",
		Items:        []string{"Low", "High"},
		Descriptions: []string{"small files", "large files"},
		Previews:     []string{"", "/data/high.png"},
		Multi:        true,
	})
	view := m.View()
	require.Contains(t, view, "Textures")
	require.Contains(t, view, "Low")
	require.Contains(t, view, "small files")
	require.NotContains(t, view, "preview:")

	model, _ := m.Update(keyDown)
	view = model.View()
	require.Contains(t, view, "large files")
	require.Contains(t, view, "/data/high.png")
}

func TestYesNoModel(t *testing.T) {
	for _, tc := range []struct {
		msg  tea.KeyMsg
		want obmm.DialogResult
	}{
		{runes("y"), obmm.DialogYes},
		{runes("N"), obmm.DialogNo},
		{keyEsc, obmm.DialogCancel},
	} {
		model, cmd := newYesNoModel("Install?", "Question").Update(tc.msg)
		requireQuit(t, cmd)
		require.Equal(t, tc.want, model.(yesNoModel).result)
	}

	model, cmd := newYesNoModel("Install?", "Question").Update(runes("x"))
	require.Nil(t, cmd)
	require.Equal(t, obmm.DialogCancel, model.(yesNoModel).result)
}

func TestInputModel(t *testing.T) {
	model, _ := newInputModel("Name", "abc").Update(runes("d"))
	model, cmd := model.Update(keyEnter)
	requireQuit(t, cmd)
	require.Equal(t, "abcd", model.(inputModel).value())

	model, _ = newInputModel("Name", "abc").Update(runes("d"))
	model, _ = model.Update(keyEsc)
	require.Equal(t, "abc", model.(inputModel).value())
}

func TestTextModelDismiss(t *testing.T) {
	m := textModel{title: "Readme", body: "hello"}
	require.True(t, strings.Contains(m.View(), "hello"))
	_, cmd := m.Update(runes("x"))
	require.Nil(t, cmd)
	_, cmd = m.Update(keyEnter)
	requireQuit(t, cmd)
}

func TestTerminalHostDialogs(t *testing.T) {
	base, err := newProfileHost(&Profile{GameVersion: "1.2"}, zerolog.Nop())
	require.NoError(t, err)
	host := newTerminalHost(base)

	host.run = scriptedRun(keyDown, keyEnter)
	picked, err := host.Select(obmm.SelectRequest{Title: "Pick", Items: []string{"a", "b"}})
	require.NoError(t, err)
	require.Equal(t, []int{1}, picked)

	host.run = scriptedRun(runes("y"))
	answer, err := host.DialogYesNo("Install?", "Question")
	require.NoError(t, err)
	require.Equal(t, obmm.DialogYes, answer)

	host.run = scriptedRun(runes("!"), keyEnter)
	value, err := host.InputString("Name", "Bob")
	require.NoError(t, err)
	require.Equal(t, "Bob!", value)

	host.run = scriptedRun(keyEnter)
	require.NoError(t, host.Message("hi", "Title"))
	require.NoError(t, host.DisplayText("text", "Title"))
	require.NoError(t, host.DisplayImage("/data/a.png", "Title"))

	// queries still come from the profile
	game, err := host.GameVersion()
	require.NoError(t, err)
	require.Equal(t, obmm.MustParseVersion("1.2"), game)
}

func TestTerminalHostRunsScript(t *testing.T) {
	base, err := newProfileHost(&Profile{}, zerolog.Nop())
	require.NoError(t, err)
	host := newTerminalHost(base)
	host.run = scriptedRun(runes("n"))

	engine := obmm.MustNewEngine(obmm.Config{})
	plan, err := engine.Execute(t.Context(), `If DialogYesNo "Install extras?"
	DontInstallAnyDataFiles
Else
	DontInstallAnyPlugins
EndIf`, obmm.Roots{Data: t.TempDir(), Plugins: t.TempDir()}, host)
	require.NoError(t, err)
	require.True(t, plan.InstallAllData)
	require.False(t, plan.InstallAllPlugins)
}
