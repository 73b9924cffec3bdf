package obmm

import (
	"context"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/rs/zerolog"
)

type builtinFunc func(exec *Execution, line []string) error

// Execution is the state of one script run. It is never shared between runs.
type Execution struct {
	engine *Engine
	ctx    context.Context
	host   Host
	roots  Roots
	fs     fsys
	log    zerolog.Logger

	plan *Plan
	env  *Env

	frames   []frame
	lines    []string
	injected []string
	cursor   int
	line     int
	steps    int
	quota    int
	runOn    bool
	done     bool
}

func newExecution(ctx context.Context, engine *Engine, script string, roots Roots, host Host) *Execution {
	return &Execution{
		engine: engine,
		ctx:    ctx,
		host:   host,
		roots:  roots,
		fs:     fsys{fs: engine.config.FS},
		log:    engine.config.Logger.With().Str("component", "obmm").Logger(),
		plan:   NewPlan(),
		env:    NewEnv(engine.config.NewLine),
		lines:  splitScript(script),
		quota:  engine.config.StepQuota,
	}
}

// Plan exposes the plan under construction.
func (exec *Execution) Plan() *Plan {
	return exec.plan
}

// Env exposes the run's variables.
func (exec *Execution) Env() *Env {
	return exec.env
}

func (exec *Execution) run() error {
	exec.log.Info().Int("lines", len(exec.lines)).Msg("script started")
	for exec.cursor = 0; exec.cursor < len(exec.lines) || len(exec.injected) > 0; exec.cursor++ {
		var raw string
		if len(exec.injected) > 0 {
			exec.cursor--
			raw = exec.popInjected()
		} else {
			raw = normalizeLine(exec.lines[exec.cursor])
		}
		exec.line = exec.cursor
		if exec.runOn {
			raw = exec.joinRunOn(raw)
		}

		tokens, diags := SplitLine(raw, exec.env)
		for _, msg := range diags {
			exec.warnf("%s", msg)
		}
		if len(tokens) == 0 {
			continue
		}

		if err := exec.step(); err != nil {
			return exec.scriptError(err)
		}
		if err := exec.dispatch(raw, tokens); err != nil {
			return exec.scriptError(err)
		}
		if exec.done || exec.plan.CancelInstall {
			break
		}
	}
	return nil
}

func (exec *Execution) popInjected() string {
	next := exec.injected[0]
	exec.injected = exec.injected[1:]
	return normalizeLine(next)
}

// joinRunOn appends following lines while the current one ends in a
// continuation backslash.
func (exec *Execution) joinRunOn(raw string) string {
	for endsWithContinuation(raw) {
		raw = raw[:len(raw)-1]
		switch {
		case len(exec.injected) > 0:
			raw += exec.popInjected()
		case exec.cursor+1 < len(exec.lines):
			exec.cursor++
			raw += normalizeLine(exec.lines[exec.cursor])
		default:
			exec.warnf("Run-on line passed end of script")
			return raw
		}
	}
	return raw
}

func (exec *Execution) dispatch(raw string, line []string) error {
	kw := ParseKeyword(line[0])
	top := exec.top()
	if e := exec.log.Trace(); e.Enabled() {
		e.Int("line", exec.line).
			Str("keyword", line[0]).
			Int("depth", len(exec.frames)).
			Bool("active", top == nil || top.active).
			Msg("dispatch")
	}

	if top != nil && !top.active {
		exec.skipLine(kw, raw, line)
		return nil
	}

	switch kw {
	case KeywordGoto:
		exec.gotoLabel(line)
	case KeywordLabel:
	case KeywordIf, KeywordIfNot:
		cond, err := exec.evalIf(line)
		if err != nil {
			return err
		}
		if kw == KeywordIfNot {
			cond = !cond
		}
		exec.push(frame{kind: frameIf, line: exec.cursor, active: cond, cond: cond})
	case KeywordElse:
		exec.elseBranch()
	case KeywordEndIf:
		exec.popKind(frameIf, "EndIf")
	case KeywordSelect, KeywordSelectMany, KeywordSelectWithPreview, KeywordSelectManyWithPreview,
		KeywordSelectWithDescriptions, KeywordSelectManyWithDescriptions,
		KeywordSelectWithDescriptionsAndPreviews, KeywordSelectManyWithDescriptionsAndPreviews:
		cases, err := exec.selectCases(kw, line)
		if err != nil {
			return err
		}
		exec.push(frame{kind: frameSelect, line: exec.cursor, cases: cases})
	case KeywordSelectVar, KeywordSelectString:
		exec.push(frame{kind: frameSelect, line: exec.cursor, cases: exec.selectVarCases(kw, line)})
	case KeywordCase:
		exec.expectSelect("Case")
	case KeywordDefault:
		exec.expectSelect("Default")
	case KeywordBreak:
		exec.breakSelect()
	case KeywordEndSelect:
		exec.popKind(frameSelect, "EndSelect")
	case KeywordFor:
		f, err := exec.forFrame(line)
		if err != nil {
			return err
		}
		exec.push(f)
	case KeywordContinue:
		exec.continueFor()
	case KeywordExit:
		exec.exitFor()
	case KeywordEndFor:
		exec.endFor()
	case KeywordReturn:
		exec.done = true
	case KeywordAllowRunOnLines:
		exec.runOn = true
	case KeywordExecLines:
		exec.execLines(line)
	default:
		fn, ok := exec.engine.builtins[kw]
		if !ok {
			exec.unknownKeyword(line[0])
			return nil
		}
		return fn(exec, line)
	}
	return nil
}

// skipLine handles a line inside an inactive block. Only block structure is
// tracked; nothing is evaluated.
func (exec *Execution) skipLine(kw Keyword, raw string, line []string) {
	top := exec.top()
	switch {
	case line[0] == "":
		exec.warnf("Empty function")
	case kw == KeywordIf || kw == KeywordIfNot:
		exec.push(inertFrame(frameIf))
	case kw.isSelect():
		exec.push(inertFrame(frameSelect))
	case kw == KeywordFor:
		exec.push(inertFrame(frameFor))
	case kw == KeywordElse:
		exec.elseBranch()
	case kw == KeywordEndIf:
		exec.popKind(frameIf, "EndIf")
	case kw == KeywordCase:
		if top.kind != frameSelect {
			exec.warnf("Unexpected Case")
			return
		}
		if top.enterable() && top.matchesCase(raw, line) {
			top.active = true
			top.hitCase = true
		}
	case kw == KeywordDefault:
		if top.kind != frameSelect {
			exec.warnf("Unexpected Default")
			return
		}
		if top.enterable() && !top.hitCase {
			top.active = true
		}
	case kw == KeywordEndSelect:
		exec.popKind(frameSelect, "EndSelect")
	case kw == KeywordEndFor:
		exec.popKind(frameFor, "EndFor")
	}
}

func (exec *Execution) unknownKeyword(name string) {
	if name == "" {
		exec.warnf("Empty function")
		return
	}
	if hint := closestKeyword(name); hint != "" {
		exec.warnf("Unrecognized function: %s! Did you mean %s?", name, hint)
		return
	}
	exec.warnf("Unrecognized function: %s!", name)
}

var keywordCandidates = KeywordNames()

// closestKeyword suggests a known command for a misspelt one.
func closestKeyword(name string) string {
	ranks := fuzzy.RankFindFold(name, keywordCandidates)
	if len(ranks) == 0 {
		return ""
	}
	sort.Sort(ranks)
	return ranks[0].Target
}

// execLines queues the lines of its argument ahead of the next source line.
func (exec *Execution) execLines(line []string) {
	if len(line) < 2 {
		exec.warnf("Missing arguments for 'ExecLines'")
		return
	}
	if len(line) > 2 {
		exec.warnf("Unexpected extra arguments for 'ExecLines'")
	}
	var lines []string
	for _, l := range strings.Split(strings.ReplaceAll(line[1], "\r", ""), "\n") {
		if l != "" {
			lines = append(lines, l)
		}
	}
	exec.injected = append(lines, exec.injected...)
}
