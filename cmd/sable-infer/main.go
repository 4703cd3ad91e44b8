// Binary sable-infer runs method type inference scenarios.
//
// With file arguments it loads each YAML scenario, runs every call and
// reports the outcomes; without arguments it starts an interactive
// shell. The exit code is non-zero when any expectation fails.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	log "github.com/golang/glog"
	"github.com/mattn/go-isatty"

	"github.com/funvibe/sable/internal/config"
	"github.com/funvibe/sable/internal/scenario"
	"github.com/funvibe/sable/internal/typeexpr"
)

var (
	noColor = flag.Bool("no_color", false, "disable colored output")
	verbose = flag.Bool("verbose", false, "print per-call diagnostics even for passing calls")
	version = flag.Bool("version", false, "print version and exit")
)

type printer struct {
	color bool
}

func (p printer) green(s string) string {
	if p.color {
		return "\x1b[32m" + s + "\x1b[0m"
	}
	return s
}

func (p printer) red(s string) string {
	if p.color {
		return "\x1b[31m" + s + "\x1b[0m"
	}
	return s
}

func (p printer) cyan(s string) string {
	if p.color {
		return "\x1b[36m" + s + "\x1b[0m"
	}
	return s
}

func main() {
	flag.Parse()
	if *version {
		fmt.Println("sable-infer", config.Version)
		return
	}
	p := printer{color: !*noColor && (isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()))}

	files := flag.Args()
	if len(files) == 0 {
		if err := repl(p); err != nil && err != io.EOF {
			log.Exit(err)
		}
		return
	}

	failures := 0
	for _, path := range files {
		if !config.HasScenarioExt(path) {
			log.Warningf("%s does not look like a scenario file; trying anyway", path)
		}
		failures += runFile(p, path)
	}
	if failures > 0 {
		fmt.Printf("%s: %d failing call(s)\n", p.red("FAIL"), failures)
		os.Exit(1)
	}
}

func runFile(p printer, path string) int {
	f, err := scenario.Load(path)
	if err != nil {
		log.Exitf("loading %s: %v", path, err)
	}
	w := scenario.NewWorld()
	outcomes, err := w.Run(f)
	if err != nil {
		log.Exitf("running %s: %v", path, err)
	}
	fmt.Printf("%s\n", p.cyan(f.Name))
	failures := 0
	for i := range outcomes {
		if !printOutcome(p, &outcomes[i]) {
			failures++
		}
	}
	return failures
}

func printOutcome(p printer, o *scenario.Outcome) bool {
	status := "ok"
	if !o.Result.OK {
		status = "no inference"
	}
	inferred := make([]string, len(o.Result.Inferred))
	for i, t := range o.Result.Inferred {
		inferred[i] = t.String()
	}
	line := fmt.Sprintf("  %s(...) -> %s [%s]", o.Call.Method, strings.Join(inferred, ", "), status)
	ok := !o.Checked || o.Pass
	if ok {
		if o.Checked {
			line = p.green("PASS ") + line
		} else {
			line = "     " + line
		}
	} else {
		line = p.red("FAIL ") + line + "  (" + o.Mismatch + ")"
	}
	fmt.Println(line)
	if *verbose || !ok {
		for _, d := range o.Diags {
			fmt.Printf("       %s\n", d.Error())
		}
	}
	return ok
}

const replHelp = `commands:
  ::type <decl>      declare a type       (::type class Dog : Animal)
  ::method <sig>     declare a method     (::method M<T>(T a, T b) T)
  ::methods          list declared methods
  ::help             this help
  ::quit             leave
anything else is a call: M(int, string) or M(null, Dog[])`

func repl(p printer) error {
	rl, err := readline.New(config.Prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	w := scenario.NewWorld()
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, config.ReplCommandPrefix) {
			if done := replCommand(p, w, line); done {
				return nil
			}
			continue
		}
		replCall(p, w, line)
	}
}

func replCommand(p printer, w *scenario.World, line string) bool {
	cmd := strings.TrimPrefix(line, config.ReplCommandPrefix)
	verb, rest, _ := strings.Cut(cmd, " ")
	rest = strings.TrimSpace(rest)
	switch verb {
	case "quit", "exit":
		return true
	case "help":
		fmt.Println(replHelp)
	case "type":
		if _, err := w.DeclareType(rest); err != nil {
			fmt.Println(p.red(err.Error()))
		}
	case "method":
		if _, err := w.DeclareMethod(rest); err != nil {
			fmt.Println(p.red(err.Error()))
		}
	case "methods":
		for _, name := range w.MethodNames() {
			m, _ := w.Method(name)
			fmt.Println("  " + m.String())
		}
	default:
		fmt.Println(p.red("unknown command; ::help lists commands"))
	}
	return false
}

func replCall(p printer, w *scenario.World, line string) {
	name, argTypes, err := typeexpr.ParseCall(line, w)
	if err != nil {
		fmt.Println(p.red(err.Error()))
		return
	}
	call := scenario.Call{Method: name}
	for _, t := range argTypes {
		if t == nil {
			call.Args = append(call.Args, scenario.Arg{Null: true})
		} else {
			call.Args = append(call.Args, scenario.Arg{Type: t.String()})
		}
	}
	o, err := w.RunCall(&call)
	if err != nil {
		fmt.Println(p.red(err.Error()))
		return
	}
	_ = printOutcome(p, o)
}
