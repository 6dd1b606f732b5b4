// Command kujs is the transpiler's CLI: read kujs source, run it through
// the full pipeline, and either print its JS translation or report
// diagnostics. Grounded on the teacher's args.go/main.go (kingpin command
// and flag wiring), trimmed to this compiler's much smaller surface and
// with every os.Exit confined to this package — library code never exits
// the process.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	kingpin "gopkg.in/alecthomas/kingpin.v2"

	"github.com/ku-lang/kujs"
	"github.com/ku-lang/kujs/diag"
	"github.com/ku-lang/kujs/internal/fuzzgen"
	"github.com/ku-lang/kujs/internal/kujslog"
	"github.com/ku-lang/kujs/lexer"
)

const version = "0.1.0"

var (
	app        = kingpin.New("kujs", "Transpiler for the kujs expression language.").Version(version)
	configPath = app.Flag("config", "Optional yaml config pre-setting loglevel/logtags/fuzz search paths").String()
	logLevel   = app.Flag("loglevel", "Set the level of logging to show").Default("info").Enum("debug", "info", "warning", "error")

	transpileCom    = app.Command("transpile", "Transpile a kujs source file to JS.")
	transpileInput  = transpileCom.Arg("input", "kujs source file; reads stdin when omitted").String()
	transpileOutput = transpileCom.Flag("output", "Output file; writes stdout when omitted").Short('o').String()

	checkCom   = app.Command("fmt", "Parse, resolve and type-check a kujs source file without emitting.")
	checkInput = checkCom.Arg("input", "kujs source file; reads stdin when omitted").String()

	fuzzCom   = app.Command("fuzz-corpus", "Write a deterministic corpus of generated kujs fixtures to a directory.")
	fuzzDir   = fuzzCom.Arg("dir", "Directory to write fixtures into").String()
	fuzzCount = fuzzCom.Flag("count", "Number of well-typed and single-fault fixtures to generate").Default("10").Int()
	fuzzSeed  = fuzzCom.Flag("seed", "Base seed for the deterministic generator").Default("1").Int()
)

var log = kujslog.New("main")

func main() {
	command := kingpin.MustParse(app.Parse(os.Args[1:]))

	level := *logLevel
	var fuzzSearchDirs []string
	if *configPath != "" {
		cfg, err := loadConfig(*configPath)
		if err != nil {
			setupErr("%s", err)
		}
		if cfg.LogLevel != "" {
			level = cfg.LogLevel
		}
		kujslog.SetTags(cfg.LogTags)
		fuzzSearchDirs = cfg.FuzzSearchDir
	}
	if err := kujslog.SetLevel(level); err != nil {
		setupErr("%s", err)
	}

	switch command {
	case transpileCom.FullCommand():
		runTranspile(*transpileInput, *transpileOutput)
	case checkCom.FullCommand():
		runCheck(*checkInput)
	case fuzzCom.FullCommand():
		dirs := fuzzSearchDirs
		if *fuzzDir != "" {
			dirs = append(dirs, *fuzzDir)
		}
		if len(dirs) == 0 {
			setupErr("fuzz-corpus: no output directory given (pass one as an argument or list fuzz_search_paths in --config)")
		}
		runFuzzCorpus(dirs, *fuzzCount, int64(*fuzzSeed))
	}
}

func runTranspile(input, output string) {
	sf := readSource(input)

	out := io.Writer(os.Stdout)
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			setupErr("%s", err)
		}
		defer f.Close()
		out = f
	}

	errs := kujs.Transpile(out, sf)
	if len(errs) > 0 {
		reportAndExit(sf, errs)
	}
}

func runCheck(input string) {
	sf := readSource(input)
	errs := kujs.Transpile(io.Discard, sf)
	if len(errs) > 0 {
		reportAndExit(sf, errs)
	}
	fmt.Println("ok")
}

func runFuzzCorpus(dirs []string, count int, seed int64) {
	wellTyped, faulty := fuzzgen.Corpus(count, seed)

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			setupErr("%s", err)
		}
		for name, src := range wellTyped {
			writeFixture(dir, name, src)
		}
		for name, src := range faulty {
			writeFixture(dir, name, src)
		}
		log.Info("wrote %d well-typed and %d single-fault fixtures to %s", len(wellTyped), len(faulty), dir)
	}
}

func writeFixture(dir, name, src string) {
	if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
		setupErr("%s", err)
	}
}

func readSource(input string) *lexer.Sourcefile {
	if input == "" {
		contents, err := io.ReadAll(os.Stdin)
		if err != nil {
			setupErr("%s", err)
		}
		return lexer.NewSourcefileFromString("<stdin>", string(contents))
	}
	sf, err := lexer.NewSourcefile(input)
	if err != nil {
		setupErr("%s", err)
	}
	return sf
}

func reportAndExit(sf *lexer.Sourcefile, errs []diag.Error) {
	for _, e := range errs {
		fmt.Fprint(os.Stderr, diag.Render(sf, e))
	}
	os.Exit(1)
}

func setupErr(format string, args ...interface{}) {
	log.Error(format, args...)
	os.Exit(1)
}
