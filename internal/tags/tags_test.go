package tags

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephgoksu/cljtags/internal/options"
	"github.com/josephgoksu/cljtags/internal/shell"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const root = "/project"

// setupFS creates an in-memory project with the given files.
func setupFS(t *testing.T, files map[string]string) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll(root, 0o755))
	for name, content := range files {
		err := afero.WriteFile(fs, filepath.Join(root, name), []byte(content), 0o644)
		require.NoError(t, err, "failed to create file: %s", name)
	}
	return fs
}

func newConfig(fs afero.Fs, m shell.Commander, buf *bytes.Buffer) Config {
	return Config{
		FS:           fs,
		Commander:    m,
		Root:         root,
		Log:          slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug})),
		EtagsBinary:  "etags",
		EtagsTagFile: "TAGS",
		CtagsBinary:  "ctags",
		Filter:       DefaultFilter(),
	}
}

// appendingEtags mimics etags append mode by writing one line per call to
// the tag file named after -o.
func appendingEtags(t *testing.T, fs afero.Fs) func(shell.Call) {
	return func(c shell.Call) {
		if c.Name != "etags" {
			return
		}
		out := filepath.Join(c.Dir, c.Args[2])
		f, err := fs.OpenFile(out, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		require.NoError(t, err)
		defer f.Close()
		_, err = f.WriteString("\x0c\n" + c.Args[len(c.Args)-1] + ",0\n")
		require.NoError(t, err)
	}
}

func TestFilter_MatchPath(t *testing.T) {
	f := DefaultFilter()
	tests := []struct {
		path string
		want bool
	}{
		{"/project/src/app/core.clj", true},
		{"/project/src/app/ui.cljs", true},
		{"/project/src/app/shared.cljc", true},
		{"/project/resources/config.edn", true},
		{"/project/src/app/Core.CLJ", true},
		{"/project/project.clj", false},
		{"/project/sub/project.clj", false},
		{"/project/.cljtags-deps/META-INF/leiningen/foo/project.clj", false},
		{"/project/.cljtags-deps/META-INF/maven/x/y/deps.edn", false},
		{"/project/.cljtags-deps/clojure/core.clj", true},
		{"/project/src/app/core.java", false},
		{"/project/README.md", false},
		{"/project/src/META-INF-like/ok.clj", true},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, f.MatchPath(filepath.FromSlash(tt.path)))
		})
	}
}

func TestFilter_DirectoriesNeverMatch(t *testing.T) {
	fs := setupFS(t, nil)
	require.NoError(t, fs.MkdirAll("/project/src/dir.clj", 0o755))
	info, err := fs.Stat("/project/src/dir.clj")
	require.NoError(t, err)

	assert.False(t, DefaultFilter().Match("/project/src/dir.clj", info))
	assert.False(t, DefaultFilter().Match("/project/src/x.clj", nil))
}

func TestWalkPostOrder(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"b.clj":         "",
		"a/z.clj":       "",
		"a/inner/y.clj": "",
	})
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	var visited []string
	WalkPostOrder(fs, root, log, func(path string, info os.FileInfo) {
		visited = append(visited, filepath.ToSlash(path))
	})

	assert.Equal(t, []string{
		"/project/a/inner/y.clj",
		"/project/a/inner",
		"/project/a/z.clj",
		"/project/a",
		"/project/b.clj",
		"/project",
	}, visited)
}

func TestWalkPostOrder_MissingRoot(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	called := false
	WalkPostOrder(afero.NewMemMapFs(), "/nope", log, func(string, os.FileInfo) { called = true })
	assert.False(t, called)
	assert.Contains(t, buf.String(), "cannot walk project root")
}

// splitRegexArg splits an etags --regex value the way etags does: the first
// character is the separator and a backslash-escaped separator is literal.
func splitRegexArg(arg string) []string {
	sep := arg[0]
	var parts []string
	var cur strings.Builder
	for i := 1; i < len(arg); i++ {
		c := arg[i]
		switch {
		case c == '\\' && i+1 < len(arg) && arg[i+1] == sep:
			cur.WriteByte(sep)
			i++
		case c == '\\' && i+1 < len(arg):
			cur.WriteByte(c)
			cur.WriteByte(arg[i+1])
			i++
		case c == sep:
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(parts, cur.String())
}

func TestEtagsRegexes_SplitIntoPatternAndName(t *testing.T) {
	tests := []struct {
		name    string
		regex   string
		pattern string
	}{
		{"definition", DefinitionRegex, `[ \t\(]*def[a-z\-]* \([a-zA-Z0-9\-!?*<>=+_/.]+\)`},
		{"namespace", NamespaceRegex, `[ \t\(]*ns \([a-zA-Z0-9.\-_]+\)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parts := splitRegexArg(tt.regex)
			require.Len(t, parts, 3, "pattern, name and modifiers")
			assert.Equal(t, tt.pattern, parts[0])
			assert.Equal(t, `\1`, parts[1])
			assert.Empty(t, parts[2])
		})
	}
}

func TestEtags_Args(t *testing.T) {
	e := &Etags{Config: Config{EtagsTagFile: "TAGS"}}
	assert.Equal(t, []string{
		"-a",
		"-o", "TAGS",
		"--regex=" + DefinitionRegex,
		"--regex=" + NamespaceRegex,
		"src/app/core.clj",
	}, e.Args("src/app/core.clj"))
}

func TestEtags_Generate(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"project.clj":                                    "(defproject app \"0.1.0\")",
		"src/app/core.clj":                               "(ns app.core)",
		"src/app/ui.cljs":                                "(ns app.ui)",
		"resources/config.edn":                           "{}",
		"README.md":                                      "# app",
		".cljtags-deps/clojure/string.clj":               "(ns clojure.string)",
		".cljtags-deps/META-INF/leiningen/x/project.clj": "(defproject x)",
		".cljtags-deps/META-INF/maven/x/data.edn":        "{}",
	})
	m := shell.NewMockCommander()
	var buf bytes.Buffer
	e := &Etags{Config: newConfig(fs, m, &buf)}

	summary := e.Generate()

	var indexed []string
	for _, c := range m.CallsTo("etags") {
		assert.Equal(t, root, c.Dir)
		indexed = append(indexed, filepath.ToSlash(c.Args[len(c.Args)-1]))
	}
	assert.Equal(t, []string{
		".cljtags-deps/clojure/string.clj",
		"resources/config.edn",
		"src/app/core.clj",
		"src/app/ui.cljs",
	}, indexed)
	assert.Equal(t, 4, summary.Files)
	assert.Equal(t, 0, summary.Failed)
	assert.Equal(t, "TAGS", summary.TagFile)
	assert.Equal(t, options.EngineEtags, summary.Engine)
}

func TestEtags_RegenerationIsIdentical(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"src/app/core.clj": "(ns app.core)",
		"src/app/util.clj": "(ns app.util)",
		"dev/user.clj":     "(ns user)",
	})
	m := shell.NewMockCommander()
	m.Hook = appendingEtags(t, fs)
	var buf bytes.Buffer
	e := &Etags{Config: newConfig(fs, m, &buf)}

	e.Generate()
	first, err := afero.ReadFile(fs, "/project/TAGS")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	e.Generate()
	second, err := afero.ReadFile(fs, "/project/TAGS")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 3, strings.Count(string(second), "\x0c"))
}

func TestEtags_NoMatchesLeavesNoTagFile(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"TAGS":        "stale",
		"README.md":   "# nothing",
		"project.clj": "(defproject app)",
	})
	m := shell.NewMockCommander()
	m.Hook = appendingEtags(t, fs)
	var buf bytes.Buffer
	e := &Etags{Config: newConfig(fs, m, &buf)}

	summary := e.Generate()

	assert.Zero(t, summary.Files)
	assert.Empty(t, m.Calls)
	exists, err := afero.Exists(fs, "/project/TAGS")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestEtags_ErrorsAreLoggedAndSkipped(t *testing.T) {
	fs := setupFS(t, map[string]string{
		"src/a.clj": "",
		"src/b.clj": "",
		"src/c.clj": "",
	})
	m := shell.NewMockCommander()
	var buf bytes.Buffer
	e := &Etags{Config: newConfig(fs, m, &buf)}

	failing := strings.Join(e.Args(filepath.Join("src", "a.clj")), " ")
	m.SetResponse("etags "+failing, shell.Result{Stderr: "etags: src/a.clj: unreadable"}, errors.New("exit status 1"))
	noisy := strings.Join(e.Args(filepath.Join("src", "b.clj")), " ")
	m.SetResponse("etags "+noisy, shell.Result{Stderr: "etags: warning: odd regex"}, nil)

	summary := e.Generate()

	assert.Equal(t, 3, summary.Files)
	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 2, summary.Warnings)
	assert.Len(t, m.CallsTo("etags"), 3)
	assert.Contains(t, buf.String(), "unreadable")
	assert.Contains(t, buf.String(), "odd regex")
}

func TestCtags_Args(t *testing.T) {
	t.Run("ctags without langmap", func(t *testing.T) {
		opts := options.Parse([]string{"--ctags", "--no-langmap"})
		gen := Select(opts, Config{CtagsBinary: "ctags"})
		c, ok := gen.(*Ctags)
		require.True(t, ok)

		assert.Equal(t, []string{"-R", FlagEmacsFormat, "."}, c.Args())
		for _, a := range c.Args() {
			assert.False(t, strings.HasPrefix(a, "--lang"), a)
			assert.False(t, strings.HasPrefix(a, "--regex"), a)
		}
	})

	t.Run("vi with default langmap", func(t *testing.T) {
		opts := options.Parse([]string{"--vi"})
		c, ok := Select(opts, Config{CtagsBinary: "ctags"}).(*Ctags)
		require.True(t, ok)

		args := c.Args()
		assert.Equal(t, "-R", args[0])
		assert.Equal(t, FlagViFormat, args[1])
		assert.NotContains(t, args, FlagEmacsFormat)
		assert.Equal(t, LangmapArgs(), args[2:len(args)-1])
		assert.Equal(t, ".", args[len(args)-1])
	})
}

func TestSelect_DefaultsToEtags(t *testing.T) {
	_, ok := Select(options.Parse(nil), Config{}).(*Etags)
	assert.True(t, ok)

	_, ok = Select(options.Parse([]string{"--no-langmap"}), Config{}).(*Etags)
	assert.True(t, ok)
}

func TestLangmapArgs(t *testing.T) {
	args := LangmapArgs()
	require.Len(t, args, 2+len(Kinds))
	assert.Equal(t, "--langdef=clojure", args[0])
	assert.Equal(t, "--langmap=clojure:.clj.cljs.cljc.edn", args[1])
	assert.Contains(t, args, `--regex-clojure=/\([ \t]*defn-[ \t]+([-[:alnum:]*+!_:\/.?]+)/\1/p,private function/`)
	assert.Contains(t, args, `--regex-clojure=/\([ \t]*defmulti[ \t]+([-[:alnum:]*+!_:\/.?]+)/\1/a,multimethod definition/`)
	assert.Contains(t, args, `--regex-clojure=/\([ \t]*intern[ \t]+([-[:alnum:]*+!_:\/.?]+)/\1/v,intern/`)
}

func TestCtags_Generate(t *testing.T) {
	m := shell.NewMockCommander()
	var buf bytes.Buffer
	cfg := newConfig(afero.NewMemMapFs(), m, &buf)
	c := &Ctags{Config: cfg, Langmap: true}

	summary := c.Generate()

	require.Len(t, m.Calls, 1)
	assert.Equal(t, root, m.Calls[0].Dir)
	assert.Equal(t, "ctags", m.Calls[0].Name)
	assert.Equal(t, c.Args(), m.Calls[0].Args)
	assert.Equal(t, options.EngineCtags, summary.Engine)
	assert.Zero(t, summary.Failed)
}

func TestCtags_FailureIsReported(t *testing.T) {
	m := shell.NewMockCommander()
	var buf bytes.Buffer
	c := &Ctags{Config: newConfig(afero.NewMemMapFs(), m, &buf)}
	m.SetResponse("ctags "+strings.Join(c.Args(), " "),
		shell.Result{Stderr: "ctags: Unknown option: -R"}, errors.New("exit status 1"))

	summary := c.Generate()

	assert.Equal(t, 1, summary.Failed)
	assert.Equal(t, 1, summary.Warnings)
	assert.Contains(t, buf.String(), "Unknown option")
}
