package tags

import "fmt"

// Language is the name registered with ctags for Clojure sources.
const Language = "clojure"

// symbolPattern matches a Clojure symbol name.
const symbolPattern = `([-[:alnum:]*+!_:\/.?]+)`

// Kind is a symbol defining form taught to ctags.
type Kind struct {
	Form   string
	Letter string
	Label  string
}

// Kinds lists the defining forms recognised by the language mapping.
var Kinds = []Kind{
	{"ns", "n", "namespace"},
	{"create-ns", "n", "namespace"},
	{"def", "d", "definition"},
	{"defn", "f", "function"},
	{"defn-", "p", "private function"},
	{"defmacro", "m", "macro"},
	{"definline", "i", "inline"},
	{"defmulti", "a", "multimethod definition"},
	{"defmethod", "b", "multimethod instance"},
	{"defonce", "c", "definition (once)"},
	{"defstruct", "s", "struct"},
	{"intern", "v", "intern"},
}

// LangmapArgs returns the ctags arguments defining the Clojure language,
// its file extensions and one regex per kind.
func LangmapArgs() []string {
	args := []string{
		"--langdef=" + Language,
		"--langmap=" + Language + ":.clj.cljs.cljc.edn",
	}
	for _, k := range Kinds {
		args = append(args, fmt.Sprintf(`--regex-%s=/\([ \t]*%s[ \t]+%s/\1/%s,%s/`,
			Language, k.Form, symbolPattern, k.Letter, k.Label))
	}
	return args
}
