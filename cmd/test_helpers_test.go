package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/josephgoksu/cljtags/internal/shell"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

const testRoot = "/project"

// testEnv swaps the process collaborators for in-memory fakes and returns
// them. Everything is restored when the test ends.
type testEnv struct {
	fs     afero.Fs
	mock   *shell.MockCommander
	out    *bytes.Buffer
	exited []int
}

func setupTestEnv(t *testing.T, files map[string]string) *testEnv {
	t.Helper()

	viper.Reset()
	cfgFile, verbose = "", false
	t.Setenv("HOME", t.TempDir())
	t.Setenv("CLJTAGS_PROJECT_ROOT", testRoot)

	env := &testEnv{
		fs:   afero.NewMemMapFs(),
		mock: shell.NewMockCommander(),
		out:  &bytes.Buffer{},
	}
	require.NoError(t, env.fs.MkdirAll(testRoot, 0o755))
	for name, content := range files {
		require.NoError(t, afero.WriteFile(env.fs, filepath.Join(testRoot, name), []byte(content), 0o644))
	}

	oldFs, oldCommander, oldExit := appFs, newCommander, exitFunc
	appFs = env.fs
	newCommander = func() shell.Commander { return env.mock }
	exitFunc = func(code int) { env.exited = append(env.exited, code) }

	rootCmd.SetOut(env.out)
	rootCmd.SetErr(env.out)

	t.Cleanup(func() {
		appFs, newCommander, exitFunc = oldFs, oldCommander, oldExit
		rootCmd.SetOut(os.Stdout)
		rootCmd.SetErr(os.Stderr)
		rootCmd.SetArgs(nil)
		viper.Reset()
		cfgFile, verbose = "", false
	})
	return env
}

func (e *testEnv) run(t *testing.T, args ...string) {
	t.Helper()
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.Execute())
}

func (e *testEnv) names() []string {
	var names []string
	for _, c := range e.mock.Calls {
		names = append(names, c.Name)
	}
	return names
}
