package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/josephgoksu/cljtags/internal/project"
	"github.com/josephgoksu/cljtags/types"
	"github.com/spf13/viper"
)

const (
	configName = ".cljtags"
	envPrefix  = "CLJTAGS"

	// IndexDirEnv overrides the scratch directory.
	IndexDirEnv = "CLJTAGS_INDEX_DIR"
	// DefaultIndexDir is the scratch directory name used when IndexDirEnv is unset.
	DefaultIndexDir = ".cljtags-deps"
)

// validate is a single instance of Validate, it caches struct info
var validate = validator.New()

// setDefaults registers every default value with viper.
func setDefaults() {
	viper.SetDefault("verbose", false)
	viper.SetDefault("indexDir", DefaultIndexDir)
	viper.SetDefault("crashLogDir", "")

	// Empty means detect from the working directory.
	viper.SetDefault("project.root", "")
	viper.SetDefault("project.buildFile", "project.clj")
	viper.SetDefault("project.metadataDir", "META-INF")

	viper.SetDefault("deps.command", []string{"lein", "classpath"})
	viper.SetDefault("deps.archives", []string{})

	viper.SetDefault("extract.command", []string{"unzip", "-qq", "-o"})

	viper.SetDefault("etags.binary", "etags")
	viper.SetDefault("etags.tagFile", "TAGS")
	viper.SetDefault("ctags.binary", "ctags")

	viper.SetDefault("watch.debounce", "500ms")
}

// loadConfig reads .env, the optional config file and environment variables,
// then decodes and validates the result. It is called once per command run
// and the returned value is handed to every component.
func loadConfig() (*types.AppConfig, error) {
	// Load .env file first if present. It's okay if it doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(envPrefix)                          // e.g., CLJTAGS_VERBOSE
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_")) // project.root -> CLJTAGS_PROJECT_ROOT
	viper.AutomaticEnv()
	if err := viper.BindEnv("indexDir", IndexDirEnv); err != nil {
		return nil, fmt.Errorf("bind %s: %w", IndexDirEnv, err)
	}

	setDefaults()

	if err := readConfigFile(); err != nil {
		return nil, err
	}

	var config types.AppConfig
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode configuration: %w", err)
	}

	if config.Project.Root == "" {
		config.Project.Root, config.Project.Detected = detectRoot(config.Project.BuildFile)
	}
	root, err := filepath.Abs(config.Project.Root)
	if err != nil {
		return nil, fmt.Errorf("resolve project root %q: %w", config.Project.Root, err)
	}
	config.Project.Root = root

	if err := validate.Struct(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// detectRoot finds the nearest directory above the working directory that
// holds buildFile. The working directory itself is used when none does.
func detectRoot(buildFile string) (string, *types.Detection) {
	none := &types.Detection{Marker: project.MarkerNone.String()}
	cwd, err := os.Getwd()
	if err != nil {
		return ".", none
	}
	ctx, err := project.NewDetector(appFs, buildFile).Detect(cwd)
	if err != nil {
		return cwd, none
	}
	return ctx.RootPath, &types.Detection{
		Marker:   ctx.MarkerType.String(),
		GitRoot:  ctx.GitRoot,
		RepoPath: ctx.RelativeGitPath(),
		Nested:   ctx.IsNested(),
	}
}

func readConfigFile() error {
	cfgFileFlag := viper.GetString("config")
	if cfgFileFlag != "" {
		viper.SetConfigFile(cfgFileFlag)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigName(configName)
	}

	err := viper.ReadInConfig()
	if err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
		return nil
	}

	var notFound viper.ConfigFileNotFoundError
	if errors.As(err, &notFound) && cfgFileFlag == "" {
		// No config file is fine; defaults and environment apply.
		return nil
	}
	return fmt.Errorf("read config file %s: %w", viper.ConfigFileUsed(), err)
}
