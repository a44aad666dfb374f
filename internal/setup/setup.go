// Package setup checks the host for the prerequisites of the survey tool
// application: a supported operating system and a recent Java runtime.
package setup

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"runtime"
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/shirou/gopsutil/v3/host"

	"github.com/huppifluppi/survey-tool-cli/internal/observability"
	"github.com/huppifluppi/survey-tool-cli/internal/types"
)

// DefaultMinJavaVersion is the lowest Java major version the application runs on.
const DefaultMinJavaVersion = 21

// javaVersionPattern finds the version triple in `java --version` output.
var javaVersionPattern = regexp.MustCompile(` (\d+).(\d+).(\d+) `)

// supportedOS lists the operating systems the application ships for.
var supportedOS = map[string]bool{
	"windows": true,
	"linux":   true,
}

// CommandRunner runs a program and returns its standard output.
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Output runs name with args. A non-zero exit status is an error.
func (ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Options configures a Checker. Zero values select the real host.
type Options struct {
	MinJavaVersion int
	Runner         CommandRunner
	HostInfo       func(ctx context.Context) (*host.InfoStat, error)
	Getenv         func(key string) string
}

// Checker checks host prerequisites.
type Checker struct {
	opts Options
}

// New creates a Checker.
func New(opts Options) *Checker {
	if opts.MinJavaVersion <= 0 {
		opts.MinJavaVersion = DefaultMinJavaVersion
	}
	if opts.Runner == nil {
		opts.Runner = ExecRunner{}
	}
	if opts.HostInfo == nil {
		opts.HostInfo = host.InfoWithContext
	}
	if opts.Getenv == nil {
		opts.Getenv = os.Getenv
	}
	return &Checker{opts: opts}
}

// Check inspects the host. Every failed prerequisite is reported in the result.
func (c *Checker) Check(ctx context.Context) (*types.CheckResult, error) {
	result := types.NewAllOK()

	c.checkOS(ctx, result)

	output, found := c.javaVersionOutput(ctx)
	if !found {
		result.RecordStructuralFailure("Java not found. Please install Java or set JAVA_HOME")
		result.RecordStructuralFailure("Java not found. Cant check it's version")
		return result, nil
	}
	result.RecordSuccess("Java installation found")

	if err := c.checkJavaVersion(output, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Checker) checkOS(ctx context.Context, result *types.CheckResult) {
	logger := observability.FromContext(ctx)

	osName := runtime.GOOS
	info, err := c.opts.HostInfo(ctx)
	if err != nil {
		logger.Debug().Err(err).Msg("host info unavailable, using build target")
	} else if info != nil && info.OS != "" {
		osName = info.OS
		logger.Debug().
			Str("os", info.OS).
			Str("platform", info.Platform).
			Str("platform_version", info.PlatformVersion).
			Msg("host detected")
	}

	if supportedOS[osName] {
		result.RecordSuccess("Supported operating system found")
		return
	}
	result.RecordStructuralFailure(fmt.Sprintf("Only Windows and Linux supported as operating system. Found '%s'", osName))
}

// javaVersionOutput runs `java --version` from PATH, then from JAVA_HOME.
func (c *Checker) javaVersionOutput(ctx context.Context) (string, bool) {
	logger := observability.FromContext(ctx)

	out, err := c.opts.Runner.Output(ctx, "java", "--version")
	if err == nil {
		return string(out), true
	}
	logger.Debug().Err(err).Msg("java not runnable from PATH")

	javaHome := c.opts.Getenv("JAVA_HOME")
	if javaHome == "" {
		return "", false
	}
	out, err = c.opts.Runner.Output(ctx, filepath.Join(javaHome, "bin", "java"), "--version")
	if err != nil {
		logger.Debug().Err(err).Str("java_home", javaHome).Msg("java not runnable from JAVA_HOME")
		return "", false
	}
	return string(out), true
}

func (c *Checker) checkJavaVersion(output string, result *types.CheckResult) error {
	m := javaVersionPattern.FindStringSubmatch(output)
	if m == nil {
		result.RecordStructuralFailure("Could not detect any Java version")
		return nil
	}
	found := m[0][1 : len(m[0])-1]

	constraint, err := semver.NewConstraint(">= " + strconv.Itoa(c.opts.MinJavaVersion))
	if err != nil {
		return fmt.Errorf("invalid minimum java version %d: %w", c.opts.MinJavaVersion, err)
	}
	version, err := semver.NewVersion(m[1] + "." + m[2] + "." + m[3])
	if err != nil {
		result.RecordStructuralFailure("Could not detect any Java version")
		return nil
	}

	if !constraint.Check(version) {
		result.RecordStructuralFailure(fmt.Sprintf("Installed Java version too low. Minimum needed: %d - found: %s", c.opts.MinJavaVersion, found))
		return nil
	}
	result.RecordSuccess(fmt.Sprintf("Installed Java version good. Minimum needed: %d - found: %s", c.opts.MinJavaVersion, found))
	return nil
}
