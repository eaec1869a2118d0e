package main

import (
	"encoding/json"
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

// Set with -ldflags "-X main.Version=..." by release builds.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitBranch = "unknown"
	GitCommit = "unknown"
)

var versionJSON bool

// VersionOutput is what "wrtbot version" reports.
type VersionOutput struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GitBranch string `json:"git_branch"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
}

// currentVersion merges the linker-set values with the module build info.
// Binaries built with plain "go build" still report their commit that way.
func currentVersion(info *debug.BuildInfo, ok bool) VersionOutput {
	v := VersionOutput{
		Version:   Version,
		BuildTime: BuildTime,
		GitBranch: GitBranch,
		GitCommit: GitCommit,
		GoVersion: "unknown",
	}
	if !ok || info == nil {
		return v
	}

	v.GoVersion = info.GoVersion
	if v.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && v.GitCommit == "unknown":
			v.GitCommit = s.Value
		case s.Key == "vcs.time" && v.BuildTime == "unknown":
			v.BuildTime = s.Value
		}
	}
	return v
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long:  "Display version, build time, git branch and commit, and the Go toolchain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v := currentVersion(debug.ReadBuildInfo())
		out := cmd.OutOrStdout()

		if versionJSON {
			data, err := json.MarshalIndent(v, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal json: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintf(out, "wrtbot %s\n", v.Version)
		for _, row := range [][2]string{
			{"built", v.BuildTime},
			{"branch", v.GitBranch},
			{"commit", v.GitCommit},
			{"go", v.GoVersion},
		} {
			fmt.Fprintf(out, "  %-7s %s\n", row[0]+":", row[1])
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Output in JSON format")
}
