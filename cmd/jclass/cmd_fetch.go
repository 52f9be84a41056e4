package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/jclass/maven"
	"github.com/spf13/cobra"
)

func newFetchCmd() *cobra.Command {
	var (
		destDir string
		showPOM bool
	)

	cmd := &cobra.Command{
		Use:   "fetch <groupId:artifactId:version>",
		Short: "Download a jar from a Maven repository",
		Long: `Download a jar from a Maven repository into the local cache.

The coordinate format is groupId:artifactId:version, or
groupId:artifactId:classifier:version.

Examples:
  jclass fetch com.google.guava:guava:33.0.0-jre
  jclass fetch --pom org.slf4j:slf4j-api:2.0.9

Environment variables:
  MAVEN_REPO_URL - Override the Maven repository URL (default: https://repo1.maven.org/maven2)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			coord, err := maven.ParseCoordinate(args[0])
			if err != nil {
				return err
			}

			fetcher := maven.NewFetcher()
			if os.Getenv(maven.EnvRepoURL) == "" && cfg.RepoURL != "" {
				fetcher.RepoURL = strings.TrimSuffix(cfg.RepoURL, "/")
			}
			if destDir == "" {
				destDir = cfg.CacheDir
			}

			if showPOM {
				if err := printPOM(fetcher, coord); err != nil {
					return err
				}
			}

			fmt.Printf("Fetching %s from %s\n", coord, fetcher.RepoURL)
			path, err := fetcher.DownloadJar(coord, destDir)
			if err != nil {
				return err
			}
			fmt.Printf("Saved %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&destDir, "dest", "d", "", "directory to download into (default: the jclass cache)")
	cmd.Flags().BoolVar(&showPOM, "pom", false, "fetch the POM and print project metadata first")

	return cmd
}

func printPOM(fetcher *maven.Fetcher, coord maven.Coordinate) error {
	project, err := fetcher.FetchPOM(coord)
	if err != nil {
		return err
	}

	if project.Name != "" {
		fmt.Println(project.Name)
	}
	if project.Description != "" {
		fmt.Println(project.Description)
	}
	if project.URL != "" {
		fmt.Println(project.URL)
	}
	for _, license := range project.Licenses {
		fmt.Printf("License: %s\n", license.Name)
	}
	if len(project.Dependencies) > 0 {
		fmt.Println("Dependencies:")
		for _, dep := range project.Dependencies {
			line := fmt.Sprintf("  %s:%s:%s", dep.GroupID, dep.ArtifactID, dep.Version)
			if dep.Scope != "" && dep.Scope != "compile" {
				line += " (" + dep.Scope + ")"
			}
			fmt.Println(line)
		}
	}
	fmt.Println()
	return nil
}
