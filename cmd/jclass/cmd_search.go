package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/jclass/maven"
	"github.com/spf13/cobra"
)

func newSearchCmd() *cobra.Command {
	var (
		groupID     string
		artifactID  string
		className   string
		rows        int
		allVersions bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search Maven Central for artifacts",
		Long: `Search Maven Central for artifacts.

Examples:
  jclass search guice
  jclass search --group com.google.inject
  jclass search --class Injector
  jclass search --versions --group com.google.inject --artifact guice`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			searcher := maven.NewSearcher()
			if os.Getenv(maven.EnvSearchURL) == "" && cfg.SearchURL != "" {
				searcher.BaseURL = cfg.SearchURL
			}

			if allVersions {
				if groupID == "" || artifactID == "" {
					return fmt.Errorf("--versions needs both --group and --artifact")
				}
				result, err := searcher.SearchAllVersions(groupID, artifactID)
				if err != nil {
					return err
				}
				for _, doc := range result.Response.Docs {
					fmt.Printf("%s:%s:%s\n", doc.GroupID, doc.ArtifactID, doc.Version)
				}
				return nil
			}

			query := maven.SearchQuery{
				GroupID:    groupID,
				ArtifactID: artifactID,
				ClassName:  className,
				Rows:       rows,
			}
			if len(args) > 0 {
				query.Text = args[0]
			}
			if query.Text == "" && query.GroupID == "" && query.ArtifactID == "" && query.ClassName == "" {
				return fmt.Errorf("provide a search query or use --group, --artifact, or --class flags")
			}

			result, err := searcher.Search(query)
			if err != nil {
				return err
			}

			if result.Response.NumFound == 0 {
				fmt.Println("No results found.")
				return nil
			}

			fmt.Printf("Found %d results:\n\n", result.Response.NumFound)
			for _, doc := range result.Response.Docs {
				version := doc.LatestVersion
				if version == "" {
					version = doc.Version
				}
				fmt.Printf("  %s:%s:%s\n", doc.GroupID, doc.ArtifactID, version)
				if doc.VersionCount > 1 {
					fmt.Printf("    %d versions\n", doc.VersionCount)
				}
				if len(doc.Tags) > 0 {
					fmt.Printf("    tags: %s\n", strings.Join(doc.Tags, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&groupID, "group", "g", "", "filter by group ID")
	cmd.Flags().StringVarP(&artifactID, "artifact", "a", "", "filter by artifact ID")
	cmd.Flags().StringVarP(&className, "class", "c", "", "search by class name")
	cmd.Flags().IntVarP(&rows, "rows", "n", 20, "number of results to return")
	cmd.Flags().BoolVar(&allVersions, "versions", false, "list all versions of one artifact")

	return cmd
}
